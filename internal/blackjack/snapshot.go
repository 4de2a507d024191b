package blackjack

import "github.com/lox/tablejack/internal/deck"

// Snapshot is an immutable copy of the table taken after a mutation. The
// presentation layer renders exclusively from snapshots and never holds a
// reference into live game state.
type Snapshot struct {
	GameID        string
	Round         int
	CurrentPlayer int
	DeckRemaining int
	PINsEnabled   bool
	InsuranceOpen bool
	Players       []PlayerSnapshot
	LastResults   []Result
}

// PlayerSnapshot is one seat's state within a Snapshot. Hand is a copy;
// mutating it does not touch the game.
type PlayerSnapshot struct {
	ID          int
	Name        string
	Dealer      bool
	Hand        []deck.Card
	Score       int
	Bet         int
	Surrendered bool
	Insured     bool
	Busted      bool
	Blackjack   bool
}

// Snapshot captures the current table state
func (g *Game) Snapshot() Snapshot {
	remaining := 0
	if g.deck != nil {
		remaining = g.deck.Remaining()
	}

	snap := Snapshot{
		GameID:        g.id,
		Round:         g.round,
		CurrentPlayer: g.CurrentPlayerID(),
		DeckRemaining: remaining,
		PINsEnabled:   g.pinsEnabled,
		InsuranceOpen: g.insuranceOpen(),
		Players:       make([]PlayerSnapshot, 0, len(g.players)),
		LastResults:   append([]Result(nil), g.lastResults...),
	}

	for _, p := range g.players {
		hand := make([]deck.Card, len(p.hand))
		copy(hand, p.hand)

		_, insured := g.insured[p.id]
		score := g.scores[p.id]

		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:          p.id,
			Name:        p.name,
			Dealer:      p.id == DealerID,
			Hand:        hand,
			Score:       score,
			Bet:         g.bets[p.id],
			Surrendered: g.isSurrendered(p.id),
			Insured:     insured,
			Busted:      score > 21,
			Blackjack:   IsBlackjack(hand),
		})
	}

	return snap
}

// Player returns the snapshot for the given seat id
func (s Snapshot) Player(id int) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}

// Current returns the snapshot for the seat whose turn it is
func (s Snapshot) Current() PlayerSnapshot {
	p, _ := s.Player(s.CurrentPlayer)
	return p
}

// DealerUpCard returns the dealer's visible first card. The second card is
// concealed from the table until the dealer acts; ok is false before the
// deal.
func (s Snapshot) DealerUpCard() (deck.Card, bool) {
	dealer, ok := s.Player(DealerID)
	if !ok || len(dealer.Hand) == 0 {
		return deck.Card{}, false
	}
	return dealer.Hand[0], true
}
