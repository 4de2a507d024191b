package blackjack

// Outcome is how a seat fared against the dealer at the end of a round.
type Outcome int

const (
	OutcomeLose Outcome = iota
	OutcomeWin
	OutcomePush
	OutcomeBlackjack
	OutcomeSurrendered
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeSurrendered:
		return "surrendered"
	default:
		return "unknown"
	}
}

// Result records one non-dealer seat's outcome for a finished round.
type Result struct {
	PlayerID    int
	Name        string
	Outcome     Outcome
	Score       int
	DealerScore int
	Bet         int
}

// resolve compares every non-dealer hand against the dealer's once the
// dealer has acted. Surrendered seats forfeit regardless of score, a bust
// always loses, a dealer bust pays every standing seat, a natural beats a
// non-natural 21, and equal scores push.
func (g *Game) resolve() []Result {
	dealer := g.players[0]
	dealerScore := Score(dealer.hand)
	dealerBust := dealerScore > 21
	dealerNatural := IsBlackjack(dealer.hand)

	results := make([]Result, 0, len(g.players)-1)
	for _, p := range g.players[1:] {
		r := Result{
			PlayerID:    p.id,
			Name:        p.name,
			Score:       Score(p.hand),
			DealerScore: dealerScore,
			Bet:         g.bets[p.id],
		}

		switch {
		case g.isSurrendered(p.id):
			r.Outcome = OutcomeSurrendered
		case r.Score > 21:
			r.Outcome = OutcomeLose
		case IsBlackjack(p.hand) && !dealerNatural:
			r.Outcome = OutcomeBlackjack
		case dealerBust:
			r.Outcome = OutcomeWin
		case r.Score > dealerScore:
			r.Outcome = OutcomeWin
		case r.Score == dealerScore:
			r.Outcome = OutcomePush
		default:
			r.Outcome = OutcomeLose
		}

		results = append(results, r)
	}

	return results
}
