// Package blackjack implements the state machine for a pass-and-play
// blackjack table: one shared device, N human seats plus a dealer seat,
// turns taken strictly in seat order with the dealer acting last.
//
// The package owns all mutable round state. The presentation layer drives it
// through Apply, AdjustBet and VerifyPIN and re-renders from the immutable
// Snapshot returned after every mutation.
//
// # Deterministic Testing
//
// Inject a seed for reproducible shuffles, or stack the deck outright:
//
//	g, _ := blackjack.New(3, blackjack.WithSeed(42))
//	g, _ := blackjack.New(2, blackjack.WithStackedDeck(deck.MustParseCards("AsKd...")...))
package blackjack

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/tablejack/internal/deck"
	"github.com/lox/tablejack/internal/gameid"
	"github.com/lox/tablejack/internal/randutil"
)

// DealerID is the seat id of the dealer. The dealer always acts last and
// never bets.
const DealerID = 0

// Default table limits. Configurable through options.
const (
	DefaultMinBet     = 20
	DefaultMaxBet     = 100
	DefaultBet        = 20
	DefaultMaxPlayers = 12

	// With PIN gating every seat change is a physical device hand-off, so
	// the table is capped lower to keep rounds moving.
	DefaultMaxPlayersPIN = 4
)

type player struct {
	id   int
	name string
	hand []deck.Card
}

// Game is the state machine for one table. It is not safe for concurrent
// use; play is strictly turn-based with a single agent acting at a time.
type Game struct {
	id     string
	logger *log.Logger
	rng    *rand.Rand
	bus    EventBus

	players []*player
	deck    *deck.Deck
	round   int
	current int // index into players == seat id

	bets        map[int]int
	scores      map[int]int
	surrendered map[int]struct{}
	insured     map[int]struct{}
	pins        map[int]string

	lastResults []Result

	minBet, maxBet, defaultBet int
	maxPlayers                 int
	pinsEnabled                bool

	stacked []*deck.Deck // decks to use before falling back to shuffling
}

// Option configures a Game
type Option func(*Game)

// WithSeed makes shuffles and PINs reproducible
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = randutil.New(seed)
	}
}

// WithRNG supplies the random source directly
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// WithLogger sets the logger used for turn and action traces
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithEventBus sets the bus game events are published to
func WithEventBus(bus EventBus) Option {
	return func(g *Game) {
		g.bus = bus
	}
}

// WithPINs enables PIN-gated turns: each player gets a 3-digit code that the
// presentation layer must collect before revealing their hand.
func WithPINs() Option {
	return func(g *Game) {
		g.pinsEnabled = true
	}
}

// WithBetLimits overrides the table's bet range and the per-round default
func WithBetLimits(min, max, def int) Option {
	return func(g *Game) {
		g.minBet, g.maxBet, g.defaultBet = min, max, def
	}
}

// WithMaxPlayers overrides the table size cap
func WithMaxPlayers(n int) Option {
	return func(g *Game) {
		g.maxPlayers = n
	}
}

// WithStackedDeck queues a fixed, unshuffled deck for the next round that
// doesn't already have one. The first card given is dealt first. Rounds
// beyond the queued decks shuffle fresh ones as usual.
func WithStackedDeck(cards ...deck.Card) Option {
	return func(g *Game) {
		g.stacked = append(g.stacked, deck.Stacked(cards...))
	}
}

// New creates a table with numPlayers seats including the dealer (seat 0).
// Seats and PINs persist for the lifetime of the game; rounds are dealt by
// StartRound. numPlayers outside [2, max] returns ErrPlayerCount.
func New(numPlayers int, opts ...Option) (*Game, error) {
	g := &Game{
		id:          gameid.Generate(),
		logger:      log.New(io.Discard),
		minBet:      DefaultMinBet,
		maxBet:      DefaultMaxBet,
		defaultBet:  DefaultBet,
		bets:        make(map[int]int),
		scores:      make(map[int]int),
		surrendered: make(map[int]struct{}),
		insured:     make(map[int]struct{}),
		pins:        make(map[int]string),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = randutil.FromTime()
	}
	if g.bus == nil {
		g.bus = NewEventBus()
	}
	if g.maxPlayers == 0 {
		if g.pinsEnabled {
			g.maxPlayers = DefaultMaxPlayersPIN
		} else {
			g.maxPlayers = DefaultMaxPlayers
		}
	}

	if numPlayers < 2 || numPlayers > g.maxPlayers {
		return nil, fmt.Errorf("%w: %d (want 2-%d)", ErrPlayerCount, numPlayers, g.maxPlayers)
	}

	for i := 0; i < numPlayers; i++ {
		name := fmt.Sprintf("Player %d", i)
		if i == DealerID {
			name = "Dealer"
		}
		g.players = append(g.players, &player{id: i, name: name})

		if g.pinsEnabled {
			g.pins[i] = generatePIN(g.rng)
		}
	}

	g.logger = g.logger.WithPrefix("blackjack").With("game", g.id)
	g.logger.Debug("table created", "players", numPlayers, "pins", g.pinsEnabled)

	return g, nil
}

// ID returns the session id for this game
func (g *Game) ID() string {
	return g.id
}

// Round returns the current round number, starting at 1 after the first
// StartRound.
func (g *Game) Round() int {
	return g.round
}

// CurrentPlayerID returns the seat whose turn it is
func (g *Game) CurrentPlayerID() int {
	return g.players[g.current].id
}

// NumPlayers returns the number of seats including the dealer
func (g *Game) NumPlayers() int {
	return len(g.players)
}

// Events returns the bus the game publishes to
func (g *Game) Events() EventBus {
	return g.bus
}

// StartRound resets the table for a new round: a fresh shuffled deck, two
// cards to every seat off the top, bets back to the default, the surrender
// and insurance sets cleared, and the turn on the first non-dealer seat.
func (g *Game) StartRound() error {
	g.deck = g.nextDeck()
	g.round++
	g.lastResults = nil

	clear(g.surrendered)
	clear(g.insured)

	for _, p := range g.players {
		p.hand = p.hand[:0]
		if p.id != DealerID {
			g.bets[p.id] = g.defaultBet
		}
	}

	for _, p := range g.players {
		for range 2 {
			if err := g.deal(p, true); err != nil {
				return fmt.Errorf("dealing round %d: %w", g.round, err)
			}
		}
	}

	// Dealer acts last; with more than one seat the turn opens on seat 1.
	g.current = 0
	if len(g.players) > 1 {
		g.current = 1
	}

	g.logger.Info("round started", "round", g.round, "turn", g.CurrentPlayerID())
	g.publish(RoundStartedEvent{Round: g.round, Players: len(g.players), FirstTurn: g.CurrentPlayerID(), timestamp: g.now()})
	g.publish(TurnChangedEvent{PlayerID: g.CurrentPlayerID(), Round: g.round, timestamp: g.now()})

	return nil
}

// Apply performs an action for the given player. It returns ErrWrongTurn
// when playerID is not the current seat, ErrInvalidAction when the action is
// not currently offered, and ErrDeckExhausted when a draw cannot be served;
// in every error case the table is unchanged.
func (g *Game) Apply(playerID int, action Action) error {
	if playerID < 0 || playerID >= len(g.players) {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, playerID)
	}
	if playerID != g.CurrentPlayerID() {
		return fmt.Errorf("%w: player %d acted on player %d's turn", ErrWrongTurn, playerID, g.CurrentPlayerID())
	}
	if !g.actionAvailable(action) {
		if action == Insurance {
			return ErrInsuranceUnavailable
		}
		return fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	p := g.players[g.current]

	switch action {
	case Hit:
		if err := g.deal(p, false); err != nil {
			return err
		}

	case Stand:
		// no hand mutation

	case Double:
		if err := g.deal(p, false); err != nil {
			return err
		}
		// TODO: double g.bets[p.id] here once the payout rule is settled

	case Surrender:
		g.surrendered[p.id] = struct{}{}
		// TODO: halve g.bets[p.id] here once the payout rule is settled

	case Insurance:
		g.insured[p.id] = struct{}{}

	default:
		return fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	score := g.scores[p.id]
	busted := score > 21

	g.logger.Debug("action applied", "player", p.id, "action", action, "score", score, "busted", busted)
	g.publish(PlayerActionEvent{PlayerID: p.id, Action: action, Score: score, Busted: busted, timestamp: g.now()})

	// Insurance is a side bet; the player still acts on their hand.
	// Everything else ends the turn, either by choice (stand, double,
	// surrender) or because the hand is done (21 or bust after a hit).
	switch action {
	case Insurance:
		return nil
	case Hit:
		if score < 21 {
			return nil
		}
	}

	return g.advanceTurn()
}

// AdjustBet sets the current player's bet for this round. Only the current,
// non-dealer seat may adjust, and only within the table limits; a rejected
// adjustment leaves the stored bet unchanged.
func (g *Game) AdjustBet(playerID, amount int) error {
	if playerID < 0 || playerID >= len(g.players) {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, playerID)
	}
	if playerID == DealerID {
		return ErrDealerCannotBet
	}
	if playerID != g.CurrentPlayerID() {
		return fmt.Errorf("%w: player %d adjusted a bet on player %d's turn", ErrWrongTurn, playerID, g.CurrentPlayerID())
	}
	if amount < g.minBet || amount > g.maxBet {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrBetOutOfRange, amount, g.minBet, g.maxBet)
	}

	g.bets[playerID] = amount
	g.publish(BetAdjustedEvent{PlayerID: playerID, Amount: amount, timestamp: g.now()})
	return nil
}

// deal draws one card from the deck into p's hand and rescores it
func (g *Game) deal(p *player, initial bool) error {
	card, err := g.deck.Draw()
	if err != nil {
		return fmt.Errorf("%w: player %d cannot draw", ErrDeckExhausted, p.id)
	}

	p.hand = append(p.hand, card)
	g.scores[p.id] = Score(p.hand)

	g.publish(CardDealtEvent{PlayerID: p.id, Card: card, Score: g.scores[p.id], Initial: initial, timestamp: g.now()})
	return nil
}

// advanceTurn moves play to the next seat in ascending order. The dealer is
// the terminal seat, so finishing seat N-1 hands the turn to seat 0, and the
// dealer finishing resolves the round and deals the next one.
func (g *Game) advanceTurn() error {
	if g.current == DealerID {
		results := g.resolve()
		g.lastResults = results
		g.logger.Info("round ended", "round", g.round)
		g.publish(RoundEndedEvent{Round: g.round, Results: results, timestamp: g.now()})
		return g.StartRound()
	}

	if g.current == len(g.players)-1 {
		g.current = DealerID
	} else {
		g.current++
	}

	g.publish(TurnChangedEvent{PlayerID: g.CurrentPlayerID(), Round: g.round, timestamp: g.now()})
	return nil
}

// insuranceOpen reports whether the insurance side bet is on offer: the
// dealer's second card, the one concealed from the table, is an Ace.
func (g *Game) insuranceOpen() bool {
	dealer := g.players[0]
	return len(dealer.hand) >= 2 && dealer.hand[1].IsAce()
}

func (g *Game) isSurrendered(playerID int) bool {
	_, ok := g.surrendered[playerID]
	return ok
}

func (g *Game) nextDeck() *deck.Deck {
	if len(g.stacked) > 0 {
		d := g.stacked[0]
		g.stacked = g.stacked[1:]
		return d
	}

	d := deck.New(g.rng)
	d.Shuffle()
	return d
}

func (g *Game) publish(event GameEvent) {
	g.bus.Publish(event)
}

func (g *Game) now() time.Time {
	return time.Now()
}
