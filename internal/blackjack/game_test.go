package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablejack/internal/deck"
)

// eventRecorder captures published events for assertions
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) ofType(et EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

func newStartedGame(t *testing.T, players int, opts ...Option) *Game {
	t.Helper()
	g, err := New(players, opts...)
	require.NoError(t, err)
	require.NoError(t, g.StartRound())
	return g
}

func TestNewRejectsPlayerCountOutOfRange(t *testing.T) {
	_, err := New(1)
	assert.ErrorIs(t, err, ErrPlayerCount)

	_, err = New(13)
	assert.ErrorIs(t, err, ErrPlayerCount)

	_, err = New(12)
	assert.NoError(t, err)

	// PIN-gated tables cap at 4 seats
	_, err = New(5, WithPINs())
	assert.ErrorIs(t, err, ErrPlayerCount)

	_, err = New(4, WithPINs())
	assert.NoError(t, err)
}

func TestStartRoundDealsTwoCardsToEverySeat(t *testing.T) {
	g := newStartedGame(t, 3, WithSeed(1))

	snap := g.Snapshot()
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, 1, snap.CurrentPlayer)
	assert.Equal(t, 52-6, snap.DeckRemaining)

	for _, p := range snap.Players {
		assert.Len(t, p.Hand, 2, "player %d", p.ID)
		assert.Equal(t, Score(p.Hand), p.Score, "player %d", p.ID)
		if !p.Dealer {
			assert.Equal(t, DefaultBet, p.Bet, "player %d", p.ID)
		}
	}
}

func TestDeckAndHandsPartitionTheFullDeck(t *testing.T) {
	g := newStartedGame(t, 12, WithSeed(3))

	seen := make(map[deck.Card]int)
	snap := g.Snapshot()
	for _, p := range snap.Players {
		for _, c := range p.Hand {
			seen[c]++
		}
	}
	for _, c := range g.deck.Cards() {
		seen[c]++
	}

	require.Len(t, seen, 52)
	for c, n := range seen {
		assert.Equal(t, 1, n, "card %s", c)
	}
}

func TestTurnOrderDealerActsLast(t *testing.T) {
	g := newStartedGame(t, 3, WithSeed(2))

	require.Equal(t, 1, g.CurrentPlayerID())

	require.NoError(t, g.Apply(1, Stand))
	assert.Equal(t, 2, g.CurrentPlayerID())

	require.NoError(t, g.Apply(2, Stand))
	assert.Equal(t, DealerID, g.CurrentPlayerID())

	// Dealer finishing ends the round and deals the next one automatically
	require.NoError(t, g.Apply(DealerID, Stand))
	assert.Equal(t, 2, g.Round())
	assert.Equal(t, 1, g.CurrentPlayerID())
}

func TestApplyRejectsOutOfTurnActions(t *testing.T) {
	g := newStartedGame(t, 3, WithSeed(2))

	before := g.Snapshot()
	err := g.Apply(2, Hit)
	assert.ErrorIs(t, err, ErrWrongTurn)

	after := g.Snapshot()
	assert.Equal(t, before.Players, after.Players, "a rejected action must not mutate the table")

	err = g.Apply(99, Hit)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestHitDrawsAndRescores(t *testing.T) {
	// dealer: T♠6♠ (16), player 1: 2♣3♦ (5), then 4♥ on the hit
	g := newStartedGame(t, 2, WithStackedDeck(deck.MustParseCards("Ts6s2c3d4h")...))

	require.NoError(t, g.Apply(1, Hit))

	p, _ := g.Snapshot().Player(1)
	assert.Len(t, p.Hand, 3)
	assert.Equal(t, 9, p.Score)
	assert.Equal(t, 1, g.CurrentPlayerID(), "a low hit keeps the turn")
}

func TestHitBustAdvancesTurn(t *testing.T) {
	// player 1: T♥9♥, hits 5♣ for 24
	g := newStartedGame(t, 2, WithStackedDeck(deck.MustParseCards("Ts6sTh9h5c")...))

	require.NoError(t, g.Apply(1, Hit))

	p, _ := g.Snapshot().Player(1)
	assert.True(t, p.Busted)
	assert.Equal(t, 24, p.Score)
	assert.Equal(t, DealerID, g.CurrentPlayerID())
}

func TestHitToTwentyOneAdvancesTurn(t *testing.T) {
	// player 1: T♥9♥, hits 2♦ for exactly 21
	g := newStartedGame(t, 2, WithStackedDeck(deck.MustParseCards("Ts6sTh9h2d")...))

	require.NoError(t, g.Apply(1, Hit))

	p, _ := g.Snapshot().Player(1)
	assert.Equal(t, 21, p.Score)
	assert.False(t, p.Busted)
	assert.Equal(t, DealerID, g.CurrentPlayerID())
}

func TestDoubleDrawsOneCardAndAdvances(t *testing.T) {
	g := newStartedGame(t, 2, WithStackedDeck(deck.MustParseCards("Ts6s2c3d4h")...))

	require.NoError(t, g.Apply(1, Double))

	p, _ := g.Snapshot().Player(1)
	assert.Len(t, p.Hand, 3)
	assert.Equal(t, 9, p.Score)
	assert.Equal(t, DealerID, g.CurrentPlayerID(), "double always ends the turn")
	assert.Equal(t, DefaultBet, p.Bet, "doubling the bet is not implemented yet")
}

func TestDoubleOnlyOnTwoCardHand(t *testing.T) {
	g := newStartedGame(t, 2, WithStackedDeck(deck.MustParseCards("Ts6s2c3d4h2s")...))

	require.NoError(t, g.Apply(1, Hit))
	err := g.Apply(1, Double)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestSurrenderRecordsSeatAndAdvances(t *testing.T) {
	g := newStartedGame(t, 3, WithSeed(4))

	before, _ := g.Snapshot().Player(1)

	require.NoError(t, g.Apply(1, Surrender))

	after, _ := g.Snapshot().Player(1)
	assert.True(t, after.Surrendered)
	assert.Equal(t, before.Hand, after.Hand, "surrender must not touch the hand")
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.Bet, after.Bet, "halving the bet is not implemented yet")
	assert.Equal(t, 2, g.CurrentPlayerID())
}

func TestAdjustBet(t *testing.T) {
	g := newStartedGame(t, 3, WithSeed(5))

	require.NoError(t, g.AdjustBet(1, 50))
	p, _ := g.Snapshot().Player(1)
	assert.Equal(t, 50, p.Bet)

	// out of range adjustments are rejected and leave the bet alone
	err := g.AdjustBet(1, 150)
	assert.ErrorIs(t, err, ErrBetOutOfRange)
	err = g.AdjustBet(1, 19)
	assert.ErrorIs(t, err, ErrBetOutOfRange)
	p, _ = g.Snapshot().Player(1)
	assert.Equal(t, 50, p.Bet)

	// only the current seat may adjust
	err = g.AdjustBet(2, 60)
	assert.ErrorIs(t, err, ErrWrongTurn)

	// the dealer has no bet
	err = g.AdjustBet(DealerID, 50)
	assert.ErrorIs(t, err, ErrDealerCannotBet)
}

func TestRoundRestartResetsState(t *testing.T) {
	g := newStartedGame(t, 3, WithSeed(6))

	require.NoError(t, g.AdjustBet(1, 80))
	require.NoError(t, g.Apply(1, Surrender))
	require.NoError(t, g.Apply(2, Stand))
	require.NoError(t, g.Apply(DealerID, Stand))

	snap := g.Snapshot()
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, 1, snap.CurrentPlayer)
	for _, p := range snap.Players {
		assert.Len(t, p.Hand, 2, "player %d", p.ID)
		assert.False(t, p.Surrendered, "player %d", p.ID)
		if !p.Dealer {
			assert.Equal(t, DefaultBet, p.Bet, "player %d", p.ID)
		}
	}
}

func TestHitOnEmptyDeckReturnsErrDeckExhausted(t *testing.T) {
	// exactly enough cards for the deal, nothing left to hit with
	g := newStartedGame(t, 2, WithStackedDeck(deck.MustParseCards("Ts6s2c3d")...))

	before, _ := g.Snapshot().Player(1)
	err := g.Apply(1, Hit)
	assert.ErrorIs(t, err, ErrDeckExhausted)

	after, _ := g.Snapshot().Player(1)
	assert.Equal(t, before.Hand, after.Hand)
	assert.Equal(t, 1, g.CurrentPlayerID(), "a failed hit must not advance the turn")
}

func TestInsurance(t *testing.T) {
	// dealer's concealed second card is an Ace: insurance is on offer
	g := newStartedGame(t, 3, WithStackedDeck(deck.MustParseCards("TsAs2c3d4h5h")...))

	snap := g.Snapshot()
	assert.True(t, snap.InsuranceOpen)
	assert.Contains(t, g.ValidActions(), Insurance)

	require.NoError(t, g.Apply(1, Insurance))
	assert.Equal(t, 1, g.CurrentPlayerID(), "insurance is a side bet, the turn continues")

	p, _ := g.Snapshot().Player(1)
	assert.True(t, p.Insured)

	// only once per player
	err := g.Apply(1, Insurance)
	assert.ErrorIs(t, err, ErrInsuranceUnavailable)
}

func TestInsuranceUnavailableWithoutDealerAce(t *testing.T) {
	g := newStartedGame(t, 2, WithStackedDeck(deck.MustParseCards("Ts6s2c3d")...))

	assert.False(t, g.Snapshot().InsuranceOpen)
	assert.NotContains(t, g.ValidActions(), Insurance)

	err := g.Apply(1, Insurance)
	assert.ErrorIs(t, err, ErrInsuranceUnavailable)
}

func TestDealerHasNoBettingActions(t *testing.T) {
	g := newStartedGame(t, 2, WithSeed(8))

	require.NoError(t, g.Apply(1, Stand))
	require.Equal(t, DealerID, g.CurrentPlayerID())

	actions := g.ValidActions()
	assert.NotContains(t, actions, Double)
	assert.NotContains(t, actions, Surrender)
	assert.NotContains(t, actions, Insurance)
}

func TestRoundResolution(t *testing.T) {
	// dealer: T♠6♠ (16) hits K♦ and busts
	// player 1: T♥9♥ (19) stands
	// player 2: 7♣8♣ (15) hits 5♦ (20) and stands
	g, err := New(3,
		WithSeed(9),
		WithStackedDeck(deck.MustParseCards("Ts6sTh9h7c8c5dKd")...),
	)
	require.NoError(t, err)

	recorder := &eventRecorder{}
	g.Events().Subscribe(recorder)
	require.NoError(t, g.StartRound())

	require.NoError(t, g.Apply(1, Stand))
	require.NoError(t, g.Apply(2, Hit))
	require.NoError(t, g.Apply(2, Stand))
	require.NoError(t, g.Apply(DealerID, Hit)) // 26, bust ends the dealer's turn

	ended := recorder.ofType(EventTypeRoundEnded)
	require.Len(t, ended, 1)

	results := ended[0].(RoundEndedEvent).Results
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].PlayerID)
	assert.Equal(t, "Player 1", results[0].Name)
	assert.Equal(t, DefaultBet, results[0].Bet)
	assert.Equal(t, OutcomeWin, results[0].Outcome, "dealer bust pays standing seats")
	assert.Equal(t, 19, results[0].Score)
	assert.Equal(t, 26, results[0].DealerScore)

	assert.Equal(t, 2, results[1].PlayerID)
	assert.Equal(t, OutcomeWin, results[1].Outcome)
	assert.Equal(t, 20, results[1].Score)

	// the next round is already dealt, with results carried in the snapshot
	snap := g.Snapshot()
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, results, snap.LastResults)
}

func TestRoundResolutionOutcomes(t *testing.T) {
	// dealer: T♠9♠ (19) stands
	// player 1: A♠K♠ natural
	// player 2: 7♣2♣ hits T♦ (19) and stands for a push
	// player 3: 4♥5♥ surrenders
	g, err := New(4,
		WithSeed(10),
		WithStackedDeck(deck.MustParseCards("Ts9sAsKs7c2c4h5hTd")...),
	)
	require.NoError(t, err)

	recorder := &eventRecorder{}
	g.Events().Subscribe(recorder)
	require.NoError(t, g.StartRound())

	require.NoError(t, g.Apply(1, Stand))
	require.NoError(t, g.Apply(2, Hit))
	require.NoError(t, g.Apply(2, Stand))
	require.NoError(t, g.Apply(3, Surrender))
	require.NoError(t, g.Apply(DealerID, Stand))

	ended := recorder.ofType(EventTypeRoundEnded)
	require.Len(t, ended, 1)

	results := ended[0].(RoundEndedEvent).Results
	require.Len(t, results, 3)
	assert.Equal(t, OutcomeBlackjack, results[0].Outcome)
	assert.Equal(t, OutcomePush, results[1].Outcome)
	assert.Equal(t, OutcomeSurrendered, results[2].Outcome)
}

func TestPINs(t *testing.T) {
	g := newStartedGame(t, 3, WithPINs(), WithSeed(11))

	assert.True(t, g.PINsEnabled())

	pins := make(map[int]string)
	for id := 0; id < 3; id++ {
		pin, ok := g.PIN(id)
		require.True(t, ok, "player %d has no PIN", id)
		assert.Len(t, pin, 3)
		assert.GreaterOrEqual(t, pin, "100")
		assert.LessOrEqual(t, pin, "999")
		pins[id] = pin

		assert.True(t, g.VerifyPIN(id, pin))
		assert.False(t, g.VerifyPIN(id, "000"))
	}

	// PINs are per game, not per round
	require.NoError(t, g.StartRound())
	for id, pin := range pins {
		assert.True(t, g.VerifyPIN(id, pin))
	}
}

func TestPINsDisabledByDefault(t *testing.T) {
	g := newStartedGame(t, 3, WithSeed(12))

	assert.False(t, g.PINsEnabled())
	_, ok := g.PIN(1)
	assert.False(t, ok)
	assert.False(t, g.VerifyPIN(1, "123"))
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newStartedGame(t, 2, WithSeed(13))

	snap := g.Snapshot()
	snap.Players[1].Hand[0] = deck.MustParseCards("As")[0]
	snap.Players[1].Hand[1] = deck.MustParseCards("Ks")[0]

	fresh := g.Snapshot()
	assert.NotEqual(t, snap.Players[1].Hand, fresh.Players[1].Hand, "mutating a snapshot must not touch the game")
}

func TestStartRoundPublishesEvents(t *testing.T) {
	g, err := New(3, WithSeed(14))
	require.NoError(t, err)

	recorder := &eventRecorder{}
	g.Events().Subscribe(recorder)
	require.NoError(t, g.StartRound())

	assert.Len(t, recorder.ofType(EventTypeCardDealt), 6)
	assert.Len(t, recorder.ofType(EventTypeRoundStarted), 1)
	assert.Len(t, recorder.ofType(EventTypeTurnChanged), 1)

	for _, e := range recorder.ofType(EventTypeCardDealt) {
		assert.True(t, e.(CardDealtEvent).Initial)
	}
}

func TestDeterministicGamesMatch(t *testing.T) {
	a := newStartedGame(t, 3, WithSeed(99))
	b := newStartedGame(t, 3, WithSeed(99))

	sa, sb := a.Snapshot(), b.Snapshot()
	for i := range sa.Players {
		assert.Equal(t, sa.Players[i].Hand, sb.Players[i].Hand)
	}
}
