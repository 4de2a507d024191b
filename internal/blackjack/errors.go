package blackjack

import "errors"

var (
	// ErrWrongTurn is returned when an action arrives for a player other
	// than the one whose turn it is.
	ErrWrongTurn = errors.New("not this player's turn")

	// ErrUnknownPlayer is returned for a player id outside the table.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrDeckExhausted is returned when a hit cannot be served because the
	// round's deck is out of cards. The acting player's state is unchanged.
	ErrDeckExhausted = errors.New("no cards left in the deck")

	// ErrBetOutOfRange is returned when a bet adjustment falls outside the
	// table's limits. The stored bet is unchanged.
	ErrBetOutOfRange = errors.New("bet outside table limits")

	// ErrDealerCannotBet is returned when a bet adjustment targets the dealer.
	ErrDealerCannotBet = errors.New("the dealer does not bet")

	// ErrInsuranceUnavailable is returned when insurance is taken while the
	// dealer is not showing an Ace, or a second time by the same player.
	ErrInsuranceUnavailable = errors.New("insurance requires the dealer to show an ace")

	// ErrInvalidAction is returned for an action the current player cannot
	// take, such as doubling on a three-card hand.
	ErrInvalidAction = errors.New("action not available")

	// ErrPlayerCount is returned by New for a table size outside the
	// configured range.
	ErrPlayerCount = errors.New("player count out of range")
)
