package blackjack

import (
	"fmt"
	rand "math/rand/v2"
)

// PINs gate hand visibility when the device is passed between seats. They
// are a social deterrent against peeking, not an authentication mechanism:
// three digits, generated once per player per game, never rotated.

// generatePIN returns a 3-digit device-passing code in [100, 999].
func generatePIN(rng *rand.Rand) string {
	return fmt.Sprintf("%d", 100+rng.IntN(900))
}

// VerifyPIN reports whether pin matches the code assigned to playerID.
// A mismatch is retryable; there is no lockout or backoff.
func (g *Game) VerifyPIN(playerID int, pin string) bool {
	want, ok := g.pins[playerID]
	return ok && want == pin
}

// PIN returns the device-passing code for the given player, for the one-time
// reveal at game start. The second return is false for unknown players or
// when PINs are disabled.
func (g *Game) PIN(playerID int) (string, bool) {
	pin, ok := g.pins[playerID]
	return pin, ok
}

// PINsEnabled reports whether this game gates turns behind PIN entry.
func (g *Game) PINsEnabled() bool {
	return len(g.pins) > 0
}
