package blackjack

import "github.com/lox/tablejack/internal/deck"

// CardValue returns the blackjack value of a single card. Face cards count
// 10 and an Ace counts 11 until Score downgrades it.
func CardValue(c deck.Card) int {
	switch {
	case c.IsFaceCard():
		return 10
	case c.IsAce():
		return 11
	default:
		return int(c.Rank)
	}
}

// Score computes the blackjack score of a hand. Each Ace counts 11, then
// while the total exceeds 21 one soft Ace at a time is downgraded to 1.
// The result is the lowest total reachable this way; anything above 21 is a
// bust with no soft Aces left.
//
// Score is always derived from the full hand; callers must never patch a
// previous score when a card is added, since the downgrade decision for
// earlier Aces can change.
func Score(cards []deck.Card) int {
	score := 0
	aces := 0

	for _, c := range cards {
		score += CardValue(c)
		if c.IsAce() {
			aces++
		}
	}

	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

// IsBust returns true if the hand's score exceeds 21
func IsBust(cards []deck.Card) bool {
	return Score(cards) > 21
}

// IsBlackjack returns true for a natural: exactly two cards scoring 21.
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && Score(cards) == 21
}
