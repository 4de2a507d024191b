package tui

import (
	"strings"

	"github.com/lox/tablejack/internal/deck"
)

// formatCard renders a single card with suit-appropriate styling
func (m *Model) formatCard(c deck.Card) string {
	if c.IsRed() {
		return m.styles.RedCard.Render(c.String())
	}
	return m.styles.BlackCard.Render(c.String())
}

// formatHand renders a full hand, e.g. "A♠ K♥"
func (m *Model) formatHand(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = m.formatCard(c)
	}
	return strings.Join(parts, " ")
}

// hiddenCard renders a face-down card
func (m *Model) hiddenCard() string {
	return m.styles.Hidden.Render("▒▒")
}

// formatDealerHand renders the dealer's hand as seen by the table: the up
// card visible, everything else face down until the dealer is acting.
func (m *Model) formatDealerHand(cards []deck.Card, revealed bool) string {
	if revealed {
		return m.formatHand(cards)
	}

	parts := make([]string, len(cards))
	for i, c := range cards {
		if i == 0 {
			parts[i] = m.formatCard(c)
		} else {
			parts[i] = m.hiddenCard()
		}
	}
	return strings.Join(parts, " ")
}
