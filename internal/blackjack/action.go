package blackjack

// Action represents a move available to the player whose turn it is.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Surrender
	Insurance
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Surrender:
		return "surrender"
	case Insurance:
		return "insurance"
	default:
		return "unknown"
	}
}

// ValidActions returns the actions the current player may take right now.
// Hit and Stand are always available. Double is only offered on the opening
// two-card hand, Surrender only before the hand has been hit or doubled, and
// Insurance only to non-dealer seats while the dealer's hole card is an Ace.
func (g *Game) ValidActions() []Action {
	p := g.players[g.current]

	actions := []Action{Hit, Stand}

	if p.id != DealerID {
		if len(p.hand) == 2 {
			actions = append(actions, Double)
		}
		if !g.isSurrendered(p.id) && len(p.hand) == 2 {
			actions = append(actions, Surrender)
		}
		if g.insuranceOpen() {
			if _, taken := g.insured[p.id]; !taken {
				actions = append(actions, Insurance)
			}
		}
	}

	return actions
}

func (g *Game) actionAvailable(a Action) bool {
	for _, v := range g.ValidActions() {
		if v == a {
			return true
		}
	}
	return false
}
