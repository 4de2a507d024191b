package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/tablejack/internal/blackjack"
)

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case screenSetup:
		body = m.viewSetup()
	case screenPinReveal:
		body = m.viewPinReveal()
	case screenHandoff:
		body = m.viewHandoff()
	case screenPinGate:
		body = m.viewPinGate()
	case screenTable:
		body = m.viewTable()
	case screenSummary:
		body = m.viewSummary()
	}

	sections := []string{m.viewHeader(), body}

	if m.errMsg != "" {
		// a rejected PIN is a retry prompt, not a failure
		style := m.styles.Error
		if m.screen == screenPinGate {
			style = m.styles.Warning
		}
		sections = append(sections, style.Render(m.errMsg))
	}

	if len(m.gameLog) > 0 && m.screen != screenSetup {
		sections = append(sections, m.viewLog())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) viewHeader() string {
	title := " ♠ ♥ Blackjack ♦ ♣ "
	if m.game != nil {
		title = fmt.Sprintf(" ♠ ♥ Blackjack · round %d ♦ ♣ ", m.snap.Round)
	}
	return m.styles.Header.Render(title)
}

func (m *Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("New table"))
	b.WriteString("\n\n")
	b.WriteString("Number of players, dealer included:\n")
	b.WriteString(m.setupInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Info.Render("Enter to start • q to quit"))
	return b.String()
}

func (m *Model) viewPinReveal() string {
	name := m.playerName(m.pinStage)

	var b strings.Builder
	if !m.pinRevealed {
		b.WriteString(m.styles.Title.Render(fmt.Sprintf("Give the device to %s", name)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Info.Render("Press enter when only they can see the screen"))
	} else {
		pin, _ := m.game.PIN(m.pinStage)
		b.WriteString(m.styles.Title.Render(fmt.Sprintf("%s, your PIN is", name)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Header.Render(" " + pin + " "))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Info.Render("Memorize it, then press enter to conceal"))
	}
	return m.styles.Pane.Render(b.String())
}

func (m *Model) viewHandoff() string {
	name := m.playerName(m.snap.CurrentPlayer)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Give the device to %s", name)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Info.Render("Press enter when they have it"))
	return m.styles.Pane.Render(b.String())
}

func (m *Model) viewPinGate() string {
	name := m.playerName(m.snap.CurrentPlayer)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Enter PIN for %s", name)))
	b.WriteString("\n\n")
	b.WriteString(m.pinInput.View())
	return m.styles.Pane.Render(b.String())
}

func (m *Model) viewTable() string {
	current := m.snap.Current()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("%s's turn", current.Name)))
	b.WriteString("\n\n")

	// dealer row, concealed unless the dealer is acting
	dealer, _ := m.snap.Player(blackjack.DealerID)
	b.WriteString(m.styles.Seat.Render("Dealer: "))
	b.WriteString(m.formatDealerHand(dealer.Hand, current.Dealer))
	if current.Dealer {
		b.WriteString(m.styles.HandInfo.Render(fmt.Sprintf("  score %d", dealer.Score)))
	}
	b.WriteString("\n\n")

	if !current.Dealer {
		b.WriteString(m.styles.Seat.Render("Your hand: "))
		b.WriteString(m.formatHand(current.Hand))
		b.WriteString(m.styles.HandInfo.Render(fmt.Sprintf("  score %d", current.Score)))
		b.WriteString("\n")
		b.WriteString(m.styles.Seat.Render(fmt.Sprintf("Your bet: %d", current.Bet)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewSeats())
	b.WriteString("\n")
	b.WriteString(m.viewActions())

	return m.styles.Pane.Render(b.String())
}

// viewSeats lists the other seats with their hands face down
func (m *Model) viewSeats() string {
	var b strings.Builder
	b.WriteString(m.styles.Info.Render("At the table:"))
	b.WriteString("\n")

	for _, p := range m.snap.Players {
		if p.Dealer || p.ID == m.snap.CurrentPlayer {
			continue
		}

		line := fmt.Sprintf("  %s: %d cards, bet %d", p.Name, len(p.Hand), p.Bet)
		if p.Surrendered {
			line += " (surrendered)"
		}
		b.WriteString(m.styles.Seat.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) viewActions() string {
	labels := map[blackjack.Action]string{
		blackjack.Hit:       "[h]it",
		blackjack.Stand:     "[s]tand",
		blackjack.Double:    "[d]ouble",
		blackjack.Surrender: "sur[r]ender",
		blackjack.Insurance: "[i]nsurance",
	}

	var actions []string
	for _, a := range m.game.ValidActions() {
		actions = append(actions, labels[a])
	}

	help := m.styles.Actions.Render("Actions: " + strings.Join(actions, " "))
	if !m.snap.Current().Dealer {
		help += "\n" + m.styles.Info.Render("+/- adjust bet • q to quit")
	} else {
		help += "\n" + m.styles.Info.Render("q to quit")
	}
	return help
}

func (m *Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Round %d over", m.endedRound)))
	b.WriteString("\n\n")

	for _, r := range m.lastResults {
		line := fmt.Sprintf("%s: %s (%d vs dealer %d)", r.Name, r.Outcome, r.Score, r.DealerScore)
		switch r.Outcome {
		case blackjack.OutcomeWin, blackjack.OutcomeBlackjack:
			b.WriteString(m.styles.Success.Render(line))
		case blackjack.OutcomeLose:
			b.WriteString(m.styles.Error.Render(line))
		default:
			b.WriteString(m.styles.Seat.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Info.Render("Enter to deal the next round"))
	return m.styles.Pane.Render(b.String())
}

func (m *Model) viewLog() string {
	start := 0
	if len(m.gameLog) > 5 {
		start = len(m.gameLog) - 5
	}
	return m.styles.Info.Render(strings.Join(m.gameLog[start:], "\n"))
}
