// Package tui is the presentation layer for a pass-and-play blackjack table:
// a bubbletea program driving one shared terminal. It renders exclusively
// from game snapshots and pushes every player input through the game's
// action API.
//
// Hand privacy is social, not cryptographic: hands other than the acting
// player's render face down, turn changes go through a "pass the device"
// screen, and with PINs enabled a hand is only revealed after that player's
// 3-digit code is entered. An idle revealed hand is re-concealed after a
// configurable timeout.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/tablejack/internal/blackjack"
)

// betStep is how much the +/- keys move the current bet
const betStep = 10

type screen int

const (
	screenSetup screen = iota
	screenPinReveal
	screenHandoff
	screenPinGate
	screenTable
	screenSummary
)

// concealMsg re-conceals an idle revealed hand. The generation guards
// against timers scheduled for an earlier reveal.
type concealMsg struct {
	gen int
}

// Config configures the TUI
type Config struct {
	// Players pre-selects the table size and skips the setup screen when
	// non-zero.
	Players int

	// NewGame builds the game once the table size is known
	NewGame func(players int) (*blackjack.Game, error)

	Theme          string
	ConcealTimeout time.Duration
	Logger         *log.Logger
	Clock          quartz.Clock
}

// Model is the bubbletea model for the table
type Model struct {
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
	styles Styles

	game *blackjack.Game
	snap blackjack.Snapshot

	screen      screen
	setupInput  textinput.Model
	pinInput    textinput.Model
	pinStage    int // player id in the one-time PIN reveal sequence
	pinRevealed bool

	gameLog     []string
	lastResults []blackjack.Result
	endedRound  int
	errMsg      string

	concealGen   int
	concealTimer *quartz.Timer
	send         func(tea.Msg)

	width    int
	height   int
	quitting bool
}

// New creates a new TUI model
func New(cfg Config) *Model {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}

	setup := textinput.New()
	setup.Placeholder = "number of players including the dealer"
	setup.CharLimit = 2
	setup.Width = 40
	setup.Focus()

	pin := textinput.New()
	pin.Placeholder = "PIN"
	pin.CharLimit = 3
	pin.Width = 10
	pin.EchoMode = textinput.EchoPassword
	pin.EchoCharacter = '•'

	return &Model{
		cfg:        cfg,
		logger:     cfg.Logger.WithPrefix("tui"),
		clock:      cfg.Clock,
		styles:     NewStyles(cfg.Theme),
		screen:     screenSetup,
		setupInput: setup,
		pinInput:   pin,
		send:       func(tea.Msg) {},
	}
}

// SetSend wires the function used to deliver asynchronous messages, normally
// tea.Program.Send. Must be called before the program runs.
func (m *Model) SetSend(send func(tea.Msg)) {
	m.send = send
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	if m.cfg.Players > 0 {
		if err := m.startGame(m.cfg.Players); err != nil {
			m.errMsg = err.Error()
		}
	}
	return textinput.Blink
}

// OnEvent receives game events and turns them into log lines. Card
// identities never reach the shared log; hands stay private until shown on
// that player's own screen.
func (m *Model) OnEvent(event blackjack.GameEvent) {
	switch e := event.(type) {
	case blackjack.RoundStartedEvent:
		m.appendLog(fmt.Sprintf("Round %d: %d seats dealt", e.Round, e.Players))
	case blackjack.PlayerActionEvent:
		line := fmt.Sprintf("%s %ss", m.playerName(e.PlayerID), e.Action)
		if e.Busted {
			line += " and busts"
		}
		m.appendLog(line)
	case blackjack.BetAdjustedEvent:
		m.appendLog(fmt.Sprintf("%s bets %d", m.playerName(e.PlayerID), e.Amount))
	case blackjack.RoundEndedEvent:
		m.lastResults = e.Results
		m.endedRound = e.Round
		for _, r := range e.Results {
			m.appendLog(fmt.Sprintf("%s: %s (%d vs dealer %d)", r.Name, r.Outcome, r.Score, r.DealerScore))
		}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case concealMsg:
		// Stale timers from an earlier reveal are ignored
		if msg.gen == m.concealGen && m.screen == screenTable {
			m.logger.Debug("concealing idle hand", "player", m.snap.CurrentPlayer)
			m.toHandoff()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			m.stopConcealTimer()
			return m, tea.Quit
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenSetup:
		return m.updateSetup(msg)
	case screenPinReveal:
		return m.updatePinReveal(msg)
	case screenHandoff:
		return m.updateHandoff(msg)
	case screenPinGate:
		return m.updatePinGate(msg)
	case screenTable:
		return m.updateTable(msg)
	case screenSummary:
		return m.updateSummary(msg)
	}
	return m, nil
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		n, err := strconv.Atoi(strings.TrimSpace(m.setupInput.Value()))
		if err != nil {
			m.errMsg = "enter a number of players"
			return m, nil
		}
		if err := m.startGame(n); err != nil {
			m.errMsg = err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.setupInput, cmd = m.setupInput.Update(msg)
	return m, cmd
}

func (m *Model) updatePinReveal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		return m, nil
	}

	if !m.pinRevealed {
		m.pinRevealed = true
		return m, nil
	}

	m.pinRevealed = false
	m.pinStage++
	if m.pinStage >= m.game.NumPlayers() {
		m.appendLog("Game starts!")
		m.toHandoff()
	}
	return m, nil
}

func (m *Model) updateHandoff(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		return m, nil
	}

	if m.game.PINsEnabled() {
		m.pinInput.SetValue("")
		m.pinInput.Focus()
		m.errMsg = ""
		m.screen = screenPinGate
		return m, textinput.Blink
	}

	m.reveal()
	return m, nil
}

func (m *Model) updatePinGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.pinInput, cmd = m.pinInput.Update(msg)

	if len(m.pinInput.Value()) == 3 {
		if m.game.VerifyPIN(m.snap.CurrentPlayer, m.pinInput.Value()) {
			m.errMsg = ""
			m.reveal()
		} else {
			m.errMsg = "Incorrect PIN. Try again."
			m.pinInput.SetValue("")
		}
	}

	return m, cmd
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.resetConcealTimer()

	switch msg.String() {
	case "q":
		m.quitting = true
		m.stopConcealTimer()
		return m, tea.Quit
	case "h":
		m.applyAction(blackjack.Hit)
	case "s":
		m.applyAction(blackjack.Stand)
	case "d":
		m.applyAction(blackjack.Double)
	case "r":
		m.applyAction(blackjack.Surrender)
	case "i":
		m.applyAction(blackjack.Insurance)
	case "+", "=":
		m.adjustBet(betStep)
	case "-", "_":
		m.adjustBet(-betStep)
	}

	return m, nil
}

func (m *Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.toHandoff()
	}
	return m, nil
}

// startGame builds the game, starts the first round and enters either the
// one-time PIN reveal sequence or play itself.
func (m *Model) startGame(players int) error {
	game, err := m.cfg.NewGame(players)
	if err != nil {
		return err
	}

	game.Events().Subscribe(m)
	if err := game.StartRound(); err != nil {
		return err
	}

	m.game = game
	m.snap = game.Snapshot()
	m.errMsg = ""
	m.logger.Info("game started", "session", game.ID(), "players", players)

	if game.PINsEnabled() {
		m.pinStage = 0
		m.pinRevealed = false
		m.screen = screenPinReveal
		return nil
	}

	m.toHandoff()
	return nil
}

// applyAction routes an action to the game and moves the screen along:
// summary when the dealer just finished, handoff when the turn moved on.
func (m *Model) applyAction(action blackjack.Action) {
	player := m.snap.CurrentPlayer
	if err := m.game.Apply(player, action); err != nil {
		m.errMsg = err.Error()
		return
	}

	m.snap = m.game.Snapshot()

	if m.lastResults != nil {
		m.stopConcealTimer()
		m.screen = screenSummary
		return
	}

	if m.snap.CurrentPlayer != player {
		m.toHandoff()
	}
}

func (m *Model) adjustBet(delta int) {
	current := m.snap.Current()
	if current.Dealer {
		return
	}

	if err := m.game.AdjustBet(current.ID, current.Bet+delta); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.snap = m.game.Snapshot()
}

// toHandoff conceals everything and prompts for the device to be passed to
// the seat whose turn it is.
func (m *Model) toHandoff() {
	m.stopConcealTimer()
	m.snap = m.game.Snapshot()
	m.lastResults = nil
	m.screen = screenHandoff
}

// reveal shows the current player's hand and arms the idle conceal timer
func (m *Model) reveal() {
	m.snap = m.game.Snapshot()
	m.screen = screenTable
	m.resetConcealTimer()
}

func (m *Model) resetConcealTimer() {
	m.stopConcealTimer()

	if m.cfg.ConcealTimeout <= 0 || !m.game.PINsEnabled() {
		return
	}

	m.concealGen++
	gen := m.concealGen
	m.concealTimer = m.clock.AfterFunc(m.cfg.ConcealTimeout, func() {
		m.send(concealMsg{gen: gen})
	})
}

func (m *Model) stopConcealTimer() {
	if m.concealTimer != nil {
		m.concealTimer.Stop()
		m.concealTimer = nil
	}
}

func (m *Model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	// keep the tail; the log pane is small and rounds are chatty
	if len(m.gameLog) > 50 {
		m.gameLog = m.gameLog[len(m.gameLog)-50:]
	}
}

func (m *Model) playerName(id int) string {
	if p, ok := m.snap.Player(id); ok {
		return p.Name
	}
	return fmt.Sprintf("Player %d", id)
}
