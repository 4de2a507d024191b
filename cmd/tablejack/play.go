package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/tablejack/cmd/tablejack/shared"
	"github.com/lox/tablejack/internal/blackjack"
	"github.com/lox/tablejack/internal/config"
	"github.com/lox/tablejack/internal/tui"
)

type PlayCmd struct {
	Players int    `short:"p" help:"Number of seats including the dealer (asked interactively when omitted)"`
	Config  string `short:"c" default:"tablejack.hcl" help:"Path to config file"`
	Seed    int64  `help:"Seed the shuffle for a reproducible session"`
	NoPins  bool   `help:"Skip PIN gating when the device changes hands"`
	NoColor bool   `help:"Disable color output"`
	Debug   bool   `help:"Write debug logs to tablejack.log"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.NoPins {
		cfg.Game.NoPins = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	logger := shared.SetupLogger(io.Discard, false)
	if c.Debug {
		fileLogger, debugFile, err := shared.SetupFileLogger("tablejack.log", true)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer debugFile.Close()
		logger = fileLogger
	}

	newGame := func(players int) (*blackjack.Game, error) {
		opts := []blackjack.Option{
			blackjack.WithLogger(logger),
			blackjack.WithBetLimits(cfg.Game.MinBet, cfg.Game.MaxBet, cfg.Game.DefaultBet),
			blackjack.WithMaxPlayers(cfg.Game.MaxPlayers),
		}
		if cfg.PINsEnabled() {
			opts = append(opts, blackjack.WithPINs())
		}
		if c.Seed != 0 {
			opts = append(opts, blackjack.WithSeed(c.Seed))
		}
		return blackjack.New(players, opts...)
	}

	model := tui.New(tui.Config{
		Players:        c.Players,
		NewGame:        newGame,
		Theme:          cfg.UI.Theme,
		ConcealTimeout: time.Duration(cfg.UI.ConcealTimeout) * time.Second,
		Logger:         logger,
		Clock:          quartz.NewReal(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetSend(program.Send)

	ctx, cancel := context.WithCancel(shared.SetupSignalHandler(logger))
	defer cancel()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		program.Quit()
		return nil
	})

	return g.Wait()
}
