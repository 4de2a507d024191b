package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete table configuration
type Config struct {
	Game GameConfig `hcl:"game,block"`
	UI   UIConfig   `hcl:"ui,block"`
}

// GameConfig contains table rules
type GameConfig struct {
	MinBet     int  `hcl:"min_bet,optional"`
	MaxBet     int  `hcl:"max_bet,optional"`
	DefaultBet int  `hcl:"default_bet,optional"`
	MaxPlayers int  `hcl:"max_players,optional"`
	NoPins     bool `hcl:"no_pins,optional"`
}

// UIConfig contains presentation settings
type UIConfig struct {
	Theme string `hcl:"theme,optional"`
	// ConcealTimeout is how many seconds a revealed hand may sit idle
	// before the screen drops back to the PIN gate. 0 disables the timer.
	ConcealTimeout int `hcl:"conceal_timeout,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameConfig{
			MinBet:     20,
			MaxBet:     100,
			DefaultBet: 20,
		},
		UI: UIConfig{
			Theme:          "default",
			ConcealTimeout: 30,
		},
	}
}

// Load loads configuration from an HCL file. A missing file is not an
// error; defaults are returned.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()

	if config.Game.MinBet == 0 {
		config.Game.MinBet = defaults.Game.MinBet
	}
	if config.Game.MaxBet == 0 {
		config.Game.MaxBet = defaults.Game.MaxBet
	}
	if config.Game.DefaultBet == 0 {
		config.Game.DefaultBet = defaults.Game.DefaultBet
	}
	if config.UI.Theme == "" {
		config.UI.Theme = defaults.UI.Theme
	}
	if config.UI.ConcealTimeout == 0 {
		config.UI.ConcealTimeout = defaults.UI.ConcealTimeout
	}

	return &config, nil
}

// PINsEnabled reports whether turns are gated behind device-passing PINs
func (c *Config) PINsEnabled() bool {
	return !c.Game.NoPins
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.MinBet <= 0 {
		return fmt.Errorf("min_bet must be positive")
	}

	if c.Game.MaxBet < c.Game.MinBet {
		return fmt.Errorf("max_bet must be at least min_bet")
	}

	if c.Game.DefaultBet < c.Game.MinBet || c.Game.DefaultBet > c.Game.MaxBet {
		return fmt.Errorf("default_bet must be within min_bet and max_bet")
	}

	if c.Game.MaxPlayers < 0 {
		return fmt.Errorf("max_players cannot be negative")
	}

	if c.UI.ConcealTimeout < 0 {
		return fmt.Errorf("conceal_timeout cannot be negative")
	}

	validThemes := map[string]bool{
		"default": true,
		"dark":    true,
		"light":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	return nil
}
