// Package config reads process configuration from the environment and an
// optional .env file. Command-line flags override these values in cmd.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/dice-duel/fight"
)

// Config is the resolved process configuration
type Config struct {
	// AssetDir points at an asset tree on disk; empty uses the embedded catalog
	AssetDir    string `env:"DICE_DUEL_ASSET_DIR"`
	OptionsFile string `env:"DICE_DUEL_OPTIONS_FILE" envDefault:"dice-duel.toml"`

	Debug bool `env:"DICE_DUEL_DEBUG"`
	Audio bool `env:"DICE_DUEL_AUDIO" envDefault:"true"`

	Player1 string `env:"DICE_DUEL_P1" envDefault:"knight"`
	Player2 string `env:"DICE_DUEL_P2" envDefault:"rogue"`
	Stage   string `env:"DICE_DUEL_STAGE" envDefault:"dojo"`

	// StallTimeout bounds each awaited step of a round, 0 disables it
	StallTimeout  time.Duration `env:"DICE_DUEL_STALL_TIMEOUT" envDefault:"0s"`
	DeathRule     string        `env:"DICE_DUEL_DEATH_RULE" envDefault:"at-or-below-zero"`
	Seed          uint64        `env:"DICE_DUEL_SEED"`
	FrameInterval time.Duration `env:"DICE_DUEL_FRAME_INTERVAL" envDefault:"33ms"`
}

// Load reads envFile when present, then parses DICE_DUEL_* variables
// Variables already set in the environment win over the file
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express
func (c Config) Validate() error {
	if _, ok := fight.ParseDeathRule(c.DeathRule); !ok {
		return fmt.Errorf("death rule %q: want at-or-below-zero or exact-zero", c.DeathRule)
	}
	if c.StallTimeout < 0 {
		return fmt.Errorf("stall timeout %s is negative", c.StallTimeout)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame interval %s must be positive", c.FrameInterval)
	}
	if c.Player1 == "" || c.Player2 == "" {
		return errors.New("both player characters must be set")
	}
	return nil
}

// Rule returns the parsed death rule; call after Validate
func (c Config) Rule() fight.DeathRule {
	r, _ := fight.ParseDeathRule(c.DeathRule)
	return r
}
