// internal/config/config.go
//
// Runtime configuration for the solver CLI.
//
// Sources, later ones win:
//   1. Built-in defaults (6 colors, 4 positions, heuristic strategy).
//   2. Optional YAML file.
//   3. Environment variables (a .env file is loaded by main beforehand):
//        MASTERMIND_COLORS, MASTERMIND_LENGTH, MASTERMIND_STRATEGY,
//        MASTERMIND_FULL_SPACE, MASTERMIND_GAMES, MASTERMIND_WORKERS,
//        MASTERMIND_MAX_TURNS, MASTERMIND_SEED, MASTERMIND_PALETTE_FILE,
//        MASTERMIND_DAILY_SALT, LOG_LEVEL
//   4. Command line flags, applied by the CLI after Load.

package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/mastermind/internal/code"
	"github.com/robalobadob/mastermind/internal/palette"
)

const (
	StrategyHeuristic  = "heuristic"
	StrategyExhaustive = "exhaustive"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Colors      int    `yaml:"colors"`
	Length      int    `yaml:"length"`
	Strategy    string `yaml:"strategy"`
	FullSpace   bool   `yaml:"full_space"`
	Games       int    `yaml:"games"`
	Workers     int    `yaml:"workers"`
	MaxTurns    int    `yaml:"max_turns"`
	Seed        int64  `yaml:"seed"`
	PaletteFile string `yaml:"palette_file"`
	DailySalt   string `yaml:"daily_salt"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Colors:   6,
		Length:   4,
		Strategy: StrategyHeuristic,
		Games:    10,
		Workers:  runtime.NumCPU(),
		MaxTurns: 12,
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (if non-empty)
// and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"MASTERMIND_COLORS", &cfg.Colors},
		{"MASTERMIND_LENGTH", &cfg.Length},
		{"MASTERMIND_GAMES", &cfg.Games},
		{"MASTERMIND_WORKERS", &cfg.Workers},
		{"MASTERMIND_MAX_TURNS", &cfg.MaxTurns},
	}
	for _, e := range ints {
		v := getEnv(e.key, "")
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, e.key, v, err)
		}
		*e.dst = n
	}
	if v := getEnv("MASTERMIND_FULL_SPACE", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: MASTERMIND_FULL_SPACE=%q: %v", ErrInvalid, v, err)
		}
		cfg.FullSpace = b
	}
	if v := getEnv("MASTERMIND_SEED", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: MASTERMIND_SEED=%q: %v", ErrInvalid, v, err)
		}
		cfg.Seed = n
	}
	cfg.Strategy = getEnv("MASTERMIND_STRATEGY", cfg.Strategy)
	cfg.PaletteFile = getEnv("MASTERMIND_PALETTE_FILE", cfg.PaletteFile)
	cfg.DailySalt = getEnv("MASTERMIND_DAILY_SALT", cfg.DailySalt)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	return nil
}

// Validate checks ranges and enumerations. Palette-size limits are checked
// by Space, since they depend on the palette file.
func (c Config) Validate() error {
	switch {
	case c.Colors < 1 || c.Colors > code.MaxColors:
		return fmt.Errorf("%w: colors %d outside 1..%d", ErrInvalid, c.Colors, code.MaxColors)
	case c.Length < 1 || c.Length > code.MaxLength:
		return fmt.Errorf("%w: length %d outside 1..%d", ErrInvalid, c.Length, code.MaxLength)
	case c.Strategy != StrategyHeuristic && c.Strategy != StrategyExhaustive:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalid, c.Strategy)
	case c.Games < 0:
		return fmt.Errorf("%w: games %d is negative", ErrInvalid, c.Games)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalid)
	case c.MaxTurns < 0:
		return fmt.Errorf("%w: max turns %d is negative", ErrInvalid, c.MaxTurns)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	return nil
}

// Space loads the palette, keeps the first Colors entries and builds the
// code space.
func (c Config) Space() (*code.Space, error) {
	p, err := palette.Load(c.PaletteFile)
	if err != nil {
		return nil, err
	}
	if p, err = p.Prefix(c.Colors); err != nil {
		return nil, err
	}
	return code.NewSpace(p, c.Length)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
