package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

type Config struct {
	HTTPAddr         string
	LogLevel         slog.Level
	Rules            domain.Rules
	DefaultArchetype domain.Archetype
	SpinTempo        float64
	MaxDuels         int
	CataloguePath    string
	ShutdownTimeout  time.Duration
}

// Load reads configuration from the environment. Unset keys keep their
// defaults.
func Load() (Config, error) {
	c := Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":8080"),
		Rules:           domain.DefaultRules(),
		SpinTempo:       1,
		MaxDuels:        1000,
		CataloguePath:   os.Getenv("CATALOGUE_PATH"),
		ShutdownTimeout: 10 * time.Second,
	}
	c.Rules.PlayerName = envOr("PLAYER_NAME", c.Rules.PlayerName)

	ints := []struct {
		key   string
		dst   *int
		least int
	}{
		{"HAND_SIZE", &c.Rules.HandSize, 1},
		{"PLAYER_MAX_HP", &c.Rules.PlayerMaxHP, 1},
		{"ENEMY_MAX_HP", &c.Rules.EnemyMaxHP, 1},
		{"LOG_LIMIT", &c.Rules.LogLimit, 1},
		{"MAX_DUELS", &c.MaxDuels, 0},
	}
	for _, f := range ints {
		if err := overrideInt(f.key, f.dst, f.least); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("SPIN_TEMPO"); v != "" {
		tempo, err := strconv.ParseFloat(v, 64)
		if err != nil || tempo <= 0 {
			return Config{}, fmt.Errorf("invalid SPIN_TEMPO %q: must be a positive number", v)
		}
		c.SpinTempo = tempo
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		c.ShutdownTimeout = d
	}

	arch, err := domain.ParseArchetype(envOr("DEFAULT_ARCHETYPE", string(domain.Bandit)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DEFAULT_ARCHETYPE: %w", err)
	}
	c.DefaultArchetype = arch

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func overrideInt(key string, dst *int, least int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if n < least {
		return fmt.Errorf("invalid %s %d: must be at least %d", key, n, least)
	}
	*dst = n
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
