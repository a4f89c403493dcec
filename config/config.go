// Package config loads runtime settings from optional .env files and PAZAAK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	LogLevel       zerolog.Level
	Simulations    int // Rollouts per action for interactive play
	BotSimulations int // Rollouts per action inside the automated-opponent loop
	Goroutines     int
	RolloutDepth   int
	OpponentPolicy string
	ThinkingDelay  time.Duration
	PlayCap        int
	IdleTimeout    time.Duration
	Seed           uint64 // 0 seeds from the clock
}

func Default() Config {
	return Config{
		LogLevel:       zerolog.InfoLevel,
		Simulations:    750,
		BotSimulations: 150,
		Goroutines:     runtime.NumCPU(),
		RolloutDepth:   40,
		OpponentPolicy: "heuristic",
		ThinkingDelay:  750 * time.Millisecond,
		PlayCap:        10,
		IdleTimeout:    10 * time.Minute,
	}
}

// Load reads the given .env files, skipping missing ones, then overrides the
// defaults with any PAZAAK_* variables set in the environment.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := Default()
	var err error
	if v, ok := os.LookupEnv("PAZAAK_LOG_LEVEL"); ok {
		cfg.LogLevel, err = zerolog.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("PAZAAK_LOG_LEVEL: %w", err)
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"PAZAAK_SIMULATIONS", &cfg.Simulations},
		{"PAZAAK_BOT_SIMULATIONS", &cfg.BotSimulations},
		{"PAZAAK_GOROUTINES", &cfg.Goroutines},
		{"PAZAAK_ROLLOUT_DEPTH", &cfg.RolloutDepth},
		{"PAZAAK_PLAY_CAP", &cfg.PlayCap},
	}
	for _, i := range ints {
		if err := lookupInt(i.key, i.dst); err != nil {
			return Config{}, err
		}
	}
	if err := lookupDuration("PAZAAK_THINKING_DELAY", &cfg.ThinkingDelay); err != nil {
		return Config{}, err
	}
	if err := lookupDuration("PAZAAK_IDLE_TIMEOUT", &cfg.IdleTimeout); err != nil {
		return Config{}, err
	}
	if v, ok := os.LookupEnv("PAZAAK_OPPONENT_POLICY"); ok {
		if v != "heuristic" && v != "random" {
			return Config{}, fmt.Errorf("PAZAAK_OPPONENT_POLICY: unknown policy %q", v)
		}
		cfg.OpponentPolicy = v
	}
	if v, ok := os.LookupEnv("PAZAAK_SEED"); ok {
		cfg.Seed, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("PAZAAK_SEED: %w", err)
		}
	}
	return cfg, nil
}

func lookupInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	*dst = n
	return nil
}

func lookupDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// SetupLogger configures the global zerolog logger.
func SetupLogger(level zerolog.Level, pretty bool) {
	zerolog.SetGlobalLevel(level)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
