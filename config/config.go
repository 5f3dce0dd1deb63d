// Package config reads runtime settings from the environment, optionally
// seeded from .env files in the working directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the settings the program starts with.
type Config struct {
	Seed             bool
	CatalogPath      string
	LogLevel         slog.Level
	GuardBookRemoval bool
	LoanDays         int
}

// Default is the configuration used when nothing is set.
func Default() Config {
	return Config{
		Seed:     true,
		LogLevel: slog.LevelWarn,
		LoanDays: 14,
	}
}

// LoadEnvFiles loads .env and .env.local. Variables already present in the
// environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load applies LIBRARY_* variables on top of Default.
func Load() (Config, error) {
	LoadEnvFiles()
	cfg := Default()

	var err error
	if cfg.Seed, err = envBool("LIBRARY_SEED", cfg.Seed); err != nil {
		return cfg, err
	}
	if cfg.GuardBookRemoval, err = envBool("LIBRARY_GUARD_BOOK_REMOVAL", cfg.GuardBookRemoval); err != nil {
		return cfg, err
	}
	if v := os.Getenv("LIBRARY_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("LIBRARY_LOG_LEVEL"); v != "" {
		if cfg.LogLevel, err = ParseLevel(v); err != nil {
			return cfg, err
		}
	}
	if v := os.Getenv("LIBRARY_LOAN_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("LIBRARY_LOAN_DAYS: want a positive integer, got %q", v)
		}
		cfg.LoanDays = n
	}
	return cfg, nil
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
