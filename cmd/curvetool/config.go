package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tdewolff/curve"
)

// Config holds the kernel options, read from a TOML file with the tables [intersect], [offset] and [fillet].
type Config struct {
	LogLevel  string                 `toml:"log_level"`
	Intersect curve.IntersectOptions `toml:"intersect"`
	Offset    curve.OffsetOptions    `toml:"offset"`
	Fillet    curve.FilletOptions    `toml:"fillet"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "warn",
		Intersect: curve.DefaultIntersectOptions(),
		Offset:    curve.DefaultOffsetOptions(0.0),
		Fillet:    curve.DefaultFilletOptions(0.0),
	}
}

// LoadConfig returns the default configuration overridden by the file at filename, if not empty.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	if filename == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(filename, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if undecoded := meta.Undecoded(); 0 < len(undecoded) {
		return cfg, fmt.Errorf("config: unknown keys %v", undecoded)
	}
	return cfg, nil
}

// setupLogger installs a text logger on stderr for the kernel, verbose overrides the configured level.
func setupLogger(cfg Config, verbose bool) error {
	level := slog.LevelWarn
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "":
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("config: unknown log level %q", cfg.LogLevel)
	}
	if verbose {
		level = slog.LevelDebug
	}
	curve.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
