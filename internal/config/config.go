// Package config loads server settings from flags, falling back to CHESS_*
// environment variables and then to built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidConfig indicates invalid configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Addr           string
	AllowedOrigins []string
	SessionTTL     time.Duration
	SweepInterval  time.Duration
	LogLevel       string
	Development    bool
}

func Default() Config {
	return Config{
		Addr:           ":3000",
		AllowedOrigins: []string{"http://localhost:5173"},
		SessionTTL:     2 * time.Hour,
		SweepInterval:  time.Minute,
		LogLevel:       "info",
		Development:    false,
	}
}

// Load parses args (without the program name) on top of the environment.
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("chess-server", flag.ContinueOnError)
	origins := strings.Join(cfg.AllowedOrigins, ",")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&origins, "origins", origins, "comma-separated CORS and websocket origins")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "idle time before a game is discarded")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "how often idle games are swept")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&cfg.Development, "dev", cfg.Development, "human-readable development logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.AllowedOrigins = splitList(origins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("CHESS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("CHESS_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := getenv("CHESS_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: CHESS_SESSION_TTL: %v", ErrInvalidConfig, err)
		}
		cfg.SessionTTL = d
	}
	if v := getenv("CHESS_SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: CHESS_SWEEP_INTERVAL: %v", ErrInvalidConfig, err)
		}
		cfg.SweepInterval = d
	}
	if v := getenv("CHESS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("CHESS_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: CHESS_DEV: %v", ErrInvalidConfig, err)
		}
		cfg.Development = dev
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive, got %v", ErrInvalidConfig, c.SessionTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("%w: sweep interval must be positive, got %v", ErrInvalidConfig, c.SweepInterval)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
