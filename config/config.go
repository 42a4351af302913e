// Package config loads the settings shared by the bot and the stress runner.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/plus3/stacker/bot"
	"github.com/rs/zerolog"
)

var cfgFile = "stacker/config.json"

// Environment variables that override file settings.
const (
	EnvSeed          = "STACKER_SEED"
	EnvLogLevel      = "STACKER_LOG_LEVEL"
	EnvMaxCandidates = "STACKER_MAX_CANDIDATES"
	EnvWorkers       = "STACKER_WORKERS"
)

// InvalidConfigError reports a setting that failed validation.
type InvalidConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Duration is a time.Duration that reads and writes as a string like "30s".
type Duration time.Duration

// MarshalJSON writes d as a duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON parses a duration string such as "1m30s".
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config holds the bot and stress runner settings.
type Config struct {
	Weights       bot.Weights `json:"weights"`
	MaxCandidates int         `json:"max_candidates"`
	AvoidTopOut   bool        `json:"avoid_top_out"`
	Seed          uint64      `json:"seed"`
	LogLevel      string      `json:"log_level"`

	// Stress runner settings.
	Games     int      `json:"games"`
	Workers   int      `json:"workers"`
	MaxPieces int      `json:"max_pieces"`
	Duration  Duration `json:"duration"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Weights:       bot.DefaultWeights(),
		MaxCandidates: bot.DefaultMaxCandidates,
		Seed:          1,
		LogLevel:      zerolog.InfoLevel.String(),
		Games:         8,
		Workers:       runtime.NumCPU(),
		MaxPieces:     1000,
		Duration:      Duration(30 * time.Second),
	}
}

// Load builds a Config from the defaults, the user's config file if one
// exists, and finally the environment. A .env file in the working directory
// is read into the environment first.
func Load() (*Config, error) {
	cfg := Default()
	if path, err := xdg.SearchConfigFile(cfgFile); err == nil {
		if err := readFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	return finish(cfg)
}

// LoadFile is like Load but reads the given file instead of searching for
// one. A missing file is an error. The environment, including .env, still
// overrides the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := readFile(path, &cfg); err != nil {
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg Config) (*Config, error) {
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvMaxCandidates); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxCandidates, err)
		}
		c.MaxCandidates = n
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks every setting and returns an *InvalidConfigError for the
// first one that is out of range.
func (c *Config) Validate() error {
	switch {
	case c.MaxCandidates < 1:
		return &InvalidConfigError{"max_candidates", "must be at least 1"}
	case c.Games < 1:
		return &InvalidConfigError{"games", "must be at least 1"}
	case c.Workers < 1:
		return &InvalidConfigError{"workers", "must be at least 1"}
	case c.MaxPieces < 0:
		return &InvalidConfigError{"max_pieces", "must not be negative"}
	case c.Duration < 0:
		return &InvalidConfigError{"duration", "must not be negative"}
	}
	if _, err := c.Level(); err != nil {
		return &InvalidConfigError{"log_level", err.Error()}
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.LogLevel)
}

// BotOptions returns the options that configure a bot.Bot from c.
func (c *Config) BotOptions(logger zerolog.Logger) []bot.Option {
	opts := []bot.Option{
		bot.WithWeights(c.Weights),
		bot.WithMaxCandidates(c.MaxCandidates),
		bot.WithLogger(logger),
	}
	if c.AvoidTopOut {
		opts = append(opts, bot.WithAvoidTopOut())
	}
	return opts
}

// Save writes c to the user's config file, creating directories as needed,
// and returns the path written.
func (c *Config) Save() (string, error) {
	path, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", fmt.Errorf("locating config file: %w", err)
	}
	if err := writeFile(path, c, 0o664); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, c *Config, perm fs.FileMode) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// IsInvalid reports whether err is or wraps an *InvalidConfigError.
func IsInvalid(err error) bool {
	var invalid *InvalidConfigError
	return errors.As(err, &invalid)
}
