// Package config loads the service configuration from YAML over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig holds the rules of the game and the solver limits.
type GameConfig struct {
	Target                float64 `yaml:"target"`
	NumCount              int     `yaml:"num_count" validate:"min=1,max=6"`
	MinDigit              int     `yaml:"min_digit" validate:"min=0"`
	MaxDigit              int     `yaml:"max_digit" validate:"gtefield=MinDigit"`
	MaxGenerationAttempts int     `yaml:"max_generation_attempts" validate:"min=1"`
	MaxAttemptsPerRound   int     `yaml:"max_attempts_per_round" validate:"min=1"`
	// SearchTolerance and ValidateTolerance differ on purpose; see DESIGN.md.
	SearchTolerance   float64 `yaml:"search_tolerance" validate:"gt=0"`
	ValidateTolerance float64 `yaml:"validate_tolerance" validate:"gt=0"`
	// MaxSearchNodes bounds one search; 0 is unbounded.
	MaxSearchNodes int `yaml:"max_search_nodes" validate:"min=0"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr              string        `yaml:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	// RateLimit is requests per second across the API; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" validate:"min=0"`
	RateBurst int     `yaml:"rate_burst" validate:"min=0"`
}

// StorageConfig selects the round store.
type StorageConfig struct {
	Backend string      `yaml:"backend" validate:"oneof=fs redis badger"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig is used when Backend is "redis".
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"min=0"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the configuration of the classic game.
func Default() Config {
	return Config{
		Game: GameConfig{
			Target:                24,
			NumCount:              4,
			MinDigit:              1,
			MaxDigit:              9,
			MaxGenerationAttempts: 100,
			MaxAttemptsPerRound:   6,
			SearchTolerance:       1e-10,
			ValidateTolerance:     1e-9,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			RateLimit:         20,
			RateBurst:         40,
		},
		Storage: StorageConfig{
			Backend: "fs",
			Path:    "./data",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "make24:round:",
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q", f.Namespace(), f.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
