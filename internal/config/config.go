// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/slidefx/internal/edge"
)

// Default configuration values.
const (
	DefaultDuration        = 200 * time.Millisecond
	DefaultAnimationFactor = 1.0
	MaxDuration            = 10 * time.Second
	MaxAnimationFactor     = 20.0
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "200ms", "0.5s", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '200ms', '0.5s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the configuration for the sliding notifications effect.
// Loaded from ~/.config/slidefx/slidefx.toml
type Config struct {
	Animation AnimationConfig `toml:"animation"`
	Global    GlobalConfig    `toml:"global"`
}

// AnimationConfig holds the effect's own settings.
type AnimationConfig struct {
	Duration   Duration `toml:"duration"`    // 0 = use the default
	EdgePolicy string   `toml:"edge_policy"` // "edge-distance" or "center"
}

// GlobalConfig holds compositor-wide settings the effect honours.
type GlobalConfig struct {
	AnimationFactor float64 `toml:"animation_factor"` // Speed multiplier, 0 = instant
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Animation: AnimationConfig{
			Duration:   Duration(DefaultDuration),
			EdgePolicy: string(edge.PolicyEdgeDistance),
		},
		Global: GlobalConfig{
			AnimationFactor: DefaultAnimationFactor,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "slidefx", "slidefx.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed and replaces the file atomically.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	d := c.Animation.Duration.Duration()
	if d < 0 || d > MaxDuration {
		return fmt.Errorf("%w: duration must be between 0 and %s, got %s", ErrInvalid, MaxDuration, d)
	}

	f := c.Global.AnimationFactor
	if f < 0 || f > MaxAnimationFactor {
		return fmt.Errorf("%w: animation_factor must be between 0 and %g, got %g", ErrInvalid, MaxAnimationFactor, f)
	}

	if _, err := edge.ParsePolicy(c.Animation.EdgePolicy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// SlideDuration returns the duration new animations run for: the configured
// duration, or the default when unset, scaled by the global animation factor.
func (c *Config) SlideDuration() time.Duration {
	d := c.Animation.Duration.Duration()
	if d == 0 {
		d = DefaultDuration
	}
	return time.Duration(float64(d) * c.Global.AnimationFactor)
}

// Policy returns the configured edge detection policy.
// Unknown values fall back to the edge-distance policy.
func (c *Config) Policy() edge.Policy {
	p, err := edge.ParsePolicy(c.Animation.EdgePolicy)
	if err != nil {
		return edge.PolicyEdgeDistance
	}
	return p
}
