package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/slidefx/internal/edge"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slidefx.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 200*time.Millisecond, cfg.Animation.Duration.Duration())
	assert.Equal(t, "edge-distance", cfg.Animation.EdgePolicy)
	assert.Equal(t, 1.0, cfg.Global.AnimationFactor)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 200*time.Millisecond, cfg.SlideDuration())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/slidefx.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	path := writeConfig(t, `
[animation]
duration = "350ms"
edge_policy = "center"

[global]
animation_factor = 2.0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 350*time.Millisecond, cfg.Animation.Duration.Duration())
	assert.Equal(t, edge.PolicyCenter, cfg.Policy())
	assert.Equal(t, 700*time.Millisecond, cfg.SlideDuration())
}

func TestLoadConfig_IntegerMilliseconds(t *testing.T) {
	path := writeConfig(t, `
[animation]
duration = 500
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Animation.Duration.Duration())
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	path := writeConfig(t, `
[global]
animation_factor = 0.5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Unchanged fields keep their defaults
	assert.Equal(t, DefaultDuration, cfg.Animation.Duration.Duration())
	assert.Equal(t, edge.PolicyEdgeDistance, cfg.Policy())
	assert.Equal(t, 100*time.Millisecond, cfg.SlideDuration())
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `this is not valid toml [`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative duration", "[animation]\nduration = \"-5ms\"\n"},
		{"too long", "[animation]\nduration = \"1m\"\n"},
		{"bad duration", "[animation]\nduration = \"soon\"\n"},
		{"unknown policy", "[animation]\nedge_policy = \"diagonal\"\n"},
		{"negative factor", "[global]\nanimation_factor = -1.0\n"},
		{"huge factor", "[global]\nanimation_factor = 100.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestValidateWrapsErrInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animation.EdgePolicy = "diagonal"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestSlideDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		factor   float64
		expected time.Duration
	}{
		{"configured", 300 * time.Millisecond, 1, 300 * time.Millisecond},
		{"unset uses default", 0, 1, DefaultDuration},
		{"slowed down", 200 * time.Millisecond, 1.5, 300 * time.Millisecond},
		{"instant", 200 * time.Millisecond, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Animation.Duration = Duration(tt.duration)
			cfg.Global.AnimationFactor = tt.factor
			assert.Equal(t, tt.expected, cfg.SlideDuration())
		})
	}
}

func TestConfig_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "slidefx.toml")

	cfg := DefaultConfig()
	cfg.Animation.Duration = Duration(450 * time.Millisecond)
	cfg.Animation.EdgePolicy = "center"

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/slidefx/slidefx.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	assert.Contains(t, ConfigPath(), "slidefx/slidefx.toml")
}
