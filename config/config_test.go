package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 150, cfg.Smoke.Capacity)
	assert.InDelta(t, 0.03, cfg.Smoke.Interval, 1e-7)
	assert.InDelta(t, 2.5, cfg.Smoke.Lifetime, 1e-7)
	assert.Equal(t, 2048, cfg.Shadow.Resolution)
	assert.Len(t, cfg.Props, 7)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMalformedReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("smoke: [unterminated"), 0644))

	cfg, err := LoadConfig(path)
	require.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	body := "smoke:\n  capacity: 40\n  interval: 0.05\nflame:\n  position: {x: 1, y: 2, z: 3}\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Smoke.Capacity)
	assert.InDelta(t, 0.05, cfg.Smoke.Interval, 1e-7)
	assert.InDelta(t, 2.5, cfg.Smoke.Lifetime, 1e-7)
	assert.Equal(t, Vec3{1, 2, 3}, cfg.Flame.Position)
	assert.Equal(t, 1920, cfg.Window.Width)
}

func TestSaveThenLoadKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	cfg := DefaultConfig()
	cfg.Lighting.GlobalBrightness = 1.25
	cfg.Props = cfg.Props[:2]

	require.NoError(t, SaveConfig(cfg, path))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Smoke.Interval = 0
	cfg.Smoke.Capacity = -1
	cfg.Lighting.LocalBrightness = 5
	cfg.Props[0].Scale = 0

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "smoke interval")
	assert.Contains(t, msg, "smoke capacity")
	assert.Contains(t, msg, "brightness")
	assert.Contains(t, msg, "table")
}
