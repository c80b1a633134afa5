package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "R134a", cfg.Refrigerant)
	assert.Equal(t, 22.5726, cfg.Latitude)
	assert.Equal(t, 88.3639, cfg.Longitude)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, -10.0, cfg.EvapDewOffsetC)
	assert.Equal(t, 3.0, cfg.CondAmbOffsetC)
	assert.Equal(t, 5.0, cfg.TargetApproachC)
	assert.Equal(t, 80.0, cfg.UEvap)
	assert.Equal(t, 1.0, cfg.AEvap)
	assert.Equal(t, 0.01, cfg.TubeDiameterM)
	assert.Equal(t, 1, cfg.TubeCount)
	assert.Equal(t, 0.1, cfg.SweepStart)
	assert.Equal(t, 5.0, cfg.SweepStop)
	assert.Equal(t, 0.1, cfg.SweepStep)
	assert.Equal(t, "awg_results.csv", cfg.OutputPath)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
refrigerant: R134a
location:
  latitude: 19.076
  longitude: 72.8777
cycle:
  evap_dew_offset_c: -8.0
sweep:
  stop: 3.0
output:
  path: out.csv
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 19.076, cfg.Latitude)
	assert.Equal(t, -8.0, cfg.EvapDewOffsetC)
	assert.Equal(t, 3.0, cfg.CondAmbOffsetC, "unset keys keep their defaults")
	assert.Equal(t, 3.0, cfg.SweepStop)
	assert.Equal(t, "out.csv", cfg.OutputPath)
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OWM_API_KEY", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func validConfig() *Config {
	cfg, _ := Load("")
	cfg.APIKey = "key"
	return cfg
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty refrigerant", func(c *Config) { c.Refrigerant = "" }},
		{"no key and no file", func(c *Config) { c.APIKey = ""; c.WeatherFile = "" }},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }},
		{"non-positive U", func(c *Config) { c.UEvap = 0 }},
		{"non-positive area", func(c *Config) { c.AEvap = -1 }},
		{"zero tube diameter", func(c *Config) { c.TubeDiameterM = 0 }},
		{"no tubes", func(c *Config) { c.TubeCount = 0 }},
		{"zero viscosity", func(c *Config) { c.AirViscosity = 0 }},
		{"zero latent heat", func(c *Config) { c.LatentHeat = 0 }},
		{"zero step", func(c *Config) { c.SweepStep = 0 }},
		{"stop below start", func(c *Config) { c.SweepStop = 0.05 }},
		{"non-positive start", func(c *Config) { c.SweepStart = 0 }},
		{"empty output", func(c *Config) { c.OutputPath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWeatherFileReplacesAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.APIKey = ""
	cfg.WeatherFile = "ambient.csv"
	assert.NoError(t, cfg.Validate())
}
