package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.MonitorInterval)
	assert.Equal(t, 30.0, cfg.OversoldThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8001, cfg.Port)
	assert.False(t, cfg.DevMode)

	assert.Equal(t, "cartera.json", filepath.Base(cfg.PortfolioPath))
	assert.Equal(t, "historial.json", filepath.Base(cfg.HistoryPath))
	assert.Equal(t, "oportunidades.log", filepath.Base(cfg.OpportunityLogPath))
	assert.Equal(t, "price_cache.db", filepath.Base(cfg.PriceCachePath))
	assert.True(t, filepath.IsAbs(cfg.DataDir))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("MONITOR_INTERVAL_SECONDS", "300")
	t.Setenv("OVERSOLD_THRESHOLD", "25.5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GO_PORT", "9090")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.MonitorInterval)
	assert.Equal(t, 25.5, cfg.OversoldThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DevMode)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("MONITOR_INTERVAL_SECONDS", "not-a-number")
	t.Setenv("OVERSOLD_THRESHOLD", "high")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.MonitorInterval)
	assert.Equal(t, 30.0, cfg.OversoldThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		interval  int
		threshold float64
		wantErr   string
	}{
		{name: "valid", interval: 60, threshold: 30},
		{name: "zero interval", interval: 0, threshold: 30, wantErr: "MONITOR_INTERVAL_SECONDS"},
		{name: "negative interval", interval: -5, threshold: 30, wantErr: "MONITOR_INTERVAL_SECONDS"},
		{name: "zero threshold", interval: 60, threshold: 0, wantErr: "OVERSOLD_THRESHOLD"},
		{name: "threshold at 100", interval: 60, threshold: 100, wantErr: "OVERSOLD_THRESHOLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MonitorInterval: tt.interval, OversoldThreshold: tt.threshold}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
