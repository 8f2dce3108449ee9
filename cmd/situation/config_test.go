package situation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/situation-monitor/pkg/monitor"
	"github.com/picogrid/situation-monitor/pkg/simulation"
)

func TestDescriptorDefaultsMatchEngineDefaults(t *testing.T) {
	desc, err := simulation.DefaultRegistry.Config("Situation Monitor")
	require.NoError(t, err)
	assert.Equal(t, "Monitoring", desc.Category)

	cfg, err := ValidateAndParse(desc.Defaults())
	require.NoError(t, err)

	assert.Equal(t, monitor.DefaultConfig(), cfg.Engine)
	assert.Equal(t, 250*time.Millisecond, cfg.RefreshInterval)
	assert.Equal(t, ViewDashboard, cfg.ViewMode)
	assert.Zero(t, cfg.Duration)
	assert.Empty(t, cfg.CatalogPath)
	assert.Zero(t, cfg.Seed)
}

func TestValidateAndParseOverrides(t *testing.T) {
	cfg, err := ValidateAndParse(map[string]interface{}{
		"tick_interval":         250 * time.Millisecond,
		"launch_interval":       "2s",
		"report_interval":       1000,
		"media_interval":        "750",
		"max_launches":          12.0,
		"intercept_probability": 1,
		"min_eta":               5,
		"max_eta":               10,
		"view_mode":             "map_only",
		"duration":              "1m",
		"catalog_path":          " ./catalog.yaml ",
		"seed":                  42,
	})
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Engine.TickInterval)
	assert.Equal(t, 2*time.Second, cfg.Engine.LaunchInterval)
	assert.Equal(t, time.Second, cfg.Engine.ReportInterval, "bare numbers are milliseconds")
	assert.Equal(t, 750*time.Millisecond, cfg.Engine.MediaInterval)
	assert.Equal(t, 12, cfg.Engine.MaxLaunches)
	assert.Equal(t, 1.0, cfg.Engine.Lifecycle.InterceptProbability)
	assert.Equal(t, 5, cfg.Engine.Lifecycle.MinETASeconds)
	assert.Equal(t, ViewMapOnly, cfg.ViewMode)
	assert.Equal(t, time.Minute, cfg.Duration)
	assert.Equal(t, "./catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestValidateAndParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
		errMsg string
	}{
		{"bad duration", map[string]interface{}{"tick_interval": "fast"}, "invalid tick_interval format"},
		{"zero tick", map[string]interface{}{"tick_interval": "0s"}, "tick interval must be positive"},
		{"wrong int type", map[string]interface{}{"max_media": "lots"}, "max_media must be an integer"},
		{"fractional int", map[string]interface{}{"max_launches": 2.7}, "max_launches must be an integer, got 2.7"},
		{"wrong float type", map[string]interface{}{"flight_probability": true}, "flight_probability must be a number"},
		{"probability range", map[string]interface{}{"flight_probability": 2.0}, "flight probability"},
		{"inverted eta", map[string]interface{}{"min_eta": 90}, "must not exceed"},
		{"zero refresh", map[string]interface{}{"refresh_interval": "0s"}, "refresh_interval must be positive"},
		{"negative duration", map[string]interface{}{"duration": "-1s"}, "duration must not be negative"},
		{"bad view", map[string]interface{}{"view_mode": "split"}, "view_mode must be one of"},
		{"negative seed", map[string]interface{}{"seed": -1}, "seed must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParse(tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestViewModes(t *testing.T) {
	m, err := ParseViewMode("terminal_only")
	require.NoError(t, err)
	assert.Equal(t, ViewTerminalOnly, m)
	assert.Equal(t, "Intel Feeds", m.Label())

	assert.True(t, ViewDashboard.ShowMap() && ViewDashboard.ShowPanels() && ViewDashboard.ShowMedia())
	assert.True(t, ViewMapOnly.ShowMap())
	assert.False(t, ViewMapOnly.ShowPanels())
	assert.False(t, ViewTerminalOnly.ShowMap())
	assert.False(t, ViewTerminalOnly.ShowMedia())

	_, err = ParseViewMode("Dashboard")
	assert.Error(t, err)
}
