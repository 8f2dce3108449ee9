package situation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/picogrid/situation-monitor/pkg/monitor"
)

// Config holds the configuration for the situation monitor simulation
type Config struct {
	Engine          monitor.Config
	RefreshInterval time.Duration
	ViewMode        ViewMode
	Duration        time.Duration
	CatalogPath     string
	Seed            uint64
}

// ValidateAndParse validates and parses the raw parameters into a Config.
// Missing parameters keep the engine defaults.
func ValidateAndParse(params map[string]interface{}) (*Config, error) {
	config := &Config{
		Engine:          monitor.DefaultConfig(),
		RefreshInterval: 250 * time.Millisecond,
		ViewMode:        ViewDashboard,
	}
	e := &config.Engine

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"tick_interval", &e.TickInterval},
		{"launch_interval", &e.LaunchInterval},
		{"message_interval", &e.MessageInterval},
		{"report_interval", &e.ReportInterval},
		{"media_interval", &e.MediaInterval},
		{"grace_window", &e.GraceWindow},
		{"refresh_interval", &config.RefreshInterval},
		{"duration", &config.Duration},
	}
	for _, d := range durations {
		if err := parseDuration(params, d.key, d.dst); err != nil {
			return nil, err
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"max_launches", &e.MaxLaunches},
		{"max_messages", &e.MaxMessages},
		{"max_reports", &e.MaxReports},
		{"max_media", &e.MaxMedia},
		{"min_eta", &e.Lifecycle.MinETASeconds},
		{"max_eta", &e.Lifecycle.MaxETASeconds},
	}
	for _, i := range ints {
		if err := parseInt(params, i.key, i.dst); err != nil {
			return nil, err
		}
	}

	if err := parseFloat(params, "flight_probability", &e.Lifecycle.FlightProbability); err != nil {
		return nil, err
	}
	if err := parseFloat(params, "intercept_probability", &e.Lifecycle.InterceptProbability); err != nil {
		return nil, err
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if config.RefreshInterval <= 0 {
		return nil, fmt.Errorf("refresh_interval must be positive")
	}
	if config.Duration < 0 {
		return nil, fmt.Errorf("duration must not be negative")
	}

	// Parse view_mode
	if v, ok := params["view_mode"]; ok {
		mode, err := ParseViewMode(fmt.Sprintf("%v", v))
		if err != nil {
			return nil, err
		}
		config.ViewMode = mode
	}

	// Parse catalog_path
	if v, ok := params["catalog_path"]; ok && v != nil {
		config.CatalogPath = strings.TrimSpace(fmt.Sprintf("%v", v))
	}

	// Parse seed
	var seed int
	if err := parseInt(params, "seed", &seed); err != nil {
		return nil, err
	}
	if seed < 0 {
		return nil, fmt.Errorf("seed must not be negative")
	}
	config.Seed = uint64(seed)

	return config, nil
}

func parseDuration(params map[string]interface{}, key string, dst *time.Duration) error {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case time.Duration:
		*dst = val
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			ms, numErr := strconv.ParseFloat(val, 64)
			if numErr != nil {
				return fmt.Errorf("invalid %s format: %w", key, err)
			}
			d = time.Duration(ms * float64(time.Millisecond))
		}
		*dst = d
	case int:
		*dst = time.Duration(val) * time.Millisecond
	case float64:
		*dst = time.Duration(val * float64(time.Millisecond))
	default:
		return fmt.Errorf("%s must be a duration", key)
	}
	return nil
}

func parseInt(params map[string]interface{}, key string, dst *int) error {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case int:
		*dst = val
	case int64:
		*dst = int(val)
	case float64:
		if val != math.Trunc(val) {
			return fmt.Errorf("%s must be an integer, got %v", key, val)
		}
		*dst = int(val)
	default:
		return fmt.Errorf("%s must be an integer", key)
	}
	return nil
}

func parseFloat(params map[string]interface{}, key string, dst *float64) error {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case float64:
		*dst = val
	case int:
		*dst = float64(val)
	default:
		return fmt.Errorf("%s must be a number", key)
	}
	return nil
}
