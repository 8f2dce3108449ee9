package monitor

import (
	"fmt"
	"time"
)

// Lifecycle holds the launch state machine parameters
type Lifecycle struct {
	// FlightProbability is the per-tick chance of LAUNCH DETECTED -> EN ROUTE.
	FlightProbability float64
	// InterceptProbability is the chance a launch reaching zero ETA is intercepted.
	InterceptProbability float64
	MinETASeconds        int
	MaxETASeconds        int
}

// Config holds the engine timers and collection caps
type Config struct {
	TickInterval    time.Duration
	LaunchInterval  time.Duration
	MessageInterval time.Duration
	ReportInterval  time.Duration
	MediaInterval   time.Duration

	MaxLaunches int
	MaxMessages int
	MaxReports  int
	MaxMedia    int

	// GraceWindow is how long a terminal launch stays visible after ImpactTime.
	GraceWindow time.Duration

	Lifecycle Lifecycle
}

// DefaultConfig returns the standard dashboard timings
func DefaultConfig() Config {
	return Config{
		TickInterval:    500 * time.Millisecond,
		LaunchInterval:  1500 * time.Millisecond,
		MessageInterval: 1200 * time.Millisecond,
		ReportInterval:  25 * time.Second,
		MediaInterval:   5 * time.Second,
		MaxLaunches:     35,
		MaxMessages:     50,
		MaxReports:      10,
		MaxMedia:        12,
		GraceWindow:     3 * time.Second,
		Lifecycle: Lifecycle{
			FlightProbability:    0.9,
			InterceptProbability: 0.3,
			MinETASeconds:        15,
			MaxETASeconds:        60,
		},
	}
}

// Validate checks if the configuration is usable
func (c Config) Validate() error {
	intervals := []struct {
		name string
		d    time.Duration
	}{
		{"tick interval", c.TickInterval},
		{"launch interval", c.LaunchInterval},
		{"message interval", c.MessageInterval},
		{"report interval", c.ReportInterval},
		{"media interval", c.MediaInterval},
	}
	for _, iv := range intervals {
		if iv.d <= 0 {
			return fmt.Errorf("%s must be positive", iv.name)
		}
	}

	caps := []struct {
		name string
		n    int
	}{
		{"max launches", c.MaxLaunches},
		{"max messages", c.MaxMessages},
		{"max reports", c.MaxReports},
		{"max media", c.MaxMedia},
	}
	for _, cp := range caps {
		if cp.n <= 0 {
			return fmt.Errorf("%s must be positive", cp.name)
		}
	}

	if c.GraceWindow < 0 {
		return fmt.Errorf("grace window must not be negative")
	}

	lc := c.Lifecycle
	if lc.FlightProbability < 0 || lc.FlightProbability > 1 {
		return fmt.Errorf("flight probability must be between 0.0 and 1.0")
	}
	if lc.InterceptProbability < 0 || lc.InterceptProbability > 1 {
		return fmt.Errorf("intercept probability must be between 0.0 and 1.0")
	}
	if lc.MinETASeconds <= 0 {
		return fmt.Errorf("minimum ETA must be positive")
	}
	if lc.MinETASeconds > lc.MaxETASeconds {
		return fmt.Errorf("minimum ETA must not exceed maximum ETA")
	}

	return nil
}

// String returns a human-readable representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(`Engine Configuration:
  Tick Interval: %v
  Launch Interval: %v
  Message Interval: %v
  Report Interval: %v
  Media Interval: %v

Caps:
  Launches: %d
  Messages: %d
  Reports: %d
  Media: %d

Lifecycle:
  Grace Window: %v
  Flight Probability: %.2f
  Intercept Probability: %.2f
  ETA Range: %d-%d s`,
		c.TickInterval, c.LaunchInterval, c.MessageInterval, c.ReportInterval, c.MediaInterval,
		c.MaxLaunches, c.MaxMessages, c.MaxReports, c.MaxMedia,
		c.GraceWindow,
		c.Lifecycle.FlightProbability, c.Lifecycle.InterceptProbability,
		c.Lifecycle.MinETASeconds, c.Lifecycle.MaxETASeconds,
	)
}
