package monitor

import (
	"time"
)

// LaunchStatus is the lifecycle state of a launch event
type LaunchStatus string

const (
	StatusLaunchDetected LaunchStatus = "LAUNCH DETECTED"
	StatusEnRoute        LaunchStatus = "EN ROUTE"
	StatusImpacted       LaunchStatus = "IMPACTED"
	StatusIntercepted    LaunchStatus = "INTERCEPTED"
)

// Terminal reports whether no further transition can occur from s
func (s LaunchStatus) Terminal() bool {
	return s == StatusImpacted || s == StatusIntercepted
}

// Active reports whether the launch still counts as a live threat
func (s LaunchStatus) Active() bool {
	return s == StatusLaunchDetected || s == StatusEnRoute
}

// Coordinates is a named point on the map
type Coordinates struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

// LaunchEvent is a single simulated missile launch
type LaunchEvent struct {
	ID          string
	Origin      Coordinates
	Destination Coordinates
	Payload     string

	// ETASeconds counts down to zero; FlightSeconds is the ETA at launch.
	ETASeconds    float64
	FlightSeconds float64

	Status     LaunchStatus
	LaunchTime time.Time

	// ImpactTime is zero until the launch first reaches a terminal status.
	ImpactTime time.Time
}

// HasImpactTime reports whether the terminal timestamp has been recorded
func (e LaunchEvent) HasImpactTime() bool {
	return !e.ImpactTime.IsZero()
}

// Progress returns the fraction of the flight completed, in [0, 1]
func (e LaunchEvent) Progress() float64 {
	if e.FlightSeconds <= 0 {
		return 1
	}
	p := 1 - e.ETASeconds/e.FlightSeconds
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Message is an intercepted social media post
type Message struct {
	ID        string
	Username  string
	Text      string
	Hashtags  []string
	Timestamp time.Time
}

// ReportStatus is the severity of a briefing report
type ReportStatus string

const (
	ReportNominal  ReportStatus = "NOMINAL"
	ReportElevated ReportStatus = "ELEVATED"
	ReportCritical ReportStatus = "CRITICAL"
	ReportUnknown  ReportStatus = "UNKNOWN"
)

// ReportStatuses lists every severity in display order
var ReportStatuses = []ReportStatus{ReportNominal, ReportElevated, ReportCritical, ReportUnknown}

// Report is an official briefing
type Report struct {
	ID        string
	Title     string
	Content   string
	Status    ReportStatus
	Timestamp time.Time
}

// MediaKind identifies the kind of a media item
type MediaKind string

const MediaImage MediaKind = "image"

// MediaItem is a captured piece of visual intel
type MediaItem struct {
	ID        string
	URL       string
	Kind      MediaKind
	Location  string
	Time      string
	Source    string
	Timestamp time.Time
}
