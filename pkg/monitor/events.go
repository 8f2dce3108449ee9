package monitor

import "time"

// EventKind identifies what happened inside the engine
type EventKind string

const (
	EventLaunchDetected    EventKind = "launch_detected"
	EventLaunchEnRoute     EventKind = "launch_en_route"
	EventLaunchImpacted    EventKind = "launch_impacted"
	EventLaunchIntercepted EventKind = "launch_intercepted"
	EventLaunchExpired     EventKind = "launch_expired"
	EventMessage           EventKind = "message"
	EventReport            EventKind = "report"
	EventMedia             EventKind = "media"
	EventPaused            EventKind = "paused"
	EventResumed           EventKind = "resumed"
)

// Event is emitted to observers after each engine mutation
type Event struct {
	Kind    EventKind
	At      time.Time
	Subject string // entity ID, empty for lifecycle events
	Detail  string
}

// Observer receives engine events on the engine goroutine; it must not block
type Observer func(Event)

func transitionEvent(prev, next LaunchEvent, at time.Time) (Event, bool) {
	if prev.Status == next.Status {
		return Event{}, false
	}
	var kind EventKind
	switch next.Status {
	case StatusEnRoute:
		kind = EventLaunchEnRoute
	case StatusImpacted:
		kind = EventLaunchImpacted
	case StatusIntercepted:
		kind = EventLaunchIntercepted
	default:
		return Event{}, false
	}
	return Event{
		Kind:    kind,
		At:      at,
		Subject: next.ID,
		Detail:  next.Origin.Name + " -> " + next.Destination.Name,
	}, true
}
