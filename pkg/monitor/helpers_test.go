package monitor

import (
	"sync"
	"time"
)

// scriptedRand replays fixed values, then falls back to defaults
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 13, 4, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) Observe(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *eventRecorder) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func enRouteLaunch(id string, eta float64) LaunchEvent {
	c := DefaultCatalog()
	return LaunchEvent{
		ID:            id,
		Origin:        c.SideB.Locations[0],
		Destination:   c.SideA.Locations[0],
		Payload:       c.Payloads[0],
		ETASeconds:    eta,
		FlightSeconds: 30,
		Status:        StatusEnRoute,
	}
}

func containsLocation(set []Coordinates, c Coordinates) bool {
	for _, l := range set {
		if l == c {
			return true
		}
	}
	return false
}
