package monitor

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Option customizes a Generator or Engine
type Option func(*options)

type options struct {
	rng Rand
	now func() time.Time
}

// WithRand injects the random source used for every probabilistic choice
func WithRand(r Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithClock injects the time source used for timestamps and expiry
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(0)
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Generator produces synthetic entities and advances launch lifecycles.
// It is not safe for concurrent use when backed by a *rand.Rand.
type Generator struct {
	catalog   *Catalog
	lifecycle Lifecycle
	rng       Rand
	now       func() time.Time
}

// NewGenerator creates a generator over a validated catalog
func NewGenerator(catalog *Catalog, lifecycle Lifecycle, opts ...Option) *Generator {
	o := buildOptions(opts)
	return &Generator{
		catalog:   catalog,
		lifecycle: lifecycle,
		rng:       o.rng,
		now:       o.now,
	}
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

// CreateLaunchEvent creates a launch between opposite sides of the theater
func (g *Generator) CreateLaunchEvent() LaunchEvent {
	attacker, defender := g.catalog.SideA, g.catalog.SideB
	if chance(g.rng, 0.5) {
		attacker, defender = defender, attacker
	}

	eta := float64(intBetween(g.rng, g.lifecycle.MinETASeconds, g.lifecycle.MaxETASeconds))

	return LaunchEvent{
		ID:            newID("msl"),
		Origin:        pick(g.rng, attacker.Locations),
		Destination:   pick(g.rng, defender.Locations),
		Payload:       pick(g.rng, g.catalog.Payloads),
		ETASeconds:    eta,
		FlightSeconds: eta,
		Status:        StatusLaunchDetected,
		LaunchTime:    g.now(),
	}
}

// AdvanceLaunchEvent returns e moved forward by elapsedSeconds; e is not modified
func (g *Generator) AdvanceLaunchEvent(e LaunchEvent, elapsedSeconds float64) LaunchEvent {
	next := e
	next.ETASeconds = math.Max(0, e.ETASeconds-elapsedSeconds)

	switch {
	case e.Status == StatusLaunchDetected && e.ETASeconds > 0:
		if chance(g.rng, g.lifecycle.FlightProbability) {
			next.Status = StatusEnRoute
		}
	case e.Status == StatusEnRoute && next.ETASeconds <= 0:
		if chance(g.rng, g.lifecycle.InterceptProbability) {
			next.Status = StatusIntercepted
		} else {
			next.Status = StatusImpacted
		}
	}

	if next.Status.Terminal() && !e.HasImpactTime() {
		next.ImpactTime = g.now()
	}
	return next
}

// CreateMessage creates an intercepted post from a randomly chosen template
func (g *Generator) CreateMessage() Message {
	count := intBetween(g.rng, 1, 3)
	tags := make([]string, 0, count)
	for i := 0; i < count; i++ {
		tags = append(tags, pick(g.rng, g.catalog.Hashtags))
	}

	location := pick(g.rng, g.catalog.Locations())
	strategy := pick(g.rng, messageStrategies)

	return Message{
		ID:        newID("twt"),
		Username:  pick(g.rng, g.catalog.Usernames),
		Text:      strategy(g, location),
		Hashtags:  UniqueTags(tags),
		Timestamp: g.now(),
	}
}

// CreateReport creates an official briefing about a random focal point
func (g *Generator) CreateReport() Report {
	now := g.now()
	focal := pick(g.rng, g.catalog.Locations()).Name

	return Report{
		ID: newID("rep"),
		Title: fmt.Sprintf("%s - %s #%d",
			pick(g.rng, g.catalog.ReportPrefixes), now.Format("2006-01-02"), intBetween(g.rng, 100, 999)),
		Content: fmt.Sprintf("Intelligence confirms multiple engagements in the %s sector. %s "+
			"Threat assessment indicates use of %s. All units on high alert. Further updates pending.",
			focal, pick(g.rng, g.catalog.ReportPostures), pick(g.rng, g.catalog.Payloads)),
		Status:    pick(g.rng, ReportStatuses),
		Timestamp: now,
	}
}

// CreateMediaItem creates a placeholder image capture
func (g *Generator) CreateMediaItem() MediaItem {
	now := g.now()
	seed := uuid.New().String()[:8]

	return MediaItem{
		ID:        newID("med"),
		URL:       fmt.Sprintf("https://picsum.photos/seed/%s/400/300?grayscale&blur=1", seed),
		Kind:      MediaImage,
		Location:  pick(g.rng, g.catalog.Locations()).Name,
		Time:      now.Format("15:04:05") + "Z",
		Source:    pick(g.rng, g.catalog.MediaSources),
		Timestamp: now,
	}
}

// UniqueTags removes duplicate tags, keeping the first occurrence of each
func UniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
