package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Snapshot is a consistent point-in-time view of the engine state.
// Collections are copies ordered newest first.
type Snapshot struct {
	Launches      []LaunchEvent
	Messages      []Message
	Reports       []Report
	Media         []MediaItem
	Status        string
	Running       bool
	ActiveThreats int
	IntelPackets  int
	TakenAt       time.Time
}

// Engine owns the four bounded collections and mutates them on independent timers.
// All mutation happens on a single goroutine while running; readers use Snapshot.
type Engine struct {
	cfg Config
	gen *Generator
	now func() time.Time

	mu       sync.RWMutex
	launches *Feed[LaunchEvent]
	messages *Feed[Message]
	reports  *Feed[Report]
	media    *Feed[MediaItem]
	status   statusLine
	running  bool

	obsMu     sync.RWMutex
	observers []Observer

	// runMu serializes Start and Stop
	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine creates an engine with validated configuration and vocabulary
func NewEngine(cfg Config, catalog *Catalog, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	o := buildOptions(opts)
	return &Engine{
		cfg:      cfg,
		gen:      NewGenerator(catalog, cfg.Lifecycle, WithRand(o.rng), WithClock(o.now)),
		now:      o.now,
		launches: NewFeed[LaunchEvent](cfg.MaxLaunches),
		messages: NewFeed[Message](cfg.MaxMessages),
		reports:  NewFeed[Report](cfg.MaxReports),
		media:    NewFeed[MediaItem](cfg.MaxMedia),
		status:   newStatusLine(),
	}, nil
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Subscribe registers an observer for engine events
func (e *Engine) Subscribe(o Observer) {
	e.obsMu.Lock()
	e.observers = append(e.observers, o)
	e.obsMu.Unlock()
}

func (e *Engine) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	e.obsMu.RLock()
	observers := e.observers
	e.obsMu.RUnlock()

	for _, ev := range events {
		for _, o := range observers {
			o(ev)
		}
	}
}

// Start begins all five timers. It returns an error if the engine is already running.
func (e *Engine) Start(ctx context.Context) error {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.cancel != nil {
		if e.Running() {
			return fmt.Errorf("engine already running")
		}
		// the parent context ended the previous run
		<-e.done
		e.cancel()
		e.cancel = nil
		e.done = nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})

	e.mu.Lock()
	e.running = true
	e.status.base = StatusLive
	e.mu.Unlock()

	e.emit(Event{Kind: EventResumed, At: e.now()})

	go e.loop(loopCtx, e.done)
	return nil
}

// Stop tears down every timer together and waits for the loop to exit.
// State is retained, so Start resumes where Stop left off.
func (e *Engine) Stop() {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.done
	e.cancel = nil
	e.done = nil

	e.mu.Lock()
	e.running = false
	e.status.base = StatusPaused
	e.mu.Unlock()

	e.emit(Event{Kind: EventPaused, At: e.now()})
}

// Toggle pauses a running engine or resumes a paused one
func (e *Engine) Toggle(ctx context.Context) error {
	if e.Running() {
		e.Stop()
		return nil
	}
	return e.Start(ctx)
}

// Running reports whether the timers are active
func (e *Engine) Running() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

func (e *Engine) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	tick := time.NewTicker(e.cfg.TickInterval)
	defer tick.Stop()
	launch := time.NewTicker(e.cfg.LaunchInterval)
	defer launch.Stop()
	message := time.NewTicker(e.cfg.MessageInterval)
	defer message.Stop()
	report := time.NewTicker(e.cfg.ReportInterval)
	defer report.Stop()
	media := time.NewTicker(e.cfg.MediaInterval)
	defer media.Stop()

	for {
		select {
		case <-ctx.Done():
			e.mu.Lock()
			e.running = false
			e.status.base = StatusPaused
			e.mu.Unlock()
			return
		case <-tick.C:
			e.Tick()
		case <-launch.C:
			e.SpawnLaunch()
		case <-message.C:
			e.PublishMessage()
		case <-report.C:
			e.PublishReport()
		case <-media.C:
			e.PublishMedia()
		}
	}
}

// Tick advances every live launch by one tick interval and drops terminal
// launches whose grace window has passed. The collection is replaced in one step.
func (e *Engine) Tick() {
	elapsed := e.cfg.TickInterval.Seconds()

	e.mu.Lock()
	now := e.now()
	current := e.launches.Items()
	next := make([]LaunchEvent, 0, len(current))
	var events []Event

	for _, l := range current {
		advanced := e.gen.AdvanceLaunchEvent(l, elapsed)
		if ev, ok := transitionEvent(l, advanced, now); ok {
			events = append(events, ev)
		}
		if Expired(advanced, now, e.cfg.GraceWindow) {
			events = append(events, Event{Kind: EventLaunchExpired, At: now, Subject: advanced.ID})
			continue
		}
		next = append(next, advanced)
	}
	e.launches.Replace(next)
	e.mu.Unlock()

	e.emit(events...)
}

// Expired reports whether a terminal launch has outlived its grace window
func Expired(l LaunchEvent, now time.Time, grace time.Duration) bool {
	return l.Status.Terminal() && l.HasImpactTime() && now.Sub(l.ImpactTime) > grace
}

// SpawnLaunch adds a new launch if the collection is below its cap
func (e *Engine) SpawnLaunch() bool {
	e.mu.Lock()
	if e.launches.Full() {
		e.mu.Unlock()
		return false
	}
	l := e.gen.CreateLaunchEvent()
	e.launches.Push(l)
	e.status.announce(NoticeLaunch, e.now(), launchNoticeDuration)
	e.mu.Unlock()

	e.emit(Event{
		Kind:    EventLaunchDetected,
		At:      l.LaunchTime,
		Subject: l.ID,
		Detail:  fmt.Sprintf("%s -> %s (%s, ETA %.0fs)", l.Origin.Name, l.Destination.Name, l.Payload, l.ETASeconds),
	})
	return true
}

// PublishMessage adds a new intercepted message
func (e *Engine) PublishMessage() Message {
	e.mu.Lock()
	m := e.gen.CreateMessage()
	e.messages.Push(m)
	e.mu.Unlock()

	e.emit(Event{Kind: EventMessage, At: m.Timestamp, Subject: m.ID, Detail: "@" + m.Username})
	return m
}

// PublishReport adds a new briefing report
func (e *Engine) PublishReport() Report {
	e.mu.Lock()
	r := e.gen.CreateReport()
	e.reports.Push(r)
	e.status.announce(NoticeReport, e.now(), reportNoticeDuration)
	e.mu.Unlock()

	e.emit(Event{Kind: EventReport, At: r.Timestamp, Subject: r.ID, Detail: string(r.Status) + " " + r.Title})
	return r
}

// PublishMedia adds a new media item
func (e *Engine) PublishMedia() MediaItem {
	e.mu.Lock()
	m := e.gen.CreateMediaItem()
	e.media.Push(m)
	e.status.announce(NoticeMedia, e.now(), mediaNoticeDuration)
	e.mu.Unlock()

	e.emit(Event{Kind: EventMedia, At: m.Timestamp, Subject: m.ID, Detail: m.Source + " @ " + m.Location})
	return m
}

// Snapshot returns copies of all collections and the current status line
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	now := e.now()
	s := Snapshot{
		Launches: e.launches.Items(),
		Messages: e.messages.Items(),
		Reports:  e.reports.Items(),
		Media:    e.media.Items(),
		Status:   e.status.text(now),
		Running:  e.running,
		TakenAt:  now,
	}
	for _, l := range s.Launches {
		if l.Status.Active() {
			s.ActiveThreats++
		}
	}
	s.IntelPackets = len(s.Messages) + len(s.Reports) + len(s.Media)
	return s
}
