package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/picogrid/situation-monitor/pkg/logger"
	"github.com/picogrid/situation-monitor/pkg/monitor"
)

// MaxEntries bounds the in-memory event log
const MaxEntries = 10000

var (
	colorLaunch    = color.New(color.FgYellow)
	colorImpact    = color.New(color.FgRed, color.Bold)
	colorIntercept = color.New(color.FgGreen)
	colorIntel     = color.New(color.FgCyan)
	colorControl   = color.New(color.FgHiBlack)
	colorSummary   = color.New(color.FgGreen)
)

// Journal records engine events for one session
type Journal struct {
	sessionID string
	startTime time.Time
	log       logger.Logger

	mu      sync.RWMutex
	entries []monitor.Event
	counts  map[monitor.EventKind]int
	total   int
}

// Summary is a point-in-time digest of a session
type Summary struct {
	SessionID     string
	StartTime     time.Time
	Duration      time.Duration
	TotalEvents   int
	Retained      int
	Counts        map[monitor.EventKind]int
	Impacted      int
	Intercepted   int
	InterceptRate float64
}

// NewJournal creates a journal. A nil log uses the default logger.
func NewJournal(sessionID string, log logger.Logger) *Journal {
	if log == nil {
		log = logger.Default()
	}
	return &Journal{
		sessionID: sessionID,
		startTime: time.Now(),
		log:       log.WithPrefix("journal"),
		counts:    make(map[monitor.EventKind]int),
	}
}

// Observe records an event; it matches monitor.Observer
func (j *Journal) Observe(ev monitor.Event) {
	j.mu.Lock()
	j.entries = append(j.entries, ev)
	if len(j.entries) > MaxEntries {
		j.entries = j.entries[len(j.entries)-MaxEntries:]
	}
	j.counts[ev.Kind]++
	j.total++
	j.mu.Unlock()

	if j.log.Enabled(logger.DebugLevel) {
		j.log.Debug(formatEvent(ev))
	}
}

func eventColor(kind monitor.EventKind) (*color.Color, string) {
	switch kind {
	case monitor.EventLaunchDetected, monitor.EventLaunchEnRoute:
		return colorLaunch, logger.IconRocket
	case monitor.EventLaunchImpacted:
		return colorImpact, logger.IconImpact
	case monitor.EventLaunchIntercepted:
		return colorIntercept, logger.IconShield
	case monitor.EventMessage:
		return colorIntel, logger.IconRadio
	case monitor.EventReport:
		return colorIntel, logger.IconReport
	case monitor.EventMedia:
		return colorIntel, logger.IconCamera
	case monitor.EventPaused:
		return colorControl, logger.IconPause
	case monitor.EventResumed:
		return colorControl, logger.IconPlay
	default:
		return colorControl, logger.IconDot
	}
}

func formatEvent(ev monitor.Event) string {
	c, icon := eventColor(ev.Kind)
	parts := []string{icon, c.Sprintf("%-18s", ev.Kind)}
	if ev.Subject != "" {
		parts = append(parts, ev.Subject)
	}
	if ev.Detail != "" {
		parts = append(parts, "| "+ev.Detail)
	}
	return strings.Join(parts, " ")
}

// Events returns the retained events, oldest first
func (j *Journal) Events() []monitor.Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	events := make([]monitor.Event, len(j.entries))
	copy(events, j.entries)
	return events
}

// Count returns how many events of a kind were observed
func (j *Journal) Count(kind monitor.EventKind) int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.counts[kind]
}

// Summary returns a digest of the session so far
func (j *Journal) Summary() Summary {
	j.mu.RLock()
	defer j.mu.RUnlock()

	counts := make(map[monitor.EventKind]int, len(j.counts))
	for k, v := range j.counts {
		counts[k] = v
	}

	s := Summary{
		SessionID:   j.sessionID,
		StartTime:   j.startTime,
		Duration:    time.Since(j.startTime),
		TotalEvents: j.total,
		Retained:    len(j.entries),
		Counts:      counts,
		Impacted:    counts[monitor.EventLaunchImpacted],
		Intercepted: counts[monitor.EventLaunchIntercepted],
	}
	if resolved := s.Impacted + s.Intercepted; resolved > 0 {
		s.InterceptRate = float64(s.Intercepted) / float64(resolved)
	}
	return s
}

// PrintSummary writes a formatted session summary to w
func (j *Journal) PrintSummary(w io.Writer) {
	summary := j.Summary()

	id := summary.SessionID
	if len(id) > 8 {
		id = id[:8]
	}

	line := strings.Repeat("=", 60)
	_, _ = fmt.Fprintln(w)
	_, _ = colorSummary.Fprintln(w, line)
	_, _ = colorSummary.Fprintf(w, "  SESSION SUMMARY - %s\n", id)
	_, _ = colorSummary.Fprintln(w, line)

	_, _ = fmt.Fprintf(w, "\nDuration: %v | Total Events: %d\n", summary.Duration.Round(time.Second), summary.TotalEvents)

	_, _ = fmt.Fprintln(w, "\nEvent Distribution:")
	kinds := make([]string, 0, len(summary.Counts))
	for kind := range summary.Counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		_, _ = fmt.Fprintf(w, "   %-20s: %d\n", kind, summary.Counts[monitor.EventKind(kind)])
	}

	_, _ = fmt.Fprintln(w, "\nLaunch Outcomes:")
	_, _ = fmt.Fprintf(w, "   %-20s: %s\n", "impacted", colorImpact.Sprint(summary.Impacted))
	_, _ = fmt.Fprintf(w, "   %-20s: %s\n", "intercepted", colorIntercept.Sprint(summary.Intercepted))
	_, _ = fmt.Fprintf(w, "   %-20s: %.1f%%\n", "intercept rate", summary.InterceptRate*100)

	_, _ = colorSummary.Fprintln(w, "\n"+line)
}
