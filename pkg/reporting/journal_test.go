package reporting

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/situation-monitor/pkg/logger"
	"github.com/picogrid/situation-monitor/pkg/monitor"
)

func quietLogger(level logger.Level) (logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.NewWithConfig(logger.Config{Level: level, Writer: buf, NoColor: true}), buf
}

func event(kind monitor.EventKind, subject string) monitor.Event {
	return monitor.Event{Kind: kind, At: time.Date(2025, 6, 13, 4, 30, 0, 0, time.UTC), Subject: subject}
}

func TestJournalCountsAndSummary(t *testing.T) {
	log, _ := quietLogger(logger.InfoLevel)
	j := NewJournal("0123456789abcdef", log)

	j.Observe(event(monitor.EventLaunchDetected, "msl-1"))
	j.Observe(event(monitor.EventLaunchDetected, "msl-2"))
	j.Observe(event(monitor.EventLaunchImpacted, "msl-1"))
	j.Observe(event(monitor.EventLaunchIntercepted, "msl-2"))
	j.Observe(event(monitor.EventLaunchIntercepted, "msl-3"))
	j.Observe(event(monitor.EventMessage, "twt-1"))

	assert.Equal(t, 2, j.Count(monitor.EventLaunchDetected))
	assert.Zero(t, j.Count(monitor.EventMedia))

	s := j.Summary()
	assert.Equal(t, 6, s.TotalEvents)
	assert.Equal(t, 1, s.Impacted)
	assert.Equal(t, 2, s.Intercepted)
	assert.InDelta(t, 2.0/3.0, s.InterceptRate, 1e-9)

	events := j.Events()
	require.Len(t, events, 6)
	assert.Equal(t, "msl-1", events[0].Subject, "oldest first")
}

func TestJournalBoundsRetainedEvents(t *testing.T) {
	log, _ := quietLogger(logger.InfoLevel)
	j := NewJournal("s", log)

	for i := 0; i < MaxEntries+5; i++ {
		j.Observe(event(monitor.EventMessage, ""))
	}

	s := j.Summary()
	assert.Equal(t, MaxEntries+5, s.TotalEvents)
	assert.Equal(t, MaxEntries, s.Retained)
	assert.Len(t, j.Events(), MaxEntries)
}

func TestJournalLogsAtDebugOnly(t *testing.T) {
	color.NoColor = true

	infoLog, infoBuf := quietLogger(logger.InfoLevel)
	NewJournal("s", infoLog).Observe(event(monitor.EventReport, "rep-1"))
	assert.Empty(t, infoBuf.String())

	debugLog, debugBuf := quietLogger(logger.DebugLevel)
	NewJournal("s", debugLog).Observe(monitor.Event{
		Kind:    monitor.EventLaunchEnRoute,
		Subject: "msl-abc",
		Detail:  "Tehran -> Haifa",
	})
	out := debugBuf.String()
	assert.Contains(t, out, "[journal]")
	assert.Contains(t, out, "launch_en_route")
	assert.Contains(t, out, "msl-abc | Tehran -> Haifa")
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true
	log, _ := quietLogger(logger.InfoLevel)
	j := NewJournal("deadbeefcafe", log)
	j.Observe(event(monitor.EventLaunchImpacted, "msl-1"))
	j.Observe(event(monitor.EventPaused, ""))

	var sb strings.Builder
	j.PrintSummary(&sb)
	out := sb.String()

	assert.Contains(t, out, "SESSION SUMMARY - deadbeef")
	assert.Contains(t, out, "Total Events: 2")
	assert.Contains(t, out, "launch_impacted")
	assert.Contains(t, out, "intercept rate")
	assert.Contains(t, out, "0.0%")
}
