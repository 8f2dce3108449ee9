package situation

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/situation-monitor/pkg/monitor"
)

func sampleSnapshot(now time.Time) monitor.Snapshot {
	return monitor.Snapshot{
		Launches: []monitor.LaunchEvent{
			{ID: "msl-live0001", Origin: east, Destination: west, Payload: "Shahab-3 MRBM", ETASeconds: 12.5, FlightSeconds: 30, Status: monitor.StatusEnRoute},
			{ID: "msl-done0001", Origin: west, Destination: east, Payload: "Jericho II", Status: monitor.StatusIntercepted, ImpactTime: now.Add(-time.Second)},
		},
		Messages: []monitor.Message{
			{ID: "twt-1", Username: "@GeoWatcher", Text: "Sirens near East Post.", Hashtags: []string{"#Alert", "#Breaking"}},
		},
		Reports: []monitor.Report{
			{ID: "rep-1", Title: "Defense Ministry Update - 2025-06-13 #512", Content: "Forces remain on high alert.", Status: monitor.ReportCritical, Timestamp: now},
			{ID: "rep-2", Title: "Older Briefing", Content: "hidden body", Status: monitor.ReportNominal, Timestamp: now},
		},
		Media: []monitor.MediaItem{
			{ID: "med-1", Location: "East Post", Time: "04:29:58Z", Source: "Drone Feed", URL: "https://picsum.photos/seed/ab/400/300?grayscale&blur=1"},
		},
		Status:        monitor.StatusLive,
		Running:       true,
		ActiveThreats: 1,
		IntelPackets:  4,
		TakenAt:       now,
	}
}

func TestFrameDashboardShowsEverything(t *testing.T) {
	color.NoColor = true
	now := time.Date(2025, 6, 13, 4, 30, 0, 0, time.UTC)
	d := NewDashboard(smallTheater(), 100, "\n")

	out := strings.Join(d.Frame(sampleSnapshot(now), ViewDashboard, now), "\n")

	for _, want := range []string{
		"MONITOR THE SITUATION",
		"LIVE",
		"THEATER MAP",
		"TACTICAL FEED: MISSILE ACTIVITY",
		"msl-live0001",
		"12.5s",
		"---",
		"@GeoWatcher: Sirens near East Post. #Alert #Breaking",
		"[CRITICAL] Defense Ministry Update - 2025-06-13 #512 (2025-06-13)",
		"Forces remain on high alert.",
		"[NOMINAL] Older Briefing",
		"VISUAL INTEL FEED",
		"@ East Post | T: 04:29:58Z | SRC: Drone Feed",
		"STATUS: LIVE DATA STREAM ACTIVE | Active Threats: 1 | Intel Packets: 4",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "hidden body", "only the newest briefing is expanded")
}

func TestFrameViewModes(t *testing.T) {
	color.NoColor = true
	now := time.Date(2025, 6, 13, 4, 30, 0, 0, time.UTC)
	d := NewDashboard(smallTheater(), 100, "\n")
	snap := sampleSnapshot(now)

	mapOnly := strings.Join(d.Frame(snap, ViewMapOnly, now), "\n")
	assert.Contains(t, mapOnly, "THEATER MAP")
	assert.NotContains(t, mapOnly, "TACTICAL FEED")
	assert.Contains(t, mapOnly, "Active Threats: 1")

	terminal := strings.Join(d.Frame(snap, ViewTerminalOnly, now), "\n")
	assert.NotContains(t, terminal, "THEATER MAP")
	assert.Contains(t, terminal, "OFFICIAL BRIEFINGS")
	assert.NotContains(t, terminal, "VISUAL INTEL FEED")
}

func TestFrameEmptyPanels(t *testing.T) {
	color.NoColor = true
	d := NewDashboard(smallTheater(), 80, "\n")
	snap := monitor.Snapshot{Status: monitor.StatusAwaiting}

	out := strings.Join(d.Frame(snap, ViewDashboard, time.Now()), "\n")
	assert.Contains(t, out, "No active threats detected.")
	assert.Contains(t, out, "Awaiting incoming transmissions...")
	assert.Contains(t, out, "No official reports available.")
	assert.Contains(t, out, "No visual data streams active.")
	assert.Contains(t, out, "PAUSED")
	assert.Contains(t, out, "SYSTEM ONLINE: AWAITING DATA STREAM...")
}

func TestRenderUsesRawNewlines(t *testing.T) {
	color.NoColor = true
	d := NewDashboard(smallTheater(), 80, "\r\n")

	var sb strings.Builder
	require.NoError(t, d.Render(&sb, monitor.Snapshot{}, ViewTerminalOnly, time.Now()))

	out := sb.String()
	assert.True(t, strings.HasPrefix(out, clearScreen))
	assert.True(t, strings.HasSuffix(out, "\r\n"))
	body := strings.ReplaceAll(out, "\r\n", "")
	assert.NotContains(t, body, "\n", "every line ends with CRLF in raw mode")
}

func TestMissilePanelLimitsRows(t *testing.T) {
	color.NoColor = true
	d := NewDashboard(smallTheater(), 100, "\n")

	launches := make([]monitor.LaunchEvent, 9)
	for i := range launches {
		launches[i] = monitor.LaunchEvent{ID: "msl-x", Origin: west, Destination: east, Status: monitor.StatusLaunchDetected, ETASeconds: 20}
	}

	lines := d.missiles(launches, 6)
	require.Len(t, lines, 2+6+1)
	assert.Equal(t, "... 3 more", lines[len(lines)-1])
}

func TestTruncateAndWrap(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))

	assert.Equal(t, []string{"the quick", "brown fox", "jumps"}, wrap("the quick brown fox jumps", 10))
	assert.Nil(t, wrap("   ", 10))
}
