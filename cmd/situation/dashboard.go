package situation

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/picogrid/situation-monitor/pkg/logger"
	"github.com/picogrid/situation-monitor/pkg/monitor"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	title       = "MONITOR THE SITUATION"
)

var (
	colorTitle    = color.New(color.FgRed, color.Bold)
	colorPanel    = color.New(color.FgCyan, color.Bold)
	colorMuted    = color.New(color.FgHiBlack)
	colorActive   = color.New(color.FgBlack, color.BgCyan)
	colorUsername = color.New(color.FgHiMagenta)
	colorText     = color.New(color.FgGreen)
	colorHashtag  = color.New(color.FgHiBlue)
	colorLocation = color.New(color.FgYellow)
	colorSource   = color.New(color.FgMagenta)
	colorStatus   = color.New(color.FgCyan)
	colorThreats  = color.New(color.FgRed)
	colorPackets  = color.New(color.FgMagenta)

	reportColors = map[monitor.ReportStatus]*color.Color{
		monitor.ReportNominal:  color.New(color.FgHiGreen, color.Bold),
		monitor.ReportElevated: color.New(color.FgYellow, color.Bold),
		monitor.ReportCritical: color.New(color.FgHiRed, color.Bold),
		monitor.ReportUnknown:  color.New(color.FgHiBlack, color.Bold),
	}
)

// Dashboard lays out the theater map and feed panels as text frames
type Dashboard struct {
	theater *Theater
	width   int
	newline string
}

// NewDashboard creates a dashboard of the given width. newline is "\r\n"
// while the terminal is in raw mode.
func NewDashboard(theater *Theater, width int, newline string) *Dashboard {
	if newline == "" {
		newline = "\n"
	}
	return &Dashboard{theater: theater, width: max(width, 40), newline: newline}
}

// Render clears the screen and draws one frame
func (d *Dashboard) Render(w io.Writer, snap monitor.Snapshot, view ViewMode, now time.Time) error {
	frame := clearScreen + strings.Join(d.Frame(snap, view, now), d.newline) + d.newline
	_, err := io.WriteString(w, frame)
	return err
}

// Frame returns the lines of one frame
func (d *Dashboard) Frame(snap monitor.Snapshot, view ViewMode, now time.Time) []string {
	var lines []string
	lines = append(lines, d.header(snap, view))

	if view.ShowMap() {
		lines = append(lines, d.section("THEATER MAP"))
		lines = append(lines, d.theater.Render(snap.Launches, now)...)
		lines = append(lines, d.legend())
	}

	if view.ShowPanels() {
		rows := 6
		if view == ViewTerminalOnly {
			rows = 12
		}
		lines = append(lines, d.section("TACTICAL FEED: MISSILE ACTIVITY"))
		lines = append(lines, d.missiles(snap.Launches, rows)...)
		lines = append(lines, d.section("COMMS CHANNEL: OPEN INTEL"))
		lines = append(lines, d.messages(snap.Messages, rows)...)
		lines = append(lines, d.section("OFFICIAL BRIEFINGS"))
		lines = append(lines, d.reports(snap.Reports, 3)...)
	}

	if view.ShowMedia() {
		lines = append(lines, d.section("VISUAL INTEL FEED"))
		lines = append(lines, d.media(snap.Media, 4)...)
	}

	lines = append(lines, strings.Repeat("─", d.width), d.footer(snap))
	return lines
}

func (d *Dashboard) header(snap monitor.Snapshot, view ViewMode) string {
	var tabs []string
	for i, m := range ViewModes {
		label := fmt.Sprintf(" %d %s ", i+1, m.Label())
		if m == view {
			label = colorActive.Sprint(label)
		}
		tabs = append(tabs, label)
	}
	state := logger.IconPlay + " LIVE"
	if !snap.Running {
		state = logger.IconPause + " PAUSED"
	}
	return colorTitle.Sprint(title) + "  " + strings.Join(tabs, " ") + "  " + state
}

func (d *Dashboard) section(name string) string {
	label := "── " + name + " "
	pad := d.width - len([]rune(label))
	if pad < 0 {
		pad = 0
	}
	return colorPanel.Sprint(label + strings.Repeat("─", pad))
}

func (d *Dashboard) legend() string {
	return colorMuted.Sprint("  ") +
		colorSideA.Sprint("▲") + " Israel  " +
		colorSideB.Sprint("▼") + " Iran  " +
		colorDetected.Sprint("*") + " detected  " +
		colorEnRoute.Sprint(">") + " en route  " +
		colorImpacted.Sprint("O") + " impact  " +
		colorIntercepted.Sprint("o") + " intercept"
}

func (d *Dashboard) missiles(launches []monitor.LaunchEvent, rows int) []string {
	if len(launches) == 0 {
		return []string{colorMuted.Sprint("No active threats detected.")}
	}

	table := logger.NewTable("ID", "STATUS", "ORIGIN", "DESTINATION", "PAYLOAD", "ETA")
	for i, l := range launches {
		if i >= rows {
			break
		}
		eta := "---"
		if l.Status.Active() {
			eta = fmt.Sprintf("%.1fs", l.ETASeconds)
		}
		table.AddColoredRow(StatusColor(l.Status),
			l.ID, string(l.Status), truncate(l.Origin.Name, 24), truncate(l.Destination.Name, 24), truncate(l.Payload, 28), eta)
	}

	var sb strings.Builder
	table.Render(&sb, "\n")
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	if hidden := len(launches) - rows; hidden > 0 {
		lines = append(lines, colorMuted.Sprintf("... %d more", hidden))
	}
	return lines
}

func (d *Dashboard) messages(messages []monitor.Message, rows int) []string {
	if len(messages) == 0 {
		return []string{colorMuted.Sprint("Awaiting incoming transmissions...")}
	}

	var lines []string
	for i, m := range messages {
		if i >= rows {
			break
		}
		tags := strings.Join(m.Hashtags, " ")
		room := d.width - len([]rune(m.Username)) - len([]rune(tags)) - 3
		lines = append(lines, colorUsername.Sprint(m.Username+":")+" "+
			colorText.Sprint(truncate(m.Text, max(room, 10)))+" "+
			colorHashtag.Sprint(tags))
	}
	return lines
}

func (d *Dashboard) reports(reports []monitor.Report, rows int) []string {
	if len(reports) == 0 {
		return []string{colorMuted.Sprint("No official reports available.")}
	}

	var lines []string
	for i, r := range reports {
		if i >= rows {
			break
		}
		c, ok := reportColors[r.Status]
		if !ok {
			c = reportColors[monitor.ReportUnknown]
		}
		lines = append(lines, c.Sprintf("[%s]", r.Status)+" "+r.Title+" "+
			colorMuted.Sprintf("(%s)", r.Timestamp.Format("2006-01-02")))
		if i == 0 {
			for _, l := range wrap(r.Content, d.width-4) {
				lines = append(lines, "    "+l)
			}
		}
	}
	return lines
}

func (d *Dashboard) media(items []monitor.MediaItem, rows int) []string {
	if len(items) == 0 {
		return []string{colorMuted.Sprint("No visual data streams active.")}
	}

	var lines []string
	for i, m := range items {
		if i >= rows {
			break
		}
		lines = append(lines, colorLocation.Sprint("@ "+truncate(m.Location, 30))+
			" | T: "+m.Time+" | SRC: "+colorSource.Sprint(m.Source)+" "+
			colorMuted.Sprint(m.URL))
	}
	return lines
}

func (d *Dashboard) footer(snap monitor.Snapshot) string {
	return colorStatus.Sprint("STATUS: "+snap.Status) + " | " +
		colorThreats.Sprintf("Active Threats: %d", snap.ActiveThreats) + " | " +
		colorPackets.Sprintf("Intel Packets: %d", snap.IntelPackets) + "   " +
		colorMuted.Sprint("[space] pause  [1-3] view  [q] quit")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// wrap breaks text into lines of at most width runes at word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var current []string
	length := 0
	for _, word := range strings.Fields(text) {
		n := len([]rune(word))
		if length > 0 && length+1+n > width {
			lines = append(lines, strings.Join(current, " "))
			current, length = nil, 0
		}
		if length > 0 {
			length++
		}
		current = append(current, word)
		length += n
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
