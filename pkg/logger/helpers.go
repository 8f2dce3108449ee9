package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Icons and symbols for different log types
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️"
	IconInfo    = "ℹ️"
	IconRocket  = "🚀"
	IconImpact  = "💥"
	IconShield  = "🛡️"
	IconRadio   = "📡"
	IconReport  = "📄"
	IconCamera  = "📷"
	IconPause   = "⏸️"
	IconPlay    = "▶️"
	IconRefresh = "🔄"
	IconDot     = "•"
	IconArrow   = "→"
)

var (
	colorSection    = color.New(color.FgCyan, color.Bold)
	colorSubSection = color.New(color.FgHiBlack)
	colorKey        = color.New(color.FgCyan)
)

func output() (io.Writer, bool) {
	if l, ok := defaultLogger.(*logger); ok {
		l.state.mu.Lock()
		defer l.state.mu.Unlock()
		return l.state.writer, l.state.noColor
	}
	return io.Discard, true
}

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	defaultLogger.Info(IconSuccess + " " + fmt.Sprint(args...))
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message with a refresh icon
func Progress(args ...interface{}) {
	defaultLogger.Info(IconRefresh + " " + fmt.Sprint(args...))
}

// Progressf logs a formatted progress message
func Progressf(format string, args ...interface{}) {
	Progress(fmt.Sprintf(format, args...))
}

func banner(c *color.Color, width int, ch, title string) {
	w, noColor := output()
	line := strings.Repeat(ch, width)
	for _, s := range []string{line, title, line} {
		_, _ = fmt.Fprintln(w, paint(c, noColor, s))
	}
}

// LogSection creates a visual section separator
func LogSection(title string) {
	banner(colorSection, 50, "=", title)
}

// LogSubSection creates a visual subsection separator
func LogSubSection(title string) {
	banner(colorSubSection, 40, "-", title)
}

// LogList logs a list of items with bullets
func LogList(title string, items []string) {
	Info(title)
	w, _ := output()
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  %s %s\n", IconDot, item)
	}
}

// LogKeyValue logs a key-value pair
func LogKeyValue(key string, value interface{}) {
	w, noColor := output()
	_, _ = fmt.Fprintf(w, "%s %v\n", paint(colorKey, noColor, key+":"), value)
}

// Table is a column-aligned text table
type Table struct {
	headers []string
	rows    []tableRow
}

type tableRow struct {
	cells []string
	color *color.Color
}

// NewTable creates a new table
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow adds a plain row
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, tableRow{cells: values})
}

// AddColoredRow adds a row printed in c. Widths are computed on the plain text.
func (t *Table) AddColoredRow(c *color.Color, values ...string) {
	t.rows = append(t.rows, tableRow{cells: values, color: c})
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w, using newline as the line terminator
func (t *Table) Render(w io.Writer, newline string) {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range t.rows {
		for i, cell := range row.cells {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	format := func(cells []string) string {
		var sb strings.Builder
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			sb.WriteString(cell)
			if i < len(widths)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))+2))
			}
		}
		return sb.String()
	}

	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}

	_, _ = fmt.Fprint(w, format(t.headers), newline)
	_, _ = fmt.Fprint(w, format(separators), newline)
	for _, row := range t.rows {
		line := format(row.cells)
		if row.color != nil {
			line = row.color.Sprint(line)
		}
		_, _ = fmt.Fprint(w, line, newline)
	}
}

// Print writes the table to the default logger output
func (t *Table) Print() {
	w, _ := output()
	t.Render(w, "\n")
}
