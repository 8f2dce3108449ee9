package situation

import (
	"math"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/picogrid/situation-monitor/pkg/monitor"
)

const (
	// ImpactAnimation is how long the expanding ring is drawn after ImpactTime
	ImpactAnimation = 1200 * time.Millisecond

	impactMaxRadius    = 2.0
	interceptMaxRadius = 1.0

	// terminal cells are roughly twice as tall as they are wide
	cellAspect = 2.0

	boundsPadding = 1.0
)

var (
	colorSideA       = color.New(color.FgCyan, color.Bold)
	colorSideB       = color.New(color.FgRed, color.Bold)
	colorDetected    = color.New(color.FgYellow)
	colorEnRoute     = color.New(color.FgMagenta)
	colorImpacted    = color.New(color.FgRed, color.Bold)
	colorIntercepted = color.New(color.FgBlue, color.Bold)
	colorGrid        = color.New(color.FgHiBlack)
)

// StatusColor returns the display color of a launch status
func StatusColor(s monitor.LaunchStatus) *color.Color {
	switch s {
	case monitor.StatusLaunchDetected:
		return colorDetected
	case monitor.StatusEnRoute:
		return colorEnRoute
	case monitor.StatusIntercepted:
		return colorIntercepted
	default:
		return colorImpacted
	}
}

type cell struct {
	ch    rune
	color *color.Color
}

// Theater is an equirectangular character grid over the sites' bounding box
type Theater struct {
	minLat, maxLat float64
	minLng, maxLng float64
	width, height  int
	sideA, sideB   []monitor.Coordinates
}

// NewTheater fits a width x height grid around both sides' sites
func NewTheater(catalog *monitor.Catalog, width, height int) *Theater {
	t := &Theater{
		minLat: math.Inf(1), maxLat: math.Inf(-1),
		minLng: math.Inf(1), maxLng: math.Inf(-1),
		width:  max(width, 2),
		height: max(height, 2),
		sideA:  catalog.SideA.Locations,
		sideB:  catalog.SideB.Locations,
	}
	for _, c := range catalog.Locations() {
		t.minLat = math.Min(t.minLat, c.Lat)
		t.maxLat = math.Max(t.maxLat, c.Lat)
		t.minLng = math.Min(t.minLng, c.Lng)
		t.maxLng = math.Max(t.maxLng, c.Lng)
	}
	t.minLat -= boundsPadding
	t.maxLat += boundsPadding
	t.minLng -= boundsPadding
	t.maxLng += boundsPadding
	return t
}

// Size returns the grid dimensions
func (t *Theater) Size() (width, height int) {
	return t.width, t.height
}

// Project maps a coordinate to a grid cell. North is row 0.
func (t *Theater) Project(c monitor.Coordinates) (x, y int) {
	fx := (c.Lng - t.minLng) / (t.maxLng - t.minLng)
	fy := (t.maxLat - c.Lat) / (t.maxLat - t.minLat)
	x = int(math.Round(fx * float64(t.width-1)))
	y = int(math.Round(fy * float64(t.height-1)))
	return clamp(x, 0, t.width-1), clamp(y, 0, t.height-1)
}

// Interpolate returns the point a fraction progress of the way from origin to destination
func Interpolate(from, to monitor.Coordinates, progress float64) monitor.Coordinates {
	progress = math.Max(0, math.Min(1, progress))
	return monitor.Coordinates{
		Lat: from.Lat + (to.Lat-from.Lat)*progress,
		Lng: from.Lng + (to.Lng-from.Lng)*progress,
	}
}

// ImpactRadius returns the ring radius in rows for a launch resolved elapsed ago.
// ok is false once the animation is over.
func ImpactRadius(status monitor.LaunchStatus, elapsed time.Duration) (radius float64, ok bool) {
	if !status.Terminal() || elapsed < 0 || elapsed >= ImpactAnimation {
		return 0, false
	}
	maxRadius := impactMaxRadius
	if status == monitor.StatusIntercepted {
		maxRadius = interceptMaxRadius
	}
	progress := float64(elapsed) / float64(ImpactAnimation)
	return maxRadius * math.Sin(progress*math.Pi/2), true
}

// Render draws the sites, launch tracks and impact rings, one string per row
func (t *Theater) Render(launches []monitor.LaunchEvent, now time.Time) []string {
	grid := make([][]cell, t.height)
	for y := range grid {
		grid[y] = make([]cell, t.width)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}
	set := func(x, y int, ch rune, c *color.Color) {
		if x >= 0 && x < t.width && y >= 0 && y < t.height {
			grid[y][x] = cell{ch: ch, color: c}
		}
	}

	// oldest first so newer launches draw on top
	for i := len(launches) - 1; i >= 0; i-- {
		l := launches[i]
		if !l.Status.Active() {
			continue
		}
		c := StatusColor(l.Status)
		x0, y0 := t.Project(l.Origin)
		x1, y1 := t.Project(l.Destination)
		for _, p := range line(x0, y0, x1, y1) {
			set(p[0], p[1], '·', colorGrid)
		}
		hx, hy := t.Project(Interpolate(l.Origin, l.Destination, l.Progress()))
		set(hx, hy, heading(x0, x1, l.Status), c)
	}

	for _, l := range launches {
		if !l.HasImpactTime() {
			continue
		}
		radius, ok := ImpactRadius(l.Status, now.Sub(l.ImpactTime))
		if !ok {
			continue
		}
		cx, cy := t.Project(l.Destination)
		ch := 'O'
		if l.Status == monitor.StatusIntercepted {
			ch = 'o'
		}
		for _, p := range ring(cx, cy, radius) {
			set(p[0], p[1], ch, StatusColor(l.Status))
		}
	}

	for _, s := range t.sideA {
		x, y := t.Project(s)
		set(x, y, '▲', colorSideA)
	}
	for _, s := range t.sideB {
		x, y := t.Project(s)
		set(x, y, '▼', colorSideB)
	}

	rows := make([]string, t.height)
	for y, row := range grid {
		var sb strings.Builder
		for _, c := range row {
			if c.color != nil {
				sb.WriteString(c.color.Sprint(string(c.ch)))
			} else {
				sb.WriteRune(c.ch)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func heading(x0, x1 int, status monitor.LaunchStatus) rune {
	if status == monitor.StatusLaunchDetected {
		return '*'
	}
	if x1 < x0 {
		return '<'
	}
	return '>'
}

// ring returns the cells at distance radius (in rows) from the center,
// stretching columns by the cell aspect ratio. A radius below half a
// cell is just the center.
func ring(cx, cy int, radius float64) [][2]int {
	if radius < 0.5 {
		return [][2]int{{cx, cy}}
	}
	var cells [][2]int
	reach := int(math.Ceil(radius))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -int(math.Ceil(radius * cellAspect)); dx <= int(math.Ceil(radius*cellAspect)); dx++ {
			d := math.Hypot(float64(dx)/cellAspect, float64(dy))
			if math.Abs(d-radius) < 0.5 {
				cells = append(cells, [2]int{cx + dx, cy + dy})
			}
		}
	}
	return cells
}

// line returns the cells of a Bresenham line between two points, endpoints included
func line(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	var cells [][2]int
	for {
		cells = append(cells, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
