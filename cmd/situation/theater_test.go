package situation

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/situation-monitor/pkg/monitor"
)

var (
	west = monitor.Coordinates{Name: "West Post", Lat: 1, Lng: 1}
	east = monitor.Coordinates{Name: "East Post", Lat: 9, Lng: 21}
)

// smallTheater spans lat 0..10 and lng 0..22 on a 23x11 grid, one cell per degree
func smallTheater() *Theater {
	catalog := &monitor.Catalog{
		SideA: monitor.Side{Name: "West", Locations: []monitor.Coordinates{west}},
		SideB: monitor.Side{Name: "East", Locations: []monitor.Coordinates{east}},
	}
	return NewTheater(catalog, 23, 11)
}

func TestTheaterProject(t *testing.T) {
	th := smallTheater()

	x, y := th.Project(west)
	assert.Equal(t, 1, x)
	assert.Equal(t, 9, y, "south is further down")

	x, y = th.Project(east)
	assert.Equal(t, 21, x)
	assert.Equal(t, 1, y)

	x, y = th.Project(monitor.Coordinates{Lat: 50, Lng: -5})
	assert.Equal(t, 0, x, "clamped to the grid")
	assert.Equal(t, 0, y)
}

func TestDefaultTheaterKeepsSitesInside(t *testing.T) {
	catalog := monitor.DefaultCatalog()
	th := NewTheater(catalog, 80, 16)
	w, h := th.Size()

	for _, c := range catalog.Locations() {
		x, y := th.Project(c)
		assert.True(t, x > 0 && x < w-1, "%s x=%d", c.Name, x)
		assert.True(t, y > 0 && y < h-1, "%s y=%d", c.Name, y)
	}
}

func TestInterpolate(t *testing.T) {
	mid := Interpolate(west, east, 0.5)
	assert.InDelta(t, 5.0, mid.Lat, 1e-9)
	assert.InDelta(t, 11.0, mid.Lng, 1e-9)

	assert.Equal(t, west.Lat, Interpolate(west, east, -1).Lat)
	assert.Equal(t, east.Lng, Interpolate(west, east, 2).Lng)
}

func TestImpactRadius(t *testing.T) {
	r, ok := ImpactRadius(monitor.StatusImpacted, 0)
	require.True(t, ok)
	assert.Zero(t, r)

	r, ok = ImpactRadius(monitor.StatusImpacted, 600*time.Millisecond)
	require.True(t, ok)
	assert.InDelta(t, 2*math.Sin(math.Pi/4), r, 1e-9)

	r, ok = ImpactRadius(monitor.StatusIntercepted, 1199*time.Millisecond)
	require.True(t, ok)
	assert.True(t, r < 1 && r > 0.99)

	_, ok = ImpactRadius(monitor.StatusImpacted, ImpactAnimation)
	assert.False(t, ok, "ring is gone once the animation ends")

	_, ok = ImpactRadius(monitor.StatusEnRoute, 100*time.Millisecond)
	assert.False(t, ok)
}

func TestRingCenterOnlyWhenSmall(t *testing.T) {
	assert.Equal(t, [][2]int{{5, 5}}, ring(5, 5, 0.2))

	cells := ring(10, 10, 2)
	require.NotEmpty(t, cells)
	for _, c := range cells {
		d := math.Hypot(float64(c[0]-10)/cellAspect, float64(c[1]-10))
		assert.InDelta(t, 2, d, 0.5)
	}
}

func TestLineIncludesEndpoints(t *testing.T) {
	cells := line(0, 0, 4, 2)
	assert.Equal(t, [2]int{0, 0}, cells[0])
	assert.Equal(t, [2]int{4, 2}, cells[len(cells)-1])
	assert.Len(t, cells, 5)
}

func TestTheaterRender(t *testing.T) {
	color.NoColor = true
	th := smallTheater()
	now := time.Date(2025, 6, 13, 4, 30, 0, 0, time.UTC)

	inFlight := monitor.LaunchEvent{
		ID: "msl-flight01", Origin: west, Destination: east,
		ETASeconds: 10, FlightSeconds: 20, Status: monitor.StatusEnRoute,
	}
	impacted := monitor.LaunchEvent{
		ID: "msl-impact01", Origin: east, Destination: west,
		Status: monitor.StatusImpacted, ImpactTime: now.Add(-600 * time.Millisecond),
	}

	rows := th.Render([]monitor.LaunchEvent{inFlight, impacted}, now)
	require.Len(t, rows, 11)

	grid := make([][]rune, len(rows))
	for i, r := range rows {
		grid[i] = []rune(r)
		assert.Len(t, grid[i], 23)
	}

	assert.Equal(t, '▲', grid[9][1])
	assert.Equal(t, '▼', grid[1][21])
	assert.Equal(t, '>', grid[5][11], "head drawn halfway along the track")
	assert.Contains(t, strings.Join(rows, "\n"), "O", "impact ring drawn around the destination")
}
