package situation

import "fmt"

// ViewMode selects which panels are drawn
type ViewMode string

const (
	ViewDashboard    ViewMode = "dashboard"
	ViewMapOnly      ViewMode = "map_only"
	ViewTerminalOnly ViewMode = "terminal_only"
)

// ViewModes lists the modes in key order (1, 2, 3)
var ViewModes = []ViewMode{ViewDashboard, ViewMapOnly, ViewTerminalOnly}

// ParseViewMode parses a view mode name
func ParseViewMode(s string) (ViewMode, error) {
	for _, m := range ViewModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("view_mode must be one of: dashboard, map_only, terminal_only")
}

// Label is the header caption of the mode
func (m ViewMode) Label() string {
	switch m {
	case ViewMapOnly:
		return "Map Only"
	case ViewTerminalOnly:
		return "Intel Feeds"
	default:
		return "Dashboard"
	}
}

// ShowMap reports whether the theater map is drawn
func (m ViewMode) ShowMap() bool {
	return m != ViewTerminalOnly
}

// ShowPanels reports whether the feed panels are drawn
func (m ViewMode) ShowPanels() bool {
	return m != ViewMapOnly
}

// ShowMedia reports whether the visual intel panel is drawn
func (m ViewMode) ShowMedia() bool {
	return m == ViewDashboard
}
