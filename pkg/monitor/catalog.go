package monitor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Side is one party of the conflict with its fixed set of sites
type Side struct {
	Name      string        `yaml:"name"`
	Locations []Coordinates `yaml:"locations"`
}

// Phrases holds the fragments interpolated into intercepted messages
type Phrases struct {
	EventTypes      []string `yaml:"event_types"`
	SpecificActions []string `yaml:"specific_actions"`
	Observations    []string `yaml:"observations"`
	Rumors          []string `yaml:"rumors"`
	Questions       []string `yaml:"questions"`
	Situations      []string `yaml:"situations"`
	Areas           []string `yaml:"areas"`
	Adjectives      []string `yaml:"adjectives"`
	NounPhrases     []string `yaml:"noun_phrases"`
	Actors          []string `yaml:"actors"`
}

// Catalog is the fixed vocabulary every generator samples from
type Catalog struct {
	SideA          Side     `yaml:"side_a"`
	SideB          Side     `yaml:"side_b"`
	Payloads       []string `yaml:"payloads"`
	Usernames      []string `yaml:"usernames"`
	Hashtags       []string `yaml:"hashtags"`
	ReportPrefixes []string `yaml:"report_prefixes"`
	ReportPostures []string `yaml:"report_postures"`
	MediaSources   []string `yaml:"media_sources"`
	Phrases        Phrases  `yaml:"phrases"`
}

// Locations returns the sites of both sides combined
func (c *Catalog) Locations() []Coordinates {
	all := make([]Coordinates, 0, len(c.SideA.Locations)+len(c.SideB.Locations))
	all = append(all, c.SideA.Locations...)
	return append(all, c.SideB.Locations...)
}

// Validate ensures every set a generator draws from is non-empty
func (c *Catalog) Validate() error {
	sets := []struct {
		name string
		size int
	}{
		{"side_a.locations", len(c.SideA.Locations)},
		{"side_b.locations", len(c.SideB.Locations)},
		{"payloads", len(c.Payloads)},
		{"usernames", len(c.Usernames)},
		{"hashtags", len(c.Hashtags)},
		{"report_prefixes", len(c.ReportPrefixes)},
		{"report_postures", len(c.ReportPostures)},
		{"media_sources", len(c.MediaSources)},
		{"phrases.event_types", len(c.Phrases.EventTypes)},
		{"phrases.specific_actions", len(c.Phrases.SpecificActions)},
		{"phrases.observations", len(c.Phrases.Observations)},
		{"phrases.rumors", len(c.Phrases.Rumors)},
		{"phrases.questions", len(c.Phrases.Questions)},
		{"phrases.situations", len(c.Phrases.Situations)},
		{"phrases.areas", len(c.Phrases.Areas)},
		{"phrases.adjectives", len(c.Phrases.Adjectives)},
		{"phrases.noun_phrases", len(c.Phrases.NounPhrases)},
		{"phrases.actors", len(c.Phrases.Actors)},
	}
	for _, s := range sets {
		if s.size == 0 {
			return fmt.Errorf("catalog %s must not be empty", s.name)
		}
	}
	return nil
}

// LoadCatalog reads a catalog override from a YAML file
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and validates it
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &catalog, nil
}

// DefaultCatalog returns the built-in Israel/Iran theater vocabulary
func DefaultCatalog() *Catalog {
	return &Catalog{
		SideA: Side{
			Name: "Israel",
			Locations: []Coordinates{
				{Name: "Tel Aviv Central Command", Lng: 34.7818, Lat: 32.0853},
				{Name: "Jerusalem District HQ", Lng: 35.2137, Lat: 31.7683},
				{Name: "Haifa Naval Base", Lng: 34.9896, Lat: 32.7940},
				{Name: "Negev Research Complex", Lng: 35.1118, Lat: 31.0710},
				{Name: "Eilat Port Authority", Lng: 34.9530, Lat: 29.5577},
				{Name: "Golan Heights Outpost", Lng: 35.7500, Lat: 33.0000},
			},
		},
		SideB: Side{
			Name: "Iran",
			Locations: []Coordinates{
				{Name: "Tehran Command Citadel", Lng: 51.3890, Lat: 35.6892},
				{Name: "Isfahan Aerospace Facility", Lng: 51.6670, Lat: 32.6546},
				{Name: "Bushehr Coastal Point", Lng: 50.8353, Lat: 28.9725},
				{Name: "Kavir Enrichment Site", Lng: 51.7278, Lat: 33.7250},
				{Name: "Bandar Abbas Naval HQ", Lng: 56.2808, Lat: 27.1865},
				{Name: "Kermanshah Border Post", Lng: 47.0650, Lat: 34.3142},
			},
		},
		Payloads: []string{
			"Ballistic Warhead", "EMP Pulse Device", "Bunker Buster Unit", "Cybernetic Agent",
			"Area Denial Munition", "Recon Drone Swarm", "Precision Strike Package", "Jamming Array",
			"Hypersonic Glide Vehicle", "Intel Packet Interceptor",
		},
		Usernames: []string{
			"Growing Daniel", "Blair Waldorfyan", "Vittorio", "severeengineer",
			"bronzeageshawty", "Greg Coppola", "SMA", "fintwt Mikael",
			"Gregory (6'3)", "Miles (formerly Pariah the Doll)", "Micci",
		},
		Hashtags: []string{
			"#MidEastCrisis", "#IranIsraelTensions", "#RegionalConflict", "#RedAlert",
			"#IronShield", "#DesertStormAlpha", "#CyberWarfareME", "#GeopoliticsNow",
			"#BreakingIntel", "#Flashpoint", "#WarAlert",
		},
		ReportPrefixes: []string{
			"CENTCOM Briefing", "Mossad Intel Update", "IRGC SitRep",
			"Regional Security Council Advisory", "ME Desk Analysis", "Emergency Broadcast",
			"DEFCON Status Report", "Cyber Command Alert",
		},
		ReportPostures: []string{
			"Defensive systems fully operational.", "Offensive capabilities being assessed.",
			"Civilian alert levels raised.", "Full spectrum dominance asserted.",
		},
		MediaSources: []string{
			"SAT-IMAGE", "BORDER-CAM", "UAV-DRONE", "LEAKED-INTEL", "SIGINT", "FIELD-REPORT-IMG",
		},
		Phrases: Phrases{
			EventTypes: []string{
				"explosions", "artillery fire", "drone activity", "fighter jet patrols", "troop movements",
				"cyberattacks", "signal jamming", "missile defense activation", "ground skirmishes",
			},
			SpecificActions: []string{
				"retaliatory strikes", "a border incursion", "a special operation", "a precision strike",
				"asset mobilization", "a defensive maneuver", "an intel sweep", "establishing a no-fly zone",
			},
			Observations: []string{
				"unusual troop formations", "heavy smoke plumes", "disrupted communications", "increased air traffic",
				"GPS spoofing", "fortification construction", "convoy movements", "naval patrols",
			},
			Rumors: []string{
				"a high-value target was hit", "negotiations have broken down", "a third party is intervening",
				"new advanced weaponry deployed", "an ultimatum has been issued", "a ceasefire is being discussed",
				"foreign assets are repositioning",
			},
			Questions: []string{
				"Anyone confirm this?", "What's the source?", "Is this verified?", "Impact on civilians?",
				"Official statement soon?", "Any visual confirmation?", "What are the implications?",
			},
			Situations: []string{
				"Major escalation imminent.", "Things are heating up rapidly.", "Holding our breath here.",
				"Information lockdown in effect.", "Uncertainty reigns across the region.",
				"Tensions at breaking point.", "Monitoring closely.",
			},
			Areas: []string{
				"the northern sector", "the southern border", "coastal regions", "urban centers",
				"the desert outskirts", "key infrastructure nodes", "disputed territories",
				"airspace violations reported near",
			},
			Adjectives: []string{
				"heavy", "intense", "sporadic", "confirmed", "unconfirmed", "significant", "minor", "escalating",
			},
			NounPhrases: []string{
				"military buildup", "civilian displacement", "emergency services response",
				"propaganda surge", "diplomatic fallout", "economic sanctions",
			},
			Actors: []string{"IR", "IDF"},
		},
	}
}
