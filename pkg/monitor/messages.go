package monitor

import (
	"fmt"
	"strings"
)

// messageStrategy renders the text of a post about location
type messageStrategy func(g *Generator, location Coordinates) string

// messageStrategies is sampled uniformly; order is stable for seeded runs.
var messageStrategies = []messageStrategy{
	observationalMessage,
	eventMessage,
	rumorMessage,
	actionMessage,
	situationMessage,
}

func observationalMessage(g *Generator, location Coordinates) string {
	p := g.catalog.Phrases
	return fmt.Sprintf("Seeing %s %s near %s. %s",
		pick(g.rng, p.Adjectives), pick(g.rng, p.Observations), location.Name, pick(g.rng, p.Questions))
}

func eventMessage(g *Generator, location Coordinates) string {
	p := g.catalog.Phrases
	return fmt.Sprintf("%s %s reported in %s's vicinity. %s",
		strings.ToUpper(pick(g.rng, p.Adjectives)), pick(g.rng, p.EventTypes), location.Name, pick(g.rng, p.Situations))
}

func rumorMessage(g *Generator, location Coordinates) string {
	p := g.catalog.Phrases
	return fmt.Sprintf("Unconfirmed chatter: %s linked to events at %s. Is this credible?",
		pick(g.rng, p.Rumors), location.Name)
}

func actionMessage(g *Generator, location Coordinates) string {
	p := g.catalog.Phrases
	return fmt.Sprintf("Sources claim %s initiating %s around %s near %s.",
		pick(g.rng, p.Actors), pick(g.rng, p.SpecificActions), pick(g.rng, p.Areas), location.Name)
}

func situationMessage(g *Generator, location Coordinates) string {
	p := g.catalog.Phrases
	return fmt.Sprintf("The situation in %s is evolving. %s observed. %s",
		location.Name, pick(g.rng, p.NounPhrases), pick(g.rng, p.Situations))
}
