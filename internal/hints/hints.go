// Package hints builds the one-line clues shown under an animal's image.
package hints

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/appengine-ltd/bioguessr/internal/arena"
)

const (
	noData    = "No data for this animal yet."
	noFeature = "No descriptive information available."
	noExtra   = "Extra info unavailable."
)

var habitatSep = regexp.MustCompile(`[;,]`)

type clue struct {
	keys   []string
	format string
	shape  func(string) string
}

var featureChain = []clue{
	{keys: []string{"location", "region"}, format: "Location – %s."},
	{keys: []string{"habitat"}, format: "Habitat – %s.", shape: shortenHabitat},
	{keys: []string{"most_distinctive_feature", "distinctive_feature"}, format: "Most distinctive feature – %s."},
	{keys: []string{"diet"}, format: "Diet – %s."},
	{keys: []string{"lifestyle"}, format: "Lifestyle – %s."},
	{keys: []string{"slogan"}, format: "%s"},
}

var weightChain = []clue{
	{keys: []string{"weight"}, format: "Typical weight: %s."},
	{keys: []string{"length", "size"}, format: "Typical size: %s."},
	{keys: []string{"top_speed", "speed"}, format: "Top speed: %s."},
}

// FeatureHint returns the most useful descriptive clue for q, preferring the
// animal's location and falling back through habitat, distinguishing
// feature, diet, lifestyle and slogan.
func FeatureHint(q *arena.Question) string {
	if q == nil {
		return noData
	}
	if s, ok := first(q.Traits, featureChain); ok {
		return s
	}
	return noFeature
}

// WeightHint returns a size clue: weight, then length, then top speed.
func WeightHint(q *arena.Question) string {
	if q == nil {
		return noExtra
	}
	if s, ok := first(q.Traits, weightChain); ok {
		return s
	}
	return noExtra
}

func first(traits map[string]string, chain []clue) (string, bool) {
	for _, c := range chain {
		v := lookup(traits, c.keys)
		if c.shape != nil {
			v = c.shape(v)
		}
		if v != "" {
			return fmt.Sprintf(c.format, v), true
		}
	}
	return "", false
}

func lookup(traits map[string]string, keys []string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(traits[k]); v != "" {
			return v
		}
	}
	return ""
}

// shortenHabitat keeps the first two entries of a comma or semicolon
// separated list: "deserts, high veld, savanna" becomes "deserts and high veld".
func shortenHabitat(habitat string) string {
	var parts []string
	for _, p := range habitatSep.Split(habitat, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch {
	case len(parts) == 0:
		return ""
	case len(parts) == 1:
		return parts[0]
	default:
		return parts[0] + " and " + parts[1]
	}
}
