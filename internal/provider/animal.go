package provider

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/appengine-ltd/bioguessr/internal/arena"
)

// Animal is one record of the animal catalog and the body of /api/play.
type Animal struct {
	Name            string   `json:"name"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	ImageURLSnake   string   `json:"image_url,omitempty"`
	LocalImagePath  string   `json:"local_image_path,omitempty"`
	Countries       []string `json:"countries,omitempty"`
	Characteristics Traits   `json:"characteristics,omitempty"`
	Taxonomy        Taxonomy `json:"taxonomy"`
}

type Taxonomy struct {
	ScientificName string `json:"scientific_name,omitempty"`
	Kingdom        string `json:"kingdom,omitempty"`
	Class          string `json:"class,omitempty"`
	Family         string `json:"family,omitempty"`
}

// Traits holds characteristics as strings. Numeric and boolean values in the
// source data are kept in their JSON text form; nested values are dropped.
type Traits map[string]string

func (t *Traits) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("characteristics: %w", err)
	}
	out := make(Traits, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		text := strings.TrimSpace(string(v))
		if _, err := strconv.ParseFloat(text, 64); err == nil || text == "true" || text == "false" {
			out[k] = text
		}
	}
	*t = out
	return nil
}

// Image returns the first non-empty image reference.
func (a Animal) Image() string {
	for _, s := range []string{a.ImageURLSnake, a.ImageURL, a.LocalImagePath} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Playable reports whether a record can be served as a question. A record
// without countries could never be answered correctly.
func (a Animal) Playable() bool {
	return strings.TrimSpace(a.Name) != "" && len(a.Characteristics) > 0 &&
		a.Image() != "" && len(a.origins()) > 0
}

func (a Animal) origins() []string {
	var out []string
	for _, c := range a.Countries {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Question converts the record into the engine's question shape.
func (a Animal) Question() arena.Question {
	q := arena.Question{
		Name:           strings.TrimSpace(a.Name),
		ScientificName: strings.TrimSpace(a.Taxonomy.ScientificName),
		ImageURL:       a.Image(),
		Origins:        a.origins(),
	}
	if len(a.Characteristics) > 0 {
		q.Traits = make(map[string]string, len(a.Characteristics))
		for k, v := range a.Characteristics {
			q.Traits[k] = v
		}
	}
	return q
}
