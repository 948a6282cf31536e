package answer

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggestion is one candidate canonical answer for a partial input.
type Suggestion struct {
	Canonical string
	Score     float64
	Source    string
}

type phrase struct {
	canonical string
	alias     string
	tokens    []string
}

// Matcher maps free text to canonical answers for autocomplete. It never
// decides correctness; it only proposes what the player probably meant.
type Matcher struct {
	display map[string]string
	phrases []phrase
}

func NewMatcher() *Matcher {
	return &Matcher{display: make(map[string]string)}
}

// Register adds a canonical answer and its aliases.
func (m *Matcher) Register(canonical string, aliases ...string) {
	k := key(canonical)
	if k == "" {
		return
	}
	if _, ok := m.display[k]; !ok {
		m.display[k] = strings.TrimSpace(canonical)
	}
	m.phrases = append(m.phrases, phrase{canonical: k, alias: k, tokens: tokenise(k)})
	for _, a := range aliases {
		n := key(a)
		if n == "" {
			continue
		}
		m.phrases = append(m.phrases, phrase{canonical: k, alias: n, tokens: tokenise(n)})
	}
}

// Len returns the number of registered canonical answers.
func (m *Matcher) Len() int { return len(m.display) }

// Suggest returns up to limit canonical answers for input, best first.
func (m *Matcher) Suggest(input string, limit int) []Suggestion {
	in := key(input)
	if in == "" || limit <= 0 {
		return nil
	}
	inTokens := tokenise(in)

	best := map[string]Suggestion{}
	consider := func(p phrase, score float64, source string) {
		cur, ok := best[p.canonical]
		if ok && cur.Score >= score {
			return
		}
		best[p.canonical] = Suggestion{Canonical: m.display[p.canonical], Score: score, Source: source}
	}

	for _, p := range m.phrases {
		if len(p.tokens) == 0 {
			continue
		}
		if in == p.alias {
			score := 1.0
			source := "exact"
			if p.alias != p.canonical {
				score = 0.97
				source = "alias"
			}
			consider(p, score, source)
			continue
		}
		if strings.HasPrefix(p.alias, in) {
			// Shorter completions rank first.
			consider(p, 0.9-0.001*float64(len(p.alias)-len(in)), "prefix")
			continue
		}
		if tokenPrefix(p.tokens, inTokens) {
			consider(p, 0.8, "word")
			continue
		}
		if len(in) < 3 {
			continue
		}
		compare := p.alias
		if r := []rune(p.alias); len(r) > len([]rune(in))+2 {
			compare = string(r[:len([]rune(in))])
		}
		dist := levenshtein.ComputeDistance(in, compare)
		if dist > levenshteinLimit(len(compare)) {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if compare != p.alias {
			score -= 0.05
		}
		consider(p, score, "lev")
	}

	out := make([]Suggestion, 0, len(best))
	for _, s := range best {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].Canonical < out[j].Canonical
		}
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Resolve returns the canonical answer for input when the match is exact or
// an alias, which is safe to substitute without asking the player.
func (m *Matcher) Resolve(input string) (string, bool) {
	s := m.Suggest(input, 1)
	if len(s) == 0 {
		return "", false
	}
	if s[0].Source != "exact" && s[0].Source != "alias" {
		return "", false
	}
	return s[0].Canonical, true
}

// tokenPrefix reports whether each input token prefixes a distinct later word.
func tokenPrefix(words, in []string) bool {
	if len(in) == 0 || len(in) > len(words) {
		return false
	}
	wi := 0
	for _, t := range in {
		found := false
		for wi < len(words) {
			w := words[wi]
			wi++
			if strings.HasPrefix(w, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
