package answer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var (
	multiSpaceRE = regexp.MustCompile(`\s+`)
	countryCode  = regexp.MustCompile(`^[A-Z]{2,3}$`)
	folder       = cases.Fold()
)

// Fold trims raw, collapses inner whitespace and applies Unicode case folding.
// Two answers are equal when their folded forms are byte-equal.
func Fold(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return multiSpaceRE.ReplaceAllString(folder.String(raw), " ")
}

// Equal reports whether guess matches any of the accepted answers after folding.
func Equal(guess string, accepted []string) bool {
	g := Fold(guess)
	if g == "" {
		return false
	}
	for _, a := range accepted {
		if Fold(a) == g {
			return true
		}
	}
	return false
}

// key reduces raw to folded letters and digits separated by single spaces.
// It is only used for suggestion lookup, never for correctness.
func key(raw string) string {
	folded := Fold(raw)
	if folded == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if unicode.IsSpace(r) || r == '-' || r == '_' || r == '/' || r == '\'' || r == '.' || r == ',' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenise(k string) []string {
	if strings.TrimSpace(k) == "" {
		return nil
	}
	return strings.Fields(k)
}

// CleanOrigins prepares a raw origin list for display: it drops empty values,
// two or three letter codes and shouting all-caps tokens, removes duplicates by
// folded form and sorts the result.
func CleanOrigins(origins []string) []string {
	seen := make(map[string]bool, len(origins))
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "" {
			continue
		}
		if countryCode.MatchString(o) {
			continue
		}
		if o == strings.ToUpper(o) && len(o) > 3 {
			continue
		}
		folded := Fold(o)
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}
