// Package leaderboard records finished runs and ranks them.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// TopSize is the number of entries the leaderboard shows.
const TopSize = 10

var ErrInvalidEntry = errors.New("invalid leaderboard entry")

var initialsRE = regexp.MustCompile(`^[A-Z]{1,3}$`)

// Entry is one finished run.
type Entry struct {
	Initials string `json:"initials"`
	Score    int    `json:"score"`
}

// Sink receives the final score of each run.
type Sink interface {
	Submit(ctx context.Context, e Entry) error
}

// Board lists the best scores.
type Board interface {
	Top(ctx context.Context, n int) ([]Entry, error)
}

// NormalizeInitials upper-cases raw and checks it is one to three letters.
func NormalizeInitials(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !initialsRE.MatchString(s) {
		return "", fmt.Errorf("%w: initials must be 1-3 letters, got %q", ErrInvalidEntry, raw)
	}
	return s, nil
}

// Normalize returns e with canonical initials, or an error when e cannot be
// recorded.
func (e Entry) Normalize() (Entry, error) {
	initials, err := NormalizeInitials(e.Initials)
	if err != nil {
		return Entry{}, err
	}
	if e.Score < 0 {
		return Entry{}, fmt.Errorf("%w: negative score %d", ErrInvalidEntry, e.Score)
	}
	return Entry{Initials: initials, Score: e.Score}, nil
}
