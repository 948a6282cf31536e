package arena

import (
	"fmt"
	"strings"
)

const dailyPoints = 100

// Daily is the daily challenge: a fixed list of questions worth a flat
// 100 points each, with no HP, augments or Doom Trial.
type Daily struct {
	Date      string     `json:"date"`
	Questions []Question `json:"questions"`
	Round     int        `json:"round"`
	Score     int        `json:"score"`
	Locked    bool       `json:"locked"`
	Correct   bool       `json:"correct"`
	Feedback  string     `json:"feedback,omitempty"`
}

func NewDaily(date string, questions []Question) Daily {
	return Daily{Date: date, Questions: append([]Question(nil), questions...)}
}

// Done reports whether every question has been answered and advanced past.
func (d Daily) Done() bool { return d.Round >= len(d.Questions) }

// Current returns the question being played, or nil once done.
func (d Daily) Current() *Question {
	if d.Done() {
		return nil
	}
	return &d.Questions[d.Round]
}

// MaxScore is the score of a perfect challenge.
func (d Daily) MaxScore() int { return dailyPoints * len(d.Questions) }

// Submit resolves the current question. Rejections return d unchanged.
func (d Daily) Submit(guess string) (Daily, error) {
	switch {
	case d.Done():
		return d, ErrGameOver
	case d.Locked:
		return d, ErrLocked
	case strings.TrimSpace(guess) == "":
		return d, ErrEmptyGuess
	}
	q := d.Current()
	d.Locked = true
	d.Correct = Correct(q, guess)
	if d.Correct {
		d.Score += dailyPoints
		d.Feedback = fmt.Sprintf("Correct! (+%d)", dailyPoints)
		return d, nil
	}
	d.Feedback = "Not quite. The correct regions are: " + strings.Join(q.Origins, ", ") + "."
	return d, nil
}

// Next moves past a resolved question.
func (d Daily) Next() (Daily, error) {
	switch {
	case d.Done():
		return d, ErrGameOver
	case !d.Locked:
		return d, ErrWrongMode
	}
	d.Round++
	d.Locked, d.Correct, d.Feedback = false, false, ""
	return d, nil
}
