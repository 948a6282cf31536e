package arena

import (
	"errors"
	"reflect"
	"testing"
)

func TestDailyPlaysThrough(t *testing.T) {
	tiger := Question{Name: "Tiger", Origins: []string{"India"}}
	d := NewDaily("2026-10-14", []Question{lion, tiger})
	if d.Done() || d.Current().Name != "Lion" || d.MaxScore() != 200 {
		t.Fatalf("unexpected start %+v", d)
	}

	d, err := d.Submit("  KENYA ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if d.Score != 100 || !d.Correct || d.Feedback != "Correct! (+100)" {
		t.Fatalf("unexpected resolution %+v", d)
	}
	d, _ = d.Next()

	d, _ = d.Submit("peru")
	if d.Score != 100 || d.Correct || d.Feedback != "Not quite. The correct regions are: India." {
		t.Fatalf("unexpected wrong answer %+v", d)
	}
	d, _ = d.Next()
	if !d.Done() || d.Current() != nil {
		t.Fatalf("expected challenge complete, got round %d", d.Round)
	}
}

func TestDailyRejections(t *testing.T) {
	d := NewDaily("2026-10-14", []Question{lion})
	tests := []struct {
		name string
		run  Daily
		step func(Daily) (Daily, error)
		want error
	}{
		{name: "empty guess", run: d, step: func(d Daily) (Daily, error) { return d.Submit("  ") }, want: ErrEmptyGuess},
		{name: "next before answering", run: d, step: Daily.Next, want: ErrWrongMode},
		{name: "answer twice", run: mustDaily(d.Submit("kenya")), step: func(d Daily) (Daily, error) { return d.Submit("kenya") }, want: ErrLocked},
		{name: "submit when done", run: NewDaily("x", nil), step: func(d Daily) (Daily, error) { return d.Submit("kenya") }, want: ErrGameOver},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.step(tc.run)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !reflect.DeepEqual(got, tc.run) {
				t.Fatalf("rejection changed the challenge: %+v", got)
			}
		})
	}
}

func mustDaily(d Daily, err error) Daily {
	if err != nil {
		panic(err)
	}
	return d
}
