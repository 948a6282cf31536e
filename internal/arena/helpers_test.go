package arena

import "testing"

var lion = Question{
	Name:           "Lion",
	ScientificName: "Panthera leo",
	Origins:        []string{"Kenya", "Tanzania", "South Africa"},
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func mustReduce(t *testing.T, e *Engine, r Run, ev Event) Run {
	t.Helper()
	next, err := e.Reduce(r, ev)
	if err != nil {
		t.Fatalf("reduce %T: %v", ev, err)
	}
	return next
}

func load(t *testing.T, e *Engine, r Run) Run {
	t.Helper()
	return mustReduce(t, e, r, QuestionLoaded{Fetch: r.Fetch, Question: lion})
}

// answerCurrent loads a question if needed and submits guess.
func answerCurrent(t *testing.T, e *Engine, r Run, guess string) Run {
	t.Helper()
	if r.Loading {
		r = load(t, e, r)
	}
	return mustReduce(t, e, r, Submit{Guess: guess})
}
