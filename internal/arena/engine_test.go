package arena

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	e := newTestEngine(t)
	r := e.NewRun(42)
	if r.HP != 10 || r.Score != 0 || r.Stage != 1 || r.QuestionInStage != 1 || r.GlobalMultiplier != 1 {
		t.Fatalf("unexpected initial run %+v", r)
	}
	if r.Mode != ModeQuestion || !r.Loading || r.Fetch != 1 {
		t.Fatalf("expected first question to be requested, got mode=%s loading=%v fetch=%d", r.Mode, r.Loading, r.Fetch)
	}
	if r.AcceptsAnswer() {
		t.Fatalf("expected no answers before the question loads")
	}
}

func TestSubmissionRejections(t *testing.T) {
	e := newTestEngine(t)
	r := e.NewRun(1)

	if _, err := e.Reduce(r, Submit{Guess: "kenya"}); !errors.Is(err, ErrLoading) {
		t.Fatalf("expected ErrLoading, got %v", err)
	}

	r = load(t, e, r)
	got, err := e.Reduce(r, Submit{Guess: "   "})
	if !errors.Is(err, ErrEmptyGuess) {
		t.Fatalf("expected ErrEmptyGuess, got %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Fatalf("expected rejected submit to leave run unchanged")
	}

	r = mustReduce(t, e, r, Submit{Guess: "kenya"})
	if _, err := e.Reduce(r, Submit{Guess: "kenya"}); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, err := e.Reduce(r, Tick{Elapsed: time.Second}); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected tick outside doom rejected, got %v", err)
	}
	for _, err := range []error{ErrLoading, ErrEmptyGuess, ErrLocked, ErrWrongMode} {
		if !IsInvalidSubmission(err) {
			t.Fatalf("expected %v to be an invalid submission", err)
		}
	}
	if IsInvalidSubmission(ErrStaleQuestion) {
		t.Fatalf("stale fetch is not a submission error")
	}
}

func TestAdvanceRequiresResolvedQuestion(t *testing.T) {
	e := newTestEngine(t)
	r := e.NewRun(1)
	if _, err := e.Reduce(r, Advance{}); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected advance while loading rejected, got %v", err)
	}
	r = load(t, e, r)
	if _, err := e.Reduce(r, Advance{}); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected advance before answering rejected, got %v", err)
	}
	r = mustReduce(t, e, r, Submit{Guess: "kenya"})
	r = mustReduce(t, e, r, Advance{})
	if r.QuestionInStage != 2 || r.Round != 2 || r.Fetch != 2 {
		t.Fatalf("unexpected position q=%d round=%d fetch=%d", r.QuestionInStage, r.Round, r.Fetch)
	}
}

func TestStaleQuestionIsDropped(t *testing.T) {
	e := newTestEngine(t)
	r := e.NewRun(1)

	if _, err := e.Reduce(r, QuestionLoaded{Fetch: r.Fetch - 1, Question: lion}); !errors.Is(err, ErrStaleQuestion) {
		t.Fatalf("expected ErrStaleQuestion, got %v", err)
	}
	if _, err := e.Reduce(r, LoadFailed{Fetch: r.Fetch + 1}); !errors.Is(err, ErrStaleQuestion) {
		t.Fatalf("expected stale failure dropped, got %v", err)
	}

	r = load(t, e, r)
	if _, err := e.Reduce(r, QuestionLoaded{Fetch: r.Fetch, Question: lion}); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected duplicate load rejected, got %v", err)
	}
}

func TestLoadFailureAndRetry(t *testing.T) {
	e := newTestEngine(t)
	r := e.NewRun(1)

	if _, err := e.Reduce(r, Retry{}); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected retry without failure rejected, got %v", err)
	}

	r = mustReduce(t, e, r, LoadFailed{Fetch: r.Fetch, Err: errors.New("provider down")})
	if r.LoadError != "provider down" || !r.Loading {
		t.Fatalf("unexpected failure state %q loading=%v", r.LoadError, r.Loading)
	}
	if r.Over() || r.HP != 10 {
		t.Fatalf("expected load failure to be recoverable")
	}

	failedFetch := r.Fetch
	r = mustReduce(t, e, r, Retry{})
	if r.LoadError != "" || r.Fetch != failedFetch+1 {
		t.Fatalf("expected retry to issue fetch %d, got %d", failedFetch+1, r.Fetch)
	}
	if _, err := e.Reduce(r, QuestionLoaded{Fetch: failedFetch, Question: lion}); !errors.Is(err, ErrStaleQuestion) {
		t.Fatalf("expected late result of failed fetch dropped, got %v", err)
	}
	r = load(t, e, r)
	if !r.AcceptsAnswer() {
		t.Fatalf("expected question ready after retry")
	}
}

func TestGameOverIsAbsorbing(t *testing.T) {
	e := newTestEngine(t)
	r := e.NewRun(1)
	r.HP = 1
	r = answerCurrent(t, e, r, "peru")

	events := []Event{
		Advance{}, Retry{}, Submit{Guess: "kenya"}, Tick{Elapsed: time.Second},
		QuestionLoaded{Fetch: r.Fetch, Question: lion}, ChooseAugment{ID: AugmentHearty},
		ChooseTier{Tier: TierBronze},
	}
	for _, ev := range events {
		got, err := e.Reduce(r, ev)
		if !errors.Is(err, ErrGameOver) {
			t.Fatalf("%T: expected ErrGameOver, got %v", ev, err)
		}
		if !reflect.DeepEqual(got, r) {
			t.Fatalf("%T: run changed after game over", ev)
		}
	}
}

type unknownEvent struct{}

func (unknownEvent) isEvent() {}

func TestUnknownEvent(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Reduce(e.NewRun(1), unknownEvent{}); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	e := newTestEngine(t)
	seed := int64(77)

	var events []Event
	r := e.NewRun(seed)
	step := func(ev Event) {
		events = append(events, ev)
		r = mustReduce(t, e, r, ev)
	}
	for r.Mode != ModeDoomSelect && !r.Over() {
		switch r.Mode {
		case ModeQuestion:
			step(QuestionLoaded{Fetch: r.Fetch, Question: lion})
			guess := "kenya"
			if r.Round%3 == 0 {
				guess = "peru"
			}
			step(Submit{Guess: guess})
			if !r.Over() {
				step(Advance{})
			}
		case ModeAugmentSelect:
			step(ChooseAugment{ID: r.Offer[len(r.Offer)-1]})
		}
	}

	replayed := e.Replay(seed, events)
	replayed.ID = r.ID
	if !reflect.DeepEqual(replayed, r) {
		t.Fatalf("replay diverged:\n got %+v\nwant %+v", replayed, r)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "start hp", mutate: func(c *Config) { c.StartHP = 0 }},
		{name: "questions per stage", mutate: func(c *Config) { c.QuestionsPerStage = 0 }},
		{name: "max stage", mutate: func(c *Config) { c.MaxStage = 0 }},
		{name: "offer size", mutate: func(c *Config) { c.OfferSize = 0 }},
		{name: "duplicate augment", mutate: func(c *Config) { c.Catalog = append(c.Catalog, c.Catalog[0]) }},
		{name: "augment without apply", mutate: func(c *Config) { c.Catalog[0].Apply = nil }},
		{name: "no tiers", mutate: func(c *Config) { c.Tiers = nil }},
		{name: "thresholds out of order", mutate: func(c *Config) { c.Tiers[1].Threshold = 0 }},
		{name: "step every", mutate: func(c *Config) { c.Tiers[0].StepEvery = 0 }},
		{name: "min above base", mutate: func(c *Config) { c.Tiers[2].MinTime = time.Minute }},
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if _, err := NewEngine(cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

// TestRandomEventsKeepInvariants drives the engine with arbitrary events and
// checks the resource and modifier invariants after every step.
func TestRandomEventsKeepInvariants(t *testing.T) {
	e := newTestEngine(t)
	tierIDs := []TierID{TierBronze, TierSilver, TierGold, "nope"}
	guesses := []string{"kenya", "peru", "", "tanzania", "Atlantis"}

	for seed := uint64(1); seed <= 40; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31))
		r := e.NewRun(int64(seed))
		for i := 0; i < 400 && !r.Over(); i++ {
			var ev Event
			switch rng.IntN(8) {
			case 0, 1:
				ev = QuestionLoaded{Fetch: r.Fetch, Question: lion}
			case 2, 3:
				ev = Submit{Guess: guesses[rng.IntN(len(guesses))]}
			case 4:
				ev = Advance{}
			case 5:
				ev = Tick{Elapsed: time.Duration(rng.IntN(3000)) * time.Millisecond}
			case 6:
				id := AugmentID("nope")
				if len(r.Offer) > 0 {
					id = r.Offer[rng.IntN(len(r.Offer))]
				}
				ev = ChooseAugment{ID: id}
			default:
				ev = ChooseTier{Tier: tierIDs[rng.IntN(len(tierIDs))]}
			}

			next, err := e.Reduce(r, ev)
			if err != nil {
				if !reflect.DeepEqual(next, r) {
					t.Fatalf("seed %d: rejected %T changed the run", seed, ev)
				}
				continue
			}
			if next.HP < 0 {
				t.Fatalf("seed %d: negative hp %d", seed, next.HP)
			}
			if next.Modifiers.Oath && next.HP > oathCap {
				t.Fatalf("seed %d: hp %d above oath cap", seed, next.HP)
			}
			m := next.Modifiers
			for _, u := range []Uses{m.SafeGuard, m.Flurry, m.Shielded, m.Foresight, m.Leech} {
				if u < 0 {
					t.Fatalf("seed %d: negative uses %+v", seed, m)
				}
			}
			if next.Score < r.Score {
				t.Fatalf("seed %d: score decreased %d -> %d", seed, r.Score, next.Score)
			}
			if next.Dead() && !next.Over() {
				t.Fatalf("seed %d: dead run still playing in %s", seed, next.Mode)
			}
			r = next
		}
	}
}
