package arena

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config holds the rule constants of a run.
type Config struct {
	StartHP           int
	QuestionsPerStage int
	MaxStage          int
	OfferSize         int
	Catalog           []AugmentDefinition
	Tiers             []DoomTierConfig
}

// DefaultConfig returns the arena rules: 10 HP, four stages of four
// questions, three augment choices, bronze/silver/gold Doom tiers.
func DefaultConfig() Config {
	return Config{
		StartHP:           10,
		QuestionsPerStage: 4,
		MaxStage:          4,
		OfferSize:         3,
		Catalog:           Catalog(),
		Tiers:             Tiers(),
	}
}

func (c Config) Validate() error {
	if c.StartHP < 1 {
		return fmt.Errorf("start hp must be at least 1, got %d", c.StartHP)
	}
	if c.QuestionsPerStage < 1 {
		return fmt.Errorf("questions per stage must be at least 1, got %d", c.QuestionsPerStage)
	}
	if c.MaxStage < 1 {
		return fmt.Errorf("max stage must be at least 1, got %d", c.MaxStage)
	}
	if c.OfferSize < 1 {
		return fmt.Errorf("offer size must be at least 1, got %d", c.OfferSize)
	}
	seen := map[AugmentID]bool{}
	for _, d := range c.Catalog {
		if d.ID == "" || d.Apply == nil {
			return fmt.Errorf("augment %q is incomplete", d.ID)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate augment: %s", d.ID)
		}
		seen[d.ID] = true
	}
	if len(c.Tiers) == 0 {
		return errors.New("at least one doom tier is required")
	}
	for i, t := range c.Tiers {
		if err := t.validate(); err != nil {
			return err
		}
		if i > 0 && t.Threshold <= c.Tiers[i-1].Threshold {
			return fmt.Errorf("doom tier %s: threshold %d must exceed %d", t.ID, t.Threshold, c.Tiers[i-1].Threshold)
		}
	}
	return nil
}

// Engine applies events to runs. It holds only immutable configuration, so
// one Engine may serve any number of runs.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's rules.
func (e *Engine) Config() Config { return e.cfg }

// Augment looks up a catalog entry.
func (e *Engine) Augment(id AugmentID) (AugmentDefinition, bool) {
	return findAugment(e.cfg.Catalog, id)
}

// Tier looks up a Doom tier.
func (e *Engine) Tier(id TierID) (DoomTierConfig, bool) {
	return findTier(e.cfg.Tiers, id)
}

// NewRun starts a run at stage 1, question 1, waiting for its first question.
func (e *Engine) NewRun(seed int64) Run {
	r := Run{
		ID:               uuid.New(),
		Seed:             seed,
		Stage:            1,
		QuestionInStage:  1,
		Round:            1,
		HP:               e.cfg.StartHP,
		GlobalMultiplier: 1,
		Mode:             ModeQuestion,
	}
	return r.beginQuestion()
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// QuestionLoaded delivers the result of fetch number Fetch.
type QuestionLoaded struct {
	Fetch    uint64
	Question Question
}

// LoadFailed reports that fetch number Fetch failed.
type LoadFailed struct {
	Fetch uint64
	Err   error
}

// Retry asks for the failed question again.
type Retry struct{}

// Submit is a player's answer.
type Submit struct {
	Guess string
}

// Tick advances the Doom timer.
type Tick struct {
	Elapsed time.Duration
}

// Advance leaves a resolved question.
type Advance struct{}

// ChooseAugment picks one of the offered augments.
type ChooseAugment struct {
	ID AugmentID
}

// ChooseTier enters the Doom Trial at the given tier.
type ChooseTier struct {
	Tier TierID
}

func (QuestionLoaded) isEvent() {}
func (LoadFailed) isEvent()     {}
func (Retry) isEvent()          {}
func (Submit) isEvent()         {}
func (Tick) isEvent()           {}
func (Advance) isEvent()        {}
func (ChooseAugment) isEvent()  {}
func (ChooseTier) isEvent()     {}

// Reduce applies ev to r. It is pure: the same Run and Event always produce
// the same result. A non-nil error means the event was rejected and the
// returned Run is r unchanged.
func (e *Engine) Reduce(r Run, ev Event) (Run, error) {
	if r.Over() {
		return r, ErrGameOver
	}

	var (
		next Run
		err  error
	)
	switch ev := ev.(type) {
	case QuestionLoaded:
		next, err = e.questionLoaded(r, ev)
	case LoadFailed:
		next, err = e.loadFailed(r, ev)
	case Retry:
		next, err = e.retry(r)
	case Submit:
		next, err = e.submit(r, ev.Guess)
	case Tick:
		next, err = e.tick(r, ev.Elapsed)
	case Advance:
		next, err = e.advance(r)
	case ChooseAugment:
		next, err = e.chooseAugment(r, ev.ID)
	case ChooseTier:
		next, err = e.chooseTier(r, ev.Tier)
	default:
		return r, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
	if err != nil {
		return r, err
	}
	return next, nil
}

// Replay folds events over a fresh run, skipping rejected events.
func (e *Engine) Replay(seed int64, events []Event) Run {
	r := e.NewRun(seed)
	for _, ev := range events {
		r, _ = e.Reduce(r, ev)
	}
	return r
}

func (e *Engine) questionLoaded(r Run, ev QuestionLoaded) (Run, error) {
	if !r.Loading {
		return r, ErrWrongMode
	}
	if ev.Fetch != r.Fetch {
		return r, ErrStaleQuestion
	}
	q := ev.Question
	r.Question = &q
	r.Loading = false
	r.LoadError = ""
	r.Locked = false
	r.Feedback = ""
	if r.Mode == ModeDoomTrial {
		r = e.startTimer(r)
	}
	return r, nil
}

func (e *Engine) loadFailed(r Run, ev LoadFailed) (Run, error) {
	if !r.Loading {
		return r, ErrWrongMode
	}
	if ev.Fetch != r.Fetch {
		return r, ErrStaleQuestion
	}
	msg := "question provider unavailable"
	if ev.Err != nil {
		msg = ev.Err.Error()
	}
	r.LoadError = msg
	return r, nil
}

func (e *Engine) retry(r Run) (Run, error) {
	if !r.Loading || r.LoadError == "" {
		return r, ErrWrongMode
	}
	r.LoadError = ""
	r.Fetch++
	return r, nil
}

func (e *Engine) submit(r Run, guess string) (Run, error) {
	if r.Mode != ModeQuestion && r.Mode != ModeDoomTrial {
		return r, ErrWrongMode
	}
	if r.Loading || r.Question == nil {
		return r, ErrLoading
	}
	if r.Locked {
		return r, ErrLocked
	}
	if strings.TrimSpace(guess) == "" {
		return r, ErrEmptyGuess
	}
	correct := Correct(r.Question, guess)
	if r.Mode == ModeDoomTrial {
		return e.resolveDoom(r, correct, false), nil
	}
	return e.scoreQuestion(r, correct), nil
}

func (e *Engine) advance(r Run) (Run, error) {
	if r.Loading || r.Question == nil || !r.Locked {
		return r, ErrWrongMode
	}
	switch r.Mode {
	case ModeQuestion:
		return e.advanceStage(r), nil
	case ModeDoomTrial:
		return e.advanceDoom(r), nil
	default:
		return r, ErrWrongMode
	}
}
