package arena

import (
	"time"

	"github.com/google/uuid"
)

type Mode int

const (
	ModeQuestion Mode = iota
	ModeAugmentSelect
	ModeDoomSelect
	ModeDoomTrial
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeQuestion:
		return "Question"
	case ModeAugmentSelect:
		return "AugmentSelect"
	case ModeDoomSelect:
		return "DoomSelect"
	case ModeDoomTrial:
		return "DoomTrial"
	case ModeGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Cause tags why a run reached GameOver.
type Cause string

const (
	CauseNone         Cause = ""
	CauseHPZero       Cause = "hp-zero"
	CauseAugmentDeath Cause = "hp-zero-after-augment"
	CauseDoomDeath    Cause = "doom-death"
	CauseDoomFail     Cause = "doom-fail"
)

// Question is one animal record from the question provider.
type Question struct {
	Name           string            `json:"name"`
	ScientificName string            `json:"scientific_name,omitempty"`
	ImageURL       string            `json:"image_url,omitempty"`
	Origins        []string          `json:"origins"`
	Traits         map[string]string `json:"traits,omitempty"`
}

// TimerState is the Doom Trial countdown for the current question.
type TimerState struct {
	Limit     time.Duration `json:"limit"`
	Remaining time.Duration `json:"remaining"`
}

// Ratio is remaining/limit clamped to [0, 1].
func (t TimerState) Ratio() float64 {
	if t.Limit <= 0 {
		return 0
	}
	r := float64(t.Remaining) / float64(t.Limit)
	return min(1, max(0, r))
}

// DoomState tracks the selected tier while in DoomTrial.
type DoomState struct {
	Tier          TierID     `json:"tier,omitempty"`
	QuestionIndex int        `json:"question_index"`
	StrikesLeft   int        `json:"strikes_left"`
	Timer         TimerState `json:"timer"`
}

// Resolution describes the last resolved answer.
type Resolution struct {
	Correct  bool `json:"correct"`
	Points   int  `json:"points"`
	HPLost   int  `json:"hp_lost"`
	HPGained int  `json:"hp_gained"`
	Duel     bool `json:"duel,omitempty"`
	Timeout  bool `json:"timeout,omitempty"`
	Strike   bool `json:"strike,omitempty"`
}

// Run is the single live session. It is a value: Reduce returns a new Run and
// never mutates the Question or Offer it was given.
type Run struct {
	ID   uuid.UUID `json:"id"`
	Seed int64     `json:"seed"`

	Stage            int     `json:"stage"`
	QuestionInStage  int     `json:"question_in_stage"`
	Round            int     `json:"round"`
	HP               int     `json:"hp"`
	Score            int     `json:"score"`
	GlobalMultiplier float64 `json:"global_multiplier"`
	Mode             Mode    `json:"mode"`
	Cause            Cause   `json:"cause,omitempty"`

	Question  *Question `json:"question,omitempty"`
	Fetch     uint64    `json:"fetch"`
	Loading   bool      `json:"loading"`
	LoadError string    `json:"load_error,omitempty"`
	Locked    bool      `json:"locked"`

	Modifiers  Modifiers   `json:"modifiers"`
	Offer      []AugmentID `json:"offer,omitempty"`
	OfferCount int         `json:"offer_count"`

	Doom     DoomState  `json:"doom"`
	Last     Resolution `json:"last"`
	Feedback string     `json:"feedback,omitempty"`
}

// Over reports whether the run reached the absorbing GameOver mode.
func (r Run) Over() bool { return r.Mode == ModeGameOver }

// Dead reports whether HP is exhausted.
func (r Run) Dead() bool { return isDead(r.HP) }

// AcceptsAnswer reports whether a Submit would be resolved right now.
func (r Run) AcceptsAnswer() bool {
	return (r.Mode == ModeQuestion || r.Mode == ModeDoomTrial) &&
		r.Question != nil && !r.Loading && !r.Locked
}

// RevealName reports whether the common name may be shown before answering.
func (r Run) RevealName() bool { return r.Modifiers.Foresight.Active() }

// Blurred reports whether the image should be rendered blurred.
func (r Run) Blurred(tiers []DoomTierConfig) bool {
	if r.Modifiers.BlurCurse {
		return true
	}
	if r.Mode == ModeDoomTrial {
		if cfg, ok := findTier(tiers, r.Doom.Tier); ok {
			return cfg.ExtraBlur
		}
	}
	return false
}

// Zoomed reports whether the image should be rendered zoomed in.
func (r Run) Zoomed(tiers []DoomTierConfig) bool {
	if r.Modifiers.ZoomCurse {
		return true
	}
	if r.Mode == ModeDoomTrial {
		if cfg, ok := findTier(tiers, r.Doom.Tier); ok {
			return cfg.ExtraZoom
		}
	}
	return false
}

// beginQuestion clears the current question and asks for a new one.
func (r Run) beginQuestion() Run {
	r.Question = nil
	r.Loading = true
	r.LoadError = ""
	r.Locked = true
	r.Fetch++
	r.Feedback = ""
	r.Doom.Timer = TimerState{}
	return r
}

func (r Run) gameOver(cause Cause) Run {
	r.Mode = ModeGameOver
	r.Cause = cause
	r.Locked = true
	r.Loading = false
	r.Offer = nil
	r.Doom.Timer = TimerState{}
	return r
}
