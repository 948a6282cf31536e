package arena

import (
	"fmt"
	"math"
	"time"
)

type TierID string

const (
	TierBronze TierID = "bronze"
	TierSilver TierID = "silver"
	TierGold   TierID = "gold"
)

const (
	doomBasePoints  = 120
	doomSpeedPoints = 80
	doomStrikeLoss  = 3
)

// DoomTierConfig is static per tier. A tier is selectable once the run's
// score reaches Threshold.
type DoomTierConfig struct {
	ID              TierID
	Label           string
	Description     string
	BaseTime        time.Duration
	MinTime         time.Duration
	StepEvery       int
	StepAmount      time.Duration
	ScoreMultiplier float64
	Strikes         int
	Threshold       int
	ExtraBlur       bool
	ExtraZoom       bool
}

var tiers = []DoomTierConfig{
	{
		ID:              TierBronze,
		Label:           "Bronze Trial",
		Description:     "Slower timer, no blur. +20% score. One mistake allowed (you just lose HP).",
		BaseTime:        12 * time.Second,
		MinTime:         4 * time.Second,
		StepEvery:       3,
		StepAmount:      time.Second,
		ScoreMultiplier: 1.2,
		Strikes:         1,
		Threshold:       0,
	},
	{
		ID:              TierSilver,
		Label:           "Silver Trial",
		Description:     "Faster timer, no blur. +60% score. One wrong answer ends the run.",
		BaseTime:        10 * time.Second,
		MinTime:         3 * time.Second,
		StepEvery:       2,
		StepAmount:      2 * time.Second,
		ScoreMultiplier: 1.6,
		Strikes:         0,
		Threshold:       600,
	},
	{
		ID:              TierGold,
		Label:           "Gold Doom",
		Description:     "Blurred, fast, insane speed. ~3x score. One mistake and you're done.",
		BaseTime:        7 * time.Second,
		MinTime:         2 * time.Second,
		StepEvery:       1,
		StepAmount:      time.Second,
		ScoreMultiplier: 3.0,
		Strikes:         0,
		Threshold:       1200,
		ExtraBlur:       true,
		ExtraZoom:       true,
	},
}

// Tiers returns the built-in Doom tiers ordered by threshold.
func Tiers() []DoomTierConfig {
	out := make([]DoomTierConfig, len(tiers))
	copy(out, tiers)
	return out
}

func findTier(defs []DoomTierConfig, id TierID) (DoomTierConfig, bool) {
	for _, t := range defs {
		if t.ID == id {
			return t, true
		}
	}
	return DoomTierConfig{}, false
}

// Unlocked reports whether score meets the tier threshold.
func (c DoomTierConfig) Unlocked(score int) bool { return score >= c.Threshold }

// TimeLimit is the budget for Doom question q (1-based):
// max(MinTime, BaseTime - floor((q-1)/StepEvery)*StepAmount).
func (c DoomTierConfig) TimeLimit(q int) time.Duration {
	if q < 1 {
		q = 1
	}
	step := c.StepEvery
	if step < 1 {
		step = 1
	}
	decrements := (q - 1) / step
	limit := c.BaseTime - time.Duration(decrements)*c.StepAmount
	return max(c.MinTime, limit)
}

// Points is the score for a correct Doom answer answered with the given
// remaining/limit ratio.
func (c DoomTierConfig) Points(ratio, globalMultiplier float64) int {
	ratio = min(1, max(0, ratio))
	return int(math.Round((doomBasePoints + doomSpeedPoints*ratio) * c.ScoreMultiplier * globalMultiplier))
}

func (c DoomTierConfig) validate() error {
	if c.ID == "" {
		return fmt.Errorf("doom tier id is required")
	}
	if c.BaseTime <= 0 || c.MinTime <= 0 || c.MinTime > c.BaseTime {
		return fmt.Errorf("doom tier %s: invalid time budget %s..%s", c.ID, c.MinTime, c.BaseTime)
	}
	if c.StepEvery < 1 {
		return fmt.Errorf("doom tier %s: step every must be at least 1, got %d", c.ID, c.StepEvery)
	}
	if c.Strikes < 0 {
		return fmt.Errorf("doom tier %s: strikes must not be negative", c.ID)
	}
	if c.ScoreMultiplier < 0 {
		return fmt.Errorf("doom tier %s: score multiplier must not be negative", c.ID)
	}
	return nil
}

func (e *Engine) chooseTier(r Run, id TierID) (Run, error) {
	if r.Mode != ModeDoomSelect {
		return r, ErrWrongMode
	}
	cfg, ok := findTier(e.cfg.Tiers, id)
	if !ok {
		return r, fmt.Errorf("%w: %q", ErrUnknownTier, id)
	}
	if !cfg.Unlocked(r.Score) {
		return r, fmt.Errorf("%w: %s needs %d points, have %d", ErrTierLocked, cfg.Label, cfg.Threshold, r.Score)
	}
	r.Doom = DoomState{Tier: cfg.ID, QuestionIndex: 1, StrikesLeft: cfg.Strikes}
	r.Mode = ModeDoomTrial
	r.Round++
	return r.beginQuestion(), nil
}

// startTimer sets the countdown for the question that was just loaded.
func (e *Engine) startTimer(r Run) Run {
	cfg, ok := findTier(e.cfg.Tiers, r.Doom.Tier)
	if !ok {
		return r
	}
	limit := cfg.TimeLimit(r.Doom.QuestionIndex)
	r.Doom.Timer = TimerState{Limit: limit, Remaining: limit}
	return r
}

func (e *Engine) tick(r Run, elapsed time.Duration) (Run, error) {
	if r.Mode != ModeDoomTrial {
		return r, ErrWrongMode
	}
	if r.Loading || r.Question == nil {
		return r, ErrLoading
	}
	if r.Locked {
		return r, ErrLocked
	}
	// Remaining only counts down.
	if elapsed <= 0 {
		return r, ErrInvalidTick
	}
	r.Doom.Timer.Remaining = max(0, r.Doom.Timer.Remaining-elapsed)
	if r.Doom.Timer.Remaining > 0 {
		return r, nil
	}
	return e.resolveDoom(r, false, true), nil
}

func (e *Engine) resolveDoom(r Run, correct, timeout bool) Run {
	cfg, _ := findTier(e.cfg.Tiers, r.Doom.Tier)
	r.Locked = true

	if correct {
		gained := cfg.Points(r.Doom.Timer.Ratio(), r.GlobalMultiplier)
		r.Score += gained
		r.Last = Resolution{Correct: true, Points: gained}
		r.Feedback = fmt.Sprintf("%s: Correct! (+%d)", cfg.Label, gained)
		return r
	}

	if cfg.Strikes > 0 && r.Doom.StrikesLeft > 0 {
		r.Doom.StrikesLeft--
		before := r.HP
		r = r.withHP(r.HP - doomStrikeLoss)
		r.Last = Resolution{HPLost: before - r.HP, Timeout: timeout, Strike: true}
		if r.Dead() {
			r.Feedback = "You fell in the Doom Trial!"
			return r.gameOver(CauseDoomDeath)
		}
		r.Feedback = fmt.Sprintf("Wrong! You used up a strike (-%d HP).", doomStrikeLoss)
		if timeout {
			r.Feedback = fmt.Sprintf("Time's up! You used up a strike (-%d HP).", doomStrikeLoss)
		}
		return r
	}

	r.Last = Resolution{Timeout: timeout}
	r.Feedback = fmt.Sprintf("%s: One mistake and you're out.", cfg.Label)
	return r.gameOver(CauseDoomFail)
}

// advanceDoom moves to the next Doom question after a resolved one.
func (e *Engine) advanceDoom(r Run) Run {
	if r.Last.Correct {
		r.Doom.QuestionIndex++
	}
	r.Round++
	return r.beginQuestion()
}
