package arena

import (
	"fmt"
	"math"

	"github.com/appengine-ltd/bioguessr/internal/answer"
)

const (
	basePoints = 100
	baseLoss   = 1
	duelFactor = 3
)

// Correct reports whether guess is one of q's origins. Matching is exact after
// trimming and case folding; fuzzy matching belongs to the input widget.
func Correct(q *Question, guess string) bool {
	if q == nil {
		return false
	}
	return answer.Equal(guess, q.Origins)
}

// scoreQuestion resolves a normal-stage answer.
func (e *Engine) scoreQuestion(r Run, correct bool) Run {
	snapshot := r.Modifiers.active()
	duel := r.Modifiers.DuelArmed
	r.Modifiers = r.Modifiers.consume(snapshot)
	r.Locked = true

	points := float64(basePoints)
	loss := baseLoss
	heal := 0
	for _, eff := range snapshot {
		points *= eff.points
		if eff.loss != nil {
			loss = eff.loss(loss)
		}
		heal += eff.heal
	}

	if correct {
		if duel {
			points *= duelFactor
		}
		before := r.HP
		if heal > 0 {
			r = r.withHP(r.HP + heal)
		}
		gained := int(math.Round(points * r.GlobalMultiplier))
		r.Score += gained
		r.Last = Resolution{Correct: true, Points: gained, HPGained: r.HP - before, Duel: duel}
		if duel {
			r.Feedback = fmt.Sprintf("Duel Won! (+%d)", gained)
		} else {
			r.Feedback = fmt.Sprintf("Correct! (+%d)", gained)
		}
		return r
	}

	if duel {
		loss = max(loss, ceilDiv(r.HP, 2))
	}
	before := r.HP
	r = r.withHP(r.HP - loss)
	r.Last = Resolution{HPLost: before - r.HP, Duel: duel}

	switch {
	case duel && r.Dead():
		r.Feedback = "Duel Lost! You were knocked out."
	case duel:
		r.Feedback = "Duel Lost! You took massive damage."
	case loss == 0:
		r.Feedback = "Wrong! (No HP lost.)"
	default:
		r.Feedback = fmt.Sprintf("Wrong! (-%d HP)", loss)
	}
	if r.Dead() {
		return r.gameOver(CauseHPZero)
	}
	return r
}

// advanceStage moves past a resolved stage question: the next question of the
// stage, the augment pick, or Doom selection after the last stage.
func (e *Engine) advanceStage(r Run) Run {
	next := r.QuestionInStage + 1
	if next <= e.cfg.QuestionsPerStage {
		r.QuestionInStage = next
		r.Round++
		return r.beginQuestion()
	}

	r.Question = nil
	r.Loading = false
	r.Feedback = ""
	if r.Stage >= e.cfg.MaxStage {
		r.Mode = ModeDoomSelect
		return r
	}
	r.Mode = ModeAugmentSelect
	picks := Offer(offerRNG(r.Seed, r.OfferCount), e.cfg.Catalog, e.cfg.OfferSize)
	r.OfferCount++
	r.Offer = make([]AugmentID, 0, len(picks))
	for _, p := range picks {
		r.Offer = append(r.Offer, p.ID)
	}
	return r
}

func (e *Engine) chooseAugment(r Run, id AugmentID) (Run, error) {
	if r.Mode != ModeAugmentSelect {
		return r, ErrWrongMode
	}
	offered := false
	for _, o := range r.Offer {
		if o == id {
			offered = true
			break
		}
	}
	def, ok := findAugment(e.cfg.Catalog, id)
	if !ok || !offered {
		return r, fmt.Errorf("%w: %q", ErrUnknownAugment, id)
	}

	r = def.Apply(r)
	r.HP = clampHP(r.Modifiers, r.HP)
	r.Offer = nil
	if r.Dead() {
		r.Feedback = fmt.Sprintf("%s drained your last HP.", def.Name)
		return r.gameOver(CauseAugmentDeath), nil
	}

	r.Stage++
	r.QuestionInStage = 1
	r.Round++
	r.Mode = ModeQuestion
	return r.beginQuestion(), nil
}
