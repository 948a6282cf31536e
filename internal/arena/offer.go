package arena

import (
	"math"
	"math/rand/v2"
)

// Offer draws up to n distinct definitions. Each entry is expanded into
// round(weight*10) copies, copies are drawn uniformly without replacement and
// repeat draws of an id already chosen are discarded.
func Offer(rng *rand.Rand, defs []AugmentDefinition, n int) []AugmentDefinition {
	if n <= 0 || len(defs) == 0 {
		return nil
	}
	pool := make([]AugmentDefinition, 0, len(defs)*10)
	for _, d := range defs {
		for i := 0; i < d.Rarity.copies(); i++ {
			pool = append(pool, d)
		}
	}

	choices := make([]AugmentDefinition, 0, n)
	used := make(map[AugmentID]bool, n)
	for len(choices) < n && len(pool) > 0 {
		idx := rng.IntN(len(pool))
		d := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		if used[d.ID] {
			continue
		}
		used[d.ID] = true
		choices = append(choices, d)
	}
	return choices
}

// copies is the number of pool entries a definition of rarity r gets.
func (r Rarity) copies() int {
	return int(math.Round(r.Weight() * 10))
}
