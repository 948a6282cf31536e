package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/appengine-ltd/bioguessr/internal/arena"
)

// Catalog serves animals from memory. It is safe for concurrent use.
type Catalog struct {
	mu      sync.Mutex
	animals []Animal
	rng     *rand.Rand
}

// NewCatalog serves animals as given. seed drives Random and Next.
func NewCatalog(animals []Animal, seed uint64) *Catalog {
	return &Catalog{
		animals: append([]Animal(nil), animals...),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// LoadCatalog reads a JSON array of animals from path and keeps the playable
// ones: a name, at least one characteristic and an image.
func LoadCatalog(path string, seed uint64) (*Catalog, error) {
	// #nosec G304 -- path comes from operator configuration.
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read animals: %w", err)
	}
	var all []Animal
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode animals %s: %w", path, err)
	}
	playable := all[:0]
	for _, a := range all {
		if a.Playable() {
			playable = append(playable, a)
		}
	}
	if len(playable) == 0 {
		return nil, fmt.Errorf("no playable animals in %s", path)
	}
	return NewCatalog(playable, seed), nil
}

// Demo is the fallback pool served when no catalog could be loaded.
func Demo() []Animal {
	return []Animal{
		{Name: "Krill", ImageURL: "https://example.com/krill.jpg", Countries: []string{"Norway"}},
		{Name: "Beaglier", ImageURL: "https://example.com/beaglier.jpg", Countries: []string{"Australia"}},
	}
}

func (c *Catalog) Len() int { return len(c.animals) }

// Random returns a uniformly chosen animal. It reports false on an empty
// catalog.
func (c *Catalog) Random() (Animal, bool) {
	if len(c.animals) == 0 {
		return Animal{}, false
	}
	c.mu.Lock()
	i := c.rng.IntN(len(c.animals))
	c.mu.Unlock()
	return c.animals[i], true
}

// Daily returns n distinct animals chosen from the UTC calendar date of day.
// Every call within the same UTC day returns the same selection.
func (c *Catalog) Daily(day time.Time, n int) []Animal {
	n = min(n, len(c.animals))
	if n <= 0 {
		return nil
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(day.UTC().Format(time.DateOnly)))
	sum := h.Sum64()
	rng := rand.New(rand.NewPCG(sum, sum>>1|1))

	idx := make([]int, len(c.animals))
	for i := range idx {
		idx[i] = i
	}
	out := make([]Animal, 0, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, c.animals[idx[i]])
	}
	return out
}

// Next serves a random animal as a question.
func (c *Catalog) Next(ctx context.Context) (arena.Question, error) {
	if err := ctx.Err(); err != nil {
		return arena.Question{}, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	a, ok := c.Random()
	if !ok {
		return arena.Question{}, fmt.Errorf("%w: catalog is empty", ErrLoadFailure)
	}
	return a.Question(), nil
}
