// Package session runs one live game: it feeds player commands, question
// loads and timer ticks through the arena engine one at a time.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/leaderboard"
	"github.com/appengine-ltd/bioguessr/internal/provider"
)

const (
	DefaultTickInterval = 100 * time.Millisecond
	submitTimeout       = 10 * time.Second
)

var ErrClosed = errors.New("session closed")

type Options struct {
	Engine   *arena.Engine
	Provider provider.Provider
	// Sink is optional. It receives one entry per finished run.
	Sink     leaderboard.Sink
	Initials string
	Seed     int64

	Clock        Clock
	TickInterval time.Duration
}

// Controller owns a single Run. All methods are safe for concurrent use.
type Controller struct {
	engine   *arena.Engine
	provider provider.Provider
	sink     leaderboard.Sink
	initials string
	clock    Clock
	interval time.Duration

	mu        sync.Mutex
	run       arena.Run
	closed    bool
	submitted bool

	inflight    uint64
	cancelFetch context.CancelFunc

	tickStop chan struct{}
	ticker   Ticker

	changes chan struct{}
	wg      sync.WaitGroup
}

// New starts a run and its first question fetch.
func New(opts Options) (*Controller, error) {
	if opts.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if opts.Provider == nil {
		return nil, errors.New("question provider is required")
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}

	c := &Controller{
		engine:   opts.Engine,
		provider: opts.Provider,
		sink:     opts.Sink,
		initials: opts.Initials,
		clock:    opts.Clock,
		interval: opts.TickInterval,
		changes:  make(chan struct{}, 1),
	}
	c.mu.Lock()
	c.run = c.engine.NewRun(opts.Seed)
	c.syncLocked()
	c.mu.Unlock()
	return c, nil
}

// Snapshot returns the current run.
func (c *Controller) Snapshot() arena.Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run
}

// Engine returns the rules the run is played with.
func (c *Controller) Engine() *arena.Engine { return c.engine }

// Changes signals after every accepted event. Signals coalesce: a reader
// that falls behind sees one pending signal and should re-read Snapshot.
func (c *Controller) Changes() <-chan struct{} { return c.changes }

func (c *Controller) Submit(guess string) error { return c.apply(arena.Submit{Guess: guess}) }

func (c *Controller) Advance() error { return c.apply(arena.Advance{}) }

func (c *Controller) ChooseAugment(id arena.AugmentID) error {
	return c.apply(arena.ChooseAugment{ID: id})
}

func (c *Controller) ChooseTier(id arena.TierID) error { return c.apply(arena.ChooseTier{Tier: id}) }

func (c *Controller) Retry() error { return c.apply(arena.Retry{}) }

// Restart abandons the current run and starts a new one with seed.
func (c *Controller) Restart(seed int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.stopFetchLocked()
	c.stopTickerLocked()
	c.run = c.engine.NewRun(seed)
	c.submitted = false
	c.syncLocked()
	return nil
}

// Close stops the timer and any fetch, then waits for background work,
// including a pending score submission.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopFetchLocked()
	c.stopTickerLocked()
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) apply(ev arena.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.applyLocked(ev)
}

func (c *Controller) applyLocked(ev arena.Event) error {
	next, err := c.engine.Reduce(c.run, ev)
	if err != nil {
		return err
	}
	c.run = next
	c.syncLocked()
	return nil
}

// syncLocked brings the fetch, ticker and score sink in line with the run.
func (c *Controller) syncLocked() {
	r := c.run

	if r.Loading && r.LoadError == "" && c.inflight != r.Fetch {
		c.startFetchLocked(r.ID, r.Fetch)
	}

	timed := r.Mode == arena.ModeDoomTrial && r.Question != nil && !r.Loading && !r.Locked
	switch {
	case timed && c.ticker == nil:
		c.startTickerLocked()
	case !timed && c.ticker != nil:
		c.stopTickerLocked()
	}

	if r.Over() && !c.submitted {
		c.submitted = true
		c.submitLocked(leaderboard.Entry{Initials: c.initials, Score: r.Score})
	}

	c.notify()
}

func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

func (c *Controller) startFetchLocked(runID uuid.UUID, gen uint64) {
	c.stopFetchLocked()
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelFetch = cancel
	c.inflight = gen

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		q, err := c.provider.Next(ctx)
		if ctx.Err() != nil {
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.run.ID != runID {
			return
		}
		var ev arena.Event = arena.QuestionLoaded{Fetch: gen, Question: q}
		if err != nil {
			log.Printf("question load failed: %v", err)
			ev = arena.LoadFailed{Fetch: gen, Err: err}
		}
		// A stale generation is rejected by the engine; nothing to do.
		_ = c.applyLocked(ev)
	}()
}

func (c *Controller) stopFetchLocked() {
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	c.inflight = 0
}

func (c *Controller) startTickerLocked() {
	t := c.clock.NewTicker(c.interval)
	stop := make(chan struct{})
	c.ticker, c.tickStop = t, stop

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-stop:
				return
			case <-t.C():
				c.mu.Lock()
				if c.tickStop == stop && !c.closed {
					_ = c.applyLocked(arena.Tick{Elapsed: c.interval})
				}
				c.mu.Unlock()
			}
		}
	}()
}

func (c *Controller) stopTickerLocked() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.tickStop)
	c.ticker, c.tickStop = nil, nil
}

func (c *Controller) submitLocked(e leaderboard.Entry) {
	if c.sink == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		if err := c.sink.Submit(ctx, e); err != nil {
			log.Printf("score submit failed: %v", err)
		}
	}()
}
