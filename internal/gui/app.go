package gui

import (
	"context"
	"errors"
	"net/http"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/appengine-ltd/bioguessr/internal/answer"
	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/leaderboard"
	"github.com/appengine-ltd/bioguessr/internal/session"
)

const feedbackDelay = 1200 * time.Millisecond

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Controller *session.Controller
	Board      leaderboard.Board
	Matcher    *answer.Matcher
	// HTTPClient loads question images; http.DefaultClient when nil.
	HTTPClient *http.Client
	NewSeed    func() int64
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

type topState int

const (
	topIdle topState = iota
	topLoading
	topDone
)

type topResult struct {
	run     uuid.UUID
	entries []leaderboard.Entry
	err     error
}

type gameUI struct {
	cfg    AppConfig
	ctl    *session.Controller
	tiers  []arena.DoomTierConfig
	client *http.Client

	width  int32
	height int32
	quit   bool

	run     arena.Run
	box     answerBox
	idx     int
	status  string
	advance pendingAdvance

	pic    picture
	images *queue[imageResult]

	tops   *queue[topResult]
	top    []leaderboard.Entry
	topErr error
	topAt  topState
}

func newGameUI(cfg AppConfig) *gameUI {
	matcher := cfg.Matcher
	if matcher == nil {
		matcher = answer.DefaultMatcher()
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &gameUI{
		cfg:    cfg,
		ctl:    cfg.Controller,
		tiers:  cfg.Controller.Engine().Config().Tiers,
		client: client,
		width:  1180,
		height: 760,
		box:    answerBox{matcher: matcher},
		images: newQueue[imageResult](4),
		tops:   newQueue[topResult](1),
		run:    cfg.Controller.Snapshot(),
	}
}

func (a *App) Run() error {
	if a.cfg.Controller == nil {
		return errors.New("gui: controller is required")
	}
	ui := newGameUI(a.cfg)

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, "BioGuessr Arena")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)

	for !ui.quit && !rl.WindowShouldClose() {
		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())
		ui.update(time.Now())

		rl.BeginDrawing()
		rl.ClearBackground(colorBG)
		ui.draw()
		rl.EndDrawing()
	}
	ui.pic.release()
	rl.CloseWindow()
	return nil
}

func (ui *gameUI) update(now time.Time) {
	ui.sync(now)
	for res, ok := ui.images.Dequeue(); ok; res, ok = ui.images.Dequeue() {
		ui.pic.accept(res, ui.run.Blurred(ui.tiers))
	}
	if res, ok := ui.tops.Dequeue(); ok && res.run == ui.run.ID {
		ui.top, ui.topErr, ui.topAt = res.entries, res.err, topDone
	}

	r := ui.run
	switch {
	case r.Over():
		ui.updateGameOver()
	case r.Mode == arena.ModeAugmentSelect:
		ui.updateChoice(len(r.Offer), func(i int) error { return ui.ctl.ChooseAugment(r.Offer[i]) })
	case r.Mode == arena.ModeDoomSelect:
		ui.updateChoice(len(ui.tiers), func(i int) error { return ui.ctl.ChooseTier(ui.tiers[i].ID) })
	case r.LoadError != "":
		if rl.IsKeyPressed(rl.KeyR) || rl.IsKeyPressed(rl.KeyEnter) {
			_ = ui.ctl.Retry()
		}
		if rl.IsKeyPressed(rl.KeyEscape) {
			ui.quit = true
		}
	default:
		ui.updateAnswer()
	}
}

// sync pulls the latest run and schedules work that follows from it.
func (ui *gameUI) sync(now time.Time) {
	prev := ui.run
	ui.run = ui.ctl.Snapshot()
	r := ui.run
	if prev.Mode != r.Mode || prev.ID != r.ID {
		ui.idx = 0
	}

	if r.Question != nil && !r.Loading {
		ui.pic.request(ui.client, ui.images, imageKey{run: r.ID, fetch: r.Fetch}, r.Question.ImageURL)
	}

	resolved := r.Question != nil && r.Locked && !r.Loading &&
		(r.Mode == arena.ModeQuestion || r.Mode == arena.ModeDoomTrial)
	if resolved {
		ui.advance.arm(r.Fetch, now, feedbackDelay)
		if ui.advance.due(r.Fetch, now) {
			_ = ui.ctl.Advance()
		}
	}

	if r.Over() && ui.topAt == topIdle && ui.cfg.Board != nil {
		ui.topAt = topLoading
		board, out, id := ui.cfg.Board, ui.tops, r.ID
		go func() {
			// The controller posts the final score in the background.
			time.Sleep(300 * time.Millisecond)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			entries, err := board.Top(ctx, leaderboard.TopSize)
			out.Enqueue(topResult{run: id, entries: entries, err: err})
		}()
	}
}

func (ui *gameUI) updateAnswer() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.quit = true
		return
	}
	if !ui.run.AcceptsAnswer() {
		return
	}
	captureTextInput(&ui.box)
	switch {
	case rl.IsKeyPressed(rl.KeyTab):
		ui.box.complete()
	case rl.IsKeyPressed(rl.KeyUp):
		ui.box.move(-1)
	case rl.IsKeyPressed(rl.KeyDown):
		ui.box.move(1)
	case rl.IsKeyPressed(rl.KeyEnter):
		if err := ui.ctl.Submit(ui.box.text); err != nil {
			if !arena.IsInvalidSubmission(err) {
				ui.status = err.Error()
			}
			return
		}
		ui.box.reset()
		ui.status = ""
	}
}

func (ui *gameUI) updateChoice(n int, choose func(int) error) {
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyQ) {
		ui.quit = true
		return
	}
	if n == 0 {
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		ui.idx = (ui.idx + n - 1) % n
	case rl.IsKeyPressed(rl.KeyDown):
		ui.idx = (ui.idx + 1) % n
	}
	pick := rl.IsKeyPressed(rl.KeyEnter)
	for i := 0; i < n && i < 9; i++ {
		if rl.IsKeyPressed(int32(rl.KeyOne) + int32(i)) {
			ui.idx, pick = i, true
		}
	}
	if !pick {
		return
	}
	if err := choose(ui.idx); err != nil {
		ui.status = err.Error()
		return
	}
	ui.status = ""
}

func (ui *gameUI) updateGameOver() {
	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		ui.quit = true
	case rl.IsKeyPressed(rl.KeyN), rl.IsKeyPressed(rl.KeyEnter):
		seed := time.Now().UnixNano()
		if ui.cfg.NewSeed != nil {
			seed = ui.cfg.NewSeed()
		}
		if err := ui.ctl.Restart(seed); err != nil {
			ui.status = err.Error()
			return
		}
		ui.advance.clear()
		ui.box.reset()
		ui.top, ui.topErr, ui.topAt = nil, nil, topIdle
		ui.status = ""
	}
}
