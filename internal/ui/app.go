package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/bioguessr/internal/answer"
	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/leaderboard"
	"github.com/appengine-ltd/bioguessr/internal/session"
)

const (
	feedbackDelay = 1200 * time.Millisecond
	maxSuggest    = 5
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Controller *session.Controller
	// Board is optional; without it the game-over screen shows no ranking.
	Board   leaderboard.Board
	Matcher *answer.Matcher
	// NewSeed picks the seed of the next run after a restart.
	NewSeed func() int64
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	if a.cfg.Controller == nil {
		return errors.New("ui: controller is required")
	}
	p := tea.NewProgram(newGameModel(a.cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type changedMsg struct{}

// advanceMsg fires after the feedback delay for the question fetched as
// generation fetch.
type advanceMsg struct {
	fetch uint64
}

type topMsg struct {
	entries []leaderboard.Entry
	err     error
}

type gameModel struct {
	cfg     AppConfig
	ctl     *session.Controller
	matcher *answer.Matcher
	tiers   []arena.DoomTierConfig

	run    arena.Run
	input  string
	sugs   []answer.Suggestion
	sugIdx int
	idx    int
	status string

	scheduled uint64
	top       []leaderboard.Entry
	topErr    error
	topLoaded bool
}

func newGameModel(cfg AppConfig) gameModel {
	m := gameModel{cfg: cfg, ctl: cfg.Controller, matcher: cfg.Matcher}
	if m.matcher == nil {
		m.matcher = answer.DefaultMatcher()
	}
	if m.ctl != nil {
		m.tiers = m.ctl.Engine().Config().Tiers
		m.run = m.ctl.Snapshot()
	}
	return m
}

func (m gameModel) Init() tea.Cmd {
	return waitForChange(m.ctl.Changes())
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

func (m gameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		next, cmd := m.refresh()
		return next, tea.Batch(cmd, waitForChange(next.ctl.Changes()))
	case advanceMsg:
		if m.run.Fetch == msg.fetch {
			_ = m.ctl.Advance()
		}
		return m.refresh()
	case topMsg:
		m.top, m.topErr, m.topLoaded = msg.entries, msg.err, true
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateKey(msg)
	}
	return m, nil
}

// refresh re-reads the run and schedules follow-ups: the delayed advance
// after a resolved question and the leaderboard fetch at game over.
func (m gameModel) refresh() (gameModel, tea.Cmd) {
	prev := m.run
	m.run = m.ctl.Snapshot()
	if prev.Mode != m.run.Mode {
		m.idx = 0
	}

	var cmds []tea.Cmd
	r := m.run
	resolved := r.Question != nil && r.Locked && !r.Loading &&
		(r.Mode == arena.ModeQuestion || r.Mode == arena.ModeDoomTrial)
	if resolved && m.scheduled != r.Fetch {
		m.scheduled = r.Fetch
		fetch := r.Fetch
		cmds = append(cmds, tea.Tick(feedbackDelay, func(time.Time) tea.Msg { return advanceMsg{fetch: fetch} }))
	}
	if r.Over() && !m.topLoaded && m.cfg.Board != nil {
		m.topLoaded = true
		cmds = append(cmds, loadTopCmd(m.cfg.Board))
	}
	return m, tea.Batch(cmds...)
}

func loadTopCmd(b leaderboard.Board) tea.Cmd {
	return func() tea.Msg {
		// Give the controller a moment to post the final score first.
		time.Sleep(300 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := b.Top(ctx, leaderboard.TopSize)
		return topMsg{entries: entries, err: err}
	}
}

func (m gameModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.run.Over():
		return m.updateGameOver(msg)
	case m.run.Mode == arena.ModeAugmentSelect:
		return m.updateChoice(msg, len(m.run.Offer), func(i int) error {
			return m.ctl.ChooseAugment(m.run.Offer[i])
		})
	case m.run.Mode == arena.ModeDoomSelect:
		return m.updateChoice(msg, len(m.tiers), func(i int) error {
			return m.ctl.ChooseTier(m.tiers[i].ID)
		})
	case m.run.LoadError != "":
		switch msg.String() {
		case "r", "enter":
			_ = m.ctl.Retry()
			return m.refresh()
		case "esc":
			return m, tea.Quit
		}
		return m, nil
	default:
		return m.updateAnswer(msg)
	}
}

func (m gameModel) updateAnswer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if !m.run.AcceptsAnswer() {
			return m, nil
		}
		guess := m.input
		if err := m.ctl.Submit(guess); err != nil {
			if !arena.IsInvalidSubmission(err) {
				m.status = err.Error()
			}
			return m, nil
		}
		m.input, m.sugs, m.sugIdx = "", nil, 0
		return m.refresh()
	case tea.KeyTab:
		if len(m.sugs) > 0 {
			m.input = m.sugs[m.sugIdx].Canonical
			m.suggest()
		}
		return m, nil
	case tea.KeyUp:
		if len(m.sugs) > 0 {
			m.sugIdx = (m.sugIdx + len(m.sugs) - 1) % len(m.sugs)
		}
		return m, nil
	case tea.KeyDown:
		if len(m.sugs) > 0 {
			m.sugIdx = (m.sugIdx + 1) % len(m.sugs)
		}
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
			m.suggest()
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		m.suggest()
		return m, nil
	case tea.KeyRunes:
		m.input += string(msg.Runes)
		m.suggest()
		return m, nil
	}
	return m, nil
}

func (m *gameModel) suggest() {
	m.sugs = m.matcher.Suggest(m.input, maxSuggest)
	m.sugIdx = 0
}

func (m gameModel) updateChoice(msg tea.KeyMsg, n int, choose func(int) error) (tea.Model, tea.Cmd) {
	if n == 0 {
		return m, nil
	}
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "up", "k":
		m.idx = (m.idx + n - 1) % n
		return m, nil
	case "down", "j":
		m.idx = (m.idx + 1) % n
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(msg.String()[0] - '1')
		if i >= n {
			return m, nil
		}
		m.idx = i
		fallthrough
	case "enter":
		if err := choose(m.idx); err != nil {
			m.status = humanError(err)
			return m, nil
		}
		m.status = ""
		return m.refresh()
	}
	return m, nil
}

func (m gameModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "n", "enter":
		seed := time.Now().UnixNano()
		if m.cfg.NewSeed != nil {
			seed = m.cfg.NewSeed()
		}
		if err := m.ctl.Restart(seed); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.top, m.topErr, m.topLoaded = nil, nil, false
		m.status, m.input, m.sugs = "", "", nil
		return m.refresh()
	}
	return m, nil
}

func humanError(err error) string {
	switch {
	case errors.Is(err, arena.ErrTierLocked):
		return fmt.Sprintf("Locked: %v", err)
	default:
		return err.Error()
	}
}
