package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/leaderboard"
	"github.com/appengine-ltd/bioguessr/internal/provider"
	"github.com/appengine-ltd/bioguessr/internal/session"
)

var lion = arena.Question{
	Name:           "Lion",
	ScientificName: "Panthera leo",
	Origins:        []string{"Kenya", "Tanzania"},
	Traits:         map[string]string{"location": "Africa"},
}

type fixedBoard struct{ entries []leaderboard.Entry }

func (b fixedBoard) Top(context.Context, int) ([]leaderboard.Entry, error) { return b.entries, nil }

func newTestModel(t *testing.T, board leaderboard.Board) gameModel {
	t.Helper()
	engine, err := arena.NewEngine(arena.DefaultConfig())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	ctl, err := session.New(session.Options{
		Engine:   engine,
		Provider: provider.Func(func(context.Context) (arena.Question, error) { return lion, nil }),
		Seed:     3,
	})
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	t.Cleanup(ctl.Close)
	return newGameModel(AppConfig{Controller: ctl, Board: board, NewSeed: func() int64 { return 9 }})
}

// settle waits until the controller's run satisfies cond and refreshes m.
func settle(t *testing.T, m gameModel, cond func(arena.Run) bool) gameModel {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond(m.ctl.Snapshot()) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out; mode=%s loading=%v", m.ctl.Snapshot().Mode, m.ctl.Snapshot().Loading)
		}
		time.Sleep(2 * time.Millisecond)
	}
	next, _ := m.refresh()
	return next
}

func press(t *testing.T, m gameModel, msg tea.KeyMsg) (gameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(gameModel), cmd
}

func typeText(t *testing.T, m gameModel, s string) gameModel {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func ready(r arena.Run) bool { return r.AcceptsAnswer() }

func TestTypingSuggestsAndTabCompletes(t *testing.T) {
	m := settle(t, newTestModel(t, nil), ready)
	m = typeText(t, m, "keny")
	if len(m.sugs) == 0 || m.sugs[0].Canonical != "Kenya" {
		t.Fatalf("expected Kenya suggestion, got %+v", m.sugs)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.input != "Kenya" {
		t.Fatalf("expected tab to complete, got %q", m.input)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.input != "Keny" {
		t.Fatalf("expected backspace to drop a rune, got %q", m.input)
	}
}

func TestEnterSubmitsAndSchedulesAdvance(t *testing.T) {
	m := settle(t, newTestModel(t, nil), ready)
	if !strings.Contains(m.View(), "???") {
		t.Fatalf("expected hidden name before answering")
	}
	if !strings.Contains(m.View(), "Location – Africa.") {
		t.Fatalf("expected feature hint in view")
	}

	m = typeText(t, m, "tanzania")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected advance to be scheduled")
	}
	if m.run.Score != 100 || !m.run.Locked || m.input != "" {
		t.Fatalf("unexpected state score=%d locked=%v input=%q", m.run.Score, m.run.Locked, m.input)
	}
	view := m.View()
	if !strings.Contains(view, "Correct! (+100)") || !strings.Contains(view, "Lion") {
		t.Fatalf("expected feedback and revealed name, got:\n%s", view)
	}

	stale, _ := m.Update(advanceMsg{fetch: m.run.Fetch + 5})
	if got := stale.(gameModel).ctl.Snapshot(); got.QuestionInStage != 1 {
		t.Fatalf("expected stale advance ignored")
	}
	next, _ := m.Update(advanceMsg{fetch: m.run.Fetch})
	if got := next.(gameModel).ctl.Snapshot(); got.QuestionInStage != 2 {
		t.Fatalf("expected advance to question 2, got %d", got.QuestionInStage)
	}
}

func TestEmptyEnterIsIgnored(t *testing.T) {
	m := settle(t, newTestModel(t, nil), ready)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.status != "" || m.ctl.Snapshot().Locked {
		t.Fatalf("expected empty submit ignored silently, status=%q", m.status)
	}
}

func clearStage(t *testing.T, m gameModel) gameModel {
	t.Helper()
	for m.ctl.Snapshot().Mode == arena.ModeQuestion {
		m = settle(t, m, func(r arena.Run) bool { return r.AcceptsAnswer() || r.Mode != arena.ModeQuestion })
		if m.run.Mode != arena.ModeQuestion {
			break
		}
		if err := m.ctl.Submit("kenya"); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := m.ctl.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	next, _ := m.refresh()
	return next
}

func TestAugmentPickByNumber(t *testing.T) {
	m := clearStage(t, newTestModel(t, nil))
	if m.run.Mode != arena.ModeAugmentSelect {
		t.Fatalf("expected augment select, got %s", m.run.Mode)
	}
	view := m.View()
	def, _ := m.ctl.Engine().Augment(m.run.Offer[1])
	if !strings.Contains(view, def.Name) {
		t.Fatalf("expected offered augment %q in view", def.Name)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if m.run.Stage != 2 && !m.run.Over() {
		t.Fatalf("expected stage 2 after picking, got stage %d", m.run.Stage)
	}
}

func TestGameOverShowsLeaderboardAndRestarts(t *testing.T) {
	board := fixedBoard{entries: []leaderboard.Entry{{Initials: "ACE", Score: 4200}}}
	m := newTestModel(t, board)
	for !m.ctl.Snapshot().Over() {
		m = settle(t, m, func(r arena.Run) bool { return r.AcceptsAnswer() })
		_ = m.ctl.Submit("atlantis")
		if !m.ctl.Snapshot().Over() {
			_ = m.ctl.Advance()
		}
	}
	m, cmd := m.refresh()
	if cmd == nil {
		t.Fatal("expected leaderboard load")
	}
	next, _ := m.Update(topMsg{entries: board.entries})
	m = next.(gameModel)
	view := m.View()
	if !strings.Contains(view, "GAME OVER") || !strings.Contains(view, "ACE") {
		t.Fatalf("unexpected game over view:\n%s", view)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if r := m.ctl.Snapshot(); r.Over() || r.HP != 10 || r.Seed != 9 {
		t.Fatalf("expected fresh run, got mode=%s hp=%d seed=%d", r.Mode, r.HP, r.Seed)
	}
	if m.topLoaded || m.top != nil {
		t.Fatalf("expected leaderboard reset")
	}
}

func TestModifierBadges(t *testing.T) {
	got := ModifierBadges(arena.Modifiers{SafeGuard: 3, Leech: 1, DuelArmed: true, Oath: true})
	want := []string{"Safety(3)", "Leech(1)", "Duel!", "Oath"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v want %v", got, want)
	}
	if len(ModifierBadges(arena.Modifiers{})) != 0 {
		t.Fatalf("expected no badges")
	}
}

func TestTimerBar(t *testing.T) {
	full := timerBar(arena.TimerState{Limit: 10 * time.Second, Remaining: 10 * time.Second}, 10)
	if strings.Count(full, "█") != 10 {
		t.Fatalf("expected full bar, got %q", full)
	}
	half := timerBar(arena.TimerState{Limit: 10 * time.Second, Remaining: 5 * time.Second}, 10)
	if strings.Count(half, "█") != 5 || !strings.Contains(half, "5.0s") {
		t.Fatalf("expected half bar, got %q", half)
	}
}
