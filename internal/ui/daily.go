package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/bioguessr/internal/answer"
	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/hints"
)

// DailyConfig configures the daily challenge screen.
type DailyConfig struct {
	Version string
	Date    string
	// Questions are today's animals in play order.
	Questions []arena.Question
	Matcher   *answer.Matcher
}

type DailyApp struct {
	cfg DailyConfig
}

func NewDailyApp(cfg DailyConfig) *DailyApp {
	return &DailyApp{cfg: cfg}
}

func (a *DailyApp) Run() error {
	if len(a.cfg.Questions) == 0 {
		return errors.New("ui: daily challenge has no questions")
	}
	p := tea.NewProgram(newDailyModel(a.cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type dailyModel struct {
	cfg     DailyConfig
	matcher *answer.Matcher
	d       arena.Daily
	input   string
	sugs    []answer.Suggestion
	sugIdx  int
}

func newDailyModel(cfg DailyConfig) dailyModel {
	m := dailyModel{cfg: cfg, matcher: cfg.Matcher, d: arena.NewDaily(cfg.Date, cfg.Questions)}
	if m.matcher == nil {
		m.matcher = answer.DefaultMatcher()
	}
	return m
}

func (m dailyModel) Init() tea.Cmd { return nil }

func (m dailyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Type == tea.KeyCtrlC, key.Type == tea.KeyEsc:
		return m, tea.Quit
	case m.d.Done():
		if key.String() == "q" || key.Type == tea.KeyEnter {
			return m, tea.Quit
		}
		return m, nil
	case m.d.Locked:
		if key.Type == tea.KeyEnter {
			m.d, _ = m.d.Next()
		}
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		next, err := m.d.Submit(m.input)
		if err != nil {
			return m, nil
		}
		m.d = next
		m.input, m.sugs, m.sugIdx = "", nil, 0
	case tea.KeyTab:
		if len(m.sugs) > 0 {
			m.input = m.sugs[m.sugIdx].Canonical
			m.suggest()
		}
	case tea.KeyUp:
		if len(m.sugs) > 0 {
			m.sugIdx = (m.sugIdx + len(m.sugs) - 1) % len(m.sugs)
		}
	case tea.KeyDown:
		if len(m.sugs) > 0 {
			m.sugIdx = (m.sugIdx + 1) % len(m.sugs)
		}
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
			m.suggest()
		}
	case tea.KeySpace:
		m.input += " "
		m.suggest()
	case tea.KeyRunes:
		m.input += string(key.Runes)
		m.suggest()
	}
	return m, nil
}

func (m *dailyModel) suggest() {
	m.sugs = m.matcher.Suggest(m.input, maxSuggest)
	m.sugIdx = 0
}

func (m dailyModel) View() string {
	d := m.d
	var b strings.Builder
	b.WriteString(brightGreen.Render("BIOGUESSR DAILY CHALLENGE"))
	b.WriteString(dimGreen.Render("  " + d.Date))
	b.WriteString("\n")
	round := min(d.Round+1, len(d.Questions))
	b.WriteString(fmt.Sprintf("%s   %s\n",
		green.Render(fmt.Sprintf("Round %d / %d", round, len(d.Questions))),
		brightGreen.Render(fmt.Sprintf("Score %d", d.Score))))
	b.WriteString(border.Render(rule) + "\n\n")

	q := d.Current()
	switch {
	case q == nil:
		b.WriteString(brightGreen.Render("Daily Challenge Complete!") + "\n")
		b.WriteString(green.Render(fmt.Sprintf("Final score: %d / %d", d.Score, d.MaxScore())) + "\n")
	default:
		name := "???"
		if d.Locked {
			name = q.Name
		}
		b.WriteString(brightGreen.Render(name))
		if q.ScientificName != "" {
			b.WriteString("  " + dimGreen.Render(q.ScientificName))
		}
		b.WriteString("\n")
		if q.ImageURL != "" {
			b.WriteString(dimGreen.Render(q.ImageURL) + "\n")
		}
		b.WriteString(green.Render(hints.FeatureHint(q)) + "\n")
		b.WriteString(dimGreen.Render(hints.WeightHint(q)) + "\n\n")
		if d.Locked {
			style := green
			if !d.Correct {
				style = danger
			}
			b.WriteString(style.Render(d.Feedback) + "\n")
			break
		}
		b.WriteString(green.Render("Where is it from? ") + brightGreen.Render(m.input+"_") + "\n")
		for i, s := range m.sugs {
			cursor, line := "  ", green.Render(s.Canonical)
			if i == m.sugIdx {
				cursor, line = "> ", brightGreen.Render(s.Canonical)
			}
			b.WriteString(cursor + line + "\n")
		}
	}

	b.WriteString("\n" + border.Render(rule) + "\n")
	switch {
	case d.Done():
		b.WriteString(dimGreen.Render("Enter or q to quit") + "\n")
	case d.Locked:
		b.WriteString(dimGreen.Render("Enter for the next animal, Esc to quit") + "\n")
	default:
		b.WriteString(dimGreen.Render("Type a country, Tab to complete, Enter to answer, Esc to quit") + "\n")
	}
	return b.String()
}
