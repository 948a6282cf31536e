package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/bioguessr/internal/answer"
	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/hints"
)

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	danger      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	amber       = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	rarityStyles = map[arena.Rarity]lipgloss.Style{
		arena.RarityCommon:    green,
		arena.RarityRare:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		arena.RarityEpic:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		arena.RarityLegendary: amber.Bold(true),
	}
)

const rule = "----------------------------------------"

func (m gameModel) View() string {
	var b strings.Builder
	b.WriteString(brightGreen.Render("BIOGUESSR ARENA"))
	if m.cfg.Version != "" {
		b.WriteString(dimGreen.Render("  v" + m.cfg.Version))
	}
	b.WriteString("\n")
	b.WriteString(m.statsLine() + "\n")
	if badges := ModifierBadges(m.run.Modifiers); len(badges) > 0 {
		b.WriteString(dimGreen.Render(strings.Join(badges, "  ")) + "\n")
	}
	b.WriteString(border.Render(rule) + "\n\n")

	switch {
	case m.run.Over():
		b.WriteString(m.gameOverView())
	case m.run.Mode == arena.ModeAugmentSelect:
		b.WriteString(m.augmentView())
	case m.run.Mode == arena.ModeDoomSelect:
		b.WriteString(m.tierView())
	default:
		b.WriteString(m.questionView())
	}

	b.WriteString("\n" + border.Render(rule) + "\n")
	b.WriteString(dimGreen.Render(m.helpLine()) + "\n")
	if m.status != "" {
		b.WriteString("\n" + danger.Render(m.status) + "\n")
	}
	return b.String()
}

func (m gameModel) statsLine() string {
	r := m.run
	where := fmt.Sprintf("Stage %d · Q %d", r.Stage, r.QuestionInStage)
	if r.Mode == arena.ModeDoomTrial {
		where = fmt.Sprintf("Doom %s · Q %d", r.Doom.Tier, r.Doom.QuestionIndex)
		if r.Doom.StrikesLeft > 0 {
			where += fmt.Sprintf(" · strikes %d", r.Doom.StrikesLeft)
		}
	}
	hp := fmt.Sprintf("HP %d", r.HP)
	if r.HP <= 2 {
		hp = danger.Render(hp)
	} else {
		hp = green.Render(hp)
	}
	return fmt.Sprintf("%s   %s   %s   %s",
		green.Render(where), hp,
		brightGreen.Render(fmt.Sprintf("Score %d", r.Score)),
		dimGreen.Render(fmt.Sprintf("x%.2f", r.GlobalMultiplier)),
	)
}

// ModifierBadges lists the active effects with their remaining uses. The
// window client shows the same badges.
func ModifierBadges(mods arena.Modifiers) []string {
	var out []string
	add := func(name string, u arena.Uses) {
		if u.Active() {
			out = append(out, fmt.Sprintf("%s(%d)", name, u))
		}
	}
	add("Safety", mods.SafeGuard)
	add("Flurry", mods.Flurry)
	add("Shield", mods.Shielded)
	add("Foresight", mods.Foresight)
	add("Leech", mods.Leech)
	if mods.DuelArmed {
		out = append(out, "Duel!")
	}
	if mods.Oath {
		out = append(out, "Oath")
	}
	if mods.BlurCurse {
		out = append(out, "Shroud")
	}
	if mods.ZoomCurse {
		out = append(out, "Lens")
	}
	return out
}

func (m gameModel) questionView() string {
	r := m.run
	var b strings.Builder
	switch {
	case r.LoadError != "":
		b.WriteString(danger.Render("Could not load an animal: "+r.LoadError) + "\n")
		b.WriteString(green.Render("Press r to try again.") + "\n")
		return b.String()
	case r.Loading || r.Question == nil:
		b.WriteString(dimGreen.Render("Finding an animal…") + "\n")
		return b.String()
	}

	q := r.Question
	name := "???"
	if r.Locked || r.RevealName() {
		name = q.Name
	}
	b.WriteString(brightGreen.Render(name))
	if q.ScientificName != "" {
		b.WriteString("  " + dimGreen.Render(q.ScientificName))
	}
	b.WriteString("\n")
	if q.ImageURL != "" {
		b.WriteString(dimGreen.Render(q.ImageURL+imageNote(r, m.tiers)) + "\n")
	}
	b.WriteString(green.Render(hints.FeatureHint(q)) + "\n")
	b.WriteString(dimGreen.Render(hints.WeightHint(q)) + "\n\n")

	if r.Mode == arena.ModeDoomTrial {
		b.WriteString(timerBar(r.Doom.Timer, 30) + "\n\n")
	}

	if r.Locked {
		style := green
		if !r.Last.Correct {
			style = danger
		}
		b.WriteString(style.Render(r.Feedback) + "\n")
		if !r.Last.Correct && len(q.Origins) > 0 {
			b.WriteString(dimGreen.Render("Found in: "+strings.Join(answer.CleanOrigins(q.Origins), ", ")) + "\n")
		}
		return b.String()
	}

	b.WriteString(green.Render("Where is it from? ") + brightGreen.Render(m.input+"_") + "\n")
	for i, s := range m.sugs {
		cursor := "  "
		line := green.Render(s.Canonical)
		if i == m.sugIdx {
			cursor = "> "
			line = brightGreen.Render(s.Canonical)
		}
		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

func imageNote(r arena.Run, tiers []arena.DoomTierConfig) string {
	var notes []string
	if r.Blurred(tiers) {
		notes = append(notes, "blurred")
	}
	if r.Zoomed(tiers) {
		notes = append(notes, "zoomed")
	}
	if len(notes) == 0 {
		return ""
	}
	return " [" + strings.Join(notes, ", ") + "]"
}

func timerBar(t arena.TimerState, width int) string {
	filled := int(t.Ratio()*float64(width) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := green
	switch {
	case t.Ratio() < 0.25:
		style = danger
	case t.Ratio() < 0.5:
		style = amber
	}
	return style.Render(bar) + dimGreen.Render(fmt.Sprintf(" %.1fs", t.Remaining.Seconds()))
}

func (m gameModel) augmentView() string {
	var b strings.Builder
	b.WriteString(brightGreen.Render("Stage cleared! Choose an augment:") + "\n\n")
	engine := m.ctl.Engine()
	for i, id := range m.run.Offer {
		def, ok := engine.Augment(id)
		if !ok {
			continue
		}
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		style := rarityStyles[def.Rarity]
		b.WriteString(fmt.Sprintf("%s%d. %s %s\n", cursor, i+1, style.Render(def.Name), dimGreen.Render("["+string(def.Rarity)+"]")))
		b.WriteString("     " + green.Render(def.Description) + "\n")
	}
	return b.String()
}

func (m gameModel) tierView() string {
	var b strings.Builder
	b.WriteString(brightGreen.Render("Your run is complete. Face the Doom Trial:") + "\n\n")
	for i, t := range m.tiers {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		label := green.Render(t.Label)
		if !t.Unlocked(m.run.Score) {
			label = dimGreen.Render(fmt.Sprintf("%s (needs %d)", t.Label, t.Threshold))
		}
		b.WriteString(fmt.Sprintf("%s%d. %s  %s\n", cursor, i+1, label, dimGreen.Render(fmt.Sprintf("x%.1f", t.ScoreMultiplier))))
		b.WriteString("     " + green.Render(t.Description) + "\n")
	}
	return b.String()
}

func (m gameModel) gameOverView() string {
	r := m.run
	var b strings.Builder
	b.WriteString(danger.Render("GAME OVER") + "  " + dimGreen.Render(CauseText(r.Cause)) + "\n")
	if r.Feedback != "" {
		b.WriteString(green.Render(r.Feedback) + "\n")
	}
	b.WriteString(brightGreen.Render(fmt.Sprintf("Final score: %d", r.Score)) + "\n\n")

	switch {
	case m.topErr != nil:
		b.WriteString(dimGreen.Render("Leaderboard unavailable.") + "\n")
	case len(m.top) > 0:
		b.WriteString(green.Render("Top 10") + "\n")
		for i, e := range m.top {
			b.WriteString(fmt.Sprintf("%2d. %-3s %6d\n", i+1, e.Initials, e.Score))
		}
	case m.cfg.Board != nil:
		b.WriteString(dimGreen.Render("Loading leaderboard…") + "\n")
	}
	return b.String()
}

// CauseText explains a game-over cause to the player.
func CauseText(c arena.Cause) string {
	switch c {
	case arena.CauseHPZero:
		return "You ran out of HP."
	case arena.CauseAugmentDeath:
		return "An augment took your last HP."
	case arena.CauseDoomDeath:
		return "You fell in the Doom Trial."
	case arena.CauseDoomFail:
		return "The Doom Trial ended your run."
	default:
		return ""
	}
}

func (m gameModel) helpLine() string {
	switch {
	case m.run.Over():
		return "n/Enter new run, q to quit"
	case m.run.Mode == arena.ModeAugmentSelect, m.run.Mode == arena.ModeDoomSelect:
		return "↑/↓ or 1-9 to pick, Enter to confirm, q to quit"
	case m.run.LoadError != "":
		return "r to retry, Esc to quit"
	default:
		return "Type a country, Tab to complete, ↑/↓ suggestions, Enter to answer, Esc to quit"
	}
}
