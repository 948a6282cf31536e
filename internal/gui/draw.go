package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/bioguessr/internal/answer"
	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/hints"
	tui "github.com/appengine-ltd/bioguessr/internal/ui"
)

func (ui *gameUI) draw() {
	ui.drawHeader()
	body := rl.NewRectangle(20, 112, float32(ui.width-40), float32(ui.height-112-56))
	switch r := ui.run; {
	case r.Over():
		ui.drawGameOver(body)
	case r.Mode == arena.ModeAugmentSelect:
		ui.drawAugments(body)
	case r.Mode == arena.ModeDoomSelect:
		ui.drawTiers(body)
	default:
		ui.drawQuestion(body)
	}
	ui.drawFooter()
}

func (ui *gameUI) drawHeader() {
	r := ui.run
	rl.DrawText("BIOGUESSR ARENA", 24, 16, 30, colorAccent)
	if ui.cfg.Version != "" {
		v := "v" + ui.cfg.Version
		rl.DrawText(v, ui.width-24-rl.MeasureText(v, 16), 24, 16, colorDim)
	}

	where := fmt.Sprintf("Stage %d  Q %d", r.Stage, r.QuestionInStage)
	if r.Mode == arena.ModeDoomTrial {
		where = fmt.Sprintf("Doom %s  Q %d", r.Doom.Tier, r.Doom.QuestionIndex)
		if r.Doom.StrikesLeft > 0 {
			where += fmt.Sprintf("  strikes %d", r.Doom.StrikesLeft)
		}
	}
	x := int32(24)
	for _, part := range []struct {
		text string
		clr  rl.Color
	}{
		{where, colorText},
		{fmt.Sprintf("HP %d", r.HP), hpColor(r.HP)},
		{fmt.Sprintf("Score %d", r.Score), colorAccent},
		{fmt.Sprintf("x%.2f", r.GlobalMultiplier), colorDim},
	} {
		rl.DrawText(part.text, x, 56, 20, part.clr)
		x += rl.MeasureText(part.text, 20) + spaceL
	}
	if badges := tui.ModifierBadges(r.Modifiers); len(badges) > 0 {
		rl.DrawText(strings.Join(badges, "  "), 24, 84, 18, colorDim)
	}
	rl.DrawLineEx(rl.Vector2{X: 20, Y: 106}, rl.Vector2{X: float32(ui.width - 20), Y: 106}, 2, colorBorder)
}

func hpColor(hp int) rl.Color {
	if hp <= 2 {
		return colorDanger
	}
	return colorText
}

func (ui *gameUI) drawFooter() {
	y := ui.height - 40
	if ui.status != "" {
		rl.DrawText(ui.status, 24, y-24, 18, colorDanger)
	}
	rl.DrawText(ui.helpLine(), 24, y, 18, colorDim)
}

func (ui *gameUI) helpLine() string {
	switch r := ui.run; {
	case r.Over():
		return "N / Enter new run    Q quit"
	case r.Mode == arena.ModeAugmentSelect, r.Mode == arena.ModeDoomSelect:
		return "Up/Down or 1-9 pick    Enter confirm    Q quit"
	case r.LoadError != "":
		return "R retry    Esc quit"
	default:
		return "Type a country    Tab complete    Up/Down suggestions    Enter answer    Esc quit"
	}
}

func (ui *gameUI) drawQuestion(body rl.Rectangle) {
	r := ui.run
	switch {
	case r.LoadError != "":
		drawPanel(body, "")
		drawTextCentered("Could not load an animal", body, int32(body.Height/2)-40, 26, colorDanger)
		drawTextCentered(r.LoadError, body, int32(body.Height/2), 18, colorDim)
		drawTextCentered("Press R to try again", body, int32(body.Height/2)+36, 20, colorText)
		return
	case r.Loading || r.Question == nil:
		drawPanel(body, "")
		drawTextCentered("Finding an animal…", body, int32(body.Height/2)-12, 24, colorDim)
		return
	}

	q := r.Question
	imgRect := rl.NewRectangle(body.X, body.Y, body.Width*0.56, body.Height)
	info := rl.NewRectangle(imgRect.X+imgRect.Width+spaceM, body.Y, body.Width-imgRect.Width-spaceM, body.Height)

	drawPanel(imgRect, "")
	inner := rl.NewRectangle(imgRect.X+spaceS, imgRect.Y+spaceS, imgRect.Width-2*spaceS, imgRect.Height-2*spaceS)
	ui.pic.draw(inner, r.Zoomed(ui.tiers))

	drawPanel(info, "")
	name := "???"
	if r.Locked || r.RevealName() {
		name = q.Name
	}
	y := int32(16)
	rl.DrawText(name, int32(info.X)+14, int32(info.Y)+y, 28, colorAccent)
	y += 36
	if q.ScientificName != "" {
		rl.DrawText(q.ScientificName, int32(info.X)+14, int32(info.Y)+y, 18, colorDim)
		y += 28
	}
	y += drawWrappedText(hints.FeatureHint(q), info, y, 18, colorText) + spaceS
	y += drawWrappedText(hints.WeightHint(q), info, y, 18, colorDim) + spaceM

	if r.Mode == arena.ModeDoomTrial {
		drawTimerBar(r.Doom.Timer, rl.NewRectangle(info.X+14, info.Y+float32(y), info.Width-28, 18))
		y += 34
	}

	if r.Locked {
		clr := colorText
		if !r.Last.Correct {
			clr = colorDanger
		}
		y += drawWrappedText(r.Feedback, info, y, 22, clr) + spaceS
		if !r.Last.Correct && len(q.Origins) > 0 {
			drawWrappedText("Found in: "+strings.Join(answer.CleanOrigins(q.Origins), ", "), info, y, 18, colorDim)
		}
		return
	}
	ui.drawAnswerBox(rl.NewRectangle(info.X+14, info.Y+float32(y)+spaceS, info.Width-28, 40))
}

func drawTimerBar(t arena.TimerState, rect rl.Rectangle) {
	ratio := t.Ratio()
	rl.DrawRectangleRec(rect, colorRaised)
	fill := rect
	fill.Width = rect.Width * float32(ratio)
	rl.DrawRectangleRec(fill, timerColor(ratio))
	rl.DrawRectangleLinesEx(rect, 1, colorBorder)
	label := fmt.Sprintf("%.1fs", t.Remaining.Seconds())
	rl.DrawText(label, int32(rect.X+rect.Width)-rl.MeasureText(label, 16), int32(rect.Y)-20, 16, colorDim)
}

func (ui *gameUI) drawAnswerBox(rect rl.Rectangle) {
	rl.DrawText("Where is it from?", int32(rect.X), int32(rect.Y)-4, 18, colorText)
	field := rl.NewRectangle(rect.X, rect.Y+22, rect.Width, rect.Height)
	rl.DrawRectangleRounded(field, 0.2, 6, colorRaised)
	rl.DrawRectangleRoundedLinesEx(field, 0.2, 6, 2, colorBorder)
	text := ui.box.text
	if (rl.GetTime()*2)-float64(int(rl.GetTime()*2)) < 0.5 {
		text += "_"
	}
	rl.DrawText(text, int32(field.X)+10, int32(field.Y)+10, 22, colorAccent)

	y := field.Y + field.Height + 4
	for i, s := range ui.box.sugs {
		row := rl.NewRectangle(field.X, y, field.Width, 30)
		clr := colorText
		if i == ui.box.sel {
			rl.DrawRectangleRec(row, colorRaised)
			clr = colorAccent
		}
		rl.DrawText(s.Canonical, int32(row.X)+10, int32(row.Y)+6, 20, clr)
		y += 30
	}
}

func (ui *gameUI) drawAugments(body rl.Rectangle) {
	drawPanel(body, "Stage cleared! Choose an augment")
	engine := ui.ctl.Engine()
	n := len(ui.run.Offer)
	if n == 0 {
		return
	}
	cardW := (body.Width - spaceL*float32(n+1)) / float32(n)
	for i, id := range ui.run.Offer {
		def, ok := engine.Augment(id)
		if !ok {
			continue
		}
		card := rl.NewRectangle(body.X+spaceL+float32(i)*(cardW+spaceL), body.Y+60, cardW, body.Height-100)
		ui.drawCard(card, i, def.Name, string(def.Rarity), def.Description, rarityColor(def.Rarity), true)
	}
}

func (ui *gameUI) drawTiers(body rl.Rectangle) {
	drawPanel(body, "Your run is complete. Face the Doom Trial")
	n := len(ui.tiers)
	if n == 0 {
		return
	}
	cardW := (body.Width - spaceL*float32(n+1)) / float32(n)
	for i, t := range ui.tiers {
		card := rl.NewRectangle(body.X+spaceL+float32(i)*(cardW+spaceL), body.Y+60, cardW, body.Height-100)
		sub := fmt.Sprintf("x%.1f score", t.ScoreMultiplier)
		open := t.Unlocked(ui.run.Score)
		if !open {
			sub = fmt.Sprintf("needs %d points", t.Threshold)
		}
		ui.drawCard(card, i, t.Label, sub, t.Description, colorAccent, open)
	}
}

func (ui *gameUI) drawCard(card rl.Rectangle, i int, title, sub, desc string, accent rl.Color, enabled bool) {
	bg, edge := colorPanel, colorBorder
	if i == ui.idx {
		bg, edge = colorRaised, accent
	}
	if !enabled {
		accent = colorDim
	}
	rl.DrawRectangleRounded(card, 0.06, 8, bg)
	rl.DrawRectangleRoundedLinesEx(card, 0.06, 8, 2, edge)
	rl.DrawText(fmt.Sprintf("%d", i+1), int32(card.X)+14, int32(card.Y)+12, 18, colorDim)
	drawTextCentered(title, card, 40, 24, accent)
	drawTextCentered(sub, card, 72, 16, colorDim)
	drawWrappedText(desc, card, 110, 18, colorText)
}

func (ui *gameUI) drawGameOver(body rl.Rectangle) {
	r := ui.run
	drawPanel(body, "")
	drawTextCentered("GAME OVER", body, 30, 40, colorDanger)
	drawTextCentered(tui.CauseText(r.Cause), body, 80, 20, colorDim)
	if r.Feedback != "" {
		drawTextCentered(r.Feedback, body, 108, 18, colorText)
	}
	drawTextCentered(fmt.Sprintf("Final score: %d", r.Score), body, 140, 28, colorAccent)

	y := int32(body.Y) + 200
	switch {
	case ui.topErr != nil:
		drawTextCentered("Leaderboard unavailable", body, y-int32(body.Y), 20, colorDim)
	case len(ui.top) > 0:
		drawTextCentered("Top 10", body, y-int32(body.Y), 22, colorText)
		y += 32
		for i, e := range ui.top {
			line := fmt.Sprintf("%2d.  %-3s  %7d", i+1, e.Initials, e.Score)
			drawTextCentered(line, body, y-int32(body.Y)+int32(i)*26, 20, colorText)
		}
	case ui.cfg.Board != nil:
		drawTextCentered("Loading leaderboard…", body, y-int32(body.Y), 20, colorDim)
	}
}
