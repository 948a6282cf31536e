package gui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/bioguessr/internal/arena"
)

// Retro terminal palette shared with the TUI.
var (
	colorBG     = rl.NewColor(6, 14, 8, 255)
	colorPanel  = rl.NewColor(12, 26, 15, 255)
	colorRaised = rl.NewColor(18, 38, 22, 255)
	colorBorder = rl.NewColor(38, 92, 48, 255)
	colorText   = rl.NewColor(120, 232, 140, 255)
	colorDim    = rl.NewColor(70, 140, 84, 255)
	colorAccent = rl.NewColor(176, 255, 150, 255)
	colorWarn   = rl.NewColor(236, 196, 84, 255)
	colorDanger = rl.NewColor(232, 88, 72, 255)
)

const (
	spaceS = 8
	spaceM = 14
	spaceL = 22
)

func rarityColor(r arena.Rarity) rl.Color {
	switch r {
	case arena.RarityRare:
		return rl.NewColor(96, 208, 232, 255)
	case arena.RarityEpic:
		return rl.NewColor(210, 128, 240, 255)
	case arena.RarityLegendary:
		return colorWarn
	default:
		return colorText
	}
}

func timerColor(ratio float64) rl.Color {
	switch {
	case ratio < 0.25:
		return colorDanger
	case ratio < 0.5:
		return colorWarn
	default:
		return colorText
	}
}

func drawPanel(rect rl.Rectangle, title string) {
	rl.DrawRectangleRounded(rect, 0.04, 8, colorPanel)
	rl.DrawRectangleRoundedLinesEx(rect, 0.04, 8, 2, colorBorder)
	if title != "" {
		rl.DrawText(title, int32(rect.X)+12, int32(rect.Y)+8, 20, colorAccent)
	}
}

func drawTextCentered(text string, rect rl.Rectangle, yOffset int32, fontSize int32, clr rl.Color) {
	width := rl.MeasureText(text, fontSize)
	x := int32(rect.X + (rect.Width-float32(width))/2)
	rl.DrawText(text, x, int32(rect.Y)+yOffset, fontSize, clr)
}

// drawWrappedText draws text inside rect starting at y and returns the height
// it used.
func drawWrappedText(text string, rect rl.Rectangle, y int32, size int32, clr rl.Color) int32 {
	maxWidth := int32(rect.Width) - 26
	lines := wrapText(text, maxWidth, func(s string) int32 { return rl.MeasureText(s, size) })
	for i, line := range lines {
		rl.DrawText(line, int32(rect.X)+14, int32(rect.Y)+y+int32(i)*(size+6), size, clr)
	}
	return int32(len(lines)) * (size + 6)
}

// wrapText breaks text into lines no wider than maxWidth. A single word wider
// than maxWidth gets a line of its own.
func wrapText(text string, maxWidth int32, measure func(string) int32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 8)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
