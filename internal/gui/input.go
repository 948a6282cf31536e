package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/bioguessr/internal/answer"
)

const (
	maxAnswerLen = 48
	maxSuggest   = 5
)

// answerBox is the country input with its autocomplete dropdown.
type answerBox struct {
	matcher *answer.Matcher
	text    string
	sugs    []answer.Suggestion
	sel     int
}

func (b *answerBox) insert(r rune) {
	if len([]rune(b.text)) >= maxAnswerLen {
		return
	}
	b.text += string(r)
	b.refresh()
}

func (b *answerBox) backspace() {
	r := []rune(b.text)
	if len(r) == 0 {
		return
	}
	b.text = string(r[:len(r)-1])
	b.refresh()
}

// complete replaces the text with the selected suggestion.
func (b *answerBox) complete() {
	if len(b.sugs) == 0 {
		return
	}
	b.text = b.sugs[b.sel].Canonical
	b.refresh()
}

func (b *answerBox) move(delta int) {
	n := len(b.sugs)
	if n == 0 {
		return
	}
	b.sel = ((b.sel+delta)%n + n) % n
}

func (b *answerBox) reset() {
	b.text, b.sugs, b.sel = "", nil, 0
}

func (b *answerBox) refresh() {
	b.sel = 0
	if b.matcher == nil {
		b.sugs = nil
		return
	}
	b.sugs = b.matcher.Suggest(b.text, maxSuggest)
}

// captureTextInput feeds printable keystrokes of this frame into b.
func captureTextInput(b *answerBox) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch != 127 {
			b.insert(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		b.backspace()
	}
}

// pendingAdvance delays Advance so the player can read the feedback for the
// question fetched as generation fetch. Each generation fires at most once.
type pendingAdvance struct {
	fetch uint64
	at    time.Time
	set   bool
	fired bool
}

func (p *pendingAdvance) arm(fetch uint64, now time.Time, delay time.Duration) {
	if p.set && p.fetch == fetch {
		return
	}
	*p = pendingAdvance{fetch: fetch, at: now.Add(delay), set: true}
}

func (p *pendingAdvance) due(fetch uint64, now time.Time) bool {
	if !p.set || p.fired || p.fetch != fetch || now.Before(p.at) {
		return false
	}
	p.fired = true
	return true
}

func (p *pendingAdvance) clear() { *p = pendingAdvance{} }
