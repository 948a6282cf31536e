package gui

import (
	"strings"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/bioguessr/internal/answer"
)

func TestQueueDropsWhenFull(t *testing.T) {
	q := newQueue[int](2)
	if !q.Enqueue(1) || !q.Enqueue(2) {
		t.Fatalf("expected first two enqueues to succeed")
	}
	if q.Enqueue(3) {
		t.Fatalf("expected enqueue on a full queue to drop")
	}
	for _, want := range []int{1, 2} {
		got, ok := q.Dequeue()
		if !ok || got != want {
			t.Fatalf("dequeue = %d, %v; want %d", got, ok, want)
		}
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatalf("expected empty queue")
	}

	var nilQueue *queue[int]
	if nilQueue.Enqueue(1) {
		t.Fatalf("nil queue accepted a value")
	}
}

func newBox() *answerBox {
	m := answer.NewMatcher()
	m.Register("Norway")
	m.Register("Nepal")
	m.Register("Kenya")
	return &answerBox{matcher: m}
}

func TestAnswerBoxSuggestAndComplete(t *testing.T) {
	b := newBox()
	b.insert('N')
	if len(b.sugs) != 2 {
		t.Fatalf("expected two suggestions for N, got %+v", b.sugs)
	}
	b.move(1)
	want := b.sugs[1].Canonical
	b.complete()
	if b.text != want {
		t.Fatalf("complete = %q, want %q", b.text, want)
	}

	b.move(-1)
	if b.sel != 0 {
		t.Fatalf("expected wrap within a single suggestion, got %d", b.sel)
	}

	b.reset()
	for _, r := range "ke" {
		b.insert(r)
	}
	b.backspace()
	if b.text != "k" {
		t.Fatalf("backspace = %q", b.text)
	}
	b.backspace()
	b.backspace()
	if b.text != "" || len(b.sugs) != 0 {
		t.Fatalf("expected empty box, got %q %+v", b.text, b.sugs)
	}
}

func TestAnswerBoxLimitsLength(t *testing.T) {
	b := &answerBox{}
	for range maxAnswerLen + 10 {
		b.insert('é')
	}
	if n := len([]rune(b.text)); n != maxAnswerLen {
		t.Fatalf("length = %d, want %d", n, maxAnswerLen)
	}
}

func TestPendingAdvanceFiresOncePerFetch(t *testing.T) {
	var p pendingAdvance
	start := time.Unix(100, 0)
	p.arm(3, start, feedbackDelay)
	if p.due(3, start.Add(feedbackDelay/2)) {
		t.Fatalf("fired before the delay")
	}
	p.arm(3, start.Add(feedbackDelay/2), feedbackDelay)
	if !p.due(3, start.Add(feedbackDelay)) {
		t.Fatalf("expected advance once the delay passed")
	}
	if p.due(3, start.Add(2*feedbackDelay)) {
		t.Fatalf("fired twice for one fetch")
	}
	p.arm(3, start.Add(3*feedbackDelay), feedbackDelay)
	if p.due(3, start.Add(5*feedbackDelay)) {
		t.Fatalf("re-arming the same fetch must not fire again")
	}

	p.arm(4, start, feedbackDelay)
	if p.due(3, start.Add(time.Hour)) {
		t.Fatalf("fired for a stale fetch")
	}
	p.clear()
	p.arm(3, start, 0)
	if !p.due(3, start) {
		t.Fatalf("expected a fresh run to fire for a reused fetch number")
	}
}

func TestWrapText(t *testing.T) {
	measure := func(s string) int32 { return int32(len(s)) }
	got := wrapText("the quick brown fox jumps", 10, measure)
	want := []string{"the quick", "brown fox", "jumps"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("wrap = %q, want %q", got, want)
	}
	if got := wrapText("   ", 10, measure); len(got) != 1 || got[0] != "" {
		t.Fatalf("blank wrap = %q", got)
	}
	if got := wrapText("extraordinarily long", 5, measure); len(got) != 2 {
		t.Fatalf("long words = %q", got)
	}
}

func TestFitRectKeepsAspect(t *testing.T) {
	got := fitRect(200, 100, rl.NewRectangle(0, 0, 100, 100))
	if got.Width != 100 || got.Height != 50 || got.Y != 25 || got.X != 0 {
		t.Fatalf("fit = %+v", got)
	}
	bounds := rl.NewRectangle(5, 5, 10, 10)
	if got := fitRect(0, 10, bounds); got != bounds {
		t.Fatalf("degenerate fit = %+v", got)
	}
}
