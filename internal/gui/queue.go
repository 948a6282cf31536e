package gui

// queue hands results from background goroutines to the render loop, which
// must own every raylib call.
type queue[T any] struct {
	ch chan T
}

func newQueue[T any](size int) *queue[T] {
	if size < 1 {
		size = 16
	}
	return &queue[T]{ch: make(chan T, size)}
}

func (q *queue[T]) Enqueue(v T) bool {
	if q == nil {
		return false
	}
	select {
	case q.ch <- v:
		return true
	default:
		// Saturated; the producer's result is stale by the time it drains.
		return false
	}
}

func (q *queue[T]) Dequeue() (T, bool) {
	var zero T
	if q == nil {
		return zero, false
	}
	select {
	case v := <-q.ch:
		return v, true
	default:
		return zero, false
	}
}
