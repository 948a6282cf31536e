// Package provider delivers animals to play: an HTTP client for a remote
// question server and an in-memory catalog backed by a JSON file.
package provider

import (
	"context"
	"errors"

	"github.com/appengine-ltd/bioguessr/internal/arena"
)

// ErrLoadFailure marks every failure to produce a question. The run is not
// affected; the caller may retry.
var ErrLoadFailure = errors.New("question load failed")

// Provider yields one question per call.
type Provider interface {
	Next(ctx context.Context) (arena.Question, error)
}

// Func adapts a function to Provider.
type Func func(ctx context.Context) (arena.Question, error)

func (f Func) Next(ctx context.Context) (arena.Question, error) { return f(ctx) }
