package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/platform/otel"
)

const (
	playPath      = "/api/play"
	DailyPath     = "/api/daily"
	maxAnimalBody = 1 << 20
)

// HTTP fetches questions from a bioguessr server.
type HTTP struct {
	base   string
	client *http.Client
}

// NewHTTP returns a client for the server at baseURL. A nil client gets a
// client with a 10s timeout.
func NewHTTP(baseURL string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTP{base: strings.TrimRight(baseURL, "/"), client: client}
}

func (h *HTTP) Next(ctx context.Context) (arena.Question, error) {
	ctx, span := otel.Tracer("provider").Start(ctx, "provider.Next")
	defer span.End()

	q, err := h.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return arena.Question{}, err
	}
	span.SetAttributes(attribute.String("animal.name", q.Name), attribute.Int("animal.origins", len(q.Origins)))
	return q, nil
}

func (h *HTTP) fetch(ctx context.Context) (arena.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+playPath, nil)
	if err != nil {
		return arena.Question{}, fmt.Errorf("%w: build request: %w", ErrLoadFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return arena.Question{}, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return arena.Question{}, fmt.Errorf("%w: %s: %s", ErrLoadFailure, resp.Status, strings.TrimSpace(string(b)))
	}

	var a Animal
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAnimalBody)).Decode(&a); err != nil {
		return arena.Question{}, fmt.Errorf("%w: decode animal: %w", ErrLoadFailure, err)
	}
	if strings.TrimSpace(a.Name) == "" {
		return arena.Question{}, fmt.Errorf("%w: animal has no name", ErrLoadFailure)
	}
	if len(a.origins()) == 0 {
		return arena.Question{}, fmt.Errorf("%w: %s has no countries", ErrLoadFailure, strings.TrimSpace(a.Name))
	}
	return a.Question(), nil
}

// DailySet is the body of /api/daily.
type DailySet struct {
	Date    string   `json:"date"`
	Animals []Animal `json:"animals"`
}

// Daily fetches today's challenge. Animals that could not be answered are
// skipped; a set with none left is a load failure.
func (h *HTTP) Daily(ctx context.Context) (string, []arena.Question, error) {
	ctx, span := otel.Tracer("provider").Start(ctx, "provider.Daily")
	defer span.End()

	date, qs, err := h.fetchDaily(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", nil, err
	}
	span.SetAttributes(attribute.String("daily.date", date), attribute.Int("daily.animals", len(qs)))
	return date, qs, nil
}

func (h *HTTP) fetchDaily(ctx context.Context) (string, []arena.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+DailyPath, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: build request: %w", ErrLoadFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("%w: daily: %s", ErrLoadFailure, resp.Status)
	}

	var set DailySet
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8*maxAnimalBody)).Decode(&set); err != nil {
		return "", nil, fmt.Errorf("%w: decode daily: %w", ErrLoadFailure, err)
	}
	var qs []arena.Question
	for _, a := range set.Animals {
		if strings.TrimSpace(a.Name) == "" || len(a.origins()) == 0 {
			continue
		}
		qs = append(qs, a.Question())
	}
	if len(qs) == 0 {
		return "", nil, fmt.Errorf("%w: daily set for %q has no playable animals", ErrLoadFailure, set.Date)
	}
	return set.Date, qs, nil
}
