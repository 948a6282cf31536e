package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	SubmitPath = "/api/updateLeaderboard"
	TopPath    = "/api/getTopTenFromLeaderboard"
)

// TopResponse is the body of TopPath.
type TopResponse struct {
	Leaderboard []Entry `json:"leaderboard"`
}

// HTTP talks to a bioguessr server's leaderboard endpoints.
type HTTP struct {
	base   string
	client *http.Client
}

func NewHTTP(baseURL string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTP{base: strings.TrimRight(baseURL, "/"), client: client}
}

func (h *HTTP) Submit(ctx context.Context, e Entry) error {
	e, err := e.Normalize()
	if err != nil {
		return err
	}
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+SubmitPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("submit score: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	return nil
}

// Top fetches the server's top ten and returns at most n of them.
func (h *HTTP) Top(ctx context.Context, n int) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+TopPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch leaderboard: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var out TopResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	if n >= 0 && len(out.Leaderboard) > n {
		out.Leaderboard = out.Leaderboard[:n]
	}
	return out.Leaderboard, nil
}
