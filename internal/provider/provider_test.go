package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const lionJSON = `{
	"name": "Lion",
	"imageUrl": "https://img.test/lion.jpg",
	"countries": ["Kenya", " Tanzania ", ""],
	"characteristics": {"location": "Africa", "weight": "190kg", "lifespan": 14, "nested": {"a": 1}},
	"taxonomy": {"scientific_name": "Panthera leo"}
}`

func TestHTTPNext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/play" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(lionJSON))
	}))
	defer srv.Close()

	q, err := NewHTTP(srv.URL+"/", srv.Client()).Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if q.Name != "Lion" || q.ScientificName != "Panthera leo" || q.ImageURL != "https://img.test/lion.jpg" {
		t.Fatalf("unexpected question %+v", q)
	}
	if len(q.Origins) != 2 || q.Origins[1] != "Tanzania" {
		t.Fatalf("unexpected origins %v", q.Origins)
	}
	if q.Traits["location"] != "Africa" || q.Traits["lifespan"] != "14" {
		t.Fatalf("unexpected traits %v", q.Traits)
	}
	if _, ok := q.Traits["nested"]; ok {
		t.Fatalf("expected nested characteristic dropped")
	}
}

func TestHTTPNextFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		timeout bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "bad json", status: http.StatusOK, body: "{"},
		{name: "no name", status: http.StatusOK, body: `{"name": "  "}`},
		{name: "bad characteristics", status: http.StatusOK, body: `{"name": "x", "characteristics": []}`},
		{name: "no countries", status: http.StatusOK, body: `{"name": "Yeti", "countries": [" ", ""]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewHTTP(srv.URL, srv.Client()).Next(context.Background())
			if !errors.Is(err, ErrLoadFailure) {
				t.Fatalf("expected ErrLoadFailure, got %v", err)
			}
		})
	}
}

func TestHTTPNextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTP(srv.URL, nil).Next(ctx)
	if !errors.Is(err, ErrLoadFailure) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled load failure, got %v", err)
	}
}

func writeAnimals(t *testing.T, animals any) string {
	t.Helper()
	raw, err := json.Marshal(animals)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "animals.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadCatalogFilters(t *testing.T) {
	path := writeAnimals(t, []map[string]any{
		{"name": "Lion", "image_url": "a.jpg", "countries": []string{"Kenya"}, "characteristics": map[string]string{"diet": "Carnivore"}},
		{"name": "", "image_url": "b.jpg", "countries": []string{"Kenya"}, "characteristics": map[string]string{"diet": "x"}},
		{"name": "NoTraits", "image_url": "c.jpg", "countries": []string{"Kenya"}},
		{"name": "NoImage", "countries": []string{"Kenya"}, "characteristics": map[string]string{"diet": "x"}},
		{"name": "NoCountries", "image_url": "e.jpg", "countries": []string{" "}, "characteristics": map[string]string{"diet": "x"}},
		{"name": "Local", "local_image_path": "img/d.jpg", "countries": []string{"Peru"}, "characteristics": map[string]string{"diet": "x"}},
	})
	c, err := LoadCatalog(path, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 playable animals, got %d", c.Len())
	}

	empty := writeAnimals(t, []map[string]any{{"name": "NoTraits", "image_url": "c.jpg"}})
	if _, err := LoadCatalog(empty, 1); err == nil {
		t.Fatal("expected error for catalog without playable animals")
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"), 1); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCatalogNext(t *testing.T) {
	c := NewCatalog(Demo(), 7)
	for i := 0; i < 20; i++ {
		q, err := c.Next(context.Background())
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if q.Name != "Krill" && q.Name != "Beaglier" {
			t.Fatalf("unexpected animal %q", q.Name)
		}
	}

	if _, err := NewCatalog(nil, 1).Next(context.Background()); !errors.Is(err, ErrLoadFailure) {
		t.Fatalf("expected empty catalog failure, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Next(ctx); !errors.Is(err, ErrLoadFailure) {
		t.Fatalf("expected cancelled failure, got %v", err)
	}
}

func TestCatalogDaily(t *testing.T) {
	var animals []Animal
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		animals = append(animals, Animal{Name: n})
	}
	c := NewCatalog(animals, 1)

	morning := time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	first := c.Daily(morning, 5)
	second := c.Daily(evening, 5)
	if len(first) != 5 {
		t.Fatalf("expected 5 animals, got %d", len(first))
	}
	seen := map[string]bool{}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("daily selection changed within the day: %v vs %v", first, second)
		}
		if seen[first[i].Name] {
			t.Fatalf("duplicate daily animal %q", first[i].Name)
		}
		seen[first[i].Name] = true
	}

	if got := c.Daily(morning, 50); len(got) != 10 {
		t.Fatalf("expected selection capped at catalog size, got %d", len(got))
	}
	if got := NewCatalog(nil, 1).Daily(morning, 5); got != nil {
		t.Fatalf("expected nil for empty catalog")
	}
}

func TestHTTPDaily(t *testing.T) {
	body := `{"date": "2026-10-14", "animals": [` + lionJSON + `, {"name": "Yeti", "countries": []}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DailyPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	date, qs, err := NewHTTP(srv.URL, srv.Client()).Daily(context.Background())
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if date != "2026-10-14" || len(qs) != 1 || qs[0].Name != "Lion" {
		t.Fatalf("unexpected daily %s %+v", date, qs)
	}
}

func TestHTTPDailyFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: `{"error": "no animals available"}`},
		{name: "bad json", status: http.StatusOK, body: "["},
		{name: "nothing playable", status: http.StatusOK, body: `{"date": "2026-10-14", "animals": [{"name": "Yeti"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			if _, _, err := NewHTTP(srv.URL, srv.Client()).Daily(context.Background()); !errors.Is(err, ErrLoadFailure) {
				t.Fatalf("expected ErrLoadFailure, got %v", err)
			}
		})
	}
}
