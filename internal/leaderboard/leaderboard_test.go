package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeInitials(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "abc", want: "ABC"},
		{in: " z ", want: "Z"},
		{in: "Ab", want: "AB"},
		{in: "", wantErr: true},
		{in: "ABCD", wantErr: true},
		{in: "A1", wantErr: true},
		{in: "é", wantErr: true},
	}
	for _, tc := range tests {
		got, err := NormalizeInitials(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidEntry) {
				t.Fatalf("%q: expected ErrInvalidEntry, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %q, %v want %q", tc.in, got, err, tc.want)
		}
	}

	if _, err := (Entry{Initials: "AAA", Score: -1}).Normalize(); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected negative score rejected, got %v", err)
	}
}

func TestHTTPSubmit(t *testing.T) {
	var got Entry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != SubmitPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	h := NewHTTP(srv.URL, srv.Client())
	if err := h.Submit(context.Background(), Entry{Initials: "abc", Score: 1234}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Initials != "ABC" || got.Score != 1234 {
		t.Fatalf("unexpected posted entry %+v", got)
	}
	if err := h.Submit(context.Background(), Entry{Initials: "toolong", Score: 1}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected invalid entry rejected client side, got %v", err)
	}
}

func TestHTTPSubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "db down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewHTTP(srv.URL, srv.Client()).Submit(context.Background(), Entry{Initials: "A", Score: 1}); err == nil {
		t.Fatal("expected error")
	}
}

func TestHTTPTop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != TopPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(TopResponse{Leaderboard: []Entry{
			{Initials: "AAA", Score: 900},
			{Initials: "BBB", Score: 500},
			{Initials: "CCC", Score: 100},
		}})
	}))
	defer srv.Close()

	top, err := NewHTTP(srv.URL, srv.Client()).Top(context.Background(), 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 || top[0].Initials != "AAA" || top[1].Score != 500 {
		t.Fatalf("unexpected top %+v", top)
	}
}
