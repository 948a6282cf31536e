package main

import (
	"errors"
	"testing"

	"github.com/appengine-ltd/bioguessr/internal/leaderboard"
)

func TestParseOptionsFlagsOverrideEnv(t *testing.T) {
	t.Setenv("BIOGUESSR_API_URL", "http://env.example:9000")
	t.Setenv("BIOGUESSR_INITIALS", "env")
	t.Setenv("BIOGUESSR_SEED", "11")

	opts, err := parseOptions([]string{"-initials", "zq", "-tui", "-daily"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.APIURL != "http://env.example:9000" {
		t.Fatalf("api = %q", opts.APIURL)
	}
	if opts.Initials != "ZQ" || opts.Seed != 11 || !opts.tui || !opts.daily {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestParseOptionsPicksSeed(t *testing.T) {
	opts, err := parseOptions([]string{"-seed", "0"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.Seed == 0 {
		t.Fatalf("expected a clock seed")
	}
}

func TestParseOptionsRejectsBadInitials(t *testing.T) {
	_, err := parseOptions([]string{"-initials", "R2D2"})
	if !errors.Is(err, leaderboard.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
	if _, err := parseOptions([]string{"-nope"}); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}
