package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/appengine-ltd/bioguessr/internal/answer"
	"github.com/appengine-ltd/bioguessr/internal/arena"
	"github.com/appengine-ltd/bioguessr/internal/leaderboard"
	"github.com/appengine-ltd/bioguessr/internal/platform/config"
	"github.com/appengine-ltd/bioguessr/internal/platform/otel"
	"github.com/appengine-ltd/bioguessr/internal/provider"
	"github.com/appengine-ltd/bioguessr/internal/session"
	"github.com/appengine-ltd/bioguessr/internal/ui"
)

// version, commit, date are injected at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	config.Client
	tui         bool
	daily       bool
	showVersion bool
}

// parseOptions layers command-line flags over the BIOGUESSR_* environment.
func parseOptions(args []string) (options, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return options{}, err
	}
	opts := options{Client: cfg}

	fs := flag.NewFlagSet("bioguessr", flag.ContinueOnError)
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	fs.BoolVar(&opts.tui, "tui", false, "play in the terminal instead of a window")
	fs.BoolVar(&opts.daily, "daily", false, "play today's daily challenge in the terminal")
	fs.StringVar(&opts.APIURL, "api", opts.APIURL, "question and leaderboard server URL")
	fs.StringVar(&opts.Initials, "initials", opts.Initials, "initials for the leaderboard (1-3 letters)")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "run seed; 0 picks one from the clock")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	initials, err := leaderboard.NormalizeInitials(opts.Initials)
	if err != nil {
		return options{}, fmt.Errorf("initials %q: %w", opts.Initials, err)
	}
	opts.Initials = initials
	if opts.Seed == 0 {
		opts.Seed = newSeed()
	}
	return opts, nil
}

func newSeed() int64 { return time.Now().UnixNano() }

// game is everything a front end needs to play.
type game struct {
	ctl      *session.Controller
	board    *leaderboard.HTTP
	shutdown otel.Shutdown
}

func (g *game) Close() {
	g.ctl.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.shutdown(ctx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
}

func startGame(opts options) (*game, error) {
	shutdown, err := otel.Setup(context.Background(), "bioguessr", opts.Telemetry)
	if err != nil {
		return nil, err
	}
	engine, err := arena.NewEngine(arena.DefaultConfig())
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	board := leaderboard.NewHTTP(opts.APIURL, client)
	ctl, err := session.New(session.Options{
		Engine:   engine,
		Provider: provider.NewHTTP(opts.APIURL, client),
		Sink:     board,
		Initials: opts.Initials,
		Seed:     opts.Seed,
	})
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}
	return &game{ctl: ctl, board: board, shutdown: shutdown}, nil
}

// runDaily plays the daily challenge. Scores are not submitted to the
// leaderboard.
func runDaily(opts options) error {
	shutdown, err := otel.Setup(context.Background(), "bioguessr", opts.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	date, questions, err := provider.NewHTTP(opts.APIURL, nil).Daily(ctx)
	if err != nil {
		return err
	}
	return ui.NewDailyApp(ui.DailyConfig{
		Version:   version,
		Date:      date,
		Questions: questions,
		Matcher:   answer.DefaultMatcher(),
	}).Run()
}

func printVersion() {
	fmt.Fprintf(os.Stdout, "BioGuessr Arena %s (%s) %s\n", version, commit, date)
}
