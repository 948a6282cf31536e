package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/appengine-ltd/bioguessr/internal/leaderboard/sqlite"
	"github.com/appengine-ltd/bioguessr/internal/platform/config"
	"github.com/appengine-ltd/bioguessr/internal/platform/otel"
	"github.com/appengine-ltd/bioguessr/internal/provider"
	"github.com/appengine-ltd/bioguessr/internal/server"
)

func main() {
	log.SetPrefix("[BIOGUESSR-SERVER] ")

	cfg, err := config.LoadServer()
	if err != nil {
		config.Exitf("bioguessr-server: %v", err)
	}
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	flag.StringVar(&cfg.AnimalsPath, "animals", cfg.AnimalsPath, "animal catalog JSON file")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "leaderboard SQLite database")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		config.Exitf("bioguessr-server: %v", err)
	}
}

func run(ctx context.Context, cfg config.Server) error {
	shutdown, err := otel.Setup(ctx, "bioguessr-server", cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	seed := uint64(time.Now().UnixNano())
	catalog, err := provider.LoadCatalog(cfg.AnimalsPath, seed)
	if err != nil {
		log.Printf("animal catalog unavailable (%v); serving demo animals", err)
		catalog = provider.NewCatalog(provider.Demo(), seed)
	}
	log.Printf("serving %d animals", catalog.Len())

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open leaderboard: %w", err)
	}
	defer store.Close()

	return server.New(catalog, store).ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))
}
