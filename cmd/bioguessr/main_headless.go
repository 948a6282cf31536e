//go:build !cgo
// +build !cgo

package main

import (
	"log"
	"os"

	"github.com/appengine-ltd/bioguessr/internal/answer"
	"github.com/appengine-ltd/bioguessr/internal/platform/config"
	"github.com/appengine-ltd/bioguessr/internal/ui"
)

// Without cgo there is no window client; the terminal UI is always used.
func main() {
	log.SetPrefix("[BIOGUESSR] ")
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		config.Exitf("bioguessr: %v", err)
	}
	if opts.showVersion {
		printVersion()
		return
	}
	if opts.daily {
		if err := runDaily(opts); err != nil {
			config.Exitf("bioguessr: %v", err)
		}
		return
	}

	g, err := startGame(opts)
	if err != nil {
		config.Exitf("bioguessr: %v", err)
	}
	defer g.Close()

	err = ui.NewApp(ui.AppConfig{
		Version:    version,
		Commit:     commit,
		BuildDate:  date,
		Controller: g.ctl,
		Board:      g.board,
		Matcher:    answer.DefaultMatcher(),
		NewSeed:    newSeed,
	}).Run()
	if err != nil {
		g.Close()
		config.Exitf("bioguessr: %v", err)
	}
}
