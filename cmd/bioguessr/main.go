//go:build cgo
// +build cgo

package main

import (
	"log"
	"os"

	"github.com/appengine-ltd/bioguessr/internal/answer"
	"github.com/appengine-ltd/bioguessr/internal/gui"
	"github.com/appengine-ltd/bioguessr/internal/platform/config"
	"github.com/appengine-ltd/bioguessr/internal/ui"
)

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

	matcher := answer.DefaultMatcher()
	if opts.tui {
		err = ui.NewApp(ui.AppConfig{
			Version:    version,
			Commit:     commit,
			BuildDate:  date,
			Controller: g.ctl,
			Board:      g.board,
			Matcher:    matcher,
			NewSeed:    newSeed,
		}).Run()
	} else {
		err = gui.NewApp(gui.AppConfig{
			Version:    version,
			Commit:     commit,
			BuildDate:  date,
			Controller: g.ctl,
			Board:      g.board,
			Matcher:    matcher,
			NewSeed:    newSeed,
		}).Run()
	}
	if err != nil {
		g.Close()
		config.Exitf("bioguessr: %v", err)
	}
}
