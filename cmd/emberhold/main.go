package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/emberhold-games/emberhold/internal/game"
	"github.com/emberhold-games/emberhold/internal/ui"
)

// version, commit, date are injected at build time (see .goreleaser.yaml).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		noUpdate    bool
		ascii       bool
		assetsPath  string
		seed        uint64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&noUpdate, "no-update", false, "disable update checks")
	flag.BoolVar(&ascii, "ascii", false, "draw the fire in plain ASCII")
	flag.StringVar(&assetsPath, "assets", "", "load an external asset table instead of the built-in one")
	flag.Uint64Var(&seed, "seed", 0, "session seed (0 draws from the clock)")
	flag.Parse()

	if showVersion {
		fmt.Printf("Emberhold %s (%s) %s\n", version, commit, date)
		return
	}

	assets := game.DefaultAssets()
	if assetsPath != "" {
		table, err := game.LoadAssetsFile(assetsPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		assets = table
	}

	app := ui.NewApp(ui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		NoUpdate:  noUpdate,
		Ascii:     ascii,
		Seed:      seed,
		Assets:    assets,
	})

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
