//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"redsands/internal/app"
	"redsands/internal/config"
	"redsands/internal/pipeline"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	source := app.ElevationSource(cfg.Assets.ElevationDir, cfg.Seed)
	orch, err := pipeline.Start(source, pipeline.FromConfig(cfg))
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(cfg, source, orch)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("redsands")
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
