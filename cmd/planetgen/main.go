package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"redsands/internal/app"
	"redsands/internal/assets"
	"redsands/internal/config"
	"redsands/internal/pipeline"
)

func main() {
	fs := flag.NewFlagSet("planetgen", flag.ExitOnError)
	out := fs.String("out", "out", "directory for face and border PNGs (overridden by -save)")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	dir := cfg.Assets.SaveDir
	if dir == "" {
		dir = *out
	}

	source := app.ElevationSource(cfg.Assets.ElevationDir, cfg.Seed)
	orch, err := pipeline.Start(source, pipeline.FromConfig(cfg))
	if err != nil {
		log.Fatal(err)
	}
	defer orch.Close()

	start := time.Now()
	planet, err := orch.Wait(cfg.Window.TPS)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	elapsed := time.Since(start)

	paths, err := assets.DumpFaces(dir, planet.Map.Faces[:], planet.Borders)
	if err != nil {
		log.Fatal(err)
	}

	stats := planet.Stats()
	fmt.Printf("Generated %d provinces on %dx%d faces in %s (seed %d)\n",
		stats.Provinces, cfg.MapDimensions, cfg.MapDimensions, elapsed.Round(time.Millisecond), cfg.Seed)
	fmt.Printf("Province area: min %d max %d mean %.1f std %.1f\n",
		stats.MinArea, stats.MaxArea, stats.MeanArea, stats.StdArea)
	fmt.Printf("Border pixels: %.2f%%\n", stats.BorderFraction*100)
	for i, lod := range cfg.PlanetLODs {
		fmt.Printf("  lod %d (res %d): %d vertices, %d triangles\n", i, lod, stats.Vertices[i], stats.Triangles[i])
	}
	fmt.Printf("Wrote %d images to %s\n", len(paths), dir)
}
