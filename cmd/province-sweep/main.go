package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"redsands/internal/config"
	"redsands/internal/noise"
	"redsands/internal/pipeline"
	"redsands/internal/provinces"
)

type paramSet struct {
	displacement float64
	octaves      int
	boost        float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("displacement=%.1f octaves=%d boost=%.2f", p.displacement, p.octaves, p.boost)
}

type scenarioResult struct {
	params         paramSet
	borderFraction float64
	minArea        int
	maxArea        int
	stdArea        float64
	elapsed        time.Duration
	err            error
}

func main() {
	fs := flag.NewFlagSet("province-sweep", flag.ExitOnError)
	sweepWorkers := fs.Int("sweep-workers", runtime.NumCPU(), "parallel scenarios")
	top := fs.Int("top", 5, "number of results to print")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	displacementOptions := []float64{0, 32, 64, 86, 128}
	octaveOptions := []int{4, 8, 12}
	boostOptions := []float64{1.0, 1.2, 1.5}

	var sets []paramSet
	for _, d := range displacementOptions {
		for _, o := range octaveOptions {
			for _, b := range boostOptions {
				sets = append(sets, paramSet{displacement: d, octaves: o, boost: b})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d provinces on %dx%d faces)\n",
		len(sets), *sweepWorkers, cfg.NumProvinces, cfg.MapDimensions, cfg.MapDimensions)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *sweepWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(cfg, params)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("%s: %v", res.params, res.err)
			continue
		}
		all = append(all, res)
	}

	// Rougher borders score higher; a flat partition has the fewest border pixels.
	sort.Slice(all, func(i, j int) bool { return all[i].borderFraction > all[j].borderFraction })
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) borders=%.2f%% area[%d,%d] std=%.1f time=%s %s\n",
			i+1, res.borderFraction*100, res.minArea, res.maxArea, res.stdArea, res.elapsed.Round(time.Millisecond), res.params)
	}
}

func runScenario(cfg *config.Config, params paramSet) scenarioResult {
	opts := cfg.ProvinceOptions()
	opts.Displacement = params.displacement
	opts.Sampler = noise.New(params.octaves, params.boost)
	opts.Verbose = false

	start := time.Now()
	m, err := provinces.Generate(context.Background(), opts)
	if err != nil {
		return scenarioResult{params: params, err: err}
	}
	stats := (&pipeline.Planet{Map: m}).Stats()
	return scenarioResult{
		params:         params,
		borderFraction: stats.BorderFraction,
		minArea:        stats.MinArea,
		maxArea:        stats.MaxArea,
		stdArea:        stats.StdArea,
		elapsed:        time.Since(start),
	}
}
