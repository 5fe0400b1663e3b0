// main.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// wfcgen is a command-line front end that builds a sample image, extracts
// tiles, synthesizes an output grid, renders it to a PNG, and reports
// attempt/backtrack statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/wfcsynth/wfc"
)

// sampleGenerator builds a built-in sample image of the given size. This
// mirrors the GameConstructor function-type dispatch the engine uses to
// pick a game variant by name.
type sampleGenerator func(size int, rng *rand.Rand) *wfc.Sample

var generators = map[string]sampleGenerator{
	"checker": checkerSample,
	"noise":   noiseSample,
	"stripes": stripesSample,
}

func checkerSample(size int, _ *rand.Rand) *wfc.Sample {
	s := wfc.NewSample(size, size)
	red := wfc.Pixel{R: 220, G: 40, B: 40, A: 255}
	black := wfc.Pixel{A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				s.Set(x, y, red)
			} else {
				s.Set(x, y, black)
			}
		}
	}
	return s
}

func noiseSample(size int, rng *rand.Rand) *wfc.Sample {
	s := wfc.NewSample(size, size)
	palette := []wfc.Pixel{
		{R: 30, G: 30, B: 30, A: 255},
		{R: 90, G: 140, B: 90, A: 255},
		{R: 210, G: 210, B: 180, A: 255},
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			s.Set(x, y, palette[rng.Intn(len(palette))])
		}
	}
	return s
}

func stripesSample(size int, _ *rand.Rand) *wfc.Sample {
	s := wfc.NewSample(size, size)
	light := wfc.Pixel{R: 230, G: 230, B: 230, A: 255}
	dark := wfc.Pixel{R: 20, G: 20, B: 60, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if y%2 == 0 {
				s.Set(x, y, light)
			} else {
				s.Set(x, y, dark)
			}
		}
	}
	return s
}

func main() {
	samplePath := flag.String("sample", "", "path to a PNG sample image (overrides -gen)")
	genName := flag.String("gen", "checker", "built-in sample generator: checker, noise, stripes")
	sampleSize := flag.Int("size", 4, "side length of a generated sample")
	tileSize := flag.Int("n", 2, "tile (pattern) size")
	gridW := flag.Int("w", 20, "output grid width")
	gridH := flag.Int("h", 20, "output grid height")
	seed := flag.Int64("seed", 0, "RNG seed (0 picks a time-derived seed)")
	out := flag.String("out", "output.png", "path to write the rendered PNG")
	quiet := flag.Bool("q", false, "suppress progress output")
	flag.Parse()

	var report func(string, ...any)
	if *quiet {
		report = func(string, ...any) {}
	} else {
		report = func(format string, a ...any) { log.Printf(format, a...) }
	}

	resolvedSeed := *seed
	if resolvedSeed == 0 {
		resolvedSeed = time.Now().UnixNano()
		report("seed 0 given, picked time-derived seed %d", resolvedSeed)
	}

	var sample *wfc.Sample
	if *samplePath != "" {
		f, err := os.Open(*samplePath)
		if err != nil {
			log.Fatalf("opening sample: %v", err)
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			log.Fatalf("decoding sample: %v", err)
		}
		sample = wfc.SampleFromImage(img)
	} else {
		gen, ok := generators[*genName]
		if !ok {
			log.Fatalf("unknown generator %q (want one of checker, noise, stripes)", *genName)
		}
		rng := rand.New(rand.NewSource(resolvedSeed))
		sample = gen(*sampleSize, rng)
	}

	report("extracting %dx%d tiles from a %dx%d sample", *tileSize, *tileSize, sample.Width, sample.Height)
	ts, err := wfc.ExtractTiles(sample, *tileSize)
	if err != nil {
		log.Fatalf("extract: %v", err)
	}
	wfc.BuildAdjacency(ts)
	report("extracted %d distinct tiles", ts.Count())

	sol, err := wfc.Synthesize(context.Background(), ts, *gridW, *gridH, resolvedSeed)
	if err != nil {
		log.Fatalf("synthesize: %v", err)
	}
	report("solved in %d attempt(s), %d contradiction(s), %d backtrack(s)",
		sol.Stats.Attempts, sol.Stats.Contradictions, sol.Stats.Backtracks)

	img, err := wfc.Render(sol, ts)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("creating output file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encoding PNG: %v", err)
	}
	fmt.Printf("wrote %s (%dx%d, seed %d)\n", *out, img.Bounds().Dx(), img.Bounds().Dy(), resolvedSeed)
}
