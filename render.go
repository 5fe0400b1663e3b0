// render.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file rasterizes a solved Solution back into a composite image,
// blitting each collapsed tile's pixels at a one-pixel stride so
// neighbouring tiles' overlapping strips agree by construction.

package wfc

import (
	"image"
	"image/color"
)

// Render blits a solved Solution's grid into an image.RGBA. The output
// has width = N + (gridWidth-1) and height = N + (gridHeight-1), where N
// is the tile set's size and the overlap stride is 1 (overlap = N-1).
// Later tile writes overwrite earlier ones at shared positions; collapsed
// neighbours agree on those pixels by the adjacency invariant, so the
// overwrite is a no-op in a valid solution.
func Render(solution *Solution, ts *TileSet) (*image.RGBA, error) {
	if solution == nil || ts == nil {
		return nil, invalidInputf("solution and tile set must be non-nil")
	}
	gridHeight := len(solution.Grid)
	if gridHeight == 0 {
		return nil, invalidInputf("solution grid is empty")
	}
	gridWidth := len(solution.Grid[0])

	outW := ts.Size + (gridWidth - 1)
	outH := ts.Size + (gridHeight - 1)
	img := image.NewRGBA(image.Rect(0, 0, outW, outH))

	for gy := 0; gy < gridHeight; gy++ {
		for gx := 0; gx < gridWidth; gx++ {
			tileID := solution.Grid[gy][gx]
			pattern := ts.Tiles[tileID]
			for dy := 0; dy < ts.Size; dy++ {
				for dx := 0; dx < ts.Size; dx++ {
					p := pattern.Pixels[dy*ts.Size+dx]
					img.SetRGBA(gx+dx, gy+dy, color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A})
				}
			}
		}
	}
	return img, nil
}

// SampleFromImage converts a stdlib image.Image into a Sample, for hosts
// that load their source texture via image/png or similar.
func SampleFromImage(img image.Image) *Sample {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	s := NewSample(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			s.Set(x, y, Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}
	return s
}
