// render_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package wfc

import (
	"context"
	"testing"
)

func TestRenderOutputDimensions(t *testing.T) {
	ts := buildCheckerTileSet(t)
	sol, err := Synthesize(context.Background(), ts, 4, 5, 3)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	img, err := Render(sol, ts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	wantW := ts.Size + (4 - 1)
	wantH := ts.Size + (5 - 1)
	b := img.Bounds()
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("expected rendered image %dx%d, got %dx%d", wantW, wantH, b.Dx(), b.Dy())
	}
}

func TestRenderRejectsNilInputs(t *testing.T) {
	if _, err := Render(nil, nil); err == nil {
		t.Errorf("expected an error rendering nil solution/tile set")
	}
}

func TestSampleFromImageRoundTrip(t *testing.T) {
	ts := buildCheckerTileSet(t)
	sol, err := Synthesize(context.Background(), ts, 4, 4, 11)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	img, err := Render(sol, ts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	sample := SampleFromImage(img)
	if sample.Width != img.Bounds().Dx() || sample.Height != img.Bounds().Dy() {
		t.Errorf("SampleFromImage dimensions do not match the source image")
	}
}
