// main.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson

// wfcserve is a small JSON HTTP service exposing the extract/synthesize/
// render operations as POST endpoints, with bearer-token auth, CORS
// headers, .env configuration, a process-lifetime synthesis memoization
// cache, and optional job-history persistence to Google Cloud Datastore.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/joho/godotenv"

	"github.com/wfcsynth/wfc"
)

var (
	accessKey        string
	allowedOrigins   string
	datastoreClient  *datastore.Client
	datastoreProject string
	synthCache       = wfc.NewCache(64)
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	accessKey = os.Getenv("ACCESS_KEY")
	allowedOrigins = os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	datastoreProject = os.Getenv("WFC_DATASTORE_PROJECT")
	if datastoreProject != "" {
		ctx := context.Background()
		client, err := datastore.NewClient(ctx, datastoreProject)
		if err != nil {
			log.Printf("datastore disabled: %v", err)
		} else {
			datastoreClient = client
			log.Printf("job history persistence enabled (project %s)", datastoreProject)
		}
	}

	http.HandleFunc("/extract", withCORS(withAuth(handleExtract)))
	http.HandleFunc("/synthesize", withCORS(withAuth(handleSynthesize)))
	http.HandleFunc("/render", withCORS(withAuth(handleRender)))

	log.Printf("wfcserve listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

// validate checks the bearer token against the configured access key. An
// empty accessKey disables auth entirely, for local development.
func validate(r *http.Request) bool {
	if accessKey == "" {
		return true
	}
	got := r.Header.Get("Authorization")
	return got == "Bearer "+accessKey
}

func withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !validate(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

type extractRequest struct {
	ImageBase64 string `json:"image_base64"`
	TileSize    int    `json:"tile_size"`
}

type extractResponse struct {
	TileCount   int    `json:"tile_count"`
	Fingerprint string `json:"fingerprint"`
}

func handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.TileSize < 1 {
		http.Error(w, "tile_size must be >= 1", http.StatusBadRequest)
		return
	}
	sample, err := decodeSample(req.ImageBase64)
	if err != nil {
		http.Error(w, "image_base64: "+err.Error(), http.StatusBadRequest)
		return
	}

	ts, err := wfc.ExtractTiles(sample, req.TileSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	wfc.BuildAdjacency(ts)

	json.NewEncoder(w).Encode(extractResponse{TileCount: ts.Count(), Fingerprint: ts.Fingerprint()})
}

type synthesizeRequest struct {
	ImageBase64 string `json:"image_base64"`
	TileSize    int    `json:"tile_size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Seed        int64  `json:"seed"`
}

type synthesizeResponse struct {
	Grid  [][]int   `json:"grid"`
	Stats wfc.Stats `json:"stats"`
}

func handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sample, err := decodeSample(req.ImageBase64)
	if err != nil {
		http.Error(w, "image_base64: "+err.Error(), http.StatusBadRequest)
		return
	}

	ts, err := wfc.ExtractTiles(sample, req.TileSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	wfc.BuildAdjacency(ts)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	sol, err := wfc.Synthesize(ctx, ts, req.Width, req.Height, req.Seed, wfc.WithCache(synthCache))
	if err != nil {
		if wfcErr, ok := err.(*wfc.Error); ok && wfcErr.Kind == wfc.InvalidInput {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	recordJob(ctx, req, sol)
	json.NewEncoder(w).Encode(synthesizeResponse{Grid: sol.Grid, Stats: sol.Stats})
}

type renderRequest struct {
	ImageBase64 string `json:"image_base64"`
	TileSize    int    `json:"tile_size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Seed        int64  `json:"seed"`
}

func handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sample, err := decodeSample(req.ImageBase64)
	if err != nil {
		http.Error(w, "image_base64: "+err.Error(), http.StatusBadRequest)
		return
	}

	ts, err := wfc.ExtractTiles(sample, req.TileSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	wfc.BuildAdjacency(ts)

	sol, err := wfc.Synthesize(r.Context(), ts, req.Width, req.Height, req.Seed, wfc.WithCache(synthCache))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	img, err := wfc.Render(sol, ts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	encodePNG(w, img)
}

// jobRecord is the Datastore entity persisted for each synthesize
// request, when job-history persistence is enabled.
type jobRecord struct {
	Fingerprint string
	Width       int
	Height      int
	Seed        int64
	Attempts    int
	Backtracks  int
	CreatedAt   time.Time
}

func recordJob(ctx context.Context, req synthesizeRequest, sol *wfc.Solution) {
	if datastoreClient == nil {
		return
	}
	key := datastore.IncompleteKey("WfcJob", nil)
	rec := jobRecord{
		Width:      req.Width,
		Height:     req.Height,
		Seed:       req.Seed,
		Attempts:   sol.Stats.Attempts,
		Backtracks: sol.Stats.Backtracks,
		CreatedAt:  time.Now(),
	}
	if _, err := datastoreClient.Put(ctx, key, &rec); err != nil {
		log.Printf("job history persistence failed: %v", err)
	}
}

func decodeSample(b64 string) (*wfc.Sample, error) {
	if b64 == "" {
		return nil, fmt.Errorf("image_base64 must not be empty")
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return wfc.SampleFromImage(img), nil
}

func encodePNG(w http.ResponseWriter, img image.Image) {
	if err := png.Encode(w, img); err != nil {
		log.Printf("encoding PNG response: %v", err)
	}
}
