package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/okral/repaint"
	"github.com/okral/repaint/internal/cli"
	"github.com/okral/repaint/internal/fill"
	"github.com/okral/repaint/internal/server"
	"github.com/okral/repaint/internal/session"
)

func main() {
	cfg, err := cli.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.ListenAddr != "" {
		serve(cfg)
		return
	}

	fmt.Printf("Loading image: %s\n", cfg.InPath)
	img, err := repaint.LoadImage(cfg.InPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	img = repaint.Downsample(img, cfg.MaxDim)
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	fmt.Printf("Image loaded: %dx%d\n", w, h)

	if cfg.SeedX >= w || cfg.SeedY >= h {
		fmt.Fprintf(os.Stderr, "Error: seed %d,%d is outside the %dx%d image\n", cfg.SeedX, cfg.SeedY, w, h)
		os.Exit(1)
	}

	opts := repaint.Options{
		Tolerance:  uint8(cfg.Tolerance),
		BlendRatio: cfg.BlendRatio,
	}
	s := repaint.NewSession(img, opts)

	fmt.Printf("Filling at %d,%d with %s (tolerance %d)...\n",
		cfg.SeedX, cfg.SeedY, cfg.FillColor.Hex(), cfg.Tolerance)
	// No display scaling in one-shot mode: the surface is the image
	// itself, and the touch is the seed pixel's center.
	out, err := s.FillAt(w, h, float64(cfg.SeedX)+0.5, float64(cfg.SeedY)+0.5,
		repaint.Color{R: cfg.FillColor.R, G: cfg.FillColor.G, B: cfg.FillColor.B})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saving output: %s\n", cfg.OutPath)
	if strings.ToLower(filepath.Ext(cfg.OutPath)) == ".webp" {
		err = repaint.SaveWebP(cfg.OutPath, out)
	} else {
		err = repaint.SavePNG(cfg.OutPath, out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done!")
}

func serve(cfg cli.Config) {
	srv := server.New(session.Config{
		Tolerance:  fill.Uniform(uint8(cfg.Tolerance)),
		BlendRatio: cfg.BlendRatio,
	}, cfg.MaxDim)

	fmt.Printf("Listening on %s\n", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
