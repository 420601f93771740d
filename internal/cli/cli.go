package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okral/repaint/internal/color"
)

// Config holds the parsed CLI arguments.
type Config struct {
	InPath     string
	OutPath    string
	SeedX      int
	SeedY      int
	FillColor  color.RGBA
	Tolerance  int
	BlendRatio float64
	MaxDim     int

	// ListenAddr, when set, runs the HTTP server instead of a one-shot
	// recolor.
	ListenAddr string
}

// Parse parses CLI arguments and returns a validated Config.
func Parse() (Config, error) {
	inPath := flag.String("in", "", "Path to input image (required unless --listen; supports PNG, JPEG, WEBP, TGA)")
	outPath := flag.String("out", "", "Path to recolored output image (required unless --listen; must be .png or .webp)")
	at := flag.String("at", "", "Seed pixel in image coordinates, as \"x,y\" (required unless --listen)")
	fillColor := flag.String("color", "", "Hex fill color to repaint the region with (e.g. #C41E3A)")
	tolerance := flag.Int("tolerance", 40, "Per-channel color tolerance for the region fill (0-255)")
	blendRatio := flag.Float64("blend", 0.5, "Weight of the fill color in the final blend (0-1)")
	maxDim := flag.Int("max-dim", 2048, "Downsample the input so neither dimension exceeds this (0 = no limit)")
	listen := flag.String("listen", "", "Run the HTTP session API on this address (e.g. :8080) instead of a one-shot recolor")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: repaint [options]\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n  repaint --in=room.jpg --out=room.png --at=420,310 --color=#C41E3A --tolerance=40\n")
	}

	flag.Parse()

	if *listen != "" {
		return Config{
			ListenAddr: *listen,
			Tolerance:  *tolerance,
			BlendRatio: *blendRatio,
			MaxDim:     *maxDim,
		}, validateTuning(*tolerance, *blendRatio, *maxDim)
	}

	if *inPath == "" {
		return Config{}, fmt.Errorf("--in is required")
	}
	if *outPath == "" {
		return Config{}, fmt.Errorf("--out is required")
	}
	if ext := strings.ToLower(filepath.Ext(*outPath)); ext != ".png" && ext != ".webp" {
		return Config{}, fmt.Errorf("--out must be a .png or .webp file, got %q", ext)
	}
	if *at == "" {
		return Config{}, fmt.Errorf("--at is required")
	}
	var sx, sy int
	if _, err := fmt.Sscanf(*at, "%d,%d", &sx, &sy); err != nil {
		return Config{}, fmt.Errorf("--at must be \"x,y\", got %q", *at)
	}
	if sx < 0 || sy < 0 {
		return Config{}, fmt.Errorf("--at coordinates must be >= 0, got %d,%d", sx, sy)
	}
	if *fillColor == "" {
		return Config{}, fmt.Errorf("--color is required")
	}
	fc, err := color.ParseHex(*fillColor)
	if err != nil {
		return Config{}, fmt.Errorf("--color: %w", err)
	}
	if err := validateTuning(*tolerance, *blendRatio, *maxDim); err != nil {
		return Config{}, err
	}

	return Config{
		InPath:     *inPath,
		OutPath:    *outPath,
		SeedX:      sx,
		SeedY:      sy,
		FillColor:  fc,
		Tolerance:  *tolerance,
		BlendRatio: *blendRatio,
		MaxDim:     *maxDim,
	}, nil
}

func validateTuning(tolerance int, blendRatio float64, maxDim int) error {
	if tolerance < 0 || tolerance > 255 {
		return fmt.Errorf("--tolerance must be between 0 and 255, got %d", tolerance)
	}
	if blendRatio < 0 || blendRatio > 1 {
		return fmt.Errorf("--blend must be between 0 and 1, got %f", blendRatio)
	}
	if maxDim < 0 {
		return fmt.Errorf("--max-dim must be >= 0, got %d", maxDim)
	}
	return nil
}
