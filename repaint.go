// Package repaint recolors connected regions of an image, the way one
// would repaint a wall in a room photo: a tolerance-based flood fill
// selects the region around a touched pixel, and the fill color is
// blended with the original so shading and texture stay visible.
//
// Usage as a library:
//
//	img, _ := repaint.LoadImage("room.jpg")
//	s := repaint.NewSession(img, repaint.DefaultOptions())
//	out, _ := s.FillAt(1080, 1920, 540.0, 800.0, repaint.Color{R: 196, G: 30, B: 58})
//	repaint.SavePNG("room-red.png", out)
//
//	// Re-tint the same region without a new touch:
//	out, _ = s.Recolor(repaint.Color{R: 30, G: 58, B: 196})
package repaint

import (
	"image"

	"github.com/okral/repaint/internal/blend"
	"github.com/okral/repaint/internal/color"
	"github.com/okral/repaint/internal/fill"
	"github.com/okral/repaint/internal/imaging"
	"github.com/okral/repaint/internal/session"
)

// Errors reported by Session operations. Both are recoverable: the UI
// collaborator decides whether to notify the user or silently ignore.
var (
	// ErrOutsideImage: the touch landed in the letterbox/pillarbox
	// padding around the displayed image.
	ErrOutsideImage = session.ErrOutsideImage

	// ErrNoPriorFill: Recolor was called before any FillAt succeeded.
	ErrNoPriorFill = session.ErrNoPriorFill
)

// Options configures a recolor session.
type Options struct {
	// Tolerance is the maximum per-channel difference from the touched
	// pixel's color for a neighbor to join the fill region (0-255).
	// Larger values merge shadowed and lit sections of the same surface,
	// at the cost of possible leaks into similarly colored objects.
	// Default: 40.
	Tolerance uint8

	// BlendRatio is the weight of the fill color in the final image;
	// the rest is the original pixel, preserving texture. Default: 0.5.
	BlendRatio float64
}

// Color represents an RGB fill color with 8-bit components.
type Color struct {
	R, G, B uint8
}

// DefaultOptions returns Options with the reference defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:  40,
		BlendRatio: blend.DefaultRatio,
	}
}

// ParseHexColor parses a hex color string like "#C41E3A", "#F0A".
func ParseHexColor(hex string) (Color, error) {
	c, err := color.ParseHex(hex)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B}, nil
}

// LoadImage reads an image from disk. Supports PNG, JPEG, WEBP, and TGA.
func LoadImage(path string) (image.Image, error) {
	return imaging.Load(path)
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	return imaging.SavePNG(path, img)
}

// SaveWebP writes an image to disk as lossless WebP.
func SaveWebP(path string, img image.Image) error {
	return imaging.SaveWebP(path, img)
}

// Downsample scales an image down so neither dimension exceeds maxDim,
// preserving aspect ratio. Use it to bound memory before opening a
// session on a large photo.
func Downsample(img image.Image, maxDim int) image.Image {
	return imaging.Downsample(img, maxDim)
}

// Session is one recoloring session over one image. It remembers the
// last fill's seed so the region can be re-tinted with a new color
// without touching the image again. Create one per open image and drop
// it when the image changes.
type Session struct {
	s *session.Session
}

// NewSession starts a session on img. The image is copied; the caller's
// buffer is never mutated.
func NewSession(img image.Image, opts Options) *Session {
	return &Session{s: session.New(img, configFromOpts(opts))}
}

// FillAt recolors the region around a touch at (x, y) on a
// surfaceW×surfaceH display surface showing the image aspect-fit. It
// returns the new image, or ErrOutsideImage if the touch landed in the
// padding (stored state is then unchanged).
//
// When no display scaling is involved, pass the image's own dimensions
// as the surface and the pixel center as the touch point.
func (s *Session) FillAt(surfaceW, surfaceH int, x, y float64, c Color) (*image.NRGBA, error) {
	return s.s.FillAt(surfaceW, surfaceH, x, y, fillColor(c))
}

// Recolor re-tints the last filled region with a new color. The fill and
// blend re-run against the pristine original, so repeated recolors do
// not degrade the image. Returns ErrNoPriorFill if FillAt has not
// succeeded yet.
func (s *Session) Recolor(c Color) (*image.NRGBA, error) {
	return s.s.Recolor(fillColor(c))
}

// Current returns a copy of the latest result (the original if nothing
// has been filled yet).
func (s *Session) Current() *image.NRGBA {
	return s.s.Current()
}

// Reset replaces the session's image and forgets the last seed.
func (s *Session) Reset(img image.Image) {
	s.s.Reset(img)
}

func configFromOpts(opts Options) session.Config {
	return session.Config{
		Tolerance:  fill.Uniform(opts.Tolerance),
		BlendRatio: opts.BlendRatio,
	}
}

func fillColor(c Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
