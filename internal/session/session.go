// Package session sequences the recolor pipeline — coordinate mapping,
// tolerant flood fill, texture-preserving blend — and owns the per-image
// editing state: the pristine original, the current result, and the last
// fill seed.
package session

import (
	"errors"
	"image"
	"sync"

	"github.com/okral/repaint/internal/blend"
	"github.com/okral/repaint/internal/color"
	"github.com/okral/repaint/internal/fill"
	"github.com/okral/repaint/internal/imaging"
	"github.com/okral/repaint/internal/viewport"
)

var (
	// ErrOutsideImage reports a touch that maps into the letterbox or
	// pillarbox padding rather than onto the image.
	ErrOutsideImage = errors.New("touch outside image bounds")

	// ErrNoPriorFill reports a recolor request before any fill has
	// established a seed.
	ErrNoPriorFill = errors.New("no prior fill to recolor")
)

// Config holds the tunable parameters of a session.
type Config struct {
	// Tolerance is the per-channel color band for the flood fill.
	Tolerance fill.Tolerance

	// BlendRatio is the weight of the filled layer in the final mix.
	BlendRatio float64
}

// DefaultConfig returns the reference parameters: symmetric tolerance of
// 40 per channel and an even blend.
func DefaultConfig() Config {
	return Config{
		Tolerance:  fill.Uniform(40),
		BlendRatio: blend.DefaultRatio,
	}
}

// Session is one editing session over one image. It is safe for
// concurrent use; operations are serialized so at most one fill or
// recolor is in flight, and the (current image, seed) pair is always
// updated atomically.
//
// Blending always originates from the pristine original, never from a
// previously blended output, so repeated recolors do not compound: the
// result of Recolor(c) is identical to a single FillAt at the stored
// seed with color c.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	original *image.NRGBA // pristine source, one blend input for every operation
	current  *image.NRGBA
	seed     image.Point
	hasSeed  bool
}

// New creates a session for img. The image is copied; the caller's buffer
// is never read again nor mutated.
func New(img image.Image, cfg Config) *Session {
	return &Session{
		cfg:      cfg,
		original: imaging.Clone(imaging.ToNRGBA(img)),
	}
}

// Reset replaces the session's image and clears the remembered seed,
// which would otherwise be meaningless against the new image's bounds.
func (s *Session) Reset(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.original = imaging.Clone(imaging.ToNRGBA(img))
	s.current = nil
	s.hasSeed = false
}

// FillAt maps a touch at (x, y) on a surfaceW×surfaceH display surface
// into image space, flood-fills from the mapped pixel with c, blends the
// result with the original, and stores it together with the seed. It
// returns an independent copy of the new image.
//
// A touch in the padding returns ErrOutsideImage and leaves all stored
// state unchanged.
func (s *Session) FillAt(surfaceW, surfaceH int, x, y float64, c color.RGBA) (*image.NRGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.original.Bounds()
	m := viewport.Mapper{
		SurfaceWidth:  surfaceW,
		SurfaceHeight: surfaceH,
		ImageWidth:    b.Dx(),
		ImageHeight:   b.Dy(),
	}
	seed, ok := m.ToImage(x, y)
	if !ok {
		return nil, ErrOutsideImage
	}

	out := s.paint(seed, c)
	s.current = out
	s.seed = seed
	s.hasSeed = true
	return imaging.Clone(out), nil
}

// Recolor re-runs the fill and blend from the pristine original at the
// remembered seed with a new color, without a new touch. Returns
// ErrNoPriorFill if no fill has occurred since the session was created
// or last reset.
func (s *Session) Recolor(c color.RGBA) (*image.NRGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasSeed {
		return nil, ErrNoPriorFill
	}
	out := s.paint(s.seed, c)
	s.current = out
	return imaging.Clone(out), nil
}

// paint runs fill + blend against the pristine original. Caller holds mu.
func (s *Session) paint(seed image.Point, c color.RGBA) *image.NRGBA {
	region := fill.Region(s.original, seed, s.cfg.Tolerance)
	filled := fill.Apply(s.original, region, c)
	return blend.Mix(s.original, filled, s.cfg.BlendRatio)
}

// Current returns a copy of the latest result, or of the original if no
// fill has occurred yet.
func (s *Session) Current() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return imaging.Clone(s.original)
	}
	return imaging.Clone(s.current)
}

// Seed returns the remembered seed coordinate and whether one is set.
func (s *Session) Seed() (image.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed, s.hasSeed
}

// Bounds returns the dimensions of the session's image.
func (s *Session) Bounds() image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original.Bounds()
}
