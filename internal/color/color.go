package color

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// RGBA represents a color with 8-bit RGBA components.
type RGBA struct {
	R, G, B, A uint8
}

// FromStdColor converts a standard library color to RGBA.
func FromStdColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

// ToStdColor converts RGBA to a standard library color.
func (c RGBA) ToStdColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ParseHex parses a hex color string like "#000", "#000000", "#FF00FF".
func ParseHex(s string) (RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		_, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		if err != nil {
			return RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r = r*16 + r
		g = g*16 + g
		b = b*16 + b
	case 6:
		_, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
		if err != nil {
			return RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	default:
		return RGBA{}, fmt.Errorf("invalid hex color %q: must be 3 or 6 hex digits", s)
	}
	return RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex returns the color as a "#RRGGBB" string. Alpha is not encoded.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// WithinBand reports whether every color channel of c lies within
// [ref-lower, ref+upper]. The comparison is per-channel absolute
// difference, not perceptual distance. Alpha is ignored.
func (c RGBA) WithinBand(ref RGBA, lower, upper uint8) bool {
	return channelInBand(c.R, ref.R, lower, upper) &&
		channelInBand(c.G, ref.G, lower, upper) &&
		channelInBand(c.B, ref.B, lower, upper)
}

func channelInBand(v, ref, lower, upper uint8) bool {
	if v < ref {
		return ref-v <= lower
	}
	return v-ref <= upper
}

// Mix linearly blends two colors channel-wise. ratio is the weight of b;
// 0 returns a, 1 returns b. Each channel is rounded to the nearest
// integer intensity.
func Mix(a, b RGBA, ratio float64) RGBA {
	return RGBA{
		R: mixChannel(a.R, b.R, ratio),
		G: mixChannel(a.G, b.G, ratio),
		B: mixChannel(a.B, b.B, ratio),
		A: mixChannel(a.A, b.A, ratio),
	}
}

func mixChannel(a, b uint8, ratio float64) uint8 {
	v := math.Round((1-ratio)*float64(a) + ratio*float64(b))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
