// Package viewport maps pointer locations on a display surface to pixel
// coordinates in the displayed image.
//
// The image is assumed to be scaled uniformly (aspect ratio preserved) to
// fit the surface, with symmetric letterbox or pillarbox padding on the
// non-limiting dimension.
package viewport

import (
	"image"
	"math"
)

// Mapper converts between surface coordinates and image coordinates for a
// given surface/image size pair.
type Mapper struct {
	SurfaceWidth  int
	SurfaceHeight int
	ImageWidth    int
	ImageHeight   int
}

// Scale returns the uniform scale factor applied to the image when fitted
// to the surface. Zero if either size is degenerate.
func (m Mapper) Scale() float64 {
	if m.SurfaceWidth <= 0 || m.SurfaceHeight <= 0 || m.ImageWidth <= 0 || m.ImageHeight <= 0 {
		return 0
	}
	sx := float64(m.SurfaceWidth) / float64(m.ImageWidth)
	sy := float64(m.SurfaceHeight) / float64(m.ImageHeight)
	return math.Min(sx, sy)
}

// Offsets returns the padding, in surface pixels, on the left and top edges.
// One of the two is zero except when the aspect ratios match exactly.
func (m Mapper) Offsets() (ox, oy float64) {
	s := m.Scale()
	if s == 0 {
		return 0, 0
	}
	ox = (float64(m.SurfaceWidth) - float64(m.ImageWidth)*s) / 2
	oy = (float64(m.SurfaceHeight) - float64(m.ImageHeight)*s) / 2
	return ox, oy
}

// ToImage maps a surface point to the image pixel it lands on. The second
// return value is false when the point falls in the letterbox/pillarbox
// padding or outside the surface; the point is never clamped, so callers
// can ignore touches on padding instead of seeding a fill at a border
// pixel.
func (m Mapper) ToImage(x, y float64) (image.Point, bool) {
	s := m.Scale()
	if s == 0 {
		return image.Point{}, false
	}
	ox, oy := m.Offsets()
	ix := int(math.Floor((x - ox) / s))
	iy := int(math.Floor((y - oy) / s))
	if ix < 0 || ix >= m.ImageWidth || iy < 0 || iy >= m.ImageHeight {
		return image.Point{}, false
	}
	return image.Point{X: ix, Y: iy}, true
}

// ToSurface maps an image pixel to the surface location of its center.
// Inverse of ToImage up to pixel quantization.
func (m Mapper) ToSurface(p image.Point) (x, y float64) {
	s := m.Scale()
	ox, oy := m.Offsets()
	return (float64(p.X)+0.5)*s + ox, (float64(p.Y)+0.5)*s + oy
}
