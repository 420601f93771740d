// Package fill implements tolerance-based seeded region growing over NRGBA
// images: Region computes the connected set of pixels similar to a seed,
// Apply paints that set with a flat color.
package fill

import (
	"image"
	"sync"

	"github.com/okral/repaint/internal/color"
)

// Tolerance bounds how far a pixel's color may differ, per channel, from
// the region's reference color and still join the fill. Lower applies to
// channels below the reference value, Upper to channels above it.
type Tolerance struct {
	Lower uint8
	Upper uint8
}

// Uniform returns a symmetric tolerance of v in both directions.
func Uniform(v uint8) Tolerance {
	return Tolerance{Lower: v, Upper: v}
}

// Mask holds a boolean grid where true means the pixel belongs to the
// filled region.
type Mask struct {
	Width, Height int
	Inside        []bool // row-major: index = y*Width + x
	Count         int    // number of true entries
}

// At returns whether the pixel at (x, y) is inside the region.
func (m *Mask) At(x, y int) bool {
	return m.Inside[y*m.Width+x]
}

// Region grows the maximal 4-connected region of pixels whose color lies
// within tol of the seed pixel's color, and returns it as a mask of the
// image's dimensions. The reference color is the seed's original color for
// every comparison, so the match criterion cannot drift across a large
// fill.
//
// An out-of-bounds seed yields an empty mask (Count 0). A zero tolerance
// matches only pixels exactly equal to the seed. The traversal is an
// iterative BFS, each pixel visited at most once: O(width × height).
func Region(src *image.NRGBA, seed image.Point, tol Tolerance) *Mask {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &Mask{
		Width:  w,
		Height: h,
		Inside: make([]bool, w*h),
	}
	if seed.X < 0 || seed.X >= w || seed.Y < 0 || seed.Y >= h {
		return m
	}

	ref := pixAt(src, b.Min.X+seed.X, b.Min.Y+seed.Y)

	queue := []image.Point{seed}
	m.Inside[seed.Y*w+seed.X] = true
	m.Count = 1

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		// 4-connected neighbors
		for _, d := range [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if m.Inside[ni] {
				continue
			}
			c := pixAt(src, b.Min.X+nx, b.Min.Y+ny)
			if !c.WithinBand(ref, tol.Lower, tol.Upper) {
				continue
			}
			m.Inside[ni] = true
			m.Count++
			queue = append(queue, image.Point{X: nx, Y: ny})
		}
	}

	return m
}

// Apply returns a copy of src with every mask pixel replaced by the flat
// fill color. Pixels outside the mask are unchanged. src is not mutated.
func Apply(src *image.NRGBA, m *Mask, fill color.RGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	parallelRows(m.Height, func(sy, ey int) {
		for y := sy; y < ey; y++ {
			for x := 0; x < m.Width; x++ {
				off := out.PixOffset(x, y)
				if m.Inside[y*m.Width+x] {
					out.Pix[off+0] = fill.R
					out.Pix[off+1] = fill.G
					out.Pix[off+2] = fill.B
					out.Pix[off+3] = fill.A
				} else {
					soff := src.PixOffset(b.Min.X+x, b.Min.Y+y)
					copy(out.Pix[off:off+4], src.Pix[soff:soff+4])
				}
			}
		}
	})
	return out
}

func pixAt(img *image.NRGBA, x, y int) color.RGBA {
	off := img.PixOffset(x, y)
	return color.RGBA{
		R: img.Pix[off+0],
		G: img.Pix[off+1],
		B: img.Pix[off+2],
		A: img.Pix[off+3],
	}
}

// parallelRows runs fn across row bands using multiple goroutines.
func parallelRows(h int, fn func(startY, endY int)) {
	numWorkers := 8
	rowsPerWorker := (h + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for worker := 0; worker < numWorkers; worker++ {
		startY := worker * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > h {
			endY = h
		}
		if startY >= h {
			break
		}
		wg.Add(1)
		go func(sy, ey int) {
			defer wg.Done()
			fn(sy, ey)
		}(startY, endY)
	}
	wg.Wait()
}
