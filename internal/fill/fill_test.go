package fill

import (
	"image"
	"testing"

	"github.com/okral/repaint/internal/color"
)

func setPix(img *image.NRGBA, x, y int, c color.RGBA) {
	off := img.PixOffset(x, y)
	img.Pix[off+0] = c.R
	img.Pix[off+1] = c.G
	img.Pix[off+2] = c.B
	img.Pix[off+3] = c.A
}

func uniformImage(w, h int, c color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPix(img, x, y, c)
		}
	}
	return img
}

var (
	gray  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

func TestRegion_ZeroToleranceExactMatch(t *testing.T) {
	// Left half gray, right half one step lighter. Tolerance 0 must stop
	// exactly at the color boundary.
	img := uniformImage(10, 10, gray)
	lighter := color.RGBA{R: 129, G: 128, B: 128, A: 255}
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			setPix(img, x, y, lighter)
		}
	}

	m := Region(img, image.Point{2, 2}, Uniform(0))
	if m.Count != 50 {
		t.Fatalf("Count = %d, want 50", m.Count)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x < 5
			if m.At(x, y) != want {
				t.Fatalf("At(%d,%d) = %v, want %v", x, y, m.At(x, y), want)
			}
		}
	}
}

func TestRegion_WholeImageMatches(t *testing.T) {
	img := uniformImage(20, 30, gray)
	m := Region(img, image.Point{10, 15}, Uniform(40))
	if m.Count != 20*30 {
		t.Fatalf("Count = %d, want %d", m.Count, 20*30)
	}
}

func TestRegion_OutOfBoundsSeed(t *testing.T) {
	img := uniformImage(10, 10, gray)
	seeds := []image.Point{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {100, 100}}
	for _, seed := range seeds {
		m := Region(img, seed, Uniform(40))
		if m.Count != 0 {
			t.Errorf("seed %v: Count = %d, want 0", seed, m.Count)
		}
	}
}

func TestRegion_ToleranceMonotonicity(t *testing.T) {
	// A horizontal gradient. The region under a larger tolerance must be
	// a superset of the region under a smaller one.
	img := image.NewNRGBA(image.Rect(0, 0, 64, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(x * 4)
			setPix(img, x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	seed := image.Point{32, 4}
	prev := Region(img, seed, Uniform(0))
	for _, tol := range []uint8{4, 16, 40, 80, 255} {
		cur := Region(img, seed, Uniform(tol))
		if cur.Count < prev.Count {
			t.Fatalf("tolerance %d: Count %d < previous %d", tol, cur.Count, prev.Count)
		}
		for i, in := range prev.Inside {
			if in && !cur.Inside[i] {
				t.Fatalf("tolerance %d: pixel %d left the region", tol, i)
			}
		}
		prev = cur
	}
}

func TestRegion_StopsAtBlackSquare(t *testing.T) {
	// 100x100 gray image with a 10x10 black square at the origin.
	// Seeding inside the square with tolerance 10 must select exactly
	// the square.
	img := uniformImage(100, 100, gray)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			setPix(img, x, y, black)
		}
	}

	m := Region(img, image.Point{5, 5}, Uniform(10))
	if m.Count != 100 {
		t.Fatalf("Count = %d, want 100", m.Count)
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			want := x < 10 && y < 10
			if m.At(x, y) != want {
				t.Fatalf("At(%d,%d) = %v, want %v", x, y, m.At(x, y), want)
			}
		}
	}
}

func TestRegion_FourConnectedOnly(t *testing.T) {
	// Two black pixels touching only diagonally must not join the same
	// region.
	img := uniformImage(4, 4, gray)
	setPix(img, 1, 1, black)
	setPix(img, 2, 2, black)

	m := Region(img, image.Point{1, 1}, Uniform(10))
	if m.Count != 1 {
		t.Fatalf("Count = %d, want 1", m.Count)
	}
	if m.At(2, 2) {
		t.Error("diagonal neighbor joined a 4-connected region")
	}
}

func TestRegion_SeedColorIsFixedReference(t *testing.T) {
	// Gradient 0,10,20,...: with tolerance 15 from seed value 0, pixels
	// 10 qualifies but 20 does not, even though 20 is within 15 of 10.
	// The reference must not drift with the region.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 1))
	for x := 0; x < 8; x++ {
		v := uint8(x * 10)
		setPix(img, x, 0, color.RGBA{R: v, G: v, B: v, A: 255})
	}

	m := Region(img, image.Point{0, 0}, Uniform(15))
	if m.Count != 2 {
		t.Fatalf("Count = %d, want 2 (seed plus one neighbor)", m.Count)
	}
	if !m.At(0, 0) || !m.At(1, 0) || m.At(2, 0) {
		t.Error("region reference drifted beyond the seed's tolerance band")
	}
}

func TestApply_PaintsMaskOnly(t *testing.T) {
	img := uniformImage(10, 10, gray)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 3 {
				setPix(img, x, y, black)
			}
		}
	}

	m := Region(img, image.Point{0, 0}, Uniform(0))
	out := Apply(img, m, red)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			off := out.PixOffset(x, y)
			got := color.RGBA{R: out.Pix[off+0], G: out.Pix[off+1], B: out.Pix[off+2], A: out.Pix[off+3]}
			want := gray
			if x < 3 {
				want = red
			}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	// Source must be untouched.
	off := img.PixOffset(0, 0)
	if img.Pix[off] != 0 {
		t.Error("Apply mutated the source image")
	}
}
