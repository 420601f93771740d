// Package blend merges a flat-filled image with the original so that the
// original's shading and texture stay visible through the new color.
package blend

import (
	"fmt"
	"image"
	"math"
	"sync"
)

// DefaultRatio is the default weight of the filled layer in the mix.
// A flat fill alone erases the gradients and shadows that make a repaint
// look painted rather than pasted; an even split keeps roughly half of the
// original luminance variation while shifting the hue to the fill color.
const DefaultRatio = 0.5

// Mix returns the channel-wise linear blend of original and filled:
// round((1-ratio)*original + ratio*filled) per channel. ratio 0 returns
// the original, 1 the filled image. Neither input is mutated.
//
// The two images must have identical dimensions. A mismatch means the
// pipeline was not respected and is a programming error: Mix panics
// rather than silently truncating.
func Mix(original, filled *image.NRGBA, ratio float64) *image.NRGBA {
	ob, fb := original.Bounds(), filled.Bounds()
	w, h := ob.Dx(), ob.Dy()
	if fb.Dx() != w || fb.Dy() != h {
		panic(fmt.Sprintf("blend: dimension mismatch: original %dx%d, filled %dx%d",
			w, h, fb.Dx(), fb.Dy()))
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	parallelRows(h, func(sy, ey int) {
		for y := sy; y < ey; y++ {
			for x := 0; x < w; x++ {
				ooff := original.PixOffset(ob.Min.X+x, ob.Min.Y+y)
				foff := filled.PixOffset(fb.Min.X+x, fb.Min.Y+y)
				doff := out.PixOffset(x, y)
				for c := 0; c < 4; c++ {
					v := math.Round((1-ratio)*float64(original.Pix[ooff+c]) +
						ratio*float64(filled.Pix[foff+c]))
					if v < 0 {
						v = 0
					}
					if v > 255 {
						v = 255
					}
					out.Pix[doff+c] = uint8(v)
				}
			}
		}
	})
	return out
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
