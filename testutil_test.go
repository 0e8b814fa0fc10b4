package raster

import "math/rand"

// randomSquares fills a w×h bitmap with random colored squares on opaque black.
func randomSquares(rng *rand.Rand, w, h, stride, numSquares int) *Bitmap {
	bm, err := NewBitmapStride(w, h, stride)
	if err != nil {
		panic(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			Opaque(0, 0, 0).Encode(bm.pix[bm.dims.Offset(x, y):])
		}
	}
	for i := 0; i < numSquares; i++ {
		size := 1 + rng.Intn(max(1, w/4))
		x0, y0 := rng.Intn(w), rng.Intn(h)
		c := Pixel{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: uint8(64 + rng.Intn(192))}
		for y := y0; y < min(y0+size, h); y++ {
			for x := x0; x < min(x0+size, w); x++ {
				c.Encode(bm.pix[bm.dims.Offset(x, y):])
			}
		}
	}
	return bm
}
