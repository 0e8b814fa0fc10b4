package filters

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/soypat/raster"
)

func TestAddSaturates(t *testing.T) {
	a := uniform(t, 2, 2, raster.Pixel{R: 200, G: 10, B: 0, A: 255})
	b := uniform(t, 2, 2, raster.Pixel{R: 100, G: 20, B: 0, A: 255})
	sum := locked(t)(Add(a, b))
	requireUniform(t, sum, raster.Pixel{R: 255, G: 30, B: 0, A: 255})
	diff := locked(t)(Subtract(b, a))
	requireUniform(t, diff, raster.Pixel{R: 0, G: 10, B: 0, A: 0})
}

func TestArithmeticOverlap(t *testing.T) {
	a := uniform(t, 4, 3, raster.Opaque(1, 1, 1))
	b := uniform(t, 2, 5, raster.Opaque(2, 2, 2))
	sum := locked(t)(Add(a, b))
	if sum.Width() != 2 || sum.Height() != 3 {
		t.Fatalf("got %dx%d, want 2x3", sum.Width(), sum.Height())
	}
	requireUniform(t, sum, raster.Pixel{R: 3, G: 3, B: 3, A: 255})
}

func TestArithmeticNotLocked(t *testing.T) {
	a := uniform(t, 1, 1, raster.Opaque(1, 1, 1))
	if _, err := Add(a, raster.NewBuffer(nil)); !errors.Is(err, raster.ErrNotLocked) {
		t.Errorf("got %v", err)
	}
	if _, err := Scale(raster.NewBuffer(nil), 2); !errors.Is(err, raster.ErrNotLocked) {
		t.Errorf("got %v", err)
	}
}

func TestScaleIncludesAlpha(t *testing.T) {
	src := uniform(t, 3, 3, raster.Pixel{R: 10, G: 20, B: 30, A: 40})
	dst := locked(t)(Scale(src, 2))
	requireUniform(t, dst, raster.Pixel{R: 20, G: 40, B: 60, A: 80})
	dst = locked(t)(Scale(src, 0.25))
	requireUniform(t, dst, raster.Pixel{R: 3, G: 5, B: 8, A: 10})
}

func TestUnsharpUniform(t *testing.T) {
	src := uniform(t, 7, 6, raster.Opaque(90, 140, 30))
	dst := locked(t)(UnsharpMask(src, 2, 3))
	requireUniform(t, dst, raster.Opaque(90, 140, 30))
}

func TestUnsharpAmplifiesBrightDetail(t *testing.T) {
	src := uniform(t, 5, 5, raster.Opaque(100, 100, 100))
	src.SetPixel(2, 2, raster.Opaque(145, 145, 145))
	f, err := NewUnsharp(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	dst := locked(t)(f.Apply(src))
	// Blur at center is 100+45/9=105, detail 40, result 185.
	if got := dst.Pixel(2, 2); got != raster.Opaque(185, 185, 185) {
		t.Errorf("center: got %v", got)
	}
	// Neighbors are darker than their blur so their detail saturates to zero.
	if got := dst.Pixel(1, 1); got != raster.Opaque(100, 100, 100) {
		t.Errorf("neighbor: got %v", got)
	}
}

func TestUnsharpAmountZeroIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	src := randomSquares(t, rng, 30, 20, 6, 2, 10)
	dst := locked(t)(UnsharpMask(src, 2, 0))
	requireEqual(t, src, dst)
}
