package filters

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/soypat/raster"
)

func TestBoxBlurRadiusZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := randomSquares(t, rng, 50, 40, 12, 3, 15)
	dst := locked(t)(BoxBlur(src, 0))
	requireEqual(t, src, dst)
}

func TestBoxBlurSinglePixel(t *testing.T) {
	src := uniform(t, 3, 3, raster.Opaque(0, 0, 0))
	src.SetPixel(1, 1, raster.Opaque(255, 0, 0))
	dst := locked(t)(BoxBlur(src, 1))
	// Every 3×3 edge-clamped window contains the center exactly once: 255/9 rounds to 28.
	requireUniform(t, dst, raster.Opaque(28, 0, 0))
}

func TestBoxBlurEdgeReplication(t *testing.T) {
	src := uniform(t, 3, 1, raster.Opaque(0, 0, 0))
	src.SetPixel(0, 0, raster.Opaque(90, 90, 90))
	dst := locked(t)(BoxBlur(src, 1))
	// Window of (0,0) is rows {0,0,0} × columns {0,0,1}: six 90s out of nine.
	if got := dst.Pixel(0, 0); got != raster.Opaque(60, 60, 60) {
		t.Errorf("corner: got %v", got)
	}
	if got := dst.Pixel(2, 0); got != raster.Opaque(0, 0, 0) {
		t.Errorf("far edge: got %v", got)
	}
}

func TestConvolveUniform(t *testing.T) {
	src := uniform(t, 9, 7, raster.Pixel{R: 80, G: 120, B: 200, A: 99})
	for _, tc := range []struct {
		name string
		k    Kernel
		want raster.Pixel
	}{
		{"gaussian3", Gaussian3x3(), raster.Pixel{R: 80, G: 120, B: 200, A: 99}},
		{"gaussian5", Gaussian5x5(), raster.Pixel{R: 80, G: 120, B: 200, A: 99}},
		{"sharpen", Sharpen3x3(), raster.Pixel{R: 80, G: 120, B: 200, A: 99}},
		{"edge", EdgeDetect3x3(), raster.Pixel{A: 99}},
		{"emboss", Emboss3x3(), raster.Pixel{R: 127, G: 127, B: 127, A: 99}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dst := locked(t)(Convolve(src, tc.k))
			requireUniform(t, dst, tc.want)
		})
	}
}

func TestMalformedKernel(t *testing.T) {
	src := uniform(t, 2, 2, raster.Opaque(1, 1, 1))
	for _, k := range []Kernel{
		{Width: 2, Height: 3, Weights: make([]float64, 6), Divisor: 1},
		{Width: 3, Height: 3, Weights: make([]float64, 8), Divisor: 1},
		{Width: 3, Height: 3, Weights: make([]float64, 9), Divisor: 0},
		{Width: 0, Height: 1, Divisor: 1},
	} {
		if _, err := Convolve(src, k); !errors.Is(err, raster.ErrMalformedKernel) {
			t.Errorf("%+v: got %v, want %v", k, err, raster.ErrMalformedKernel)
		}
	}
	if _, err := BoxBlur(src, -1); !errors.Is(err, raster.ErrOutOfRange) {
		t.Errorf("negative radius: %v", err)
	}
}

func TestBoxBlurControl(t *testing.T) {
	f, err := NewBoxBlur(0)
	if err != nil {
		t.Fatal(err)
	}
	if err := raster.FindControl(f.Controls(), "radius").ChangeValue(1); err != nil {
		t.Fatal(err)
	}
	src := uniform(t, 3, 3, raster.Opaque(0, 0, 0))
	src.SetPixel(1, 1, raster.Opaque(0, 0, 255))
	dst := locked(t)(f.Apply(src))
	requireUniform(t, dst, raster.Opaque(0, 0, 28))
}

func TestNewKernel(t *testing.T) {
	k, err := NewKernel(3, 1, []float64{1, 2, 1}, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := k.At(1, 0); got != 2 {
		t.Errorf("At(1,0) = %v", got)
	}
}

// A kernel's first weight applies to the left (or top) neighbor.
func TestConvolveOrientation(t *testing.T) {
	const w, h = 5, 4
	src := uniform(t, w, h, raster.Opaque(0, 0, 0))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.SetPixel(x, y, raster.Opaque(uint8(10+40*x), uint8(20+50*y), 7))
		}
	}
	left, err := NewKernel(3, 1, []float64{1, 0, 0}, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	top, err := NewKernel(1, 3, []float64{1, 0, 0}, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	dstLeft := locked(t)(Convolve(src, left))
	dstTop := locked(t)(Convolve(src, top))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got, want := dstLeft.Pixel(x, y), src.Pixel(max(x-1, 0), y); got != want {
				t.Errorf("left kernel at (%d,%d): got %v, want %v", x, y, got, want)
			}
			if got, want := dstTop.Pixel(x, y), src.Pixel(x, max(y-1, 0)); got != want {
				t.Errorf("top kernel at (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}
