package filters

import (
	"math/rand"
	"testing"

	"github.com/soypat/raster"
)

func TestEnhanceUnitFactor(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := randomSquares(t, rng, 64, 64, 20, 4, 20)
	for name, f := range map[string]*PointFilter{
		"saturation": NewSaturation(1),
		"brightness": NewLightness(1),
		"contrast":   NewContrast(1),
	} {
		t.Run(name, func(t *testing.T) {
			dst := locked(t)(f.Apply(src))
			for y := 0; y < src.Height(); y++ {
				for x := 0; x < src.Width(); x++ {
					a, b := src.Pixel(x, y), dst.Pixel(x, y)
					if diff(a.R, b.R) > 1 || diff(a.G, b.G) > 1 || diff(a.B, b.B) > 1 || a.A != b.A {
						t.Fatalf("(%d,%d): %v became %v", x, y, a, b)
					}
				}
			}
		})
	}
}

func diff(a, b uint8) int {
	return max(int(a)-int(b), int(b)-int(a))
}

func TestEnhanceExtremes(t *testing.T) {
	in := raster.Pixel{R: 200, G: 100, B: 50, A: 77}
	for _, tc := range []struct {
		name   string
		filter *PointFilter
		want   raster.Pixel
	}{
		{"desaturate", NewSaturation(0), raster.Pixel{R: 125, G: 125, B: 125, A: 77}},
		{"black", NewLightness(0), raster.Pixel{A: 77}},
		{"white", NewLightness(2), raster.Pixel{R: 255, G: 255, B: 255, A: 77}},
		// Lightness moves to 0.5 while hue and saturation stay.
		{"flat", NewContrast(0), raster.Pixel{R: 204, G: 102, B: 51, A: 77}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := uniform(t, 2, 3, in)
			if err := tc.filter.Process(nil, buf); err != nil {
				t.Fatal(err)
			}
			requireUniform(t, buf, tc.want)
		})
	}
}

func TestContrastSpreadsLightness(t *testing.T) {
	buf := uniform(t, 2, 1, raster.Opaque(64, 64, 64))
	buf.SetPixel(1, 0, raster.Opaque(192, 192, 192))
	if err := NewContrast(1.5).Process(nil, buf); err != nil {
		t.Fatal(err)
	}
	dark, light := buf.Pixel(0, 0), buf.Pixel(1, 0)
	if dark.R >= 64 || light.R <= 192 {
		t.Errorf("contrast did not spread: dark %v light %v", dark, light)
	}
}

func TestEnhanceControlRange(t *testing.T) {
	f := NewSaturation(1)
	ctrl := raster.FindControl(f.Controls(), "saturation")
	if err := ctrl.ChangeValue(2.5); err == nil {
		t.Error("factor above 2 accepted")
	}
	if err := ctrl.ChangeValue(0.0); err != nil {
		t.Fatal(err)
	}
	buf := uniform(t, 1, 1, raster.Opaque(255, 0, 0))
	f.Process(nil, buf)
	requireUniform(t, buf, raster.Opaque(128, 128, 128))
}
