package raster

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBitmapFromImage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(3, 5, 13, 12))
	rng.Read(img.Pix)
	bm, err := BitmapFromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if d := bm.Dims(); d.Width != 10 || d.Height != 7 {
		t.Fatalf("dims %+v", d)
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			want := img.NRGBAAt(x+3, y+5)
			got := DecodePixel(bm.Buffer()[bm.Dims().Offset(x, y):])
			if got != (Pixel{R: want.R, G: want.G, B: want.B, A: want.A}) {
				t.Fatalf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
	back := bm.Image()
	if diff := cmp.Diff(img.Pix, back.Pix); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBitmapFromGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(1, 0, color.Gray{Y: 77})
	bm, err := BitmapFromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if got := DecodePixel(bm.Buffer()[4:]); got != Opaque(77, 77, 77) {
		t.Errorf("got %v", got)
	}
}

func TestBitmapAcquire(t *testing.T) {
	bm, _ := NewBitmap(1, 1)
	if !bm.TryAcquire() {
		t.Fatal("fresh bitmap not acquirable")
	}
	if bm.TryAcquire() {
		t.Fatal("bitmap acquired twice")
	}
	bm.Release()
	if !bm.TryAcquire() {
		t.Fatal("bitmap not acquirable after release")
	}
}

func TestSaturate(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want uint8
	}{
		{-3, 0}, {0, 0}, {0.49, 0}, {0.5, 1}, {1.5, 2}, {2.5, 3}, {254.4, 254}, {254.5, 255}, {1e9, 255},
	} {
		if got := Saturate(tc.in); got != tc.want {
			t.Errorf("Saturate(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
