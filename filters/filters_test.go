package filters

import (
	"image/png"
	"math/rand"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/raster"
)

// randomSquares returns a locked buffer with random colored squares on opaque black.
func randomSquares(t *testing.T, rng *rand.Rand, width, height, numSquares, minSize, maxSize int) *raster.Buffer {
	t.Helper()
	buf := uniform(t, width, height, raster.Opaque(0, 0, 0))
	for i := 0; i < numSquares; i++ {
		size := minSize + rng.Intn(maxSize-minSize+1)
		x0, y0 := rng.Intn(width), rng.Intn(height)
		// Avoid very dark squares so they stand out from the background.
		c := raster.Opaque(uint8(64+rng.Intn(192)), uint8(64+rng.Intn(192)), uint8(64+rng.Intn(192)))
		for y := y0; y < min(y0+size, height); y++ {
			for x := x0; x < min(x0+size, width); x++ {
				buf.SetPixel(x, y, c)
			}
		}
	}
	return buf
}

func uniform(t *testing.T, width, height int, p raster.Pixel) *raster.Buffer {
	t.Helper()
	buf, err := raster.NewOwned(width, height)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetPixel(x, y, p)
		}
	}
	t.Cleanup(func() { buf.Unlock() })
	return buf
}

// locked fails the test on error and registers the buffer for unlocking at the end of the test.
// Use as locked(t)(filter.Apply(src)).
func locked(t *testing.T) func(*raster.Buffer, error) *raster.Buffer {
	return func(buf *raster.Buffer, err error) *raster.Buffer {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { buf.Unlock() })
		return buf
	}
}

func requireUniform(t *testing.T, buf *raster.Buffer, want raster.Pixel) {
	t.Helper()
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			if got := buf.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func requireEqual(t *testing.T, want, got *raster.Buffer) {
	t.Helper()
	if diff := cmp.Diff(want.NRGBA(), got.NRGBA()); diff != "" {
		t.Fatalf("buffers differ (-want +got):\n%s", diff)
	}
}

func saveBufferAsPNG(buf *raster.Buffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, buf.NRGBA())
}
