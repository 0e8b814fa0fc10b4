package filters

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/soypat/raster"
)

// RankFilter is an order-statistic filter over a (2·XRadius+1)×(2·YRadius+1) window.
type RankFilter struct {
	XRadius, YRadius int
	// Rank is the zero-based position in the window sorted by ascending brightness.
	Rank  int
	Ctrls []raster.Control
}

var _ raster.Filter = (*RankFilter)(nil)

// NewRankFilter validates the window and rank and returns an editable filter.
func NewRankFilter(xRadius, yRadius, rank int) (*RankFilter, error) {
	if err := validateRank(xRadius, yRadius, rank); err != nil {
		return nil, err
	}
	f := &RankFilter{XRadius: xRadius, YRadius: yRadius, Rank: rank}
	f.Ctrls = []raster.Control{
		&raster.ControlOrdered[int]{
			Name: "X Radius", Description: "Horizontal window radius", Value: xRadius, Min: 0, Max: 50, Step: 1,
			OnChange: func(v int) error {
				if err := validateRank(v, f.YRadius, f.Rank); err != nil {
					return err
				}
				f.XRadius = v
				return nil
			},
		},
		&raster.ControlOrdered[int]{
			Name: "Y Radius", Description: "Vertical window radius", Value: yRadius, Min: 0, Max: 50, Step: 1,
			OnChange: func(v int) error {
				if err := validateRank(f.XRadius, v, f.Rank); err != nil {
					return err
				}
				f.YRadius = v
				return nil
			},
		},
		&raster.ControlOrdered[int]{
			Name: "Rank", Description: "Position in the brightness-sorted window", Value: rank, Min: 0, Max: 101*101 - 1, Step: 1,
			OnChange: func(v int) error {
				if err := validateRank(f.XRadius, f.YRadius, v); err != nil {
					return err
				}
				f.Rank = v
				return nil
			},
		},
	}
	return f, nil
}

// Apply implements [raster.Filter].
func (f *RankFilter) Apply(src *raster.Buffer) (*raster.Buffer, error) {
	return Rank(src, f.XRadius, f.YRadius, f.Rank)
}

// Controls implements [raster.Filter].
func (f *RankFilter) Controls() []raster.Control { return f.Ctrls }

// WindowSize returns the number of pixels in a rank window.
func WindowSize(xRadius, yRadius int) int {
	return (2*xRadius + 1) * (2*yRadius + 1)
}

func validateRank(xRadius, yRadius, rank int) error {
	if xRadius < 0 || yRadius < 0 {
		return fmt.Errorf("%w: negative window radius %d,%d", raster.ErrOutOfRange, xRadius, yRadius)
	}
	if n := WindowSize(xRadius, yRadius); rank < 0 || rank >= n {
		return fmt.Errorf("%w: rank %d outside window of %d pixels", raster.ErrOutOfRange, rank, n)
	}
	return nil
}

// Rank replaces every pixel with the pixel at position rank of its edge-clamped
// neighborhood sorted by ascending [raster.Pixel.Brightness]. Ties keep window
// scan order (rows top to bottom, pixels left to right). The selected pixel is
// copied whole, alpha included.
//
// Each output pixel costs a stable sort of the window: O(n·log n) for n window pixels.
func Rank(src *raster.Buffer, xRadius, yRadius, rank int) (*raster.Buffer, error) {
	if err := validateRank(xRadius, yRadius, rank); err != nil {
		return nil, err
	}
	if _, err := raster.ValidatePair(nil, src); err != nil {
		return nil, err
	}
	w, h := src.Width(), src.Height()
	dst, err := raster.NewOwned(w, h)
	if err != nil {
		return nil, err
	}
	n := WindowSize(xRadius, yRadius)
	raster.ParallelRows(h, func(y0, y1 int) {
		window := make([]raster.Pixel, 0, n)
		for y := y0; y < y1; y++ {
			out := dst.Row(y)
			for x := 0; x < w; x++ {
				window = window[:0]
				for dy := -yRadius; dy <= yRadius; dy++ {
					row := src.Row(clamp(y+dy, h))
					for dx := -xRadius; dx <= xRadius; dx++ {
						window = append(window, raster.DecodePixel(row[clamp(x+dx, w)*raster.BytesPerPixel:]))
					}
				}
				slices.SortStableFunc(window, byBrightness)
				window[rank].Encode(out[x*raster.BytesPerPixel:])
			}
		}
	})
	return dst, nil
}

func byBrightness(a, b raster.Pixel) int {
	return cmp.Compare(a.Brightness(), b.Brightness())
}

// Median is the rank filter selecting the middle of the window.
func Median(src *raster.Buffer, xRadius, yRadius int) (*raster.Buffer, error) {
	return Rank(src, xRadius, yRadius, WindowSize(xRadius, yRadius)/2)
}

// Min is the rank filter selecting the darkest pixel of the window.
func Min(src *raster.Buffer, xRadius, yRadius int) (*raster.Buffer, error) {
	return Rank(src, xRadius, yRadius, 0)
}

// Max is the rank filter selecting the brightest pixel of the window.
func Max(src *raster.Buffer, xRadius, yRadius int) (*raster.Buffer, error) {
	return Rank(src, xRadius, yRadius, WindowSize(xRadius, yRadius)-1)
}
