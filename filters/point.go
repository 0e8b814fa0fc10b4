package filters

import (
	"github.com/soypat/raster"
)

var errNilPixelFunc = errorString("nil PixelFunc")

type errorString string

func (e errorString) Error() string { return string(e) }

// PixelFunc transforms a single pixel. It must depend only on its argument
// so that rows can be processed in any order and in parallel.
type PixelFunc func(p raster.Pixel) raster.Pixel

// PointFilter applies a per-pixel transformation using a callback function.
// It handles the iteration and row scheduling common to all per-pixel filters.
type PointFilter struct {
	Fn    PixelFunc
	Ctrls []raster.Control // User-defined controls for this filter.
}

var _ raster.Filter = (*PointFilter)(nil)

// Controls implements [raster.Filter].
func (f *PointFilter) Controls() []raster.Control {
	return f.Ctrls
}

// Apply implements [raster.Filter].
func (f *PointFilter) Apply(src *raster.Buffer) (*raster.Buffer, error) {
	if f.Fn == nil {
		return nil, errNilPixelFunc
	}
	if _, err := raster.ValidatePair(nil, src); err != nil {
		return nil, err
	}
	dst, err := raster.NewOwned(src.Width(), src.Height())
	if err != nil {
		return nil, err
	}
	f.process(dst, src)
	return dst, nil
}

// Process writes the transformed pixels of src into dst.
// A nil dst or dst == src processes in place; otherwise dst must match src dimensions.
// Nothing is written if validation fails.
func (f *PointFilter) Process(dst, src *raster.Buffer) error {
	if f.Fn == nil {
		return errNilPixelFunc
	}
	dst, err := raster.ValidatePair(dst, src)
	if err != nil {
		return err
	}
	f.process(dst, src)
	return nil
}

func (f *PointFilter) process(dst, src *raster.Buffer) {
	fn := f.Fn
	raster.ParallelRows(src.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			srcRow, dstRow := src.Row(y), dst.Row(y)
			for i := 0; i < len(srcRow); i += raster.BytesPerPixel {
				fn(raster.DecodePixel(srcRow[i:])).Encode(dstRow[i:])
			}
		}
	})
}

// Matrix returns a filter computing, per pixel,
//
//	R' = R*m[0][0] + G*m[0][1] + B*m[0][2]
//	G' = R*m[1][0] + G*m[1][1] + B*m[1][2]
//	B' = R*m[2][0] + G*m[2][1] + B*m[2][2]
//
// with each result rounded and saturated to [0,255]. Alpha is untouched.
func Matrix(m [3][3]float64) *PointFilter {
	return &PointFilter{Fn: matrixFunc(m)}
}

func matrixFunc(m [3][3]float64) PixelFunc {
	return func(p raster.Pixel) raster.Pixel {
		r, g, b := float64(p.R), float64(p.G), float64(p.B)
		return raster.Pixel{
			R: raster.Saturate(r*m[0][0] + g*m[0][1] + b*m[0][2]),
			G: raster.Saturate(r*m[1][0] + g*m[1][1] + b*m[1][2]),
			B: raster.Saturate(r*m[2][0] + g*m[2][1] + b*m[2][2]),
			A: p.A,
		}
	}
}

// IdentityMatrix leaves colors unchanged.
var IdentityMatrix = [3][3]float64{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// SepiaMatrix is the classic sepia toning matrix.
var SepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}
