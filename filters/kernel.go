package filters

import (
	"fmt"

	"github.com/soypat/raster"
)

// Kernel is a convolution kernel with odd width and height so that it has a center tap.
// Each output channel is sum(pixel*weight)/Divisor + Offset.
type Kernel struct {
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Weights []float64 `json:"weights"` // Row-major, Width*Height values.
	Divisor float64   `json:"divisor"`
	Offset  float64   `json:"offset"`
}

// NewKernel builds and validates a kernel.
func NewKernel(width, height int, weights []float64, divisor, offset float64) (Kernel, error) {
	k := Kernel{Width: width, Height: height, Weights: weights, Divisor: divisor, Offset: offset}
	return k, k.Validate()
}

func (k Kernel) Validate() error {
	switch {
	case k.Width <= 0 || k.Height <= 0:
		return fmt.Errorf("%w: non-positive size %dx%d", raster.ErrMalformedKernel, k.Width, k.Height)
	case k.Width%2 == 0 || k.Height%2 == 0:
		return fmt.Errorf("%w: even size %dx%d has no center", raster.ErrMalformedKernel, k.Width, k.Height)
	case len(k.Weights) != k.Width*k.Height:
		return fmt.Errorf("%w: %d weights for %dx%d kernel", raster.ErrMalformedKernel, len(k.Weights), k.Width, k.Height)
	case k.Divisor == 0:
		return fmt.Errorf("%w: zero divisor", raster.ErrMalformedKernel)
	}
	return nil
}

// At returns the weight at column kx, row ky.
func (k Kernel) At(kx, ky int) float64 {
	return k.Weights[ky*k.Width+kx]
}

// BoxKernel returns the (2r+1)×(2r+1) all-ones kernel divided by its tap count.
func BoxKernel(radius int) Kernel {
	side := 2*radius + 1
	weights := make([]float64, side*side)
	for i := range weights {
		weights[i] = 1
	}
	return Kernel{Width: side, Height: side, Weights: weights, Divisor: float64(len(weights))}
}

func Sharpen3x3() Kernel {
	return Kernel{Width: 3, Height: 3, Divisor: 1, Weights: []float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}}
}

func EdgeDetect3x3() Kernel {
	return Kernel{Width: 3, Height: 3, Divisor: 1, Weights: []float64{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}}
}

// Emboss3x3 is offset to middle gray so flat regions are not black.
func Emboss3x3() Kernel {
	return Kernel{Width: 3, Height: 3, Divisor: 1, Offset: 127, Weights: []float64{
		-1, -1, 0,
		-1, 0, 1,
		0, 1, 1,
	}}
}

func Gaussian3x3() Kernel {
	return Kernel{Width: 3, Height: 3, Divisor: 16, Weights: []float64{
		1, 2, 1,
		2, 4, 2,
		1, 2, 1,
	}}
}

func Gaussian5x5() Kernel {
	return Kernel{Width: 5, Height: 5, Divisor: 256, Weights: []float64{
		1, 4, 6, 4, 1,
		4, 16, 24, 16, 4,
		6, 24, 36, 24, 6,
		4, 16, 24, 16, 4,
		1, 4, 6, 4, 1,
	}}
}

// KernelFilter convolves images with Kernel.
type KernelFilter struct {
	Kernel Kernel
	Ctrls  []raster.Control
}

var _ raster.Filter = (*KernelFilter)(nil)

// Apply implements [raster.Filter].
func (f *KernelFilter) Apply(src *raster.Buffer) (*raster.Buffer, error) {
	return Convolve(src, f.Kernel)
}

// Controls implements [raster.Filter].
func (f *KernelFilter) Controls() []raster.Control { return f.Ctrls }

// NewBoxBlur returns a box blur filter whose radius is editable through its controls.
func NewBoxBlur(radius int) (*KernelFilter, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: negative blur radius %d", raster.ErrOutOfRange, radius)
	}
	f := &KernelFilter{Kernel: BoxKernel(radius)}
	f.Ctrls = []raster.Control{
		&raster.ControlOrdered[int]{
			Name:        "Radius",
			Description: "Box blur radius in pixels",
			Value:       radius,
			Min:         0,
			Max:         100,
			Step:        1,
			OnChange: func(r int) error {
				f.Kernel = BoxKernel(r)
				return nil
			},
		},
	}
	return f, nil
}

// BoxBlur averages every pixel with its (2r+1)×(2r+1) neighborhood. A radius of 0 copies src.
func BoxBlur(src *raster.Buffer, radius int) (*raster.Buffer, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: negative blur radius %d", raster.ErrOutOfRange, radius)
	}
	return Convolve(src, BoxKernel(radius))
}

// Convolve applies k to the color channels of src and returns a new buffer of the same size.
// Neighbors outside the image are replaced by the nearest edge pixel, independently per axis.
// Alpha is copied from the source pixel under the kernel center.
//
// Output rows are computed in parallel; src is only read.
func Convolve(src *raster.Buffer, k Kernel) (*raster.Buffer, error) {
	if err := k.Validate(); err != nil {
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
	xr, yr := k.Width/2, k.Height/2
	raster.ParallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			center := src.Row(y)
			out := dst.Row(y)
			for x := 0; x < w; x++ {
				var sumB, sumG, sumR float64
				for ky := 0; ky < k.Height; ky++ {
					row := src.Row(clamp(y+ky-yr, h))
					taps := k.Weights[ky*k.Width : (ky+1)*k.Width]
					for kx, wt := range taps {
						i := clamp(x+kx-xr, w) * raster.BytesPerPixel
						sumB += float64(row[i+raster.OffsetBlue]) * wt
						sumG += float64(row[i+raster.OffsetGreen]) * wt
						sumR += float64(row[i+raster.OffsetRed]) * wt
					}
				}
				i := x * raster.BytesPerPixel
				out[i+raster.OffsetBlue] = raster.Saturate(sumB/k.Divisor + k.Offset)
				out[i+raster.OffsetGreen] = raster.Saturate(sumG/k.Divisor + k.Offset)
				out[i+raster.OffsetRed] = raster.Saturate(sumR/k.Divisor + k.Offset)
				out[i+raster.OffsetAlpha] = center[i+raster.OffsetAlpha]
			}
		}
	})
	return dst, nil
}

// clamp limits v to [0, n-1].
func clamp(v, n int) int {
	return max(0, min(v, n-1))
}
