// Package geom implements geometric operations over locked buffers:
// rotation, scaling, right-angle rotations and flips, cropping and montages.
//
// Resampling is configured explicitly per call with an [Interpolation].
package geom

import (
	"fmt"
	"image"
	"math"

	"github.com/soypat/raster"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Interpolation selects the resampling kernel of Scale and Rotate.
type Interpolation int

const (
	NearestNeighbor Interpolation = iota
	ApproxBiLinear
	BiLinear
	CatmullRom
)

func (i Interpolation) String() string {
	switch i {
	case NearestNeighbor:
		return "nearest"
	case ApproxBiLinear:
		return "approx-bilinear"
	case BiLinear:
		return "bilinear"
	case CatmullRom:
		return "catmull-rom"
	default:
		return "unknown"
	}
}

// ParseInterpolation is the inverse of [Interpolation.String].
func ParseInterpolation(s string) (Interpolation, error) {
	for i := NearestNeighbor; i <= CatmullRom; i++ {
		if i.String() == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown interpolation %q", raster.ErrOutOfRange, s)
}

func (i Interpolation) interpolator() (draw.Interpolator, error) {
	switch i {
	case NearestNeighbor:
		return draw.NearestNeighbor, nil
	case ApproxBiLinear:
		return draw.ApproxBiLinear, nil
	case BiLinear:
		return draw.BiLinear, nil
	case CatmullRom:
		return draw.CatmullRom, nil
	}
	return nil, fmt.Errorf("%w: interpolation %d", raster.ErrOutOfRange, int(i))
}

// Scale resizes src by sx horizontally and sy vertically. The output is at least 1×1.
func Scale(src *raster.Buffer, sx, sy float64, interp Interpolation) (*raster.Buffer, error) {
	if !(sx > 0 && sy > 0) || math.IsInf(sx, 0) || math.IsInf(sy, 0) {
		return nil, fmt.Errorf("%w: scale factors %v,%v", raster.ErrInvalidDimensions, sx, sy)
	}
	ip, err := interp.interpolator()
	if err != nil {
		return nil, err
	}
	if _, err := raster.ValidatePair(nil, src); err != nil {
		return nil, err
	}
	fw := math.Round(float64(src.Width()) * sx)
	fh := math.Round(float64(src.Height()) * sy)
	if fw >= math.MaxInt32 || fh >= math.MaxInt32 {
		return nil, fmt.Errorf("%w: scaled size %vx%v too large", raster.ErrInvalidDimensions, fw, fh)
	}
	dst, err := raster.NewOwned(max(1, int(fw)), max(1, int(fh)))
	if err != nil {
		return nil, err
	}
	ip.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Rotate turns src by degrees clockwise about the center of a canvas whose
// width and height are the source height and width. Uncovered pixels are bg.
func Rotate(src *raster.Buffer, degrees float64, bg raster.Pixel, interp Interpolation) (*raster.Buffer, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return nil, fmt.Errorf("%w: rotation angle %v", raster.ErrOutOfRange, degrees)
	}
	ip, err := interp.interpolator()
	if err != nil {
		return nil, err
	}
	if _, err := raster.ValidatePair(nil, src); err != nil {
		return nil, err
	}
	dst, err := raster.NewOwned(src.Height(), src.Width())
	if err != nil {
		return nil, err
	}
	fill(dst, bg)
	m := rotation(degrees,
		float64(src.Width())/2, float64(src.Height())/2,
		float64(dst.Width())/2, float64(dst.Height())/2)
	ip.Transform(dst, m, src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// rotation returns the source to destination matrix that rotates by degrees
// about the source center (sx,sy) and moves it to the destination center (dx,dy).
func rotation(degrees, sx, sy, dx, dy float64) f64.Aff3 {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return f64.Aff3{
		cos, -sin, dx - cos*sx + sin*sy,
		sin, cos, dy - sin*sx - cos*sy,
	}
}

// RotateFlipType is a lossless right-angle rotation or mirror.
type RotateFlipType int

const (
	FlipX RotateFlipType = iota + 1 // Mirror left to right.
	FlipY                           // Mirror top to bottom.
	Rotate90
	Rotate180
	Rotate270
)

func (op RotateFlipType) String() string {
	switch op {
	case FlipX:
		return "flip-x"
	case FlipY:
		return "flip-y"
	case Rotate90:
		return "rotate-90"
	case Rotate180:
		return "rotate-180"
	case Rotate270:
		return "rotate-270"
	default:
		return "unknown"
	}
}

// RotateFlip returns src rotated clockwise by a multiple of 90 degrees or mirrored.
func RotateFlip(src *raster.Buffer, op RotateFlipType) (*raster.Buffer, error) {
	if _, err := raster.ValidatePair(nil, src); err != nil {
		return nil, err
	}
	w, h := src.Width(), src.Height()
	var at func(x, y int) (sx, sy int)
	dw, dh := w, h
	switch op {
	case FlipX:
		at = func(x, y int) (int, int) { return w - 1 - x, y }
	case FlipY:
		at = func(x, y int) (int, int) { return x, h - 1 - y }
	case Rotate90:
		dw, dh = h, w
		at = func(x, y int) (int, int) { return y, h - 1 - x }
	case Rotate180:
		at = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case Rotate270:
		dw, dh = h, w
		at = func(x, y int) (int, int) { return w - 1 - y, x }
	default:
		return nil, fmt.Errorf("%w: rotate/flip %d", raster.ErrOutOfRange, int(op))
	}
	dst, err := raster.NewOwned(dw, dh)
	if err != nil {
		return nil, err
	}
	raster.ParallelRows(dh, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < dw; x++ {
				dst.SetPixel(x, y, src.Pixel(at(x, y)))
			}
		}
	})
	return dst, nil
}

// Crop copies the part of src inside r. r is clipped to the source bounds
// and must not be empty afterwards.
func Crop(src *raster.Buffer, r image.Rectangle) (*raster.Buffer, error) {
	if _, err := raster.ValidatePair(nil, src); err != nil {
		return nil, err
	}
	r = r.Canon().Intersect(src.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("%w: crop rectangle outside image", raster.ErrInvalidDimensions)
	}
	dst, err := raster.NewOwned(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}
	start := r.Min.X * raster.BytesPerPixel
	for y := 0; y < r.Dy(); y++ {
		copy(dst.Row(y), src.Row(r.Min.Y + y)[start:])
	}
	return dst, nil
}

// MontageColumns is the customary number of images per montage row.
const MontageColumns = 4

// Montage lays srcs out in a grid, columns per row, in cells as large as the
// widest and tallest source. Each source is drawn over the cell's top-left
// corner on a bg canvas, blending translucent pixels.
func Montage(srcs []*raster.Buffer, columns int, bg raster.Pixel) (*raster.Buffer, error) {
	if len(srcs) == 0 {
		return nil, fmt.Errorf("%w: montage of no images", raster.ErrInvalidDimensions)
	}
	if columns <= 0 {
		return nil, fmt.Errorf("%w: %d montage columns", raster.ErrOutOfRange, columns)
	}
	var cellW, cellH int
	for i, src := range srcs {
		if _, err := raster.ValidatePair(nil, src); err != nil {
			return nil, fmt.Errorf("montage image %d: %w", i, err)
		}
		cellW, cellH = max(cellW, src.Width()), max(cellH, src.Height())
	}
	cols := min(len(srcs), columns)
	rows := (len(srcs) + columns - 1) / columns
	if cellW > math.MaxInt32/cols || cellH > math.MaxInt32/rows {
		return nil, fmt.Errorf("%w: montage of %dx%d cells too large", raster.ErrInvalidDimensions, cols, rows)
	}
	dst, err := raster.NewOwned(cols*cellW, rows*cellH)
	if err != nil {
		return nil, err
	}
	fill(dst, bg)
	for i, src := range srcs {
		at := image.Pt(i%columns*cellW, i/columns*cellH)
		draw.Draw(dst, src.Bounds().Add(at), src, image.Point{}, draw.Over)
	}
	return dst, nil
}

func fill(dst *raster.Buffer, p raster.Pixel) {
	raster.ParallelRows(dst.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := dst.Row(y)
			for i := 0; i < len(row); i += raster.BytesPerPixel {
				p.Encode(row[i:])
			}
		}
	})
}
