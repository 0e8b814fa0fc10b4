package raster

import (
	"fmt"
	"image"
	"io"
	"math"
)

// BytesPerPixel is the size of a packed pixel. The only supported layout is
// 8 bits per channel stored in blue, green, red, alpha order.
const BytesPerPixel = 4

// Byte offsets of each channel within a packed pixel.
const (
	OffsetBlue  = 0
	OffsetGreen = 1
	OffsetRed   = 2
	OffsetAlpha = 3
)

// Surface is the external, decoded storage of an image, which may be in-memory or elsewhere.
// It does not do bounds abstraction. As made implicit by Dims signature, row spacing must be homogenous in surfaces.
//
// A [Buffer] locks a Surface to obtain an owned copy of its pixels and writes them
// back on unlock when the Surface also implements [io.WriterAt].
type Surface interface {
	// Dims returns information on the in-memory pixel structure.
	// Row spacing must be homogenous in entire surface separated by stride bytes.
	Dims() Dims
	// ReadAt reads packed pixels starting at a byte offset.
	//
	// Users should always try casting [Surface] to [SurfaceBuffered]
	// to see if they can work with the surface in-memory which is more efficient.
	io.ReaderAt
}

// SurfaceBuffered is a [Surface] whose pixels are already in memory.
type SurfaceBuffered interface {
	Surface
	// Buffer returns the raw underlying buffer or nil to signal buffer is currently not in memory.
	// A non-nil buffer is written to directly when a [Buffer] is unlocked.
	Buffer() []byte
}

// Acquirer is implemented by surfaces that can be owned by a single [Buffer] at a time.
type Acquirer interface {
	// TryAcquire marks the surface as owned and reports whether it was free.
	TryAcquire() bool
	// Release frees a surface previously acquired.
	Release()
}

// Filter produces a new image from a locked source buffer.
//
// Binary operations such as the arithmetic in package filters are plain functions
// since they take two sources.
type Filter interface {
	// Apply processes src and returns a newly allocated, locked buffer.
	// src is never modified.
	Apply(src *Buffer) (*Buffer, error)
	// Controls returns the actual controls of the filter.
	// Controls should remain valid even after calling [Control.ChangeValue]
	// and their [Control.ActualValue] return the updated value.
	Controls() []Control
}

// Dims describes the memory layout of a packed 32 bit image.
type Dims struct {
	Width  int
	Height int
	Stride int
}

// Validate checks that rows fit in the stride.
// Layouts whose arena is too large to index with an int are rejected.
func (d Dims) Validate() error {
	switch {
	case d.Height <= 0 || d.Width <= 0:
		return fmt.Errorf("%w: empty image %dx%d", ErrInvalidDimensions, d.Width, d.Height)
	case d.Width > math.MaxInt/BytesPerPixel || d.Stride > math.MaxInt/d.Height:
		return fmt.Errorf("%w: image %dx%d with stride %d too large", ErrInvalidDimensions, d.Width, d.Height, d.Stride)
	case d.SizeRow() > d.Stride:
		return fmt.Errorf("%w: stride %d smaller than pixel row size %d", ErrInvalidDimensions, d.Stride, d.SizeRow())
	}
	return nil
}

// Size returns the readable section size of raw image in bytes.
// The padding after the last row is not part of it.
func (d Dims) Size() int64 {
	if d.Height == 0 || d.Width == 0 {
		return 0
	}
	return int64(d.Height-1)*int64(d.Stride) + int64(d.SizeRow())
}

// Len returns stride×height, the length of a [Buffer] arena.
func (d Dims) Len() int {
	return d.Stride * d.Height
}

func (d Dims) SizeRow() int {
	return d.Width * BytesPerPixel
}

// Offset returns the byte offset of pixel (x,y). It does not check bounds.
func (d Dims) Offset(x, y int) int {
	return y*d.Stride + x*BytesPerPixel
}

// Bounds returns the image rectangle with origin at zero.
func (d Dims) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// ValidatePair provides the basic guarantees of inputs to a two-buffer operation:
//   - Both buffers are locked.
//   - A nil dst means in-place: src is returned as destination.
//   - A non-nil dst has the same width and height as src.
//
// It never touches pixel data so callers can validate before mutating anything.
func ValidatePair(dst, src *Buffer) (*Buffer, error) {
	if src == nil || !src.Locked() {
		return nil, fmt.Errorf("source: %w", ErrNotLocked)
	}
	if dst == nil {
		return src, nil
	}
	if !dst.Locked() {
		return nil, fmt.Errorf("destination: %w", ErrNotLocked)
	}
	if dst.Width() != src.Width() || dst.Height() != src.Height() {
		return nil, fmt.Errorf("%w: destination %dx%d does not match source %dx%d",
			ErrInvalidDimensions, dst.Width(), dst.Height(), src.Width(), src.Height())
	}
	return dst, nil
}
