package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
)

// Buffer is an owned, stride-aware copy of a [Surface]'s pixels.
//
// Pixels are read from the surface once on [Buffer.Lock] and written back on
// [Buffer.Unlock]; in between all reads and writes touch only the owned arena.
// A Buffer must not be locked, unlocked or targeted by two operations concurrently.
// Distinct rows may be read and written from different goroutines.
//
// Pixel accessors do not check bounds beyond what slice indexing does: edge
// handling is the caller's responsibility.
type Buffer struct {
	surface  Surface
	dims     Dims
	pix      []byte
	locked   bool
	acquired bool
}

var _ draw.Image = (*Buffer)(nil)

// NewBuffer returns an unlocked buffer over s.
func NewBuffer(s Surface) *Buffer {
	return &Buffer{surface: s}
}

// Lock is shorthand for NewBuffer(s) followed by [Buffer.Lock].
func Lock(s Surface) (*Buffer, error) {
	b := NewBuffer(s)
	if err := b.Lock(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewOwned returns a locked buffer over a newly allocated [Bitmap].
func NewOwned(width, height int) (*Buffer, error) {
	bm, err := NewBitmap(width, height)
	if err != nil {
		return nil, err
	}
	return Lock(bm)
}

// Lock copies the surface pixels into the buffer. Locking a locked buffer does nothing.
// If the surface is held by another buffer Lock returns [ErrAlreadyLocked].
func (b *Buffer) Lock() error {
	if b.locked {
		return nil
	}
	d := b.surface.Dims()
	if err := d.Validate(); err != nil {
		return err
	}
	acq, exclusive := b.surface.(Acquirer)
	if exclusive && !acq.TryAcquire() {
		return ErrAlreadyLocked
	}
	pix := make([]byte, d.Len())
	if err := readSurface(pix[:d.Size()], b.surface); err != nil {
		if exclusive {
			acq.Release()
		}
		return err
	}
	b.dims = d
	b.pix = pix
	b.acquired = exclusive
	b.locked = true
	return nil
}

func readSurface(dst []byte, s Surface) error {
	if buffered, ok := s.(SurfaceBuffered); ok {
		if buf := buffered.Buffer(); buf != nil {
			if len(buf) < len(dst) {
				return fmt.Errorf("surface buffer too small to represent complete image: %w", io.ErrUnexpectedEOF)
			}
			copy(dst, buf)
			return nil
		}
	}
	n, err := s.ReadAt(dst, 0)
	if n == len(dst) {
		return nil
	} else if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("reading surface: %w", err)
}

// Unlock flushes the buffer into the surface and releases the arena.
// Surfaces that are neither buffered nor [io.WriterAt] are not written to.
// Unlocking an unlocked buffer does nothing.
func (b *Buffer) Unlock() error {
	if !b.locked {
		return nil
	}
	src := b.pix[:b.dims.Size()]
	var err error
	flushed := false
	if buffered, ok := b.surface.(SurfaceBuffered); ok {
		if buf := buffered.Buffer(); len(buf) >= len(src) {
			copy(buf, src)
			flushed = true
		}
	}
	if w, ok := b.surface.(io.WriterAt); ok && !flushed {
		_, err = w.WriteAt(src, 0)
		if err != nil {
			err = fmt.Errorf("flushing surface: %w", err)
		}
	}
	if b.acquired {
		b.surface.(Acquirer).Release()
		b.acquired = false
	}
	b.pix = nil
	b.locked = false
	return err
}

func (b *Buffer) Locked() bool { return b.locked }

// Surface returns the external storage the buffer was created over.
func (b *Buffer) Surface() Surface { return b.surface }

// Dims returns the layout recorded on lock.
func (b *Buffer) Dims() Dims { return b.dims }

func (b *Buffer) Width() int  { return b.dims.Width }
func (b *Buffer) Height() int { return b.dims.Height }
func (b *Buffer) Stride() int { return b.dims.Stride }

// Bytes returns the owned arena. It is nil while unlocked.
func (b *Buffer) Bytes() []byte { return b.pix }

// Row returns the packed pixels of row y, excluding stride padding.
func (b *Buffer) Row(y int) []byte {
	off := y * b.dims.Stride
	return b.pix[off : off+b.dims.SizeRow() : off+b.dims.SizeRow()]
}

func (b *Buffer) Pixel(x, y int) Pixel {
	return DecodePixel(b.pix[b.dims.Offset(x, y):])
}

func (b *Buffer) SetPixel(x, y int, p Pixel) {
	p.Encode(b.pix[b.dims.Offset(x, y):])
}

func (b *Buffer) Red(x, y int) uint8   { return b.pix[b.dims.Offset(x, y)+OffsetRed] }
func (b *Buffer) Green(x, y int) uint8 { return b.pix[b.dims.Offset(x, y)+OffsetGreen] }
func (b *Buffer) Blue(x, y int) uint8  { return b.pix[b.dims.Offset(x, y)+OffsetBlue] }
func (b *Buffer) Alpha(x, y int) uint8 { return b.pix[b.dims.Offset(x, y)+OffsetAlpha] }

func (b *Buffer) SetRed(x, y int, v uint8)   { b.pix[b.dims.Offset(x, y)+OffsetRed] = v }
func (b *Buffer) SetGreen(x, y int, v uint8) { b.pix[b.dims.Offset(x, y)+OffsetGreen] = v }
func (b *Buffer) SetBlue(x, y int, v uint8)  { b.pix[b.dims.Offset(x, y)+OffsetBlue] = v }
func (b *Buffer) SetAlpha(x, y int, v uint8) { b.pix[b.dims.Offset(x, y)+OffsetAlpha] = v }

// Clone returns a locked copy of b backed by a new [Bitmap].
func (b *Buffer) Clone() (*Buffer, error) {
	if !b.locked {
		return nil, ErrNotLocked
	}
	dst, err := NewOwned(b.dims.Width, b.dims.Height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.dims.Height; y++ {
		copy(dst.Row(y), b.Row(y))
	}
	return dst, nil
}

// NRGBA converts the locked buffer contents to a standard library image.
func (b *Buffer) NRGBA() *image.NRGBA {
	return toNRGBA(b.dims, b.pix)
}

// ColorModel implements [image.Image].
func (b *Buffer) ColorModel() color.Model { return PixelModel }

// Bounds implements [image.Image].
func (b *Buffer) Bounds() image.Rectangle { return b.dims.Bounds() }

// At implements [image.Image]. Out of bounds coordinates return a zero [Pixel].
func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(b.Bounds())) {
		return Pixel{}
	}
	return b.Pixel(x, y)
}

// Set implements [draw.Image]. Out of bounds coordinates are ignored.
func (b *Buffer) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(b.Bounds())) {
		return
	}
	b.SetPixel(x, y, PixelModel.Convert(c).(Pixel))
}
