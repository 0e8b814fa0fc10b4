package raster

import (
	"errors"
	"image"
	"image/draw"
	"io"
	"sync/atomic"
)

// Bitmap is an in-memory [Surface] of packed blue, green, red, alpha pixels.
// It implements [SurfaceBuffered], [io.WriterAt] and [Acquirer] so at most one
// [Buffer] can hold it locked.
type Bitmap struct {
	dims Dims
	pix  []byte
	held atomic.Bool
}

var (
	_ SurfaceBuffered = (*Bitmap)(nil)
	_ io.WriterAt     = (*Bitmap)(nil)
	_ Acquirer        = (*Bitmap)(nil)
)

// NewBitmap allocates a transparent black bitmap with tightly packed rows.
func NewBitmap(width, height int) (*Bitmap, error) {
	return NewBitmapStride(width, height, width*BytesPerPixel)
}

// NewBitmapStride allocates a bitmap whose rows are stride bytes apart.
// stride must be at least width×4.
func NewBitmapStride(width, height, stride int) (*Bitmap, error) {
	d := Dims{Width: width, Height: height, Stride: stride}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Bitmap{dims: d, pix: make([]byte, d.Len())}, nil
}

// BitmapFromImage converts img into a new bitmap. The bitmap origin is img.Bounds().Min.
func BitmapFromImage(img image.Image) (*Bitmap, error) {
	b := img.Bounds()
	bm, err := NewBitmap(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		b = nrgba.Bounds()
	}
	for y := 0; y < bm.dims.Height; y++ {
		src := nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := bm.pix[y*bm.dims.Stride:]
		for i := 0; i < bm.dims.SizeRow(); i += BytesPerPixel {
			Pixel{R: src[i], G: src[i+1], B: src[i+2], A: src[i+3]}.Encode(dst[i:])
		}
	}
	return bm, nil
}

func (bm *Bitmap) Dims() Dims { return bm.dims }

// Buffer returns the packed pixel storage.
func (bm *Bitmap) Buffer() []byte { return bm.pix }

func (bm *Bitmap) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("negative offset")
	} else if off >= int64(len(bm.pix)) {
		return 0, io.EOF
	}
	n := copy(p, bm.pix[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (bm *Bitmap) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("negative offset")
	} else if off+int64(len(p)) > int64(len(bm.pix)) {
		return 0, io.ErrShortWrite
	}
	return copy(bm.pix[off:], p), nil
}

func (bm *Bitmap) TryAcquire() bool { return bm.held.CompareAndSwap(false, true) }

func (bm *Bitmap) Release() { bm.held.Store(false) }

// Image converts the bitmap to a standard library image.
func (bm *Bitmap) Image() *image.NRGBA {
	return toNRGBA(bm.dims, bm.pix)
}

func toNRGBA(d Dims, pix []byte) *image.NRGBA {
	img := image.NewNRGBA(d.Bounds())
	for y := 0; y < d.Height; y++ {
		src := pix[y*d.Stride : y*d.Stride+d.SizeRow()]
		dst := img.Pix[y*img.Stride:]
		for i := 0; i < len(src); i += BytesPerPixel {
			p := DecodePixel(src[i:])
			dst[i], dst[i+1], dst[i+2], dst[i+3] = p.R, p.G, p.B, p.A
		}
	}
	return img
}
