package raster

import (
	"image/color"
	"math"
)

// Pixel is a single non-premultiplied sample with 8 bits per channel.
// It implements [color.Color].
type Pixel struct {
	R, G, B, A uint8
}

// Opaque returns a fully opaque pixel.
func Opaque(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: 255}
}

// Brightness returns the unweighted sum R+G+B in 0..765.
// It is the ordering key of rank filters.
func (p Pixel) Brightness() int {
	return int(p.R) + int(p.G) + int(p.B)
}

// RGBA implements [color.Color].
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// DecodePixel reads a packed pixel from the first 4 bytes of b.
func DecodePixel(b []byte) Pixel {
	_ = b[OffsetAlpha]
	return Pixel{R: b[OffsetRed], G: b[OffsetGreen], B: b[OffsetBlue], A: b[OffsetAlpha]}
}

// Encode writes p into the first 4 bytes of b.
func (p Pixel) Encode(b []byte) {
	_ = b[OffsetAlpha]
	b[OffsetBlue] = p.B
	b[OffsetGreen] = p.G
	b[OffsetRed] = p.R
	b[OffsetAlpha] = p.A
}

// PixelModel converts any color to a [Pixel].
var PixelModel color.Model = color.ModelFunc(pixelModel)

func pixelModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Saturate rounds v to the nearest integer, halves away from zero, and clamps it to [0,255].
// NaN saturates to 0.
func Saturate(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v >= 255:
		return 255
	case v > 0:
		return uint8(v)
	default:
		return 0
	}
}
