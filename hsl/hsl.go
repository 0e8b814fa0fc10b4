// Package hsl converts between 8 bit RGB and hue/saturation/lightness.
package hsl

import (
	"math"

	"github.com/soypat/raster"
)

// chromaEpsilon is the chroma under which a color is treated as achromatic (hue 0).
const chromaEpsilon = 1e-4

// HSL is a color in the hue/saturation/lightness model.
// H is in degrees [0,360), S and L are in [0,1].
type HSL struct {
	H, S, L float64
}

// FromRGB converts an 8 bit RGB triple.
func FromRGB(r, g, b uint8) HSL {
	vmax := max(r, g, b)
	rf, gf, bf := unit(r), unit(g), unit(b)
	v := unit(vmax)
	c := v - unit(min(r, g, b))
	l := v - c/2

	var h float64
	if math.Abs(c) > chromaEpsilon {
		switch vmax {
		case r:
			sector := math.Mod((gf-bf)/c, 6)
			if sector < 0 {
				sector += 6
			}
			h = 60 * sector
		case g:
			h = 60 * ((bf-rf)/c + 2)
		default:
			h = 60 * ((rf-gf)/c + 4)
		}
	}

	var s float64
	if l != 0 && l != 1 {
		s = (v - l) / math.Min(l, 1-l)
	}
	return HSL{H: h, S: s, L: l}
}

// RGB converts c back to 8 bit channels, rounding and saturating each one.
func (c HSL) RGB() (r, g, b uint8) {
	return channel(c.f(0)), channel(c.f(8)), channel(c.f(4))
}

// f is the chroma function evaluated at n.
func (c HSL) f(n float64) float64 {
	k := math.Mod(n+c.H/30, 12)
	if k < 0 {
		k += 12
	}
	a := c.S * math.Min(c.L, 1-c.L)
	return c.L - a*math.Max(-1, math.Min(math.Min(k-3, 9-k), 1))
}

// AdjustValue scales a normalized value around the no-op factor 1.
// Factors below 1 scale linearly towards 0; factors above 1 move the value
// towards 1 by the same proportion, so 0 and 2 are the extremes.
// The result may leave [0,1] for factors outside [0,2]; see [Clamp01].
func AdjustValue(value, factor float64) float64 {
	if factor < 1 {
		return value * factor
	}
	return 1 - (1-value)*(2-factor)
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

func unit(v uint8) float64 { return float64(v) / 255 }

func channel(v float64) uint8 { return raster.Saturate(v * 255) }
