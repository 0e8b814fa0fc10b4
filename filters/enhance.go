package filters

import (
	"math"

	"github.com/soypat/raster"
	"github.com/soypat/raster/hsl"
)

// Enhancement factors are in [0,2] with 1 leaving the image unchanged.
const (
	minFactor = 0
	maxFactor = 2
)

// NewSaturation scales the HSL saturation of every pixel with [hsl.AdjustValue].
func NewSaturation(factor float64) *PointFilter {
	return newHSLFilter("Saturation", "Color saturation factor, 1 is unchanged", factor,
		func(c hsl.HSL, f float64) hsl.HSL {
			c.S = hsl.Clamp01(hsl.AdjustValue(c.S, f))
			return c
		})
}

// NewLightness scales the HSL lightness of every pixel with [hsl.AdjustValue].
// It is the brightness enhancement.
func NewLightness(factor float64) *PointFilter {
	return newHSLFilter("Brightness", "Lightness factor, 1 is unchanged", factor,
		func(c hsl.HSL, f float64) hsl.HSL {
			c.L = hsl.Clamp01(hsl.AdjustValue(c.L, f))
			return c
		})
}

// NewContrast moves the HSL lightness of every pixel away from (factor > 1)
// or towards (factor < 1) middle gray. The distance from 0.5 is adjusted with
// [hsl.AdjustValue] so a factor of 0 yields a uniform middle gray.
func NewContrast(factor float64) *PointFilter {
	return newHSLFilter("Contrast", "Contrast factor, 1 is unchanged", factor,
		func(c hsl.HSL, f float64) hsl.HSL {
			d := c.L - 0.5
			dist := hsl.Clamp01(hsl.AdjustValue(2*math.Abs(d), f)) / 2
			c.L = 0.5 + math.Copysign(dist, d)
			return c
		})
}

func newHSLFilter(name, description string, factor float64, adjust func(hsl.HSL, float64) hsl.HSL) *PointFilter {
	level := factor
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			c := adjust(hsl.FromRGB(p.R, p.G, p.B), level)
			r, g, b := c.RGB()
			return raster.Pixel{R: r, G: g, B: b, A: p.A}
		},
		Ctrls: []raster.Control{
			&raster.ControlOrdered[float64]{
				Name:        name,
				Description: description,
				Value:       level,
				Min:         minFactor,
				Max:         maxFactor,
				Step:        0.05,
				OnChange: func(v float64) error {
					level = v
					return nil
				},
			},
		},
	}
}
