package filters

import "github.com/soypat/raster"

// GrayscaleMode determines the algorithm for RGB to grayscale conversion.
type GrayscaleMode int

const (
	// GrayscaleLuminance uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
	GrayscaleLuminance GrayscaleMode = iota
	// GrayscaleAverage uses simple average: (R + G + B) / 3
	GrayscaleAverage
	// GrayscaleLightness uses min/max average: (max(R,G,B) + min(R,G,B)) / 2
	GrayscaleLightness
)

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleLuminance:
		return "Luminance"
	case GrayscaleAverage:
		return "Average"
	case GrayscaleLightness:
		return "Lightness"
	default:
		return "Unknown"
	}
}

func (m GrayscaleMode) gray(p raster.Pixel) uint8 {
	switch m {
	case GrayscaleAverage:
		return uint8((uint32(p.R) + uint32(p.G) + uint32(p.B)) / 3)
	case GrayscaleLightness:
		return uint8((uint32(min(p.R, p.G, p.B)) + uint32(max(p.R, p.G, p.B))) / 2)
	default: // GrayscaleLuminance
		return uint8((77*uint32(p.R) + 150*uint32(p.G) + 29*uint32(p.B)) >> 8)
	}
}

// NewGrayscale creates a filter replacing each color by its gray level.
func NewGrayscale(mode GrayscaleMode) *PointFilter {
	filterMode := mode
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			g := filterMode.gray(p)
			return raster.Pixel{R: g, G: g, B: g, A: p.A}
		},
		Ctrls: []raster.Control{
			&raster.ControlEnum[GrayscaleMode]{
				Name:        "Conversion Mode",
				Description: "Algorithm for RGB to grayscale conversion",
				Value:       filterMode,
				ValidValues: []GrayscaleMode{GrayscaleLuminance, GrayscaleAverage, GrayscaleLightness},
				OnChange: func(m GrayscaleMode) error {
					filterMode = m // Closure will assign and Fn above pick up.
					return nil
				},
			},
		},
	}
}

// NewAverage sets every channel to the rounded mean of R, G and B.
func NewAverage() *PointFilter {
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			avg := raster.Saturate(float64(p.Brightness()) / 3)
			return raster.Pixel{R: avg, G: avg, B: avg, A: p.A}
		},
	}
}

// NewInvert creates a filter that inverts RGB values.
func NewInvert() *PointFilter {
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			return raster.Pixel{R: 255 - p.R, G: 255 - p.G, B: 255 - p.B, A: p.A}
		},
	}
}

// NewColorCutoff sets color components less than cutoff to 0.
func NewColorCutoff(cutoff uint8) *PointFilter {
	level := cutoff
	cut := func(v uint8) uint8 {
		if v < level {
			return 0
		}
		return v
	}
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			return raster.Pixel{R: cut(p.R), G: cut(p.G), B: cut(p.B), A: p.A}
		},
		Ctrls: []raster.Control{
			&raster.ControlOrdered[uint8]{
				Name:        "Cutoff",
				Description: "Components below this value become 0",
				Value:       level,
				Min:         0,
				Max:         255,
				Step:        1,
				OnChange: func(v uint8) error {
					level = v
					return nil
				},
			},
		},
	}
}

// NewClearChannels sets the selected color components to 0.
func NewClearChannels(red, green, blue bool) *PointFilter {
	keep := func(v uint8, zero bool) uint8 {
		if zero {
			return 0
		}
		return v
	}
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			return raster.Pixel{R: keep(p.R, red), G: keep(p.G, green), B: keep(p.B, blue), A: p.A}
		},
	}
}

func NewClearRed() *PointFilter   { return NewClearChannels(true, false, false) }
func NewClearGreen() *PointFilter { return NewClearChannels(false, true, false) }
func NewClearBlue() *PointFilter  { return NewClearChannels(false, false, true) }

// NewSepia tones the image with [SepiaMatrix].
func NewSepia() *PointFilter {
	return Matrix(SepiaMatrix)
}

// NewColorTone maps the luminance of each pixel onto tone:
// a white pixel becomes tone and a black pixel stays black.
func NewColorTone(tone raster.Pixel) *PointFilter {
	toneColor := tone
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			lum := (0.299*float64(p.R) + 0.587*float64(p.G) + 0.114*float64(p.B)) / 255
			return raster.Pixel{
				R: raster.Saturate(lum * float64(toneColor.R)),
				G: raster.Saturate(lum * float64(toneColor.G)),
				B: raster.Saturate(lum * float64(toneColor.B)),
				A: p.A,
			}
		},
		Ctrls: []raster.Control{
			&raster.ControlColor{
				Name:        "Tone",
				Description: "Color that white is mapped to",
				Value:       toneColor,
				OnChange: func(c raster.Pixel) error {
					toneColor = c
					return nil
				},
			},
		},
	}
}

// NewMaxSaturate sets non-maximal color components to 0.
// Components tied for the maximum are all kept.
func NewMaxSaturate() *PointFilter {
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			m := max(p.R, p.G, p.B)
			out := raster.Pixel{A: p.A}
			if p.R == m {
				out.R = m
			}
			if p.G == m {
				out.G = m
			}
			if p.B == m {
				out.B = m
			}
			return out
		},
	}
}
