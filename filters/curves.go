package filters

import (
	"github.com/soypat/raster"
)

// NewCurves maps every color channel through a piecewise linear tone curve.
// Inputs left of the first point take its Y and inputs right of the last point
// take its Y. An empty curve is the identity.
func NewCurves(points []raster.CurvePoint) (*PointFilter, error) {
	pts, err := raster.SortCurve(points)
	if err != nil {
		return nil, err
	}
	lut := curveLUT(pts)
	return &PointFilter{
		Fn: func(p raster.Pixel) raster.Pixel {
			return raster.Pixel{R: lut[p.R], G: lut[p.G], B: lut[p.B], A: p.A}
		},
		Ctrls: []raster.Control{
			&raster.ControlCurve{
				Name:        "Curve",
				Description: "Tone curve control points, input X to output Y",
				Points:      pts,
				OnChange: func(pts []raster.CurvePoint) error {
					lut = curveLUT(pts)
					return nil
				},
			},
		},
	}, nil
}

// curveLUT tabulates the curve for every 8 bit input. pts must be sorted by X.
func curveLUT(pts []raster.CurvePoint) *[256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(i)
	}
	if len(pts) == 0 {
		return &lut
	}
	seg := 0
	for i := range lut {
		x := float32(i) / 255
		for seg < len(pts) && pts[seg].X < x {
			seg++
		}
		var y float32
		switch {
		case seg == 0:
			y = pts[0].Y
		case seg == len(pts):
			y = pts[len(pts)-1].Y
		default:
			a, b := pts[seg-1], pts[seg]
			t := (x - a.X) / (b.X - a.X)
			y = a.Y + t*(b.Y-a.Y)
		}
		lut[i] = raster.Saturate(float64(y) * 255)
	}
	return &lut
}
