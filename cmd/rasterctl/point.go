package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/soypat/raster"
	"github.com/soypat/raster/filters"
	"github.com/spf13/cobra"
)

var pointCmd = &cobra.Command{
	Use:   "point <op>",
	Short: "Apply a per-pixel operator: " + strings.Join(pointOpNames(), ", "),
	Args:  cobra.ExactArgs(1),
	RunE:  runPoint,
}

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Adjust saturation, brightness and contrast through HSL (factors 0-2, 1 unchanged)",
	RunE:  runAdjust,
}

var curvesCmd = &cobra.Command{
	Use:   "curves",
	Short: "Map color channels through a tone curve given as x:y pairs in 0-1",
	RunE:  runCurves,
}

func init() {
	pointCmd.Flags().Int("cutoff", 128, "Cutoff level for the cutoff operator (0-255)")
	pointCmd.Flags().String("tone", "255,240,192", "R,G,B tone color for the tone operator")
	pointCmd.Flags().String("mode", "luminance", "Grayscale mode: luminance, average, lightness")
	adjustCmd.Flags().Float64("saturation", 1, "Saturation factor")
	adjustCmd.Flags().Float64("brightness", 1, "Brightness factor")
	adjustCmd.Flags().Float64("contrast", 1, "Contrast factor")
	curvesCmd.Flags().StringSlice("point", nil, "Curve point x:y, repeatable")
	rootCmd.AddCommand(pointCmd, adjustCmd, curvesCmd)
}

var pointOps = map[string]func(cmd *cobra.Command) (*filters.PointFilter, error){
	"invert":      func(*cobra.Command) (*filters.PointFilter, error) { return filters.NewInvert(), nil },
	"clear-red":   func(*cobra.Command) (*filters.PointFilter, error) { return filters.NewClearRed(), nil },
	"clear-green": func(*cobra.Command) (*filters.PointFilter, error) { return filters.NewClearGreen(), nil },
	"clear-blue":  func(*cobra.Command) (*filters.PointFilter, error) { return filters.NewClearBlue(), nil },
	"average":     func(*cobra.Command) (*filters.PointFilter, error) { return filters.NewAverage(), nil },
	"sepia":       func(*cobra.Command) (*filters.PointFilter, error) { return filters.NewSepia(), nil },
	"saturate":    func(*cobra.Command) (*filters.PointFilter, error) { return filters.NewMaxSaturate(), nil },
	"cutoff": func(cmd *cobra.Command) (*filters.PointFilter, error) {
		cutoff, _ := cmd.Flags().GetInt("cutoff")
		f := filters.NewColorCutoff(0)
		return f, raster.FindControl(f.Controls(), "cutoff").ChangeValue(uint8(min(max(cutoff, 0), 255)))
	},
	"grayscale": func(cmd *cobra.Command) (*filters.PointFilter, error) {
		name, _ := cmd.Flags().GetString("mode")
		for _, m := range []filters.GrayscaleMode{filters.GrayscaleLuminance, filters.GrayscaleAverage, filters.GrayscaleLightness} {
			if strings.EqualFold(m.String(), name) {
				return filters.NewGrayscale(m), nil
			}
		}
		return nil, fmt.Errorf("unknown grayscale mode %q", name)
	},
	"tone": func(cmd *cobra.Command) (*filters.PointFilter, error) {
		s, _ := cmd.Flags().GetString("tone")
		tone, err := parseRGB(s)
		if err != nil {
			return nil, err
		}
		return filters.NewColorTone(tone), nil
	},
}

func pointOpNames() []string {
	names := make([]string, 0, len(pointOps))
	for name := range pointOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runPoint(cmd *cobra.Command, args []string) error {
	newOp, ok := pointOps[args[0]]
	if !ok {
		return fmt.Errorf("unknown point operator %q, want one of %s", args[0], strings.Join(pointOpNames(), ", "))
	}
	f, err := newOp(cmd)
	if err != nil {
		return err
	}
	return run(cmd, args[0], inPlace(f))
}

// inPlace runs a point filter over src itself and hands src back as the result.
func inPlace(f *filters.PointFilter) operation {
	return func(src *raster.Buffer) (*raster.Buffer, error) {
		if err := f.Process(nil, src); err != nil {
			return nil, err
		}
		return src, nil
	}
}

func runAdjust(cmd *cobra.Command, args []string) error {
	saturation, _ := cmd.Flags().GetFloat64("saturation")
	brightness, _ := cmd.Flags().GetFloat64("brightness")
	contrast, _ := cmd.Flags().GetFloat64("contrast")
	var chain []*filters.PointFilter
	for _, adj := range []struct {
		factor float64
		create func(float64) *filters.PointFilter
	}{
		{saturation, filters.NewSaturation},
		{brightness, filters.NewLightness},
		{contrast, filters.NewContrast},
	} {
		if adj.factor < 0 || adj.factor > 2 {
			return fmt.Errorf("adjustment factor %v not in 0..2", adj.factor)
		}
		if adj.factor != 1 {
			chain = append(chain, adj.create(adj.factor))
		}
	}
	return run(cmd, "adjust", func(src *raster.Buffer) (*raster.Buffer, error) {
		for _, f := range chain {
			if err := f.Process(nil, src); err != nil {
				return nil, err
			}
		}
		return src, nil
	})
}

func runCurves(cmd *cobra.Command, args []string) error {
	specs, _ := cmd.Flags().GetStringSlice("point")
	pts := make([]raster.CurvePoint, 0, len(specs))
	for _, s := range specs {
		xs, ys, ok := strings.Cut(s, ":")
		if !ok {
			return fmt.Errorf("curve point %q not of form x:y", s)
		}
		x, err := strconv.ParseFloat(xs, 32)
		if err != nil {
			return fmt.Errorf("curve point %q: %w", s, err)
		}
		y, err := strconv.ParseFloat(ys, 32)
		if err != nil {
			return fmt.Errorf("curve point %q: %w", s, err)
		}
		pts = append(pts, raster.CurvePoint{X: float32(x), Y: float32(y)})
	}
	f, err := filters.NewCurves(pts)
	if err != nil {
		return err
	}
	return run(cmd, "curves", inPlace(f))
}

func parseRGB(s string) (raster.Pixel, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return raster.Pixel{}, fmt.Errorf("color %q not of form R,G,B", s)
	}
	var c [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 0, 8)
		if err != nil {
			return raster.Pixel{}, fmt.Errorf("color %q: %w", s, err)
		}
		c[i] = uint8(v)
	}
	return raster.Opaque(c[0], c[1], c[2]), nil
}
