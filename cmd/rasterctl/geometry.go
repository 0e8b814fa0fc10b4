package main

import (
	"fmt"
	"image"

	"github.com/soypat/raster"
	"github.com/soypat/raster/geom"
	"github.com/spf13/cobra"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate about the center by an arbitrary angle",
	RunE: func(cmd *cobra.Command, args []string) error {
		angle, _ := cmd.Flags().GetFloat64("angle")
		interp, err := interpolation(cmd)
		if err != nil {
			return err
		}
		bgs, _ := cmd.Flags().GetString("background")
		bg, err := parseRGB(bgs)
		if err != nil {
			return err
		}
		return run(cmd, "rotate", func(src *raster.Buffer) (*raster.Buffer, error) {
			return geom.Rotate(src, angle, bg, interp)
		})
	},
}

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Scale uniformly with --factor or stretch with --sx/--sy",
	RunE: func(cmd *cobra.Command, args []string) error {
		factor, _ := cmd.Flags().GetFloat64("factor")
		sx, _ := cmd.Flags().GetFloat64("sx")
		sy, _ := cmd.Flags().GetFloat64("sy")
		if sx == 0 {
			sx = factor
		}
		if sy == 0 {
			sy = factor
		}
		interp, err := interpolation(cmd)
		if err != nil {
			return err
		}
		return run(cmd, "scale", func(src *raster.Buffer) (*raster.Buffer, error) {
			return geom.Scale(src, sx, sy, interp)
		})
	},
}

var flipCmd = &cobra.Command{
	Use:   "flip <flip-x|flip-y|rotate-90|rotate-180|rotate-270>",
	Short: "Lossless mirror or right-angle rotation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for op := geom.FlipX; op <= geom.Rotate270; op++ {
			if op.String() == args[0] {
				return run(cmd, args[0], func(src *raster.Buffer) (*raster.Buffer, error) {
					return geom.RotateFlip(src, op)
				})
			}
		}
		return fmt.Errorf("unknown rotate/flip operation %q", args[0])
	},
}

var cropCmd = &cobra.Command{
	Use:   "crop",
	Short: "Crop to a rectangle",
	RunE: func(cmd *cobra.Command, args []string) error {
		var r image.Rectangle
		r.Min.X, _ = cmd.Flags().GetInt("x")
		r.Min.Y, _ = cmd.Flags().GetInt("y")
		w, _ := cmd.Flags().GetInt("width")
		h, _ := cmd.Flags().GetInt("height")
		r.Max = r.Min.Add(image.Pt(w, h))
		return run(cmd, "crop", func(src *raster.Buffer) (*raster.Buffer, error) {
			return geom.Crop(src, r)
		})
	},
}

var montageCmd = &cobra.Command{
	Use:   "montage",
	Short: "Tile every -i input into a grid of equal cells",
	RunE: func(cmd *cobra.Command, args []string) error {
		columns, _ := cmd.Flags().GetInt("columns")
		bgs, _ := cmd.Flags().GetString("background")
		bg, err := parseRGB(bgs)
		if err != nil {
			return err
		}
		return runMany(cmd, "montage", func(srcs []*raster.Buffer) (*raster.Buffer, error) {
			return geom.Montage(srcs, columns, bg)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{rotateCmd, scaleCmd} {
		c.Flags().String("interpolation", geom.BiLinear.String(), "nearest, approx-bilinear, bilinear or catmull-rom")
	}
	rotateCmd.Flags().Float64("angle", 0, "Clockwise rotation in degrees")
	rotateCmd.Flags().String("background", "0,0,0", "R,G,B fill for uncovered pixels")
	scaleCmd.Flags().Float64("factor", 1, "Uniform scale factor")
	scaleCmd.Flags().Float64("sx", 0, "Horizontal scale factor, overrides --factor")
	scaleCmd.Flags().Float64("sy", 0, "Vertical scale factor, overrides --factor")
	cropCmd.Flags().Int("x", 0, "Left edge")
	cropCmd.Flags().Int("y", 0, "Top edge")
	cropCmd.Flags().Int("width", 0, "Crop width")
	cropCmd.Flags().Int("height", 0, "Crop height")
	cropCmd.MarkFlagRequired("width")
	cropCmd.MarkFlagRequired("height")
	montageCmd.Flags().Int("columns", geom.MontageColumns, "Images per row")
	montageCmd.Flags().String("background", "0,0,0", "R,G,B fill for empty cell space")
	rootCmd.AddCommand(rotateCmd, scaleCmd, flipCmd, cropCmd, montageCmd)
}

func interpolation(cmd *cobra.Command) (geom.Interpolation, error) {
	s, _ := cmd.Flags().GetString("interpolation")
	return geom.ParseInterpolation(s)
}
