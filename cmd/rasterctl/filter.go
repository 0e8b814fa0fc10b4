package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/soypat/raster"
	"github.com/soypat/raster/filters"
	"github.com/spf13/cobra"
)

var blurCmd = &cobra.Command{
	Use:   "blur",
	Short: "Box blur",
	RunE: func(cmd *cobra.Command, args []string) error {
		radius, _ := cmd.Flags().GetInt("radius")
		f, err := filters.NewBoxBlur(radius)
		if err != nil {
			return err
		}
		return run(cmd, "blur", f.Apply)
	},
}

var unsharpCmd = &cobra.Command{
	Use:   "unsharp",
	Short: "Unsharp mask: original + (original - blur) * amount",
	RunE: func(cmd *cobra.Command, args []string) error {
		radius, _ := cmd.Flags().GetInt("radius")
		amount, _ := cmd.Flags().GetFloat64("amount")
		f, err := filters.NewUnsharp(radius, amount)
		if err != nil {
			return err
		}
		return run(cmd, "unsharp", f.Apply)
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank filter: pick the n-th darkest pixel of each neighborhood",
	RunE: func(cmd *cobra.Command, args []string) error {
		xr, yr := radii(cmd)
		rank, _ := cmd.Flags().GetInt("rank")
		f, err := filters.NewRankFilter(xr, yr, rank)
		if err != nil {
			return err
		}
		return run(cmd, "rank", f.Apply)
	},
}

var (
	medianCmd = newWindowCmd("median", "Median filter", filters.Median)
	minCmd    = newWindowCmd("min", "Minimum (darkest neighbor) filter", filters.Min)
	maxCmd    = newWindowCmd("max", "Maximum (brightest neighbor) filter", filters.Max)
)

var kernelCmd = &cobra.Command{
	Use:   "kernel",
	Short: "Convolve with a preset or a JSON kernel file",
	Long: `Convolve with a preset kernel (sharpen, edge, emboss, gaussian3, gaussian5)
or a JSON file of the form {"width":3,"height":3,"weights":[...],"divisor":1,"offset":0}.`,
	RunE: runKernel,
}

func init() {
	for _, c := range []*cobra.Command{blurCmd, unsharpCmd} {
		c.Flags().IntP("radius", "r", 1, "Blur radius in pixels")
	}
	unsharpCmd.Flags().Float64P("amount", "a", 1, "Detail amplification, typically 0-5")
	for _, c := range []*cobra.Command{rankCmd, medianCmd, minCmd, maxCmd} {
		c.Flags().IntP("radius", "r", 1, "Window radius on both axes")
		c.Flags().Int("x-radius", -1, "Horizontal window radius, overrides --radius")
		c.Flags().Int("y-radius", -1, "Vertical window radius, overrides --radius")
	}
	rankCmd.Flags().Int("rank", 0, "Zero-based rank in the brightness-sorted window")
	kernelCmd.Flags().String("preset", "", "Preset kernel name")
	kernelCmd.Flags().String("file", "", "JSON kernel file")
	rootCmd.AddCommand(blurCmd, unsharpCmd, rankCmd, medianCmd, minCmd, maxCmd, kernelCmd)
}

func newWindowCmd(use, short string, fn func(src *raster.Buffer, xr, yr int) (*raster.Buffer, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			xr, yr := radii(cmd)
			return run(cmd, use, func(src *raster.Buffer) (*raster.Buffer, error) {
				return fn(src, xr, yr)
			})
		},
	}
}

func radii(cmd *cobra.Command) (xr, yr int) {
	r, _ := cmd.Flags().GetInt("radius")
	xr, _ = cmd.Flags().GetInt("x-radius")
	yr, _ = cmd.Flags().GetInt("y-radius")
	if xr < 0 {
		xr = r
	}
	if yr < 0 {
		yr = r
	}
	return xr, yr
}

var kernelPresets = map[string]func() filters.Kernel{
	"sharpen":   filters.Sharpen3x3,
	"edge":      filters.EdgeDetect3x3,
	"emboss":    filters.Emboss3x3,
	"gaussian3": filters.Gaussian3x3,
	"gaussian5": filters.Gaussian5x5,
}

func runKernel(cmd *cobra.Command, args []string) error {
	preset, _ := cmd.Flags().GetString("preset")
	file, _ := cmd.Flags().GetString("file")
	var k filters.Kernel
	switch {
	case preset != "" && file != "":
		return fmt.Errorf("--preset and --file are mutually exclusive")
	case preset != "":
		mk, ok := kernelPresets[preset]
		if !ok {
			return fmt.Errorf("unknown kernel preset %q", preset)
		}
		k = mk()
	case file != "":
		var err error
		k, err = readKernel(file)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of --preset or --file is required")
	}
	f := &filters.KernelFilter{Kernel: k}
	return run(cmd, "kernel", f.Apply)
}

func readKernel(path string) (filters.Kernel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return filters.Kernel{}, fmt.Errorf("reading kernel: %w", err)
	}
	return parseKernel(data)
}

func parseKernel(data []byte) (filters.Kernel, error) {
	k := filters.Kernel{Divisor: 1}
	if err := json.Unmarshal(data, &k); err != nil {
		return filters.Kernel{}, fmt.Errorf("parsing kernel: %w", err)
	}
	return k, k.Validate()
}
