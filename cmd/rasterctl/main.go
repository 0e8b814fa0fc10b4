package main

import (
	"fmt"
	"os"

	"github.com/soypat/raster"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rasterctl",
	Short: "Apply point, kernel, rank and geometry operators to image files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")
		if workers < 0 {
			return fmt.Errorf("--workers must not be negative, got %d", workers)
		}
		raster.SetMaxWorkers(workers)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayP("input", "i", nil, "Input image file (png, jpeg, gif, bmp, tiff, webp), repeatable for montage")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output image file (png, jpeg, gif, bmp, tiff)")
	rootCmd.PersistentFlags().Int("workers", 0, "Row-parallel workers, 0 uses all CPUs")
	rootCmd.PersistentFlags().Int("quality", 90, "JPEG output quality (1-100)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print progress to stderr")
	rootCmd.MarkPersistentFlagRequired("input")
	rootCmd.MarkPersistentFlagRequired("output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
