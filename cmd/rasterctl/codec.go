package main

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/soypat/raster"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// operation transforms a locked source into a new locked buffer.
type operation func(src *raster.Buffer) (*raster.Buffer, error)

// run decodes the single input file, applies op and encodes the result to the output file.
func run(cmd *cobra.Command, name string, op operation) error {
	return runMany(cmd, name, func(srcs []*raster.Buffer) (*raster.Buffer, error) {
		if len(srcs) != 1 {
			return nil, fmt.Errorf("want exactly one input, got %d", len(srcs))
		}
		return op(srcs[0])
	})
}

// runMany is run for operations that combine every input file into one output.
func runMany(cmd *cobra.Command, name string, op func(srcs []*raster.Buffer) (*raster.Buffer, error)) error {
	inputPaths, _ := cmd.Flags().GetStringArray("input")
	outputPath, _ := cmd.Flags().GetString("output")
	quality, _ := cmd.Flags().GetInt("quality")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logf := func(format string, args ...any) {
		if verbose {
			fmt.Fprintf(os.Stderr, format, args...)
		}
	}
	encode, err := encoderFor(outputPath, quality)
	if err != nil {
		return err
	}

	srcs := make([]*raster.Buffer, 0, len(inputPaths))
	defer func() {
		for _, src := range srcs {
			src.Unlock()
		}
	}()
	for _, path := range inputPaths {
		src, err := load(path)
		if err != nil {
			return err
		}
		srcs = append(srcs, src)
		logf("Loaded %s: %dx%d\n", path, src.Width(), src.Height())
	}

	start := time.Now()
	out, err := op(srcs)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logf("Applied %s with %d workers in %v\n", name, raster.MaxWorkers(), time.Since(start))

	img := out.NRGBA()
	if err := out.Unlock(); err != nil {
		return err
	}
	if err := save(outputPath, img, encode); err != nil {
		return err
	}
	logf("Wrote %s: %dx%d\n", outputPath, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func load(path string) (*raster.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	bm, err := raster.BitmapFromImage(img)
	if err != nil {
		return nil, err
	}
	return raster.Lock(bm)
}

type encoder func(w io.Writer, img image.Image) error

func encoderFor(path string, quality int) (encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		if quality < 1 || quality > 100 {
			return nil, fmt.Errorf("jpeg quality %d not in 1..100", quality)
		}
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		}, nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("unknown output file extension %q", ext)
	}
}

func save(path string, img image.Image, encode encoder) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
