// Package filters implements point, convolution, rank and arithmetic operators
// over locked [raster.Buffer]s.
//
// Point filters transform each pixel independently and can run in place.
// Neighborhood filters (kernels and ranks) read a read-only source and write a
// new buffer, replicating edge pixels for neighbors outside the image.
// All operators split work in row bands through [raster.ParallelRows] and
// validate their arguments before touching any pixel.
package filters
