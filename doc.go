// Package raster provides owned, stride-aware access to packed 32 bit
// blue/green/red/alpha pixel storage and the row scheduler used by the
// operators in package filters.
//
// Typical use locks an external [Surface], runs an operator and unlocks:
//
//	buf, err := raster.Lock(bitmap)
//	if err != nil {
//		return err
//	}
//	out, err := filters.BoxBlur(buf, 2)
//	if err != nil {
//		return err
//	}
//	defer out.Unlock()
//	return buf.Unlock()
package raster
