package yuv

import (
	"errors"
	"fmt"
)

// Errors returned by the conversion entry points. Every failure is
// detected before the row loop starts: a call either fully succeeds
// or leaves the destination untouched.
var (
	// ErrInvalidMatrix reports degenerate colorimetry (kr + kb == 1,
	// leaving no green contribution).
	ErrInvalidMatrix = errors.New("yuv: invalid matrix: kr + kb must not equal 1")

	// ErrBufferSize reports a plane or interleaved buffer too small
	// for the declared stride, dimensions and subsampling.
	ErrBufferSize = errors.New("yuv: buffer size mismatch")

	// ErrUnsupportedBitDepth reports a bit depth outside the range a
	// conversion path supports.
	ErrUnsupportedBitDepth = errors.New("yuv: unsupported bit depth")

	// ErrNoAlpha reports a destination pixel format without an alpha
	// channel passed to an alpha-aware conversion.
	ErrNoAlpha = errors.New("yuv: pixel format has no alpha channel")
)

func sizeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBufferSize, fmt.Sprintf(format, args...))
}

// checkPlane validates one plane of width*rows samples at the given
// stride.
func checkPlane(name string, length, stride, width, rows int) error {
	if stride < width {
		return sizeErrorf("%s stride %d shorter than row width %d", name, stride, width)
	}
	if need := stride * rows; length < need {
		return sizeErrorf("%s plane holds %d samples, need at least %d", name, length, need)
	}
	return nil
}

// checkInterleaved validates an interleaved buffer of pixelBytes
// bytes per pixel.
func checkInterleaved(name string, length, stride, width, height, pixelBytes int) error {
	if stride < width*pixelBytes {
		return sizeErrorf("%s stride %d shorter than row width %d", name, stride, width*pixelBytes)
	}
	if need := stride * height; length < need {
		return sizeErrorf("%s buffer holds %d bytes, need at least %d", name, length, need)
	}
	return nil
}
