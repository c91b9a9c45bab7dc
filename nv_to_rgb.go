package yuv

import "github.com/deepteams/yuv/internal/parallel"

// Inverse bi-planar entry points.

// BiPlanarToRGB converts a bi-planar (NV-family) image to an
// interleaved RGB-family buffer.
func BiPlanarToRGB(src *BiPlanarImage[uint8], order NVOrder, sub Subsampling, dst []byte, dstStride int, format PixelFormat, r Range, m Matrix) error {
	if err := m.validate(); err != nil {
		return err
	}
	if err := src.check(sub); err != nil {
		return err
	}
	if err := checkInterleaved("dst", len(dst), dstStride, src.Width, src.Height, format.Channels()); err != nil {
		return err
	}
	k := newInverseKernel(rangeLevels(8, r), m, format, sub)
	parallel.Bands(src.Height, 1, func(start, end int) {
		for y := start; y < end; y++ {
			cy := y
			if sub == Sub420 {
				cy = y >> 1
			}
			inverseBiPlanarRow(k, src.Y[y*src.YStride:], src.UV[cy*src.UVStride:],
				order, dst[y*dstStride:], src.Width)
		}
	})
	return nil
}

// NV12ToRGB converts NV12 to packed RGB.
func NV12ToRGB(src *BiPlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanarToRGB(src, OrderUV, Sub420, dst, dstStride, FormatRGB, r, m)
}

// NV12ToRGBA converts NV12 to interleaved RGBA.
func NV12ToRGBA(src *BiPlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanarToRGB(src, OrderUV, Sub420, dst, dstStride, FormatRGBA, r, m)
}

// NV12ToBGRA converts NV12 to interleaved BGRA.
func NV12ToBGRA(src *BiPlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanarToRGB(src, OrderUV, Sub420, dst, dstStride, FormatBGRA, r, m)
}

// NV21ToRGBA converts NV21 to interleaved RGBA.
func NV21ToRGBA(src *BiPlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanarToRGB(src, OrderVU, Sub420, dst, dstStride, FormatRGBA, r, m)
}

// NV16ToRGBA converts NV16 (4:2:2) to interleaved RGBA.
func NV16ToRGBA(src *BiPlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanarToRGB(src, OrderUV, Sub422, dst, dstStride, FormatRGBA, r, m)
}

// NV61ToRGBA converts NV61 (4:2:2, VU order) to interleaved RGBA.
func NV61ToRGBA(src *BiPlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanarToRGB(src, OrderVU, Sub422, dst, dstStride, FormatRGBA, r, m)
}

// NV24ToRGBA converts NV24 (4:4:4) to interleaved RGBA.
func NV24ToRGBA(src *BiPlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanarToRGB(src, OrderUV, Sub444, dst, dstStride, FormatRGBA, r, m)
}

// NV42ToRGBA converts NV42 (4:4:4, VU order) to interleaved RGBA.
func NV42ToRGBA(src *BiPlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanarToRGB(src, OrderVU, Sub444, dst, dstStride, FormatRGBA, r, m)
}
