package yuv

import "github.com/deepteams/yuv/internal/parallel"

// Forward bi-planar entry points. These share the forward row kernel
// with the planar paths; only the chroma write interleaving differs.

// RGBToBiPlanar converts an interleaved RGB-family buffer to a
// bi-planar (NV-family) image with the given UV interleave order.
func RGBToBiPlanar(src []byte, srcStride int, format PixelFormat, dst *BiPlanarImage[uint8], order NVOrder, sub Subsampling, r Range, m Matrix) error {
	if err := m.validate(); err != nil {
		return err
	}
	if err := dst.check(sub); err != nil {
		return err
	}
	if err := checkInterleaved("src", len(src), srcStride, dst.Width, dst.Height, format.Channels()); err != nil {
		return err
	}
	k := newForwardKernel(rangeLevels(8, r), m, format, sub)
	align := 1
	if sub == Sub420 {
		align = 2
	}
	parallel.Bands(dst.Height, align, func(start, end int) {
		for y := start; y < end; y++ {
			cy := y
			computeChroma := true
			if sub == Sub420 {
				cy = y >> 1
				computeChroma = y&1 == 0
			}
			forwardBiPlanarRow(k, src[y*srcStride:], dst.Y[y*dst.YStride:],
				dst.UV[cy*dst.UVStride:], order, dst.Width, computeChroma)
		}
	})
	return nil
}

// RGBToNV12 converts packed RGB to NV12 (4:2:0, UV order).
func RGBToNV12(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatRGB, dst, OrderUV, Sub420, r, m)
}

// RGBToNV21 converts packed RGB to NV21 (4:2:0, VU order).
func RGBToNV21(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatRGB, dst, OrderVU, Sub420, r, m)
}

// RGBAToNV12 converts interleaved RGBA to NV12.
func RGBAToNV12(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatRGBA, dst, OrderUV, Sub420, r, m)
}

// RGBAToNV21 converts interleaved RGBA to NV21.
func RGBAToNV21(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatRGBA, dst, OrderVU, Sub420, r, m)
}

// BGRAToNV12 converts interleaved BGRA to NV12.
func BGRAToNV12(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatBGRA, dst, OrderUV, Sub420, r, m)
}

// RGBAToNV16 converts interleaved RGBA to NV16 (4:2:2, UV order).
func RGBAToNV16(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatRGBA, dst, OrderUV, Sub422, r, m)
}

// RGBAToNV61 converts interleaved RGBA to NV61 (4:2:2, VU order).
func RGBAToNV61(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatRGBA, dst, OrderVU, Sub422, r, m)
}

// RGBAToNV24 converts interleaved RGBA to NV24 (4:4:4, UV order).
func RGBAToNV24(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatRGBA, dst, OrderUV, Sub444, r, m)
}

// RGBAToNV42 converts interleaved RGBA to NV42 (4:4:4, VU order).
func RGBAToNV42(src []byte, srcStride int, dst *BiPlanarImage[uint8], r Range, m Matrix) error {
	return RGBToBiPlanar(src, srcStride, FormatRGBA, dst, OrderVU, Sub444, r, m)
}
