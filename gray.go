package yuv

import "github.com/deepteams/yuv/internal/parallel"

// Single-plane (YUV400) paths: luma-only encode and gray decode.

// RGBToYUV400 converts an interleaved RGB-family buffer to a single
// luma plane. Chroma is discarded.
func RGBToYUV400(src []byte, srcStride int, format PixelFormat, y []uint8, yStride, width, height int, r Range, m Matrix) error {
	if err := m.validate(); err != nil {
		return err
	}
	if err := checkPlane("Y", len(y), yStride, width, height); err != nil {
		return err
	}
	if err := checkInterleaved("src", len(src), srcStride, width, height, format.Channels()); err != nil {
		return err
	}
	k := newForwardKernel(rangeLevels(8, r), m, format, Sub444)
	parallel.Bands(height, 1, func(start, end int) {
		for row := start; row < end; row++ {
			forwardPlanarRow(k, src[row*srcStride:], y[row*yStride:], nil, nil, width, false)
		}
	})
	return nil
}

// YUV400ToRGB expands a luma plane to a gray interleaved RGB-family
// buffer. An alpha channel, when present, is filled with 255.
func YUV400ToRGB(y []uint8, yStride, width, height int, dst []byte, dstStride int, format PixelFormat, r Range, m Matrix) error {
	if err := m.validate(); err != nil {
		return err
	}
	if err := checkPlane("Y", len(y), yStride, width, height); err != nil {
		return err
	}
	if err := checkInterleaved("dst", len(dst), dstStride, width, height, format.Channels()); err != nil {
		return err
	}
	lv := rangeLevels(8, r)
	w := inverseTransform(255, lv, m).quantize(inversePrecision)
	ch := format.Channels()
	ro, gOff, bo := format.rOffset(), format.gOffset(), format.bOffset()
	parallel.Bands(height, 1, func(start, end int) {
		for row := start; row < end; row++ {
			yRow := y[row*yStride:]
			out := dst[row*dstStride:]
			for x := 0; x < width; x++ {
				yv := (int(yRow[x]) - lv.biasY) * w.y
				v := uint8(clamp((yv+inverseRounding)>>inversePrecision, 0, 255))
				px := out[x*ch:]
				px[ro] = v
				px[gOff] = v
				px[bo] = v
				if format.HasAlpha() {
					px[format.aOffset()] = 255
				}
			}
		}
	})
	return nil
}

// RGBAToYUV400 converts interleaved RGBA to a luma plane.
func RGBAToYUV400(src []byte, srcStride int, y []uint8, yStride, width, height int, r Range, m Matrix) error {
	return RGBToYUV400(src, srcStride, FormatRGBA, y, yStride, width, height, r, m)
}

// YUV400ToRGBA expands a luma plane to gray interleaved RGBA.
func YUV400ToRGBA(y []uint8, yStride, width, height int, dst []byte, dstStride int, r Range, m Matrix) error {
	return YUV400ToRGB(y, yStride, width, height, dst, dstStride, FormatRGBA, r, m)
}
