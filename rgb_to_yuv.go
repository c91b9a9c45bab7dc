package yuv

import "github.com/deepteams/yuv/internal/parallel"

// Forward (RGB family -> YUV) row kernel and planar entry points.
//
// Luma is computed for every pixel. At 4:2:2 and 4:2:0 each chroma
// sample covers a pair of horizontally adjacent pixels; the pair is
// box-averaged with (a+b+1)>>1 per channel before the chroma
// transform is applied. Averaging before the transform (rather than
// after) matches the established bitstream convention and must not be
// reordered. An odd final column pairs with itself.

const forwardPrecision = 8

// forwardKernel is the immutable per-call state shared by every row.
type forwardKernel struct {
	w      forwardWeights
	biasY  int // sample bias pre-shifted with the rounding constant folded in
	biasUV int
	minY   int
	maxY   int
	maxUV  int
	format PixelFormat
	sub    Subsampling
}

func newForwardKernel(lv levels, m Matrix, format PixelFormat, sub Subsampling) *forwardKernel {
	const rounding = 1 << (forwardPrecision - 1)
	return &forwardKernel{
		w:      forwardTransform(255, lv, m).quantize(forwardPrecision),
		biasY:  lv.biasY<<forwardPrecision + rounding,
		biasUV: lv.biasUV<<forwardPrecision + rounding,
		minY:   lv.biasY,
		maxY:   lv.biasY + lv.rangeY,
		maxUV:  lv.biasY + lv.rangeUV,
		format: format,
		sub:    sub,
	}
}

func (k *forwardKernel) luma(r, g, b int) uint8 {
	y := (r*k.w.yr + g*k.w.yg + b*k.w.yb + k.biasY) >> forwardPrecision
	return uint8(clamp(y, k.minY, k.maxY))
}

func (k *forwardKernel) chroma(r, g, b int) (cb, cr uint8) {
	cbv := (r*k.w.cbR + g*k.w.cbG + b*k.w.cbB + k.biasUV) >> forwardPrecision
	crv := (r*k.w.crR + g*k.w.crG + b*k.w.crB + k.biasUV) >> forwardPrecision
	return uint8(clamp(cbv, k.minY, k.maxUV)), uint8(clamp(crv, k.minY, k.maxUV))
}

// forwardRowScalar converts one row of interleaved pixels into a luma
// row and, when computeChroma is set, planar chroma rows.
// computeChroma is false on odd rows of 4:2:0 images; the caller's
// row pairing shares the chroma row vertically.
func forwardRowScalar(k *forwardKernel, src []byte, yRow, uRow, vRow []uint8, width int, computeChroma bool) {
	ch := k.format.Channels()
	ro, gOff, bo := k.format.rOffset(), k.format.gOffset(), k.format.bOffset()

	if k.sub == Sub444 {
		for x := 0; x < width; x++ {
			px := src[x*ch:]
			r, g, b := int(px[ro]), int(px[gOff]), int(px[bo])
			yRow[x] = k.luma(r, g, b)
			if computeChroma {
				uRow[x], vRow[x] = k.chroma(r, g, b)
			}
		}
		return
	}

	ux := 0
	for x := 0; x < width; x += 2 {
		px := src[x*ch:]
		r0, g0, b0 := int(px[ro]), int(px[gOff]), int(px[bo])
		yRow[x] = k.luma(r0, g0, b0)

		// The last column of an odd-width row pairs with itself.
		r1, g1, b1 := r0, g0, b0
		if x+1 < width {
			px := src[(x+1)*ch:]
			r1, g1, b1 = int(px[ro]), int(px[gOff]), int(px[bo])
			yRow[x+1] = k.luma(r1, g1, b1)
		}

		if computeChroma {
			uRow[ux], vRow[ux] = k.chroma((r0+r1+1)>>1, (g0+g1+1)>>1, (b0+b1+1)>>1)
		}
		ux++
	}
}

// forwardRowNVScalar is forwardRowScalar writing interleaved chroma.
func forwardRowNVScalar(k *forwardKernel, src []byte, yRow, uvRow []uint8, order NVOrder, width int, computeChroma bool) {
	ch := k.format.Channels()
	ro, gOff, bo := k.format.rOffset(), k.format.gOffset(), k.format.bOffset()
	uPos, vPos := order.uPos(), order.vPos()

	if k.sub == Sub444 {
		for x := 0; x < width; x++ {
			px := src[x*ch:]
			r, g, b := int(px[ro]), int(px[gOff]), int(px[bo])
			yRow[x] = k.luma(r, g, b)
			if computeChroma {
				cb, cr := k.chroma(r, g, b)
				uvRow[2*x+uPos] = cb
				uvRow[2*x+vPos] = cr
			}
		}
		return
	}

	ux := 0
	for x := 0; x < width; x += 2 {
		px := src[x*ch:]
		r0, g0, b0 := int(px[ro]), int(px[gOff]), int(px[bo])
		yRow[x] = k.luma(r0, g0, b0)

		r1, g1, b1 := r0, g0, b0
		if x+1 < width {
			px := src[(x+1)*ch:]
			r1, g1, b1 = int(px[ro]), int(px[gOff]), int(px[bo])
			yRow[x+1] = k.luma(r1, g1, b1)
		}

		if computeChroma {
			cb, cr := k.chroma((r0+r1+1)>>1, (g0+g1+1)>>1, (b0+b1+1)>>1)
			uvRow[ux+uPos] = cb
			uvRow[ux+vPos] = cr
		}
		ux += 2
	}
}

// RGBToPlanar converts an interleaved RGB-family buffer to planar YUV
// at the given subsampling. src holds one pixel per format.Channels()
// bytes with the given stride in bytes.
func RGBToPlanar(src []byte, srcStride int, format PixelFormat, dst *PlanarImage[uint8], sub Subsampling, r Range, m Matrix) error {
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
			forwardPlanarRow(k, src[y*srcStride:], dst.Y[y*dst.YStride:],
				dst.U[cy*dst.UStride:], dst.V[cy*dst.VStride:], dst.Width, computeChroma)
		}
	})
	return nil
}

// RGBToYUV420 converts packed RGB to planar 4:2:0 YUV.
func RGBToYUV420(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatRGB, dst, Sub420, r, m)
}

// RGBToYUV422 converts packed RGB to planar 4:2:2 YUV.
func RGBToYUV422(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatRGB, dst, Sub422, r, m)
}

// RGBToYUV444 converts packed RGB to planar 4:4:4 YUV.
func RGBToYUV444(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatRGB, dst, Sub444, r, m)
}

// RGBAToYUV420 converts interleaved RGBA to planar 4:2:0 YUV. Alpha
// is ignored.
func RGBAToYUV420(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatRGBA, dst, Sub420, r, m)
}

// RGBAToYUV422 converts interleaved RGBA to planar 4:2:2 YUV.
func RGBAToYUV422(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatRGBA, dst, Sub422, r, m)
}

// RGBAToYUV444 converts interleaved RGBA to planar 4:4:4 YUV.
func RGBAToYUV444(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatRGBA, dst, Sub444, r, m)
}

// BGRToYUV420 converts packed BGR to planar 4:2:0 YUV.
func BGRToYUV420(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatBGR, dst, Sub420, r, m)
}

// BGRAToYUV420 converts interleaved BGRA to planar 4:2:0 YUV.
func BGRAToYUV420(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatBGRA, dst, Sub420, r, m)
}

// BGRAToYUV422 converts interleaved BGRA to planar 4:2:2 YUV.
func BGRAToYUV422(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatBGRA, dst, Sub422, r, m)
}

// BGRAToYUV444 converts interleaved BGRA to planar 4:4:4 YUV.
func BGRAToYUV444(src []byte, srcStride int, dst *PlanarImage[uint8], r Range, m Matrix) error {
	return RGBToPlanar(src, srcStride, FormatBGRA, dst, Sub444, r, m)
}
