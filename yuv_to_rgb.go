package yuv

import "github.com/deepteams/yuv/internal/parallel"

// Inverse (YUV -> RGB family) row kernel and planar entry points.
//
// At 4:2:2 and 4:2:0 one chroma sample services two adjacent output
// pixels directly; there is no re-averaging on decode. Encode applies
// the chroma box filter exactly once, so the decode side must reuse
// the decimated value as-is to stay compatible with the usual
// bitstream conventions.

const (
	inversePrecision = 6
	inverseRounding  = 1 << (inversePrecision - 1)
)

// inverseKernel is the immutable per-call state shared by every row.
type inverseKernel struct {
	w      inverseWeights
	biasY  int
	biasUV int
	format PixelFormat
	sub    Subsampling
}

func newInverseKernel(lv levels, m Matrix, format PixelFormat, sub Subsampling) *inverseKernel {
	return &inverseKernel{
		w:      inverseTransform(255, lv, m).quantize(inversePrecision),
		biasY:  lv.biasY,
		biasUV: lv.biasUV,
		format: format,
		sub:    sub,
	}
}

// store reconstructs one pixel. yv is the bias-subtracted luma
// already multiplied by the luma coefficient; cb and cr are
// bias-subtracted chroma samples.
func (k *inverseKernel) store(dst []byte, yv, cb, cr int, alpha uint8) {
	r := clamp((yv+k.w.cr*cr+inverseRounding)>>inversePrecision, 0, 255)
	b := clamp((yv+k.w.cb*cb+inverseRounding)>>inversePrecision, 0, 255)
	g := clamp((yv-k.w.g1*cr-k.w.g2*cb+inverseRounding)>>inversePrecision, 0, 255)
	dst[k.format.rOffset()] = uint8(r)
	dst[k.format.gOffset()] = uint8(g)
	dst[k.format.bOffset()] = uint8(b)
	if k.format.HasAlpha() {
		dst[k.format.aOffset()] = alpha
	}
}

// storePremultiplied is store with the color channels scaled by
// alpha/255 using the correctly-rounded integer division. Alpha
// itself is written unpremultiplied.
func (k *inverseKernel) storePremultiplied(dst []byte, yv, cb, cr int, alpha uint8) {
	r := clamp((yv+k.w.cr*cr+inverseRounding)>>inversePrecision, 0, 255)
	b := clamp((yv+k.w.cb*cb+inverseRounding)>>inversePrecision, 0, 255)
	g := clamp((yv-k.w.g1*cr-k.w.g2*cb+inverseRounding)>>inversePrecision, 0, 255)
	a := int(alpha)
	dst[k.format.rOffset()] = premul255(r, a)
	dst[k.format.gOffset()] = premul255(g, a)
	dst[k.format.bOffset()] = premul255(b, a)
	dst[k.format.aOffset()] = alpha
}

// premul255 computes round(v*a/255) without a division.
func premul255(v, a int) uint8 {
	t := v*a + 128
	return uint8((t + (t >> 8)) >> 8)
}

// inverseRowScalar reconstructs one interleaved destination row from
// planar Y/U/V rows. For 4:2:0 the caller passes the same chroma rows
// for both rows of a pair.
func inverseRowScalar(k *inverseKernel, yRow, uRow, vRow []uint8, dst []byte, width int) {
	ch := k.format.Channels()

	if k.sub == Sub444 {
		for x := 0; x < width; x++ {
			yv := (int(yRow[x]) - k.biasY) * k.w.y
			k.store(dst[x*ch:], yv, int(uRow[x])-k.biasUV, int(vRow[x])-k.biasUV, 255)
		}
		return
	}

	ux := 0
	for x := 0; x < width; x += 2 {
		cb := int(uRow[ux]) - k.biasUV
		cr := int(vRow[ux]) - k.biasUV
		yv := (int(yRow[x]) - k.biasY) * k.w.y
		k.store(dst[x*ch:], yv, cb, cr, 255)
		if x+1 < width {
			yv := (int(yRow[x+1]) - k.biasY) * k.w.y
			k.store(dst[(x+1)*ch:], yv, cb, cr, 255)
		}
		ux++
	}
}

// inverseRowNVScalar is inverseRowScalar reading interleaved chroma.
func inverseRowNVScalar(k *inverseKernel, yRow, uvRow []uint8, order NVOrder, dst []byte, width int) {
	ch := k.format.Channels()
	uPos, vPos := order.uPos(), order.vPos()

	if k.sub == Sub444 {
		for x := 0; x < width; x++ {
			yv := (int(yRow[x]) - k.biasY) * k.w.y
			cb := int(uvRow[2*x+uPos]) - k.biasUV
			cr := int(uvRow[2*x+vPos]) - k.biasUV
			k.store(dst[x*ch:], yv, cb, cr, 255)
		}
		return
	}

	ux := 0
	for x := 0; x < width; x += 2 {
		cb := int(uvRow[ux+uPos]) - k.biasUV
		cr := int(uvRow[ux+vPos]) - k.biasUV
		yv := (int(yRow[x]) - k.biasY) * k.w.y
		k.store(dst[x*ch:], yv, cb, cr, 255)
		if x+1 < width {
			yv := (int(yRow[x+1]) - k.biasY) * k.w.y
			k.store(dst[(x+1)*ch:], yv, cb, cr, 255)
		}
		ux += 2
	}
}

// inverseRowAlphaScalar reconstructs one row with per-pixel alpha
// from a separate plane, optionally premultiplying the color
// channels.
func inverseRowAlphaScalar(k *inverseKernel, yRow, uRow, vRow, aRow []uint8, dst []byte, width int, premultiply bool) {
	ch := k.format.Channels()
	put := k.store
	if premultiply {
		put = k.storePremultiplied
	}

	if k.sub == Sub444 {
		for x := 0; x < width; x++ {
			yv := (int(yRow[x]) - k.biasY) * k.w.y
			put(dst[x*ch:], yv, int(uRow[x])-k.biasUV, int(vRow[x])-k.biasUV, aRow[x])
		}
		return
	}

	ux := 0
	for x := 0; x < width; x += 2 {
		cb := int(uRow[ux]) - k.biasUV
		cr := int(vRow[ux]) - k.biasUV
		yv := (int(yRow[x]) - k.biasY) * k.w.y
		put(dst[x*ch:], yv, cb, cr, aRow[x])
		if x+1 < width {
			yv := (int(yRow[x+1]) - k.biasY) * k.w.y
			put(dst[(x+1)*ch:], yv, cb, cr, aRow[x+1])
		}
		ux++
	}
}

// PlanarToRGB converts a planar YUV image to an interleaved
// RGB-family buffer. When the destination format has an alpha channel
// it is filled with 255.
func PlanarToRGB(src *PlanarImage[uint8], sub Subsampling, dst []byte, dstStride int, format PixelFormat, r Range, m Matrix) error {
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
			inversePlanarRow(k, src.Y[y*src.YStride:], src.U[cy*src.UStride:],
				src.V[cy*src.VStride:], dst[y*dstStride:], src.Width)
		}
	})
	return nil
}

// PlanarToRGBWithAlpha converts a planar YUV image plus a full-size
// alpha plane to an interleaved buffer whose format must carry alpha.
// When premultiply is set, color channels are scaled by alpha/255.
func PlanarToRGBWithAlpha(src *PlanarImage[uint8], sub Subsampling, alpha []byte, alphaStride int, dst []byte, dstStride int, format PixelFormat, premultiply bool, r Range, m Matrix) error {
	if !format.HasAlpha() {
		return ErrNoAlpha
	}
	if err := m.validate(); err != nil {
		return err
	}
	if err := src.check(sub); err != nil {
		return err
	}
	if err := checkPlane("alpha", len(alpha), alphaStride, src.Width, src.Height); err != nil {
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
			inverseAlphaRow(k, src.Y[y*src.YStride:], src.U[cy*src.UStride:],
				src.V[cy*src.VStride:], alpha[y*alphaStride:], dst[y*dstStride:], src.Width, premultiply)
		}
	})
	return nil
}

// YUV420ToRGB converts planar 4:2:0 YUV to packed RGB.
func YUV420ToRGB(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub420, dst, dstStride, FormatRGB, r, m)
}

// YUV420ToRGBA converts planar 4:2:0 YUV to interleaved RGBA.
func YUV420ToRGBA(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub420, dst, dstStride, FormatRGBA, r, m)
}

// YUV420ToBGRA converts planar 4:2:0 YUV to interleaved BGRA.
func YUV420ToBGRA(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub420, dst, dstStride, FormatBGRA, r, m)
}

// YUV422ToRGB converts planar 4:2:2 YUV to packed RGB.
func YUV422ToRGB(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub422, dst, dstStride, FormatRGB, r, m)
}

// YUV422ToRGBA converts planar 4:2:2 YUV to interleaved RGBA.
func YUV422ToRGBA(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub422, dst, dstStride, FormatRGBA, r, m)
}

// YUV422ToBGRA converts planar 4:2:2 YUV to interleaved BGRA.
func YUV422ToBGRA(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub422, dst, dstStride, FormatBGRA, r, m)
}

// YUV444ToRGB converts planar 4:4:4 YUV to packed RGB.
func YUV444ToRGB(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub444, dst, dstStride, FormatRGB, r, m)
}

// YUV444ToRGBA converts planar 4:4:4 YUV to interleaved RGBA.
func YUV444ToRGBA(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub444, dst, dstStride, FormatRGBA, r, m)
}

// YUV444ToBGRA converts planar 4:4:4 YUV to interleaved BGRA.
func YUV444ToBGRA(src *PlanarImage[uint8], dst []byte, dstStride int, r Range, m Matrix) error {
	return PlanarToRGB(src, Sub444, dst, dstStride, FormatBGRA, r, m)
}

// YUV420WithAlphaToRGBA converts planar 4:2:0 YUV plus an alpha plane
// to interleaved RGBA.
func YUV420WithAlphaToRGBA(src *PlanarImage[uint8], alpha []byte, alphaStride int, dst []byte, dstStride int, premultiply bool, r Range, m Matrix) error {
	return PlanarToRGBWithAlpha(src, Sub420, alpha, alphaStride, dst, dstStride, FormatRGBA, premultiply, r, m)
}

// YUV422WithAlphaToRGBA converts planar 4:2:2 YUV plus an alpha plane
// to interleaved RGBA.
func YUV422WithAlphaToRGBA(src *PlanarImage[uint8], alpha []byte, alphaStride int, dst []byte, dstStride int, premultiply bool, r Range, m Matrix) error {
	return PlanarToRGBWithAlpha(src, Sub422, alpha, alphaStride, dst, dstStride, FormatRGBA, premultiply, r, m)
}

// YUV444WithAlphaToRGBA converts planar 4:4:4 YUV plus an alpha plane
// to interleaved RGBA.
func YUV444WithAlphaToRGBA(src *PlanarImage[uint8], alpha []byte, alphaStride int, dst []byte, dstStride int, premultiply bool, r Range, m Matrix) error {
	return PlanarToRGBWithAlpha(src, Sub444, alpha, alphaStride, dst, dstStride, FormatRGBA, premultiply, r, m)
}
