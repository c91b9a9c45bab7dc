package yuv

import (
	"encoding/binary"
	"math/bits"

	"github.com/deepteams/yuv/internal/parallel"
)

// High-bit-depth storage adapter: planar and bi-planar YUV held in
// 16-bit words carrying 10/12-bit (up to 16-bit) samples, converted
// to 8-bit interleaved RGB-family output.
//
// Every stored word is normalized before any arithmetic: the raw
// bytes are reinterpreted per the declared endianness, then samples
// justified into the most significant bits are shifted down by
// 16-depth.

// hostBigEndian reports the byte order the []uint16 planes are held
// in by this process.
var hostBigEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x02}) == 0x0102

type highDepthKernel struct {
	w          inverseWeights
	biasY      int
	biasUV     int
	storeShift uint // inversePrecision + depth - 8, back to 8-bit output
	msbShift   uint
	swap       bool // stored byte order differs from host order
	msb        bool
	format     PixelFormat
	sub        Subsampling
}

func newHighDepthKernel(depth int, r Range, m Matrix, e Endianness, p BytePacking, format PixelFormat, sub Subsampling) *highDepthKernel {
	lv := rangeLevels(depth, r)
	maxSample := (1 << depth) - 1
	return &highDepthKernel{
		w:          inverseTransform(maxSample, lv, m).quantize(inversePrecision),
		biasY:      lv.biasY,
		biasUV:     lv.biasUV,
		storeShift: inversePrecision + uint(depth) - 8,
		msbShift:   uint(16 - depth),
		swap:       (e == BigEndian) != hostBigEndian,
		msb:        p == PackMostSignificant,
		format:     format,
		sub:        sub,
	}
}

// sample normalizes one stored word to its effective N-bit value.
func (k *highDepthKernel) sample(v uint16) int {
	if k.swap {
		v = bits.ReverseBytes16(v)
	}
	if k.msb {
		v >>= k.msbShift
	}
	return int(v)
}

func (k *highDepthKernel) store(dst []byte, yv, cb, cr int) {
	rounding := 1 << (k.storeShift - 1)
	r := clamp((yv+k.w.cr*cr+rounding)>>k.storeShift, 0, 255)
	b := clamp((yv+k.w.cb*cb+rounding)>>k.storeShift, 0, 255)
	g := clamp((yv-k.w.g1*cr-k.w.g2*cb+rounding)>>k.storeShift, 0, 255)
	dst[k.format.rOffset()] = uint8(r)
	dst[k.format.gOffset()] = uint8(g)
	dst[k.format.bOffset()] = uint8(b)
	if k.format.HasAlpha() {
		dst[k.format.aOffset()] = 255
	}
}

func highDepthRow(k *highDepthKernel, yRow, uRow, vRow []uint16, dst []byte, width int) {
	ch := k.format.Channels()

	if k.sub == Sub444 {
		for x := 0; x < width; x++ {
			yv := (k.sample(yRow[x]) - k.biasY) * k.w.y
			k.store(dst[x*ch:], yv, k.sample(uRow[x])-k.biasUV, k.sample(vRow[x])-k.biasUV)
		}
		return
	}

	ux := 0
	for x := 0; x < width; x += 2 {
		cb := k.sample(uRow[ux]) - k.biasUV
		cr := k.sample(vRow[ux]) - k.biasUV
		yv := (k.sample(yRow[x]) - k.biasY) * k.w.y
		k.store(dst[x*ch:], yv, cb, cr)
		if x+1 < width {
			yv := (k.sample(yRow[x+1]) - k.biasY) * k.w.y
			k.store(dst[(x+1)*ch:], yv, cb, cr)
		}
		ux++
	}
}

func highDepthRowNV(k *highDepthKernel, yRow, uvRow []uint16, order NVOrder, dst []byte, width int) {
	ch := k.format.Channels()
	uPos, vPos := order.uPos(), order.vPos()

	if k.sub == Sub444 {
		for x := 0; x < width; x++ {
			yv := (k.sample(yRow[x]) - k.biasY) * k.w.y
			cb := k.sample(uvRow[2*x+uPos]) - k.biasUV
			cr := k.sample(uvRow[2*x+vPos]) - k.biasUV
			k.store(dst[x*ch:], yv, cb, cr)
		}
		return
	}

	ux := 0
	for x := 0; x < width; x += 2 {
		cb := k.sample(uvRow[ux+uPos]) - k.biasUV
		cr := k.sample(uvRow[ux+vPos]) - k.biasUV
		yv := (k.sample(yRow[x]) - k.biasY) * k.w.y
		k.store(dst[x*ch:], yv, cb, cr)
		if x+1 < width {
			yv := (k.sample(yRow[x+1]) - k.biasY) * k.w.y
			k.store(dst[(x+1)*ch:], yv, cb, cr)
		}
		ux += 2
	}
}

func checkDepth(depth int) error {
	if depth < 8 || depth > 16 {
		return ErrUnsupportedBitDepth
	}
	return nil
}

// Planar16ToRGB converts a high-bit-depth planar YUV image to 8-bit
// interleaved output. depth is the effective bits per sample (8-16);
// e and p describe how samples sit inside their 16-bit storage words.
func Planar16ToRGB(src *PlanarImage[uint16], sub Subsampling, depth int, e Endianness, p BytePacking, dst []byte, dstStride int, format PixelFormat, r Range, m Matrix) error {
	if err := checkDepth(depth); err != nil {
		return err
	}
	if err := m.validate(); err != nil {
		return err
	}
	if err := src.check(sub); err != nil {
		return err
	}
	if err := checkInterleaved("dst", len(dst), dstStride, src.Width, src.Height, format.Channels()); err != nil {
		return err
	}
	k := newHighDepthKernel(depth, r, m, e, p, format, sub)
	parallel.Bands(src.Height, 1, func(start, end int) {
		for y := start; y < end; y++ {
			cy := y
			if sub == Sub420 {
				cy = y >> 1
			}
			highDepthRow(k, src.Y[y*src.YStride:], src.U[cy*src.UStride:],
				src.V[cy*src.VStride:], dst[y*dstStride:], src.Width)
		}
	})
	return nil
}

// BiPlanar16ToRGB converts a high-bit-depth bi-planar (NV-family)
// image to 8-bit interleaved output.
func BiPlanar16ToRGB(src *BiPlanarImage[uint16], order NVOrder, sub Subsampling, depth int, e Endianness, p BytePacking, dst []byte, dstStride int, format PixelFormat, r Range, m Matrix) error {
	if err := checkDepth(depth); err != nil {
		return err
	}
	if err := m.validate(); err != nil {
		return err
	}
	if err := src.check(sub); err != nil {
		return err
	}
	if err := checkInterleaved("dst", len(dst), dstStride, src.Width, src.Height, format.Channels()); err != nil {
		return err
	}
	k := newHighDepthKernel(depth, r, m, e, p, format, sub)
	parallel.Bands(src.Height, 1, func(start, end int) {
		for y := start; y < end; y++ {
			cy := y
			if sub == Sub420 {
				cy = y >> 1
			}
			highDepthRowNV(k, src.Y[y*src.YStride:], src.UV[cy*src.UVStride:],
				order, dst[y*dstStride:], src.Width)
		}
	})
	return nil
}

// YUV420P10ToRGBA converts little-endian LSB-packed 10-bit 4:2:0 YUV
// to interleaved RGBA.
func YUV420P10ToRGBA(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB(src, Sub420, 10, LittleEndian, PackLeastSignificant, dst, dstStride, FormatRGBA, r, m)
}

// YUV420P10ToBGRA converts little-endian LSB-packed 10-bit 4:2:0 YUV
// to interleaved BGRA.
func YUV420P10ToBGRA(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB(src, Sub420, 10, LittleEndian, PackLeastSignificant, dst, dstStride, FormatBGRA, r, m)
}

// YUV422P10ToRGBA converts little-endian LSB-packed 10-bit 4:2:2 YUV
// to interleaved RGBA.
func YUV422P10ToRGBA(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB(src, Sub422, 10, LittleEndian, PackLeastSignificant, dst, dstStride, FormatRGBA, r, m)
}

// YUV444P10ToRGBA converts little-endian LSB-packed 10-bit 4:4:4 YUV
// to interleaved RGBA.
func YUV444P10ToRGBA(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB(src, Sub444, 10, LittleEndian, PackLeastSignificant, dst, dstStride, FormatRGBA, r, m)
}

// YUV420P12ToRGBA converts little-endian LSB-packed 12-bit 4:2:0 YUV
// to interleaved RGBA.
func YUV420P12ToRGBA(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB(src, Sub420, 12, LittleEndian, PackLeastSignificant, dst, dstStride, FormatRGBA, r, m)
}

// NV12P10ToRGBA converts little-endian MSB-justified 10-bit NV12 (the
// Apple and Android HDR camera layout) to interleaved RGBA.
func NV12P10ToRGBA(src *BiPlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanar16ToRGB(src, OrderUV, Sub420, 10, LittleEndian, PackMostSignificant, dst, dstStride, FormatRGBA, r, m)
}

// NV12P10ToBGRA converts little-endian MSB-justified 10-bit NV12 to
// interleaved BGRA.
func NV12P10ToBGRA(src *BiPlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return BiPlanar16ToRGB(src, OrderUV, Sub420, 10, LittleEndian, PackMostSignificant, dst, dstStride, FormatBGRA, r, m)
}
