package yuv

import (
	"encoding/binary"
	"math/bits"

	"github.com/deepteams/yuv/internal/parallel"
)

// Packed 10-bit RGB output (AR30 / RA30): three 10-bit channels plus
// a 2-bit alpha field in one 32-bit word, following the Apple/Android
// 10-10-10-2 conventions. Reconstruction runs at a higher fixed-point
// precision than the 8-bit paths to keep the error inside the 10-bit
// channel domain.

const (
	rgb30Precision = 13
	rgb30Max       = (1 << 10) - 1
)

// RGB30Layout selects the channel order of the packed word.
type RGB30Layout int

const (
	// LayoutAR30 stores alpha in the top two bits:
	// a:2 b:10 g:10 r:10 from most to least significant.
	LayoutAR30 RGB30Layout = iota
	// LayoutRA30 stores alpha in the bottom two bits:
	// r:10 g:10 b:10 a:2 from most to least significant.
	LayoutRA30
)

// pack assembles one fully opaque packed word from 10-bit channels.
func (l RGB30Layout) pack(r, g, b int) uint32 {
	if l == LayoutRA30 {
		return uint32(r)<<22 | uint32(g)<<12 | uint32(b)<<2 | 3
	}
	return 3<<30 | uint32(b)<<20 | uint32(g)<<10 | uint32(r)
}

// RGB30ByteOrder is the byte order of the packed 32-bit word in the
// destination buffer.
type RGB30ByteOrder int

const (
	// ByteOrderHost stores the word in the processor's native order.
	ByteOrderHost RGB30ByteOrder = iota
	// ByteOrderNetwork stores the word big-endian.
	ByteOrderNetwork
)

func (o RGB30ByteOrder) put(dst []byte, v uint32) {
	if o == ByteOrderNetwork {
		binary.BigEndian.PutUint32(dst, v)
		return
	}
	binary.NativeEndian.PutUint32(dst, v)
}

type rgb30Kernel struct {
	w        inverseWeights
	biasY    int
	biasUV   int
	msbShift uint
	swap     bool
	msb      bool
	layout   RGB30Layout
	order    RGB30ByteOrder
	sub      Subsampling
}

func newRGB30Kernel(depth int, r Range, m Matrix, e Endianness, p BytePacking, layout RGB30Layout, order RGB30ByteOrder, sub Subsampling) (*rgb30Kernel, uint) {
	lv := rangeLevels(depth, r)
	maxSample := (1 << depth) - 1
	// Scale factor 2^(10-depth) lifts the source into the 10-bit
	// channel domain; it is folded into the shift below the chosen
	// precision.
	precision := rgb30Precision - uint(10-depth)
	return &rgb30Kernel{
		w:        inverseTransform(maxSample, lv, m).quantize(rgb30Precision),
		biasY:    lv.biasY,
		biasUV:   lv.biasUV,
		msbShift: uint(16 - depth),
		swap:     (e == BigEndian) != hostBigEndian,
		msb:      p == PackMostSignificant,
		layout:   layout,
		order:    order,
		sub:      sub,
	}, precision
}

func (k *rgb30Kernel) sample(v uint16) int {
	if k.swap {
		v = bits.ReverseBytes16(v)
	}
	if k.msb {
		v >>= k.msbShift
	}
	return int(v)
}

func (k *rgb30Kernel) store(dst []byte, yv, cb, cr int, precision uint) {
	r := qrshr(yv+k.w.cr*cr, rgb30Max, precision)
	b := qrshr(yv+k.w.cb*cb, rgb30Max, precision)
	g := qrshr(yv-k.w.g1*cr-k.w.g2*cb, rgb30Max, precision)
	k.order.put(dst, k.layout.pack(r, g, b))
}

func rgb30Row(k *rgb30Kernel, precision uint, yRow, uRow, vRow []uint16, dst []byte, width int) {
	if k.sub == Sub444 {
		for x := 0; x < width; x++ {
			yv := (k.sample(yRow[x]) - k.biasY) * k.w.y
			k.store(dst[x*4:], yv, k.sample(uRow[x])-k.biasUV, k.sample(vRow[x])-k.biasUV, precision)
		}
		return
	}

	ux := 0
	for x := 0; x < width; x += 2 {
		cb := k.sample(uRow[ux]) - k.biasUV
		cr := k.sample(vRow[ux]) - k.biasUV
		yv := (k.sample(yRow[x]) - k.biasY) * k.w.y
		k.store(dst[x*4:], yv, cb, cr, precision)
		if x+1 < width {
			yv := (k.sample(yRow[x+1]) - k.biasY) * k.w.y
			k.store(dst[(x+1)*4:], yv, cb, cr, precision)
		}
		ux++
	}
}

// Planar16ToRGB30 converts high-bit-depth planar YUV to packed
// 10-10-10-2 output. Only source depths 8, 10 and 12 are supported.
func Planar16ToRGB30(src *PlanarImage[uint16], sub Subsampling, depth int, e Endianness, p BytePacking, layout RGB30Layout, order RGB30ByteOrder, dst []byte, dstStride int, r Range, m Matrix) error {
	if depth != 8 && depth != 10 && depth != 12 {
		return ErrUnsupportedBitDepth
	}
	if err := m.validate(); err != nil {
		return err
	}
	if err := src.check(sub); err != nil {
		return err
	}
	if err := checkInterleaved("dst", len(dst), dstStride, src.Width, src.Height, 4); err != nil {
		return err
	}
	k, precision := newRGB30Kernel(depth, r, m, e, p, layout, order, sub)
	parallel.Bands(src.Height, 1, func(start, end int) {
		for y := start; y < end; y++ {
			cy := y
			if sub == Sub420 {
				cy = y >> 1
			}
			rgb30Row(k, precision, src.Y[y*src.YStride:], src.U[cy*src.UStride:],
				src.V[cy*src.VStride:], dst[y*dstStride:], src.Width)
		}
	})
	return nil
}

// YUV420P10ToAR30 converts little-endian LSB-packed 10-bit 4:2:0 YUV
// to host-order AR30.
func YUV420P10ToAR30(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB30(src, Sub420, 10, LittleEndian, PackLeastSignificant, LayoutAR30, ByteOrderHost, dst, dstStride, r, m)
}

// YUV422P10ToAR30 converts little-endian LSB-packed 10-bit 4:2:2 YUV
// to host-order AR30.
func YUV422P10ToAR30(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB30(src, Sub422, 10, LittleEndian, PackLeastSignificant, LayoutAR30, ByteOrderHost, dst, dstStride, r, m)
}

// YUV444P10ToAR30 converts little-endian LSB-packed 10-bit 4:4:4 YUV
// to host-order AR30.
func YUV444P10ToAR30(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB30(src, Sub444, 10, LittleEndian, PackLeastSignificant, LayoutAR30, ByteOrderHost, dst, dstStride, r, m)
}

// YUV420P10ToRA30 converts little-endian LSB-packed 10-bit 4:2:0 YUV
// to host-order RA30.
func YUV420P10ToRA30(src *PlanarImage[uint16], dst []byte, dstStride int, r Range, m Matrix) error {
	return Planar16ToRGB30(src, Sub420, 10, LittleEndian, PackLeastSignificant, LayoutRA30, ByteOrderHost, dst, dstStride, r, m)
}
