// Package yuv converts image buffers between YUV planar, bi-planar
// and packed color encodings and interleaved RGB-family formats.
//
// The package operates on caller-provided planes with explicit
// strides; no intermediate image representation is allocated. All
// conversions derive their fixed-point transform from ITU-R
// colorimetry primaries (BT.601, BT.709, BT.2020, SMPTE 240M or
// custom kr/kb) and a limited (TV) or full sample range, then walk
// the image row by row through integer row kernels.
package yuv

import "math"

// Range selects between the limited (TV) excursion and the full
// representable sample range.
type Range int

const (
	// RangeLimited is the TV range: Y in [16, 235] and chroma in
	// [16, 240] at 8 bits, scaled by 2^(depth-8) at higher depths.
	RangeLimited Range = iota
	// RangeFull uses the whole [0, 2^depth-1] range. JPEG-style YUV is
	// BT601 with RangeFull.
	RangeFull
)

// Matrix holds the colorimetry primaries kr and kb. The green
// coefficient is implied: kg = 1 - kr - kb and must be non-zero.
type Matrix struct {
	Kr float64
	Kb float64
}

// Standard ITU-R matrices.
var (
	BT601    = Matrix{Kr: 0.2990, Kb: 0.1140}
	BT709    = Matrix{Kr: 0.2126, Kb: 0.0722}
	BT2020   = Matrix{Kr: 0.2627, Kb: 0.0593}
	SMPTE240 = Matrix{Kr: 0.0870, Kb: 0.2120}
	BT470    = Matrix{Kr: 0.2220, Kb: 0.0713}
)

func (m Matrix) kg() float64 { return 1 - m.Kr - m.Kb }

// validate rejects degenerate primaries before any transform math.
// kg is compared against an epsilon: Kr+Kb summing to 1 leaves a
// float rounding residue rather than an exact zero.
func (m Matrix) validate() error {
	if math.Abs(m.kg()) < 1e-9 {
		return ErrInvalidMatrix
	}
	return nil
}

// Subsampling is the chroma decimation scheme.
type Subsampling int

const (
	Sub420 Subsampling = iota // chroma halved horizontally and vertically
	Sub422                    // chroma halved horizontally
	Sub444                    // chroma at full resolution
)

// chromaWidth returns the number of chroma samples per row.
func (s Subsampling) chromaWidth(width int) int {
	if s == Sub444 {
		return width
	}
	return (width + 1) / 2
}

// chromaRows returns the number of chroma rows.
func (s Subsampling) chromaRows(height int) int {
	if s == Sub420 {
		return (height + 1) / 2
	}
	return height
}

func (s Subsampling) String() string {
	switch s {
	case Sub420:
		return "4:2:0"
	case Sub422:
		return "4:2:2"
	case Sub444:
		return "4:4:4"
	}
	return "unknown"
}

// PixelFormat is the channel order of an interleaved RGB-family
// buffer.
type PixelFormat int

const (
	FormatRGB PixelFormat = iota
	FormatBGR
	FormatRGBA
	FormatBGRA
)

// Channels returns the number of bytes per pixel.
func (f PixelFormat) Channels() int {
	switch f {
	case FormatRGB, FormatBGR:
		return 3
	default:
		return 4
	}
}

// HasAlpha reports whether the format carries an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	return f == FormatRGBA || f == FormatBGRA
}

func (f PixelFormat) rOffset() int {
	if f == FormatBGR || f == FormatBGRA {
		return 2
	}
	return 0
}

func (f PixelFormat) gOffset() int { return 1 }

func (f PixelFormat) bOffset() int {
	if f == FormatBGR || f == FormatBGRA {
		return 0
	}
	return 2
}

// aOffset is only meaningful when HasAlpha reports true.
func (f PixelFormat) aOffset() int { return 3 }

func (f PixelFormat) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatBGR:
		return "bgr"
	case FormatRGBA:
		return "rgba"
	case FormatBGRA:
		return "bgra"
	}
	return "unknown"
}

// NVOrder is the interleave order of the chroma plane in bi-planar
// (NV-family) layouts.
type NVOrder int

const (
	OrderUV NVOrder = iota // NV12 / NV16 / NV24
	OrderVU                // NV21 / NV61 / NV42
)

func (o NVOrder) uPos() int {
	if o == OrderVU {
		return 1
	}
	return 0
}

func (o NVOrder) vPos() int {
	if o == OrderVU {
		return 0
	}
	return 1
}

// Endianness declares the byte order of 16-bit stored samples.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

// BytePacking declares where the significant bits of an N-bit sample
// sit within its 16-bit storage word. Apple and Android HDR camera
// streams justify samples into the most significant bits.
type BytePacking int

const (
	PackMostSignificant BytePacking = iota
	PackLeastSignificant
)

// PackedFormat is a packed 4:2:2 byte layout: four bytes per pixel
// pair, differing only in the position of Y0, Y1, U and V.
type PackedFormat int

const (
	FormatYUYV PackedFormat = iota
	FormatUYVY
	FormatYVYU
	FormatVYUY
)

func (f PackedFormat) y0Pos() int {
	if f == FormatUYVY || f == FormatVYUY {
		return 1
	}
	return 0
}

func (f PackedFormat) y1Pos() int {
	if f == FormatUYVY || f == FormatVYUY {
		return 3
	}
	return 2
}

func (f PackedFormat) uPos() int {
	switch f {
	case FormatYUYV:
		return 1
	case FormatUYVY:
		return 0
	case FormatYVYU:
		return 3
	default: // VYUY
		return 2
	}
}

func (f PackedFormat) vPos() int {
	switch f {
	case FormatYUYV:
		return 3
	case FormatUYVY:
		return 2
	case FormatYVYU:
		return 1
	default: // VYUY
		return 0
	}
}

func (f PackedFormat) String() string {
	switch f {
	case FormatYUYV:
		return "yuyv"
	case FormatUYVY:
		return "uyvy"
	case FormatYVYU:
		return "yvyu"
	case FormatVYUY:
		return "vyuy"
	}
	return "unknown"
}

// Sample constrains the storage types a plane may use: 8-bit samples,
// or 16-bit words holding 10/12/16-bit samples.
type Sample interface {
	~uint8 | ~uint16
}

// PlanarImage is a three-plane YUV image borrowed from the caller.
// Strides are in samples, not bytes.
type PlanarImage[T Sample] struct {
	Y       []T
	YStride int
	U       []T
	UStride int
	V       []T
	VStride int
	Width   int
	Height  int
}

// NewPlanarImage allocates contiguous planes sized for the given
// dimensions and subsampling.
func NewPlanarImage[T Sample](width, height int, sub Subsampling) *PlanarImage[T] {
	cw := sub.chromaWidth(width)
	ch := sub.chromaRows(height)
	return &PlanarImage[T]{
		Y:       make([]T, width*height),
		YStride: width,
		U:       make([]T, cw*ch),
		UStride: cw,
		V:       make([]T, cw*ch),
		VStride: cw,
		Width:   width,
		Height:  height,
	}
}

// check validates plane lengths against strides and subsampling. It
// runs before any pixel is touched so a failed call never produces a
// partial write.
func (p *PlanarImage[T]) check(sub Subsampling) error {
	if p.Width <= 0 || p.Height <= 0 {
		return sizeErrorf("image dimensions %dx%d", p.Width, p.Height)
	}
	if err := checkPlane("Y", len(p.Y), p.YStride, p.Width, p.Height); err != nil {
		return err
	}
	cw := sub.chromaWidth(p.Width)
	ch := sub.chromaRows(p.Height)
	if err := checkPlane("U", len(p.U), p.UStride, cw, ch); err != nil {
		return err
	}
	return checkPlane("V", len(p.V), p.VStride, cw, ch)
}

// BiPlanarImage is a two-plane (NV-family) YUV image: a luma plane
// and one interleaved chroma plane holding two samples per chroma
// position. Strides are in samples.
type BiPlanarImage[T Sample] struct {
	Y        []T
	YStride  int
	UV       []T
	UVStride int
	Width    int
	Height   int
}

// NewBiPlanarImage allocates contiguous planes sized for the given
// dimensions and subsampling.
func NewBiPlanarImage[T Sample](width, height int, sub Subsampling) *BiPlanarImage[T] {
	cw := sub.chromaWidth(width)
	ch := sub.chromaRows(height)
	return &BiPlanarImage[T]{
		Y:        make([]T, width*height),
		YStride:  width,
		UV:       make([]T, 2*cw*ch),
		UVStride: 2 * cw,
		Width:    width,
		Height:   height,
	}
}

func (p *BiPlanarImage[T]) check(sub Subsampling) error {
	if p.Width <= 0 || p.Height <= 0 {
		return sizeErrorf("image dimensions %dx%d", p.Width, p.Height)
	}
	if err := checkPlane("Y", len(p.Y), p.YStride, p.Width, p.Height); err != nil {
		return err
	}
	cw := sub.chromaWidth(p.Width)
	ch := sub.chromaRows(p.Height)
	return checkPlane("UV", len(p.UV), p.UVStride, 2*cw, ch)
}
