package yuv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToYUV444PureRed(t *testing.T) {
	const w, h = 4, 4
	src := solidImage(w, h, FormatRGB, 255, 0, 0, 255)
	dst := NewPlanarImage[uint8](w, h, Sub444)

	require.NoError(t, RGBToYUV444(src, w*3, dst, RangeFull, BT601))

	// 255*77+128 >> 8 = 77; Cr saturates at the full-range ceiling.
	assert.Equal(t, uint8(77), dst.Y[0])
	assert.Equal(t, uint8(85), dst.U[0])
	assert.Equal(t, uint8(255), dst.V[0])
}

func TestRGBToYUV444Achromatic(t *testing.T) {
	// Gray input lands both chroma planes on the midpoint.
	const w, h = 2, 2
	for _, v := range []uint8{0, 64, 128, 200, 255} {
		src := solidImage(w, h, FormatRGB, v, v, v, 255)
		dst := NewPlanarImage[uint8](w, h, Sub444)
		require.NoError(t, RGBToYUV444(src, w*3, dst, RangeFull, BT601))
		assert.Equal(t, uint8(128), dst.U[0], "gray %d", v)
		assert.Equal(t, uint8(128), dst.V[0], "gray %d", v)
	}
}

func TestRGBToYUVLimitedRangeBounds(t *testing.T) {
	// Extreme inputs must stay inside the TV excursion.
	const w, h = 8, 2
	colors := [][3]uint8{
		{255, 255, 255}, {0, 0, 0}, {255, 0, 0}, {0, 255, 0},
		{0, 0, 255}, {255, 255, 0}, {0, 255, 255}, {255, 0, 255},
	}
	src := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := colors[x]
			copy(src[(y*w+x)*3:], c[:])
		}
	}
	dst := NewPlanarImage[uint8](w, h, Sub444)
	require.NoError(t, RGBToYUV444(src, w*3, dst, RangeLimited, BT601))

	for i, v := range dst.Y {
		assert.GreaterOrEqual(t, v, uint8(16), "Y[%d]", i)
		assert.LessOrEqual(t, v, uint8(235), "Y[%d]", i)
	}
	for i := range dst.U {
		assert.GreaterOrEqual(t, dst.U[i], uint8(16), "U[%d]", i)
		assert.LessOrEqual(t, dst.U[i], uint8(240), "U[%d]", i)
		assert.GreaterOrEqual(t, dst.V[i], uint8(16), "V[%d]", i)
		assert.LessOrEqual(t, dst.V[i], uint8(240), "V[%d]", i)
	}
}

func TestRGBToYUVMatchesFloatReference(t *testing.T) {
	const w, h = 16, 8
	for _, rng := range []Range{RangeLimited, RangeFull} {
		for _, m := range []Matrix{BT601, BT709, BT2020} {
			src := randomImage(w, h, FormatRGB, 1)
			dst := NewPlanarImage[uint8](w, h, Sub444)
			require.NoError(t, RGBToYUV444(src, w*3, dst, rng, m))

			for i := 0; i < w*h; i++ {
				r, g, b := int(src[i*3]), int(src[i*3+1]), int(src[i*3+2])
				wy, wcb, wcr := refForward(r, g, b, rng, m)
				assert.InDelta(t, wy, float64(dst.Y[i]), 2)
				assert.InDelta(t, wcb, float64(dst.U[i]), 2)
				assert.InDelta(t, wcr, float64(dst.V[i]), 2)
			}
		}
	}
}

func TestRGBToYUV422ChromaAveraging(t *testing.T) {
	// A pair of adjacent pixels produces the chroma of their rounded
	// box average, not the first pixel's chroma.
	const w, h = 2, 1
	src := []byte{
		250, 10, 10, // pixel 0
		10, 10, 250, // pixel 1
	}
	dst := NewPlanarImage[uint8](w, h, Sub422)
	require.NoError(t, RGBToYUV422(src, w*3, dst, RangeFull, BT601))

	avg := solidImage(1, 1, FormatRGB, 130, 10, 130, 255)
	want := NewPlanarImage[uint8](1, 1, Sub444)
	require.NoError(t, RGBToYUV444(avg, 3, want, RangeFull, BT601))

	assert.Equal(t, want.U[0], dst.U[0])
	assert.Equal(t, want.V[0], dst.V[0])
}

func TestRGBToYUVOddWidthSelfPairs(t *testing.T) {
	// An odd final column must behave exactly as if it were duplicated.
	const h = 3
	odd := randomImage(5, h, FormatRGB, 7)
	wide := make([]byte, 6*h*3)
	for y := 0; y < h; y++ {
		copy(wide[y*18:], odd[y*15:y*15+15])
		copy(wide[y*18+15:], odd[y*15+12:y*15+15]) // duplicate column 4
	}

	dstOdd := NewPlanarImage[uint8](5, h, Sub422)
	dstWide := NewPlanarImage[uint8](6, h, Sub422)
	require.NoError(t, RGBToYUV422(odd, 15, dstOdd, RangeLimited, BT709))
	require.NoError(t, RGBToYUV422(wide, 18, dstWide, RangeLimited, BT709))

	for y := 0; y < h; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, dstWide.U[y*3+x], dstOdd.U[y*3+x], "U (%d,%d)", x, y)
			assert.Equal(t, dstWide.V[y*3+x], dstOdd.V[y*3+x], "V (%d,%d)", x, y)
		}
	}
}

func TestRGBToYUV420OddDimensions(t *testing.T) {
	// Width 5: the last chroma column comes from the final pixel
	// self-paired, so it matches a width-6 image whose last column is
	// duplicated. Odd height exercises the unpaired trailing row.
	const h = 5
	odd := randomImage(5, h, FormatRGB, 19)
	wide := make([]byte, 6*h*3)
	for y := 0; y < h; y++ {
		copy(wide[y*18:], odd[y*15:y*15+15])
		copy(wide[y*18+15:], odd[y*15+12:y*15+15])
	}

	dstOdd := NewPlanarImage[uint8](5, h, Sub420)
	dstWide := NewPlanarImage[uint8](6, h, Sub420)
	require.NoError(t, RGBToYUV420(odd, 15, dstOdd, RangeFull, BT601))
	require.NoError(t, RGBToYUV420(wide, 18, dstWide, RangeFull, BT601))

	for cy := 0; cy < 3; cy++ {
		for cx := 0; cx < 3; cx++ {
			assert.Equal(t, dstWide.U[cy*3+cx], dstOdd.U[cy*3+cx], "U (%d,%d)", cx, cy)
			assert.Equal(t, dstWide.V[cy*3+cx], dstOdd.V[cy*3+cx], "V (%d,%d)", cx, cy)
		}
	}
}

func TestRGBToYUV420SharesChromaRows(t *testing.T) {
	// 4:2:0 chroma comes from the even row of each pair; luma is still
	// written on every row.
	const w, h = 4, 4
	src := randomImage(w, h, FormatRGB, 3)
	dst := NewPlanarImage[uint8](w, h, Sub420)
	require.NoError(t, RGBToYUV420(src, w*3, dst, RangeFull, BT601))

	ref := NewPlanarImage[uint8](w, h, Sub422)
	require.NoError(t, RGBToYUV422(src, w*3, ref, RangeFull, BT601))

	assert.Equal(t, ref.Y, dst.Y)
	for cy := 0; cy < 2; cy++ {
		for cx := 0; cx < 2; cx++ {
			assert.Equal(t, ref.U[2*cy*ref.UStride+cx], dst.U[cy*dst.UStride+cx])
			assert.Equal(t, ref.V[2*cy*ref.VStride+cx], dst.V[cy*dst.VStride+cx])
		}
	}
}

func TestRGBAIgnoresAlpha(t *testing.T) {
	const w, h = 4, 2
	opaque := solidImage(w, h, FormatRGBA, 90, 140, 30, 255)
	transparent := solidImage(w, h, FormatRGBA, 90, 140, 30, 0)

	d1 := NewPlanarImage[uint8](w, h, Sub444)
	d2 := NewPlanarImage[uint8](w, h, Sub444)
	require.NoError(t, RGBAToYUV444(opaque, w*4, d1, RangeFull, BT601))
	require.NoError(t, RGBAToYUV444(transparent, w*4, d2, RangeFull, BT601))

	assert.Equal(t, d1.Y, d2.Y)
	assert.Equal(t, d1.U, d2.U)
	assert.Equal(t, d1.V, d2.V)
}

func TestBGRAMatchesRGBA(t *testing.T) {
	const w, h = 4, 2
	rgba := solidImage(w, h, FormatRGBA, 12, 200, 99, 255)
	bgra := solidImage(w, h, FormatBGRA, 12, 200, 99, 255)

	d1 := NewPlanarImage[uint8](w, h, Sub420)
	d2 := NewPlanarImage[uint8](w, h, Sub420)
	require.NoError(t, RGBAToYUV420(rgba, w*4, d1, RangeLimited, BT709))
	require.NoError(t, BGRAToYUV420(bgra, w*4, d2, RangeLimited, BT709))

	assert.Equal(t, d1.Y, d2.Y)
	assert.Equal(t, d1.U, d2.U)
	assert.Equal(t, d1.V, d2.V)
}

func TestRGBToYUVErrors(t *testing.T) {
	dst := NewPlanarImage[uint8](4, 4, Sub420)

	err := RGBToYUV420(make([]byte, 4*4*3), 12, dst, RangeFull, Matrix{Kr: 0.6, Kb: 0.4})
	require.ErrorIs(t, err, ErrInvalidMatrix)

	err = RGBToYUV420(make([]byte, 10), 12, dst, RangeFull, BT601)
	require.ErrorIs(t, err, ErrBufferSize)

	short := NewPlanarImage[uint8](4, 4, Sub420)
	short.U = short.U[:1]
	err = RGBToYUV420(make([]byte, 4*4*3), 12, short, RangeFull, BT601)
	require.ErrorIs(t, err, ErrBufferSize)
}

func TestRGBToYUVNoPartialWriteOnError(t *testing.T) {
	// Validation failures must leave the destination untouched.
	dst := NewPlanarImage[uint8](4, 4, Sub420)
	for i := range dst.Y {
		dst.Y[i] = 0xAB
	}
	err := RGBToYUV420(make([]byte, 10), 12, dst, RangeFull, BT601)
	require.Error(t, err)
	for _, v := range dst.Y {
		assert.Equal(t, uint8(0xAB), v)
	}
}
