package yuv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRowBytePositions(t *testing.T) {
	// One pixel pair, distinct samples, checked against each layout's
	// documented byte order.
	src := NewPlanarImage[uint8](2, 1, Sub422)
	src.Y[0], src.Y[1] = 0x10, 0x20
	src.U[0], src.V[0] = 0x30, 0x40

	tests := []struct {
		format PackedFormat
		want   []byte
	}{
		{FormatYUYV, []byte{0x10, 0x30, 0x20, 0x40}},
		{FormatUYVY, []byte{0x30, 0x10, 0x40, 0x20}},
		{FormatYVYU, []byte{0x10, 0x40, 0x20, 0x30}},
		{FormatVYUY, []byte{0x40, 0x10, 0x30, 0x20}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			dst := make([]byte, 4)
			require.NoError(t, PlanarToPacked(src, Sub422, dst, 4, tt.format))
			assert.Equal(t, tt.want, dst)
		})
	}
}

func TestPackedRoundTrip422(t *testing.T) {
	// At 4:2:2 packing moves samples without touching them: the round
	// trip is exact.
	const w, h = 8, 4
	src := NewPlanarImage[uint8](w, h, Sub422)
	noise := randomImage(w, h, FormatRGB, 33)
	copy(src.Y, noise)
	for i := range src.U {
		src.U[i] = noise[i]
		src.V[i] = noise[len(noise)-1-i]
	}

	for _, f := range []PackedFormat{FormatYUYV, FormatUYVY, FormatYVYU, FormatVYUY} {
		packed := make([]byte, (w/2)*4*h)
		require.NoError(t, PlanarToPacked(src, Sub422, packed, (w/2)*4, f))

		back := NewPlanarImage[uint8](w, h, Sub422)
		require.NoError(t, PackedToPlanar(packed, (w/2)*4, f, back, Sub422))
		assert.Equal(t, src.Y, back.Y, "%v luma", f)
		assert.Equal(t, src.U, back.U, "%v U", f)
		assert.Equal(t, src.V, back.V, "%v V", f)
	}
}

func TestPackedRoundTrip420(t *testing.T) {
	const w, h = 6, 4
	src := NewPlanarImage[uint8](w, h, Sub420)
	for i := range src.Y {
		src.Y[i] = uint8(i * 3)
	}
	for i := range src.U {
		src.U[i] = uint8(100 + i)
		src.V[i] = uint8(200 - i)
	}

	packed := make([]byte, (w/2)*4*h)
	require.NoError(t, YUV420ToYUYV(src, packed, (w/2)*4))

	// Both rows of a 4:2:0 pair carry the shared chroma samples.
	row0, row1 := packed[:12], packed[12:24]
	for g := 0; g < 3; g++ {
		assert.Equal(t, row0[g*4+1], row1[g*4+1], "U group %d", g)
		assert.Equal(t, row0[g*4+3], row1[g*4+3], "V group %d", g)
	}

	back := NewPlanarImage[uint8](w, h, Sub420)
	require.NoError(t, YUYVToYUV420(packed, (w/2)*4, back))
	assert.Equal(t, src.Y, back.Y)
	assert.Equal(t, src.U, back.U)
	assert.Equal(t, src.V, back.V)
}

func TestPack444AveragesChromaPairs(t *testing.T) {
	src := NewPlanarImage[uint8](4, 1, Sub444)
	copy(src.Y, []uint8{1, 2, 3, 4})
	copy(src.U, []uint8{10, 20, 30, 31})
	copy(src.V, []uint8{200, 100, 50, 60})

	dst := make([]byte, 8)
	require.NoError(t, YUV444ToYUYV(src, dst, 8))

	// (a+b+1)>>1 per pair.
	assert.Equal(t, uint8(15), dst[1], "U pair 0")
	assert.Equal(t, uint8(150), dst[3], "V pair 0")
	assert.Equal(t, uint8(31), dst[5], "U pair 1")
	assert.Equal(t, uint8(55), dst[7], "V pair 1")
}

func TestUnpack444ReplicatesChroma(t *testing.T) {
	packed := []byte{
		0x11, 0x50, 0x22, 0x60,
		0x33, 0x70, 0x44, 0x80,
	}
	dst := NewPlanarImage[uint8](4, 1, Sub444)
	require.NoError(t, YUYVToYUV444(packed, 8, dst))

	assert.Equal(t, []uint8{0x11, 0x22, 0x33, 0x44}, dst.Y)
	assert.Equal(t, []uint8{0x50, 0x50, 0x70, 0x70}, dst.U)
	assert.Equal(t, []uint8{0x60, 0x60, 0x80, 0x80}, dst.V)
}

func TestPackedOddWidth(t *testing.T) {
	// The trailing column carries its luma and chroma in the final
	// group; the unused second luma slot is zeroed.
	src := NewPlanarImage[uint8](3, 1, Sub422)
	copy(src.Y, []uint8{0xA1, 0xA2, 0xA3})
	copy(src.U, []uint8{0x91, 0x92})
	copy(src.V, []uint8{0xB1, 0xB2})

	dst := make([]byte, 8)
	require.NoError(t, YUV422ToYUYV(src, dst, 8))
	assert.Equal(t, []byte{0xA1, 0x91, 0xA2, 0xB1, 0xA3, 0x92, 0x00, 0xB2}, dst)

	back := NewPlanarImage[uint8](3, 1, Sub422)
	require.NoError(t, YUYVToYUV422(dst, 8, back))
	assert.Equal(t, src.Y, back.Y)
	assert.Equal(t, src.U, back.U)
	assert.Equal(t, src.V, back.V)
}

func TestUYVYRoundTrip(t *testing.T) {
	const w, h = 4, 2
	src := NewPlanarImage[uint8](w, h, Sub422)
	for i := range src.Y {
		src.Y[i] = uint8(50 + i)
	}
	for i := range src.U {
		src.U[i] = uint8(120 + i)
		src.V[i] = uint8(130 + i)
	}
	packed := make([]byte, (w/2)*4*h)
	require.NoError(t, YUV422ToUYVY(src, packed, (w/2)*4))
	assert.Equal(t, uint8(120), packed[0], "U leads in UYVY")
	assert.Equal(t, uint8(50), packed[1])

	back := NewPlanarImage[uint8](w, h, Sub422)
	require.NoError(t, UYVYToYUV422(packed, (w/2)*4, back))
	assert.Equal(t, src.Y, back.Y)
	assert.Equal(t, src.U, back.U)
	assert.Equal(t, src.V, back.V)
}

func TestPackedErrors(t *testing.T) {
	src := NewPlanarImage[uint8](4, 2, Sub422)
	err := PlanarToPacked(src, Sub422, make([]byte, 3), 8, FormatYUYV)
	require.ErrorIs(t, err, ErrBufferSize)

	dst := NewPlanarImage[uint8](4, 2, Sub422)
	err = PackedToPlanar(make([]byte, 3), 8, FormatYUYV, dst, Sub422)
	require.ErrorIs(t, err, ErrBufferSize)
}
