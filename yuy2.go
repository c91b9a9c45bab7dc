package yuv

import "github.com/deepteams/yuv/internal/parallel"

// Packed 4:2:2 (YUY2 family) repacking: planar YUV to and from
// YUYV/UYVY/YVYU/VYUY byte groups of two luma and two shared chroma
// samples.
//
// Repacking moves samples, it does not transform them. From a 4:4:4
// source the two chroma samples of a pair are box-averaged into the
// single packed slot, so 4:4:4 round trips are lossy; at 4:2:2 and
// 4:2:0 the packed group carries the decimated samples untouched and
// the round trip is exact.

// packedRowBytes returns the byte width of one packed row.
func packedRowBytes(width int) int {
	return (width + 1) / 2 * 4
}

func packRow(f PackedFormat, sub Subsampling, yRow, uRow, vRow []uint8, dst []byte, width int) {
	y0, y1, uPos, vPos := f.y0Pos(), f.y1Pos(), f.uPos(), f.vPos()
	ux := 0
	for g := 0; g < width/2; g++ {
		var u, v uint8
		if sub == Sub444 {
			u = uint8((int(uRow[ux]) + int(uRow[ux+1]) + 1) >> 1)
			v = uint8((int(vRow[ux]) + int(vRow[ux+1]) + 1) >> 1)
			ux += 2
		} else {
			u = uRow[ux]
			v = vRow[ux]
			ux++
		}
		group := dst[g*4:]
		group[y0] = yRow[2*g]
		group[y1] = yRow[2*g+1]
		group[uPos] = u
		group[vPos] = v
	}
	if width&1 != 0 {
		// Lone trailing column: first luma slot plus that column's own
		// chroma, second luma slot left zero.
		group := dst[(width/2)*4:]
		group[y0] = yRow[width-1]
		group[y1] = 0
		group[uPos] = uRow[ux]
		group[vPos] = vRow[ux]
	}
}

func unpackRow(f PackedFormat, sub Subsampling, src []byte, yRow, uRow, vRow []uint8, width int) {
	y0, y1, uPos, vPos := f.y0Pos(), f.y1Pos(), f.uPos(), f.vPos()
	ux := 0
	for g := 0; g < width/2; g++ {
		group := src[g*4:]
		yRow[2*g] = group[y0]
		yRow[2*g+1] = group[y1]
		if sub == Sub444 {
			// One packed chroma sample fans out to both columns.
			uRow[ux] = group[uPos]
			uRow[ux+1] = group[uPos]
			vRow[ux] = group[vPos]
			vRow[ux+1] = group[vPos]
			ux += 2
		} else {
			uRow[ux] = group[uPos]
			vRow[ux] = group[vPos]
			ux++
		}
	}
	if width&1 != 0 {
		group := src[(width/2)*4:]
		yRow[width-1] = group[y0]
		uRow[ux] = group[uPos]
		vRow[ux] = group[vPos]
	}
}

// PlanarToPacked repacks a planar YUV image into a packed 4:2:2
// buffer of the given byte layout.
func PlanarToPacked(src *PlanarImage[uint8], sub Subsampling, dst []byte, dstStride int, format PackedFormat) error {
	if err := src.check(sub); err != nil {
		return err
	}
	if err := checkInterleaved("dst", len(dst), dstStride, packedRowBytes(src.Width), src.Height, 1); err != nil {
		return err
	}
	parallel.Bands(src.Height, 1, func(start, end int) {
		for y := start; y < end; y++ {
			cy := y
			if sub == Sub420 {
				cy = y >> 1
			}
			packRow(format, sub, src.Y[y*src.YStride:], src.U[cy*src.UStride:],
				src.V[cy*src.VStride:], dst[y*dstStride:], src.Width)
		}
	})
	return nil
}

// PackedToPlanar unpacks a packed 4:2:2 buffer into a planar YUV
// image at the given subsampling. For 4:2:0 destinations both rows of
// a pair carry the same chroma, so either write wins.
func PackedToPlanar(src []byte, srcStride int, format PackedFormat, dst *PlanarImage[uint8], sub Subsampling) error {
	if err := dst.check(sub); err != nil {
		return err
	}
	if err := checkInterleaved("src", len(src), srcStride, packedRowBytes(dst.Width), dst.Height, 1); err != nil {
		return err
	}
	align := 1
	if sub == Sub420 {
		align = 2
	}
	parallel.Bands(dst.Height, align, func(start, end int) {
		for y := start; y < end; y++ {
			cy := y
			if sub == Sub420 {
				cy = y >> 1
			}
			unpackRow(format, sub, src[y*srcStride:], dst.Y[y*dst.YStride:],
				dst.U[cy*dst.UStride:], dst.V[cy*dst.VStride:], dst.Width)
		}
	})
	return nil
}

// YUV422ToYUYV repacks planar 4:2:2 YUV as YUYV.
func YUV422ToYUYV(src *PlanarImage[uint8], dst []byte, dstStride int) error {
	return PlanarToPacked(src, Sub422, dst, dstStride, FormatYUYV)
}

// YUYVToYUV422 unpacks YUYV into planar 4:2:2 YUV.
func YUYVToYUV422(src []byte, srcStride int, dst *PlanarImage[uint8]) error {
	return PackedToPlanar(src, srcStride, FormatYUYV, dst, Sub422)
}

// YUV420ToYUYV repacks planar 4:2:0 YUV as YUYV.
func YUV420ToYUYV(src *PlanarImage[uint8], dst []byte, dstStride int) error {
	return PlanarToPacked(src, Sub420, dst, dstStride, FormatYUYV)
}

// YUYVToYUV420 unpacks YUYV into planar 4:2:0 YUV.
func YUYVToYUV420(src []byte, srcStride int, dst *PlanarImage[uint8]) error {
	return PackedToPlanar(src, srcStride, FormatYUYV, dst, Sub420)
}

// YUV444ToYUYV repacks planar 4:4:4 YUV as YUYV, box-averaging each
// chroma pair.
func YUV444ToYUYV(src *PlanarImage[uint8], dst []byte, dstStride int) error {
	return PlanarToPacked(src, Sub444, dst, dstStride, FormatYUYV)
}

// YUYVToYUV444 unpacks YUYV into planar 4:4:4 YUV, replicating each
// chroma sample across its pair.
func YUYVToYUV444(src []byte, srcStride int, dst *PlanarImage[uint8]) error {
	return PackedToPlanar(src, srcStride, FormatYUYV, dst, Sub444)
}

// YUV422ToUYVY repacks planar 4:2:2 YUV as UYVY.
func YUV422ToUYVY(src *PlanarImage[uint8], dst []byte, dstStride int) error {
	return PlanarToPacked(src, Sub422, dst, dstStride, FormatUYVY)
}

// UYVYToYUV422 unpacks UYVY into planar 4:2:2 YUV.
func UYVYToYUV422(src []byte, srcStride int, dst *PlanarImage[uint8]) error {
	return PackedToPlanar(src, srcStride, FormatUYVY, dst, Sub422)
}
