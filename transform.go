package yuv

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Fixed-point transform derivation. Floating coefficients follow the
// ITU-R H.273 relations for arbitrary (kr, kb) primaries; each
// conversion call quantizes them once to scaled integers and reuses
// the result for every row.

// levels holds the bias and excursion of Y and chroma samples for one
// (bit depth, range) pair. The four values are always derived
// together and never mixed across depths.
type levels struct {
	biasY   int
	biasUV  int
	rangeY  int
	rangeUV int
}

// rangeLevels computes the sample levels for a bit depth of at least 8.
func rangeLevels(depth int, r Range) levels {
	if r == RangeLimited {
		return levels{
			biasY:   16 << (depth - 8),
			biasUV:  1 << (depth - 1),
			rangeY:  219 << (depth - 8),
			rangeUV: 224 << (depth - 8),
		}
	}
	return levels{
		biasY:   0,
		biasUV:  1 << (depth - 1),
		rangeY:  (1 << depth) - 1,
		rangeUV: (1 << depth) - 1,
	}
}

// forwardCoeffs are the floating RGB -> YUV weights.
type forwardCoeffs struct {
	yr, yg, yb    float64
	cbR, cbG, cbB float64
	crR, crG, crB float64
}

// forwardTransform derives the RGB -> YUV weights. rgbMax is the
// excursion of the RGB samples (255 for 8-bit input).
func forwardTransform(rgbMax int, lv levels, m Matrix) forwardCoeffs {
	kr, kb := m.Kr, m.Kb
	kg := m.kg()
	ys := float64(lv.rangeY) / float64(rgbMax)
	cs := float64(lv.rangeUV) / float64(rgbMax)
	return forwardCoeffs{
		yr:  kr * ys,
		yg:  kg * ys,
		yb:  kb * ys,
		cbR: -0.5 * kr / (1 - kb) * cs,
		cbG: -0.5 * kg / (1 - kb) * cs,
		cbB: 0.5 * cs,
		crR: 0.5 * cs,
		crG: -0.5 * kg / (1 - kr) * cs,
		crB: -0.5 * kb / (1 - kr) * cs,
	}
}

// forwardWeights are the quantized forward coefficients. Quantization
// introduces up to about 1% relative error per coefficient; that is
// inherent to the fixed-point design, not a defect.
type forwardWeights struct {
	yr, yg, yb    int
	cbR, cbG, cbB int
	crR, crG, crB int
}

func (c forwardCoeffs) quantize(precision uint) forwardWeights {
	return forwardWeights{
		yr:  fix(c.yr, precision),
		yg:  fix(c.yg, precision),
		yb:  fix(c.yb, precision),
		cbR: fix(c.cbR, precision),
		cbG: fix(c.cbG, precision),
		cbB: fix(c.cbB, precision),
		crR: fix(c.crR, precision),
		crG: fix(c.crG, precision),
		crB: fix(c.crB, precision),
	}
}

// inverseCoeffs are the floating YUV -> RGB weights:
//
//	R = Y*y + cr*(Cr - biasUV)
//	B = Y*y + cb*(Cb - biasUV)
//	G = Y*y - g1*(Cr - biasUV) - g2*(Cb - biasUV)
//
// with Y pre-bias-subtracted.
type inverseCoeffs struct {
	y, cr, cb, g1, g2 float64
}

func inverseTransform(rgbMax int, lv levels, m Matrix) inverseCoeffs {
	kr, kb := m.Kr, m.Kb
	kg := m.kg()
	cs := float64(rgbMax) / float64(lv.rangeUV)
	return inverseCoeffs{
		y:  float64(rgbMax) / float64(lv.rangeY),
		cr: 2 * (1 - kr) * cs,
		cb: 2 * (1 - kb) * cs,
		g1: 2 * (1 - kr) * kr / kg * cs,
		g2: 2 * (1 - kb) * kb / kg * cs,
	}
}

// inverseWeights are the quantized inverse coefficients.
type inverseWeights struct {
	y, cr, cb, g1, g2 int
}

func (c inverseCoeffs) quantize(precision uint) inverseWeights {
	return inverseWeights{
		y:  fix(c.y, precision),
		cr: fix(c.cr, precision),
		cb: fix(c.cb, precision),
		g1: fix(c.g1, precision),
		g2: fix(c.g2, precision),
	}
}

// fix scales a coefficient by 2^precision and rounds to the nearest
// integer.
func fix(v float64, precision uint) int {
	return int(math.Round(v * float64(int(1)<<precision)))
}

func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// qrshr is the rounding shift with saturation applied to every
// reconstructed channel: add half, shift the precision away, clamp to
// [0, maxVal]. Saturation here is intentional behavior, not an error
// condition.
func qrshr(v, maxVal int, precision uint) int {
	rounding := 1 << (precision - 1)
	return clamp((v+rounding)>>precision, 0, maxVal)
}
