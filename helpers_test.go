package yuv

import "math/rand"

// Float reference conversions used to bound the fixed-point error in
// tests. These mirror the coefficient derivation but keep every step
// in float64 and round once at the end.

func refForward(r, g, b int, rng Range, m Matrix) (y, cb, cr float64) {
	lv := rangeLevels(8, rng)
	c := forwardTransform(255, lv, m)
	y = c.yr*float64(r) + c.yg*float64(g) + c.yb*float64(b) + float64(lv.biasY)
	cb = c.cbR*float64(r) + c.cbG*float64(g) + c.cbB*float64(b) + float64(lv.biasUV)
	cr = c.crR*float64(r) + c.crG*float64(g) + c.crB*float64(b) + float64(lv.biasUV)
	return y, cb, cr
}

func refInverse(y, cb, cr int, rng Range, m Matrix) (r, g, b float64) {
	lv := rangeLevels(8, rng)
	c := inverseTransform(255, lv, m)
	yv := float64(y-lv.biasY) * c.y
	u := float64(cb - lv.biasUV)
	v := float64(cr - lv.biasUV)
	r = clampf(yv + c.cr*v)
	b = clampf(yv + c.cb*u)
	g = clampf(yv - c.g1*v - c.g2*u)
	return r, g, b
}

func clampf(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// solidImage fills an interleaved buffer with one pixel value.
func solidImage(w, h int, format PixelFormat, r, g, b, a uint8) []byte {
	ch := format.Channels()
	buf := make([]byte, w*h*ch)
	for i := 0; i < w*h; i++ {
		px := buf[i*ch:]
		px[format.rOffset()] = r
		px[format.gOffset()] = g
		px[format.bOffset()] = b
		if format.HasAlpha() {
			px[format.aOffset()] = a
		}
	}
	return buf
}

// randomImage fills an interleaved buffer with deterministic noise.
func randomImage(w, h int, format PixelFormat, seed int64) []byte {
	rnd := rand.New(rand.NewSource(seed))
	buf := make([]byte, w*h*format.Channels())
	rnd.Read(buf)
	return buf
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
