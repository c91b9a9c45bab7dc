package yuv

import "golang.org/x/sys/cpu"

// Row kernel function variables for dispatch.
// These are bound to the pure-Go implementations at init and can be
// overridden by platform-specific SIMD implementations in the future.
var (
	forwardPlanarRow   func(k *forwardKernel, src []byte, yRow, uRow, vRow []uint8, width int, computeChroma bool)
	forwardBiPlanarRow func(k *forwardKernel, src []byte, yRow, uvRow []uint8, order NVOrder, width int, computeChroma bool)

	inversePlanarRow   func(k *inverseKernel, yRow, uRow, vRow []uint8, dst []byte, width int)
	inverseBiPlanarRow func(k *inverseKernel, yRow, uvRow []uint8, order NVOrder, dst []byte, width int)
	inverseAlphaRow    func(k *inverseKernel, yRow, uRow, vRow, aRow []uint8, dst []byte, width int, premultiply bool)
)

// Capability flags probed once at startup.
var (
	hasAVX2 = cpu.X86.HasAVX2
	hasNEON = cpu.ARM64.HasASIMD
)

// bindVectorRows installs architecture-specific row kernels over the
// scalar defaults. The stub binds nothing; an architecture file that
// implements vector rows replaces it.
var bindVectorRows = func(avx2, neon bool) {}

func init() { bindKernels() }

func bindKernels() {
	forwardPlanarRow = forwardRowScalar
	forwardBiPlanarRow = forwardRowNVScalar
	inversePlanarRow = inverseRowScalar
	inverseBiPlanarRow = inverseRowNVScalar
	inverseAlphaRow = inverseRowAlphaScalar
	bindVectorRows(hasAVX2, hasNEON)
}
