/*
DESCRIPTION
  upsample.go implements the four-tap separable upsampling kernels and the
  predicted-residual adjustment that restores each upsampled block's mean to
  its originating base pel, per §4.6.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package lcevcdec

// kernelTaps holds the four fixed-point filter taps applied to samples at
// offsets -1, 0, +1, +2 around the source pixel being expanded.
type kernelTaps [4]int32

var (
	kernelNearest       = kernelTaps{0, 16384, 0, 0}
	kernelLinear        = kernelTaps{0, 12288, 4096, 0}
	kernelCubic         = kernelTaps{-1382, 14285, 3942, -461}
	kernelModifiedCubic = kernelTaps{-2360, 15855, 4165, -1276}
)

// kernelFor resolves the signalled upsample mode to its tap set;
// AdaptiveCubic uses the four signalled coefficients directly, negating the
// outer two per the {-c0, c1, c2, -c3} layout of §4.6.
func kernelFor(mode Upsample, coeffs [4]uint16) kernelTaps {
	switch mode {
	case UpsampleNearest:
		return kernelNearest
	case UpsampleLinear:
		return kernelLinear
	case UpsampleCubic:
		return kernelCubic
	case UpsampleModifiedCubic:
		return kernelModifiedCubic
	case UpsampleAdaptiveCubic:
		return kernelTaps{-int32(coeffs[0]), int32(coeffs[1]), int32(coeffs[2]), -int32(coeffs[3])}
	default:
		return kernelNearest
	}
}

// clampIndex clamps i to the valid sample range [0, size-1], implementing
// the edge-replication behaviour of §4.6.
func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// applyKernel1D computes the output sample pair (2p, 2p+1) straddling input
// position p: the even output is a mirrored tap (k3,k2,k1,k0) centered on
// p-1, the odd output is the forward tap (k0,k1,k2,k3) centered on p, so
// the two outputs of a pair are centered on adjacent source positions
// rather than both on p.
func applyKernel1D(read func(i int) int16, p, size int, k kernelTaps) (even, odd int16) {
	se := [4]int32{
		int32(read(clampIndex(p-2, size))),
		int32(read(clampIndex(p-1, size))),
		int32(read(clampIndex(p, size))),
		int32(read(clampIndex(p+1, size))),
	}
	so := [4]int32{
		int32(read(clampIndex(p-1, size))),
		int32(read(clampIndex(p, size))),
		int32(read(clampIndex(p+1, size))),
		int32(read(clampIndex(p+2, size))),
	}

	accEven := int32(0x2000) + k[3]*se[0] + k[2]*se[1] + k[1]*se[2] + k[0]*se[3]
	accOdd := int32(0x2000) + k[0]*so[0] + k[1]*so[1] + k[2]*so[2] + k[3]*so[3]

	return Clamp16(accEven >> 14), Clamp16(accOdd >> 14)
}

// Upsample2D upsamples src by 2x in both dimensions: a vertical pass
// followed by a horizontal pass, each using the given kernel.
func Upsample2D(src Surface[int16], mode Upsample, coeffs [4]uint16) Surface[int16] {
	k := kernelFor(mode, coeffs)

	// Vertical pass: src.width x src.height -> src.width x 2*src.height.
	vert := BuildSurface[int16]().Reserve(src.Width(), src.Height()*2)
	for x := 0; x < src.Width(); x++ {
		read := func(y int) int16 { return src.Read(x, y) }
		for y := 0; y < src.Height(); y++ {
			even, odd := applyKernel1D(read, y, src.Height(), k)
			vert.Write(x, y*2, even)
			vert.Write(x, y*2+1, odd)
		}
	}

	// Horizontal pass: src.width x 2*src.height -> 2*src.width x 2*src.height.
	vertSurf := vert.Finish()
	out := BuildSurface[int16]().Reserve(src.Width()*2, src.Height()*2)
	for y := 0; y < vertSurf.Height(); y++ {
		read := func(x int) int16 { return vertSurf.Read(x, y) }
		for x := 0; x < vertSurf.Width(); x++ {
			even, odd := applyKernel1D(read, x, vertSurf.Width(), k)
			out.Write(x*2, y, even)
			out.Write(x*2+1, y, odd)
		}
	}

	return out.Finish()
}

// Upsample1D upsamples src by 2x horizontally only.
func Upsample1D(src Surface[int16], mode Upsample, coeffs [4]uint16) Surface[int16] {
	k := kernelFor(mode, coeffs)

	out := BuildSurface[int16]().Reserve(src.Width()*2, src.Height())
	for y := 0; y < src.Height(); y++ {
		read := func(x int) int16 { return src.Read(x, y) }
		for x := 0; x < src.Width(); x++ {
			even, odd := applyKernel1D(read, x, src.Width(), k)
			out.Write(x*2, y, even)
			out.Write(x*2+1, y, odd)
		}
	}
	return out.Finish()
}

// PredictedResidualAdjust2D enforces that each 2x2 block of upsampled
// averages exactly to the corresponding pel of base, per §4.6.
func PredictedResidualAdjust2D(upsampled Surface[int16], base Surface[int16]) Surface[int16] {
	out := BuildSurface[int16]().Reserve(upsampled.Width(), upsampled.Height())
	for by := 0; by < base.Height(); by++ {
		for bx := 0; bx < base.Width(); bx++ {
			x0, y0 := bx*2, by*2
			sum := int32(upsampled.Read(x0, y0)) + int32(upsampled.Read(x0+1, y0)) +
				int32(upsampled.Read(x0, y0+1)) + int32(upsampled.Read(x0+1, y0+1))
			adjust := int32(base.Read(bx, by)) - ((sum + 2) >> 2)
			out.Write(x0, y0, Clamp16(int32(upsampled.Read(x0, y0))+adjust))
			out.Write(x0+1, y0, Clamp16(int32(upsampled.Read(x0+1, y0))+adjust))
			out.Write(x0, y0+1, Clamp16(int32(upsampled.Read(x0, y0+1))+adjust))
			out.Write(x0+1, y0+1, Clamp16(int32(upsampled.Read(x0+1, y0+1))+adjust))
		}
	}
	return out.Finish()
}

// PredictedResidualAdjust1D enforces that each 2x1 block of upsampled
// averages exactly to the corresponding pel of base.
func PredictedResidualAdjust1D(upsampled Surface[int16], base Surface[int16]) Surface[int16] {
	out := BuildSurface[int16]().Reserve(upsampled.Width(), upsampled.Height())
	for by := 0; by < base.Height(); by++ {
		for bx := 0; bx < base.Width(); bx++ {
			x0, y0 := bx*2, by
			sum := int32(upsampled.Read(x0, y0)) + int32(upsampled.Read(x0+1, y0))
			adjust := int32(base.Read(bx, by)) - ((sum + 1) >> 1)
			out.Write(x0, y0, Clamp16(int32(upsampled.Read(x0, y0))+adjust))
			out.Write(x0+1, y0, Clamp16(int32(upsampled.Read(x0+1, y0))+adjust))
		}
	}
	return out.Finish()
}
