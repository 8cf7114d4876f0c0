/*
DESCRIPTION
  temporal.go implements the per-plane persistent residual buffer of §4.8:
  a temporal mask, read at transform-block granularity, gates whether each
  block's prior residuals are retained and accumulated (TEMPORAL_PRED) or
  discarded and reset (TEMPORAL_INTR).

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

// TemporalBuffer holds one plane's persistent inter-picture residual state,
// sized to that plane's LOQ2 dimensions. Its lifetime spans the whole
// stream; it is reset to zero on IDR or full temporal refresh.
type TemporalBuffer struct {
	width, height int
	data          []int16
}

// NewTemporalBuffer allocates a zeroed buffer for a plane of the given
// LOQ2 dimensions.
func NewTemporalBuffer(width, height int) *TemporalBuffer {
	return &TemporalBuffer{width: width, height: height, data: make([]int16, width*height)}
}

// Reset zeroes the buffer, as required on any IDR picture or when
// temporal_refresh signals a full refresh.
func (b *TemporalBuffer) Reset() {
	for i := range b.data {
		b.data[i] = 0
	}
}

func (b *TemporalBuffer) at(x, y int) int16     { return b.data[y*b.width+x] }
func (b *TemporalBuffer) set(x, y int, v int16) { b.data[y*b.width+x] = v }

// SynthesizeTemporalMask builds a temporal mask when the bitstream carries
// no temporal symbols layer: all-INTR when temporal_refresh is set,
// otherwise all-PRED, per the special case in §4.8. Mask dimensions are
// (resolution_width/block_size, resolution_height/block_size).
func SynthesizeTemporalMask(resolutionWidth, resolutionHeight, blockSize int, temporalRefresh bool) Surface[uint8] {
	fill := TemporalPred
	if temporalRefresh {
		fill = TemporalIntr
	}
	w := resolutionWidth / blockSize
	h := resolutionHeight / blockSize
	return BuildSurface[uint8]().Fill(fill, w, h).Finish()
}

// ApplyTemporal accumulates current (already inverse-quantized, inverse-
// transformed, and upsampled-through-LOQ2) residuals into the persistent
// buffer according to mask, which is indexed at transform-block
// granularity: a TEMPORAL_INTR block resets the buffer to the current
// residual, a TEMPORAL_PRED block adds the current residual onto what is
// already held. The combined buffer contents are returned as a fresh
// Surface representing this picture's temporal-adjusted residuals.
func ApplyTemporal(buf *TemporalBuffer, current Surface[int16], mask Surface[uint8], transformBlockSize int) Surface[int16] {
	out := BuildSurface[int16]().Reserve(buf.width, buf.height)

	for by := 0; by < mask.Height(); by++ {
		for bx := 0; bx < mask.Width(); bx++ {
			pred := mask.Read(bx, by) == TemporalPred
			y0, x0 := by*transformBlockSize, bx*transformBlockSize
			for dy := 0; dy < transformBlockSize; dy++ {
				for dx := 0; dx < transformBlockSize; dx++ {
					x, y := x0+dx, y0+dy
					if x >= buf.width || y >= buf.height {
						continue
					}
					cur := current.Read(x, y)
					var next int16
					if pred {
						next = Clamp16(int32(buf.at(x, y)) + int32(cur))
					} else {
						next = cur
					}
					buf.set(x, y, next)
					out.Write(x, y, next)
				}
			}
		}
	}
	return out.Finish()
}
