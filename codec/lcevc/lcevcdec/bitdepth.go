/*
DESCRIPTION
  bitdepth.go implements the bit-depth conversions of §4.11 between an
  external pel depth and the signed 15-bit fixed-point internal
  representation used throughout the reconstruction pipeline.

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

// ConvertToInternal maps a depth-d pel to the signed 15-bit internal range.
// Depth 16 is a special case where internal and external representations
// coincide.
func ConvertToInternal(x int32, depth int) int16 {
	if depth == 16 {
		return Clamp16(x)
	}
	return Clamp16((x << (15 - depth)) - 0x4000)
}

// ConvertFromInternal maps a signed 15-bit internal sample back to a
// depth-d unsigned pel.
func ConvertFromInternal(x int16, depth int) uint32 {
	if depth == 16 {
		v := int32(x)
		if v < 0 {
			v = 0
		}
		return uint32(v)
	}
	shift := 15 - depth
	half := int32(1<<shift) / 2
	v := (int32(x) + 0x4000 + half) >> shift
	max := int32(1<<depth) - 1
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	return uint32(v)
}

// PromoteBaseDepth left-shifts a base-layer plane from baseDepth up to
// enhancementDepth, applied before ConvertToInternal when level1_depth_flag
// signals a base/enhancement depth mismatch.
func PromoteBaseDepth(plane Surface[int16], baseDepth, enhancementDepth int) Surface[int16] {
	if baseDepth == enhancementDepth {
		return plane
	}
	shift := enhancementDepth - baseDepth
	out := BuildSurface[int16]().Reserve(plane.Width(), plane.Height())
	for y := 0; y < plane.Height(); y++ {
		for x := 0; x < plane.Width(); x++ {
			out.Write(x, y, Clamp16(int32(plane.Read(x, y))<<shift))
		}
	}
	return out.Finish()
}
