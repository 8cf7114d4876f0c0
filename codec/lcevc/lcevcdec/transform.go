/*
DESCRIPTION
  transform.go implements the inverse residual transforms: the 2x2 (DD) and
  4x4 (DDS) Hadamard-family transforms, each in a full 2D form and a
  horizontal-only 1D form, per §4.5.

  The DDS basis tables are transcribed verbatim from the reference's
  InverseTransformDDS / InverseTransformDDS_1D (see DESIGN.md). No DD (2x2)
  source file is present in this package's reference material; the DD basis
  is instead derived analytically from the 2x2 Hadamard matrix T2 given in
  §4.5 -- basis[dy][dx][s] = (-1)^(dy&sy) * (-1)^(dx&sx) where s = sy*2+sx --
  which reproduces T2's four quadrants exactly, and the DD 1D basis drops the
  sy-dependent terms the same way DDS_1D zeroes its vertical-only layers.

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

// ddsBasis2D[dy][dx] gives the 16 per-layer signs for output offset
// (dx, dy) within a 4x4 transform block, transcribed from
// InverseTransformDDS::process's unoptimized write statements.
var ddsBasis2D = [4][4][16]int8{
	{
		{+1, +1, +1, +1, +1, +1, +1, +1, +1, +1, +1, +1, +1, +1, +1, +1},
		{+1, +1, +1, +1, -1, -1, -1, -1, +1, +1, +1, +1, -1, -1, -1, -1},
		{+1, -1, +1, -1, +1, -1, +1, -1, +1, -1, +1, -1, +1, -1, +1, -1},
		{+1, -1, +1, -1, -1, +1, -1, +1, +1, -1, +1, -1, -1, +1, -1, +1},
	},
	{
		{+1, +1, +1, +1, +1, +1, +1, +1, -1, -1, -1, -1, -1, -1, -1, -1},
		{+1, +1, +1, +1, -1, -1, -1, -1, -1, -1, -1, -1, +1, +1, +1, +1},
		{+1, -1, +1, -1, +1, -1, +1, -1, -1, +1, -1, +1, -1, +1, -1, +1},
		{+1, -1, +1, -1, -1, +1, -1, +1, -1, +1, -1, +1, +1, -1, +1, -1},
	},
	{
		{+1, +1, -1, -1, +1, +1, -1, -1, +1, +1, -1, -1, +1, +1, -1, -1},
		{+1, +1, -1, -1, -1, -1, +1, +1, +1, +1, -1, -1, -1, -1, +1, +1},
		{+1, -1, -1, +1, +1, -1, -1, +1, +1, -1, -1, +1, +1, -1, -1, +1},
		{+1, -1, -1, +1, -1, +1, +1, -1, +1, -1, -1, +1, -1, +1, +1, -1},
	},
	{
		{+1, +1, -1, -1, +1, +1, -1, -1, -1, -1, +1, +1, -1, -1, +1, +1},
		{+1, +1, -1, -1, -1, -1, +1, +1, -1, -1, +1, +1, +1, +1, -1, -1},
		{+1, -1, -1, +1, +1, -1, -1, +1, -1, +1, +1, -1, -1, +1, +1, -1},
		{+1, -1, -1, +1, -1, +1, +1, -1, -1, +1, +1, -1, +1, -1, -1, +1},
	},
}

// ddsBasis1D[dy][dx] is the horizontal-only variant: the two layer groups
// that carry vertical (y) information are zeroed, transcribed from
// InverseTransformDDS_1D::process's basis table.
var ddsBasis1D = [4][4][16]int8{
	{
		{+1, +1, +1, +1, +1, +1, +1, +1, 0, 0, 0, 0, +1, +1, +1, +1},
		{+1, +1, +1, +1, -1, -1, -1, -1, 0, 0, 0, 0, -1, -1, -1, -1},
		{+1, -1, +1, -1, +1, -1, +1, -1, 0, 0, 0, 0, +1, -1, +1, -1},
		{+1, -1, +1, -1, -1, +1, -1, +1, 0, 0, 0, 0, -1, +1, -1, +1},
	},
	{
		{0, 0, 0, 0, +1, +1, +1, +1, +1, +1, +1, +1, -1, -1, -1, -1},
		{0, 0, 0, 0, -1, -1, -1, -1, +1, +1, +1, +1, +1, +1, +1, +1},
		{0, 0, 0, 0, +1, -1, +1, -1, +1, -1, +1, -1, -1, +1, -1, +1},
		{0, 0, 0, 0, -1, +1, -1, +1, +1, -1, +1, -1, +1, -1, +1, -1},
	},
	{
		{+1, +1, -1, -1, +1, +1, -1, -1, 0, 0, 0, 0, +1, +1, -1, -1},
		{+1, +1, -1, -1, -1, -1, +1, +1, 0, 0, 0, 0, -1, -1, +1, +1},
		{+1, -1, -1, +1, +1, -1, -1, +1, 0, 0, 0, 0, +1, -1, -1, +1},
		{+1, -1, -1, +1, -1, +1, +1, -1, 0, 0, 0, 0, -1, +1, +1, -1},
	},
	{
		{0, 0, 0, 0, +1, +1, -1, -1, +1, +1, -1, -1, -1, -1, +1, +1},
		{0, 0, 0, 0, -1, -1, +1, +1, +1, +1, -1, -1, +1, +1, -1, -1},
		{0, 0, 0, 0, +1, -1, -1, +1, +1, -1, -1, +1, -1, +1, +1, -1},
		{0, 0, 0, 0, -1, +1, +1, -1, +1, -1, -1, +1, +1, -1, -1, +1},
	},
}

// ddBasis2D[dy][dx] is the 2x2 analogue, derived as
// (-1)^(dy&sy) * (-1)^(dx&sx), s = sy*2+sx; it reproduces T2's four
// quadrants from §4.5 exactly.
var ddBasis2D = [2][2][4]int8{
	{
		{+1, +1, +1, +1},
		{+1, -1, +1, -1},
	},
	{
		{+1, +1, -1, -1},
		{+1, -1, -1, +1},
	},
}

// ddBasis1D[dy][dx] drops the sy-dependent layers (s=2,3), leaving a pure
// horizontal 1x2 Hadamard replicated across both output rows.
var ddBasis1D = [2][2][4]int8{
	{
		{+1, +1, 0, 0},
		{+1, -1, 0, 0},
	},
	{
		{+1, +1, 0, 0},
		{+1, -1, 0, 0},
	},
}

// applyTransform runs a tbs x tbs basis table against numLayers
// layer-space coefficient Surfaces, writing the result at
// (x*tbs, y*tbs) in an output Surface of size width x height.
func applyTransform(layers []Surface[int16], width, height, tbs int, basis func(dy, dx, s int) int8) Surface[int16] {
	out := BuildSurface[int16]().Reserve(width, height)
	layerWidth := width / tbs
	layerHeight := height / tbs

	for ly := 0; ly < layerHeight; ly++ {
		for lx := 0; lx < layerWidth; lx++ {
			for dy := 0; dy < tbs; dy++ {
				for dx := 0; dx < tbs; dx++ {
					var acc int32
					for s, layer := range layers {
						sign := basis(dy, dx, s)
						if sign == 0 {
							continue
						}
						c := int32(layer.Read(lx, ly))
						if sign > 0 {
							acc += c
						} else {
							acc -= c
						}
					}
					out.Write(lx*tbs+dx, ly*tbs+dy, Clamp16(acc))
				}
			}
		}
	}
	return out.Finish()
}

// InverseTransformDDS2D applies the full 4x4 inverse transform to 16
// residual layers.
func InverseTransformDDS2D(layers [16]Surface[int16], width, height int) Surface[int16] {
	return applyTransform(layers[:], width, height, 4, func(dy, dx, s int) int8 { return ddsBasis2D[dy][dx][s] })
}

// InverseTransformDDS1D applies the horizontal-only 4x4 inverse transform.
func InverseTransformDDS1D(layers [16]Surface[int16], width, height int) Surface[int16] {
	return applyTransform(layers[:], width, height, 4, func(dy, dx, s int) int8 { return ddsBasis1D[dy][dx][s] })
}

// InverseTransformDD2D applies the full 2x2 inverse transform to 4
// residual layers.
func InverseTransformDD2D(layers [4]Surface[int16], width, height int) Surface[int16] {
	return applyTransform(layers[:], width, height, 2, func(dy, dx, s int) int8 { return ddBasis2D[dy][dx][s] })
}

// InverseTransformDD1D applies the horizontal-only 2x2 inverse transform.
func InverseTransformDD1D(layers [4]Surface[int16], width, height int) Surface[int16] {
	return applyTransform(layers[:], width, height, 2, func(dy, dx, s int) int8 { return ddBasis1D[dy][dx][s] })
}
