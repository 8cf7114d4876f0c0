/*
DESCRIPTION
  deblock.go implements the LOQ1 in-loop deblocking filter: a fixed 4x4
  corner/side attenuation mask applied to sub-layer-1 residuals, per §4.7.

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

// deblockMaskKind[y][x] selects between the corner coefficient (index 0) and
// side coefficient (index 1) for the 4x4 attenuation pattern of §4.7; the
// interior positions are left at full weight (16).
var deblockMaskKind = [4][4]int{
	{0, 1, 1, 0},
	{1, 2, 2, 1},
	{1, 2, 2, 1},
	{0, 1, 1, 0},
}

// Deblock applies the 4x4 corner/side attenuation filter to residuals,
// a width x height Surface whose dimensions must be multiples of 4.
// cornerCoeff and sideCoeff are the signalled level_1_filtering
// coefficients; the mask weight is 16 minus the coefficient, interior
// positions always weight 16.
func Deblock(residuals Surface[int16], cornerCoeff, sideCoeff uint8) Surface[int16] {
	c := int32(16 - int(cornerCoeff))
	s := int32(16 - int(sideCoeff))

	out := BuildSurface[int16]().Reserve(residuals.Width(), residuals.Height())
	for by := 0; by < residuals.Height(); by += 4 {
		for bx := 0; bx < residuals.Width(); bx += 4 {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 4; dx++ {
					var weight int32
					switch deblockMaskKind[dy][dx] {
					case 0:
						weight = c
					case 1:
						weight = s
					default:
						weight = 16
					}
					v := int32(residuals.Read(bx+dx, by+dy)) * weight
					out.Write(bx+dx, by+dy, Clamp16(v>>4))
				}
			}
		}
	}
	return out.Finish()
}
