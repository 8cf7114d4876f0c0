/*
DESCRIPTION
  crop.go implements the conformance-window crop of §4.10, applied as the
  last step of per-picture reconstruction before the depth conversion back
  to the external pel representation.

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

// ConformanceWindow holds the signalled crop amounts, in crop units, for
// each edge of a plane.
type ConformanceWindow struct {
	Left, Right, Top, Bottom int
}

// Crop removes the conformance window from plane, using cuw/cuh (the
// plane's crop units, from GlobalConfiguration.CropUnit) to scale the
// signalled window into pel units.
func Crop(plane Surface[int16], win ConformanceWindow, cuw, cuh int) Surface[int16] {
	left, right := win.Left*cuw, win.Right*cuw
	top, bottom := win.Top*cuh, win.Bottom*cuh

	width := plane.Width() - left - right
	height := plane.Height() - top - bottom

	out := BuildSurface[int16]().Reserve(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Write(x, y, plane.Read(x+left, y+top))
		}
	}
	return out.Finish()
}
