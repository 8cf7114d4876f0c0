/*
DESCRIPTION
  image.go defines Image, the external picture representation Decoder.Decode
  consumes as the base reconstruction and produces as the enhanced output:
  one external-depth plane per colour component, plus the depth and
  colourspace needed to interpret them.

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

// Image is a multi-plane picture at an external pel depth (8 to 16 bits,
// held widened in a uint16 Surface). Planes beyond NumPlanes are unused.
type Image struct {
	Planes    [MaxNumPlanes]Surface[uint16]
	NumPlanes int
	Depth     int
}

// Plane returns the i'th plane, or the empty Surface if i >= NumPlanes.
func (im Image) Plane(i int) Surface[uint16] {
	if i < 0 || i >= im.NumPlanes {
		return Surface[uint16]{}
	}
	return im.Planes[i]
}
