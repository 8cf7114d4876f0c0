/*
DESCRIPTION
  hevc.go adapts an HEVC/H.265 base layer into a BaseDecoder. Unlike AVC,
  this module carries no HEVC syntax parser, so HEVCAdapter reads only the two-byte NAL header itself to
  classify the IDR flag, and otherwise defers to a PixelSource exactly as
  AVCAdapter does.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package basedecoder

import "github.com/pkg/errors"

// HEVC NAL unit types, Table 7-1 of Rec. ITU-T H.265.
const (
	hevcNALTypeIDRWRADL = 19
	hevcNALTypeIDRNLP   = 20
	hevcNALTypeCRANUT   = 21
)

// HEVCAdapter is a BaseDecoder for an Annex-B HEVC/H.265 base layer.
type HEVCAdapter struct {
	Pixels PixelSource
}

// NewHEVCAdapter returns an HEVCAdapter reading decoded pictures from pixels.
func NewHEVCAdapter(pixels PixelSource) *HEVCAdapter {
	return &HEVCAdapter{Pixels: pixels}
}

// Decode classifies nal's two-byte header and, for a VCL NAL (type <= 31),
// returns the next picture from Pixels tagged with the IDR flag.
func (a *HEVCAdapter) Decode(nal []byte) (BasePicture, error) {
	if len(nal) < 2 {
		return BasePicture{}, errors.New("basedecoder: HEVC NAL unit too short")
	}
	nalType := (nal[0] >> 1) & 0x3f
	if nalType > 31 {
		// Non-VCL: parameter sets, SEI, etc. No picture produced.
		return BasePicture{}, nil
	}

	img, err := a.Pixels.Next()
	if err != nil {
		return BasePicture{}, errors.Wrap(err, "basedecoder: reading HEVC base pixels")
	}
	isIDR := nalType == hevcNALTypeIDRWRADL || nalType == hevcNALTypeIDRNLP || nalType == hevcNALTypeCRANUT
	return BasePicture{Image: img, IsIDR: isIDR}, nil
}
