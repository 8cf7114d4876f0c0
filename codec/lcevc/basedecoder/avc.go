/*
DESCRIPTION
  avc.go adapts codec/h264/h264dec's NAL and SPS parsing into a BaseDecoder:
  it tracks the IDR flag and coded dimensions from the AVC syntax and pairs
  them with decoded pixels pulled from a PixelSource.

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

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/Jamaika1/LTM-master-sub001/codec/h264/h264dec"
	"github.com/Jamaika1/LTM-master-sub001/codec/h264/h264dec/bits"
)

// AVC NAL unit types the adapter distinguishes, per Table 7-1.
const (
	nalTypeSliceNonIDR = 1
	nalTypeSliceIDR    = 5
	nalTypeSPS         = 7
)

// AVCAdapter is a BaseDecoder for an Annex-B AVC/H.264 base layer. It parses
// NAL headers and sequence parameter sets to track the IDR flag and coded
// size, and draws the corresponding decoded picture from Pixels.
type AVCAdapter struct {
	Pixels PixelSource

	sps *h264dec.SPS
}

// NewAVCAdapter returns an AVCAdapter reading decoded pictures from pixels.
func NewAVCAdapter(pixels PixelSource) *AVCAdapter {
	return &AVCAdapter{Pixels: pixels}
}

// Decode parses nal (one Annex-B or packetized NAL unit, start code
// excluded) and, for a slice NAL, returns the next picture from Pixels
// tagged with the IDR flag implied by the NAL type.
func (a *AVCAdapter) Decode(nal []byte) (BasePicture, error) {
	if len(nal) == 0 {
		return BasePicture{}, errors.New("basedecoder: empty AVC NAL unit")
	}
	br := bits.NewBitReader(bytes.NewReader(nal))
	n, err := h264dec.NewNALUnit(br)
	if err != nil {
		return BasePicture{}, errors.Wrap(err, "basedecoder: parsing AVC NAL header")
	}

	switch n.Type {
	case nalTypeSPS:
		sps, err := h264dec.NewSPS(n.RBSP, false)
		if err != nil {
			return BasePicture{}, errors.Wrap(err, "basedecoder: parsing AVC SPS")
		}
		a.sps = sps
		return BasePicture{}, nil
	case nalTypeSliceIDR, nalTypeSliceNonIDR:
		img, err := a.Pixels.Next()
		if err != nil {
			return BasePicture{}, errors.Wrap(err, "basedecoder: reading AVC base pixels")
		}
		return BasePicture{Image: img, IsIDR: n.Type == nalTypeSliceIDR}, nil
	default:
		// Parameter sets, SEI, filler: no picture produced for this NAL.
		return BasePicture{}, nil
	}
}
