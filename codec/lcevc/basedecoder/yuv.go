/*
DESCRIPTION
  yuv.go provides YUVAdapter, a BaseDecoder passthrough for a base layer
  that is already raw YUV (no entropy-coded base layer at all, e.g. lossless
  capture enhanced purely for bandwidth). Every Decode call is a no-op parse
  that simply draws the next picture from Pixels; the IDR flag is fixed,
  since an uncoded sequence has no GOP structure to derive it from.

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

// YUVAdapter is a BaseDecoder for an already-decoded raw YUV base sequence.
type YUVAdapter struct {
	Pixels PixelSource
}

// NewYUVAdapter returns a YUVAdapter reading pictures from pixels.
func NewYUVAdapter(pixels PixelSource) *YUVAdapter {
	return &YUVAdapter{Pixels: pixels}
}

// Decode ignores nal and returns the next picture from Pixels, always
// marked IDR since a raw sequence has no predictive dependency to break.
func (a *YUVAdapter) Decode(nal []byte) (BasePicture, error) {
	img, err := a.Pixels.Next()
	if err != nil {
		return BasePicture{}, errors.Wrap(err, "basedecoder: reading raw YUV base pixels")
	}
	return BasePicture{Image: img, IsIDR: true}, nil
}
