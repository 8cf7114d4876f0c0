/*
DESCRIPTION
  pixelsource.go defines PixelSource, the narrow seam through which the
  avc/hevc adapters obtain decoded base-layer pixels. No package in this
  module reconstructs base pixels (h264dec parses syntax only),
  so a real deployment pairs NAL metadata parsing with an out-of-band
  decoded-pixel source, such as container/yuv's reader reading the base
  codec's own YUV dump.

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

import "github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"

// PixelSource supplies one decoded base picture per call, in the same order
// as the access units handed to the paired BaseDecoder. Next returns
// io.EOF-wrapped errors once exhausted, matching container/yuv.Reader.Next.
type PixelSource interface {
	Next() (lcevcdec.Image, error)
}
