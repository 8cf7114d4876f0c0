/*
DESCRIPTION
  basedecoder.go defines the BaseDecoder collaborator interface: the external
  codec that supplies the base reconstruction Decoder.Decode enhances. LCEVC
  is codec-agnostic over its base layer (§6); this package gives that
  boundary a concrete Go shape without pulling a full pixel decoder into the
  enhancement core.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package basedecoder collects the adapters that feed a base reconstruction
// to lcevcdec.Decoder.Decode. LCEVC enhances whatever base codec a stream
// names (AVC, HEVC, VVC, EVC, or an already-decoded YUV sequence); this
// package is the seam where that base decoding happens, kept out of
// lcevcdec itself.
package basedecoder

import "github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"

// BasePicture is one decoded base-layer picture: its pixels, already in
// Decoder.Decode's Image shape, plus the IDR flag the orchestrator needs to
// pass to Decoder.SetIDR before decoding the matching enhancement picture.
type BasePicture struct {
	Image lcevcdec.Image
	IsIDR bool
}

// BaseDecoder decodes one base-layer access unit (a NAL unit, or a raw frame
// for a passthrough source) into a BasePicture. Implementations are free to
// buffer reference pictures internally; Decode is called once per access
// unit in bitstream order.
type BaseDecoder interface {
	Decode(nal []byte) (BasePicture, error)
}
