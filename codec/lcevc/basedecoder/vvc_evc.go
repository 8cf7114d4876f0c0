/*
DESCRIPTION
  vvc_evc.go provides thin BaseDecoder stand-ins for VVC and EVC base layers.
  No VVC or EVC Go decoder exists anywhere in this module's dependency
  corpus, so unlike AVCAdapter/HEVCAdapter these do not parse any NAL syntax
  at all: every call is assumed to carry a picture, and the IDR flag must be
  supplied by the caller (e.g. decoded out-of-band from the base codec's own
  tooling) rather than derived here.

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

// VVCAdapter is a BaseDecoder stand-in for a VVC/H.266 base layer. It draws
// one picture per Decode call from Pixels and reports it IDR according to
// NextIsIDR, which the caller must maintain from its own VVC demuxing.
type VVCAdapter struct {
	Pixels    PixelSource
	NextIsIDR func() bool
}

// NewVVCAdapter returns a VVCAdapter reading decoded pictures from pixels
// and IDR flags from nextIsIDR.
func NewVVCAdapter(pixels PixelSource, nextIsIDR func() bool) *VVCAdapter {
	return &VVCAdapter{Pixels: pixels, NextIsIDR: nextIsIDR}
}

// Decode ignores nal's contents and returns the next picture from Pixels.
func (a *VVCAdapter) Decode(nal []byte) (BasePicture, error) {
	img, err := a.Pixels.Next()
	if err != nil {
		return BasePicture{}, errors.Wrap(err, "basedecoder: reading VVC base pixels")
	}
	isIDR := a.NextIsIDR != nil && a.NextIsIDR()
	return BasePicture{Image: img, IsIDR: isIDR}, nil
}

// EVCAdapter is a BaseDecoder stand-in for an MPEG-5 EVC base layer,
// structured identically to VVCAdapter for the same reason: no EVC decoder
// exists in the dependency corpus to ground a syntax-parsing adapter on.
type EVCAdapter struct {
	Pixels    PixelSource
	NextIsIDR func() bool
}

// NewEVCAdapter returns an EVCAdapter reading decoded pictures from pixels
// and IDR flags from nextIsIDR.
func NewEVCAdapter(pixels PixelSource, nextIsIDR func() bool) *EVCAdapter {
	return &EVCAdapter{Pixels: pixels, NextIsIDR: nextIsIDR}
}

// Decode ignores nal's contents and returns the next picture from Pixels.
func (a *EVCAdapter) Decode(nal []byte) (BasePicture, error) {
	img, err := a.Pixels.Next()
	if err != nil {
		return BasePicture{}, errors.Wrap(err, "basedecoder: reading EVC base pixels")
	}
	isIDR := a.NextIsIDR != nil && a.NextIsIDR()
	return BasePicture{Image: img, IsIDR: isIDR}, nil
}
