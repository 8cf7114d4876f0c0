/*
DESCRIPTION
  decode_test.go tests Decoder.reconstruct's base-passthrough path (no
  enhancement, no temporal layer) and the SetIDR/Config accessors, without
  needing a serialized enhancement bitstream.

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

import "testing"

func newTestDecoder(t *testing.T, width, height int) *Decoder {
	t.Helper()
	d := NewDecoder()
	cfg := &d.deserializer.Config
	cfg.HasGlobal = true
	cfg.Global = GlobalConfiguration{
		BaseDepth:          8,
		EnhancementDepth:   8,
		NumImagePlanes:     1,
		NumProcessedPlanes: 1,
		TransformBlockSize: 4,
		ScalingMode:        [NumLOQs]ScalingMode{ScalingModeNone, ScalingModeNone},
	}
	cfg.Picture = PictureConfiguration{
		EnhancementEnabled: false,
		CodingType:         CodingTypeIDR,
	}
	if err := d.deserializer.Dims.Set(cfg, width, height); err != nil {
		t.Fatalf("Dims.Set: %v", err)
	}
	return d
}

func constImage(w, h, v int) Image {
	img := Image{NumPlanes: 1, Depth: 8}
	img.Planes[0] = BuildSurface[uint16]().Fill(uint16(v), w, h).Finish()
	return img
}

func TestReconstructPassthrough(t *testing.T) {
	d := newTestDecoder(t, 4, 4)
	base := constImage(4, 4, 100)

	out, err := d.reconstruct(base, &Symbols{}, false, false)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if out.NumPlanes != 1 {
		t.Fatalf("got %d planes, want 1", out.NumPlanes)
	}
	plane := out.Plane(0)
	if plane.Width() != 4 || plane.Height() != 4 {
		t.Fatalf("got %dx%d, want 4x4", plane.Width(), plane.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := plane.Read(x, y); got != 100 {
				t.Errorf("(%d,%d): got %d, want 100", x, y, got)
			}
		}
	}
}

func TestReconstructRejectsDimensionMismatch(t *testing.T) {
	d := newTestDecoder(t, 4, 4)
	base := constImage(8, 8, 0)

	_, err := d.reconstruct(base, &Symbols{}, false, false)
	if err != ErrDimensionMismatch {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestSetIDR(t *testing.T) {
	d := NewDecoder()
	d.SetIDR(true)
	if d.Config().Picture.CodingType != CodingTypeIDR {
		t.Error("SetIDR(true) did not set CodingTypeIDR")
	}
	d.SetIDR(false)
	if d.Config().Picture.CodingType != CodingTypeNonIDR {
		t.Error("SetIDR(false) did not set CodingTypeNonIDR")
	}
}
