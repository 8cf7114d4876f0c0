/*
DESCRIPTION
  stats_test.go tests PSNR and Checksum against known inputs.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stats

import (
	"math"
	"testing"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"
)

func plane(w, h int, f func(x, y int) uint16) lcevcdec.Surface[uint16] {
	return lcevcdec.BuildSurface[uint16]().Generate(w, h, f).Finish()
}

func TestPSNRIdentical(t *testing.T) {
	a := plane(4, 4, func(x, y int) uint16 { return uint16(x + y) })
	got, err := PSNR(a, a, 8)
	if err != nil {
		t.Fatalf("PSNR: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("got %v, want +Inf for identical planes", got)
	}
}

func TestPSNRDiffers(t *testing.T) {
	a := plane(4, 4, func(x, y int) uint16 { return 100 })
	b := plane(4, 4, func(x, y int) uint16 { return 102 })
	got, err := PSNR(a, b, 8)
	if err != nil {
		t.Fatalf("PSNR: %v", err)
	}
	if got <= 0 || math.IsInf(got, 0) {
		t.Errorf("got %v, want a finite positive dB value", got)
	}
}

func TestPSNRSizeMismatch(t *testing.T) {
	a := plane(4, 4, func(x, y int) uint16 { return 0 })
	b := plane(2, 2, func(x, y int) uint16 { return 0 })
	if _, err := PSNR(a, b, 8); err == nil {
		t.Error("expected an error for mismatched plane sizes")
	}
}

func TestChecksumDeterministic(t *testing.T) {
	img := lcevcdec.Image{NumPlanes: 1, Depth: 8}
	img.Planes[0] = plane(4, 4, func(x, y int) uint16 { return uint16(x * y) })

	a := Checksum(img)
	b := Checksum(img)
	if a != b {
		t.Errorf("checksum not deterministic: %s vs %s", a, b)
	}
}
