/*
DESCRIPTION
  yuv_test.go tests planar YUV round-tripping through Writer and Reader.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package yuv

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"
)

func testImage(w, h, depth int) lcevcdec.Image {
	img := lcevcdec.Image{NumPlanes: 3, Depth: depth}
	img.Planes[0] = BuildPlane(w, h).Generate(w, h, func(x, y int) uint16 { return uint16((x + y) % (1 << depth)) }).Finish()
	img.Planes[1] = BuildPlane(w/2, h/2).Generate(w/2, h/2, func(x, y int) uint16 { return uint16(x % (1 << depth)) }).Finish()
	img.Planes[2] = BuildPlane(w/2, h/2).Generate(w/2, h/2, func(x, y int) uint16 { return uint16(y % (1 << depth)) }).Finish()
	return img
}

func TestReaderWriterRoundTrip8Bit(t *testing.T) {
	format := Format{Width: 8, Height: 4, Depth: 8, Chroma: Chroma420}
	want := testImage(8, 4, 8)

	var buf bytes.Buffer
	w := NewWriter(&buf, format)
	if err := w.Write(want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	r := NewReader(&buf, format)
	got, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	assertImagesEqual(t, got, want)

	if _, err := r.Next(); errors.Cause(err) != io.EOF {
		t.Errorf("second Next: got %v, want io.EOF", err)
	}
}

func TestReaderWriterRoundTrip10Bit(t *testing.T) {
	format := Format{Width: 6, Height: 2, Depth: 10, Chroma: Chroma444}
	want := lcevcdec.Image{NumPlanes: 3, Depth: 10}
	want.Planes[0] = BuildPlane(6, 2).Generate(6, 2, func(x, y int) uint16 { return uint16(500 + x) }).Finish()
	want.Planes[1] = BuildPlane(6, 2).Generate(6, 2, func(x, y int) uint16 { return uint16(100 + y) }).Finish()
	want.Planes[2] = BuildPlane(6, 2).Generate(6, 2, func(x, y int) uint16 { return 42 }).Finish()

	var buf bytes.Buffer
	if err := NewWriter(&buf, format).Write(want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := NewReader(&buf, format).Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	assertImagesEqual(t, got, want)
}

func assertImagesEqual(t *testing.T, got, want lcevcdec.Image) {
	t.Helper()
	if got.NumPlanes != want.NumPlanes {
		t.Fatalf("got %d planes, want %d", got.NumPlanes, want.NumPlanes)
	}
	for p := 0; p < want.NumPlanes; p++ {
		gp, wp := got.Plane(p), want.Plane(p)
		if gp.Width() != wp.Width() || gp.Height() != wp.Height() {
			t.Fatalf("plane %d: got %dx%d, want %dx%d", p, gp.Width(), gp.Height(), wp.Width(), wp.Height())
		}
		for y := 0; y < wp.Height(); y++ {
			for x := 0; x < wp.Width(); x++ {
				if gp.Read(x, y) != wp.Read(x, y) {
					t.Errorf("plane %d (%d,%d): got %d, want %d", p, x, y, gp.Read(x, y), wp.Read(x, y))
				}
			}
		}
	}
}

func TestWriterRejectsWrongPlaneCount(t *testing.T) {
	format := Format{Width: 4, Height: 2, Depth: 8, Chroma: Monochrome}
	var buf bytes.Buffer
	w := NewWriter(&buf, format)
	err := w.Write(testImage(4, 2, 8))
	if err == nil {
		t.Fatal("expected an error writing a 3-plane image against a monochrome format")
	}
}
