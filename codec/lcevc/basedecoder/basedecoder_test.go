/*
DESCRIPTION
  basedecoder_test.go tests the YUV passthrough and HEVC header
  classification adapters.

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
	"errors"
	"io"
	"testing"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"
)

type fakeSource struct {
	images []lcevcdec.Image
	i      int
}

func (f *fakeSource) Next() (lcevcdec.Image, error) {
	if f.i >= len(f.images) {
		return lcevcdec.Image{}, io.EOF
	}
	img := f.images[f.i]
	f.i++
	return img, nil
}

func oneImage() lcevcdec.Image {
	return lcevcdec.Image{NumPlanes: 1, Depth: 8}
}

func TestYUVAdapterAlwaysIDR(t *testing.T) {
	a := NewYUVAdapter(&fakeSource{images: []lcevcdec.Image{oneImage()}})
	pic, err := a.Decode([]byte{0x00})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !pic.IsIDR {
		t.Error("YUVAdapter picture should always be IDR")
	}
}

func TestYUVAdapterExhausted(t *testing.T) {
	a := NewYUVAdapter(&fakeSource{})
	_, err := a.Decode([]byte{0x00})
	if !errors.Is(err, io.EOF) {
		t.Errorf("got %v, want an io.EOF-wrapping error", err)
	}
}

func TestHEVCAdapterClassifiesIDR(t *testing.T) {
	tests := []struct {
		name     string
		nalType  byte
		wantIDR  bool
		wantSkip bool
	}{
		{name: "IDR_W_RADL", nalType: 19, wantIDR: true},
		{name: "IDR_N_LP", nalType: 20, wantIDR: true},
		{name: "CRA_NUT", nalType: 21, wantIDR: true},
		{name: "TRAIL_R", nalType: 1, wantIDR: false},
		{name: "VPS (non-VCL)", nalType: 32, wantSkip: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := NewHEVCAdapter(&fakeSource{images: []lcevcdec.Image{oneImage()}})
			header := []byte{test.nalType << 1, 0x00}
			pic, err := a.Decode(header)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if test.wantSkip {
				if pic.Image.NumPlanes != 0 {
					t.Errorf("non-VCL NAL should produce no picture, got %+v", pic)
				}
				return
			}
			if pic.IsIDR != test.wantIDR {
				t.Errorf("got IsIDR %v, want %v", pic.IsIDR, test.wantIDR)
			}
		})
	}
}
