/*
DESCRIPTION
  nal_test.go tests Annex-B NAL splitting and RBSP escaping.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package nal

import (
	"bytes"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  [][]byte
	}{
		{
			name:  "single 4-byte start code",
			input: []byte{0x00, 0x00, 0x00, 0x01, 0xAB, 0xCD},
			want:  [][]byte{{0xAB, 0xCD}},
		},
		{
			name:  "two 3-byte start codes",
			input: []byte{0x00, 0x00, 0x01, 0x01, 0x02, 0x00, 0x00, 0x01, 0x03, 0x04},
			want:  [][]byte{{0x01, 0x02}, {0x03, 0x04}},
		},
		{
			name:  "trailing zero padding trimmed",
			input: []byte{0x00, 0x00, 0x01, 0xFF, 0x00, 0x00},
			want:  [][]byte{{0xFF}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Split(test.input)
			if err != nil {
				t.Fatalf("Split returned error: %v", err)
			}
			if len(got) != len(test.want) {
				t.Fatalf("got %d units, want %d", len(got), len(test.want))
			}
			for i := range got {
				if !bytes.Equal(got[i], test.want[i]) {
					t.Errorf("unit %d: got %x, want %x", i, got[i], test.want[i])
				}
			}
		})
	}
}

func TestSplitNoStartCode(t *testing.T) {
	_, err := Split([]byte{0x01, 0x02, 0x03})
	if err != ErrNoStartCode {
		t.Errorf("got error %v, want ErrNoStartCode", err)
	}
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	tests := [][]byte{
		{0x00, 0x00, 0x00},
		{0x00, 0x00, 0x01},
		{0x00, 0x00, 0x02},
		{0x00, 0x00, 0x03},
		{0xAB, 0x00, 0x00, 0x00, 0xCD},
		{},
	}

	for _, rbsp := range tests {
		escaped := EscapeRBSP(rbsp)
		got := UnescapeRBSP(escaped)
		if !bytes.Equal(got, rbsp) {
			t.Errorf("round trip of %x: got %x after escape %x", rbsp, got, escaped)
		}
	}
}

func TestEscapeRBSPInsertsMarker(t *testing.T) {
	got := EscapeRBSP([]byte{0x00, 0x00, 0x01})
	want := []byte{0x00, 0x00, 0x03, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestEncapsulate(t *testing.T) {
	got := Encapsulate([]byte{0xAB})
	want := []byte{0x00, 0x00, 0x00, 0x01, 0xAB}
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}
