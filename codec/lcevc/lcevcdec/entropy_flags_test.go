package lcevcdec

import (
	"testing"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
)

func TestDecodeFlagsRunCoded(t *testing.T) {
	// first symbol byte = 0xff (non-zero -> true/0xff), run of 3.
	raw := []byte{0xff, 0x03}
	r := bits.NewReader(raw)
	surf, err := DecodeFlags(r, 3, 1)
	if err != nil {
		t.Fatalf("DecodeFlags: %v", err)
	}
	for x := 0; x < 3; x++ {
		if got := surf.Read(x, 0); got != 0xff {
			t.Errorf("surf.Read(%d,0) = %#x, want 0xff", x, got)
		}
	}
}

func TestDecodeFlagsSwitchesSymbol(t *testing.T) {
	// symbol=true, run=1; then symbol flips false, run=2.
	raw := []byte{0x01, 0x01, 0x02}
	r := bits.NewReader(raw)
	surf, err := DecodeFlags(r, 3, 1)
	if err != nil {
		t.Fatalf("DecodeFlags: %v", err)
	}
	want := []uint8{0xff, 0x00, 0x00}
	for x, w := range want {
		if got := surf.Read(x, 0); got != w {
			t.Errorf("surf.Read(%d,0) = %#x, want %#x", x, got, w)
		}
	}
}
