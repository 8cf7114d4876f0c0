package lcevcdec

import (
	"testing"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
)

func TestDecodeResidualPel(t *testing.T) {
	cases := []struct {
		name    string
		raw     []byte
		pel     int16
		run     uint32
	}{
		{"zero, no run", []byte{0x40}, 0, 0},
		{"msb follows, no run", []byte{0x41, 0x00}, -8160, 0},
		{"zero with short run", []byte{0xc0, 0x05}, 0, 5},
		{"msb follows with run", []byte{0xc1, 0x00, 0x02}, -8096, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := bits.NewReader(c.raw)
			src := newSymbolSource(residualStateCount, true, true, r, residualEmptyFill)
			got, err := decodeResidualPel(src)
			if err != nil {
				t.Fatalf("decodeResidualPel: %v", err)
			}
			if got.pel != c.pel || got.zeroRunlength != c.run {
				t.Errorf("decodeResidualPel(%x) = (%d, %d), want (%d, %d)", c.raw, got.pel, got.zeroRunlength, c.pel, c.run)
			}
		})
	}
}

func TestDecodeResidualsRaster(t *testing.T) {
	// Two pels: (0,0)=0 with a 1-zero run, then (2,0)=0.
	raw := []byte{0xc0, 0x01, 0x40}
	r := bits.NewReader(raw)
	surf, err := DecodeResiduals(r, 3, 1, true, true)
	if err != nil {
		t.Fatalf("DecodeResiduals: %v", err)
	}
	want := []int16{0, 0, 0}
	for x, w := range want {
		if got := surf.Read(x, 0); got != w {
			t.Errorf("surf.Read(%d,0) = %d, want %d", x, got, w)
		}
	}
}

func TestDecodeResidualsEmptyLayerIsZero(t *testing.T) {
	r := bits.NewReader(nil)
	surf, err := DecodeResiduals(r, 4, 4, false, false)
	if err != nil {
		t.Fatalf("DecodeResiduals: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if v := surf.Read(x, y); v != 0 {
				t.Fatalf("surf.Read(%d,%d) = %d, want 0", x, y, v)
			}
		}
	}
}

func TestDecodeResidualsTiledOrder(t *testing.T) {
	// transform_block_size=4 -> d=8, so an 8x8 surface is one CU tile;
	// with entropy disabled every position decodes the constant fill (0).
	r := bits.NewReader(nil)
	surf, err := DecodeResidualsTiled(r, 8, 8, 4, false, false)
	if err != nil {
		t.Fatalf("DecodeResidualsTiled: %v", err)
	}
	if surf.Width() != 8 || surf.Height() != 8 {
		t.Fatalf("unexpected surface dims %dx%d", surf.Width(), surf.Height())
	}
}
