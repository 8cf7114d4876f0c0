package lcevcdec

import (
	"testing"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
)

func TestDecodeTemporalDisabled(t *testing.T) {
	r := bits.NewReader(nil)
	surf, err := DecodeTemporal(r, 4, 4, 4, false, false, false)
	if err != nil {
		t.Fatalf("DecodeTemporal: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if v := surf.Read(x, y); v != TemporalPred {
				t.Fatalf("surf.Read(%d,%d) = %d, want TemporalPred", x, y, v)
			}
		}
	}
}

func TestDecodeTemporalRunCoded(t *testing.T) {
	// first symbol byte = 1 (INTR), then a run of 2.
	raw := []byte{0x01, 0x02}
	r := bits.NewReader(raw)
	surf, err := DecodeTemporal(r, 2, 1, 4, true, true, false)
	if err != nil {
		t.Fatalf("DecodeTemporal: %v", err)
	}
	for x := 0; x < 2; x++ {
		if v := surf.Read(x, 0); v != TemporalIntr {
			t.Errorf("surf.Read(%d,0) = %d, want TemporalIntr", x, v)
		}
	}
}

func TestDecodeTemporalReducedSignalling(t *testing.T) {
	// Tile is 8x8 (transform_block_size=4 -> d=8); the whole 8x1 strip
	// under test is one tile row. First symbol=1 (INTR) with a run of 1
	// marks the top-left position INTR, which under reduced signalling
	// latches the remainder of the tile to INTR without further run
	// decoding -- so only those two bytes are ever consumed.
	raw := []byte{0x01, 0x01}
	r := bits.NewReader(raw)
	surf, err := DecodeTemporal(r, 8, 1, 4, true, true, true)
	if err != nil {
		t.Fatalf("DecodeTemporal: %v", err)
	}
	for x := 0; x < 8; x++ {
		if v := surf.Read(x, 0); v != TemporalIntr {
			t.Errorf("surf.Read(%d,0) = %d, want TemporalIntr", x, v)
		}
	}
}
