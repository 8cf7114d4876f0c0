package lcevcdec

import (
	"testing"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
)

// bitPacker accumulates MSB-first bits across an arbitrary number of push
// calls and renders them to a byte slice, used to build synthetic
// bitstreams that mix inline Huffman tables with their coded data, exactly
// as they are laid out back to back in the real bitstream.
type bitPacker struct {
	buf   []byte
	accum uint64
	nbits uint
}

func (p *bitPacker) push(v uint32, n uint) {
	p.accum = (p.accum << n) | uint64(v)
	p.nbits += n
	for p.nbits >= 8 {
		p.nbits -= 8
		p.buf = append(p.buf, byte(p.accum>>p.nbits))
	}
}

func (p *bitPacker) pushTable(entries []huffmanCodeLength) {
	p.push(uint32(len(entries)), 5)
	for _, e := range entries {
		p.push(uint32(e.symbol), 8)
		p.push(uint32(e.length), 5)
	}
}

func (p *bitPacker) bytes() []byte {
	if p.nbits == 0 {
		return p.buf
	}
	return append(append([]byte(nil), p.buf...), byte(p.accum<<(8-p.nbits)))
}

func TestDecodeSizeSevenAndFifteenBit(t *testing.T) {
	// 7-bit form: l&1==0, value = l>>1. Encode 10 as l=20 (0x14).
	rRaw := bits.NewReader([]byte{0x14})
	rawSrc := newSymbolSource(sizeStateCount, true, true, rRaw, 0)
	v, err := decodeSize(rawSrc)
	if err != nil {
		t.Fatalf("decodeSize: %v", err)
	}
	if v != 10 {
		t.Errorf("decodeSize(0x14) = %d, want 10", v)
	}

	// 15-bit form: l&1==1. l=0x03 (l>>1=1), m=0x01 -> value = 1 + (1<<7) = 129.
	r2 := bits.NewReader([]byte{0x03, 0x01})
	src2 := newSymbolSource(sizeStateCount, true, true, r2, 0)
	v2, err := decodeSize(src2)
	if err != nil {
		t.Fatalf("decodeSize: %v", err)
	}
	if v2 != 129 {
		t.Errorf("decodeSize(0x03,0x01) = %d, want 129", v2)
	}
}

func TestDecodeSizeDeltaSignExtension(t *testing.T) {
	// 7-bit negative delta: raw r = 0x7f (bit6 set -> sign extends
	// negative). l = (r<<1)|0 = 0xfe.
	r := bits.NewReader([]byte{0xfe})
	src := newSymbolSource(sizeStateCount, true, true, r, 0)
	v, err := decodeSizeDelta(src)
	if err != nil {
		t.Fatalf("decodeSizeDelta: %v", err)
	}
	want := int16(int8(0x7f | ((0x7f & 0x40) << 1)))
	if v != want {
		t.Errorf("decodeSizeDelta(0xfe) = %d, want %d", v, want)
	}
}

func TestDecodeSizesPrefixSkipsDisabledTiles(t *testing.T) {
	// DecodeSizes always uses a Huffman symbol source (the reference
	// hardcodes entropy_enabled=true, rle_only=false for Sizes), so the
	// bitstream must start with one canonical table per state (LSB, MSB)
	// before any coded data. width=2: x=0 is disabled and consumes no
	// bits; x=1 is enabled and decodes the 7-bit value 5 from symbol
	// 0x0a, whose bottom bit is 0 so the MSB state is never consulted.
	var p bitPacker
	p.pushTable([]huffmanCodeLength{{symbol: 0x0a, length: 1}})
	p.pushTable([]huffmanCodeLength{{symbol: 0x00, length: 1}})
	p.push(0, 1) // the single valid LSB codeword (length 1, code "0")

	r := bits.NewReader(p.bytes())
	enabled := []bool{false, true}
	surf, err := DecodeSizes(r, 2, 1, enabled, 0, CompressionPrefix)
	if err != nil {
		t.Fatalf("DecodeSizes: %v", err)
	}
	if got := surf.Read(0, 0); got != 0 {
		t.Errorf("surf.Read(0,0) = %d, want 0", got)
	}
	if got := surf.Read(1, 0); got != 5 {
		t.Errorf("surf.Read(1,0) = %d, want 5", got)
	}
}
