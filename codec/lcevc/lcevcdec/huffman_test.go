package lcevcdec

import (
	"testing"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
)

// encodeHuffmanTable packs a canonical table in wire format: 5-bit count,
// then N x (8-bit symbol, 5-bit length). It mirrors PutVarint in spirit:
// an encoder-side helper that exists purely to make the decoder testable.
func encodeHuffmanTable(t *testing.T, entries []huffmanCodeLength) []byte {
	t.Helper()
	var buf []byte
	var bitBuf uint64
	var nbits uint

	push := func(v uint32, n uint) {
		bitBuf = (bitBuf << n) | uint64(v)
		nbits += n
		for nbits >= 8 {
			nbits -= 8
			buf = append(buf, byte(bitBuf>>nbits))
		}
	}

	push(uint32(len(entries)), 5)
	for _, e := range entries {
		push(uint32(e.symbol), 8)
		push(uint32(e.length), 5)
	}
	if nbits > 0 {
		buf = append(buf, byte(bitBuf<<(8-nbits)))
	}
	return buf
}

func TestHuffmanCanonicalRoundTrip(t *testing.T) {
	entries := []huffmanCodeLength{
		{symbol: 'a', length: 2},
		{symbol: 'b', length: 1},
		{symbol: 'c', length: 3},
		{symbol: 'd', length: 3},
	}
	wire := encodeHuffmanTable(t, entries)

	r := bits.NewReader(wire)
	dec, err := ReadHuffmanTable(r)
	if err != nil {
		t.Fatalf("ReadHuffmanTable: %v", err)
	}

	// Canonical codes for these lengths: b=0 (len1), a=10 (len2), c=110
	// (len3), d=111 (len3).
	codes := []struct {
		bits   []bool
		symbol byte
	}{
		{[]bool{false}, 'b'},
		{[]bool{true, false}, 'a'},
		{[]bool{true, true, false}, 'c'},
		{[]bool{true, true, true}, 'd'},
	}

	for _, c := range codes {
		var packed []byte
		var bb uint64
		var nb uint
		for _, bit := range c.bits {
			v := uint32(0)
			if bit {
				v = 1
			}
			bb = (bb << 1) | uint64(v)
			nb++
		}
		packed = append(packed, byte(bb<<(8-nb)))

		dr := bits.NewReader(packed)
		sym, err := dec.Decode(dr)
		if err != nil {
			t.Fatalf("Decode(%v): %v", c.bits, err)
		}
		if sym != c.symbol {
			t.Errorf("Decode(%v) = %c, want %c", c.bits, sym, c.symbol)
		}
	}
}

func TestHuffmanInconsistentTable(t *testing.T) {
	entries := []huffmanCodeLength{
		{symbol: 'a', length: 1},
		{symbol: 'b', length: 1},
		{symbol: 'c', length: 1},
	}
	wire := encodeHuffmanTable(t, entries)
	r := bits.NewReader(wire)
	if _, err := ReadHuffmanTable(r); err == nil {
		t.Fatal("expected error for over-subscribed length-1 table, got nil")
	}
}

func TestHuffmanSingleSymbol(t *testing.T) {
	entries := []huffmanCodeLength{{symbol: 'z', length: 1}}
	wire := encodeHuffmanTable(t, entries)
	r := bits.NewReader(wire)
	dec, err := ReadHuffmanTable(r)
	if err != nil {
		t.Fatalf("ReadHuffmanTable: %v", err)
	}
	dr := bits.NewReader([]byte{0x00})
	sym, err := dec.Decode(dr)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sym != 'z' {
		t.Errorf("Decode = %c, want z", sym)
	}
}
