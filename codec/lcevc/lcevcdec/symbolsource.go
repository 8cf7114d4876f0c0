/*
DESCRIPTION
  symbolsource.go provides the tagged symbolSource variant that every
  EntropyDecoder reads through: Constant (entropy disabled), Raw (RLE-only,
  no entropy coding) or Huffman (one canonical table per state), following
  the three SymbolSource subclasses of the reference and the design note
  that a tagged variant suits a systems language better than a virtual
  interface.

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

import "github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"

type symbolSourceKind uint8

const (
	symbolSourceConstant symbolSourceKind = iota
	symbolSourceRaw
	symbolSourceHuffman
)

// symbolSource is the per-tile symbol supply consumed by every entropy
// decoder's decode loop. It is built once via newSymbolSource and then
// started (reading any inline Huffman tables) before the first get/getByte.
type symbolSource struct {
	kind     symbolSourceKind
	r        *bits.Reader
	constant byte
	states   []*HuffmanDecoder
}

// newSymbolSource selects the variant per §4.3: entropy disabled always
// yields Constant(constant); entropy enabled with rle_only yields Raw;
// otherwise yields Huffman with numStates independent tables.
func newSymbolSource(numStates int, entropyEnabled, rleOnly bool, r *bits.Reader, constant byte) *symbolSource {
	if !entropyEnabled {
		return &symbolSource{kind: symbolSourceConstant, constant: constant}
	}
	if rleOnly {
		return &symbolSource{kind: symbolSourceRaw, r: r}
	}
	return &symbolSource{kind: symbolSourceHuffman, r: r, states: make([]*HuffmanDecoder, numStates)}
}

// start reads one canonical Huffman table per state for the Huffman
// variant; it is a no-op for Constant and Raw.
func (s *symbolSource) start() error {
	if s.kind != symbolSourceHuffman {
		return nil
	}
	for i := range s.states {
		dec, err := ReadHuffmanTable(s.r)
		if err != nil {
			return err
		}
		s.states[i] = dec
	}
	return nil
}

// get reads one symbol from the given state index.
func (s *symbolSource) get(state int) (byte, error) {
	switch s.kind {
	case symbolSourceConstant:
		return s.constant, nil
	case symbolSourceRaw:
		return s.r.Byte()
	default:
		return s.states[state].Decode(s.r)
	}
}

// getByte reads the leading "first symbol" byte used by Temporal and Flags
// to seed their run-length state machine; for Huffman sources this is a raw
// 8-bit field, not a symbol decoded against any state's table.
func (s *symbolSource) getByte() (byte, error) {
	switch s.kind {
	case symbolSourceConstant:
		return s.constant, nil
	case symbolSourceRaw:
		return s.r.Byte()
	default:
		v, err := s.r.U(8)
		return byte(v), err
	}
}
