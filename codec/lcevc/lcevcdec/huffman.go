/*
DESCRIPTION
  huffman.go decodes the canonical prefix-code tables carried inline in the
  enhancement bitstream ahead of Huffman-coded entropy data: a 5-bit symbol
  count followed by that many (8-bit symbol, 5-bit code length) pairs, which
  are rebuilt into a canonical (shortest-codes-first) binary decode tree.

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

import (
	"sort"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
)

// maxHuffmanSymbols bounds the symbol count field (5 bits, so at most 31),
// but §7 additionally treats more than 256 entries as malformed; both limits
// are enforced defensively since a corrupt count otherwise drives an
// unbounded read loop.
const maxHuffmanSymbols = 256

// huffmanNode is one node of the canonical decode tree. Internal nodes carry
// two children indexed by the next bit read off the bitstream; a leaf node
// has both children nil and carries the decoded symbol.
type huffmanNode struct {
	leaf     bool
	symbol   byte
	children [2]*huffmanNode
}

// HuffmanDecoder decodes symbols against one canonical prefix-code table.
// The zero value is not usable; construct with ReadHuffmanTable.
type HuffmanDecoder struct {
	root *huffmanNode
}

type huffmanCodeLength struct {
	symbol byte
	length uint8
}

// ReadHuffmanTable reads one canonical code table from r: a 5-bit count N,
// then N × (8-bit symbol, 5-bit length), and builds the corresponding
// HuffmanDecoder. Code lengths of 0 are skipped (the symbol is unused).
func ReadHuffmanTable(r *bits.Reader) (*HuffmanDecoder, error) {
	n, err := r.U(5)
	if err != nil {
		return nil, err
	}
	if int(n) > maxHuffmanSymbols {
		return nil, malformed("huffman table: symbol count %d exceeds %d", n, maxHuffmanSymbols)
	}

	entries := make([]huffmanCodeLength, 0, n)
	for i := uint32(0); i < n; i++ {
		sym, err := r.U(8)
		if err != nil {
			return nil, err
		}
		length, err := r.U(5)
		if err != nil {
			return nil, err
		}
		if length > 0 {
			entries = append(entries, huffmanCodeLength{symbol: byte(sym), length: uint8(length)})
		}
	}

	root, err := buildCanonicalHuffman(entries)
	if err != nil {
		return nil, err
	}
	return &HuffmanDecoder{root: root}, nil
}

// buildCanonicalHuffman assigns canonical codes to entries sorted by
// (length, symbol) — the first code at the shortest length is 0, and each
// subsequent code is the previous plus one, left-shifted whenever the
// length increases — then inserts each (code, length, symbol) into a binary
// decode tree.
func buildCanonicalHuffman(entries []huffmanCodeLength) (*huffmanNode, error) {
	sorted := make([]huffmanCodeLength, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].length != sorted[j].length {
			return sorted[i].length < sorted[j].length
		}
		return sorted[i].symbol < sorted[j].symbol
	})

	root := &huffmanNode{}
	code := 0
	length := 0
	for _, e := range sorted {
		code <<= uint(e.length) - uint(length)
		length = int(e.length)
		if err := insertHuffmanCode(root, code, e.length, e.symbol); err != nil {
			return nil, err
		}
		code++
	}
	return root, nil
}

func insertHuffmanCode(root *huffmanNode, code int, length uint8, symbol byte) error {
	node := root
	for i := int(length) - 1; i >= 0; i-- {
		bit := (code >> uint(i)) & 1
		next := node.children[bit]
		if next == nil {
			next = &huffmanNode{}
			node.children[bit] = next
		} else if next.leaf {
			return malformed("huffman table: inconsistent code lengths for symbol %d", symbol)
		}
		node = next
	}
	if node.leaf || node.children[0] != nil || node.children[1] != nil {
		return malformed("huffman table: inconsistent code lengths for symbol %d", symbol)
	}
	node.leaf = true
	node.symbol = symbol
	return nil
}

// Decode walks the tree one bit at a time until it reaches a leaf, returning
// its symbol.
func (h *HuffmanDecoder) Decode(r *bits.Reader) (byte, error) {
	node := h.root
	if node == nil {
		return 0, malformed("huffman: empty decode tree")
	}
	for !node.leaf {
		bit, err := r.Bit()
		if err != nil {
			return 0, err
		}
		idx := 0
		if bit {
			idx = 1
		}
		next := node.children[idx]
		if next == nil {
			return 0, malformed("huffman: code not present in table")
		}
		node = next
	}
	return node.symbol, nil
}
