// +build gofuzz

/*
DESCRIPTION
  fuzz.go provides a function with the required signature such that it may
  be accessed by go-fuzz, exercising ReadHuffmanTable's canonical-code
  construction against arbitrary bitstreams. A malformed code-length table
  (one that cannot form a valid canonical Huffman tree) must be rejected
  with an error, never a panic.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fuzzHuffmanTable

import (
	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"
)

// Fuzz builds a Huffman table from data and, if that succeeds, decodes
// symbols from the remainder of data until the reader is exhausted or an
// error is returned.
func Fuzz(data []byte) int {
	r := bits.NewReader(data)
	table, err := lcevcdec.ReadHuffmanTable(r)
	if err != nil {
		return 0
	}

	for r.Len() > 0 {
		if _, err := table.Decode(r); err != nil {
			return 1
		}
	}
	return 1
}
