// +build gofuzz

/*
DESCRIPTION
  fuzz.go provides a function with the required signature such that it may
  be accessed by go-fuzz, exercising bits.Reader's varint and exp-Golomb
  decoders against arbitrary input. Unlike h264dec's cavlc fuzz target there
  is no separate C reference implementation of this bitstream to diff
  against, so this harness instead asserts the Go code never panics and
  never reports a consumed-bit count past the buffer it was given.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fuzzReader

import (
	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
)

// Fuzz drives bits.Reader with every exported decode method in sequence,
// starting over from byte 0 whenever one call errors, until the buffer is
// exhausted. A malformed buffer must be rejected with an error, never a
// panic or an out-of-range read.
func Fuzz(data []byte) int {
	r := bits.NewReader(data)
	total := r.Len()
	interesting := 0

	for r.Len() > 0 {
		before := r.Len()

		if _, err := r.Varint(); err == nil {
			interesting = 1
		}
		if _, err := r.Ue(); err == nil {
			interesting = 1
		}
		if _, err := r.Se(); err == nil {
			interesting = 1
		}
		if _, err := r.U(8); err != nil {
			break
		}

		if r.Len() >= before {
			// No forward progress; stop to avoid spinning forever on a
			// degenerate input.
			break
		}
	}

	if r.Len() > total {
		panic("bits.Reader reported more remaining bits than it was given")
	}
	return interesting
}
