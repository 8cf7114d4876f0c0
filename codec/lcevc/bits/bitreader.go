/*
DESCRIPTION
  bitreader.go provides the MSB-first bit reader used to parse the LCEVC
  enhancement bitstream: fixed-width fields, unsigned/signed exp-Golomb
  codes and the multi-byte varint encoding used for payload sizes and
  entropy-coded run lengths.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides an MSB-first bit reader over a byte slice, with
// support for fixed-width fields, exp-Golomb codes and multi-byte varints,
// as used by the LCEVC enhancement bitstream.
package bits

import (
	"github.com/pkg/errors"
)

// ErrOutOfRange is returned when a read would consume more bits than remain
// in the underlying buffer.
var ErrOutOfRange = errors.New("bits: read past end of buffer")

// ErrVarintTooLong is returned when a multi-byte varint exceeds 8 continuation
// groups without terminating.
var ErrVarintTooLong = errors.New("bits: varint exceeds 8 bytes")

// Reader is an MSB-first bit reader over an in-memory byte buffer.
//
// Unlike codec/h264/h264dec/bits.BitReader, which streams from an io.Reader,
// Reader operates directly on a byte slice because LCEVC syntax blocks are
// always parsed from a fully buffered Packet (see lcevcdec.Packet) — there is
// no need to support incremental network reads at this layer.
type Reader struct {
	buf     []byte
	bytePos int
	bitPos  uint // 0-7, bits already consumed from buf[bytePos]
	labels  []string
}

// NewReader returns a new Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of bits remaining in the reader.
func (r *Reader) Len() int {
	return len(r.buf)*8 - (r.bytePos*8 + int(r.bitPos))
}

// ByteAligned reports whether the reader is positioned at a byte boundary.
func (r *Reader) ByteAligned() bool {
	return r.bitPos == 0
}

// Align advances the reader to the next byte boundary, discarding any
// partially-consumed byte.
func (r *Reader) Align() {
	if r.bitPos != 0 {
		r.bytePos++
		r.bitPos = 0
	}
}

// PushLabel records a diagnostic label for scoped tracing; it has no effect
// on parsing semantics. Labels are popped with PopLabel.
func (r *Reader) PushLabel(name string) {
	r.labels = append(r.labels, name)
}

// PopLabel removes the most recently pushed label.
func (r *Reader) PopLabel() {
	if len(r.labels) > 0 {
		r.labels = r.labels[:len(r.labels)-1]
	}
}

// Label returns the current scoped label path, joined for diagnostics.
func (r *Reader) Label() string {
	s := ""
	for i, l := range r.labels {
		if i > 0 {
			s += "/"
		}
		s += l
	}
	return s
}

// U reads n bits, n in [0,32], and returns them as the low bits of a uint32.
func (r *Reader) U(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 || n > 32 {
		return 0, errors.Errorf("bits: U(%d) out of range", n)
	}
	if r.Len() < n {
		return 0, ErrOutOfRange
	}
	var v uint32
	remaining := n
	for remaining > 0 {
		avail := 8 - int(r.bitPos)
		take := avail
		if take > remaining {
			take = remaining
		}
		cur := r.buf[r.bytePos]
		shift := avail - take
		mask := byte((1 << uint(take)) - 1)
		bitsVal := (cur >> uint(shift)) & mask
		v = (v << uint(take)) | uint32(bitsVal)
		r.bitPos += uint(take)
		remaining -= take
		if r.bitPos == 8 {
			r.bitPos = 0
			r.bytePos++
		}
	}
	return v, nil
}

// Bit reads a single bit as a bool.
func (r *Reader) Bit() (bool, error) {
	v, err := r.U(1)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Byte reads the next 8 bits, which must be byte-aligned.
func (r *Reader) Byte() (byte, error) {
	v, err := r.U(8)
	return byte(v), err
}

// Bytes returns the next n bytes as a freshly sliced (but backing-shared)
// view over the reader's buffer; the reader must be byte-aligned.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if !r.ByteAligned() {
		return nil, errors.New("bits: Bytes called when not byte-aligned")
	}
	if r.bytePos+n > len(r.buf) {
		return nil, ErrOutOfRange
	}
	b := r.buf[r.bytePos : r.bytePos+n]
	r.bytePos += n
	return b, nil
}

// Ue reads an unsigned exp-Golomb-coded syntax element ue(v): a run of k
// leading zero bits terminated by a 1, followed by k further bits whose
// value (interpreted as an unsigned integer) is added to 2^k - 1.
func (r *Reader) Ue() (uint64, error) {
	nZeros := 0
	for {
		b, err := r.Bit()
		if err != nil {
			return 0, err
		}
		if b {
			break
		}
		nZeros++
		if nZeros > 63 {
			return 0, errors.New("bits: ue(v) leading zero run too long")
		}
	}
	if nZeros == 0 {
		return 0, nil
	}
	rem, err := r.U(nZeros)
	if err != nil {
		return 0, err
	}
	return (uint64(1)<<uint(nZeros) - 1) + uint64(rem), nil
}

// Se reads a signed exp-Golomb-coded syntax element se(v): ue(v) mapped so
// that 0 -> 0, odd code numbers -> positive values, even code numbers ->
// negative values.
func (r *Reader) Se() (int64, error) {
	codeNum, err := r.Ue()
	if err != nil {
		return 0, err
	}
	if codeNum%2 == 1 {
		return int64((codeNum + 1) / 2), nil
	}
	return -int64(codeNum / 2), nil
}

// Varint reads a multi-byte varint: successive 7-bit groups, MSB-first
// group order, each byte's top bit signalling whether another group
// follows. Used for payload sizes, entropy run lengths and conformance
// window offsets.
func (r *Reader) Varint() (uint64, error) {
	var v uint64
	for i := 0; i < 9; i++ {
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		v = (v << 7) | uint64(b&0x7f)
		if b&0x80 == 0 {
			return v, nil
		}
		if i == 8 {
			return 0, ErrVarintTooLong
		}
	}
	return 0, ErrVarintTooLong
}

// PutVarint appends the multi-byte varint encoding of v to dst and returns
// the extended slice. It is the encoder-side inverse of Varint, provided so
// that round-trip properties (§8) are testable without a full bitstream
// writer.
func PutVarint(dst []byte, v uint64) []byte {
	// Determine the minimum number of 7-bit groups needed.
	n := 1
	for t := v >> 7; t != 0; t >>= 7 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		group := byte((v >> uint(7*i)) & 0x7f)
		if i != 0 {
			group |= 0x80
		}
		dst = append(dst, group)
	}
	return dst
}
