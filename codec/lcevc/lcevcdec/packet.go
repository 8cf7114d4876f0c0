/*
DESCRIPTION
  packet.go provides Packet and PacketView, the immutable byte-span types
  that carry enhancement bitstream data (and, via Sub(), sub-spans
  extracted mid-parse) from the deserializer down into the entropy decoders.

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
	"fmt"
	"hash/crc32"
	"sync"
)

// buffer is the shared, immutable storage backing one or more Packets.
// Go's garbage collector keeps it alive for as long as any Packet or
// PacketView references its data slice, so there is no manual refcount;
// this struct exists purely to hold the lazily-computed checksum of the
// whole buffer, which every Packet spanning all of it shares.
type buffer struct {
	data []byte

	once     sync.Once
	checksum uint32
}

func (b *buffer) crc() uint32 {
	b.once.Do(func() {
		b.checksum = crc32.ChecksumIEEE(b.data)
	})
	return b.checksum
}

// Packet is an immutable byte span with a producer timestamp, used to
// carry enhancement-bitstream bytes (or a borrowed sub-span of them)
// between the deserializer and the entropy decoders. Packets sliced from
// the same origin buffer via Sub share that buffer; only a Packet spanning
// the whole buffer uses its lazily-computed, cached checksum.
type Packet struct {
	name      string
	timestamp uint64
	buf       *buffer
	offset    int
	size      int
}

// NewPacket wraps data as a new top-level Packet with the given timestamp.
// data is taken as owned; callers should not mutate it afterwards.
func NewPacket(name string, timestamp uint64, data []byte) Packet {
	return Packet{name: name, timestamp: timestamp, buf: &buffer{data: data}, offset: 0, size: len(data)}
}

// Name returns the packet's diagnostic name.
func (p Packet) Name() string { return p.name }

// Timestamp returns the packet's monotone producer timestamp.
func (p Packet) Timestamp() uint64 { return p.timestamp }

// Size returns the packet's length in bytes.
func (p Packet) Size() int { return p.size }

// Empty reports whether the packet carries no bytes.
func (p Packet) Empty() bool { return p.size == 0 }

// Checksum returns a CRC32 checksum of the packet's bytes. For a packet
// spanning its whole buffer the value is computed once and cached on the
// buffer; for a sub-span it is recomputed on every call.
func (p Packet) Checksum() uint64 {
	if p.buf == nil {
		return 0
	}
	if p.offset == 0 && p.size == len(p.buf.data) {
		return uint64(p.buf.crc())
	}
	return uint64(crc32.ChecksumIEEE(p.slice()))
}

func (p Packet) slice() []byte {
	if p.buf == nil {
		return nil
	}
	return p.buf.data[p.offset : p.offset+p.size]
}

// Sub returns a new Packet referencing the same underlying buffer,
// spanning [offset, offset+size) of this packet's own span, without
// copying the bytes.
func (p Packet) Sub(offset, size int) (Packet, error) {
	if offset < 0 || size < 0 || offset+size > p.size {
		return Packet{}, fmt.Errorf("lcevcdec: packet sub-range [%d,%d) out of bounds for size %d", offset, offset+size, p.size)
	}
	return Packet{name: p.name, timestamp: p.timestamp, buf: p.buf, offset: p.offset + offset, size: size}, nil
}

// View returns a scoped read-only view of the packet's bytes. The returned
// slice must not be retained past the Packet's own lifetime, mirroring the
// borrow-scoped PacketView of the reference implementation.
func (p Packet) View() PacketView {
	return PacketView{data: p.slice()}
}

// Dump renders the packet contents as a hex string, for diagnostics.
func (p Packet) Dump() string {
	return fmt.Sprintf("%x", p.slice())
}

// PacketView is a scoped, read-only borrow of a Packet's bytes.
type PacketView struct {
	data []byte
}

// Data returns the borrowed byte slice.
func (v PacketView) Data() []byte { return v.data }

// Size returns the length of the borrowed span.
func (v PacketView) Size() int { return len(v.data) }
