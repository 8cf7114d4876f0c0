/*
DESCRIPTION
  entropy_sizes.go decodes per-tile compressed payload sizes, either as
  absolute values (CompressionType_Prefix) or sign-extended deltas
  accumulated into a running value (CompressionType_Prefix_OnDiff), per
  §4.3. Tiles with entropy_enabled==false contribute size 0 without
  consuming any bits.

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

const (
	sizeStateLSB = iota
	sizeStateMSB
	sizeStateCount
)

// decodeSize reads one unsigned size: 7 bits when the LSB's bottom bit is
// clear, or 15 bits (7 low bits from the LSB symbol, 8 high bits from an
// MSB symbol) when it is set.
func decodeSize(s *symbolSource) (uint16, error) {
	l, err := s.get(sizeStateLSB)
	if err != nil {
		return 0, err
	}
	if l&1 != 0 {
		m, err := s.get(sizeStateMSB)
		if err != nil {
			return 0, err
		}
		return uint16(l>>1) + uint16(m)<<7, nil
	}
	return uint16(l >> 1), nil
}

// decodeSizeDelta reads one signed size delta using the same bit layout as
// decodeSize, but sign-extends the result from its natural high bit: bit 14
// for the 15-bit form, bit 6 for the 7-bit form.
func decodeSizeDelta(s *symbolSource) (int16, error) {
	l, err := s.get(sizeStateLSB)
	if err != nil {
		return 0, err
	}
	if l&1 != 0 {
		m, err := s.get(sizeStateMSB)
		if err != nil {
			return 0, err
		}
		r := int16(l>>1) + int16(m)<<7
		return r | ((r & 0x4000) << 1), nil
	}
	r := uint8(l >> 1)
	return int16(int8(r | ((r & 0x40) << 1))), nil
}

// CompressionTypeSizes selects the coded representation DecodeSizes uses.
type CompressionTypeSizes uint8

const (
	// CompressionPrefix decodes each in-range tile's size as an absolute
	// value.
	CompressionPrefix CompressionTypeSizes = iota
	// CompressionPrefixOnDiff decodes each in-range tile's size as a
	// signed delta against a running accumulator.
	CompressionPrefixOnDiff
)

// DecodeSizes decodes a width x height array of per-tile payload sizes.
// entropyEnabled is indexed as entropyEnabled[tileIdx+x] for the row being
// decoded, following the reference's flat per-row addressing; tiles for
// which it is false contribute 0 without consuming bits.
func DecodeSizes(r *bits.Reader, width, height int, entropyEnabled []bool, tileIdx int, compression CompressionTypeSizes) (Surface[uint16], error) {
	src := newSymbolSource(sizeStateCount, true, false, r, 0)
	if err := src.start(); err != nil {
		return Surface[uint16]{}, err
	}

	b := BuildSurface[uint16]().Reserve(width, height)

	switch compression {
	case CompressionPrefix:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if entropyEnabled[tileIdx+x] {
					v, err := decodeSize(src)
					if err != nil {
						return Surface[uint16]{}, err
					}
					b.Write(x, y, v)
				} else {
					b.Write(x, y, 0)
				}
			}
		}
	case CompressionPrefixOnDiff:
		var p uint16
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if entropyEnabled[tileIdx+x] {
					diff, err := decodeSizeDelta(src)
					if err != nil {
						return Surface[uint16]{}, err
					}
					p += uint16(diff)
					b.Write(x, y, p)
				} else {
					b.Write(x, y, 0)
				}
			}
		}
	default:
		return Surface[uint16]{}, unsupported("compression_type_size %d", compression)
	}

	return b.Finish(), nil
}
