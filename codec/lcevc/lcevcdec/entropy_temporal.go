/*
DESCRIPTION
  entropy_temporal.go decodes the per-transform-block temporal mask: a
  run-length coded stream of PRED/INTR symbols, optionally collapsed to one
  bit per tile under reduced signalling, per §4.3.

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

// Temporal mask values, carried as u8 so the mask itself is a plain Surface.
const (
	TemporalPred byte = 0
	TemporalIntr byte = 1
)

const (
	runStateZero = iota
	runStateOne
	runStateCount
)

// decodeRun reads a MSB-first multi-byte run length from the given symbol,
// shared by Temporal and Flags.
func decodeRun(s *symbolSource, symbol bool) (uint32, error) {
	state := runStateZero
	if symbol {
		state = runStateOne
	}
	var count uint32
	for {
		c, err := s.get(state)
		if err != nil {
			return 0, err
		}
		count = (count << 7) | uint32(c&0x7f)
		if c&0x80 == 0 {
			break
		}
	}
	return count, nil
}

// DecodeTemporal decodes the width x height temporal mask. transformBlockSize
// sets the CU tile size (32/transformBlockSize); useReducedSignalling
// collapses an entire tile to INTR the moment its top-left position decodes
// as INTR, without consuming further run bits for the rest of the tile.
func DecodeTemporal(r *bits.Reader, width, height, transformBlockSize int, entropyEnabled, rleOnly, useReducedSignalling bool) (Surface[uint8], error) {
	src := newSymbolSource(runStateCount, entropyEnabled, rleOnly, r, 0)

	if !entropyEnabled {
		return BuildSurface[uint8]().Fill(TemporalPred, width, height).Finish(), nil
	}

	if err := src.start(); err != nil {
		return Surface[uint8]{}, err
	}

	d := 32 / transformBlockSize
	if d <= 0 {
		return Surface[uint8]{}, unsupported("transform_block_size %d yields non-positive tile divisor", transformBlockSize)
	}

	first, err := src.getByte()
	if err != nil {
		return Surface[uint8]{}, err
	}
	symbol := first != 0

	count, err := decodeRun(src, symbol)
	if err != nil {
		return Surface[uint8]{}, err
	}

	b := BuildSurface[uint8]().Reserve(width, height)

	for ty := 0; ty < height; ty += d {
		for tx := 0; tx < width; tx += d {
			intraTile := false
			yEnd := min(ty+d, height)
			xEnd := min(tx+d, width)
			for y := ty; y < yEnd; y++ {
				for x := tx; x < xEnd; x++ {
					if useReducedSignalling && intraTile {
						b.Write(x, y, TemporalIntr)
						continue
					}

					for count == 0 {
						symbol = !symbol
						count, err = decodeRun(src, symbol)
						if err != nil {
							return Surface[uint8]{}, err
						}
					}

					if useReducedSignalling && symbol && tx == x && ty == y {
						intraTile = true
					}

					if symbol {
						b.Write(x, y, TemporalIntr)
					} else {
						b.Write(x, y, TemporalPred)
					}
					count--
				}
			}
		}
	}

	return b.Finish(), nil
}
