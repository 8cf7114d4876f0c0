/*
DESCRIPTION
  entropy_flags.go decodes the per-tile entropy_enabled flag array used by
  the compressed per-tile size tables (EncodedDataTiled), with the same
  run-length scheme as entropy_temporal.go but over the full surface in
  plain raster order and no tiling concept of its own.

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

// DecodeFlags decodes a width x height array of 0x00/0xFF flags. It always
// uses RLE-only Huffman-free symbols (entropy_enabled=true, rle_only=true
// at the outer call site, per the reference's fixed create_symbol_source(…,
// true, true, …) for this decoder).
func DecodeFlags(r *bits.Reader, width, height int) (Surface[uint8], error) {
	src := newSymbolSource(runStateCount, true, true, r, 0)
	if err := src.start(); err != nil {
		return Surface[uint8]{}, err
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

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for count == 0 {
				symbol = !symbol
				count, err = decodeRun(src, symbol)
				if err != nil {
					return Surface[uint8]{}, err
				}
			}
			if symbol {
				b.Write(x, y, 0xff)
			} else {
				b.Write(x, y, 0x00)
			}
			count--
		}
	}

	return b.Finish(), nil
}
