/*
DESCRIPTION
  entropy_residuals.go decodes one coefficient layer's residual symbols into
  a Surface, in either full raster order (EncodedData) or coding-unit tiled
  order (EncodedDataTiled), per §4.3.

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

// Residual symbol source states.
const (
	residualStateLSB = iota
	residualStateMSB
	residualStateZero
	residualStateCount
)

// residualEmptyFill is the constant byte a disabled-entropy residual layer
// decodes as: bit 0 clear (no MSB follows), bit 7 clear (no run), bits 6:1
// = 32, which the 0x40 bias maps to pel 0.
const residualEmptyFill = 0x40

type rlePel struct {
	pel           int16
	zeroRunlength uint32
}

// decodeResidualPel reads one (pel, zero_runlength) pair per the three-step
// procedure of §4.3: LSB byte, optional MSB byte, optional MSB-first
// multi-byte zero run.
func decodeResidualPel(s *symbolSource) (rlePel, error) {
	var r rlePel

	symbol, err := s.get(residualStateLSB)
	if err != nil {
		return r, err
	}

	if symbol&1 != 0 {
		lsb := symbol
		msb, err := s.get(residualStateMSB)
		if err != nil {
			return r, err
		}
		v := int32((((uint32(msb) & 0x7f) << 8) | (uint32(lsb) & 0xfe)) >> 1)
		r.pel = int16(v - 0x2000)
	} else {
		v := int32(symbol&0x7e) - 0x40
		r.pel = int16(v >> 1)
	}

	if symbol&0x80 != 0 {
		var run uint32
		for {
			c, err := s.get(residualStateZero)
			if err != nil {
				return r, err
			}
			run = (run << 7) | uint32(c&0x7f)
			if c&0x80 == 0 {
				break
			}
		}
		r.zeroRunlength = run
	}

	return r, nil
}

// DecodeResiduals decodes one layer's residual coefficients into a
// width x height int16 Surface in raster order.
func DecodeResiduals(r *bits.Reader, width, height int, entropyEnabled, rleOnly bool) (Surface[int16], error) {
	src := newSymbolSource(residualStateCount, entropyEnabled, rleOnly, r, residualEmptyFill)
	if err := src.start(); err != nil {
		return Surface[int16]{}, err
	}

	b := BuildSurface[int16]().Reserve(width, height)

	var current rlePel
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if current.zeroRunlength > 0 {
				b.Write(x, y, 0)
				current.zeroRunlength--
				continue
			}
			pel, err := decodeResidualPel(src)
			if err != nil {
				return Surface[int16]{}, err
			}
			current = pel
			b.Write(x, y, pel.pel)
		}
	}

	return b.Finish(), nil
}

// DecodeResidualsTiled decodes one layer's residual coefficients into a
// width x height int16 Surface in coding-unit order: tiles of
// 32/transformBlockSize layer positions on a side, each walked in raster
// order, tiles themselves walked in raster order.
func DecodeResidualsTiled(r *bits.Reader, width, height, transformBlockSize int, entropyEnabled, rleOnly bool) (Surface[int16], error) {
	src := newSymbolSource(residualStateCount, entropyEnabled, rleOnly, r, residualEmptyFill)
	if err := src.start(); err != nil {
		return Surface[int16]{}, err
	}

	b := BuildSurface[int16]().Reserve(width, height)

	d := 32 / transformBlockSize
	if d <= 0 {
		return Surface[int16]{}, unsupported("transform_block_size %d yields non-positive tile divisor", transformBlockSize)
	}

	var current rlePel
	for ty := 0; ty < height; ty += d {
		for tx := 0; tx < width; tx += d {
			yEnd := min(ty+d, height)
			xEnd := min(tx+d, width)
			for y := ty; y < yEnd; y++ {
				for x := tx; x < xEnd; x++ {
					if current.zeroRunlength > 0 {
						b.Write(x, y, 0)
						current.zeroRunlength--
						continue
					}
					pel, err := decodeResidualPel(src)
					if err != nil {
						return Surface[int16]{}, err
					}
					current = pel
					b.Write(x, y, pel.pel)
				}
			}
		}
	}

	return b.Finish(), nil
}
