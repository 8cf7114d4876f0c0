/*
DESCRIPTION
  surface.go provides Surface, the rectangular typed pixel buffer that flows
  between every stage of the enhancement decoder pipeline: coefficient
  layers out of the deserializer, residuals out of the inverse transform,
  temporal accumulation, and the final reconstructed plane.

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

import "golang.org/x/exp/constraints"

// Sample is the set of element kinds a Surface may hold: 8/16-bit unsigned
// for external image planes, 16-bit signed for internal fixed-point and
// residual values, 32-bit signed for the predicted-residual sum
// accumulator.
type Sample interface {
	constraints.Integer
}

// elemSize reports the size in bytes of one T, for row-stride validation.
func elemSize[T Sample]() int {
	var z T
	switch any(z).(type) {
	case uint8:
		return 1
	case uint16, int16:
		return 2
	case int32:
		return 4
	default:
		return 8
	}
}

// alignStride rounds minStride up to the smallest power of two at or above
// it, so the row stride is >= width and is a power of two (not in general a
// multiple of the width).
func alignStride(minStride int) int {
	if minStride <= 0 {
		return 0
	}
	stride := 1
	for stride < minStride {
		stride <<= 1
	}
	return stride
}

// Surface is a rectangular typed buffer of element type T. It is built via
// SurfaceBuilder, then sealed into an immutable value; all stages after
// sealing only read from it, matching the teacher's pattern of parsing into
// a mutable scratch structure before handing back a read-only result (see
// h264dec.NewSPS, which parses into a *SPS and returns it already complete).
type Surface[T Sample] struct {
	width, height int
	stride        int // in elements, not bytes
	data          []T
}

// Empty returns true if the Surface carries no payload (width or height 0).
func (s Surface[T]) Empty() bool { return s.width == 0 || s.height == 0 }

// Width returns the Surface's width in elements.
func (s Surface[T]) Width() int { return s.width }

// Height returns the Surface's height in elements.
func (s Surface[T]) Height() int { return s.height }

// Stride returns the Surface's row stride in elements.
func (s Surface[T]) Stride() int { return s.stride }

// Read returns the element at (x, y). Out-of-range coordinates panic, since
// all callers within this package derive (x, y) from the Surface's own
// dimensions.
func (s Surface[T]) Read(x, y int) T {
	return s.data[y*s.stride+x]
}

// Row returns a view of row y, length width (not stride).
func (s Surface[T]) Row(y int) []T {
	off := y * s.stride
	return s.data[off : off+s.width]
}

// SurfaceBuilder accumulates a Surface's payload before it is sealed with
// Finish. It mirrors the fluent build_from<T>().reserve/fill/generate...
// finish() builder described in spec.md §9.
type SurfaceBuilder[T Sample] struct {
	width, height int
	stride        int
	data          []T
}

// BuildSurface starts a new builder for element type T.
func BuildSurface[T Sample]() *SurfaceBuilder[T] {
	return &SurfaceBuilder[T]{}
}

// Reserve allocates a zeroed w x h buffer.
func (b *SurfaceBuilder[T]) Reserve(w, h int) *SurfaceBuilder[T] {
	b.width, b.height = w, h
	b.stride = alignStride(w)
	if b.stride == 0 {
		b.data = nil
		return b
	}
	b.data = make([]T, b.stride*h)
	return b
}

// Fill reserves a w x h buffer and fills every element with v.
func (b *SurfaceBuilder[T]) Fill(v T, w, h int) *SurfaceBuilder[T] {
	b.Reserve(w, h)
	for i := range b.data {
		b.data[i] = v
	}
	return b
}

// Generate reserves a w x h buffer and fills each element by calling f(x, y).
func (b *SurfaceBuilder[T]) Generate(w, h int, f func(x, y int) T) *SurfaceBuilder[T] {
	b.Reserve(w, h)
	for y := 0; y < h; y++ {
		row := b.data[y*b.stride : y*b.stride+w]
		for x := range row {
			row[x] = f(x, y)
		}
	}
	return b
}

// Write sets the element at (x, y) during the build phase, before Finish.
func (b *SurfaceBuilder[T]) Write(x, y int, v T) {
	b.data[y*b.stride+x] = v
}

// Finish seals the builder into an immutable Surface. The builder must not
// be reused afterwards.
func (b *SurfaceBuilder[T]) Finish() Surface[T] {
	return Surface[T]{width: b.width, height: b.height, stride: b.stride, data: b.data}
}

// Clamp16 saturates v to the signed 16-bit range, used throughout inverse
// quantization, the inverse transform and upsampling.
func Clamp16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// ClampRange clamps v to [lo, hi] inclusive.
func ClampRange[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
