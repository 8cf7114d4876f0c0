/*
DESCRIPTION
  yuv.go provides Reader and Writer for planar YUV 4:2:0/4:2:2/4:4:4 files,
  the external base-picture collaborator read by cmd/lcevc-decode and the
  basedecoder adapters' PixelSource. One pel sample is one byte at depths up
  to 8 bits, and one little-endian uint16 (as x/image/... widened formats
  do) at greater depths.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuv reads and writes planar YUV picture sequences, the on-disk
// representation this module uses to exchange base and enhanced pictures
// with the outside world.
package yuv

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"
)

// ChromaSubsampling identifies the ratio between luma and chroma plane
// dimensions, matching the divisors Dimensions derives from NumImagePlanes
// and ColourSpace.
type ChromaSubsampling int

const (
	Chroma420 ChromaSubsampling = iota
	Chroma422
	Chroma444
	Monochrome
)

// chromaDivisors returns the (width, height) divisor applied to the luma
// plane size to get each chroma plane's size.
func (c ChromaSubsampling) chromaDivisors() (int, int) {
	switch c {
	case Chroma420:
		return 2, 2
	case Chroma422:
		return 2, 1
	case Chroma444:
		return 1, 1
	default:
		return 0, 0
	}
}

// Format describes one planar YUV sequence's fixed geometry, the same
// per-sequence constants an Annex-B base decoder would otherwise derive
// from its own SPS.
type Format struct {
	Width, Height int
	Depth         int // bits per sample, 8 to 16
	Chroma        ChromaSubsampling
}

func (f Format) numPlanes() int {
	if f.Chroma == Monochrome {
		return 1
	}
	return 3
}

func (f Format) bytesPerSample() int {
	if f.Depth > 8 {
		return 2
	}
	return 1
}

func (f Format) planeDims(plane int) (int, int) {
	if plane == 0 || f.Chroma == Monochrome {
		return f.Width, f.Height
	}
	dw, dh := f.Chroma.chromaDivisors()
	return (f.Width + dw - 1) / dw, (f.Height + dh - 1) / dh
}

func (f Format) frameSize() int {
	n := 0
	for p := 0; p < f.numPlanes(); p++ {
		w, h := f.planeDims(p)
		n += w * h * f.bytesPerSample()
	}
	return n
}

// Reader sequentially reads pictures out of a planar YUV stream, implementing
// basedecoder.PixelSource.
type Reader struct {
	r   io.Reader
	fmt Format
	buf []byte
}

// NewReader returns a Reader for fmt-shaped pictures read from r.
func NewReader(r io.Reader, format Format) *Reader {
	return &Reader{r: r, fmt: format, buf: make([]byte, format.frameSize())}
}

// Next reads and returns the next picture, or an error wrapping io.EOF once
// the stream is exhausted.
func (d *Reader) Next() (lcevcdec.Image, error) {
	if _, err := io.ReadFull(d.r, d.buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return lcevcdec.Image{}, errors.Wrap(err, "yuv: reading picture")
	}

	img := lcevcdec.Image{NumPlanes: d.fmt.numPlanes(), Depth: d.fmt.Depth}
	off := 0
	bps := d.fmt.bytesPerSample()
	for p := 0; p < img.NumPlanes; p++ {
		w, h := d.fmt.planeDims(p)
		b := BuildPlane(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var v uint16
				if bps == 1 {
					v = uint16(d.buf[off])
					off++
				} else {
					v = binary.LittleEndian.Uint16(d.buf[off : off+2])
					off += 2
				}
				b.Write(x, y, v)
			}
		}
		img.Planes[p] = b.Finish()
	}
	return img, nil
}

// BuildPlane is a convenience wrapper over lcevcdec.BuildSurface[uint16] for
// this package's plane-at-a-time reads/writes.
func BuildPlane(w, h int) *lcevcdec.SurfaceBuilder[uint16] {
	return lcevcdec.BuildSurface[uint16]().Reserve(w, h)
}

// Writer sequentially appends pictures to a planar YUV stream.
type Writer struct {
	w   io.Writer
	fmt Format
	buf []byte
}

// NewWriter returns a Writer for fmt-shaped pictures written to w.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, fmt: format, buf: make([]byte, format.frameSize())}
}

// Write appends img to the stream. img must carry the same plane count and
// dimensions as the Writer's Format.
func (e *Writer) Write(img lcevcdec.Image) error {
	if img.NumPlanes != e.fmt.numPlanes() {
		return errors.Errorf("yuv: image has %d planes, format wants %d", img.NumPlanes, e.fmt.numPlanes())
	}

	off := 0
	bps := e.fmt.bytesPerSample()
	for p := 0; p < img.NumPlanes; p++ {
		w, h := e.fmt.planeDims(p)
		plane := img.Plane(p)
		if plane.Width() != w || plane.Height() != h {
			return errors.Errorf("yuv: plane %d is %dx%d, format wants %dx%d", p, plane.Width(), plane.Height(), w, h)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := plane.Read(x, y)
				if bps == 1 {
					e.buf[off] = byte(v)
					off++
				} else {
					binary.LittleEndian.PutUint16(e.buf[off:off+2], v)
					off += 2
				}
			}
		}
	}
	_, err := e.w.Write(e.buf)
	return errors.Wrap(err, "yuv: writing picture")
}
