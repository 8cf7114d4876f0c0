/*
DESCRIPTION
  stats.go computes the per-picture bitstream statistics the CLI driver's
  optional --report sink records: a PSNR figure per plane against a
  reference picture, and an MD5 checksum identifying the reconstructed
  picture's bytes. Never imported by lcevcdec; this is purely an external
  reporting collaborator, mirroring how cmd/rv/probe.go computes frame
  statistics outside the codec packages themselves.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package stats computes PSNR and checksum statistics for reconstructed
// LCEVC pictures, and renders a per-picture diagnostic chart.
package stats

import (
	"crypto/md5"
	"encoding/hex"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"
)

// PictureStat is one picture's worth of reported diagnostics.
type PictureStat struct {
	Index     int
	PSNR      [lcevcdec.MaxNumPlanes]float64 // dB, +Inf for an exact match
	Checksum  string                          // hex MD5 of the reconstructed picture's plane bytes
	StepWidth [lcevcdec.NumLOQs]int
}

// PSNR returns the peak signal-to-noise ratio in dB between a and b, two
// same-shaped planes at the given bit depth. Planes of differing size
// return an error, the same DimensionMismatch class lcevcdec.Decoder uses.
func PSNR(a, b lcevcdec.Surface[uint16], depth int) (float64, error) {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return 0, errors.Wrapf(lcevcdec.ErrDimensionMismatch, "stats: plane size mismatch %dx%d vs %dx%d", a.Width(), a.Height(), b.Width(), b.Height())
	}

	n := a.Width() * a.Height()
	sq := make([]float64, 0, n)
	for y := 0; y < a.Height(); y++ {
		ra, rb := a.Row(y), b.Row(y)
		for x := range ra {
			d := float64(ra[x]) - float64(rb[x])
			sq = append(sq, d*d)
		}
	}

	mse := stat.Mean(sq, nil)
	if mse == 0 {
		return math.Inf(1), nil
	}
	peak := float64(uint32(1)<<uint(depth) - 1)
	return 10 * math.Log10(peak*peak/mse), nil
}

// Checksum returns the hex MD5 digest of a picture's plane bytes, row by
// row, each sample written as two bytes, low byte first, at any depth.
func Checksum(img lcevcdec.Image) string {
	h := md5.New()
	for p := 0; p < img.NumPlanes; p++ {
		plane := img.Plane(p)
		row := make([]byte, plane.Width()*2)
		for y := 0; y < plane.Height(); y++ {
			for x, v := range plane.Row(y) {
				row[2*x] = byte(v)
				row[2*x+1] = byte(v >> 8)
			}
			h.Write(row)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Report accumulates PictureStat entries across a decode run and renders
// them to a diagnostic chart.
type Report struct {
	Pictures []PictureStat
}

// Add appends s to the report.
func (r *Report) Add(s PictureStat) { r.Pictures = append(r.Pictures, s) }

// SaveChart renders luma PSNR against picture index to a PNG at path. The
// StepWidth values of each PictureStat are not plotted.
func (r *Report) SaveChart(path string) error {
	p, err := plot.New()
	if err != nil {
		return errors.Wrap(err, "stats: creating plot")
	}
	p.Title.Text = "LCEVC reconstruction report"
	p.X.Label.Text = "picture"
	p.Y.Label.Text = "luma PSNR (dB)"

	psnr := make(plotter.XYs, len(r.Pictures))
	for i, s := range r.Pictures {
		psnr[i].X = float64(s.Index)
		psnr[i].Y = s.PSNR[0]
	}
	line, err := plotter.NewLine(psnr)
	if err != nil {
		return errors.Wrap(err, "stats: building PSNR line")
	}
	p.Add(line)
	p.Legend.Add("luma PSNR", line)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "stats: saving report chart")
	}
	return nil
}
