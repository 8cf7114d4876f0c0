/*
DESCRIPTION
  nal.go implements Annex-B style NAL-unit encapsulation and RBSP escaping
  for LCEVC enhancement data carried inside a base video elementary stream
  (§6): splitting a byte stream on start codes, and escaping/unescaping the
  emulation-prevention byte within a NAL unit's payload.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package nal provides Annex-B NAL-unit scanning and RBSP escaping for
// extracting LCEVC enhancement data payloads embedded in a base elementary
// stream (as a user-data or SEI-carried NAL unit, per the host codec).
package nal

import (
	"bytes"

	"github.com/pkg/errors"
)

// ErrNoStartCode is returned by Split when a buffer carries no Annex-B
// start code at all.
var ErrNoStartCode = errors.New("nal: no start code found")

// startCode3 and startCode4 are the two legal Annex-B prefixes.
var (
	startCode3 = []byte{0x00, 0x00, 0x01}
	startCode4 = []byte{0x00, 0x00, 0x00, 0x01}
)

// Split scans an Annex-B byte stream and returns the byte range of each NAL
// unit (header byte plus RBSP, start code excluded), in stream order.
func Split(stream []byte) ([][]byte, error) {
	starts := findStartCodes(stream)
	if len(starts) == 0 {
		return nil, ErrNoStartCode
	}

	units := make([][]byte, 0, len(starts))
	for i, s := range starts {
		end := len(stream)
		if i+1 < len(starts) {
			end = starts[i+1].codeStart
		}
		// Trailing zero bytes before the next start code are not part of
		// this NAL unit's RBSP.
		unitEnd := end
		for unitEnd > s.dataStart && stream[unitEnd-1] == 0x00 {
			unitEnd--
		}
		units = append(units, stream[s.dataStart:unitEnd])
	}
	return units, nil
}

type startCodeLoc struct {
	codeStart int
	dataStart int
}

// findStartCodes locates every 3- or 4-byte Annex-B start code in stream.
func findStartCodes(stream []byte) []startCodeLoc {
	var locs []startCodeLoc
	i := 0
	for {
		idx := bytes.Index(stream[i:], startCode3)
		if idx < 0 {
			break
		}
		codeStart := i + idx
		dataStart := codeStart + len(startCode3)
		if codeStart > 0 && stream[codeStart-1] == 0x00 {
			// The 3-byte code is the tail of a 4-byte code.
			codeStart--
		}
		locs = append(locs, startCodeLoc{codeStart: codeStart, dataStart: dataStart})
		i = dataStart
	}
	return locs
}

// Encapsulate prepends a 4-byte Annex-B start code to a NAL unit's
// already-escaped payload.
func Encapsulate(payload []byte) []byte {
	out := make([]byte, 0, len(startCode4)+len(payload))
	out = append(out, startCode4...)
	out = append(out, payload...)
	return out
}

// EscapeRBSP inserts an emulation_prevention_three_byte (0x03) after every
// two-byte run of 0x00 0x00 immediately followed by a byte <= 0x03, so the
// resulting EBSP contains no accidental start-code prefix.
func EscapeRBSP(rbsp []byte) []byte {
	out := make([]byte, 0, len(rbsp)+len(rbsp)/3+1)
	zeros := 0
	for _, b := range rbsp {
		if zeros >= 2 && b <= 0x03 {
			out = append(out, 0x03)
			zeros = 0
		}
		out = append(out, b)
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}

// UnescapeRBSP removes emulation_prevention_three_byte occurrences from an
// EBSP payload, recovering the original RBSP.
func UnescapeRBSP(ebsp []byte) []byte {
	out := make([]byte, 0, len(ebsp))
	zeros := 0
	for i := 0; i < len(ebsp); i++ {
		b := ebsp[i]
		if zeros >= 2 && b == 0x03 {
			zeros = 0
			continue
		}
		out = append(out, b)
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}
