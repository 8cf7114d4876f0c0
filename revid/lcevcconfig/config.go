/*
DESCRIPTION
  config.go defines Config, the CLI-facing configuration for
  cmd/lcevc-decode: the base/enhancement file paths, base codec selection,
  and diagnostic options the command line exposes, carried as a plain
  struct of public fields validated by an explicit Validate method, the same
  shape as revid/config.Config.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package lcevcconfig holds the command-line configuration for the LCEVC
// decode driver.
package lcevcconfig

import (
	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// BaseCodec names the external codec that produced the base reconstruction.
type BaseCodec int

const (
	BaseCodecNone BaseCodec = iota
	BaseCodecAVC
	BaseCodecHEVC
	BaseCodecVVC
	BaseCodecEVC
	BaseCodecYUV
)

// Config provides the parameters relevant to one lcevc-decode run. A new
// Config must be passed through Validate before use; zero-value fields are
// defaulted there the way revid/config.Config defaults unset fields.
type Config struct {
	// EnhancementPath is the LCEVC enhancement bitstream file (Annex-B NAL
	// stream, §6).
	EnhancementPath string

	// BasePath is the external base reconstruction file: an Annex-B AVC/HEVC
	// bytestream, or a raw planar YUV file when Codec is BaseCodecYUV.
	BasePath string

	// OutputPath is the reconstructed enhanced picture sequence, written as
	// planar YUV.
	OutputPath string

	// Codec selects the BaseDecoder adapter basedecoder wires up for BasePath.
	Codec BaseCodec

	// BaseWidth, BaseHeight and BaseDepth describe BasePath's planar layout
	// when Codec is BaseCodecYUV, since a raw YUV file carries no header.
	BaseWidth, BaseHeight, BaseDepth int

	// ApplyEnhancement, when false, passes the base reconstruction straight
	// through (used to measure the base layer's own PSNR for a --report run).
	ApplyEnhancement bool

	// DitheringSwitch enables the dithering pass signalled by the bitstream
	// when true; set false to force it off regardless of signalling.
	DitheringSwitch bool

	// ReportPath, if non-empty, writes a luma PSNR diagnostic chart there
	// after decoding completes.
	ReportPath string

	// WatchDir, if non-empty, names a directory whose newly created files
	// the CLI logs; BasePath is not swapped.
	WatchDir string

	// LogPath rotates diagnostic logging through lumberjack.v2 at this path;
	// empty logs to stderr only.
	LogPath string

	// Journald, when true, additionally sinks logs to the systemd journal.
	Journald bool

	// Logger receives diagnostics from every component Config wires up.
	Logger logging.Logger
}

// Validate checks Config for missing or contradictory fields, and returns
// an error describing the first one found.
func (c *Config) Validate() error {
	if c.EnhancementPath == "" {
		return errors.New("lcevcconfig: EnhancementPath not set")
	}
	if c.Codec == BaseCodecNone && c.BasePath != "" {
		return errors.New("lcevcconfig: BasePath set without a Codec")
	}
	if c.Codec == BaseCodecYUV {
		if c.BaseWidth <= 0 || c.BaseHeight <= 0 {
			return errors.New("lcevcconfig: BaseWidth/BaseHeight required for a raw YUV base")
		}
		if c.BaseDepth == 0 {
			c.BaseDepth = 8
		}
	}
	if c.OutputPath == "" {
		return errors.New("lcevcconfig: OutputPath not set")
	}
	if c.Logger == nil {
		return errors.New("lcevcconfig: Logger not set")
	}
	return nil
}
