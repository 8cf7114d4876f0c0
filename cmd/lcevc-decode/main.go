/*
DESCRIPTION
  lcevc-decode is a command line driver that reconstructs an enhanced
  picture sequence from an LCEVC enhancement bitstream and an externally
  decoded base reconstruction, writing the result as planar YUV.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the lcevc-decode command line driver.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/coreos/go-systemd/journal"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/basedecoder"
	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"
	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/nal"
	"github.com/Jamaika1/LTM-master-sub001/container/yuv"
	"github.com/Jamaika1/LTM-master-sub001/container/yuv/stats"
	"github.com/Jamaika1/LTM-master-sub001/revid/lcevcconfig"
)

// Current software version.
const version = "v1.0.0"

// Logging configuration, matching cmd/rv's rotation policy.
const (
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

const pkg = "lcevc-decode: "

func main() {
	cfg, reportCodec := parseFlags()

	var writers []io.Writer
	if cfg.LogPath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		})
	} else {
		writers = append(writers, os.Stderr)
	}
	if cfg.Journald {
		writers = append(writers, journalWriter{})
	}
	cfg.Logger = logging.New(logVerbosity, io.MultiWriter(writers...), logSuppress)

	if err := cfg.Validate(); err != nil {
		cfg.Logger.Error(pkg+"invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	if err := run(cfg, reportCodec); err != nil {
		cfg.Logger.Error(pkg+"run failed", "error", err.Error())
		os.Exit(1)
	}
}

func parseFlags() (*lcevcconfig.Config, string) {
	cfg := &lcevcconfig.Config{}
	var codec string

	flag.StringVar(&cfg.EnhancementPath, "enhancement", "", "LCEVC enhancement bitstream path")
	flag.StringVar(&cfg.BasePath, "base", "", "base reconstruction path")
	flag.StringVar(&cfg.OutputPath, "output", "", "output YUV path")
	flag.StringVar(&codec, "base_codec", "yuv", "base codec: avc, hevc, vvc, evc, yuv")
	flag.IntVar(&cfg.BaseWidth, "base_width", 0, "base width, required for base_codec=yuv")
	flag.IntVar(&cfg.BaseHeight, "base_height", 0, "base height, required for base_codec=yuv")
	flag.IntVar(&cfg.BaseDepth, "base_depth", 8, "base bit depth, for base_codec=yuv")
	flag.BoolVar(&cfg.ApplyEnhancement, "apply_enhancement", true, "apply the enhancement layer, or pass the base through")
	flag.BoolVar(&cfg.DitheringSwitch, "dithering", true, "allow signalled dithering")
	flag.StringVar(&cfg.ReportPath, "report", "", "write a luma PSNR diagnostic chart to this path")
	flag.StringVar(&cfg.WatchDir, "watch_dir", "", "log each file created in this directory (the base file is not swapped)")
	flag.StringVar(&cfg.LogPath, "log", "", "log file path (stderr if unset)")
	flag.BoolVar(&cfg.Journald, "journald", false, "also sink logs to the systemd journal")
	showVersion := flag.Bool("version", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	switch codec {
	case "avc":
		cfg.Codec = lcevcconfig.BaseCodecAVC
	case "hevc":
		cfg.Codec = lcevcconfig.BaseCodecHEVC
	case "vvc":
		cfg.Codec = lcevcconfig.BaseCodecVVC
	case "evc":
		cfg.Codec = lcevcconfig.BaseCodecEVC
	default:
		cfg.Codec = lcevcconfig.BaseCodecYUV
	}
	return cfg, codec
}

// journalWriter adapts the systemd journal to io.Writer, the same role
// io.MultiWriter's other elements (lumberjack, stderr) play.
type journalWriter struct{}

func (journalWriter) Write(p []byte) (int, error) {
	if err := journal.Send(string(p), journal.PriInfo, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}

func run(cfg *lcevcconfig.Config, codec string) error {
	enh, err := os.Open(cfg.EnhancementPath)
	if err != nil {
		return errors.Wrap(err, pkg+"opening enhancement bitstream")
	}
	defer enh.Close()
	stream, err := io.ReadAll(enh)
	if err != nil {
		return errors.Wrap(err, pkg+"reading enhancement bitstream")
	}
	units, err := nal.Split(stream)
	if err != nil {
		return errors.Wrap(err, pkg+"splitting enhancement NAL units")
	}

	base, err := openBaseDecoder(cfg)
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return errors.Wrap(err, pkg+"creating output file")
	}
	defer out.Close()

	var watcher *fsnotify.Watcher
	if cfg.WatchDir != "" {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, pkg+"creating base-directory watcher")
		}
		defer watcher.Close()
		if err := watcher.Add(cfg.WatchDir); err != nil {
			return errors.Wrap(err, pkg+"watching base directory")
		}
		go func() {
			for ev := range watcher.Events {
				if ev.Op&fsnotify.Create != 0 {
					cfg.Logger.Info(pkg+"new base file detected", "name", ev.Name)
				}
			}
		}()
	}

	dec := lcevcdec.NewDecoder()
	dec.SetLogger(cfg.Logger)
	var writer *yuv.Writer
	var report stats.Report

	for i, rbsp := range units {
		payload := nal.UnescapeRBSP(rbsp)
		pkt := lcevcdec.NewPacket("nal", uint64(i), payload)

		basePic, err := base.Decode(payload)
		if err != nil {
			return errors.Wrapf(err, pkg+"decoding base picture %d", i)
		}
		if basePic.Image.NumPlanes == 0 {
			// This NAL carried no base picture (parameter set, SEI); nothing
			// to enhance yet.
			continue
		}

		dec.SetIDR(basePic.IsIDR)
		enhanced, err := dec.Decode(pkt, basePic.Image, cfg.ApplyEnhancement, cfg.DitheringSwitch)
		if err != nil {
			return errors.Wrapf(err, pkg+"decoding enhancement picture %d", i)
		}

		if writer == nil {
			writer = yuv.NewWriter(out, yuv.Format{
				Width: enhanced.Plane(0).Width(), Height: enhanced.Plane(0).Height(),
				Depth: enhanced.Depth, Chroma: chromaOf(enhanced.NumPlanes),
			})
		}
		if err := writer.Write(enhanced); err != nil {
			return errors.Wrapf(err, pkg+"writing picture %d", i)
		}

		if cfg.ReportPath != "" {
			psnrLuma, _ := stats.PSNR(enhanced.Plane(0), basePic.Image.Plane(0), enhanced.Depth)
			report.Add(stats.PictureStat{Index: i, PSNR: [lcevcdec.MaxNumPlanes]float64{psnrLuma}, Checksum: stats.Checksum(enhanced)})
		}
	}

	if cfg.ReportPath != "" {
		if err := report.SaveChart(cfg.ReportPath); err != nil {
			return errors.Wrap(err, pkg+"saving report chart")
		}
	}
	return nil
}

func chromaOf(numPlanes int) yuv.ChromaSubsampling {
	if numPlanes == 1 {
		return yuv.Monochrome
	}
	return yuv.Chroma420
}

func openBaseDecoder(cfg *lcevcconfig.Config) (basedecoder.BaseDecoder, error) {
	baseFile, err := os.Open(cfg.BasePath)
	if err != nil {
		return nil, errors.Wrap(err, pkg+"opening base reconstruction")
	}

	switch cfg.Codec {
	case lcevcconfig.BaseCodecYUV:
		r := yuv.NewReader(baseFile, yuv.Format{
			Width: cfg.BaseWidth, Height: cfg.BaseHeight, Depth: cfg.BaseDepth, Chroma: yuv.Chroma420,
		})
		return basedecoder.NewYUVAdapter(r), nil
	case lcevcconfig.BaseCodecAVC:
		r := yuv.NewReader(baseFile, yuv.Format{Width: cfg.BaseWidth, Height: cfg.BaseHeight, Depth: cfg.BaseDepth, Chroma: yuv.Chroma420})
		return basedecoder.NewAVCAdapter(r), nil
	case lcevcconfig.BaseCodecHEVC:
		r := yuv.NewReader(baseFile, yuv.Format{Width: cfg.BaseWidth, Height: cfg.BaseHeight, Depth: cfg.BaseDepth, Chroma: yuv.Chroma420})
		return basedecoder.NewHEVCAdapter(r), nil
	case lcevcconfig.BaseCodecVVC:
		r := yuv.NewReader(baseFile, yuv.Format{Width: cfg.BaseWidth, Height: cfg.BaseHeight, Depth: cfg.BaseDepth, Chroma: yuv.Chroma420})
		return basedecoder.NewVVCAdapter(r, nil), nil
	case lcevcconfig.BaseCodecEVC:
		r := yuv.NewReader(baseFile, yuv.Format{Width: cfg.BaseWidth, Height: cfg.BaseHeight, Depth: cfg.BaseDepth, Chroma: yuv.Chroma420})
		return basedecoder.NewEVCAdapter(r, nil), nil
	default:
		return nil, errors.Errorf(pkg+"unsupported base codec %v", cfg.Codec)
	}
}
