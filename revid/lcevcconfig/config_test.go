/*
DESCRIPTION
  config_test.go tests Config.Validate.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package lcevcconfig

import (
	"testing"

	"github.com/ausocean/utils/logging"
)

type noopLogger struct{}

func (noopLogger) SetLevel(int8)                                         {}
func (noopLogger) Log(level int8, message string, params ...interface{}) {}
func (noopLogger) Debug(msg string, args ...interface{})                 {}
func (noopLogger) Info(msg string, args ...interface{})                  {}
func (noopLogger) Warning(msg string, args ...interface{})               {}
func (noopLogger) Error(msg string, args ...interface{})                 {}
func (noopLogger) Fatal(msg string, args ...interface{})                 {}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "missing enhancement path",
			cfg:     Config{OutputPath: "out.yuv", Logger: noopLogger{}},
			wantErr: true,
		},
		{
			name:    "missing output path",
			cfg:     Config{EnhancementPath: "enh.bin", Logger: noopLogger{}},
			wantErr: true,
		},
		{
			name:    "missing logger",
			cfg:     Config{EnhancementPath: "enh.bin", OutputPath: "out.yuv"},
			wantErr: true,
		},
		{
			name:    "yuv codec without dimensions",
			cfg:     Config{EnhancementPath: "enh.bin", OutputPath: "out.yuv", Codec: BaseCodecYUV, Logger: noopLogger{}},
			wantErr: true,
		},
		{
			name: "valid yuv config",
			cfg: Config{
				EnhancementPath: "enh.bin", OutputPath: "out.yuv", Codec: BaseCodecYUV,
				BaseWidth: 1920, BaseHeight: 1080, Logger: noopLogger{},
			},
			wantErr: false,
		},
		{
			name:    "base path without codec",
			cfg:     Config{EnhancementPath: "enh.bin", OutputPath: "out.yuv", BasePath: "base.bin", Logger: noopLogger{}},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := test.cfg
			err := cfg.Validate()
			if (err != nil) != test.wantErr {
				t.Errorf("got error %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

var _ logging.Logger = noopLogger{}
