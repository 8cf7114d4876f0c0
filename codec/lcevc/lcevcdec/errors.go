/*
DESCRIPTION
  errors.go defines the stable error taxonomy the core decoder returns:
  malformed bitstreams, unsupported configuration values, base/enhancement
  dimension mismatches and enhancement data appearing before a Global block.

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

import "github.com/pkg/errors"

// Sentinel errors forming the stable taxonomy of §7. Use errors.Is against
// these; the concrete errors returned by parsing code wrap one of them with
// contextual detail via github.com/pkg/errors, following the wrapping
// convention used throughout codec/h264/h264dec.
var (
	// ErrMalformedBitstream covers any out-of-buffer read, a reserved
	// syntax value, an inconsistent Huffman table, or a multi-byte
	// varint that runs past its length limit.
	ErrMalformedBitstream = errors.New("lcevcdec: malformed bitstream")

	// ErrUnsupportedConfiguration covers signalled values outside the
	// enumerated range for a field (resolution_type, transform_type,
	// chroma_sampling_type, upsample_type, scaling_mode,
	// quant_matrix_mode, profile_idc).
	ErrUnsupportedConfiguration = errors.New("lcevcdec: unsupported configuration")

	// ErrDimensionMismatch is raised when the base picture's plane
	// dimensions disagree with the dimensions derived from the signalled
	// configuration.
	ErrDimensionMismatch = errors.New("lcevcdec: base picture dimensions do not match signalled configuration")

	// ErrInvalidPicture is raised when enhancement data is encountered
	// before any Global block has been parsed.
	ErrInvalidPicture = errors.New("lcevcdec: enhancement data present without a preceding Global block")
)

// malformed wraps ErrMalformedBitstream with context, e.g.
// malformed("deserializer: reserved payload_type %d", payloadType).
func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedBitstream, format, args...)
}

// unsupported wraps ErrUnsupportedConfiguration with context.
func unsupported(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsupportedConfiguration, format, args...)
}
