/*
DESCRIPTION
  symbols.go defines the per-picture symbols tensor produced by Deserializer
  and consumed by Decoder.decode: residual coefficient layers plus the
  optional LOQ2 temporal mask, indexed by plane and level of quality.

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

// Symbols holds the parsed, not-yet-reconstructed per-picture data: one
// residual coefficient layer Surface per (plane, loq, layer), and, where
// signalled, one temporal mask Surface per plane at LOQ2.
type Symbols struct {
	// Residual[plane][loq][layer] is the empty Surface for layers not present this
	// picture (enhancement disabled picks up only the temporal layer).
	Residual [MaxNumPlanes][NumLOQs][MaxNumLayers]Surface[int16]

	// Temporal[plane] is the decoded TEMPORAL_PRED/TEMPORAL_INTR mask for
	// LOQ2, present only when temporal_signalling_present was set.
	Temporal [MaxNumPlanes]Surface[uint8]
	HasTemporal [MaxNumPlanes]bool
}
