/*
DESCRIPTION
  config.go defines SignaledConfiguration and its four constituent record
  groups (Sequence, Global, Picture, Surface), populated by Deserializer as
  it walks the enhancement bitstream's syntax blocks.

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

// Profile identifies the bitstream conformance profile (Sequence block).
type Profile uint8

const (
	ProfileMain Profile = iota
	ProfileMain444
)

// Colourspace identifies the chroma sampling format (Global block).
type Colourspace uint8

const (
	ColourspaceY Colourspace = iota
	ColourspaceYUV420
	ColourspaceYUV422
	ColourspaceYUV444
)

// Upsample identifies the four-tap upsampling kernel (Global block).
type Upsample uint8

const (
	UpsampleNearest Upsample = iota
	UpsampleLinear
	UpsampleCubic
	UpsampleModifiedCubic
	UpsampleAdaptiveCubic
)

// ScalingMode identifies the resampling relationship between two adjacent
// resolution levels (Global block, per LOQ).
type ScalingMode uint8

const (
	ScalingModeNone ScalingMode = iota
	ScalingMode1D
	ScalingMode2D
)

// TileDimensionsType identifies the tile-size preset (Global block).
type TileDimensionsType uint8

const (
	TileDimensionsNone TileDimensionsType = iota
	TileDimensions512x256
	TileDimensions1024x512
	TileDimensionsCustom
)

// UserDataMode identifies how many low bits of an LOQ1 coefficient carry
// user data (Global block).
type UserDataMode uint8

const (
	UserDataNone UserDataMode = iota
	UserData2Bits
	UserData6Bits
)

// CompressionTypeSize identifies how per-tile sizes are entropy-coded.
type CompressionTypeSize uint8

const (
	CompressionTypeSizeNone CompressionTypeSize = iota
	CompressionTypeSizePrefix
	CompressionTypeSizePrefixOnDiff
)

// PictureType distinguishes a full frame from one field of an interlaced
// pair (Picture block).
type PictureType uint8

const (
	PictureTypeFrame PictureType = iota
	PictureTypeField
)

// CodingType distinguishes an IDR picture, which resets all persistent
// decoder state, from a non-IDR picture (Picture block).
type CodingType uint8

const (
	CodingTypeIDR CodingType = iota
	CodingTypeNonIDR
)

// DitheringType identifies the dithering algorithm (Picture block).
type DitheringType uint8

const (
	DitheringNone DitheringType = iota
	DitheringUniform
)

// DequantOffsetMode selects how the inverse-quantization applied offset is
// derived (Picture block).
type DequantOffsetMode uint8

const (
	DequantOffsetDefault DequantOffsetMode = iota
	DequantOffsetConst
)

// QuantMatrixMode selects how this picture's custom quant-matrix
// coefficients merge with the previous picture's and the defaults (Picture
// block).
type QuantMatrixMode uint8

const (
	QuantMatrixBothPrevious QuantMatrixMode = iota
	QuantMatrixBothDefault
	QuantMatrixSameAndCustom
	QuantMatrixLevel2CustomLevel1Default
	QuantMatrixLevel2DefaultLevel1Custom
	QuantMatrixDifferentAndCustom
)

// LOQ indexes the two levels of quality the enhancement layer operates on.
type LOQ int

const (
	LOQ1 LOQ = iota // between base and intermediate resolution
	LOQ2             // between intermediate and output resolution
	NumLOQs
)

// Plane bounds, matching MAX_NUM_PLANES in the reference implementation.
const MaxNumPlanes = 3

// MaxNumLayers bounds the residual-layer dimension; transform_block_size=4
// gives the maximum of 16 residual layers, plus one slot for the temporal
// flag layer at LOQ2.
const MaxNumLayers = 17

// Default step-width and depth constants (Global/Picture blocks).
const (
	DefaultTemporalStepWidthModifier = 48
	DefaultChromaStepWidthMultiplier = 64
	MinStepWidth                     = 1
	MaxStepWidth                     = 32767
)

// SequenceConfiguration carries the profile/level and conformance-window
// fields of a Sequence block.
type SequenceConfiguration struct {
	ProfileIDC   Profile
	LevelIDC     uint8
	SublevelIDC  uint8
	ConformanceWindow bool
	ConfWinLeft, ConfWinRight, ConfWinTop, ConfWinBottom uint64
}

// GlobalConfiguration carries the fields of a Global block; it is constant
// for a stream but may be re-signalled.
type GlobalConfiguration struct {
	BaseDepth, EnhancementDepth int // 8, 10, 12 or 14
	Colourspace                 Colourspace
	NumImagePlanes              int // 1 or 3
	NumProcessedPlanes          int // 1 or 3, <= NumImagePlanes

	TransformBlockSize int // 2 or 4
	NumResidualLayers  int // TransformBlockSize^2

	PredictedResidualEnabled           bool
	TemporalEnabled                    bool
	TemporalTileIntraSignallingEnabled bool
	TemporalStepWidthModifier          int

	ResolutionWidth, ResolutionHeight int

	Upsample              Upsample
	UpsamplingCoefficients [4]uint16 // only meaningful for UpsampleAdaptiveCubic

	Level1FilteringEnabled          bool
	Level1FilteringFirstCoefficient  uint8
	Level1FilteringSecondCoefficient uint8

	ScalingMode [NumLOQs]ScalingMode

	TileDimensionsType TileDimensionsType
	TileWidth, TileHeight int
	CompressionTypeEntropyEnabledPerTile bool
	CompressionTypeSizePerTile           CompressionTypeSize

	UserDataEnabled UserDataMode

	Level1DepthFlag bool

	ChromaStepWidthMultiplier int
}

// PictureConfiguration carries the per-picture fields of a Picture block.
type PictureConfiguration struct {
	EnhancementEnabled         bool
	TemporalRefresh            bool
	TemporalSignallingPresent  bool
	PictureType                PictureType
	FieldType                  int
	CodingType                 CodingType

	StepWidth [NumLOQs]int // [1, 32767]

	DitheringControl bool
	DitheringType    DitheringType
	DitheringStrength int

	DequantOffsetMode  DequantOffsetMode
	DequantOffsetValue int

	Level1FilteringEnabled bool

	QuantMatrixMode QuantMatrixMode
	// QMCoefficient[set][layer], set 0 = "qm_coefficient_1", set 1 = "qm_coefficient_2".
	QMCoefficient [2][16]int
}

// SurfaceConfiguration carries the derived per-(plane,loq,layer) dimensions
// populated once Dimensions has been run against a Global block.
type SurfaceConfiguration struct {
	Width, Height int
}

// SignaledConfiguration aggregates the four record groups populated by
// Deserializer while parsing an enhancement bitstream.
type SignaledConfiguration struct {
	Sequence SequenceConfiguration
	Global   GlobalConfiguration
	Picture  PictureConfiguration

	// SurfaceConfig[plane][loq][layer].
	SurfaceConfig [MaxNumPlanes][NumLOQs][MaxNumLayers]SurfaceConfiguration

	// HasGlobal records whether a Global block has been seen yet; used to
	// raise ErrInvalidPicture if enhancement data precedes it.
	HasGlobal bool
}

// ChromaScale returns the (width, height) chroma subsampling factors for
// the configured colourspace, per spec.md §3.
func (c *GlobalConfiguration) ChromaScale() (w, h int) {
	switch c.Colourspace {
	case ColourspaceY:
		return 1, 1
	case ColourspaceYUV420:
		return 2, 2
	case ColourspaceYUV422:
		return 2, 1
	case ColourspaceYUV444:
		return 1, 1
	default:
		return 1, 1
	}
}

// CropUnit returns the conformance-window crop unit for the given plane:
// the chroma subsampling factor for luma (plane 0), 1 for chroma planes.
func (c *GlobalConfiguration) CropUnit(plane int) (w, h int) {
	cw, ch := c.ChromaScale()
	if plane == 0 {
		return cw, ch
	}
	return 1, 1
}
