/*
DESCRIPTION
  deserializer.go implements the top-level enhancement bitstream parser of
  §4.2: the payload_size_type/payload_type block loop, the Sequence/Global/
  Picture syntax blocks, and the EncodedData / EncodedDataTiled layer
  layouts that feed the entropy decoders.

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

import (
	"github.com/ausocean/utils/logging"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/bits"
)

// resolutionTable maps a 6-bit resolution_type (1..50) to a preset
// (width, height) pair; index 0 and 63 are handled separately.
var resolutionTable = [51][2]int{
	{0, 0}, {360, 200}, {400, 240}, {480, 320}, {640, 360}, {640, 480}, {768, 480}, {800, 600}, {852, 480},
	{854, 480}, {856, 480}, {960, 540}, {960, 640}, {1024, 576}, {1024, 600}, {1024, 768}, {1152, 864}, {1280, 720},
	{1280, 800}, {1280, 1024}, {1360, 768}, {1366, 768}, {1440, 1050}, {1440, 900}, {1600, 1200}, {1680, 1050}, {1920, 1080},
	{1920, 1200}, {2048, 1080}, {2048, 1152}, {2048, 1536}, {2160, 1440}, {2560, 1440}, {2560, 1600}, {2560, 2048}, {3200, 1800},
	{3200, 2048}, {3200, 2400}, {3440, 1440}, {3840, 1600}, {3840, 2160}, {3840, 3072}, {4096, 2160}, {4096, 3072}, {5120, 2880},
	{5120, 3200}, {5120, 4096}, {6400, 4096}, {6400, 4800}, {7680, 4320}, {7680, 4800},
}

// Payload block types (payload_type, 5 bits).
const (
	blockSequence = iota
	blockGlobal
	blockPicture
	blockEncodedData
	blockEncodedDataTiled
	blockAdditionalInfo
	blockFiller
)

// Deserializer parses a sequence of per-picture enhancement packets,
// carrying the Sequence/Global configuration forward across pictures that
// do not re-signal it.
type Deserializer struct {
	Config SignaledConfiguration
	Dims   Dimensions

	// Logger receives parse diagnostics (malformed-bitstream recovery
	// points). Left nil, diagnostics are simply not reported, the same way
	// a zero-value revid/config.Config has no Logger until one is set.
	Logger logging.Logger
}

// NewDeserializer returns a Deserializer with no configuration yet parsed.
func NewDeserializer() *Deserializer {
	return &Deserializer{}
}

func (d *Deserializer) logf(message string, params ...interface{}) {
	if d.Logger != nil {
		d.Logger.Log(logging.Debug, message, params...)
	}
}

// Parse reads every syntax block of one enhancement packet, updating d.Config
// in place and returning the decoded Symbols tensor for this picture (nil
// if the packet carried no EncodedData/EncodedDataTiled block).
func (d *Deserializer) Parse(pkt Packet) (*Symbols, error) {
	r := bits.NewReader(pkt.slice())

	var symbols *Symbols
	for r.Len() >= 8 {
		sizeType, err := r.U(3)
		if err != nil {
			return symbols, err
		}
		payloadType, err := r.U(5)
		if err != nil {
			return symbols, err
		}

		var byteSize int
		switch sizeType {
		case 0, 1, 2, 3, 4, 5:
			byteSize = int(sizeType)
		case 7:
			v, err := r.Varint()
			if err != nil {
				return symbols, err
			}
			byteSize = int(v)
		default:
			d.logf("deserializer: reserved payload_size_type, abandoning packet", "value", sizeType)
			return symbols, malformed("deserializer: reserved payload_size_type %d", sizeType)
		}

		payload, err := r.Bytes(byteSize)
		if err != nil {
			return symbols, err
		}
		pr := bits.NewReader(payload)

		switch payloadType {
		case blockSequence:
			if err := d.parseSequence(pr); err != nil {
				return symbols, err
			}
		case blockGlobal:
			if err := d.parseGlobal(pr); err != nil {
				return symbols, err
			}
			d.Config.HasGlobal = true
			if err := d.Dims.Set(&d.Config, d.Config.Global.ResolutionWidth, d.Config.Global.ResolutionHeight); err != nil {
				return symbols, err
			}
		case blockPicture:
			if !d.Config.HasGlobal {
				return symbols, ErrInvalidPicture
			}
			if err := d.parsePicture(pr); err != nil {
				return symbols, err
			}
		case blockEncodedData:
			if !d.Config.HasGlobal {
				return symbols, ErrInvalidPicture
			}
			s, err := d.parseEncodedData(pr)
			if err != nil {
				return symbols, err
			}
			symbols = s
		case blockEncodedDataTiled:
			if !d.Config.HasGlobal {
				return symbols, ErrInvalidPicture
			}
			s, err := d.parseEncodedDataTiled(pr)
			if err != nil {
				return symbols, err
			}
			symbols = s
		case blockAdditionalInfo, blockFiller:
			// Neither carries state this decoder tracks; skip silently.
		default:
			return symbols, malformed("deserializer: reserved payload_type %d", payloadType)
		}
	}
	return symbols, nil
}

func (d *Deserializer) parseSequence(r *bits.Reader) error {
	seq := &d.Config.Sequence

	profileIDC, err := r.U(4)
	if err != nil {
		return err
	}
	levelIDC, err := r.U(4)
	if err != nil {
		return err
	}
	seq.LevelIDC = uint8(levelIDC)

	sublevelIDC, err := r.U(2)
	if err != nil {
		return err
	}
	seq.SublevelIDC = uint8(sublevelIDC)

	confWin, err := r.Bit()
	if err != nil {
		return err
	}
	seq.ConformanceWindow = confWin

	if _, err := r.U(5); err != nil { // reserved
		return err
	}

	if profileIDC == 15 || levelIDC == 15 {
		if _, err := r.U(3); err != nil { // extended_profile_idc
			return err
		}
		if _, err := r.U(3); err != nil { // extended_level_idc
			return err
		}
		if _, err := r.U(1); err != nil { // reserved
			return err
		}
	}

	if confWin {
		left, err := r.Varint()
		if err != nil {
			return err
		}
		right, err := r.Varint()
		if err != nil {
			return err
		}
		top, err := r.Varint()
		if err != nil {
			return err
		}
		bottom, err := r.Varint()
		if err != nil {
			return err
		}
		seq.ConfWinLeft, seq.ConfWinRight, seq.ConfWinTop, seq.ConfWinBottom = left, right, top, bottom
	}

	switch profileIDC {
	case 0:
		seq.ProfileIDC = ProfileMain
	case 1:
		seq.ProfileIDC = ProfileMain444
	default:
		return unsupported("sequence_config: reserved profile_idc %d", profileIDC)
	}
	return nil
}

func (d *Deserializer) parseGlobal(r *bits.Reader) error {
	g := &d.Config.Global

	processedPlanesType, err := r.U(1)
	if err != nil {
		return err
	}
	resolutionType, err := r.U(6)
	if err != nil {
		return err
	}
	transformType, err := r.U(1)
	if err != nil {
		return err
	}
	chromaSamplingType, err := r.U(2)
	if err != nil {
		return err
	}
	baseDepthType, err := r.U(2)
	if err != nil {
		return err
	}
	enhancementDepthType, err := r.U(2)
	if err != nil {
		return err
	}
	tswmSignalled, err := r.Bit()
	if err != nil {
		return err
	}
	predictedResidualEnabled, err := r.Bit()
	if err != nil {
		return err
	}
	g.PredictedResidualEnabled = predictedResidualEnabled
	temporalTileIntra, err := r.Bit()
	if err != nil {
		return err
	}
	g.TemporalTileIntraSignallingEnabled = temporalTileIntra
	temporalEnabled, err := r.Bit()
	if err != nil {
		return err
	}
	g.TemporalEnabled = temporalEnabled

	upsampleType, err := r.U(3)
	if err != nil {
		return err
	}
	level1FilteringSignalled, err := r.Bit()
	if err != nil {
		return err
	}
	scalingMode1, err := r.U(2)
	if err != nil {
		return err
	}
	scalingMode2, err := r.U(2)
	if err != nil {
		return err
	}
	tileDimensionsType, err := r.U(2)
	if err != nil {
		return err
	}
	userDataEnabled, err := r.U(2)
	if err != nil {
		return err
	}
	switch userDataEnabled {
	case 0:
		g.UserDataEnabled = UserDataNone
	case 1:
		g.UserDataEnabled = UserData2Bits
	case 2:
		g.UserDataEnabled = UserData6Bits
	default:
		return unsupported("global_config: reserved user_data_enabled %d", userDataEnabled)
	}

	level1DepthFlag, err := r.Bit()
	if err != nil {
		return err
	}
	g.Level1DepthFlag = level1DepthFlag

	chromaStepWidthFlag, err := r.Bit()
	if err != nil {
		return err
	}

	if processedPlanesType == 0 {
		g.NumProcessedPlanes = 1
	} else {
		planesType, err := r.U(4)
		if err != nil {
			return err
		}
		if _, err := r.U(4); err != nil { // reserved
			return err
		}
		if planesType != 1 {
			return unsupported("global_config: reserved planes_type %d", planesType)
		}
		g.NumProcessedPlanes = 3
	}

	if tswmSignalled {
		v, err := r.U(8)
		if err != nil {
			return err
		}
		g.TemporalStepWidthModifier = int(v)
	} else {
		g.TemporalStepWidthModifier = DefaultTemporalStepWidthModifier
	}

	if upsampleType == 4 {
		for i := 0; i < 4; i++ {
			v, err := r.U(16)
			if err != nil {
				return err
			}
			g.UpsamplingCoefficients[i] = uint16(v)
		}
	}

	if level1FilteringSignalled {
		first, err := r.U(4)
		if err != nil {
			return err
		}
		second, err := r.U(4)
		if err != nil {
			return err
		}
		g.Level1FilteringFirstCoefficient = uint8(first)
		g.Level1FilteringSecondCoefficient = uint8(second)
	} else {
		g.Level1FilteringFirstCoefficient = 0
		g.Level1FilteringSecondCoefficient = 0
	}

	switch tileDimensionsType {
	case 0:
		g.TileDimensionsType = TileDimensionsNone
		g.TileWidth, g.TileHeight = 0, 0
	case 1:
		g.TileDimensionsType = TileDimensions512x256
		g.TileWidth, g.TileHeight = 512, 256
	case 2:
		g.TileDimensionsType = TileDimensions1024x512
		g.TileWidth, g.TileHeight = 1024, 512
	case 3:
		g.TileDimensionsType = TileDimensionsCustom
		w, err := r.U(16)
		if err != nil {
			return err
		}
		h, err := r.U(16)
		if err != nil {
			return err
		}
		g.TileWidth, g.TileHeight = int(w), int(h)
	}

	if tileDimensionsType > 0 {
		if _, err := r.U(5); err != nil { // reserved
			return err
		}
		entropyPerTile, err := r.Bit()
		if err != nil {
			return err
		}
		g.CompressionTypeEntropyEnabledPerTile = entropyPerTile

		sizePerTile, err := r.U(2)
		if err != nil {
			return err
		}
		switch sizePerTile {
		case 0:
			g.CompressionTypeSizePerTile = CompressionTypeSizeNone
		case 1:
			g.CompressionTypeSizePerTile = CompressionTypeSizePrefix
		case 2:
			g.CompressionTypeSizePerTile = CompressionTypeSizePrefixOnDiff
		default:
			return unsupported("global_config: reserved compression_type_size_per_tile %d", sizePerTile)
		}
	}

	switch {
	case resolutionType > 0 && resolutionType < 51:
		g.ResolutionWidth = resolutionTable[resolutionType][0]
		g.ResolutionHeight = resolutionTable[resolutionType][1]
	case resolutionType == 63:
		w, err := r.U(16)
		if err != nil {
			return err
		}
		h, err := r.U(16)
		if err != nil {
			return err
		}
		g.ResolutionWidth, g.ResolutionHeight = int(w), int(h)
	default:
		return unsupported("global_config: reserved resolution_type %d", resolutionType)
	}

	if chromaStepWidthFlag {
		v, err := r.U(8)
		if err != nil {
			return err
		}
		g.ChromaStepWidthMultiplier = int(v)
	} else {
		g.ChromaStepWidthMultiplier = DefaultChromaStepWidthMultiplier
	}

	switch chromaSamplingType {
	case 0:
		g.Colourspace = ColourspaceY
		g.NumImagePlanes = 1
	case 1:
		g.Colourspace = ColourspaceYUV420
		g.NumImagePlanes = 3
	case 2:
		g.Colourspace = ColourspaceYUV422
		g.NumImagePlanes = 3
	case 3:
		g.Colourspace = ColourspaceYUV444
		g.NumImagePlanes = 3
	default:
		return unsupported("global_config: reserved chroma_sampling_type %d", chromaSamplingType)
	}
	if g.NumImagePlanes < g.NumProcessedPlanes {
		return unsupported("global_config: num_processed_planes %d exceeds num_image_planes %d", g.NumProcessedPlanes, g.NumImagePlanes)
	}

	switch transformType {
	case 0:
		g.TransformBlockSize, g.NumResidualLayers = 2, 4
	case 1:
		g.TransformBlockSize, g.NumResidualLayers = 4, 16
	default:
		return unsupported("global_config: reserved transform_type %d", transformType)
	}

	depthFromType := func(t uint32) (int, error) {
		switch t {
		case 0:
			return 8, nil
		case 1:
			return 10, nil
		case 2:
			return 12, nil
		case 3:
			return 14, nil
		default:
			return 0, unsupported("global_config: reserved depth_type %d", t)
		}
	}
	if g.BaseDepth, err = depthFromType(baseDepthType); err != nil {
		return err
	}
	if g.EnhancementDepth, err = depthFromType(enhancementDepthType); err != nil {
		return err
	}

	switch upsampleType {
	case 0:
		g.Upsample = UpsampleNearest
	case 1:
		g.Upsample = UpsampleLinear
	case 2:
		g.Upsample = UpsampleCubic
	case 3:
		g.Upsample = UpsampleModifiedCubic
	case 4:
		g.Upsample = UpsampleAdaptiveCubic
	default:
		return unsupported("global_config: reserved upsample_type %d", upsampleType)
	}

	scalingModeFromType := func(t uint32) (ScalingMode, error) {
		switch t {
		case 0:
			return ScalingModeNone, nil
		case 1:
			return ScalingMode1D, nil
		case 2:
			return ScalingMode2D, nil
		default:
			return 0, unsupported("global_config: reserved scaling_mode %d", t)
		}
	}
	if g.ScalingMode[LOQ1], err = scalingModeFromType(scalingMode1); err != nil {
		return err
	}
	if g.ScalingMode[LOQ2], err = scalingModeFromType(scalingMode2); err != nil {
		return err
	}

	return nil
}

func (d *Deserializer) parsePicture(r *bits.Reader) error {
	p := &d.Config.Picture
	g := &d.Config.Global

	noEnhancement, err := r.Bit()
	if err != nil {
		return err
	}
	p.EnhancementEnabled = !noEnhancement

	var pictureType uint32
	if p.EnhancementEnabled {
		quantMatrixMode, err := r.U(3)
		if err != nil {
			return err
		}
		dequantOffsetSignalled, err := r.Bit()
		if err != nil {
			return err
		}
		pictureType, err = r.U(1)
		if err != nil {
			return err
		}
		temporalRefresh, err := r.Bit()
		if err != nil {
			return err
		}
		p.TemporalRefresh = temporalRefresh
		p.TemporalSignallingPresent = g.TemporalEnabled && !temporalRefresh

		stepWidthLevel1Enabled, err := r.Bit()
		if err != nil {
			return err
		}
		sw2, err := r.U(15)
		if err != nil {
			return err
		}
		if sw2 == 0 {
			return malformed("picture_config: step_width_level2 must be > 0")
		}
		p.StepWidth[LOQ2] = int(sw2)

		ditheringControl, err := r.Bit()
		if err != nil {
			return err
		}
		p.DitheringControl = ditheringControl

		switch quantMatrixMode {
		case 0:
			p.QuantMatrixMode = QuantMatrixBothPrevious
		case 1:
			p.QuantMatrixMode = QuantMatrixBothDefault
		case 2:
			p.QuantMatrixMode = QuantMatrixSameAndCustom
		case 3:
			p.QuantMatrixMode = QuantMatrixLevel2CustomLevel1Default
		case 4:
			p.QuantMatrixMode = QuantMatrixLevel2DefaultLevel1Custom
		case 5:
			p.QuantMatrixMode = QuantMatrixDifferentAndCustom
		default:
			return unsupported("picture_config: reserved quant_matrix_mode %d", quantMatrixMode)
		}

		if pictureType != 0 {
			fieldType, err := r.U(1)
			if err != nil {
				return err
			}
			p.FieldType = int(fieldType)
			if _, err := r.U(7); err != nil { // reserved
				return err
			}
		}

		if stepWidthLevel1Enabled {
			sw1, err := r.U(15)
			if err != nil {
				return err
			}
			if sw1 == 0 {
				return malformed("picture_config: step_width_level1 must be > 0")
			}
			p.StepWidth[LOQ1] = int(sw1)

			level1FilteringEnabled, err := r.Bit()
			if err != nil {
				return err
			}
			p.Level1FilteringEnabled = level1FilteringEnabled
		} else {
			p.StepWidth[LOQ1] = MaxStepWidth
		}

		if p.QuantMatrixMode == QuantMatrixSameAndCustom || p.QuantMatrixMode == QuantMatrixLevel2CustomLevel1Default ||
			p.QuantMatrixMode == QuantMatrixDifferentAndCustom {
			for i := 0; i < g.NumResidualLayers; i++ {
				v, err := r.U(8)
				if err != nil {
					return err
				}
				p.QMCoefficient[1][i] = int(v)
			}
		}
		if p.QuantMatrixMode == QuantMatrixLevel2DefaultLevel1Custom || p.QuantMatrixMode == QuantMatrixDifferentAndCustom {
			for i := 0; i < g.NumResidualLayers; i++ {
				v, err := r.U(8)
				if err != nil {
					return err
				}
				p.QMCoefficient[0][i] = int(v)
			}
		}

		if dequantOffsetSignalled {
			mode, err := r.U(1)
			if err != nil {
				return err
			}
			switch mode {
			case 0:
				p.DequantOffsetMode = DequantOffsetDefault
			case 1:
				p.DequantOffsetMode = DequantOffsetConst
			default:
				return unsupported("picture_config: reserved dequant_offset_mode %d", mode)
			}
			v, err := r.U(7)
			if err != nil {
				return err
			}
			p.DequantOffsetValue = int(v)
		}

		if p.DitheringControl {
			ditheringType, err := r.U(2)
			if err != nil {
				return err
			}
			switch ditheringType {
			case 0:
				p.DitheringType = DitheringNone
			case 1:
				p.DitheringType = DitheringUniform
			default:
				return unsupported("picture_config: reserved dithering_type %d", ditheringType)
			}
			if _, err := r.U(1); err != nil { // reserved
				return err
			}
			if p.DitheringType != DitheringNone {
				v, err := r.U(5)
				if err != nil {
					return err
				}
				p.DitheringStrength = int(v)
			} else if _, err := r.U(5); err != nil { // reserved
				return err
			}
		}
	} else {
		if _, err := r.U(4); err != nil { // reserved
			return err
		}
		pictureType, err = r.U(1)
		if err != nil {
			return err
		}
		temporalRefresh, err := r.Bit()
		if err != nil {
			return err
		}
		p.TemporalRefresh = temporalRefresh
		temporalSignallingPresent, err := r.Bit()
		if err != nil {
			return err
		}
		p.TemporalSignallingPresent = temporalSignallingPresent
	}

	switch pictureType {
	case 0:
		p.PictureType = PictureTypeFrame
	case 1:
		p.PictureType = PictureTypeField
	default:
		return unsupported("picture_config: reserved picture_type %d", pictureType)
	}
	return nil
}

// firstLayer returns the index of the first layer present in the
// bitstream: 0 when enhancement is enabled, or the temporal layer's index
// (num_residual_layers) when it is the only layer present.
func (d *Deserializer) firstLayer() int {
	if d.Config.Picture.EnhancementEnabled {
		return 0
	}
	return d.Config.Global.NumResidualLayers
}

// totalLayers returns the one-past-last layer index for (plane, loq).
func (d *Deserializer) totalLayers(loq LOQ) int {
	n := d.Config.Global.NumResidualLayers
	if loq == LOQ2 && d.Config.Picture.TemporalSignallingPresent {
		n++
	}
	return n
}

func (d *Deserializer) isTemporalLayer(layer int) bool {
	return layer == d.Config.Global.NumResidualLayers
}

func (d *Deserializer) decodeLayer(plane int, loq LOQ, layer, width, height int, entropyEnabled, rleOnly bool, r *bits.Reader) (Surface[int16], Surface[uint8], error) {
	g := &d.Config.Global
	if !d.isTemporalLayer(layer) {
		useTiled := g.TemporalEnabled || g.TileDimensionsType != TileDimensionsNone
		var s Surface[int16]
		var err error
		if useTiled {
			s, err = DecodeResidualsTiled(r, width, height, g.TransformBlockSize, entropyEnabled, rleOnly)
		} else {
			s, err = DecodeResiduals(r, width, height, entropyEnabled, rleOnly)
		}
		return s, Surface[uint8]{}, err
	}
	s, err := DecodeTemporal(r, width, height, g.TransformBlockSize, entropyEnabled, rleOnly, g.TemporalTileIntraSignallingEnabled)
	return Surface[int16]{}, s, err
}

// parseEncodedData implements the non-tiled EncodedData layout of §4.2.
func (d *Deserializer) parseEncodedData(r *bits.Reader) (*Symbols, error) {
	g := &d.Config.Global
	numPlanes := g.NumProcessedPlanes

	var entropyEnabled, rleOnly [MaxNumPlanes][NumLOQs][MaxNumLayers]bool

	for plane := 0; plane < numPlanes; plane++ {
		for loq := LOQ(0); loq < NumLOQs; loq++ {
			for layer := d.firstLayer(); layer < d.totalLayers(loq); layer++ {
				ee, err := r.Bit()
				if err != nil {
					return nil, err
				}
				ro, err := r.Bit()
				if err != nil {
					return nil, err
				}
				entropyEnabled[plane][loq][layer] = ee
				rleOnly[plane][loq][layer] = ro
			}
		}
	}
	r.Align()

	symbols := &Symbols{}
	if !d.Config.Picture.EnhancementEnabled && !d.Config.Picture.TemporalSignallingPresent {
		return symbols, nil
	}

	for plane := 0; plane < numPlanes; plane++ {
		for loq := LOQ(0); loq < NumLOQs; loq++ {
			for layer := d.firstLayer(); layer < d.totalLayers(loq); layer++ {
				width := d.Dims.LayerWidth(plane, loq)
				height := d.Dims.LayerHeight(plane, loq)

				var payload []byte
				if entropyEnabled[plane][loq][layer] {
					size, err := r.Varint()
					if err != nil {
						return nil, err
					}
					payload, err = r.Bytes(int(size))
					if err != nil {
						return nil, err
					}
				}
				pr := bits.NewReader(payload)

				residual, temporal, err := d.decodeLayer(plane, loq, layer, width, height, entropyEnabled[plane][loq][layer], rleOnly[plane][loq][layer], pr)
				if err != nil {
					return nil, err
				}
				if d.isTemporalLayer(layer) {
					symbols.Temporal[plane] = temporal
					symbols.HasTemporal[plane] = true
				} else {
					symbols.Residual[plane][loq][layer] = residual
				}
			}
		}
	}
	return symbols, nil
}

type tileGeometry struct {
	width, height         int
	tileWidth, tileHeight int
	tilesX, tilesY        int
	numTiles              int
}

// parseEncodedDataTiled implements the EncodedDataTiled layout of §4.2.
func (d *Deserializer) parseEncodedDataTiled(r *bits.Reader) (*Symbols, error) {
	g := &d.Config.Global
	if g.TileDimensionsType == TileDimensionsNone {
		return nil, unsupported("encoded_data_tiled: tile_dimensions_type is None")
	}
	numPlanes := g.NumProcessedPlanes

	var geom [MaxNumPlanes][NumLOQs]tileGeometry
	totalTiles := 0
	for plane := 0; plane < numPlanes; plane++ {
		for loq := LOQ(0); loq < NumLOQs; loq++ {
			numLayers := d.totalLayers(loq) - d.firstLayer()
			tw := d.Dims.TileWidth(plane, loq)
			th := d.Dims.TileHeight(plane, loq)
			if tw <= 0 {
				tw = d.Dims.LayerWidth(plane, loq)
			}
			if th <= 0 {
				th = d.Dims.LayerHeight(plane, loq)
			}
			w := d.Dims.LayerWidth(plane, loq)
			h := d.Dims.LayerHeight(plane, loq)
			tx := (w + tw - 1) / tw
			ty := (h + th - 1) / th
			geom[plane][loq] = tileGeometry{width: w, height: h, tileWidth: tw, tileHeight: th, tilesX: tx, tilesY: ty, numTiles: tx * ty}
			totalTiles += tx * ty * numLayers
		}
	}

	var rleOnly [MaxNumPlanes][NumLOQs][MaxNumLayers]bool
	if d.Config.Picture.EnhancementEnabled {
		for plane := 0; plane < numPlanes; plane++ {
			for loq := LOQ(0); loq < NumLOQs; loq++ {
				for layer := d.firstLayer(); layer < d.totalLayers(loq); layer++ {
					ro, err := r.Bit()
					if err != nil {
						return nil, err
					}
					rleOnly[plane][loq][layer] = ro
				}
			}
		}
	}
	r.Align()

	entropyEnabled := make([]bool, totalTiles)
	if !g.CompressionTypeEntropyEnabledPerTile {
		idx := 0
		if d.Config.Picture.EnhancementEnabled {
			for plane := 0; plane < numPlanes; plane++ {
				for loq := LOQ(0); loq < NumLOQs; loq++ {
					for layer := d.firstLayer(); layer < d.totalLayers(loq); layer++ {
						for t := 0; t < geom[plane][loq].numTiles; t++ {
							ee, err := r.Bit()
							if err != nil {
								return nil, err
							}
							entropyEnabled[idx] = ee
							idx++
						}
					}
				}
			}
		}
	} else if d.Config.Picture.EnhancementEnabled {
		ee, err := DecodeFlags(r, len(entropyEnabled), 1)
		if err != nil {
			return nil, err
		}
		for i := range entropyEnabled {
			entropyEnabled[i] = ee.Read(i, 0) != 0
		}
	}
	r.Align()

	symbols := &Symbols{}
	idx := 0

	assembleResidual := func(plane int, loq LOQ, geo tileGeometry, tiles []Surface[int16]) Surface[int16] {
		return BuildSurface[int16]().Generate(geo.width, geo.height, func(x, y int) int16 {
			tx, ty := x/geo.tileWidth, y/geo.tileHeight
			return tiles[ty*geo.tilesX+tx].Read(x%geo.tileWidth, y%geo.tileHeight)
		}).Finish()
	}
	assembleTemporal := func(geo tileGeometry, tiles []Surface[uint8]) Surface[uint8] {
		return BuildSurface[uint8]().Generate(geo.width, geo.height, func(x, y int) uint8 {
			tx, ty := x/geo.tileWidth, y/geo.tileHeight
			return tiles[ty*geo.tilesX+tx].Read(x%geo.tileWidth, y%geo.tileHeight)
		}).Finish()
	}

	if g.CompressionTypeSizePerTile == CompressionTypeSizeNone {
		for plane := 0; plane < numPlanes; plane++ {
			for loq := LOQ(0); loq < NumLOQs; loq++ {
				for layer := d.firstLayer(); layer < d.totalLayers(loq); layer++ {
					geo := geom[plane][loq]
					residualTiles := make([]Surface[int16], 0, geo.numTiles)
					temporalTiles := make([]Surface[uint8], 0, geo.numTiles)
					isTemporal := d.isTemporalLayer(layer)

					for ty := 0; ty < geo.tilesY; ty++ {
						for tx := 0; tx < geo.tilesX; tx++ {
							tx1 := min((tx+1)*geo.tileWidth, geo.width)
							ty1 := min((ty+1)*geo.tileHeight, geo.height)
							tw, th := tx1-tx*geo.tileWidth, ty1-ty*geo.tileHeight

							var payload []byte
							if entropyEnabled[idx] {
								size, err := r.Varint()
								if err != nil {
									return nil, err
								}
								payload, err = r.Bytes(int(size))
								if err != nil {
									return nil, err
								}
							}
							pr := bits.NewReader(payload)
							residual, temporal, err := d.decodeLayer(plane, loq, layer, tw, th, entropyEnabled[idx], rleOnly[plane][loq][layer], pr)
							if err != nil {
								return nil, err
							}
							if isTemporal {
								temporalTiles = append(temporalTiles, temporal)
							} else {
								residualTiles = append(residualTiles, residual)
							}
							idx++
						}
					}
					if isTemporal {
						symbols.Temporal[plane] = assembleTemporal(geo, temporalTiles)
						symbols.HasTemporal[plane] = true
					} else {
						symbols.Residual[plane][loq][layer] = assembleResidual(plane, loq, geo, residualTiles)
					}
				}
			}
		}
		return symbols, nil
	}

	for plane := 0; plane < numPlanes; plane++ {
		for loq := LOQ(0); loq < NumLOQs; loq++ {
			for layer := d.firstLayer(); layer < d.totalLayers(loq); layer++ {
				geo := geom[plane][loq]

				anyEnabled := false
				for x := 0; x < geo.numTiles; x++ {
					if entropyEnabled[idx+x] {
						anyEnabled = true
						break
					}
				}

				var sizes Surface[uint16]
				if anyEnabled {
					compression := CompressionPrefix
					if g.CompressionTypeSizePerTile == CompressionTypeSizePrefixOnDiff {
						compression = CompressionPrefixOnDiff
					}
					s, err := DecodeSizes(r, geo.numTiles, 1, entropyEnabled, idx, compression)
					if err != nil {
						return nil, err
					}
					sizes = s
				} else {
					sizes = BuildSurface[uint16]().Fill(0, geo.numTiles, 1).Finish()
				}
				r.Align()

				residualTiles := make([]Surface[int16], 0, geo.numTiles)
				temporalTiles := make([]Surface[uint8], 0, geo.numTiles)
				isTemporal := d.isTemporalLayer(layer)

				for ty := 0; ty < geo.tilesY; ty++ {
					for tx := 0; tx < geo.tilesX; tx++ {
						tx1 := min((tx+1)*geo.tileWidth, geo.width)
						ty1 := min((ty+1)*geo.tileHeight, geo.height)
						tw, th := tx1-tx*geo.tileWidth, ty1-ty*geo.tileHeight

						var payload []byte
						if entropyEnabled[idx] {
							size := int(sizes.Read(ty*geo.tilesX+tx, 0))
							if size <= 0 {
								return nil, malformed("encoded_data_tiled: zero data_size for enabled tile")
							}
							var err error
							payload, err = r.Bytes(size)
							if err != nil {
								return nil, err
							}
						}
						pr := bits.NewReader(payload)
						residual, temporal, err := d.decodeLayer(plane, loq, layer, tw, th, entropyEnabled[idx], rleOnly[plane][loq][layer], pr)
						if err != nil {
							return nil, err
						}
						if isTemporal {
							temporalTiles = append(temporalTiles, temporal)
						} else {
							residualTiles = append(residualTiles, residual)
						}
						idx++
					}
				}
				if isTemporal {
					symbols.Temporal[plane] = assembleTemporal(geo, temporalTiles)
					symbols.HasTemporal[plane] = true
				} else {
					symbols.Residual[plane][loq][layer] = assembleResidual(plane, loq, geo, residualTiles)
				}
			}
		}
	}
	return symbols, nil
}
