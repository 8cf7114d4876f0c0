/*
DESCRIPTION
  decode.go implements Decoder, the per-picture reconstruction pipeline of
  §4.12: base/enhancement depth conversion, LOQ1 upsampling and residual
  addition, quantization-matrix memory refresh, LOQ2 upsampling and
  temporal-gated residual addition, dithering, conformance-window crop and
  the final conversion back to the external pel representation.

  Decoder owns the state that persists across pictures in a stream: the
  per-plane temporal buffer, the remembered quantization-matrix
  coefficients, and the dithering ring (built once, from the first
  picture's signalled strength and the stream's enhancement depth).

  quant_matrix_mode's BothPrevious value is documented, by its name and by
  §4.12, as carrying the previous picture's per-layer coefficients forward.
  The reference implementation's own orchestration clears its coefficient
  memory to "no override" at the start of every picture's bitstream parse,
  before the per-picture refresh step runs against it -- which would make
  BothPrevious behave identically to BothDefault in practice. This decoder
  instead refreshes the per-plane coefficient memory only on an IDR picture,
  so BothPrevious actually persists the previous picture's layer
  coefficients. See DESIGN.md.

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

import "github.com/ausocean/utils/logging"

// Decoder reconstructs output pictures from a base image and a sequence of
// enhancement-data packets, carrying persistent state (temporal buffers,
// quant-matrix memory, dithering ring) across pictures of a stream.
type Decoder struct {
	deserializer *Deserializer

	quantMatrixCoeff [MaxNumPlanes][NumLOQs][16]int
	temporalBuffer   [MaxNumPlanes]*TemporalBuffer
	ditherer         *Ditherer

	// Logger receives reconstruction diagnostics (IDR resets, temporal
	// buffer allocation, dithering ring construction) and is forwarded to
	// the Deserializer and Ditherer it owns. Left nil, nothing is reported.
	Logger logging.Logger
}

// NewDecoder returns a Decoder with no configuration yet parsed and its
// quant-matrix memory at the "use default scaling" value.
func NewDecoder() *Decoder {
	d := &Decoder{deserializer: NewDeserializer()}
	d.resetQuantMatrix()
	return d
}

// SetLogger installs logger on the Decoder and the Deserializer it owns, the
// way revid wires a single logging.Logger through a whole pipeline.
func (d *Decoder) SetLogger(logger logging.Logger) {
	d.Logger = logger
	d.deserializer.Logger = logger
}

func (d *Decoder) logf(message string, params ...interface{}) {
	if d.Logger != nil {
		d.Logger.Log(logging.Debug, message, params...)
	}
}

func (d *Decoder) resetQuantMatrix() {
	for p := 0; p < MaxNumPlanes; p++ {
		for loq := LOQ(0); loq < NumLOQs; loq++ {
			for layer := 0; layer < 16; layer++ {
				d.quantMatrixCoeff[p][loq][layer] = -1
			}
		}
	}
}

// Config returns the signalled configuration accumulated so far.
func (d *Decoder) Config() *SignaledConfiguration { return &d.deserializer.Config }

// Dims returns the dimensions derived from the most recent Global block.
func (d *Decoder) Dims() *Dimensions { return &d.deserializer.Dims }

// SetIDR marks the next picture decoded as an IDR (or non-IDR) picture.
// Coding type is not carried in the enhancement bitstream itself; the
// caller derives it from the base stream's own access-unit typing.
func (d *Decoder) SetIDR(isIDR bool) {
	if isIDR {
		d.deserializer.Config.Picture.CodingType = CodingTypeIDR
	} else {
		d.deserializer.Config.Picture.CodingType = CodingTypeNonIDR
	}
}

// Decode parses one enhancement-data packet and reconstructs the output
// picture from it and the externally-decoded base picture, per §4.12.
// applyEnhancement lets a caller request the base-only reconstruction (used
// to measure the enhancement's own contribution); ditheringSwitch gates the
// optional uniform dithering pass.
func (d *Decoder) Decode(pkt Packet, base Image, applyEnhancement, ditheringSwitch bool) (Image, error) {
	symbols, err := d.deserializer.Parse(pkt)
	if err != nil {
		return Image{}, err
	}
	if symbols == nil {
		symbols = &Symbols{}
	}
	return d.reconstruct(base, symbols, applyEnhancement, ditheringSwitch)
}

func (d *Decoder) reconstruct(base Image, symbols *Symbols, applyEnhancement, ditheringSwitch bool) (Image, error) {
	cfg := &d.deserializer.Config
	g := &cfg.Global
	p := &cfg.Picture
	dims := &d.deserializer.Dims

	if g.TransformBlockSize != 2 && g.TransformBlockSize != 4 {
		return Image{}, unsupported("decode: transform_block_size %d", g.TransformBlockSize)
	}
	if base.NumPlanes == 0 {
		return Image{}, malformed("decode: base image has no planes")
	}
	if base.Plane(0).Width() != dims.BaseWidth() || base.Plane(0).Height() != dims.BaseHeight() {
		return Image{}, ErrDimensionMismatch
	}

	isIDR := p.CodingType == CodingTypeIDR
	if isIDR {
		d.logf("decode: IDR picture, resetting quant-matrix memory and temporal buffers")
		d.resetQuantMatrix()
		for plane := range d.temporalBuffer {
			if d.temporalBuffer[plane] != nil {
				d.temporalBuffer[plane].Reset()
			}
		}
	}

	if ditheringSwitch && d.ditherer == nil && p.DitheringControl {
		d.logf("decode: building dithering ring", "strength", p.DitheringStrength, "depth", g.EnhancementDepth)
		d.ditherer = NewDitherer(p.DitheringStrength, g.EnhancementDepth)
		d.ditherer.Logger = d.Logger
	}

	numPlanes := base.NumPlanes
	baseReco := make([]Surface[int16], numPlanes)

	// Base depth conversion, LOQ1 upsampling and sub-layer 1 decoding.
	for plane := 0; plane < numPlanes; plane++ {
		enhancementEnabled := p.EnhancementEnabled && plane < g.NumProcessedPlanes

		basePlaneRaw := imagePlaneToSurface16(base.Plane(plane))
		baseBitDepth := g.BaseDepth
		basePlane := basePlaneRaw
		if g.EnhancementDepth > g.BaseDepth && g.Level1DepthFlag {
			basePlane = PromoteBaseDepth(basePlaneRaw, g.BaseDepth, g.EnhancementDepth)
			baseBitDepth = g.EnhancementDepth
		}
		internalBase := convertToInternalSurface(basePlane, baseBitDepth)

		baseUpsampled := upsamplePlane(internalBase, g.ScalingMode[LOQ1], g.Upsample, g.UpsamplingCoefficients, g.PredictedResidualEnabled)

		d.refreshQuantMatrix(plane, isIDR)

		if enhancementEnabled && applyEnhancement {
			residuals := d.decodeResiduals(plane, LOQ1, Surface[uint8]{}, symbols)
			if p.Level1FilteringEnabled && g.TransformBlockSize == 4 {
				residuals = Deblock(residuals, g.Level1FilteringFirstCoefficient, g.Level1FilteringSecondCoefficient)
			}
			baseReco[plane] = addClamped(baseUpsampled, residuals)
		} else {
			baseReco[plane] = baseUpsampled
		}
	}

	// LOQ2 upsampling, from the combined intermediate picture.
	upsampledPlanes := make([]Surface[int16], numPlanes)
	for plane := 0; plane < numPlanes; plane++ {
		upsampledPlanes[plane] = upsamplePlane(baseReco[plane], g.ScalingMode[LOQ2], g.Upsample, g.UpsamplingCoefficients, g.PredictedResidualEnabled)
	}

	// Sub-layer 2 decoding, temporal accumulation, dithering.
	fullReco := make([]Surface[int16], numPlanes)
	for plane := 0; plane < numPlanes; plane++ {
		enhancementEnabled := p.EnhancementEnabled && plane < g.NumProcessedPlanes

		switch {
		case enhancementEnabled && applyEnhancement:
			mask := d.temporalMask(plane, symbols)
			residuals := d.decodeResiduals(plane, LOQ2, mask, symbols)

			if g.TemporalEnabled {
				d.ensureTemporalBuffer(plane, upsampledPlanes[plane])
				accumulated := ApplyTemporal(d.temporalBuffer[plane], residuals, mask, g.TransformBlockSize)
				fullReco[plane] = addClamped(upsampledPlanes[plane], accumulated)
			} else {
				fullReco[plane] = addClamped(upsampledPlanes[plane], residuals)
			}

		case plane < g.NumProcessedPlanes && applyEnhancement && g.TemporalEnabled:
			// No enhancement sub-layer 2, but a temporal layer can still be present.
			mask := d.temporalMask(plane, symbols)
			d.ensureTemporalBuffer(plane, upsampledPlanes[plane])
			zero := BuildSurface[int16]().Fill(0, upsampledPlanes[plane].Width(), upsampledPlanes[plane].Height()).Finish()
			accumulated := ApplyTemporal(d.temporalBuffer[plane], zero, mask, g.TransformBlockSize)
			fullReco[plane] = addClamped(upsampledPlanes[plane], accumulated)

		default:
			fullReco[plane] = upsampledPlanes[plane]
		}
	}

	// Dithering (luma only), conformance-window crop, depth conversion.
	output := make([]Surface[uint16], numPlanes)
	for plane := 0; plane < numPlanes; plane++ {
		outp := fullReco[plane]
		if ditheringSwitch && p.DitheringControl && plane == 0 && d.ditherer != nil {
			outp = d.ditherer.Apply(outp, g.TransformBlockSize)
		}

		if cfg.Sequence.ConformanceWindow {
			cw, ch := g.CropUnit(plane)
			win := ConformanceWindow{
				Left:   int(cfg.Sequence.ConfWinLeft),
				Right:  int(cfg.Sequence.ConfWinRight),
				Top:    int(cfg.Sequence.ConfWinTop),
				Bottom: int(cfg.Sequence.ConfWinBottom),
			}
			outp = Crop(outp, win, cw, ch)
		}

		output[plane] = convertFromInternalSurface(outp, g.EnhancementDepth)
	}

	var out Image
	out.NumPlanes = numPlanes
	out.Depth = g.EnhancementDepth
	for i := 0; i < numPlanes; i++ {
		out.Planes[i] = output[i]
	}
	return out, nil
}

func (d *Decoder) ensureTemporalBuffer(plane int, sized Surface[int16]) {
	buf := d.temporalBuffer[plane]
	if buf == nil || buf.width != sized.Width() || buf.height != sized.Height() {
		d.logf("decode: (re)allocating temporal buffer", "plane", plane, "width", sized.Width(), "height", sized.Height())
		d.temporalBuffer[plane] = NewTemporalBuffer(sized.Width(), sized.Height())
	}
}

// temporalMask derives this plane's LOQ2 temporal mask: the decoded
// temporal symbols layer when present, otherwise a synthesized all-INTR or
// all-PRED mask, per the special case of §4.8.
func (d *Decoder) temporalMask(plane int, symbols *Symbols) Surface[uint8] {
	g := &d.deserializer.Config.Global
	p := &d.deserializer.Config.Picture
	if !g.TemporalEnabled {
		return Surface[uint8]{}
	}
	if p.TemporalSignallingPresent && symbols.HasTemporal[plane] {
		return symbols.Temporal[plane]
	}
	return SynthesizeTemporalMask(g.ResolutionWidth, g.ResolutionHeight, g.TransformBlockSize, p.TemporalRefresh)
}

// refreshQuantMatrix updates the remembered per-layer quant-matrix
// coefficients for one plane, across both LOQs, per quant_matrix_mode.
func (d *Decoder) refreshQuantMatrix(plane int, isIDR bool) {
	g := &d.deserializer.Config.Global
	p := &d.deserializer.Config.Picture
	for loq := LOQ(0); loq < NumLOQs; loq++ {
		for layer := 0; layer < g.NumResidualLayers; layer++ {
			d.quantMatrixCoeff[plane][loq][layer] = findQuantMatrixCoeff(p, loq, layer, isIDR, d.quantMatrixCoeff[plane][loq][layer])
		}
	}
}

// findQuantMatrixCoeff derives one (loq,layer) slot of the remembered
// quant-matrix coefficients from quant_matrix_mode: the two custom
// coefficient sets read by the Picture block parser map to qm_coefficient_2
// (index 1) for the modes that give LOQ2 a custom matrix, and
// qm_coefficient_1 (index 0) for the modes that give LOQ1 one.
func findQuantMatrixCoeff(p *PictureConfiguration, loq LOQ, layer int, isIDR bool, previous int) int {
	if isIDR {
		return -1
	}
	switch p.QuantMatrixMode {
	case QuantMatrixBothPrevious:
		return previous
	case QuantMatrixBothDefault:
		return -1
	case QuantMatrixSameAndCustom:
		return p.QMCoefficient[1][layer]
	case QuantMatrixLevel2CustomLevel1Default:
		if loq == LOQ2 {
			return p.QMCoefficient[1][layer]
		}
		return -1
	case QuantMatrixLevel2DefaultLevel1Custom:
		if loq == LOQ1 {
			return p.QMCoefficient[0][layer]
		}
		return -1
	case QuantMatrixDifferentAndCustom:
		if loq == LOQ1 {
			return p.QMCoefficient[0][layer]
		}
		return p.QMCoefficient[1][layer]
	default:
		return previous
	}
}

// isUserDataLayer reports whether (loq,layer) carries user data packed into
// its coefficients' low bits: only LOQ1, and only one fixed layer index
// depending on transform size, per §4.4.
func (d *Decoder) isUserDataLayer(loq LOQ, layer int) bool {
	g := &d.deserializer.Config.Global
	if loq != LOQ1 || g.UserDataEnabled == UserDataNone {
		return false
	}
	if g.TransformBlockSize == 4 {
		return layer == 5
	}
	return layer == 1
}

// decodeResiduals dequantizes and inverse-transforms one (plane,loq)'s
// residual layers, applying the dual temporal step-width path at LOQ2 when
// temporal prediction is active and the picture is not a full refresh.
func (d *Decoder) decodeResiduals(plane int, loq LOQ, mask Surface[uint8], symbols *Symbols) Surface[int16] {
	g := &d.deserializer.Config.Global
	p := &d.deserializer.Config.Picture
	n := g.NumResidualLayers
	horizontalOnly := g.ScalingMode[loq] == ScalingMode1D

	stepWidth := p.StepWidth[loq]
	if loq == LOQ2 && plane > 0 {
		stepWidth = ChromaStepWidth(stepWidth, g.ChromaStepWidthMultiplier)
	}

	temporalDual := loq == LOQ2 && g.TemporalEnabled && !p.TemporalRefresh

	layers := make([]Surface[int16], n)
	for layer := 0; layer < n; layer++ {
		coeffs := symbols.Residual[plane][loq][layer]
		if d.isUserDataLayer(loq, layer) {
			size := 2
			if g.UserDataEnabled == UserData6Bits {
				size = 6
			}
			coeffs = stripUserDataLayer(coeffs, size)
		}

		qmCoeff := d.quantMatrixCoeff[plane][loq][layer]
		if temporalDual {
			layers[layer] = InverseQuantizeTemporal(coeffs, mask, stepWidth, qmCoeff, p.DequantOffsetMode, p.DequantOffsetValue, g.TemporalStepWidthModifier)
		} else {
			layers[layer] = InverseQuantize(coeffs, stepWidth, qmCoeff, p.DequantOffsetMode, p.DequantOffsetValue)
		}
	}

	width := d.deserializer.Dims.PlaneWidth(plane, loq)
	height := d.deserializer.Dims.PlaneHeight(plane, loq)

	if g.TransformBlockSize == 4 {
		var arr [16]Surface[int16]
		copy(arr[:], layers)
		if horizontalOnly {
			return InverseTransformDDS1D(arr, width, height)
		}
		return InverseTransformDDS2D(arr, width, height)
	}
	var arr [4]Surface[int16]
	copy(arr[:], layers)
	if horizontalOnly {
		return InverseTransformDD1D(arr, width, height)
	}
	return InverseTransformDD2D(arr, width, height)
}

// stripUserDataLayer clears the embedded user-data bits from every
// coefficient in layer, recovering the signed residual magnitude.
func stripUserDataLayer(layer Surface[int16], size int) Surface[int16] {
	out := BuildSurface[int16]().Reserve(layer.Width(), layer.Height())
	for y := 0; y < layer.Height(); y++ {
		for x := 0; x < layer.Width(); x++ {
			c, _ := StripUserData(layer.Read(x, y), size)
			out.Write(x, y, c)
		}
	}
	return out.Finish()
}

// upsamplePlane applies one LOQ's scaling mode, followed by the predicted-
// residual adjustment when the stream signals it, per §4.6.
func upsamplePlane(src Surface[int16], mode ScalingMode, kind Upsample, coeffs [4]uint16, predictedResidualEnabled bool) Surface[int16] {
	switch mode {
	case ScalingMode1D:
		up := Upsample1D(src, kind, coeffs)
		if predictedResidualEnabled {
			up = PredictedResidualAdjust1D(up, src)
		}
		return up
	case ScalingMode2D:
		up := Upsample2D(src, kind, coeffs)
		if predictedResidualEnabled {
			up = PredictedResidualAdjust2D(up, src)
		}
		return up
	default:
		return src
	}
}

// addClamped adds two Surfaces sample-wise with int16 saturation.
func addClamped(a, b Surface[int16]) Surface[int16] {
	out := BuildSurface[int16]().Reserve(a.Width(), a.Height())
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			out.Write(x, y, Clamp16(int32(a.Read(x, y))+int32(b.Read(x, y))))
		}
	}
	return out.Finish()
}

// imagePlaneToSurface16 narrows an external-depth plane (held widened in
// uint16) to a signed Surface at the same pel values, ahead of the
// depth-to-internal conversion. Signalled depths top out at 14 bits, so
// the narrowing never overflows int16.
func imagePlaneToSurface16(plane Surface[uint16]) Surface[int16] {
	out := BuildSurface[int16]().Reserve(plane.Width(), plane.Height())
	for y := 0; y < plane.Height(); y++ {
		for x := 0; x < plane.Width(); x++ {
			out.Write(x, y, int16(plane.Read(x, y)))
		}
	}
	return out.Finish()
}

func convertToInternalSurface(plane Surface[int16], depth int) Surface[int16] {
	out := BuildSurface[int16]().Reserve(plane.Width(), plane.Height())
	for y := 0; y < plane.Height(); y++ {
		for x := 0; x < plane.Width(); x++ {
			out.Write(x, y, ConvertToInternal(int32(plane.Read(x, y)), depth))
		}
	}
	return out.Finish()
}

func convertFromInternalSurface(plane Surface[int16], depth int) Surface[uint16] {
	out := BuildSurface[uint16]().Reserve(plane.Width(), plane.Height())
	for y := 0; y < plane.Height(); y++ {
		for x := 0; x < plane.Width(); x++ {
			out.Write(x, y, uint16(ConvertFromInternal(plane.Read(x, y), depth)))
		}
	}
	return out.Finish()
}
