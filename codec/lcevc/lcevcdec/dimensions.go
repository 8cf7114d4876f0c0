/*
DESCRIPTION
  dimensions.go derives plane/layer/tile sizes and the conformant base
  resolution from a SignaledConfiguration, following the same conform-up
  search used by the reference Dimensions::set.

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

// Dimensions holds the derived plane/layer/tile sizes for every
// (plane, loq) pair, plus the conformant base and intermediate resolution,
// recomputed whenever a Global block is re-signalled.
type Dimensions struct {
	chromaScaleW, chromaScaleH int

	planeWidth, planeHeight [MaxNumPlanes][NumLOQs]int
	layerWidth, layerHeight [MaxNumPlanes][NumLOQs]int
	tileWidth, tileHeight   [MaxNumPlanes][NumLOQs]int

	intermediateWidth, intermediateHeight int
	baseWidth, baseHeight                 int
}

// PlaneWidth returns the conformant width of plane at loq.
func (d *Dimensions) PlaneWidth(plane int, loq LOQ) int { return d.planeWidth[plane][loq] }

// PlaneHeight returns the conformant height of plane at loq.
func (d *Dimensions) PlaneHeight(plane int, loq LOQ) int { return d.planeHeight[plane][loq] }

// LayerWidth returns the coefficient-layer width (in transform blocks) of
// plane at loq.
func (d *Dimensions) LayerWidth(plane int, loq LOQ) int { return d.layerWidth[plane][loq] }

// LayerHeight returns the coefficient-layer height (in transform blocks) of
// plane at loq.
func (d *Dimensions) LayerHeight(plane int, loq LOQ) int { return d.layerHeight[plane][loq] }

// TileWidth returns the tile width in layer units of plane at loq, or 0 if
// tiling is not active.
func (d *Dimensions) TileWidth(plane int, loq LOQ) int { return d.tileWidth[plane][loq] }

// TileHeight returns the tile height in layer units of plane at loq, or 0
// if tiling is not active.
func (d *Dimensions) TileHeight(plane int, loq LOQ) int { return d.tileHeight[plane][loq] }

// BaseWidth returns the width the external base decoder must produce.
func (d *Dimensions) BaseWidth() int { return d.baseWidth }

// BaseHeight returns the height the external base decoder must produce.
func (d *Dimensions) BaseHeight() int { return d.baseHeight }

// IntermediateWidth returns the width between LOQ1 and LOQ2.
func (d *Dimensions) IntermediateWidth() int { return d.intermediateWidth }

// IntermediateHeight returns the height between LOQ1 and LOQ2.
func (d *Dimensions) IntermediateHeight() int { return d.intermediateHeight }

func (d *Dimensions) setPlaneDimensions(cfg *GlobalConfiguration, plane int, loq LOQ, width, height, scaleTileW, scaleTileH int) {
	tbs := cfg.TransformBlockSize

	d.planeWidth[plane][loq] = width
	d.planeHeight[plane][loq] = height

	d.layerWidth[plane][loq] = (width + tbs - 1) / tbs
	d.layerHeight[plane][loq] = (height + tbs - 1) / tbs

	if cfg.TileWidth != 0 && cfg.TileHeight != 0 {
		d.tileWidth[plane][loq] = cfg.TileWidth / (tbs * scaleTileW)
		d.tileHeight[plane][loq] = cfg.TileHeight / (tbs * scaleTileH)
	} else {
		d.tileWidth[plane][loq] = 0
		d.tileHeight[plane][loq] = 0
	}
}

func (d *Dimensions) setLOQDimensions(cfg *GlobalConfiguration, loq LOQ, width, height int) {
	chromaWidth := (width + d.chromaScaleW - 1) / d.chromaScaleW
	chromaHeight := (height + d.chromaScaleH - 1) / d.chromaScaleH

	if cfg.NumImagePlanes >= 1 {
		d.setPlaneDimensions(cfg, 0, loq, width, height, 1, 1)
	}
	if cfg.NumImagePlanes == 3 {
		d.setPlaneDimensions(cfg, 1, loq, chromaWidth, chromaHeight, d.chromaScaleW, d.chromaScaleH)
		d.setPlaneDimensions(cfg, 2, loq, chromaWidth, chromaHeight, d.chromaScaleW, d.chromaScaleH)
	}
}

func (d *Dimensions) setDimensions(cfg *GlobalConfiguration, width, height int) error {
	d.setLOQDimensions(cfg, LOQ2, width, height)

	switch cfg.ScalingMode[LOQ1] {
	case ScalingModeNone:
		d.setLOQDimensions(cfg, LOQ1, width, height)
	case ScalingMode1D:
		d.setLOQDimensions(cfg, LOQ1, (width+1)/2, height)
	case ScalingMode2D:
		d.setLOQDimensions(cfg, LOQ1, (width+1)/2, (height+1)/2)
	default:
		return unsupported("scaling_mode[LOQ1] = %d", cfg.ScalingMode[LOQ1])
	}
	return nil
}

// Set (re)derives every dimension from cfg and the signalled resolution
// (width, height), following the conform-up search of the reference
// Dimensions::set: start from the LOQ1 layer grid, double both axes until
// they cover the signalled resolution, then derive the intermediate and
// base resolutions by undoing the signalled scaling modes.
func (d *Dimensions) Set(cfg *SignaledConfiguration, width, height int) error {
	g := &cfg.Global

	cw, ch := g.ChromaScale()
	d.chromaScaleW, d.chromaScaleH = cw, ch

	if g.NumImagePlanes < g.NumProcessedPlanes {
		return unsupported("num_processed_planes %d exceeds num_image_planes %d", g.NumProcessedPlanes, g.NumImagePlanes)
	}

	if err := d.setDimensions(g, width, height); err != nil {
		return err
	}

	lastPlane := g.NumProcessedPlanes - 1
	if lastPlane < 0 {
		lastPlane = 0
	}

	w := d.layerWidth[lastPlane][LOQ1] * g.TransformBlockSize
	h := d.layerHeight[lastPlane][LOQ1] * g.TransformBlockSize

	for w < width {
		w *= 2
	}
	for h < height {
		h *= 2
	}

	if err := d.setDimensions(g, w, h); err != nil {
		return err
	}

	switch g.ScalingMode[LOQ2] {
	case ScalingMode1D:
		w /= 2
	case ScalingMode2D:
		w /= 2
		h /= 2
	case ScalingModeNone:
	default:
		return unsupported("scaling_mode[LOQ2] = %d", g.ScalingMode[LOQ2])
	}
	d.intermediateWidth, d.intermediateHeight = w, h

	switch g.ScalingMode[LOQ1] {
	case ScalingMode1D:
		w /= 2
	case ScalingMode2D:
		w /= 2
		h /= 2
	case ScalingModeNone:
	default:
		return unsupported("scaling_mode[LOQ1] = %d", g.ScalingMode[LOQ1])
	}
	d.baseWidth, d.baseHeight = w, h

	return nil
}
