package lcevcdec

import "testing"

func flatLayer(v int16) Surface[int16] {
	return BuildSurface[int16]().Fill(v, 1, 1).Finish()
}

func TestInverseTransformDD2DDCOnly(t *testing.T) {
	// Only layer 0 (pure DC) nonzero: every output position gets +layer0.
	var layers [4]Surface[int16]
	layers[0] = flatLayer(40)
	layers[1] = flatLayer(0)
	layers[2] = flatLayer(0)
	layers[3] = flatLayer(0)

	out := InverseTransformDD2D(layers, 2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.Read(x, y); got != 40 {
				t.Errorf("out.Read(%d,%d) = %d, want 40", x, y, got)
			}
		}
	}
}

func TestInverseTransformDDS2DDCOnly(t *testing.T) {
	var layers [16]Surface[int16]
	for i := range layers {
		layers[i] = flatLayer(0)
	}
	layers[0] = flatLayer(16)

	out := InverseTransformDDS2D(layers, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.Read(x, y); got != 16 {
				t.Errorf("out.Read(%d,%d) = %d, want 16", x, y, got)
			}
		}
	}
}

func TestInverseTransformDD1DDropsVerticalLayers(t *testing.T) {
	// Layers 2,3 carry the vertical-only component; the 1D transform must
	// ignore them entirely.
	var layers [4]Surface[int16]
	layers[0] = flatLayer(10)
	layers[1] = flatLayer(0)
	layers[2] = flatLayer(1000)
	layers[3] = flatLayer(1000)

	out := InverseTransformDD1D(layers, 2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.Read(x, y); got != 10 {
				t.Errorf("out.Read(%d,%d) = %d, want 10 (vertical layers must be ignored)", x, y, got)
			}
		}
	}
}
