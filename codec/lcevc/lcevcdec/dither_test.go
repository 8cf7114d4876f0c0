package lcevcdec

import "testing"

func TestNewDithererRingWithinStrengthBounds(t *testing.T) {
	strength := 2
	depth := 8
	scaled := strength * (1 << (15 - depth))

	d := NewDitherer(strength, depth)
	for i, v := range d.ring {
		if int(v) < -scaled || int(v) > scaled {
			t.Fatalf("ring[%d] = %d, outside [-%d, %d]", i, v, scaled, scaled)
		}
	}
}

func TestDithererApplyDeterministic(t *testing.T) {
	plane := BuildSurface[int16]().Fill(100, 8, 8).Finish()

	d1 := NewDitherer(4, 10)
	out1 := d1.Apply(plane, 4)

	d2 := NewDitherer(4, 10)
	out2 := d2.Apply(plane, 4)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if out1.Read(x, y) != out2.Read(x, y) {
				t.Fatalf("dithering not deterministic at (%d,%d): %d vs %d", x, y, out1.Read(x, y), out2.Read(x, y))
			}
		}
	}
}

func TestDithererApplyBoundedDeviation(t *testing.T) {
	strength := 3
	depth := 8
	scaled := strength * (1 << (15 - depth))

	plane := BuildSurface[int16]().Fill(1000, 4, 4).Finish()
	d := NewDitherer(strength, depth)
	out := d.Apply(plane, 4)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			diff := int(out.Read(x, y)) - 1000
			if diff < -scaled || diff > scaled {
				t.Errorf("(%d,%d) deviation %d outside +/-%d", x, y, diff, scaled)
			}
		}
	}
}
