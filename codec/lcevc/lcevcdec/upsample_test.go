package lcevcdec

import "testing"

func TestUpsample2DNearestReplicates(t *testing.T) {
	src := BuildSurface[int16]().Generate(2, 2, func(x, y int) int16 { return int16((y*2 + x) * 10) }).Finish()
	out := Upsample2D(src, UpsampleNearest, [4]uint16{})
	if out.Width() != 4 || out.Height() != 4 {
		t.Fatalf("unexpected output size %dx%d", out.Width(), out.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := src.Read(x/2, y/2)
			if got := out.Read(x, y); got != want {
				t.Errorf("out.Read(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestPredictedResidualAdjust2DMeanPreserved(t *testing.T) {
	base := BuildSurface[int16]().Fill(100, 2, 2).Finish()
	up := Upsample2D(base, UpsampleLinear, [4]uint16{})
	adjusted := PredictedResidualAdjust2D(up, base)

	for by := 0; by < 2; by++ {
		for bx := 0; bx < 2; bx++ {
			x0, y0 := bx*2, by*2
			sum := int32(adjusted.Read(x0, y0)) + int32(adjusted.Read(x0+1, y0)) +
				int32(adjusted.Read(x0, y0+1)) + int32(adjusted.Read(x0+1, y0+1))
			mean := sum / 4
			if mean != 100 {
				t.Errorf("block (%d,%d) mean = %d, want 100", bx, by, mean)
			}
		}
	}
}
