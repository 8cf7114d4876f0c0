package lcevcdec

import "testing"

func TestDeblockInteriorUnaffected(t *testing.T) {
	src := BuildSurface[int16]().Fill(160, 4, 4).Finish()
	out := Deblock(src, 8, 4)

	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		if got := out.Read(p[0], p[1]); got != 160 {
			t.Errorf("interior (%d,%d) = %d, want 160 (unattenuated)", p[0], p[1], got)
		}
	}
}

func TestDeblockCornerAttenuatedMoreThanSide(t *testing.T) {
	src := BuildSurface[int16]().Fill(160, 4, 4).Finish()
	out := Deblock(src, 8, 4)

	corner := out.Read(0, 0)
	side := out.Read(1, 0)
	if !(corner < side && side < 160) {
		t.Errorf("want corner(%d) < side(%d) < 160", corner, side)
	}

	wantCorner := int16((int32(160) * (16 - 8)) >> 4)
	wantSide := int16((int32(160) * (16 - 4)) >> 4)
	if corner != wantCorner {
		t.Errorf("corner = %d, want %d", corner, wantCorner)
	}
	if side != wantSide {
		t.Errorf("side = %d, want %d", side, wantSide)
	}
}

func TestDeblockZeroCoeffsIdentity(t *testing.T) {
	src := BuildSurface[int16]().Generate(4, 4, func(x, y int) int16 { return int16(x*4 + y) }).Finish()
	out := Deblock(src, 0, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got, want := out.Read(x, y), src.Read(x, y); got != want {
				t.Errorf("(%d,%d) = %d, want %d (identity with zero coefficients)", x, y, got, want)
			}
		}
	}
}
