package lcevcdec

import "testing"

func TestCropLumaFourByEightExample(t *testing.T) {
	src := BuildSurface[int16]().Generate(8, 8, func(x, y int) int16 { return int16(y*8 + x) }).Finish()

	win := ConformanceWindow{Left: 1, Right: 1, Top: 0, Bottom: 0}
	out := Crop(src, win, 2, 1)

	if out.Width() != 4 {
		t.Fatalf("width = %d, want 4", out.Width())
	}
	if out.Height() != 8 {
		t.Fatalf("height = %d, want 8", out.Height())
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			want := src.Read(x+2, y)
			if got := out.Read(x, y); got != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestCropNoOpWhenWindowZero(t *testing.T) {
	src := BuildSurface[int16]().Fill(7, 4, 4).Finish()
	out := Crop(src, ConformanceWindow{}, 2, 1)
	if out.Width() != 4 || out.Height() != 4 {
		t.Fatalf("unexpected size %dx%d", out.Width(), out.Height())
	}
}
