package lcevcdec

import "testing"

func TestConvertToInternalRoundTrip(t *testing.T) {
	depth := 8
	for x := int32(0); x <= 255; x++ {
		internal := ConvertToInternal(x, depth)
		back := ConvertFromInternal(internal, depth)
		diff := int32(back) - x
		if diff < -1 || diff > 1 {
			t.Fatalf("x=%d: round trip diff = %d, want within 1", x, diff)
		}
	}
}

func TestConvertFromInternalClampsToDepthRange(t *testing.T) {
	if got := ConvertFromInternal(-0x4000, 8); got != 0 {
		t.Errorf("min internal = %d, want 0", got)
	}
	if got := ConvertFromInternal(0x3FFF, 8); got != 255 {
		t.Errorf("max internal = %d, want 255", got)
	}
}

func TestConvertToInternalZeroMapsToMidpoint(t *testing.T) {
	// A mid-range 8-bit value (128) should map close to internal zero.
	got := ConvertToInternal(128, 8)
	if got < -64 || got > 64 {
		t.Errorf("ConvertToInternal(128, 8) = %d, want near 0", got)
	}
}

func TestPromoteBaseDepthShiftsUp(t *testing.T) {
	src := BuildSurface[int16]().Fill(10, 2, 2).Finish()
	out := PromoteBaseDepth(src, 8, 10)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.Read(x, y); got != 40 {
				t.Errorf("(%d,%d) = %d, want 40", x, y, got)
			}
		}
	}
}

func TestPromoteBaseDepthNoopWhenEqual(t *testing.T) {
	src := BuildSurface[int16]().Fill(123, 2, 2).Finish()
	out := PromoteBaseDepth(src, 10, 10)
	if out.Read(0, 0) != 123 {
		t.Errorf("expected no-op at equal depths, got %d", out.Read(0, 0))
	}
}
