package lcevcdec

import "testing"

func TestSynthesizeTemporalMaskRefresh(t *testing.T) {
	mask := SynthesizeTemporalMask(8, 8, 4, true)
	if mask.Width() != 2 || mask.Height() != 2 {
		t.Fatalf("unexpected mask size %dx%d", mask.Width(), mask.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := mask.Read(x, y); got != TemporalIntr {
				t.Errorf("(%d,%d) = %d, want TemporalIntr", x, y, got)
			}
		}
	}
}

func TestSynthesizeTemporalMaskNoRefresh(t *testing.T) {
	mask := SynthesizeTemporalMask(8, 8, 4, false)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := mask.Read(x, y); got != TemporalPred {
				t.Errorf("(%d,%d) = %d, want TemporalPred", x, y, got)
			}
		}
	}
}

func TestApplyTemporalIntraResets(t *testing.T) {
	buf := NewTemporalBuffer(4, 4)
	buf.set(0, 0, 500)

	mask := BuildSurface[uint8]().Fill(TemporalIntr, 1, 1).Finish()
	current := BuildSurface[int16]().Fill(7, 4, 4).Finish()

	out := ApplyTemporal(buf, current, mask, 4)
	if got := out.Read(0, 0); got != 7 {
		t.Errorf("intra block = %d, want 7 (reset, not accumulated)", got)
	}
	if got := buf.at(0, 0); got != 7 {
		t.Errorf("buffer not updated to reset value: got %d", got)
	}
}

func TestApplyTemporalPredAccumulates(t *testing.T) {
	buf := NewTemporalBuffer(4, 4)
	buf.set(0, 0, 100)

	mask := BuildSurface[uint8]().Fill(TemporalPred, 1, 1).Finish()
	current := BuildSurface[int16]().Fill(20, 4, 4).Finish()

	out := ApplyTemporal(buf, current, mask, 4)
	if got := out.Read(0, 0); got != 120 {
		t.Errorf("pred block = %d, want 120 (accumulated)", got)
	}
}

func TestTemporalBufferResetZeroes(t *testing.T) {
	buf := NewTemporalBuffer(2, 2)
	buf.set(0, 0, 42)
	buf.set(1, 1, -7)
	buf.Reset()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := buf.at(x, y); got != 0 {
				t.Errorf("(%d,%d) = %d after reset, want 0", x, y, got)
			}
		}
	}
}
