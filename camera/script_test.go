package camera

import "testing"

func TestPointerScriptStaysOnScreen(t *testing.T) {
	s := NewPointerScript()
	for f := 0; f < 5000; f++ {
		ndc, _ := s.At(f)
		if ndc[0] < -1 || ndc[0] > 1 || ndc[1] < -1 || ndc[1] > 1 {
			t.Fatalf("frame %d: pointer %v left the viewport", f, ndc)
		}
	}
}

func TestPointerScriptDeterministic(t *testing.T) {
	a, b := NewPointerScript(), NewPointerScript()
	for f := 0; f < 100; f++ {
		na, wa := a.At(f)
		nb, wb := b.At(f)
		if na != nb || wa != wb {
			t.Fatalf("frame %d differs: %v/%f vs %v/%f", f, na, wa, nb, wb)
		}
	}
}

func TestPointerScriptScrollBursts(t *testing.T) {
	s := NewPointerScript()
	s.ScrollEvery = 10
	s.ScrollBurst = 3

	var out, in int
	for f := 0; f < 40; f++ {
		_, w := s.At(f)
		switch {
		case w > 0:
			out++
		case w < 0:
			in++
		}
	}
	// Bursts start at 0, 10, 20, 30 and alternate direction
	if out != 6 || in != 6 {
		t.Errorf("expected 6 out and 6 in scroll frames, got %d and %d", out, in)
	}

	// Zooming out then back in returns to the start distance
	r := newRig(t)
	start := r.TargetDistance
	for f := 0; f < 20; f++ {
		_, w := s.At(f)
		r.Wheel(w)
	}
	if !near(r.TargetDistance, start, 1e-4) {
		t.Errorf("expected target back at %f, got %f", start, r.TargetDistance)
	}

	s.ScrollEvery = 0
	for f := 0; f < 40; f++ {
		if _, w := s.At(f); w != 0 {
			t.Fatalf("scrolling disabled but frame %d scrolled %f", f, w)
		}
	}
}
