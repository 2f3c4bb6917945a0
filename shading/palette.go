package shading

// Variation is one entry of the concrete palette. Each cell is assigned a variation index
// at grid construction and keeps it for its lifetime.
type Variation struct {
	Base         float32 // grey level added to every channel
	Weight1      float32 // weight of the coarse noise term
	Scale        float32 // frequency of the per-variation fbm layer
	PhaseCos     bool    // drift the fbm layer with cos instead of sin
	PhaseFreq    float32
	Weight2      float32 // weight of the per-variation fbm layer
	Imperfection float32 // strength of the high-frequency pitting term
}

// patternOffset is subtracted from the blended pattern so the average lands near Base.
const patternOffset = 0.075

var palette24 = [24]Variation{
	{0.067, 0.15, 2.0, false, 0.20, 0.08, 0.15},
	{0.045, 0.12, 3.0, true, 0.15, 0.10, 0.18},
	{0.058, 0.14, 2.5, false, 0.25, 0.09, 0.14},
	{0.042, 0.16, 3.5, true, 0.18, 0.07, 0.16},
	{0.049, 0.13, 4.0, false, 0.22, 0.06, 0.13},
	{0.054, 0.17, 2.8, true, 0.20, 0.08, 0.17},
	{0.061, 0.11, 3.2, false, 0.17, 0.09, 0.16},
	{0.043, 0.15, 2.6, true, 0.23, 0.07, 0.14},
	{0.056, 0.14, 3.8, false, 0.19, 0.06, 0.17},
	{0.040, 0.16, 2.4, true, 0.21, 0.08, 0.15},
	{0.047, 0.13, 3.4, false, 0.16, 0.07, 0.18},
	{0.055, 0.15, 2.9, true, 0.24, 0.09, 0.13},
	{0.063, 0.12, 3.6, false, 0.18, 0.08, 0.16},
	{0.039, 0.16, 2.7, true, 0.22, 0.07, 0.15},
	{0.048, 0.14, 3.3, false, 0.20, 0.06, 0.17},
	{0.052, 0.13, 2.8, true, 0.17, 0.08, 0.14},
	{0.046, 0.15, 3.7, false, 0.23, 0.07, 0.16},
	{0.041, 0.12, 2.5, true, 0.19, 0.09, 0.18},
	{0.050, 0.16, 3.1, false, 0.21, 0.08, 0.15},
	{0.044, 0.14, 2.9, true, 0.18, 0.07, 0.17},
	{0.057, 0.13, 3.5, false, 0.24, 0.06, 0.14},
	{0.038, 0.15, 2.6, true, 0.20, 0.08, 0.16},
	{0.052, 0.12, 3.2, false, 0.22, 0.07, 0.15},
	{0.053, 0.16, 2.8, true, 0.17, 0.09, 0.17},
}

// Palette returns a copy of the first n palette entries. n must be 6 or 24; the six-entry
// palette is the leading slice of the full table.
func Palette(n int) []Variation {
	if n > len(palette24) {
		n = len(palette24)
	}
	if n < 1 {
		n = 1
	}
	out := make([]Variation, n)
	copy(out, palette24[:n])
	return out
}

// ClampVariation maps an arbitrary index into [0, n). Indices are clamped once at
// assignment time so shading never needs a bounds check.
func ClampVariation(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
