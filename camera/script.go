package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PointerScript drives the pointer when no user is present: a Lissajous sweep across the
// viewport and short scroll bursts that alternate between zooming out and in.
type PointerScript struct {
	FreqX, FreqY float64 // radians per frame
	Phase        float64
	Amplitude    float32 // NDC reach, <= 1 keeps the pointer on screen
	ScrollEvery  int     // frames between burst starts, 0 disables scrolling
	ScrollBurst  int     // frames per burst
}

// NewPointerScript returns the default headless sweep.
func NewPointerScript() *PointerScript {
	return &PointerScript{
		FreqX:       0.013,
		FreqY:       0.021,
		Phase:       math.Pi / 2,
		Amplitude:   0.9,
		ScrollEvery: 600,
		ScrollBurst: 20,
	}
}

// At returns the pointer position in NDC and the wheel delta for a frame.
func (s *PointerScript) At(frame int) (ndc mgl32.Vec2, wheel float32) {
	t := float64(frame)
	ndc = mgl32.Vec2{
		s.Amplitude * float32(math.Sin(t*s.FreqX+s.Phase)),
		s.Amplitude * float32(math.Sin(t*s.FreqY)),
	}

	if s.ScrollEvery > 0 && frame%s.ScrollEvery < s.ScrollBurst {
		wheel = 1
		if (frame/s.ScrollEvery)%2 == 1 {
			wheel = -1
		}
	}
	return ndc, wheel
}
