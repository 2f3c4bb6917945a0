package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/config"
)

func newRig(t *testing.T) *Rig {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return New(cfg, 1280, 720)
}

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestNew(t *testing.T) {
	r := newRig(t)

	if r.Distance != 15 || r.TargetDistance != 15 {
		t.Errorf("expected initial distance 15, got %f (target %f)", r.Distance, r.TargetDistance)
	}
	if r.Position != (mgl32.Vec3{0, 0, 20}) {
		t.Errorf("expected camera at z=20, got %v", r.Position)
	}
}

func TestWheelStep(t *testing.T) {
	r := newRig(t)

	// Far from the camera each notch moves 0.3, regardless of delta magnitude
	r.Wheel(120)
	if !near(r.TargetDistance, 15.3, 1e-5) {
		t.Errorf("expected target 15.3, got %f", r.TargetDistance)
	}
	r.Wheel(-3)
	r.Wheel(-3)
	if !near(r.TargetDistance, 14.7, 1e-5) {
		t.Errorf("expected target 14.7, got %f", r.TargetDistance)
	}

	// Below 1 unit the step drops to 0.1
	r.SetTargetDistance(0.5)
	r.Wheel(-1)
	if !near(r.TargetDistance, 0.4, 1e-5) {
		t.Errorf("expected near step 0.1, got target %f", r.TargetDistance)
	}

	// Zero delta is ignored
	r.Wheel(0)
	if !near(r.TargetDistance, 0.4, 1e-5) {
		t.Errorf("zero delta moved target to %f", r.TargetDistance)
	}
}

func TestZoomClamp(t *testing.T) {
	r := newRig(t)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20000; i++ {
		// Long runs in one direction push against both limits
		dir := float32(1)
		if (i/500)%2 == 1 {
			dir = -1
		}
		if rng.Float64() < 0.2 {
			dir = -dir
		}
		r.Wheel(dir * float32(rng.Float64()*100))
		r.Step()

		if r.Distance < r.MinDistance || r.Distance > r.MaxDistance {
			t.Fatalf("distance %f escaped [%f, %f] at step %d", r.Distance, r.MinDistance, r.MaxDistance, i)
		}
		if r.TargetDistance < r.MinDistance || r.TargetDistance > r.MaxDistance {
			t.Fatalf("target %f escaped [%f, %f] at step %d", r.TargetDistance, r.MinDistance, r.MaxDistance, i)
		}
	}
}

func TestZoomSmoothing(t *testing.T) {
	r := newRig(t)
	r.SetTargetDistance(25)

	r.Step()
	// 15 + (25-15)*0.08
	if !near(r.Distance, 15.8, 1e-4) {
		t.Errorf("expected 15.8 after one step, got %f", r.Distance)
	}
	for i := 0; i < 500; i++ {
		r.Step()
	}
	if !near(r.Distance, 25, 1e-3) {
		t.Errorf("expected distance to settle at 25, got %f", r.Distance)
	}
}

func TestParallax(t *testing.T) {
	r := newRig(t)
	r.Pointer(mgl32.Vec2{1, 1})

	if !near(r.TargetRotation[0], -0.07, 1e-6) || !near(r.TargetRotation[1], 0.07, 1e-6) {
		t.Errorf("expected target rotation (-0.07, 0.07), got %v", r.TargetRotation)
	}

	r.Step()
	if !near(r.Rotation[1], 0.0035, 1e-6) {
		t.Errorf("expected smoothed yaw 0.0035, got %f", r.Rotation[1])
	}
}

func TestToNDC(t *testing.T) {
	r := newRig(t)

	testCases := []struct {
		px, py float32
		want   mgl32.Vec2
	}{
		{640, 360, mgl32.Vec2{0, 0}},
		{0, 0, mgl32.Vec2{-1, 1}},
		{1280, 720, mgl32.Vec2{1, -1}},
	}
	for _, tc := range testCases {
		got := r.ToNDC(tc.px, tc.py)
		if !near(got[0], tc.want[0], 1e-6) || !near(got[1], tc.want[1], 1e-6) {
			t.Errorf("ToNDC(%f, %f) = %v, want %v", tc.px, tc.py, got, tc.want)
		}
	}
}

func TestRayThroughCenter(t *testing.T) {
	r := newRig(t)

	origin, dir := r.Ray(mgl32.Vec2{0, 0})
	if origin != r.Position {
		t.Errorf("expected ray from camera position, got %v", origin)
	}
	if !near(dir[2], -1, 1e-4) || !near(dir[0], 0, 1e-4) || !near(dir[1], 0, 1e-4) {
		t.Errorf("expected center ray along -Z, got %v", dir)
	}

	// Right edge of the screen points right
	_, right := r.Ray(mgl32.Vec2{1, 0})
	if right[0] <= 0 {
		t.Errorf("expected positive X for right edge ray, got %v", right)
	}
	// Top of the screen points up
	_, up := r.Ray(mgl32.Vec2{0, 1})
	if up[1] <= 0 {
		t.Errorf("expected positive Y for top edge ray, got %v", up)
	}
}

func TestRayProjectsBack(t *testing.T) {
	r := newRig(t)
	r.Rotation = mgl32.Vec2{0.03, -0.05}

	ndc := mgl32.Vec2{0.4, -0.3}
	origin, dir := r.Ray(ndc)
	p := origin.Add(dir.Mul(10))

	clip := r.Projection().Mul4(r.View()).Mul4x1(p.Vec4(1))
	if !near(clip[0]/clip[3], ndc[0], 1e-3) || !near(clip[1]/clip[3], ndc[1], 1e-3) {
		t.Errorf("point on ray projects to (%f, %f), want %v", clip[0]/clip[3], clip[1]/clip[3], ndc)
	}
}

func TestGroupMatrix(t *testing.T) {
	r := newRig(t)

	m := r.GroupMatrix(0, 0)
	p := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !near(p[2], -15, 1e-5) {
		t.Errorf("expected group origin at z=-15, got %f", p[2])
	}

	// Rotation keeps distances from the group origin
	m = r.GroupMatrix(0.4, 1.1)
	q := m.Mul4x1(mgl32.Vec4{1, 2, 3, 1}).Vec3().Sub(mgl32.Vec3{0, 0, -15})
	if !near(q.Len(), mgl32.Vec3{1, 2, 3}.Len(), 1e-4) {
		t.Errorf("group transform is not rigid: |q| = %f", q.Len())
	}
}

func TestResize(t *testing.T) {
	r := newRig(t)
	r.Resize(800, 800)
	if r.Aspect() != 1 {
		t.Errorf("expected aspect 1, got %f", r.Aspect())
	}
	r.Resize(0, 600)
	if r.ViewportW != 800 {
		t.Errorf("zero width resize should be ignored, got %f", r.ViewportW)
	}
}
