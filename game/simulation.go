package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/config"
	"github.com/pthm-cable/concrete/shading"
	"github.com/pthm-cable/concrete/systems"
	"github.com/pthm-cable/concrete/telemetry"
)

// Update runs one windowed frame step: input, then the scene step. Draw finishes the
// frame's perf sample.
func (g *Game) Update() {
	g.perf.StartFrame()
	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()
	g.step()
}

// UpdateHeadless runs one frame step with the scripted pointer instead of raylib input.
func (g *Game) UpdateHeadless() {
	g.perf.StartFrame()
	g.perf.StartPhase(telemetry.PhaseInput)
	ndc, wheel := g.script.At(g.frame)
	g.queuePointer(ndc)
	if wheel != 0 {
		g.rig.Wheel(wheel)
	}
	g.step()
	g.perf.EndFrame()
}

// queuePointer records a pointer move for the next interaction phase.
func (g *Game) queuePointer(ndc mgl32.Vec2) {
	g.pointerNDC = ndc
	g.pointerDirty = true
	if g.contact != nil {
		g.contact.Pointer(ndc)
	}
}

// step advances everything by one frame. Nothing here can fail.
func (g *Game) step() {
	g.perf.StartPhase(telemetry.PhaseInteraction)
	entered := false
	if g.pointerDirty {
		entered = g.resolvePointer()
		g.pointerDirty = false
	}
	g.rig.Step()

	g.perf.StartPhase(telemetry.PhaseAnimation)
	cycles := g.animWorld.Heartbeat.Cycles
	summary := g.animation.Update(g.animWorld)

	g.perf.StartPhase(telemetry.PhaseChoreography)
	g.choreo.Step(g.animWorld.Interaction.Hovered)

	g.perf.StartPhase(telemetry.PhaseUniforms)
	g.writeUniforms()

	g.frame++
	g.collector.Observe(telemetry.FrameSample{
		Hovered:      g.animWorld.Interaction.Hovered,
		HoverEntered: entered,
		Alive:        g.animWorld.ActiveCount,
		Activated:    summary.Activated,
		Cancelled:    summary.Cancelled,
		Finished:     summary.Finished,
		CycleWrapped: g.animWorld.Heartbeat.Cycles != cycles,
	})
	g.flushTelemetry()
}

// resolvePointer casts the pending pointer into the grid's local frame and updates hover.
func (g *Game) resolvePointer() bool {
	ndc := g.pointerNDC
	g.rig.Pointer(ndc)

	origin, dir := g.rig.Ray(ndc)
	local := systems.Ray{Origin: origin, Dir: dir}.Transform(g.groupMatrix().Inv())
	hit, ok := g.grid.Raycast(local)
	return g.animWorld.Interaction.PointerMoved(ndc, hit, ok)
}

// groupMatrix returns the grid group's local-to-world transform.
func (g *Game) groupMatrix() mgl32.Mat4 {
	return g.rig.GroupMatrix(g.choreo.Rotation.X, g.choreo.Rotation.Y)
}

// writeUniforms stores this frame's dynamic uniform values in the persistent table.
func (g *Game) writeUniforms() {
	u := g.uniforms
	u.SetFloat(shading.UniformTime, g.choreo.Time)
	u.SetVec2(shading.UniformPointer, g.animWorld.Interaction.PointerNDC)
	for i, l := range g.choreo.Lights.Lights {
		if i >= config.MaxLights {
			break
		}
		u.SetVec3At(shading.UniformLightPos, i, l.Position)
		u.SetFloatAt(shading.UniformLightIntensity, i, l.Intensity)
	}
}
