package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few frames
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseInteraction)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseAnimation)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}

	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseInteraction]; !ok {
		t.Error("expected interaction phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseAnimation]; !ok {
		t.Error("expected animation phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseRender]; ok {
		t.Error("render phase was never started but is tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Overfill the window
	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseChoreography)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}

	if stats.StepsPerSecond <= 0 {
		t.Error("expected positive steps per second")
	}

	if stats.MinFrameDuration > stats.MaxFrameDuration {
		t.Errorf("min %v exceeds max %v", stats.MinFrameDuration, stats.MaxFrameDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUniforms)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(500 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct[PhaseUniforms]
	slowPct := stats.PhasePct[PhaseRender]

	if slowPct <= fastPct {
		t.Errorf("expected render phase (%v%%) > uniforms phase (%v%%)", slowPct, fastPct)
	}

	row := stats.ToCSV("run", 42)
	if row.RenderPct != slowPct || row.WindowEnd != 42 || row.RunID != "run" {
		t.Errorf("unexpected CSV row %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	pc.RecordPresent()

	stats := pc.Stats()

	if stats.PresentDuration < 15*time.Millisecond {
		t.Errorf("expected present duration >= 15ms, got %v", stats.PresentDuration)
	}

	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}

	// Sleep only guarantees a lower bound
	if stats.FPS > 70 {
		t.Errorf("expected FPS <= 70 with 16ms frame time, got %v", stats.FPS)
	}
}
