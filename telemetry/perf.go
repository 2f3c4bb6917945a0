package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the frame step.
const (
	PhaseInput        = "input"
	PhaseInteraction  = "interaction"
	PhaseAnimation    = "animation"
	PhaseChoreography = "choreography"
	PhaseUniforms     = "uniforms"
	PhaseRender       = "render"
)

// Phases lists every frame phase in execution order.
var Phases = []string{
	PhaseInput, PhaseInteraction, PhaseAnimation,
	PhaseChoreography, PhaseUniforms, PhaseRender,
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Display timing (wall clock between presented frames)
	lastPresent    time.Time
	presentElapsed time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent records the time since the previous presented frame.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentElapsed = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame step timing
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Frame steps per second the CPU side could sustain
	StepsPerSecond float64

	// Presented frame rate
	PresentDuration time.Duration
	FPS             float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentElapsed > 0 {
		fps = float64(time.Second) / float64(p.presentElapsed)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:        make(map[string]time.Duration),
			PhasePct:        make(map[string]float64),
			PresentDuration: p.presentElapsed,
			FPS:             fps,
		}
	}

	var total, lo, hi time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < lo {
			lo = s.FrameDuration
		}
		if s.FrameDuration > hi {
			hi = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration, len(phaseSum))
	phasePct := make(map[string]float64, len(phaseSum))
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var stepsPerSec float64
	if avg > 0 {
		stepsPerSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: lo,
		MaxFrameDuration: hi,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		StepsPerSecond:   stepsPerSec,
		PresentDuration:  p.presentElapsed,
		FPS:              fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	RunID           string  `csv:"run_id"`
	WindowEnd       int     `csv:"window_end"`
	AvgFrameUS      int64   `csv:"avg_frame_us"`
	MinFrameUS      int64   `csv:"min_frame_us"`
	MaxFrameUS      int64   `csv:"max_frame_us"`
	StepsPerSec     float64 `csv:"steps_per_sec"`
	FPS             float64 `csv:"fps"`
	InputPct        float64 `csv:"input_pct"`
	InteractionPct  float64 `csv:"interaction_pct"`
	AnimationPct    float64 `csv:"animation_pct"`
	ChoreographyPct float64 `csv:"choreography_pct"`
	UniformsPct     float64 `csv:"uniforms_pct"`
	RenderPct       float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(runID string, windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:           runID,
		WindowEnd:       windowEnd,
		AvgFrameUS:      s.AvgFrameDuration.Microseconds(),
		MinFrameUS:      s.MinFrameDuration.Microseconds(),
		MaxFrameUS:      s.MaxFrameDuration.Microseconds(),
		StepsPerSec:     s.StepsPerSecond,
		FPS:             s.FPS,
		InputPct:        s.PhasePct[PhaseInput],
		InteractionPct:  s.PhasePct[PhaseInteraction],
		AnimationPct:    s.PhasePct[PhaseAnimation],
		ChoreographyPct: s.PhasePct[PhaseChoreography],
		UniformsPct:     s.PhasePct[PhaseUniforms],
		RenderPct:       s.PhasePct[PhaseRender],
	}
}
