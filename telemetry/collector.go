package telemetry

// FrameSample is what the frame step reports to the collector every frame.
type FrameSample struct {
	Hovered      bool
	HoverEntered bool
	Alive        int
	Activated    int
	Cancelled    int
	Finished     int
	CycleWrapped bool
}

// WindowCollector accumulates frame samples within fixed-length windows and produces
// WindowStats.
type WindowCollector struct {
	runID         string
	framesPerWin  int
	frameStep     float64
	windowStart   int
	frames        int
	hoveredFrames int
	hoverEntries  int
	aliveSum      int
	aliveMax      int
	activations   int
	cancellations int
	finishes      int
	cycles        int
}

// NewCollector creates a new stats collector.
// framesPerWindow: frames per stats window
// frameStep: seconds of animation clock per frame (used for frame-to-time conversion)
func NewCollector(runID string, framesPerWindow int, frameStep float64) *WindowCollector {
	if framesPerWindow < 1 {
		framesPerWindow = 1
	}
	return &WindowCollector{
		runID:        runID,
		framesPerWin: framesPerWindow,
		frameStep:    frameStep,
	}
}

// Observe records one frame.
func (c *WindowCollector) Observe(s FrameSample) {
	c.frames++
	if s.Hovered {
		c.hoveredFrames++
	}
	if s.HoverEntered {
		c.hoverEntries++
	}
	c.aliveSum += s.Alive
	c.aliveMax = max(c.aliveMax, s.Alive)
	c.activations += s.Activated
	c.cancellations += s.Cancelled
	c.finishes += s.Finished
	if s.CycleWrapped {
		c.cycles++
	}
}

// ShouldFlush returns true if the current window is complete.
func (c *WindowCollector) ShouldFlush(frame int) bool {
	return frame-c.windowStart >= c.framesPerWin
}

// WindowSnapshot is the scene state sampled once at the end of a window.
type WindowSnapshot struct {
	Policy        string
	ZoomDistance  float64
	FocusDistance float64
	Displacements []float64 // sorted in place
}

// Flush produces the stats for the finished window and starts a new one.
func (c *WindowCollector) Flush(frame int, snap WindowSnapshot) WindowStats {
	s := WindowStats{
		RunID:            c.runID,
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   frame,
		TimeSec:          float64(frame) * c.frameStep,
		Policy:           snap.Policy,
		HoverEntries:     c.hoverEntries,
		ZoomDistance:     snap.ZoomDistance,
		FocusDistance:    snap.FocusDistance,
		AliveMax:         c.aliveMax,
		Activations:      c.activations,
		Cancellations:    c.cancellations,
		Finishes:         c.finishes,
		HeartbeatCycles:  c.cycles,
	}
	if c.frames > 0 {
		s.HoveredFrac = float64(c.hoveredFrames) / float64(c.frames)
		s.AliveMean = float64(c.aliveSum) / float64(c.frames)
	}
	s.DisplacementMean, s.DisplacementP50, s.DisplacementP90, s.DisplacementMax = DisplacementStats(snap.Displacements)

	c.reset(frame)
	return s
}

func (c *WindowCollector) reset(frame int) {
	runID, fpw, step := c.runID, c.framesPerWin, c.frameStep
	*c = WindowCollector{
		runID:        runID,
		framesPerWin: fpw,
		frameStep:    step,
		windowStart:  frame,
	}
}

// FramesPerWindow returns the window length in frames.
func (c *WindowCollector) FramesPerWindow() int {
	return c.framesPerWin
}
