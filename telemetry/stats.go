package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one telemetry window.
type WindowStats struct {
	RunID            string  `csv:"run_id"`
	WindowStartFrame int     `csv:"-"`
	WindowEndFrame   int     `csv:"window_end"`
	TimeSec          float64 `csv:"time_sec"`
	Policy           string  `csv:"policy"`

	// Interaction
	HoveredFrac   float64 `csv:"hovered_frac"`
	HoverEntries  int     `csv:"hover_entries"`
	ZoomDistance  float64 `csv:"zoom_distance"`
	FocusDistance float64 `csv:"focus_distance"` // |focus| in the grid frame at window end

	// Alive behavior
	AliveMean       float64 `csv:"alive_mean"`
	AliveMax        int     `csv:"alive_max"`
	Activations     int     `csv:"activations"`
	Cancellations   int     `csv:"cancellations"`
	Finishes        int     `csv:"finishes"`
	HeartbeatCycles int     `csv:"heartbeat_cycles"`

	// Cell displacement from rest (sampled at window end)
	DisplacementMean float64 `csv:"disp_mean"`
	DisplacementP50  float64 `csv:"disp_p50"`
	DisplacementP90  float64 `csv:"disp_p90"`
	DisplacementMax  float64 `csv:"disp_max"`
}

// DisplacementStats returns mean, median, 90th percentile and maximum of the values.
// values is sorted in place.
func DisplacementStats(values []float64) (mean, p50, p90, maxV float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sort.Float64s(values)
	mean = stat.Mean(values, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, values, nil)
	maxV = floats.Max(values)
	return mean, p50, p90, maxV
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", s.WindowStartFrame),
		slog.Int("window_end", s.WindowEndFrame),
		slog.Float64("time_sec", s.TimeSec),
		slog.String("policy", s.Policy),
		slog.Float64("hovered_frac", s.HoveredFrac),
		slog.Int("hover_entries", s.HoverEntries),
		slog.Float64("zoom_distance", s.ZoomDistance),
		slog.Float64("focus_distance", s.FocusDistance),
		slog.Float64("alive_mean", s.AliveMean),
		slog.Int("alive_max", s.AliveMax),
		slog.Int("activations", s.Activations),
		slog.Int("cancellations", s.Cancellations),
		slog.Int("finishes", s.Finishes),
		slog.Int("heartbeat_cycles", s.HeartbeatCycles),
		slog.Float64("disp_mean", s.DisplacementMean),
		slog.Float64("disp_p50", s.DisplacementP50),
		slog.Float64("disp_p90", s.DisplacementP90),
		slog.Float64("disp_max", s.DisplacementMax),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats() {
	slog.Info("window", "stats", s)
}
