package game

import (
	"log/slog"

	"github.com/pthm-cable/concrete/telemetry"
)

// flushTelemetry closes the stats window when it is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	// Sample cell displacement at the window boundary
	g.displacements = g.grid.Displacements(g.displacements[:0])

	stats := g.collector.Flush(g.frame, telemetry.WindowSnapshot{
		Policy:        g.animWorld.Policy.Name(),
		ZoomDistance:  float64(g.rig.Distance),
		FocusDistance: float64(g.animWorld.Interaction.Focus.Len()),
		Displacements: g.displacements,
	})
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteWindow(stats); err != nil {
			slog.Error("failed to write window stats", "error", err)
		}
		if err := g.output.WritePerf(perfStats, g.runID, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
