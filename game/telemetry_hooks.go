package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/telemetry"
)

// record counts ev in the current window and queues it for events.csv.
func (g *Game) record(ev telemetry.Event) {
	g.collector.Record(ev)
	if g.output != nil {
		g.events = append(g.events, ev)
	}
}

// sampleTick feeds the player's per-tick state to the collector.
func (g *Game) sampleTick() {
	body := g.PlayerBody()
	if body == nil {
		return
	}
	g.collector.RecordTick(g.grounded, g.inBush, r2.Norm(body.Velocity))
}

// flushTelemetry emits window stats when the window has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	counts := telemetry.WorldCounts{
		Colliders: g.colliders.Total(),
		Bodies:    g.physics.Len(),
	}
	if pos, ok := g.PlayerPosition(); ok {
		counts.PlayerX, counts.PlayerY = pos.X, pos.Y
	}
	stats := g.collector.Flush(g.tick, g.runID, counts)
	g.lastWindow = stats
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
		g.logWorldState()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		g.logger.Warn("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, g.tick); err != nil {
		g.logger.Warn("failed to write perf", "error", err)
	}
	if err := g.output.WriteEvents(g.events); err != nil {
		g.logger.Warn("failed to write events", "error", err)
	}
	g.events = g.events[:0]
}

// LastWindow returns the most recently flushed window stats. The zero value
// is returned before the first flush.
func (g *Game) LastWindow() telemetry.WindowStats { return g.lastWindow }
