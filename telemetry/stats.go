package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats is one row of telemetry.csv: counts and player motion over
// a window of ticks.
type WindowStats struct {
	RunID           string `csv:"run_id"`
	WindowStartTick int32  `csv:"-"`
	WindowEndTick   int32  `csv:"window_end"`

	// Events during window
	RollbacksX int `csv:"rollbacks_x"`
	RollbacksY int `csv:"rollbacks_y"`
	Jumps      int `csv:"jumps"`
	BushTicks  int `csv:"bush_ticks"`
	BushIn     int `csv:"bush_entries"`
	Deaths     int `csv:"deaths"`
	Wins       int `csv:"wins"`
	Purged     int `csv:"purged"`

	// Player motion sampled every tick
	GroundedFrac float64 `csv:"grounded_frac"`
	SpeedMean    float64 `csv:"speed_mean"`
	SpeedP50     float64 `csv:"speed_p50"`
	SpeedP90     float64 `csv:"speed_p90"`

	// World at window end
	Colliders int     `csv:"colliders"`
	Bodies    int     `csv:"bodies"`
	PlayerX   float64 `csv:"player_x"`
	PlayerY   float64 `csv:"player_y"`
}

// SpeedSummary describes the player speed samples of one window.
type SpeedSummary struct {
	Mean, P50, P90 float64
}

// SummarizeSpeeds returns the mean and empirical quantiles of samples. The
// input is not modified; no samples give a zero summary.
func SummarizeSpeeds(samples []float64) SpeedSummary {
	if len(samples) == 0 {
		return SpeedSummary{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return SpeedSummary{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("rollbacks_x", s.RollbacksX),
		slog.Int("rollbacks_y", s.RollbacksY),
		slog.Int("jumps", s.Jumps),
		slog.Int("bush_ticks", s.BushTicks),
		slog.Int("bush_entries", s.BushIn),
		slog.Int("deaths", s.Deaths),
		slog.Int("wins", s.Wins),
		slog.Int("purged", s.Purged),
		slog.Float64("grounded_frac", s.GroundedFrac),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Int("colliders", s.Colliders),
		slog.Int("bodies", s.Bodies),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats", "window", s)
}
