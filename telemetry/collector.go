package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	rollbacksX int
	rollbacksY int
	jumps      int
	bushTicks  int
	bushIn     int
	deaths     int
	wins       int
	purged     int

	groundedTicks int
	sampledTicks  int
	speeds        []float64
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int32(windowTicks),
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventRollbackX:
		c.rollbacksX++
	case EventRollbackY:
		c.rollbacksY++
	case EventJump:
		c.jumps++
	case EventBushSlow:
		c.bushIn++
	case EventDeath:
		c.deaths++
	case EventWin:
		c.wins++
	case EventPurge:
		c.purged += int(ev.Amount)
	}
}

// RecordTick samples the player's per-tick state.
func (c *Collector) RecordTick(grounded, inBush bool, speed float64) {
	c.sampledTicks++
	if grounded {
		c.groundedTicks++
	}
	if inBush {
		c.bushTicks++
	}
	c.speeds = append(c.speeds, speed)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WorldCounts is the world population sampled at flush time.
type WorldCounts struct {
	Colliders int
	Bodies    int
	PlayerX   float64
	PlayerY   float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, runID string, counts WorldCounts) WindowStats {
	var groundedFrac float64
	if c.sampledTicks > 0 {
		groundedFrac = float64(c.groundedTicks) / float64(c.sampledTicks)
	}
	speed := SummarizeSpeeds(c.speeds)

	stats := WindowStats{
		RunID:           runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		RollbacksX: c.rollbacksX,
		RollbacksY: c.rollbacksY,
		Jumps:      c.jumps,
		BushTicks:  c.bushTicks,
		BushIn:     c.bushIn,
		Deaths:     c.deaths,
		Wins:       c.wins,
		Purged:     c.purged,

		GroundedFrac: groundedFrac,
		SpeedMean:    speed.Mean,
		SpeedP50:     speed.P50,
		SpeedP90:     speed.P90,

		Colliders: counts.Colliders,
		Bodies:    counts.Bodies,
		PlayerX:   counts.PlayerX,
		PlayerY:   counts.PlayerY,
	}

	c.windowStartTick = currentTick
	c.rollbacksX = 0
	c.rollbacksY = 0
	c.jumps = 0
	c.bushTicks = 0
	c.bushIn = 0
	c.deaths = 0
	c.wins = 0
	c.purged = 0
	c.groundedTicks = 0
	c.sampledTicks = 0
	c.speeds = c.speeds[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
