package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one game step. They match the system registry IDs.
const (
	PhaseControls  = "controls"
	PhasePatrol    = "patrol"
	PhasePhysics   = "physics"
	PhaseTriggers  = "triggers"
	PhaseCleanup   = "cleanup"
	PhaseTelemetry = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{
	PhaseControls, PhasePatrol, PhasePhysics,
	PhaseTriggers, PhaseCleanup, PhaseTelemetry,
}

const numPhases = 6

// phaseIndex maps a phase name to its slot, -1 for unknown phases.
func phaseIndex(phase string) int {
	for i, p := range Phases {
		if p == phase {
			return i
		}
	}
	return -1
}

// tickSample is the timing of one step.
type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps a ring of recent step timings and running sums over
// it, so Stats never re-adds the whole window.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	sumTotal  time.Duration
	sumPhases [numPhases]time.Duration

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int // running phase slot, -1 when none
	seen       [numPhases]bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps.
// Sizes below 1 fall back to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]tickSample, windowSize), phase: -1}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickSample{}
	p.phase = -1
}

// StartPhase closes the running phase and opens phase. Unknown names are
// timed as part of the tick only.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseIndex(phase)
	p.phaseStart = now
	if p.phase >= 0 {
		p.seen[p.phase] = true
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the step and pushes it into the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.cur.total = now.Sub(p.tickStart)

	if p.count == len(p.ring) {
		old := p.ring[p.next]
		p.sumTotal -= old.total
		for i := range old.phases {
			p.sumPhases[i] -= old.phases[i]
		}
	} else {
		p.count++
	}
	p.ring[p.next] = p.cur
	p.sumTotal += p.cur.total
	for i := range p.cur.phases {
		p.sumPhases[i] += p.cur.phases[i]
	}
	p.next = (p.next + 1) % len(p.ring)
}

// RecordFrame marks a rendered frame; the gap to the previous call is the
// frame time.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick, 0-100

	TicksPerSecond float64

	FrameDuration time.Duration // window mode only
	FPS           float64
}

// Stats summarizes the current window. Phase maps are never nil.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = p.sumTotal / n
	s.MinTickDuration = p.ring[0].total
	for _, smp := range p.ring[:p.count] {
		s.MinTickDuration = min(s.MinTickDuration, smp.total)
		s.MaxTickDuration = max(s.MaxTickDuration, smp.total)
	}

	for i, name := range Phases {
		if !p.seen[i] {
			continue
		}
		avg := p.sumPhases[i] / n
		s.PhaseAvg[name] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = 100 * float64(avg) / float64(s.AvgTickDuration)
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer. Phases under 0.1% are left out.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	ControlsPct  float64 `csv:"controls_pct"`
	PatrolPct    float64 `csv:"patrol_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	TriggersPct  float64 `csv:"triggers_pct"`
	CleanupPct   float64 `csv:"cleanup_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		ControlsPct:  s.PhasePct[PhaseControls],
		PatrolPct:    s.PhasePct[PhasePatrol],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		TriggersPct:  s.PhasePct[PhaseTriggers],
		CleanupPct:   s.PhasePct[PhaseCleanup],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
