// Package game owns one playable world: the ECS world, its collider index
// and physics, the level, and the per-run telemetry. It has no graphics
// dependency; a window front end reads it and feeds it input.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/config"
	"github.com/pthm-cable/kudo/level"
	"github.com/pthm-cable/kudo/systems"
	"github.com/pthm-cable/kudo/telemetry"
)

// State is the outcome of the current run.
type State uint8

const (
	Playing State = iota
	Dead
	Won
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Dead:
		return "dead"
	case Won:
		return "won"
	}
	return "unknown"
}

// Options configures a new game.
type Options struct {
	Seed      int64
	Config    *config.Config // nil uses config.Cfg()
	Logger    *slog.Logger   // nil uses slog.Default()
	LogStats  bool           // log window and perf stats on every flush
	OutputDir string         // CSV output directory, empty disables output

	// Script supplies input for UpdateHeadless. Nil means no input.
	Script func(tick int32) Intent
}

// actor groups the entities of one controllable or hostile subject.
type actor struct {
	subject  ecs.Entity
	collider ecs.Entity
	probe    ecs.Entity
}

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger
	world  *ecs.World
	rng    *rand.Rand
	seed   int64

	// Entity mappers
	subjects  *ecs.Map4[components.Position, components.Scale, components.Life, components.Appearance]
	colMap    *ecs.Map[components.Collider]
	positions *ecs.Map[components.Position]
	scales    *ecs.Map[components.Scale]
	lives     *ecs.Map[components.Life]
	patrols   *ecs.Map[components.Patrol]

	lifeFilter *ecs.Filter1[components.Life]
	drawFilter *ecs.Filter3[components.Position, components.Scale, components.Appearance]

	// Systems
	colliders *systems.ColliderIndex
	physics   *systems.PhysicsSystem
	patrol    *systems.PatrolSystem
	registry  *systems.SystemRegistry

	// Scene
	level    *level.Grid
	bounds   r2.Box
	attached map[ecs.Entity][]ecs.Entity // subject -> its colliders
	player   actor
	boss     actor
	speed    float64

	// State
	state    State
	tick     int32
	intent   Intent
	grounded bool
	inBush   bool // player touched bushes in the last controls phase
	script   func(tick int32) Intent

	// Telemetry
	runID      string
	logStats   bool
	collector  *telemetry.Collector
	perf       *telemetry.PerfCollector
	output     *telemetry.OutputManager
	events     []telemetry.Event // pending rows for events.csv
	lastWindow telemetry.WindowStats
}

// NewGame creates a world and builds the scene for opts.Seed.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := ecs.NewWorld()
	colliders := systems.NewColliderIndex(w)

	g := &Game{
		cfg:    cfg,
		world:  w,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		seed:   opts.Seed,
		runID:  telemetry.NewRunID(),
		script: opts.Script,

		subjects:  ecs.NewMap4[components.Position, components.Scale, components.Life, components.Appearance](w),
		colMap:    ecs.NewMap[components.Collider](w),
		positions: ecs.NewMap[components.Position](w),
		scales:    ecs.NewMap[components.Scale](w),
		lives:     ecs.NewMap[components.Life](w),
		patrols:   ecs.NewMap[components.Patrol](w),

		lifeFilter: ecs.NewFilter1[components.Life](w),
		drawFilter: ecs.NewFilter3[components.Position, components.Scale, components.Appearance](w),

		colliders: colliders,
		physics:   systems.NewPhysicsSystem(w, colliders),
		patrol:    systems.NewPatrolSystem(w),
		registry:  systems.NewSystemRegistry(),

		attached: make(map[ecs.Entity][]ecs.Entity),
		speed:    cfg.Player.Speed,

		logStats:  opts.LogStats,
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}
	g.logger = logger.With("run_id", g.runID)
	g.physics.OnResolve = g.onResolve
	g.registerPhases()

	output, err := telemetry.NewOutputManager(opts.OutputDir, g.runID)
	if err != nil {
		return nil, err
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if err := g.buildScene(); err != nil {
		g.output.Close()
		return nil, fmt.Errorf("building scene: %w", err)
	}
	return g, nil
}

// Unload writes pending events and closes run output.
func (g *Game) Unload() error {
	if err := g.output.WriteEvents(g.events); err != nil {
		g.logger.Warn("failed to write events", "error", err)
	}
	g.events = nil
	if dir := g.output.Dir(); dir != "" {
		g.logger.Info("output written", "dir", dir, "tick", g.tick)
	}
	return g.output.Close()
}

// UpdateHeadless advances one tick using the scripted input.
func (g *Game) UpdateHeadless() {
	var in Intent
	if g.script != nil {
		in = g.script(g.tick)
	}
	g.Step(in)
}

// Tick returns the number of completed steps.
func (g *Game) Tick() int32 { return g.tick }

// State returns the current run outcome.
func (g *Game) State() State { return g.state }

// Seed returns the seed the scene was built from.
func (g *Game) Seed() int64 { return g.seed }

// RunID returns the identifier written to telemetry rows.
func (g *Game) RunID() string { return g.runID }

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// World returns the ECS world.
func (g *Game) World() *ecs.World { return g.world }

// Colliders returns the collider index of this world.
func (g *Game) Colliders() *systems.ColliderIndex { return g.colliders }

// Physics returns the physics system of this world.
func (g *Game) Physics() *systems.PhysicsSystem { return g.physics }

// Systems returns the system registry in execution order.
func (g *Game) Systems() *systems.SystemRegistry { return g.registry }

// Level returns the tile grid the scene was built from.
func (g *Game) Level() *level.Grid { return g.level }

// Bounds returns the world box covered by the level.
func (g *Game) Bounds() r2.Box { return g.bounds }

// Grounded reports whether the player's probe touched solid ground at the
// start of the last step.
func (g *Game) Grounded() bool { return g.grounded }

// Perf returns timing stats over the perf window.
func (g *Game) Perf() telemetry.PerfStats { return g.perf.Stats() }

// RecordFrame feeds frame timing from a window loop.
func (g *Game) RecordFrame() { g.perf.RecordFrame() }

// Speed returns the player's base move speed.
func (g *Game) Speed() float64 { return g.speed }

// SetSpeed changes the player's base move speed.
func (g *Game) SetSpeed(v float64) { g.speed = max(0, v) }

// Sky returns the backdrop colour for the current state.
func (g *Game) Sky() color.RGBA {
	c := g.cfg.World.Sky
	if g.state == Dead {
		c = g.cfg.World.DeathSky
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}
