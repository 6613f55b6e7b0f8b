package game

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pthm-cable/kudo/config"
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/systems"
	"github.com/pthm-cable/kudo/tags"
	"github.com/pthm-cable/kudo/telemetry"
)

// flatLayout is 12 columns of open air over two rows of ground.
func flatLayout() []string {
	rows := make([]string, 10)
	for i := range rows {
		rows[i] = strings.Repeat(".", 12)
	}
	rows[8] = strings.Repeat("g", 12)
	rows[9] = strings.Repeat("g", 12)
	return rows
}

// withCell returns layout with one cell replaced.
func withCell(layout []string, col, row int, c byte) []string {
	out := append([]string(nil), layout...)
	b := []byte(out[row])
	b[col] = c
	out[row] = string(b)
	return out
}

func newTestGame(t *testing.T, mod func(*config.Config)) *Game {
	t.Helper()
	cfg := config.Defaults()
	cfg.Boss.Enabled = false
	cfg.Level.Goal = false
	cfg.Level.Layout = flatLayout()
	if mod != nil {
		mod(cfg)
	}
	g, err := NewGame(Options{
		Seed:   1,
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Unload() })
	return g
}

func run(g *Game, n int, in Intent) {
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

func playerPos(t *testing.T, g *Game) geom.Vec {
	t.Helper()
	pos, ok := g.PlayerPosition()
	if !ok {
		t.Fatal("player is gone")
	}
	return pos
}

func TestSceneRegistersEveryCollider(t *testing.T) {
	g := newTestGame(t, nil)

	if got := g.Colliders().Len(tags.Tiles); got != 24 {
		t.Errorf("tile colliders = %d, want 24", got)
	}
	if g.Colliders().Len(tags.Player) != 1 || g.Colliders().Len(tags.GroundCheck) != 1 {
		t.Error("player should have one collider and one probe")
	}
	if g.Physics().Len() != 1 {
		t.Errorf("bodies = %d, want 1", g.Physics().Len())
	}
	if got := len(g.Hitboxes(nil)); got != 26 {
		t.Errorf("hitboxes = %d, want 26", got)
	}
}

func TestPlayerLandsAndIsGrounded(t *testing.T) {
	g := newTestGame(t, nil)
	groundTop := 8 * g.Config().Derived.CellH
	height := g.Config().Player.Size.Y

	run(g, 200, Intent{})

	if !g.Grounded() {
		t.Fatal("player should be grounded after falling")
	}
	pos := playerPos(t, g)
	if bottom := pos.Y + height; bottom > groundTop || bottom < groundTop-1 {
		t.Errorf("player bottom = %v, want just above ground at %v", bottom, groundTop)
	}
	if g.State() != Playing {
		t.Errorf("State = %v, want playing", g.State())
	}
}

func TestJumpNeedsGround(t *testing.T) {
	g := newTestGame(t, nil)

	before := playerPos(t, g).Y
	g.Step(Intent{Up: true})
	if after := playerPos(t, g).Y; after <= before {
		t.Errorf("airborne jump moved player up: %v -> %v", before, after)
	}

	run(g, 200, Intent{})
	before = playerPos(t, g).Y
	g.Step(Intent{Up: true})
	if after := playerPos(t, g).Y; after > before-10 {
		t.Errorf("grounded jump: Y %v -> %v, want a rise of about 15.5", before, after)
	}
}

func TestBushesSlowThePlayer(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		wantDX float64
	}{
		{"open air", flatLayout(), 8},
		{"in a bush", withCell(flatLayout(), 2, 2, 'b'), 8.0 / 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, func(c *config.Config) { c.Level.Layout = tt.layout })
			before := playerPos(t, g).X
			g.Step(Intent{Right: true})
			if dx := playerPos(t, g).X - before; math.Abs(dx-tt.wantDX) > 1e-9 {
				t.Errorf("moved %v, want %v", dx, tt.wantDX)
			}
		})
	}
}

func TestBushEntryRecordedOnce(t *testing.T) {
	layout := flatLayout()
	for row := 0; row < 8; row++ {
		layout = withCell(layout, 2, row, 'b')
	}
	g := newTestGame(t, func(c *config.Config) {
		c.Level.Layout = layout
		c.Telemetry.StatsWindow = 20
	})

	run(g, 20, Intent{})
	w := g.LastWindow()
	if w.WindowEndTick != 20 {
		t.Fatalf("window end = %d, want 20", w.WindowEndTick)
	}
	if w.BushTicks != 20 {
		t.Errorf("bush ticks = %d, want 20", w.BushTicks)
	}
	if w.BushIn != 1 {
		t.Errorf("bush entries = %d, want 1 for one continuous stay", w.BushIn)
	}
}

func TestWallStopsThePlayer(t *testing.T) {
	// Column 3 spans x 202.5..270; the player's collider ends at 195.75.
	layout := flatLayout()
	for row := 0; row < 8; row++ {
		layout = withCell(layout, 3, row, 'p')
	}
	g := newTestGame(t, func(c *config.Config) { c.Level.Layout = layout })

	run(g, 10, Intent{Right: true})
	if x := playerPos(t, g).X; x+50-4.25 > 3*67.5 {
		t.Errorf("player pushed into the wall: X = %v", x)
	}
}

func TestBossKillsPlayer(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Boss.Enabled = true
		c.Player.Spawn = config.Vec2{X: 600, Y: 250}
	})
	subject, _ := g.Player()
	total := g.Colliders().Total()

	g.Step(Intent{})

	if g.State() != Dead {
		t.Fatalf("State = %v, want dead", g.State())
	}
	if g.World().Alive(subject) {
		t.Error("dead player should be removed during cleanup")
	}
	if got := g.Colliders().Total(); got != total-2 {
		t.Errorf("colliders = %d, want %d", got, total-2)
	}
	death := g.Config().World.DeathSky
	if sky := g.Sky(); sky.R != death[0] || sky.G != death[1] || sky.B != death[2] {
		t.Errorf("Sky = %v, want death sky", sky)
	}

	// the world keeps running without a player
	run(g, 5, Intent{Right: true, Up: true})
	if g.PlayerBody() != nil || g.PlayerCollider() != nil {
		t.Error("player accessors should return nil after death")
	}
}

func TestFallingOutKillsPlayer(t *testing.T) {
	empty := make([]string, 10)
	for i := range empty {
		empty[i] = strings.Repeat(".", 12)
	}
	g := newTestGame(t, func(c *config.Config) { c.Level.Layout = empty })

	run(g, 300, Intent{})
	if g.State() != Dead {
		t.Errorf("State = %v, want dead", g.State())
	}
}

func TestGoalWins(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Level.Layout = withCell(flatLayout(), 2, 2, '*')
	})

	g.Step(Intent{})
	if g.State() != Won {
		t.Fatalf("State = %v, want won", g.State())
	}
	run(g, 5, Intent{})
	if g.State() != Won {
		t.Error("won state should stick")
	}
}

func TestKillRemovesCollidersOnCleanup(t *testing.T) {
	g := newTestGame(t, nil)
	crate := g.SpawnShape(geom.V(500, 0), geom.V(10, 10), colorPlank, "crate", 0)
	col, err := g.AddCollider(crate, tags.Of(tags.Tiles), geom.Zero, geom.Zero)
	if err != nil {
		t.Fatal(err)
	}
	total := g.Colliders().Total()

	if !g.Kill(crate) {
		t.Fatal("Kill returned false for a live subject")
	}
	if g.Kill(crate) {
		t.Error("second Kill should report false")
	}
	g.Step(Intent{})

	if g.World().Alive(crate) || g.World().Alive(col) {
		t.Error("killed subject and its collider should be removed")
	}
	if got := g.Colliders().Total(); got != total-1 {
		t.Errorf("colliders = %d, want %d", got, total-1)
	}
	if _, err := g.AddCollider(crate, tags.Of(tags.Tiles), geom.Zero, geom.Zero); !errors.Is(err, systems.ErrNoSubject) {
		t.Errorf("AddCollider on removed subject: got %v, want ErrNoSubject", err)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	build := func() *Game {
		return newTestGame(t, func(c *config.Config) {
			c.Level.Layout = nil
			c.Level.Goal = true
			c.Boss.Enabled = true
		})
	}
	a, b := build(), build()
	if a.Level().Fingerprint() != b.Level().Fingerprint() {
		t.Fatal("same seed built different levels")
	}

	run(a, 120, Intent{Right: true})
	run(b, 120, Intent{Right: true})
	pa, oka := a.PlayerPosition()
	pb, okb := b.PlayerPosition()
	if oka != okb || pa != pb || a.State() != b.State() {
		t.Errorf("runs diverged: %v/%v %v vs %v/%v %v", pa, oka, a.State(), pb, okb, b.State())
	}
}

func TestGamesDoNotShareState(t *testing.T) {
	a := newTestGame(t, nil)
	b := newTestGame(t, nil)

	subject, _ := a.Player()
	a.Kill(subject)
	a.Step(Intent{})
	b.Step(Intent{})

	if b.State() != Playing {
		t.Errorf("b.State = %v, want playing", b.State())
	}
	if _, ok := b.PlayerPosition(); !ok {
		t.Error("killing a's player removed b's")
	}
	if a.Colliders().Total() != b.Colliders().Total()-2 {
		t.Errorf("collider totals a=%d b=%d", a.Colliders().Total(), b.Colliders().Total())
	}
}

func TestDrawablesAreLayered(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Level.Layout = withCell(flatLayout(), 5, 7, 'b')
	})

	ds := g.Drawables(nil)
	if len(ds) != 26 {
		t.Fatalf("drawables = %d, want 26", len(ds))
	}
	for i := 1; i < len(ds); i++ {
		if ds[i].Appearance.Layer < ds[i-1].Appearance.Layer {
			t.Fatalf("drawables out of layer order at %d", i)
		}
	}
	if ds[0].Appearance.Sprite != "bush" {
		t.Errorf("first drawable = %q, want the bush behind everything", ds[0].Appearance.Sprite)
	}
}

func TestUpdateHeadlessUsesScript(t *testing.T) {
	cfg := config.Defaults()
	cfg.Boss.Enabled = false
	cfg.Level.Layout = flatLayout()
	g, err := NewGame(Options{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Script: func(int32) Intent { return Intent{Right: true} },
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	g.UpdateHeadless()
	if x := playerPos(t, g).X; x != 158 {
		t.Errorf("X = %v, want 158", x)
	}
	if g.Tick() != 1 {
		t.Errorf("Tick = %d, want 1", g.Tick())
	}
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Boss.Enabled = false
	cfg.Level.Layout = flatLayout()
	cfg.Telemetry.StatsWindow = 10
	g, err := NewGame(Options{
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		OutputDir: dir,
	})
	if err != nil {
		t.Fatal(err)
	}

	run(g, 25, Intent{})
	if err := g.Unload(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("telemetry.csv has %d lines, want header + 2 windows", len(lines))
	}
	for _, name := range []string{"config.yaml", "perf.csv", "events.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestBadLayoutFailsNewGame(t *testing.T) {
	cfg := config.Defaults()
	cfg.Level.Layout = []string{"gg", "g"}
	if _, err := NewGame(Options{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}); err == nil {
		t.Error("NewGame should reject a ragged layout")
	}
}

func TestInspectPlayerCollider(t *testing.T) {
	g := newTestGame(t, nil)
	subject, collider := g.Player()

	in, ok := g.Inspect(collider)
	if !ok {
		t.Fatal("player collider not inspectable")
	}
	if in.Collider.Subject != subject || !in.Collider.Tags.Has(tags.Player) {
		t.Errorf("collider = %+v", in.Collider)
	}
	if !in.HasBody || in.Body.Weight != g.Config().Player.Weight {
		t.Errorf("body = %+v, want the player body", in.Body)
	}
	if in.Scale.W != g.Config().Player.Size.X {
		t.Errorf("scale = %+v", in.Scale)
	}

	g.Kill(subject)
	g.Step(Intent{})
	if _, ok := g.Inspect(collider); ok {
		t.Error("removed collider still inspectable")
	}
}

func TestStepPhasesMatchPerfKeys(t *testing.T) {
	g := newTestGame(t, nil)
	if !slices.Equal(g.Systems().IDs(), telemetry.Phases) {
		t.Errorf("step phases = %v, want %v", g.Systems().IDs(), telemetry.Phases)
	}

	run(g, 3, Intent{})
	if g.Tick() != 3 {
		t.Errorf("Tick = %d after 3 steps", g.Tick())
	}
	if _, ok := g.Perf().PhaseAvg[telemetry.PhasePhysics]; !ok {
		t.Error("physics phase not timed")
	}
}

func TestPlayerLivesInGameWorld(t *testing.T) {
	g := newTestGame(t, nil)
	subject, collider := g.Player()
	if !g.World().Alive(subject) || !g.World().Alive(collider) {
		t.Fatal("player entities are not in the game's world")
	}
	if !g.Colliders().Registered(collider) {
		t.Error("player collider missing from the world's collider index")
	}
	if g.Physics().Body(collider) == nil {
		t.Error("player body not attached in the world's physics")
	}
}
