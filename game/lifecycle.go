package game

import (
	"fmt"
	"image/color"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/level"
	"github.com/pthm-cable/kudo/tags"
	"github.com/pthm-cable/kudo/telemetry"
)

// Fallback colours, used directly for shapes and when a sprite is missing.
var (
	colorGround = color.RGBA{0, 117, 44, 255}
	colorPlank  = color.RGBA{127, 106, 79, 255}
	colorBush   = color.RGBA{0, 158, 47, 255}
	colorGoal   = color.RGBA{255, 203, 0, 255}
	colorPlayer = color.RGBA{0, 121, 241, 255}
	colorBoss   = color.RGBA{230, 41, 55, 255}
	colorLabel  = color.RGBA{0, 0, 0, 255}
)

// Draw layers. Bushes sit behind actors, labels in front of everything.
const (
	layerBush  = -1
	layerTile  = 0
	layerActor = 1
	layerLabel = 2
)

// buildScene creates terrain, the player and the boss.
func (g *Game) buildScene() error {
	grid, err := g.buildGrid()
	if err != nil {
		return err
	}
	g.level = grid

	cellW, cellH := g.cfg.Derived.CellW, g.cfg.Derived.CellH
	g.bounds = r2.Box{Max: geom.V(float64(grid.Cols)*cellW, float64(grid.Rows)*cellH)}

	cleared := g.clearSpawn()
	if err := g.placeTiles(); err != nil {
		return err
	}
	if err := g.spawnPlayer(); err != nil {
		return err
	}
	if g.cfg.Boss.Enabled {
		if err := g.spawnBoss(); err != nil {
			return err
		}
	}

	g.logger.Info("level built",
		"seed", g.seed,
		"cols", grid.Cols,
		"rows", grid.Rows,
		"fingerprint", fmt.Sprintf("%016x", grid.Fingerprint()),
		"spawn_cleared", cleared,
		"colliders", g.colliders.Total(),
	)
	return nil
}

// buildGrid parses the configured layout or generates terrain.
func (g *Game) buildGrid() (*level.Grid, error) {
	lc := g.cfg.Level
	if len(lc.Layout) > 0 {
		return level.Parse(lc.Layout)
	}

	var grid *level.Grid
	switch lc.Generator {
	case "noise":
		grid = level.GenerateNoise(g.seed, g.cfg.World.Cols, g.cfg.World.Rows, lc.NoiseScale)
	default:
		grid = level.Generate(g.rng, g.cfg.World.Cols, g.cfg.World.Rows)
	}
	if lc.Goal {
		grid.PlaceGoal()
	}
	return grid, nil
}

// clearSpawn empties solid cells overlapping the player's spawn box so the
// player never starts inside terrain.
func (g *Game) clearSpawn() int {
	pc := g.cfg.Player
	spawn := geom.Rect(pc.Spawn.Vec(), pc.Size.Vec())
	cellW, cellH := g.cfg.Derived.CellW, g.cfg.Derived.CellH

	var blocked [][2]int
	g.level.Each(func(col, row int, c level.Cell) {
		if c.Solid() && geom.Overlaps(level.CellRect(col, row, cellW, cellH), spawn) {
			blocked = append(blocked, [2]int{col, row})
		}
	})
	for _, cr := range blocked {
		g.level.Set(cr[0], cr[1], level.Empty)
	}
	return len(blocked)
}

// placeTiles spawns one subject and collider per non-empty cell.
func (g *Game) placeTiles() error {
	cellW, cellH := g.cfg.Derived.CellW, g.cfg.Derived.CellH
	size := geom.V(cellW, cellH)

	var err error
	g.level.Each(func(col, row int, c level.Cell) {
		if err != nil {
			return
		}
		pos := geom.V(float64(col)*cellW, float64(row)*cellH)

		var subject ecs.Entity
		var set tags.Set
		switch c {
		case level.Ground:
			subject = g.SpawnShape(pos, size, colorGround, "", layerTile)
			set = tags.Of(tags.Tiles)
		case level.Plank:
			subject = g.SpawnSprite(pos, size, "plank", colorPlank, layerTile)
			set = tags.Of(tags.Tiles)
		case level.Bush:
			subject = g.SpawnSprite(pos, size, "bush", colorBush, layerBush)
			set = tags.Of(tags.Bushes)
		case level.Goal:
			subject = g.SpawnShape(pos, size, colorGoal, "", layerTile)
			set = tags.Of(tags.Goal)
			g.SpawnText(r2.Add(pos, geom.V(4, 4)), geom.V(cellW, 20), "GOAL", colorLabel, layerLabel)
		default:
			return
		}
		if _, cerr := g.AddCollider(subject, set, geom.Zero, geom.Zero); cerr != nil {
			err = fmt.Errorf("tile %s at (%d,%d): %w", c, col, row, cerr)
		}
	})
	return err
}

// spawnPlayer creates the player with its main collider, ground probe and
// body.
func (g *Game) spawnPlayer() error {
	pc := g.cfg.Player
	subject := g.SpawnSprite(pc.Spawn.Vec(), pc.Size.Vec(), pc.Sprite, colorPlayer, layerActor)

	collider, err := g.AddCollider(subject, tags.Of(tags.Player), geom.Zero, pc.ColliderInflate.Vec())
	if err != nil {
		return fmt.Errorf("player collider: %w", err)
	}
	probe, err := g.AddCollider(subject, tags.Of(tags.GroundCheck), pc.ProbeOffset.Vec(), pc.ProbeInflate.Vec())
	if err != nil {
		return fmt.Errorf("player probe: %w", err)
	}

	body := g.NewBody(g.cfg.Derived.Solid)
	body.Weight = pc.Weight
	if err := g.AddBody(collider, body); err != nil {
		return fmt.Errorf("player body: %w", err)
	}

	g.player = actor{subject: subject, collider: collider, probe: probe}
	return nil
}

// spawnBoss creates the patrolling boss. Touching it is lethal.
func (g *Game) spawnBoss() error {
	bc := g.cfg.Boss
	subject := g.SpawnSprite(bc.Spawn.Vec(), bc.Size.Vec(), bc.Sprite, colorBoss, layerActor)
	g.patrols.Add(subject, &components.Patrol{
		MinX:  bc.PatrolMin,
		MaxX:  bc.PatrolMax,
		Speed: bc.Speed,
		Dir:   -1,
	})

	collider, err := g.AddCollider(subject, tags.Of(tags.Bosses), geom.Zero, bc.ColliderInflate.Vec())
	if err != nil {
		return fmt.Errorf("boss collider: %w", err)
	}
	g.boss = actor{subject: subject, collider: collider}
	return nil
}

// cleanupDead purges dead colliders from the index, then removes dead
// subjects and their colliders from the world.
func (g *Game) cleanupDead() {
	if n := g.colliders.Purge(); n > 0 {
		g.record(telemetry.NewPurgeEvent(g.tick, n))
	}

	// First pass: collect dead subjects (must complete before modifying)
	var dead []ecs.Entity
	query := g.lifeFilter.Query()
	for query.Next() {
		if !query.Get().Alive {
			dead = append(dead, query.Entity())
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, subject := range dead {
		for _, col := range g.attached[subject] {
			if g.world.Alive(col) {
				g.world.RemoveEntity(col)
			}
		}
		delete(g.attached, subject)
		g.world.RemoveEntity(subject)
	}
}
