package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/systems"
	"github.com/pthm-cable/kudo/tags"
	"github.com/pthm-cable/kudo/telemetry"
)

// Step advances the game by one frame. Phases run in the order
// registerPhases adds them.
func (g *Game) Step(in Intent) {
	g.intent = in
	g.perf.StartTick()
	g.registry.Run(g.perf.StartPhase)
	g.perf.EndTick()
}

// registerPhases fills the registry: controls, patrol, physics, triggers,
// cleanup, telemetry.
func (g *Game) registerPhases() {
	r := g.registry
	r.MustAdd(telemetry.PhaseControls, "Controls", func() { g.applyControls(g.intent) })
	r.MustAdd(telemetry.PhasePatrol, "Patrol", g.patrol.Update)
	r.MustAdd(telemetry.PhasePhysics, "Physics", g.physics.Update)
	r.MustAdd(telemetry.PhaseTriggers, "Triggers", g.checkTriggers)
	r.MustAdd(telemetry.PhaseCleanup, "Cleanup", g.cleanupDead)
	r.MustAdd(telemetry.PhaseTelemetry, "Telemetry", func() {
		g.sampleTick()
		g.tick++
		g.flushTelemetry()
	})
}

// applyControls turns intent into player velocity. Bushes slow the player,
// and jumping needs the ground probe to touch something solid.
func (g *Game) applyControls(in Intent) {
	wasInBush := g.inBush
	g.grounded, g.inBush = false, false
	if g.state != Playing || !g.playerAlive() {
		return
	}

	speed := g.speed
	if g.colliders.IsColliding(g.player.collider, tags.Of(tags.Bushes)) {
		speed /= g.cfg.Player.BushSlowdown
		g.inBush = true
		if !wasInBush {
			g.record(telemetry.NewBushSlowEvent(g.tick, g.player.subject.ID()))
		}
	}
	g.grounded = systems.Grounded(g.colliders, g.player.probe, g.cfg.Derived.Solid)

	body := g.physics.Body(g.player.collider)
	if body == nil {
		return
	}
	if in.Up && g.grounded {
		body.Velocity.Y = -speed * g.cfg.Player.JumpFactor
		g.record(telemetry.NewJumpEvent(g.tick, g.player.subject.ID(), body.Velocity.Y))
	}
	if in.Down {
		g.positions.Get(g.player.subject).Y += speed
	}
	if in.Left {
		body.Velocity.X = -speed
	}
	if in.Right {
		body.Velocity.X = speed
	}
}

// checkTriggers ends the run when the player touches a boss, falls out of
// the world or reaches the goal.
func (g *Game) checkTriggers() {
	if g.state != Playing || !g.playerAlive() {
		return
	}
	pos := g.positions.Get(g.player.subject).Vec()

	switch {
	case g.colliders.IsColliding(g.player.collider, tags.Of(tags.Bosses)):
		g.die(pos, "boss")
	case pos.Y > g.bounds.Max.Y:
		g.die(pos, "fell")
	case g.colliders.IsColliding(g.player.collider, tags.Of(tags.Goal)):
		g.state = Won
		g.record(telemetry.NewWinEvent(g.tick, g.player.subject.ID(), pos.X, pos.Y))
		g.logger.Info("player reached goal", "tick", g.tick, "x", pos.X, "y", pos.Y)
	}
}

func (g *Game) die(pos geom.Vec, cause string) {
	g.Kill(g.player.subject)
	g.state = Dead
	g.record(telemetry.NewDeathEvent(g.tick, g.player.subject.ID(), pos.X, pos.Y))
	g.logger.Info("player died", "cause", cause, "tick", g.tick, "x", pos.X, "y", pos.Y)
}

// onResolve records rollbacks of the player's body.
func (g *Game) onResolve(e ecs.Entity, r systems.Resolution) {
	if e != g.player.collider {
		return
	}
	pos := g.positions.Get(g.player.subject)
	if r.HitX {
		g.record(telemetry.NewRollbackEvent(g.tick, g.player.subject.ID(), false, pos.X, pos.Y))
	}
	if r.HitY {
		g.record(telemetry.NewRollbackEvent(g.tick, g.player.subject.ID(), true, pos.X, pos.Y))
	}
}

// playerAlive reports whether the player subject is still in play.
func (g *Game) playerAlive() bool {
	s := g.player.subject
	return g.world.Alive(s) && g.lives.Has(s) && g.lives.Get(s).Alive
}

// PlayerPosition returns the player's top-left corner.
func (g *Game) PlayerPosition() (geom.Vec, bool) {
	if !g.playerAlive() {
		return geom.Zero, false
	}
	return g.positions.Get(g.player.subject).Vec(), true
}

// PlayerCenter returns the centre of the player's box, used as the camera
// target.
func (g *Game) PlayerCenter() (geom.Vec, bool) {
	pos, ok := g.PlayerPosition()
	if !ok {
		return geom.Zero, false
	}
	return r2.Add(pos, r2.Scale(0.5, g.cfg.Player.Size.Vec())), true
}

// PlayerBody returns the player's body, or nil once the player is gone.
// The pointer is valid until the next Step.
func (g *Game) PlayerBody() *components.Body {
	if !g.playerAlive() {
		return nil
	}
	return g.physics.Body(g.player.collider)
}

// PlayerCollider returns the player's main collider, or nil once the player
// is gone. The pointer is valid until the next Step.
func (g *Game) PlayerCollider() *components.Collider {
	if !g.playerAlive() {
		return nil
	}
	return g.colMap.Get(g.player.collider)
}

// Player returns the player's subject and main collider entities.
func (g *Game) Player() (subject, collider ecs.Entity) {
	return g.player.subject, g.player.collider
}
