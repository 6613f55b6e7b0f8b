package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/tags"
)

// fixture is a small world with an index and physics system.
type fixture struct {
	t         *testing.T
	world     *ecs.World
	subjects  *ecs.Map3[components.Position, components.Scale, components.Life]
	colliders *ecs.Map[components.Collider]
	positions *ecs.Map[components.Position]
	lives     *ecs.Map[components.Life]
	index     *ColliderIndex
	physics   *PhysicsSystem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	index := NewColliderIndex(w)
	return &fixture{
		t:         t,
		world:     w,
		subjects:  ecs.NewMap3[components.Position, components.Scale, components.Life](w),
		colliders: ecs.NewMap[components.Collider](w),
		positions: ecs.NewMap[components.Position](w),
		lives:     ecs.NewMap[components.Life](w),
		index:     index,
		physics:   NewPhysicsSystem(w, index),
	}
}

func (f *fixture) subject(x, y, w, h float64) ecs.Entity {
	return f.subjects.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Scale{W: w, H: h},
		&components.Life{Alive: true},
	)
}

// collider creates and registers a collider with the subject's own box.
func (f *fixture) collider(subject ecs.Entity, set tags.Set) ecs.Entity {
	return f.colliderWith(components.Collider{Subject: subject, Tags: set})
}

func (f *fixture) colliderWith(c components.Collider) ecs.Entity {
	f.t.Helper()
	e := f.colliders.NewEntity(&c)
	if err := f.index.Register(e); err != nil {
		f.t.Fatalf("Register: %v", err)
	}
	return e
}

// box is a subject plus registered collider.
func (f *fixture) box(x, y, w, h float64, set tags.Set) (subject, col ecs.Entity) {
	subject = f.subject(x, y, w, h)
	return subject, f.collider(subject, set)
}

// body attaches a body with zero gravity unless overridden by mod and
// returns it. The pointer is only valid until the next structural change.
func (f *fixture) body(col ecs.Entity, solid tags.Set, mod func(*components.Body)) *components.Body {
	f.t.Helper()
	b := components.NewBody(solid)
	b.Gravity = 0
	if mod != nil {
		mod(&b)
	}
	if err := f.physics.Attach(col, b); err != nil {
		f.t.Fatalf("Attach: %v", err)
	}
	return f.physics.Body(col)
}

func (f *fixture) pos(subject ecs.Entity) geom.Vec {
	return f.positions.Get(subject).Vec()
}

func (f *fixture) kill(subject ecs.Entity) {
	f.lives.Get(subject).Alive = false
}
