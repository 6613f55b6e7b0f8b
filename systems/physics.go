// Package systems contains ECS systems for the game world.
package systems

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/geom"
)

// ErrAlreadyAttached is returned when a collider already drives a body.
var ErrAlreadyAttached = errors.New("body already attached")

// Resolution reports which axes were rolled back during a step.
type Resolution struct {
	HitX, HitY bool
}

// PhysicsSystem integrates bodies and resolves their collisions one axis at
// a time. Bodies step in the order they were attached, so a body sees the
// already-moved positions of bodies attached before it.
type PhysicsSystem struct {
	world     *ecs.World
	colliders *ColliderIndex
	bodies    *ecs.Map[components.Body]
	cols      *ecs.Map[components.Collider]
	positions *ecs.Map[components.Position]

	order []ecs.Entity

	// OnResolve, when set, is called after each step that rolled back an axis.
	OnResolve func(e ecs.Entity, r Resolution)
}

// NewPhysicsSystem creates a physics system resolving against colliders.
func NewPhysicsSystem(w *ecs.World, colliders *ColliderIndex) *PhysicsSystem {
	return &PhysicsSystem{
		world:     w,
		colliders: colliders,
		bodies:    ecs.NewMap[components.Body](w),
		cols:      ecs.NewMap[components.Collider](w),
		positions: ecs.NewMap[components.Position](w),
	}
}

// Attach adds body to collider entity e. The collider must already be
// registered with a live subject. LastPosition starts at the subject's
// current position.
func (s *PhysicsSystem) Attach(e ecs.Entity, body components.Body) error {
	if !s.world.Alive(e) || !s.cols.Has(e) {
		return fmt.Errorf("attach body to entity %d: %w", e.ID(), ErrNoCollider)
	}
	if !s.colliders.Registered(e) {
		return fmt.Errorf("attach body to entity %d: collider not registered: %w", e.ID(), ErrNoCollider)
	}
	if !s.colliders.live(e) {
		return fmt.Errorf("attach body to entity %d: %w", e.ID(), ErrNoSubject)
	}
	if s.bodies.Has(e) {
		return fmt.Errorf("attach body to entity %d: %w", e.ID(), ErrAlreadyAttached)
	}

	subject := s.cols.Get(e).Subject
	body.LastPosition = s.positions.Get(subject).Vec()
	s.bodies.Add(e, &body)
	s.order = append(s.order, e)
	return nil
}

// Body returns the body on e, or nil. Velocity may be changed through the
// returned pointer until the next structural change to the world.
func (s *PhysicsSystem) Body(e ecs.Entity) *components.Body {
	if !s.world.Alive(e) || !s.bodies.Has(e) {
		return nil
	}
	return s.bodies.Get(e)
}

// Len returns the number of attached bodies.
func (s *PhysicsSystem) Len() int {
	return len(s.order)
}

// Update steps every live body once and forgets bodies whose entity was
// removed from the world.
func (s *PhysicsSystem) Update() {
	n := 0
	for _, e := range s.order {
		if !s.world.Alive(e) {
			continue
		}
		s.order[n] = e
		n++
		if r := s.Step(e); (r.HitX || r.HitY) && s.OnResolve != nil {
			s.OnResolve(e, r)
		}
	}
	clear(s.order[n:])
	s.order = s.order[:n]
}

// Step advances one body by one tick:
//
//  1. gravity is added while Velocity.Y <= MaxVelocity.Y, so the cap can be
//     exceeded by one increment
//  2. move X, roll back to LastPosition.X and zero Velocity.X on overlap
//  3. the same for Y
//  4. Velocity.X decays toward zero by Weight, never crossing it; a
//     negative Weight counts as zero
//
// Bodies whose subject is dead are left untouched.
func (s *PhysicsSystem) Step(e ecs.Entity) Resolution {
	var res Resolution
	if !s.world.Alive(e) || !s.bodies.Has(e) || !s.colliders.live(e) {
		return res
	}
	b := s.bodies.Get(e)
	pos := s.positions.Get(s.cols.Get(e).Subject)

	if b.Velocity.Y <= b.MaxVelocity.Y {
		b.Velocity.Y += b.Gravity
	}

	pos.X += b.Velocity.X
	if s.colliders.IsColliding(e, b.Solid) {
		pos.X = b.LastPosition.X
		b.Velocity.X = 0
		res.HitX = true
	} else {
		b.LastPosition.X = pos.X
	}

	pos.Y += b.Velocity.Y
	if s.colliders.IsColliding(e, b.Solid) {
		pos.Y = b.LastPosition.Y
		b.Velocity.Y = 0
		res.HitY = true
	} else {
		b.LastPosition.Y = pos.Y
	}

	b.Velocity = geom.MoveTowards(b.Velocity, geom.V(0, b.Velocity.Y), max(0, b.Weight))
	return res
}
