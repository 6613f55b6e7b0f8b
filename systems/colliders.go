package systems

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/tags"
)

var (
	// ErrNoCollider is returned when an entity carries no Collider component.
	ErrNoCollider = errors.New("entity has no collider")
	// ErrNoSubject is returned when a collider's subject is missing or dead.
	ErrNoSubject = errors.New("collider subject missing or dead")
	// ErrAlreadyRegistered is returned when a collider is registered twice.
	ErrAlreadyRegistered = errors.New("collider already registered")
)

// ColliderIndex maps tags to the colliders registered under them.
// It belongs to one world; separate worlds use separate indexes.
//
// Liveness is checked lazily: colliders whose subject has died stay indexed
// but are skipped by every query. Purge drops them in bulk between ticks.
type ColliderIndex struct {
	world     *ecs.World
	colliders *ecs.Map[components.Collider]
	positions *ecs.Map[components.Position]
	scales    *ecs.Map[components.Scale]
	lives     *ecs.Map[components.Life]

	byTag [tags.Count][]ecs.Entity
	order []ecs.Entity // all registered colliders in registration order
	known map[ecs.Entity]tags.Set
}

// NewColliderIndex creates an empty index over w.
func NewColliderIndex(w *ecs.World) *ColliderIndex {
	return &ColliderIndex{
		world:     w,
		colliders: ecs.NewMap[components.Collider](w),
		positions: ecs.NewMap[components.Position](w),
		scales:    ecs.NewMap[components.Scale](w),
		lives:     ecs.NewMap[components.Life](w),
		known:     make(map[ecs.Entity]tags.Set),
	}
}

// Register indexes e under every tag of its Collider.
func (x *ColliderIndex) Register(e ecs.Entity) error {
	if !x.world.Alive(e) || !x.colliders.Has(e) {
		return fmt.Errorf("register entity %d: %w", e.ID(), ErrNoCollider)
	}
	if _, ok := x.known[e]; ok {
		return fmt.Errorf("register entity %d: %w", e.ID(), ErrAlreadyRegistered)
	}
	col := x.colliders.Get(e)
	if !x.hasSubject(col.Subject) || !x.subjectAlive(col.Subject) {
		return fmt.Errorf("register entity %d: %w", e.ID(), ErrNoSubject)
	}

	for _, t := range col.Tags.Tags() {
		x.byTag[t] = append(x.byTag[t], e)
	}
	x.order = append(x.order, e)
	x.known[e] = col.Tags
	return nil
}

// Registered reports whether e is in the index.
func (x *ColliderIndex) Registered(e ecs.Entity) bool {
	_, ok := x.known[e]
	return ok
}

// Retire removes e from the index. Unknown entities are ignored.
func (x *ColliderIndex) Retire(e ecs.Entity) {
	set, ok := x.known[e]
	if !ok {
		return
	}
	for _, t := range set.Tags() {
		x.byTag[t] = slices.DeleteFunc(x.byTag[t], func(o ecs.Entity) bool { return o == e })
	}
	x.order = slices.DeleteFunc(x.order, func(o ecs.Entity) bool { return o == e })
	delete(x.known, e)
}

// Purge retires every collider that is no longer live and returns how many
// were dropped.
func (x *ColliderIndex) Purge() int {
	var stale []ecs.Entity
	for _, e := range x.order {
		if !x.live(e) {
			stale = append(stale, e)
		}
	}
	for _, e := range stale {
		x.Retire(e)
	}
	return len(stale)
}

// Len returns the number of colliders registered under t, dead ones included.
func (x *ColliderIndex) Len(t tags.Tag) int {
	if !t.Valid() {
		return 0
	}
	return len(x.byTag[t])
}

// Total returns the number of registered colliders.
func (x *ColliderIndex) Total() int {
	return len(x.order)
}

// Rect returns the current world box of collider e. The box is computed from
// the subject every call, never cached. ok is false when e or its subject is
// gone.
func (x *ColliderIndex) Rect(e ecs.Entity) (r2.Box, bool) {
	if !x.world.Alive(e) || !x.colliders.Has(e) {
		return r2.Box{}, false
	}
	col := x.colliders.Get(e)
	if !x.hasSubject(col.Subject) {
		return r2.Box{}, false
	}
	return col.Rect(*x.positions.Get(col.Subject), *x.scales.Get(col.Subject)), true
}

// IsColliding reports whether e overlaps any other live collider registered
// under a tag in query. A collider never collides with itself, and one whose
// own subject is dead collides with nothing.
func (x *ColliderIndex) IsColliding(e ecs.Entity, query tags.Set) bool {
	if query.Empty() || !x.live(e) {
		return false
	}
	self, ok := x.Rect(e)
	if !ok {
		return false
	}
	for _, t := range query.Tags() {
		for _, other := range x.byTag[t] {
			if other == e || !x.live(other) {
				continue
			}
			r, ok := x.Rect(other)
			if ok && geom.Overlaps(self, r) {
				return true
			}
		}
	}
	return false
}

// Colliding appends to dst every live collider under a tag in query that
// overlaps e, in registration order, and returns the extended slice.
func (x *ColliderIndex) Colliding(e ecs.Entity, query tags.Set, dst []ecs.Entity) []ecs.Entity {
	if query.Empty() || !x.live(e) {
		return dst
	}
	self, ok := x.Rect(e)
	if !ok {
		return dst
	}
	for _, other := range x.order {
		if other == e || !x.known[other].Intersects(query) || !x.live(other) {
			continue
		}
		if r, ok := x.Rect(other); ok && geom.Overlaps(self, r) {
			dst = append(dst, other)
		}
	}
	return dst
}

// Each calls fn for every live collider in registration order with its tags
// and current box.
func (x *ColliderIndex) Each(fn func(e ecs.Entity, set tags.Set, box r2.Box)) {
	for _, e := range x.order {
		if !x.live(e) {
			continue
		}
		if r, ok := x.Rect(e); ok {
			fn(e, x.known[e], r)
		}
	}
}

// Subject returns the subject entity of collider e.
func (x *ColliderIndex) Subject(e ecs.Entity) (ecs.Entity, bool) {
	if !x.world.Alive(e) || !x.colliders.Has(e) {
		return ecs.Entity{}, false
	}
	return x.colliders.Get(e).Subject, true
}

// live reports whether collider e and its subject are both still in play.
func (x *ColliderIndex) live(e ecs.Entity) bool {
	if !x.world.Alive(e) || !x.colliders.Has(e) {
		return false
	}
	subject := x.colliders.Get(e).Subject
	return x.hasSubject(subject) && x.subjectAlive(subject)
}

func (x *ColliderIndex) hasSubject(s ecs.Entity) bool {
	return !s.IsZero() && x.world.Alive(s) && x.positions.Has(s) && x.scales.Has(s)
}

// subjectAlive treats a subject without a Life component as alive.
func (x *ColliderIndex) subjectAlive(s ecs.Entity) bool {
	if !x.lives.Has(s) {
		return true
	}
	return x.lives.Get(s).Alive
}
