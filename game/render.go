package game

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/tags"
)

// Drawable is one live subject ready for a renderer.
type Drawable struct {
	Entity     ecs.Entity
	Box        r2.Box
	Appearance components.Appearance
}

// Hitbox is one live collider box, for debug outlines.
type Hitbox struct {
	Entity ecs.Entity
	Box    r2.Box
	Tags   tags.Set
}

// Drawables appends every live subject to dst[:0] sorted by layer, ties
// broken by entity ID so frames are stable.
func (g *Game) Drawables(dst []Drawable) []Drawable {
	dst = dst[:0]
	query := g.drawFilter.Query()
	for query.Next() {
		e := query.Entity()
		pos, scale, app := query.Get()
		if g.lives.Has(e) && !g.lives.Get(e).Alive {
			continue
		}
		dst = append(dst, Drawable{
			Entity:     e,
			Box:        geom.Rect(pos.Vec(), scale.Vec()),
			Appearance: *app,
		})
	}
	slices.SortFunc(dst, func(a, b Drawable) int {
		if c := cmp.Compare(a.Appearance.Layer, b.Appearance.Layer); c != 0 {
			return c
		}
		return cmp.Compare(a.Entity.ID(), b.Entity.ID())
	})
	return dst
}

// Hitboxes appends every live collider to dst[:0] in registration order.
func (g *Game) Hitboxes(dst []Hitbox) []Hitbox {
	dst = dst[:0]
	g.colliders.Each(func(e ecs.Entity, set tags.Set, box r2.Box) {
		dst = append(dst, Hitbox{Entity: e, Box: box, Tags: set})
	})
	return dst
}

// Inspection is a snapshot of one collider, its subject and its body.
type Inspection struct {
	Collider components.Collider
	Box      r2.Box
	Position components.Position
	Scale    components.Scale
	Body     components.Body
	HasBody  bool
}

// Inspect snapshots collider e. It returns false when e is not a live
// collider.
func (g *Game) Inspect(e ecs.Entity) (Inspection, bool) {
	box, ok := g.colliders.Rect(e)
	if !ok {
		return Inspection{}, false
	}
	in := Inspection{
		Collider: *g.colMap.Get(e),
		Box:      box,
	}
	subject := in.Collider.Subject
	in.Position = *g.positions.Get(subject)
	if g.scales.Has(subject) {
		in.Scale = *g.scales.Get(subject)
	}
	if body := g.physics.Body(e); body != nil {
		in.Body = *body
		in.HasBody = true
	}
	return in, true
}
