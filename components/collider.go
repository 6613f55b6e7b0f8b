package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/tags"
)

// Collider is a box positioned relative to a subject entity.
// The subject is referenced by handle; the collider never owns it.
type Collider struct {
	Subject ecs.Entity `inspect:"skip"`
	Offset  geom.Vec   `inspect:"label,fmt:%.1f"`
	Size    geom.Vec   `inspect:"label,fmt:%.1f"` // zero means the subject's Scale
	Inflate geom.Vec   `inspect:"label,fmt:%.1f"` // grows the box around its centre
	Tags    tags.Set   `inspect:"label"`
}

// Rect computes the collider's world box from its subject's current
// position and scale.
func (c *Collider) Rect(pos Position, scale Scale) r2.Box {
	size := c.Size
	if geom.IsZero(size) {
		size = scale.Vec()
	}
	size = r2.Add(size, c.Inflate)
	origin := r2.Sub(r2.Add(pos.Vec(), c.Offset), r2.Scale(0.5, c.Inflate))
	return geom.Rect(origin, size)
}
