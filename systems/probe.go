package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kudo/tags"
)

// Grounded reports whether the probe collider overlaps anything in solid.
// A probe is a thin collider under a subject's feet, separate from its main
// collider, and is only ever read.
func Grounded(index *ColliderIndex, probe ecs.Entity, solid tags.Set) bool {
	return index.IsColliding(probe, solid)
}
