package inspector

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kudo/game"
	"github.com/pthm-cable/kudo/geom"
)

// Pick returns the collider under world point p. When boxes overlap the
// smallest one wins, so a probe inside a larger player box stays reachable.
func Pick(hitboxes []game.Hitbox, p geom.Vec) (ecs.Entity, bool) {
	var best ecs.Entity
	bestArea := -1.0
	for _, h := range hitboxes {
		if p.X < h.Box.Min.X || p.X > h.Box.Max.X || p.Y < h.Box.Min.Y || p.Y > h.Box.Max.Y {
			continue
		}
		size := geom.Size(h.Box)
		area := size.X * size.Y
		if bestArea < 0 || area < bestArea {
			best, bestArea = h.Entity, area
		}
	}
	return best, bestArea >= 0
}
