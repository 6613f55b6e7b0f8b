package components

import (
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/tags"
)

// Body holds the physical state of a collider's subject.
// It lives on the same entity as the Collider it moves.
type Body struct {
	Solid        tags.Set `inspect:"label"`
	Velocity     geom.Vec `inspect:"label,fmt:%.2f"`
	MaxVelocity  geom.Vec `inspect:"label,fmt:%.1f"`
	Gravity      float64  `inspect:"bar,max:3"`
	Weight       float64  `inspect:"bar,max:20"`
	LastPosition geom.Vec `inspect:"skip"` // last non-colliding position, per axis
}

// DefaultMaxVelocity is the velocity cap used when none is given.
var DefaultMaxVelocity = geom.V(10, 10)

// Default gravity and weight for new bodies.
const (
	DefaultGravity = 0.5
	DefaultWeight  = 5.0
)

// NewBody returns a body with default tuning that collides with solid.
func NewBody(solid tags.Set) Body {
	return Body{
		Solid:       solid,
		MaxVelocity: DefaultMaxVelocity,
		Gravity:     DefaultGravity,
		Weight:      DefaultWeight,
	}
}
