// Package geom provides the vector and box helpers used by the physics layer.
// Vectors are gonum r2 values, so arithmetic never aliases.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector in world units. Y grows downward.
type Vec = r2.Vec

// Zero is the zero vector.
var Zero = Vec{}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// IsZero reports whether both components are zero.
func IsZero(v Vec) bool {
	return v.X == 0 && v.Y == 0
}

// MoveTowards steps each axis of from toward to by step, snapping when the
// remaining distance on that axis is smaller than step.
func MoveTowards(from, to Vec, step float64) Vec {
	return Vec{X: approach(from.X, to.X, step), Y: approach(from.Y, to.Y, step)}
}

func approach(from, to, step float64) float64 {
	d := to - from
	if math.Abs(d) <= step {
		return to
	}
	return from + math.Copysign(step, d)
}

// Rect builds a box from its top-left corner and size. Unlike r2.NewBox it
// does not canonicalise, so a negative size yields an empty box.
func Rect(origin, size Vec) r2.Box {
	return r2.Box{Min: origin, Max: r2.Add(origin, size)}
}

// Size returns the width and height of a box.
func Size(b r2.Box) Vec {
	return r2.Sub(b.Max, b.Min)
}

// Overlaps reports whether two boxes share interior area. Touching edges do
// not count, and an empty box overlaps nothing.
func Overlaps(a, b r2.Box) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
