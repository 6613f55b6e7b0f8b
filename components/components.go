// Package components defines ECS components for the game world.
package components

import (
	"image/color"

	"github.com/pthm-cable/kudo/geom"
)

// Position is the top-left corner of a subject in world units.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() geom.Vec {
	return geom.V(p.X, p.Y)
}

// Scale is the width and height of a subject.
type Scale struct {
	W, H float64
}

// Vec returns the scale as a vector.
func (s Scale) Vec() geom.Vec {
	return geom.V(s.W, s.H)
}

// Life marks whether a subject is still part of the game.
// Dead subjects stay in the world until cleanup removes them.
type Life struct {
	Alive bool
}

// Kind selects how an Appearance is drawn.
type Kind uint8

const (
	KindShape Kind = iota
	KindSprite
	KindText
)

// Layer bounds for draw ordering.
const (
	MinLayer = -999
	MaxLayer = 1000
)

// Appearance is render-only data for a subject.
type Appearance struct {
	Kind   Kind
	Color  color.RGBA
	Sprite string // asset name, falls back to Color when missing
	Label  string
	Layer  int
}

// ClampLayer keeps a draw layer within [MinLayer, MaxLayer].
func ClampLayer(l int) int {
	if l < MinLayer {
		return MinLayer
	}
	if l > MaxLayer {
		return MaxLayer
	}
	return l
}

// Patrol moves a subject back and forth along X.
type Patrol struct {
	MinX, MaxX float64
	Speed      float64
	Dir        float64 // +1 or -1
}
