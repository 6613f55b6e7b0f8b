package game

import (
	"image/color"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/geom"
	"github.com/pthm-cable/kudo/tags"
)

// SpawnShape creates a subject drawn as a filled rectangle.
func (g *Game) SpawnShape(pos, size geom.Vec, col color.RGBA, label string, layer int) ecs.Entity {
	return g.spawn(pos, size, components.Appearance{
		Kind:  components.KindShape,
		Color: col,
		Label: label,
		Layer: layer,
	})
}

// SpawnSprite creates a subject drawn from a texture. fallback is used when
// the texture is not available.
func (g *Game) SpawnSprite(pos, size geom.Vec, sprite string, fallback color.RGBA, layer int) ecs.Entity {
	return g.spawn(pos, size, components.Appearance{
		Kind:   components.KindSprite,
		Color:  fallback,
		Sprite: sprite,
		Label:  sprite,
		Layer:  layer,
	})
}

// SpawnText creates a subject drawn as a text label. size.Y is the font size.
func (g *Game) SpawnText(pos, size geom.Vec, text string, col color.RGBA, layer int) ecs.Entity {
	return g.spawn(pos, size, components.Appearance{
		Kind:  components.KindText,
		Color: col,
		Label: text,
		Layer: layer,
	})
}

func (g *Game) spawn(pos, size geom.Vec, app components.Appearance) ecs.Entity {
	app.Layer = components.ClampLayer(app.Layer)
	return g.subjects.NewEntity(
		&components.Position{X: pos.X, Y: pos.Y},
		&components.Scale{W: size.X, H: size.Y},
		&components.Life{Alive: true},
		&app,
	)
}

// AddCollider creates a collider on subject and registers it under set.
// The collider entity is removed again if registration fails.
func (g *Game) AddCollider(subject ecs.Entity, set tags.Set, offset, inflate geom.Vec) (ecs.Entity, error) {
	e := g.colMap.NewEntity(&components.Collider{
		Subject: subject,
		Offset:  offset,
		Inflate: inflate,
		Tags:    set,
	})
	if err := g.colliders.Register(e); err != nil {
		g.world.RemoveEntity(e)
		return ecs.Entity{}, err
	}
	g.attached[subject] = append(g.attached[subject], e)
	return e, nil
}

// AddBody attaches body to a registered collider.
func (g *Game) AddBody(collider ecs.Entity, body components.Body) error {
	return g.physics.Attach(collider, body)
}

// NewBody returns a body tuned from the physics config, blocked by solid.
func (g *Game) NewBody(solid tags.Set) components.Body {
	body := components.NewBody(solid)
	body.Gravity = g.cfg.Physics.Gravity
	body.MaxVelocity = g.cfg.Physics.MaxVelocity.Vec()
	body.Weight = g.cfg.Physics.Weight
	return body
}

// Kill marks subject dead. Its colliders stop colliding at once; the
// subject and its colliders leave the world in the next cleanup phase.
func (g *Game) Kill(subject ecs.Entity) bool {
	if !g.world.Alive(subject) || !g.lives.Has(subject) {
		return false
	}
	life := g.lives.Get(subject)
	if !life.Alive {
		return false
	}
	life.Alive = false
	return true
}
