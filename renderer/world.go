// Package renderer draws the game world with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kudo/camera"
	"github.com/pthm-cable/kudo/components"
	"github.com/pthm-cable/kudo/game"
)

// Camera2D converts the camera to a raylib camera.
func Camera2D(c *camera.Camera) rl.Camera2D {
	return rl.Camera2D{
		Offset:   rl.Vector2{X: c.ViewportW / 2, Y: c.ViewportH / 2},
		Target:   rl.Vector2{X: c.X, Y: c.Y},
		Rotation: c.Rotation,
		Zoom:     c.Zoom,
	}
}

// WorldRenderer draws subjects in layer order.
type WorldRenderer struct {
	textures  *TextureCache
	drawables []game.Drawable
	hitboxes  []game.Hitbox
}

// NewWorldRenderer creates a world renderer using textures for sprites.
func NewWorldRenderer(textures *TextureCache) *WorldRenderer {
	return &WorldRenderer{textures: textures}
}

// Draw renders every live subject of g. Call inside camera mode.
func (r *WorldRenderer) Draw(g *game.Game, cam *camera.Camera) {
	r.drawables = g.Drawables(r.drawables)
	for i := range r.drawables {
		d := &r.drawables[i]
		rec := rect(d.Box)
		if !cam.IsVisible(rec.X, rec.Y, rec.Width, rec.Height) {
			continue
		}

		switch d.Appearance.Kind {
		case components.KindSprite:
			if tex, ok := r.textures.Get(d.Appearance.Sprite); ok {
				src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
				rl.DrawTexturePro(tex, src, rec, rl.Vector2{}, 0, rl.White)
				continue
			}
			rl.DrawRectangleRec(rec, d.Appearance.Color)
			rl.DrawRectangleLinesEx(rec, 1, shade(d.Appearance.Color, 0.6))
		case components.KindText:
			rl.DrawText(d.Appearance.Label, int32(rec.X), int32(rec.Y), int32(rec.Height), d.Appearance.Color)
		default:
			rl.DrawRectangleRec(rec, d.Appearance.Color)
		}
	}
}

// DrawHitboxes outlines every live collider, coloured by its first tag.
// Call inside camera mode.
func (r *WorldRenderer) DrawHitboxes(g *game.Game) {
	r.hitboxes = g.Hitboxes(r.hitboxes)
	for _, h := range r.hitboxes {
		col := rl.White
		if ts := h.Tags.Tags(); len(ts) > 0 {
			col = TagColor(ts[0])
		}
		rl.DrawRectangleLinesEx(rect(h.Box), 2, col)
	}
}

func rect(b r2.Box) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(b.Min.X),
		Y:      float32(b.Min.Y),
		Width:  float32(b.Max.X - b.Min.X),
		Height: float32(b.Max.Y - b.Min.Y),
	}
}
