package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kudo/game"
)

// Slider ranges for the tuning panel.
const (
	maxGravity = 3
	maxWeight  = 20
	maxSpeed   = 20
)

// TuningPanel edits the live player's body and move speed with raygui
// sliders.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewTuningPanel creates a tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Draw renders the sliders and buttons and applies slider changes to g.
// Button presses are returned, along with whether the hitbox button was hit.
func (t *TuningPanel) Draw(g *game.Game, paused bool) (acts Actions, toggleHitboxes bool) {
	r := t.renderer
	padding := float32(r.Style.Pad)
	x := float32(t.x) + padding
	y := float32(t.y) + padding
	sliderW := float32(t.width) - 2*padding - 50

	r.Box(t.x, t.y, t.width, 230)
	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.White)
	y += 24

	if body := g.PlayerBody(); body != nil {
		body.Gravity = float64(t.slider(x, &y, sliderW, "Gravity", float32(body.Gravity), maxGravity))
		body.Weight = float64(t.slider(x, &y, sliderW, "Weight", float32(body.Weight), maxWeight))
	} else {
		rl.DrawText("(player gone)", int32(x), int32(y), 12, r.Style.Label)
		y += 2 * 38
	}
	g.SetSpeed(float64(t.slider(x, &y, sliderW, "Speed", float32(g.Speed()), maxSpeed)))

	pauseText := "Pause"
	if paused {
		pauseText = "Resume"
	}
	bw := (float32(t.width) - 2*padding - 20) / 3
	acts.Pause = gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: 26}, pauseText)
	toggleHitboxes = gui.Button(rl.Rectangle{X: x + bw + 10, Y: y, Width: bw, Height: 26}, "Hitboxes")
	acts.Reset = gui.Button(rl.Rectangle{X: x + 2*(bw+10), Y: y, Width: bw, Height: 26}, "Reset")
	return acts, toggleHitboxes
}

// slider draws a labelled slider over [0, hi] and advances y.
func (t *TuningPanel) slider(x float32, y *float32, w float32, label string, v, hi float32) float32 {
	s := t.renderer.Style
	rl.DrawText(label, int32(x), int32(*y), s.Font, s.Label)
	*y += 16
	v = gui.SliderBar(rl.Rectangle{X: x, Y: *y, Width: w, Height: 16}, "", "", v, 0, hi)
	rl.DrawText(fmt.Sprintf("%.2f", v), int32(x+w+8), int32(*y+2), s.Font, s.Value)
	*y += 22
	return v
}
