package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kudo/camera"
	"github.com/pthm-cable/kudo/game"
)

// Camera key steps per frame.
const (
	rotateStep = 1    // degrees
	zoomStep   = 0.01 // additive
)

// ControlsHelp is the legend shown at the bottom of the screen.
const ControlsHelp = "Arrows/WASD move | Space jump | P pause | N step | R reset | V/C rotate | G/F zoom | 0 camera"

// ReadIntent maps held keys to player intent. Arrows and WASD both work;
// Space also jumps.
func ReadIntent() game.Intent {
	return game.Intent{
		Left:  rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA),
		Right: rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD),
		Up:    rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeySpace),
		Down:  rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS),
	}
}

// Actions are one-shot commands pressed this frame.
type Actions struct {
	Pause bool
	Step  bool // advance one tick while paused
	Reset bool
}

// Merge combines actions from keys and buttons.
func (a Actions) Merge(b Actions) Actions {
	return Actions{
		Pause: a.Pause || b.Pause,
		Step:  a.Step || b.Step,
		Reset: a.Reset || b.Reset,
	}
}

// ReadActions reads one-shot keys.
func ReadActions() Actions {
	return Actions{
		Pause: rl.IsKeyPressed(rl.KeyP),
		Step:  rl.IsKeyPressed(rl.KeyN),
		Reset: rl.IsKeyPressed(rl.KeyR),
	}
}

// ApplyCameraKeys rotates and zooms cam while V/C and G/F are held, and
// resets it on 0.
func ApplyCameraKeys(cam *camera.Camera) {
	if rl.IsKeyDown(rl.KeyV) {
		cam.Rotate(rotateStep)
	}
	if rl.IsKeyDown(rl.KeyC) {
		cam.Rotate(-rotateStep)
	}
	if rl.IsKeyDown(rl.KeyG) {
		cam.ZoomBy(zoomStep)
	}
	if rl.IsKeyDown(rl.KeyF) {
		cam.ZoomBy(-zoomStep)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(wheel * zoomStep * 10)
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		cam.Reset()
	}
}

// ControlsPanel lists overlays by group with their toggle keys.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

var (
	colorToggleOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
	colorToggleOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	colorKeyHint   = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// Draw renders the panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	s := c.renderer.Style
	groups := []OverlayGroup{GroupDisplay, GroupDebug}

	lines := int32(1)
	for _, g := range groups {
		lines += int32(len(InGroup(g))) + 1
	}
	height := lines*s.Line + int32(len(groups)+1)*groupGap + 2*s.Pad
	c.renderer.Box(c.x, c.y, c.width, height)

	x, y := c.x+s.Pad, c.y+s.Pad
	rl.DrawText("Overlays", x, y, titleFont, rl.White)
	y += s.Line + groupGap
	for _, g := range groups {
		y = c.renderer.Heading(x, y, g.String())
		for _, o := range InGroup(g) {
			c.drawToggle(x, y, o.Info(), overlays.IsEnabled(o))
			y += s.Line
		}
		y += groupGap
	}
	return c.y + height
}

func (c *ControlsPanel) drawToggle(x, y int32, info OverlayInfo, on bool) {
	s := c.renderer.Style
	dot, name := colorToggleOff, s.Label
	if on {
		dot, name = colorToggleOn, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, dot)
	rl.DrawText(info.Name, x+14, y, s.Font, name)

	key := "[" + info.KeyLabel + "]"
	kw := rl.MeasureText(key, s.Font)
	rl.DrawText(key, x+c.width-2*s.Pad-kw, y, s.Font, colorKeyHint)
}
