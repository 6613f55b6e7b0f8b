// Package inspector shows the components of a clicked collider.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kudo/camera"
	"github.com/pthm-cable/kudo/game"
	"github.com/pthm-cable/kudo/geom"
)

const (
	PanelWidth    = 300
	PanelPadding  = 10
	HeaderHeight  = 30
	sectionHeight = 22
	margin        = 10
)

var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// section is a titled group of rows in the panel.
type section struct {
	title  string
	fields []Field
}

// Inspector tracks the selected collider and draws its panel. The panel is
// docked to the top right corner; its height follows the content.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panel       rl.Rectangle

	hitboxes []game.Hitbox
	sections []section
}

// NewInspector docks the panel against the right edge of a screen
// screenWidth pixels wide.
func NewInspector(screenWidth int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth)
	return ins
}

// Resize re-docks the panel.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panel.X = float32(screenWidth - PanelWidth - margin)
	ins.panel.Y = margin
	ins.panel.Width = PanelWidth
}

func (ins *Inspector) closeButton() rl.Rectangle {
	return rl.Rectangle{X: ins.panel.X + PanelWidth - 25, Y: ins.panel.Y + 5, Width: 20, Height: 20}
}

// HandleInput selects the smallest collider under a left click. A right
// click or the close button clears the selection. Clicks on the open panel
// never reach the world.
func (ins *Inspector) HandleInput(g *game.Game, cam *camera.Camera) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()
	if ins.hasSelected {
		if rl.CheckCollisionPointRec(mouse, ins.closeButton()) {
			ins.Deselect()
			return
		}
		if rl.CheckCollisionPointRec(mouse, ins.panel) {
			return
		}
	}

	wx, wy := cam.ScreenToWorld(mouse.X, mouse.Y)
	ins.hitboxes = g.Hitboxes(ins.hitboxes)
	if e, ok := Pick(ins.hitboxes, geom.V(float64(wx), float64(wy))); ok {
		ins.selected = e
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.selected = ecs.Entity{}
	ins.hasSelected = false
}

// Selected returns the selected collider.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// collect rebuilds the panel sections for in.
func (ins *Inspector) collect(in game.Inspection) {
	ins.sections = append(ins.sections[:0],
		section{title: "Subject", fields: []Field{
			{Name: "Entity", Value: in.Collider.Subject.ID(), Hint: Hint{Widget: WidgetLabel, Max: 1}},
			{Name: "Position", Value: geom.V(in.Position.X, in.Position.Y), Hint: Hint{Widget: WidgetVec, Format: "%.1f", Max: 1}},
			{Name: "Scale", Value: geom.V(in.Scale.W, in.Scale.H), Hint: Hint{Widget: WidgetVec, Format: "%.0f", Max: 1}},
		}},
		section{title: fmt.Sprintf("Collider %d", ins.selected.ID()), fields: Fields(&in.Collider)},
	)
	if in.HasBody {
		ins.sections = append(ins.sections, section{title: "Body", fields: Fields(&in.Body)})
	}
}

// Draw renders the panel. A selection that no longer resolves to a live
// collider is dropped.
func (ins *Inspector) Draw(g *game.Game) {
	if !ins.hasSelected {
		return
	}
	in, ok := g.Inspect(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}
	ins.collect(in)

	height := int32(HeaderHeight + 2*PanelPadding)
	for _, s := range ins.sections {
		height += sectionHeight + int32(len(s.fields))*rowHeight
	}
	ins.panel.Height = float32(height)

	px, py := int32(ins.panel.X), int32(ins.panel.Y)
	rl.DrawRectangleRec(ins.panel, ColorPanelBg)
	rl.DrawRectangleLinesEx(ins.panel, 1, ColorPanelBorder)
	rl.DrawRectangle(px, py, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", px+PanelPadding, py+7, 16, ColorHeaderText)

	cb := ins.closeButton()
	rl.DrawRectangleRec(cb, ColorCloseBtn)
	rl.DrawText("X", int32(cb.X)+6, int32(cb.Y)+3, fontSize, rl.White)

	x := px + PanelPadding
	y := py + HeaderHeight + PanelPadding
	for _, s := range ins.sections {
		rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, rowHeight, ColorSection)
		rl.DrawText(s.title, x+2, y, fontSize, ColorSectionText)
		y += sectionHeight
		for _, f := range s.fields {
			y += DrawField(x, y, f)
		}
	}
}

// DrawSelectionHighlight outlines the selected collider. Call it inside
// BeginMode2D.
func (ins *Inspector) DrawSelectionHighlight(g *game.Game) {
	if !ins.hasSelected {
		return
	}
	box, ok := g.Colliders().Rect(ins.selected)
	if !ok {
		return
	}
	size := geom.Size(box)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(box.Min.X), Y: float32(box.Min.Y), Width: float32(size.X), Height: float32(size.Y)},
		2, rl.Yellow,
	)
}
