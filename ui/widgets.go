package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panel primitives in one Style. Each row method returns
// the Y of the next row.
type Renderer struct {
	Style Style
}

// NewRenderer returns a renderer with DefaultStyle.
func NewRenderer() *Renderer {
	return &Renderer{Style: DefaultStyle()}
}

// Box draws a bordered panel background.
func (r *Renderer) Box(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, r.Style.Bg)
	rl.DrawRectangleLines(x, y, w, h, r.Style.Border)
}

// Heading draws a group title.
func (r *Renderer) Heading(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Style.HeadFont, r.Style.Heading)
	return y + r.Style.Line
}

// Pair draws "label:" and value in two columns.
func (r *Renderer) Pair(x, y int32, label, value string) int32 {
	s := r.Style
	rl.DrawText(label+":", x, y, s.Font, s.Label)
	rl.DrawText(value, x+s.LabelW, y, s.Font, s.Value)
	return y + s.Line + 2
}

// Meter draws label, a bar filled to ratio and the ratio as text. width is
// the whole row including the label column.
func (r *Renderer) Meter(x, y int32, label string, ratio float64, width int32) int32 {
	s := r.Style
	ratio = max(0, min(1, ratio))
	bx := x + s.LabelW
	bw := width - s.LabelW - 50

	rl.DrawText(label+":", x, y, s.Font, s.Label)
	rl.DrawRectangle(bx, y+2, bw, s.MeterH, s.Track)
	rl.DrawRectangle(bx, y+2, int32(float64(bw)*ratio), s.MeterH, s.Fill)
	rl.DrawText(fmt.Sprintf("%.2f", ratio), bx+bw+5, y, s.Font, s.Value)
	return y + s.Line + 2
}
