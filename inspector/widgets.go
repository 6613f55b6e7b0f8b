package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarHigh = rl.Color{R: 200, G: 160, B: 80, A: 255}
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBoolOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const (
	rowHeight  = 18
	fontSize   = 14
	valueInset = 80
	barW       = 120
)

// DrawField draws one field row at (x, y) and returns the row height.
// Bars and bools fall back to a label when the value has the wrong type.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if v, ok := f.Float(); ok {
			drawBar(x, y, f.Name, v, f.Ratio())
			return rowHeight
		}
	case WidgetBool:
		if on, ok := f.Value.(bool); ok {
			drawBool(x, y, f.Name, on)
			return rowHeight
		}
	}
	rl.DrawText(f.Name+": "+f.Text(), x, y, fontSize, ColorText)
	return rowHeight
}

func drawBar(x, y int32, name string, value, ratio float64) {
	rl.DrawText(name, x, y, fontSize, ColorTextDim)
	bx := x + valueInset
	rl.DrawRectangle(bx, y, barW, fontSize, ColorBarBg)
	fill := ColorBarFill
	if ratio > 0.8 {
		fill = ColorBarHigh
	}
	rl.DrawRectangle(bx, y, int32(barW*ratio), fontSize, fill)
	rl.DrawText(fmt.Sprintf("%.2f", value), bx+barW+5, y, fontSize, ColorTextDim)
}

func drawBool(x, y int32, name string, on bool) {
	rl.DrawText(name, x, y, fontSize, ColorTextDim)
	c, label := ColorBoolOff, "OFF"
	if on {
		c, label = ColorBoolOn, "ON"
	}
	bx := x + valueInset
	rl.DrawRectangle(bx, y, fontSize, fontSize, c)
	rl.DrawText(label, bx+fontSize+5, y, fontSize, c)
}
