// Package ui draws the HUD and debug panels of the game window. Read-only
// panels are declared as data over the value they show, so a new telemetry
// column needs one Row and no drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Row is one line of a panel over data of type T. Exactly one of Text and
// Fill should be set: Text prints a value, Fill draws a meter for a [0, 1]
// ratio. Show hides the row when it returns false.
type Row[T any] struct {
	Label string
	Text  func(T) string
	Fill  func(T) float64
	Show  func(T) bool
}

func (r Row[T]) visible(data T) bool { return r.Show == nil || r.Show(data) }

// Group is a titled run of rows.
type Group[T any] struct {
	Title string
	Rows  []Row[T]
}

// Panel is a boxed list of groups.
type Panel[T any] struct {
	Title  string
	Width  int32
	Groups []Group[T]
}

// lines counts the text lines p needs for data.
func (p Panel[T]) lines(data T) int {
	n := 0
	if p.Title != "" {
		n++
	}
	for _, g := range p.Groups {
		if g.Title != "" {
			n++
		}
		for _, row := range g.Rows {
			if row.visible(data) {
				n++
			}
		}
	}
	return n
}

// Draw renders p with its background at (x, y) and returns the Y below it.
func (p Panel[T]) Draw(r *Renderer, x, y int32, data T) int32 {
	s := r.Style
	step := s.Line + 2
	height := int32(p.lines(data))*step + int32(len(p.Groups))*groupGap + 2*s.Pad
	r.Box(x, y, p.Width, height)

	cx, cy := x+s.Pad, y+s.Pad
	inner := p.Width - 2*s.Pad
	if p.Title != "" {
		rl.DrawText(p.Title, cx, cy, titleFont, rl.White)
		cy += step
	}
	for _, g := range p.Groups {
		if g.Title != "" {
			cy = r.Heading(cx, cy, g.Title)
		}
		for _, row := range g.Rows {
			if !row.visible(data) {
				continue
			}
			switch {
			case row.Fill != nil:
				cy = r.Meter(cx, cy, row.Label, row.Fill(data), inner)
			case row.Text != nil:
				cy = r.Pair(cx, cy, row.Label, row.Text(data))
			default:
				cy += step
			}
		}
		cy += groupGap
	}
	return y + height
}

const (
	groupGap  = 4
	titleFont = 16
)

// Style holds colours and metrics shared by every panel.
type Style struct {
	Bg, Border     rl.Color
	Heading        rl.Color
	Label, Value   rl.Color
	Track, Fill    rl.Color
	Pad, Line      int32
	LabelW, MeterH int32
	Font, HeadFont int32
}

// DefaultStyle is the dark translucent look used by all panels.
func DefaultStyle() Style {
	return Style{
		Bg:       rl.Color{R: 20, G: 25, B: 30, A: 220},
		Border:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		Heading:  rl.Yellow,
		Label:    rl.LightGray,
		Value:    rl.RayWhite,
		Track:    rl.Color{R: 40, G: 40, B: 40, A: 255},
		Fill:     rl.Color{R: 100, G: 150, B: 200, A: 255},
		Pad:      10,
		Line:     16,
		LabelW:   90,
		MeterH:   12,
		Font:     12,
		HeadFont: 14,
	}
}
