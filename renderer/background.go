package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SkyRenderer fills the screen with a vertical gradient from the sky colour
// to a darker horizon.
type SkyRenderer struct {
	screenW, screenH int32
}

// NewSkyRenderer creates a new sky renderer.
func NewSkyRenderer(screenW, screenH int32) *SkyRenderer {
	return &SkyRenderer{screenW: screenW, screenH: screenH}
}

// Resize updates the screen size.
func (s *SkyRenderer) Resize(screenW, screenH int32) {
	s.screenW, s.screenH = screenW, screenH
}

// Draw renders the sky. Call outside camera mode.
func (s *SkyRenderer) Draw(sky color.RGBA) {
	rl.ClearBackground(sky)
	rl.DrawRectangleGradientV(0, 0, s.screenW, s.screenH, sky, shade(sky, 0.75))
}

// shade scales the colour channels by f, keeping alpha.
func shade(c color.RGBA, f float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

// tint brightens the colour channels by d, saturating at 255.
func tint(c color.RGBA, d uint8, a uint8) color.RGBA {
	add := func(v uint8) uint8 {
		if int(v)+int(d) > 255 {
			return 255
		}
		return v + d
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: a}
}
