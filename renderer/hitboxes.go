package renderer

import (
	"image/color"

	"github.com/pthm-cable/kudo/tags"
)

var tagColors = [tags.Count]color.RGBA{
	tags.Tiles:       {130, 130, 130, 255},
	tags.Player:      {0, 121, 241, 255},
	tags.Bosses:      {230, 41, 55, 255},
	tags.Bushes:      {0, 228, 48, 255},
	tags.GroundCheck: {255, 161, 0, 255},
	tags.Goal:        {253, 249, 0, 255},
}

// TagColor returns the debug outline colour for t.
func TagColor(t tags.Tag) color.RGBA {
	if !t.Valid() {
		return color.RGBA{255, 255, 255, 255}
	}
	return tagColors[t]
}
