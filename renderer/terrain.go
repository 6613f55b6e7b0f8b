package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kudo/level"
)

// TerrainRenderer adds edge highlights and shadows on top of tile subjects
// so exposed ground reads as a surface.
type TerrainRenderer struct {
	cellW, cellH float32
	grass        color.RGBA
}

// NewTerrainRenderer creates a terrain renderer for the given cell size.
func NewTerrainRenderer(cellW, cellH float64) *TerrainRenderer {
	return &TerrainRenderer{
		cellW: float32(cellW),
		cellH: float32(cellH),
		grass: color.RGBA{0, 170, 60, 255},
	}
}

// Draw renders edges for every solid cell of grid. Call inside camera mode,
// after the tiles themselves.
func (r *TerrainRenderer) Draw(grid *level.Grid) {
	if grid == nil {
		return
	}
	grid.Each(func(col, row int, c level.Cell) {
		if !c.Solid() {
			return
		}
		r.drawCellEdges(grid, col, row, c)
	})
}

// drawCellEdges adds visual depth with edge highlights and shadows.
func (r *TerrainRenderer) drawCellEdges(grid *level.Grid, col, row int, c level.Cell) {
	baseX := float32(col) * r.cellW
	baseY := float32(row) * r.cellH
	edge := r.cellH * 0.15

	hasTop := grid.At(col, row-1).Solid()
	hasBottom := grid.At(col, row+1).Solid()

	// Top edge: grass on exposed ground, a light rim on planks
	if !hasTop {
		top := r.grass
		if c == level.Plank {
			top = tint(top, 60, 160)
		}
		rl.DrawRectangleRec(rl.Rectangle{X: baseX, Y: baseY, Width: r.cellW, Height: edge}, top)
	}

	// Bottom edge shadow
	if !hasBottom && row < grid.Rows-1 {
		shadow := color.RGBA{0, 0, 0, 80}
		rl.DrawRectangleRec(rl.Rectangle{X: baseX, Y: baseY + r.cellH - edge, Width: r.cellW, Height: edge}, shadow)
	}
}
