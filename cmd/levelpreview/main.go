// Level preview tool - browse generated terrain with sliders.
//
// Usage: go run ./cmd/levelpreview
package main

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kudo/level"
)

const (
	windowWidth  = 1200
	windowHeight = 600
	previewW     = 900
	previewH     = 300
	panelX       = 20
	panelY       = previewH + 40
)

// PreviewParams holds the generator settings.
type PreviewParams struct {
	Noise      bool
	Seed       int64
	Cols, Rows int
	NoiseScale float32
	Goal       bool
}

func defaultParams() PreviewParams {
	return PreviewParams{Seed: 1, Cols: 60, Rows: 10, NoiseScale: 0.08, Goal: true}
}

var cellColors = map[level.Cell]color.RGBA{
	level.Ground: {0, 117, 44, 255},
	level.Plank:  {127, 106, 79, 255},
	level.Bush:   {0, 158, 47, 255},
	level.Goal:   {255, 203, 0, 255},
}

func generate(p PreviewParams) *level.Grid {
	var g *level.Grid
	if p.Noise {
		g = level.GenerateNoise(p.Seed, p.Cols, p.Rows, float64(p.NoiseScale))
	} else {
		g = level.Generate(rand.New(rand.NewSource(p.Seed)), p.Cols, p.Rows)
	}
	if p.Goal {
		g.PlaceGoal()
	}
	return g
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Level Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	grid := generate(params)
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			grid = generate(params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 0, G: 255, B: 255, A: 255})

		drawGrid(grid)

		y := float32(panelY)
		rl.DrawText(fmt.Sprintf("Fingerprint: %016x", grid.Fingerprint()), panelX, int32(y), 18, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Ground %d  Planks %d  Bushes %d",
			grid.Count(level.Ground), grid.Count(level.Plank), grid.Count(level.Bush)),
			panelX+360, int32(y), 18, rl.DarkGray)
		y += 35

		newSeed := int64(gui.SliderBar(
			rl.Rectangle{X: panelX + 80, Y: y, Width: 400, Height: 20},
			"Seed", fmt.Sprintf("%d", params.Seed),
			float32(params.Seed), 0, 9999,
		))
		if newSeed != params.Seed {
			params.Seed = newSeed
			needsRegen = true
		}
		y += 30

		newCols := int(gui.SliderBar(
			rl.Rectangle{X: panelX + 80, Y: y, Width: 400, Height: 20},
			"Columns", fmt.Sprintf("%d", params.Cols),
			float32(params.Cols), 10, 200,
		))
		if newCols != params.Cols {
			params.Cols = newCols
			needsRegen = true
		}
		y += 30

		if params.Noise {
			newScale := gui.SliderBar(
				rl.Rectangle{X: panelX + 80, Y: y, Width: 400, Height: 20},
				"Scale", fmt.Sprintf("%.3f", params.NoiseScale),
				params.NoiseScale, 0.01, 0.5,
			)
			if newScale != params.NoiseScale {
				params.NoiseScale = newScale
				needsRegen = true
			}
		}
		y += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 140, Height: 30}, toggleText(params.Noise, "Use Walk", "Use Noise")) {
			params.Noise = !params.Noise
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 150, Y: y, Width: 140, Height: 30}, toggleText(params.Goal, "No Goal", "Place Goal")) {
			params.Goal = !params.Goal
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 300, Y: y, Width: 140, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 9999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 450, Y: y, Width: 140, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}

		rl.DrawText("Press C to copy the layout to the clipboard", panelX, windowHeight-30, 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(layoutYAML(grid))
		}

		rl.EndDrawing()
	}
}

// drawGrid scales the whole grid into the preview area.
func drawGrid(g *level.Grid) {
	cw := float32(previewW) / float32(g.Cols)
	ch := float32(previewH) / float32(g.Rows)
	g.Each(func(col, row int, c level.Cell) {
		col32, ok := cellColors[c]
		if !ok {
			return
		}
		rl.DrawRectangleRec(rl.Rectangle{
			X: 20 + float32(col)*cw, Y: 20 + float32(row)*ch, Width: cw, Height: ch,
		}, col32)
	})
	rl.DrawRectangleLines(20, 20, previewW, previewH, rl.DarkGray)
}

// layoutYAML renders g as a level.layout block for config.yaml.
func layoutYAML(g *level.Grid) string {
	var b strings.Builder
	b.WriteString("level:\n  layout:\n")
	for _, line := range g.Lines() {
		fmt.Fprintf(&b, "    - %q\n", line)
	}
	return b.String()
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
