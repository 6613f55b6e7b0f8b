package ui

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kudo/systems"
	"github.com/pthm-cable/kudo/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Tick     int32
	State    string
	Grounded bool
	Speed    float64
	FPS      int32
	Paused   bool
	Seed     int64
	Best     string // empty when no run is recorded
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	ground := "air"
	if data.Grounded {
		ground = "ground"
	}
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Seed: %d", data.Tick, data.FPS, data.Seed),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("State: %s | %s | Speed: %.1f", data.State, ground, data.Speed),
		10, 55, 16, rl.LightGray,
	)

	y := int32(75)
	if data.Best != "" {
		rl.DrawText("Best: "+data.Best, 10, y, 16, rl.LightGray)
		y += 20
	}
	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
	}
}

// DrawBanner renders a centred end-of-run message. Nothing is drawn while
// the run is still going.
func (h *HUD) DrawBanner(screenWidth, screenHeight int32, state string) {
	var text string
	var col rl.Color
	switch state {
	case "dead":
		text, col = "YOU DIED - press R", rl.White
	case "won":
		text, col = "GOAL! - press R", rl.Gold
	default:
		return
	}
	const size = 40
	w := rl.MeasureText(text, size)
	rl.DrawText(text, (screenWidth-w)/2, screenHeight/3, size, col)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Registry *systems.SystemRegistry
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders phases slowest first.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y
	stats := data.Stats

	phases := make([]string, 0, len(stats.PhaseAvg))
	for phase := range stats.PhaseAvg {
		phases = append(phases, phase)
	}
	slices.SortFunc(phases, func(a, b string) int {
		return cmp.Compare(stats.PhaseAvg[b], stats.PhaseAvg[a])
	})

	height := int32(len(phases))*14 + 56
	p.renderer.Box(x-6, y-6, 280, height)

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(
		fmt.Sprintf("Tick: %s  (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, phase := range phases {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		name := phase
		if data.Registry != nil {
			name = data.Registry.GetName(phase)
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

func count(n int) string { return fmt.Sprintf("%d", n) }

// windowPanel describes the last telemetry window.
var windowPanel = Panel[telemetry.WindowStats]{
	Title: "Last Window",
	Width: 240,
	Groups: []Group[telemetry.WindowStats]{
		{Title: "Events", Rows: []Row[telemetry.WindowStats]{
			{Label: "Rollbacks", Text: func(s telemetry.WindowStats) string {
				return fmt.Sprintf("x %d / y %d", s.RollbacksX, s.RollbacksY)
			}},
			{Label: "Jumps", Text: func(s telemetry.WindowStats) string { return count(s.Jumps) }},
			{Label: "Bush ticks", Text: func(s telemetry.WindowStats) string { return count(s.BushTicks) }},
			{
				Label: "Purged",
				Text:  func(s telemetry.WindowStats) string { return count(s.Purged) },
				Show:  func(s telemetry.WindowStats) bool { return s.Purged > 0 },
			},
		}},
		{Title: "Motion", Rows: []Row[telemetry.WindowStats]{
			{Label: "Grounded", Fill: func(s telemetry.WindowStats) float64 { return s.GroundedFrac }},
			{Label: "Speed p50", Text: func(s telemetry.WindowStats) string { return fmt.Sprintf("%.2f", s.SpeedP50) }},
			{Label: "Speed p90", Text: func(s telemetry.WindowStats) string { return fmt.Sprintf("%.2f", s.SpeedP90) }},
		}},
		{Title: "World", Rows: []Row[telemetry.WindowStats]{
			{Label: "Colliders", Text: func(s telemetry.WindowStats) string { return count(s.Colliders) }},
			{Label: "Bodies", Text: func(s telemetry.WindowStats) string { return count(s.Bodies) }},
		}},
	},
}

// WindowPanel renders the last flushed telemetry window.
type WindowPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewWindowPanel creates a window stats panel.
func NewWindowPanel(x, y int32) *WindowPanel {
	return &WindowPanel{renderer: NewRenderer(), x: x, y: y}
}

// Draw renders stats and returns the Y position below the panel. Nothing is
// drawn before the first window is flushed.
func (w *WindowPanel) Draw(stats telemetry.WindowStats) int32 {
	if stats.WindowEndTick == 0 {
		return w.y
	}
	return windowPanel.Draw(w.renderer, w.x, w.y, stats)
}
