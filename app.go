package main

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kudo/camera"
	"github.com/pthm-cable/kudo/game"
	"github.com/pthm-cable/kudo/inspector"
	"github.com/pthm-cable/kudo/renderer"
	"github.com/pthm-cable/kudo/settings"
	"github.com/pthm-cable/kudo/ui"
)

// app is the window front end: it feeds keyboard input to one game and
// draws it, rebuilding the game on reset.
type app struct {
	opts  game.Options
	prefs *settings.Manager

	game     *game.Game
	cam      *camera.Camera
	recorded bool // the finished run was offered to prefs
	paused   bool

	sky       *renderer.SkyRenderer
	textures  *renderer.TextureCache
	world     *renderer.WorldRenderer
	terrain   *renderer.TerrainRenderer
	hud       *ui.HUD
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlsPanel
	tuning    *ui.TuningPanel
	perfPanel *ui.PerfPanel
	window    *ui.WindowPanel
	inspect   *inspector.Inspector
}

func newApp(opts game.Options, prefs *settings.Manager) (*app, error) {
	cfg := opts.Config
	sw, sh := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	a := &app{
		opts:      opts,
		prefs:     prefs,
		sky:       renderer.NewSkyRenderer(sw, sh),
		textures:  renderer.NewTextureCache(cfg.World.AssetsDir, opts.Logger),
		terrain:   renderer.NewTerrainRenderer(cfg.Derived.CellW, cfg.Derived.CellH),
		hud:       ui.NewHUD(),
		overlays:  ui.NewOverlayRegistry(),
		controls:  ui.NewControlsPanel(10, 100, 200),
		tuning:    ui.NewTuningPanel(10, 230, 260),
		perfPanel: ui.NewPerfPanel(sw-290, 16),
		window:    ui.NewWindowPanel(sw-250, 10),
		inspect:   inspector.NewInspector(sw),
	}
	a.world = renderer.NewWorldRenderer(a.textures)
	a.overlays.ApplyToggles(prefs.Toggles())

	if err := a.newGame(opts.Seed); err != nil {
		return nil, err
	}
	return a, nil
}

// newGame replaces the current game with a fresh one for seed.
func (a *app) newGame(seed int64) error {
	if a.game != nil {
		if err := a.game.Unload(); err != nil {
			slog.Warn("unloading game", "error", err)
		}
	}
	opts := a.opts
	opts.Seed = seed
	g, err := game.NewGame(opts)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	a.game = g
	a.recorded = false
	a.inspect.Deselect()

	cfg := opts.Config
	bounds := g.Bounds()
	a.cam = camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, float32(bounds.Max.X), float32(bounds.Max.Y))
	a.followPlayer()
	return nil
}

func (a *app) update() error {
	a.game.RecordFrame()

	if rl.IsWindowResized() {
		w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		a.cam.Resize(float32(w), float32(h))
		a.sky.Resize(w, h)
		a.inspect.Resize(w)
		a.perfPanel.SetPosition(w-290, 16)
		a.window = ui.NewWindowPanel(w-250, 10)
	}

	if a.overlays.HandleKeys() {
		a.saveToggles()
	}
	ui.ApplyCameraKeys(a.cam)
	a.inspect.HandleInput(a.game, a.cam)

	acts := ui.ReadActions()
	if acts.Reset {
		a.recordRun()
		return a.newGame(a.game.Seed())
	}
	if acts.Pause {
		a.paused = !a.paused
	}
	if !a.paused || acts.Step {
		a.game.Step(ui.ReadIntent())
	}
	if a.game.State() != game.Playing {
		a.recordRun()
	}

	a.followPlayer()
	return nil
}

func (a *app) followPlayer() {
	if c, ok := a.game.PlayerCenter(); ok {
		a.cam.Follow(float32(c.X), float32(c.Y))
	}
}

func (a *app) draw() {
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	g := a.game

	rl.BeginDrawing()
	a.sky.Draw(g.Sky())

	rl.BeginMode2D(renderer.Camera2D(a.cam))
	a.world.Draw(g, a.cam)
	a.terrain.Draw(g.Level())
	if a.overlays.IsEnabled(ui.OverlayHitboxes) {
		a.world.DrawHitboxes(g)
	}
	a.inspect.DrawSelectionHighlight(g)
	rl.EndMode2D()

	if a.overlays.IsEnabled(ui.OverlayHUD) {
		data := ui.HUDData{
			Title:    "Kudo",
			Tick:     g.Tick(),
			State:    g.State().String(),
			Grounded: g.Grounded(),
			Speed:    g.Speed(),
			FPS:      rl.GetFPS(),
			Paused:   a.paused,
			Seed:     g.Seed(),
		}
		if best, ok := a.prefs.Best(); ok {
			data.Best = formatRun(best)
		}
		a.hud.Draw(data)
		a.controls.Draw(a.overlays)
		a.hud.DrawControls(sw, sh, ui.ControlsHelp)
	}
	if a.overlays.IsEnabled(ui.OverlayTuning) {
		acts, hit := a.tuning.Draw(g, a.paused)
		if acts.Pause {
			a.paused = !a.paused
		}
		if hit {
			a.overlays.Toggle(ui.OverlayHitboxes)
			a.saveToggles()
		}
		if acts.Reset {
			// Rebuilt after the frame ends.
			defer a.resetAfterFrame()
		}
	}
	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perfPanel.Draw(ui.PerfPanelData{Stats: g.Perf(), Registry: g.Systems()})
	}
	if a.overlays.IsEnabled(ui.OverlayWindow) {
		a.window.Draw(g.LastWindow())
	}
	a.inspect.Draw(g)
	a.hud.DrawBanner(sw, sh, g.State().String())

	rl.EndDrawing()
}

func (a *app) resetAfterFrame() {
	a.recordRun()
	if err := a.newGame(a.game.Seed()); err != nil {
		slog.Error("reset failed", "error", err)
	}
}

// recordRun offers a finished or abandoned run to the best-run record once.
func (a *app) recordRun() {
	if a.recorded || a.game.Tick() == 0 {
		return
	}
	a.recorded = true
	run := settings.Run{
		Seed:  a.game.Seed(),
		Ticks: a.game.Tick(),
		Won:   a.game.State() == game.Won,
	}
	if a.prefs.RecordRun(run) {
		if err := a.prefs.Save(); err != nil {
			slog.Warn("saving settings", "error", err)
		}
	}
}

func (a *app) saveToggles() {
	a.prefs.SetToggles(a.overlays.Toggles())
	if err := a.prefs.Save(); err != nil {
		slog.Warn("saving settings", "error", err)
	}
}

func (a *app) close() {
	a.recordRun()
	if err := a.game.Unload(); err != nil {
		slog.Warn("unloading game", "error", err)
	}
	a.textures.Unload()
}

func formatRun(r settings.Run) string {
	outcome := "survived"
	if r.Won {
		outcome = "won"
	}
	return fmt.Sprintf("%s in %d ticks (seed %d)", outcome, r.Ticks, r.Seed)
}
