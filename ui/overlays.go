package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kudo/settings"
)

// Overlay is a toggleable layer of the window.
type Overlay uint8

const (
	OverlayHUD Overlay = iota
	OverlayTuning
	OverlayHitboxes
	OverlayPerf
	OverlayWindow
	numOverlays
)

// OverlayGroup orders overlays in the controls panel.
type OverlayGroup uint8

const (
	GroupDisplay OverlayGroup = iota
	GroupDebug
)

func (g OverlayGroup) String() string {
	if g == GroupDebug {
		return "Debug"
	}
	return "Display"
}

// OverlayInfo is the static description of an overlay.
type OverlayInfo struct {
	Name     string
	Key      int32
	KeyLabel string
	Group    OverlayGroup
	Excludes Overlay // switched off when this one turns on; equal to itself for none
}

var overlayInfo = [numOverlays]OverlayInfo{
	OverlayHUD:      {Name: "HUD", Key: rl.KeyF1, KeyLabel: "F1", Group: GroupDisplay, Excludes: OverlayHUD},
	OverlayTuning:   {Name: "Tuning", Key: rl.KeyTab, KeyLabel: "Tab", Group: GroupDisplay, Excludes: OverlayTuning},
	OverlayHitboxes: {Name: "Hitboxes", Key: rl.KeyH, KeyLabel: "H", Group: GroupDebug, Excludes: OverlayHitboxes},
	OverlayPerf:     {Name: "Step Perf", Key: rl.KeyF3, KeyLabel: "F3", Group: GroupDebug, Excludes: OverlayWindow},
	OverlayWindow:   {Name: "Window Stats", Key: rl.KeyF4, KeyLabel: "F4", Group: GroupDebug, Excludes: OverlayPerf},
}

// Spec returns the description of o.
func (o Overlay) Info() OverlayInfo { return overlayInfo[o] }

// OverlayRegistry holds which overlays are on as a bit set.
type OverlayRegistry struct {
	on uint32
}

// NewOverlayRegistry returns a registry with every overlay off.
func NewOverlayRegistry() *OverlayRegistry {
	return &OverlayRegistry{}
}

// IsEnabled reports whether o is on.
func (r *OverlayRegistry) IsEnabled(o Overlay) bool {
	return o < numOverlays && r.on&(1<<o) != 0
}

// SetEnabled turns o on or off. Turning it on turns off the overlay it
// excludes.
func (r *OverlayRegistry) SetEnabled(o Overlay, on bool) {
	if o >= numOverlays {
		return
	}
	if !on {
		r.on &^= 1 << o
		return
	}
	r.on |= 1 << o
	if ex := overlayInfo[o].Excludes; ex != o {
		r.on &^= 1 << ex
	}
}

// Toggle flips o and returns its new state.
func (r *OverlayRegistry) Toggle(o Overlay) bool {
	r.SetEnabled(o, !r.IsEnabled(o))
	return r.IsEnabled(o)
}

// InGroup lists the overlays of g in declaration order.
func InGroup(g OverlayGroup) []Overlay {
	var out []Overlay
	for o := range numOverlays {
		if overlayInfo[o].Group == g {
			out = append(out, o)
		}
	}
	return out
}

// HandleKeys toggles every overlay whose key was pressed this frame and
// reports whether anything changed.
func (r *OverlayRegistry) HandleKeys() bool {
	before := r.on
	for o := range numOverlays {
		if rl.IsKeyPressed(overlayInfo[o].Key) {
			r.Toggle(o)
		}
	}
	return r.on != before
}

// ApplyToggles restores the persisted overlays.
func (r *OverlayRegistry) ApplyToggles(t settings.Toggles) {
	r.SetEnabled(OverlayHUD, t.ShowHUD)
	r.SetEnabled(OverlayHitboxes, t.ShowHitboxes)
	r.SetEnabled(OverlayTuning, t.ShowPanel)
}

// Toggles returns the persisted subset of the overlay state.
func (r *OverlayRegistry) Toggles() settings.Toggles {
	return settings.Toggles{
		ShowHUD:      r.IsEnabled(OverlayHUD),
		ShowHitboxes: r.IsEnabled(OverlayHitboxes),
		ShowPanel:    r.IsEnabled(OverlayTuning),
	}
}
