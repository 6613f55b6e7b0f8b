// Package settings persists user toggles and the best run between sessions.
package settings

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage keys.
const (
	object      = "kudo"
	propToggles = "toggles"
	propBest    = "best_run"
)

// Toggles are debug and display switches.
type Toggles struct {
	ShowHitboxes bool `yaml:"show_hitboxes"`
	ShowHUD      bool `yaml:"show_hud"`
	ShowPanel    bool `yaml:"show_panel"`
}

// DefaultToggles returns the toggles used when nothing is stored.
func DefaultToggles() Toggles {
	return Toggles{ShowHUD: true}
}

// Run summarizes one finished game.
type Run struct {
	Seed  int64 `yaml:"seed"`
	Ticks int32 `yaml:"ticks"`
	Won   bool  `yaml:"won"`
}

// Better reports whether r beats other: any win beats a loss, faster wins
// beat slower ones, and longer survival beats shorter among losses.
func (r Run) Better(other Run) bool {
	if r.Won != other.Won {
		return r.Won
	}
	if r.Won {
		return r.Ticks < other.Ticks
	}
	return r.Ticks > other.Ticks
}

// Manager loads and saves settings. A nil gdata manager keeps everything in
// memory only.
type Manager struct {
	store   *gdata.Manager
	logger  *slog.Logger
	toggles Toggles
	best    *Run
}

// Open creates a gdata store for appName. Errors are returned so callers can
// fall back to NewManager(nil, ...).
func Open(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("opening settings store: %w", err)
	}
	return m, nil
}

// NewManager creates a manager and loads stored values. Load failures are
// logged and defaults are used.
func NewManager(store *gdata.Manager, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{store: store, logger: logger, toggles: DefaultToggles()}
	if err := m.Load(); err != nil {
		logger.Warn("settings load failed, using defaults", "error", err)
	}
	return m
}

// Persistent reports whether the manager writes to disk.
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Load reads toggles and best run from the store.
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}
	var toggles Toggles
	ok, err := m.load(propToggles, &toggles)
	if err != nil {
		return err
	}
	if ok {
		m.toggles = toggles
	}

	var best Run
	ok, err = m.load(propBest, &best)
	if err != nil {
		return err
	}
	if ok {
		m.best = &best
	}
	return nil
}

func (m *Manager) load(prop string, dst any) (bool, error) {
	if !m.store.ObjectPropExists(object, prop) {
		return false, nil
	}
	data, err := m.store.LoadObjectProp(object, prop)
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", prop, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", prop, err)
	}
	return true, nil
}

// Save writes toggles and best run to the store.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	if err := m.save(propToggles, m.toggles); err != nil {
		return err
	}
	if m.best != nil {
		if err := m.save(propBest, m.best); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) save(prop string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", prop, err)
	}
	if err := m.store.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("saving %s: %w", prop, err)
	}
	return nil
}

// Toggles returns the current toggles.
func (m *Manager) Toggles() Toggles {
	return m.toggles
}

// SetToggles replaces the toggles in memory. Call Save to persist.
func (m *Manager) SetToggles(t Toggles) {
	m.toggles = t
}

// Best returns the best recorded run.
func (m *Manager) Best() (Run, bool) {
	if m.best == nil {
		return Run{}, false
	}
	return *m.best, true
}

// RecordRun keeps r if it beats the stored best and reports whether it did.
func (m *Manager) RecordRun(r Run) bool {
	if m.best != nil && !r.Better(*m.best) {
		return false
	}
	m.best = &r
	m.logger.Info("new best run", "seed", r.Seed, "ticks", r.Ticks, "won", r.Won)
	return true
}
