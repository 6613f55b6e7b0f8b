package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/kudo/tags"
)

func TestDefaultsLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, want 0.5", cfg.Physics.Gravity)
	}
	if cfg.Physics.MaxVelocity != (Vec2{X: 10, Y: 10}) {
		t.Errorf("max velocity = %v, want (10,10)", cfg.Physics.MaxVelocity)
	}
	if cfg.Derived.Solid != tags.Of(tags.Tiles) {
		t.Errorf("solid = %v, want tiles", cfg.Derived.Solid)
	}
	if cfg.Derived.CellW != 67.5 {
		t.Errorf("cell width = %v, want 67.5", cfg.Derived.CellW)
	}
	if cfg.Derived.WorldW != 67.5*60 {
		t.Errorf("world width = %v, want %v", cfg.Derived.WorldW, 67.5*60)
	}
}

func TestUserFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	body := "physics:\n  gravity: 0.8\nplayer:\n  speed: 4\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Gravity != 0.8 {
		t.Errorf("gravity = %v, want 0.8", cfg.Physics.Gravity)
	}
	if cfg.Player.Speed != 4 {
		t.Errorf("speed = %v, want 4", cfg.Player.Speed)
	}
	// untouched fields keep their defaults
	if cfg.Physics.Weight != 5 {
		t.Errorf("weight = %v, want default 5", cfg.Physics.Weight)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, body, wantErr string
	}{
		{"unknown tag", "physics:\n  solid: [lava]\n", "unknown tag"},
		{"bad generator", "level:\n  generator: maze\n", "generator"},
		{"empty grid", "world:\n  cols: 0\n", "grid"},
		{"zero bush slowdown", "player:\n  bush_slowdown: 0\n", "bush_slowdown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Player.Speed = 12

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Player.Speed != 12 {
		t.Errorf("speed = %v, want 12", back.Player.Speed)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
