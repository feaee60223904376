package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Grid.CellX != 32 || cfg.Grid.CellY != 32 {
		t.Errorf("grid cells = %d,%d, want 32,32", cfg.Grid.CellX, cfg.Grid.CellY)
	}
	if cfg.Physics.Gravity != 9.8 {
		t.Errorf("gravity = %v, want 9.8", cfg.Physics.Gravity)
	}
	if cfg.Derived.DT32 <= 0 {
		t.Errorf("derived dt = %v, want > 0", cfg.Derived.DT32)
	}
	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("derived screen width = %v, want %v", cfg.Derived.ScreenW32, cfg.Screen.Width)
	}
}

func TestLoadUserOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("physics:\n  gravity: 4.9\nship:\n  drift_speed: 2.0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Physics.Gravity != 4.9 {
		t.Errorf("gravity = %v, want override 4.9", cfg.Physics.Gravity)
	}
	if cfg.Ship.DriftSpeed != 2.0 {
		t.Errorf("drift speed = %v, want override 2.0", cfg.Ship.DriftSpeed)
	}
	// Fields the override file does not name keep their defaults.
	if cfg.Player.WalkSpeed != 4.0 {
		t.Errorf("walk speed = %v, want default 4.0", cfg.Player.WalkSpeed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load with missing file did not fail")
	}
}
