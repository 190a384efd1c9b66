package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ev := cfg.Evolution
	if ev.DesiredNumber != 150 || ev.PopulationSize != 8 || ev.CrossRange != 1 || ev.MaxNumber != 255 {
		t.Errorf("unexpected evolution defaults: %+v", ev)
	}
	if cfg.Derived.Sleep != time.Second {
		t.Errorf("derived sleep = %v, want 1s", cfg.Derived.Sleep)
	}
	if cfg.Screen.Width != 1080 || cfg.Screen.Height != 800 {
		t.Errorf("unexpected screen size %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("evolution:\n  desired_number: 42\n  sleep: 0.25\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Evolution.DesiredNumber != 42 {
		t.Errorf("desired = %d, want 42", cfg.Evolution.DesiredNumber)
	}
	if cfg.Evolution.PopulationSize != 8 {
		t.Errorf("population = %d, want default 8", cfg.Evolution.PopulationSize)
	}
	if cfg.Derived.Sleep != 250*time.Millisecond {
		t.Errorf("derived sleep = %v, want 250ms", cfg.Derived.Sleep)
	}
}

func TestNormalizeClamps(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Evolution.DesiredNumber = 999
	cfg.Evolution.PopulationSize = 0
	cfg.Evolution.Sleep = -3
	cfg.Normalize()

	if cfg.Evolution.DesiredNumber != 255 {
		t.Errorf("desired = %d, want 255", cfg.Evolution.DesiredNumber)
	}
	if cfg.Evolution.PopulationSize != 2 {
		t.Errorf("population = %d, want 2", cfg.Evolution.PopulationSize)
	}
	if cfg.Derived.Sleep != 0 {
		t.Errorf("derived sleep = %v, want 0", cfg.Derived.Sleep)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Evolution.DesiredNumber = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Evolution.DesiredNumber != 77 {
		t.Errorf("desired = %d, want 77", loaded.Evolution.DesiredNumber)
	}
}
