package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Pipes.Gap != 200 {
		t.Errorf("pipes.gap = %v, want 200", cfg.Pipes.Gap)
	}
	if cfg.Physics.MaxDisplacement != 16 {
		t.Errorf("physics.max_displacement = %v, want 16", cfg.Physics.MaxDisplacement)
	}
	if cfg.Ground.Y != 730 {
		t.Errorf("ground.y = %v, want 730", cfg.Ground.Y)
	}
	if cfg.Derived.GroundY32 != 730 {
		t.Errorf("derived ground y = %v, want 730", cfg.Derived.GroundY32)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flap.yaml")
	data := []byte("pipes:\n  gap: 160\nevolution:\n  num_generations: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Pipes.Gap != 160 {
		t.Errorf("pipes.gap = %v, want 160", cfg.Pipes.Gap)
	}
	if cfg.Evolution.NumGenerations != 5 {
		t.Errorf("evolution.num_generations = %d, want 5", cfg.Evolution.NumGenerations)
	}
	// Untouched fields keep their defaults
	if cfg.Pipes.Velocity != 5 {
		t.Errorf("pipes.velocity = %v, want default 5", cfg.Pipes.Velocity)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"inverted gap range", "pipes:\n  gap_min: 400\n  gap_max: 50\n"},
		{"zero gap", "pipes:\n  gap: 0\n"},
		{"zero ground", "ground:\n  y: 0\n"},
		{"zero animation", "bird:\n  animation_time: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Fitness.PassReward = 7

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot failed: %v", err)
	}
	if reloaded.Fitness.PassReward != 7 {
		t.Errorf("pass_reward = %v, want 7", reloaded.Fitness.PassReward)
	}
}
