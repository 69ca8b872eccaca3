package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Shape.Count != 8000 {
		t.Errorf("Shape.Count = %d, want 8000", cfg.Shape.Count)
	}
	if cfg.Shape.Revolutions != 20 {
		t.Errorf("Shape.Revolutions = %v, want 20", cfg.Shape.Revolutions)
	}
	if cfg.Gesture.LockMillis != 2000 {
		t.Errorf("Gesture.LockMillis = %d, want 2000", cfg.Gesture.LockMillis)
	}
	if cfg.Shape.ShellRadiusMin >= cfg.Shape.ShellRadiusMax {
		t.Errorf("shell radii inverted: min=%v max=%v",
			cfg.Shape.ShellRadiusMin, cfg.Shape.ShellRadiusMax)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	user := []byte("shape:\n  count: 500\ngesture:\n  lock_millis: 250\n")
	if err := os.WriteFile(path, user, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	// Fields present in the file override the defaults.
	if cfg.Shape.Count != 500 {
		t.Errorf("Shape.Count = %d, want 500", cfg.Shape.Count)
	}
	if cfg.Gesture.LockMillis != 250 {
		t.Errorf("Gesture.LockMillis = %d, want 250", cfg.Gesture.LockMillis)
	}

	// Absent fields keep the embedded defaults.
	if cfg.Shape.Span != 7.0 {
		t.Errorf("Shape.Span = %v, want 7.0", cfg.Shape.Span)
	}
	if cfg.Twinkle.Base != 1.0 {
		t.Errorf("Twinkle.Base = %v, want 1.0", cfg.Twinkle.Base)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestComputeDerived(t *testing.T) {
	tests := []struct {
		name   string
		fps    int
		wantDT float64
	}{
		{"60fps", 60, 1.0 / 60.0},
		{"30fps", 30, 1.0 / 30.0},
		{"zero falls back to 60", 0, 1.0 / 60.0},
		{"negative falls back to 60", -5, 1.0 / 60.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.Screen.TargetFPS = tt.fps
			c.Screen.Width = 1280
			c.Screen.Height = 720
			c.computeDerived()

			if math.Abs(c.Derived.DT-tt.wantDT) > 1e-12 {
				t.Errorf("Derived.DT = %v, want %v", c.Derived.DT, tt.wantDT)
			}
			if c.Derived.ScreenW32 != 1280 || c.Derived.ScreenH32 != 720 {
				t.Errorf("derived screen size = %vx%v, want 1280x720",
					c.Derived.ScreenW32, c.Derived.ScreenH32)
			}
		})
	}
}
