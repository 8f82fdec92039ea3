package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt != 0.0166 {
		t.Errorf("expected dt 0.0166, got %f", cfg.Dt)
	}
	if cfg.TrimMode != "full" {
		t.Errorf("expected trim mode full, got %s", cfg.TrimMode)
	}
	if cfg.Initial.Altitude <= 0 {
		t.Error("initial altitude should be positive")
	}
	if cfg.Output.SampleRate <= 0 {
		t.Error("sample rate should be positive")
	}
}

func TestTrimModeValue(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		expected fdm.TrimMode
		wantErr  bool
	}{
		{"full", "full", fdm.TrimModeFull, false},
		{"longitudinal", "longitudinal", fdm.TrimModeLongitudinal, false},
		{"ground", "ground", fdm.TrimModeGround, false},
		{"unknown", "sideways", fdm.TrimModeFull, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.TrimMode = tt.mode

			mode, err := cfg.TrimModeValue()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, mode)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huginn.yaml")

	cfg := DefaultConfig()
	cfg.TrimMode = "longitudinal"
	cfg.StartPaused = true
	cfg.Initial.Altitude = 1200.0

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.TrimMode != "longitudinal" {
		t.Errorf("expected trim mode longitudinal, got %s", loaded.TrimMode)
	}
	if !loaded.StartPaused {
		t.Error("expected start_paused to survive the round trip")
	}
	if loaded.Initial.Altitude != 1200.0 {
		t.Errorf("expected altitude 1200, got %f", loaded.Initial.Altitude)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")

	partial := []byte("trim_mode: ground\n")
	if err := os.WriteFile(path, partial, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.TrimMode != "ground" {
		t.Errorf("expected trim mode ground, got %s", cfg.TrimMode)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("expected default dt to survive, got %f", cfg.Dt)
	}
	if cfg.Initial.Airspeed != DefaultAirspeed {
		t.Errorf("expected default airspeed to survive, got %f", cfg.Initial.Airspeed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("approach")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.TrimMode != "longitudinal" {
		t.Errorf("expected trim mode longitudinal, got %s", cfg.TrimMode)
	}
	if cfg.Initial.Altitude != 150.0 {
		t.Errorf("expected altitude 150, got %f", cfg.Initial.Altitude)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Fatal("expected presets")
	}

	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}
