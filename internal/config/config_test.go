package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/scisim/internal/control"
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/scene"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation != "circuit" {
		t.Errorf("expected simulation circuit, got %s", cfg.Simulation)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no simulation", func(c *Config) { c.Simulation = "" }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"huge fps", func(c *Config) { c.FPS = 5000 }},
		{"nan speed", func(c *Config) { c.Speed = math.NaN() }},
		{"fast speed", func(c *Config) { c.Speed = 11 }},
		{"negative time", func(c *Config) { c.Time = -1 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(cfg)
		if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Simulation = "reflection"
	cfg.Params = map[string]float64{"incidence": 45}
	cfg.Toggles = map[string]bool{"from_inside": true}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Simulation != "reflection" {
		t.Errorf("expected reflection, got %s", loaded.Simulation)
	}
	if loaded.Params["incidence"] != 45 {
		t.Errorf("expected incidence 45, got %f", loaded.Params["incidence"])
	}
	if !loaded.Toggles["from_inside"] {
		t.Error("expected from_inside to survive the round trip")
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.yaml")
	if err := os.WriteFile(path, []byte("simulation: motor\nspeed: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected default fps, got %d", cfg.FPS)
	}
	if cfg.Speed != 2 {
		t.Errorf("expected speed 2, got %f", cfg.Speed)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("simulation: motor\nfps: -3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyAngleInDegrees(t *testing.T) {
	sim, err := scene.Get("reflection")
	if err != nil {
		t.Fatal(err)
	}
	panel := control.NewPanel(sim.Schema())
	cfg := DefaultConfig()
	cfg.Params = map[string]float64{"incidence": 60}
	cfg.Choices = map[string]string{"material": "glass"}
	if err := cfg.Apply(panel); err != nil {
		t.Fatal(err)
	}
	got := panel.Params().Float("incidence")
	if math.Abs(got-math.Pi/3) > 1e-9 {
		t.Errorf("expected pi/3, got %f", got)
	}
	if panel.Params().Enum("material") != "glass" {
		t.Errorf("expected glass, got %s", panel.Params().Enum("material"))
	}
}

func TestApplyUnknownParam(t *testing.T) {
	sim, _ := scene.Get("circuit")
	panel := control.NewPanel(sim.Schema())
	cfg := DefaultConfig()
	cfg.Params = map[string]float64{"voltage": 12, "mass": 3}
	if err := cfg.Apply(panel); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("circuit", "series")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["r2"] != 6 {
		t.Errorf("expected r2 6, got %f", cfg.Params["r2"])
	}

	cfg.Params["r2"] = 40
	if GetPreset("circuit", "series").Params["r2"] != 6 {
		t.Error("preset should not change when a copy is modified")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("circuit", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "series")
	if cfg != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("optics")
	if len(presets) != 5 {
		t.Errorf("expected 5 optics presets, got %d", len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("expected sorted names, got %v", presets)
		}
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestEveryPresetApplies(t *testing.T) {
	for simID, named := range Presets {
		sim, err := scene.Get(simID)
		if err != nil {
			t.Errorf("preset group %s: %v", simID, err)
			continue
		}
		for name, cfg := range named {
			if cfg.Simulation != simID {
				t.Errorf("%s/%s: expected simulation %s, got %s", simID, name, simID, cfg.Simulation)
			}
			if err := cfg.Apply(control.NewPanel(sim.Schema())); err != nil {
				t.Errorf("%s/%s: %v", simID, name, err)
			}
		}
	}
}

func TestShortPresetIsInvalid(t *testing.T) {
	sim, _ := scene.Get("circuit")
	panel := control.NewPanel(sim.Schema())
	if err := GetPreset("circuit", "short").Apply(panel); err != nil {
		t.Fatal(err)
	}
	res := sim.Compute(panel.Params(), dynamo.AnimationState{})
	if !errors.Is(res.Err(), dynamo.ErrShortCircuit) {
		t.Errorf("expected ErrShortCircuit, got %v", res.Err())
	}
}

func TestAssign(t *testing.T) {
	sim, err := scene.Get("circuit")
	if err != nil {
		t.Fatal(err)
	}
	schema := sim.Schema()

	tests := []struct {
		kv      string
		wantErr error
	}{
		{"voltage=12", nil},
		{" topology = parallel ", nil},
		{"show_labels=false", nil},
		{"voltage", dynamo.ErrInvalidConfig},
		{"mass=3", dynamo.ErrUnknownParam},
		{"topology=star", dynamo.ErrInvalidOption},
	}
	cfg := DefaultConfig()
	for _, tt := range tests {
		err := cfg.Assign(schema, tt.kv)
		if tt.wantErr == nil && err != nil {
			t.Errorf("%q: unexpected error %v", tt.kv, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("%q: expected %v, got %v", tt.kv, tt.wantErr, err)
		}
	}
	if cfg.Params["voltage"] != 12 {
		t.Errorf("expected voltage 12, got %v", cfg.Params["voltage"])
	}
	if cfg.Choices["topology"] != "parallel" {
		t.Errorf("expected parallel, got %q", cfg.Choices["topology"])
	}
	if on, ok := cfg.Toggles["show_labels"]; !ok || on {
		t.Errorf("expected show_labels=false, got %v", on)
	}
	if err := cfg.Assign(schema, "voltage=abc"); err == nil {
		t.Error("expected parse error")
	}
}

func TestAssignAngleStaysInDegrees(t *testing.T) {
	sim, _ := scene.Get("reflection")
	cfg := DefaultConfig()
	if err := cfg.Assign(sim.Schema(), "incidence=30deg"); err != nil {
		t.Fatal(err)
	}
	panel := control.NewPanel(sim.Schema())
	if err := cfg.Apply(panel); err != nil {
		t.Fatal(err)
	}
	if got := panel.Params().Float("incidence"); math.Abs(got-math.Pi/6) > 1e-9 {
		t.Errorf("expected pi/6, got %f", got)
	}
}
