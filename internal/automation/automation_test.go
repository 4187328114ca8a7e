package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/scisim/internal/config"
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeScenario(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenarioDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: defaults
jobs:
  - kind: render
    simulation: motor
    output: motor.png
    params:
      current: 4
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	job := sc.Jobs[0]
	if job.Width != config.DefaultWidth || job.FPS != config.DefaultFPS {
		t.Errorf("expected defaults, got %dx%d at %d fps", job.Width, job.Height, job.FPS)
	}
	if job.Params["current"] != 4 {
		t.Errorf("expected current 4, got %f", job.Params["current"])
	}
}

func TestLoadScenarioRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown kind", "jobs:\n  - {kind: film, simulation: motor, output: a.mp4}\n"},
		{"no output", "jobs:\n  - {kind: render, simulation: motor}\n"},
		{"animate without frames", "jobs:\n  - {kind: animate, simulation: motor, output: a.gif}\n"},
		{"sweep without block", "jobs:\n  - {kind: sweep, simulation: motor, output: a.png}\n"},
		{"bad fps", "jobs:\n  - {kind: render, simulation: motor, output: a.png, fps: 0}\n"},
	}
	for _, tt := range tests {
		path := writeScenario(t, t.TempDir(), tt.body)
		if _, err := LoadScenario(path); !errors.Is(err, dynamo.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestPreparePresetThenOverrides(t *testing.T) {
	job := Job{Preset: "parallel", Config: *config.DefaultConfig()}
	job.Simulation = "circuit"
	job.Params = map[string]float64{"r2": 12}
	_, panel, err := Prepare(job)
	if err != nil {
		t.Fatal(err)
	}
	p := panel.Params()
	if p.Enum("topology") != "parallel" {
		t.Errorf("expected parallel from the preset, got %s", p.Enum("topology"))
	}
	if p.Float("r2") != 12 {
		t.Errorf("expected job override r2 12, got %f", p.Float("r2"))
	}
	if p.Float("voltage") != 12 {
		t.Errorf("expected preset voltage 12, got %f", p.Float("voltage"))
	}

	job.Preset = "missing"
	if _, _, err := Prepare(job); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for a missing preset, got %v", err)
	}
	job.Preset, job.Simulation = "", "pendulum"
	if _, _, err := Prepare(job); !errors.Is(err, dynamo.ErrUnknownSimulation) {
		t.Errorf("expected ErrUnknownSimulation, got %v", err)
	}
}

func TestStateAt(t *testing.T) {
	st := StateAt(3*math.Pi, 2)
	if st.ElapsedTime != 3*math.Pi {
		t.Errorf("expected elapsed time 3π, got %f", st.ElapsedTime)
	}
	if math.Abs(st.ElapsedAngle-math.Pi) > 1e-9 {
		t.Errorf("expected angle π, got %f", st.ElapsedAngle)
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	body := fmt.Sprintf(`
name: everything
jobs:
  - kind: render
    simulation: circuit
    preset: series
    output: %[1]s/circuit.png
    width: 160
    height: 120
  - kind: render
    simulation: optics
    output: %[1]s/optics.svg
  - kind: animate
    simulation: motor
    output: %[1]s/motor.gif
    frames: 4
    workers: 2
    width: 80
    height: 60
  - kind: trace
    simulation: lunar-phases
    output: %[1]s/runs
    frames: 30
    speed: 2
  - kind: sweep
    simulation: circuit
    output: %[1]s/sweep.png
    sweep:
      param: voltage
      from: 0
      to: 24
      steps: 5
      quantity: current
`, dir)
	sc, err := LoadScenario(writeScenario(t, dir, body))
	if err != nil {
		t.Fatal(err)
	}
	outs, err := RunScenario(context.Background(), sc, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 5 {
		t.Fatalf("expected 5 outcomes, got %d", len(outs))
	}
	for _, o := range outs {
		info, err := os.Stat(o.Output)
		if err != nil {
			t.Errorf("%s: %v", o.Job.Kind, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s: empty output %s", o.Job.Kind, o.Output)
		}
	}

	tr, err := storage.LoadTrace(outs[3].Output)
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Rows) != 30 {
		t.Errorf("expected 30 trace rows, got %d", len(tr.Rows))
	}
	days, err := tr.Column("day")
	if err != nil {
		t.Fatal(err)
	}
	if days[1] <= days[0] {
		t.Errorf("expected days to advance, got %f then %f", days[0], days[1])
	}
	if outs[4].Frames != 5 {
		t.Errorf("expected 5 sweep samples, got %d", outs[4].Frames)
	}
}

func TestRunScenarioStopsAtFailure(t *testing.T) {
	dir := t.TempDir()
	sc := &Scenario{Name: "broken", Jobs: []Job{
		{Kind: KindRender, Output: filepath.Join(dir, "x.jpg"), Config: *config.DefaultConfig()},
		{Kind: KindRender, Output: filepath.Join(dir, "y.png"), Config: *config.DefaultConfig()},
	}}
	outs, err := RunScenario(context.Background(), sc, quietLogger())
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if len(outs) != 0 {
		t.Errorf("expected no outcomes, got %d", len(outs))
	}
	if _, err := os.Stat(filepath.Join(dir, "y.png")); !os.IsNotExist(err) {
		t.Error("expected later jobs not to run")
	}
}
