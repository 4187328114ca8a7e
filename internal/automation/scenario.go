// Package automation runs scripted export jobs: stills, animations,
// traces and parameter sweeps, each described in YAML.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scisim/internal/config"
	"github.com/san-kum/scisim/internal/dynamo"
)

type Kind string

const (
	KindRender  Kind = "render"
	KindAnimate Kind = "animate"
	KindTrace   Kind = "trace"
	KindSweep   Kind = "sweep"
)

// Scenario defines a scripted list of jobs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Jobs        []Job  `yaml:"jobs"`
}

// SweepSpec describes a sweep job. From and To are in the parameter's
// display units (degrees for angles).
type SweepSpec struct {
	Param    string  `yaml:"param"`
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Steps    int     `yaml:"steps"`
	Quantity string  `yaml:"quantity"`
}

// Job is one export. The run settings are inlined so a job reads like a
// config file with a kind and an output.
type Job struct {
	Kind          Kind       `yaml:"kind"`
	Preset        string     `yaml:"preset,omitempty"`
	Output        string     `yaml:"output"`
	Frames        int        `yaml:"frames,omitempty"`
	Workers       int        `yaml:"workers,omitempty"`
	Sweep         *SweepSpec `yaml:"sweep,omitempty"`
	config.Config `yaml:",inline"`
}

// UnmarshalYAML starts every job from the default config so omitted
// settings keep their defaults.
func (j *Job) UnmarshalYAML(n *yaml.Node) error {
	type plain Job
	p := plain{Config: *config.DefaultConfig()}
	if err := n.Decode(&p); err != nil {
		return err
	}
	*j = Job(p)
	return nil
}

func (j Job) Validate() error {
	if j.Output == "" {
		return fmt.Errorf("%w: %s job needs an output", dynamo.ErrInvalidConfig, j.Kind)
	}
	switch j.Kind {
	case KindRender, KindTrace:
	case KindAnimate:
		if j.Frames <= 0 {
			return fmt.Errorf("%w: animate needs frames > 0", dynamo.ErrInvalidConfig)
		}
	case KindSweep:
		if j.Sweep == nil {
			return fmt.Errorf("%w: sweep job needs a sweep block", dynamo.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown job kind %q", dynamo.ErrInvalidConfig, j.Kind)
	}
	return j.Config.Validate()
}

// LoadScenario loads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, job := range scenario.Jobs {
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}
	}
	return &scenario, nil
}

// Outcome reports one finished job.
type Outcome struct {
	Job    Job
	Output string
	Frames int
}

// RunScenario executes all jobs in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = slog.Default()
	}
	outcomes := make([]Outcome, 0, len(scenario.Jobs))

	for i, job := range scenario.Jobs {
		logger.Info("running job", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Jobs),
			"kind", job.Kind, "simulation", job.Simulation)

		var out Outcome
		var err error
		switch job.Kind {
		case KindRender:
			out, err = Still(job)
		case KindAnimate:
			out, err = Animate(ctx, job, logger)
		case KindTrace:
			out, err = Trace(ctx, job)
		case KindSweep:
			out, err = SweepChart(ctx, job)
		default:
			err = fmt.Errorf("%w: unknown job kind %q", dynamo.ErrInvalidConfig, job.Kind)
		}
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}
