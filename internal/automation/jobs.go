package automation

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/san-kum/scisim/internal/analysis"
	"github.com/san-kum/scisim/internal/config"
	"github.com/san-kum/scisim/internal/control"
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/export"
	"github.com/san-kum/scisim/internal/metrics"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/sim"
	"github.com/san-kum/scisim/internal/storage"
	"github.com/san-kum/scisim/internal/surface"
)

// Prepare resolves a job's simulation and fills a fresh panel.
func Prepare(job Job) (scene.Simulation, *control.Panel, error) {
	s, err := scene.Get(job.Simulation)
	if err != nil {
		return nil, nil, err
	}
	panel := control.NewPanel(s.Schema())
	if err := Configure(job, panel); err != nil {
		return nil, nil, err
	}
	return s, panel, nil
}

// Configure writes a job's settings into panel: preset values first, then
// the job's own values.
func Configure(job Job, panel *control.Panel) error {
	if job.Preset != "" {
		p := config.GetPreset(job.Simulation, job.Preset)
		if p == nil {
			return fmt.Errorf("%w: no preset %q for %s", dynamo.ErrInvalidConfig, job.Preset, job.Simulation)
		}
		if err := p.Apply(panel); err != nil {
			return fmt.Errorf("preset %s: %w", job.Preset, err)
		}
	}
	return job.Config.Apply(panel)
}

// StateAt is the animation state after t units of elapsed time.
func StateAt(t, speed float64) dynamo.AnimationState {
	return dynamo.AnimationState{ElapsedTime: t, ElapsedAngle: dynamo.NormalizeAngle(t), Speed: speed}
}

// Still renders one frame at job.Time to a PNG or SVG file.
func Still(job Job) (Outcome, error) {
	out := Outcome{Job: job, Output: job.Output, Frames: 1}
	s, panel, err := Prepare(job)
	if err != nil {
		return out, err
	}
	format, err := export.FormatOf(job.Output)
	if err != nil {
		return out, err
	}
	frame := dynamo.Frame{Params: panel.Params(), Anim: StateAt(job.Time, job.Speed)}
	pal := scene.GetPalette(job.Theme)

	switch format {
	case export.SVG:
		svg := surface.NewSVG()
		frame.Width, frame.Height = svg.Size()
		scene.Render(svg, s, frame, pal)
		return out, export.WriteSVG(job.Output, svg)
	case export.PNG:
		r := surface.NewRaster(job.Width, job.Height)
		frame.Width, frame.Height = r.Size()
		scene.Render(r, s, frame, pal)
		return out, export.WritePNG(job.Output, r)
	}
	return out, fmt.Errorf("%w: render writes png or svg, got %s", dynamo.ErrInvalidConfig, format)
}

func timeline(s scene.Simulation, job Job, frames int) []dynamo.AnimationState {
	states := sim.Timeline(frames, s.BaseRate(), job.Speed)
	for i := range states {
		states[i].ElapsedTime += job.Time
		states[i].ElapsedAngle = dynamo.NormalizeAngle(states[i].ElapsedAngle + job.Time)
	}
	return states
}

// Animate renders job.Frames frames in parallel and writes a GIF.
func Animate(ctx context.Context, job Job, logger *slog.Logger) (Outcome, error) {
	out := Outcome{Job: job, Output: job.Output, Frames: job.Frames}
	s, panel, err := Prepare(job)
	if err != nil {
		return out, err
	}
	if f, err := export.FormatOf(job.Output); err != nil || f != export.GIF {
		return out, fmt.Errorf("%w: animate writes gif, got %q", dynamo.ErrInvalidConfig, job.Output)
	}
	b := &sim.Batch{
		Sim:     s,
		Params:  panel.Params(),
		Palette: scene.GetPalette(job.Theme),
		Width:   job.Width,
		Height:  job.Height,
		Workers: job.Workers,
		Logger:  logger,
	}
	frames, _, err := b.Render(ctx, timeline(s, job, job.Frames))
	if err != nil {
		return out, err
	}
	imgs := make([]image.Image, len(frames))
	for i, f := range frames {
		imgs[i] = f
	}
	return out, export.WriteGIF(job.Output, imgs, export.DelayFor(float64(job.FPS)))
}

// Trace computes job.Frames results without drawing and saves them as a
// run under the job's output directory.
func Trace(ctx context.Context, job Job) (Outcome, error) {
	out := Outcome{Job: job}
	s, panel, err := Prepare(job)
	if err != nil {
		return out, err
	}
	n := job.Frames
	if n <= 0 {
		n = 100
	}
	states := timeline(s, job, n)
	results := make([]dynamo.Result, len(states))
	ms := metrics.ForSimulation(s.ID())
	for i, st := range states {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		results[i] = s.Compute(panel.Params(), st)
		f := dynamo.Frame{Params: panel.Params(), Anim: st, Index: i}
		for _, m := range ms {
			m.Observe(f, results[i])
		}
	}

	p := panel.Params()
	meta := storage.RunMetadata{
		Simulation: s.ID(),
		Frames:     n,
		Speed:      job.Speed,
		BaseRate:   s.BaseRate(),
		Params:     p.Floats(),
		Choices:    p.Enums(),
		Toggles:    p.Toggles(),
		Metrics:    map[string]float64{},
	}
	for _, m := range ms {
		meta.Metrics[m.Name()] = m.Value()
	}

	store := storage.New(job.Output)
	if err := store.Init(); err != nil {
		return out, err
	}
	id, err := store.Save(meta, storage.NewTrace(states, results))
	if err != nil {
		return out, err
	}
	out.Output, out.Frames = store.TracePath(id), n
	return out, nil
}

// SweepChart runs a parameter sweep and saves it as a PNG chart.
func SweepChart(ctx context.Context, job Job) (Outcome, error) {
	out := Outcome{Job: job, Output: job.Output}
	if job.Sweep == nil {
		return out, fmt.Errorf("%w: missing sweep block", dynamo.ErrInvalidConfig)
	}
	s, panel, err := Prepare(job)
	if err != nil {
		return out, err
	}
	sw := analysis.Sweep{
		Sim:      s,
		Param:    job.Sweep.Param,
		From:     job.Sweep.From,
		To:       job.Sweep.To,
		Steps:    job.Sweep.Steps,
		Quantity: job.Sweep.Quantity,
		Base:     panel,
		Anim:     StateAt(job.Time, job.Speed),
	}
	pts, err := sw.Run(ctx)
	if err != nil {
		return out, err
	}
	out.Frames = len(pts)

	xlabel, ylabel := axisLabel(s, job.Sweep.Param), job.Sweep.Quantity
	if res := s.Compute(panel.Params(), sw.Anim); res.Valid() {
		for _, q := range res.Quantities() {
			if q.Name == job.Sweep.Quantity {
				ylabel = withUnit(q.Label, q.Unit)
			}
		}
	}
	chart, err := analysis.Chart(pts, fmt.Sprintf("%s: %s", s.Title(), ylabel), xlabel, ylabel)
	if err != nil {
		return out, err
	}
	return out, analysis.SavePNG(chart, 8, 6, job.Output)
}

func axisLabel(s scene.Simulation, param string) string {
	spec, ok := s.Schema().Lookup(param)
	if !ok {
		return param
	}
	if spec.Kind == dynamo.KindAngle {
		return withUnit(spec.Label, "°")
	}
	return withUnit(spec.Label, spec.Unit)
}

func withUnit(label, unit string) string {
	if unit == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, unit)
}
