package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/scisim/internal/automation"
	"github.com/san-kum/scisim/internal/catalog"
	"github.com/san-kum/scisim/internal/control"
	"github.com/san-kum/scisim/internal/export"
	"github.com/san-kum/scisim/internal/gui"
	"github.com/san-kum/scisim/internal/metrics"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/sim"
	"github.com/san-kum/scisim/internal/surface"
	"github.com/san-kum/scisim/internal/viz"
)

// viewerJob resolves the settings for an interactive command and checks
// them once up front, so a bad --set fails before the screen opens.
func viewerJob(cmd *cobra.Command, id string) (scene.Simulation, automation.Job, error) {
	job, err := buildJob(cmd, automation.KindRender, id)
	if err != nil {
		return nil, job, err
	}
	s, _, err := automation.Prepare(job)
	if err != nil {
		return nil, job, err
	}
	return s, job, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	s, job, err := viewerJob(cmd, args[0])
	if err != nil {
		return err
	}
	host, err := sim.NewTickerHost(job.FPS, logger)
	if err != nil {
		return err
	}
	raster := surface.NewRaster(job.Width, job.Height)
	ms := metrics.ForSimulation(s.ID())
	engine := sim.NewEngine(s, host, raster,
		sim.WithLogger(logger),
		sim.WithPalette(scene.GetPalette(job.Theme)),
		sim.WithMetrics(ms...),
	)

	engine.Mount()
	if err := automation.Configure(job, engine.Panel()); err != nil {
		engine.Unmount()
		return err
	}
	engine.SetSpeed(job.Speed)
	engine.Seek(job.Time)
	engine.Start()

	ctx, cancel := signalContext()
	defer cancel()
	ctx, stop := context.WithTimeout(ctx, time.Duration(duration*float64(time.Second)))
	defer stop()

	fmt.Printf("running %s at %d fps for %.1fs...\n", s.ID(), job.FPS, duration)
	start := time.Now()
	ticks, err := host.Run(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		engine.Unmount()
		return err
	}
	state := engine.State()
	last := engine.Result()
	engine.Unmount()

	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("ticks: %d\n", ticks)
	fmt.Printf("elapsed: %.3f\n", state.ElapsedTime)
	fmt.Println("\nmetrics:")
	sort.Slice(ms, func(i, j int) bool { return ms[i].Name() < ms[j].Name() })
	for _, m := range ms {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}
	if last != nil {
		fmt.Println("\nlast frame:")
		if !last.Valid() {
			fmt.Printf("  %s\n", scene.Status(last.Err()))
		}
		for _, q := range last.Quantities() {
			fmt.Printf("  %s\n", scene.FormatQuantity(q))
		}
	}

	if output != "" {
		if err := export.WritePNG(output, raster); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", output)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		entries, err := catalog.Load()
		if err != nil {
			return err
		}
		return viz.RunInteractive(entries, viz.Options{FPS: fps, Theme: theme, Paused: paused, Logger: logger})
	}

	s, job, err := viewerJob(cmd, args[0])
	if err != nil {
		return err
	}
	return viz.RunLive(s, viz.Options{
		FPS:    fps,
		Speed:  job.Speed,
		Theme:  job.Theme,
		Paused: paused,
		Logger: logger,
		Configure: func(p *control.Panel) error {
			return automation.Configure(job, p)
		},
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, job, err := viewerJob(cmd, args[0])
	if err != nil {
		return err
	}
	return gui.Run(s, gui.Options{
		Theme:  job.Theme,
		Speed:  job.Speed,
		Paused: paused,
		Logger: logger,
		Configure: func(p *control.Panel) error {
			return automation.Configure(job, p)
		},
	})
}
