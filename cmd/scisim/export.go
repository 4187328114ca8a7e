package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/scisim/internal/automation"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runRender(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, automation.KindRender, args[0])
	if err != nil {
		return err
	}
	job.Output = defaultOutput(job.Simulation, ".png")

	start := time.Now()
	out, err := automation.Still(job)
	if err != nil {
		return fmt.Errorf("render %s: %w", job.Simulation, err)
	}
	fmt.Printf("wrote %s in %v\n", out.Output, time.Since(start).Round(time.Millisecond))
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, automation.KindAnimate, args[0])
	if err != nil {
		return err
	}
	job.Output = defaultOutput(job.Simulation, ".gif")
	if err := job.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	fmt.Printf("rendering %d frames of %s...\n", job.Frames, job.Simulation)
	start := time.Now()
	out, err := automation.Animate(ctx, job, logger)
	if err != nil {
		return fmt.Errorf("animate %s: %w", job.Simulation, err)
	}
	fmt.Printf("wrote %s (%d frames) in %v\n", out.Output, out.Frames, time.Since(start).Round(time.Millisecond))
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, automation.KindTrace, args[0])
	if err != nil {
		return err
	}
	if job.Output == "" {
		job.Output = dataDir
	}

	ctx, cancel := signalContext()
	defer cancel()
	out, err := automation.Trace(ctx, job)
	if err != nil {
		return fmt.Errorf("trace %s: %w", job.Simulation, err)
	}
	fmt.Printf("frames: %d\n", out.Frames)
	fmt.Printf("trace: %s\n", out.Output)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, automation.KindSweep, args[0])
	if err != nil {
		return err
	}
	job.Output = defaultOutput(job.Simulation+"_"+sweepParam, ".png")
	job.Sweep = &automation.SweepSpec{
		Param:    sweepParam,
		From:     sweepFrom,
		To:       sweepTo,
		Steps:    sweepSteps,
		Quantity: sweepQuantity,
	}

	ctx, cancel := signalContext()
	defer cancel()
	out, err := automation.SweepChart(ctx, job)
	if err != nil {
		return fmt.Errorf("sweep %s: %w", job.Simulation, err)
	}
	fmt.Printf("wrote %s (%d samples)\n", out.Output, out.Frames)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	start := time.Now()
	outcomes, err := automation.RunScenario(ctx, scenario, logger)
	for _, o := range outcomes {
		fmt.Printf("  %-8s %-14s %s\n", o.Job.Kind, o.Job.Simulation, o.Output)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%d jobs in %v\n", len(outcomes), time.Since(start).Round(time.Millisecond))
	return nil
}
