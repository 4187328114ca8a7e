package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/scisim/internal/catalog"
	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/storage"
)

func listCatalog(cmd *cobra.Command, args []string) error {
	entries, err := catalog.Load()
	if err != nil {
		return err
	}
	d := catalog.Difficulty(difficulty)
	if d != "" && !d.Valid() {
		return fmt.Errorf("%w: difficulty %q", dynamo.ErrInvalidConfig, difficulty)
	}
	entries = catalog.Filter(entries, subject, d)
	if len(entries) == 0 {
		fmt.Println("no simulations match")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tCHAPTER\tDIFFICULTY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Title, e.Subject, e.Chapter, e.Difficulty)
	}
	return w.Flush()
}

func formatRange(spec dynamo.ParamSpec) (string, string) {
	switch spec.Kind {
	case dynamo.KindAngle:
		toDeg := 180 / math.Pi
		return fmt.Sprintf("%g°..%g°", spec.Min*toDeg, spec.Max*toDeg), fmt.Sprintf("%g°", math.Round(spec.Default*toDeg*100)/100)
	case dynamo.KindEnum:
		def := spec.DefaultOption
		if def == "" && len(spec.Options) > 0 {
			def = spec.Options[0]
		}
		return strings.Join(spec.Options, "|"), def
	case dynamo.KindToggle:
		return "on|off", fmt.Sprintf("%t", spec.DefaultOn)
	}
	r := fmt.Sprintf("%g..%g", spec.Min, spec.Max)
	if spec.Unit != "" {
		r += " " + spec.Unit
	}
	return r, fmt.Sprintf("%g", spec.Default)
}

func showParams(cmd *cobra.Command, args []string) error {
	s, err := scene.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n\n", s.Title(), s.ID())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tRANGE\tDEFAULT\tLABEL")
	for _, spec := range s.Schema() {
		rng, def := formatRange(spec)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", spec.Name, spec.Kind, rng, def, spec.Label)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIMULATION\tTIME\tFRAMES\tSPEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n",
			run.ID,
			run.Simulation,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Speed,
		)
	}
	return w.Flush()
}

// loadTrace accepts a CSV path or a run id under --data.
func loadTrace(ref string) (*storage.Trace, error) {
	if _, err := os.Stat(ref); err == nil {
		return storage.LoadTrace(ref)
	}
	st := storage.New(dataDir)
	if _, err := st.Load(ref); err != nil {
		return nil, fmt.Errorf("no trace file or run %q: %w", ref, err)
	}
	return st.LoadTrace(ref)
}

func plotTrace(cmd *cobra.Command, args []string) error {
	trace, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace.Rows) == 0 {
		return errors.New("no data to plot")
	}

	name := column
	if name == "" && len(trace.Columns) > 0 {
		name = trace.Columns[0]
	}
	values, err := trace.Column(name)
	if err != nil {
		return fmt.Errorf("%w (columns: %s)", err, strings.Join(trace.Columns, ", "))
	}

	// asciigraph cannot plot gaps; invalid frames are dropped.
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return fmt.Errorf("column %s has no valid samples", name)
	}

	fmt.Printf("trace: %s\n", args[0])
	fmt.Printf("samples: %d (%d invalid)\n\n", len(values), len(values)-len(data))
	graph := asciigraph.Plot(data, asciigraph.Height(15), asciigraph.Width(70), asciigraph.Caption(name))
	fmt.Println(graph)
	return nil
}
