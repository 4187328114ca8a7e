// Package storage keeps recorded traces on disk: one directory per run
// holding metadata.json and trace.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/scisim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Simulation string             `json:"simulation"`
	Timestamp  time.Time          `json:"timestamp"`
	Frames     int                `json:"frames"`
	Speed      float64            `json:"speed"`
	BaseRate   float64            `json:"base_rate"`
	Params     map[string]float64 `json:"params,omitempty"`
	Choices    map[string]string  `json:"choices,omitempty"`
	Toggles    map[string]bool    `json:"toggles,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Trace is a table of per-frame quantities. Missing values (invalid
// frames, or quantities a frame did not report) are NaN.
type Trace struct {
	Columns []string
	Times   []float64
	Rows    [][]float64
}

// NewTrace tabulates results against their animation times. Columns
// appear in the order quantities are first reported.
func NewTrace(states []dynamo.AnimationState, results []dynamo.Result) *Trace {
	tr := &Trace{}
	index := map[string]int{}
	for _, r := range results {
		if r == nil || !r.Valid() {
			continue
		}
		for _, q := range r.Quantities() {
			if _, ok := index[q.Name]; !ok {
				index[q.Name] = len(tr.Columns)
				tr.Columns = append(tr.Columns, q.Name)
			}
		}
	}
	for i, r := range results {
		row := make([]float64, len(tr.Columns))
		for j := range row {
			row[j] = math.NaN()
		}
		if r != nil && r.Valid() {
			for _, q := range r.Quantities() {
				row[index[q.Name]] = q.Value
			}
		}
		t := 0.0
		if i < len(states) {
			t = states[i].ElapsedTime
		}
		tr.Times = append(tr.Times, t)
		tr.Rows = append(tr.Rows, row)
	}
	return tr
}

// Column returns one column by name.
func (t *Trace) Column(name string) ([]float64, error) {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(t.Rows))
		for i, row := range t.Rows {
			out[i] = row[j]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: no column %q", dynamo.ErrUnknownParam, name)
}

func (s *Store) Save(meta RunMetadata, trace *Trace) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = s.now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Simulation, meta.Timestamp.Unix())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := WriteTrace(filepath.Join(runDir, traceFile), trace); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteTrace writes a trace as CSV with a leading time column. NaN is
// written as an empty cell.
func WriteTrace(path string, trace *Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"time"}, trace.Columns...)); err != nil {
		return err
	}
	for i, row := range trace.Rows {
		rec := []string{strconv.FormatFloat(trace.Times[i], 'f', 6, 64)}
		for _, v := range row {
			if math.IsNaN(v) {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.FormatFloat(v, 'g', 10, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadTrace reads a CSV written by WriteTrace.
func LoadTrace(path string) (*Trace, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) == 0 || records[0][0] != "time" {
		return nil, fmt.Errorf("%w: %s is not a trace", dynamo.ErrInvalidConfig, path)
	}

	tr := &Trace{Columns: records[0][1:]}
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", record[0], err)
		}
		row := make([]float64, len(tr.Columns))
		for j := range row {
			row[j] = math.NaN()
			if j+1 >= len(record) || record[j+1] == "" {
				continue
			}
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", tr.Columns[j], err)
			}
			row[j] = v
		}
		tr.Times = append(tr.Times, t)
		tr.Rows = append(tr.Rows, row)
	}
	return tr, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	return LoadTrace(filepath.Join(s.baseDir, runID, traceFile))
}

// TracePath is where Save puts a run's CSV.
func (s *Store) TracePath(runID string) string {
	return filepath.Join(s.baseDir, runID, traceFile)
}
