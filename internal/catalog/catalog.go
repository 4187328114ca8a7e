// Package catalog lists the simulations offered by the picker.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scisim/internal/dynamo"
)

//go:embed catalog.yaml
var embedded []byte

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

type Entry struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Subject     string     `yaml:"subject"`
	Chapter     string     `yaml:"chapter"`
	SubChapter  string     `yaml:"subChapter"`
	Difficulty  Difficulty `yaml:"difficulty"`
	Path        string     `yaml:"path"`
}

func (e Entry) Validate() error {
	if e.ID == "" || e.Title == "" {
		return fmt.Errorf("%w: catalog entry needs id and title", dynamo.ErrInvalidConfig)
	}
	if !e.Difficulty.Valid() {
		return fmt.Errorf("%w: %s has difficulty %q", dynamo.ErrInvalidConfig, e.ID, e.Difficulty)
	}
	return nil
}

// Parse decodes and validates a catalog document. Ids must be unique.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: duplicate catalog id %q", dynamo.ErrInvalidConfig, e.ID)
		}
		seen[e.ID] = true
	}
	return entries, nil
}

// Load returns the built-in catalog.
func Load() ([]Entry, error) {
	return Parse(embedded)
}

// Filter keeps entries matching subject and difficulty; an empty value
// matches everything.
func Filter(entries []Entry, subject string, difficulty Difficulty) []Entry {
	var out []Entry
	for _, e := range entries {
		if subject != "" && e.Subject != subject {
			continue
		}
		if difficulty != "" && e.Difficulty != difficulty {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Subjects lists the distinct subjects in first-seen order.
func Subjects(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		if !slices.Contains(out, e.Subject) {
			out = append(out, e.Subject)
		}
	}
	return out
}

func Find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
