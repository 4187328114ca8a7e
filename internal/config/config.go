package config

import (
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scisim/internal/control"
	"github.com/san-kum/scisim/internal/dynamo"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFPS    = 60
	DefaultSpeed  = 1.0
	DefaultTheme  = "cyberpunk"
	MaxFPS        = 1000
)

// Config is one simulation run as read from YAML. Angle parameters are
// written in degrees.
type Config struct {
	Simulation string             `yaml:"simulation"`
	Width      int                `yaml:"width"`
	Height     int                `yaml:"height"`
	FPS        int                `yaml:"fps"`
	Speed      float64            `yaml:"speed"`
	Time       float64            `yaml:"time"`
	Theme      string             `yaml:"theme"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Choices    map[string]string  `yaml:"choices,omitempty"`
	Toggles    map[string]bool    `yaml:"toggles,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: "circuit",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		FPS:        DefaultFPS,
		Speed:      DefaultSpeed,
		Theme:      DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run settings; parameter values are checked by Apply.
func (c *Config) Validate() error {
	switch {
	case c.Simulation == "":
		return fmt.Errorf("%w: simulation is required", dynamo.ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", dynamo.ErrInvalidConfig, c.Width, c.Height)
	case !(c.FPS > 0 && c.FPS <= MaxFPS):
		return fmt.Errorf("%w: fps %v", dynamo.ErrInvalidConfig, c.FPS)
	case !(c.Speed >= 0 && c.Speed <= 10):
		return fmt.Errorf("%w: speed %v", dynamo.ErrInvalidConfig, c.Speed)
	case c.Time < 0 || math.IsInf(c.Time, 0) || math.IsNaN(c.Time):
		return fmt.Errorf("%w: time %v", dynamo.ErrInvalidConfig, c.Time)
	}
	return nil
}

// Apply writes the configured parameters into a panel. Keys are applied
// in sorted order so the first bad key is reported deterministically.
func (c *Config) Apply(p *control.Panel) error {
	for _, name := range slices.Sorted(maps.Keys(c.Params)) {
		v := c.Params[name]
		if spec, ok := p.Schema().Lookup(name); ok && spec.Kind == dynamo.KindAngle {
			v *= math.Pi / 180
		}
		if _, err := p.SetFloat(name, v); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(c.Choices)) {
		if err := p.SetEnum(name, c.Choices[name]); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(c.Toggles)) {
		if err := p.SetToggle(name, c.Toggles[name]); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = maps.Clone(c.Params)
	out.Choices = maps.Clone(c.Choices)
	out.Toggles = maps.Clone(c.Toggles)
	return &out
}

// Assign records a "name=value" override, typed by the schema. Angles stay
// in degrees, as in YAML.
func (c *Config) Assign(schema dynamo.Schema, kv string) error {
	name, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("%w: expected name=value, got %q", dynamo.ErrInvalidConfig, kv)
	}
	name, raw = strings.TrimSpace(name), strings.TrimSpace(raw)
	spec, ok := schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	switch spec.Kind {
	case dynamo.KindFloat, dynamo.KindAngle:
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "deg"), 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		if c.Params == nil {
			c.Params = make(map[string]float64)
		}
		c.Params[name] = v
	case dynamo.KindEnum:
		if !spec.HasOption(raw) {
			return fmt.Errorf("%w: %s=%q", dynamo.ErrInvalidOption, name, raw)
		}
		if c.Choices == nil {
			c.Choices = make(map[string]string)
		}
		c.Choices[name] = raw
	case dynamo.KindToggle:
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		if c.Toggles == nil {
			c.Toggles = make(map[string]bool)
		}
		c.Toggles[name] = on
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrParamKind, name)
	}
	return nil
}
