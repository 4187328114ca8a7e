package config

import (
	"maps"
	"slices"
)

func preset(sim string, params map[string]float64, choices map[string]string, toggles map[string]bool) *Config {
	cfg := DefaultConfig()
	cfg.Simulation = sim
	cfg.Params, cfg.Choices, cfg.Toggles = params, choices, toggles
	return cfg
}

var Presets = map[string]map[string]*Config{
	"circuit": {
		"series": preset("circuit",
			map[string]float64{"voltage": 9, "r1": 3, "r2": 6},
			map[string]string{"topology": "series"}, nil),
		"parallel": preset("circuit",
			map[string]float64{"voltage": 12, "r1": 6, "r2": 3},
			map[string]string{"topology": "parallel"}, nil),
		"complex": preset("circuit",
			map[string]float64{"voltage": 12, "r1": 2, "r2": 6, "r3": 3},
			map[string]string{"topology": "complex"}, nil),
		"short": preset("circuit",
			map[string]float64{"voltage": 9, "r1": 0, "r2": 6},
			map[string]string{"topology": "parallel"}, nil),
	},
	"magnetic-field": {
		"bar": preset("magnetic-field",
			map[string]float64{"strength": 0.5},
			map[string]string{"apparatus": "bar"},
			map[string]bool{"show_compass": true}),
		"horseshoe": preset("magnetic-field",
			map[string]float64{"strength": 0.4},
			map[string]string{"apparatus": "horseshoe"}, nil),
		"solenoid": preset("magnetic-field",
			map[string]float64{"current": 4, "turns": 300, "length": 200},
			map[string]string{"apparatus": "electromagnet", "winding": "ccw"}, nil),
		"wire-force": preset("magnetic-field",
			map[string]float64{"current": 8},
			map[string]string{"apparatus": "wire", "direction": "out"},
			map[string]bool{"show_force": true, "show_compass": true}),
	},
	"motor": {
		"split-ring": preset("motor",
			map[string]float64{"field": 0.5, "current": 2, "turns": 10},
			nil, map[string]bool{"commutator": true}),
		"slip-rings": preset("motor",
			map[string]float64{"field": 0.5, "current": 2, "turns": 10},
			nil, map[string]bool{"commutator": false}),
		"strong": preset("motor",
			map[string]float64{"field": 1, "current": 5, "turns": 50},
			nil, nil),
	},
	"optics": {
		"projector": preset("optics",
			map[string]float64{"focal": 20, "object_distance": 30},
			map[string]string{"element": "converging-lens"}, nil),
		"magnifier": preset("optics",
			map[string]float64{"focal": 20, "object_distance": 10},
			map[string]string{"element": "converging-lens"}, nil),
		"at-focus": preset("optics",
			map[string]float64{"focal": 20, "object_distance": 20},
			map[string]string{"element": "converging-lens"}, nil),
		"shaving-mirror": preset("optics",
			map[string]float64{"focal": 25, "object_distance": 15},
			map[string]string{"element": "concave-mirror"}, nil),
		"diverging": preset("optics",
			map[string]float64{"focal": 20, "object_distance": 40},
			map[string]string{"element": "diverging-lens"}, nil),
	},
	"reflection": {
		"mirror": preset("reflection",
			map[string]float64{"incidence": 30},
			map[string]string{"material": "mirror"}, nil),
		"total-internal": preset("reflection",
			map[string]float64{"incidence": 60},
			map[string]string{"material": "glass"},
			map[string]bool{"from_inside": true}),
		"diffuse": preset("reflection",
			map[string]float64{"incidence": 45},
			map[string]string{"material": "rough"}, nil),
	},
	"prism": {
		"white-on-red": preset("prism", nil,
			map[string]string{"light": "white", "surface": "red"}, nil),
		"red-on-blue": preset("prism", nil,
			map[string]string{"light": "red", "surface": "blue"}, nil),
		"black": preset("prism", nil,
			map[string]string{"light": "white", "surface": "black"}, nil),
	},
	"lunar-phases": {
		"new": preset("lunar-phases", map[string]float64{"start_day": 0}, nil, nil),
		"first-quarter": preset("lunar-phases", map[string]float64{"start_day": 7}, nil, nil),
		"full": preset("lunar-phases", map[string]float64{"start_day": 15}, nil, nil),
	},
	"lunar-3d": {
		"tilted": preset("lunar-3d", nil, nil, map[string]bool{"tilt": true, "show_axes": true}),
		"full": preset("lunar-3d", map[string]float64{"start_day": 15}, nil, nil),
	},
	"sunspots": {
		"active": preset("sunspots",
			map[string]float64{"count": 36, "seed": 42},
			nil, map[string]bool{"show_granulation": true}),
		"quiet": preset("sunspots",
			map[string]float64{"count": 3, "seed": 7}, nil, nil),
		"rigid": preset("sunspots",
			map[string]float64{"count": 12, "tilt": 7.25},
			nil, map[string]bool{"differential": false, "show_grid": true}),
	},
}

// GetPreset returns a copy of a named preset, or nil.
func GetPreset(sim, name string) *Config {
	simPresets, ok := Presets[sim]
	if !ok {
		return nil
	}
	cfg, ok := simPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(sim string) []string {
	simPresets, ok := Presets[sim]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(simPresets))
}
