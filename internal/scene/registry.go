package scene

import (
	"fmt"

	"github.com/san-kum/scisim/internal/dynamo"
)

var registry = []Simulation{
	Circuit{},
	MagneticField{},
	Motor{},
	Optics{},
	Reflection{},
	Prism{},
	LunarPhases{},
	Lunar3D{},
	Sunspots{},
}

// All returns every simulation in menu order.
func All() []Simulation {
	return append([]Simulation(nil), registry...)
}

// IDs lists the simulation ids in menu order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, s := range registry {
		ids[i] = s.ID()
	}
	return ids
}

// Get looks a simulation up by id.
func Get(id string) (Simulation, error) {
	for _, s := range registry {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownSimulation, id)
}

// Uses3D reports whether the simulation reads the orbit camera.
func Uses3D(sim Simulation) bool {
	_, ok := sim.(Lunar3D)
	return ok
}
