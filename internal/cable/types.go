package cable

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gocable/internal/uncertain"
)

// Quantity is a measured scalar: a nominal value plus an optional standard
// deviation. In YAML it accepts either a bare number or a
// {value, sigma} mapping.
type Quantity struct {
	Value float64 `yaml:"value"`
	Sigma float64 `yaml:"sigma,omitempty"`
}

// UnmarshalYAML lets a Quantity be written as a plain scalar when it has
// no uncertainty attached.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		q.Sigma = 0
		return node.Decode(&q.Value)
	}
	type raw Quantity
	return node.Decode((*raw)(q))
}

// Measured converts the quantity into an uncertain value. Each call mints
// a fresh independent error source, so convert once per physical
// measurement and reuse the result.
func (q Quantity) Measured() uncertain.Value {
	return uncertain.New(q.Value, q.Sigma)
}

// ConductorLayer describes one tubular conductor of a cable together with
// the insulating annulus outside it, innermost layer first. All lengths in
// meters, resistivities in Ω·m.
type ConductorLayer struct {
	RIn         Quantity `yaml:"r_in"`        // conductor inner radius (0 = solid)
	ROut        Quantity `yaml:"r_out"`       // conductor outer radius
	Resistivity Quantity `yaml:"resistivity"` // conductor resistivity
	MuR         Quantity `yaml:"mu_r"`        // conductor relative permeability (default 1)

	InsROut        Quantity `yaml:"ins_r_out"`       // insulation outer radius (0 = bare)
	InsMuR         Quantity `yaml:"ins_mu_r"`        // insulation relative permeability (default 1)
	InsEpsR        Quantity `yaml:"ins_eps_r"`       // insulation relative permittivity (default 1)
	InsResistivity Quantity `yaml:"ins_resistivity"` // insulation resistivity (0 = lossless)
}

// OuterRadius returns the outermost radius of the layer, insulation
// included.
func (l ConductorLayer) OuterRadius() float64 {
	if l.InsROut.Value > 0 {
		return l.InsROut.Value
	}
	return l.ROut.Value
}

// Validate checks the layer geometry.
func (l ConductorLayer) Validate() error {
	if l.ROut.Value <= 0 {
		return fmt.Errorf("%w: conductor outer radius %g must be positive", ErrInvalidGeometry, l.ROut.Value)
	}
	if l.RIn.Value < 0 || l.RIn.Value >= l.ROut.Value {
		return fmt.Errorf("%w: conductor radii must satisfy 0 <= r_in < r_out, got r_in=%g r_out=%g",
			ErrInvalidGeometry, l.RIn.Value, l.ROut.Value)
	}
	if l.InsROut.Value != 0 && l.InsROut.Value <= l.ROut.Value {
		return fmt.Errorf("%w: insulation outer radius %g must exceed conductor outer radius %g",
			ErrInvalidGeometry, l.InsROut.Value, l.ROut.Value)
	}
	if l.Resistivity.Value <= 0 {
		return fmt.Errorf("%w: conductor resistivity %g must be positive", ErrInvalidGeometry, l.Resistivity.Value)
	}
	return nil
}

// Cable is one physical cable: its position in the cross section and its
// conductor layers from the core outwards, each assigned to a phase
// (0 = grounded, equal positive ids = bundled).
type Cable struct {
	Name   string           `yaml:"name,omitempty"`
	X      Quantity         `yaml:"x"` // horizontal position (m)
	Y      Quantity         `yaml:"y"` // vertical position (m), negative below ground
	Layers []ConductorLayer `yaml:"layers"`
	Phases []int            `yaml:"phases"`
}

// Validate checks the cable geometry and phase assignment.
func (c Cable) Validate() error {
	if len(c.Layers) == 0 {
		return fmt.Errorf("%w: cable %q has no conductor layers", ErrInvalidGeometry, c.Name)
	}
	if len(c.Phases) != len(c.Layers) {
		return fmt.Errorf("%w: cable %q has %d layers but %d phase assignments",
			ErrInvalidGeometry, c.Name, len(c.Layers), len(c.Phases))
	}
	if c.Y.Value >= 0 {
		return fmt.Errorf("%w: cable %q must be buried (y=%g, want y < 0)", ErrInvalidGeometry, c.Name, c.Y.Value)
	}
	prev := 0.0
	for i, l := range c.Layers {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("cable %q layer %d: %w", c.Name, i, err)
		}
		if l.RIn.Value < prev {
			return fmt.Errorf("%w: cable %q layer %d inner radius %g overlaps layer %d (outer radius %g)",
				ErrInvalidGeometry, c.Name, i, l.RIn.Value, i-1, prev)
		}
		prev = l.OuterRadius()
	}
	for i, p := range c.Phases {
		if p < 0 {
			return fmt.Errorf("%w: cable %q layer %d has negative phase id %d", ErrInvalidGeometry, c.Name, i, p)
		}
	}
	return nil
}

// applyDefaults fills the conventional unit defaults for relative
// permeabilities and permittivities left at zero.
func (l *ConductorLayer) applyDefaults() {
	if l.MuR.Value == 0 {
		l.MuR.Value = 1
	}
	if l.InsROut.Value > 0 {
		if l.InsMuR.Value == 0 {
			l.InsMuR.Value = 1
		}
		if l.InsEpsR.Value == 0 {
			l.InsEpsR.Value = 1
		}
	}
}
