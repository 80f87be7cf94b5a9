package cable

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// System is a complete cable installation: the buried cables, the soil
// they share and the frequency samples to sweep.
type System struct {
	Cables      []Cable   `yaml:"cables"`
	Soil        SoilModel `yaml:"soil"`
	Frequencies []float64 `yaml:"frequencies,omitempty"`
}

// ConductorCount returns the total number of conductor layers across all
// cables.
func (s *System) ConductorCount() int {
	n := 0
	for _, c := range s.Cables {
		n += len(c.Layers)
	}
	return n
}

// PhaseOrder returns the phase id of every conductor layer, cables in
// declaration order, layers innermost first.
func (s *System) PhaseOrder() []int {
	order := make([]int, 0, s.ConductorCount())
	for _, c := range s.Cables {
		order = append(order, c.Phases...)
	}
	return order
}

// Validate checks every cable and the soil model, and fills unit defaults
// for unset relative permeabilities and permittivities.
func (s *System) Validate() error {
	if len(s.Cables) == 0 {
		return fmt.Errorf("%w: system has no cables", ErrInvalidGeometry)
	}
	for i := range s.Cables {
		for j := range s.Cables[i].Layers {
			s.Cables[i].Layers[j].applyDefaults()
		}
		if err := s.Cables[i].Validate(); err != nil {
			return err
		}
	}
	if _, err := s.Soil.ResolveAt(0); err != nil {
		return err
	}
	for _, f := range s.Frequencies {
		if f <= 0 {
			return fmt.Errorf("%w: frequency %g must be positive", ErrInvalidGeometry, f)
		}
	}
	return nil
}

// LoadSystem reads and validates a YAML system file.
func LoadSystem(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s System
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Save writes the system to a YAML file.
func (s *System) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
