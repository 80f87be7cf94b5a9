package cable

import "fmt"

// Soil model identifiers. Only the constant-properties model is
// implemented; the id is the extension point for frequency-dependent
// formulations.
const (
	SoilConstant = "constant"
)

// SoilModel describes the earth-return medium.
type SoilModel struct {
	Model       string   `yaml:"model,omitempty"` // empty means constant
	Resistivity Quantity `yaml:"resistivity"`     // Ω·m
	EpsR        Quantity `yaml:"eps_r"`           // relative permittivity (default 1)
	MuR         Quantity `yaml:"mu_r"`            // relative permeability (default 1)
}

// SoilProperties are the earth parameters resolved for one frequency
// sample.
type SoilProperties struct {
	Resistivity Quantity
	EpsR        float64
	MuR         float64
}

// Conductivity returns the nominal soil conductivity (S/m).
func (p SoilProperties) Conductivity() float64 {
	return 1 / p.Resistivity.Value
}

// ResolveAt returns the soil properties at the given frequency. Unknown
// model ids fail explicitly; silent fallback to constant properties would
// mask a configuration mistake.
func (s SoilModel) ResolveAt(freq float64) (SoilProperties, error) {
	switch s.Model {
	case "", SoilConstant:
	default:
		return SoilProperties{}, fmt.Errorf("%w: %q", ErrUnsupportedModel, s.Model)
	}
	if s.Resistivity.Value <= 0 {
		return SoilProperties{}, fmt.Errorf("%w: soil resistivity %g must be positive", ErrInvalidGeometry, s.Resistivity.Value)
	}
	p := SoilProperties{Resistivity: s.Resistivity, EpsR: s.EpsR.Value, MuR: s.MuR.Value}
	if p.EpsR == 0 {
		p.EpsR = 1
	}
	if p.MuR == 0 {
		p.MuR = 1
	}
	return p, nil
}
