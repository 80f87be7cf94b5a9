package cable_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gocable/internal/cable"
)

const sampleSystem = `
cables:
  - name: phase-a
    x: 0
    y: -1.0
    layers:
      - r_in: 0
        r_out: {value: 0.0127, sigma: 0.0001}
        resistivity: 1.7241e-8
        ins_r_out: 0.0254
        ins_eps_r: 2.3
      - r_in: 0.028
        r_out: 0.030
        resistivity: 2.1e-7
        ins_r_out: 0.034
        ins_eps_r: 2.3
    phases: [1, 0]
soil:
  resistivity: {value: 100, sigma: 10}
frequencies: [50, 500, 5000]
`

func writeSystem(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSystem(t *testing.T) {
	s, err := cable.LoadSystem(writeSystem(t, sampleSystem))
	require.NoError(t, err)

	assert.Equal(t, 2, s.ConductorCount())
	assert.Equal(t, []int{1, 0}, s.PhaseOrder())
	assert.Equal(t, []float64{50, 500, 5000}, s.Frequencies)

	// scalar and mapping forms of a quantity
	core := s.Cables[0].Layers[0]
	assert.Equal(t, 0.0127, core.ROut.Value)
	assert.Equal(t, 0.0001, core.ROut.Sigma)
	assert.Equal(t, 1.7241e-8, core.Resistivity.Value)
	assert.Zero(t, core.Resistivity.Sigma)

	// unit defaults filled during validation
	assert.Equal(t, 1.0, core.MuR.Value)
	assert.Equal(t, 1.0, core.InsMuR.Value)
	assert.Equal(t, 2.3, core.InsEpsR.Value)
}

func TestSaveRoundTrip(t *testing.T) {
	s, err := cable.LoadSystem(writeSystem(t, sampleSystem))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, s.Save(out))

	back, err := cable.LoadSystem(out)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestQuantityScalarForm(t *testing.T) {
	var q cable.Quantity
	require.NoError(t, yaml.Unmarshal([]byte("42.5"), &q))
	assert.Equal(t, 42.5, q.Value)
	assert.Zero(t, q.Sigma)

	require.NoError(t, yaml.Unmarshal([]byte("{value: 3, sigma: 0.2}"), &q))
	assert.Equal(t, 3.0, q.Value)
	assert.Equal(t, 0.2, q.Sigma)
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	base := func() *cable.System {
		s, err := cable.LoadSystem(writeSystem(t, sampleSystem))
		require.NoError(t, err)
		return s
	}

	cases := []struct {
		name   string
		mutate func(*cable.System)
	}{
		{"above ground", func(s *cable.System) { s.Cables[0].Y.Value = 0.5 }},
		{"inverted radii", func(s *cable.System) { s.Cables[0].Layers[0].RIn.Value = 0.02 }},
		{"insulation inside conductor", func(s *cable.System) { s.Cables[0].Layers[0].InsROut.Value = 0.01 }},
		{"overlapping layers", func(s *cable.System) { s.Cables[0].Layers[1].RIn.Value = 0.02 }},
		{"phase count mismatch", func(s *cable.System) { s.Cables[0].Phases = []int{1} }},
		{"negative phase id", func(s *cable.System) { s.Cables[0].Phases = []int{-1, 0} }},
		{"zero resistivity", func(s *cable.System) { s.Cables[0].Layers[0].Resistivity.Value = 0 }},
		{"bad frequency", func(s *cable.System) { s.Frequencies = []float64{0} }},
		{"no cables", func(s *cable.System) { s.Cables = nil }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := base()
			c.mutate(s)
			err := s.Validate()
			assert.ErrorIs(t, err, cable.ErrInvalidGeometry)
		})
	}
}

func TestSoilModelResolution(t *testing.T) {
	m := cable.SoilModel{Resistivity: cable.Quantity{Value: 100}}
	p, err := m.ResolveAt(50)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Resistivity.Value)
	assert.Equal(t, 1.0, p.EpsR)
	assert.Equal(t, 1.0, p.MuR)
	assert.InDelta(t, 0.01, p.Conductivity(), 1e-15)

	m.Model = "frequency-dependent"
	_, err = m.ResolveAt(50)
	assert.ErrorIs(t, err, cable.ErrUnsupportedModel)

	m = cable.SoilModel{Model: cable.SoilConstant}
	_, err = m.ResolveAt(50)
	assert.ErrorIs(t, err, cable.ErrInvalidGeometry)
}
