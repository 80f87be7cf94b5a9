package cable

import "errors"

var (
	// ErrInvalidGeometry reports non-ascending radii, zero-thickness
	// layers or other ill-formed cable cross sections.
	ErrInvalidGeometry = errors.New("cable: invalid geometry")

	// ErrUnsupportedModel reports a soil frequency-dependence model id
	// this engine does not implement.
	ErrUnsupportedModel = errors.New("cable: unsupported soil model")
)
