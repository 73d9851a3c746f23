package beam

import (
	"errors"
	"fmt"
)

// Domain errors raised during matrix propagation.
var (
	// ErrGammaDomain indicates the reference energy dropped below rest
	// energy (gamma < 1), so beta would be imaginary.
	ErrGammaDomain = errors.New("beam: gamma below 1 (beta imaginary)")

	// ErrZeroVelocity indicates a singular paraxial coefficient from
	// vanishing longitudinal velocity away from a validated gun start.
	ErrZeroVelocity = errors.New("beam: zero longitudinal velocity inside beamline")

	// ErrSingular indicates a non-invertible per-step system matrix.
	ErrSingular = errors.New("beam: singular step matrix")

	// ErrNonFinite indicates NaN or Inf in the cumulative product.
	ErrNonFinite = errors.New("beam: non-finite transfer matrix")
)

// StepError reports which integration step failed and at what position.
type StepError struct {
	Step    int
	Z       float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (z=%.6g m): %v", e.Step, e.Z, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
