package belinear

import (
	"fmt"

	"github.com/ebeamlab/belinear/internal/beam"
	"github.com/ebeamlab/belinear/internal/integrators"
	"github.com/ebeamlab/belinear/internal/propagate"
)

// Matrix is a 2x2 transfer matrix mapping initial to final (x, Px).
type Matrix [2][2]float64

// Det returns the determinant. Symplectic methods keep it at 1 up to
// rounding error.
func (m Matrix) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Method selects the stepping algorithm.
type Method string

const (
	// Midpoint is the symplectic second-order default.
	Midpoint Method = "midpoint"
	// ImplicitEuler is first order and numerically damped.
	ImplicitEuler Method = "implicit_euler"
	// ConstantField propagates each step analytically.
	ConstantField Method = "constant_field"
)

// Methods lists the supported method names in their canonical order.
func Methods() []Method {
	return []Method{Midpoint, ImplicitEuler, ConstantField}
}

// ParseMethod resolves a method name.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case Midpoint, ImplicitEuler, ConstantField:
		return Method(name), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMethod, name)
}

// Options configures a solve. The zero value selects the defaults:
// gamma 1 (start from rest) and the midpoint method.
type Options struct {
	// GammaInitial is the Lorentz factor at the first sample. Must be
	// >= 1; 0 means the default of 1.
	GammaInitial float64
	// Method is the stepping algorithm; empty means Midpoint.
	Method Method
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{GammaInitial: 1, Method: Midpoint}
}

// TransferMatrix integrates the sampled fields and returns the
// end-to-end transfer matrix. Ez is in V/m, Bz in T; both arrays share
// the uniform spacing h in meters.
func TransferMatrix(ez, bz []float64, h float64, opts Options) (Matrix, error) {
	stepper, err := prepare(ez, bz, h, &opts)
	if err != nil {
		return Matrix{}, err
	}
	m, err := propagate.New(stepper).Final(ez, bz, h, opts.GammaInitial)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix(m), nil
}

// CumulativeMatrices integrates the sampled fields and returns the
// propagator from the start up to every step: n samples yield n-1
// matrices in increasing-z order, the last equal to the TransferMatrix
// result for identical inputs.
func CumulativeMatrices(ez, bz []float64, h float64, opts Options) ([]Matrix, error) {
	stepper, err := prepare(ez, bz, h, &opts)
	if err != nil {
		return nil, err
	}
	ms, err := propagate.New(stepper).Cumulative(ez, bz, h, opts.GammaInitial)
	if err != nil {
		return nil, err
	}
	out := make([]Matrix, len(ms))
	for i, m := range ms {
		out[i] = Matrix(m)
	}
	return out, nil
}

// prepare normalizes options and enforces every boundary precondition
// before any integration work starts.
func prepare(ez, bz []float64, h float64, opts *Options) (beam.Stepper, error) {
	if opts.GammaInitial == 0 {
		opts.GammaInitial = 1
	}
	if opts.Method == "" {
		opts.Method = Midpoint
	}

	if len(ez) != len(bz) || len(ez) < 2 {
		return nil, fmt.Errorf("%w: len(ez)=%d len(bz)=%d", ErrFieldLength, len(ez), len(bz))
	}
	if h <= 0 {
		return nil, fmt.Errorf("%w: h=%g", ErrStepSize, h)
	}
	if opts.GammaInitial < 1 {
		return nil, fmt.Errorf("%w: gamma=%g", ErrGammaInitial, opts.GammaInitial)
	}
	if opts.GammaInitial == 1 && ez[0] == 0 {
		return nil, ErrGunStart
	}
	return stepperFor(opts.Method)
}

func stepperFor(m Method) (beam.Stepper, error) {
	switch m {
	case Midpoint:
		return integrators.NewMidpoint(), nil
	case ImplicitEuler:
		return integrators.NewImplicitEuler(), nil
	case ConstantField:
		return integrators.NewConstantField(), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMethod, m)
}
