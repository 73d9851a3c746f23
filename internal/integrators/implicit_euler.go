package integrators

import (
	"github.com/ebeamlab/belinear/internal/beam"
	"github.com/ebeamlab/belinear/internal/paraxial"
)

// ImplicitEuler is the first-order damped stepper. Coefficients are
// evaluated at the step's end point and the implicit formula
// y_{n+1} = y_n + h*f(y_{n+1}) reduces to the exact solve
//
//	J = (I - h*A(z+h))^-1
//
// since the system is linear at fixed kinematics. Less accurate than
// Midpoint but more stable for stiff field configurations.
type ImplicitEuler struct{}

func NewImplicitEuler() *ImplicitEuler {
	return &ImplicitEuler{}
}

func (e *ImplicitEuler) Name() string { return "implicit_euler" }

func (e *ImplicitEuler) Step(st beam.Step, kin beam.Kinematics) (beam.Mat2, beam.Kinematics, error) {
	next, err := paraxial.Advance(kin, st)
	if err != nil {
		return beam.Mat2{}, beam.Kinematics{}, err
	}
	if next.Beta <= 0 {
		return beam.Mat2{}, beam.Kinematics{}, beam.ErrZeroVelocity
	}

	a := paraxial.Matrix(paraxial.Larmor(st.End.Bz, next.Gamma), st.End.GammaPrime2, next.Gamma, next.Beta)
	j, err := beam.Identity().Sub(a.Scale(st.H)).Inv()
	if err != nil {
		return beam.Mat2{}, beam.Kinematics{}, err
	}
	return j, next, nil
}
