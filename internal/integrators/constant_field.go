package integrators

import (
	"math"

	"github.com/ebeamlab/belinear/internal/beam"
	"github.com/ebeamlab/belinear/internal/paraxial"
)

// ConstantField propagates each step with the closed-form solution of
// the constant-coefficient system: a Larmor rotation through
// theta = b*h*ls, where b = c*Bz/(2*mc^2) and ls is the rapidity-averaged
// 1/(beta*gamma) that accounts for acceleration across the step,
// composed with a thin-lens kick from the Ez gradient. No matrix inverse
// is needed; accuracy depends on how constant the fields are per step.
type ConstantField struct{}

func NewConstantField() *ConstantField {
	return &ConstantField{}
}

func (c *ConstantField) Name() string { return "constant_field" }

func (c *ConstantField) Step(st beam.Step, kin beam.Kinematics) (beam.Mat2, beam.Kinematics, error) {
	next, err := paraxial.Advance(kin, st)
	if err != nil {
		return beam.Mat2{}, beam.Kinematics{}, err
	}
	if next.Beta <= 0 {
		return beam.Mat2{}, beam.Kinematics{}, beam.ErrZeroVelocity
	}

	wStart := paraxial.Rapidity(kin.Gamma)
	wEnd := paraxial.Rapidity(next.Gamma)
	mean := math.Sinh((wStart + wEnd) / 2)
	if mean <= 0 {
		return beam.Mat2{}, beam.Kinematics{}, beam.ErrZeroVelocity
	}
	// Effective 1/(beta*gamma) over the step under constant acceleration.
	ls := 1 / (paraxial.Sinhc((wEnd-wStart)/2) * mean)

	b := paraxial.LarmorWavenumber(st.Start.Bz)
	theta := b * st.H * ls
	cos := math.Cos(theta)
	sin := -b * math.Sin(theta)
	snc := paraxial.Sinc(theta) * ls * st.H

	// Thin-lens edge kick from the longitudinal Ez gradient, composed
	// after the rotation (kick at the step exit).
	k := st.Start.GammaPrime2 * st.H / (2 * next.Beta)
	return beam.Mat2{
		{cos, snc},
		{sin - cos*k, cos - snc*k},
	}, next, nil
}
