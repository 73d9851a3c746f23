package paraxial

import (
	"math"

	"github.com/ebeamlab/belinear/internal/beam"
)

// Larmor returns the Larmor angular frequency q*Bz/(2*gamma*m) in rad/s.
func Larmor(bz, gamma float64) float64 {
	return beam.ElementaryCharge * bz / (2 * gamma * beam.ElectronMass)
}

// LarmorWavenumber returns c*Bz/(2*mc^2), the normalized rotation
// wavenumber in 1/m used by the constant-field propagator.
func LarmorWavenumber(bz float64) float64 {
	return beam.SpeedOfLight * bz / (2 * beam.RestEnergyEV)
}

// Matrix builds the coefficient matrix A from an evaluation point.
// omega is the Larmor frequency, gammaPrime2 the second derivative of
// gamma with respect to z. Beta must be positive.
func Matrix(omega, gammaPrime2, gamma, beta float64) beam.Mat2 {
	c2 := beam.SpeedOfLight * beam.SpeedOfLight
	return beam.Mat2{
		{0, 1 / (beta * gamma)},
		{-(2*gamma*omega*omega + c2*gammaPrime2) / (2 * c2 * beta), 0},
	}
}

// Coefficients evaluates A at a single field sample and kinematic state.
func Coefficients(s beam.Sample, kin beam.Kinematics) beam.Mat2 {
	return Matrix(Larmor(s.Bz, kin.Gamma), s.GammaPrime2, kin.Gamma, kin.Beta)
}

// Advance applies the energy kick of one step to the kinematic state
// using the trapezoid of gamma' between the step's endpoints. It fails
// with beam.ErrGammaDomain when the field decelerates the particle below
// rest energy.
func Advance(kin beam.Kinematics, st beam.Step) (beam.Kinematics, error) {
	gamma := kin.Gamma + st.H*(st.Start.GammaPrime+st.End.GammaPrime)/2
	if gamma < 1 {
		return beam.Kinematics{}, beam.ErrGammaDomain
	}
	return beam.NewKinematics(gamma), nil
}

// Rapidity returns w with sinh(w) = beta*gamma = sqrt(gamma^2 - 1).
func Rapidity(gamma float64) float64 {
	return math.Asinh(math.Sqrt(gamma*gamma - 1))
}

// Sinhc returns sinh(x)/x, continuous through x = 0.
func Sinhc(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 1 + x*x/6
	}
	return math.Sinh(x) / x
}

// Sinc returns sin(x)/x, continuous through x = 0.
func Sinc(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 1 - x*x/6
	}
	return math.Sin(x) / x
}
