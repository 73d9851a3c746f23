package beam

import "math"

// Physical constants for the electron, matching CODATA values.
const (
	SpeedOfLight     = 299792458.0     // m/s
	ElectronMass     = 9.1093837015e-31 // kg
	ElementaryCharge = 1.602176634e-19  // C
	RestEnergyEV     = 510.998950e3     // eV
)

// Mat2 is a 2x2 real matrix acting on the (x, Px) phase-space vector.
type Mat2 [2][2]float64

// Identity returns the 2x2 identity matrix.
func Identity() Mat2 {
	return Mat2{{1, 0}, {0, 1}}
}

// Mul returns m*n.
func (m Mat2) Mul(n Mat2) Mat2 {
	return Mat2{
		{m[0][0]*n[0][0] + m[0][1]*n[1][0], m[0][0]*n[0][1] + m[0][1]*n[1][1]},
		{m[1][0]*n[0][0] + m[1][1]*n[1][0], m[1][0]*n[0][1] + m[1][1]*n[1][1]},
	}
}

// Add returns m+n.
func (m Mat2) Add(n Mat2) Mat2 {
	return Mat2{
		{m[0][0] + n[0][0], m[0][1] + n[0][1]},
		{m[1][0] + n[1][0], m[1][1] + n[1][1]},
	}
}

// Sub returns m-n.
func (m Mat2) Sub(n Mat2) Mat2 {
	return Mat2{
		{m[0][0] - n[0][0], m[0][1] - n[0][1]},
		{m[1][0] - n[1][0], m[1][1] - n[1][1]},
	}
}

// Scale returns k*m.
func (m Mat2) Scale(k float64) Mat2 {
	return Mat2{
		{k * m[0][0], k * m[0][1]},
		{k * m[1][0], k * m[1][1]},
	}
}

// Det returns the determinant.
func (m Mat2) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Inv returns the closed-form inverse. It fails with ErrSingular when the
// determinant vanishes or is not finite.
func (m Mat2) Inv() (Mat2, error) {
	d := m.Det()
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return Mat2{}, ErrSingular
	}
	return Mat2{
		{m[1][1] / d, -m[0][1] / d},
		{-m[1][0] / d, m[0][0] / d},
	}, nil
}

// IsFinite reports whether every entry is a finite number.
func (m Mat2) IsFinite() bool {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}

// Apply returns m applied to the phase-space vector (x, px).
func (m Mat2) Apply(x, px float64) (float64, float64) {
	return m[0][0]*x + m[0][1]*px, m[1][0]*x + m[1][1]*px
}

// Kinematics holds the longitudinal state of the reference particle.
// Invariant: Gamma >= 1 and Beta = sqrt(1 - 1/Gamma^2).
type Kinematics struct {
	Gamma float64
	Beta  float64
}

// NewKinematics derives the kinematic state from a Lorentz factor.
// Gamma == 1 yields Beta == 0, the gun-start case.
func NewKinematics(gamma float64) Kinematics {
	if gamma <= 1 {
		return Kinematics{Gamma: gamma}
	}
	return Kinematics{Gamma: gamma, Beta: math.Sqrt(1 - 1/(gamma*gamma))}
}

// Sample is the reduced on-axis field data at one longitudinal position.
// GammaPrime is Ez/mc^2 in 1/m; GammaPrime2 is its longitudinal gradient,
// taken over the full sample grid (central differences, one-sided ends).
type Sample struct {
	Ez          float64 // V/m
	Bz          float64 // T
	GammaPrime  float64 // 1/m
	GammaPrime2 float64 // 1/m^2
}

// Step bounds one integration interval of width H.
type Step struct {
	Start Sample
	End   Sample
	H     float64
}

// Stepper advances the transverse linear system across one Step.
// It returns the per-step 2x2 Jacobian and the kinematic state at the
// step's end. Implementations are pure: no state survives between calls.
type Stepper interface {
	Name() string
	Step(st Step, kin Kinematics) (Mat2, Kinematics, error)
}
