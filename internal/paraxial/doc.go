// Package paraxial evaluates the linearized transverse dynamics of a
// charged particle moving along the axis of a beamline with on-axis
// fields Ez(z) and Bz(z).
//
// The state vector is y = [x, Px] with Px the canonical transverse
// momentum normalized by mc. To lowest order y' = A(z)*y with
//
//	A = | 0                                    1/(beta*gamma) |
//	    | -(2*gamma*w^2 + c^2*gamma'')/(2*c^2*beta)        0  |
//
// where w is the Larmor frequency q*Bz/(2*gamma*m), gamma' = Ez/mc^2 and
// gamma'' its longitudinal gradient. The reference particle's energy
// advances by the trapezoid of gamma' over each step.
//
// The package also provides the rapidity helpers used by the analytic
// constant-field propagator (Gulliford & Bazarov 2012).
package paraxial
