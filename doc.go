// Package belinear computes linear (paraxial) transfer matrices of a
// charged-particle beamline from uniformly sampled on-axis fields Ez(z)
// and Bz(z).
//
// The solver integrates the relativistic transverse equations of motion
// for y = [x, Px] — offset in meters and canonical momentum normalized
// by mc — and composes the per-step 2x2 Jacobians into either the
// end-to-end transfer matrix or the cumulative matrix at every step.
// Phase space is (x, Px) rather than (x, x') so that a gun start with
// zero longitudinal velocity stays well defined.
//
// Three stepping methods are available: the symplectic [Midpoint]
// (default), the damped [ImplicitEuler], and the analytic
// [ConstantField] propagator.
//
//	ez, bz := ...          // V/m and T, equal length, spacing h
//	m, err := belinear.TransferMatrix(ez, bz, 5e-6, belinear.DefaultOptions())
//
// Inputs are read-only and every call is independent; the package keeps
// no global state.
package belinear
