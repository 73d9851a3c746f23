// Package beam provides the core value types for transfer-matrix
// propagation of paraxial beamline optics:
//
//   - [Mat2]: 2x2 real matrix in (x, Px) phase space
//   - [Kinematics]: reference-particle gamma and beta
//   - [Sample]: on-axis field data at one longitudinal position
//   - [Stepper]: single-step integrator interface
//
// Every quantity a step needs is passed explicitly; no state is shared
// between solver invocations.
package beam
