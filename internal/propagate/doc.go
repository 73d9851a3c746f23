// Package propagate drives a Stepper across a uniformly sampled field
// pair and accumulates the per-step Jacobians into transfer matrices.
//
// Convention: n field samples bound n-1 intervals, so n-1 steps are
// taken. The cumulative sequence has n-1 entries in increasing-z order;
// entry k is the propagator from the first sample to sample k+1.
//
// Matrix products over very large step counts accumulate floating-point
// error; no re-orthogonalization is performed.
package propagate
