package propagate

import (
	"github.com/ebeamlab/belinear/internal/beam"
)

// Propagator owns the stepping loop for one solver invocation. Inputs
// are read-only; a fresh Propagator is cheap and reentrant.
type Propagator struct {
	stepper beam.Stepper
}

func New(stepper beam.Stepper) *Propagator {
	return &Propagator{stepper: stepper}
}

// Final integrates the full field pair and returns only the end-to-end
// transfer matrix.
func (p *Propagator) Final(ez, bz []float64, h, gammaInitial float64) (beam.Mat2, error) {
	m := beam.Identity()
	err := p.run(ez, bz, h, gammaInitial, func(_ int, cum beam.Mat2) {
		m = cum
	})
	if err != nil {
		return beam.Mat2{}, err
	}
	return m, nil
}

// Cumulative integrates the full field pair and returns the propagator
// from the start up to every step, in increasing-z order.
func (p *Propagator) Cumulative(ez, bz []float64, h, gammaInitial float64) ([]beam.Mat2, error) {
	out := make([]beam.Mat2, len(ez)-1)
	err := p.run(ez, bz, h, gammaInitial, func(i int, cum beam.Mat2) {
		out[i] = cum
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Propagator) run(ez, bz []float64, h, gammaInitial float64, record func(int, beam.Mat2)) error {
	samples := buildSamples(ez, bz, h)
	kin := beam.NewKinematics(gammaInitial)
	cum := beam.Identity()

	for i := 0; i+1 < len(samples); i++ {
		st := beam.Step{Start: samples[i], End: samples[i+1], H: h}
		j, next, err := p.stepper.Step(st, kin)
		if err != nil {
			return &beam.StepError{Step: i, Z: float64(i) * h, Wrapped: err}
		}
		// The newest Jacobian transforms the accumulated upstream matrix.
		cum = j.Mul(cum)
		if !cum.IsFinite() {
			return &beam.StepError{Step: i, Z: float64(i) * h, Wrapped: beam.ErrNonFinite}
		}
		kin = next
		record(i, cum)
	}
	return nil
}

// buildSamples reduces the raw field arrays to per-sample profile data.
// GammaPrime2 follows the numpy.gradient convention: central differences
// in the interior, one-sided at the two ends.
func buildSamples(ez, bz []float64, h float64) []beam.Sample {
	n := len(ez)
	s := make([]beam.Sample, n)
	for i := 0; i < n; i++ {
		s[i] = beam.Sample{
			Ez:         ez[i],
			Bz:         bz[i],
			GammaPrime: ez[i] / beam.RestEnergyEV,
		}
	}
	if n < 2 {
		return s
	}
	s[0].GammaPrime2 = (s[1].GammaPrime - s[0].GammaPrime) / h
	s[n-1].GammaPrime2 = (s[n-1].GammaPrime - s[n-2].GammaPrime) / h
	for i := 1; i+1 < n; i++ {
		s[i].GammaPrime2 = (s[i+1].GammaPrime - s[i-1].GammaPrime) / (2 * h)
	}
	return s
}
