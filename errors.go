package belinear

import (
	"errors"

	"github.com/ebeamlab/belinear/internal/beam"
)

// Input validation errors, all detected before integration begins.
var (
	// ErrFieldLength indicates mismatched Ez/Bz lengths or fewer than
	// two samples.
	ErrFieldLength = errors.New("belinear: field arrays need equal length with at least two samples")

	// ErrStepSize indicates a non-positive step size.
	ErrStepSize = errors.New("belinear: step size must be positive")

	// ErrUnknownMethod indicates a method name outside the supported set.
	ErrUnknownMethod = errors.New("belinear: unknown method")

	// ErrGammaInitial indicates an initial Lorentz factor below 1.
	ErrGammaInitial = errors.New("belinear: initial gamma must be at least 1")

	// ErrGunStart indicates a start from rest with Ez(0) = 0, which makes
	// the paraxial coefficient singular at the first step.
	ErrGunStart = errors.New("belinear: Ez must be nonzero at the first sample when starting from rest")
)

// ErrDegenerate is reported when integration drives gamma below 1
// (decelerating fields overshooting rest energy). The call fails at the
// offending step; no partial sequence is returned.
var ErrDegenerate = beam.ErrGammaDomain
