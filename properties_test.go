package belinear_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ebeamlab/belinear"
)

// frobDiff returns the Frobenius-norm relative difference between two
// matrices, a scale-free comparison that does not blow up on
// near-zero individual elements.
func frobDiff(a, b belinear.Matrix) float64 {
	var num, den float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			d := a[i][j] - b[i][j]
			num += d * d
			den += b[i][j] * b[i][j]
		}
	}
	return math.Sqrt(num / den)
}

// smoothFields samples Gaussian Ez/Bz bumps over 0.2 m onto a grid of
// n points. The profiles are analytic, so refining the grid resamples
// the same physical beamline.
func smoothFields(n int) (ez, bz []float64, h float64) {
	const (
		length = 0.2
		e0     = 8e6  // V/m
		zE     = 0.05 // m
		sigmaE = 0.01
		b0     = 0.1 // T
		zB     = 0.12
		sigmaB = 0.02
	)
	h = length / float64(n-1)
	ez = make([]float64, n)
	bz = make([]float64, n)
	for i := 0; i < n; i++ {
		z := float64(i) * h
		de := (z - zE) / sigmaE
		db := (z - zB) / sigmaB
		ez[i] = e0 * math.Exp(-de*de/2)
		bz[i] = b0 * math.Exp(-db*db/2)
	}
	return ez, bz, h
}

// gunFields samples the hard-edged test beamline: a 2 MV/m gap over
// the first 5 mm and a 6 mT solenoid on [0.1, 0.2), over 0.5 m total.
func gunFields(h float64) (ez, bz []float64) {
	n := int(math.Round(0.5/h)) + 1
	ez = make([]float64, n)
	bz = make([]float64, n)
	for i := 0; i < n; i++ {
		z := float64(i) * h
		if z < 0.005 {
			ez[i] = 2e6
		}
		if z >= 0.1 && z < 0.2 {
			bz[i] = 6e-3
		}
	}
	return ez, bz
}

func solveSmooth(method belinear.Method, n int) belinear.Matrix {
	ez, bz, h := smoothFields(n)
	m, err := belinear.TransferMatrix(ez, bz, h, belinear.Options{GammaInitial: 1.5, Method: method})
	Expect(err).NotTo(HaveOccurred())
	return m
}

// convergenceSlope fits the log-log error decay of a method against a
// fine-step midpoint reference of the same beamline.
func convergenceSlope(method belinear.Method) float64 {
	ref := solveSmooth(belinear.Midpoint, 25601)

	coarse := frobDiff(solveSmooth(method, 201), ref)
	fine := frobDiff(solveSmooth(method, 801), ref)

	// Grid intervals 200 -> 800: h shrinks by 4.
	return math.Log(coarse/fine) / math.Log(4)
}

var _ = Describe("transfer matrix properties", func() {
	Describe("field-free drift", func() {
		It("reduces every method to the exact drift matrix", func() {
			n := 501
			h := 1e-3
			ez := make([]float64, n)
			bz := make([]float64, n)
			gamma := 2.0
			beta := math.Sqrt(1 - 1/(gamma*gamma))
			want := float64(n-1) * h / (beta * gamma)

			for _, method := range belinear.Methods() {
				m, err := belinear.TransferMatrix(ez, bz, h, belinear.Options{GammaInitial: gamma, Method: method})
				Expect(err).NotTo(HaveOccurred(), "method %s", method)
				Expect(m[0][0]).To(BeNumerically("~", 1, 1e-12))
				Expect(m[1][1]).To(BeNumerically("~", 1, 1e-12))
				Expect(m[1][0]).To(BeNumerically("~", 0, 1e-12))
				Expect(m[0][1]).To(BeNumerically("~", want, want*1e-10))
				Expect(m.Det()).To(BeNumerically("~", 1, 1e-10))
			}
		})
	})

	Describe("symplecticity", func() {
		It("keeps det(M) at 1 for the midpoint method over a long hard-edged line", func() {
			h := 5e-6
			ez, bz := gunFields(h)

			ms, err := belinear.CumulativeMatrices(ez, bz, h, belinear.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			for _, m := range []belinear.Matrix{ms[len(ms)/2], ms[len(ms)-1]} {
				Expect(m.Det()).To(BeNumerically("~", 1, 1e-10))
			}
		})

		It("keeps det(M) at 1 for the constant-field method", func() {
			ez, bz, h := smoothFields(2001)

			m, err := belinear.TransferMatrix(ez, bz, h, belinear.Options{GammaInitial: 1.5, Method: belinear.ConstantField})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Det()).To(BeNumerically("~", 1, 1e-9))
		})
	})

	Describe("convergence order", func() {
		It("is second order for midpoint", func() {
			Expect(convergenceSlope(belinear.Midpoint)).To(BeNumerically(">", 1.6))
		})

		It("is first order for implicit euler", func() {
			slope := convergenceSlope(belinear.ImplicitEuler)
			Expect(slope).To(BeNumerically(">", 0.5))
			Expect(slope).To(BeNumerically("<", 1.7))
		})

		It("decays with step size for constant field", func() {
			Expect(convergenceSlope(belinear.ConstantField)).To(BeNumerically(">", 0.5))
		})
	})

	Describe("cumulative consistency", func() {
		It("makes the last cumulative entry equal the single-shot matrix for every method", func() {
			ez, bz, h := smoothFields(1001)

			for _, method := range belinear.Methods() {
				opts := belinear.Options{GammaInitial: 1.5, Method: method}
				single, err := belinear.TransferMatrix(ez, bz, h, opts)
				Expect(err).NotTo(HaveOccurred())

				ms, err := belinear.CumulativeMatrices(ez, bz, h, opts)
				Expect(err).NotTo(HaveOccurred())
				Expect(ms).To(HaveLen(len(ez) - 1))
				Expect(ms[len(ms)-1]).To(Equal(single))
			}
		})
	})

	Describe("step refinement", func() {
		It("changes the result by no more than the truncation bound when halving h", func() {
			coarseEz, coarseBz := gunFields(1e-5)
			fineEz, fineBz := gunFields(5e-6)

			coarse, err := belinear.TransferMatrix(coarseEz, coarseBz, 1e-5, belinear.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			fine, err := belinear.TransferMatrix(fineEz, fineBz, 5e-6, belinear.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			Expect(frobDiff(coarse, fine)).To(BeNumerically("<", 0.01))
		})
	})

	Describe("dc gun scenario", func() {
		// 2 MV/m over [0, 0.005), 6 mT over [0.1, 0.2), z in [0, 0.5],
		// h = 5e-6, from rest. The reference is cross-method agreement
		// at fixed h rather than a pinned scalar; constant-field and
		// midpoint solve the same beamline within 5 % here, implicit
		// euler within 15 %.
		It("produces a finite symplectic matrix from rest", func() {
			h := 5e-6
			ez, bz := gunFields(h)

			mid, err := belinear.TransferMatrix(ez, bz, h, belinear.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					Expect(math.IsNaN(mid[i][j])).To(BeFalse())
					Expect(math.IsInf(mid[i][j], 0)).To(BeFalse())
				}
			}
			Expect(mid.Det()).To(BeNumerically("~", 1, 1e-8))

			cf, err := belinear.TransferMatrix(ez, bz, h, belinear.Options{Method: belinear.ConstantField})
			Expect(err).NotTo(HaveOccurred())
			Expect(frobDiff(cf, mid)).To(BeNumerically("<", 0.05))

			eu, err := belinear.TransferMatrix(ez, bz, h, belinear.Options{Method: belinear.ImplicitEuler})
			Expect(err).NotTo(HaveOccurred())
			Expect(frobDiff(eu, mid)).To(BeNumerically("<", 0.15))
		})
	})

	Describe("gun-start boundary", func() {
		It("rejects a start from rest without accelerating field", func() {
			n := 1000
			ez := make([]float64, n)
			bz := make([]float64, n)
			for i := range bz {
				bz[i] = 6e-3
			}

			_, err := belinear.TransferMatrix(ez, bz, 5e-6, belinear.DefaultOptions())
			Expect(err).To(MatchError(belinear.ErrGunStart))
		})
	})
})
