package celest

import (
	"fmt"
	"math"
)

// The semi-major axis of a parabola is infinite, so the `a` slot of a parabolic
// element set carries the semi-latus rectum p instead.
var parabolicEquations = KeplerEquations{
	Family: Parabolic,
	ArealVelocity: func(μ, p, _ float64) float64 {
		return math.Sqrt(μ*p) / 2
	},
	SemiParameter: func(p, _ float64) float64 {
		return p
	},
	PeriapsisDistance: func(p, _ float64) float64 {
		return p / 2
	},
	MeanMotion: func(μ, p float64) float64 {
		return 2 * math.Sqrt(μ/(p*p*p))
	},
	Period: unbounded,
	TotalEnergyPerMass: func(float64, float64) float64 {
		return 0
	},
	VelocitySquared: func(μ, r, _ float64) float64 {
		return 2 * μ / r
	},
	AnomalyFromTrue: func(ν, _ float64) (float64, error) {
		ν = wrapπ(ν)
		if math.Abs(ν) >= math.Pi {
			return math.NaN(), fmt.Errorf("%w: true anomaly %f is at infinity on a parabola", ErrInvalidElement, ν)
		}
		return math.Tan(ν / 2), nil
	},
	TrueFromAnomaly: func(B, _ float64) float64 {
		return 2 * math.Atan(B)
	},
	MeanFromAnomaly: func(B, _ float64) float64 {
		// Barker's equation
		return B + B*B*B/3
	},
	AnomalyFromMean: func(M, _ float64, _ SolverConfig) (float64, int, error) {
		// Closed form root of B³/3 + B - M = 0, solved on |M| to avoid cancellation.
		m := math.Abs(M)
		A := math.Cbrt(1.5*m + math.Sqrt(1+2.25*m*m))
		return math.Copysign(A-1/A, M), 0, nil
	},
}
