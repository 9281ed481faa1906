package celest

import (
	"fmt"
	"math"
)

// Hyperbolic element sets carry a negative semi-major axis.
var hyperbolicEquations = KeplerEquations{
	Family: Hyperbolic,
	ArealVelocity: func(μ, a, e float64) float64 {
		return math.Sqrt(-a*μ*(e*e-1)) / 2
	},
	SemiParameter: func(a, e float64) float64 {
		return a * (1 - e*e)
	},
	PeriapsisDistance: func(a, e float64) float64 {
		return a * (1 - e)
	},
	MeanMotion: func(μ, a float64) float64 {
		return math.Sqrt(μ / (-a * a * a))
	},
	Period:             unbounded,
	TotalEnergyPerMass: boundEnergy, // positive since a < 0
	VelocitySquared:    visViva,
	AnomalyFromTrue: func(ν, e float64) (float64, error) {
		ν = wrapπ(ν)
		if math.Abs(ν) >= math.Acos(-1/e) {
			return math.NaN(), fmt.Errorf("%w: true anomaly %f beyond the asymptote of a hyperbola with e=%f", ErrInvalidElement, ν, e)
		}
		return 2 * math.Atanh(math.Sqrt((e-1)/(e+1))*math.Tan(ν/2)), nil
	},
	TrueFromAnomaly: func(H, e float64) float64 {
		return 2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(H/2))
	},
	MeanFromAnomaly: func(H, e float64) float64 {
		return e*math.Sinh(H) - H
	},
	AnomalyFromMean: hyperbolicAnomalyFromMean,
}

// hyperbolicAnomalyFromMean solves M = e·sinh(H) - H with Newton's method.
// The equation is odd in H, so the solve happens on |M|.
func hyperbolicAnomalyFromMean(M, e float64, cfg SolverConfig) (float64, int, error) {
	m := math.Abs(M)
	// Vallado's starting guess, capped by the cubic approximation which never
	// sits below the root (e·sinh(H) - H >= (e-1)H + eH³/6).
	H0 := math.Min(math.Log(2*m/e+1.8), math.Cbrt(6*m/e))
	H, iter, step, ok := newton(func(H float64) float64 {
		return e*math.Sinh(H) - H - m
	}, func(H float64) float64 {
		return e*math.Cosh(H) - 1
	}, H0, cfg)
	if !ok {
		return math.NaN(), iter, &AnomalyConvergenceError{Hyperbolic, M, e, iter, step}
	}
	return math.Copysign(H, M), iter, nil
}
