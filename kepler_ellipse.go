package celest

import "math"

var ellipticalEquations = KeplerEquations{
	Family: Elliptical,
	ArealVelocity: func(μ, a, e float64) float64 {
		return math.Sqrt(a*μ*(1-e*e)) / 2
	},
	SemiParameter: func(a, e float64) float64 {
		return a * (1 - e*e)
	},
	PeriapsisDistance: func(a, e float64) float64 {
		return a * (1 - e)
	},
	MeanMotion: func(μ, a float64) float64 {
		return math.Sqrt(μ / (a * a * a))
	},
	Period:             periodic,
	TotalEnergyPerMass: boundEnergy,
	VelocitySquared:    visViva,
	AnomalyFromTrue: func(ν, e float64) (float64, error) {
		E := 2 * math.Atan(math.Sqrt((1-e)/(1+e))*math.Tan(ν/2))
		return QuadrantFix(E, ν), nil
	},
	TrueFromAnomaly: func(E, e float64) float64 {
		ν := 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E/2))
		return QuadrantFix(ν, E)
	},
	MeanFromAnomaly: func(E, e float64) float64 {
		return E - e*math.Sin(E)
	},
	AnomalyFromMean: ellipticalAnomalyFromMean,
}

// ellipticalAnomalyFromMean solves Kepler's equation M = E - e·sin(E) with Newton's method.
// The solve happens in [0, 2π) and the result is shifted back to the revolution of M.
func ellipticalAnomalyFromMean(M, e float64, cfg SolverConfig) (float64, int, error) {
	rev := math.Floor(M / twoπ)
	m := M - rev*twoπ
	E0 := m
	if e > 0.8 {
		E0 = math.Pi
	}
	E, iter, step, ok := newton(func(E float64) float64 {
		return E - e*math.Sin(E) - m
	}, func(E float64) float64 {
		return 1 - e*math.Cos(E)
	}, E0, cfg)
	if !ok {
		return math.NaN(), iter, &AnomalyConvergenceError{Elliptical, M, e, iter, step}
	}
	// The root of m in [0, 2π) lies in [0, 2π), the last step may round past either end.
	E = math.Min(math.Max(E, 0), math.Nextafter(twoπ, 0))
	return E + rev*twoπ, iter, nil
}
