package celest

import "math"

// On a circle all three anomalies coincide.
var circularEquations = KeplerEquations{
	Family: Circular,
	ArealVelocity: func(μ, a, _ float64) float64 {
		return math.Sqrt(a*μ) / 2
	},
	SemiParameter: func(a, _ float64) float64 {
		return a
	},
	PeriapsisDistance: func(a, _ float64) float64 {
		return a
	},
	MeanMotion: func(μ, a float64) float64 {
		return math.Sqrt(μ / (a * a * a))
	},
	Period:             periodic,
	TotalEnergyPerMass: boundEnergy,
	VelocitySquared: func(μ, r, _ float64) float64 {
		return μ / r
	},
	AnomalyFromTrue: func(ν, _ float64) (float64, error) {
		return ν, nil
	},
	TrueFromAnomaly: func(anomaly, _ float64) float64 {
		return anomaly
	},
	MeanFromAnomaly: func(anomaly, _ float64) float64 {
		return anomaly
	},
	AnomalyFromMean: func(M, _ float64, _ SolverConfig) (float64, int, error) {
		return M, 0, nil
	},
}
