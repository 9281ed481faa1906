package celest

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-kit/log/level"
)

// SolverConfig bounds the iterative inversion of Kepler's equation.
type SolverConfig struct {
	Tolerance     float64 // stop once a Newton step is smaller than this (radians)
	MaxIterations int
}

// DefaultSolverConfig is used when no configuration file overrides it.
var DefaultSolverConfig = SolverConfig{Tolerance: 1e-12, MaxIterations: 50}

// Validate returns an error if the configuration cannot terminate meaningfully.
func (c SolverConfig) Validate() error {
	if !(c.Tolerance > 0) {
		return fmt.Errorf("%w: solver tolerance %g must be positive", ErrInvalidElement, c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: solver max iterations %d must be positive", ErrInvalidElement, c.MaxIterations)
	}
	return nil
}

// newton runs at most cfg.MaxIterations Newton steps from x0.
// Returns the last iterate, the number of iterations, the last step and whether it converged.
func newton(f, fPrime func(float64) float64, x0 float64, cfg SolverConfig) (x float64, iter int, step float64, ok bool) {
	x = x0
	step = math.Inf(1)
	for iter < cfg.MaxIterations {
		iter++
		step = f(x) / fPrime(x)
		x -= step
		if math.Abs(step) < cfg.Tolerance*math.Max(1, math.Abs(x)) {
			return x, iter, step, true
		}
	}
	return x, iter, step, false
}

// MeanAnomaly returns the mean anomaly of the provided true anomaly.
func MeanAnomaly(ν, e float64) (float64, error) {
	eqn, err := EquationsFor(e)
	if err != nil {
		return math.NaN(), err
	}
	anomaly, err := eqn.AnomalyFromTrue(ν, e)
	if err != nil {
		return math.NaN(), err
	}
	return eqn.MeanFromAnomaly(anomaly, e), nil
}

// TrueAnomalyFromMean inverts the mean anomaly into a true anomaly.
// For closed orbits, M in [0, 2π) yields ν in [0, 2π).
func TrueAnomalyFromMean(M, e float64, cfg SolverConfig) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return math.NaN(), err
	}
	eqn, err := EquationsFor(e)
	if err != nil {
		return math.NaN(), err
	}
	anomaly, iter, err := eqn.AnomalyFromMean(M, e, cfg)
	observeSolve(eqn.Family, iter, err)
	if err != nil {
		var convErr *AnomalyConvergenceError
		if errors.As(err, &convErr) {
			level.Warn(logger).Log("subsys", "kepler", "family", eqn.Family, "M", M, "e", e, "iterations", convErr.Iterations, "step", convErr.Step)
		}
		return math.NaN(), err
	}
	return eqn.TrueFromAnomaly(anomaly, e), nil
}
