package celest

import "fmt"

// KeplerEquations gathers the relations which depend on the conic section of an orbit.
// One instance exists per OrbitFamily, see Equations.
//
// The anomaly is the family specific intermediate angle: the true anomaly itself
// for circular orbits, the eccentric anomaly E for ellipses, the parabolic anomaly
// B = tan(ν/2) for parabolas and the hyperbolic anomaly H for hyperbolas.
type KeplerEquations struct {
	Family OrbitFamily
	// ArealVelocity returns half of the specific angular momentum.
	ArealVelocity func(μ, a, e float64) float64
	// SemiParameter returns the semi-latus rectum p.
	SemiParameter func(a, e float64) float64
	// PeriapsisDistance returns the radius at periapsis.
	PeriapsisDistance func(a, e float64) float64
	// MeanMotion returns the rate of change of the mean anomaly.
	MeanMotion func(μ, a float64) float64
	// Period returns the orbital period from the mean motion, or ErrUnboundedOrbit.
	Period func(n float64) (float64, error)
	// TotalEnergyPerMass returns the specific mechanical energy ξ.
	TotalEnergyPerMass func(μ, a float64) float64
	// VelocitySquared returns v² at radius r (vis-viva).
	VelocitySquared func(μ, r, a float64) float64
	// AnomalyFromTrue converts the true anomaly into this family's anomaly.
	AnomalyFromTrue func(ν, e float64) (float64, error)
	// TrueFromAnomaly converts this family's anomaly into the true anomaly.
	TrueFromAnomaly func(anomaly, e float64) float64
	// MeanFromAnomaly returns the mean anomaly (Kepler's equation or its analogue).
	MeanFromAnomaly func(anomaly, e float64) float64
	// AnomalyFromMean inverts MeanFromAnomaly and returns the number of iterations used.
	AnomalyFromMean func(M, e float64, cfg SolverConfig) (float64, int, error)
}

var keplerTable = [...]KeplerEquations{
	Circular:   circularEquations,
	Elliptical: ellipticalEquations,
	Parabolic:  parabolicEquations,
	Hyperbolic: hyperbolicEquations,
}

// Equations returns the Kepler equations of the provided orbit family.
// Panics on an unknown family.
func Equations(f OrbitFamily) KeplerEquations {
	if f == 0 || int(f) >= len(keplerTable) {
		panic(fmt.Errorf("unknown orbit family %d", f))
	}
	return keplerTable[f]
}

// EquationsFor classifies the eccentricity and returns the matching equations.
func EquationsFor(e float64) (KeplerEquations, error) {
	f, err := Classify(e)
	if err != nil {
		return KeplerEquations{}, err
	}
	return Equations(f), nil
}

func periodic(n float64) (float64, error) {
	if !(n > 0) {
		return 0, fmt.Errorf("%w: mean motion %f", ErrInvalidElement, n)
	}
	return twoπ / n, nil
}

func unbounded(float64) (float64, error) {
	return 0, ErrUnboundedOrbit
}

func boundEnergy(μ, a float64) float64 {
	return -μ / (2 * a)
}

func visViva(μ, r, a float64) float64 {
	return μ * (2/r - 1/a)
}
