package celest

import (
	"fmt"
	"math"
)

// EccentricityTolerance is the half width of the circular and parabolic eccentricity bands.
const EccentricityTolerance = 1e-6

// OrbitFamily defines an enum of conic sections.
type OrbitFamily uint8

const (
	// Circular orbits have e < ε.
	Circular OrbitFamily = iota + 1
	// Elliptical orbits have ε <= e < 1-ε.
	Elliptical
	// Parabolic orbits have 1-ε <= e < 1+ε.
	Parabolic
	// Hyperbolic orbits have e >= 1+ε.
	Hyperbolic
)

func (f OrbitFamily) String() string {
	switch f {
	case Circular:
		return "circular"
	case Elliptical:
		return "elliptical"
	case Parabolic:
		return "parabolic"
	case Hyperbolic:
		return "hyperbolic"
	}
	panic("cannot stringify unknown orbit family")
}

// Bound returns whether orbits of this family are closed, and therefore periodic.
func (f OrbitFamily) Bound() bool {
	return f == Circular || f == Elliptical
}

// Classify returns the orbit family governing the provided eccentricity.
func Classify(e float64) (OrbitFamily, error) {
	switch {
	case math.IsNaN(e) || e < 0:
		return 0, fmt.Errorf("%w: eccentricity %f", ErrInvalidElement, e)
	case e < EccentricityTolerance:
		return Circular, nil
	case e < 1-EccentricityTolerance:
		return Elliptical, nil
	case e < 1+EccentricityTolerance:
		return Parabolic, nil
	default:
		return Hyperbolic, nil
	}
}
