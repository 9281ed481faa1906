package celest

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	eccentricityε = 1e-6
	angleε        = 1e-6 // radians
	distanceε     = 1e-6 // relative
)

// KeplerElements defines an orbit via its classical orbital elements.
// A is the semi-major axis for every family but parabolic orbits, where it holds
// the semi-latus rectum p. All angles are in radians.
type KeplerElements struct {
	A, E, I, ω, Ω, ν float64
	Origin           *CelestialObject // Central body, shared and never modified
}

// NewKeplerElements returns the element set from the semi-major axis (or p for
// parabolas), eccentricity and the four angles in radians.
func NewKeplerElements(a, e, i, ω, Ω, ν float64, origin *CelestialObject) KeplerElements {
	return KeplerElements{a, e, i, ω, Ω, ν, origin}
}

// NewKeplerElementsFromVector reads [a, e, i, ω, Ω, ν].
func NewKeplerElementsFromVector(v []float64, origin *CelestialObject) (KeplerElements, error) {
	if len(v) != 6 {
		return KeplerElements{}, &DimensionError{6, len(v)}
	}
	return KeplerElements{v[0], v[1], v[2], v[3], v[4], v[5], origin}, nil
}

// ToVector returns [a, e, i, ω, Ω, ν].
func (k KeplerElements) ToVector() []float64 {
	return []float64{k.A, k.E, k.I, k.ω, k.Ω, k.ν}
}

// Elements returns the six classical elements.
func (k KeplerElements) Elements() (a, e, i, ω, Ω, ν float64) {
	return k.A, k.E, k.I, k.ω, k.Ω, k.ν
}

// Family classifies the orbit from its current eccentricity.
func (k KeplerElements) Family() (OrbitFamily, error) {
	return Classify(k.E)
}

func (k KeplerElements) μ() float64 {
	if k.Origin == nil {
		return math.NaN()
	}
	return k.Origin.μ
}

// derive evaluates f with the equations of the orbit's family, or returns NaN
// when the eccentricity is invalid.
func (k KeplerElements) derive(f func(eqn KeplerEquations) float64) float64 {
	eqn, err := EquationsFor(k.E)
	if err != nil {
		return math.NaN()
	}
	return f(eqn)
}

// SemiParameter returns the semi-latus rectum p.
func (k KeplerElements) SemiParameter() float64 {
	return k.derive(func(eqn KeplerEquations) float64 {
		return eqn.SemiParameter(k.A, k.E)
	})
}

// Periapsis returns the periapsis radius.
func (k KeplerElements) Periapsis() float64 {
	return k.derive(func(eqn KeplerEquations) float64 {
		return eqn.PeriapsisDistance(k.A, k.E)
	})
}

// Apoapsis returns the apoapsis radius of a closed orbit.
func (k KeplerElements) Apoapsis() (float64, error) {
	f, err := k.Family()
	if err != nil {
		return math.NaN(), err
	}
	if !f.Bound() {
		return math.Inf(1), ErrUnboundedOrbit
	}
	return k.A * (1 + k.E), nil
}

// Energy returns the specific mechanical energy ξ.
func (k KeplerElements) Energy() float64 {
	return k.derive(func(eqn KeplerEquations) float64 {
		return eqn.TotalEnergyPerMass(k.μ(), k.A)
	})
}

// MeanMotion returns the mean motion in radians per second.
func (k KeplerElements) MeanMotion() float64 {
	return k.derive(func(eqn KeplerEquations) float64 {
		return eqn.MeanMotion(k.μ(), k.A)
	})
}

// Period returns the period of this orbit.
func (k KeplerElements) Period() (time.Duration, error) {
	if k.Origin == nil {
		return 0, fmt.Errorf("%w: no central body", ErrInvalidElement)
	}
	eqn, err := EquationsFor(k.E)
	if err != nil {
		return 0, err
	}
	seconds, err := eqn.Period(eqn.MeanMotion(k.μ(), k.A))
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// ArealVelocity returns half of the specific angular momentum.
func (k KeplerElements) ArealVelocity() float64 {
	return k.derive(func(eqn KeplerEquations) float64 {
		return eqn.ArealVelocity(k.μ(), k.A, k.E)
	})
}

// MeanAnomaly returns the mean anomaly at the current true anomaly.
func (k KeplerElements) MeanAnomaly() (float64, error) {
	return MeanAnomaly(k.ν, k.E)
}

// RNorm returns the norm of the radius vector, but without computing the radius vector.
func (k KeplerElements) RNorm() float64 {
	return k.SemiParameter() / (1 + k.E*math.Cos(k.ν))
}

// VNorm returns the norm of the velocity vector from the vis-viva equation.
func (k KeplerElements) VNorm() float64 {
	return k.derive(func(eqn KeplerEquations) float64 {
		return math.Sqrt(eqn.VelocitySquared(k.μ(), k.RNorm(), k.A))
	})
}

// Tildeω returns the longitude of periapsis.
func (k KeplerElements) Tildeω() float64 {
	return WrapAngle(k.ω + k.Ω)
}

// TrueLongλ returns the *approximate* true longitude (cf. Vallado page 103).
// NOTE: One should only need this for equatorial orbits.
func (k KeplerElements) TrueLongλ() float64 {
	return WrapAngle(k.ω + k.Ω + k.ν)
}

// ArgLatitudeU returns the argument of latitude.
func (k KeplerElements) ArgLatitudeU() float64 {
	return WrapAngle(k.ν + k.ω)
}

// FlightPathAngle returns the flight path angle γ.
func (k KeplerElements) FlightPathAngle() float64 {
	return FlightPathAngle(k.E, k.ν)
}

// ToCartesian returns the position and velocity about Origin.
func (k KeplerElements) ToCartesian() (CartesianElements, error) {
	if k.Origin == nil {
		return CartesianElements{}, fmt.Errorf("%w: no central body", ErrInvalidElement)
	}
	return KeplerToCartesian(k, k.Origin.μ)
}

// String implements the stringer interface (hence the value receiver)
func (k KeplerElements) String() string {
	f, err := k.Family()
	if err != nil {
		return fmt.Sprintf("invalid e=%f", k.E)
	}
	switch {
	case f == Parabolic:
		return fmt.Sprintf("p=%.1f e=%.6f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", k.A, k.E, Rad2deg(k.I), Rad2deg(k.Ω), Rad2deg(k.ω), Rad2deg(k.ν))
	case f == Circular && k.I > angleε:
		return fmt.Sprintf("a=%.1f e=%.6f i=%.3f Ω=%.3f u=%.3f", k.A, k.E, Rad2deg(k.I), Rad2deg(k.Ω), Rad2deg(k.ArgLatitudeU()))
	case f == Circular:
		return fmt.Sprintf("a=%.1f e=%.6f i=%.3f λ=%.3f", k.A, k.E, Rad2deg(k.I), Rad2deg(k.TrueLongλ()))
	}
	return fmt.Sprintf("a=%.1f e=%.6f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", k.A, k.E, Rad2deg(k.I), Rad2deg(k.Ω), Rad2deg(k.ω), Rad2deg(k.ν))
}

// Equals returns whether both element sets describe the same state.
// Angles which are undefined for circular or equatorial orbits are compared
// through the combinations which are defined (u, λ or ω̃).
func (k KeplerElements) Equals(o KeplerElements) (bool, error) {
	if !k.Origin.Equals(o.Origin) {
		return false, errors.New("different origin")
	}
	if !scalar.EqualWithinRel(k.A, o.A, distanceε) {
		return false, errors.New("semi major axis invalid")
	}
	if !scalar.EqualWithinAbs(k.E, o.E, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if !anglesWithin(k.I, o.I) {
		return false, errors.New("inclination invalid")
	}
	equatorial := k.I < angleε || math.Pi-k.I < angleε
	circular := k.E < EccentricityTolerance
	switch {
	case circular && equatorial:
		if !anglesWithin(k.planarLongitude(k.ω+k.ν), o.planarLongitude(o.ω+o.ν)) {
			return false, errors.New("true longitude invalid")
		}
	case circular:
		if !anglesWithin(k.Ω, o.Ω) {
			return false, errors.New("RAAN invalid")
		}
		if !anglesWithin(k.ArgLatitudeU(), o.ArgLatitudeU()) {
			return false, errors.New("argument of latitude invalid")
		}
	case equatorial:
		if !anglesWithin(k.planarLongitude(k.ω), o.planarLongitude(o.ω)) {
			return false, errors.New("longitude of periapsis invalid")
		}
		if !anglesWithin(k.ν, o.ν) {
			return false, errors.New("true anomaly invalid")
		}
	default:
		if !anglesWithin(k.Ω, o.Ω) {
			return false, errors.New("RAAN invalid")
		}
		if !anglesWithin(k.ω, o.ω) {
			return false, errors.New("argument of periapsis invalid")
		}
		if !anglesWithin(k.ν, o.ν) {
			return false, errors.New("true anomaly invalid")
		}
	}
	return true, nil
}

// planarLongitude returns the angle θ from the node, measured from the x axis
// in the direction of motion of an equatorial orbit.
func (k KeplerElements) planarLongitude(θ float64) float64 {
	if k.I > math.Pi/2 {
		return WrapAngle(θ - k.Ω)
	}
	return WrapAngle(θ + k.Ω)
}

func anglesWithin(a, b float64) bool {
	return math.Abs(wrapπ(a-b)) < angleε
}

// CartesianElements defines a state via its inertial position (m) and velocity (m/s).
type CartesianElements struct {
	R, V []float64
}

// NewCartesianElementsFromVector reads [rx, ry, rz, vx, vy, vz].
func NewCartesianElementsFromVector(v []float64) (CartesianElements, error) {
	if len(v) != 6 {
		return CartesianElements{}, &DimensionError{6, len(v)}
	}
	R := make([]float64, 3)
	V := make([]float64, 3)
	copy(R, v[:3])
	copy(V, v[3:])
	return CartesianElements{R, V}, nil
}

// ToVector returns [rx, ry, rz, vx, vy, vz].
func (c CartesianElements) ToVector() []float64 {
	return append(append(make([]float64, 0, 6), c.R...), c.V...)
}

// RNorm returns the norm of the position.
func (c CartesianElements) RNorm() float64 {
	return norm(c.R)
}

// VNorm returns the norm of the velocity.
func (c CartesianElements) VNorm() float64 {
	return norm(c.V)
}

// Energy returns the specific mechanical energy ξ about a body of parameter μ.
func (c CartesianElements) Energy(μ float64) float64 {
	v := c.VNorm()
	return v*v/2 - μ/c.RNorm()
}

// H returns the specific angular momentum vector.
func (c CartesianElements) H() []float64 {
	return cross(c.R, c.V)
}

// Equals returns whether both states match, position and velocity each within
// relTol of their norm.
func (c CartesianElements) Equals(o CartesianElements, relTol float64) bool {
	if len(c.R) != len(o.R) || len(c.V) != len(o.V) {
		return false
	}
	return floats.Distance(c.R, o.R, 2) <= relTol*math.Max(floats.Norm(c.R, 2), floats.Norm(o.R, 2)) &&
		floats.Distance(c.V, o.V, 2) <= relTol*math.Max(floats.Norm(c.V, 2), floats.Norm(o.V, 2))
}

// ToKepler returns the orbital elements about origin.
func (c CartesianElements) ToKepler(origin *CelestialObject) (KeplerElements, error) {
	if origin == nil {
		return KeplerElements{}, fmt.Errorf("%w: no central body", ErrInvalidElement)
	}
	k, err := CartesianToKepler(c.R, c.V, origin.μ)
	if err != nil {
		return KeplerElements{}, err
	}
	k.Origin = origin
	return k, nil
}

func (c CartesianElements) String() string {
	return fmt.Sprintf("R=%+v V=%+v", c.R, c.V)
}
