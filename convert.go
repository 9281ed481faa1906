package celest

import (
	"fmt"
	"math"

	"github.com/go-kit/log/level"
)

// inclinationε is the relative size of the node vector, with respect to the
// angular momentum, under which an orbit is treated as equatorial.
const inclinationε = 1e-10

func checkState(R, V []float64, μ float64) error {
	if len(R) != 3 {
		return &DimensionError{3, len(R)}
	}
	if len(V) != 3 {
		return &DimensionError{3, len(V)}
	}
	if !(μ > 0) {
		return fmt.Errorf("%w: gravitational parameter %f", ErrInvalidElement, μ)
	}
	if norm(R) == 0 {
		return fmt.Errorf("%w: zero position vector", ErrInvalidElement)
	}
	return nil
}

// CartesianToKepler returns the orbital elements of the state about a body of
// gravitational parameter μ (Vallado's RV2COE, page 113).
// Angles which are undefined for circular or equatorial orbits are set to zero,
// and the remaining angles are measured from the node or from the x axis instead.
func CartesianToKepler(R, V []float64, μ float64) (KeplerElements, error) {
	if err := checkState(R, V, μ); err != nil {
		return KeplerElements{}, err
	}
	hVec := cross(R, V)
	h := norm(hVec)
	if !(h > 0) {
		return KeplerElements{}, fmt.Errorf("%w: rectilinear motion has no orbital plane", ErrInvalidElement)
	}
	n := []float64{-hVec[1], hVec[0], 0} // ẑ × h
	nNorm := norm(n)
	r := norm(R)
	v := norm(V)
	rv := dot(R, V)
	eVec := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eVec[i] = ((v*v-μ/r)*R[i] - rv*V[i]) / μ
	}
	e := norm(eVec)
	f, err := Classify(e)
	if err != nil {
		return KeplerElements{}, err
	}

	var a float64
	if f == Parabolic {
		a = h * h / μ // semi-latus rectum
	} else {
		ξ := (v*v)/2 - μ/r
		a = -μ / (2 * ξ)
	}
	i := acosClamped(hVec[2] / h)
	equatorial := nNorm <= inclinationε*h

	Ω, ω, ν := math.NaN(), math.NaN(), math.NaN()
	if !equatorial {
		Ω = acosClamped(n[0] / nNorm)
		if n[1] < 0 {
			Ω = twoπ - Ω
		}
	}
	if f == Circular {
		if equatorial {
			// True longitude
			ν = WrapAngle(math.Atan2(sign(hVec[2])*R[1], R[0]))
		} else {
			// Argument of latitude
			ν = acosClamped(dot(n, R) / (nNorm * r))
			if R[2] < 0 {
				ν = twoπ - ν
			}
		}
	} else {
		if equatorial {
			// Longitude of periapsis, measured in the direction of motion
			ω = WrapAngle(math.Atan2(sign(hVec[2])*eVec[1], eVec[0]))
		} else {
			ω = acosClamped(dot(n, eVec) / (nNorm * e))
			if eVec[2] < 0 {
				ω = twoπ - ω
			}
		}
		ν = acosClamped(dot(eVec, R) / (e * r))
		if rv < 0 {
			ν = twoπ - ν
		}
	}
	if equatorial || f == Circular {
		level.Debug(logger).Log("subsys", "convert", "family", f, "equatorial", equatorial, "message", "undefined angles set to zero")
	}
	observeConversion(toKepler, f)
	return Fix2DOrbit(KeplerElements{A: a, E: e, I: i, ω: ω, Ω: Ω, ν: ν}), nil
}

// Fix2DOrbit replaces the undefined (NaN) angles of a planar or circular orbit with zero.
func Fix2DOrbit(k KeplerElements) KeplerElements {
	if math.IsNaN(k.Ω) {
		k.Ω = 0
	}
	if math.IsNaN(k.ω) {
		k.ω = 0
	}
	if math.IsNaN(k.ν) {
		k.ν = 0
	}
	return k
}

// CartesianToKepler2D returns the elements of a planar state: only a, e and ν are
// computed. The inclination is zero for prograde and π for retrograde motion
// about the z axis, and Ω = ω = 0.
func CartesianToKepler2D(R, V []float64, μ float64) (KeplerElements, error) {
	if err := checkState(R, V, μ); err != nil {
		return KeplerElements{}, err
	}
	hz := R[0]*V[1] - R[1]*V[0]
	if hz == 0 {
		return KeplerElements{}, fmt.Errorf("%w: rectilinear motion has no orbital plane", ErrInvalidElement)
	}
	r := norm(R)
	v := norm(V)
	rv := dot(R, V)
	eVec := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eVec[i] = ((v*v-μ/r)*R[i] - rv*V[i]) / μ
	}
	e := norm(eVec)
	f, err := Classify(e)
	if err != nil {
		return KeplerElements{}, err
	}
	var a float64
	if f == Parabolic {
		a = hz * hz / μ
	} else {
		a = -μ / (2 * ((v*v)/2 - μ/r))
	}
	i := 0.0
	if hz < 0 {
		i = math.Pi
	}
	var ν float64
	if f == Circular {
		ν = WrapAngle(math.Atan2(sign(hz)*R[1], R[0]))
	} else {
		ν = acosClamped(dot(eVec, R) / (e * r))
		if rv < 0 {
			ν = twoπ - ν
		}
	}
	observeConversion(toKepler2D, f)
	return KeplerElements{A: a, E: e, I: i, ν: ν}, nil
}

// KeplerToCartesian returns the inertial position and velocity of the element set
// about a body of gravitational parameter μ.
func KeplerToCartesian(k KeplerElements, μ float64) (CartesianElements, error) {
	if !(μ > 0) {
		return CartesianElements{}, fmt.Errorf("%w: gravitational parameter %f", ErrInvalidElement, μ)
	}
	for _, θ := range []float64{k.I, k.ω, k.Ω, k.ν} {
		if math.IsNaN(θ) || math.IsInf(θ, 0) {
			return CartesianElements{}, fmt.Errorf("%w: angle %f in %s", ErrInvalidElement, θ, k)
		}
	}
	eqn, err := EquationsFor(k.E)
	if err != nil {
		return CartesianElements{}, err
	}
	p := eqn.SemiParameter(k.A, k.E)
	if !(p > 0) {
		return CartesianElements{}, fmt.Errorf("%w: semi-parameter %f of %s orbit", ErrInvalidElement, p, eqn.Family)
	}
	if _, err := eqn.AnomalyFromTrue(k.ν, k.E); err != nil {
		return CartesianElements{}, err
	}
	e := k.E
	if eqn.Family == Circular {
		// ν is the argument of latitude or true longitude, not measured from periapsis.
		e = 0
	}
	h := 2 * eqn.ArealVelocity(μ, k.A, e)
	sinν, cosν := math.Sincos(k.ν)
	r := p / (1 + e*cosν)
	R := PQW2ECI(k.I, k.ω, k.Ω, []float64{r * cosν, r * sinν, 0})
	V := PQW2ECI(k.I, k.ω, k.Ω, []float64{-μ / h * sinν, μ / h * (e + cosν), 0})
	observeConversion(toCartesian, eqn.Family)
	return CartesianElements{R, V}, nil
}

// Helper functions go here.

// Radii2ae returns the semi major axis and the eccentricty from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = Eccentricity(rP, rA)
	return
}

// Eccentricity returns the eccentricity of the orbit with the provided periapsis and apoapsis radii.
func Eccentricity(rP, rA float64) float64 {
	return (rA - rP) / (rA + rP)
}

// FlightPathAngle returns the flight path angle γ, i.e. the angle between the
// velocity and the local horizontal, in (-π, π].
// As per Vallado page 105, the angle is computed with Atan2 to avoid quadrant issues.
func FlightPathAngle(e, ν float64) float64 {
	sinν, cosν := math.Sincos(ν)
	return math.Atan2(e*sinν, 1+e*cosν)
}
