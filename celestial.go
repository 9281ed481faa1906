package celest

import (
	"fmt"
	"strings"
)

const (
	// G is the Newtonian constant of gravitation in m^3/(kg s^2).
	G = 6.67428e-11
	// AU is one astronomical unit in meters.
	AU = 1.49597870700e11
)

// CelestialObject defines a celestial object which orbits are formulated against.
// Element sets and states only ever hold a pointer to it and never modify it.
type CelestialObject struct {
	Name   string
	Radius float64 // Equatorial radius in meters
	μ      float64 // Gravitational parameter in m^3/s^2
	J2     float64
}

// NewCelestialObject returns a new body from its mass in kilograms.
func NewCelestialObject(name string, radius, mass float64) *CelestialObject {
	return &CelestialObject{name, radius, Mass2μ(mass), 0}
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// Mass returns the mass of this object in kilograms.
func (c CelestialObject) Mass() float64 {
	return μ2Mass(c.μ)
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b *CelestialObject) bool {
	if c == nil || b == nil {
		return c == b
	}
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ && c.J2 == b.J2
}

// Mass2μ returns the gravitational parameter of a body of the given mass.
func Mass2μ(mass float64) float64 {
	return G * mass
}

func μ2Mass(μ float64) float64 {
	return μ / G
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (*CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return &Sun, nil
	case "earth":
		return &Earth, nil
	case "moon":
		return &Moon, nil
	case "mars":
		return &Mars, nil
	case "jupiter":
		return &Jupiter, nil
	default:
		return nil, fmt.Errorf("undefined celestial object '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700e3, 1.32712440017987e20, 0}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363e3, 3.98600433e14, 1082.6269e-6}

// Moon keeps Earth company.
var Moon = CelestialObject{"Moon", 1737.4e3, 4.902800066e12, 202.7e-6}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19e3, 4.28283100e13, 1964e-6}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0e3, 1.266865361e17, 0.01475}
