package celest

import (
	"fmt"
	"math"
	"time"
)

// Hohmann computes an Hohmann transfer between two coplanar circular orbits of radii rI and rF.
// It returns the departure and arrival velocities, and the time of flight.
// To get final computations:
// ΔvInit = vDepature - vI
// ΔvFinal = vArrival - vF
func Hohmann(rI, rF float64, body *CelestialObject) (vDeparture, vArrival float64, tof time.Duration, err error) {
	if !(rI > 0) || !(rF > 0) {
		return 0, 0, 0, fmt.Errorf("%w: radii %f and %f", ErrInvalidElement, rI, rF)
	}
	rA, rP := math.Max(rI, rF), math.Min(rI, rF)
	aTransfer, eTransfer := Radii2ae(rA, rP)
	eqn, err := EquationsFor(eTransfer)
	if err != nil {
		return 0, 0, 0, err
	}
	vDeparture = math.Sqrt(eqn.VelocitySquared(body.μ, rI, aTransfer))
	vArrival = math.Sqrt(eqn.VelocitySquared(body.μ, rF, aTransfer))
	period, err := eqn.Period(eqn.MeanMotion(body.μ, aTransfer))
	if err != nil {
		return 0, 0, 0, err
	}
	tof = time.Duration(period / 2 * float64(time.Second))
	return
}

// FlybyTurnAngle computes the turn angle of the velocity at infinity vInf about a
// given body, based on the radius of periapsis of the hyperbola.
func FlybyTurnAngle(vInf, rP float64, body *CelestialObject) float64 {
	// ξ = vInf²/2 = -μ/2a
	a := -body.μ / (vInf * vInf)
	e := 1 - rP/a
	return 2 * math.Asin(1/e)
}
