// Package tle samples two-line element sets with SGP4 into celest trajectories.
package tle

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/AODtorusan/celest"
	satellite "github.com/joshuaferrara/go-satellite"
)

// Propagator wraps the go-satellite SGP4 model of a single two-line element set.
// States are in the TEME frame about Earth, in meters and meters per second.
type Propagator struct {
	sat satellite.Satellite
}

// NewPropagator parses the two lines with the WGS84 gravity model.
// The lines are validated first since go-satellite exits the process on some
// malformed input.
func NewPropagator(line1, line2 string) (*Propagator, error) {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	if len(line1) != 69 || line1[0] != '1' {
		return nil, fmt.Errorf("%w: malformed TLE line 1 %q", celest.ErrInvalidElement, line1)
	}
	if len(line2) != 69 || line2[0] != '2' {
		return nil, fmt.Errorf("%w: malformed TLE line 2 %q", celest.ErrInvalidElement, line2)
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed: code=%d %s", sat.Error, sat.ErrorStr)
	}
	return &Propagator{sat}, nil
}

// State returns the Cartesian state at t, to the second.
func (p *Propagator) State(t time.Time) (celest.CartesianElements, error) {
	t = t.UTC()
	pos, vel := satellite.Propagate(p.sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	for _, val := range []float64{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z} {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return celest.CartesianElements{}, fmt.Errorf("sgp4 propagation failed at %s: output is NaN/Inf", t)
		}
	}
	// km to m
	return celest.CartesianElements{
		R: []float64{pos.X * 1e3, pos.Y * 1e3, pos.Z * 1e3},
		V: []float64{vel.X * 1e3, vel.Y * 1e3, vel.Z * 1e3},
	}, nil
}

// Sample returns n states spaced by step from start, keyed by Julian date.
func Sample(line1, line2 string, start time.Time, step time.Duration, n int) (*celest.DiscreteTrajectory[celest.CartesianElements], error) {
	if n <= 0 || step <= 0 {
		return nil, fmt.Errorf("%w: %d samples every %s", celest.ErrInvalidElement, n, step)
	}
	p, err := NewPropagator(line1, line2)
	if err != nil {
		return nil, err
	}
	traj := celest.NewDiscreteTrajectory[celest.CartesianElements]()
	for i := 0; i < n; i++ {
		t := start.Add(time.Duration(i) * step)
		c, err := p.State(t)
		if err != nil {
			return nil, err
		}
		traj.AddStateAt(t, c)
	}
	return traj, nil
}

// Elements returns the osculating orbital elements about Earth at t.
func Elements(line1, line2 string, t time.Time) (celest.KeplerElements, error) {
	p, err := NewPropagator(line1, line2)
	if err != nil {
		return celest.KeplerElements{}, err
	}
	c, err := p.State(t)
	if err != nil {
		return celest.KeplerElements{}, err
	}
	return c.ToKepler(&celest.Earth)
}
