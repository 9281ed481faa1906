package celest

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidElement is returned for malformed orbital inputs, such as a negative eccentricity.
	ErrInvalidElement = errors.New("celest: invalid element")
	// ErrUnboundedOrbit is returned when a periodic quantity is requested on a parabolic or hyperbolic orbit.
	ErrUnboundedOrbit = errors.New("celest: orbit is not periodic")
	// ErrAnomalyConvergence is returned when an anomaly solve exceeds its iteration bound.
	ErrAnomalyConvergence = errors.New("celest: anomaly did not converge")
	// ErrNoPrecedingState is returned when a trajectory is queried before its first sample.
	ErrNoPrecedingState = errors.New("celest: no preceding state")
	// ErrDimension is returned when a flat state vector has the wrong length.
	ErrDimension = errors.New("celest: dimension mismatch")
)

// AnomalyConvergenceError reports the iterative anomaly solve which ran out of iterations.
type AnomalyConvergenceError struct {
	Family       OrbitFamily
	Mean         float64 // mean anomaly being inverted
	Eccentricity float64
	Iterations   int
	Step         float64 // last Newton step
}

func (e *AnomalyConvergenceError) Error() string {
	return fmt.Sprintf("%s: %s orbit e=%g M=%g after %d iterations (last step %g)", ErrAnomalyConvergence, e.Family, e.Eccentricity, e.Mean, e.Iterations, e.Step)
}

func (e *AnomalyConvergenceError) Unwrap() error {
	return ErrAnomalyConvergence
}

// NoPrecedingStateError reports a trajectory query before the earliest sample.
type NoPrecedingStateError struct {
	Epoch float64
	First float64 // NaN when the trajectory is empty
}

func (e *NoPrecedingStateError) Error() string {
	return fmt.Sprintf("%s: epoch %f precedes first sample %f", ErrNoPrecedingState, e.Epoch, e.First)
}

func (e *NoPrecedingStateError) Unwrap() error {
	return ErrNoPrecedingState
}

// DimensionError reports a flat vector of the wrong length.
type DimensionError struct {
	Want, Got int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: want %d components, got %d", ErrDimension, e.Want, e.Got)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimension
}
