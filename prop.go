package celest

import (
	"fmt"
	"math"
	"time"

	"github.com/ChristopherRabotin/ode"
	"github.com/go-kit/log/level"
	"github.com/soniakeys/meeus/v3/julian"
)

// TwoBody is an ode.Integrable which propagates a Cartesian state under the
// point mass gravity of its origin. Every step is recorded in its trajectory.
type TwoBody struct {
	State  CartesianElements // current state
	Origin *CelestialObject  // central body
	StopDT time.Time         // end time of the integration
	dt     time.Time         // current time of the integration
	step   time.Duration     // time step
	traj   *DiscreteTrajectory[CartesianElements]
}

// NewTwoBody returns a propagator of the provided state at epoch, the state being
// the first sample of its trajectory.
func NewTwoBody(c CartesianElements, origin *CelestialObject, epoch time.Time, step time.Duration) *TwoBody {
	if step <= 0 {
		panic("step must be positive")
	}
	traj := NewDiscreteTrajectory[CartesianElements]()
	traj.AddStateAt(epoch, c)
	return &TwoBody{c, origin, epoch, epoch, step, traj}
}

// GetState gets the state.
func (tb *TwoBody) GetState() []float64 {
	return tb.State.ToVector()
}

// SetState sets the next state at time t.
func (tb *TwoBody) SetState(t float64, s []float64) {
	state, err := NewCartesianElementsFromVector(s)
	if err != nil {
		panic(err)
	}
	tb.State = state
	// Increment the time.
	tb.dt = tb.dt.Add(tb.step)
	tb.traj.AddStateAt(tb.dt, tb.State)
}

// Stop returns whether we should stop the integration.
func (tb *TwoBody) Stop(t float64) bool {
	return !tb.dt.Before(tb.StopDT)
}

// Func does the math. Returns a new state.
func (tb *TwoBody) Func(t float64, f []float64) (fDot []float64) {
	fDot = make([]float64, 6)
	r := norm(f[:3])
	bodyAcc := -tb.Origin.μ / (r * r * r)
	// d\vec{R}/dt
	fDot[0] = f[3]
	fDot[1] = f[4]
	fDot[2] = f[5]
	// d\vec{V}/dt
	fDot[3] = bodyAcc * f[0]
	fDot[4] = bodyAcc * f[1]
	fDot[5] = bodyAcc * f[2]
	return
}

// PropagateUntil propagates until the given time is reached, the last step
// possibly overshooting it by less than one step.
func (tb *TwoBody) PropagateUntil(dt time.Time) error {
	if dt.Before(tb.dt) {
		return fmt.Errorf("%w: cannot propagate backward from %s to %s", ErrInvalidElement, tb.dt, dt)
	}
	tb.StopDT = dt
	steps, _, err := ode.NewRK4(0, tb.step.Seconds(), tb).Solve() // Blocking.
	if err != nil {
		return err
	}
	level.Debug(logger).Log("subsys", "prop", "steps", steps, "jd", julian.TimeToJD(tb.dt), "state", tb.State)
	return nil
}

// Time returns the current time of the integration.
func (tb *TwoBody) Time() time.Time {
	return tb.dt
}

// Trajectory returns every state computed so far, keyed by Julian date.
func (tb *TwoBody) Trajectory() *DiscreteTrajectory[CartesianElements] {
	return tb.traj
}

// KeplerPropagate returns the elements after dt seconds of unperturbed motion,
// advancing the mean anomaly by n·dt. Closed orbits return ν in [0, 2π).
func KeplerPropagate(k KeplerElements, μ, dt float64, cfg SolverConfig) (KeplerElements, error) {
	eqn, err := EquationsFor(k.E)
	if err != nil {
		return KeplerElements{}, err
	}
	M0, err := MeanAnomaly(k.ν, k.E)
	if err != nil {
		return KeplerElements{}, err
	}
	n := eqn.MeanMotion(μ, k.A)
	if math.IsNaN(n) || n <= 0 {
		return KeplerElements{}, fmt.Errorf("%w: mean motion %f of %s", ErrInvalidElement, n, k)
	}
	M := M0 + n*dt
	if eqn.Family.Bound() {
		M = WrapAngle(M)
	}
	ν, err := TrueAnomalyFromMean(M, k.E, cfg)
	if err != nil {
		return KeplerElements{}, err
	}
	if eqn.Family.Bound() {
		ν = WrapAngle(ν)
	}
	k.ν = ν
	return k, nil
}
