package celest

import (
	"math"
	"sort"
	"time"

	"github.com/go-kit/log/level"
	"github.com/soniakeys/meeus/v3/julian"
)

// Trajectory returns the state of an object at any epoch (Julian date).
type Trajectory[S any] interface {
	Evaluate(epoch float64) (S, error)
}

// DiscreteTrajectory is a set of states sampled at distinct epochs, evaluated with
// zero-order hold: the state of the latest sample at or before the queried epoch.
// It does no locking, callers sharing one across goroutines must serialize access.
type DiscreteTrajectory[S any] struct {
	epochs []float64
	states []S
}

// NewDiscreteTrajectory returns an empty trajectory.
func NewDiscreteTrajectory[S any]() *DiscreteTrajectory[S] {
	return &DiscreteTrajectory[S]{}
}

// AddState inserts the state at the provided epoch (Julian date), keeping the
// samples ordered. A sample already at that epoch is overwritten, and a NaN
// epoch is ignored.
func (t *DiscreteTrajectory[S]) AddState(epoch float64, s S) {
	if math.IsNaN(epoch) {
		level.Warn(logger).Log("subsys", "trajectory", "message", "ignoring state at NaN epoch")
		return
	}
	idx := sort.SearchFloat64s(t.epochs, epoch)
	if idx < len(t.epochs) && t.epochs[idx] == epoch {
		t.states[idx] = s
		return
	}
	var zero S
	t.epochs = append(t.epochs, 0)
	t.states = append(t.states, zero)
	copy(t.epochs[idx+1:], t.epochs[idx:])
	copy(t.states[idx+1:], t.states[idx:])
	t.epochs[idx] = epoch
	t.states[idx] = s
}

// AddStateAt inserts the state at the provided time.
func (t *DiscreteTrajectory[S]) AddStateAt(dt time.Time, s S) {
	t.AddState(julian.TimeToJD(dt), s)
}

// Evaluate returns the state of the latest sample at or before epoch.
// Past the last sample, the last state is held. A NaN epoch precedes every sample.
func (t *DiscreteTrajectory[S]) Evaluate(epoch float64) (S, error) {
	// index of the first sample strictly after epoch
	idx := 0
	if !math.IsNaN(epoch) {
		idx = sort.Search(len(t.epochs), func(i int) bool {
			return t.epochs[i] > epoch
		})
	}
	if idx == 0 {
		var zero S
		first := math.NaN()
		if len(t.epochs) > 0 {
			first = t.epochs[0]
		}
		err := &NoPrecedingStateError{Epoch: epoch, First: first}
		observeEvaluation(false, err)
		return zero, err
	}
	observeEvaluation(idx == len(t.epochs) && epoch > t.epochs[idx-1], nil)
	return t.states[idx-1], nil
}

// EvaluateAt returns the state of the latest sample at or before the provided time.
func (t *DiscreteTrajectory[S]) EvaluateAt(dt time.Time) (S, error) {
	return t.Evaluate(julian.TimeToJD(dt))
}

// Len returns the number of samples.
func (t *DiscreteTrajectory[S]) Len() int {
	return len(t.epochs)
}

// Epochs returns a copy of the sample epochs, in increasing order.
func (t *DiscreteTrajectory[S]) Epochs() []float64 {
	epochs := make([]float64, len(t.epochs))
	copy(epochs, t.epochs)
	return epochs
}

// First returns the earliest sample. ok is false for an empty trajectory.
func (t *DiscreteTrajectory[S]) First() (epoch float64, s S, ok bool) {
	if len(t.epochs) == 0 {
		return math.NaN(), s, false
	}
	return t.epochs[0], t.states[0], true
}

// Last returns the latest sample. ok is false for an empty trajectory.
func (t *DiscreteTrajectory[S]) Last() (epoch float64, s S, ok bool) {
	n := len(t.epochs)
	if n == 0 {
		return math.NaN(), s, false
	}
	return t.epochs[n-1], t.states[n-1], true
}

// Each calls f on every sample in increasing epoch order until f returns false.
func (t *DiscreteTrajectory[S]) Each(f func(epoch float64, s S) bool) {
	for i, epoch := range t.epochs {
		if !f(epoch, t.states[i]) {
			return
		}
	}
}
