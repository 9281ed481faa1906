package celest

import (
	"errors"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestTwoBodyPropagation(t *testing.T) {
	start := time.Date(2017, 3, 20, 10, 0, 0, 0, time.UTC)
	k := NewKeplerElements(7500e3, 0.1, Deg2rad(28.5), 1, 2, 0.3, &Earth)
	c, err := k.ToCartesian()
	if err != nil {
		t.Fatal(err)
	}
	tb := NewTwoBody(c, &Earth, start, 10*time.Second)
	end := start.Add(time.Hour)
	if err := tb.PropagateUntil(end); err != nil {
		t.Fatal(err)
	}
	if !tb.Time().Equal(end) {
		t.Fatalf("propagation stopped at %s", tb.Time())
	}
	if n := tb.Trajectory().Len(); n != 361 {
		t.Fatalf("%d samples in an hour of 10 s steps", n)
	}
	μ := Earth.GM()
	tb.Trajectory().Each(func(epoch float64, s CartesianElements) bool {
		if !scalar.EqualWithinRel(s.Energy(μ), c.Energy(μ), 1e-8) {
			t.Fatalf("energy %f at %f instead of %f", s.Energy(μ), epoch, c.Energy(μ))
		}
		if !vectorsEqual(s.H(), c.H()) {
			t.Fatalf("angular momentum %v at %f instead of %v", s.H(), epoch, c.H())
		}
		return true
	})
	// Against the analytical solution
	exp, err := KeplerPropagate(k, μ, time.Hour.Seconds(), DefaultSolverConfig)
	if err != nil {
		t.Fatal(err)
	}
	expC, err := exp.ToCartesian()
	if err != nil {
		t.Fatal(err)
	}
	if !tb.State.Equals(expC, 1e-6) {
		t.Fatalf("RK4 state %s\nKepler state %s", tb.State, expC)
	}
	s, err := tb.Trajectory().EvaluateAt(end.Add(time.Minute))
	if err != nil || !s.Equals(tb.State, 0) {
		t.Fatalf("last state is not held: %s (%v)", s, err)
	}
	if err := tb.PropagateUntil(start); !errors.Is(err, ErrInvalidElement) {
		t.Fatalf("propagating backward should fail, got %v", err)
	}
}

func TestNewTwoBodyPanics(t *testing.T) {
	c := CartesianElements{[]float64{7e6, 0, 0}, []float64{0, 7.5e3, 0}}
	assertPanic(t, func() {
		NewTwoBody(c, &Earth, time.Now(), 0)
	})
}

func TestTwoBodySetStatePanics(t *testing.T) {
	c := CartesianElements{[]float64{7e6, 0, 0}, []float64{0, 7.5e3, 0}}
	tb := NewTwoBody(c, &Earth, time.Now(), time.Second)
	assertPanic(t, func() {
		tb.SetState(1, []float64{7e6, 0, 0, 0, 7.5e3})
	})
	if !tb.State.Equals(c, 0) || tb.Trajectory().Len() != 1 {
		t.Fatalf("state changed to %s", tb.State)
	}
}

func TestKeplerPropagate(t *testing.T) {
	μ := Earth.GM()
	for _, k := range familyCases() {
		f := mustFamily(t, k)
		k.ν = 0.4
		if f.Bound() {
			period, err := k.Period()
			if err != nil {
				t.Fatal(err)
			}
			after, err := KeplerPropagate(k, μ, period.Seconds(), DefaultSolverConfig)
			if err != nil {
				t.Fatalf("%s: %s", f, err)
			}
			if after.ν < 0 || after.ν >= twoπ {
				t.Fatalf("%s: ν=%f is not wrapped", f, after.ν)
			}
			if ok, err := anglesEqual(after.ν, 0.4); !ok {
				t.Fatalf("%s: one period later %s", f, err)
			}
		}
		// Forward then backward
		fwd, err := KeplerPropagate(k, μ, 1800, DefaultSolverConfig)
		if err != nil {
			t.Fatalf("%s: %s", f, err)
		}
		if fwd.A != k.A || fwd.E != k.E || fwd.I != k.I || fwd.ω != k.ω || fwd.Ω != k.Ω {
			t.Fatalf("%s: only ν should change", f)
		}
		back, err := KeplerPropagate(fwd, μ, -1800, DefaultSolverConfig)
		if err != nil {
			t.Fatalf("%s: %s", f, err)
		}
		if ok, err := anglesEqual(back.ν, 0.4); !ok {
			t.Fatalf("%s: forward and backward %s", f, err)
		}
		// Mean anomaly grows linearly.
		M0, _ := k.MeanAnomaly()
		M1, _ := fwd.MeanAnomaly()
		if ok, err := anglesEqual(M1-M0, k.MeanMotion()*1800); !ok {
			t.Fatalf("%s: mean anomaly %s", f, err)
		}
	}
	if _, err := KeplerPropagate(KeplerElements{A: -7e6, E: 0.5}, μ, 10, DefaultSolverConfig); !errors.Is(err, ErrInvalidElement) {
		t.Fatalf("expected an invalid element, got %v", err)
	}
}
