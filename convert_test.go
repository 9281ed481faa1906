package celest

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCartesianToKepler(t *testing.T) {
	μ := Mass2μ(5.9736e24)
	R := []float64{1.01577681264e7, -6.4759970091e6, 2.4212059518e6}
	V := []float64{1099.2953996, 3455.105924, 4355.0978095}
	k, err := CartesianToKepler(R, V, μ)
	if err != nil {
		t.Fatal(err)
	}
	a, e, i, ω, Ω, ν := k.Elements()
	for _, tc := range []struct {
		name     string
		got, exp float64
	}{
		{"a", a, 1.216495e7},
		{"e", e, 0.01404},
		{"i", i, 0.919398},
		{"ω", ω, 2.656017},
		{"Ω", Ω, 5.561776},
		{"ν", ν, 3.880560},
	} {
		if !scalar.EqualWithinRel(tc.got, tc.exp, 1e-3) {
			t.Fatalf("%s=%f instead of %f", tc.name, tc.got, tc.exp)
		}
	}
}

func TestCartesianToKeplerVallado(t *testing.T) {
	// Vallado example 2-5, page 114
	R := []float64{6524.834e3, 6862.875e3, 6448.296e3}
	V := []float64{4901.327, 5533.756, -1976.341}
	c := CartesianElements{R, V}
	k, err := c.ToKepler(&Earth)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinRel(k.A, 36127.343e3, 1e-6) {
		t.Fatalf("a=%f", k.A)
	}
	if !scalar.EqualWithinAbs(k.E, 0.832853, 1e-6) {
		t.Fatalf("e=%f", k.E)
	}
	if !scalar.EqualWithinRel(c.Energy(Earth.GM()), -5.516604e6, 1e-6) {
		t.Fatalf("ξ=%f", c.Energy(Earth.GM()))
	}
	if !scalar.EqualWithinRel(k.Energy(), c.Energy(Earth.GM()), 1e-9) {
		t.Fatalf("ξ=%f from elements, %f from the state", k.Energy(), c.Energy(Earth.GM()))
	}
	for _, tc := range []struct {
		name     string
		got, exp float64
	}{
		{"i", k.I, 87.869126},
		{"Ω", k.Ω, 227.898260},
		{"ω", k.ω, 53.384931},
		{"ν", k.ν, 92.335157},
		{"ω̃", k.Tildeω(), 281.283201},
	} {
		if !scalar.EqualWithinAbs(Rad2deg(tc.got), tc.exp, 1e-4) {
			t.Fatalf("%s=%.6f° instead of %.6f°", tc.name, Rad2deg(tc.got), tc.exp)
		}
	}
}

func TestKeplerToCartesian(t *testing.T) {
	μ := Mass2μ(5.9736e24)
	k := NewKeplerElements(1.216495e7, 0.01404, 0.919398, 5.561776, 2.656017, 3.880560, nil)
	c, err := KeplerToCartesian(k, μ)
	if err != nil {
		t.Fatal(err)
	}
	if !vectorsEqual(c.R, []float64{1.092882447232868e7, -5.619415989750504e6, -1.715953308630781e5}) {
		t.Fatalf("R=%+v", c.R)
	}
	if !vectorsEqual(c.V, []float64{1466.941526515634, 3108.913288555892, -4504.368922790057}) {
		t.Fatalf("V=%+v", c.V)
	}
	if _, err := k.ToCartesian(); !errors.Is(err, ErrInvalidElement) {
		t.Fatalf("elements without origin should not convert, got %v", err)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	nearCircular := NewKeplerElements(7e6, 9.9e-7, 0, 1, 2, 0, &Earth)
	for _, k := range append(familyCases(), nearCircular) {
		f := mustFamily(t, k)
		for _, i := range []float64{0, 0.5, math.Pi / 2, 2.5, math.Pi} {
			for _, ν := range []float64{0, 0.4, -1.2, 2.0} {
				k.I = i
				k.ν = ν
				c, err := k.ToCartesian()
				if err != nil {
					t.Fatalf("%s i=%f ν=%f: %s", f, i, ν, err)
				}
				k2, err := c.ToKepler(k.Origin)
				if err != nil {
					t.Fatalf("%s i=%f ν=%f: %s", f, i, ν, err)
				}
				if ok, err := k.Equals(k2); !ok {
					t.Fatalf("%s i=%f ν=%f: %s\n%s\n%s", f, i, ν, err, k, k2)
				}
				if f2 := mustFamily(t, k2); f2 != f {
					t.Fatalf("%s orbit became %s", f, f2)
				}
				c2, err := k2.ToCartesian()
				if err != nil {
					t.Fatal(err)
				}
				if !c.Equals(c2, 1e-7) {
					t.Fatalf("%s i=%f ν=%f: %s != %s", f, i, ν, c, c2)
				}
			}
		}
	}
}

func TestNearCircularRoundTrip(t *testing.T) {
	μ := Earth.GM()
	for _, e := range []float64{5e-7, 9.9e-7} {
		for _, ω := range []float64{0, 1, 2.5, 4} {
			for _, ν := range []float64{0, 0.5, 1.5, 3, 4.5, 6} {
				// Exact elliptical state, rebuilt as a circular orbit.
				p := 7e6 * (1 - e*e)
				h := math.Sqrt(μ * p)
				sinν, cosν := math.Sincos(ν)
				r := p / (1 + e*cosν)
				c := CartesianElements{
					PQW2ECI(0.5, ω, 2, []float64{r * cosν, r * sinν, 0}),
					PQW2ECI(0.5, ω, 2, []float64{-μ / h * sinν, μ / h * (e + cosν), 0}),
				}
				k, err := CartesianToKepler(c.R, c.V, μ)
				if err != nil {
					t.Fatal(err)
				}
				if f := mustFamily(t, k); f != Circular {
					t.Fatalf("e=%g became %s", e, f)
				}
				c2, err := KeplerToCartesian(k, μ)
				if err != nil {
					t.Fatal(err)
				}
				if !c.Equals(c2, 1e-6) {
					t.Fatalf("e=%g ω=%f ν=%f: %s != %s", e, ω, ν, c, c2)
				}
				if !scalar.EqualWithinRel(c2.RNorm(), k.A, 1e-12) {
					t.Fatalf("circular radius %f instead of %f", c2.RNorm(), k.A)
				}
			}
		}
	}
}

func TestCartesianToKeplerDegenerate(t *testing.T) {
	μ := Earth.GM()
	// Circular and equatorial.
	r := 7e6
	v := math.Sqrt(μ / r)
	k, err := CartesianToKepler([]float64{0, r, 0}, []float64{-v, 0, 0}, μ)
	if err != nil {
		t.Fatal(err)
	}
	for _, θ := range k.ToVector() {
		if math.IsNaN(θ) {
			t.Fatalf("NaN element in %s", k)
		}
	}
	if k.I != 0 || k.Ω != 0 || k.ω != 0 {
		t.Fatalf("undefined angles are not zero: %+v", k.ToVector())
	}
	if ok, err := anglesEqual(k.ν, math.Pi/2); !ok {
		t.Fatalf("true longitude: %s", err)
	}
	// Circular and polar: ν holds the argument of latitude.
	k, err = CartesianToKepler([]float64{r, 0, 0}, []float64{0, 0, v}, μ)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := anglesEqual(k.I, math.Pi/2); !ok {
		t.Fatalf("inclination: %s", err)
	}
	if k.ω != 0 || k.ν != 0 {
		t.Fatalf("argument of latitude at the node is %f", k.ν)
	}
}

func TestFix2DOrbit(t *testing.T) {
	nan := math.NaN()
	k := Fix2DOrbit(KeplerElements{A: 7e6, E: 0, I: 0, ω: nan, Ω: nan, ν: nan})
	if k.ω != 0 || k.Ω != 0 || k.ν != 0 {
		t.Fatalf("NaN angles remain: %+v", k.ToVector())
	}
	k = Fix2DOrbit(KeplerElements{A: 7e6, E: 0.1, I: 0.1, ω: 1, Ω: 2, ν: 3})
	if k.ω != 1 || k.Ω != 2 || k.ν != 3 {
		t.Fatalf("defined angles were modified: %+v", k.ToVector())
	}
}

func TestCartesianToKepler2D(t *testing.T) {
	μ := Earth.GM()
	R := []float64{7000e3, 1000e3, 0}
	for _, tc := range []struct {
		V []float64
		i float64
	}{
		{[]float64{-1000, 7500, 0}, 0},
		{[]float64{1000, -7500, 0}, math.Pi},
	} {
		k2d, err := CartesianToKepler2D(R, tc.V, μ)
		if err != nil {
			t.Fatal(err)
		}
		k, err := CartesianToKepler(R, tc.V, μ)
		if err != nil {
			t.Fatal(err)
		}
		if k2d.I != tc.i || k2d.Ω != 0 || k2d.ω != 0 {
			t.Fatalf("planar orientation %+v", k2d.ToVector())
		}
		if !scalar.EqualWithinRel(k2d.A, k.A, 1e-12) || !scalar.EqualWithinAbs(k2d.E, k.E, 1e-12) {
			t.Fatalf("a, e = %f, %f instead of %f, %f", k2d.A, k2d.E, k.A, k.E)
		}
		if ok, err := anglesEqual(k2d.ν, k.ν); !ok {
			t.Fatalf("ν: %s", err)
		}
	}
	if _, err := CartesianToKepler2D(R, []float64{7, 1, 0}, μ); !errors.Is(err, ErrInvalidElement) {
		t.Fatalf("rectilinear motion should be invalid, got %v", err)
	}
}

func TestConversionInvalid(t *testing.T) {
	μ := Earth.GM()
	R := []float64{7e6, 0, 0}
	V := []float64{0, 7.5e3, 0}
	var dimErr *DimensionError
	if _, err := CartesianToKepler(R[:2], V, μ); !errors.As(err, &dimErr) || dimErr.Want != 3 || dimErr.Got != 2 {
		t.Fatalf("expected a dimension error, got %v", err)
	}
	if _, err := CartesianToKepler(R, append(V, 0), μ); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected a dimension error, got %v", err)
	}
	for _, tc := range []struct {
		R, V []float64
		μ    float64
	}{
		{R, V, 0},
		{R, V, -μ},
		{R, V, math.NaN()},
		{[]float64{0, 0, 0}, V, μ},
		{R, []float64{100, 0, 0}, μ},
		{R, []float64{0, 0, 0}, μ},
	} {
		if _, err := CartesianToKepler(tc.R, tc.V, tc.μ); !errors.Is(err, ErrInvalidElement) {
			t.Fatalf("R=%v V=%v μ=%f should be invalid, got %v", tc.R, tc.V, tc.μ, err)
		}
	}
	for _, k := range []KeplerElements{
		{A: 7e6, E: -0.1},
		{A: -7e6, E: 0.5},
		{A: 7e6, E: 1.5},
		{A: 7e6, E: 0.1, I: math.NaN()},
		{A: 7e6, E: 0.1, ν: math.Inf(1)},
		{A: -7e6, E: 1.5, ν: 2.5}, // beyond the asymptote
		{A: 0, E: 1},
	} {
		if _, err := KeplerToCartesian(k, μ); !errors.Is(err, ErrInvalidElement) {
			t.Fatalf("%+v should be invalid, got %v", k.ToVector(), err)
		}
	}
	if _, err := KeplerToCartesian(KeplerElements{A: 7e6}, 0); !errors.Is(err, ErrInvalidElement) {
		t.Fatalf("zero μ should be invalid, got %v", err)
	}
}

func TestRadiiHelpers(t *testing.T) {
	if e := Eccentricity(1, 1); e != 0 {
		t.Fatalf("e=%f for equal radii", e)
	}
	if e := Eccentricity(1.495978e11, 2.27987047e11); !scalar.EqualWithinAbs(e, 0.207606972, 1e-9) {
		t.Fatalf("e=%.9f", e)
	}
	a, e := Radii2ae(42164e3, 6678e3)
	if a != (42164e3+6678e3)/2 || !scalar.EqualWithinAbs(e, 0.726546824, 1e-9) {
		t.Fatalf("a=%f e=%f", a, e)
	}
	assertPanic(t, func() {
		Radii2ae(1, 2)
	})
	if γ := WrapAngle(FlightPathAngle(0.6, -2.427)); !scalar.EqualWithinAbs(γ, 5.6597, 1e-4) {
		t.Fatalf("γ=%f", γ)
	}
	if γ := FlightPathAngle(0, 1.2); γ != 0 {
		t.Fatalf("circular orbit γ=%f", γ)
	}
}
