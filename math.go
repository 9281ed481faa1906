package celest

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const (
	deg2rad = math.Pi / 180
	twoπ    = 2 * math.Pi
)

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if scalar.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// dot performs the inner product via gonum/BLAS.
func dot(a, b []float64) float64 {
	return mat.Dot(mat.NewVecDense(len(a), a), mat.NewVecDense(len(b), b))
}

// cross performs the cross product.
func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]} // Cross product R x V.
}

// acosClamped is math.Acos after clamping x to [-1, 1].
// Dot products of unit vectors regularly land a few ULP outside that range.
func acosClamped(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return math.Acos(x)
}

// WrapAngle returns the provided angle in [0, 2π).
func WrapAngle(θ float64) float64 {
	θ = math.Mod(θ, twoπ)
	if θ < 0 {
		θ += twoπ
	}
	if θ >= twoπ {
		// -tiny + 2π rounds up to 2π
		θ = 0
	}
	return θ
}

// wrapπ returns the provided angle in (-π, π].
func wrapπ(θ float64) float64 {
	θ = WrapAngle(θ)
	if θ > math.Pi {
		θ -= twoπ
	}
	return θ
}

// QuadrantFix shifts angle by a whole number of revolutions so that it lies
// within π of reference.
// The half-angle relations (2·atan(k·tan(x/2))) only return values in
// (-π, π); the reference is the angle they were derived from.
func QuadrantFix(angle, reference float64) float64 {
	return angle + twoπ*math.Round((reference-angle)/twoπ)
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, twoπ)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += twoπ
	}
	return math.Mod(a/deg2rad, 360)
}
