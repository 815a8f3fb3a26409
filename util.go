package curve

import (
	"math"
	"strconv"
)

// Epsilon is the distance below which coordinates and determinants are considered zero.
var Epsilon = 1e-10

func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// angleNorm maps theta to [0,2PI).
func angleNorm(theta float64) float64 {
	if theta = math.Mod(theta, 2.0*math.Pi); theta < 0.0 {
		return theta + 2.0*math.Pi
	}
	return theta
}

// angleSigned maps theta to (-PI,PI].
func angleSigned(theta float64) float64 {
	if theta = angleNorm(theta); math.Pi < theta {
		return theta - 2.0*math.Pi
	}
	return theta
}

// ftos formats coordinates for String methods with five significant digits.
func ftos(f float64) string {
	if f == 0.0 {
		f = 0.0 // no negative zero
	}
	return strconv.FormatFloat(f, 'g', 5, 64)
}

////////////////////////////////////////////////////////////////

// solveQuadraticFormula returns the real roots of ax^2+bx+c in ascending order, with NaN for missing roots. When every x is a root it returns (0,NaN).
func solveQuadraticFormula(a, b, c float64) (float64, float64) {
	switch {
	case a == 0.0 && b == 0.0 && c == 0.0:
		return 0.0, math.NaN()
	case a == 0.0 && b == 0.0:
		return math.NaN(), math.NaN()
	case a == 0.0:
		return -c / b, math.NaN()
	}

	discriminant := b*b - 4.0*a*c
	if discriminant < 0.0 {
		return math.NaN(), math.NaN()
	} else if discriminant == 0.0 {
		return -b / (2.0 * a), math.NaN()
	}

	// take the root where b and the radical add up, and derive the other from x1*x2 = c/a
	q := -0.5 * (b + math.Copysign(math.Sqrt(discriminant), b))
	x1, x2 := q/a, c/q
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return x1, x2
}
