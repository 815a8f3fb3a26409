package curve

import (
	"math"
	"slices"
	"strings"
)

// DefaultRootTolerance is the tolerance below which polynomial coefficients are considered zero by BezierRoots.
const DefaultRootTolerance = 1e-4

// rootWindow is how far outside of [0,1] a root may fall and still be clamped into range.
const rootWindow = 1e-9

// Roots is the result of solving a Bézier polynomial. Either Parallel is set and the polynomial vanishes everywhere, or Values holds the roots in [0,1] in ascending order. Roots of multiplicity two are listed twice.
type Roots struct {
	Values   []float64
	Parallel bool
}

// None returns true if there are no roots and the polynomial does not vanish.
func (r Roots) None() bool {
	return !r.Parallel && len(r.Values) == 0
}

func (r Roots) String() string {
	if r.Parallel {
		return "Roots(parallel)"
	}
	sb := strings.Builder{}
	sb.WriteString("Roots(")
	for i, t := range r.Values {
		if i != 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(ftos(t))
	}
	sb.WriteString(")")
	return sb.String()
}

// bezierCoefficients returns the power basis coefficients a*t^3 + b*t^2 + c*t + d of the Bernstein polynomial with the given control values.
func bezierCoefficients(dists [4]float64) (float64, float64, float64, float64) {
	a := -dists[0] + 3.0*dists[1] - 3.0*dists[2] + dists[3]
	b := 3.0*dists[0] - 6.0*dists[1] + 3.0*dists[2]
	c := -3.0*dists[0] + 3.0*dists[1]
	d := dists[0]
	return a, b, c, d
}

// BezierRoots returns the parameters in [0,1] where the cubic Bernstein polynomial with control values dists is zero. Typically dists are the signed distances of the four control points of a segment to a line or plane, so that the roots are the intersections of the segment with it. When all values are within tolerance of zero the segment lies on the line and Parallel is returned. A tolerance of zero uses DefaultRootTolerance.
func BezierRoots(dists [4]float64, tolerance float64) Roots {
	if tolerance <= 0.0 {
		tolerance = DefaultRootTolerance
	}

	scale := 0.0
	for _, d := range dists {
		scale = math.Max(scale, math.Abs(d))
	}
	if scale <= tolerance {
		return Roots{Parallel: true}
	}

	a, b, c, d := bezierCoefficients(dists)
	zero := tolerance * scale

	var ts []float64
	if zero < math.Abs(a) {
		ts = solveCubic(a, b, c, d)
	} else if zero < math.Abs(b) {
		x1, x2 := solveQuadraticFormula(b, c, d)
		if !math.IsNaN(x1) {
			ts = append(ts, x1)
			if math.IsNaN(x2) && c*c-4.0*b*d == 0.0 {
				ts = append(ts, x1) // double root
			}
		}
		if !math.IsNaN(x2) {
			ts = append(ts, x2)
		}
	} else if zero < math.Abs(c) {
		ts = append(ts, -d/c)
	} else {
		// constant polynomial that is not zero
		return Roots{}
	}

	roots := Roots{}
	for _, t := range ts {
		t = polishRoot(a, b, c, d, t)
		if t < -rootWindow || 1.0+rootWindow < t || math.IsNaN(t) {
			continue
		}
		roots.Values = append(roots.Values, math.Max(0.0, math.Min(1.0, t)))
	}
	slices.Sort(roots.Values)
	return roots
}

// solveCubic returns the real roots of a*x^3 + b*x^2 + c*x + d, with a != 0, using the trigonometric method for three real roots and Cardano's formula otherwise
// see https://en.wikipedia.org/wiki/Cubic_equation
func solveCubic(a, b, c, d float64) []float64 {
	A, B, C := b/a, c/a, d/a

	// depressed cubic x^3 + p*x + q = 0 with t = x - A/3
	p := B - A*A/3.0
	q := 2.0*A*A*A/27.0 - A*B/3.0 + C
	shift := -A / 3.0

	disc := q*q/4.0 + p*p*p/27.0
	if math.Abs(disc) < Epsilon {
		if math.Abs(p) < Epsilon {
			return []float64{shift, shift, shift}
		}
		// one simple and one double root
		x1 := 3.0 * q / p
		x2 := -1.5 * q / p
		return []float64{x1 + shift, x2 + shift, x2 + shift}
	} else if 0.0 < disc {
		// one real root
		sq := math.Sqrt(disc)
		u := math.Cbrt(-q/2.0 + sq)
		v := math.Cbrt(-q/2.0 - sq)
		return []float64{u + v + shift}
	}

	// three real roots
	r := 2.0 * math.Sqrt(-p/3.0)
	arg := 3.0 * q / (p * r)
	arg = math.Max(-1.0, math.Min(1.0, arg))
	phi := math.Acos(arg) / 3.0
	return []float64{
		r*math.Cos(phi) + shift,
		r*math.Cos(phi-2.0*math.Pi/3.0) + shift,
		r*math.Cos(phi-4.0*math.Pi/3.0) + shift,
	}
}

// polishRoot improves a root of the cubic by a few Newton iterations, which also recovers the accuracy lost when a tiny leading coefficient was dropped.
func polishRoot(a, b, c, d, t float64) float64 {
	for i := 0; i < 4; i++ {
		f := ((a*t+b)*t+c)*t + d
		df := (3.0*a*t+2.0*b)*t + c
		if df == 0.0 || f == 0.0 {
			break
		}
		step := f / df
		if math.IsNaN(step) || math.IsInf(step, 0) || 1.0 < math.Abs(step) {
			break
		}
		t -= step
	}
	return t
}
