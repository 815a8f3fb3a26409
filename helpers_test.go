package curve

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tdewolff/test"
	"gonum.org/v1/gonum/spatial/r3"
)

// circleKappa is the handle length of a cubic Bézier approximating a quarter of a unit circle.
const circleKappa = 0.5522847498

func vec(x, y float64) r3.Vec {
	return r3.Vec{X: x, Y: y}
}

// unitSquare returns the counter clockwise square (0,0)-(1,1).
func unitSquare() *Spline {
	return MustParseSpline("M0 0L1 0L1 1L0 1z")
}

// unitCircle returns a counter clockwise circle of radius r around the origin made of four Béziers.
func unitCircle(r float64) *Spline {
	s := NewSpline(Bezier, true)
	for k := 0; k < 4; k++ {
		theta := float64(k) * math.Pi / 2.0
		sin, cos := math.Sincos(theta)
		co := vec(r*cos, r*sin)
		t := vec(-sin, cos)
		s.Add(ControlPoint{
			Co:              co,
			HandleLeft:      r3.Sub(co, r3.Scale(r*circleKappa, t)),
			HandleRight:     r3.Add(co, r3.Scale(r*circleKappa, t)),
			HandleLeftType:  HandleAligned,
			HandleRightType: HandleAligned,
			Weight:          1.0,
		})
	}
	return s
}

// RandomSpline returns a spline of n control points with random positions and handles.
func RandomSpline(n int, cyclic bool) *Spline {
	s := NewSpline(Bezier, cyclic)
	for i := 0; i < n; i++ {
		co := vec(rand.NormFloat64(), rand.NormFloat64())
		s.Add(ControlPoint{
			Co:              co,
			HandleLeft:      r3.Add(co, vec(rand.NormFloat64()/2.0, rand.NormFloat64()/2.0)),
			HandleRight:     r3.Add(co, vec(rand.NormFloat64()/2.0, rand.NormFloat64()/2.0)),
			HandleLeftType:  HandleFree,
			HandleRightType: HandleFree,
			Weight:          1.0,
		})
	}
	return s
}

var approxVec = cmpopts.EquateApprox(0.0, 1e-6)

func testVec(t *testing.T, got, want r3.Vec) {
	t.Helper()
	if diff := cmp.Diff(want, got, approxVec); diff != "" {
		test.Fail(t, "vector mismatch (-want +got):\n"+diff)
	}
}

func testVecs(t *testing.T, got, want []r3.Vec) {
	t.Helper()
	if diff := cmp.Diff(want, got, approxVec); diff != "" {
		test.Fail(t, "vectors mismatch (-want +got):\n"+diff)
	}
}

// hasVec returns true if ps contains a point near p.
func hasVec(ps []r3.Vec, p r3.Vec, tolerance float64) bool {
	for _, q := range ps {
		if nearVec(p, q, tolerance) {
			return true
		}
	}
	return false
}
