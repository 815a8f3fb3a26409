package curve

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSignedArea(t *testing.T) {
	square := []r3.Vec{vec(0.0, 0.0), vec(1.0, 0.0), vec(1.0, 1.0), vec(0.0, 1.0)}
	test.Float(t, SignedArea(square), 1.0)
	test.Float(t, SignedArea([]r3.Vec{square[3], square[2], square[1], square[0]}), -1.0)
	test.Float(t, SignedArea(square[:2]), 0.0)
	testVec(t, Centroid(square), vec(0.5, 0.5))
	testVec(t, Centroid([]r3.Vec{vec(0.0, 0.0), vec(3.0, 0.0), vec(0.0, 3.0)}), vec(1.0, 1.0))
	testVec(t, Centroid([]r3.Vec{vec(0.0, 0.0), vec(1.0, 0.0), vec(2.0, 0.0)}), vec(1.0, 0.0))
	testVec(t, Centroid(square[:2]), vec(0.5, 0.0))
	testVec(t, Centroid(nil), r3.Vec{})
}

func TestFillCount(t *testing.T) {
	square := []r3.Vec{vec(0.0, 0.0), vec(1.0, 0.0), vec(1.0, 1.0), vec(0.0, 1.0)}
	test.T(t, FillCount(square, 0.5, 0.5), 1)
	test.T(t, FillCount(square, 1.5, 0.5), 0)
	test.T(t, FillCount([]r3.Vec{square[3], square[2], square[1], square[0]}, 0.5, 0.5), -1)
}

func TestSplineSignedArea(t *testing.T) {
	test.Float(t, unitSquare().SignedArea(), 1.0)
	test.Float(t, unitSquare().Reverse().SignedArea(), -1.0)
	test.Float(t, unitSquare().Orientation(), 1.0)
	test.Float(t, unitSquare().Reverse().Orientation(), -1.0)
	test.Float(t, MustParseSpline("M0 0L1 0L2 0z").Orientation(), 0.0)

	circle := unitCircle(1.0)
	test.That(t, math.Abs(circle.SignedArea()-math.Pi) < 1e-3, circle.SignedArea())
	test.That(t, math.Abs(circle.Reverse().SignedArea()+math.Pi) < 1e-3)

	// Béziers that trace straight lines have the polygon's area
	s := MustParseSpline("M0 0C0.5 0 1 0 2 0C2 1 2 1 2 2L0 2z")
	test.Float(t, s.SignedArea(), 4.0)

	// open splines are closed by a straight line
	open := MustParseSpline("M0 0L1 0L1 1")
	test.Float(t, open.SignedArea(), 0.5)
}

func TestBezierSignedArea(t *testing.T) {
	// area under the arch against the closing line
	area := bezierSignedArea([4]r3.Vec{arch[3], arch[2], arch[1], arch[0]})
	test.Float(t, area, 0.6)
}

func TestSplineContains(t *testing.T) {
	notch := MustParseSpline("M0 0L2 0L2 2L1 1L0 2z")
	var tts = []struct {
		s      *Spline
		p      r3.Vec
		inside bool
	}{
		{notch, vec(0.5, 1.0), true},
		{notch, vec(1.5, 1.0), true},
		{notch, vec(1.0, 1.5), false},
		{notch, vec(1.0, 0.5), true},
		{notch, vec(3.0, 1.0), false},
		{notch, vec(-1.0, 1.0), false},
		{notch, vec(0.5, 0.0), true},  // ray through control points is moved
		{notch, vec(0.5, 2.0), false}, // ray through control points is moved
		{unitCircle(1.0), vec(0.99, 0.0), true},
		{unitCircle(1.0), vec(1.01, 0.0), false},
		{unitCircle(1.0), vec(0.0, 0.0), true},
		{unitCircle(1.0), vec(0.7, 0.7), true},
		{unitCircle(1.0), vec(0.72, 0.72), false},
		{unitCircle(1.0).Reverse(), vec(0.5, 0.1), true},
		{MustParseSpline("M0 0L1 0L1 1"), vec(0.9, 0.1), false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, tt.s.Contains(tt.p), tt.inside)
		})
	}
}

func TestIntersectSegmentsXY(t *testing.T) {
	ta, tb, ok := intersectSegmentsXY(vec(0.0, 0.0), vec(2.0, 0.0), vec(1.0, -1.0), vec(1.0, 1.0))
	test.That(t, ok)
	test.Float(t, ta, 0.5)
	test.Float(t, tb, 0.5)

	_, _, ok = intersectSegmentsXY(vec(0.0, 0.0), vec(2.0, 0.0), vec(3.0, -1.0), vec(3.0, 1.0))
	test.That(t, !ok)
	_, _, ok = intersectSegmentsXY(vec(0.0, 0.0), vec(2.0, 0.0), vec(1.0, 0.0), vec(3.0, 0.0))
	test.That(t, !ok)

	test.That(t, onSegmentInteriorXY(vec(1.0, 0.0), vec(0.0, 0.0), vec(2.0, 0.0)))
	test.That(t, !onSegmentInteriorXY(vec(2.0, 0.0), vec(0.0, 0.0), vec(2.0, 0.0)))
	test.That(t, !onSegmentInteriorXY(vec(1.0, 0.1), vec(0.0, 0.0), vec(2.0, 0.0)))
	test.Float(t, distToSegmentXY(vec(1.0, 0.5), vec(0.0, 0.0), vec(2.0, 0.0)), 0.5)
	test.Float(t, distToSegmentXY(vec(3.0, 0.0), vec(0.0, 0.0), vec(2.0, 0.0)), 1.0)
}

func TestPolygonCovers(t *testing.T) {
	square := []r3.Vec{vec(0.0, 0.0), vec(2.0, 0.0), vec(2.0, 2.0), vec(0.0, 2.0)}
	test.That(t, polygonCovers(square, []r3.Vec{vec(0.5, 0.5), vec(1.5, 0.5), vec(1.0, 1.5)}, 1e-6))
	test.That(t, polygonCovers(square, []r3.Vec{vec(0.0, 0.0), vec(2.0, 0.0), vec(1.0, 1.0)}, 1e-6))
	test.That(t, !polygonCovers(square, []r3.Vec{vec(0.5, 0.5), vec(2.5, 0.5), vec(1.0, 1.5)}, 1e-6))
}
