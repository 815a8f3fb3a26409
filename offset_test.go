package curve

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
	"gonum.org/v1/gonum/spatial/r3"
)

var lShape = NewPolygon(vec(0.0, 0.0), vec(2.0, 0.0), vec(2.0, 1.0), vec(1.0, 1.0), vec(1.0, 2.0), vec(0.0, 2.0))

// dumbbell is two unit squares joined by a thin bar
var dumbbell = NewPolygon(
	vec(0.0, 0.0), vec(1.0, 0.0), vec(1.0, 0.4), vec(2.0, 0.4), vec(2.0, 0.0), vec(3.0, 0.0),
	vec(3.0, 1.0), vec(2.0, 1.0), vec(2.0, 0.6), vec(1.0, 0.6), vec(1.0, 1.0), vec(0.0, 1.0),
)

func star() *Spline {
	s := NewPolygon()
	for k := 0; k < 10; k++ {
		r := 1.0
		if k%2 == 1 {
			r = 0.4
		}
		sin, cos := math.Sincos(float64(k) * math.Pi / 5.0)
		s.Add(Vertex(vec(r*cos, r*sin)))
	}
	return s
}

func areas(ss []*Spline) []float64 {
	as := make([]float64, len(ss))
	for i, s := range ss {
		as[i] = s.SignedArea()
	}
	return as
}

func TestOffsetSquare(t *testing.T) {
	rs, err := Offset(unitSquare(), DefaultOffsetOptions(0.25))
	test.Error(t, err)
	test.T(t, len(rs), 1)
	test.T(t, rs[0].Kind, Poly)
	test.That(t, rs[0].Cyclic)
	testVecs(t, rs[0].Coords(), []r3.Vec{vec(-0.25, -0.25), vec(1.25, -0.25), vec(1.25, 1.25), vec(-0.25, 1.25)})

	// shrinking the grown square returns the original square
	back, err := Offset(rs[0], DefaultOffsetOptions(-0.25))
	test.Error(t, err)
	test.T(t, len(back), 1)
	test.T(t, back[0].Len(), 4)
	test.Float(t, back[0].SignedArea(), 1.0)
	for _, p := range unitSquare().Coords() {
		test.That(t, hasVec(back[0].Coords(), p, 1e-9), p)
	}

	// the direction of the input is kept
	rs, err = Offset(unitSquare().Reverse(), DefaultOffsetOptions(0.25))
	test.Error(t, err)
	test.T(t, len(rs), 1)
	test.Float(t, rs[0].SignedArea(), -2.25)

	// shrinking by more than half the width consumes the square
	rs, err = Offset(unitSquare(), DefaultOffsetOptions(-0.6))
	test.Error(t, err)
	test.T(t, len(rs), 0)

	opts := DefaultOffsetOptions(0.25)
	opts.RoundLineJoin = true
	rs, err = Offset(unitSquare(), opts)
	test.Error(t, err)
	test.T(t, len(rs), 1)
	test.T(t, rs[0].Len(), 36)
	test.That(t, math.Abs(rs[0].SignedArea()-2.19509) < 1e-5, rs[0].SignedArea())
	for _, p := range rs[0].Coords() {
		test.That(t, unitSquare().Contains(p) == false, p)
	}
}

func TestOffsetPolygons(t *testing.T) {
	var tts = []struct {
		s      *Spline
		offset float64
		round  bool
		areas  []float64
	}{
		{lShape, 0.1, false, []float64{3.84}},
		{lShape, -0.1, false, []float64{2.24}},
		{lShape, -0.4, false, []float64{0.44}},
		{lShape, -0.6, false, nil},
		{dumbbell, 0.1, false, []float64{3.2}},
		{dumbbell, -0.05, false, []float64{1.73}},
		{dumbbell, -0.15, false, []float64{0.49, 0.49}},
		{star(), 0.05, false, []float64{1.560879}},
		{star(), -0.05, false, []float64{0.844788}},
		{star(), 0.3, false, []float64{4.305299}},
		{star(), -0.2, false, nil},
		{star(), 0.05, true, []float64{1.540278}},
		{star(), -0.05, true, []float64{0.845925}},
		{star(), 0.3, true, []float64{3.563676}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			opts := DefaultOffsetOptions(tt.offset)
			opts.RoundLineJoin = tt.round
			rs, err := Offset(tt.s, opts)
			test.Error(t, err)
			as := areas(rs)
			test.T(t, len(as), len(tt.areas), as)
			for j := range as {
				test.That(t, math.Abs(as[j]-tt.areas[j]) < 1e-5, as)
			}
		})
	}
}

func TestOffsetCircle(t *testing.T) {
	for _, offset := range []float64{0.5, -0.5, -0.9} {
		t.Run(fmt.Sprint(offset), func(t *testing.T) {
			rs, err := Offset(unitCircle(1.0), DefaultOffsetOptions(offset))
			test.Error(t, err)
			test.T(t, len(rs), 1)
			r := 1.0 + offset
			for _, p := range rs[0].Coords() {
				test.That(t, math.Abs(r3.Norm(p)-r) < 1e-3, p)
			}
			area := rs[0].SignedArea()
			test.That(t, math.Abs(area-math.Pi*r*r) < 0.02*math.Pi*r*r, area)
			test.That(t, 16 <= rs[0].Len(), rs[0].Len())
		})
	}

	// shrinking beyond the radius turns the circle inside out
	rs, err := Offset(unitCircle(1.0), DefaultOffsetOptions(-1.2))
	test.Error(t, err)
	test.T(t, len(rs), 0)

	rs, err = Offset(unitCircle(1.0).Reverse(), DefaultOffsetOptions(0.5))
	test.Error(t, err)
	test.T(t, len(rs), 1)
	test.That(t, rs[0].SignedArea() < -7.0)
}

func TestOffsetEdgeCases(t *testing.T) {
	_, err := Offset(MustParseSpline("M0 0L1 0L1 1"), DefaultOffsetOptions(0.1))
	test.That(t, errors.Is(err, ErrNotCyclic))

	rs, err := Offset(MustParseSpline("M0 0L1 0L2 0z"), DefaultOffsetOptions(0.1))
	test.Error(t, err)
	test.T(t, len(rs), 0)

	s := unitSquare()
	rs, err = Offset(s, DefaultOffsetOptions(0.0))
	test.Error(t, err)
	test.T(t, len(rs), 1)
	test.That(t, rs[0] != s)
	test.T(t, rs[0].Coords(), s.Coords())

	// zero options take their defaults
	rs, err = Offset(unitSquare(), OffsetOptions{Offset: 0.25, RoundLineJoin: true})
	test.Error(t, err)
	test.T(t, rs[0].Len(), 36)
}

func TestRemoveSelfIntersections(t *testing.T) {
	// a figure eight made of a CCW and a CW square
	eight := []r3.Vec{vec(0.0, 0.0), vec(1.0, 0.0), vec(1.0, 1.0), vec(2.0, 1.0), vec(2.0, 2.0), vec(1.0, 2.0), vec(1.0, 1.0), vec(0.0, 1.0)}
	loops := removeSelfIntersections(eight, 1.0, 1e-6)
	test.T(t, len(loops), 2)
	test.Float(t, SignedArea(loops[0]), 1.0)
	test.Float(t, SignedArea(loops[1]), 1.0)

	bowtie := []r3.Vec{vec(0.0, 0.0), vec(2.0, 2.0), vec(2.0, 0.0), vec(0.0, 2.0)}
	loops = removeSelfIntersections(bowtie, 1.0, 1e-6)
	test.T(t, len(loops), 1)
	test.Float(t, SignedArea(loops[0]), 1.0)
	loops = removeSelfIntersections(bowtie, -1.0, 1e-6)
	test.T(t, len(loops), 1)
	test.Float(t, SignedArea(loops[0]), -1.0)

	// a loop within a larger loop is dropped
	square := []r3.Vec{vec(0.0, 0.0), vec(4.0, 0.0), vec(4.0, 4.0), vec(0.0, 4.0)}
	test.T(t, len(removeSelfIntersections(square, 1.0, 1e-6)), 1)
	test.T(t, len(removeSelfIntersections(square, -1.0, 1e-6)), 0)
}

func TestDedupRing(t *testing.T) {
	ring := []r3.Vec{vec(0.0, 0.0), vec(0.0, 0.0), vec(1.0, 0.0), vec(1.0, 1.0), vec(0.0, 0.0)}
	testVecs(t, dedupRing(ring), []r3.Vec{vec(0.0, 0.0), vec(1.0, 0.0), vec(1.0, 1.0)})
}

func TestOffsetOptions(t *testing.T) {
	opts := OffsetOptions{Offset: 1.0}.withDefaults()
	test.Float(t, opts.StepAngle, math.Pi/16.0)
	test.T(t, opts.BezierSamples, 128)
	test.Float(t, opts.Tolerance, 1e-6)
	test.Float(t, opts.Offset, 1.0)
}
