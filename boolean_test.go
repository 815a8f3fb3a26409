package curve

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBooleanSquares(t *testing.T) {
	var tts = []struct {
		op     BooleanOp
		n      int
		area   float64
		points []r3.Vec
	}{
		{Union, 8, 1.75, []r3.Vec{vec(0.0, 0.0), vec(1.0, 0.5), vec(1.5, 1.5), vec(0.5, 1.0)}},
		{Intersection, 4, 0.25, []r3.Vec{vec(0.5, 0.5), vec(1.0, 0.5), vec(1.0, 1.0), vec(0.5, 1.0)}},
		{Difference, 6, 0.75, []r3.Vec{vec(0.0, 0.0), vec(1.0, 0.5), vec(0.5, 0.5), vec(0.5, 1.0)}},
	}
	windings := []struct {
		name               string
		reverseA, reverseB bool
	}{
		{"CCW", false, false},
		{"CCW-CW", false, true},
		{"CW-CCW", true, false},
		{"CW", true, true},
	}
	for _, w := range windings {
		for _, tt := range tts {
			t.Run(w.name+"/"+tt.op.String(), func(t *testing.T) {
				a := unitSquare()
				b := MustParseSpline("M0.5 0.5L1.5 0.5L1.5 1.5L0.5 1.5z")
				area := tt.area
				if w.reverseA {
					a = a.Reverse()
					area = -area
				}
				if w.reverseB {
					b = b.Reverse()
				}
				tx, err := Boolean(a, b, tt.op, IntersectOptions{})
				test.Error(t, err)
				test.T(t, tx.Delete, []*Spline{a, b})
				test.T(t, len(tx.Insert), 1)

				r := tx.Insert[0]
				test.T(t, r.Kind, Poly)
				test.That(t, r.Cyclic)
				test.T(t, r.Len(), tt.n, r)
				test.Float(t, r.SignedArea(), area)
				for _, p := range tt.points {
					test.That(t, hasVec(r.Coords(), p, 1e-6), p, r)
				}
				for _, cp := range r.Points {
					test.T(t, cp.HandleLeftType, HandleVector, cp)
					test.T(t, cp.HandleRightType, HandleVector, cp)
				}
				test.That(t, !r.Selected())

				// inputs are not modified
				test.T(t, a.Len(), 4)
				test.T(t, b.Len(), 4)
			})
		}
	}
}

func TestBooleanTouching(t *testing.T) {
	// the vertices of the diamond lie on the edges of the square
	var tts = []struct {
		op     BooleanOp
		areas  []float64
		points []r3.Vec
	}{
		{Union, []float64{4.0}, []r3.Vec{vec(0.0, 0.0), vec(2.0, 0.0), vec(2.0, 2.0), vec(0.0, 2.0)}},
		{Intersection, []float64{2.0}, []r3.Vec{vec(1.0, 0.0), vec(2.0, 1.0), vec(1.0, 2.0), vec(0.0, 1.0)}},
		{Difference, []float64{0.5, 0.5, 0.5, 0.5}, []r3.Vec{vec(0.0, 0.0), vec(2.0, 0.0), vec(2.0, 2.0), vec(0.0, 2.0)}},
	}
	for _, tt := range tts {
		t.Run(tt.op.String(), func(t *testing.T) {
			square := MustParseSpline("M0 0L2 0L2 2L0 2z")
			diamond := MustParseSpline("M1 0L2 1L1 2L0 1z")
			tx, err := Boolean(square, diamond, tt.op, IntersectOptions{})
			test.Error(t, err)
			as := areas(tx.Insert)
			test.T(t, len(as), len(tt.areas), as)
			for j := range as {
				test.Float(t, as[j], tt.areas[j])
			}

			var coords []r3.Vec
			for _, r := range tx.Insert {
				coords = append(coords, r.Coords()...)
			}
			for _, p := range tt.points {
				test.That(t, hasVec(coords, p, 1e-6), p, coords)
			}
		})
	}
}

func TestBooleanCross(t *testing.T) {
	var tts = []struct {
		op    BooleanOp
		areas []float64
	}{
		{Union, []float64{5.0}},
		{Intersection, []float64{1.0}},
		{Difference, []float64{1.0, 1.0}},
	}
	for _, tt := range tts {
		t.Run(tt.op.String(), func(t *testing.T) {
			h := MustParseSpline("M0 1L3 1L3 2L0 2z")
			v := MustParseSpline("M1 0L2 0L2 3L1 3z")
			tx, err := Boolean(h, v, tt.op, IntersectOptions{})
			test.Error(t, err)
			as := areas(tx.Insert)
			test.T(t, len(as), len(tt.areas), as)
			for j := range as {
				test.Float(t, as[j], tt.areas[j])
			}
		})
	}

	// the reverse difference splits the vertical bar
	h := MustParseSpline("M0 1L3 1L3 2L0 2z")
	v := MustParseSpline("M1 0L2 0L2 3L1 3z")
	tx, err := Boolean(v, h, Difference, IntersectOptions{})
	test.Error(t, err)
	test.T(t, len(tx.Insert), 2)
	for _, r := range tx.Insert {
		test.T(t, r.Len(), 4)
		test.Float(t, r.SignedArea(), 1.0)
	}

	// clockwise operands
	tx, err = Boolean(h.Reverse(), v.Reverse(), Union, IntersectOptions{})
	test.Error(t, err)
	test.T(t, len(tx.Insert), 1)
	test.Float(t, math.Abs(tx.Insert[0].SignedArea()), 5.0)
}

func TestBooleanCircles(t *testing.T) {
	lens := 2.0*math.Acos(0.5) - 0.5*math.Sqrt(3.0)
	var tts = []struct {
		op   BooleanOp
		area float64
	}{
		{Union, 2.0*math.Pi - lens},
		{Intersection, lens},
		{Difference, math.Pi - lens},
	}
	for _, tt := range tts {
		t.Run(tt.op.String(), func(t *testing.T) {
			a := unitCircle(1.0)
			b := unitCircle(1.0)
			for i := range b.Points {
				cp := &b.Points[i]
				cp.Co.X += 1.0
				cp.HandleLeft.X += 1.0
				cp.HandleRight.X += 1.0
			}
			tx, err := Boolean(a, b, tt.op, IntersectOptions{})
			test.Error(t, err)
			test.T(t, len(tx.Insert), 1)
			r := tx.Insert[0]
			test.T(t, r.Kind, Bezier)
			test.That(t, math.Abs(r.SignedArea()-tt.area) < 1e-2, r.SignedArea())
			test.That(t, hasVec(r.Coords(), vec(0.5, math.Sqrt(3.0)/2.0), 1e-3), r)
			test.That(t, hasVec(r.Coords(), vec(0.5, -math.Sqrt(3.0)/2.0), 1e-3), r)
			for _, cp := range r.Points {
				if nearVec(cp.Co, vec(0.5, math.Sqrt(3.0)/2.0), 1e-3) {
					test.T(t, cp.HandleLeftType, HandleFree, cp)
					test.T(t, cp.HandleRightType, HandleFree, cp)
				}
			}
		})
	}
}

func TestBooleanDisjoint(t *testing.T) {
	square := unitSquare()
	apart := MustParseSpline("M2 0L3 0L3 1L2 1z")
	outer := MustParseSpline("M-1 -1L2 -1L2 2L-1 2z")
	touching := MustParseSpline("M1 1L2 1L2 2L1 2z")

	var tts = []struct {
		a, b    *Spline
		op      BooleanOp
		deleted []*Spline
	}{
		{square, apart, Union, nil},
		{square, apart, Intersection, []*Spline{square, apart}},
		{square, apart, Difference, []*Spline{apart}},
		{outer, square, Union, []*Spline{square}},
		{outer, square, Intersection, []*Spline{outer}},
		{outer, square, Difference, nil},
		{square, outer, Difference, []*Spline{square, outer}},
		{square, touching, Union, nil},
		{square, touching, Intersection, []*Spline{square, touching}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			tx, err := Boolean(tt.a, tt.b, tt.op, IntersectOptions{})
			test.Error(t, err)
			test.T(t, len(tx.Insert), 0)
			test.T(t, tx.Delete, tt.deleted)
		})
	}
}

func TestBooleanIdentical(t *testing.T) {
	a := unitSquare()
	for _, b := range []*Spline{a.Clone(), a.Reverse(), MustParseSpline("M1 1L0 1L0 0L1 0z")} {
		tx, err := Boolean(a, b, Union, IntersectOptions{})
		test.Error(t, err)
		test.T(t, tx.Delete, []*Spline{b})
		test.T(t, len(tx.Insert), 0)

		tx, err = Boolean(a, b, Difference, IntersectOptions{})
		test.Error(t, err)
		test.T(t, tx.Delete, []*Spline{a, b})
	}
	test.That(t, !coincidentContours(a, MustParseSpline("M0 0L1 0L1 1L0 1.5z"), 1e-3))
	test.That(t, !coincidentContours(a, MustParseSpline("M0 0L1 0L1 1z"), 1e-3))
}

func TestBooleanErrors(t *testing.T) {
	a := unitSquare()
	_, err := Boolean(a, a, Union, IntersectOptions{})
	test.That(t, errors.Is(err, ErrSelection))
	_, err = Boolean(a, MustParseSpline("M0 0L1 1"), Union, IntersectOptions{})
	test.That(t, errors.Is(err, ErrNotCyclic))
	_, err = Boolean(a, unitCircle(1.0), BooleanOp(7), IntersectOptions{})
	test.That(t, errors.Is(err, ErrOperation))

	test.That(t, errors.Is(verifyLoop(MustParseSpline("M0 0L1 0")), ErrTopology))
	test.That(t, errors.Is(verifyLoop(MustParseSpline("M0 0L1 0z")), ErrTopology))
	test.Error(t, verifyLoop(MustParseSpline("M0 0C0 1 1 1 1 0C1 -1 0 -1 0 0z")))
	test.Error(t, verifyLoop(unitSquare()))
}

func TestBooleanSelection(t *testing.T) {
	a := unitSquare()
	b := MustParseSpline("M0.5 0.5L1.5 0.5L1.5 1.5L0.5 1.5z")
	other := unitCircle(5.0)
	c := NewCurve(other, a, b)

	_, err := BooleanSelection(c, Union, IntersectOptions{})
	test.That(t, errors.Is(err, ErrSelection))

	a.Points[0].Selected = true
	b.Points[2].Selected = true
	tx, err := BooleanSelection(c, Intersection, IntersectOptions{})
	test.Error(t, err)
	test.Error(t, tx.Apply(c))
	test.T(t, len(c.Splines), 2)
	test.T(t, c.Splines[0], other)
	test.Float(t, c.Splines[1].SignedArea(), 0.25)
}

func TestParseBooleanOp(t *testing.T) {
	for _, op := range []BooleanOp{Union, Intersection, Difference} {
		parsed, err := ParseBooleanOp(op.String())
		test.Error(t, err)
		test.T(t, parsed, op)
	}
	op, err := ParseBooleanOp("difference")
	test.Error(t, err)
	test.T(t, op, Difference)
	_, err = ParseBooleanOp("XOR")
	test.That(t, errors.Is(err, ErrOperation))
	test.String(t, BooleanOp(5).String(), "BooleanOp(5)")
}
