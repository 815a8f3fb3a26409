package curve

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// SignedArea returns the signed area of the polygon through ps projected on the XY plane. Counter clockwise polygons have a positive area. The polygon is closed implicitly.
func SignedArea(ps []r3.Vec) float64 {
	if len(ps) < 3 {
		return 0.0
	}
	terms := make([]float64, len(ps))
	for i, p := range ps {
		terms[i] = perpDotXY(p, ps[(i+1)%len(ps)])
	}
	return floats.Sum(terms) / 2.0
}

// Centroid returns the center of mass of the polygon through ps projected on the XY plane.
func Centroid(ps []r3.Vec) r3.Vec {
	n := len(ps)
	if n == 0 {
		return r3.Vec{}
	} else if n == 1 {
		return ps[0]
	} else if n == 2 {
		return lerp(ps[0], ps[1], 0.5)
	}

	a := SignedArea(ps)
	if math.Abs(a) < Epsilon {
		c := r3.Vec{}
		for _, p := range ps {
			c = r3.Add(c, p)
		}
		return r3.Scale(1.0/float64(n), c)
	}
	c := r3.Vec{}
	for i := 0; i < n; i++ {
		f := perpDotXY(ps[i], ps[(i+1)%n])
		c = r3.Add(c, r3.Scale(f, r3.Add(ps[i], ps[(i+1)%n])))
	}
	return r3.Scale(1.0/(6.0*a), c)
}

// FillCount returns the number of times the test point is enclosed by the polygon through ps, projected on the XY plane. Counter clockwise enclosures are counted positively and clockwise enclosures negatively.
func FillCount(ps []r3.Vec, x, y float64) int {
	count := 0
	if len(ps) < 3 {
		return count
	}
	prev := ps[len(ps)-1]
	for _, p := range ps {
		// see https://wrf.ecse.rpi.edu//Research/Short_Notes/pnpoly.html
		if (y < p.Y) != (y < prev.Y) && x < (prev.X-p.X)*(y-p.Y)/(prev.Y-p.Y)+p.X {
			if prev.Y < p.Y {
				count++
			} else {
				count--
			}
		}
		prev = p
	}
	return count
}

// intersectSegmentsXY returns the parameters of the crossing of the line segments A0A1 and B0B1 projected on the XY plane. Parallel segments never cross.
func intersectSegmentsXY(a0, a1, b0, b1 r3.Vec) (float64, float64, bool) {
	da := r3.Sub(a1, a0)
	db := r3.Sub(b1, b0)
	det := perpDotXY(da, db)
	if math.Abs(det) < Epsilon {
		return 0.0, 0.0, false
	}
	d := r3.Sub(b0, a0)
	ta := perpDotXY(d, db) / det
	tb := perpDotXY(d, da) / det
	if ta < 0.0 || 1.0 < ta || tb < 0.0 || 1.0 < tb {
		return 0.0, 0.0, false
	}
	return ta, tb, true
}

// onSegmentInteriorXY returns true if p lies on the line segment A0A1 in the XY plane, excluding its end points.
func onSegmentInteriorXY(p, a0, a1 r3.Vec) bool {
	d := r3.Sub(a1, a0)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 < Epsilon*Epsilon {
		return false
	}
	t := ((p.X-a0.X)*d.X + (p.Y-a0.Y)*d.Y) / l2
	if t <= 1e-9 || 1.0-1e-9 <= t {
		return false
	}
	return math.Abs(perpDotXY(d, r3.Sub(p, a0)))/math.Sqrt(l2) <= Epsilon
}

// distToSegmentXY returns the distance from p to the line segment A0A1 in the XY plane.
func distToSegmentXY(p, a0, a1 r3.Vec) float64 {
	d := r3.Sub(a1, a0)
	l2 := d.X*d.X + d.Y*d.Y
	t := 0.0
	if 0.0 < l2 {
		t = math.Max(0.0, math.Min(1.0, ((p.X-a0.X)*d.X+(p.Y-a0.Y)*d.Y)/l2))
	}
	q := lerp(a0, a1, t)
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// polygonCovers returns true if every vertex of qs lies inside or on the boundary of the polygon ps.
func polygonCovers(ps, qs []r3.Vec, tolerance float64) bool {
	for _, q := range qs {
		if FillCount(ps, q.X, q.Y) != 0 {
			continue
		}
		onBoundary := false
		for i := range ps {
			if distToSegmentXY(q, ps[i], ps[(i+1)%len(ps)]) <= tolerance {
				onBoundary = true
				break
			}
		}
		if !onBoundary {
			return false
		}
	}
	return true
}

////////////////////////////////////////////////////////////////

// bezierSignedArea returns the contribution of p to the signed area of a closed contour projected on the XY plane, ie. the integral of (x dy - y dx)/2.
func bezierSignedArea(p [4]r3.Vec) float64 {
	c01 := perpDotXY(p[0], p[1])
	c02 := perpDotXY(p[0], p[2])
	c03 := perpDotXY(p[0], p[3])
	c12 := perpDotXY(p[1], p[2])
	c13 := perpDotXY(p[1], p[3])
	c23 := perpDotXY(p[2], p[3])
	return (6.0*c01 + 3.0*c02 + c03 + 3.0*c12 + 3.0*c13 + 6.0*c23) / 20.0
}

// SignedArea returns the area enclosed by a cyclic spline projected on the XY plane, positive for counter clockwise splines. Open splines are closed by a straight line.
func (s *Spline) SignedArea() float64 {
	if len(s.Points) < 2 {
		return 0.0
	}
	terms := make([]float64, 0, len(s.Points))
	for i := 0; i < s.SegmentCount(); i++ {
		terms = append(terms, bezierSignedArea(s.SegmentPoints(i)))
	}
	if !s.Cyclic {
		terms = append(terms, perpDotXY(s.Points[len(s.Points)-1].Co, s.Points[0].Co)/2.0)
	}
	return floats.Sum(terms)
}

// Orientation returns 1 for counter clockwise splines, -1 for clockwise splines, and 0 for degenerate splines.
func (s *Spline) Orientation() float64 {
	a := s.SignedArea()
	if math.Abs(a) < Epsilon {
		return 0.0
	}
	return math.Copysign(1.0, a)
}

// Contains returns true if p lies inside the cyclic spline, projected on the XY plane, using the even-odd rule. A ray is cast towards positive X and its crossings with every segment are found as the roots of the segment's Y polynomial. When the ray passes through a control point it is moved slightly.
func (s *Spline) Contains(p r3.Vec) bool {
	if !s.Cyclic || len(s.Points) < 2 {
		return false
	}

	b := s.Bounds().Box()
	if p.X < b.Min.X || b.Max.X < p.X || p.Y < b.Min.Y || b.Max.Y < p.Y {
		return false
	}
	tolerance := 1e-9 * math.Max(1.0, math.Max(b.Max.X-b.Min.X, b.Max.Y-b.Min.Y))

	y := p.Y
	for k := 0; k < 8; k++ {
		if count, ok := s.rayCrossings(p.X, y, tolerance); ok {
			return count%2 == 1
		}
		y += tolerance * float64(k+1) * 7.0
	}
	return FillCount(s.Coords(), p.X, p.Y) != 0
}

// rayCrossings counts the crossings of the ray from (x,y) towards positive X with the spline. It returns false if the ray passes too close by a control point.
func (s *Spline) rayCrossings(x, y, tolerance float64) (int, bool) {
	for _, cp := range s.Points {
		if math.Abs(cp.Co.Y-y) <= tolerance {
			return 0, false
		}
	}

	count := 0
	for i := 0; i < s.SegmentCount(); i++ {
		q := s.SegmentPoints(i)
		dists := [4]float64{q[0].Y - y, q[1].Y - y, q[2].Y - y, q[3].Y - y}
		if 0.0 < dists[0] && 0.0 < dists[1] && 0.0 < dists[2] && 0.0 < dists[3] ||
			dists[0] < 0.0 && dists[1] < 0.0 && dists[2] < 0.0 && dists[3] < 0.0 {
			continue
		}
		roots := BezierRoots(dists, tolerance)
		if roots.Parallel {
			continue
		}
		for _, t := range roots.Values {
			if t < 1.0 && x < BezierPoint(q, t).X {
				count++
			}
		}
	}
	return count, true
}
