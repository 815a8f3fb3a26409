package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Fillet returns a copy of s where the selected control points are rounded by a circular arc or, with opts.Chamfer, cut off by a straight line. The rounding starts at a distance opts.Radius from the corner along both edges, limited by the edge lengths or by half of them with opts.LimitHalfWay. Only corners between two straight segments are changed, and the end points of open splines are kept. Control points that coincide afterwards are merged.
func Fillet(s *Spline, opts FilletOptions) (*Spline, error) {
	if opts.Radius < 0.0 {
		return nil, fmt.Errorf("fillet: negative radius %v", opts.Radius)
	}
	opts = opts.withDefaults()

	n := len(s.Points)
	kind := s.Kind
	var points []ControlPoint
	var created []bool
	for i, cp := range s.Points {
		prev, next := s.prev(i), s.next(i)
		ps, ok := filletCorner(s, i, prev, next, opts)
		if !ok {
			if s.Kind == Poly {
				cp = Vertex(cp.Co)
				cp.Weight, cp.Selected = s.Points[i].Weight, s.Points[i].Selected
			}
			points = append(points, cp)
			created = append(created, false)
			continue
		}
		if !opts.Chamfer {
			kind = Bezier
		}
		for _, p := range ps {
			p.Weight = cp.Weight
			p.Selected = cp.Selected
			points = append(points, p)
			created = append(created, true)
		}
	}
	if n != 0 && len(points) == n {
		return s.Clone(), nil
	}

	// straight edges next to the new points get vector handles
	for k := range points {
		if !created[k] {
			continue
		}
		if points[k].HandleLeftType == HandleVector && (0 < k || s.Cyclic) {
			points[(k+len(points)-1)%len(points)].HandleRightType = HandleVector
		}
		if points[k].HandleRightType == HandleVector && (k+1 < len(points) || s.Cyclic) {
			points[(k+1)%len(points)].HandleLeftType = HandleVector
		}
	}
	points = mergeCoincidentPoints(points, s.Cyclic, opts.Tolerance)

	r := NewSpline(kind, s.Cyclic)
	for _, cp := range points {
		r.Add(cp)
	}
	r.UpdateVectorHandles()
	return r, nil
}

// filletCorner returns the control points replacing the corner at index i, or false if the corner is left as it is.
func filletCorner(s *Spline, i, prev, next int, opts FilletOptions) ([]ControlPoint, bool) {
	cp := s.Points[i]
	if !cp.Selected || prev == -1 || next == -1 {
		return nil, false
	}
	if !IsSegmentLinear(s.SegmentPoints(prev), linearTolerance) || !IsSegmentLinear(s.SegmentPoints(i), linearTolerance) {
		return nil, false
	}

	co := cp.Co
	lenPrev := dist(s.Points[prev].Co, co)
	lenNext := dist(co, s.Points[next].Co)
	tIn := unit(r3.Sub(co, s.Points[prev].Co))
	tOut := unit(r3.Sub(s.Points[next].Co, co))
	turn := angleBetween(tIn, tOut)
	if lenPrev < opts.Tolerance || lenNext < opts.Tolerance || turn < opts.Tolerance || math.Pi-turn < opts.Tolerance {
		return nil, false
	}

	f := 1.0
	if opts.LimitHalfWay {
		f = 0.5
	}
	d := math.Min(opts.Radius, math.Min(lenPrev*f, lenNext*f))
	if d < opts.Tolerance {
		return nil, false
	}
	pA := r3.Sub(co, r3.Scale(d, tIn))
	pB := r3.Add(co, r3.Scale(d, tOut))

	if opts.Chamfer {
		return []ControlPoint{Vertex(pA), Vertex(pB)}, true
	}

	// arc tangent to both edges, split in pieces of at most a quarter turn
	r := d / math.Tan(turn/2.0)
	axis := unit(r3.Cross(tIn, tOut))
	center := r3.Add(pA, r3.Scale(r, unit(r3.Sub(tOut, r3.Scale(r3.Dot(tIn, tOut), tIn)))))
	pieces := int(math.Ceil(turn/(math.Pi/2.0) - 1e-9))
	phi := turn / float64(pieces)
	k := 4.0 / 3.0 * math.Tan(phi/4.0) * r

	ps := make([]ControlPoint, pieces+1)
	for m := range ps {
		p := rotate(pA, center, axis, phi*float64(m))
		t := rotate(tIn, r3.Vec{}, axis, phi*float64(m))
		ps[m] = ControlPoint{
			ID:              NoPoint,
			Co:              p,
			HandleLeft:      r3.Sub(p, r3.Scale(k, t)),
			HandleRight:     r3.Add(p, r3.Scale(k, t)),
			HandleLeftType:  HandleAligned,
			HandleRightType: HandleAligned,
		}
	}
	ps[0].HandleLeftType = HandleVector
	ps[pieces].HandleRightType = HandleVector
	return ps, true
}

// mergeCoincidentPoints merges consecutive control points closer than tolerance, keeping the left handle of the first and the right handle of the second.
func mergeCoincidentPoints(points []ControlPoint, cyclic bool, tolerance float64) []ControlPoint {
	merged := points[:0:0]
	for _, cp := range points {
		if 0 < len(merged) && nearVec(merged[len(merged)-1].Co, cp.Co, tolerance) {
			last := &merged[len(merged)-1]
			last.HandleRight, last.HandleRightType = cp.HandleRight, cp.HandleRightType
			last.Selected = last.Selected || cp.Selected
			continue
		}
		merged = append(merged, cp)
	}
	if cyclic && 2 < len(merged) && nearVec(merged[0].Co, merged[len(merged)-1].Co, tolerance) {
		last := merged[len(merged)-1]
		merged[0].HandleLeft, merged[0].HandleLeftType = last.HandleLeft, last.HandleLeftType
		merged = merged[:len(merged)-1]
	}
	return merged
}

// FilletCurve applies Fillet to every spline of c with a selected control point and returns the transaction replacing them.
func FilletCurve(c *Curve, opts FilletOptions) (*Transaction, error) {
	tx := &Transaction{}
	for _, s := range c.Selected() {
		r, err := Fillet(s, opts)
		if err != nil {
			return nil, err
		}
		tx.Replace(s, r)
	}
	return tx, nil
}
