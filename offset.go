package curve

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Offset returns the contours at a distance opts.Offset from the cyclic spline s in the XY plane. A positive offset grows the enclosed area and a negative offset shrinks it, irrespective of the direction of s. Convex corners are joined by a miter or, with opts.RoundLineJoin, by an arc. Bézier segments are sampled whenever their direction changed by more than opts.StepAngle. Loops caused by concave corners or by offsets larger than the local curvature radius are removed, so that the result can consist of several contours or of none when the shape vanishes. The results are Poly splines with the same direction as s.
func Offset(s *Spline, opts OffsetOptions) ([]*Spline, error) {
	if !s.Cyclic {
		return nil, ErrNotCyclic
	}
	opts = opts.withDefaults()

	orient := s.Orientation()
	if orient == 0.0 || s.SegmentCount() < 2 {
		return nil, nil
	} else if opts.Offset == 0.0 {
		return []*Spline{s.Clone()}, nil
	}

	ring := offsetRing(s, opts.Offset*orient, opts)
	loops := removeSelfIntersections(ring, orient, opts.Tolerance)

	source := flattenSpline(s, opts.BezierSamples)
	results := make([]*Spline, 0, len(loops))
	for _, loop := range loops {
		if !offsetClearance(loop, source, math.Abs(opts.Offset)) {
			Logger().Debug("offset loop too close to source", "vertices", len(loop))
			continue
		}
		results = append(results, NewPolygon(loop...))
	}
	Logger().Debug("offset", "offset", opts.Offset, "vertices", len(ring), "contours", len(results))
	return results, nil
}

// offsetRing returns the raw offset polygon, which may intersect itself. Points are displaced along the right-hand normal by dir.
func offsetRing(s *Spline, dir float64, opts OffsetOptions) []r3.Vec {
	n := s.SegmentCount()
	segs := make([][4]r3.Vec, n)
	linear := make([]bool, n)
	for i := range segs {
		segs[i] = s.SegmentPoints(i)
		linear[i] = s.Kind == Poly || IsSegmentLinear(segs[i], linearTolerance)
	}

	ring := []r3.Vec{}
	add := func(p r3.Vec) {
		if len(ring) == 0 || !nearVec(ring[len(ring)-1], p, opts.Tolerance) {
			ring = append(ring, p)
		}
	}
	displace := func(p, t r3.Vec) r3.Vec {
		return r3.Add(p, r3.Scale(dir, rot90CW(t)))
	}

	for i := 0; i < n; i++ {
		co := segs[i][0]
		tIn := bezierDirection(segs[(i+n-1)%n], 1.0)
		tOut := bezierDirection(segs[i], 0.0)
		pIn, pOut := displace(co, tIn), displace(co, tOut)
		turn := angleBetweenXY(tIn, tOut)

		if math.Abs(turn) < opts.Tolerance {
			add(pIn)
		} else if 0.0 < turn*dir {
			// the offset edges leave a gap at this corner
			if opts.RoundLineJoin {
				steps := int(math.Ceil(math.Abs(turn) / opts.StepAngle))
				for k := 0; k <= steps; k++ {
					add(rotate(pIn, co, zAxis, turn*float64(k)/float64(steps)))
				}
			} else if math.Pi-math.Abs(turn) < 1e-3 {
				add(pIn)
				add(pOut)
			} else {
				add(r3.Add(pIn, r3.Scale(math.Abs(dir)*math.Tan(math.Abs(turn)/2.0), tIn)))
			}
		} else {
			// the offset edges overlap, the loop is removed later
			add(pIn)
			add(pOut)
		}

		if !linear[i] {
			last := tOut
			for k := 1; k < opts.BezierSamples; k++ {
				t := float64(k) / float64(opts.BezierSamples)
				d := bezierDirection(segs[i], t)
				if opts.StepAngle < angleBetween(last, d) {
					add(displace(BezierPoint(segs[i], t), d))
					last = d
				}
			}
		}
	}
	if 1 < len(ring) && nearVec(ring[0], ring[len(ring)-1], opts.Tolerance) {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// removeSelfIntersections splits the polygon where it crosses or touches itself and returns the loops that have the given orientation. Loops in the opposite direction are the artifacts of offsetting and are dropped, as are loops with a negligible area and loops that lie within a larger loop.
func removeSelfIntersections(ring []r3.Vec, orient, tolerance float64) [][]r3.Vec {
	keep := func(loop []r3.Vec) bool {
		a := SignedArea(loop)
		return tolerance < math.Abs(a) && 0.0 < a*orient
	}

	loops := [][]r3.Vec{}
	work := [][]r3.Vec{ring}
	removed := 0
	for bound := 4 * (len(ring) + 1); 0 < len(work) && 0 < bound; bound-- {
		loop := work[len(work)-1]
		work = work[:len(work)-1]
		if len(loop) < 3 {
			continue
		}

		i, j, x, ok := firstSelfContact(loop)
		if !ok {
			if keep(loop) {
				loops = append(loops, loop)
			} else {
				removed++
			}
			continue
		}

		inner := append([]r3.Vec{x}, loop[i+1:j+1]...)
		outer := append([]r3.Vec{x}, loop[j+1:]...)
		outer = append(outer, loop[:i+1]...)
		for _, sub := range [][]r3.Vec{dedupRing(inner), dedupRing(outer)} {
			if a := SignedArea(sub); a*orient < 0.0 && tolerance < math.Abs(a) {
				removed++
				continue
			}
			work = append(work, sub)
		}
	}

	sort.SliceStable(loops, func(i, j int) bool {
		return math.Abs(SignedArea(loops[j])) < math.Abs(SignedArea(loops[i]))
	})
	kept := loops[:0:0]
Loops:
	for _, loop := range loops {
		for _, k := range kept {
			if polygonCovers(k, loop, tolerance) {
				removed++
				continue Loops
			}
		}
		kept = append(kept, loop)
	}
	if 0 < removed {
		Logger().Debug("offset loops removed", "count", removed)
	}
	return kept
}

// firstSelfContact returns the first point where two non-adjacent edges of the polygon cross or touch, where edge i runs from vertex i to vertex i+1.
func firstSelfContact(ring []r3.Vec) (int, int, r3.Vec, bool) {
	n := len(ring)
	for i := 0; i < n; i++ {
		a0, a1 := ring[i], ring[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if x, ok := edgeContact(a0, a1, ring[j], ring[(j+1)%n]); ok {
				return i, j, x, true
			}
		}
	}
	return 0, 0, r3.Vec{}, false
}

// edgeContact returns a point shared by the line segments A0A1 and B0B1 in the XY plane. For collinear overlapping segments it returns an end point that lies within the other segment.
func edgeContact(a0, a1, b0, b1 r3.Vec) (r3.Vec, bool) {
	if ta, _, ok := intersectSegmentsXY(a0, a1, b0, b1); ok {
		return lerp(a0, a1, ta), true
	}
	for _, p := range []r3.Vec{b0, b1} {
		if onSegmentInteriorXY(p, a0, a1) {
			return p, true
		}
	}
	for _, p := range []r3.Vec{a0, a1} {
		if onSegmentInteriorXY(p, b0, b1) {
			return p, true
		}
	}
	return r3.Vec{}, false
}

// dedupRing removes consecutive duplicate vertices, including the last vertex when it equals the first.
func dedupRing(ring []r3.Vec) []r3.Vec {
	out := ring[:0:0]
	for _, p := range ring {
		if len(out) == 0 || !nearVec(out[len(out)-1], p, Epsilon) {
			out = append(out, p)
		}
	}
	for 1 < len(out) && nearVec(out[0], out[len(out)-1], Epsilon) {
		out = out[:len(out)-1]
	}
	return out
}

// flattenSpline returns the cyclic spline as a polygon, sampling every Bézier segment uniformly.
func flattenSpline(s *Spline, samples int) []r3.Vec {
	var ps []r3.Vec
	for i := 0; i < s.SegmentCount(); i++ {
		q := s.SegmentPoints(i)
		ps = append(ps, q[0])
		if s.Kind == Poly || IsSegmentLinear(q, linearTolerance) {
			continue
		}
		for k := 1; k < samples; k++ {
			ps = append(ps, BezierPoint(q, float64(k)/float64(samples)))
		}
	}
	return ps
}

// offsetClearance returns false if most vertices of the loop lie clearly closer to the source than the offset distance. Such loops appear when a curve is shrunk beyond its radius of curvature and turns inside out.
func offsetClearance(loop, source []r3.Vec, offset float64) bool {
	b := AABBOfPoints(source...)
	slack := 0.05*offset + 1e-4*math.Max(b.HalfSize.X, b.HalfSize.Y)
	tooClose := 0
	for _, p := range loop {
		for i := range source {
			if distToSegmentXY(p, source[i], source[(i+1)%len(source)]) < offset-slack {
				tooClose++
				break
			}
		}
	}
	return 2*tooClose <= len(loop)
}
