package curve

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// linearTolerance is the relative tolerance of IsSegmentLinear used to select the closed form line intersection.
const linearTolerance = 1e-6

// BezierIntersection is an intersection between two Béziers A and B at their parameters A and B. Dist is the remaining distance between both points.
type BezierIntersection struct {
	A, B float64
	Dist float64
}

func (z BezierIntersection) String() string {
	return fmt.Sprintf("BezierIntersection(%v,%v d=%v)", ftos(z.A), ftos(z.B), ftos(z.Dist))
}

// interval is a parameter range [t0,t1] of a Bézier.
type interval struct {
	t0, t1 float64
}

func (i interval) mid() float64 {
	return (i.t0 + i.t1) / 2.0
}

func (i interval) halves() (interval, interval) {
	m := i.mid()
	return interval{i.t0, m}, interval{m, i.t1}
}

// IntersectBeziers returns the intersections of the cubic Béziers a and b, sorted by the parameter along a. When both are straight lines the intersection is found in closed form, otherwise both parameter domains are split recursively while the bounding boxes of the parts overlap (broad phase), after which every candidate is refined by bisection (narrow phase). Coincident overlapping lines report no intersections.
func IntersectBeziers(a, b [4]r3.Vec, opts IntersectOptions) []BezierIntersection {
	opts = opts.withDefaults()
	if IsSegmentLinear(a, linearTolerance) && IsSegmentLinear(b, linearTolerance) {
		if z, ok := intersectLinear(a, b, opts); ok {
			return []BezierIntersection{z}
		}
		return nil
	}

	var candidates [][2]interval
	broadPhase(a, b, interval{0.0, 1.0}, interval{0.0, 1.0}, opts.Depth, opts.BroadTolerance, &candidates)

	zs := []BezierIntersection{}
	for _, c := range candidates {
		z := narrowPhase(a, b, c[0], c[1], opts.NarrowTolerance)
		if opts.BroadTolerance < z.Dist {
			continue
		}
		zs = mergeIntersection(zs, z, opts.MergeDistance)
	}
	sort.Slice(zs, func(i, j int) bool {
		return zs[i].A < zs[j].A
	})
	Logger().Debug("intersect beziers", "candidates", len(candidates), "intersections", len(zs))
	return zs
}

// broadPhase appends the pairs of intervals of size 1/2^depth whose parts of a and b have overlapping bounding boxes.
func broadPhase(a, b [4]r3.Vec, ia, ib interval, depth int, tolerance float64, candidates *[][2]interval) {
	boxA := bezierAABB(BezierSlice(a, ia.t0, ia.t1))
	boxB := bezierAABB(BezierSlice(b, ib.t0, ib.t1))
	if !boxA.Intersects(boxB, tolerance) {
		return
	} else if depth == 0 {
		*candidates = append(*candidates, [2]interval{ia, ib})
		return
	}

	a1, a2 := ia.halves()
	b1, b2 := ib.halves()
	broadPhase(a, b, a1, b1, depth-1, tolerance, candidates)
	broadPhase(a, b, a2, b1, depth-1, tolerance, candidates)
	broadPhase(a, b, a1, b2, depth-1, tolerance, candidates)
	broadPhase(a, b, a2, b2, depth-1, tolerance, candidates)
}

// narrowPhase bisects both intervals, keeping the pair of halves whose midpoints are nearest, until both are smaller than tolerance.
func narrowPhase(a, b [4]r3.Vec, ia, ib interval, tolerance float64) BezierIntersection {
	for tolerance < ia.t1-ia.t0 || tolerance < ib.t1-ib.t0 {
		a1, a2 := ia.halves()
		b1, b2 := ib.halves()
		pa1, pa2 := BezierPoint(a, a1.mid()), BezierPoint(a, a2.mid())
		pb1, pb2 := BezierPoint(b, b1.mid()), BezierPoint(b, b2.mid())

		// ties are resolved in this order
		pairs := [4]struct {
			ia, ib interval
			d      float64
		}{
			{a1, b1, r3.Norm2(r3.Sub(pa1, pb1))},
			{a2, b1, r3.Norm2(r3.Sub(pa2, pb1))},
			{a1, b2, r3.Norm2(r3.Sub(pa1, pb2))},
			{a2, b2, r3.Norm2(r3.Sub(pa2, pb2))},
		}
		best := 0
		for i := 1; i < len(pairs); i++ {
			if pairs[i].d < pairs[best].d {
				best = i
			}
		}
		ia, ib = pairs[best].ia, pairs[best].ib
	}
	ta, tb := ia.mid(), ib.mid()
	return BezierIntersection{
		A:    ta,
		B:    tb,
		Dist: dist(BezierPoint(a, ta), BezierPoint(b, tb)),
	}
}

// mergeIntersection adds z to zs unless there already is an intersection nearby in parameter space, in which case the one with the smallest distance is kept.
func mergeIntersection(zs []BezierIntersection, z BezierIntersection, distance float64) []BezierIntersection {
	for i, o := range zs {
		da, db := o.A-z.A, o.B-z.B
		if da*da+db*db < distance*distance {
			if z.Dist < o.Dist {
				zs[i] = z
			}
			return zs
		}
	}
	return append(zs, z)
}

// intersectLinear intersects two straight Béziers. The parameters along the chords are mapped to the curve parameters, which differ when the handles are not spaced uniformly.
func intersectLinear(a, b [4]r3.Vec, opts IntersectOptions) (BezierIntersection, bool) {
	la, lb, ok := NearestPointOfLines(a[0], a[3], b[0], b[3])
	if !ok {
		return BezierIntersection{}, false
	}
	const window = 1e-9
	if la < -window || 1.0+window < la || lb < -window || 1.0+window < lb {
		return BezierIntersection{}, false
	}
	la = math.Max(0.0, math.Min(1.0, la))
	lb = math.Max(0.0, math.Min(1.0, lb))

	d := dist(lerp(a[0], a[3], la), lerp(b[0], b[3], lb))
	if opts.BroadTolerance < d {
		return BezierIntersection{}, false
	}
	return BezierIntersection{
		A:    chordParamToCurve(a, la),
		B:    chordParamToCurve(b, lb),
		Dist: d,
	}, true
}

// chordParamToCurve returns the curve parameter of the straight Bézier p at fraction s along its chord.
func chordParamToCurve(p [4]r3.Vec, s float64) float64 {
	chord := r3.Sub(p[3], p[0])
	l2 := r3.Norm2(chord)
	if l2 < Epsilon*Epsilon {
		return s
	}
	var dists [4]float64
	for i := range p {
		dists[i] = r3.Dot(r3.Sub(p[i], p[0]), chord)/l2 - s
	}
	roots := BezierRoots(dists, Epsilon)
	if len(roots.Values) == 0 {
		return s
	}
	best := roots.Values[0]
	for _, t := range roots.Values[1:] {
		if math.Abs(t-s) < math.Abs(best-s) {
			best = t
		}
	}
	return best
}

// IntersectSegments intersects both segments and appends a pair of linked cuts to them for every intersection. Intersections at the shared end point of two consecutive segments of the same spline are skipped. It returns the number of intersections added.
func IntersectSegments(a, b *Segment, opts IntersectOptions) int {
	if a == b || a.Spline == b.Spline && a.Begin == b.Begin {
		return 0
	}
	opts = opts.withDefaults()

	n := 0
	sameSpline := a.Spline == b.Spline
	for _, z := range IntersectBeziers(a.Points(), b.Points(), opts) {
		if sameSpline {
			lo, hi := opts.ParamTolerance, 1.0-opts.ParamTolerance
			if a.End == b.Begin && hi < z.A && z.B < lo || b.End == a.Begin && hi < z.B && z.A < lo {
				continue
			}
		}
		linkCuts(a.AddCut(z.A), b.AddCut(z.B))
		n++
	}
	return n
}

// CutAtIntersections intersects all segments of the given splines with each other, including different segments of the same spline, and returns a transaction that replaces every spline by a copy subdivided at the intersections. The control points at the intersections are selected.
func CutAtIntersections(c *Curve, splines []*Spline, opts IntersectOptions) (*Transaction, error) {
	for _, s := range splines {
		if c.Index(s) == -1 {
			return nil, ErrNotInCurve
		}
	}

	clones := make([]*Spline, len(splines))
	var segs []*Segment
	for i, s := range splines {
		clones[i] = s.Clone()
		clones[i].Select(false)
		segs = append(segs, clones[i].Segments()...)
	}

	n := 0
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			n += IntersectSegments(segs[i], segs[j], opts)
		}
	}
	Logger().Debug("cut at intersections", "splines", len(splines), "segments", len(segs), "intersections", n)

	for _, seg := range segs {
		if len(seg.Cuts) == 0 {
			continue
		}
		for _, id := range seg.Spline.Subdivide(seg) {
			seg.Spline.Point(id).Selected = true
		}
	}

	tx := &Transaction{}
	for i, s := range splines {
		tx.Replace(s, clones[i])
	}
	return tx, nil
}
