package curve

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// booleanArc is the part of a contour between two consecutive intersections. Begin and end are identified by the ID of the intersection's control point in the first contour.
type booleanArc struct {
	points     []ControlPoint
	begin, end PointID
	onB        bool
	inside     bool // inside the other contour
	visited    bool
}

func (arc *booleanArc) reverse() {
	n := len(arc.points)
	points := make([]ControlPoint, n)
	for i, cp := range arc.points {
		cp.swapHandles()
		points[n-1-i] = cp
	}
	arc.points = points
	arc.begin, arc.end = arc.end, arc.begin
}

func (arc *booleanArc) String() string {
	contour := "A"
	if arc.onB {
		contour = "B"
	}
	return fmt.Sprintf("Arc(%s #%d-#%d inside=%v)", contour, arc.begin, arc.end, arc.inside)
}

// Boolean combines the closed contours a and b in the XY plane and returns the transaction that deletes both and inserts the resulting contours. When the contours do not intersect, the transaction only deletes the inputs that do not contribute to the result: for union an input inside the other, for intersection an input outside the other, and for difference a when inside b and b when outside a. Identical contours are kept once by union and intersection and vanish by difference. Neither a nor b is modified.
func Boolean(a, b *Spline, op BooleanOp, opts IntersectOptions) (*Transaction, error) {
	if op != Union && op != Intersection && op != Difference {
		return nil, fmt.Errorf("%w: %v", ErrOperation, op)
	} else if !a.Cyclic || !b.Cyclic {
		return nil, ErrNotCyclic
	} else if a == b {
		return nil, ErrSelection
	}
	opts = opts.withDefaults()

	if coincidentContours(a, b, opts.BroadTolerance) {
		if op == Difference {
			return &Transaction{Delete: []*Spline{a, b}}, nil
		}
		return &Transaction{Delete: []*Spline{b}}, nil
	}

	// b is walked in the direction of a so that arcs of both contours chain at junctions
	ca, cb := a.Clone(), b.Clone()
	if a.Orientation()*b.Orientation() < 0.0 {
		cb = b.Reverse()
	}
	segsA, segsB := ca.Segments(), cb.Segments()
	n := 0
	for _, segA := range segsA {
		for _, segB := range segsB {
			n += IntersectSegments(segA, segB, opts)
		}
	}
	if n == 0 {
		return booleanDisjoint(a, b, op), nil
	}

	for _, seg := range segsA {
		ca.Subdivide(seg)
	}
	for _, seg := range segsB {
		cb.Subdivide(seg)
	}

	// junctions identified by their control point ID in A
	aToB := map[PointID]PointID{}
	bToA := map[PointID]PointID{}
	for _, seg := range segsA {
		for _, cut := range seg.activeCuts() {
			if cut.Other == nil || cut.Point == NoPoint || cut.Other.Point == NoPoint {
				continue
			}
			idA, idB := cut.Point, cut.Other.Point
			if _, ok := aToB[idA]; ok {
				continue
			} else if _, ok := bToA[idB]; ok {
				continue
			}
			aToB[idA] = idB
			bToA[idB] = idA
		}
	}
	if len(aToB) < 2 {
		// touching in a single point
		return booleanDisjoint(a, b, op), nil
	}

	arcsA := booleanArcs(ca, cb, func(id PointID) (PointID, bool) {
		_, ok := aToB[id]
		return id, ok
	})
	arcsB := booleanArcs(cb, ca, func(id PointID) (PointID, bool) {
		key, ok := bToA[id]
		return key, ok
	})
	for _, arc := range arcsB {
		arc.onB = true
	}

	var kept []*booleanArc
	for _, arc := range arcsA {
		if arc.inside == (op == Intersection) {
			kept = append(kept, arc)
		}
	}
	for _, arc := range arcsB {
		if arc.inside == (op != Union) {
			if op == Difference {
				arc.reverse()
			}
			kept = append(kept, arc)
		}
	}
	Logger().Debug("boolean", "op", op, "intersections", n, "junctions", len(aToB), "arcs", len(arcsA)+len(arcsB), "kept", len(kept))

	kind := Bezier
	if a.Kind == Poly && b.Kind == Poly {
		kind = Poly
	}
	results, err := stitchArcs(kept, kind)
	if err != nil {
		Logger().Warn("boolean result rejected", "op", op, "error", err)
		return nil, err
	}
	return &Transaction{
		Delete: []*Spline{a, b},
		Insert: results,
	}, nil
}

// BooleanSelection applies Boolean to the two splines of c that have selected control points, the first in document order being the first operand.
func BooleanSelection(c *Curve, op BooleanOp, opts IntersectOptions) (*Transaction, error) {
	selected := c.Selected()
	if len(selected) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrSelection, len(selected))
	}
	return Boolean(selected[0], selected[1], op, opts)
}

// booleanDisjoint returns the transaction for contours that do not cross.
func booleanDisjoint(a, b *Spline, op BooleanOp) *Transaction {
	aInB := b.Contains(BezierPoint(a.SegmentPoints(0), 0.5))
	bInA := a.Contains(BezierPoint(b.SegmentPoints(0), 0.5))

	var deleteA, deleteB bool
	switch op {
	case Union:
		deleteA, deleteB = aInB, bInA
	case Intersection:
		deleteA, deleteB = !aInB, !bInA
	case Difference:
		deleteA, deleteB = aInB, !bInA
	}

	tx := &Transaction{}
	if deleteA {
		tx.Delete = append(tx.Delete, a)
	}
	if deleteB {
		tx.Delete = append(tx.Delete, b)
	}
	return tx
}

// booleanArcs splits the subdivided contour s into arcs between junctions and classifies them against the other contour. Each arc is classified by a point-in-contour test halfway along it, so that junctions where the contours touch without crossing need no special care.
func booleanArcs(s, other *Spline, junction func(PointID) (PointID, bool)) []*booleanArc {
	var indices []int
	for i, cp := range s.Points {
		if _, ok := junction(cp.ID); ok {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return nil
	}

	n := len(s.Points)
	arcs := make([]*booleanArc, len(indices))
	for k, i := range indices {
		j := indices[(k+1)%len(indices)]
		if j <= i {
			j += n
		}
		arc := &booleanArc{}
		for m := i; m <= j; m++ {
			arc.points = append(arc.points, s.Points[m%n])
		}
		arc.begin, _ = junction(s.Points[i].ID)
		arc.end, _ = junction(s.Points[j%n].ID)
		arc.inside = other.Contains(BezierPoint(s.SegmentPoints((i+(j-i)/2)%n), 0.5))
		arcs[k] = arc
	}
	return arcs
}

// stitchArcs connects the arcs into closed contours. At each junction the walk continues on an arc of the other contour when possible. Every arc is used once.
func stitchArcs(arcs []*booleanArc, kind SplineKind) ([]*Spline, error) {
	starts := map[PointID][]*booleanArc{}
	for _, arc := range arcs {
		starts[arc.begin] = append(starts[arc.begin], arc)
	}
	nextArc := func(cur *booleanArc) *booleanArc {
		var candidate *booleanArc
		for _, arc := range starts[cur.end] {
			if arc.visited {
				continue
			} else if arc.onB != cur.onB {
				return arc
			} else if candidate == nil {
				candidate = arc
			}
		}
		return candidate
	}

	var results []*Spline
	for _, first := range arcs {
		if first.visited {
			continue
		}

		var points []ControlPoint
		junctions := []int{0}
		arc := first
		for {
			arc.visited = true
			if len(points) == 0 {
				points = append(points, arc.points...)
			} else {
				// junction: left handle from the previous arc, right handle from this one
				junctions = append(junctions, len(points)-1)
				junction := &points[len(points)-1]
				junction.HandleRight = arc.points[0].HandleRight
				points = append(points, arc.points[1:]...)
			}
			if arc.end == first.begin {
				break
			}
			if arc = nextArc(arc); arc == nil {
				return nil, fmt.Errorf("%w: open walk from %v", ErrTopology, first)
			}
		}

		// the walk ends at the first junction
		last := points[len(points)-1]
		points = points[:len(points)-1]
		points[0].HandleLeft = last.HandleLeft
		for _, k := range junctions {
			setJunctionHandleTypes(points, k, kind)
		}

		s := NewSpline(kind, true)
		for _, cp := range points {
			cp.Selected = false
			s.Add(cp)
		}
		if err := verifyLoop(s); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, nil
}

// setJunctionHandleTypes gives the junction at index k of a closed contour vector handles on the sides of straight segments and free handles on the sides of curved ones.
func setJunctionHandleTypes(points []ControlPoint, k int, kind SplineKind) {
	n := len(points)
	cp, prev, next := &points[k], points[(k+n-1)%n], points[(k+1)%n]
	handleType := func(seg [4]r3.Vec) HandleType {
		if kind == Poly || IsSegmentLinear(seg, linearTolerance) {
			return HandleVector
		}
		return HandleFree
	}
	cp.HandleLeftType = handleType([4]r3.Vec{prev.Co, prev.HandleRight, cp.HandleLeft, cp.Co})
	cp.HandleRightType = handleType([4]r3.Vec{cp.Co, cp.HandleRight, next.HandleLeft, next.Co})
}

// verifyLoop checks that a result contour is a proper closed loop.
func verifyLoop(s *Spline) error {
	if !s.Cyclic {
		return fmt.Errorf("%w: not cyclic", ErrTopology)
	}
	curved := false
	for i := 0; i < s.SegmentCount(); i++ {
		if !IsSegmentLinear(s.SegmentPoints(i), linearTolerance) {
			curved = true
		}
	}
	if len(s.Points) < 3 && !(curved && len(s.Points) == 2) {
		return fmt.Errorf("%w: %d vertices", ErrTopology, len(s.Points))
	}
	return nil
}

// coincidentContours returns true if a and b consist of the same segments, in any direction and starting at any point.
func coincidentContours(a, b *Spline, tolerance float64) bool {
	n := a.SegmentCount()
	if n == 0 || n != b.SegmentCount() {
		return false
	}
	segsA := make([][4]r3.Vec, n)
	for i := range segsA {
		segsA[i] = a.SegmentPoints(i)
	}
	for _, c := range []*Spline{b, b.Reverse()} {
		segsB := make([][4]r3.Vec, n)
		for i := range segsB {
			segsB[i] = c.SegmentPoints(i)
		}
	Offsets:
		for off := 0; off < n; off++ {
			for i := range segsA {
				for k := 0; k < 4; k++ {
					if !nearVec(segsA[i][k], segsB[(i+off)%n][k], tolerance) {
						continue Offsets
					}
				}
			}
			return true
		}
	}
	return false
}
