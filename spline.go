package curve

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// PointID identifies a control point within its spline. IDs are assigned on insertion and never change, so that segments and cuts stay valid while points are inserted.
type PointID int

// NoPoint is the zero reference of PointID.
const NoPoint PointID = -1

// HandleType is the type of a control point handle.
type HandleType int

// see HandleType
const (
	HandleFree HandleType = iota
	HandleAligned
	HandleVector
	HandleAuto
)

func (t HandleType) String() string {
	switch t {
	case HandleFree:
		return "FREE"
	case HandleAligned:
		return "ALIGNED"
	case HandleVector:
		return "VECTOR"
	case HandleAuto:
		return "AUTO"
	}
	return fmt.Sprintf("HandleType(%d)", int(t))
}

// ParseHandleType parses the names returned by HandleType.String.
func ParseHandleType(s string) (HandleType, error) {
	switch s {
	case "FREE":
		return HandleFree, nil
	case "ALIGNED":
		return HandleAligned, nil
	case "VECTOR":
		return HandleVector, nil
	case "AUTO":
		return HandleAuto, nil
	}
	return 0, fmt.Errorf("%w: unknown handle type %q", ErrParse, s)
}

// SplineKind is the kind of a spline.
type SplineKind int

// see SplineKind
const (
	Bezier SplineKind = iota
	Poly
)

func (k SplineKind) String() string {
	switch k {
	case Bezier:
		return "BEZIER"
	case Poly:
		return "POLY"
	}
	return fmt.Sprintf("SplineKind(%d)", int(k))
}

// ParseSplineKind parses the names returned by SplineKind.String.
func ParseSplineKind(s string) (SplineKind, error) {
	switch s {
	case "BEZIER":
		return Bezier, nil
	case "POLY":
		return Poly, nil
	}
	return 0, fmt.Errorf("%w: unknown spline kind %q", ErrParse, s)
}

// ControlPoint is a vertex of a spline. The handles are absolute positions.
type ControlPoint struct {
	ID                              PointID
	Co, HandleLeft, HandleRight     r3.Vec
	HandleLeftType, HandleRightType HandleType
	Weight                          float64
	Selected                        bool
}

// Vertex returns a control point at co with vector handles, as used for polygon vertices.
func Vertex(co r3.Vec) ControlPoint {
	return ControlPoint{
		ID:              NoPoint,
		Co:              co,
		HandleLeft:      co,
		HandleRight:     co,
		HandleLeftType:  HandleVector,
		HandleRightType: HandleVector,
		Weight:          1.0,
	}
}

// swapHandles swaps the left and right handles, used when reversing the direction of a spline.
func (cp *ControlPoint) swapHandles() {
	cp.HandleLeft, cp.HandleRight = cp.HandleRight, cp.HandleLeft
	cp.HandleLeftType, cp.HandleRightType = cp.HandleRightType, cp.HandleLeftType
}

func (cp ControlPoint) String() string {
	return fmt.Sprintf("#%d%v", cp.ID, vecString(cp.Co))
}

////////////////////////////////////////////////////////////////

// Spline is an ordered list of control points. A cyclic spline of N points has N segments, an open spline N-1. Segments of a Poly spline are straight, regardless of the handles.
type Spline struct {
	Kind   SplineKind
	Cyclic bool
	Points []ControlPoint

	nextID PointID
}

// NewSpline returns an empty spline.
func NewSpline(kind SplineKind, cyclic bool) *Spline {
	return &Spline{
		Kind:   kind,
		Cyclic: cyclic,
	}
}

// NewPolygon returns a cyclic Poly spline through the given vertices.
func NewPolygon(vertices ...r3.Vec) *Spline {
	s := NewSpline(Poly, true)
	for _, v := range vertices {
		s.Add(Vertex(v))
	}
	return s
}

// Len returns the number of control points.
func (s *Spline) Len() int {
	return len(s.Points)
}

// Empty returns true if the spline has no segments.
func (s *Spline) Empty() bool {
	return len(s.Points) < 2
}

// Add appends a control point and returns its new ID.
func (s *Spline) Add(cp ControlPoint) PointID {
	return s.Insert(len(s.Points), cp)
}

// Insert inserts a control point at index i and returns its new ID.
func (s *Spline) Insert(i int, cp ControlPoint) PointID {
	cp.ID = s.nextID
	s.nextID++
	if s.Kind == Poly {
		cp.HandleLeft, cp.HandleRight = cp.Co, cp.Co
	}
	s.Points = append(s.Points, ControlPoint{})
	copy(s.Points[i+1:], s.Points[i:])
	s.Points[i] = cp
	return cp.ID
}

// Remove removes the control point at index i.
func (s *Spline) Remove(i int) {
	s.Points = append(s.Points[:i], s.Points[i+1:]...)
}

// Index returns the index of the control point with the given ID or -1.
func (s *Spline) Index(id PointID) int {
	for i := range s.Points {
		if s.Points[i].ID == id {
			return i
		}
	}
	return -1
}

// Point returns the control point with the given ID or nil.
func (s *Spline) Point(id PointID) *ControlPoint {
	if i := s.Index(id); i != -1 {
		return &s.Points[i]
	}
	return nil
}

// next returns the index following i, wrapping around for cyclic splines. It returns -1 past the end of an open spline.
func (s *Spline) next(i int) int {
	if i+1 < len(s.Points) {
		return i + 1
	} else if s.Cyclic && 0 < len(s.Points) {
		return 0
	}
	return -1
}

// prev returns the index preceding i, wrapping around for cyclic splines. It returns -1 before the start of an open spline.
func (s *Spline) prev(i int) int {
	if 0 < i {
		return i - 1
	} else if s.Cyclic && 0 < len(s.Points) {
		return len(s.Points) - 1
	}
	return -1
}

// SegmentCount returns the number of segments.
func (s *Spline) SegmentCount() int {
	if len(s.Points) < 2 {
		return 0
	} else if s.Cyclic {
		return len(s.Points)
	}
	return len(s.Points) - 1
}

// SegmentPoints returns the cubic Bézier of the segment starting at control point index i.
func (s *Spline) SegmentPoints(i int) [4]r3.Vec {
	j := (i + 1) % len(s.Points)
	a, b := s.Points[i], s.Points[j]
	if s.Kind == Poly {
		return [4]r3.Vec{a.Co, lerp(a.Co, b.Co, 1.0/3.0), lerp(a.Co, b.Co, 2.0/3.0), b.Co}
	}
	return [4]r3.Vec{a.Co, a.HandleRight, b.HandleLeft, b.Co}
}

// Segments returns a fresh view of all segments, without cuts.
func (s *Spline) Segments() []*Segment {
	segs := make([]*Segment, s.SegmentCount())
	for i := range segs {
		segs[i] = &Segment{
			Spline: s,
			Begin:  s.Points[i].ID,
			End:    s.Points[(i+1)%len(s.Points)].ID,
		}
	}
	return segs
}

// Coords returns the positions of all control points.
func (s *Spline) Coords() []r3.Vec {
	coords := make([]r3.Vec, len(s.Points))
	for i, cp := range s.Points {
		coords[i] = cp.Co
	}
	return coords
}

// Selected returns true if any control point is selected.
func (s *Spline) Selected() bool {
	for _, cp := range s.Points {
		if cp.Selected {
			return true
		}
	}
	return false
}

// Select sets the selection flag of all control points.
func (s *Spline) Select(selected bool) {
	for i := range s.Points {
		s.Points[i].Selected = selected
	}
}

// Clone returns a deep copy, keeping the point IDs.
func (s *Spline) Clone() *Spline {
	r := *s
	r.Points = append([]ControlPoint{}, s.Points...)
	return &r
}

// Reverse returns a copy traversed in the opposite direction. Left and right handles are swapped and point IDs are kept.
func (s *Spline) Reverse() *Spline {
	r := s.Clone()
	n := len(r.Points)
	for i := 0; i < n/2; i++ {
		r.Points[i], r.Points[n-1-i] = r.Points[n-1-i], r.Points[i]
	}
	for i := range r.Points {
		r.Points[i].swapHandles()
	}
	return r
}

// UpdateVectorHandles places every vector handle at a third of the way to the neighbouring control point, and resets the handles of Poly splines to their control points.
func (s *Spline) UpdateVectorHandles() {
	for i := range s.Points {
		cp := &s.Points[i]
		if s.Kind == Poly {
			cp.HandleLeft, cp.HandleRight = cp.Co, cp.Co
			continue
		}
		if cp.HandleLeftType == HandleVector {
			if j := s.prev(i); j != -1 {
				cp.HandleLeft = lerp(cp.Co, s.Points[j].Co, 1.0/3.0)
			} else {
				cp.HandleLeft = cp.Co
			}
		}
		if cp.HandleRightType == HandleVector {
			if j := s.next(i); j != -1 {
				cp.HandleRight = lerp(cp.Co, s.Points[j].Co, 1.0/3.0)
			} else {
				cp.HandleRight = cp.Co
			}
		}
	}
}

// Length returns the total arc length.
func (s *Spline) Length() float64 {
	length := 0.0
	for i := 0; i < s.SegmentCount(); i++ {
		length += BezierLength(s.SegmentPoints(i), 0.0, 1.0, 0)
	}
	return length
}

// Bounds returns the AABB of all control points and handles, which contains the spline.
func (s *Spline) Bounds() AABB {
	ps := make([]r3.Vec, 0, 3*len(s.Points))
	for _, cp := range s.Points {
		ps = append(ps, cp.Co)
		if s.Kind != Poly {
			ps = append(ps, cp.HandleLeft, cp.HandleRight)
		}
	}
	return AABBOfPoints(ps...)
}
