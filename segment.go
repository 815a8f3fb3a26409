package curve

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Segment is the part of a spline between two consecutive control points. It refers to the points by ID and holds the cuts found on it.
type Segment struct {
	Spline     *Spline
	Begin, End PointID
	Cuts       []*Cut
	Deleted    bool
}

// Cut is an intersection on a segment at parameter Param, linked to the cut on the other segment. Point is set by subdivision to the ID of the control point that realizes the cut.
type Cut struct {
	Param   float64
	Segment *Segment
	Other   *Cut
	Deleted bool
	Point   PointID
}

// Position returns the location of the cut.
func (c *Cut) Position() r3.Vec {
	return BezierPoint(c.Segment.Points(), c.Param)
}

func (c *Cut) String() string {
	return fmt.Sprintf("Cut(%v@%v)", c.Segment, ftos(c.Param))
}

// Points returns the control points of the cubic Bézier of the segment.
func (seg *Segment) Points() [4]r3.Vec {
	i := seg.Spline.Index(seg.Begin)
	if i == -1 {
		panic(fmt.Sprintf("segment %v: begin point not in spline", seg))
	}
	return seg.Spline.SegmentPoints(i)
}

// IsLinear returns true if the segment is a straight line.
func (seg *Segment) IsLinear(tolerance float64) bool {
	return seg.Spline.Kind == Poly || IsSegmentLinear(seg.Points(), tolerance)
}

// Length returns the arc length of the segment.
func (seg *Segment) Length() float64 {
	return BezierLength(seg.Points(), 0.0, 1.0, 0)
}

// Adjacent returns true if both segments belong to the same spline and share a control point.
func (seg *Segment) Adjacent(other *Segment) bool {
	return seg.Spline == other.Spline && (seg.End == other.Begin || seg.Begin == other.End)
}

// AddCut appends a cut at parameter t and returns it.
func (seg *Segment) AddCut(t float64) *Cut {
	cut := &Cut{
		Param:   t,
		Segment: seg,
		Point:   NoPoint,
	}
	seg.Cuts = append(seg.Cuts, cut)
	return cut
}

// SortCuts sorts the cuts by ascending parameter.
func (seg *Segment) SortCuts() {
	sort.SliceStable(seg.Cuts, func(i, j int) bool {
		return seg.Cuts[i].Param < seg.Cuts[j].Param
	})
}

// activeCuts returns the cuts that are not deleted.
func (seg *Segment) activeCuts() []*Cut {
	cuts := make([]*Cut, 0, len(seg.Cuts))
	for _, cut := range seg.Cuts {
		if !cut.Deleted {
			cuts = append(cuts, cut)
		}
	}
	return cuts
}

func (seg *Segment) String() string {
	return fmt.Sprintf("Segment(#%d-#%d)", seg.Begin, seg.End)
}

// linkCuts links two cuts as each other's counterpart.
func linkCuts(a, b *Cut) {
	a.Other = b
	b.Other = a
}
