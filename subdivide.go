package curve

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// paramTolerance is the default parameter distance at which a cut coincides with a segment end point.
const paramTolerance = 1e-4

// BezierSubdivide splits p at the ascending parameters in (0,1) and returns the 3n+2 control points of the pieces without the outer end points: the shortened handle of the begin point, then for every parameter its left handle, point and right handle, and finally the shortened handle of the end point. The pieces trace exactly the same curve as p.
func BezierSubdivide(p [4]r3.Vec, params []float64) []r3.Vec {
	if len(params) == 0 {
		return []r3.Vec{p[1], p[2]}
	}

	ps := make([]r3.Vec, 0, 3*len(params)+2)
	ps = append(ps, lerp(p[0], p[1], params[0]))
	for i, t := range params {
		left := t
		if 0 < i {
			left = t - params[i-1]
		}
		right := 1.0 - t
		if i+1 < len(params) {
			right = params[i+1] - t
		}

		pos := BezierPoint(p, t)
		tangent := r3.Scale(1.0/3.0, BezierTangent(p, t))
		ps = append(ps, r3.Sub(pos, r3.Scale(left, tangent)), pos, r3.Add(pos, r3.Scale(right, tangent)))
	}
	ps = append(ps, lerp(p[3], p[2], 1.0-params[len(params)-1]))
	return ps
}

// Subdivide inserts control points at the cuts of the segment, which must belong to s, and returns the IDs of the inserted points. Every cut gets the ID of the point that realizes it: cuts near the end points of the segment refer to the existing begin or end point and cuts closer than the tolerance share a point. Because segments refer to points by ID, segments and cuts of other segments remain valid.
func (s *Spline) Subdivide(seg *Segment) []PointID {
	i := s.Index(seg.Begin)
	j := s.Index(seg.End)
	if seg.Spline != s || i == -1 || j == -1 {
		return nil
	}

	seg.SortCuts()
	var params []float64
	var groups [][]*Cut
	for _, cut := range seg.activeCuts() {
		if cut.Param <= paramTolerance {
			cut.Point = seg.Begin
		} else if 1.0-paramTolerance <= cut.Param {
			cut.Point = seg.End
		} else if 0 < len(params) && cut.Param-params[len(params)-1] <= paramTolerance {
			groups[len(groups)-1] = append(groups[len(groups)-1], cut)
		} else {
			params = append(params, cut.Param)
			groups = append(groups, []*Cut{cut})
		}
	}
	if len(params) == 0 {
		return nil
	}

	p := s.SegmentPoints(i)
	linear := s.Kind == Poly || IsSegmentLinear(p, linearTolerance)
	vector := linear && s.Points[i].HandleRightType == HandleVector && s.Points[j].HandleLeftType == HandleVector
	ps := BezierSubdivide(p, params)

	begin, end := &s.Points[i], &s.Points[j]
	begin.HandleRight = ps[0]
	end.HandleLeft = ps[len(ps)-1]
	if !vector {
		begin.HandleRightType = subdividedHandleType(begin.HandleRightType)
		end.HandleLeftType = subdividedHandleType(end.HandleLeftType)
	}
	w0, w1 := begin.Weight, end.Weight

	handleType := HandleAligned
	if vector {
		handleType = HandleVector
	}
	ids := make([]PointID, len(params))
	for k, t := range params {
		id := s.Insert(i+1+k, ControlPoint{
			Co:              ps[3*k+2],
			HandleLeft:      ps[3*k+1],
			HandleRight:     ps[3*k+3],
			HandleLeftType:  handleType,
			HandleRightType: handleType,
			Weight:          w0 + (w1-w0)*t,
		})
		for _, cut := range groups[k] {
			cut.Point = id
		}
		ids[k] = id
	}
	return ids
}

// subdividedHandleType returns the type of a handle whose length changed but whose direction is kept.
func subdividedHandleType(t HandleType) HandleType {
	switch t {
	case HandleAuto:
		return HandleAligned
	case HandleVector:
		return HandleFree
	}
	return t
}
