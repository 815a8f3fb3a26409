package curve

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultLengthSamples is the number of intervals used by BezierLength when zero samples are requested.
const DefaultLengthSamples = 1024

// BezierPoint returns the point of the cubic Bézier p at t. The parameter is not clamped, values outside [0,1] extrapolate the curve.
func BezierPoint(p [4]r3.Vec, t float64) r3.Vec {
	s := 1.0 - t
	b0 := s * s * s
	b1 := 3.0 * s * s * t
	b2 := 3.0 * s * t * t
	b3 := t * t * t
	return r3.Vec{
		X: b0*p[0].X + b1*p[1].X + b2*p[2].X + b3*p[3].X,
		Y: b0*p[0].Y + b1*p[1].Y + b2*p[2].Y + b3*p[3].Y,
		Z: b0*p[0].Z + b1*p[1].Z + b2*p[2].Z + b3*p[3].Z,
	}
}

// BezierTangent returns the first derivative of the cubic Bézier p at t. It is not normalized.
func BezierTangent(p [4]r3.Vec, t float64) r3.Vec {
	s := 1.0 - t
	d0 := r3.Sub(p[1], p[0])
	d1 := r3.Sub(p[2], p[1])
	d2 := r3.Sub(p[3], p[2])
	return r3.Add(r3.Add(r3.Scale(3.0*s*s, d0), r3.Scale(6.0*s*t, d1)), r3.Scale(3.0*t*t, d2))
}

// bezierDirection returns the unit tangent at t, falling back to the direction towards the other control points when the derivative vanishes (ie. zero-length handles at the end points).
func bezierDirection(p [4]r3.Vec, t float64) r3.Vec {
	if d := unit(BezierTangent(p, t)); d != (r3.Vec{}) {
		return d
	}
	if t <= 0.5 {
		for _, q := range p[2:] {
			if d := unit(r3.Sub(q, p[0])); d != (r3.Vec{}) {
				return d
			}
		}
	} else {
		for _, q := range []r3.Vec{p[1], p[0]} {
			if d := unit(r3.Sub(p[3], q)); d != (r3.Vec{}) {
				return d
			}
		}
	}
	return r3.Vec{}
}

// BezierLength returns the arc length of p between t0 and t1 by Simpson integration of the speed over the given number of intervals (DefaultLengthSamples if samples <= 0).
func BezierLength(p [4]r3.Vec, t0, t1 float64, samples int) float64 {
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	if t0 == t1 {
		return 0.0
	}
	if samples <= 0 {
		samples = DefaultLengthSamples
	}
	if samples < 2 {
		samples = 2
	}

	ts := floats.Span(make([]float64, samples+1), t0, t1)
	speeds := make([]float64, len(ts))
	for i, t := range ts {
		speeds[i] = r3.Norm(BezierTangent(p, t))
	}
	return math.Abs(integrate.Simpsons(ts, speeds))
}

// BezierSlice returns the control points of the part of p between t0 and t1.
func BezierSlice(p [4]r3.Vec, t0, t1 float64) [4]r3.Vec {
	dt := (t1 - t0) / 3.0
	p0 := BezierPoint(p, t0)
	p3 := BezierPoint(p, t1)
	return [4]r3.Vec{
		p0,
		r3.Add(p0, r3.Scale(dt, BezierTangent(p, t0))),
		r3.Sub(p3, r3.Scale(dt, BezierTangent(p, t1))),
		p3,
	}
}

// IsSegmentLinear returns true when both handles of p lie on the line through its end points, the handles may have zero length.
func IsSegmentLinear(p [4]r3.Vec, tolerance float64) bool {
	chord := r3.Sub(p[3], p[0])
	length := r3.Norm(chord)
	if length < Epsilon {
		return nearVec(p[1], p[0], tolerance) && nearVec(p[2], p[0], tolerance)
	}
	dir := r3.Scale(1.0/length, chord)
	for _, q := range p[1:3] {
		if tolerance*length < r3.Norm(r3.Cross(r3.Sub(q, p[0]), dir)) {
			return false
		}
	}
	return true
}

// splitCubicBezier splits p at t by De Casteljau's algorithm into the curves before and after t.
func splitCubicBezier(p [4]r3.Vec, t float64) ([4]r3.Vec, [4]r3.Vec) {
	pm := lerp(p[1], p[2], t)

	var q, r [4]r3.Vec
	q[0] = p[0]
	q[1] = lerp(p[0], p[1], t)
	q[2] = lerp(q[1], pm, t)

	r[3] = p[3]
	r[2] = lerp(p[2], p[3], t)
	r[1] = lerp(pm, r[2], t)

	r[0] = lerp(q[2], r[1], t)
	q[3] = r[0]
	return q, r
}

func bezierAABB(p [4]r3.Vec) AABB {
	return AABBOfPoints(p[:]...)
}
