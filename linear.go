package curve

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NearestPointOfLines returns the parameters along the infinite lines A0A1 and B0B1 of their points of closest approach, so that A0+(A1-A0)*ta is nearest to B0+(B1-B0)*tb. It returns false for parallel lines.
func NearestPointOfLines(a0, a1, b0, b1 r3.Vec) (float64, float64, bool) {
	da := r3.Sub(a1, a0)
	db := r3.Sub(b1, b0)
	n := r3.Cross(da, db)
	n2 := r3.Norm2(n)
	if n2 < Epsilon*Epsilon*r3.Norm2(da)*r3.Norm2(db) || n2 == 0.0 {
		return 0.0, 0.0, false
	}

	// see https://en.wikipedia.org/wiki/Skew_lines#Nearest_points
	d := r3.Sub(b0, a0)
	ta := r3.Dot(r3.Cross(d, db), n) / n2
	tb := r3.Dot(r3.Cross(d, da), n) / n2
	return ta, tb, true
}

// LineSegmentIntersection returns the parameters of the intersection of the line segments A0A1 and B0B1. Both segments must be coplanar within tolerance and the parameters must lie in [0,1].
func LineSegmentIntersection(a0, a1, b0, b1 r3.Vec, tolerance float64) (float64, float64, bool) {
	ta, tb, ok := NearestPointOfLines(a0, a1, b0, b1)
	if !ok {
		return 0.0, 0.0, false
	}
	if ta < 0.0 || 1.0 < ta || tb < 0.0 || 1.0 < tb {
		return 0.0, 0.0, false
	}
	pa := lerp(a0, a1, ta)
	pb := lerp(b0, b1, tb)
	if !nearVec(pa, pb, tolerance) {
		return 0.0, 0.0, false
	}
	return ta, tb, true
}

// LinePlaneIntersection returns the parameter along the line P0P1 where it crosses the plane through origin with the given normal. It returns false when the line is parallel to the plane.
func LinePlaneIntersection(p0, p1, origin, normal r3.Vec) (float64, bool) {
	d := r3.Sub(p1, p0)
	det := r3.Dot(d, normal)
	if math.Abs(det) < Epsilon {
		return 0.0, false
	}
	return r3.Dot(r3.Sub(origin, p0), normal) / det, true
}

// LineAABBIntersection returns the entry and exit parameters of the line P0P1 through the box by the slab method. It returns false if the line misses the box.
func LineAABBIntersection(p0, p1 r3.Vec, box AABB) (float64, float64, bool) {
	b := box.Box()
	d := r3.Sub(p1, p0)
	tmin, tmax := math.Inf(-1), math.Inf(1)
	slab := func(p, d, min, max float64) bool {
		if math.Abs(d) < Epsilon {
			return min <= p && p <= max
		}
		t0 := (min - p) / d
		t1 := (max - p) / d
		if t1 < t0 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
		return tmin <= tmax
	}
	if !slab(p0.X, d.X, b.Min.X, b.Max.X) || !slab(p0.Y, d.Y, b.Min.Y, b.Max.Y) || !slab(p0.Z, d.Z, b.Min.Z, b.Max.Z) {
		return 0.0, 0.0, false
	}
	if math.IsInf(tmin, 0) {
		// degenerate line inside the box
		return 0.0, 0.0, true
	}
	return tmin, tmax, true
}
