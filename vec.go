package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// zAxis is the normal of the plane in which planar operations (offset, boolean, containment) take place.
var zAxis = r3.Vec{X: 0.0, Y: 0.0, Z: 1.0}

// lerp returns a point on AB that is linearly interpolated by t, ie. t=0 returns A and t=1 returns B.
func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Vec{
		X: (1.0-t)*a.X + t*b.X,
		Y: (1.0-t)*a.Y + t*b.Y,
		Z: (1.0-t)*a.Z + t*b.Z,
	}
}

func dist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// equalVec returns true if a and b are equal with tolerance Epsilon.
func equalVec(a, b r3.Vec) bool {
	return equal(a.X, b.X) && equal(a.Y, b.Y) && equal(a.Z, b.Z)
}

// nearVec returns true if the distance between a and b does not exceed tolerance.
func nearVec(a, b r3.Vec, tolerance float64) bool {
	return r3.Norm2(r3.Sub(a, b)) <= tolerance*tolerance
}

// unit normalizes v, it returns the zero vector for (near) zero vectors instead of NaNs.
func unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < Epsilon {
		return r3.Vec{}
	}
	return r3.Scale(1.0/n, v)
}

// norm returns v scaled to have the given length.
func norm(v r3.Vec, length float64) r3.Vec {
	return r3.Scale(length, unit(v))
}

// angleBetween returns the unsigned angle between a and b in [0,PI].
func angleBetween(a, b r3.Vec) float64 {
	return math.Atan2(r3.Norm(r3.Cross(a, b)), r3.Dot(a, b))
}

// angleBetweenXY returns the signed angle from a to b projected on the XY plane, CCW is positive.
func angleBetweenXY(a, b r3.Vec) float64 {
	return math.Atan2(perpDotXY(a, b), a.X*b.X+a.Y*b.Y)
}

// perpDotXY returns the perp dot product of a and b in the XY plane, ie. zero if aligned.
func perpDotXY(a, b r3.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// rot90CW rotates v by 90 degrees CW in the XY plane.
func rot90CW(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.Y, Y: -v.X, Z: v.Z}
}

// rotate rotates p around the axis through center by phi radians (CCW when looking against axis), using Rodrigues' formula.
func rotate(p, center, axis r3.Vec, phi float64) r3.Vec {
	k := unit(axis)
	v := r3.Sub(p, center)
	sinphi, cosphi := math.Sincos(phi)
	w := r3.Add(r3.Scale(cosphi, v), r3.Scale(sinphi, r3.Cross(k, v)))
	w = r3.Add(w, r3.Scale(r3.Dot(k, v)*(1.0-cosphi), k))
	return r3.Add(center, w)
}

func vecString(v r3.Vec) string {
	if v.Z == 0.0 {
		return fmt.Sprintf("(%v,%v)", ftos(v.X), ftos(v.Y))
	}
	return fmt.Sprintf("(%v,%v,%v)", ftos(v.X), ftos(v.Y), ftos(v.Z))
}
