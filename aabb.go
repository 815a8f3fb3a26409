package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AABB is an axis-aligned bounding box given by its center and half of its size along each axis.
type AABB struct {
	Center   r3.Vec
	HalfSize r3.Vec
}

// AABBOfPoints returns the smallest AABB containing all points.
func AABBOfPoints(ps ...r3.Vec) AABB {
	if len(ps) == 0 {
		return AABB{}
	}
	min, max := ps[0], ps[0]
	for _, p := range ps[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	return AABBOfBox(r3.Box{Min: min, Max: max})
}

// AABBOfBox converts a min/max box to an AABB.
func AABBOfBox(b r3.Box) AABB {
	return AABB{
		Center:   r3.Scale(0.5, r3.Add(b.Min, b.Max)),
		HalfSize: r3.Scale(0.5, r3.Sub(b.Max, b.Min)),
	}
}

// Box returns the min/max representation.
func (a AABB) Box() r3.Box {
	return r3.Box{
		Min: r3.Sub(a.Center, a.HalfSize),
		Max: r3.Add(a.Center, a.HalfSize),
	}
}

// Intersects returns true if both boxes overlap when inflated by tolerance along every axis.
func (a AABB) Intersects(b AABB, tolerance float64) bool {
	d := r3.Sub(a.Center, b.Center)
	return math.Abs(d.X) <= a.HalfSize.X+b.HalfSize.X+tolerance &&
		math.Abs(d.Y) <= a.HalfSize.Y+b.HalfSize.Y+tolerance &&
		math.Abs(d.Z) <= a.HalfSize.Z+b.HalfSize.Z+tolerance
}

// Contains returns true if p lies within the box.
func (a AABB) Contains(p r3.Vec) bool {
	d := r3.Sub(p, a.Center)
	return math.Abs(d.X) <= a.HalfSize.X && math.Abs(d.Y) <= a.HalfSize.Y && math.Abs(d.Z) <= a.HalfSize.Z
}

func (a AABB) String() string {
	b := a.Box()
	return fmt.Sprintf("AABB(%v-%v)", vecString(b.Min), vecString(b.Max))
}
