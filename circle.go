package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultCircleSamples is the number of samples used by CircleOfBezier to verify the fit.
const DefaultCircleSamples = 16

// Circle is a circle in 3D space. The columns of Orientation are the local X axis (towards the first point it was constructed from), the Y axis and the normal of the plane of the circle.
type Circle struct {
	Orientation *r3.Mat
	Center      r3.Vec
	Radius      float64
}

// Normal returns the normal of the plane of the circle.
func (c Circle) Normal() r3.Vec {
	return r3.Vec{X: c.Orientation.At(0, 2), Y: c.Orientation.At(1, 2), Z: c.Orientation.At(2, 2)}
}

// PointAt returns the point on the circle at angle theta measured from the local X axis.
func (c Circle) PointAt(theta float64) r3.Vec {
	x := r3.Vec{X: c.Orientation.At(0, 0), Y: c.Orientation.At(1, 0), Z: c.Orientation.At(2, 0)}
	y := r3.Vec{X: c.Orientation.At(0, 1), Y: c.Orientation.At(1, 1), Z: c.Orientation.At(2, 1)}
	sintheta, costheta := math.Sincos(theta)
	return r3.Add(c.Center, r3.Add(r3.Scale(c.Radius*costheta, x), r3.Scale(c.Radius*sintheta, y)))
}

// Angle returns the angle of the projection of p onto the plane of the circle, measured from the local X axis in [0,2PI).
func (c Circle) Angle(p r3.Vec) float64 {
	d := r3.Sub(p, c.Center)
	x := c.Orientation.At(0, 0)*d.X + c.Orientation.At(1, 0)*d.Y + c.Orientation.At(2, 0)*d.Z
	y := c.Orientation.At(0, 1)*d.X + c.Orientation.At(1, 1)*d.Y + c.Orientation.At(2, 1)*d.Z
	return angleNorm(math.Atan2(y, x))
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle(%v r=%v n=%v)", vecString(c.Center), ftos(c.Radius), vecString(c.Normal()))
}

// CircleOfTriangle returns the circumscribed circle of the triangle ABC. It returns false for degenerate (collinear) triangles.
func CircleOfTriangle(a, b, c r3.Vec) (Circle, bool) {
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	n := r3.Cross(ab, ac)
	n2 := r3.Norm2(n)
	if n2 < Epsilon*Epsilon {
		return Circle{}, false
	}

	// see https://en.wikipedia.org/wiki/Circumscribed_circle#Higher_dimensions
	u := r3.Scale(r3.Norm2(ac), r3.Cross(n, ab))
	v := r3.Scale(r3.Norm2(ab), r3.Cross(ac, n))
	offset := r3.Scale(0.5/n2, r3.Add(u, v))
	center := r3.Add(a, offset)

	x := unit(r3.Sub(a, center))
	z := unit(n)
	y := r3.Cross(z, x)
	orientation := r3.NewMat([]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	})
	return Circle{
		Orientation: orientation,
		Center:      center,
		Radius:      r3.Norm(offset),
	}, true
}

// CircleOfBezier returns the circle through the end points and the midpoint of p, if p is a circular arc. The fit is verified by sampling the radius at the given number of parameters and rejected if its variance exceeds tolerance.
func CircleOfBezier(p [4]r3.Vec, tolerance float64, samples int) (Circle, bool) {
	circle, ok := CircleOfTriangle(p[0], BezierPoint(p, 0.5), p[3])
	if !ok {
		return Circle{}, false
	}
	if samples <= 0 {
		samples = DefaultCircleSamples
	}

	ts := floats.Span(make([]float64, samples), 0.0, 1.0)
	deviations := make([]float64, samples)
	for i, t := range ts {
		deviations[i] = dist(BezierPoint(p, t), circle.Center) - circle.Radius
	}
	variance := floats.Dot(deviations, deviations) / float64(samples)
	if tolerance < variance {
		return Circle{}, false
	}
	return circle, true
}
