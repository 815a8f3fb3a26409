package curve

import "fmt"

// Curve is a document of splines, the object that transactions apply to.
type Curve struct {
	Splines []*Spline
}

// NewCurve returns a curve holding the given splines.
func NewCurve(splines ...*Spline) *Curve {
	return &Curve{Splines: splines}
}

// Index returns the index of the spline in the curve or -1.
func (c *Curve) Index(s *Spline) int {
	for i, t := range c.Splines {
		if t == s {
			return i
		}
	}
	return -1
}

// Selected returns the splines that have a selected control point.
func (c *Curve) Selected() []*Spline {
	var splines []*Spline
	for _, s := range c.Splines {
		if s.Selected() {
			splines = append(splines, s)
		}
	}
	return splines
}

// Clone returns a deep copy.
func (c *Curve) Clone() *Curve {
	r := &Curve{Splines: make([]*Spline, len(c.Splines))}
	for i, s := range c.Splines {
		r.Splines[i] = s.Clone()
	}
	return r
}

func (c *Curve) String() string {
	return fmt.Sprintf("Curve(%d splines)", len(c.Splines))
}
