// Package document reads and writes curves as JSON, mirroring the data of curve objects in a modeling host: splines of control points with handles, handle types, weights and selection flags.
package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tdewolff/curve"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a position, JSON arrays of two elements have a zero Z coordinate.
type Vec [3]float64

func newVec(v r3.Vec) *Vec {
	return &Vec{v.X, v.Y, v.Z}
}

func (v Vec) r3() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// Point is a control point.
type Point struct {
	Co              Vec      `json:"co"`
	HandleLeft      *Vec     `json:"handle_left,omitempty"`
	HandleRight     *Vec     `json:"handle_right,omitempty"`
	HandleLeftType  string   `json:"handle_left_type,omitempty"`
	HandleRightType string   `json:"handle_right_type,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Select          bool     `json:"select,omitempty"`
}

// Spline is a spline of type BEZIER or POLY.
type Spline struct {
	Type   string  `json:"type"`
	Cyclic bool    `json:"cyclic"`
	Points []Point `json:"points"`
}

// Document is the root object.
type Document struct {
	Splines []Spline `json:"splines"`
}

// Read decodes a document. Missing handles are vector handles, missing weights are 1.
func Read(r io.Reader) (*curve.Curve, error) {
	doc := Document{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	c := curve.NewCurve()
	for i, ds := range doc.Splines {
		s, err := toSpline(ds)
		if err != nil {
			return nil, fmt.Errorf("document: spline %d: %w", i, err)
		}
		c.Splines = append(c.Splines, s)
	}
	return c, nil
}

func toSpline(ds Spline) (*curve.Spline, error) {
	kind := curve.Bezier
	if ds.Type != "" {
		var err error
		if kind, err = curve.ParseSplineKind(ds.Type); err != nil {
			return nil, err
		}
	}

	s := curve.NewSpline(kind, ds.Cyclic)
	for j, dp := range ds.Points {
		cp := curve.Vertex(dp.Co.r3())
		if dp.HandleLeft != nil {
			cp.HandleLeft = dp.HandleLeft.r3()
			cp.HandleLeftType = curve.HandleFree
		}
		if dp.HandleRight != nil {
			cp.HandleRight = dp.HandleRight.r3()
			cp.HandleRightType = curve.HandleFree
		}
		var err error
		if dp.HandleLeftType != "" {
			if cp.HandleLeftType, err = curve.ParseHandleType(dp.HandleLeftType); err != nil {
				return nil, fmt.Errorf("point %d: %w", j, err)
			}
		}
		if dp.HandleRightType != "" {
			if cp.HandleRightType, err = curve.ParseHandleType(dp.HandleRightType); err != nil {
				return nil, fmt.Errorf("point %d: %w", j, err)
			}
		}
		if dp.Weight != nil {
			cp.Weight = *dp.Weight
		}
		cp.Selected = dp.Select
		s.Add(cp)
	}
	s.UpdateVectorHandles()
	return s, nil
}

// Write encodes a curve as an indented document.
func Write(w io.Writer, c *curve.Curve) error {
	doc := Document{Splines: make([]Spline, 0, len(c.Splines))}
	for _, s := range c.Splines {
		ds := Spline{
			Type:   s.Kind.String(),
			Cyclic: s.Cyclic,
			Points: make([]Point, 0, len(s.Points)),
		}
		for _, cp := range s.Points {
			weight := cp.Weight
			ds.Points = append(ds.Points, Point{
				Co:              *newVec(cp.Co),
				HandleLeft:      newVec(cp.HandleLeft),
				HandleRight:     newVec(cp.HandleRight),
				HandleLeftType:  cp.HandleLeftType.String(),
				HandleRightType: cp.HandleRightType.String(),
				Weight:          &weight,
				Select:          cp.Selected,
			})
		}
		doc.Splines = append(doc.Splines, ds)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
