package curve

import (
	"fmt"
	"math"
	"strings"
)

// IntersectOptions are the tolerances of the intersection engine. Zero fields take their default value.
type IntersectOptions struct {
	Depth           int     `toml:"depth"`            // recursion depth of the broad phase
	BroadTolerance  float64 `toml:"broad_tolerance"`  // AABB inflation and maximum distance of an accepted intersection
	NarrowTolerance float64 `toml:"narrow_tolerance"` // parameter interval size at which bisection stops
	ParamTolerance  float64 `toml:"param_tolerance"`  // parameter distance at which a cut coincides with a segment end point
	MergeDistance   float64 `toml:"merge_distance"`   // parameter distance below which two candidates are the same intersection
}

// DefaultIntersectOptions returns the default intersection options.
func DefaultIntersectOptions() IntersectOptions {
	return IntersectOptions{
		Depth:           8,
		BroadTolerance:  0.001,
		NarrowTolerance: 1e-6,
		ParamTolerance:  paramTolerance,
		MergeDistance:   0.1,
	}
}

func (o IntersectOptions) withDefaults() IntersectOptions {
	def := DefaultIntersectOptions()
	if o.Depth <= 0 {
		o.Depth = def.Depth
	}
	if o.BroadTolerance <= 0.0 {
		o.BroadTolerance = def.BroadTolerance
	}
	if o.NarrowTolerance <= 0.0 {
		o.NarrowTolerance = def.NarrowTolerance
	}
	if o.ParamTolerance <= 0.0 {
		o.ParamTolerance = def.ParamTolerance
	}
	if o.MergeDistance <= 0.0 {
		o.MergeDistance = def.MergeDistance
	}
	return o
}

// OffsetOptions are the options of Offset. A positive Offset grows the enclosed area, a negative one shrinks it.
type OffsetOptions struct {
	Offset        float64 `toml:"offset"`
	StepAngle     float64 `toml:"step_angle"`      // maximum angle between vertices of round joins and sampled Béziers
	RoundLineJoin bool    `toml:"round_line_join"` // round joins instead of miter joins at convex corners
	BezierSamples int     `toml:"bezier_samples"`  // maximum number of samples per Bézier segment
	Tolerance     float64 `toml:"tolerance"`
}

// DefaultOffsetOptions returns the default offset options for the given offset.
func DefaultOffsetOptions(offset float64) OffsetOptions {
	return OffsetOptions{
		Offset:        offset,
		StepAngle:     math.Pi / 16.0,
		BezierSamples: 128,
		Tolerance:     1e-6,
	}
}

func (o OffsetOptions) withDefaults() OffsetOptions {
	def := DefaultOffsetOptions(o.Offset)
	if o.StepAngle <= 0.0 {
		o.StepAngle = def.StepAngle
	}
	if o.BezierSamples <= 0 {
		o.BezierSamples = def.BezierSamples
	}
	if o.Tolerance <= 0.0 {
		o.Tolerance = def.Tolerance
	}
	return o
}

// FilletOptions are the options of Fillet. Radius is the distance from the corner at which the rounding or chamfer starts along both edges.
type FilletOptions struct {
	Radius       float64 `toml:"radius"`
	Chamfer      bool    `toml:"chamfer"`
	LimitHalfWay bool    `toml:"limit_half_way"` // limit the radius to half of the incident edges so that neighbouring corners do not overlap
	Tolerance    float64 `toml:"tolerance"`
}

// DefaultFilletOptions returns the default fillet options for the given radius.
func DefaultFilletOptions(radius float64) FilletOptions {
	return FilletOptions{
		Radius:    radius,
		Tolerance: 1e-4,
	}
}

func (o FilletOptions) withDefaults() FilletOptions {
	if o.Tolerance <= 0.0 {
		o.Tolerance = DefaultFilletOptions(o.Radius).Tolerance
	}
	return o
}

// BooleanOp is a boolean operation on two closed contours.
type BooleanOp int

// see BooleanOp
const (
	Union BooleanOp = iota
	Intersection
	Difference
)

func (op BooleanOp) String() string {
	switch op {
	case Union:
		return "UNION"
	case Intersection:
		return "INTERSECTION"
	case Difference:
		return "DIFFERENCE"
	}
	return fmt.Sprintf("BooleanOp(%d)", int(op))
}

// ParseBooleanOp parses the names returned by BooleanOp.String, case insensitive.
func ParseBooleanOp(s string) (BooleanOp, error) {
	switch strings.ToUpper(s) {
	case "UNION":
		return Union, nil
	case "INTERSECTION":
		return Intersection, nil
	case "DIFFERENCE":
		return Difference, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrOperation, s)
}
