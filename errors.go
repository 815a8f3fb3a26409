package curve

import "errors"

// Errors returned by the operations, test with errors.Is.
var (
	ErrNotCyclic  = errors.New("spline is not cyclic")
	ErrSelection  = errors.New("selection must contain exactly two splines")
	ErrOperation  = errors.New("unknown operation")
	ErrTopology   = errors.New("result is not a closed loop")
	ErrNotInCurve = errors.New("spline is not in curve")
	ErrParse      = errors.New("bad spline notation")
)
