// Package errs collects the typed, recoverable failure kinds of the
// scintillation weight-function kernel (see spec §4.11, §7).
//
// Input-format and domain errors carry enough context to name the
// offending position or value, matching the teacher's preference for
// self-describing error strings (lightcurve.ErrNoIntersection) over a
// generic error-framework dependency.
package errs

import "fmt"

// NonUniformGrid is returned when a UniformGrid is built from an iterable
// whose values are not exactly equispaced.
type NonUniformGrid struct {
	Pos      int     // first offending index
	Actual   float64 // value observed at Pos
	Expected float64 // origin + Pos*delta
}

func (e *NonUniformGrid) Error() string {
	return fmt.Sprintf("non-uniform grid at index %d: got %v, expected %v", e.Pos, e.Actual, e.Expected)
}

// MismatchedGrids is returned by UniformGrid.Intersect (and transitively by
// SpectralResponse.Stack) when two grids do not phase-match.
type MismatchedGrids struct {
	Delta, OtherDelta   float64
	Origin, OtherOrigin float64
}

func (e *MismatchedGrids) Error() string {
	return fmt.Sprintf("mismatched grids: (delta=%v, origin=%v) vs (delta=%v, origin=%v)",
		e.Delta, e.Origin, e.OtherDelta, e.OtherOrigin)
}

// Stage identifies where a QuadratureError occurred.
type Stage string

const (
	StageEquivLambda       Stage = "equiv_lambda"
	StageWeightPrecompute  Stage = "weight_function_precompute"
	StageAngleAverage      Stage = "angle_average"
	StageGeneric           Stage = "quadrature"
)

// QuadratureError reports that an adaptive double-exponential integrator
// failed to converge within its iteration cap (spec §4.11, §4.7).
type QuadratureError struct {
	Stage      Stage
	Iterations int
	LastEst    float64
	LastErr    float64
}

func (e *QuadratureError) Error() string {
	return fmt.Sprintf("quadrature failed to converge in stage %q after %d iterations (estimate=%v, error-bound=%v)",
		e.Stage, e.Iterations, e.LastEst, e.LastErr)
}

// DomainError reports an out-of-range parameter (e.g. central obscuration
// ratio >= 1, negative grid size).
type DomainError struct {
	Field string
	Value any
	Want  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid %s=%v: want %s", e.Field, e.Value, e.Want)
}
