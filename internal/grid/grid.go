// Package grid implements UniformGrid, the equispaced 1-D index<->value
// mapping shared by every tabulated quantity in the kernel (spectral
// response samples, spline knot axes, DCT frequency axes). See spec §3,
// §4.1.
package grid

import (
	"math"

	"github.com/scintweight/scintweight/internal/errs"
)

// UniformGrid represents the sequence origin, origin+delta, ...,
// origin+(size-1)*delta. It is a value object: copy it freely.
//
// Invariant: delta != 0 whenever size >= 2.
type UniformGrid struct {
	origin float64
	delta  float64
	size   int
}

// New builds a grid in O(1) from (origin, delta, size). It performs no
// validation: delta == 0 is accepted for any size.
func New(origin, delta float64, size int) UniformGrid {
	return UniformGrid{origin: origin, delta: delta, size: size}
}

// NewFromValues validates that values is exactly equispaced (bit-equal at
// working precision) and builds the corresponding grid. The first two
// values fix origin and delta; every later value is checked against
// origin+i*delta, failing fast with *errs.NonUniformGrid at the first
// offending index, per spec §4.1 and testable property 1.
func NewFromValues(values []float64) (UniformGrid, error) {
	n := len(values)
	if n == 0 {
		return UniformGrid{}, nil
	}
	if n == 1 {
		return UniformGrid{origin: values[0], delta: 0, size: 1}, nil
	}
	origin := values[0]
	delta := values[1] - values[0]
	for i := 2; i < n; i++ {
		expected := origin + float64(i)*delta
		if values[i] != expected {
			return UniformGrid{}, &errs.NonUniformGrid{Pos: i, Actual: values[i], Expected: expected}
		}
	}
	return UniformGrid{origin: origin, delta: delta, size: n}, nil
}

// Origin returns the grid's first value.
func (g UniformGrid) Origin() float64 { return g.origin }

// Delta returns the grid's step.
func (g UniformGrid) Delta() float64 { return g.delta }

// Size returns the number of points.
func (g UniformGrid) Size() int { return g.size }

// Last returns the value at the final index, or origin if size == 0.
func (g UniformGrid) Last() float64 {
	if g.size == 0 {
		return g.origin
	}
	return g.origin + float64(g.size-1)*g.delta
}

// Value returns origin + i*delta.
func (g UniformGrid) Value(i int) float64 {
	return g.origin + float64(i)*g.delta
}

// ToIndex returns floor((v-origin)/delta).
func (g UniformGrid) ToIndex(v float64) int {
	return int(math.Floor((v - g.origin) / g.delta))
}

// PhaseMatch reports whether g and other share a step and a compatible
// phase: delta == other.delta and origin mod delta == other.origin mod
// delta.
func (g UniformGrid) PhaseMatch(other UniformGrid) bool {
	if g.delta != other.delta {
		return false
	}
	if g.delta == 0 {
		return g.origin == other.origin
	}
	return math.Mod(g.origin, g.delta) == math.Mod(other.origin, g.delta)
}

// Intersect returns the largest common subgrid of g and other. If the
// other origin is smaller, the computation is delegated symmetrically
// (spec §4.1). Phase mismatch fails with *errs.MismatchedGrids. Ranges
// that do not overlap yield a grid of size 0.
func (g UniformGrid) Intersect(other UniformGrid) (UniformGrid, error) {
	if other.origin < g.origin {
		return other.Intersect(g)
	}
	if !g.PhaseMatch(other) {
		return UniformGrid{}, &errs.MismatchedGrids{
			Delta: g.delta, OtherDelta: other.delta,
			Origin: g.origin, OtherOrigin: other.origin,
		}
	}
	lastG, lastOther := g.Last(), other.Last()
	last := lastG
	if lastOther < last {
		last = lastOther
	}
	if last < other.origin {
		return UniformGrid{origin: other.origin, delta: g.delta, size: 0}, nil
	}
	size := int(math.Round((last-other.origin)/g.delta)) + 1
	if size < 0 {
		size = 0
	}
	return UniformGrid{origin: other.origin, delta: g.delta, size: size}, nil
}

// Scale multiplies both origin and delta by c, rescaling the value axis in
// place (used for the wavelength renormalisation of the Poly spectral
// filter, spec §4.6).
func (g *UniformGrid) Scale(c float64) {
	g.origin *= c
	g.delta *= c
}
