package weight

import (
	"fmt"
	"math"

	"github.com/scintweight/scintweight/internal/aperture"
	"github.com/scintweight/scintweight/internal/errs"
	"github.com/scintweight/scintweight/internal/filter"
	"github.com/scintweight/scintweight/internal/quad"
)

// angularCosSin returns (cos(pi*phi), sin(pi*phi)) for phi in [-1,1] via the
// branch structure of spec §9: for |phi|<0.5 evaluate directly; otherwise
// use the auxiliary complementary angle theta = 1-|phi| (which tanh-sinh
// already clusters samples near, since theta->0 as phi->+-1) and the
// identity cos(pi*phi) = -cos(pi*theta), sin(pi*phi) = +-sin(pi*theta),
// staying away from evaluating trig functions on arguments approaching the
// +-1 saturation region directly in phi. Do not collapse this to a single
// cos(pi*phi) call (spec §9).
func angularCosSin(phi float64) (cos, sin float64) {
	if math.Abs(phi) < 0.5 {
		return math.Cos(math.Pi * phi), math.Sin(math.Pi * phi)
	}
	theta := 1 - math.Abs(phi)
	c := -math.Cos(math.Pi * theta)
	s := math.Sin(math.Pi * theta)
	if phi < 0 {
		s = -s
	}
	return c, s
}

// angularAverage returns the full-circle average of af.A2(u*x*cos, u*x*sin)
// over theta = pi*phi, phi in [-1,1], i.e. integral/2 (spec §4.9).
func angularAverage(af aperture.Filter, u, x float64, integrator *quad.TanhSinh) (float64, error) {
	integral, err := integrator.Integrate(func(phi float64) float64 {
		c, s := angularCosSin(phi)
		return af.A2(u*x*c, u*x*s)
	})
	if err != nil {
		return 0, err
	}
	return integral / 2, nil
}

// New2D builds a WeightFunction from a (possibly non-axisymmetric) aperture
// filter via the nested radial+angular integral of spec §4.9: for each
// precompute grid point z_k, the angular average of af.A2 is computed at
// each radial sample u*x_k before the outer exp-sinh radial integration
// consumes it through the same regularised-branch radialTerm as the 1-D
// case.
func New2D(sf filter.Filter, af aperture.Filter, lambda, d float64, n int) (*Function, error) {
	if n < 2 {
		return nil, &errs.DomainError{Field: "n", Value: n, Want: ">= 2"}
	}
	radialIntegrator := quad.NewExpSinh(errs.StageWeightPrecompute)
	values := make([]float64, n)
	for k := 0; k < n; k++ {
		z := float64(k) / float64(n-1)
		if z == 0 {
			values[k] = 0
			continue
		}
		x := (1 - z) / z
		angleIntegrator := quad.NewTanhSinh(errs.StageAngleAverage)
		var innerErr error
		v, err := radialIntegrator.Integrate(func(u float64) float64 {
			if u <= 0 || math.IsInf(u, 1) {
				return 0
			}
			avg, aerr := angularAverage(af, u, x, angleIntegrator)
			if aerr != nil {
				innerErr = aerr
				return 0
			}
			return radialTerm(sf, u, avg)
		})
		if innerErr != nil {
			return nil, fmt.Errorf("weight: 2d precompute at z=%v: angular average: %w", z, innerErr)
		}
		if err != nil {
			return nil, fmt.Errorf("weight: 2d precompute at z=%v: %w", z, err)
		}
		values[k] = v
	}
	return newFunction(lambda, d, n, values), nil
}
