package weight

import (
	"fmt"

	"github.com/scintweight/scintweight/internal/aperture"
	"github.com/scintweight/scintweight/internal/errs"
	"github.com/scintweight/scintweight/internal/filter"
	"github.com/scintweight/scintweight/internal/quad"
)

// New1D builds a WeightFunction from a radially-symmetric aperture filter
// via the single-integral form of spec §4.8: for each precompute grid point
// z_k = k/(N-1), x_k = D/rho_F = (1-z_k)/z_k, and the stored value is
// integral_0^inf radialTerm(sf, u, af.A(u*x_k)) du.
func New1D(sf filter.Filter, af aperture.Filter, lambda, d float64, n int) (*Function, error) {
	if n < 2 {
		return nil, &errs.DomainError{Field: "n", Value: n, Want: ">= 2"}
	}
	integrator := quad.NewExpSinh(errs.StageWeightPrecompute)
	values := make([]float64, n)
	for k := 0; k < n; k++ {
		z := float64(k) / float64(n-1)
		if z == 0 {
			values[k] = 0
			continue
		}
		x := (1 - z) / z
		v, err := integrator.Integrate(func(u float64) float64 {
			return radialTerm(sf, u, af.A(u*x))
		})
		if err != nil {
			return nil, fmt.Errorf("weight: 1d precompute at z=%v: %w", z, err)
		}
		values[k] = v
	}
	return newFunction(lambda, d, n, values), nil
}
