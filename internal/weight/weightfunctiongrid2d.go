package weight

import (
	"fmt"
	"math"

	"github.com/scintweight/scintweight/internal/aperture"
	"github.com/scintweight/scintweight/internal/dct"
	"github.com/scintweight/scintweight/internal/errs"
	"github.com/scintweight/scintweight/internal/filter"
)

// kernel evaluates the regularised SF*AF integrand at a 2-D frequency point
// (ux,uy), scaled by x = D/rho_F, reusing the same near-zero/tail branch as
// the 1-D and 2-D radial weight functions (radialTerm), just with the
// aperture evaluated via its Cartesian A2 rather than a radial A.
type kernel func(ux, uy, x float64) float64

func newKernel(sf filter.Filter, af aperture.Filter) kernel {
	return func(ux, uy, x float64) float64 {
		u := math.Hypot(ux, uy)
		if u == 0 || math.IsInf(u, 0) {
			return 0
		}
		return radialTerm(sf, u, af.A2(ux*x, uy*x))
	}
}

// Grid2D computes, per altitude, an Nx-by-Ny tensor of per-aperture weights
// for a regular 2-D array of identical apertures spaced delta mm apart, via
// the DCT-I (REDFT00) construction of spec §4.10.
type Grid2D struct {
	lambda, d, delta float64
	nx, ny           int
	kernel           kernel
	plan             *dct.Plan2D
	fftNorm          float64
}

// NewGrid2D builds a Grid2D weight function for wavelength lambda (nm),
// baseline/array scale d (mm), grid step delta (mm), and tensor shape
// (nx,ny).
func NewGrid2D(sf filter.Filter, af aperture.Filter, lambda, d, delta float64, nx, ny int) (*Grid2D, error) {
	if delta <= 0 {
		return nil, &errs.DomainError{Field: "delta", Value: delta, Want: "> 0"}
	}
	plan, err := dct.NewPlan2D(nx, ny)
	if err != nil {
		return nil, fmt.Errorf("weight: grid2d: %w", err)
	}
	return &Grid2D{
		lambda: lambda, d: d, delta: delta,
		nx: nx, ny: ny,
		kernel:  newKernel(sf, af),
		plan:    plan,
		fftNorm: 1.0 / (4 * float64(nx-1) * float64(ny-1) * delta * delta),
	}, nil
}

// Shape returns (Nx, Ny).
func (g *Grid2D) Shape() (int, int) { return g.nx, g.ny }

// Evaluate returns the row-major Nx*Ny tensor of weights at altitude h
// (km). h<=0 returns a zero tensor (spec §4.10).
func (g *Grid2D) Evaluate(h float64) ([]float64, error) {
	tensor := make([]float64, g.nx*g.ny)
	if h <= 0 {
		return tensor, nil
	}
	rhoF := math.Sqrt(g.lambda * h)
	nyquist := rhoF / (2 * g.delta)
	x := g.d / rhoF

	for iy := 0; iy < g.ny; iy++ {
		uy := nyquist * float64(iy) / float64(g.ny-1)
		for ix := 0; ix < g.nx; ix++ {
			ux := nyquist * float64(ix) / float64(g.nx-1)
			tensor[iy*g.nx+ix] = g.kernel(ux, uy, x)
		}
	}

	if err := g.plan.Forward(tensor); err != nil {
		return nil, fmt.Errorf("weight: grid2d: dct: %w", err)
	}

	scale := kolmogorovConstant * g.fftNorm * math.Pow(g.lambda, -1.0/6.0) * math.Pow(h, 11.0/6.0)
	for i := range tensor {
		tensor[i] *= scale
	}
	return tensor, nil
}
