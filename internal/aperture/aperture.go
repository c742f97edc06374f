// Package aperture implements the closed-form aperture filters A(u) and
// A(ux,uy) of spec §3, §4.5: Point, Circular, Annular, CrossAnnular,
// Square, AngleAveraged, and the DIMM wrapper.
package aperture

import (
	"math"

	"github.com/scintweight/scintweight/internal/errs"
	"github.com/scintweight/scintweight/internal/quad"
	"github.com/scintweight/scintweight/internal/specfun"
	"github.com/scintweight/scintweight/internal/spline"
)

// Filter is the common shape every aperture variant exposes: a radial
// evaluation A(u) and a full 2-D evaluation A(ux,uy). Radially-symmetric
// variants implement A2 as A(sqrt(ux^2+uy^2)) (spec §4.5).
type Filter interface {
	A(u float64) float64
	A2(ux, uy float64) float64
}

// MapA returns a lazily mapped sequence applying f.A element-wise over us,
// matching the "lazy vectorised overloads" contract of spec §4.5.
func MapA(f Filter, us []float64) func(int) float64 {
	return func(i int) float64 { return f.A(us[i]) }
}

// radial wraps a radial-only A(u) implementation with the default 2-D
// composition A(sqrt(ux^2+uy^2)).
type radial struct {
	a func(u float64) float64
}

func (r radial) A(u float64) float64      { return r.a(u) }
func (r radial) A2(ux, uy float64) float64 { return r.a(math.Hypot(ux, uy)) }

// Point is the unobstructed, infinitesimally small aperture: A === 1.
func Point() Filter {
	return radial{a: func(float64) float64 { return 1 }}
}

// Circular is the unobstructed circular aperture: A(u) = jinc_pi(pi*u)^2.
func Circular() Filter {
	return radial{a: func(u float64) float64 {
		j := specfun.Jinc(math.Pi * u)
		return j * j
	}}
}

// Annular is an annular aperture with central obscuration ratio eps in
// [0,1):
//
//	A(u) = [(jinc_pi(pi*u) - eps^2*jinc_pi(pi*eps*u)) / (1-eps^2)]^2
func Annular(eps float64) (Filter, error) {
	if eps < 0 || eps >= 1 {
		return nil, &errs.DomainError{Field: "central_obscuration", Value: eps, Want: "0 <= eps < 1"}
	}
	denom := 1 - eps*eps
	return radial{a: func(u float64) float64 {
		num := specfun.Jinc(math.Pi*u) - eps*eps*specfun.Jinc(math.Pi*eps*u)
		v := num / denom
		return v * v
	}}, nil
}

// normalisedAnnularKernel returns the (un-squared) normalised annular
// kernel (jinc_pi(pi*u) - eps^2*jinc_pi(pi*eps*u))/(1-eps^2), shared by
// Annular and CrossAnnular.
func normalisedAnnularKernel(u, eps float64) float64 {
	if eps == 0 {
		return specfun.Jinc(math.Pi * u)
	}
	return (specfun.Jinc(math.Pi*u) - eps*eps*specfun.Jinc(math.Pi*eps*u)) / (1 - eps*eps)
}

// CrossAnnular is the product of two normalised annular kernels evaluated
// at u and alpha*u, with independent obscuration ratios eps1, eps2 — the
// DIMM-style cross-correlation between two sub-apertures separated by a
// baseline ratio alpha (spec §3).
func CrossAnnular(alpha, eps1, eps2 float64) (Filter, error) {
	if eps1 < 0 || eps1 >= 1 {
		return nil, &errs.DomainError{Field: "eps1", Value: eps1, Want: "0 <= eps1 < 1"}
	}
	if eps2 < 0 || eps2 >= 1 {
		return nil, &errs.DomainError{Field: "eps2", Value: eps2, Want: "0 <= eps2 < 1"}
	}
	return radial{a: func(u float64) float64 {
		k1 := normalisedAnnularKernel(u, eps1)
		k2 := normalisedAnnularKernel(alpha*u, eps2)
		return k1 * k2
	}}, nil
}

// squareFilter is the only variant whose 2-D form is not a radial
// composition: A(ux,uy) = (sinc_pi(pi*ux)*sinc_pi(pi*uy))^2.
type squareFilter struct{}

func (squareFilter) A(u float64) float64 {
	s := specfun.Sinc(math.Pi * u)
	return s * s
}

func (squareFilter) A2(ux, uy float64) float64 {
	sx := specfun.Sinc(math.Pi * ux)
	sy := specfun.Sinc(math.Pi * uy)
	return sx * sx * sy * sy
}

// Square is the angle-averaged-incompatible square aperture; its radial
// form A(u) assumes a square cross-section evaluated along one axis,
// matching the spec's A(ux,uy) = (sinc_pi(pi*ux)*sinc_pi(pi*uy))^2 with
// uy=0 degenerating to the on-axis value.
func Square() Filter { return squareFilter{} }

// AngleAveraged precomputes z in [0,1] -> <wrapped>_theta on n points using
// tanh-sinh integration over the full circle, stored as a spline, and
// evaluates via the back-transform z = 1/(1+u) (spec §3, §4.5).
type AngleAveraged struct {
	sp *spline.CubicSpline
}

// NewAngleAveraged builds the theta-averaged aperture filter. n must be >= 2.
func NewAngleAveraged(wrapped Filter, n int) (*AngleAveraged, error) {
	if n < 2 {
		return nil, &errs.DomainError{Field: "n", Value: n, Want: ">= 2"}
	}
	integrator := quad.NewTanhSinh(errs.StageAngleAverage)
	zvals := make([]float64, n)
	for k := 0; k < n; k++ {
		z := float64(k) / float64(n-1)
		// u = (1-z)/z; z=0 maps to u=+inf (A -> wrapped(+inf)), handled by
		// the integrand's own asymptotics. Guard the z=0 end explicitly.
		var u float64
		if z == 0 {
			u = math.Inf(1)
		} else {
			u = (1 - z) / z
		}
		avg, err := averageOverCircle(wrapped, u, integrator)
		if err != nil {
			return nil, err
		}
		zvals[k] = avg
	}
	return &AngleAveraged{sp: spline.New(zvals, spline.Natural())}, nil
}

// averageOverCircle integrates wrapped.A2(u*cos(theta), u*sin(theta)) over
// the full circle theta in [0,2*pi], parameterised over t in [-1,1] via
// theta = pi*(t+1).
func averageOverCircle(wrapped Filter, u float64, integrator *quad.TanhSinh) (float64, error) {
	if math.IsInf(u, 1) {
		return wrapped.A2(math.Inf(1), 0), nil
	}
	integral, err := integrator.Integrate(func(t float64) float64 {
		theta := math.Pi * (t + 1)
		s, c := math.Sincos(theta)
		return wrapped.A2(u*c, u*s)
	})
	if err != nil {
		return 0, err
	}
	return integral / 2, nil
}

func (a *AngleAveraged) A(u float64) float64 {
	if u < 0 {
		u = -u
	}
	z := 1 / (1 + u)
	idx := z * float64(a.sp.Len()-1)
	return a.sp.Eval(idx)
}

func (a *AngleAveraged) A2(ux, uy float64) float64 {
	return a.A(math.Hypot(ux, uy))
}

// Dimm wraps A(u)*J0(2*pi*u*beta), the differential-image-motion-monitor
// baseline weighting for a baseline-to-aperture ratio beta (spec §3).
type Dimm struct {
	wrapped Filter
	beta    float64
}

// NewDimm returns the DIMM-wrapped aperture filter.
func NewDimm(wrapped Filter, beta float64) *Dimm {
	return &Dimm{wrapped: wrapped, beta: beta}
}

func (d *Dimm) A(u float64) float64 {
	return d.wrapped.A(u) * math.J0(2*math.Pi*u*d.beta)
}

func (d *Dimm) A2(ux, uy float64) float64 {
	u := math.Hypot(ux, uy)
	return d.wrapped.A2(ux, uy) * math.J0(2*math.Pi*u*d.beta)
}
