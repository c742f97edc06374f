package weight

import (
	"math"

	"github.com/scintweight/scintweight/internal/filter"
)

// radialTerm evaluates the spec §4.8 step 2 integrand at radial frequency
// u >= 0, given the aperture response a = AF(u*x) already evaluated by the
// caller (1D: AF(u*x) on a radial aperture; 2D: an angular average of
// AF(u*x*cos(phi), u*x*sin(phi))). u=0 and u=+inf return 0 by construction
// (the caller's integrator never evaluates the endpoints, and u^(-8/3)
// underflows to a literal 0 well before overflow could occur).
func radialTerm(sf filter.Filter, u, a float64) float64 {
	if u <= 0 || math.IsInf(u, 1) {
		return 0
	}
	if u < 1 {
		return math.Pow(u, 4.0/3.0) * sf.Regular(u*u) * a
	}
	p := math.Pow(u, -8.0/3.0)
	if p == 0 {
		return 0
	}
	return p * sf.E(u*u) * a
}
