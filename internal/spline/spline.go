// Package spline implements CubicSpline, the natural/clamped/second-order
// cubic spline on a unit-spaced integer axis used throughout the kernel for
// constant-time interpolation (spline-per-altitude weight functions,
// spline-per-frequency spectral filters, angle-averaged aperture filters).
// See spec §3, §4.2.
package spline

// Boundary is a tagged union of the two supported endpoint conditions.
// The zero value is natural (second derivative 0 at both ends).
type Boundary struct {
	kind       boundaryKind
	left, right float64
}

type boundaryKind int

const (
	kindSecondOrder boundaryKind = iota // y'' given at both ends (natural is {0,0})
	kindFirstOrder                      // y' given at both ends (clamped)
)

// Natural is the default boundary: y''_0 = y''_{N-1} = 0.
func Natural() Boundary { return Boundary{kind: kindSecondOrder, left: 0, right: 0} }

// SecondOrder fixes y''_0 = d0 and y''_{N-1} = dN.
func SecondOrder(d0, dN float64) Boundary { return Boundary{kind: kindSecondOrder, left: d0, right: dN} }

// FirstOrder fixes y'_0 = d0 and y'_{N-1} = dN (clamped spline).
func FirstOrder(d0, dN float64) Boundary { return Boundary{kind: kindFirstOrder, left: d0, right: dN} }

// CubicSpline holds N >= 2 knot values on the integer axis 0..N-1 and the
// vector of second derivatives computed at construction by a Thomas-algorithm
// sweep over the tridiagonal system (spec §4.2).
type CubicSpline struct {
	y []float64
	m []float64
}

// New builds a spline from knot values y (len(y) >= 2) under the given
// boundary condition.
func New(y []float64, b Boundary) *CubicSpline {
	n := len(y)
	if n < 2 {
		panic("spline: need at least 2 knots")
	}
	s := &CubicSpline{y: append([]float64(nil), y...), m: make([]float64, n)}
	s.solve(b)
	return s
}

// solve assembles the standard tridiagonal system for the second
// derivatives m_i (coefficients 2, 0.5, 0.5 on the interior) and solves it
// with a forward Thomas sweep followed by back-substitution. The four
// boundary coefficients (c, c', d_0, d_N) encode both boundary kinds so a
// single solver path handles them (spec §4.2).
func (s *CubicSpline) solve(b Boundary) {
	n := len(s.y)
	// Interior equations (i = 1..n-2):
	//   0.5*m_{i-1} + 2*m_i + 0.5*m_{i+1} = 3*(y_{i-1} - 2*y_i + y_{i+1})
	// (the usual unit-spacing system m_{i-1} + 4*m_i + m_{i+1} =
	// 6*(y_{i-1} - 2*y_i + y_{i+1}) halved; m_i are the true second
	// derivatives that Eval's formula expects.)
	a := make([]float64, n) // sub-diagonal
	diag := make([]float64, n)
	c := make([]float64, n) // super-diagonal
	rhs := make([]float64, n)

	switch b.kind {
	case kindFirstOrder:
		// 2*m_0 + m_1 = 6*(y_1 - y_0 - y'_0)
		diag[0], c[0] = 2, 1
		rhs[0] = 6 * (s.y[1] - s.y[0] - b.left)
		diag[n-1], a[n-1] = 2, 1
		rhs[n-1] = 6 * (s.y[n-2] - s.y[n-1] + b.right)
	default: // kindSecondOrder
		diag[0] = 1
		rhs[0] = b.left
		diag[n-1] = 1
		rhs[n-1] = b.right
	}

	for i := 1; i < n-1; i++ {
		a[i] = 0.5
		diag[i] = 2
		c[i] = 0.5
		rhs[i] = 3 * (s.y[i-1] - 2*s.y[i] + s.y[i+1])
	}

	// Thomas algorithm: forward sweep.
	cp := make([]float64, n)
	dp := make([]float64, n)
	cp[0] = c[0] / diag[0]
	dp[0] = rhs[0] / diag[0]
	for i := 1; i < n; i++ {
		denom := diag[i] - a[i]*cp[i-1]
		if i < n-1 {
			cp[i] = c[i] / denom
		}
		dp[i] = (rhs[i] - a[i]*dp[i-1]) / denom
	}
	// Back substitution.
	s.m[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		s.m[i] = dp[i] - cp[i]*s.m[i+1]
	}
}

// Len returns the number of knots N.
func (s *CubicSpline) Len() int { return len(s.y) }

// Eval evaluates the spline at real x in [0, N-1]. Branch-free except for
// the index floor: i = floor(x), xi = x-i, xip = 1-xi; the value is
//
//	m_i/6 * xip^3 + m_{i+1}/6 * xi^3 + (y_i - m_i/6) * xip + (y_{i+1} - m_{i+1}/6) * xi
func (s *CubicSpline) Eval(x float64) float64 {
	n := len(s.y)
	i := int(x)
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	xi := x - float64(i)
	xip := 1 - xi
	mi, mi1 := s.m[i], s.m[i+1]
	return mi/6*xip*xip*xip + mi1/6*xi*xi*xi + (s.y[i]-mi/6)*xip + (s.y[i+1]-mi1/6)*xi
}

// At returns the raw knot value y_i (not interpolated).
func (s *CubicSpline) At(i int) float64 { return s.y[i] }

// SecondDerivative returns the stored second derivative m_i at knot i.
func (s *CubicSpline) SecondDerivative(i int) float64 { return s.m[i] }

// Scale multiplies both y and m by c in place, matching the requirement
// that rescaling the wavelength axis of a Poly spectral filter must also
// rescale its real/imag splines (spec §3, §4.6).
func (s *CubicSpline) Scale(c float64) {
	for i := range s.y {
		s.y[i] *= c
		s.m[i] *= c
	}
}

// Shift adds c to every knot value y (but not to m), matching the `+=`
// scalar-shift operator of spec §4.2.
func (s *CubicSpline) Shift(c float64) {
	for i := range s.y {
		s.y[i] += c
	}
}

// Map returns a lazily-evaluated mapping of Eval over xs, matching the
// "operator() on a lazy sequence expression" contract of spec §4.2.
func (s *CubicSpline) Map(xs []float64) func(int) float64 {
	return func(i int) float64 { return s.Eval(xs[i]) }
}
