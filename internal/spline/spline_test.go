package spline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scintweight/scintweight/internal/spline"
)

func TestInterpolatesKnotsExactly(t *testing.T) {
	y := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	s := spline.New(y, spline.Natural())
	for i, v := range y {
		assert.InDelta(t, v, s.Eval(float64(i)), 1e-9)
	}
}

func TestNaturalBoundaryAffine(t *testing.T) {
	a, b := 2.0, 3.5
	n := 6
	y := make([]float64, n)
	for i := range y {
		y[i] = a + b*float64(i)
	}
	s := spline.New(y, spline.Natural())
	for i := 0; i < n-1; i++ {
		x := float64(i) + 0.5
		assert.InDelta(t, a+b*x, s.Eval(x), 1e-9)
	}
}

func TestQuadraticSecondOrderBoundary(t *testing.T) {
	n := 6
	y := make([]float64, n)
	for i := range y {
		y[i] = float64(i * i)
	}
	s := spline.New(y, spline.SecondOrder(2, 2))
	for i := 0; i < n-1; i++ {
		x := float64(i) + 0.5
		assert.InDelta(t, x*x, s.Eval(x), 1e-9)
	}
}

func TestScaleScalesYAndM(t *testing.T) {
	y := []float64{0, 1, 4, 9, 16}
	s := spline.New(y, spline.SecondOrder(2, 2))
	before := s.Eval(2.5)
	s.Scale(2)
	after := s.Eval(2.5)
	assert.InDelta(t, before*2, after, 1e-9)
}

func TestClampedBoundary(t *testing.T) {
	// Affine sequence with matching first-derivative boundary should still
	// reproduce the line exactly.
	a, b := -1.0, 2.0
	n := 5
	y := make([]float64, n)
	for i := range y {
		y[i] = a + b*float64(i)
	}
	s := spline.New(y, spline.FirstOrder(b, b))
	for i := 0; i < n-1; i++ {
		x := float64(i) + 0.25
		assert.InDelta(t, a+b*x, s.Eval(x), 1e-9)
	}
}
