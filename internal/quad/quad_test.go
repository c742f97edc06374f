package quad_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintweight/scintweight/internal/errs"
	"github.com/scintweight/scintweight/internal/quad"
)

func TestExpSinhGaussianIntegral(t *testing.T) {
	// integral_0^inf exp(-x^2) dx = sqrt(pi)/2
	q := quad.NewExpSinh(errs.StageGeneric)
	got, err := q.Integrate(func(x float64) float64 { return math.Exp(-x * x) })
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(math.Pi)/2, got, 1e-6)
}

func TestExpSinhExponentialDecay(t *testing.T) {
	// integral_0^inf exp(-x) dx = 1
	q := quad.NewExpSinh(errs.StageGeneric)
	got, err := q.Integrate(func(x float64) float64 { return math.Exp(-x) })
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-6)
}

func TestTanhSinhConstant(t *testing.T) {
	// integral_-1^1 1 dx = 2
	q := quad.NewTanhSinh(errs.StageGeneric)
	got, err := q.Integrate(func(x float64) float64 { return 1 })
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-8)
}

func TestTanhSinhCosine(t *testing.T) {
	// integral_-1^1 cos(x) dx = 2*sin(1)
	q := quad.NewTanhSinh(errs.StageGeneric)
	got, err := q.Integrate(math.Cos)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Sin(1), got, 1e-7)
}
