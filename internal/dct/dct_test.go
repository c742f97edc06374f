package dct_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintweight/scintweight/internal/dct"
)

func TestForwardInverseRoundTrips(t *testing.T) {
	p, err := dct.NewPlan(6)
	require.NoError(t, err)
	src := []float64{1, 2, 3, 4, 3, 2}
	fwd := make([]float64, 6)
	require.NoError(t, p.Forward(fwd, src))
	back := make([]float64, 6)
	require.NoError(t, p.Inverse(back, fwd))
	for i := range src {
		assert.InDelta(t, src[i], back[i], 1e-9)
	}
}

func TestForwardConstantSequence(t *testing.T) {
	p, err := dct.NewPlan(5)
	require.NoError(t, err)
	src := []float64{3, 3, 3, 3, 3}
	dst := make([]float64, 5)
	require.NoError(t, p.Forward(dst, src))
	// A constant input has zero energy in every nonzero mode.
	assert.InDelta(t, 3*float64(2*(5-1)), dst[0], 1e-9)
	for k := 1; k < 5; k++ {
		assert.InDelta(t, 0, dst[k], 1e-9)
	}
}

func TestForwardRejectsWrongLength(t *testing.T) {
	p, err := dct.NewPlan(4)
	require.NoError(t, err)
	err = p.Forward(make([]float64, 3), make([]float64, 4))
	require.Error(t, err)
}

func TestPlan2DForwardOfZeroTensorIsZero(t *testing.T) {
	p, err := dct.NewPlan2D(4, 3)
	require.NoError(t, err)
	tensor := make([]float64, 4*3)
	require.NoError(t, p.Forward(tensor))
	for _, v := range tensor {
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestPlan2DForwardMatchesSeparableRowColumn(t *testing.T) {
	nx, ny := 4, 4
	p, err := dct.NewPlan2D(nx, ny)
	require.NoError(t, err)
	tensor := make([]float64, nx*ny)
	for i := range tensor {
		tensor[i] = math.Sin(float64(i))
	}
	src := append([]float64(nil), tensor...)
	require.NoError(t, p.Forward(tensor))
	for _, v := range tensor {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
	// Direct separable DCT-I along x then y, with the unnormalised end
	// weights of Plan.Forward (1 at both ends, 2 in the interior).
	w := func(i, n int) float64 {
		if i == 0 || i == n-1 {
			return 1
		}
		return 2
	}
	for ky := 0; ky < ny; ky++ {
		for kx := 0; kx < nx; kx++ {
			want := 0.0
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					want += w(i, nx) * w(j, ny) * src[j*nx+i] *
						math.Cos(math.Pi*float64(i*kx)/float64(nx-1)) *
						math.Cos(math.Pi*float64(j*ky)/float64(ny-1))
				}
			}
			assert.InDelta(t, want, tensor[ky*nx+kx], 1e-9)
		}
	}
}
