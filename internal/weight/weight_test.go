package weight_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintweight/scintweight/internal/aperture"
	"github.com/scintweight/scintweight/internal/filter"
	"github.com/scintweight/scintweight/internal/weight"
)

func TestNew1DWeightAtZeroAltitudeIsZero(t *testing.T) {
	wf, err := weight.New1D(filter.Mono{}, aperture.Point(), 550, 10, 32)
	require.NoError(t, err)
	assert.Equal(t, 0.0, wf.Evaluate(0))
}

func TestNew1DWeightIsPositiveAndIncreasing(t *testing.T) {
	wf, err := weight.New1D(filter.Mono{}, aperture.Circular(), 550, 10, 64)
	require.NoError(t, err)
	prev := 0.0
	for _, h := range []float64{0.1, 0.5, 1, 5, 20} {
		v := wf.Evaluate(h)
		assert.Greater(t, v, prev)
		prev = v
	}
}

func TestNew2DWeightMatches1DForCircularAperture(t *testing.T) {
	sf := filter.Mono{}
	circ := aperture.Circular()
	avg, err := aperture.NewAngleAveraged(circ, 48)
	require.NoError(t, err)

	wf1, err := weight.New1D(sf, avg, 550, 10, 32)
	require.NoError(t, err)
	wf2, err := weight.New2D(sf, circ, 550, 10, 32)
	require.NoError(t, err)

	for _, h := range []float64{0.5, 1, 5} {
		assert.InDelta(t, wf1.Evaluate(h), wf2.Evaluate(h), wf1.Evaluate(h)*0.05)
	}
}

func TestNewGrid2DZeroAltitudeReturnsZeroTensor(t *testing.T) {
	g, err := weight.NewGrid2D(filter.Mono{}, aperture.Circular(), 550, 10, 1, 8, 8)
	require.NoError(t, err)
	tensor, err := g.Evaluate(0)
	require.NoError(t, err)
	for _, v := range tensor {
		assert.Equal(t, 0.0, v)
	}
}

// TestS1MonoPointLiteralValues pins scenario S1 (spec §8): mono/point,
// lambda=550 nm, D=10 mm. These literal values are what caught the missing
// 2*pi scale factor in Function.Evaluate, so they must stay pinned here
// rather than only checked qualitatively.
func TestS1MonoPointLiteralValues(t *testing.T) {
	wf, err := weight.New1D(filter.Mono{}, aperture.Point(), 550, 10, 1024)
	require.NoError(t, err)
	assert.InEpsilon(t, 6.8541e10, wf.Evaluate(0.5), 1e-3)
	assert.InEpsilon(t, 1.2213e11, wf.Evaluate(1.0), 1e-3)
	assert.InEpsilon(t, 2.1933e12, wf.Evaluate(32), 1e-3)
}

// TestS2MonoCircularLiteralValues pins scenario S2 (spec §8): mono/circular,
// same lambda and D as S1.
func TestS2MonoCircularLiteralValues(t *testing.T) {
	wf, err := weight.New1D(filter.Mono{}, aperture.Circular(), 550, 10, 1024)
	require.NoError(t, err)
	assert.InEpsilon(t, 4.6096e10, wf.Evaluate(0.5), 1e-3)
	assert.InEpsilon(t, 9.6325e10, wf.Evaluate(1.0), 1e-3)
	assert.InEpsilon(t, 2.1556e12, wf.Evaluate(32), 1e-3)
}

// TestS3GaussPointLiteralValues pins scenario S3 (spec §8): gauss(0.1)/point,
// same lambda and D as S1.
func TestS3GaussPointLiteralValues(t *testing.T) {
	wf, err := weight.New1D(filter.Gauss{Lambda: 0.1}, aperture.Point(), 550, 10, 1024)
	require.NoError(t, err)
	assert.InEpsilon(t, 6.5602e10, wf.Evaluate(0.5), 1e-3)
	assert.InEpsilon(t, 2.0993e12, wf.Evaluate(32), 1e-3)
}

// TestWeightScalingLawConstants pins testable property 11: for the Point
// aperture, W(h)/(h^(5/6)*lambda^(-7/6)) is a constant independent of h,
// equal to the tabulated 1.9991 (Mono), 1.9133 (Gauss(0.1)), 1.9865
// (Gauss(0.01)) dimensionless values times 2*pi.
func TestWeightScalingLawConstants(t *testing.T) {
	const lambda, d = 550.0, 10.0
	cases := []struct {
		name       string
		sf         filter.Filter
		dimension1 float64
	}{
		{"mono", filter.Mono{}, 1.9991},
		{"gauss0.1", filter.Gauss{Lambda: 0.1}, 1.9133},
		{"gauss0.01", filter.Gauss{Lambda: 0.01}, 1.9865},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wf, err := weight.New1D(c.sf, aperture.Point(), lambda, d, 1024)
			require.NoError(t, err)
			want := 2 * math.Pi * c.dimension1
			for _, h := range []float64{0.5, 2, 10} {
				got := wf.Evaluate(h) / (math.Pow(h, 5.0/6.0) * math.Pow(lambda, -7.0/6.0))
				assert.InEpsilon(t, want, got, 2e-3)
			}
		})
	}
}

func TestNewGrid2DShapeMatchesConstruction(t *testing.T) {
	g, err := weight.NewGrid2D(filter.Mono{}, aperture.Circular(), 550, 10, 1, 6, 10)
	require.NoError(t, err)
	nx, ny := g.Shape()
	assert.Equal(t, 6, nx)
	assert.Equal(t, 10, ny)
	tensor, err := g.Evaluate(1)
	require.NoError(t, err)
	assert.Len(t, tensor, 60)
}
