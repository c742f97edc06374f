package aperture_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintweight/scintweight/internal/aperture"
)

func TestAtZeroIsOne(t *testing.T) {
	ann, err := aperture.Annular(0.3)
	require.NoError(t, err)
	cross, err := aperture.CrossAnnular(1.0, 0.1, 0.2)
	require.NoError(t, err)

	cases := []struct {
		name string
		f    aperture.Filter
	}{
		{"point", aperture.Point()},
		{"circular", aperture.Circular()},
		{"annular", ann},
		{"cross-annular", cross},
		{"square", aperture.Square()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, 1.0, c.f.A(0), 1e-9)
		})
	}
}

func TestCircularBoundedByOneAndNonNegative(t *testing.T) {
	c := aperture.Circular()
	for _, u := range []float64{0, 0.1, 0.5, 1, 2, 5, 10} {
		v := c.A(u)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0+1e-9)
	}
}

func TestAnnularLimitsToCircular(t *testing.T) {
	circ := aperture.Circular()
	ann, err := aperture.Annular(1e-6)
	require.NoError(t, err)
	for _, u := range []float64{0.1, 0.5, 1, 2} {
		assert.InDelta(t, circ.A(u), ann.A(u), 1e-4)
	}
}

func TestAnnularRejectsInvalidEps(t *testing.T) {
	_, err := aperture.Annular(1.0)
	require.Error(t, err)
	_, err = aperture.Annular(-0.1)
	require.Error(t, err)
}

func TestSquareA2MatchesProductOfSincSquares(t *testing.T) {
	sq := aperture.Square()
	assert.InDelta(t, 1.0, sq.A2(0, 0), 1e-9)
	ux, uy := 0.3, 0.7
	sx := math.Sin(math.Pi*ux) / (math.Pi * ux)
	sy := math.Sin(math.Pi*uy) / (math.Pi * uy)
	assert.InDelta(t, sx*sx*sy*sy, sq.A2(ux, uy), 1e-12)
}

func TestAngleAveragedOfCircularMatchesCircular(t *testing.T) {
	circ := aperture.Circular()
	avg, err := aperture.NewAngleAveraged(circ, 64)
	require.NoError(t, err)
	for _, u := range []float64{0.2, 0.5, 1.0, 2.0} {
		assert.InDelta(t, circ.A(u), avg.A(u), 5e-3)
	}
}

func TestDimmAtZeroBaselineMatchesWrapped(t *testing.T) {
	circ := aperture.Circular()
	d := aperture.NewDimm(circ, 0)
	for _, u := range []float64{0, 0.3, 1, 3} {
		assert.InDelta(t, circ.A(u), d.A(u), 1e-9)
	}
}
