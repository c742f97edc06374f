package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintweight/scintweight/internal/errs"
	"github.com/scintweight/scintweight/internal/grid"
)

func TestNewFromValuesUniform(t *testing.T) {
	vals := []float64{1.0, 1.5, 2.0, 2.5, 3.0}
	g, err := grid.NewFromValues(vals)
	require.NoError(t, err)
	assert.Equal(t, 1.0, g.Origin())
	assert.Equal(t, 0.5, g.Delta())
	assert.Equal(t, 5, g.Size())
	for i, v := range vals {
		assert.Equal(t, v, g.Value(i))
	}
}

func TestNewFromValuesNonUniform(t *testing.T) {
	vals := []float64{1.0, 1.5, 2.0, 2.6, 3.0}
	_, err := grid.NewFromValues(vals)
	require.Error(t, err)
	var nu *errs.NonUniformGrid
	require.ErrorAs(t, err, &nu)
	assert.Equal(t, 3, nu.Pos)
}

func TestIntersectSymmetry(t *testing.T) {
	a := grid.New(0, 1, 10)
	b := grid.New(3, 1, 10)
	ab, err := a.Intersect(b)
	require.NoError(t, err)
	ba, err := b.Intersect(a)
	require.NoError(t, err)
	assert.Equal(t, ab.Origin(), ba.Origin())
	assert.Equal(t, ab.Size(), ba.Size())
	assert.Equal(t, 7, ab.Size())
}

func TestIntersectDisjoint(t *testing.T) {
	a := grid.New(0, 1, 5)
	b := grid.New(100, 1, 5)
	ab, err := a.Intersect(b)
	require.NoError(t, err)
	assert.Equal(t, 0, ab.Size())
}

func TestIntersectMismatchedPhase(t *testing.T) {
	a := grid.New(0, 1, 5)
	b := grid.New(0.3, 1, 5)
	_, err := a.Intersect(b)
	require.Error(t, err)
	var mg *errs.MismatchedGrids
	require.ErrorAs(t, err, &mg)
}

func TestScale(t *testing.T) {
	g := grid.New(2, 0.5, 4)
	g.Scale(10)
	assert.Equal(t, 20.0, g.Origin())
	assert.Equal(t, 5.0, g.Delta())
}
