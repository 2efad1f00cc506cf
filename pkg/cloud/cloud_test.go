package cloud

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointIsFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	for name, testCase := range map[string]struct {
		p    Point
		want bool
	}{
		"Finite": {Point{X: 1, Y: 2, Z: 3}, true},
		"NaN":    {NaN(), false},
		"InfZ":   {Point{X: 1, Y: 2, Z: inf}, false},
		"NaNX":   {Point{X: float32(math.NaN()), Y: 2, Z: 3}, false},
	} {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.p.IsFinite())
		})
	}
}

func TestCloudValidate(t *testing.T) {
	c := New(3, 2, true)
	require.NoError(t, c.Validate())
	assert.Equal(t, 0, c.FiniteCount())
	assert.Equal(t, BytesPerPointXYZRGB, c.BytesPerPoint())

	c.Set(2, 1, Point{X: 1, Y: 1, Z: 1})
	assert.Equal(t, Point{X: 1, Y: 1, Z: 1}, c.At(2, 1))
	assert.Equal(t, Point{X: 1, Y: 1, Z: 1}, c.Points[5])
	assert.Equal(t, 1, c.FiniteCount())

	c.Points = c.Points[:5]
	assert.ErrorIs(t, c.Validate(), ErrNotOrganized)
}
