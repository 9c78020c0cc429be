package coil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	assert.Empty(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{3}, Linspace(3, 7, 1))
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))

	desc := Linspace(10, 0, 3)
	assert.Equal(t, []float64{10, 5, 0}, desc)
}

func TestTimeSeries(t *testing.T) {
	p := DefaultParameters()
	ts := TimeSeries(p)

	require.Len(t, ts, p.SampleCount)
	assert.Equal(t, 0.0, ts[0])
	assert.InDelta(t, p.EndTime, ts[len(ts)-1], 1e-12)
	for i := 1; i < len(ts); i++ {
		assert.Greater(t, ts[i], ts[i-1])
	}
}

func TestAngularVelocitySeries(t *testing.T) {
	t.Run("increasing bounds", func(t *testing.T) {
		p := DefaultParameters()
		omega := AngularVelocitySeries(p)

		require.Len(t, omega, p.SampleCount)
		assert.InDelta(t, Radians(60), omega[0], 1e-12)
		assert.InDelta(t, Radians(90), omega[len(omega)-1], 1e-12)
		for i := 1; i < len(omega); i++ {
			assert.GreaterOrEqual(t, omega[i], omega[i-1])
		}
	})

	t.Run("decreasing bounds", func(t *testing.T) {
		p := DefaultParameters()
		p.OmegaStartDeg, p.OmegaEndDeg = 90, 60
		omega := AngularVelocitySeries(p)

		assert.InDelta(t, Radians(90), omega[0], 1e-12)
		assert.InDelta(t, Radians(60), omega[len(omega)-1], 1e-12)
		for i := 1; i < len(omega); i++ {
			assert.LessOrEqual(t, omega[i], omega[i-1])
		}
	})
}
