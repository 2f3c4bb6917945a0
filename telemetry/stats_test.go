package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplacementStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, p50, p90, maxV := DisplacementStats(values)

	assert.InDelta(t, 5.5, mean, 1e-9)
	assert.Equal(t, 5.0, p50)
	assert.Equal(t, 9.0, p90)
	assert.Equal(t, 10.0, maxV)
	assert.Equal(t, 1.0, values[0], "values are sorted in place")
}

func TestDisplacementStatsEmpty(t *testing.T) {
	mean, p50, p90, maxV := DisplacementStats(nil)

	assert.Zero(t, mean)
	assert.Zero(t, p50)
	assert.Zero(t, p90)
	assert.Zero(t, maxV)
}

func TestDisplacementStatsSingle(t *testing.T) {
	mean, p50, p90, maxV := DisplacementStats([]float64{0.25})

	assert.Equal(t, 0.25, mean)
	assert.Equal(t, 0.25, p50)
	assert.Equal(t, 0.25, p90)
	assert.Equal(t, 0.25, maxV)
}
