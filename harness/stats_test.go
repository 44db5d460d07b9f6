package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name   string
		in     []float64
		mean   float64
		stdDev float64
	}{
		{name: "empty", in: nil},
		{name: "single", in: []float64{3}, mean: 3},
		{name: "population", in: []float64{1, 2, 3, 4}, mean: 2.5, stdDev: math.Sqrt(1.25)},
		{name: "constant", in: []float64{0.5, 0.5, 0.5}, mean: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := MeanStd(tt.in)
			assert.InDelta(t, tt.mean, mean, 1e-12)
			assert.InDelta(t, tt.stdDev, std, 1e-12)
		})
	}
}

func TestAmdahl(t *testing.T) {
	assert.InDelta(t, 1.0, Amdahl(0.9, 1), 1e-12)
	assert.InDelta(t, 1/(0.1+0.9/8), Amdahl(0.9, 8), 1e-12)
	assert.InDelta(t, 8.0, Amdahl(1, 8), 1e-12)
	assert.InDelta(t, 1.0, Amdahl(0, 8), 1e-12)
}

func TestGustafson(t *testing.T) {
	assert.InDelta(t, 1.0, Gustafson(0.9, 1), 1e-12)
	assert.InDelta(t, 7.3, Gustafson(0.9, 8), 1e-12)
	assert.InDelta(t, 1.0, Gustafson(0, 8), 1e-12)
}

func TestModePredict(t *testing.T) {
	assert.Equal(t, Amdahl(0.9, 4), Strong.Predict(0.9, 4))
	assert.Equal(t, Gustafson(0.9, 4), Weak.Predict(0.9, 4))
}
