package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardScaler_Transform(t *testing.T) {
	s := &StandardScaler{Mean: []float64{10, 0}, Scale: []float64{2, 5}}

	out, err := s.Transform([]float64{14, -10})

	require.NoError(t, err)
	assert.Equal(t, []float64{2, -2}, out)
}

func TestStandardScaler_InverseRoundTrip(t *testing.T) {
	s := &StandardScaler{Mean: []float64{5.5, -3.2, 100}, Scale: []float64{1.5, 0.25, 30}}
	in := []float64{7.3, -2.1, 42}

	scaled, err := s.Transform(in)
	require.NoError(t, err)
	back, err := s.InverseTransform(scaled)
	require.NoError(t, err)

	for i := range in {
		assert.InDelta(t, in[i], back[i], 1e-9)
	}
}

func TestStandardScaler_NotFitted(t *testing.T) {
	s := &StandardScaler{}

	assert.False(t, s.Fitted())

	_, err := s.Transform([]float64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not fitted")
}

func TestStandardScaler_DimensionMismatch(t *testing.T) {
	s := &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}

	_, err := s.Transform([]float64{1, 2, 3})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 2 features, got 3")
}

func TestStandardScaler_ValidateRejectsZeroScale(t *testing.T) {
	s := &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1, 0}}

	err := s.validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero scale")
}
