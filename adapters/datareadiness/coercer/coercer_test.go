package coercer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceNumeric(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"29.85", 29.85, true},
		{" 1889.5 ", 1889.5, true},
		{"1e3", 1000, true},
		{"-3", -3, true},
		{" ", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"$12", 0, false},
	}

	for _, tt := range tests {
		got, ok := c.CoerceNumeric(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.input)
		} else {
			assert.True(t, math.IsNaN(got), "input %q should coerce to NaN", tt.input)
		}
	}
}

func TestCoerceNumericWithoutTrim(t *testing.T) {
	config := DefaultCoercionConfig()
	config.TrimSpace = false
	config.AllowNonFinite = true
	c := NewTypeCoercer(config)

	_, ok := c.CoerceNumeric(" 12")
	assert.False(t, ok)

	v, ok := c.CoerceNumeric("+Inf")
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, 1))
}

func TestCoerceColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	values, missing := c.CoerceColumn([]string{"10", " ", "20", "x"})
	assert.Equal(t, 2, missing)
	assert.Equal(t, 10.0, values[0])
	assert.True(t, math.IsNaN(values[1]))
	assert.Equal(t, 20.0, values[2])
	assert.True(t, math.IsNaN(values[3]))
}

func TestAnalyzeTypeDistribution(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	analysis := c.AnalyzeTypeDistribution([]string{"1", "2", " ", "3", "4", "x"})
	assert.Equal(t, 6, analysis.TotalCount)
	assert.Equal(t, 5, analysis.ValidCount)
	assert.Equal(t, 4, analysis.NumericCount)
	assert.InDelta(t, 0.8, analysis.NumericRatio, 1e-9)
	assert.True(t, analysis.IsNumeric)

	empty := c.AnalyzeTypeDistribution([]string{" ", ""})
	assert.False(t, empty.IsNumeric)
	assert.Zero(t, empty.NumericRatio)
}
