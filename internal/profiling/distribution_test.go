package profiling

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDistributionSymmetric(t *testing.T) {
	shape := NewDistributionAnalyzer().AnalyzeDistribution("x", []float64{1, 2, 3, 4, 5})

	assert.InDelta(t, 0.0, shape.Skewness, 1e-12)
	assert.InDelta(t, -1.2, shape.Kurtosis, 1e-9)
	assert.Equal(t, 0, shape.Outliers)
	assert.Equal(t, -1.0, shape.LowerFence)
	assert.Equal(t, 7.0, shape.UpperFence)
}

func TestAnalyzeDistributionOutliers(t *testing.T) {
	shape := NewDistributionAnalyzer().AnalyzeDistribution("x", []float64{1, 2, 3, 4, 5, 100, math.NaN()})

	assert.Equal(t, 1, shape.Outliers)
	assert.Greater(t, shape.Skewness, 2.0)
}

func TestAnalyzeDistributionSmallSamples(t *testing.T) {
	da := NewDistributionAnalyzer()

	constant := da.AnalyzeDistribution("c", []float64{3, 3, 3, 3})
	assert.True(t, math.IsNaN(constant.Skewness))
	assert.True(t, math.IsNaN(constant.Kurtosis))
	assert.Equal(t, 0, constant.Outliers)

	empty := da.AnalyzeDistribution("e", nil)
	assert.True(t, math.IsNaN(empty.LowerFence))
	assert.Equal(t, 0, empty.Outliers)
}

func TestAnalyzeTable(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"a", "b", "c"}, series.String, "label"),
		series.New([]int{1, 2, 3}, series.Int, "tenure"),
		series.New([]float64{10, 20, 90}, series.Float, "MonthlyCharges"),
	)

	shapes, err := NewDistributionAnalyzer().AnalyzeTable(df)
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, "tenure", shapes[0].Column)
	assert.Equal(t, "MonthlyCharges", shapes[1].Column)
}
