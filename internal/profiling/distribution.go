// Package profiling measures the distribution shape of numeric columns.
package profiling

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/montanaflynn/stats"

	"telcochurn/domain/churn"
	"telcochurn/internal/analysis"
)

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// AnalyzeTable profiles every numeric column of df in table order
func (da *DistributionAnalyzer) AnalyzeTable(df dataframe.DataFrame) ([]churn.DistributionShape, error) {
	names := analysis.NumericColumns(df)
	shapes := make([]churn.DistributionShape, 0, len(names))
	for _, name := range names {
		values, err := analysis.FloatValues(df, name)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, da.AnalyzeDistribution(name, values))
	}
	return shapes, nil
}

// AnalyzeDistribution computes skewness, excess kurtosis and IQR outliers.
// Missing values are ignored; statistics that need more data are NaN.
func (da *DistributionAnalyzer) AnalyzeDistribution(column string, values []float64) churn.DistributionShape {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}

	shape := churn.DistributionShape{
		Column:     column,
		Skewness:   math.NaN(),
		Kurtosis:   math.NaN(),
		LowerFence: math.NaN(),
		UpperFence: math.NaN(),
	}
	if len(data) == 0 {
		return shape
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationPopulation(data)
	shape.Skewness = calculateSkewness(data, mean, stdDev)
	shape.Kurtosis = calculateKurtosis(data, mean, stdDev)

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	q25 := analysis.Quantile(sorted, 0.25)
	q75 := analysis.Quantile(sorted, 0.75)
	shape.LowerFence, shape.UpperFence, shape.Outliers = detectOutliers(data, q25, q75)
	return shape
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return math.NaN()
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	return sumCubedDeviations / n * math.Sqrt(n*(n-1)) / (n - 2)
}

// calculateKurtosis computes bias-corrected sample excess kurtosis
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return math.NaN()
	}

	n := float64(len(data))
	sumFourthDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourthDeviations += deviation * deviation * deviation * deviation
	}

	g2 := sumFourthDeviations/n - 3
	return (n - 1) / ((n - 2) * (n - 3)) * ((n+1)*g2 + 6)
}

// detectOutliers counts values outside the 1.5 IQR fences
func detectOutliers(data []float64, q25, q75 float64) (lower, upper float64, count int) {
	iqr := q75 - q25
	lower = q25 - 1.5*iqr
	upper = q75 + 1.5*iqr

	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return lower, upper, count
}
