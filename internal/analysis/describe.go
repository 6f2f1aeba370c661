package analysis

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/montanaflynn/stats"

	"telcochurn/domain/churn"
)

// DescribeNumeric summarizes every numeric column in table order. Missing
// values are skipped; a column without values reports count 0 and NaN stats.
func DescribeNumeric(df dataframe.DataFrame) ([]churn.NumericSummary, error) {
	names := NumericColumns(df)
	out := make([]churn.NumericSummary, 0, len(names))
	for _, name := range names {
		values, err := FloatValues(df, name)
		if err != nil {
			return nil, err
		}
		out = append(out, SummarizeNumeric(name, values))
	}
	return out, nil
}

// SummarizeNumeric computes count, mean, sample std, min, quartiles and max
func SummarizeNumeric(column string, values []float64) churn.NumericSummary {
	data := stats.Float64Data(dropNaN(values))
	summary := churn.NumericSummary{Column: column, Count: data.Len()}
	if data.Len() == 0 {
		nan := math.NaN()
		summary.Mean, summary.Std, summary.Min, summary.Q25 = nan, nan, nan, nan
		summary.Median, summary.Q75, summary.Max = nan, nan, nan
		return summary
	}

	summary.Mean, _ = stats.Mean(data)
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Median, _ = stats.Median(data)
	summary.Std = math.NaN()
	if data.Len() > 1 {
		summary.Std, _ = stats.StandardDeviationSample(data)
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	summary.Q25 = Quantile(sorted, 0.25)
	summary.Q75 = Quantile(sorted, 0.75)
	return summary
}

// Quantile interpolates linearly between the closest ranks of sorted data,
// position (n-1)*p.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// DescribeCategorical summarizes every text column in table order. Top is the
// most frequent value; ties go to the value seen first.
func DescribeCategorical(df dataframe.DataFrame) ([]churn.CategoricalSummary, error) {
	names := TextColumns(df)
	out := make([]churn.CategoricalSummary, 0, len(names))
	for _, name := range names {
		values, err := TextValues(df, name)
		if err != nil {
			return nil, err
		}
		out = append(out, SummarizeCategorical(name, values, isMissingMask(df, name)))
	}
	return out, nil
}

// SummarizeCategorical counts non-missing cells, distinct values and the mode
func SummarizeCategorical(column string, values []string, missing []bool) churn.CategoricalSummary {
	summary := churn.CategoricalSummary{Column: column}
	freq := make(map[string]int)
	var order []string
	for i, v := range values {
		if missing != nil && missing[i] {
			continue
		}
		summary.Count++
		if freq[v] == 0 {
			order = append(order, v)
		}
		freq[v]++
	}

	summary.Unique = len(order)
	for _, v := range order {
		if freq[v] > summary.Freq {
			summary.Top, summary.Freq = v, freq[v]
		}
	}
	return summary
}

func isMissingMask(df dataframe.DataFrame, name string) []bool {
	return df.Col(name).IsNaN()
}
