// Package analysis computes the churn KPIs, cross-tabulations, descriptive
// summaries and correlation matrix from a cleaned table.
package analysis

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats/scalar"

	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal/errors"
)

// ComputeKPIs derives the headline metrics. A table without rows has no
// churn rate and yields ErrEmptyTable.
func ComputeKPIs(df dataframe.DataFrame) (churn.KPIs, error) {
	if df.Err != nil {
		return churn.KPIs{}, errors.Wrap(df.Err, "invalid table")
	}
	total := df.Nrow()
	if total == 0 {
		return churn.KPIs{}, errors.EmptyTable(core.ErrEmptyTable)
	}

	labels, err := TextValues(df, churn.ColChurn)
	if err != nil {
		return churn.KPIs{}, err
	}
	monthly, err := FloatValues(df, churn.ColMonthlyCharges)
	if err != nil {
		return churn.KPIs{}, err
	}
	tenure, err := FloatValues(df, churn.ColTenure)
	if err != nil {
		return churn.KPIs{}, err
	}

	var monthlyYes, monthlyNo, tenureYes, tenureNo []float64
	churned := 0
	for i, label := range labels {
		switch label {
		case churn.Yes:
			churned++
			monthlyYes = append(monthlyYes, monthly[i])
			tenureYes = append(tenureYes, tenure[i])
		case churn.No:
			monthlyNo = append(monthlyNo, monthly[i])
			tenureNo = append(tenureNo, tenure[i])
		}
	}

	return churn.KPIs{
		TotalCustomers:       total,
		ChurnedCustomers:     churned,
		ChurnRate:            ChurnRate(churned, total),
		AvgMonthlyChargesYes: Round2(MeanSkipNaN(monthlyYes)),
		AvgMonthlyChargesNo:  Round2(MeanSkipNaN(monthlyNo)),
		AvgTenureYes:         Round2(MeanSkipNaN(tenureYes)),
		AvgTenureNo:          Round2(MeanSkipNaN(tenureNo)),
	}, nil
}

// ChurnRate is churned/total as a percentage with 2 decimals. total must be positive.
func ChurnRate(churned, total int) float64 {
	return Round2(float64(churned) / float64(total) * 100)
}

// MeanSkipNaN averages the non-NaN values; NaN when there are none
func MeanSkipNaN(values []float64) float64 {
	mean, err := stats.Mean(dropNaN(values))
	if err != nil {
		return math.NaN()
	}
	return mean
}

// Round2 rounds to 2 decimals with ties to even; NaN stays NaN
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return scalar.RoundEven(v, 2)
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
