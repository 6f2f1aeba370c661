package churn

// KPIs are the headline metrics of a cleaned table. Averages are NaN when the
// corresponding churn subset is empty.
type KPIs struct {
	TotalCustomers       int
	ChurnedCustomers     int
	ChurnRate            float64
	AvgMonthlyChargesYes float64
	AvgMonthlyChargesNo  float64
	AvgTenureYes         float64
	AvgTenureNo          float64
}

// KPIRow is one Metric,Value line of the KPI table.
type KPIRow struct {
	Metric string
	Value  float64
}

// Rows returns the KPI table in its published order.
func (k KPIs) Rows() []KPIRow {
	return []KPIRow{
		{Metric: "Total Customers", Value: float64(k.TotalCustomers)},
		{Metric: "Churned Customers", Value: float64(k.ChurnedCustomers)},
		{Metric: "Churn Rate (%)", Value: k.ChurnRate},
		{Metric: "Avg MonthlyCharges (Churn=Yes)", Value: k.AvgMonthlyChargesYes},
		{Metric: "Avg MonthlyCharges (Churn=No)", Value: k.AvgMonthlyChargesNo},
		{Metric: "Avg Tenure (Churn=Yes)", Value: k.AvgTenureYes},
		{Metric: "Avg Tenure (Churn=No)", Value: k.AvgTenureNo},
	}
}

// Crosstab is a row-normalized percentage breakdown of one column against another.
// Values[i][j] is the share of RowLabels[i] falling in ColLabels[j].
type Crosstab struct {
	RowColumn string
	ColColumn string
	RowLabels []string
	ColLabels []string
	Counts    [][]int
	Values    [][]float64
}

// Value returns the percentage for a row/column label pair.
func (c *Crosstab) Value(row, col string) (float64, bool) {
	i := indexOf(c.RowLabels, row)
	j := indexOf(c.ColLabels, col)
	if i < 0 || j < 0 {
		return 0, false
	}
	return c.Values[i][j], true
}

// NumericSummary holds describe() statistics for one numeric column.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// CategoricalSummary holds describe() statistics for one text column.
type CategoricalSummary struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// CorrelationMatrix is a square Pearson correlation matrix with labels.
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
}

// At returns the correlation between two labelled columns.
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	i := indexOf(m.Labels, a)
	j := indexOf(m.Labels, b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// DistributionShape describes the shape of one numeric column. Outliers are
// values outside the 1.5 IQR fences.
type DistributionShape struct {
	Column     string
	Skewness   float64
	Kurtosis   float64 // excess kurtosis
	LowerFence float64
	UpperFence float64
	Outliers   int
}
