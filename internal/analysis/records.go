package analysis

import (
	"strconv"

	"telcochurn/adapters/tabular"
	"telcochurn/domain/churn"
)

// Row labels of the describe() tables. They are not written to disk.
var (
	NumericStatistics     = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	CategoricalStatistics = []string{"count", "unique", "top", "freq"}
)

// KPIRecords lays the KPIs out as a Metric,Value table. Every value is a
// float, so counts are written as 7043.0; NaN averages are empty cells.
func KPIRecords(k churn.KPIs) [][]string {
	records := [][]string{{"Metric", "Value"}}
	for _, row := range k.Rows() {
		records = append(records, []string{row.Metric, tabular.FormatFloat(row.Value)})
	}
	return records
}

// CrosstabRecords writes the percentages with the row column name heading the
// label column and one column per ColLabels entry.
func CrosstabRecords(ct *churn.Crosstab) [][]string {
	header := append([]string{ct.RowColumn}, ct.ColLabels...)
	records := [][]string{header}
	for i, label := range ct.RowLabels {
		row := make([]string, 0, len(ct.ColLabels)+1)
		row = append(row, label)
		for _, v := range ct.Values[i] {
			row = append(row, tabular.FormatFloat(v))
		}
		records = append(records, row)
	}
	return records
}

// NumericSummaryRecords writes one row per NumericStatistics entry and one
// column per summarized column. The count row is a float like the others.
func NumericSummaryRecords(summaries []churn.NumericSummary) [][]string {
	values := []func(churn.NumericSummary) float64{
		func(s churn.NumericSummary) float64 { return float64(s.Count) },
		func(s churn.NumericSummary) float64 { return s.Mean },
		func(s churn.NumericSummary) float64 { return s.Std },
		func(s churn.NumericSummary) float64 { return s.Min },
		func(s churn.NumericSummary) float64 { return s.Q25 },
		func(s churn.NumericSummary) float64 { return s.Median },
		func(s churn.NumericSummary) float64 { return s.Q75 },
		func(s churn.NumericSummary) float64 { return s.Max },
	}

	header := make([]string, 0, len(summaries))
	for _, s := range summaries {
		header = append(header, s.Column)
	}
	records := [][]string{header}
	for _, value := range values {
		line := make([]string, 0, len(summaries))
		for _, s := range summaries {
			line = append(line, tabular.FormatFloat(value(s)))
		}
		records = append(records, line)
	}
	return records
}

// CategoricalSummaryRecords writes the count, unique, top and freq rows
func CategoricalSummaryRecords(summaries []churn.CategoricalSummary) [][]string {
	var header, count, unique, top, freq []string
	for _, s := range summaries {
		header = append(header, s.Column)
		count = append(count, strconv.Itoa(s.Count))
		unique = append(unique, strconv.Itoa(s.Unique))
		top = append(top, s.Top)
		freq = append(freq, strconv.Itoa(s.Freq))
	}
	return [][]string{header, count, unique, top, freq}
}

// WithStatisticColumn prefixes each data row of a summary table with its
// label and the header with "statistic", for display.
func WithStatisticColumn(records [][]string, labels []string) [][]string {
	out := make([][]string, len(records))
	for i, row := range records {
		label := "statistic"
		if i > 0 && i-1 < len(labels) {
			label = labels[i-1]
		}
		out[i] = append([]string{label}, row...)
	}
	return out
}
