package render

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"telcochurn/domain/churn"
	"telcochurn/internal/analysis"
)

const barWidth vg.Length = 24

// countChart draws one bar per distinct value of column
func countChart(df dataframe.DataFrame, column, title, path string) error {
	values, err := analysis.TextValues(df, column)
	if err != nil {
		return err
	}
	labels, counts := valueCounts(values)

	p := newPlot(title, column, "count")
	bars, err := plotter.NewBarChart(counts, barWidth*2)
	if err != nil {
		return fmt.Errorf("bars: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	return save(p, path)
}

// groupedCountChart draws column counts side by side for each Churn value
func groupedCountChart(df dataframe.DataFrame, column, title, path string) error {
	ct, err := analysis.Crosstab(df, column, churn.ColChurn)
	if err != nil {
		return err
	}

	p := newPlot(title, column, "count")
	for j, hue := range ct.ColLabels {
		counts := make(plotter.Values, len(ct.RowLabels))
		for i := range ct.RowLabels {
			counts[i] = float64(ct.Counts[i][j])
		}

		bars, err := plotter.NewBarChart(counts, barWidth)
		if err != nil {
			return fmt.Errorf("bars for %s: %w", hue, err)
		}
		bars.Color = plotutil.Color(j)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = barWidth * vg.Length(float64(j)-float64(len(ct.ColLabels)-1)/2)

		p.Add(bars)
		p.Legend.Add(churn.ColChurn+"="+hue, bars)
	}
	p.Legend.Top = true
	p.NominalX(ct.RowLabels...)
	return save(p, path)
}

// stackedPercentChart stacks the row-normalized Churn percentages of column
func stackedPercentChart(df dataframe.DataFrame, column, title, xLabel, path string) error {
	ct, err := analysis.Crosstab(df, column, churn.ColChurn)
	if err != nil {
		return err
	}

	p := newPlot(title, xLabel, "Percentage (%)")
	var below *plotter.BarChart
	for j, hue := range ct.ColLabels {
		shares := make(plotter.Values, len(ct.RowLabels))
		for i := range ct.RowLabels {
			shares[i] = ct.Values[i][j]
		}

		bars, err := plotter.NewBarChart(shares, barWidth*2)
		if err != nil {
			return fmt.Errorf("bars for %s: %w", hue, err)
		}
		bars.Color = plotutil.Color(j)
		bars.LineStyle.Width = vg.Length(0)
		if below != nil {
			bars.StackOn(below)
		}
		below = bars

		p.Add(bars)
		p.Legend.Add(churn.ColChurn+"="+hue, bars)
	}
	p.Legend.Top = true
	p.Y.Max = 100
	p.NominalX(ct.RowLabels...)
	return save(p, path)
}

// valueCounts counts non-empty values, sorted by label
func valueCounts(values []string) ([]string, plotter.Values) {
	freq := make(map[string]int)
	for _, v := range values {
		if v != "" {
			freq[v]++
		}
	}

	labels := make([]string, 0, len(freq))
	for label := range freq {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	counts := make(plotter.Values, len(labels))
	for i, label := range labels {
		counts[i] = float64(freq[label])
	}
	return labels, counts
}
