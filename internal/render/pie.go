package render

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"telcochurn/domain/churn"
	"telcochurn/internal/analysis"
)

// paymentMethodPie draws the PaymentMethod shares among churned customers.
// Without churned customers an empty titled plot is written instead.
func paymentMethodPie(df dataframe.DataFrame, title, path string) error {
	methods, err := analysis.TextValues(df, churn.ColPaymentMethod)
	if err != nil {
		return err
	}
	labels, err := analysis.TextValues(df, churn.ColChurn)
	if err != nil {
		return err
	}

	var churnedMethods []string
	for i, label := range labels {
		if label == churn.Yes {
			churnedMethods = append(churnedMethods, methods[i])
		}
	}

	names, counts := valueCounts(churnedMethods)
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return save(newPlot(title, "", ""), path)
	}

	values := make([]chart.Value, len(names))
	for i, name := range names {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", name, counts[i]/total*100),
			Value: counts[i],
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1,
			},
		}
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  800,
		Height: 800,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Values: values,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pie.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("pie: %w", err)
	}
	return f.Close()
}
