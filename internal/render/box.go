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

// boxChart draws one box of column per Churn value
func boxChart(df dataframe.DataFrame, column, title, path string) error {
	values, err := analysis.FloatValues(df, column)
	if err != nil {
		return err
	}
	labels, err := analysis.TextValues(df, churn.ColChurn)
	if err != nil {
		return err
	}

	groups := make(map[string]plotter.Values)
	for i, label := range labels {
		if label == "" {
			continue
		}
		groups[label] = append(groups[label], values[i])
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	p := newPlot(title, churn.ColChurn, column)
	plotted := make([]string, 0, len(names))
	for _, name := range names {
		data := plotter.Values(finite(groups[name]))
		if len(data) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(len(plotted)), data)
		if err != nil {
			return fmt.Errorf("box for %s: %w", name, err)
		}
		box.FillColor = plotutil.Color(len(plotted))
		p.Add(box)
		plotted = append(plotted, name)
	}
	p.NominalX(plotted...)
	return save(p, path)
}
