package render

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"telcochurn/domain/churn"
)

// correlationGrid exposes a correlation matrix as a heat map grid. Row 0 of
// the matrix is drawn at the top.
type correlationGrid struct {
	values *mat.Dense
}

func newCorrelationGrid(corr *churn.CorrelationMatrix) correlationGrid {
	n := len(corr.Labels)
	values := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			values.Set(i, j, corr.Values[i][j])
		}
	}
	return correlationGrid{values: values}
}

func (g correlationGrid) Dims() (c, r int) {
	r, c = g.values.Dims()
	return c, r
}

func (g correlationGrid) Z(c, r int) float64 {
	n, _ := g.values.Dims()
	return g.values.At(n-1-r, c)
}

func (g correlationGrid) X(c int) float64 { return float64(c) }
func (g correlationGrid) Y(r int) float64 { return float64(r) }

// correlationHeatmap draws corr with a blue-red diverging palette fixed to
// [-1, 1] and each cell annotated to 2 decimals.
func correlationHeatmap(corr *churn.CorrelationMatrix, title, path string) error {
	p := newPlot(title, "", "")
	if corr == nil || len(corr.Labels) == 0 {
		return save(p, path)
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	grid := newCorrelationGrid(corr)
	heat := plotter.NewHeatMap(grid, colors.Palette(255))
	heat.Min = -1
	heat.Max = 1
	p.Add(heat)

	n := len(corr.Labels)
	points := make(plotter.XYs, 0, n*n)
	annotations := make([]string, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			points = append(points, plotter.XY{X: float64(c), Y: float64(r)})
			annotations = append(annotations, formatCorrelation(grid.Z(c, r)))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: annotations})
	if err != nil {
		return fmt.Errorf("annotations: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(labels)

	reversed := make([]string, n)
	for i, label := range corr.Labels {
		reversed[n-1-i] = label
	}
	p.NominalX(corr.Labels...)
	p.NominalY(reversed...)

	return p.Save(10*vg.Inch, 8*vg.Inch, path)
}

func formatCorrelation(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}
