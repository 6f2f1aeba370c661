package render

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"telcochurn/internal/analysis"
)

const kdePoints = 200

// histogramChart draws a 30-bin histogram of column with a KDE curve scaled to counts
func histogramChart(df dataframe.DataFrame, column, title, xLabel, path string) error {
	raw, err := analysis.FloatValues(df, column)
	if err != nil {
		return err
	}
	values := finite(raw)

	p := newPlot(title, xLabel, "Frequency")
	if len(values) == 0 {
		return save(p, path)
	}

	hist, err := plotter.NewHist(plotter.Values(values), histBins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	hist.FillColor = plotutil.Color(0)
	hist.LineStyle.Width = vg.Points(0.5)
	p.Add(hist)

	if curve := kdeCurve(values, hist.Width); curve != nil {
		line, err := plotter.NewLine(curve)
		if err != nil {
			return fmt.Errorf("kde: %w", err)
		}
		line.Color = plotutil.Color(1)
		line.Width = vg.Points(1.5)
		p.Add(line)
	}

	return save(p, path)
}

// kdeCurve evaluates a gaussian kernel density estimate with Scott's
// bandwidth, scaled by n*binWidth so it overlays a count histogram. It is nil
// when the data has no spread.
func kdeCurve(values []float64, binWidth float64) plotter.XYs {
	n := float64(len(values))
	bandwidth := stat.StdDev(values, nil) * math.Pow(n, -0.2)
	if len(values) < 2 || bandwidth == 0 || math.IsNaN(bandwidth) {
		return nil
	}

	lo := floats.Min(values) - 3*bandwidth
	hi := floats.Max(values) + 3*bandwidth
	step := (hi - lo) / (kdePoints - 1)

	kernel := distuv.Normal{Mu: 0, Sigma: bandwidth}
	curve := make(plotter.XYs, kdePoints)
	for i := range curve {
		x := lo + float64(i)*step
		density := 0.0
		for _, v := range values {
			density += kernel.Prob(x - v)
		}
		curve[i].X = x
		curve[i].Y = density * binWidth
	}
	return curve
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
