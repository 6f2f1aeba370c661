// Package render draws the fixed churn figures as PNG files.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"telcochurn/domain/churn"
	"telcochurn/internal"
	"telcochurn/internal/errors"
)

const (
	figureWidth  = 8 * vg.Inch
	figureHeight = 5 * vg.Inch
	histBins     = 30
)

// Renderer writes figures into a single directory
type Renderer struct {
	dir    string
	logger *internal.Logger
}

// NewRenderer creates a renderer writing into dir
func NewRenderer(dir string, logger *internal.Logger) *Renderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Renderer{dir: dir, logger: logger}
}

type figure struct {
	name  string
	title string
	draw  func(df dataframe.DataFrame, corr *churn.CorrelationMatrix, title, path string) error
}

func countOf(column string) func(dataframe.DataFrame, *churn.CorrelationMatrix, string, string) error {
	return func(df dataframe.DataFrame, _ *churn.CorrelationMatrix, title, path string) error {
		return countChart(df, column, title, path)
	}
}

func groupedBy(column string) func(dataframe.DataFrame, *churn.CorrelationMatrix, string, string) error {
	return func(df dataframe.DataFrame, _ *churn.CorrelationMatrix, title, path string) error {
		return groupedCountChart(df, column, title, path)
	}
}

func histogramOf(column, xLabel string) func(dataframe.DataFrame, *churn.CorrelationMatrix, string, string) error {
	return func(df dataframe.DataFrame, _ *churn.CorrelationMatrix, title, path string) error {
		return histogramChart(df, column, title, xLabel, path)
	}
}

func (r *Renderer) figures() []figure {
	return []figure{
		{churn.FigChurnDistribution, "Distribution of Churn", countOf(churn.ColChurn)},
		{churn.FigTenureDistribution, "Distribution of Tenure", histogramOf(churn.ColTenure, "Tenure (Months)")},
		{churn.FigContractVsChurn, "Contract Type vs Churn", groupedBy(churn.ColContract)},
		{churn.FigPaymentMethodChurnYes, "Payment Methods for Customers Who Churned",
			func(df dataframe.DataFrame, _ *churn.CorrelationMatrix, title, path string) error {
				return paymentMethodPie(df, title, path)
			}},
		{churn.FigInternetServiceVsChurn, "Churn Rate by Internet Service",
			func(df dataframe.DataFrame, _ *churn.CorrelationMatrix, title, path string) error {
				return stackedPercentChart(df, churn.ColInternetService, title, "Internet Service Type", path)
			}},
		{churn.FigMonthlyChargesVsChurn, "Monthly Charges vs Churn",
			func(df dataframe.DataFrame, _ *churn.CorrelationMatrix, title, path string) error {
				return boxChart(df, churn.ColMonthlyCharges, title, path)
			}},
		{churn.FigStreamingMoviesVsChurn, "Churn Rate by Streaming Movies Subscription", groupedBy(churn.ColStreamingMovies)},
		{churn.FigStreamingTVVsChurn, "Churn Rate by StreamingTV Subscription", groupedBy(churn.ColStreamingTV)},
		{churn.FigSeniorCitizenVsChurn, "Churn Rate by Senior Citizen Status", groupedBy(churn.ColSeniorCitizen)},
		{churn.FigTotalChargesDistribution, "Distribution of Total Charges", histogramOf(churn.ColTotalCharges, "Total Charges")},
		{churn.FigCorrelationHeatmap, "Correlation Heatmap (Numeric Features)",
			func(_ dataframe.DataFrame, corr *churn.CorrelationMatrix, title, path string) error {
				return correlationHeatmap(corr, title, path)
			}},
	}
}

// RenderAll draws every figure in churn.Figures order and returns the written
// paths. The context is checked before each figure.
func (r *Renderer) RenderAll(ctx context.Context, df dataframe.DataFrame, corr *churn.CorrelationMatrix) ([]string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, errors.OutputWriteFailed(r.dir, err)
	}
	defer r.logger.Timed("[Renderer] all figures")()

	paths := make([]string, 0, len(churn.Figures))
	for _, fig := range r.figures() {
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		path := filepath.Join(r.dir, fig.name)
		if err := fig.draw(df, corr, fig.title, path); err != nil {
			return paths, errors.RenderFailed(fig.name, err)
		}
		r.logger.Debug("[Renderer] wrote %s", path)
		paths = append(paths, path)
	}

	r.logger.Info("[Renderer] %d figures written to %s", len(paths), r.dir)
	return paths, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(figureWidth, figureHeight, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}
