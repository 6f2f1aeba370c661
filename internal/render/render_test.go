package render

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"telcochurn/adapters/tabular"
	"telcochurn/domain/churn"
	"telcochurn/internal/analysis"
	"telcochurn/internal/cleaning"
	"telcochurn/internal/errors"
	"telcochurn/internal/testkit"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func cleanedTable(t *testing.T, config testkit.ChurnGeneratorConfig) dataframe.DataFrame {
	t.Helper()
	raw, err := tabular.LoadRecords(testkit.NewChurnDataGenerator(config).Records())
	require.NoError(t, err)
	df, _, err := cleaning.NewCleaner(nil).Clean(raw)
	require.NoError(t, err)
	return df
}

func TestRenderAllWritesEveryFigure(t *testing.T) {
	df := cleanedTable(t, testkit.DefaultChurnConfig())
	corr, err := analysis.CorrelationMatrix(df)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "figures")
	paths, err := NewRenderer(dir, nil).RenderAll(context.Background(), df, corr)
	require.NoError(t, err)
	require.Len(t, paths, len(churn.Figures))

	for i, name := range churn.Figures {
		assert.Equal(t, filepath.Join(dir, name), paths[i])

		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", name)
	}
}

func TestRenderAllWithoutChurners(t *testing.T) {
	config := testkit.DefaultChurnConfig()
	config.ChurnRate = 0
	df := cleanedTable(t, config)
	corr, err := analysis.CorrelationMatrix(df)
	require.NoError(t, err)

	paths, err := NewRenderer(t.TempDir(), nil).RenderAll(context.Background(), df, corr)
	require.NoError(t, err)
	assert.Len(t, paths, len(churn.Figures))
}

func TestRenderAllCancelled(t *testing.T) {
	df := cleanedTable(t, testkit.DefaultChurnConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, err := NewRenderer(t.TempDir(), nil).RenderAll(ctx, df, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, paths)
}

func TestRenderAllMissingColumn(t *testing.T) {
	df := cleanedTable(t, testkit.DefaultChurnConfig()).Drop(churn.ColChurn)

	_, err := NewRenderer(t.TempDir(), nil).RenderAll(context.Background(), df, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeRenderFailed, errors.GetCode(err))
}

func TestKDECurveArea(t *testing.T) {
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 8}
	binWidth := 0.5

	curve := kdeCurve(values, binWidth)
	require.Len(t, curve, kdePoints)

	area := 0.0
	for i := 1; i < len(curve); i++ {
		area += (curve[i].X - curve[i-1].X) * (curve[i].Y + curve[i-1].Y) / 2
	}
	assert.InEpsilon(t, float64(len(values))*binWidth, area, 0.01)

	assert.Nil(t, kdeCurve([]float64{2, 2, 2}, binWidth))
	assert.Nil(t, kdeCurve([]float64{2}, binWidth))
}

func TestValueCounts(t *testing.T) {
	labels, counts := valueCounts([]string{"Yes", "No", "", "No"})
	assert.Equal(t, []string{"No", "Yes"}, labels)
	assert.Equal(t, []float64{2, 1}, []float64(counts))
}

func TestCorrelationGridPutsFirstRowOnTop(t *testing.T) {
	grid := newCorrelationGrid(&churn.CorrelationMatrix{
		Labels: []string{"a", "b"},
		Values: [][]float64{{1, 0.5}, {0.5, 1}},
	})

	c, r := grid.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 0.5, grid.Z(1, 1))
	assert.Equal(t, 1.0, grid.Z(0, 1))
	assert.Equal(t, "0.50", formatCorrelation(0.5))
	assert.Equal(t, "", formatCorrelation(math.NaN()))
}

func TestFigureTitles(t *testing.T) {
	titles := map[string]string{}
	for _, fig := range NewRenderer(t.TempDir(), nil).figures() {
		titles[fig.name] = fig.title
	}

	assert.Equal(t, "Distribution of Churn", titles[churn.FigChurnDistribution])
	assert.Equal(t, "Distribution of Tenure", titles[churn.FigTenureDistribution])
	assert.Equal(t, "Churn Rate by Internet Service", titles[churn.FigInternetServiceVsChurn])
	assert.Equal(t, "Payment Methods for Customers Who Churned", titles[churn.FigPaymentMethodChurnYes])
	assert.Equal(t, "Churn Rate by StreamingTV Subscription", titles[churn.FigStreamingTVVsChurn])
	assert.Equal(t, "Correlation Heatmap (Numeric Features)", titles[churn.FigCorrelationHeatmap])
}

func TestChartAxisLabels(t *testing.T) {
	df := cleanedTable(t, testkit.DefaultChurnConfig())
	dir := t.TempDir()

	require.NoError(t, histogramChart(df, churn.ColTenure, "Distribution of Tenure", "Tenure (Months)", filepath.Join(dir, "tenure.png")))
	require.NoError(t, stackedPercentChart(df, churn.ColInternetService, "Churn Rate by Internet Service", "Internet Service Type", filepath.Join(dir, "internet.png")))
	require.NoError(t, groupedCountChart(df, churn.ColContract, "Contract Type vs Churn", filepath.Join(dir, "contract.png")))

	assert.Equal(t, vg.Length(24), barWidth)
	p := newPlot("Distribution of Tenure", "Tenure (Months)", "Frequency")
	assert.Equal(t, "Tenure (Months)", p.X.Label.Text)
	assert.Equal(t, "Frequency", p.Y.Label.Text)
}
