package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telcochurn/adapters/tabular"
	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal/analysis"
	"telcochurn/internal/cleaning"
	"telcochurn/internal/testkit"
)

func init() {
	color.NoColor = true
}

func TestReportSections(t *testing.T) {
	raw, err := tabular.LoadRecords(testkit.NewChurnDataGenerator(testkit.DefaultChurnConfig()).Records())
	require.NoError(t, err)
	cleaned, st, err := cleaning.NewCleaner(nil).Clean(raw)
	require.NoError(t, err)
	kpis, err := analysis.ComputeKPIs(cleaned)
	require.NoError(t, err)
	pivots, err := analysis.ChurnPivots(cleaned)
	require.NoError(t, err)
	numeric, err := analysis.DescribeNumeric(cleaned)
	require.NoError(t, err)
	categorical, err := analysis.DescribeCategorical(cleaned)
	require.NoError(t, err)

	var buf bytes.Buffer
	r := NewReporter(&buf, 3)
	r.Table("Raw data", raw)
	r.Cleaning(st)
	r.KPIs(kpis)
	r.Pivots(pivots)
	r.Summaries(numeric, categorical)
	out := buf.String()

	assert.Contains(t, out, "Raw data (200 rows x 21 columns)")
	assert.Contains(t, out, "customerID")
	assert.Contains(t, out, "TotalCharges: 3 values imputed")
	assert.Contains(t, out, "SeniorCitizen unique values:")
	assert.Contains(t, out, "Churn Rate (%)")
	assert.Contains(t, out, "Contract vs Churn (%)")
	assert.Contains(t, out, "Categorical summary")
	assert.Contains(t, out, "statistic")
	assert.Contains(t, out, "unique")
}

func TestReportHeadRowsLimit(t *testing.T) {
	df, err := tabular.LoadRecords(testkit.NewChurnDataGenerator(testkit.DefaultChurnConfig()).Records())
	require.NoError(t, err)

	var buf bytes.Buffer
	NewReporter(&buf, 0).Table("Empty head", df)
	assert.NotContains(t, buf.String(), "0001-CUST")
	assert.Contains(t, buf.String(), "Type")
}

func TestReportManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), churn.FileKPIs)
	require.NoError(t, os.WriteFile(path, []byte("Metric,Value\n"), 0o644))

	m := core.NewManifest(core.RunID("run-1"))
	require.NoError(t, m.Record(core.ArtifactKPITable, path))

	var buf bytes.Buffer
	NewReporter(&buf, 5).Manifest(m)
	assert.Contains(t, buf.String(), "Run run-1")
	assert.Contains(t, buf.String(), "kpi_table")
	assert.Contains(t, buf.String(), m.Artifacts[0].Hash.Short())
	assert.Contains(t, buf.String(), "1 artifacts written")
}

func TestReportShapes(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, 5).Shapes([]churn.DistributionShape{
		{Column: "tenure", Skewness: 0.2394, Kurtosis: -1.387, LowerFence: -60, UpperFence: 124, Outliers: 0},
		{Column: "flat", Skewness: math.NaN(), Kurtosis: math.NaN(), LowerFence: 1, UpperFence: 1},
	})

	out := buf.String()
	assert.Contains(t, out, "Distribution shape")
	assert.Contains(t, out, "0.239")
	assert.Contains(t, out, "-1.387")
	assert.Contains(t, out, "[-60.000, 124.000]")
}
