package app

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"telcochurn/adapters/tabular"
	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal/config"
	"telcochurn/internal/errors"
	"telcochurn/internal/render"
	"telcochurn/internal/report"
	"telcochurn/internal/testkit"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) RenderAll(ctx context.Context, df dataframe.DataFrame, corr *churn.CorrelationMatrix) ([]string, error) {
	args := m.Called(ctx, df, corr)
	paths, _ := args.Get(0).([]string)
	return paths, args.Error(1)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := baseConfig(t.TempDir())
	require.NoError(t, testkit.NewChurnDataGenerator(testkit.DefaultChurnConfig()).WriteCSV(cfg.InputPath()))
	return cfg
}

func baseConfig(root string) *config.Config {
	return &config.Config{
		Paths: config.PathConfig{
			RootDir:      root,
			InputFile:    "data/raw/Telco-customer-Churn.csv",
			ProcessedDir: "data/processed",
			FiguresDir:   "figures",
		},
		Report:  config.ReportConfig{HeadRows: 5},
		Logging: config.LoggingConfig{Level: "INFO"},
	}
}

func fakeFigures(t *testing.T, cfg *config.Config, names ...string) []string {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.FiguresDir(), 0o755))
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(cfg.FiguresDir(), name)
		require.NoError(t, os.WriteFile(paths[i], []byte("png"), 0o644))
	}
	return paths
}

func newTestPipeline(cfg *config.Config, renderer *mockRenderer) *Pipeline {
	return NewPipeline(cfg, tabular.NewDataReader(nil), tabular.NewWriter(), renderer, report.NewReporter(io.Discard, 5), nil)
}

func TestPipelineRun(t *testing.T) {
	cfg := testConfig(t)
	renderer := &mockRenderer{}
	figures := fakeFigures(t, cfg, churn.FigChurnDistribution, churn.FigCorrelationHeatmap)
	renderer.On("RenderAll", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			df := args.Get(1).(dataframe.DataFrame)
			assert.Equal(t, 200, df.Nrow())
			corr := args.Get(2).(*churn.CorrelationMatrix)
			assert.Contains(t, corr.Labels, churn.ColChurnNumeric)
		}).
		Return(figures, nil).Once()

	result, err := newTestPipeline(cfg, renderer).Run(context.Background())
	require.NoError(t, err)
	renderer.AssertExpectations(t)

	assert.Equal(t, 200, result.RawRows)
	assert.Equal(t, 200, result.CleanRows)
	assert.Equal(t, 3, result.Cleaning.CoercedMissing)
	require.NotNil(t, result.KPIs)
	assert.Equal(t, 53, result.KPIs.ChurnedCustomers)

	m := result.Manifest
	assert.Equal(t, result.RunID, m.RunID)
	assert.Equal(t, 1, m.Count(core.ArtifactCleanTable))
	assert.Equal(t, 1, m.Count(core.ArtifactKPITable))
	assert.Equal(t, len(churn.Pivots), m.Count(core.ArtifactPivotTable))
	assert.Equal(t, 2, m.Count(core.ArtifactSummary))
	assert.Equal(t, 2, m.Count(core.ArtifactFigure))
	for _, a := range m.Artifacts {
		assert.NotEmpty(t, a.Hash, a.Path)
	}

	kpis := readCSV(t, cfg.ProcessedPath(churn.FileKPIs))
	assert.Equal(t, []string{"Metric", "Value"}, kpis[0])
	assert.Equal(t, []string{"Total Customers", "200.0"}, kpis[1])
	assert.Equal(t, []string{"Churn Rate (%)", "26.5"}, kpis[3])

	summary := readCSV(t, cfg.ProcessedPath(churn.FileSummaryNumeric))
	assert.NotContains(t, summary[0], "statistic")
	assert.Contains(t, summary[0], churn.ColTenure)
	assert.Equal(t, "200.0", summary[1][0])

	contract := readCSV(t, cfg.ProcessedPath("pivot_contract_churn.csv"))
	assert.Equal(t, []string{"Contract", "No", "Yes"}, contract[0])

	clean := readCSV(t, cfg.ProcessedPath(churn.FileCleanTable))
	assert.Len(t, clean, 201)
	assert.Equal(t, testkit.Header, clean[0])
}

func TestPipelineRunRendersAllFigures(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg, tabular.NewDataReader(nil), tabular.NewWriter(),
		render.NewRenderer(cfg.FiguresDir(), nil), nil, nil)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(churn.Figures), result.Manifest.Count(core.ArtifactFigure))
	for _, name := range churn.Figures {
		assert.FileExists(t, filepath.Join(cfg.FiguresDir(), name))
	}
}

func TestPipelineMissingInputWritesNothing(t *testing.T) {
	cfg := baseConfig(t.TempDir())
	renderer := &mockRenderer{}

	_, err := newTestPipeline(cfg, renderer).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeInputUnreadable, errors.GetCode(err))
	renderer.AssertNotCalled(t, "RenderAll", mock.Anything, mock.Anything, mock.Anything)

	_, statErr := os.Stat(filepath.Join(cfg.Paths.RootDir, cfg.Paths.ProcessedDir))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipelineRenderFailure(t *testing.T) {
	cfg := testConfig(t)
	renderer := &mockRenderer{}
	renderer.On("RenderAll", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.RenderFailed(churn.FigCorrelationHeatmap, assert.AnError))

	_, err := newTestPipeline(cfg, renderer).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeRenderFailed, errors.GetCode(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPipelineCancelled(t *testing.T) {
	cfg := testConfig(t)
	renderer := &mockRenderer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(cfg, renderer).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	renderer.AssertNotCalled(t, "RenderAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineClean(t *testing.T) {
	cfg := testConfig(t)
	renderer := &mockRenderer{}

	result, err := newTestPipeline(cfg, renderer).Clean(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Manifest.Artifacts, 1)
	assert.FileExists(t, cfg.ProcessedPath(churn.FileCleanTable))
	assert.NoFileExists(t, cfg.ProcessedPath(churn.FileKPIs))
	assert.Nil(t, result.KPIs)
	renderer.AssertNotCalled(t, "RenderAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelineReportWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	renderer := &mockRenderer{}

	result, err := newTestPipeline(cfg, renderer).Report(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.KPIs)
	assert.Equal(t, 200, result.KPIs.TotalCustomers)
	assert.Empty(t, result.Manifest.Artifacts)
	assert.NoDirExists(t, filepath.Join(cfg.Paths.RootDir, cfg.Paths.ProcessedDir))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}
