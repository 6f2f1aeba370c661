package app

import (
	"context"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"

	"telcochurn/adapters/tabular"
	"telcochurn/domain/churn"
	"telcochurn/domain/core"
	"telcochurn/internal"
	"telcochurn/internal/analysis"
	"telcochurn/internal/cleaning"
	"telcochurn/internal/config"
	"telcochurn/internal/errors"
	"telcochurn/internal/profiling"
	"telcochurn/internal/render"
	"telcochurn/internal/report"
	"telcochurn/ports"
)

// Pipeline runs load, clean, persist, aggregate and render in order
type Pipeline struct {
	cfg      *config.Config
	loader   ports.TableLoader
	cleaner  *cleaning.Cleaner
	profiler *profiling.DistributionAnalyzer
	writer   ports.TableWriter
	renderer ports.ChartRenderer
	reporter *report.Reporter
	logger   *internal.Logger
}

// RunResult summarizes one pipeline execution
type RunResult struct {
	RunID     core.RunID     `json:"run_id"`
	RawRows   int            `json:"raw_rows"`
	CleanRows int            `json:"clean_rows"`
	Cleaning  cleaning.Stats `json:"cleaning"`
	KPIs      *churn.KPIs    `json:"kpis,omitempty"`
	Manifest  *core.Manifest `json:"manifest"`
	RuntimeMs int64          `json:"runtime_ms"`
}

// Aggregates are the derived tables of a cleaned table
type Aggregates struct {
	KPIs        churn.KPIs
	Pivots      []*churn.Crosstab
	Numeric     []churn.NumericSummary
	Categorical []churn.CategoricalSummary
	Correlation *churn.CorrelationMatrix
	Shapes      []churn.DistributionShape
}

// NewPipeline wires a pipeline from its parts. A nil reporter disables console output.
func NewPipeline(cfg *config.Config, loader ports.TableLoader, writer ports.TableWriter,
	renderer ports.ChartRenderer, reporter *report.Reporter, logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{
		cfg:      cfg,
		loader:   loader,
		cleaner:  cleaning.NewCleaner(logger),
		profiler: profiling.NewDistributionAnalyzer(),
		writer:   writer,
		renderer: renderer,
		reporter: reporter,
		logger:   logger,
	}
}

// NewDefaultPipeline wires the file-based adapters, reporting to stdout
func NewDefaultPipeline(cfg *config.Config, logger *internal.Logger) *Pipeline {
	return NewPipeline(cfg,
		tabular.NewDataReader(logger),
		tabular.NewWriter(),
		render.NewRenderer(cfg.FiguresDir(), logger),
		report.NewReporter(os.Stdout, cfg.Report.HeadRows),
		logger,
	)
}

// Run executes every stage and writes all tables and figures
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result, cleaned, err := p.loadAndClean(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.persistClean(ctx, cleaned, result.Manifest); err != nil {
		return nil, err
	}

	agg, err := p.aggregate(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	result.KPIs = &agg.KPIs
	if err := p.persistAggregates(ctx, agg, result.Manifest); err != nil {
		return nil, err
	}
	p.printAggregates(agg)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	figures, err := p.renderer.RenderAll(ctx, cleaned, agg.Correlation)
	if err != nil {
		return nil, err
	}
	for _, path := range figures {
		if err := p.record(result.Manifest, core.ArtifactFigure, path); err != nil {
			return nil, err
		}
	}

	result.RuntimeMs = time.Since(start).Milliseconds()
	if p.reporter != nil {
		p.reporter.Manifest(result.Manifest)
	}
	p.logger.Info("[Pipeline] run %s finished in %dms: %d artifacts", result.RunID, result.RuntimeMs, len(result.Manifest.Artifacts))
	return result, nil
}

// Clean loads and cleans the input and writes only the cleaned table
func (p *Pipeline) Clean(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result, cleaned, err := p.loadAndClean(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.persistClean(ctx, cleaned, result.Manifest); err != nil {
		return nil, err
	}
	result.RuntimeMs = time.Since(start).Milliseconds()
	p.logger.Info("[Pipeline] clean %s finished in %dms", result.RunID, result.RuntimeMs)
	return result, nil
}

// Report loads, cleans and aggregates the input and prints the results
// without writing any file.
func (p *Pipeline) Report(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result, cleaned, err := p.loadAndClean(ctx)
	if err != nil {
		return nil, err
	}
	agg, err := p.aggregate(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	result.KPIs = &agg.KPIs
	p.printAggregates(agg)
	result.RuntimeMs = time.Since(start).Milliseconds()
	return result, nil
}

func (p *Pipeline) loadAndClean(ctx context.Context) (*RunResult, dataframe.DataFrame, error) {
	result := &RunResult{RunID: core.NewRunID()}
	result.Manifest = core.NewManifest(result.RunID)
	p.logger.Info("[Pipeline] run %s reading %s", result.RunID, p.cfg.InputPath())

	raw, err := p.loader.Load(ctx, p.cfg.InputPath())
	if err != nil {
		return nil, dataframe.DataFrame{}, err
	}
	result.RawRows = raw.Nrow()
	if p.reporter != nil {
		p.reporter.Table("Raw data", raw)
	}

	if err := ctx.Err(); err != nil {
		return nil, dataframe.DataFrame{}, err
	}
	done := p.logger.Timed("[Pipeline] clean")
	cleaned, st, err := p.cleaner.Clean(raw)
	done()
	if err != nil {
		return nil, dataframe.DataFrame{}, err
	}
	result.CleanRows = cleaned.Nrow()
	result.Cleaning = st
	if p.reporter != nil {
		p.reporter.Cleaning(st)
		p.reporter.Table("Cleaned data", cleaned)
	}
	return result, cleaned, nil
}

func (p *Pipeline) persistClean(ctx context.Context, cleaned dataframe.DataFrame, m *core.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := p.cfg.ProcessedPath(churn.FileCleanTable)
	if err := p.writer.WriteTable(path, cleaned); err != nil {
		return err
	}
	return p.record(m, core.ArtifactCleanTable, path)
}

func (p *Pipeline) aggregate(ctx context.Context, cleaned dataframe.DataFrame) (*Aggregates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer p.logger.Timed("[Pipeline] aggregate")()

	kpis, err := analysis.ComputeKPIs(cleaned)
	if err != nil {
		return nil, errors.Wrap(err, "KPI computation failed")
	}
	pivots, err := analysis.ChurnPivots(cleaned)
	if err != nil {
		return nil, err
	}
	numeric, err := analysis.DescribeNumeric(cleaned)
	if err != nil {
		return nil, errors.Wrap(err, "numeric summary failed")
	}
	categorical, err := analysis.DescribeCategorical(cleaned)
	if err != nil {
		return nil, errors.Wrap(err, "categorical summary failed")
	}
	corr, err := analysis.CorrelationMatrix(cleaned)
	if err != nil {
		return nil, errors.Wrap(err, "correlation failed")
	}
	shapes, err := p.profiler.AnalyzeTable(cleaned)
	if err != nil {
		return nil, errors.Wrap(err, "distribution profiling failed")
	}

	p.logger.Info("[Pipeline] churn rate %.2f%% (%d of %d customers)", kpis.ChurnRate, kpis.ChurnedCustomers, kpis.TotalCustomers)
	return &Aggregates{
		KPIs:        kpis,
		Pivots:      pivots,
		Numeric:     numeric,
		Categorical: categorical,
		Correlation: corr,
		Shapes:      shapes,
	}, nil
}

func (p *Pipeline) persistAggregates(ctx context.Context, agg *Aggregates, m *core.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.writeRecords(m, core.ArtifactKPITable, churn.FileKPIs, analysis.KPIRecords(agg.KPIs)); err != nil {
		return err
	}
	for i, pivot := range churn.Pivots {
		if err := p.writeRecords(m, core.ArtifactPivotTable, pivot.File, analysis.CrosstabRecords(agg.Pivots[i])); err != nil {
			return err
		}
	}
	if err := p.writeRecords(m, core.ArtifactSummary, churn.FileSummaryNumeric, analysis.NumericSummaryRecords(agg.Numeric)); err != nil {
		return err
	}
	return p.writeRecords(m, core.ArtifactSummary, churn.FileSummaryCategorical, analysis.CategoricalSummaryRecords(agg.Categorical))
}

func (p *Pipeline) writeRecords(m *core.Manifest, kind core.ArtifactKind, name string, records [][]string) error {
	path := p.cfg.ProcessedPath(name)
	p.logger.Trace("[Pipeline] writing %d records to %s", len(records), path)
	if err := p.writer.WriteRecords(path, records); err != nil {
		return err
	}
	return p.record(m, kind, path)
}

func (p *Pipeline) record(m *core.Manifest, kind core.ArtifactKind, path string) error {
	if err := m.Record(kind, path); err != nil {
		return errors.OutputWriteFailed(path, err)
	}
	p.logger.Debug("[Pipeline] %s %s", kind, path)
	return nil
}

func (p *Pipeline) printAggregates(agg *Aggregates) {
	if p.reporter == nil {
		return
	}
	p.reporter.KPIs(agg.KPIs)
	p.reporter.Pivots(agg.Pivots)
	p.reporter.Summaries(agg.Numeric, agg.Categorical)
	p.reporter.Shapes(agg.Shapes)
}
