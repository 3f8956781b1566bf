package businessflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/amirphl/product-analytics-dashboard/config"
	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/amirphl/product-analytics-dashboard/repository"
	"github.com/amirphl/product-analytics-dashboard/utils"
	"github.com/google/uuid"
)

// DashboardSnapshot is everything the dashboard needs, computed once at start-up
type DashboardSnapshot struct {
	RunID         string
	GeneratedAt   time.Time
	Schema        *models.StarSchema
	Report        *models.AnalyticsReport
	ExportedFiles []string
	Stats         NormalizationStats
}

// DashboardFlow runs the load, normalize, export and aggregate stages
type DashboardFlow interface {
	Run(ctx context.Context) (*DashboardSnapshot, error)
}

// DashboardFlowImpl implements DashboardFlow
type DashboardFlowImpl struct {
	source     repository.TableSource
	sink       repository.TableSink
	normalizer *Normalizer
	aggregator *Aggregator
	input      config.InputConfig
	logger     *log.Logger
}

// NewDashboardFlow creates a new dashboard flow
func NewDashboardFlow(
	source repository.TableSource,
	sink repository.TableSink,
	input config.InputConfig,
	pipeline config.PipelineConfig,
	logger *log.Logger,
) DashboardFlow {
	if logger == nil {
		logger = log.Default()
	}
	return &DashboardFlowImpl{
		source:     source,
		sink:       sink,
		normalizer: NewNormalizer(pipeline.BoolCastMode),
		aggregator: NewAggregator(pipeline.TopRankedLimit, pipeline.TopRatedMinReviews, pipeline.LabelMaxLen),
		input:      input,
		logger:     logger,
	}
}

// Run executes the pipeline once. Any error is fatal for the caller.
func (f *DashboardFlowImpl) Run(ctx context.Context) (*DashboardSnapshot, error) {
	runID := uuid.NewString()
	f.logger.Printf("run=%s pipeline started", runID)

	// Load
	stageStart := time.Now()
	rawProducts, err := f.load(ctx, "products", f.input.ProductsPath)
	if err != nil {
		return nil, err
	}
	rawCategories, err := f.load(ctx, "categories", f.input.CategoriesPath)
	if err != nil {
		return nil, err
	}
	f.observeStage(runID, "load", stageStart, "products=%d categories=%d", rawProducts.Len(), rawCategories.Len())

	// Normalize
	stageStart = time.Now()
	products, stats, err := f.normalizer.NormalizeProducts(rawProducts)
	if err != nil {
		return nil, err
	}
	categories, err := f.normalizer.NormalizeCategories(rawCategories)
	if err != nil {
		return nil, err
	}
	for column, n := range stats.SoftNulls {
		pipelineSoftNulls.WithLabelValues(column).Set(float64(n))
	}
	f.observeStage(runID, "normalize", stageStart, "rows=%d soft_nulls=%v", stats.Rows, stats.SoftNulls)

	// Schema + export
	stageStart = time.Now()
	schema := BuildStarSchema(products, categories)
	files, err := ExportStarSchema(ctx, f.sink, schema)
	if err != nil {
		return nil, err
	}
	f.observeStage(runID, "export", stageStart, "dim_category=%d dim_product=%d fact_product=%d files=%v",
		len(schema.Categories), len(schema.Products), len(schema.Facts), files)

	// Aggregate
	stageStart = time.Now()
	report := f.aggregator.Aggregate(products, schema.Categories)
	boughtLastMonthGauge.Set(float64(report.BoughtLastMonthCount))
	f.observeStage(runID, "aggregate", stageStart, "best_sellers=%d top_rated=%d categories=%d bought_last_month=%d",
		len(report.TopBestSellers), len(report.TopRated), len(report.CategoryCounts), report.BoughtLastMonthCount)

	return &DashboardSnapshot{
		RunID:         runID,
		GeneratedAt:   utils.UTCNow(),
		Schema:        schema,
		Report:        report,
		ExportedFiles: files,
		Stats:         stats,
	}, nil
}

func (f *DashboardFlowImpl) load(ctx context.Context, name, path string) (*models.Table, error) {
	table, err := f.source.Load(ctx, path)
	if err != nil {
		return nil, NewBusinessError(
			CodeLoadFailed,
			fmt.Sprintf("failed to load %s table", name),
			fmt.Errorf("%w: %w", ErrLoadFailed, err),
		)
	}
	pipelineRowsLoaded.WithLabelValues(name).Set(float64(table.Len()))
	return table, nil
}

func (f *DashboardFlowImpl) observeStage(runID, stage string, start time.Time, format string, args ...any) {
	elapsed := time.Since(start)
	pipelineStageDuration.WithLabelValues(stage).Set(elapsed.Seconds())
	f.logger.Printf("run=%s stage=%s took=%s "+format, append([]any{runID, stage, elapsed}, args...)...)
}
