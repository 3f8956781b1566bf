package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Rows read from each input table on the last run
	pipelineRowsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashboard_pipeline_rows_loaded",
			Help: "Rows read from each input table",
		},
		[]string{"table"},
	)

	// Rows written to each exported file on the last run
	pipelineRowsExported = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashboard_pipeline_rows_exported",
			Help: "Rows written to each exported file",
		},
		[]string{"file"},
	)

	// Present values that could not be parsed and were stored as null
	pipelineSoftNulls = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashboard_pipeline_soft_nulls",
			Help: "Unparsable values coerced to null per column",
		},
		[]string{"column"},
	)

	pipelineStageDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashboard_pipeline_stage_duration_seconds",
			Help: "Wall time of each pipeline stage on the last run",
		},
		[]string{"stage"},
	)

	boughtLastMonthGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_products_bought_last_month",
			Help: "Products flagged as bought in the last month",
		},
	)
)
