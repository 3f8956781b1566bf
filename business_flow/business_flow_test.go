package businessflow

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirphl/product-analytics-dashboard/config"
	"github.com/amirphl/product-analytics-dashboard/models"
	"github.com/amirphl/product-analytics-dashboard/repository"
	testingutil "github.com/amirphl/product-analytics-dashboard/testing"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPipeline() config.PipelineConfig {
	return config.PipelineConfig{
		BoolCastMode:       "literal",
		TopRankedLimit:     10,
		TopCategoryLimit:   20,
		TopRatedMinReviews: 50,
		LabelMaxLen:        25,
	}
}

func TestDashboardFlow_Run(t *testing.T) {
	err := testingutil.TestWithWorkspace(func(ws *testingutil.TestWorkspace) error {
		fixtures := testingutil.NewTestFixtures(ws)
		productsPath, err := fixtures.WriteProductsCSV(testingutil.SampleProducts())
		require.NoError(t, err)
		categoriesPath, err := fixtures.WriteCategoriesCSV(testingutil.SampleCategories())
		require.NoError(t, err)

		exportDir := filepath.Join(ws.Dir, "out")
		var logs bytes.Buffer
		flow := NewDashboardFlow(
			repository.NewFileTableSource(),
			repository.NewCSVTableSink(exportDir),
			config.InputConfig{ProductsPath: productsPath, CategoriesPath: categoriesPath},
			defaultPipeline(),
			log.New(&logs, "", 0),
		)

		snapshot, err := flow.Run(context.Background())
		require.NoError(t, err)

		assert.NotEmpty(t, snapshot.RunID)
		assert.Contains(t, logs.String(), "run="+snapshot.RunID)
		assert.Len(t, snapshot.Schema.Facts, 3)
		assert.Equal(t, 2, snapshot.Report.BoughtLastMonthCount)

		counts := map[string]int{}
		for _, s := range snapshot.Report.CategoryCounts {
			counts[s.CategoryID] = s.ProductCount
		}
		assert.Equal(t, map[string]int{"1": 2, "2": 1}, counts)

		avgs := map[string]float64{}
		for _, s := range snapshot.Report.CategoryPrices {
			avgs[s.CategoryID] = *s.AvgPrice
		}
		assert.Equal(t, map[string]float64{"1": 15.0, "2": 30.0}, avgs)

		// B003 has an unparsable review count, so only B001 and B002 clear 50 reviews
		require.Len(t, snapshot.Report.TopRated, 2)
		assert.Equal(t, "B002", snapshot.Report.TopRated[0].ASIN)
		require.Len(t, snapshot.Report.TopBestSellers, 2)
		assert.Equal(t, "B001", snapshot.Report.TopBestSellers[0].ASIN)

		require.Len(t, snapshot.ExportedFiles, 3)
		fact, err := os.ReadFile(filepath.Join(exportDir, models.FactProductFile))
		require.NoError(t, err)
		assert.Equal(t,
			"asin,price,listprice,stars,reviews,isbestseller,boughtinlastmonth,category_id\n"+
				"B001,10.0,12.0,4.5,120,True,True,1\n"+
				"B002,20.0,,4.8,60,False,False,1\n"+
				"B003,30.0,1030.0,3.9,,True,True,2\n",
			string(fact))

		dimCategory, err := os.ReadFile(filepath.Join(exportDir, models.DimCategoryFile))
		require.NoError(t, err)
		assert.Equal(t, "category_id,category_name\n1,Electronics & Accessories\n2,Home & Kitchen\n", string(dimCategory))

		assert.Equal(t, 3.0, testutil.ToFloat64(pipelineRowsLoaded.WithLabelValues("products")))
		assert.Equal(t, 3.0, testutil.ToFloat64(pipelineRowsExported.WithLabelValues(models.FactProductFile)))
		assert.Equal(t, 2.0, testutil.ToFloat64(boughtLastMonthGauge))
		return nil
	})
	require.NoError(t, err)
}

func TestDashboardFlow_LoadFailureProducesNoOutput(t *testing.T) {
	dir := t.TempDir()
	exportDir := filepath.Join(dir, "out")
	flow := NewDashboardFlow(
		repository.NewFileTableSource(),
		repository.NewCSVTableSink(exportDir),
		config.InputConfig{ProductsPath: filepath.Join(dir, "missing.csv"), CategoriesPath: filepath.Join(dir, "missing2.csv")},
		defaultPipeline(),
		log.New(&bytes.Buffer{}, "", 0),
	)

	snapshot, err := flow.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.Equal(t, CodeLoadFailed, ErrorCode(err))
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(exportDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDashboardFlow_PriceFailureIsFatal(t *testing.T) {
	err := testingutil.TestWithWorkspace(func(ws *testingutil.TestWorkspace) error {
		fixtures := testingutil.NewTestFixtures(ws)
		rows := testingutil.SampleProducts()
		rows[1].Price = "call for price"
		productsPath, err := fixtures.WriteProductsCSV(rows)
		require.NoError(t, err)
		categoriesPath, err := fixtures.WriteCategoriesCSV(testingutil.SampleCategories())
		require.NoError(t, err)

		flow := NewDashboardFlow(
			repository.NewFileTableSource(),
			repository.NewCSVTableSink(filepath.Join(ws.Dir, "out")),
			config.InputConfig{ProductsPath: productsPath, CategoriesPath: categoriesPath},
			defaultPipeline(),
			log.New(&bytes.Buffer{}, "", 0),
		)
		_, err = flow.Run(context.Background())
		assert.Equal(t, CodePriceParseError, ErrorCode(err))
		return nil
	})
	require.NoError(t, err)
}

func TestDashboardFlow_XLSXInputs(t *testing.T) {
	err := testingutil.TestWithWorkspace(func(ws *testingutil.TestWorkspace) error {
		fixtures := testingutil.NewTestFixtures(ws)
		records := [][]string{testingutil.ProductHeader}
		for _, r := range testingutil.SampleProducts() {
			records = append(records, r.Record())
		}
		productsPath, err := fixtures.WriteXLSX("products.xlsx", records)
		require.NoError(t, err)
		categoriesPath, err := fixtures.WriteXLSX("categories.xlsx", [][]string{
			testingutil.CategoryHeader, {"1", "Electronics & Accessories"}, {"2", "Home & Kitchen"},
		})
		require.NoError(t, err)

		flow := NewDashboardFlow(
			repository.NewFileTableSource(),
			repository.NewCSVTableSink(filepath.Join(ws.Dir, "out")),
			config.InputConfig{ProductsPath: productsPath, CategoriesPath: categoriesPath},
			defaultPipeline(),
			log.New(&bytes.Buffer{}, "", 0),
		)
		snapshot, err := flow.Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, snapshot.Schema.Facts, 3)
		assert.Len(t, snapshot.Schema.Categories, 2)
		return nil
	})
	require.NoError(t, err)
}
