package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/product-analytics-dashboard/app/dto"
	"github.com/amirphl/product-analytics-dashboard/config"
	"github.com/amirphl/product-analytics-dashboard/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCharts() []dto.BarChart {
	return []dto.BarChart{
		{ID: "best-sellers", Title: "Top 10 Best Sellers", XLabel: "Product Title", YLabel: "Review Count", Color: "teal",
			Categories: []string{"Kettle <b>"}, Values: []*float64{utils.ToPtr(120.0)}},
		{ID: "top-rated", Title: "Top Rated", Color: "indigo"},
		{ID: "category-counts", Title: "Top Categories by Product Count", Color: "#636efa"},
	}
}

func TestNewDashboardHandler_RendersPage(t *testing.T) {
	page := config.DashboardPage{Title: "Amazon Product Dashboard", Heading: "Amazon Product Analytics Dashboard"}
	generated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	h, err := NewDashboardHandler(page, sampleCharts(), 42, "run-1", generated)
	require.NoError(t, err)

	html := string(h.Page())
	assert.Contains(t, html, "<title>Amazon Product Dashboard</title>")
	assert.Contains(t, html, `<h1 class="text-center my-4">Amazon Product Analytics Dashboard</h1>`)
	assert.Contains(t, html, BootstrapCSS)
	assert.Contains(t, html, PlotlyJS)
	assert.Contains(t, html, "Products Bought Last Month")
	assert.Contains(t, html, `id="bought-last-month">42</h2>`)
	assert.Contains(t, html, "2026-01-02T03:04:05Z")
	assert.Equal(t, 3, strings.Count(html, "Plotly.newPlot("))
	assert.Equal(t, 2, strings.Count(html, `<div class="row">`))
	assert.Contains(t, html, `"hovertemplate"`)
	// chart labels are escaped inside the script block
	assert.NotContains(t, html, "Kettle <b>")
}

func TestDashboardHandler_Index(t *testing.T) {
	h, err := NewDashboardHandler(config.DashboardPage{Title: "T", Heading: "H"}, sampleCharts(), 0, "run-1", time.Now())
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", h.Index)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, h.Page(), body)
}
