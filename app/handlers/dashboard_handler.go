package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/amirphl/product-analytics-dashboard/app/dto"
	"github.com/amirphl/product-analytics-dashboard/config"
	"github.com/gofiber/fiber/v3"
)

// CDN assets loaded by the page
const (
	BootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
	PlotlyJS     = "https://cdn.plot.ly/plotly-2.35.2.min.js"
)

// DashboardHandlerInterface defines the contract for the dashboard page handler
type DashboardHandlerInterface interface {
	Index(c fiber.Ctx) error
}

// DashboardHandler serves a page rendered once at startup
type DashboardHandler struct {
	page []byte
}

// DashboardView is the data the page template renders
type DashboardView struct {
	Title           string
	Heading         string
	BootstrapCSS    string
	PlotlyJS        string
	Rows            [][]ChartView
	BoughtLastMonth int
	GeneratedAt     string
	RunID           string
}

type ChartView struct {
	ID     string
	Figure dto.PlotlyFigure
}

// NewDashboardHandler renders the page for the given charts. Charts are laid
// out two per row in the order given.
func NewDashboardHandler(page config.DashboardPage, charts []dto.BarChart, boughtLastMonth int, runID string, generatedAt time.Time) (*DashboardHandler, error) {
	view := DashboardView{
		Title:           page.Title,
		Heading:         page.Heading,
		BootstrapCSS:    BootstrapCSS,
		PlotlyJS:        PlotlyJS,
		BoughtLastMonth: boughtLastMonth,
		GeneratedAt:     generatedAt.UTC().Format(time.RFC3339),
		RunID:           runID,
	}
	for i := 0; i < len(charts); i += 2 {
		row := []ChartView{{ID: charts[i].ID, Figure: charts[i].Figure()}}
		if i+1 < len(charts) {
			row = append(row, ChartView{ID: charts[i+1].ID, Figure: charts[i+1].Figure()})
		}
		view.Rows = append(view.Rows, row)
	}

	html, err := renderDashboard(view)
	if err != nil {
		return nil, err
	}

	log.Printf("Dashboard page rendered: %d charts, %d bytes", len(charts), len(html))
	return &DashboardHandler{page: html}, nil
}

// Index serves the dashboard page
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(h.page)
}

// Page returns the rendered page
func (h *DashboardHandler) Page() []byte {
	return h.page
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

func renderDashboard(view DashboardView) ([]byte, error) {
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator-run" content="{{.RunID}}">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.BootstrapCSS}}">
<script src="{{.PlotlyJS}}"></script>
</head>
<body>
<div class="container-fluid">
<h1 class="text-center my-4">{{.Heading}}</h1>
{{range .Rows}}<div class="row">
{{range .}}<div class="col-md-6"><div id="{{.ID}}"></div></div>
{{end}}</div>
{{end}}<div class="row justify-content-center my-4">
<div class="col-md-4">
<div class="card text-center bg-light">
<div class="card-body">
<h4 class="card-title">Products Bought Last Month</h4>
<h2 class="card-text text-success" id="bought-last-month">{{.BoughtLastMonth}}</h2>
</div>
</div>
</div>
</div>
<p class="text-center text-muted small">Generated {{.GeneratedAt}}</p>
</div>
<script>
{{range .Rows}}{{range .}}(function () {
  var fig = {{.Figure}};
  Plotly.newPlot({{.ID}}, fig.data, fig.layout, {responsive: true});
})();
{{end}}{{end}}</script>
</body>
</html>
`
