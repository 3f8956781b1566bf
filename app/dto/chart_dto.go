package dto

// BarChart describes one bar chart independently of the drawing toolkit
type BarChart struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	XLabel     string     `json:"x_label"`
	YLabel     string     `json:"y_label"`
	Color      string     `json:"color"`
	TickAngle  *int       `json:"tick_angle,omitempty"`
	Categories []string   `json:"categories"`
	Values     []*float64 `json:"values"`
	HoverLabel string     `json:"hover_label,omitempty"`
	Hover      []string   `json:"hover,omitempty"`
}

// PlotlyFigure is the figure document handed to Plotly.newPlot
type PlotlyFigure struct {
	Data   []PlotlyTrace `json:"data"`
	Layout PlotlyLayout  `json:"layout"`
}

type PlotlyTrace struct {
	Type          string       `json:"type"`
	X             []string     `json:"x"`
	Y             []*float64   `json:"y"`
	Marker        PlotlyMarker `json:"marker"`
	CustomData    []string     `json:"customdata,omitempty"`
	HoverTemplate string       `json:"hovertemplate"`
}

type PlotlyMarker struct {
	Color string `json:"color"`
}

type PlotlyLayout struct {
	Title  PlotlyText `json:"title"`
	XAxis  PlotlyAxis `json:"xaxis"`
	YAxis  PlotlyAxis `json:"yaxis"`
	Margin PlotlyBox  `json:"margin"`
}

type PlotlyText struct {
	Text string `json:"text"`
}

type PlotlyAxis struct {
	Title     PlotlyText `json:"title"`
	Type      string     `json:"type,omitempty"`
	TickAngle *int       `json:"tickangle,omitempty"`
}

type PlotlyBox struct {
	T int `json:"t"`
	B int `json:"b"`
}

// Figure converts the chart into a plotly bar figure
func (c BarChart) Figure() PlotlyFigure {
	hover := c.XLabel + "=%{x}<br>" + c.YLabel + "=%{y}"
	if c.HoverLabel != "" && len(c.Hover) > 0 {
		hover += "<br>" + c.HoverLabel + "=%{customdata}"
	}
	hover += "<extra></extra>"

	trace := PlotlyTrace{
		Type:          "bar",
		X:             c.Categories,
		Y:             c.Values,
		Marker:        PlotlyMarker{Color: c.Color},
		HoverTemplate: hover,
	}
	if c.HoverLabel != "" {
		trace.CustomData = c.Hover
	}

	return PlotlyFigure{
		Data: []PlotlyTrace{trace},
		Layout: PlotlyLayout{
			Title:  PlotlyText{Text: c.Title},
			XAxis:  PlotlyAxis{Title: PlotlyText{Text: c.XLabel}, Type: "category", TickAngle: c.TickAngle},
			YAxis:  PlotlyAxis{Title: PlotlyText{Text: c.YLabel}},
			Margin: PlotlyBox{T: 60, B: 120},
		},
	}
}
