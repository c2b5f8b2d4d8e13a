package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML writes fig as a self-contained interactive echarts page. Line and
// scatter figures are supported.
func (r *Renderer) WriteHTML(w io.Writer, fig Figure) error {
	fig = withDefaults(fig)

	xType, yType := "value", "value"
	if fig.LogX {
		xType = "log"
	}
	if fig.LogY {
		yType = "log"
	}
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Title,
			Width:     fmt.Sprintf("%.0fpx", fig.Width.Points()*4/3),
			Height:    fmt.Sprintf("%.0fpx", fig.Height.Points()*4/3),
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel, Type: xType, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: fig.YLabel, Type: yType, Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(fig.Legend != LegendNone), Top: "bottom"}),
	}

	drawn := 0
	switch fig.Kind {
	case KindLine:
		chart := charts.NewLine()
		chart.SetGlobalOptions(global...)
		for _, s := range fig.Series {
			pts, _ := points(s, fig.LogX, fig.LogY)
			if len(pts) == 0 {
				continue
			}
			data := make([]opts.LineData, len(pts))
			for i, pt := range pts {
				data[i] = opts.LineData{Value: []interface{}{pt.X, pt.Y}}
			}
			chart.AddSeries(s.Label, data)
			drawn++
		}
		if drawn == 0 {
			return ErrNoData
		}
		return chart.Render(w)
	case KindScatter:
		chart := charts.NewScatter()
		chart.SetGlobalOptions(global...)
		for _, s := range fig.Series {
			pts, _ := points(s, fig.LogX, fig.LogY)
			if len(pts) == 0 {
				continue
			}
			data := make([]opts.ScatterData, len(pts))
			for i, pt := range pts {
				data[i] = opts.ScatterData{Value: []interface{}{pt.X, pt.Y}}
			}
			chart.AddSeries(s.Label, data)
			drawn++
		}
		if drawn == 0 {
			return ErrNoData
		}
		return chart.Render(w)
	default:
		return fmt.Errorf("plot type %q has no html rendering", fig.Kind)
	}
}
