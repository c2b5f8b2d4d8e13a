package report

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// addHist draws one histogram of the x values per series. Empty bins are
// dropped when the y axis is logarithmic.
func (r *Renderer) addHist(p *plot.Plot, fig Figure) error {
	colors, err := r.colors(fig)
	if err != nil {
		return err
	}
	if fig.LegendTitle != "" && fig.Legend != LegendNone {
		p.Legend.Add(fig.LegendTitle)
	}

	drawn := 0
	for _, s := range fig.Series {
		vals := make(plotter.Values, 0, len(s.X))
		for _, v := range s.X {
			if finite(v) && (!fig.LogX || v > 0) {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			r.logger.Debug("empty histogram series", zap.String("series", s.Label))
			continue
		}
		drawn++

		h, err := plotter.NewHist(vals, fig.Bins)
		if err != nil {
			return fmt.Errorf("failed to create histogram for %s: %w", s.Label, err)
		}
		c := colors[s.Color]
		h.LineStyle.Color = c
		h.LineStyle.Width = vg.Points(fig.LineWidth / 2)
		if fig.Fill {
			h.FillColor = withAlpha(c, 0.5)
		} else {
			h.FillColor = color.Transparent
		}
		if fig.LogY {
			h.LogY = true
			p.Y.Scale = plot.LogScale{}
			p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		}
		p.Add(h)
		if s.Label != "" && fig.Legend != LegendNone {
			p.Legend.Add(s.Label, h)
		}
	}
	if drawn == 0 {
		return ErrNoData
	}
	return nil
}
