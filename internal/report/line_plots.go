package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Renderer turns figures into gonum plots.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer returns a renderer logging to logger; nil disables logging.
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger}
}

// Plot builds the gonum plot for fig.
func (r *Renderer) Plot(fig Figure) (*plot.Plot, error) {
	fig = withDefaults(fig)

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Add(plotter.NewGrid())

	var err error
	switch fig.Kind {
	case KindLine, KindScatter:
		err = r.addXY(p, fig)
	case KindHist:
		err = r.addHist(p, fig)
	case KindHist2D:
		err = r.addHist2D(p, fig)
	default:
		err = fmt.Errorf("unknown plot type %q", fig.Kind)
	}
	if err != nil {
		return nil, err
	}

	if fig.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if fig.LogY && fig.Kind != KindHist {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if len(fig.XLim) == 2 {
		p.X.Min, p.X.Max = fig.XLim[0], fig.XLim[1]
	}
	if len(fig.YLim) == 2 {
		p.Y.Min, p.Y.Max = fig.YLim[0], fig.YLim[1]
	}

	switch fig.Legend {
	case LegendCenter:
		p.Legend.Top = true
		p.Legend.Left = true
		p.Legend.XOffs = vg.Points(10)
	default:
		p.Legend.Top = true
	}
	return p, nil
}

// Save renders fig to path. The format follows the file extension.
func (r *Renderer) Save(fig Figure, path string) error {
	p, err := r.Plot(fig)
	if err != nil {
		return err
	}
	fig = withDefaults(fig)
	if err := p.Save(fig.Width, fig.Height, path); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", path, err)
	}
	r.logger.Debug("plot saved", zap.String("path", path), zap.String("kind", fig.Kind))
	return nil
}

// Render returns fig encoded in the given format (png, svg, pdf, ...).
func (r *Renderer) Render(fig Figure, format string) ([]byte, error) {
	p, err := r.Plot(fig)
	if err != nil {
		return nil, err
	}
	fig = withDefaults(fig)
	writer, err := p.WriterTo(fig.Width, fig.Height, strings.TrimPrefix(format, "."))
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// Format returns the output format implied by a file name.
func Format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func withDefaults(fig Figure) Figure {
	if fig.Kind == "" {
		fig.Kind = KindLine
	}
	if fig.Width <= 0 {
		fig.Width = DefaultWidth
	}
	if fig.Height <= 0 {
		fig.Height = DefaultHeight
	}
	if fig.LineWidth <= 0 {
		fig.LineWidth = DefaultLineWidth
	}
	if fig.MarkerSize <= 0 {
		fig.MarkerSize = DefaultMarkerSize
	}
	if fig.Bins <= 0 {
		fig.Bins = DefaultBins
	}
	return fig
}

func (r *Renderer) colors(fig Figure) ([]color.Color, error) {
	n := 1
	for _, s := range fig.Series {
		n = max(n, s.Color+1)
	}
	return seriesColors(fig.Palette, n, fig.Alpha)
}

// points returns the drawable points of s. NaN and infinite values are
// skipped, as are non-positive values on a log axis.
func points(s Series, logX, logY bool) (plotter.XYs, int) {
	pts := make(plotter.XYs, 0, len(s.X))
	skipped := 0
	for i, n := 0, min(len(s.X), len(s.Y)); i < n; i++ {
		x, y := s.X[i], s.Y[i]
		if !finite(x) || !finite(y) || (logX && x <= 0) || (logY && y <= 0) {
			skipped++
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts, skipped
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (r *Renderer) addXY(p *plot.Plot, fig Figure) error {
	colors, err := r.colors(fig)
	if err != nil {
		return err
	}
	if fig.LegendTitle != "" && fig.Legend != LegendNone {
		p.Legend.Add(fig.LegendTitle)
	}

	drawn := 0
	for _, s := range fig.Series {
		pts, skipped := points(s, fig.LogX, fig.LogY)
		if skipped > 0 {
			r.logger.Debug("skipped points", zap.String("series", s.Label), zap.Int("count", skipped))
		}
		if len(pts) == 0 {
			continue
		}
		drawn++

		var thumb plot.Thumbnailer
		if fig.Kind == KindScatter {
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return fmt.Errorf("failed to create scatter for %s: %w", s.Label, err)
			}
			sc.GlyphStyle.Color = colors[s.Color]
			sc.GlyphStyle.Radius = vg.Points(fig.MarkerSize * s.scale())
			sc.GlyphStyle.Shape = plotutil.Shape(s.Style)
			p.Add(sc)
			thumb = sc
		} else {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("failed to create line for %s: %w", s.Label, err)
			}
			line.Color = colors[s.Color]
			line.LineStyle.Width = vg.Points(fig.LineWidth * s.scale())
			line.LineStyle.Dashes = plotutil.Dashes(s.Style)
			p.Add(line)
			thumb = line
		}
		if s.Label != "" && fig.Legend != LegendNone {
			p.Legend.Add(s.Label, thumb)
		}
	}
	if drawn == 0 {
		return ErrNoData
	}
	return nil
}
