package report

import (
	"errors"

	"gonum.org/v1/plot/vg"
)

// Plot kinds understood by the renderers.
const (
	KindLine    = "line"
	KindScatter = "scatter"
	KindHist    = "hist"
	KindHist2D  = "hist2d"
)

// Legend placements.
const (
	LegendRight  = "right"
	LegendCenter = "center"
	LegendNone   = "none"
)

// ErrNoData is returned when no series has a single drawable point.
var ErrNoData = errors.New("no drawable data")

// Series is one group of points drawn with a shared color and style.
type Series struct {
	Label string
	X, Y  []float64
	Color int     // palette index
	Style int     // dash pattern or glyph shape index
	Scale float64 // line width or marker size multiplier, 0 means 1
}

func (s Series) scale() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// Figure describes a static plot independently of the output format.
type Figure struct {
	Kind        string
	Title       string
	XLabel      string
	YLabel      string
	LegendTitle string
	Legend      string
	Series      []Series

	LogX, LogY bool
	XLim, YLim []float64 // [min, max]; empty keeps the data range

	Width, Height vg.Length
	LineWidth     float64 // points
	MarkerSize    float64 // points
	Alpha         float64 // 0 is treated as opaque
	Palette       string  // ColorBrewer name; empty uses the plotutil defaults
	Bins          int
	Fill          bool
}

// Default figure geometry.
const (
	DefaultWidth      = 6 * vg.Inch
	DefaultHeight     = 3 * vg.Inch
	DefaultLineWidth  = 1.5
	DefaultMarkerSize = 2
	DefaultBins       = 20
)
