package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// histGrid is a two dimensional histogram. Bins without samples are NaN so
// they render transparent.
type histGrid struct {
	xs, ys []float64 // bin centres
	counts [][]float64
}

func (g *histGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g *histGrid) Z(c, r int) float64 { return g.counts[c][r] }
func (g *histGrid) X(c int) float64    { return g.xs[c] }
func (g *histGrid) Y(r int) float64    { return g.ys[r] }

// newHistGrid bins the points of every series into bins x bins cells.
func newHistGrid(series []Series, bins int) (*histGrid, error) {
	var xs, ys []float64
	for _, s := range series {
		pts, _ := points(s, false, false)
		for _, pt := range pts {
			xs = append(xs, pt.X)
			ys = append(ys, pt.Y)
		}
	}
	if len(xs) == 0 {
		return nil, ErrNoData
	}
	bins = max(bins, 2)

	xc, xlo, xw := binCentres(xs, bins)
	yc, ylo, yw := binCentres(ys, bins)
	counts := make([][]float64, bins)
	for c := range counts {
		counts[c] = make([]float64, bins)
	}
	for i := range xs {
		c := min(int((xs[i]-xlo)/xw), bins-1)
		r := min(int((ys[i]-ylo)/yw), bins-1)
		counts[c][r]++
	}
	for c := range counts {
		for r := range counts[c] {
			if counts[c][r] == 0 {
				counts[c][r] = math.NaN()
			}
		}
	}
	return &histGrid{xs: xc, ys: yc, counts: counts}, nil
}

// binCentres splits the range of vs into n equal bins and returns the bin
// centres, the lower edge and the bin width.
func binCentres(vs []float64, n int) ([]float64, float64, float64) {
	lo, hi := floats.Min(vs), floats.Max(vs)
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(n)
	centres := make([]float64, n)
	floats.Span(centres, lo+width/2, hi-width/2)
	return centres, lo, width
}

func (r *Renderer) addHist2D(p *plot.Plot, fig Figure) error {
	if fig.LogX || fig.LogY {
		return fmt.Errorf("log axes are not supported for %s plots", KindHist2D)
	}
	grid, err := newHistGrid(fig.Series, fig.Bins)
	if err != nil {
		return err
	}
	pal, err := heatPalette(fig.Palette)
	if err != nil {
		return err
	}
	hm := plotter.NewHeatMap(grid, pal)
	hm.NaN = color.Transparent
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)
	return nil
}
