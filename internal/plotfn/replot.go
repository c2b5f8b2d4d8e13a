package plotfn

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/vg"

	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/parser"
	"github.com/user/zcplot_go/internal/report"
)

const replotUsage = `replot INPUT [kwargs]
Data
    x=str           x column (default: x, else the first column)
    y=str           y column (default: the second column)
    hue=str      h  color groups by this column
    style=str    s  dash/marker groups by this column
    size=str        width groups by this column
    xscale=float xs rescale x (default: 1)
    yscale=float ys rescale y (default: 1)
    hscale=float hs rescale hue (default: 1)
    sscale=float ss rescale style (default: 1)
Figure
    figsize=tuple fs figure size in inches (default: 6,3)
    title=str       figure title (default: none)
    xlabel=str   xl x axis label (default: x)
    ylabel=str   yl y axis label (default: y)
    ltitle=str   lt legend title (default: hue or hue/style; none hides it)
    logx=bool    lx log scale x axis (default: false)
    logy=bool    ly log scale y axis (default: false)
    bbox=str     bb legend position: right, center or none (default: right)
    xlim=tuple      x axis range (default: data range)
    ylim=tuple      y axis range (default: data range)
Drawing
    width=float  w  line width or marker radius in points
    alpha=float  a  opacity (default: 0.8)
    palette=str  c  ColorBrewer palette (default: YlGnBu)
    ptype=str    pt line, scatter, hist or hist2d (default: line)
    bins=int        histogram bins (default: 10)
    fill=bool       fill histogram bars (default: true)
File
    filetype=str ft svg, png, pdf, eps, tif or jpg (default: svg)
    filename=str fn output file without extension`

// ReplotConfig holds the kwargs of the generic plot.
type ReplotConfig struct {
	X      string  `kw:"x"`
	Y      string  `kw:"y"`
	Hue    string  `kw:"hue,h"`
	Style  string  `kw:"style,s"`
	Size   string  `kw:"size"`
	XScale float64 `kw:"xscale,xs"`
	YScale float64 `kw:"yscale,ys"`
	HScale float64 `kw:"hscale,hs"`
	SScale float64 `kw:"sscale,ss"`

	FigSize []float64 `kw:"figsize,fs"`
	Title   string    `kw:"title"`
	XLabel  string    `kw:"xlabel,xl"`
	YLabel  string    `kw:"ylabel,yl"`
	LTitle  string    `kw:"ltitle,lt"`
	LogX    bool      `kw:"logx,lx"`
	LogY    bool      `kw:"logy,ly"`
	BBox    string    `kw:"bbox,bb"`
	XLim    []float64 `kw:"xlim"`
	YLim    []float64 `kw:"ylim"`

	Width   *float64 `kw:"width,w"`
	Alpha   float64  `kw:"alpha,a"`
	Palette string   `kw:"palette,c"`
	PType   string   `kw:"ptype,pt"`
	Bins    int      `kw:"bins"`
	Fill    bool     `kw:"fill"`

	FileType string `kw:"filetype,ft"`
	FileName string `kw:"filename,fn"`
	Time     string `kw:"time"`
}

// DefaultReplotConfig returns the replot defaults. Empty X and Y are resolved
// against the table.
func DefaultReplotConfig() ReplotConfig {
	return ReplotConfig{
		XScale:   1,
		YScale:   1,
		HScale:   1,
		SScale:   1,
		FigSize:  []float64{6, 3},
		BBox:     report.LegendRight,
		Alpha:    0.8,
		Palette:  "YlGnBu",
		PType:    report.KindLine,
		Bins:     10,
		Fill:     true,
		FileType: "svg",
	}
}

// Replot draws y against x, one series per hue/style/size group, and saves
// the figure.
func Replot(env *Env, tbl *parser.Table, args kwargs.List) error {
	cfg := DefaultReplotConfig()
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	fig, err := cfg.Figure(tbl)
	if err != nil {
		return err
	}

	path, ok := env.target(cfg.FileName, cfg.Y, cfg.Time, strings.ToLower(cfg.FileType))
	if !ok {
		env.printf("Skipped: %s\n", path)
		return nil
	}
	if err := env.Renderer.Save(fig, path); err != nil {
		return err
	}
	env.reportOutput(path)
	return nil
}

// resolve fills the default x and y columns and checks every named column.
func (c *ReplotConfig) resolve(tbl *parser.Table) error {
	names := tbl.Names()
	if c.X == "" {
		switch {
		case tbl.Has("x"):
			c.X = "x"
		case len(names) > 0:
			c.X = names[0]
		}
	}
	if c.Y == "" && len(names) > 1 {
		c.Y = names[1]
	}
	for _, name := range []string{c.X, c.Y} {
		if !tbl.Has(name) {
			return fmt.Errorf("no column %q", name)
		}
	}
	for _, name := range []string{c.Hue, c.Style, c.Size} {
		if name != "" && !tbl.Has(name) {
			return fmt.Errorf("no column %q", name)
		}
	}
	if c.XLabel == "" {
		c.XLabel = c.X
	}
	if c.YLabel == "" {
		c.YLabel = c.Y
	}
	if c.LTitle == "" {
		c.LTitle = c.Hue
		if c.Style != "" {
			c.LTitle = c.Hue + "/" + c.Style
		}
	}
	if strings.EqualFold(c.LTitle, "none") {
		c.LTitle = ""
	}
	return nil
}

// Figure resolves the default columns and labels of c against tbl and builds
// the figure. The table is left untouched.
func (c *ReplotConfig) Figure(tbl *parser.Table) (report.Figure, error) {
	if err := c.resolve(tbl); err != nil {
		return report.Figure{}, err
	}
	kind := strings.ToLower(c.PType)
	switch kind {
	case report.KindLine, report.KindScatter, report.KindHist, report.KindHist2D:
	default:
		return report.Figure{}, fmt.Errorf("unsupported plot type %q", c.PType)
	}
	if len(c.FigSize) != 2 || c.FigSize[0] <= 0 || c.FigSize[1] <= 0 {
		return report.Figure{}, fmt.Errorf("figsize must be two positive numbers, got %v", c.FigSize)
	}
	for name, lim := range map[string][]float64{"xlim": c.XLim, "ylim": c.YLim} {
		if lim != nil && len(lim) != 2 {
			return report.Figure{}, fmt.Errorf("%s must be two numbers, got %v", name, lim)
		}
	}

	x := scaled(tbl, c.X, c.XScale)
	y := scaled(tbl, c.Y, c.YScale)
	hue := scaled(tbl, c.Hue, c.HScale)
	style := scaled(tbl, c.Style, c.SScale)
	size := scaled(tbl, c.Size, 1)

	fig := report.Figure{
		Kind:        kind,
		Title:       c.Title,
		XLabel:      c.XLabel,
		YLabel:      c.YLabel,
		LegendTitle: c.LTitle,
		Legend:      strings.ToLower(c.BBox),
		LogX:        c.LogX,
		LogY:        c.LogY,
		XLim:        c.XLim,
		YLim:        c.YLim,
		Width:       vg.Length(c.FigSize[0]) * vg.Inch,
		Height:      vg.Length(c.FigSize[1]) * vg.Inch,
		Alpha:       c.Alpha,
		Palette:     c.Palette,
		Bins:        c.Bins,
		Fill:        c.Fill,
	}
	if c.Hue == "" && c.Style == "" {
		fig.Legend = report.LegendNone
	}
	if c.Width != nil {
		fig.LineWidth = *c.Width
		fig.MarkerSize = *c.Width
	}

	for _, g := range groupRows(tbl.NumRows(), hue, style, size) {
		s := report.Series{
			Label: g.label,
			Color: g.hue,
			Style: g.style,
			Scale: g.scale,
			X:     pick(x, g.rows),
			Y:     pick(y, g.rows),
		}
		if kind == report.KindLine {
			s.X, s.Y = meanByX(s.X, s.Y)
		}
		fig.Series = append(fig.Series, s)
	}
	return fig, nil
}

// scaled returns a copy of the named column multiplied by factor, or nil for
// an empty name.
func scaled(tbl *parser.Table, name string, factor float64) []float64 {
	if name == "" {
		return nil
	}
	col, _ := tbl.Column(name)
	if factor != 1 {
		for i := range col {
			col[i] *= factor
		}
	}
	return col
}

func pick(col []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = col[r]
	}
	return out
}

// levels ranks the distinct values of col in ascending order, missing last.
func levels(col []float64) (map[string]int, int) {
	if col == nil {
		return nil, 1
	}
	seen := make(map[string]float64)
	for _, v := range col {
		seen[parser.FormatValue(v)] = v
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := seen[keys[i]], seen[keys[j]]
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a < b
	})
	rank := make(map[string]int, len(keys))
	for i, k := range keys {
		rank[k] = i
	}
	return rank, len(keys)
}

type rowGroup struct {
	label      string
	hue, style int
	scale      float64
	rows       []int
}

// groupRows splits the row indices by their hue, style and size values.
// Groups come out ordered by hue, then style, then size.
func groupRows(n int, hue, style, size []float64) []*rowGroup {
	hueRank, _ := levels(hue)
	styleRank, _ := levels(style)
	sizeRank, sizes := levels(size)

	key := func(col []float64, r int) string {
		if col == nil {
			return ""
		}
		return parser.FormatValue(col[r])
	}
	display := func(k string) string {
		if k == "" {
			return "nan"
		}
		return k
	}

	groups := make(map[[3]string]*rowGroup)
	var order []*rowGroup
	for r := 0; r < n; r++ {
		k := [3]string{key(hue, r), key(style, r), key(size, r)}
		g, ok := groups[k]
		if !ok {
			g = &rowGroup{hue: hueRank[k[0]], style: styleRank[k[1]], scale: 1}
			var parts []string
			for i, col := range [][]float64{hue, style, size} {
				if col != nil {
					parts = append(parts, display(k[i]))
				}
			}
			g.label = strings.Join(parts, ", ")
			if size != nil && sizes > 1 {
				g.scale = 1 + float64(sizeRank[k[2]])/float64(sizes-1)
			}
			groups[k] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, r)
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.hue != b.hue {
			return a.hue < b.hue
		}
		if a.style != b.style {
			return a.style < b.style
		}
		return a.scale < b.scale
	})
	return order
}

// meanByX sorts the points by x and averages the y values sharing an x.
// Missing x values are dropped; missing y values are left out of the mean.
func meanByX(xs, ys []float64) ([]float64, []float64) {
	byX := make(map[float64][]float64)
	var keys []float64
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if _, ok := byX[x]; !ok {
			keys = append(keys, x)
			byX[x] = nil
		}
		if !math.IsNaN(ys[i]) {
			byX[x] = append(byX[x], ys[i])
		}
	}
	sort.Float64s(keys)
	outY := make([]float64, len(keys))
	for i, k := range keys {
		if vals := byX[k]; len(vals) > 0 {
			outY[i] = stat.Mean(vals, nil)
		} else {
			outY[i] = math.NaN()
		}
	}
	return keys, outY
}
