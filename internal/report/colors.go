package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotutil"
)

// maxBrewerColors is the largest palette size any ColorBrewer scheme offers.
const maxBrewerColors = 12

// seriesColors returns n colors from the named ColorBrewer palette, cycling
// when the palette is smaller than n. Sequential palettes start very light, so
// the darkest n entries are used when the scheme allows it.
func seriesColors(name string, n int, alpha float64) ([]color.Color, error) {
	out := make([]color.Color, n)
	if name == "" {
		for i := range out {
			out[i] = withAlpha(plotutil.Color(i), alpha)
		}
		return out, nil
	}

	var colors []color.Color
	for k := min(max(n+2, 3), maxBrewerColors); k >= 3; k-- {
		p, err := brewer.GetPalette(brewer.TypeAny, name, k)
		if err == nil {
			colors = p.Colors()
			break
		}
	}
	if colors == nil {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	if len(colors) > n {
		colors = colors[len(colors)-n:]
	}
	for i := range out {
		out[i] = withAlpha(colors[i%len(colors)], alpha)
	}
	return out, nil
}

// heatPalette returns the palette used for two dimensional histograms.
func heatPalette(name string) (palette.Palette, error) {
	if name == "" {
		return palette.Heat(12, 1), nil
	}
	for k := maxBrewerColors; k >= 3; k-- {
		if p, err := brewer.GetPalette(brewer.TypeAny, name, k); err == nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown palette %q", name)
}

func withAlpha(c color.Color, alpha float64) color.Color {
	if alpha <= 0 || alpha >= 1 {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * alpha)
	return n
}
