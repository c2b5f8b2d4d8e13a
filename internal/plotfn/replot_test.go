package plotfn

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/report"
)

func TestMeanByX(t *testing.T) {
	xs, ys := meanByX(
		[]float64{2, 1, 2, math.NaN(), 3},
		[]float64{4, 1, 6, 9, math.NaN()},
	)
	assert.Equal(t, []float64{1, 2, 3}, xs)
	if diff := cmp.Diff(ys, []float64{1, 5, math.NaN()}, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("mean mismatch (-got +want):\n%s", diff)
	}
}

func TestGroupRows(t *testing.T) {
	hue := []float64{1.2, 1.1, 1.2, math.NaN()}
	style := []float64{0, 0, 1, 0}

	groups := groupRows(4, hue, style, nil)
	require.Len(t, groups, 4)

	var labels []string
	for _, g := range groups {
		labels = append(labels, g.label)
	}
	assert.Equal(t, []string{"1.1, 0", "1.2, 0", "1.2, 1", "nan, 0"}, labels)
	assert.Equal(t, []int{1}, groups[0].rows)
	assert.Equal(t, 1, groups[1].hue)
	assert.Equal(t, 1, groups[2].style)
	assert.Equal(t, 2, groups[3].hue)

	single := groupRows(3, nil, nil, nil)
	require.Len(t, single, 1)
	assert.Equal(t, []int{0, 1, 2}, single[0].rows)
	assert.Empty(t, single[0].label)

	sized := groupRows(2, nil, nil, []float64{1, 2})
	assert.Equal(t, 1.0, sized[0].scale)
	assert.Equal(t, 2.0, sized[1].scale)
}

func TestReplotFigure(t *testing.T) {
	tbl := newTable(t,
		"x", []float64{0, 1, 0, 1},
		"vout", []float64{0, 1, 0, 2},
		"vdd", []float64{1, 1, 2, 2},
	)

	t.Run("defaults", func(t *testing.T) {
		cfg := DefaultReplotConfig()
		fig, err := cfg.Figure(tbl)
		require.NoError(t, err)
		assert.Equal(t, "x", cfg.X)
		assert.Equal(t, "vout", cfg.Y)
		assert.Equal(t, report.LegendNone, fig.Legend)
		require.Len(t, fig.Series, 1)
		// repeated x values are averaged on line plots
		assert.Equal(t, []float64{0, 1}, fig.Series[0].X)
		assert.Equal(t, []float64{0, 1.5}, fig.Series[0].Y)
	})

	t.Run("hue and scaling", func(t *testing.T) {
		cfg := DefaultReplotConfig()
		require.NoError(t, kwargs.Decode(kwargs.List{"h=vdd", "ys=1000", "pt=scatter", "fs=4,2"}, &cfg))
		fig, err := cfg.Figure(tbl)
		require.NoError(t, err)
		assert.Equal(t, "vdd", fig.LegendTitle)
		assert.Equal(t, report.LegendRight, fig.Legend)
		require.Len(t, fig.Series, 2)
		assert.Equal(t, "2", fig.Series[1].Label)
		assert.Equal(t, []float64{0, 2000}, fig.Series[1].Y)
		assert.Equal(t, 1, fig.Series[1].Color)

		v, _ := tbl.Column("vout")
		assert.Equal(t, []float64{0, 1, 0, 2}, v, "table is not modified")
	})

	t.Run("errors", func(t *testing.T) {
		for _, args := range []kwargs.List{
			{"y=missing"},
			{"hue=missing"},
			{"pt=kde"},
			{"fs=6"},
			{"xlim=1,2,3"},
		} {
			cfg := DefaultReplotConfig()
			require.NoError(t, kwargs.Decode(args, &cfg))
			_, err := cfg.Figure(tbl)
			assert.Error(t, err, "%v", args)
		}
	})
}

func TestReplot(t *testing.T) {
	env, out := newEnv(t)
	tbl := newTable(t,
		"x", []float64{0, 1, 2},
		"/vout", []float64{0, 1, 4},
	)

	require.NoError(t, Replot(env, tbl, kwargs.List{"time=stamp", "ft=png"}))
	path := filepath.Join(env.PlotDir, "-vout_stamp.png")
	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Output: ")
	assert.Contains(t, out.String(), "-vout_stamp.png")

	custom := filepath.Join(t.TempDir(), "custom")
	require.NoError(t, Replot(env, tbl, kwargs.List{"fn=" + custom, "logy=true"}))
	_, err = os.Stat(custom + ".svg")
	assert.NoError(t, err)

	env.Confirm = func(string) bool { return false }
	out.Reset()
	require.NoError(t, Replot(env, tbl, kwargs.List{"fn=" + custom}))
	assert.Contains(t, out.String(), "Skipped: ")
}
