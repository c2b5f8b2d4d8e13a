package parser

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("x", []float64{0, 1, 2, 3}))
	require.NoError(t, tbl.AddColumn("y", []float64{10, math.NaN(), 30, 40}))
	return tbl
}

func TestTableColumns(t *testing.T) {
	tbl := sampleTable(t)
	assert.Equal(t, 4, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.True(t, tbl.Has("y"))
	assert.False(t, tbl.Has("z"))

	assert.Error(t, tbl.AddColumn("x", []float64{0, 0, 0, 0}), "duplicate name")
	assert.Error(t, tbl.AddColumn("z", []float64{0}), "length mismatch")

	col, ok := tbl.Column("x")
	require.True(t, ok)
	col[0] = 99
	again, _ := tbl.Column("x")
	assert.Equal(t, 0.0, again[0], "Column must return a copy")

	require.NoError(t, tbl.Rename("y", "out"))
	assert.Equal(t, []string{"x", "out"}, tbl.Names())
	assert.Error(t, tbl.Rename("missing", "a"))

	require.NoError(t, tbl.SetColumn("x", []float64{4, 5, 6, 7}))
	assert.Equal(t, 4.0, tbl.Row(0)[0])
}

func TestTableSelectFilter(t *testing.T) {
	tbl := sampleTable(t)

	sel, err := tbl.Select("y", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, sel.Names())
	_, err = tbl.Select("nope")
	assert.Error(t, err)

	x, _ := tbl.Column("x")
	even := tbl.Filter(func(r int) bool { return int(x[r])%2 == 0 })
	got, _ := even.Column("y")
	assert.Equal(t, []float64{10, 30}, got)
	assert.Equal(t, 4, tbl.NumRows(), "filter leaves the source intact")
}

func TestTableDropEmptyColumns(t *testing.T) {
	tbl := sampleTable(t)
	require.NoError(t, tbl.AddColumn("empty", []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()}))
	tbl.dropEmptyColumns()
	assert.Equal(t, []string{"x", "y"}, tbl.Names())
	assert.False(t, tbl.Has("empty"))
}

func TestTableWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable(t).WriteCSV(&buf))
	assert.Equal(t, "x,y\n0,10\n1,\n2,30\n3,40\n", buf.String())
}

func TestTableFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable(t).Fprint(&buf, 2))
	out := buf.String()

	assert.Contains(t, out, "...")
	assert.Contains(t, out, "[4 rows x 2 columns]")
	assert.NotContains(t, out, "NaN", "row 1 is elided")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6) // header, row 0, dots, row 3, blank, summary

	buf.Reset()
	require.NoError(t, NewTable().Fprint(&buf, 0))
	assert.Equal(t, "Empty table\n", buf.String())
}
