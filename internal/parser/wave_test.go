package parser

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCSV writes content to name inside a fresh temp dir and returns the path.
func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// tableData flattens a table for comparison.
func tableData(tbl *Table) map[string][]float64 {
	out := make(map[string][]float64)
	for _, n := range tbl.Names() {
		out[n], _ = tbl.Column(n)
	}
	return out
}

func assertTable(t *testing.T, tbl *Table, names []string, want map[string][]float64) {
	t.Helper()
	assert.Equal(t, names, tbl.Names())
	if diff := cmp.Diff(tableData(tbl), want, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("table mismatch (-got +want):\n%s", diff)
	}
}

func TestReshapeWaveSweep(t *testing.T) {
	path := writeCSV(t, "wave.csv",
		"time,/out (vdd=1.0) V,time.1,/out (vdd=1.2) V\n"+
			"0,1,0,4\n"+
			"1e-9,2,1e-9,5\n"+
			"2e-9,3,2e-9,6\n")

	tbl, err := ReshapeWave(path)
	require.NoError(t, err)
	assert.Equal(t, 6, tbl.NumRows())
	assertTable(t, tbl, []string{"x", "out", "vdd"}, map[string][]float64{
		"x":   {0, 1e-9, 2e-9, 0, 1e-9, 2e-9},
		"out": {1, 2, 3, 4, 5, 6},
		"vdd": {1.0, 1.0, 1.0, 1.2, 1.2, 1.2},
	})
}

func TestReshapeWaveSingleSeries(t *testing.T) {
	path := writeCSV(t, "single.csv",
		"/vout X,/vout Y\n"+
			"0,0.1\n"+
			"1,0.2\n"+
			"2,0.4\n")

	tbl, err := ReshapeWave(path)
	require.NoError(t, err)
	assertTable(t, tbl, []string{"x", "vout"}, map[string][]float64{
		"x":    {0, 1, 2},
		"vout": {0.1, 0.2, 0.4},
	})
}

func TestReshapeWaveTilesSeries(t *testing.T) {
	const n = 4
	header := "t"
	for i := 0; i < n; i++ {
		if i > 0 {
			header += ",t"
		}
		header += ",/sig (p=" + string(rune('1'+i)) + ") V"
	}
	path := writeCSV(t, "tiled.csv", header+"\n0,0,0,1,0,2,0,3\n5,10,5,11,5,12,5,13\n")

	tbl, err := ReshapeWave(path)
	require.NoError(t, err)
	assert.Equal(t, n*2, tbl.NumRows())

	x, _ := tbl.Column("x")
	assert.Equal(t, []float64{0, 5, 0, 5, 0, 5, 0, 5}, x)
	p, _ := tbl.Column("p")
	assert.Equal(t, []float64{1, 1, 2, 2, 3, 3, 4, 4}, p)
	sig, _ := tbl.Column("sig")
	assert.Equal(t, []float64{0, 10, 1, 11, 2, 12, 3, 13}, sig)
}

func TestReshapeWaveCollapsesSharedParameters(t *testing.T) {
	path := writeCSV(t, "shared.csv",
		"time,/out (vdd=1) V,time,/in (vdd=1) V\n"+
			"0,1,0,7\n"+
			"1,2,1,8\n")

	tbl, err := ReshapeWave(path)
	require.NoError(t, err)
	assertTable(t, tbl, []string{"x", "out", "vdd", "in"}, map[string][]float64{
		"x":   {0, 1},
		"out": {1, 2},
		"vdd": {1, 1},
		"in":  {7, 8},
	})
}

func TestReshapeWaveInterleavedSignals(t *testing.T) {
	path := writeCSV(t, "multi.csv",
		"t,/a (p=1) V,t,/a (p=2) V,t,/b (p=1) V,t,/b (p=2) V\n"+
			"0,1,0,2,0,3,0,4\n")

	tbl, err := ReshapeWave(path)
	require.NoError(t, err)
	assertTable(t, tbl, []string{"x", "a", "p", "b"}, map[string][]float64{
		"x": {0, 0},
		"a": {1, 2},
		"p": {1, 2},
		"b": {3, 4},
	})
}

func TestReshapeWaveUnevenParameters(t *testing.T) {
	path := writeCSV(t, "uneven.csv",
		"t,/a (p=1) V,t,/a (p=2,q=3) V\n"+
			"0,1,0,2\n")

	tbl, err := ReshapeWave(path)
	require.NoError(t, err)
	assertTable(t, tbl, []string{"x", "a", "p", "q"}, map[string][]float64{
		"x": {0, 0},
		"a": {1, 2},
		"p": {1, 2},
		"q": {math.NaN(), 3},
	})
}

func TestReshapeWaveMissingCell(t *testing.T) {
	path := writeCSV(t, "missing.csv", "t,/a V\n0,1\n1,\n")

	tbl, err := ReshapeWave(path)
	require.NoError(t, err)
	a, _ := tbl.Column("a")
	require.Len(t, a, 2)
	assert.True(t, math.IsNaN(a[1]))
}

func TestReshapeWaveErrors(t *testing.T) {
	t.Run("file type checked first", func(t *testing.T) {
		_, err := ReshapeWave(filepath.Join(t.TempDir(), "does-not-exist.txt"))
		assert.ErrorIs(t, err, ErrFileType)
	})

	t.Run("odd column count", func(t *testing.T) {
		path := writeCSV(t, "odd.csv", "t,/a V,t,/b V,t\n0,1,0,2,0\n")
		_, err := ReshapeWave(path)
		assert.ErrorIs(t, err, ErrStructuralMismatch)
	})

	t.Run("too few columns for the signals", func(t *testing.T) {
		path := writeCSV(t, "few.csv", "t\n0\n")
		_, err := ReshapeWave(path)
		assert.ErrorIs(t, err, ErrStructuralMismatch)
	})

	t.Run("block mixes signals", func(t *testing.T) {
		path := writeCSV(t, "mixed.csv", "t,/a V,t,/b V,t,/a V,t,/b V\n0,1,0,2,0,3,0,4\n")
		_, err := ReshapeWave(path)
		assert.ErrorIs(t, err, ErrStructuralMismatch)
	})

	t.Run("ragged rows", func(t *testing.T) {
		path := writeCSV(t, "ragged.csv", "t,/a V\n0,1\n1\n")
		_, err := ReshapeWave(path)
		assert.ErrorIs(t, err, ErrStructuralMismatch)
	})

	t.Run("unparsable cell", func(t *testing.T) {
		path := writeCSV(t, "bad.csv", "t,/a V\n0,1\n1,oops\n")
		_, err := ReshapeWave(path)
		var perr *ParseError
		require.True(t, errors.As(err, &perr), "want ParseError, got %v", err)
		assert.Equal(t, 3, perr.Row)
		assert.Equal(t, "/a V", perr.Column)
		assert.Equal(t, "oops", perr.Text)
	})

	t.Run("bad header parameter", func(t *testing.T) {
		path := writeCSV(t, "badhdr.csv", "t,/a (p=x) V\n0,1\n")
		_, err := ReshapeWave(path)
		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "want ParseError, got %v", err)
	})
}
