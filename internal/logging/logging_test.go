package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/user/zcplot_go/internal/parser"
)

func testRun() Run {
	return Run{
		Version:    "abc123",
		Time:       time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
		Input:      "data/sweep.csv",
		Plot:       "replot",
		Ingest:     "Wave",
		KwargsFile: "style.kw",
		Kwargs:     []string{"x=time", "ys=1000"},
	}
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, err := NewLogger(verbose)
		require.NoError(t, err)
		assert.Equal(t, verbose, logger.Core().Enabled(zapcore.DebugLevel), "debug enabled")
	}
}

func TestWriteTo(t *testing.T) {
	tbl := parser.NewTable()
	require.NoError(t, tbl.AddColumn("x", []float64{0, 1}))

	var buf bytes.Buffer
	require.NoError(t, testRun().WriteTo(&buf, tbl))
	got := buf.String()

	want := "zcplot ver. abc123\n" +
		"Executed on 2024-03-05 at 14:07:09\n" +
		strings.Repeat("-", 80) + "\n\n" +
		"Input file: data/sweep.csv\n" +
		"Plot function: replot\n" +
		"Arguments:\n" +
		"    Data ingest type: Wave\n" +
		"    Verbose: false\n" +
		"    Interactive: false\n" +
		"    Export file: None\n" +
		"    External kwargs file: style.kw\n" +
		"kwargs:\n" +
		"    x=time\n" +
		"    ys=1000\n" +
		"\n"
	assert.True(t, strings.HasPrefix(got, want), got)
	assert.Contains(t, got, "[2 rows x 1 columns]")
}

func TestPath(t *testing.T) {
	r := testRun()
	assert.Equal(t, filepath.Join("logs", "2024-03-05T14:07:09.log"), Path("", "logs", r))
	assert.Empty(t, Path(Disabled, "logs", r))
	assert.Equal(t, filepath.FromSlash("out/run.log"), Path(`out\run.log`, "logs", r))
}

func TestAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.log")

	got, err := Append(path, testRun(), nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	_, err = Append(path, testRun(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "zcplot ver. abc123"), "entries are appended")

	_, err = Append(filepath.Join(dir, "missing", "run.log"), testRun(), nil)
	assert.Error(t, err)
}
