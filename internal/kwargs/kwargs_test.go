package kwargs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	p, err := Split("hue = vdd")
	require.NoError(t, err)
	assert.Equal(t, Pair{Key: "hue", Value: "vdd"}, p)

	p, err = Split("y=a=b")
	require.NoError(t, err)
	assert.Equal(t, "a=b", p.Value)

	_, err = Split("novalue")
	assert.Error(t, err)
	_, err = Split("=1")
	assert.Error(t, err)
}

func TestListGetAndMerge(t *testing.T) {
	l := List{"x=time", "h=vdd", "y=out", "hue=temp"}

	v, ok := l.Get("hue", "h")
	require.True(t, ok)
	assert.Equal(t, "temp", v)

	_, ok = l.Get("style", "s")
	assert.False(t, ok)

	merged, err := l.With("x=t2").Merged()
	require.NoError(t, err)
	want := []Pair{{"x", "t2"}, {"h", "vdd"}, {"y", "out"}, {"hue", "temp"}}
	if diff := cmp.Diff(merged, want); diff != "" {
		t.Errorf("Merged mismatch (-got +want):\n%s", diff)
	}

	assert.Equal(t, List{"time=1", "x=time"}, List{"x=time"}.Prepend("time=1"))
	assert.Equal(t, List{"x=time", "pt=scatter"}, List{"bins=vin", "x=time", "fs=1M", "pt=scatter"}.Without("bins", "fs"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.kw")
	content := "# generated\n" +
		"\n" +
		"x = time\n" +
		"  ylabel   =   Output voltage [V]\n" +
		"fn=out\n" +
		"empty =\n" +
		"# trailing comment\n" +
		"last = 1"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, List{"x=time", "ylabel=Output voltage [V]", "fn=out", "empty=", "last=1"}, got)

	t.Run("missing assignment", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.kw")
		require.NoError(t, os.WriteFile(bad, []byte("x time\n"), 0o644))
		_, err := Load(bad)
		assert.ErrorContains(t, err, "parse error")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.kw"))
		assert.Error(t, err)
	})
}

func TestParseLine(t *testing.T) {
	got, err := ParseLine("  hue   =  vdd ")
	require.NoError(t, err)
	assert.Equal(t, List{"hue=vdd"}, got)

	got, err = ParseLine("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	l := List{"x=time", "y=out", "x=t", "time=2024-03-05T14:07:09"}
	require.NoError(t, Export(&buf, l, "abc123", now))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "# zcplot ver. abc123", lines[0])
	assert.Equal(t, "# Automatically generated on 2024-03-05 at 14:07:09", lines[1])
	assert.Equal(t, strings.Repeat("#", 80), lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "x = t", lines[4])

	path := filepath.Join(t.TempDir(), "export.kw")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, List{"x=t", "y=out", "time=2024-03-05T14:07:09"}, back)

	assert.Error(t, Export(&bytes.Buffer{}, List{"broken"}, "v", now))
}
