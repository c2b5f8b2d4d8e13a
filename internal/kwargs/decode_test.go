package kwargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	X       string    `kw:"x"`
	Hue     string    `kw:"hue,h"`
	LogX    bool      `kw:"logx,lx"`
	Bins    int       `kw:"bins"`
	Alpha   float64   `kw:"alpha,a"`
	Figsize []float64 `kw:"figsize,fs"`
	Y       []string  `kw:"y"`
	Width   *float64  `kw:"width,w"`
	Ignored string
}

func TestDecode(t *testing.T) {
	cfg := sampleConfig{X: "x", Alpha: 0.8, Figsize: []float64{6, 3}}
	err := Decode(List{
		"h=vdd",
		"lx=true",
		"bins=20",
		"a=0.5",
		"fs=(8, 4)",
		"y=[out, in]",
		"w=2m",
		"unknown=1",
	}, &cfg)
	require.NoError(t, err)

	assert.Equal(t, "x", cfg.X, "untouched default")
	assert.Equal(t, "vdd", cfg.Hue)
	assert.True(t, cfg.LogX)
	assert.Equal(t, 20, cfg.Bins)
	assert.Equal(t, 0.5, cfg.Alpha)
	assert.Equal(t, []float64{8, 4}, cfg.Figsize)
	assert.Equal(t, []string{"out", "in"}, cfg.Y)
	require.NotNil(t, cfg.Width)
	assert.InDelta(t, 2e-3, *cfg.Width, 1e-15)
}

func TestDecodeLastWins(t *testing.T) {
	var cfg sampleConfig
	require.NoError(t, Decode(List{"hue=a", "h=b"}, &cfg))
	assert.Equal(t, "b", cfg.Hue)

	w := 1.0
	cfg.Width = &w
	require.NoError(t, Decode(List{"width=none"}, &cfg))
	assert.Nil(t, cfg.Width)
}

func TestDecodeErrors(t *testing.T) {
	var cfg sampleConfig
	assert.ErrorContains(t, Decode(List{"logx=maybe"}, &cfg), "logx")
	assert.Error(t, Decode(List{"bins=2.5"}, &cfg))
	assert.Error(t, Decode(List{"alpha=x"}, &cfg))
	assert.Error(t, Decode(List{"noequals"}, &cfg))
	assert.Error(t, Decode(List{}, cfg), "non-pointer target")
}

func TestParseFloat(t *testing.T) {
	for in, want := range map[string]float64{
		"50e6": 50e6,
		"50M":  50e6,
		"9n":   9e-9,
		" 1.5": 1.5,
	} {
		got, err := ParseFloat(in)
		require.NoError(t, err, in)
		assert.InEpsilon(t, want, got, 1e-12, in)
	}
	_, err := ParseFloat("")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys(sampleConfig{})
	require.Len(t, keys, 8)
	assert.Equal(t, []string{"hue", "h"}, keys[1])
}
