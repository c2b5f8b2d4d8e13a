package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peakIndices(peaks []Peak) []int {
	out := make([]int, len(peaks))
	for i, p := range peaks {
		out[i] = p.Index
	}
	return out
}

func TestFindPeaks(t *testing.T) {
	y := []float64{0, 1, 0, 0.2, 0.1, 2, 2, 2, 0, 3}

	t.Run("all maxima", func(t *testing.T) {
		assert.Equal(t, []int{1, 3, 6}, peakIndices(FindPeaks(y, 0, 0)))
	})

	t.Run("prominence filters small bumps", func(t *testing.T) {
		peaks := FindPeaks(y, 0.5, 0)
		assert.Equal(t, []int{1, 6}, peakIndices(peaks))
		assert.InDelta(t, 1.0, peaks[0].Prominence, 1e-12)
		assert.InDelta(t, 2.0, peaks[1].Prominence, 1e-12)
	})

	t.Run("height filters low peaks", func(t *testing.T) {
		assert.Equal(t, []int{6}, peakIndices(FindPeaks(y, 0, 1.5)))
	})

	t.Run("short input", func(t *testing.T) {
		assert.Empty(t, FindPeaks([]float64{1, 2}, 0, 0))
	})
}

func TestFindExtremaAndCode(t *testing.T) {
	// comparator decisions + - + over time
	y := []float64{0, 1, 0, -1, 0, 1, 0}
	peaks := FindExtrema(y, 0.5, 0.5)
	require.Len(t, peaks, 3)
	assert.Equal(t, []int{1, 3, 5}, peakIndices(peaks))
	assert.True(t, peaks[0].Positive)
	assert.False(t, peaks[1].Positive)
	assert.True(t, peaks[2].Positive)

	assert.Equal(t, 5.0, CodeFromPeaks(peaks)) // 0b101
}

func TestDecodeSAR(t *testing.T) {
	// two input levels, one decision each per 3-sample trace
	tbl := newTable(t,
		"x", []float64{0, 1, 2, 3, 4, 0, 1, 2, 3, 4},
		"comp", []float64{0, 1, 0, -1, 0, 0, -1, 0, -1, 0},
		"vin", []float64{0.2, 0.2, 0.2, 0.2, 0.2, 0.1, 0.1, 0.1, 0.1, 0.1},
	)
	cfg := SARConfig{Time: "x", Comp: "comp", Var: "vin", Prominence: 0.5, Height: 0.5, Bits: 2}

	res, err := DecodeSAR(tbl, cfg)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, res.Var)
	assert.Equal(t, []float64{0, 2}, res.Code)

	cfg.Bits = 3
	_, err = DecodeSAR(tbl, cfg)
	assert.ErrorIs(t, err, ErrBitWidth)

	cfg.Comp = "missing"
	_, err = DecodeSAR(tbl, cfg)
	assert.Error(t, err)
}
