package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/user/zcplot_go/internal/parser"
)

// SARConfig selects the columns and thresholds for comparator decoding.
type SARConfig struct {
	Time       string
	Comp       string
	Var        string
	Prominence float64
	Height     float64
	Bits       int
}

// CodeFromPeaks builds a code MSB first: each positive comparator decision is a 1.
func CodeFromPeaks(peaks []Peak) float64 {
	code := 0.0
	for i, p := range peaks {
		if p.Positive {
			code += math.Pow(2, float64(len(peaks)-1-i))
		}
	}
	return code
}

// DecodeSAR converts the comparator trace recorded for every distinct value of
// the swept variable into one ADC code. Inputs are returned in ascending order.
func DecodeSAR(tbl *parser.Table, cfg SARConfig) (*CodeResult, error) {
	get := func(name string) ([]float64, error) {
		col, ok := tbl.Column(name)
		if !ok {
			return nil, fmt.Errorf("no column %q", name)
		}
		return col, nil
	}
	tcol, err := get(cfg.Time)
	if err != nil {
		return nil, err
	}
	comp, err := get(cfg.Comp)
	if err != nil {
		return nil, err
	}
	vars, err := get(cfg.Var)
	if err != nil {
		return nil, err
	}

	groups := make(map[float64][]int)
	var keys []float64
	for i, v := range vars {
		if math.IsNaN(v) {
			continue
		}
		if _, ok := groups[v]; !ok {
			keys = append(keys, v)
		}
		groups[v] = append(groups[v], i)
	}
	sort.Float64s(keys)

	res := &CodeResult{Bits: cfg.Bits}
	for _, v := range keys {
		rows := groups[v]
		sort.SliceStable(rows, func(a, b int) bool { return tcol[rows[a]] < tcol[rows[b]] })
		wave := make([]float64, len(rows))
		for k, r := range rows {
			wave[k] = comp[r]
		}

		peaks := FindExtrema(wave, cfg.Prominence, cfg.Height)
		if cfg.Bits != 0 && len(peaks) != cfg.Bits {
			up := 0
			for _, p := range peaks {
				if p.Positive {
					up++
				}
			}
			return nil, fmt.Errorf("%w: failed to decode %s = %g (%d+ %d-)", ErrBitWidth, cfg.Var, v, up, len(peaks)-up)
		}
		res.Var = append(res.Var, v)
		res.Code = append(res.Code, CodeFromPeaks(peaks))
	}
	return res, nil
}
