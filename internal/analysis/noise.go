package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/user/zcplot_go/internal/parser"
)

// NoiseConfig controls how a transient sweep is sampled.
type NoiseConfig struct {
	Y      string  // output column
	Bins   string  // swept input column
	Period float64 // sample period in seconds
	Delay  float64 // time before the first sample
}

// SampleNoise samples the output of every sweep block once per period after
// the delay, averages the samples of each block and derives the step density of
// the resulting transfer curve. Blocks are runs of rows with as many samples as
// there are distinct x values.
func SampleNoise(tbl *parser.Table, cfg NoiseConfig) (*NoiseResult, error) {
	if cfg.Period <= 0 {
		return nil, fmt.Errorf("sample period must be positive, got %g", cfg.Period)
	}
	x, ok := tbl.Column("x")
	if !ok {
		return nil, fmt.Errorf("no column %q; wave ingest required", "x")
	}
	y, ok := tbl.Column(cfg.Y)
	if !ok {
		return nil, fmt.Errorf("no column %q", cfg.Y)
	}
	bins, ok := tbl.Column(cfg.Bins)
	if !ok {
		return nil, fmt.Errorf("no column %q", cfg.Bins)
	}

	distinct := make(map[float64]bool)
	for _, v := range x {
		distinct[v] = true
	}
	size := len(distinct)
	if size == 0 {
		return nil, fmt.Errorf("table has no samples")
	}

	res := &NoiseResult{}
	for start := 0; start < len(x); start += size {
		end := min(start+size, len(x))
		next := cfg.Period + cfg.Delay
		var samples []float64
		hue := math.NaN()
		for i := start; i < end; i++ {
			hue = bins[i]
			if x[i] >= next {
				samples = append(samples, y[i])
				next += cfg.Period
			}
		}
		mean := math.NaN()
		if len(samples) > 0 {
			mean = stat.Mean(samples, nil)
		}
		res.Bins = append(res.Bins, hue)
		res.Mean = append(res.Mean, mean)
	}

	n := len(res.Mean)
	if n < 2 {
		res.Mu, res.Sigma = math.NaN(), math.NaN()
		return res, nil
	}
	half := 0.0
	if n >= 3 {
		half = (res.Bins[n-2] - res.Bins[n-3]) * 0.5
	}
	res.StepX = make([]float64, n-1)
	res.StepY = make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		res.StepX[i] = res.Bins[i] + half
		res.StepY[i] = res.Mean[i+1] - res.Mean[i]
	}
	res.Mu, res.Sigma = stepMoments(res.StepX, res.StepY)
	return res, nil
}

// stepMoments returns the mean and standard deviation of xs weighted by the
// magnitude of the steps.
func stepMoments(xs, steps []float64) (float64, float64) {
	var (
		vx []float64
		w  []float64
	)
	for i, s := range steps {
		if math.IsNaN(s) || math.IsNaN(xs[i]) {
			continue
		}
		vx = append(vx, xs[i])
		w = append(w, math.Abs(s))
	}
	total := 0.0
	for _, v := range w {
		total += v
	}
	if total == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.PopMeanStdDev(vx, w)
}
