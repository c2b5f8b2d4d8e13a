package plotfn

import (
	"go.uber.org/zap"

	"github.com/user/zcplot_go/internal/analysis"
	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/parser"
)

const inputRefNoiseUsage = `inputrefnoise INPUT [kwargs]
    Requires wave ingest
    fs=float        sample rate in Hz (default: 50M)
    Ts=float        sample period in s, overrides fs (default: 1/fs)
    delay=float     delay before the first sample (default: 9n)
    y=str           output column (default: the second column)
    bins=str        swept input column (default: the third column)
    Uses the same plotting kwargs as replot`

// InputRefNoiseConfig holds the inputrefnoise kwargs.
type InputRefNoiseConfig struct {
	Fs    float64  `kw:"fs"`
	Ts    *float64 `kw:"Ts"`
	Delay float64  `kw:"delay"`
	Y     string   `kw:"y"`
	Bins  string   `kw:"bins"`
}

// DefaultInputRefNoiseConfig returns the inputrefnoise defaults.
func DefaultInputRefNoiseConfig() InputRefNoiseConfig {
	return InputRefNoiseConfig{Fs: 50e6, Delay: 9e-9}
}

// InputRefNoise samples a transient input sweep once per period, prints the
// moments of the output step density and scatter-plots the mean output of
// every input value.
func InputRefNoise(env *Env, tbl *parser.Table, args kwargs.List) error {
	cfg := DefaultInputRefNoiseConfig()
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	names := tbl.Names()
	if cfg.Y == "" && len(names) > 1 {
		cfg.Y = names[1]
	}
	if cfg.Bins == "" && len(names) > 2 {
		cfg.Bins = names[2]
	}
	period := 0.0
	if cfg.Ts != nil {
		period = *cfg.Ts
	} else if cfg.Fs > 0 {
		period = 1 / cfg.Fs
	}

	res, err := analysis.SampleNoise(tbl, analysis.NoiseConfig{
		Y:      cfg.Y,
		Bins:   cfg.Bins,
		Period: period,
		Delay:  cfg.Delay,
	})
	if err != nil {
		return err
	}
	env.Logger.Debug("sampled noise sweep",
		zap.Int("blocks", len(res.Mean)),
		zap.Float64("period", period),
	)
	env.printf("Step density:\n   mu %.6g\nsigma %.6g\n", res.Mu, res.Sigma)

	sampled := parser.NewTable()
	if err := sampled.AddColumn("x", res.Bins); err != nil {
		return err
	}
	if err := sampled.AddColumn(cfg.Y, res.Mean); err != nil {
		return err
	}
	plotArgs := args.Without("fs", "Ts", "delay", "bins").Prepend("pt=scatter").With("y=" + cfg.Y)
	return Replot(env, sampled, plotArgs)
}
