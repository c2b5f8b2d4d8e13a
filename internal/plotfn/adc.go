package plotfn

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/user/zcplot_go/internal/analysis"
	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/parser"
)

const adcUsage = `adc INPUT [kwargs]
    var=str         swept input column (default: the first column)
    data=str        label of the data bit columns (default: DATA)
    bits=int        expected number of bits (checked when set)
    dnl=bool        add dnl and abs_dnl columns (default: true)
    inl=bool        add an inl column, requires bits (default: false)
    tail=int        print this many of the worst DNL steps (default: 0)
    Uses the same plotting kwargs as replot`

const sarADCUsage = `sar_adc INPUT [kwargs]
    time=str        time column (default: the first column)
    comp=str        differential comparator column (default: the second column)
    var=str         swept input column (default: the third column)
    prom=float      peak prominence (default: 0.5)
    height=float    peak height (default: prom)
    bits=int        expected number of bits (checked when set)
    dnl=bool        add dnl and abs_dnl columns (default: true)
    inl=bool        add an inl column, requires bits (default: false)
    tail=int        print this many of the worst DNL steps (default: 0)
    Uses the same plotting kwargs as replot`

// ADCConfig holds the adc kwargs.
type ADCConfig struct {
	Var  string `kw:"var"`
	Data string `kw:"data"`
	Bits int    `kw:"bits"`
	DNL  bool   `kw:"dnl"`
	INL  bool   `kw:"inl"`
	Tail int    `kw:"tail"`
}

// DefaultADCConfig returns the adc defaults.
func DefaultADCConfig() ADCConfig {
	return ADCConfig{Data: "DATA", DNL: true}
}

// SARADCConfig holds the sar_adc kwargs.
type SARADCConfig struct {
	Time   string   `kw:"time"`
	Comp   string   `kw:"comp"`
	Var    string   `kw:"var"`
	Prom   float64  `kw:"prom"`
	Height *float64 `kw:"height"`
	Bits   int      `kw:"bits"`
	DNL    bool     `kw:"dnl"`
	INL    bool     `kw:"inl"`
	Tail   int      `kw:"tail"`
}

// DefaultSARADCConfig returns the sar_adc defaults.
func DefaultSARADCConfig() SARADCConfig {
	return SARADCConfig{Prom: 0.5, DNL: true}
}

// ADC decodes parallel data bit columns into codes and replots the transfer
// curve.
func ADC(env *Env, tbl *parser.Table, args kwargs.List) error {
	cfg := DefaultADCConfig()
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	if cfg.Var == "" {
		names := tbl.Names()
		if len(names) == 0 {
			return fmt.Errorf("table has no columns")
		}
		cfg.Var = names[0]
	}
	res, err := analysis.DecodeBits(tbl, cfg.Var, cfg.Data, cfg.Bits)
	if err != nil {
		return err
	}
	return finishCodes(env, res, cfg.Var, cfg.DNL, cfg.INL, cfg.Bits, cfg.Tail, args)
}

// SARADC peak-detects the comparator trace of every input value into a code
// and replots the transfer curve.
func SARADC(env *Env, tbl *parser.Table, args kwargs.List) error {
	cfg := DefaultSARADCConfig()
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	names := tbl.Names()
	if len(names) < 3 && (cfg.Time == "" || cfg.Comp == "" || cfg.Var == "") {
		return fmt.Errorf("sar_adc needs time, comparator and input columns, table has %d", len(names))
	}
	// time= also carries the run stamp
	if cfg.Time == "" || cfg.Time == env.Stamp {
		cfg.Time = names[0]
	}
	if cfg.Comp == "" {
		cfg.Comp = names[1]
	}
	if cfg.Var == "" {
		cfg.Var = names[2]
	}
	height := cfg.Prom
	if cfg.Height != nil {
		height = *cfg.Height
	}

	res, err := analysis.DecodeSAR(tbl, analysis.SARConfig{
		Time:       cfg.Time,
		Comp:       cfg.Comp,
		Var:        cfg.Var,
		Prominence: cfg.Prom,
		Height:     height,
		Bits:       cfg.Bits,
	})
	if err != nil {
		return err
	}
	// keep the run stamp in the output name
	args = args.Without("time").With("time=" + env.Stamp)
	return finishCodes(env, res, cfg.Var, cfg.DNL, cfg.INL, cfg.Bits, cfg.Tail, args)
}

// finishCodes adds the linearity columns, prints the worst steps and replots
// the code table.
func finishCodes(env *Env, res *analysis.CodeResult, varName string, dnl, inl bool, bits, tail int, args kwargs.List) error {
	if dnl || inl {
		if err := res.FillLinearity(inl, bits); err != nil {
			return err
		}
	}
	for _, msg := range res.Errors {
		env.Logger.Warn("inl", zap.String("problem", msg))
	}
	if dnl && tail > 0 {
		worst := parser.NewTable()
		var vs, ds []float64
		for _, step := range res.WorstDNL(tail) {
			vs = append(vs, step.Var)
			ds = append(ds, step.DNL)
		}
		if err := worst.AddColumn(varName, vs); err != nil {
			return err
		}
		if err := worst.AddColumn("dnl", ds); err != nil {
			return err
		}
		if env.Out != nil {
			if err := worst.Fprint(env.Out, tail); err != nil {
				return err
			}
		}
	}
	if !dnl {
		res.DNL, res.AbsDNL = nil, nil
	}

	out, err := res.Table(varName)
	if err != nil {
		return err
	}
	return Replot(env, out, args)
}
