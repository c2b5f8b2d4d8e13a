package plotfn

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/parser"
)

const csvDumpUsage = `csv_dump INPUT [kwargs]
    x=str           rename column x (wave ingest)
    filename=str fn output CSV file`

const inkscapeUsage = `inkscape INPUT [kwargs]
    x=str           first output column (default: the first column)
    y=list          columns to include (default: all other columns)
    points=int      keep about this many rows (default: all)
    xscale=float xs rescale x (default: 1)
    yscale=float ys rescale y (default: 1)
    filename=str fn output CSV file`

// CSVDumpConfig holds the csv_dump kwargs.
type CSVDumpConfig struct {
	X        string `kw:"x"`
	FileName string `kw:"filename,fn"`
	Time     string `kw:"time"`
}

// InkscapeConfig holds the inkscape kwargs.
type InkscapeConfig struct {
	X        string   `kw:"x"`
	Y        []string `kw:"y"`
	Points   int      `kw:"points"`
	XScale   float64  `kw:"xscale,xs"`
	YScale   float64  `kw:"yscale,ys"`
	FileName string   `kw:"filename,fn"`
	Time     string   `kw:"time"`
}

// DefaultInkscapeConfig returns the inkscape defaults.
func DefaultInkscapeConfig() InkscapeConfig {
	return InkscapeConfig{XScale: 1, YScale: 1}
}

// CSVDump writes the normalized table as CSV, optionally renaming column x.
func CSVDump(env *Env, tbl *parser.Table, args kwargs.List) error {
	var cfg CSVDumpConfig
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	out := tbl
	names := tbl.Names()
	stem := strings.Join(names[min(1, len(names)):], "+")
	if cfg.X != "" {
		out = tbl.Clone()
		if err := out.Rename("x", cfg.X); err != nil {
			return err
		}
		stem = strings.Join(out.Names(), "+")
	}
	return writeTable(env, out, cfg.FileName, stem, cfg.Time)
}

// Inkscape writes a reduced CSV of x and the selected y columns, suitable for
// importing into drawing tools.
func Inkscape(env *Env, tbl *parser.Table, args kwargs.List) error {
	cfg := DefaultInkscapeConfig()
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	names := tbl.Names()
	if len(names) == 0 {
		return fmt.Errorf("table has no columns")
	}
	if cfg.X == "" {
		cfg.X = names[0]
	}
	if cfg.Y == nil {
		for _, name := range names {
			if name != cfg.X {
				cfg.Y = append(cfg.Y, name)
			}
		}
	}

	out, err := tbl.Select(append([]string{cfg.X}, cfg.Y...)...)
	if err != nil {
		return err
	}
	if cfg.Points > 0 && out.NumRows() > 1 {
		step := int(math.Ceil(float64(out.NumRows()-1) / float64(cfg.Points)))
		out = out.Filter(func(row int) bool { return row%step == 0 })
	}
	if err := rescale(out, cfg.X, cfg.XScale); err != nil {
		return err
	}
	for _, y := range cfg.Y {
		if err := rescale(out, y, cfg.YScale); err != nil {
			return err
		}
	}
	return writeTable(env, out, cfg.FileName, strings.Join(out.Names(), "+"), cfg.Time)
}

func rescale(tbl *parser.Table, name string, factor float64) error {
	if factor == 1 {
		return nil
	}
	col, ok := tbl.Column(name)
	if !ok {
		return fmt.Errorf("no column %q", name)
	}
	for i := range col {
		col[i] *= factor
	}
	return tbl.SetColumn(name, col)
}

func writeTable(env *Env, tbl *parser.Table, filename, stem, stamp string) error {
	path, ok := env.target(filename, stem, stamp, "csv")
	if !ok {
		env.printf("Skipped: %s\n", path)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := tbl.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	env.reportOutput(path)
	return nil
}
