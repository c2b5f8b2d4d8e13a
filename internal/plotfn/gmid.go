package plotfn

import (
	"fmt"

	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/parser"
)

const gmidUsage = `gmid INPUT [kwargs]
    Requires summary ingest (-s)
    gmid=str        gm/Id column (default: gm/Id)
    ft=str          ft column (default: ft); use filetype= for the format
    idwl=str        Id/(W/L) column (default: Id/(W/L))
    vov=str         Vov column (default: Vov)
    Uses the same plotting kwargs as replot.
    Writes three figures; a custom filename is overwritten by each.`

// GmIDConfig names the columns of a gm/Id characterization.
type GmIDConfig struct {
	GmID string `kw:"gmid"`
	FT   string `kw:"ft"`
	IDWL string `kw:"idwl"`
	Vov  string `kw:"vov"`
}

// DefaultGmIDConfig returns the column names the characterization testbench
// writes.
func DefaultGmIDConfig() GmIDConfig {
	return GmIDConfig{GmID: "gm/Id", FT: "ft", IDWL: "Id/(W/L)", Vov: "Vov"}
}

// GmID draws the three gm/Id design charts as scatter plots: gm/Id against
// Vov, then Id/(W/L) and ft against gm/Id.
func GmID(env *Env, tbl *parser.Table, args kwargs.List) error {
	cfg := DefaultGmIDConfig()
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	for _, name := range []string{cfg.GmID, cfg.FT, cfg.IDWL, cfg.Vov} {
		if !tbl.Has(name) {
			return fmt.Errorf("no column %q; gmid requires summary ingest", name)
		}
	}
	// ft is both a column name here and a replot key
	base := args.Without("gmid", "ft", "idwl", "vov")

	charts := []struct {
		x, y           string
		xlabel, ylabel string
	}{
		{cfg.Vov, cfg.GmID, "Vov [V]", "gm/Id [1/V]"},
		{cfg.GmID, cfg.IDWL, "gm/Id [1/V]", "Id/(W/L) [A]"},
		{cfg.GmID, cfg.FT, "gm/Id [1/V]", "ft [Hz]"},
	}
	for _, c := range charts {
		t := tbl.Clone()
		x, _ := t.Column(c.x)
		if err := t.SetColumn("x", x); err != nil {
			return err
		}
		chart := base.With("x=x", "y="+c.y, "pt=scatter", "xlabel="+c.xlabel, "ylabel="+c.ylabel)
		if err := Replot(env, t, chart); err != nil {
			return fmt.Errorf("gmid %s chart: %w", c.y, err)
		}
	}
	return nil
}
