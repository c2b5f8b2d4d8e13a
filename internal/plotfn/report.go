package plotfn

import (
	"fmt"
	"os"

	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/parser"
	"github.com/user/zcplot_go/internal/report"
)

const reportUsage = `report INPUT [kwargs]
    title=str       report title (default: <y> report)
    rows=int        table rows to preview (default: 20)
    filename=str fn output PDF file
    Uses the same plotting kwargs as replot for the embedded figure`

const htmlUsage = `html INPUT [kwargs]
    Interactive chart of y against x, one series per hue/style group
    title=str       page title (default: y)
    filename=str fn output HTML file
    Uses the data and figure kwargs of replot; ptype must be line or scatter`

// ReportConfig holds the report kwargs not shared with replot.
type ReportConfig struct {
	Title string `kw:"title"`
	Rows  int    `kw:"rows"`
}

// DefaultReportConfig returns the report defaults.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{Rows: 20}
}

// Report renders the replot figure as PNG and writes a PDF holding the run
// metadata, the kwargs, a table preview and the figure.
func Report(env *Env, tbl *parser.Table, args kwargs.List) error {
	cfg := DefaultReportConfig()
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	plotCfg := DefaultReplotConfig()
	if err := kwargs.Decode(args, &plotCfg); err != nil {
		return err
	}
	fig, err := plotCfg.Figure(tbl)
	if err != nil {
		return err
	}
	png, err := env.Renderer.Render(fig, "png")
	if err != nil {
		return err
	}

	title := cfg.Title
	if title == "" {
		title = plotCfg.Y + " report"
	}
	pairs, err := args.Merged()
	if err != nil {
		return err
	}
	meta := report.ReportMeta{
		Title:    title,
		Version:  env.Run.Version,
		Date:     env.Run.Date,
		Input:    env.Run.Input,
		PlotFunc: "report",
		Ingest:   env.Run.Ingest,
	}
	for _, p := range pairs {
		meta.Kwargs = append(meta.Kwargs, fmt.Sprintf("%s = %s", p.Key, p.Value))
	}

	path, ok := env.target(plotCfg.FileName, plotCfg.Y, plotCfg.Time, "pdf")
	if !ok {
		env.printf("Skipped: %s\n", path)
		return nil
	}
	if err := report.BuildPDFReport(path, meta, tbl, cfg.Rows, png); err != nil {
		return fmt.Errorf("failed to build report %s: %w", path, err)
	}
	env.reportOutput(path)
	return nil
}

// HTML writes an interactive echarts page of the replot figure.
func HTML(env *Env, tbl *parser.Table, args kwargs.List) error {
	cfg := DefaultReplotConfig()
	if err := kwargs.Decode(args, &cfg); err != nil {
		return err
	}
	fig, err := cfg.Figure(tbl)
	if err != nil {
		return err
	}
	if fig.Kind != report.KindLine && fig.Kind != report.KindScatter {
		return fmt.Errorf("html supports line and scatter plots, got %q", fig.Kind)
	}
	if fig.Title == "" {
		fig.Title = cfg.Y
	}

	path, ok := env.target(cfg.FileName, cfg.Y, cfg.Time, "html")
	if !ok {
		env.printf("Skipped: %s\n", path)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := env.Renderer.WriteHTML(f, fig); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	env.reportOutput(path)
	return nil
}
