package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/logging"
	"github.com/user/zcplot_go/internal/parser"
	"github.com/user/zcplot_go/internal/plotfn"
	"github.com/user/zcplot_go/internal/prompt"
	"github.com/user/zcplot_go/internal/version"
)

// Ingest types.
const (
	ingestWave       = "Wave"
	ingestSummary    = "Summary"
	ingestRaw        = "Raw"
	ingestMonteCarlo = "MonteCarlo"
)

// App runs one plot invocation.
type App struct {
	opts     Options
	out      io.Writer
	errOut   io.Writer
	logger   *zap.Logger
	prompter *prompt.Prompter
	registry *plotfn.Registry
	now      func() time.Time
}

// NewApp creates an App reading answers from in and printing status to out.
func NewApp(opts Options, in io.Reader, out, errOut io.Writer) (*App, error) {
	logger, err := logging.NewLogger(opts.Verbose)
	if err != nil {
		return nil, err
	}
	p := prompt.New(in, out)
	p.AssumeYes = opts.Yes
	return &App{
		opts:     opts,
		out:      out,
		errOut:   errOut,
		logger:   logger,
		prompter: p,
		registry: registry,
		now:      time.Now,
	}, nil
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.logger.Sync()
}

func (a *App) sendStatus(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(a.out, msg)
	a.logger.Debug(msg)
}

func (a *App) ingestType() string {
	switch {
	case a.opts.Summary:
		return ingestSummary
	case a.opts.Raw:
		return ingestRaw
	case a.opts.MonteCarlo:
		return ingestMonteCarlo
	}
	return ingestWave
}

// Run ingests input and hands the table to the named plot function.
func (a *App) Run(plot, input string, args kwargs.List) error {
	a.ensureDir(a.opts.PlotDir, "plots")
	if a.opts.Log == "" {
		a.ensureDir(a.opts.LogDir, "logs")
	}

	fn, err := a.registry.Lookup(plot)
	if err != nil {
		return err
	}
	if !isFile(input) {
		return withCode(exitBadInput, "input %s is not a valid file", input)
	}
	if a.opts.KwargsFile != "" && !isFile(a.opts.KwargsFile) {
		return withCode(exitBadKwargsFile, "external kwargs %s is not a valid file", a.opts.KwargsFile)
	}

	ingest := a.ingestType()
	a.logger.Debug("ingesting", zap.String("input", input), zap.String("type", ingest))
	tbl, err := a.ingest(input, ingest)
	if err != nil {
		return fmt.Errorf("failed to ingest %s: %w", input, err)
	}
	a.logger.Debug("ingested", zap.Int("rows", tbl.NumRows()), zap.Strings("columns", tbl.Names()))

	if a.opts.KwargsFile != "" {
		fileArgs, err := kwargs.Load(a.opts.KwargsFile)
		if err != nil {
			return fmt.Errorf("failed to load kwargs file %s: %w", a.opts.KwargsFile, err)
		}
		args = args.Prepend(fileArgs...)
	}

	if a.opts.Interact {
		extra, err := a.editKwargs(tbl)
		if err != nil {
			return err
		}
		args = args.With(extra...)
	}

	now := a.now()
	if a.opts.Export != "" {
		if err := a.export(args, now); err != nil {
			return err
		}
	}

	run := logging.Run{
		Version:     version.Version,
		Time:        now,
		Input:       input,
		Plot:        plot,
		Ingest:      ingest,
		Verbose:     a.opts.Verbose,
		Interactive: a.opts.Interact,
		Export:      a.opts.Export,
		KwargsFile:  a.opts.KwargsFile,
		Kwargs:      args,
	}
	a.writeLog(run, tbl)

	env := plotfn.NewEnv(a.opts.PlotDir, a.out, a.logger)
	env.Stamp = run.Stamp()
	env.Confirm = a.prompter.Confirm
	env.Run = plotfn.RunInfo{
		Version: version.Version,
		Date:    now.Format("2006-01-02") + " at " + now.Format("15:04:05"),
		Input:   input,
		Ingest:  ingest,
	}
	args = args.Prepend("time=" + env.Stamp)
	if err := fn.Plot(env, tbl, args); err != nil {
		return fmt.Errorf("%s: %w", plot, err)
	}
	return nil
}

func (a *App) ingest(input, ingest string) (*parser.Table, error) {
	reader := parser.NewReader(a.logger)
	switch ingest {
	case ingestSummary:
		return reader.ReshapeSummary(input)
	case ingestRaw:
		return reader.ReadRaw(input)
	case ingestMonteCarlo:
		return reader.ReshapeMonteCarlo(input)
	}
	return reader.ReshapeWave(input)
}

// ensureDir offers to create a missing output directory.
func (a *App) ensureDir(dir, name string) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return
	}
	q := fmt.Sprintf("Default `%s` directory does not exist, create it?", name)
	if dir != name {
		q = fmt.Sprintf("Directory `%s` does not exist, create it?", dir)
	}
	if !a.prompter.Confirm(q) {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		a.logger.Warn("could not create directory", zap.String("dir", dir), zap.Error(err))
	}
}

func (a *App) editKwargs(tbl *parser.Table) (kwargs.List, error) {
	fmt.Fprintln(a.out, "Ingested data:")
	if err := tbl.Fprint(a.out, 10); err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "\n%s kwarg editor %s\n", strings.Repeat("-", 30), strings.Repeat("-", 30))
	extra, err := a.prompter.InputList()
	if err != nil {
		return nil, fmt.Errorf("failed to read kwargs: %w", err)
	}
	return extra, nil
}

func (a *App) export(args kwargs.List, now time.Time) error {
	path := a.opts.Export
	if isFile(path) && !a.prompter.Confirm(fmt.Sprintf("Overwrite %s?", path)) {
		a.sendStatus("Skipped: %s", path)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open %s for writing: %w", path, err)
	}
	if err := kwargs.Export(f, args, version.Version, now); err != nil {
		f.Close()
		return fmt.Errorf("failed to export kwargs: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.sendStatus("Export: %s", absPath(path))
	return nil
}

// writeLog appends the run log. Failures are reported and do not stop the run.
func (a *App) writeLog(run logging.Run, tbl *parser.Table) {
	path := logging.Path(a.opts.Log, a.opts.LogDir, run)
	if path == "" {
		return
	}
	written, err := logging.Append(path, run, tbl)
	if err != nil {
		fmt.Fprintln(a.errOut, "ERROR:", err)
		return
	}
	a.sendStatus("Logfile: %s", written)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
