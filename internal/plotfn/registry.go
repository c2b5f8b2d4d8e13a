// Package plotfn holds the plot functions zcplot can run on a normalized table
// and the registry the CLI resolves them from.
package plotfn

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/user/zcplot_go/internal/kwargs"
	"github.com/user/zcplot_go/internal/parser"
	"github.com/user/zcplot_go/internal/report"
)

// ErrUnknownPlot is returned by Lookup for names nothing was registered under.
var ErrUnknownPlot = errors.New("unknown plot function")

// Func is a plot function. Plot consumes the normalized table and the merged
// kwargs; Usage documents the kwargs it understands.
type Func interface {
	Usage() string
	Plot(env *Env, tbl *parser.Table, args kwargs.List) error
}

// RunInfo describes the invocation a plot belongs to.
type RunInfo struct {
	Version string
	Date    string
	Input   string
	Ingest  string
}

// Env is what a plot function may touch besides its table.
type Env struct {
	Stamp    string // run time stamp, also passed to plot functions as time=
	PlotDir  string
	Confirm  func(prompt string) bool // nil answers yes
	Out      io.Writer
	Logger   *zap.Logger
	Renderer *report.Renderer
	Run      RunInfo
}

// NewEnv returns an environment writing into plotDir.
func NewEnv(plotDir string, out io.Writer, logger *zap.Logger) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env{
		PlotDir:  plotDir,
		Out:      out,
		Logger:   logger,
		Renderer: report.NewRenderer(logger),
	}
}

func (e *Env) confirm(prompt string) bool {
	if e.Confirm == nil {
		return true
	}
	return e.Confirm(prompt)
}

func (e *Env) printf(format string, args ...any) {
	if e.Out != nil {
		fmt.Fprintf(e.Out, format, args...)
	}
}

// target resolves the output file of a plot. A user supplied name gets the
// extension appended and asks before overwriting; otherwise the file goes to
// the plot directory as <stem>_<stamp>.<ext>. ok is false when the user
// declined the overwrite.
func (e *Env) target(filename, stem, stamp, ext string) (path string, ok bool) {
	if filename == "" {
		stem = strings.ReplaceAll(stem, "/", "-")
		if stamp != "" {
			stem += "_" + stamp
		}
		return filepath.Join(e.PlotDir, stem+"."+ext), true
	}
	path = strings.TrimSuffix(filename, "."+ext) + "." + ext
	if _, err := os.Stat(path); err == nil && !e.confirm(fmt.Sprintf("Overwrite %s?", path)) {
		e.Logger.Info("overwrite declined", zap.String("path", path))
		return path, false
	}
	return path, true
}

// reportOutput prints the status line for a written file.
func (e *Env) reportOutput(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	e.printf("Output: %s\n", path)
}

type plotFunc struct {
	usage string
	run   func(env *Env, tbl *parser.Table, args kwargs.List) error
}

func (f plotFunc) Usage() string { return f.usage }

func (f plotFunc) Plot(env *Env, tbl *parser.Table, args kwargs.List) error {
	return f.run(env, tbl, args)
}

// New wraps a function and its usage text as a Func.
func New(usage string, run func(env *Env, tbl *parser.Table, args kwargs.List) error) Func {
	return plotFunc{usage: usage, run: run}
}

// Registry maps plot names to functions.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds f under name. Registering a name twice is an error.
func (r *Registry) Register(name string, f Func) error {
	if name == "" || f == nil {
		return fmt.Errorf("invalid plot registration %q", name)
	}
	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("plot function %q already registered", name)
	}
	r.funcs[name] = f
	return nil
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Func, error) {
	f, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlot, name)
	}
	return f, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns a registry holding every built-in plot function.
func Default() *Registry {
	r := NewRegistry()
	for name, f := range map[string]Func{
		"replot":        New(replotUsage, Replot),
		"csv_dump":      New(csvDumpUsage, CSVDump),
		"inkscape":      New(inkscapeUsage, Inkscape),
		"gmid":          New(gmidUsage, GmID),
		"adc":           New(adcUsage, ADC),
		"sar_adc":       New(sarADCUsage, SARADC),
		"inputrefnoise": New(inputRefNoiseUsage, InputRefNoise),
		"report":        New(reportUsage, Report),
		"html":          New(htmlUsage, HTML),
	} {
		if err := r.Register(name, f); err != nil {
			panic(err)
		}
	}
	return r
}
