// Package logging builds the diagnostic logger and writes the per-run log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/zcplot_go/internal/parser"
)

// StampLayout formats the run time stamp. It names the default log file and
// is handed to plot functions as time=.
const StampLayout = "2006-01-02T15:04:05"

// Disabled is the --log value that turns the run log off.
const Disabled = "none"

// NewLogger returns a console logger on stderr at Info, or Debug when verbose.
func NewLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Run describes one invocation for the run log.
type Run struct {
	Name        string
	Version     string
	Time        time.Time
	Input       string
	Plot        string
	Ingest      string
	Verbose     bool
	Interactive bool
	Export      string
	KwargsFile  string
	Kwargs      []string
}

// Stamp returns the run time in StampLayout.
func (r Run) Stamp() string {
	return r.Time.Format(StampLayout)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// WriteTo writes the log entry followed by a dump of tbl.
func (r Run) WriteTo(w io.Writer, tbl *parser.Table) error {
	name := r.Name
	if name == "" {
		name = "zcplot"
	}
	fmt.Fprintf(w, "%s ver. %s\n", name, r.Version)
	fmt.Fprintf(w, "Executed on %s at %s\n", r.Time.Format("2006-01-02"), r.Time.Format("15:04:05"))
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("-", 80))

	fmt.Fprintf(w, "Input file: %s\n", r.Input)
	fmt.Fprintf(w, "Plot function: %s\n", r.Plot)
	fmt.Fprintf(w, "Arguments:\n")
	fmt.Fprintf(w, "    Data ingest type: %s\n", r.Ingest)
	fmt.Fprintf(w, "    Verbose: %t\n", r.Verbose)
	fmt.Fprintf(w, "    Interactive: %t\n", r.Interactive)
	fmt.Fprintf(w, "    Export file: %s\n", orNone(r.Export))
	fmt.Fprintf(w, "    External kwargs file: %s\n", orNone(r.KwargsFile))

	fmt.Fprintf(w, "kwargs:\n")
	for _, kw := range r.Kwargs {
		fmt.Fprintf(w, "    %s\n", kw)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if tbl == nil {
		return nil
	}
	return tbl.Fprint(w, 0)
}

// Path resolves the log file for a run. An empty name selects
// <dir>/<stamp>.log; Disabled yields "".
func Path(name, dir string, r Run) string {
	switch name {
	case Disabled:
		return ""
	case "":
		name = filepath.Join(dir, r.Stamp()+".log")
	}
	return filepath.FromSlash(strings.ReplaceAll(name, "\\", "/"))
}

// Append appends the log entry for r to path and returns the absolute path.
func Append(path string, r Run, tbl *parser.Table) (string, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("could not open logfile %s for writing: %w", path, err)
	}
	if err := r.WriteTo(f, tbl); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write logfile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}
