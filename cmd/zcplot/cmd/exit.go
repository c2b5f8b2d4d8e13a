package cmd

import (
	"errors"
	"fmt"

	"github.com/user/zcplot_go/internal/analysis"
	"github.com/user/zcplot_go/internal/parser"
	"github.com/user/zcplot_go/internal/plotfn"
)

// Exit statuses.
const (
	exitGeneric       = 1
	exitUsage         = 2
	exitFileType      = 3
	exitStructural    = 4
	exitParse         = 5
	exitAlignment     = 6
	exitUnknownPlot   = 101
	exitBadInput      = 102
	exitBadKwargsFile = 103
	exitBitWidth      = 123
)

// exitError attaches an explicit exit status to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, format string, args ...any) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var pe *parser.ParseError
	switch {
	case errors.Is(err, plotfn.ErrUnknownPlot):
		return exitUnknownPlot
	case errors.Is(err, parser.ErrFileType):
		return exitFileType
	case errors.Is(err, parser.ErrStructuralMismatch):
		return exitStructural
	case errors.Is(err, parser.ErrAlignment):
		return exitAlignment
	case errors.Is(err, analysis.ErrBitWidth):
		return exitBitWidth
	case errors.As(err, &pe):
		return exitParse
	}
	return exitGeneric
}
