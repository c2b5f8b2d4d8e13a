package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var iterationRe = regexp.MustCompile(`[0-9]+`)

// relabelMonteCarlo gives every Monte-Carlo iteration its own signal name. The
// first digit run of a label is the iteration index; the time/value pair of an
// iteration becomes "<signal>-<n> <second token>".
func relabelMonteCarlo(columns []string) ([]string, error) {
	labels := make([]string, len(columns))
	index := ""
	count := 0
	for i, col := range columns {
		sig := iterationRe.FindString(col)
		fields := strings.Fields(col)
		if sig == "" || len(fields) < 2 {
			return nil, &ParseError{Column: col, Text: col, Err: fmt.Errorf("expected a Monte-Carlo label with an iteration index")}
		}
		if sig != index {
			index = sig
			count = 2
		} else {
			count++
		}
		labels[i] = fmt.Sprintf("%s-%d %s", fields[0], count/2, fields[1])
	}
	return labels, nil
}

// Preprocess rewrites the header of a Monte-Carlo wave export so that each
// iteration reads as a separate signal. Data lines are copied verbatim.
func Preprocess(in io.Reader, out io.Writer) error {
	br := bufio.NewReader(in)
	line, err := br.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return fmt.Errorf("failed to read header: %w", err)
	}

	labels, err := relabelMonteCarlo(strings.Split(strings.TrimRight(line, "\r\n"), ","))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "%s\n", strings.Join(labels, ",")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := io.Copy(out, br); err != nil {
		return fmt.Errorf("failed to copy data lines: %w", err)
	}
	return nil
}

// ReshapeMonteCarlo preprocesses a Monte-Carlo export into a temporary sibling
// file and reshapes it as an ordinary wave export. The temporary file is always
// removed; a failed removal is logged.
func (r *Reader) ReshapeMonteCarlo(path string) (*Table, error) {
	if err := CheckFileType(path); err != nil {
		return nil, err
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), "montecarlo-*.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil {
			r.logger.Warn("could not remove temporary file", zap.String("path", tmp.Name()), zap.Error(err))
		}
	}()

	if err := Preprocess(in, tmp); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("preprocess %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}
	r.logger.Debug("monte-carlo header rewritten", zap.String("tmp", tmp.Name()))

	return r.ReshapeWave(tmp.Name())
}
