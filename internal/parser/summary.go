package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	// summaryValueRe captures the value of every name=value token in a Parameters field.
	summaryValueRe = regexp.MustCompile(`[0-9A-Za-z_.\-]+=([0-9A-Za-z_.\-]*)`)
	// summaryNameRe captures the name of every name=value token.
	summaryNameRe = regexp.MustCompile(`([0-9A-Za-z_.\-]+)=[0-9A-Za-z_.\-]*`)
)

// errorMarkers are simulator placeholders for values that failed to evaluate.
var errorMarkers = map[string]bool{
	"eval err": true,
	"error":    true,
	"err":      true,
	"nan":      true,
	"-":        true,
}

// normalizeMarker maps simulator error placeholders to an empty (missing) cell.
func normalizeMarker(s string) string {
	s = strings.TrimSpace(s)
	if errorMarkers[strings.ToLower(s)] {
		return ""
	}
	return s
}

// ReshapeSummary reads a summary export and returns one row per sweep point with
// a column per swept parameter followed by a column per output metric.
func (r *Reader) ReshapeSummary(path string) (*Table, error) {
	if err := CheckFileType(path); err != nil {
		return nil, err
	}
	header, records, err := r.readCSV(path)
	if err != nil {
		return nil, err
	}
	tbl, err := r.reshapeSummary(header, records)
	if err != nil {
		return nil, fmt.Errorf("reshape %s: %w", path, err)
	}
	return tbl, nil
}

// sweepPoint collects the raw cells belonging to one Parameters row.
type sweepPoint struct {
	line    int
	params  []string
	outputs map[string]string
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func (r *Reader) reshapeSummary(header []string, records [][]string) (*Table, error) {
	pointIdx := columnIndex(header, PointColumn)
	outputIdx := columnIndex(header, OutputColumn)
	nominalIdx := columnIndex(header, NominalColumn)
	if pointIdx < 0 || outputIdx < 0 || nominalIdx < 0 {
		return nil, fmt.Errorf("%w: summary needs %s, %s and %s columns", ErrStructuralMismatch, PointColumn, OutputColumn, NominalColumn)
	}

	var (
		paramNames []string
		points     []*sweepPoint
		outputs    []string
		seenOutput = make(map[string]bool)
	)

	for i, rec := range records {
		line := i + 2
		point := rec[pointIdx]

		switch {
		case strings.Contains(point, "Parameters"):
			if paramNames == nil {
				paramNames = make([]string, 0)
				for _, m := range summaryNameRe.FindAllStringSubmatch(point, -1) {
					paramNames = append(paramNames, m[1])
				}
			}
			sp := &sweepPoint{line: line, outputs: make(map[string]string)}
			for _, m := range summaryValueRe.FindAllStringSubmatch(point, -1) {
				sp.params = append(sp.params, normalizeMarker(strings.TrimPrefix(m[1], "0b")))
			}
			if len(sp.params) != len(paramNames) {
				return nil, fmt.Errorf("%w: line %d has %d parameters, first sweep point has %d",
					ErrStructuralMismatch, line, len(sp.params), len(paramNames))
			}
			points = append(points, sp)

		default:
			output := strings.TrimSpace(rec[outputIdx])
			if output == "" {
				continue
			}
			if len(points) == 0 {
				return nil, fmt.Errorf("%w: output %q on line %d precedes every Parameters row", ErrAlignment, output, line)
			}
			sp := points[len(points)-1]
			if _, dup := sp.outputs[output]; dup {
				return nil, fmt.Errorf("%w: output %q given twice for the sweep point on line %d", ErrAlignment, output, sp.line)
			}
			sp.outputs[output] = normalizeMarker(rec[nominalIdx])
			if !seenOutput[output] {
				seenOutput[output] = true
				outputs = append(outputs, output)
			}
		}
	}

	r.logger.Debug("summary layout",
		zap.Int("points", len(points)),
		zap.Strings("parameters", paramNames),
		zap.Strings("outputs", outputs))

	raw := TextTable{Columns: make([][]string, len(paramNames))}
	for c := range paramNames {
		raw.Columns[c] = make([]string, len(points))
		for k, sp := range points {
			raw.Columns[c][k] = sp.params[c]
		}
	}
	decoded, err := ConvertSI(raw, paramNames)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Row > 0 && pe.Row <= len(points) {
			pe.Row = points[pe.Row-1].line
		}
		return nil, err
	}

	tbl := NewTable()
	for c, name := range decoded.Names {
		values := make([]float64, len(points))
		for k, cell := range decoded.Columns[c] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, &ParseError{Row: points[k].line, Column: name, Text: cell, Err: err}
			}
			values[k] = v
		}
		tbl.appendUnique(name, values)
	}

	for _, output := range outputs {
		values := make([]float64, len(points))
		for k, sp := range points {
			cell, ok := sp.outputs[output]
			if !ok {
				values[k] = math.NaN()
				continue
			}
			v, err := parseCell(cell)
			if err != nil {
				return nil, &ParseError{Row: sp.line, Column: output, Text: cell, Err: err}
			}
			values[k] = v
		}
		tbl.appendUnique(output, values)
	}

	tbl.dropEmptyColumns()
	return tbl, nil
}
