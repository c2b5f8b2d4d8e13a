package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Reader ingests simulator CSV exports into normalized tables.
type Reader struct {
	logger *zap.Logger
}

// NewReader returns a Reader logging to logger. A nil logger discards output.
func NewReader(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger}
}

var defaultReader = NewReader(nil)

// ReshapeWave reads a wave export with a silent Reader.
func ReshapeWave(path string) (*Table, error) { return defaultReader.ReshapeWave(path) }

// ReshapeSummary reads a summary export with a silent Reader.
func ReshapeSummary(path string) (*Table, error) { return defaultReader.ReshapeSummary(path) }

// ReadRaw reads a plain numeric CSV with a silent Reader.
func ReadRaw(path string) (*Table, error) { return defaultReader.ReadRaw(path) }

// CheckFileType rejects paths without a .csv extension.
func CheckFileType(path string) error {
	if filepath.Ext(path) != ".csv" {
		return fmt.Errorf("%w: %s", ErrFileType, path)
	}
	return nil
}

// readCSV loads the whole file and splits off the header row.
func (r *Reader) readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, nil, fmt.Errorf("%w: %w", ErrStructuralMismatch, err)
		}
		return nil, nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	if len(allRows) == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no header row", ErrStructuralMismatch, path)
	}

	r.logger.Debug("read csv",
		zap.String("path", path),
		zap.Int("columns", len(allRows[0])),
		zap.Int("rows", len(allRows)-1))
	return allRows[0], allRows[1:], nil
}

// parseColumn decodes column c of records as floats.
func parseColumn(header []string, records [][]string, c int) ([]float64, error) {
	values := make([]float64, len(records))
	for i, rec := range records {
		v, err := parseCell(rec[c])
		if err != nil {
			return nil, &ParseError{Row: i + 2, Column: header[c], Text: rec[c], Err: err}
		}
		values[i] = v
	}
	return values, nil
}
