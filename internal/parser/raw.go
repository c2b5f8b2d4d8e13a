package parser

import (
	"fmt"
	"strings"
)

// ReadRaw reads a plain numeric CSV: the header row names the columns and
// every cell is a float or empty.
func (r *Reader) ReadRaw(path string) (*Table, error) {
	if err := CheckFileType(path); err != nil {
		return nil, err
	}
	header, records, err := r.readCSV(path)
	if err != nil {
		return nil, err
	}

	tbl := NewTable()
	for c, name := range header {
		name = strings.TrimSpace(name)
		values, err := parseColumn(header, records, c)
		if err != nil {
			return nil, err
		}
		if err := tbl.AddColumn(name, values); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStructuralMismatch, err)
		}
	}
	return tbl, nil
}
