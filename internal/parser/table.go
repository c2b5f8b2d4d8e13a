package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Table is a column-oriented numeric table. Column order is preserved and
// every column holds the same number of rows. Missing values are NaN.
type Table struct {
	names   []string
	columns map[string][]float64
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		names:   make([]string, 0),
		columns: make(map[string][]float64),
	}
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.names) }

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.names) == 0 {
		return 0
	}
	return len(t.columns[t.names[0]])
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), col...), true
}

// AddColumn appends a column. The name must be new and the length must match
// the existing rows.
func (t *Table) AddColumn(name string, values []float64) error {
	if t.Has(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(t.names) > 0 && len(values) != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), t.NumRows())
	}
	t.names = append(t.names, name)
	t.columns[name] = append([]float64(nil), values...)
	return nil
}

// SetColumn replaces the values of an existing column or appends a new one.
func (t *Table) SetColumn(name string, values []float64) error {
	if !t.Has(name) {
		return t.AddColumn(name, values)
	}
	if len(values) != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), t.NumRows())
	}
	t.columns[name] = append([]float64(nil), values...)
	return nil
}

// Rename changes the name of a column in place.
func (t *Table) Rename(from, to string) error {
	if from == to {
		return nil
	}
	col, ok := t.columns[from]
	if !ok {
		return fmt.Errorf("no column %q", from)
	}
	if t.Has(to) {
		return fmt.Errorf("column %q already exists", to)
	}
	for i, n := range t.names {
		if n == from {
			t.names[i] = to
		}
	}
	delete(t.columns, from)
	t.columns[to] = col
	return nil
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, n := range t.names {
		out.names = append(out.names, n)
		out.columns[n] = append([]float64(nil), t.columns[n]...)
	}
	return out
}

// Select returns a new table holding the named columns in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	out := NewTable()
	for _, n := range names {
		col, ok := t.columns[n]
		if !ok {
			return nil, fmt.Errorf("no column %q", n)
		}
		if err := out.AddColumn(n, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	var rows []int
	for r := 0; r < t.NumRows(); r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	out := NewTable()
	for _, n := range t.names {
		src := t.columns[n]
		col := make([]float64, len(rows))
		for i, r := range rows {
			col[i] = src[r]
		}
		out.names = append(out.names, n)
		out.columns[n] = col
	}
	return out
}

// Row returns the values of row r in column order.
func (t *Table) Row(r int) []float64 {
	row := make([]float64, len(t.names))
	for i, n := range t.names {
		row[i] = t.columns[n][r]
	}
	return row
}

// appendUnique adds a column unless one of the same name is already present.
// The first occurrence wins.
func (t *Table) appendUnique(name string, values []float64) {
	if t.Has(name) {
		return
	}
	t.names = append(t.names, name)
	t.columns[name] = values
}

// dropEmptyColumns removes every column whose values are all NaN.
func (t *Table) dropEmptyColumns() {
	kept := t.names[:0]
	for _, n := range t.names {
		empty := true
		for _, v := range t.columns[n] {
			if !math.IsNaN(v) {
				empty = false
				break
			}
		}
		if empty {
			delete(t.columns, n)
			continue
		}
		kept = append(kept, n)
	}
	t.names = kept
}

// FormatValue renders a value the way it is written to CSV and logs.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes the table with a header row. Missing values are empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.names); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(t.names))
	for r := 0; r < t.NumRows(); r++ {
		for i, n := range t.names {
			record[i] = FormatValue(t.columns[n][r])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", r, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Fprint writes an aligned text dump of the table with a leading row index.
// When the table has more than maxRows rows only the head and tail are shown.
// maxRows <= 0 prints every row.
func (t *Table) Fprint(w io.Writer, maxRows int) error {
	if len(t.names) == 0 {
		_, err := fmt.Fprintln(w, "Empty table")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(t.names, "\t"))

	n := t.NumRows()
	writeRow := func(r int) {
		cells := make([]string, len(t.names))
		for i, name := range t.names {
			v := t.columns[name][r]
			if math.IsNaN(v) {
				cells[i] = "NaN"
			} else {
				cells[i] = strconv.FormatFloat(v, 'g', 6, 64)
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t\n", r, strings.Join(cells, "\t"))
	}

	if maxRows <= 0 || n <= maxRows {
		for r := 0; r < n; r++ {
			writeRow(r)
		}
	} else {
		head := maxRows / 2
		tail := maxRows - head
		for r := 0; r < head; r++ {
			writeRow(r)
		}
		dots := make([]string, len(t.names))
		for i := range dots {
			dots[i] = "..."
		}
		fmt.Fprintf(tw, "...\t%s\t\n", strings.Join(dots, "\t"))
		for r := n - tail; r < n; r++ {
			writeRow(r)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n[%d rows x %d columns]\n", n, len(t.names))
	return err
}
