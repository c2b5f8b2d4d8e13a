package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// siExponents maps a metric prefix letter to its scientific-notation suffix.
var siExponents = map[string]string{
	"m": "e-3",
	"u": "e-6",
	"n": "e-9",
	"p": "e-12",
	"f": "e-15",
	"a": "e-18",
	"z": "e-21",
	"k": "e3",
	"M": "e6",
	"G": "e9",
	"T": "e12",
	"P": "e15",
	"E": "e18",
}

// nanToken is the literal missing-value marker, decoded to an empty cell.
const nanToken = "nan"

var errUnknownPrefix = errors.New("unknown SI prefix")

// firstLetter returns the first ASCII letter in s, or "" when there is none.
func firstLetter(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return s[i : i+1]
		}
	}
	return ""
}

// ConvertSI rewrites the metric prefixes of every column in t and renames the
// columns to names. The first letter of each cell selects the prefixes present in
// a column; every occurrence of such a letter anywhere in that column is then
// replaced by its exponent. A letter outside the prefix set fails the conversion
// with a ParseError whose Row is the 1-based cell index within the column.
func ConvertSI(t TextTable, names []string) (TextTable, error) {
	if len(names) != len(t.Columns) {
		return TextTable{}, fmt.Errorf("%w: %d column names for %d columns", ErrStructuralMismatch, len(names), len(t.Columns))
	}

	out := TextTable{
		Names:   append([]string(nil), names...),
		Columns: make([][]string, len(t.Columns)),
	}
	for c, col := range t.Columns {
		cells := make([]string, len(col))
		var letters []string
		seen := make(map[string]bool)
		for r, cell := range col {
			if cell == nanToken {
				cell = ""
			}
			cells[r] = cell
			if l := firstLetter(cell); l != "" && !seen[l] {
				if _, ok := siExponents[l]; !ok {
					return TextTable{}, &ParseError{Row: r + 1, Column: names[c], Text: cell, Err: fmt.Errorf("%w %q", errUnknownPrefix, l)}
				}
				seen[l] = true
				letters = append(letters, l)
			}
		}
		for _, l := range letters {
			for r := range cells {
				cells[r] = strings.ReplaceAll(cells[r], l, siExponents[l])
			}
		}
		out.Columns[c] = cells
	}
	return out, nil
}

// ParseSI decodes a single value such as "3.3k" to a float. An empty string or
// the nan token decodes to NaN.
func ParseSI(s string) (float64, error) {
	s = strings.TrimSpace(s)
	t, err := ConvertSI(TextTable{Columns: [][]string{{s}}}, []string{"value"})
	if err != nil {
		return 0, err
	}
	return parseCell(t.Columns[0][0])
}

// parseCell converts a decoded cell to float. Empty cells are missing values.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
