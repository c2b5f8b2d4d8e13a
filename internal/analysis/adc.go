package analysis

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/user/zcplot_go/internal/parser"
)

// bitIndexRe captures the last digit run of a bit column label, e.g. 3 in "/DATA<3> V".
var bitIndexRe = regexp.MustCompile(`([0-9]+)[^0-9]*$`)

// BitColumn is a data bit column and its binary weight.
type BitColumn struct {
	Name   string
	Weight int
}

// FindBitColumns returns every column after the first whose name contains
// label, with the weight taken from the last number in the name.
func FindBitColumns(names []string, label string) ([]BitColumn, error) {
	var bits []BitColumn
	for i, name := range names {
		if i == 0 || !strings.Contains(name, label) {
			continue
		}
		m := bitIndexRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("bit column %q carries no bit index", name)
		}
		w, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("bit column %q: %w", name, err)
		}
		bits = append(bits, BitColumn{Name: name, Weight: w})
	}
	if len(bits) == 0 {
		return nil, fmt.Errorf("%w: label %q", ErrNoBits, label)
	}
	return bits, nil
}

// DecodeBits sums the weighted data bit columns of tbl into one code per row.
// A non-zero bits value is checked against the number of bit columns found.
func DecodeBits(tbl *parser.Table, varCol, label string, bits int) (*CodeResult, error) {
	v, ok := tbl.Column(varCol)
	if !ok {
		return nil, fmt.Errorf("no column %q", varCol)
	}
	cols, err := FindBitColumns(tbl.Names(), label)
	if err != nil {
		return nil, err
	}
	if bits != 0 && len(cols) != bits {
		return nil, fmt.Errorf("%w: decoded %d, specified %d", ErrBitWidth, len(cols), bits)
	}

	code := make([]float64, len(v))
	for _, c := range cols {
		values, _ := tbl.Column(c.Name)
		weight := math.Pow(2, float64(c.Weight))
		for i, b := range values {
			code[i] += b * weight
		}
	}
	return &CodeResult{Var: v, Code: code, Bits: len(cols)}, nil
}

// DNL returns the code step from each entry to the next. The last entry has no
// successor and is NaN.
func DNL(code []float64) []float64 {
	out := make([]float64, len(code))
	for i := 0; i+1 < len(code); i++ {
		out[i] = code[i+1] - code[i]
	}
	if len(out) > 0 {
		out[len(out)-1] = math.NaN()
	}
	return out
}

// INL maps each code onto an ideal code space spanning [vmin, vmax] with
// 2^bits levels. Codes outside the space are NaN.
func INL(code []float64, vmin, vmax float64, bits int) []float64 {
	levels := 1 << bits
	space := make([]float64, levels)
	if levels == 1 {
		space[0] = vmin
	} else {
		floats.Span(space, vmin, vmax)
	}
	out := make([]float64, len(code))
	for i, c := range code {
		k := int(c)
		if math.IsNaN(c) || k < 0 || k >= levels {
			out[i] = math.NaN()
			continue
		}
		out[i] = space[k]
	}
	return out
}

// FillLinearity computes DNL and, when requested, INL over the Var range.
func (r *CodeResult) FillLinearity(withINL bool, bits int) error {
	r.DNL = DNL(r.Code)
	r.AbsDNL = make([]float64, len(r.DNL))
	for i, d := range r.DNL {
		r.AbsDNL[i] = math.Abs(d)
	}
	if !withINL {
		return nil
	}
	if bits <= 0 {
		return fmt.Errorf("bitwidth not specified; cannot compute INL")
	}
	vmin, vmax := finiteRange(r.Var)
	r.INL = INL(r.Code, vmin, vmax, bits)
	for i, v := range r.INL {
		if math.IsNaN(v) && !math.IsNaN(r.Code[i]) {
			r.Errors = append(r.Errors, fmt.Sprintf("code %g at input %g is outside the %d-bit code space", r.Code[i], r.Var[i], bits))
		}
	}
	return nil
}

// WorstDNL ranks the entries by absolute DNL, largest first, and returns up to n.
func (r *CodeResult) WorstDNL(n int) []RankedStep {
	ranked := make([]RankedStep, 0, len(r.DNL))
	for i, d := range r.DNL {
		if !math.IsNaN(d) {
			ranked = append(ranked, RankedStep{Var: r.Var[i], DNL: d})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].DNL) > math.Abs(ranked[j].DNL) // Descending
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Table returns the result as a table with columns var, code and, when
// computed, dnl, abs_dnl and inl.
func (r *CodeResult) Table(varName string) (*parser.Table, error) {
	tbl := parser.NewTable()
	cols := []struct {
		name   string
		values []float64
	}{
		{varName, r.Var},
		{"code", r.Code},
		{"dnl", r.DNL},
		{"abs_dnl", r.AbsDNL},
		{"inl", r.INL},
	}
	for _, c := range cols {
		if c.values == nil {
			continue
		}
		if err := tbl.AddColumn(c.name, c.values); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// finiteRange returns the smallest and largest non-NaN values of v.
func finiteRange(v []float64) (float64, float64) {
	finite := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(finite), floats.Max(finite)
}
