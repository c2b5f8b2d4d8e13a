package parser

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ReshapeWave reads a wide wave export and returns its long form: an x column
// tiled once per parameter combination, one column per signal and one column
// per swept parameter.
func (r *Reader) ReshapeWave(path string) (*Table, error) {
	if err := CheckFileType(path); err != nil {
		return nil, err
	}
	header, records, err := r.readCSV(path)
	if err != nil {
		return nil, err
	}
	tbl, err := r.reshapeWave(header, records)
	if err != nil {
		return nil, fmt.Errorf("reshape %s: %w", path, err)
	}
	return tbl, nil
}

// waveLayout infers the signal count and the series count per signal. Signals
// are counted over the value columns only, so the time column labels do not
// need to carry the signal name.
func waveLayout(header []string) (num, series int, err error) {
	total := len(header)
	seen := make(map[string]bool)
	for c := 1; c < total; c += 2 {
		name := baseName(header[c])
		if name == "" {
			return 0, 0, &ParseError{Column: header[c], Text: header[c], Err: fmt.Errorf("label has no signal name")}
		}
		if !seen[name] {
			seen[name] = true
			num++
		}
	}
	if num == 0 {
		return 0, 0, fmt.Errorf("%w: %d columns hold no signal", ErrStructuralMismatch, total)
	}
	series = total / 2 / num
	if series < 1 || total != 2*num*series {
		return 0, 0, fmt.Errorf("%w: %d columns cannot hold %d signals as time/value pairs", ErrStructuralMismatch, total, num)
	}
	return num, series, nil
}

// longBlock accumulates the stacked frames of one signal block.
type longBlock struct {
	names   []string
	columns map[string][]float64
	rows    int
}

func newLongBlock() *longBlock {
	return &longBlock{columns: make(map[string][]float64)}
}

// stack appends a frame of n rows below the current block. Columns missing
// from either side are padded with NaN.
func (b *longBlock) stack(names []string, frame map[string][]float64, n int) {
	for _, name := range names {
		if _, ok := b.columns[name]; ok {
			continue
		}
		b.names = append(b.names, name)
		b.columns[name] = nanSlice(b.rows)
	}
	for _, name := range b.names {
		if col, ok := frame[name]; ok {
			b.columns[name] = append(b.columns[name], col...)
		} else {
			b.columns[name] = append(b.columns[name], nanSlice(n)...)
		}
	}
	b.rows += n
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

func (r *Reader) reshapeWave(header []string, records [][]string) (*Table, error) {
	num, series, err := waveLayout(header)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("wave layout",
		zap.Int("signals", num),
		zap.Int("series", series),
		zap.Int("samples", len(records)))

	x, err := parseColumn(header, records, 0)
	if err != nil {
		return nil, err
	}
	tiled := make([]float64, 0, len(x)*series)
	for i := 0; i < series; i++ {
		tiled = append(tiled, x...)
	}

	tbl := NewTable()
	tbl.appendUnique("x", tiled)

	for i := 0; i < num; i++ {
		block := newLongBlock()
		first := 2*i*series + 1
		blockName := baseName(header[first])

		for c := first; c < first+2*series; c += 2 {
			wave, params, err := ParseHeader(header[c])
			if err != nil {
				return nil, err
			}
			if wave != blockName {
				return nil, fmt.Errorf("%w: column %d (%s) sits in the block of %s", ErrStructuralMismatch, c, wave, blockName)
			}
			values, err := parseColumn(header, records, c)
			if err != nil {
				return nil, err
			}

			names := []string{wave}
			frame := map[string][]float64{wave: values}
			for _, p := range params {
				if _, dup := frame[p.Name]; dup {
					continue
				}
				col := make([]float64, len(values))
				for k := range col {
					col[k] = p.Value
				}
				names = append(names, p.Name)
				frame[p.Name] = col
			}
			block.stack(names, frame, len(values))
		}

		for _, name := range block.names {
			tbl.appendUnique(name, block.columns[name])
		}
	}
	return tbl, nil
}
