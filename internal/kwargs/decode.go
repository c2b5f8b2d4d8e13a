package kwargs

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/user/zcplot_go/internal/parser"
)

var listSpaceRe = regexp.MustCompile(`\s+`)

// Decode assigns the arguments of l to the fields of the struct pointed to by
// dst. Fields are matched through a `kw:"name,alias..."` tag; keys no field
// claims are ignored so that one list can feed several plot functions.
// Numbers accept SI prefixes ("50M", "9n").
func Decode(l List, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a pointer to struct, got %T", dst)
	}
	fields := fieldIndex(rv.Elem().Type())

	pairs, err := l.Pairs()
	if err != nil {
		return err
	}
	for _, p := range pairs {
		idx, ok := fields[p.Key]
		if !ok {
			continue
		}
		if err := setField(rv.Elem().Field(idx), p.Value); err != nil {
			return fmt.Errorf("kwarg %s=%q: %w", p.Key, p.Value, err)
		}
	}
	return nil
}

// fieldIndex maps every tag name and alias to its field index.
func fieldIndex(t reflect.Type) map[string]int {
	out := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("kw")
		if !ok || tag == "-" {
			continue
		}
		for _, name := range strings.Split(tag, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out[name] = i
			}
		}
	}
	return out
}

// Keys returns the primary key and aliases of every tagged field of the struct
// type of v, in field order.
func Keys(v any) [][]string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var out [][]string
	for i := 0; i < t.NumField(); i++ {
		if tag, ok := t.Field(i).Tag.Lookup("kw"); ok && tag != "-" {
			out = append(out, strings.Split(tag, ","))
		}
	}
	return out
}

func setField(f reflect.Value, s string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Int:
		n, err := parseInt(s)
		if err != nil {
			return err
		}
		f.SetInt(int64(n))
	case reflect.Float64:
		v, err := ParseFloat(s)
		if err != nil {
			return err
		}
		f.SetFloat(v)
	case reflect.Pointer:
		if isNone(s) {
			f.Set(reflect.Zero(f.Type()))
			return nil
		}
		v := reflect.New(f.Type().Elem())
		if err := setField(v.Elem(), s); err != nil {
			return err
		}
		f.Set(v)
	case reflect.Slice:
		switch f.Type().Elem().Kind() {
		case reflect.String:
			f.Set(reflect.ValueOf(ParseStrings(s)))
		case reflect.Float64:
			vs, err := ParseFloats(s)
			if err != nil {
				return err
			}
			f.Set(reflect.ValueOf(vs))
		default:
			return fmt.Errorf("unsupported slice type %s", f.Type())
		}
	default:
		return fmt.Errorf("unsupported field type %s", f.Type())
	}
	return nil
}

func isNone(s string) bool {
	return s == "" || strings.EqualFold(s, "none")
}

// ParseFloat parses a number that may carry an SI prefix.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty number")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	return parser.ParseSI(s)
}

func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n, nil
	}
	v, err := ParseFloat(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(v), nil
}

// ParseStrings splits a list given as "a,b", "[a,b]" or "(a, b)".
func ParseStrings(s string) []string {
	s = strings.Trim(listSpaceRe.ReplaceAllString(s, ""), "{[()]}")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// ParseFloats splits a numeric tuple such as "6,3" or "(0, 1e-9)".
func ParseFloats(s string) ([]float64, error) {
	parts := ParseStrings(s)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := ParseFloat(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
