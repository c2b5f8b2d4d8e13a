// Package kwargs handles the key=value arguments handed to plot functions:
// splitting, file import/export and decoding into typed config structs.
package kwargs

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// List is an ordered sequence of "key=value" arguments. Later entries override
// earlier ones for the same key.
type List []string

// Pair is one split argument.
type Pair struct {
	Key   string
	Value string
}

// Split splits an argument on its first '='.
func Split(arg string) (Pair, error) {
	key, value, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return Pair{}, fmt.Errorf("misformed kwarg %q: expected key=value", arg)
	}
	return Pair{Key: key, Value: strings.TrimSpace(value)}, nil
}

// Pairs splits every argument.
func (l List) Pairs() ([]Pair, error) {
	pairs := make([]Pair, 0, len(l))
	for _, arg := range l {
		p, err := Split(arg)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// Get returns the last value given for key or one of its aliases.
func (l List) Get(key string, aliases ...string) (string, bool) {
	var (
		value string
		found bool
	)
	for _, arg := range l {
		p, err := Split(arg)
		if err != nil {
			continue
		}
		if p.Key == key || contains(aliases, p.Key) {
			value, found = p.Value, true
		}
	}
	return value, found
}

// With returns a new list with extra appended.
func (l List) With(extra ...string) List {
	out := make(List, 0, len(l)+len(extra))
	out = append(out, l...)
	return append(out, extra...)
}

// Prepend returns a new list with extra placed first, so that l overrides it.
func (l List) Prepend(extra ...string) List {
	out := make(List, 0, len(l)+len(extra))
	out = append(out, extra...)
	return append(out, l...)
}

// Without returns a new list without the arguments for the given keys.
func (l List) Without(keys ...string) List {
	out := make(List, 0, len(l))
	for _, arg := range l {
		if p, err := Split(arg); err == nil && contains(keys, p.Key) {
			continue
		}
		out = append(out, arg)
	}
	return out
}

// Merged collapses repeated keys. Keys keep their first position and take
// their last value.
func (l List) Merged() ([]Pair, error) {
	pairs, err := l.Pairs()
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var out []Pair
	for _, p := range pairs {
		if i, ok := index[p.Key]; ok {
			out[i].Value = p.Value
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return out, nil
}

// Export writes l in kwargs file format with a generated header.
func Export(w io.Writer, l List, version string, now time.Time) error {
	pairs, err := l.Merged()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# zcplot ver. %s\n", version)
	fmt.Fprintf(w, "# Automatically generated on %s at %s\n", now.Format("2006-01-02"), now.Format("15:04:05"))
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("#", 80))
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%s = %s\n", p.Key, p.Value); err != nil {
			return fmt.Errorf("failed to write kwarg %s: %w", p.Key, err)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
