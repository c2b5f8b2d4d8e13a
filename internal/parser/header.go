package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// paramGroupRe captures the last parenthesized group that is surrounded by
// spaces, e.g. "(vdd=1.2,temp=27)" in "/outp (vdd=1.2,temp=27) V".
var paramGroupRe = regexp.MustCompile(`.+ \((.*)\) .+`)

// baseName returns the first whitespace token of label with surrounding '/' removed.
func baseName(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], "/")
}

// ParseHeader extracts the signal name and the embedded parameter assignments
// from a wide-format column label.
func ParseHeader(label string) (string, []Param, error) {
	name := baseName(label)
	if name == "" {
		return "", nil, &ParseError{Column: label, Text: label, Err: fmt.Errorf("label has no signal name")}
	}

	match := paramGroupRe.FindStringSubmatch(label)
	if match == nil || strings.TrimSpace(match[1]) == "" {
		return name, nil, nil
	}

	terms := strings.Split(match[1], ",")
	params := make([]Param, 0, len(terms))
	for _, term := range terms {
		key, value, ok := strings.Cut(term, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return "", nil, &ParseError{Column: label, Text: term, Err: fmt.Errorf("expected name=value")}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return "", nil, &ParseError{Column: label, Text: term, Err: err}
		}
		params = append(params, Param{Name: key, Value: v})
	}
	return name, params, nil
}
