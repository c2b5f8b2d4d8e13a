// Package prompt reads yes/no answers and kwarg lines from the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/user/zcplot_go/internal/kwargs"
)

// Default answers for Query.
const (
	NoDefault  = ""
	DefaultYes = "yes"
	DefaultNo  = "no"
)

var answers = map[string]bool{"yes": true, "y": true, "ye": true, "no": false, "n": false}

// Prompter asks questions on Out and reads the answers from In.
type Prompter struct {
	In        *bufio.Reader
	Out       io.Writer
	AssumeYes bool
}

// New returns a Prompter reading from in.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: bufio.NewReader(in), Out: out}
}

// Query asks a yes/no question until it gets a valid answer. An empty answer
// takes def when one is set. End of input takes def, or no without one.
func (p *Prompter) Query(question, def string) (bool, error) {
	var sel string
	switch def {
	case NoDefault:
		sel = " [y/n] "
	case DefaultYes:
		sel = " [Y/n] "
	case DefaultNo:
		sel = " [y/N] "
	default:
		return false, fmt.Errorf("invalid default answer %q", def)
	}
	if p.AssumeYes {
		return true, nil
	}

	for {
		fmt.Fprint(p.Out, question+sel)
		line, err := p.In.ReadString('\n')
		resp := strings.ToLower(strings.TrimSpace(line))
		if resp == "" && def != NoDefault {
			return answers[def], nil
		}
		if v, ok := answers[resp]; ok {
			return v, nil
		}
		if err == io.EOF {
			fmt.Fprintln(p.Out)
			return answers[def], nil
		}
		if err != nil {
			return false, err
		}
	}
}

// Confirm asks question with a yes default and treats read errors as no.
func (p *Prompter) Confirm(question string) bool {
	ok, err := p.Query(question, DefaultYes)
	return err == nil && ok
}

// InputList reads kwarg lines until a blank line or end of input. Whitespace
// around '=' is dropped and '#' lines are skipped.
func (p *Prompter) InputList() (kwargs.List, error) {
	var out kwargs.List
	for {
		line, err := p.In.ReadString('\n')
		if strings.TrimSpace(line) == "" {
			if err != nil && err != io.EOF {
				return nil, err
			}
			return out, nil
		}
		parsed, perr := kwargs.ParseLine(strings.TrimSpace(line))
		if perr != nil {
			return nil, perr
		}
		out = append(out, parsed...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
