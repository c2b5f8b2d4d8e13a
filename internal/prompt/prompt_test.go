package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/zcplot_go/internal/kwargs"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  bool
		sel   string
	}{
		{name: "empty takes yes default", input: "\n", def: DefaultYes, want: true, sel: "[Y/n]"},
		{name: "empty takes no default", input: "\n", def: DefaultNo, want: false, sel: "[y/N]"},
		{name: "explicit no", input: "n\n", def: DefaultYes, want: false},
		{name: "case insensitive", input: "YE\n", def: DefaultNo, want: true},
		{name: "retry until valid", input: "maybe\n\nyes\n", def: NoDefault, want: true, sel: "[y/n]"},
		{name: "eof without default", input: "", def: NoDefault, want: false},
		{name: "eof after answer", input: "y", def: DefaultNo, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)
			got, err := p.Query("Create it?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Create it?")
			if tt.sel != "" {
				assert.Contains(t, out.String(), tt.sel)
			}
		})
	}

	_, err := New(strings.NewReader(""), &bytes.Buffer{}).Query("?", "maybe")
	assert.Error(t, err)
}

func TestAssumeYes(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("n\n"), &out)
	p.AssumeYes = true
	assert.True(t, p.Confirm("Overwrite?"))
	assert.Empty(t, out.String())
}

func TestInputList(t *testing.T) {
	p := New(strings.NewReader("x = time\n# note\nys=1e3\n\nignored=1\n"), &bytes.Buffer{})
	got, err := p.InputList()
	require.NoError(t, err)
	assert.Equal(t, kwargs.List{"x=time", "ys=1e3"}, got)

	p = New(strings.NewReader("title = a b"), &bytes.Buffer{})
	got, err = p.InputList()
	require.NoError(t, err)
	assert.Equal(t, kwargs.List{"title=a b"}, got)

	p = New(strings.NewReader("novalue\n"), &bytes.Buffer{})
	_, err = p.InputList()
	assert.Error(t, err)
}
