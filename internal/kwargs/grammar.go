package kwargs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// fileLexer tokenizes kwargs files. Everything after '=' up to the end of the
// line is a single Value token.
var fileLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Assign", Pattern: `=`, Action: lexer.Push("Rest")},
		{Name: "Key", Pattern: `[^=\s#]+`},
	},
	"Rest": {
		{Name: "Value", Pattern: `[^\n]*`, Action: lexer.Pop()},
	},
})

// File is the parsed form of a kwargs file.
type File struct {
	Entries []*Entry `parser:"@@*"`
}

// Entry is one "key = value" line.
type Entry struct {
	Pos   lexer.Position
	Key   string `parser:"@Key Assign"`
	Value string `parser:"@Value?"`
}

// Parser reads kwargs files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a kwargs file parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(fileLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads kwargs from r. name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) (List, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file.list(), nil
}

// ParseString reads kwargs from s.
func (p *Parser) ParseString(name, s string) (List, error) {
	file, err := p.parser.ParseString(name, s)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file.list(), nil
}

// ParseFile reads kwargs from the file at path.
func (p *Parser) ParseFile(path string) (List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(path, file)
}

func (f *File) list() List {
	out := make(List, 0, len(f.Entries))
	for _, e := range f.Entries {
		out = append(out, e.Key+"="+strings.TrimSpace(e.Value))
	}
	return out
}

var defaultParser = func() *Parser {
	p, err := NewParser()
	if err != nil {
		panic(err)
	}
	return p
}()

// Load reads a kwargs file with the default parser.
func Load(path string) (List, error) {
	return defaultParser.ParseFile(path)
}

// ParseLine reads a single interactive "key = value" line. A blank or comment
// line yields an empty list.
func ParseLine(line string) (List, error) {
	return defaultParser.ParseString("", line)
}
