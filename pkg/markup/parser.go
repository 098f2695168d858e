// Package markup builds widget trees from a small declarative language.
//
// A document holds one root widget. Each widget is a kind followed by an
// optional #name, positional arguments, properties and an optional block of
// children:
//
//	// settings screen
//	column gap=2 cross=stretch {
//	    label "Settings" bold role=accent
//	    row #toolbar {
//	        button "Save" action=save width=50
//	        filler
//	        toggle "Wi-Fi" on
//	    }
//	    slider 0 100 40 step=5
//	    gauge 0.4 label; label "done"
//	}
//
// Positional arguments are strings or numbers. Properties are key=value
// pairs, or bare keys for boolean flags. Statements are separated by newlines
// or semicolons.
package markup

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	markupLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Name", Pattern: `#[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}=;]`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(markupLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Document is the root AST node of a markup file.
type Document struct {
	Pos  lexer.Position `parser:""`
	Root *Node          `parser:"( Newline | ';' )* @@ ( Newline | ';' )*"`
}

// Node is one widget declaration.
type Node struct {
	Pos      lexer.Position `parser:""`
	Kind     string         `parser:"@Ident"`
	Name     NameLiteral    `parser:"@Name?"`
	Args     []*Arg         `parser:"@@*"`
	Children []*Node        `parser:"( '{' ( Newline | ';' )* ( @@ ( Newline | ';' )* )* '}' )?"`
}

// Arg is a property or a positional value.
type Arg struct {
	Pos   lexer.Position `parser:""`
	Prop  *Prop          `parser:"  @@"`
	Value *Value         `parser:"| @@"`
}

// Prop is a key with an optional value. A bare key is a true flag.
type Prop struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"( '=' @@ )?"`
}

// Value is a literal.
type Value struct {
	Str   *StringLiteral `parser:"  @String"`
	Num   *NumberLiteral `parser:"| @Number"`
	Ident *string        `parser:"| @Ident"`
}

// String returns the value as written, without quotes.
func (v *Value) String() string {
	switch {
	case v == nil:
		return ""
	case v.Str != nil:
		return string(*v.Str)
	case v.Num != nil:
		return strconv.FormatFloat(float64(*v.Num), 'g', -1, 64)
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// NumberLiteral parses a decimal number on capture.
type NumberLiteral float64

// Capture implements participle.Capture.
func (n *NumberLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("number literal capture requires value")
	}
	f, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return err
	}
	*n = NumberLiteral(f)
	return nil
}

// NameLiteral strips the leading '#' of a node name.
type NameLiteral string

// Capture implements participle.Capture.
func (n *NameLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return nil
	}
	v := values[0]
	if len(v) > 0 && v[0] == '#' {
		v = v[1:]
	}
	*n = NameLiteral(v)
	return nil
}

// Parse parses a markup document from r. The name is used in error positions.
func Parse(name string, r io.Reader) (*Document, error) {
	return documentParser.Parse(name, r)
}

// ParseString parses a markup document from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
