package ast

import (
	"bytes"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a dependency file: a header line of attributes, one dependency per
// line, and optionally a chase section. The header is either a contiguous
// run ("ABCD") or a comma-separated list ("A,B,C,D").
type File struct {
	Pos lexer.Position

	Header       []string      `parser:"EOL* @Ident (',' @Ident)* EOL+"`
	Dependencies []*Dependency `parser:"(@@ EOL+)*"`
	Chase        *Chase        `parser:"@@?"`
}

// Chase is either a RESULT section naming the target dependency or a
// DISTINGUISHED section listing the parts of a decomposition.
type Chase struct {
	Pos lexer.Position

	Target *Dependency `parser:"  'RESULT' EOL+ @@ EOL*"`
	Parts  []string    `parser:"| 'DISTINGUISHED' EOL+ @Ident+ EOL*"`
}

type Dependency struct {
	Pos lexer.Position

	LHS   string `parser:"@Ident"`
	Arrow string `parser:"@Arrow"`
	RHS   string `parser:"@Ident"`
}

// Proof is a header line followed by numbered derivation steps, one per line:
// a dependency, the rule name, the referenced steps and the attributes used
// by augmentation.
type Proof struct {
	Pos lexer.Position

	Header []string `parser:"EOL* @Ident (',' @Ident)* EOL+"`
	Steps  []*Step  `parser:"(@@ EOL+)*"`
}

type Step struct {
	Pos lexer.Position

	Dependency *Dependency `parser:"@@"`
	Rule       string      `parser:"@Ident"`
	Refs       []int       `parser:"(@Int (',' @Int)*)?"`
	With       string      `parser:"@Ident?"`
}

var (
	lex = lexer.MustSimple([]lexer.Rule{
		{Name: "Keyword", Pattern: `\b(RESULT|DISTINGUISHED)\b`, Action: nil},
		{Name: "Arrow", Pattern: `->>|->`, Action: nil},
		{Name: "Int", Pattern: `[0-9]+`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_]([a-zA-Z0-9_])*`, Action: nil},
		{Name: "Delim", Pattern: `[,]`, Action: nil},
		{Name: "EOL", Pattern: `[\r\n]+`, Action: nil},
		{Name: "whitespace", Pattern: `[ \t]+`, Action: nil},
	})

	fileParser  = participle.MustBuild(&File{}, participle.Lexer(lex))
	proofParser = participle.MustBuild(&Proof{}, participle.Lexer(lex))
)

func Parse(r io.Reader) (*File, error) {
	src, err := terminated(r)
	if err != nil {
		return nil, err
	}

	f := &File{}
	err = fileParser.Parse("", src, f)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func ParseProof(r io.Reader) (*Proof, error) {
	src, err := terminated(r)
	if err != nil {
		return nil, err
	}

	p := &Proof{}
	err = proofParser.Parse("", src, p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// terminated makes sure the input ends with a newline so that every line,
// including the last one, carries its EOL token.
func terminated(r io.Reader) (io.Reader, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !bytes.HasSuffix(src, []byte("\n")) {
		src = append(src, '\n')
	}
	return bytes.NewReader(src), nil
}
