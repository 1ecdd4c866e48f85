package ast

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/rithvikp/relnorm/analysis/deps"
)

// UnknownAttributeError reports a dependency that uses an attribute missing
// from the header.
type UnknownAttributeError struct {
	Position  lexer.Position
	Attribute deps.Attribute
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute at %s: %q is not in the header", e.Position.String(), e.Attribute)
}

// Attributes turns a header into an attribute set. Every header entry is a
// run of one-character attributes.
func Attributes(header []string) deps.Attrs {
	var attrs deps.Attrs
	for _, run := range header {
		attrs = attrs.Union(deps.ParseAttrs(run))
	}
	return attrs
}

// Dep converts the dependency, checking its attributes against attrs.
func (d *Dependency) Dep(attrs deps.Attrs) (deps.Dependency, error) {
	lhs, rhs := deps.ParseAttrs(d.LHS), deps.ParseAttrs(d.RHS)
	for _, a := range lhs.Union(rhs) {
		if !attrs.Contains(a) {
			return nil, &UnknownAttributeError{Position: d.Pos, Attribute: a}
		}
	}

	if d.Arrow == deps.KindMVD.Arrow() {
		return deps.NewMVD(lhs, rhs), nil
	}
	return deps.NewFD(lhs, rhs), nil
}

func (f *File) Attributes() deps.Attrs {
	return Attributes(f.Header)
}

// Deps converts every dependency line of the file, in order.
func (f *File) Deps() ([]deps.Dependency, error) {
	attrs := f.Attributes()
	out := make([]deps.Dependency, 0, len(f.Dependencies))
	for _, d := range f.Dependencies {
		dep, err := d.Dep(attrs)
		if err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, nil
}

// Schema builds a schema from the header and the dependency lines.
func (f *File) Schema(opts ...deps.Option) (*deps.Schema, error) {
	ds, err := f.Deps()
	if err != nil {
		return nil, err
	}

	var fds []deps.FD
	var mvds []deps.MVD
	for _, d := range ds {
		switch d := d.(type) {
		case deps.FD:
			fds = append(fds, d)
		case deps.MVD:
			mvds = append(mvds, d)
		}
	}
	return deps.NewSchema(f.Attributes(), fds, mvds, opts...), nil
}
