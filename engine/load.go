package engine

import (
	"errors"

	"github.com/rithvikp/relnorm/analysis/deps"
	"github.com/rithvikp/relnorm/ast"
)

var ErrNoChaseSection = errors.New("the file has neither a RESULT nor a DISTINGUISHED section")

// FromFile builds a chase from a parsed dependency file. A RESULT section
// tests the implication of its target, a DISTINGUISHED section tests whether
// its decomposition is lossless.
func FromFile(f *ast.File, opts Options) (*Chase, error) {
	if f.Chase == nil {
		return nil, ErrNoChaseSection
	}

	ds, err := f.Deps()
	if err != nil {
		return nil, err
	}
	attrs := f.Attributes()

	if f.Chase.Target != nil {
		target, err := f.Chase.Target.Dep(attrs)
		if err != nil {
			return nil, err
		}
		return New(attrs, ds, target, opts), nil
	}

	parts := make([]deps.Attrs, len(f.Chase.Parts))
	for i, p := range f.Chase.Parts {
		parts[i] = deps.ParseAttrs(p)
	}
	return NewLossless(attrs, ds, parts, opts), nil
}
