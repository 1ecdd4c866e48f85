// Package proof checks derivations of FDs and MVDs built from the Armstrong
// axioms and the MVD inference rules.
package proof

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/rithvikp/relnorm/analysis/deps"
	"github.com/rithvikp/relnorm/ast"
)

const given = "Given"

// Step is one line of a derivation. Refs are 1-based step numbers.
type Step struct {
	Pos  lexer.Position
	Dep  deps.Dependency
	Rule string
	Refs []int
	With deps.Attrs
}

func (s Step) String() string {
	switch {
	case len(s.Refs) == 0 && len(s.With) == 0:
		return fmt.Sprintf("%s [ %s ]", s.Dep, s.Rule)
	case len(s.With) == 0:
		return fmt.Sprintf("%s [ %s %v ]", s.Dep, s.Rule, s.Refs)
	}
	return fmt.Sprintf("%s [ %s %v with %s ]", s.Dep, s.Rule, s.Refs, s.With)
}

type Proof struct {
	Attrs deps.Attrs
	Steps []Step
}

// New converts a parsed proof, checking that every dependency only uses
// attributes from the header.
func New(p *ast.Proof) (*Proof, error) {
	pf := &Proof{Attrs: ast.Attributes(p.Header)}
	for _, s := range p.Steps {
		d, err := s.Dependency.Dep(pf.Attrs)
		if err != nil {
			return nil, err
		}
		pf.Steps = append(pf.Steps, Step{
			Pos:  s.Pos,
			Dep:  d,
			Rule: s.Rule,
			Refs: s.Refs,
			With: deps.ParseAttrs(s.With),
		})
	}
	return pf, nil
}

// Result is the outcome of checking a proof. Accepted holds the steps that
// were verified, in order; when Valid is false, Failed is the first step that
// does not follow from its rule.
type Result struct {
	Accepted []Step
	Valid    bool
	Failed   *Step
}

// Check verifies every step in order. A step that does not follow from its
// rule stops the check with an invalid result; malformed steps (unknown
// rules, bad references, wrong arity) stop it with an error.
func Check(p *Proof) (*Result, error) {
	res := &Result{Valid: true}
	for i, s := range p.Steps {
		ok, err := checkStep(p.Attrs, res.Accepted, i+1, s)
		if err != nil {
			return nil, err
		}
		if !ok {
			failed := s
			res.Valid = false
			res.Failed = &failed
			return res, nil
		}
		res.Accepted = append(res.Accepted, s)
	}
	return res, nil
}

func checkStep(attrs deps.Attrs, prior []Step, n int, s Step) (bool, error) {
	if s.Rule == given {
		return true, nil
	}

	var rules map[string]rule
	switch s.Dep.Kind() {
	case deps.KindFD:
		rules = fdRules
	case deps.KindMVD:
		rules = mvdRules
	default:
		panic(fmt.Sprintf("unknown dependency kind %d", int(s.Dep.Kind())))
	}

	r, ok := rules[s.Rule]
	if !ok {
		return false, &UnsupportedRuleError{Position: s.Pos, Rule: s.Rule, Kind: s.Dep.Kind()}
	}
	if r.arity > 0 && len(s.Refs) != r.arity {
		return false, &ArityError{Position: s.Pos, Rule: s.Rule, Want: r.arity, Got: len(s.Refs)}
	}

	refs := make([]deps.Dependency, 0, r.arity)
	for _, ref := range s.Refs[:r.arity] {
		if ref < 1 || ref > len(prior) {
			return false, &InvalidReferenceError{Position: s.Pos, Step: n, Ref: ref}
		}
		refs = append(refs, prior[ref-1].Dep)
	}

	return r.check(s.Dep, refs, s.With, attrs), nil
}
