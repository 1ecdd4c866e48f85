package proof

import "github.com/rithvikp/relnorm/analysis/deps"

type rule struct {
	arity int
	// check reports whether d follows from refs. refs has exactly arity
	// entries, in the order the step cites them.
	check func(d deps.Dependency, refs []deps.Dependency, with, attrs deps.Attrs) bool
}

var fdRules = map[string]rule{
	"Reflexivity": {arity: 0, check: func(d deps.Dependency, _ []deps.Dependency, _, _ deps.Attrs) bool {
		return d.Right().SubsetOf(d.Left())
	}},
	"Transitivity": {arity: 2, check: func(d deps.Dependency, refs []deps.Dependency, _, _ deps.Attrs) bool {
		l, r, ok := fds(refs[0], refs[1])
		return ok &&
			d.Left().Equal(l.LHS) &&
			d.Right().Equal(r.RHS) &&
			l.RHS.Equal(r.LHS)
	}},
	"Augmentation": {arity: 1, check: func(d deps.Dependency, refs []deps.Dependency, with, _ deps.Attrs) bool {
		init, ok := refs[0].(deps.FD)
		return ok &&
			d.Left().Equal(init.LHS.Union(with)) &&
			d.Right().Equal(init.RHS.Union(with))
	}},
	// X ->> Y and W -> Z with Z a proper subset of Y and W disjoint from Y
	// give X -> Z.
	"Coalescence": {arity: 2, check: func(d deps.Dependency, refs []deps.Dependency, _, _ deps.Attrs) bool {
		m, ok := refs[0].(deps.MVD)
		if !ok {
			return false
		}
		f, ok := refs[1].(deps.FD)
		return ok &&
			d.Left().Equal(m.LHS) &&
			d.Right().Equal(f.RHS) &&
			f.RHS.ProperSubsetOf(m.RHS) &&
			len(f.LHS.Intersect(m.RHS)) == 0
	}},
}

var mvdRules = map[string]rule{
	"Complementation": {arity: 1, check: func(d deps.Dependency, refs []deps.Dependency, _, attrs deps.Attrs) bool {
		init, ok := refs[0].(deps.MVD)
		return ok &&
			d.Left().Equal(init.LHS) &&
			d.Right().Equal(attrs.Minus(init.LHS).Minus(init.RHS))
	}},
	"Augmentation": {arity: 1, check: func(d deps.Dependency, refs []deps.Dependency, with, attrs deps.Attrs) bool {
		init, ok := refs[0].(deps.MVD)
		return ok &&
			d.Left().Equal(init.LHS.Union(with)) &&
			d.Right().Minus(init.RHS).ProperSubsetOf(with) &&
			with.ProperSubsetOf(attrs)
	}},
	"Transitivity": {arity: 2, check: func(d deps.Dependency, refs []deps.Dependency, _, _ deps.Attrs) bool {
		l, r, ok := mvds(refs[0], refs[1])
		return ok &&
			d.Left().Equal(l.LHS) &&
			l.RHS.Equal(r.LHS) &&
			d.Right().Equal(r.RHS.Minus(r.LHS))
	}},
	"Replication": {arity: 1, check: func(d deps.Dependency, refs []deps.Dependency, _, _ deps.Attrs) bool {
		f, ok := refs[0].(deps.FD)
		return ok && d.Left().Equal(f.LHS) && d.Right().Equal(f.RHS)
	}},
	"Union": {arity: 2, check: func(d deps.Dependency, refs []deps.Dependency, _, _ deps.Attrs) bool {
		l, r, ok := mvds(refs[0], refs[1])
		return ok && sameLHS(d, l, r) && d.Right().Equal(l.RHS.Union(r.RHS))
	}},
	"Intersection": {arity: 2, check: func(d deps.Dependency, refs []deps.Dependency, _, _ deps.Attrs) bool {
		l, r, ok := mvds(refs[0], refs[1])
		return ok && sameLHS(d, l, r) && d.Right().Equal(l.RHS.Intersect(r.RHS))
	}},
	"Difference": {arity: 2, check: func(d deps.Dependency, refs []deps.Dependency, _, _ deps.Attrs) bool {
		l, r, ok := mvds(refs[0], refs[1])
		return ok && sameLHS(d, l, r) && d.Right().Equal(l.RHS.Minus(r.RHS))
	}},
}

func fds(a, b deps.Dependency) (deps.FD, deps.FD, bool) {
	l, ok1 := a.(deps.FD)
	r, ok2 := b.(deps.FD)
	return l, r, ok1 && ok2
}

func mvds(a, b deps.Dependency) (deps.MVD, deps.MVD, bool) {
	l, ok1 := a.(deps.MVD)
	r, ok2 := b.(deps.MVD)
	return l, r, ok1 && ok2
}

func sameLHS(d deps.Dependency, l, r deps.MVD) bool {
	return d.Left().Equal(l.LHS) && d.Left().Equal(r.LHS)
}
