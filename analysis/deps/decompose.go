package deps

import (
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Decompose runs the BCNF decomposition algorithm. A schema already in BCNF
// decomposes to itself. Otherwise the first violating FD X -> Y splits the
// schema into X+ and (R - X+) u X, and both halves are decomposed in turn.
func (s *Schema) Decompose() []*Schema {
	return slices.Clone(s.bcnf.get(func() []*Schema {
		if s.IsInBCNF() {
			return []*Schema{s}
		}

		f, _ := s.bcnfViolation()
		r1 := Closure(f.LHS, s.fds.elems)
		r2 := s.attrs.Minus(r1).Union(f.LHS)
		s.trace(TraceEvent{Stage: StageSplit, Dep: f, Parts: []Attrs{r1, r2}})

		return s.split(r1, r2, (*Schema).Decompose)
	}))
}

// IsDependencyPreserving reports whether the FDs of the BCNF decomposition
// have exactly the same closure as the schema's FDs.
func (s *Schema) IsDependencyPreserving() bool {
	if s.IsInBCNF() {
		return true
	}

	var derived []FD
	for _, child := range s.Decompose() {
		derived = append(derived, child.FDs()...)
	}
	derivedClosure := NewFDSet(NewSchema(s.attrs, derived, nil).FDClosure()...)
	originalClosure := NewFDSet(s.FDClosure()...)

	return derivedClosure.Equal(originalClosure)
}

// Synthesize runs the 3NF synthesis algorithm: one relation per LHS group of
// a minimal cover, plus a candidate key relation if no group holds a key,
// without relations contained in another one.
func (s *Schema) Synthesize() []*Schema {
	return slices.Clone(s.synthesis.get(func() []*Schema {
		if s.IsIn3NF() {
			return []*Schema{s}
		}

		cover := CompactFDs(s.MinimalCoverFromFDs())
		relations := make([]Attrs, 0, len(cover)+1)
		for _, f := range cover {
			relations = append(relations, f.LHS.Union(f.RHS))
		}

		keys := s.CandidateKeys()
		hasKey := false
		for _, k := range keys {
			for _, r := range relations {
				if k.SubsetOf(r) {
					hasKey = true
					break
				}
			}
			if hasKey {
				break
			}
		}
		if !hasKey && len(keys) > 0 {
			relations = append(relations, keys[0])
		}

		var kept []Attrs
		for i, r := range relations {
			contained := false
			for j, other := range relations {
				if r.ProperSubsetOf(other) || (j < i && r.Equal(other)) {
					contained = true
					break
				}
			}
			if !contained {
				kept = append(kept, r)
			}
		}
		s.trace(TraceEvent{Stage: StageSynthesis, FDs: cover, Parts: kept})

		children := make([]*Schema, len(kept))
		for i, r := range kept {
			children[i] = s.Project(r)
		}
		return children
	}))
}

// IsSynthesisInBCNF reports whether every relation of the 3NF synthesis is
// also in BCNF.
func (s *Schema) IsSynthesisInBCNF() bool {
	if s.IsIn3NF() {
		return true
	}
	for _, child := range s.Synthesize() {
		if !child.IsInBCNF() {
			return false
		}
	}
	return true
}

// Decompose4NF splits on the first MVD X ->> Y violating 4NF into XY and
// R - (Y - X), and decomposes both halves. MVDs whose split would not shrink
// the schema are passed over.
func (s *Schema) Decompose4NF() []*Schema {
	return slices.Clone(s.fourth.get(func() []*Schema {
		if s.IsIn4NF() {
			return []*Schema{s}
		}

		for _, m := range s.mvds {
			if !s.violates4NF(m) {
				continue
			}
			r1 := m.LHS.Union(m.RHS).Intersect(s.attrs)
			r2 := s.attrs.Minus(m.RHS.Minus(m.LHS))
			if r1.Equal(s.attrs) || r2.Equal(s.attrs) {
				continue
			}
			s.trace(TraceEvent{Stage: StageSplit, Dep: m, Parts: []Attrs{r1, r2}})

			return s.split(r1, r2, (*Schema).Decompose4NF)
		}
		return []*Schema{s}
	}))
}

// split projects the schema onto r1 and r2 and concatenates the
// decompositions of both children.
func (s *Schema) split(r1, r2 Attrs, decompose func(*Schema) []*Schema) []*Schema {
	left, right := s.Project(r1), s.Project(r2)
	if !s.opts.parallel {
		return append(decompose(left), decompose(right)...)
	}

	var l, r []*Schema
	g := errgroup.Group{}
	g.Go(func() error {
		l = decompose(left)
		return nil
	})
	g.Go(func() error {
		r = decompose(right)
		return nil
	})
	_ = g.Wait()
	return append(l, r...)
}
