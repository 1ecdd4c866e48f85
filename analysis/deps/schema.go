package deps

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// AttributeClosure pairs an attribute set with its closure under a schema's FDs.
type AttributeClosure struct {
	Attributes Attrs
	Closure    Attrs
}

func (c AttributeClosure) Less(other AttributeClosure) bool {
	return lessDep(c.Attributes, c.Closure, other.Attributes, other.Closure)
}

func (c AttributeClosure) String() string {
	return fmt.Sprintf("%s+ = %s", c.Attributes, c.Closure)
}

type lazy[T any] struct {
	once sync.Once
	v    T
}

func (l *lazy[T]) get(f func() T) T {
	l.once.Do(func() { l.v = f() })
	return l.v
}

// Schema is a relation schema R with its dependency set Sigma. A Schema is
// immutable once built; derived values (Sigma+, keys, decompositions) are
// computed on first use and cached.
type Schema struct {
	attrs Attrs
	fds   *SetFunc[FD]
	mvds  []MVD
	opts  options

	fdClosure     lazy[[]FD]
	superkeys     lazy[[]Attrs]
	candidateKeys lazy[[]Attrs]
	bcnf          lazy[[]*Schema]
	synthesis     lazy[[]*Schema]
	fourth        lazy[[]*Schema]
}

// NewSchema builds a schema. FDs with an empty LHS are dropped, FDs with
// several RHS attributes are split into one FD per attribute, and duplicates
// are removed while keeping the input order.
func NewSchema(attrs Attrs, fds []FD, mvds []MVD, opts ...Option) *Schema {
	s := &Schema{
		attrs: NewAttrs(attrs...),
		fds:   NewFDSet(),
		mvds:  slices.Clone(mvds),
	}
	for _, o := range opts {
		o(&s.opts)
	}
	for _, f := range fds {
		s.addFD(f)
	}
	return s
}

func (s *Schema) addFD(f FD) {
	if len(f.LHS) == 0 {
		return
	}
	for _, a := range f.RHS {
		s.fds.Add(FD{LHS: f.LHS, RHS: Attrs{a}})
	}
}

func (s *Schema) Attributes() Attrs {
	return slices.Clone(s.attrs)
}

// FDs returns the schema's FDs in insertion order. Every RHS is a single attribute.
func (s *Schema) FDs() []FD {
	return s.fds.Elems()
}

func (s *Schema) MVDs() []MVD {
	return slices.Clone(s.mvds)
}

func (s *Schema) String() string {
	fds := SortFDs(s.FDs())
	mvds := s.MVDs()
	SortMVDs(mvds)

	b := strings.Builder{}
	fmt.Fprintf(&b, "R(%s)", s.attrs)
	for _, f := range fds {
		fmt.Fprintf(&b, "\n  %s", f)
	}
	for _, m := range mvds {
		fmt.Fprintf(&b, "\n  %s", m)
	}
	return b.String()
}

// Closure computes the closure of attrs under fds. Each pass fires the first
// FD whose LHS is covered and retires it, until no FD fires.
func Closure(attrs Attrs, fds []FD) Attrs {
	closure := NewAttrs(attrs...)
	remaining := slices.Clone(fds)
	for fired := true; fired; {
		fired = false
		for i, f := range remaining {
			if f.LHS.SubsetOf(closure) {
				closure = closure.Union(f.RHS)
				remaining = slices.Delete(remaining, i, i+1)
				fired = true
				break
			}
		}
	}
	return closure
}

// Closure computes the attribute closure of attrs under the schema's FDs.
func (s *Schema) Closure(attrs Attrs) AttributeClosure {
	attrs = NewAttrs(attrs...)
	return AttributeClosure{Attributes: attrs, Closure: Closure(attrs, s.fds.elems)}
}

// AttributeClosures returns the closure of every non-empty subset of the
// schema's attributes, sorted by attribute set.
func (s *Schema) AttributeClosures() []AttributeClosure {
	subsets := s.attrs.Subsets()
	closures := make([]AttributeClosure, 0, len(subsets))
	for _, sub := range subsets {
		closures = append(closures, s.Closure(sub))
	}
	sortFunc(closures, AttributeClosure.Less)
	return closures
}

// EssentialClosures is AttributeClosures without the superkeys that are not
// candidate keys.
func (s *Schema) EssentialClosures() []AttributeClosure {
	var out []AttributeClosure
	for _, c := range s.AttributeClosures() {
		if s.IsSuperkey(c.Attributes) && !s.IsCandidateKey(c.Attributes) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// IsSuperkey reports whether attrs is a subset of the schema whose closure is
// the whole schema.
func (s *Schema) IsSuperkey(attrs Attrs) bool {
	attrs = NewAttrs(attrs...)
	return attrs.SubsetOf(s.attrs) && Closure(attrs, s.fds.elems).Equal(s.attrs)
}

func (s *Schema) Superkeys() []Attrs {
	return slices.Clone(s.superkeys.get(func() []Attrs {
		var keys []Attrs
		for _, sub := range s.attrs.Subsets() {
			if Closure(sub, s.fds.elems).Equal(s.attrs) {
				keys = append(keys, sub)
			}
		}
		SortAttrs(keys)
		return keys
	}))
}

// CandidateKeys returns the minimal superkeys.
func (s *Schema) CandidateKeys() []Attrs {
	return slices.Clone(s.candidateKeys.get(func() []Attrs {
		superkeys := s.Superkeys()
		var keys []Attrs
		for _, k := range superkeys {
			minimal := true
			for _, other := range superkeys {
				if other.ProperSubsetOf(k) {
					minimal = false
					break
				}
			}
			if minimal {
				keys = append(keys, k)
			}
		}
		return keys
	}))
}

func (s *Schema) IsCandidateKey(attrs Attrs) bool {
	attrs = NewAttrs(attrs...)
	return slices.ContainsFunc(s.CandidateKeys(), attrs.Equal)
}

func (s *Schema) IsPrimeAttribute(a Attribute) bool {
	for _, k := range s.CandidateKeys() {
		if k.Contains(a) {
			return true
		}
	}
	return false
}

// PrimeAttributes returns the attributes that belong to some candidate key.
func (s *Schema) PrimeAttributes() Attrs {
	var prime Attrs
	for _, a := range s.attrs {
		if s.IsPrimeAttribute(a) {
			prime = append(prime, a)
		}
	}
	return prime
}

// FDClosure returns Sigma+: every non-trivial single-attribute FD implied by
// the schema's FDs over its attributes, sorted.
func (s *Schema) FDClosure() []FD {
	return slices.Clone(s.fdClosure.get(func() []FD {
		var closure []FD
		for _, sub := range s.attrs.Subsets() {
			for _, a := range Closure(sub, s.fds.elems) {
				if !sub.Contains(a) {
					closure = append(closure, FD{LHS: sub, RHS: Attrs{a}})
				}
			}
		}
		return SortFDs(closure)
	}))
}

// Implies reports whether every FD in fds follows from the schema's FDs.
func (s *Schema) Implies(fds []FD) bool {
	return implies(s.fds.elems, fds)
}

// Equivalent reports whether the two schemas' FDs imply each other.
func (s *Schema) Equivalent(other *Schema) bool {
	return equivalent(s.fds.elems, other.fds.elems)
}

func implies(base, fds []FD) bool {
	for _, f := range fds {
		if !f.RHS.SubsetOf(Closure(f.LHS, base)) {
			return false
		}
	}
	return true
}

func equivalent(a, b []FD) bool {
	return implies(a, b) && implies(b, a)
}

// Project builds a child schema over attrs holding the projection of Sigma+
// and of the MVDs: every dependency whose both sides lie inside attrs.
func (s *Schema) Project(attrs Attrs) *Schema {
	attrs = NewAttrs(attrs...)
	var fds []FD
	for _, f := range s.FDClosure() {
		if f.LHS.SubsetOf(attrs) && f.RHS.SubsetOf(attrs) {
			fds = append(fds, f)
		}
	}
	var mvds []MVD
	for _, m := range s.mvds {
		if m.LHS.SubsetOf(attrs) && m.RHS.SubsetOf(attrs) {
			mvds = append(mvds, m)
		}
	}

	child := &Schema{attrs: attrs, fds: NewFDSet(), mvds: mvds, opts: s.opts}
	for _, f := range fds {
		child.addFD(f)
	}
	return child
}
