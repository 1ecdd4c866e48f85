package deps

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Kind tags the two dependency variants.
type Kind int

const (
	KindFD Kind = iota
	KindMVD
)

func (k Kind) Arrow() string {
	switch k {
	case KindFD:
		return "->"
	case KindMVD:
		return "->>"
	}
	panic(fmt.Sprintf("unknown dependency kind %d", int(k)))
}

// Dependency is either a FD or a MVD. The set of implementations is closed;
// callers switch on Kind (or a type switch) and must handle both.
type Dependency interface {
	Kind() Kind
	Left() Attrs
	Right() Attrs
	String() string

	dependency()
}

// FD is a functional dependency LHS -> RHS.
type FD struct {
	LHS Attrs
	RHS Attrs
}

func NewFD(lhs, rhs Attrs) FD {
	return FD{LHS: NewAttrs(lhs...), RHS: NewAttrs(rhs...)}
}

func (f FD) Kind() Kind   { return KindFD }
func (f FD) Left() Attrs  { return f.LHS }
func (f FD) Right() Attrs { return f.RHS }
func (FD) dependency()    {}

func (f FD) Equal(other FD) bool {
	return f.LHS.Equal(other.LHS) && f.RHS.Equal(other.RHS)
}

// IsTrivial reports whether the RHS is contained in the LHS.
func (f FD) IsTrivial() bool {
	return f.RHS.SubsetOf(f.LHS)
}

// Less orders by LHS and then by RHS, both with the attribute-set order.
func (f FD) Less(other FD) bool {
	return lessDep(f.LHS, f.RHS, other.LHS, other.RHS)
}

func (f FD) String() string {
	return fmt.Sprintf("%s -> %s", f.LHS, f.RHS)
}

// MVD is a multi-valued dependency LHS ->> RHS.
type MVD struct {
	LHS Attrs
	RHS Attrs
}

func NewMVD(lhs, rhs Attrs) MVD {
	return MVD{LHS: NewAttrs(lhs...), RHS: NewAttrs(rhs...)}
}

func (m MVD) Kind() Kind   { return KindMVD }
func (m MVD) Left() Attrs  { return m.LHS }
func (m MVD) Right() Attrs { return m.RHS }
func (MVD) dependency()    {}

func (m MVD) Equal(other MVD) bool {
	return m.LHS.Equal(other.LHS) && m.RHS.Equal(other.RHS)
}

// IsTrivial reports whether the LHS is a proper subset of the RHS. This is the
// triviality rule the 4NF test uses.
func (m MVD) IsTrivial() bool {
	return m.LHS.ProperSubsetOf(m.RHS)
}

func (m MVD) Less(other MVD) bool {
	return lessDep(m.LHS, m.RHS, other.LHS, other.RHS)
}

func (m MVD) String() string {
	return fmt.Sprintf("%s ->> %s", m.LHS, m.RHS)
}

func lessDep(l1, r1, l2, r2 Attrs) bool {
	if c := l1.Compare(l2); c != 0 {
		return c < 0
	}
	return r1.Less(r2)
}

// New builds a dependency of the given kind.
func New(k Kind, lhs, rhs Attrs) Dependency {
	switch k {
	case KindFD:
		return NewFD(lhs, rhs)
	case KindMVD:
		return NewMVD(lhs, rhs)
	}
	panic(fmt.Sprintf("unknown dependency kind %d", int(k)))
}

// DepEqual compares dependencies of either kind.
func DepEqual(a, b Dependency) bool {
	return a.Kind() == b.Kind() && a.Left().Equal(b.Left()) && a.Right().Equal(b.Right())
}

func fdEqual(a, b FD) bool {
	return a.Equal(b)
}

// NewFDSet returns an ordered set of FDs that drops duplicates.
func NewFDSet(fds ...FD) *SetFunc[FD] {
	return NewSetFunc(fdEqual, fds...)
}

// SortFDs sorts fds in place and drops duplicates.
func SortFDs(fds []FD) []FD {
	sortFunc(fds, FD.Less)
	out := fds[:0]
	for i, f := range fds {
		if i > 0 && f.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func SortMVDs(mvds []MVD) {
	sortFunc(mvds, MVD.Less)
}

func sortFunc[T any](s []T, less func(a, b T) bool) {
	slices.SortStableFunc(s, func(a, b T) int {
		if less(a, b) {
			return -1
		} else if less(b, a) {
			return 1
		}
		return 0
	})
}
