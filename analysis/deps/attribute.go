package deps

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Attribute is a single symbolic column label, conventionally one character.
type Attribute string

// Attrs is a set of attributes. It is always kept sorted and free of
// duplicates, so two equal sets are also equal slices.
type Attrs []Attribute

// NewAttrs builds a normalized attribute set.
func NewAttrs(attrs ...Attribute) Attrs {
	s := make(Attrs, len(attrs))
	copy(s, attrs)
	slices.Sort(s)
	return slices.Compact(s)
}

// ParseAttrs splits a contiguous run of attribute characters ("ABC") into a set.
func ParseAttrs(run string) Attrs {
	attrs := make([]Attribute, 0, len(run))
	for _, r := range run {
		attrs = append(attrs, Attribute(r))
	}
	return NewAttrs(attrs...)
}

func (s Attrs) Len() int {
	return len(s)
}

func (s Attrs) Contains(a Attribute) bool {
	_, ok := slices.BinarySearch(s, a)
	return ok
}

func (s Attrs) SubsetOf(other Attrs) bool {
	if len(s) > len(other) {
		return false
	}
	for _, a := range s {
		if !other.Contains(a) {
			return false
		}
	}
	return true
}

func (s Attrs) ProperSubsetOf(other Attrs) bool {
	return len(s) < len(other) && s.SubsetOf(other)
}

func (s Attrs) Equal(other Attrs) bool {
	return slices.Equal(s, other)
}

func (s Attrs) Union(other Attrs) Attrs {
	u := make([]Attribute, 0, len(s)+len(other))
	u = append(u, s...)
	u = append(u, other...)
	return NewAttrs(u...)
}

func (s Attrs) Minus(other Attrs) Attrs {
	var d Attrs
	for _, a := range s {
		if !other.Contains(a) {
			d = append(d, a)
		}
	}
	return d
}

func (s Attrs) Intersect(other Attrs) Attrs {
	var d Attrs
	for _, a := range s {
		if other.Contains(a) {
			d = append(d, a)
		}
	}
	return d
}

// Compare orders attribute sets by cardinality first and then element by
// element. It returns -1, 0 or 1.
func (s Attrs) Compare(other Attrs) int {
	if len(s) != len(other) {
		if len(s) < len(other) {
			return -1
		}
		return 1
	}
	for i := range s {
		if s[i] < other[i] {
			return -1
		} else if s[i] > other[i] {
			return 1
		}
	}
	return 0
}

func (s Attrs) Less(other Attrs) bool {
	return s.Compare(other) < 0
}

// String joins the attributes with no delimiter, which is also the input syntax.
func (s Attrs) String() string {
	b := strings.Builder{}
	for _, a := range s {
		b.WriteString(string(a))
	}
	return b.String()
}

// key is a map key for the set; attributes never contain a comma.
func (s Attrs) key() string {
	parts := make([]string, len(s))
	for i, a := range s {
		parts[i] = string(a)
	}
	return strings.Join(parts, ",")
}

// Subsets returns every non-empty subset of s, grouped by size and in
// lexicographic order within each size.
func (s Attrs) Subsets() []Attrs {
	var out []Attrs
	for k := 1; k <= len(s); k++ {
		out = append(out, s.combinations(k)...)
	}
	return out
}

func (s Attrs) combinations(k int) []Attrs {
	var out []Attrs
	forEachCombination(len(s), k, func(idx []int) {
		c := make(Attrs, k)
		for i, j := range idx {
			c[i] = s[j]
		}
		out = append(out, c)
	})
	return out
}

// SortAttrs sorts a list of attribute sets in place by Compare.
func SortAttrs(sets []Attrs) {
	slices.SortFunc(sets, func(a, b Attrs) int { return a.Compare(b) })
}
