package engine

import (
	"strings"

	"github.com/rithvikp/relnorm/analysis/deps"
	"golang.org/x/exp/slices"
)

// Tuple is one row of a chase tableau. Values are addressed by attribute,
// independently of the order the tableau declares its attributes in.
type Tuple struct {
	attrs  deps.Attrs
	values []string
}

func NewTuple(attrs deps.Attrs, values []string) *Tuple {
	return &Tuple{attrs: attrs, values: slices.Clone(values)}
}

func (t *Tuple) Values() []string {
	return slices.Clone(t.values)
}

// Get returns the values of attrs, in sorted attribute order.
func (t *Tuple) Get(attrs deps.Attrs) []string {
	vals := make([]string, 0, len(attrs))
	for _, a := range deps.NewAttrs(attrs...) {
		vals = append(vals, t.values[t.index(a)])
	}
	return vals
}

// Set assigns vals to attrs; vals follows sorted attribute order.
func (t *Tuple) Set(attrs deps.Attrs, vals []string) {
	for i, a := range deps.NewAttrs(attrs...) {
		t.values[t.index(a)] = vals[i]
	}
}

func (t *Tuple) index(a deps.Attribute) int {
	i, ok := slices.BinarySearch(t.attrs, a)
	if !ok {
		panic("attribute " + string(a) + " is not part of the tableau")
	}
	return i
}

func (t *Tuple) Clone() *Tuple {
	return NewTuple(t.attrs, t.values)
}

func (t *Tuple) Equal(other *Tuple) bool {
	return slices.Equal(t.values, other.values)
}

// uniform reports whether every attribute holds the same symbol.
func (t *Tuple) uniform() bool {
	return len(t.values) > 0 && slices.Min(t.values) == slices.Max(t.values)
}

func (t *Tuple) String() string {
	return strings.Join(t.values, "\t")
}

func key(vals []string) string {
	return strings.Join(vals, "\x00")
}
