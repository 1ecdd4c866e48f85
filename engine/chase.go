package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rithvikp/relnorm/analysis/deps"
	"golang.org/x/exp/slices"
)

const (
	// Symbol shared by every row on the attributes the rows agree on.
	distinguished = "1"

	defaultMaxRounds = 1000
)

var ErrNoFixpoint = errors.New("chase did not reach a fixpoint")

// Tableau is an ordered list of symbolic rows over a set of attributes.
type Tableau struct {
	Attrs  deps.Attrs
	Tuples []*Tuple
}

func (t *Tableau) Clone() *Tableau {
	c := &Tableau{Attrs: t.Attrs, Tuples: make([]*Tuple, len(t.Tuples))}
	for i, tup := range t.Tuples {
		c.Tuples[i] = tup.Clone()
	}
	return c
}

// Equal compares rows in order.
func (t *Tableau) Equal(other *Tableau) bool {
	return slices.EqualFunc(t.Tuples, other.Tuples, (*Tuple).Equal)
}

func (t *Tableau) add(values []string) {
	t.Tuples = append(t.Tuples, NewTuple(t.Attrs, values))
}

type Options struct {
	// MaxRounds bounds the number of passes over the dependencies. Zero means
	// a default of 1000.
	MaxRounds int
	// OnStep, if set, is called after each dependency is applied.
	OnStep func(dep deps.Dependency, t *Tableau)
}

// Chase tests whether a target dependency follows from a set of
// dependencies by rewriting a tableau until no dependency changes it.
type Chase struct {
	table  *Tableau
	deps   []deps.Dependency
	target deps.Dependency
	opts   Options
}

// New seeds a tableau with a row of all "1" and a row of all "2" for
// testing whether target is implied by ds.
func New(attrs deps.Attrs, ds []deps.Dependency, target deps.Dependency, opts Options) *Chase {
	attrs = deps.NewAttrs(attrs...)
	c := &Chase{
		table:  &Tableau{Attrs: attrs},
		deps:   slices.Clone(ds),
		target: target,
		opts:   opts,
	}
	c.table.add(repeat(distinguished, len(attrs)))
	c.table.add(repeat("2", len(attrs)))
	return c
}

// NewLossless seeds one row per part of a decomposition: the row holds "1" on
// the part's attributes and its own symbol ("2", "3", ...) elsewhere. The
// decomposition is lossless when the chase produces an all "1" row.
func NewLossless(attrs deps.Attrs, ds []deps.Dependency, parts []deps.Attrs, opts Options) *Chase {
	attrs = deps.NewAttrs(attrs...)
	c := &Chase{
		table:  &Tableau{Attrs: attrs},
		deps:   slices.Clone(ds),
		target: deps.MVD{},
		opts:   opts,
	}
	for i, part := range parts {
		tup := NewTuple(attrs, repeat(strconv.Itoa(i+2), len(attrs)))
		part = part.Intersect(attrs)
		tup.Set(part, repeat(distinguished, len(part)))
		c.table.Tuples = append(c.table.Tuples, tup)
	}
	return c
}

func (c *Chase) Target() deps.Dependency {
	return c.target
}

func (c *Chase) Tableau() *Tableau {
	return c.table.Clone()
}

// Run forces every row to agree on the target's LHS and applies the
// dependencies in order until a full pass leaves the tableau unchanged.
func (c *Chase) Run() error {
	lhs := c.target.Left()
	for _, tup := range c.table.Tuples {
		tup.Set(lhs, repeat(distinguished, len(lhs)))
	}

	maxRounds := c.opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}

	for round := 0; round < maxRounds; round++ {
		prev := c.table.Clone()
		for _, d := range c.deps {
			c.apply(d)
			if c.opts.OnStep != nil {
				c.opts.OnStep(d, c.table.Clone())
			}
		}
		if c.table.Equal(prev) {
			return nil
		}
	}
	return fmt.Errorf("%w after %d rounds", ErrNoFixpoint, maxRounds)
}

func (c *Chase) apply(d deps.Dependency) {
	switch d := d.(type) {
	case deps.FD:
		c.applyFD(d)
	case deps.MVD:
		c.applyMVD(d)
	default:
		panic(fmt.Sprintf("unhandled dependency type %T", d))
	}
}

// applyFD makes rows that agree on the LHS agree on the RHS, taking the
// smallest RHS value seen for that LHS value.
func (c *Chase) applyFD(f deps.FD) {
	smallest := map[string][]string{}
	for _, tup := range c.table.Tuples {
		k := key(tup.Get(f.LHS))
		rhs := tup.Get(f.RHS)
		if cur, ok := smallest[k]; !ok || slices.Compare(rhs, cur) < 0 {
			smallest[k] = rhs
		}
	}

	for i, tup := range c.table.Tuples {
		next := tup.Clone()
		next.Set(f.RHS, smallest[key(tup.Get(f.LHS))])
		c.table.Tuples[i] = next
	}
}

// applyMVD adds, for every LHS value shared by exactly two rows, the two rows
// obtained by swapping their RHS values.
func (c *Chase) applyMVD(m deps.MVD) {
	var order []string
	groups := map[string][]*Tuple{}
	for _, tup := range c.table.Tuples {
		k := key(tup.Get(m.LHS))
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], tup)
	}

	for _, k := range order {
		group := groups[k]
		if len(group) != 2 {
			continue
		}
		t1, t2 := group[0].Clone(), group[1].Clone()
		t1.Set(m.RHS, group[1].Get(m.RHS))
		t2.Set(m.RHS, group[0].Get(m.RHS))
		c.table.Tuples = append(c.table.Tuples, t1, t2)
	}
}

// Verify checks the chased tableau. For a FD target, rows agreeing on the
// LHS must agree on the RHS. For a MVD target, some row must be uniform.
func (c *Chase) Verify() bool {
	switch t := c.target.(type) {
	case deps.FD:
		seen := map[string]deps.Set[string]{}
		for _, tup := range c.table.Tuples {
			k := key(tup.Get(t.LHS))
			if _, ok := seen[k]; !ok {
				seen[k] = deps.Set[string]{}
			}
			seen[k].Add(key(tup.Get(t.RHS)))
		}
		for _, rhs := range seen {
			if len(rhs) > 1 {
				return false
			}
		}
		return true
	case deps.MVD:
		for _, tup := range c.table.Tuples {
			if tup.uniform() {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("unhandled dependency type %T", t))
	}
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
