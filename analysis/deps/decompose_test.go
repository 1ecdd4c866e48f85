package deps

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type relation struct {
	Attrs string
	FDs   []string
	MVDs  []string
}

func relations(schemas []*Schema) []relation {
	out := make([]relation, len(schemas))
	for i, s := range schemas {
		out[i] = relation{Attrs: s.Attributes().String(), FDs: fdStrings(s.FDs())}
		for _, m := range s.MVDs() {
			out[i].MVDs = append(out[i].MVDs, m.String())
		}
	}
	return out
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		msg        string
		s          *Schema
		want       []relation
		preserving bool
	}{
		{
			msg: "several keys",
			s:   cyclicKeys(),
			want: []relation{
				{Attrs: "AD", FDs: []string{"D -> A"}},
				{Attrs: "CD", FDs: []string{"C -> D"}},
				{Attrs: "BC"},
			},
		},
		{
			msg: "transitive chain",
			s:   chain(),
			want: []relation{
				{Attrs: "BC", FDs: []string{"B -> C"}},
				{Attrs: "AB", FDs: []string{"A -> B"}},
			},
			preserving: true,
		},
		{
			msg: "overlapping keys",
			s:   overlapping(),
			want: []relation{
				{Attrs: "BC", FDs: []string{"C -> B"}},
				{Attrs: "AC"},
			},
		},
		{
			msg: "partial and transitive dependencies",
			s:   needsKey(),
			want: []relation{
				{Attrs: "AB", FDs: []string{"A -> B"}},
				{Attrs: "DE", FDs: []string{"D -> E"}},
				{Attrs: "ACD", FDs: []string{"AC -> D"}},
			},
		},
		{
			msg: "already in BCNF",
			s:   allEquivalent(),
			want: []relation{
				{Attrs: "ABC", FDs: []string{"A -> B", "B -> A", "A -> C", "C -> A", "B -> C", "C -> B"}},
			},
			preserving: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			got := tt.s.Decompose()
			if diff := cmp.Diff(relations(got), tt.want, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected decomposition (-got, +want):\n%s", diff)
			}
			for _, child := range got {
				if !child.IsInBCNF() {
					t.Errorf("%v is not in BCNF", child)
				}
			}
			if got := tt.s.IsDependencyPreserving(); got != tt.preserving {
				t.Errorf("IsDependencyPreserving() = %t, want %t", got, tt.preserving)
			}
		})
	}
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		msg    string
		s      *Schema
		want   []relation
		inBCNF bool
	}{
		{
			msg: "already in 3NF",
			s:   cyclicKeys(),
			want: []relation{
				{Attrs: "ABCD", FDs: []string{"AB -> C", "C -> D", "D -> A"}},
			},
			inBCNF: true,
		},
		{
			msg: "transitive chain",
			s:   chain(),
			want: []relation{
				{Attrs: "AB", FDs: []string{"A -> B"}},
				{Attrs: "BC", FDs: []string{"B -> C"}},
			},
			inBCNF: true,
		},
		{
			msg: "key relation added",
			s:   needsKey(),
			want: []relation{
				{Attrs: "AB", FDs: []string{"A -> B"}},
				{Attrs: "DE", FDs: []string{"D -> E"}},
				{Attrs: "BCD", FDs: []string{"BC -> D"}},
				{Attrs: "AC"},
			},
			inBCNF: true,
		},
		{
			msg: "left hand sides merged",
			s:   schema("ABCD", fd("A", "BCD"), fd("B", "C")),
			want: []relation{
				{Attrs: "ABD", FDs: []string{"A -> B", "A -> D", "AB -> D", "AD -> B"}},
				{Attrs: "BC", FDs: []string{"B -> C"}},
			},
			inBCNF: true,
		},
		{
			msg: "duplicate relation dropped",
			s:   schema("ABCD", fd("A", "B"), fd("B", "A"), fd("C", "D")),
			want: []relation{
				{Attrs: "AB", FDs: []string{"A -> B", "B -> A"}},
				{Attrs: "CD", FDs: []string{"C -> D"}},
				{Attrs: "AC"},
			},
			inBCNF: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			got := tt.s.Synthesize()
			if diff := cmp.Diff(relations(got), tt.want, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected synthesis (-got, +want):\n%s", diff)
			}
			for _, child := range got {
				if !child.IsIn3NF() {
					t.Errorf("%v is not in 3NF", child)
				}
			}
			if got := tt.s.IsSynthesisInBCNF(); got != tt.inBCNF {
				t.Errorf("IsSynthesisInBCNF() = %t, want %t", got, tt.inBCNF)
			}
		})
	}
}

func TestDecompose4NF(t *testing.T) {
	tests := []struct {
		msg  string
		s    *Schema
		want []relation
	}{
		{
			msg: "independent MVD",
			s:   NewSchema(ParseAttrs("ABC"), nil, []MVD{mvd("A", "B")}),
			want: []relation{
				{Attrs: "AB", MVDs: []string{"A ->> B"}},
				{Attrs: "AC"},
			},
		},
		{
			msg: "FD carried into the projection",
			s:   NewSchema(ParseAttrs("ABCD"), []FD{fd("A", "C")}, []MVD{mvd("A", "B")}),
			want: []relation{
				{Attrs: "AB", MVDs: []string{"A ->> B"}},
				{Attrs: "ACD", FDs: []string{"A -> C", "AD -> C"}},
			},
		},
		{
			msg: "chained MVDs",
			s:   NewSchema(ParseAttrs("ABCD"), nil, []MVD{mvd("A", "B"), mvd("B", "C")}),
			want: []relation{
				{Attrs: "AB", MVDs: []string{"A ->> B"}},
				{Attrs: "ACD"},
			},
		},
		{
			msg: "superkey left hand side",
			s:   NewSchema(ParseAttrs("ABC"), []FD{fd("A", "BC")}, []MVD{mvd("A", "B")}),
			want: []relation{
				{Attrs: "ABC", FDs: []string{"A -> B", "A -> C"}, MVDs: []string{"A ->> B"}},
			},
		},
		{
			msg: "complement right hand side",
			s:   NewSchema(ParseAttrs("ABCD"), nil, []MVD{mvd("A", "BCD")}),
			want: []relation{
				{Attrs: "ABCD", MVDs: []string{"A ->> BCD"}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			got := tt.s.Decompose4NF()
			if diff := cmp.Diff(relations(got), tt.want, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected decomposition (-got, +want):\n%s", diff)
			}
			for _, child := range got {
				if !child.IsIn4NF() {
					t.Errorf("%v is not in 4NF", child)
				}
			}
		})
	}
}

func TestDecomposeParallel(t *testing.T) {
	for _, build := range []func(...Option) *Schema{
		func(opts ...Option) *Schema {
			return NewSchema(ParseAttrs("ABCDE"), []FD{fd("A", "B"), fd("BC", "D"), fd("D", "E")}, nil, opts...)
		},
		func(opts ...Option) *Schema {
			return NewSchema(ParseAttrs("ABCDE"), nil, []MVD{mvd("A", "B"), mvd("C", "D")}, opts...)
		},
	} {
		sequential, parallel := build(), build(WithParallel(true))
		if diff := cmp.Diff(relations(parallel.Decompose()), relations(sequential.Decompose())); diff != "" {
			t.Errorf("Parallel BCNF decomposition differs (-got, +want):\n%s", diff)
		}
		if diff := cmp.Diff(relations(parallel.Decompose4NF()), relations(sequential.Decompose4NF())); diff != "" {
			t.Errorf("Parallel 4NF decomposition differs (-got, +want):\n%s", diff)
		}
	}
}

func TestDecomposeTrace(t *testing.T) {
	var mu sync.Mutex
	var splits []TraceEvent
	s := NewSchema(ParseAttrs("ABC"), []FD{fd("A", "B"), fd("B", "C")}, nil, WithTracer(func(e TraceEvent) {
		if e.Stage != StageSplit {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		splits = append(splits, e)
	}))

	s.Decompose()

	want := []TraceEvent{{
		Stage:  StageSplit,
		Schema: ParseAttrs("ABC"),
		Dep:    fd("B", "C"),
		Parts:  attrsList("BC", "AB"),
	}}
	if diff := cmp.Diff(splits, want); diff != "" {
		t.Errorf("Unexpected trace (-got, +want):\n%s", diff)
	}
}

func TestDecomposeMemoized(t *testing.T) {
	s := chain()
	first, second := s.Decompose(), s.Decompose()
	if len(first) != len(second) {
		t.Fatalf("Decompose() returned %d and then %d relations", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("relation %d was recomputed", i)
		}
	}
}
