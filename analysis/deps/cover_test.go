package deps

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMinimalCover(t *testing.T) {
	tests := []struct {
		msg       string
		s         *Schema
		fromFDs   []string
		fromClose []string
	}{
		{
			msg:       "several keys",
			s:         cyclicKeys(),
			fromFDs:   []string{"C -> D", "D -> A", "AB -> C"},
			fromClose: []string{"C -> D", "D -> A", "AB -> D", "BD -> C"},
		},
		{
			msg:       "chain",
			s:         chain(),
			fromFDs:   []string{"A -> B", "B -> C"},
			fromClose: []string{"A -> B", "B -> C"},
		},
		{
			msg:       "redundant FDs",
			s:         schema("ABC", fd("A", "BC"), fd("B", "C"), fd("A", "B"), fd("AB", "C")),
			fromFDs:   []string{"A -> B", "B -> C"},
			fromClose: []string{"A -> B", "B -> C"},
		},
		{
			msg:       "extraneous left hand side attributes",
			s:         needsKey(),
			fromFDs:   []string{"A -> B", "D -> E", "BC -> D"},
			fromClose: []string{"A -> B", "D -> E", "BC -> D"},
		},
		{
			msg:       "all attributes equivalent",
			s:         allEquivalent(),
			fromFDs:   []string{"A -> C", "B -> C", "C -> A", "C -> B"},
			fromClose: []string{"A -> C", "B -> C", "C -> A", "C -> B"},
		},
		{
			msg: "no FDs",
			s:   schema("AB"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			if diff := cmp.Diff(fdStrings(tt.s.MinimalCoverFromFDs()), tt.fromFDs, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected cover of the FDs (-got, +want):\n%s", diff)
			}
			if diff := cmp.Diff(fdStrings(tt.s.MinimalCover(nil)), tt.fromClose, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected cover of the closure (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestMinimalCoverIsEquivalent(t *testing.T) {
	for _, s := range []*Schema{cyclicKeys(), chain(), overlapping(), allEquivalent(), needsKey()} {
		for _, cover := range [][]FD{s.MinimalCover(nil), s.MinimalCoverFromFDs()} {
			if !equivalent(cover, s.FDs()) {
				t.Errorf("cover %v of %v is not equivalent to its FDs", cover, s)
			}
		}
	}
}

func TestAllMinimalCovers(t *testing.T) {
	got := allEquivalent().AllMinimalCoversFromFDs()
	want := [][]string{
		{"A -> B", "C -> A", "B -> C"},
		{"B -> A", "A -> C", "C -> B"},
		{"A -> B", "B -> A", "A -> C", "C -> A"},
		{"A -> B", "B -> A", "B -> C", "C -> B"},
		{"A -> C", "C -> A", "B -> C", "C -> B"},
	}

	gotStrings := make([][]string, len(got))
	for i, c := range got {
		gotStrings[i] = fdStrings(c)
	}
	if diff := cmp.Diff(gotStrings, want); diff != "" {
		t.Errorf("Unexpected covers (-got, +want):\n%s", diff)
	}

	for _, c := range got {
		if !equivalent(c, allEquivalent().FDs()) {
			t.Errorf("cover %v is not equivalent to the FDs", c)
		}
	}
}

func TestAllMinimalCoversSingle(t *testing.T) {
	got := chain().AllMinimalCoversFromFDs()
	want := [][]FD{{fd("A", "B"), fd("B", "C")}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Unexpected covers (-got, +want):\n%s", diff)
	}
}

func TestCompactFDs(t *testing.T) {
	tests := []struct {
		msg  string
		fds  []FD
		want []FD
	}{
		{
			msg:  "merge by left hand side",
			fds:  []FD{fd("A", "B"), fd("B", "C"), fd("A", "C")},
			want: []FD{fd("A", "BC"), fd("B", "C")},
		},
		{
			msg:  "nothing to merge",
			fds:  []FD{fd("AB", "C"), fd("C", "D")},
			want: []FD{fd("AB", "C"), fd("C", "D")},
		},
		{
			msg: "empty",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			if diff := cmp.Diff(CompactFDs(tt.fds), tt.want, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected FDs (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestMinimalCoverTrace(t *testing.T) {
	var stages []Stage
	var result []FD
	s := NewSchema(ParseAttrs("ABC"), []FD{fd("A", "B"), fd("B", "C"), fd("A", "C")}, nil,
		WithTracer(func(e TraceEvent) {
			stages = append(stages, e.Stage)
			if e.Stage == StageCoverRedundant {
				result = e.FDs
			}
		}))

	s.MinimalCoverFromFDs()

	wantStages := []Stage{StageCoverInput, StageCoverReducedLHS, StageCoverRedundant, StageCoverResult}
	if diff := cmp.Diff(stages, wantStages); diff != "" {
		t.Errorf("Unexpected stages (-got, +want):\n%s", diff)
	}
	if diff := cmp.Diff(result, []FD{fd("A", "C")}); diff != "" {
		t.Errorf("Unexpected redundant FDs (-got, +want):\n%s", diff)
	}
}

func TestForEachCombination(t *testing.T) {
	var got [][]int
	forEachCombination(4, 2, func(idx []int) {
		got = append(got, append([]int(nil), idx...))
	})
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Unexpected combinations (-got, +want):\n%s", diff)
	}

	forEachCombination(2, 3, func([]int) {
		t.Errorf("No combination should be produced when k > n")
	})
}
