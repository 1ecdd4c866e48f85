package report

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rithvikp/relnorm/analysis/deps"
)

func TestResult(t *testing.T) {
	a, b := deps.ParseAttrs("A"), deps.ParseAttrs("B")

	tests := []struct {
		msg   string
		value any
		want  string
	}{
		{
			msg:   "closures",
			value: []deps.AttributeClosure{{Attributes: a, Closure: deps.ParseAttrs("AB")}},
			want:  "q\nA+ = AB\n\n",
		},
		{
			msg:   "covers",
			value: [][]deps.FD{{deps.NewFD(a, b)}, {deps.NewFD(b, a)}},
			want:  "q\nA -> B\n--\nB -> A\n\n",
		},
		{
			msg:   "empty list",
			value: []deps.Attrs(nil),
			want:  "q\n\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewTextFormatter(&buf).Result("q", tt.value); err != nil {
				t.Fatalf("Result() failed: %v", err)
			}
			if diff := cmp.Diff(buf.String(), tt.want); diff != "" {
				t.Errorf("Unexpected output (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestResultUnknownType(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter(&buf).Result("q", 42); err == nil {
		t.Errorf("Result() succeeded for an int, want an error")
	}
}

func TestVerdict(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(&buf)
	f.Verdict(deps.MVD{}, true)
	f.Verdict(deps.NewFD(deps.ParseAttrs("A"), deps.ParseAttrs("C")), false)

	want := "Lossless join: OK\nTarget: A -> C FAILED\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Unexpected output (-got, +want):\n%s", diff)
	}
}
