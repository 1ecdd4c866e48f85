// Package report renders analysis results as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rithvikp/relnorm/analysis/deps"
	"github.com/rithvikp/relnorm/analysis/proof"
	"github.com/rithvikp/relnorm/engine"
)

// TextFormatter writes results one item per line.
type TextFormatter struct {
	writer io.Writer
}

func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Schema writes the attributes followed by one dependency per line.
func (f *TextFormatter) Schema(s *deps.Schema) {
	_, _ = fmt.Fprintln(f.writer, s.String())
}

// Result writes a named query result followed by a blank line.
func (f *TextFormatter) Result(name string, v any) error {
	_, _ = fmt.Fprintln(f.writer, name)
	if err := f.value(v); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(f.writer)
	return nil
}

func (f *TextFormatter) value(v any) error {
	switch v := v.(type) {
	case bool, deps.Attrs, deps.NormalForm:
		_, _ = fmt.Fprintln(f.writer, v)
	case []deps.Attrs:
		for _, a := range v {
			_, _ = fmt.Fprintln(f.writer, a)
		}
	case []deps.AttributeClosure:
		for _, c := range v {
			_, _ = fmt.Fprintln(f.writer, c)
		}
	case []deps.FD:
		for _, fd := range v {
			_, _ = fmt.Fprintln(f.writer, fd)
		}
	case [][]deps.FD:
		for i, cover := range v {
			if i > 0 {
				_, _ = fmt.Fprintln(f.writer, "--")
			}
			for _, fd := range cover {
				_, _ = fmt.Fprintln(f.writer, fd)
			}
		}
	case []*deps.Schema:
		for i, s := range v {
			if i > 0 {
				_, _ = fmt.Fprintln(f.writer)
			}
			f.Schema(s)
		}
	default:
		return fmt.Errorf("cannot render a result of type %T", v)
	}
	return nil
}

// Tableau writes the attribute names and then each row, tab separated.
func (f *TextFormatter) Tableau(t *engine.Tableau) {
	names := make([]string, len(t.Attrs))
	for i, a := range t.Attrs {
		names[i] = string(a)
	}
	_, _ = fmt.Fprintln(f.writer, strings.Join(names, "\t"))
	for _, tup := range t.Tuples {
		_, _ = fmt.Fprintln(f.writer, tup)
	}
	_, _ = fmt.Fprintln(f.writer)
}

// Verdict writes whether the chase target holds.
func (f *TextFormatter) Verdict(target deps.Dependency, ok bool) {
	status := "FAILED"
	if ok {
		status = "OK"
	}
	if target.Left().Len() == 0 && target.Right().Len() == 0 {
		_, _ = fmt.Fprintf(f.writer, "Lossless join: %s\n", status)
		return
	}
	_, _ = fmt.Fprintf(f.writer, "Target: %s %s\n", target, status)
}

// Proof writes the numbered accepted steps and then QED, or the first
// invalid step.
func (f *TextFormatter) Proof(r *proof.Result) {
	for i, s := range r.Accepted {
		_, _ = fmt.Fprintf(f.writer, "%d. %s\n", i+1, s)
	}
	if r.Valid {
		_, _ = fmt.Fprintln(f.writer, "QED")
		return
	}
	_, _ = fmt.Fprintf(f.writer, "Invalid step %d: %s\n", len(r.Accepted)+1, r.Failed)
}
