package proof

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/rithvikp/relnorm/analysis/deps"
)

// InvalidReferenceError is returned when a step cites a step that does not
// precede it.
type InvalidReferenceError struct {
	Position lexer.Position
	Step     int
	Ref      int
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference at %s: step %d cites step %d, which does not exist", e.Position.String(), e.Step, e.Ref)
}

// UnsupportedRuleError is returned for a rule name that is unknown or does
// not apply to the kind of dependency being derived.
type UnsupportedRuleError struct {
	Position lexer.Position
	Rule     string
	Kind     deps.Kind
}

func (e *UnsupportedRuleError) Error() string {
	return fmt.Sprintf("unsupported rule at %s: %q cannot derive a %s dependency", e.Position.String(), e.Rule, e.Kind.Arrow())
}

// ArityError is returned when a step cites the wrong number of steps for its rule.
type ArityError struct {
	Position lexer.Position
	Rule     string
	Want     int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wrong number of references at %s: %s takes %d, got %d", e.Position.String(), e.Rule, e.Want, e.Got)
}
