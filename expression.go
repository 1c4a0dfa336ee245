package mathexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Expression is a node of an abstract syntax tree for a mathematical expression.
// Expressions are immutable after construction and may be shared freely,
// including between goroutines.
//
// A node's kind determines its payload: Number nodes carry a value,
// Variable and Invalid nodes carry a name, operators and functions carry
// children. Constants carry nothing.
type Expression struct {
	kind     Kind
	value    float64
	name     string
	children []*Expression
}

// ConstructionError is the panic value for nodes built with a payload not
// matching their kind. It signals a programming error, never bad user input.
type ConstructionError struct {
	Kind   Kind
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s expression: %s", e.Kind, e.Reason)
}

func mustNot(k Kind, reason string, args ...interface{}) {
	panic(&ConstructionError{Kind: k, Reason: fmt.Sprintf(reason, args...)})
}

// NewNumber creates a numeric leaf.
func NewNumber(v float64) *Expression {
	return &Expression{kind: Number, value: v}
}

// NewVariable creates a variable leaf. name has to consist of exactly one letter.
func NewVariable(name string) *Expression {
	if !isSingleLetter(name) {
		mustNot(Variable, "variable name %q is not a single letter", name)
	}
	return &Expression{kind: Variable, name: name}
}

// NewInvalid creates a poison leaf, which stands in for an operand the parser
// could not make sense of. text is the offending input, if any.
func NewInvalid(text string) *Expression {
	return &Expression{kind: Invalid, name: text}
}

// NewValue creates a leaf of kind k carrying a numeric value.
// The only kind accepting a value is Number.
func NewValue(k Kind, v float64) *Expression {
	if k != Number {
		mustNot(k, "kind does not carry a numeric value")
	}
	return NewNumber(v)
}

// NewNamed creates a leaf of kind k carrying a name.
// Kinds accepting a name are Variable and Invalid.
func NewNamed(k Kind, name string) *Expression {
	switch k {
	case Variable:
		return NewVariable(name)
	case Invalid:
		return NewInvalid(name)
	}
	mustNot(k, "kind does not carry a name")
	return nil
}

// New creates an expression node of kind k with the given children.
// Constants are created without children. None of the children may be nil.
//
// Negation takes exactly one child, binary operators take exactly two.
// The argument count of functions is not checked here: calls like `sin(1, 2)`
// or `max()` are a data problem which the parser reports as a diagnostic.
func New(k Kind, children ...*Expression) *Expression {
	switch {
	case k == Number || k == Variable || k == Invalid:
		mustNot(k, "leaf kind requires a payload, use a dedicated constructor")
	case k.IsConstant():
		if len(children) > 0 {
			mustNot(k, "constant cannot have children")
		}
		return &Expression{kind: k}
	case k == Negation:
		if len(children) != 1 {
			mustNot(k, "expected exactly 1 child, have %d", len(children))
		}
	case k.IsBinary():
		if len(children) != 2 {
			mustNot(k, "expected exactly 2 children, have %d", len(children))
		}
	case k.IsFunction(): // any number of arguments
	default:
		mustNot(k, "unknown kind")
	}
	for i, ch := range children {
		if ch == nil {
			mustNot(k, "child #%d is nil", i)
		}
	}
	e := &Expression{kind: k}
	e.children = make([]*Expression, len(children))
	copy(e.children, children)
	return e
}

func isSingleLetter(name string) bool {
	runes := []rune(name)
	return len(runes) == 1 && unicode.IsLetter(runes[0])
}

// --- Accessors -------------------------------------------------------------

// Kind returns the kind of an expression node.
func (e *Expression) Kind() Kind {
	return e.kind
}

// Value returns the numeric value of a Number node, 0 otherwise.
func (e *Expression) Value() float64 {
	return e.value
}

// Name returns the name of a Variable node or the offending text of an Invalid node.
func (e *Expression) Name() string {
	return e.name
}

// ChildCount returns the number of children.
func (e *Expression) ChildCount() int {
	return len(e.children)
}

// Child returns child #i. It panics if i is out of range.
func (e *Expression) Child(i int) *Expression {
	return e.children[i]
}

// Children returns a copy of the child list.
func (e *Expression) Children() []*Expression {
	if len(e.children) == 0 {
		return nil
	}
	c := make([]*Expression, len(e.children))
	copy(c, e.children)
	return c
}

// HasInvalid is true if the expression contains a poison node anywhere.
func (e *Expression) HasInvalid() bool {
	if e == nil {
		return false
	}
	if e.kind == Invalid {
		return true
	}
	for _, ch := range e.children {
		if ch.HasInvalid() {
			return true
		}
	}
	return false
}

// Equal compares two expressions structurally. Numbers are equal if their
// values are; NaN values are considered equal to each other.
func (e *Expression) Equal(other *Expression) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.kind != other.kind || e.name != other.name {
		return false
	}
	if e.value != other.value && !(math.IsNaN(e.value) && math.IsNaN(other.value)) {
		return false
	}
	if len(e.children) != len(other.children) {
		return false
	}
	for i, ch := range e.children {
		if !ch.Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// FormatValue formats a number the way expressions print it: the shortest
// representation which reads back to the same float64.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String returns the functional form of an expression, e.g. `Mul(Add(1, 2), x)`.
func (e *Expression) String() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	e.format(&b)
	return b.String()
}

func (e *Expression) format(b *strings.Builder) {
	switch e.kind {
	case Number:
		b.WriteString(FormatValue(e.value))
		return
	case Variable:
		b.WriteString(e.name)
		return
	case Invalid:
		b.WriteString("Invalid(")
		b.WriteString(strconv.Quote(e.name))
		b.WriteString(")")
		return
	}
	b.WriteString(e.kind.String())
	if e.kind.IsConstant() {
		return
	}
	b.WriteByte('(')
	for i, ch := range e.children {
		if i > 0 {
			b.WriteString(", ")
		}
		ch.format(b)
	}
	b.WriteByte(')')
}

// --- YAML export -----------------------------------------------------------

var _ yaml.Marshaler = (*Expression)(nil)

type yamlNode struct {
	Kind  string        `yaml:"kind"`
	Value *float64      `yaml:"value,omitempty"`
	Name  string        `yaml:"name,omitempty"`
	Args  []*Expression `yaml:"args,omitempty"`
}

// MarshalYAML exports an expression as a nested mapping of
// kind plus value, name or args.
func (e *Expression) MarshalYAML() (interface{}, error) {
	n := yamlNode{Kind: e.kind.String(), Name: e.name, Args: e.children}
	if e.kind == Number {
		v := e.value
		n.Value = &v
	}
	return n, nil
}
