/*
Package treeprint renders expression trees with branch-drawing characters:

   └── Mul
       ├── Number: 2
       └── Variable: x

Every node is printed on a line of its own, depth first. Number nodes show
their value, variables their name.

Optionally a column of display symbols is appended, aligned with respect to
the display width of the lines (see package displaywidth).
*/
package treeprint

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/mathexpr"
	"github.com/npillmayer/mathexpr/displaywidth"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Markers and indentation strings.
const (
	LastMarker   = "└── "
	MiddleMarker = "├── "
	LastIndent   = "    "
	MiddleIndent = "│   "
	NullLine     = "NULL"
)

// Option configures the printer.
type Option func(*printer)

// WithSymbols appends the display symbol of every node having one,
// aligned in a column. ctx tells how wide ambiguous characters are displayed;
// nil means LatinContext.
func WithSymbols(ctx *displaywidth.Context) Option {
	return func(pr *printer) {
		pr.symbols = true
		pr.ctx = ctx
	}
}

type printer struct {
	symbols bool
	ctx     *displaywidth.Context
}

// frame is a node waiting on the stack to be printed.
type frame struct {
	expr   *mathexpr.Expression
	indent string
	isLast bool
}

type line struct {
	text string
	kind mathexpr.Kind
}

// Fprint prints expr to w. A nil expression prints as "NULL".
func Fprint(w io.Writer, expr *mathexpr.Expression, opts ...Option) error {
	pr := &printer{}
	for _, opt := range opts {
		opt(pr)
	}
	lines := pr.lines(expr)
	bw := bufio.NewWriter(w)
	if pr.symbols {
		pr.alignSymbols(lines)
	}
	for _, l := range lines {
		if _, err := bw.WriteString(l.text); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String returns the printed form of expr.
func String(expr *mathexpr.Expression, opts ...Option) string {
	var b strings.Builder
	_ = Fprint(&b, expr, opts...)
	return b.String()
}

// lines walks the tree iteratively, so deep trees will not exhaust the stack.
func (pr *printer) lines(expr *mathexpr.Expression) []line {
	if expr == nil {
		return []line{{text: NullLine, kind: mathexpr.Invalid}}
	}
	var lines []line
	stack := arraystack.New()
	stack.Push(frame{expr: expr, indent: "", isLast: true})
	for !stack.Empty() {
		top, _ := stack.Pop()
		f := top.(frame)
		if f.expr == nil {
			lines = append(lines, line{text: f.indent + NullLine, kind: mathexpr.Invalid})
			continue
		}
		marker, indent := MiddleMarker, f.indent+MiddleIndent
		if f.isLast {
			marker, indent = LastMarker, f.indent+LastIndent
		}
		lines = append(lines, line{text: f.indent + marker + label(f.expr), kind: f.expr.Kind()})
		n := f.expr.ChildCount()
		for i := n - 1; i >= 0; i-- { // push in reverse to print in order
			stack.Push(frame{expr: f.expr.Child(i), indent: indent, isLast: i == n-1})
		}
	}
	T().Debugf("printed expression tree with %d lines", len(lines))
	return lines
}

func label(expr *mathexpr.Expression) string {
	switch expr.Kind() {
	case mathexpr.Number:
		return "Number: " + mathexpr.FormatValue(expr.Value())
	case mathexpr.Variable:
		return "Variable: " + expr.Name()
	case mathexpr.Invalid:
		return "Invalid: " + strconv.Quote(expr.Name())
	}
	return expr.Kind().String()
}

func (pr *printer) alignSymbols(lines []line) {
	widest := 0
	for _, l := range lines {
		if w := displaywidth.String(l.text, pr.ctx); w > widest {
			widest = w
		}
	}
	for i, l := range lines {
		sym := mathexpr.Symbol(l.kind)
		if sym == "?" {
			continue
		}
		pad := widest - displaywidth.String(l.text, pr.ctx) + 2
		lines[i].text = l.text + strings.Repeat(" ", pad) + sym
	}
}
