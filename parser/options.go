package parser

import (
	"github.com/npillmayer/mathexpr"
)

// Policy decides what happens to nodes with an operand which could not be parsed.
type Policy int8

const (
	// Propagate makes every node with an absent operand absent, too.
	Propagate Policy = iota
	// Poison replaces absent operands by Invalid leaves.
	Poison
)

func (pol Policy) String() string {
	if pol == Poison {
		return "poison"
	}
	return "propagate"
}

// DefaultMaxDepth is the default bound for nesting of sub-expressions,
// signs and exponent chains.
const DefaultMaxDepth = 256

// Option configures a parser.
type Option func(p *Parser)

// WithSink sets a function to receive every diagnostic as soon as it is
// recorded. Default is to trace diagnostics to the core tracer.
func WithSink(sink func(mathexpr.Diagnostic)) Option {
	return func(p *Parser) {
		if sink != nil {
			p.sink = sink
		}
	}
}

// WithPolicy sets the policy for absent operands.
func WithPolicy(pol Policy) Option {
	return func(p *Parser) {
		p.policy = pol
	}
}

// MaxDepth bounds the nesting depth of expressions. Values < 1 are ignored.
func MaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// traceDiagnostic is the default sink.
func traceDiagnostic(d mathexpr.Diagnostic) {
	if d.Severity == mathexpr.Warning {
		T().Infof("%s", d)
		return
	}
	T().Errorf("%s", d)
}
