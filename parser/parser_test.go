package parser

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/mathexpr"
	"github.com/npillmayer/mathexpr/lexer"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func parseOK(t *testing.T, input string) *mathexpr.Expression {
	t.Helper()
	expr, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", input, err)
	}
	if expr == nil {
		t.Fatalf("expected expression for %q, is nil", input)
	}
	return expr
}

func collect(dl *mathexpr.Diagnostics) Option {
	return WithSink(func(d mathexpr.Diagnostic) {
		*dl = append(*dl, d)
	})
}

func TestImplicitMultiplication(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	expr := parseOK(t, "2x")
	if expr.Kind() != mathexpr.Mul {
		t.Fatalf("expected Mul, is %s", expr.Kind())
	}
	if expr.Child(0).Kind() != mathexpr.Number || expr.Child(0).Value() != 2 {
		t.Errorf("expected left operand to be number 2, is %v", expr.Child(0))
	}
	if expr.Child(1).Kind() != mathexpr.Variable || expr.Child(1).Name() != "x" {
		t.Errorf("expected right operand to be variable x, is %v", expr.Child(1))
	}
	expr = parseOK(t, "a b c")
	if expr.String() != "Mul(Mul(a, b), c)" {
		t.Errorf("expected implicit multiplication to be left-associative, is %s", expr)
	}
	expr = parseOK(t, "2(x + y)")
	if expr.String() != "Mul(2, Add(x, y))" {
		t.Errorf("expected Mul(2, Add(x, y)), is %s", expr)
	}
}

func TestConstantsAndFunctions(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	if expr := parseOK(t, "pi"); expr.Kind() != mathexpr.ConstantPi || expr.ChildCount() != 0 {
		t.Errorf("expected childless Pi, is %v", expr)
	}
	if expr := parseOK(t, "e"); expr.Kind() != mathexpr.ConstantE {
		t.Errorf("expected E, is %v", expr)
	}
	expr := parseOK(t, "max(3, 5)")
	if expr.Kind() != mathexpr.Max || expr.ChildCount() != 2 {
		t.Fatalf("expected Max with 2 arguments, is %v", expr)
	}
	if expr.Child(0).Value() != 3 || expr.Child(1).Value() != 5 {
		t.Errorf("expected arguments 3 and 5 in order, are %v", expr.Children())
	}
}

func TestSigns(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	expr := parseOK(t, "-5")
	if expr.Kind() != mathexpr.Negation || expr.ChildCount() != 1 || expr.Child(0).Value() != 5 {
		t.Errorf("expected Negation(5), is %v", expr)
	}
	expr = parseOK(t, "+5")
	if expr.Kind() != mathexpr.Number || expr.Value() != 5 {
		t.Errorf("expected unary plus to vanish, is %v", expr)
	}
	expr = parseOK(t, "-2^2")
	if expr.String() != "Exponent(Negation(2), 2)" {
		t.Errorf("expected sign to bind tighter than exponent, is %v", expr)
	}
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cases := map[string]string{
		"2 ^ 3 ^ 2":         "Exponent(2, Exponent(3, 2))",
		"6 / 3 * 2":         "Mul(Div(6, 3), 2)",
		"1 + 2 - 3":         "Sub(Add(1, 2), 3)",
		"4 = 4":             "Equal(4, 4)",
		"x >= 0":            "GreaterOrEqual(x, 0)",
		"(1 + 2) * (3 + 4)": "Mul(Add(1, 2), Add(3, 4))",
	}
	for input, expected := range cases {
		if expr := parseOK(t, input); expr.String() != expected {
			t.Errorf("expected %q to parse as %s, is %s", input, expected, expr)
		}
	}
}

func TestChristmasTree(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	expr := parseOK(t, "(log(e) + sin(pi / 2)) max(1, 2 ^ 3) = sqrt(49)")
	expected := mathexpr.New(mathexpr.Equal,
		mathexpr.New(mathexpr.Mul,
			mathexpr.New(mathexpr.Add,
				mathexpr.New(mathexpr.Log, mathexpr.New(mathexpr.ConstantE)),
				mathexpr.New(mathexpr.Sin, mathexpr.New(mathexpr.Div,
					mathexpr.New(mathexpr.ConstantPi), mathexpr.NewNumber(2)))),
			mathexpr.New(mathexpr.Max, mathexpr.NewNumber(1),
				mathexpr.New(mathexpr.Exponent, mathexpr.NewNumber(2), mathexpr.NewNumber(3)))),
		mathexpr.New(mathexpr.Sqrt, mathexpr.NewNumber(49)))
	if !expr.Equal(expected) {
		t.Errorf("expected %s, is %s", expected, expr)
	}
}

func TestEmptyInput(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	for _, input := range []string{"", "   ", "\n\t"} {
		expr, err := Parse(input)
		if expr != nil || err != nil {
			t.Errorf("expected (nil, nil) for %q, is (%v, %v)", input, expr, err)
		}
	}
}

func TestLexErrorAbortsParse(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	var dl mathexpr.Diagnostics
	expr, err := Parse("1 + $", collect(&dl))
	if expr != nil {
		t.Errorf("expected no expression, is %v", expr)
	}
	var lexerr *lexer.LexError
	if !errors.As(err, &lexerr) {
		t.Fatalf("expected LexError, is %v", err)
	}
	if !strings.Contains(err.Error(), "U+0024") {
		t.Errorf("expected error to name U+0024, is %q", err.Error())
	}
	if len(dl) != 1 || dl[0].Code != mathexpr.InvalidCharacter || dl[0].Index != 4 {
		t.Errorf("expected sink to receive invalid-character diagnostic at 4, has %v", dl)
	}
}

func TestUnknownIdentifier(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	var sunk mathexpr.Diagnostics
	expr, err := Parse("foobar", collect(&sunk))
	if expr != nil {
		t.Errorf("expected absent result, is %v", expr)
	}
	var dl mathexpr.Diagnostics
	if !errors.As(err, &dl) {
		t.Fatalf("expected diagnostics, have %v", err)
	}
	if len(dl) != 1 || dl[0].Code != mathexpr.UnknownIdentifier {
		t.Fatalf("expected 1 unknown-identifier diagnostic, have %v", dl)
	}
	if dl[0].Message != "Unknown identifier: foobar" {
		t.Errorf("expected message 'Unknown identifier: foobar', is %q", dl[0].Message)
	}
	if len(sunk) != 1 || sunk[0] != dl[0] {
		t.Errorf("expected sink to receive the same diagnostic, has %v", sunk)
	}
}

func TestMissingParenIsSoft(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	expr, err := Parse("max(3, 5")
	if expr == nil || expr.Kind() != mathexpr.Max || expr.ChildCount() != 2 {
		t.Fatalf("expected Max with 2 arguments, is %v", expr)
	}
	var dl mathexpr.Diagnostics
	if !errors.As(err, &dl) || len(dl) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, have %v", err)
	}
	if dl[0].Code != mathexpr.MissingDelimiter || dl[0].Message != "Expected ')' after function arguments." {
		t.Errorf("expected missing ')' diagnostic, is %v", dl[0])
	}
}

func TestUnexpectedToken(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	_, err := Parse("2 * )")
	var dl mathexpr.Diagnostics
	if !errors.As(err, &dl) || len(dl) != 2 {
		t.Fatalf("expected 2 diagnostics, have %v", err)
	}
	if dl[0].Message != "Unexpected token while parsing: RightParen ')' at index 2" {
		t.Errorf("unexpected message %q", dl[0].Message)
	}
	if dl[0].Index != 2 || dl[1].Code != mathexpr.TrailingToken || dl[1].Severity != mathexpr.Warning {
		t.Errorf("expected unexpected token at 2 followed by trailing-token warning, are %v", dl)
	}
	_, err = Parse("2 *")
	if !errors.As(err, &dl) || dl[0].Message != "Unexpected end of expression while parsing." {
		t.Errorf("expected unexpected-end diagnostic, have %v", err)
	}
}

func TestPoisonPolicy(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cases := map[string]string{
		"foobar":      `Invalid("foobar")`,
		"2 foobar":    `Mul(2, Invalid("foobar"))`,
		"2 + foo * 3": `Add(2, Mul(Invalid("foo"), 3))`,
		"max(1, foo)": `Max(1, Invalid("foo"))`,
		"1 +":         `Add(1, Invalid(""))`,
		"1.2.3 x":     `Mul(Invalid("1.2.3"), x)`,
		"* 2":         `Mul(Invalid("*"), 2)`,
	}
	for input, expected := range cases {
		expr, err := Parse(input, WithPolicy(Poison))
		if err == nil {
			t.Errorf("expected diagnostics for %q", input)
		}
		if expr == nil {
			t.Errorf("expected partial tree for %q, is nil", input)
			continue
		}
		if expr.String() != expected {
			t.Errorf("expected %q to parse as %s, is %s", input, expected, expr)
		}
		if !expr.HasInvalid() {
			t.Errorf("expected %s to contain a poison node", expr)
		}
	}
}

func TestPropagatePolicy(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	for _, input := range []string{"2 foobar", "2 + foo * 3", "max(1, foo)", "-foo", "foo = 1"} {
		expr, err := Parse(input, WithPolicy(Propagate))
		if expr != nil {
			t.Errorf("expected absent result for %q, is %v", input, expr)
		}
		if err == nil {
			t.Errorf("expected diagnostics for %q", input)
		}
	}
}

func TestDiagnosticsAfterAbsentOperand(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	// siblings of an absent operand are still parsed and diagnosed
	_, err := Parse("foo + bar")
	var dl mathexpr.Diagnostics
	if !errors.As(err, &dl) || len(dl) != 2 {
		t.Fatalf("expected 2 diagnostics, have %v", err)
	}
	if dl[0].Index != 0 || dl[1].Index != 2 {
		t.Errorf("expected diagnostics at token 0 and 2, are at %d and %d", dl[0].Index, dl[1].Index)
	}
}

func TestMalformedNumber(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	expr, err := Parse("1.2.3")
	if expr != nil {
		t.Errorf("expected no expression, is %v", expr)
	}
	var dl mathexpr.Diagnostics
	if !errors.As(err, &dl) || !dl.Contains(mathexpr.MalformedNumber) {
		t.Errorf("expected malformed-number diagnostic, have %v", err)
	}
}

func TestNumberOutOfRange(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	expr, err := Parse("1" + strings.Repeat("0", 400))
	if err != nil {
		t.Errorf("expected out-of-range literal to be accepted, have %v", err)
	}
	if expr == nil || expr.Kind() != mathexpr.Number || !math.IsInf(expr.Value(), 1) {
		t.Fatalf("expected Number(+Inf), is %v", expr)
	}
	expr, _ = Parse("x - 9" + strings.Repeat("9", 399) + ".5")
	if expr.String() != "Sub(x, +Inf)" {
		t.Errorf("expected Sub(x, +Inf), is %v", expr)
	}
}

// Non-negative integers and decimals survive tokenizing and parsing unchanged.
func TestNumberRoundTrip(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	rnd := rand.New(rand.NewSource(4711))
	type numeral struct {
		text  string
		value float64
	}
	var numerals []numeral
	for i := 0; i < 500; i++ {
		n := rnd.Uint64() >> uint(rnd.Intn(64))
		numerals = append(numerals, numeral{strconv.FormatUint(n, 10), float64(n)})
		v := rnd.Float64() * math.Pow(10, float64(rnd.Intn(60)-20))
		numerals = append(numerals, numeral{strconv.FormatFloat(v, 'f', -1, 64), v})
	}
	numerals = append(numerals,
		numeral{"0", 0},
		numeral{"000.000", 0},
		numeral{"1" + strings.Repeat("0", 300), 1e300},
		numeral{"0." + strings.Repeat("0", 299) + "1", 1e-300},
		numeral{strings.Repeat("9", 400), math.Inf(1)},
	)
	for _, num := range numerals {
		tokens, err := lexer.Tokenize(num.text)
		if err != nil || len(tokens) != 1 || tokens[0].Kind != lexer.Number {
			t.Errorf("expected %q to be a single number token, have %v, %v", num.text, tokens, err)
			continue
		}
		expr, err := Parse(num.text)
		if err != nil || expr == nil || expr.Kind() != mathexpr.Number {
			t.Errorf("expected %q to parse as a number, have %v, %v", num.text, expr, err)
			continue
		}
		if expr.Value() != num.value {
			t.Errorf("expected %q to have value %v, is %v", num.text, num.value, expr.Value())
		}
	}
}

func TestArity(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	for _, input := range []string{"sin()", "sqrt(1, 2)", "max(1)", "min()"} {
		expr, err := Parse(input)
		if expr == nil {
			t.Errorf("expected function node for %q, is nil", input)
		}
		var dl mathexpr.Diagnostics
		if !errors.As(err, &dl) || len(dl) != 1 || dl[0].Code != mathexpr.ArityMismatch {
			t.Errorf("expected a single arity diagnostic for %q, have %v", input, err)
			continue
		}
		if dl.HasErrors() {
			t.Errorf("expected arity problems to be warnings, have %v", dl)
		}
	}
}

func TestTrailingTokens(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	expr, err := Parse("a < b < c")
	if expr == nil || expr.String() != "LessThan(a, b)" {
		t.Errorf("expected first comparison to be kept, is %v", expr)
	}
	var dl mathexpr.Diagnostics
	if !errors.As(err, &dl) || len(dl) != 1 || dl[0].Code != mathexpr.TrailingToken || dl[0].Index != 3 {
		t.Errorf("expected trailing-token diagnostic at index 3, have %v", err)
	}
}

func TestDepthBound(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	hostile := []string{
		strings.Repeat("(", 10000) + "1" + strings.Repeat(")", 10000),
		strings.Repeat("-", 10000) + "1",
		"2" + strings.Repeat("^2", 10000),
		strings.Repeat("sin(", 5000) + "x" + strings.Repeat(")", 5000),
	}
	for i, input := range hostile {
		expr, err := Parse(input)
		if expr != nil {
			t.Errorf("%d: expected too deep expression to be absent", i)
		}
		var dl mathexpr.Diagnostics
		if !errors.As(err, &dl) || len(dl) != 1 || dl[0].Code != mathexpr.TooDeep {
			t.Errorf("%d: expected a single too-deep diagnostic, have %v", i, err)
		}
	}
	input := strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)
	if _, err := Parse(input, MaxDepth(10)); err == nil {
		t.Errorf("expected MaxDepth(10) to reject 20 nested parens")
	}
	if _, err := Parse(input, MaxDepth(30)); err != nil {
		t.Errorf("expected MaxDepth(30) to accept 20 nested parens, have %v", err)
	}
}

func TestParserCursor(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tokens, err := lexer.Tokenize("1 + 2 = 3")
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(tokens)
	sub := p.ParseSubexpression()
	if sub.String() != "Add(1, 2)" {
		t.Errorf("expected sub-expression Add(1, 2), is %s", sub)
	}
	if p.Pos() != 3 || p.AtEnd() {
		t.Errorf("expected parser to stop at comparison (3), is at %d", p.Pos())
	}
	p = NewParser(tokens)
	expr := p.ParseExpression()
	if expr.String() != "Equal(Add(1, 2), 3)" || !p.AtEnd() {
		t.Errorf("expected full comparison, is %s", expr)
	}
	if len(p.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, have %v", p.Diagnostics())
	}
	// comparisons are not allowed inside groups
	tokens, _ = lexer.Tokenize("(1 = 2)")
	p = NewParser(tokens)
	_ = p.ParseExpression()
	if !p.Diagnostics().Contains(mathexpr.MissingDelimiter) {
		t.Errorf("expected comparison inside group to be rejected, have %v", p.Diagnostics())
	}
}

func TestReleaseUnpooledParser(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tokens, _ := lexer.Tokenize("1 + 2")
	p := NewParser(tokens)
	_ = p.ParseExpression()
	p.releaseIntoPool() // not borrowed, so the pool refuses it
	if p.tokens != nil || p.diags != nil || p.current != 0 {
		t.Errorf("expected released parser to be cleared")
	}
	if expr, err := Parse("1 + 2"); err != nil || expr.String() != "Add(1, 2)" {
		t.Errorf("expected pool to keep working, have %v, %v", expr, err)
	}
}

func TestConcurrentParse(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	inputs := []string{"2x + 1", "max(1, 2, 3)", "foo", "(1 + 2) * (3 + 4)", "sin(pi / 2) = 1"}
	expected := make([]string, len(inputs))
	for i, input := range inputs {
		expr, _ := Parse(input)
		expected[i] = expr.String()
	}
	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				i := (g + n) % len(inputs)
				expr, _ := Parse(inputs[i])
				if expr.String() != expected[i] {
					select {
					case errs <- inputs[i] + " => " + expr.String():
					default:
					}
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Errorf("concurrent parse differs: %s", msg)
	}
}
