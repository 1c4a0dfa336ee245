package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/mathexpr"
	"github.com/npillmayer/mathexpr/lexer"
)

// Parser holds the cursor state for parsing a slice of tokens.
// A Parser must not be used by more than one goroutine at a time.
type Parser struct {
	tokens   []lexer.Token
	current  int
	depth    int
	tooDeep  bool
	diags    mathexpr.Diagnostics
	sink     func(mathexpr.Diagnostic)
	policy   Policy
	maxDepth int
}

// NewParser creates a parser for tokens, usually the result of lexer.Tokenize.
func NewParser(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{}
	p.reset(tokens, opts)
	return p
}

func (p *Parser) reset(tokens []lexer.Token, opts []Option) {
	p.tokens = tokens
	p.current = 0
	p.depth = 0
	p.tooDeep = false
	p.diags = nil
	p.sink = traceDiagnostic
	p.policy = Propagate
	p.maxDepth = DefaultMaxDepth
	for _, opt := range opts {
		opt(p)
	}
}

// Parse parses an expression string.
//
// For empty or all-whitespace input Parse returns (nil, nil). If tokenizing
// fails, the *lexer.LexError is returned. Otherwise the root of the syntax tree
// is returned, together with a mathexpr.Diagnostics error if there were
// problems. The root may be non-nil even with diagnostics present, see Policy.
func Parse(input string, opts ...Option) (*mathexpr.Expression, error) {
	T().Debugf("starting to parse expression '%s'", input)
	tokens, err := lexer.Tokenize(input)
	p := borrowParser(tokens, opts)
	defer p.releaseIntoPool()
	if err != nil {
		var lexerr *lexer.LexError
		if errors.As(err, &lexerr) {
			p.record(mathexpr.InvalidCharacter, mathexpr.Error, lexerr.Offset, "%s", lexerr.Error())
		}
		return nil, err
	}
	if len(tokens) == 0 {
		T().Infof("empty expression, skipping parse")
		return nil, nil
	}
	root := p.ParseExpression()
	if !p.AtEnd() {
		tok := p.peek()
		p.record(mathexpr.TrailingToken, mathexpr.Warning, p.current,
			"unexpected trailing token: %s '%s'", tok.Kind, tok.Text)
	}
	if len(p.diags) > 0 {
		return root, p.diags
	}
	return root, nil
}

// Pos returns the index of the next token to read.
func (p *Parser) Pos() int {
	return p.current
}

// AtEnd is true if all tokens have been consumed.
func (p *Parser) AtEnd() bool {
	return p.current >= len(p.tokens)
}

// Diagnostics returns the diagnostics recorded so far.
func (p *Parser) Diagnostics() mathexpr.Diagnostics {
	return p.diags
}

// ParseExpression parses a full expression, i.e. enters the grammar at the
// comparison level. Tokens following the expression are left unread.
func (p *Parser) ParseExpression() *mathexpr.Expression {
	left := p.ParseSubexpression()
	if p.match(lexer.Operator, "=", "==", "!=", "<", ">", "<=", ">=") {
		kind, _ := mathexpr.ComparisonKind(p.previous().Text)
		right := p.ParseSubexpression()
		return p.combine(kind, left, right)
	}
	return left
}

// ParseSubexpression parses an expression without a comparison, i.e. enters
// the grammar at the add/sub level. This is the entry point for parenthesized
// groups and function arguments.
func (p *Parser) ParseSubexpression() *mathexpr.Expression {
	if !p.enter() {
		return p.absent("")
	}
	defer p.leave()
	expr := p.parseMulDiv()
	for p.match(lexer.Operator, "+", "-") {
		kind := mathexpr.Add
		if p.previous().Text == "-" {
			kind = mathexpr.Sub
		}
		right := p.parseMulDiv()
		expr = p.combine(kind, expr, right)
	}
	return expr
}

func (p *Parser) parseMulDiv() *mathexpr.Expression {
	expr := p.parseExponent()
	for p.match(lexer.Operator, "*", "/") {
		kind := mathexpr.Mul
		if p.previous().Text == "/" {
			kind = mathexpr.Div
		}
		right := p.parseExponent()
		expr = p.combine(kind, expr, right)
	}
	return expr
}

func (p *Parser) parseExponent() *mathexpr.Expression {
	left := p.parseUnary()
	if p.match(lexer.Operator, "^") {
		if !p.enter() {
			return p.absent("")
		}
		defer p.leave()
		right := p.parseExponent()
		return p.combine(mathexpr.Exponent, left, right)
	}
	return left
}

func (p *Parser) parseUnary() *mathexpr.Expression {
	if p.match(lexer.Operator, "-") {
		if !p.enter() {
			return p.absent("")
		}
		defer p.leave()
		operand := p.parseUnary()
		return p.combine(mathexpr.Negation, operand)
	}
	if p.match(lexer.Operator, "+") { // unary plus is a no-op
		if !p.enter() {
			return p.absent("")
		}
		defer p.leave()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

// parsePrimary folds a run of adjacent operands into implicit multiplications.
func (p *Parser) parsePrimary() *mathexpr.Expression {
	expr := p.parseAtomic()
	for p.check(lexer.Number) || p.check(lexer.Identifier) || p.check(lexer.LeftParen) {
		right := p.parseAtomic()
		expr = p.combine(mathexpr.Mul, expr, right)
	}
	return expr
}

func (p *Parser) parseAtomic() *mathexpr.Expression {
	if p.match(lexer.Number) {
		text := p.previous().Text
		v, err := strconv.ParseFloat(text, 64)
		if errors.Is(err, strconv.ErrRange) {
			// well-formed, but beyond float64: v is ±Inf
			T().Infof("number literal out of range, using %v", v)
			return mathexpr.NewNumber(v)
		}
		if err != nil {
			p.record(mathexpr.MalformedNumber, mathexpr.Error, p.current-1,
				"malformed number literal: %s", text)
			return p.absent(text)
		}
		return mathexpr.NewNumber(v)
	}
	if p.match(lexer.Identifier) {
		return p.parseIdentifier(p.previous().Text)
	}
	if p.match(lexer.LeftParen) {
		expr := p.ParseSubexpression()
		p.consume(lexer.RightParen, "Expected ')'")
		return expr
	}
	if !p.AtEnd() {
		tok := p.peek()
		p.record(mathexpr.UnexpectedToken, mathexpr.Error, p.current,
			"Unexpected token while parsing: %s '%s' at index %d", tok.Kind, tok.Text, p.current)
		return p.absent(tok.Text)
	}
	p.record(mathexpr.UnexpectedEnd, mathexpr.Error, p.current,
		"Unexpected end of expression while parsing.")
	return p.absent("")
}

// parseIdentifier resolves an identifier as constant, function or variable,
// in this order.
func (p *Parser) parseIdentifier(ident string) *mathexpr.Expression {
	if kind, ok := mathexpr.ConstantKind(ident); ok {
		return mathexpr.New(kind)
	}
	if kind, ok := mathexpr.FunctionKind(ident); ok {
		return p.parseFunctionCall(kind, ident)
	}
	if len([]rune(ident)) == 1 {
		return mathexpr.NewVariable(ident)
	}
	p.record(mathexpr.UnknownIdentifier, mathexpr.Error, p.current-1,
		"Unknown identifier: %s", ident)
	return p.absent(ident)
}

func (p *Parser) parseFunctionCall(kind mathexpr.Kind, name string) *mathexpr.Expression {
	at := p.current - 1
	p.consume(lexer.LeftParen, "Expected '(' after function name.")
	var args []*mathexpr.Expression
	if !p.check(lexer.RightParen) {
		for {
			args = append(args, p.ParseSubexpression())
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	p.consume(lexer.RightParen, "Expected ')' after function arguments.")
	lo, hi := kind.Arity()
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		p.record(mathexpr.ArityMismatch, mathexpr.Warning, at,
			"function %s expects %s, has %d", name, arityString(lo, hi), len(args))
	}
	return p.combine(kind, args...)
}

func arityString(lo, hi int) string {
	switch {
	case hi < 0:
		return fmt.Sprintf("at least %d arguments", lo)
	case lo == 1 && hi == 1:
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", lo)
}

// --- Helpers ---------------------------------------------------------------

// combine builds a node from operands. With policy Propagate, a single
// absent operand makes the node absent.
func (p *Parser) combine(kind mathexpr.Kind, operands ...*mathexpr.Expression) *mathexpr.Expression {
	for _, op := range operands {
		if op == nil {
			T().Debugf("dropping %s node with absent operand", kind)
			return nil
		}
	}
	return mathexpr.New(kind, operands...)
}

// absent returns the stand-in for an operand which could not be parsed:
// nil, or an Invalid leaf with policy Poison.
func (p *Parser) absent(text string) *mathexpr.Expression {
	if p.policy == Poison {
		return mathexpr.NewInvalid(text)
	}
	return nil
}

// enter increases the nesting depth. If the depth bound is exceeded, the
// remaining input is skipped and enter returns false.
func (p *Parser) enter() bool {
	if p.depth >= p.maxDepth {
		if !p.tooDeep {
			p.tooDeep = true
			p.record(mathexpr.TooDeep, mathexpr.Error, p.current,
				"expression nested too deeply (max. depth %d)", p.maxDepth)
		}
		p.current = len(p.tokens)
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// record adds a diagnostic and hands it to the sink. Once the depth bound has
// been exceeded, the input is skipped and nothing else gets recorded.
func (p *Parser) record(code mathexpr.Code, sev mathexpr.Severity, index int, format string, args ...interface{}) {
	if p.tooDeep && code != mathexpr.TooDeep {
		return
	}
	d := mathexpr.Diagnostic{
		Code:     code,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Index:    index,
	}
	p.diags = append(p.diags, d)
	p.sink(d)
}

// match consumes the next token if it is of kind k and, if texts are given,
// has one of these texts.
func (p *Parser) match(k lexer.TokenKind, texts ...string) bool {
	if !p.check(k) {
		return false
	}
	if len(texts) > 0 {
		found := false
		for _, s := range texts {
			if p.peek().Text == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	p.current++
	return true
}

// consume expects a token of kind k. A missing token is reported, but
// parsing continues as if it had been present.
func (p *Parser) consume(k lexer.TokenKind, msg string) {
	if !p.match(k) {
		p.record(mathexpr.MissingDelimiter, mathexpr.Error, p.current, "%s", msg)
	}
}

func (p *Parser) check(k lexer.TokenKind) bool {
	return !p.AtEnd() && p.peek().Kind == k
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}
