package lexer

import (
	"github.com/npillmayer/gorgo/lr/scanner"
	"github.com/npillmayer/mathexpr"
)

// Terminal token values as delivered by Scanner. Identifiers are classified
// as constant, function, variable or unknown names; every operator symbol has
// a value of its own, except that "=" and "==" share one.
const (
	TermNumber = iota + 100
	TermConstant
	TermFunction
	TermVariable
	TermUnknown
	TermPlus
	TermMinus
	TermStar
	TermSlash
	TermCaret
	TermEq
	TermNe
	TermLt
	TermLe
	TermGt
	TermGe
	TermLParen
	TermRParen
	TermComma
)

var operatorTerms = map[string]int{
	"+":  TermPlus,
	"-":  TermMinus,
	"*":  TermStar,
	"/":  TermSlash,
	"^":  TermCaret,
	"=":  TermEq,
	"==": TermEq,
	"!=": TermNe,
	"<":  TermLt,
	"<=": TermLe,
	">":  TermGt,
	">=": TermGe,
}

// Terminal returns the terminal token value for a token.
func Terminal(tok Token) int {
	switch tok.Kind {
	case Number:
		return TermNumber
	case Identifier:
		if _, ok := mathexpr.ConstantKind(tok.Text); ok {
			return TermConstant
		}
		if _, ok := mathexpr.FunctionKind(tok.Text); ok {
			return TermFunction
		}
		if len([]rune(tok.Text)) == 1 {
			return TermVariable
		}
		return TermUnknown
	case Operator:
		if t, ok := operatorTerms[tok.Text]; ok {
			return t
		}
	case LeftParen:
		return TermLParen
	case RightParen:
		return TermRParen
	case Comma:
		return TermComma
	}
	panic("token cannot be mapped to a terminal: " + tok.String())
}

// Scanner implements the scanner.Tokenizer interface of gorgo on top of
// a slice of tokens.
type Scanner struct {
	tokens []Token
	pos    int
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// NewScanner creates a scanner delivering tokens, usually the result of Tokenize.
func NewScanner(tokens []Token) *Scanner {
	return &Scanner{tokens: tokens}
}

// NextToken returns the next token's terminal value, the token itself,
// and its position and length in bytes. Argument expected is ignored.
// After the last token, scanner.EOF is returned.
func (sc *Scanner) NextToken(expected []int) (int, interface{}, uint64, uint64) {
	if sc.pos >= len(sc.tokens) {
		return scanner.EOF, nil, sc.endOffset(), 0
	}
	tok := sc.tokens[sc.pos]
	sc.pos++
	tokval := Terminal(tok)
	T().Debugf("scanned token %s as terminal %d", tok, tokval)
	return tokval, tok, uint64(tok.Offset), uint64(len(tok.Text))
}

func (sc *Scanner) endOffset() uint64 {
	if len(sc.tokens) == 0 {
		return 0
	}
	last := sc.tokens[len(sc.tokens)-1]
	return uint64(last.Offset + len(last.Text))
}

// SetErrorHandler is part of the scanner.Tokenizer interface. Tokens have
// already been checked by Tokenize, so Scanner has no errors to report.
func (sc *Scanner) SetErrorHandler(h func(error)) {}
