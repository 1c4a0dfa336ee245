package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

// TokenKind is the lexical category of a token.
type TokenKind int8

// Token kinds.
const (
	Number TokenKind = iota
	Identifier
	Operator
	LeftParen
	RightParen
	Comma
)

func (k TokenKind) String() string {
	switch k {
	case Number:
		return "Number"
	case Identifier:
		return "Identifier"
	case Operator:
		return "Operator"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case Comma:
		return "Comma"
	}
	return "TokenKind(?)"
}

// Token is a lexical unit of an expression. Text is the exact input substring,
// Offset its byte position in the input.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

func (tok Token) String() string {
	return fmt.Sprintf("%s: %s", tok.Kind, tok.Text)
}

// Is checks for a token of kind k with text s.
func (tok Token) Is(k TokenKind, s string) bool {
	return tok.Kind == k && tok.Text == s
}

// LexError is returned for characters outside of the expression language.
type LexError struct {
	Rune   rune // offending code point
	Offset int  // byte offset in the input
	Byte   byte // offending byte if the input is not valid UTF-8, 0 otherwise
}

func (e *LexError) Error() string {
	if e.Byte != 0 {
		return fmt.Sprintf("Invalid UTF-8 byte in expression: 0x%02X", e.Byte)
	}
	msg := fmt.Sprintf("Invalid character in expression: U+%04X", e.Rune)
	if name := runenames.Name(e.Rune); name != "" {
		msg += " " + name
	}
	return msg
}

// Tokenize splits an input string into tokens.
//
// Numbers are maximal runs of ASCII digits and dots, starting with a digit.
// Multiple dots are accepted, parsers will have to complain about them.
// Identifiers are maximal runs of letters. The two-character operators
// `==`, `!=`, `<=` and `>=` take precedence over single-character ones.
//
// Empty or all-whitespace input results in an empty token slice. Any character
// not fitting one of the token categories aborts tokenizing with a *LexError;
// no tokens are returned in this case.
func Tokenize(input string) ([]Token, error) {
	tokens := make([]Token, 0, len(input)/2+1)
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case isDigit(r):
			start := i
			for i < len(input) && (isDigit(rune(input[i])) || input[i] == '.') {
				i++
			}
			tokens = append(tokens, Token{Kind: Number, Text: input[start:i], Offset: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(input) {
				r, size = utf8.DecodeRuneInString(input[i:])
				if !unicode.IsLetter(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, Token{Kind: Identifier, Text: input[start:i], Offset: start})
		case isTwoCharOperator(input[i:]):
			tokens = append(tokens, Token{Kind: Operator, Text: input[i : i+2], Offset: i})
			i += 2
		case strings.ContainsRune("=<>+-*/^", r):
			tokens = append(tokens, Token{Kind: Operator, Text: input[i : i+1], Offset: i})
			i++
		case r == '(':
			tokens = append(tokens, Token{Kind: LeftParen, Text: "(", Offset: i})
			i++
		case r == ')':
			tokens = append(tokens, Token{Kind: RightParen, Text: ")", Offset: i})
			i++
		case r == ',':
			tokens = append(tokens, Token{Kind: Comma, Text: ",", Offset: i})
			i++
		default:
			err := &LexError{Rune: r, Offset: i}
			if r == utf8.RuneError && size == 1 {
				err.Byte = input[i]
			}
			T().Errorf("%s", err)
			return nil, err
		}
	}
	T().Debugf("tokenized %d tokens", len(tokens))
	return tokens, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isTwoCharOperator(s string) bool {
	if len(s) < 2 {
		return false
	}
	switch s[:2] {
	case "==", "!=", "<=", ">=":
		return true
	}
	return false
}
