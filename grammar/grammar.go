package grammar

import (
	"errors"
	"sync"

	"github.com/npillmayer/gorgo/lr"
	"github.com/npillmayer/gorgo/lr/earley"
	"github.com/npillmayer/gorgo/lr/sppf"
	"github.com/npillmayer/mathexpr/lexer"
)

// ErrNoTokens is returned for an empty token sequence.
var ErrNoTokens = errors.New("no tokens to recognize")

// --- Initialization --------------------------------------------------------

var globalExprGrammar *lr.LRAnalysis

var initParser sync.Once

func getParser() *earley.Parser {
	initParser.Do(func() {
		globalExprGrammar = NewExpressionGrammar()
		globalExprGrammar.Grammar().Dump()
	})
	parser := earley.NewParser(globalExprGrammar, earley.GenerateTree(true), earley.StoreTokens(true))
	if parser == nil {
		panic("could not create expression grammar parser")
	}
	return parser
}

// NewExpressionGrammar creates the grammar for mathematical expressions.
// It is usually not called by clients directly, but rather used transparently
// with a call to Parse or Recognize.
func NewExpressionGrammar() *lr.LRAnalysis {
	b := lr.NewGrammarBuilder("Expressions")
	//
	b.LHS("Comparison").N("AddSub").End()
	b.LHS("Comparison").N("AddSub").N("CmpOp").N("AddSub").End() // at most one comparison
	b.LHS("CmpOp").T(term("=", lexer.TermEq)).End()              // = and == share a terminal
	b.LHS("CmpOp").T(term("!=", lexer.TermNe)).End()
	b.LHS("CmpOp").T(term("<", lexer.TermLt)).End()
	b.LHS("CmpOp").T(term("<=", lexer.TermLe)).End()
	b.LHS("CmpOp").T(term(">", lexer.TermGt)).End()
	b.LHS("CmpOp").T(term(">=", lexer.TermGe)).End()
	//
	b.LHS("AddSub").N("AddSub").T(term("+", lexer.TermPlus)).N("MulDiv").End()
	b.LHS("AddSub").N("AddSub").T(term("-", lexer.TermMinus)).N("MulDiv").End()
	b.LHS("AddSub").N("MulDiv").End()
	b.LHS("MulDiv").N("MulDiv").T(term("*", lexer.TermStar)).N("Exponent").End()
	b.LHS("MulDiv").N("MulDiv").T(term("/", lexer.TermSlash)).N("Exponent").End()
	b.LHS("MulDiv").N("Exponent").End()
	b.LHS("Exponent").N("Unary").End()
	b.LHS("Exponent").N("Unary").T(term("^", lexer.TermCaret)).N("Exponent").End() // right assoc
	b.LHS("Unary").T(term("-", lexer.TermMinus)).N("Unary").End()
	b.LHS("Unary").T(term("+", lexer.TermPlus)).N("Unary").End()
	b.LHS("Unary").N("Primary").End()
	b.LHS("Primary").N("Primary").N("Atomic").End() // implicit multiplication
	b.LHS("Primary").N("Atomic").End()
	//
	b.LHS("Atomic").T(term("number", lexer.TermNumber)).End()
	b.LHS("Atomic").T(term("constant", lexer.TermConstant)).End()
	b.LHS("Atomic").T(term("letter", lexer.TermVariable)).End()
	b.LHS("Atomic").T(term("function", lexer.TermFunction)).T(term("(", lexer.TermLParen)).
		N("Args").T(term(")", lexer.TermRParen)).End()
	b.LHS("Atomic").T(term("(", lexer.TermLParen)).N("AddSub").T(term(")", lexer.TermRParen)).End()
	b.LHS("Args").N("AddSub").End()
	b.LHS("Args").N("Args").T(term(",", lexer.TermComma)).N("AddSub").End()
	//
	g, err := b.Grammar()
	if err != nil {
		panic(err)
	}
	return lr.Analysis(g)
}

func term(name string, tokval int) (string, int) {
	return ":" + name, tokval
}

// Parse runs the Earley parser over a sequence of tokens, usually the result of
// lexer.Tokenize. If the tokens form an expression, the parse forest is returned.
func Parse(tokens []lexer.Token) (bool, *sppf.Forest, error) {
	if len(tokens) == 0 {
		return false, nil, ErrNoTokens
	}
	parser := getParser()
	var parsetree *sppf.Forest
	accept, err := parser.Parse(lexer.NewScanner(tokens), nil)
	if accept {
		parsetree = parser.ParseForest()
	}
	T().Debugf("expression of %d tokens accepted = %v", len(tokens), accept)
	return accept, parsetree, err
}

// Recognize is true if tokens form a well-formed expression. An error is
// returned if the parser stopped at an unexpected token.
func Recognize(tokens []lexer.Token) (bool, error) {
	accept, _, err := Parse(tokens)
	return accept, err
}
