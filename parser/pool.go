package parser

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/mathexpr/lexer"
)

// Parse is called for every expression, and each call needs its own cursor
// state. To avoid allocating a parser every time, we will pool them.
type parserPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalParserPool *parserPool

func init() {
	globalParserPool = &parserPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			p := &Parser{}
			return p, nil
		})
	globalParserPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalParserPool.opool = pool.NewObjectPool(globalParserPool.ctx, factory, config)
}

// borrowParser returns a parser from the pool, prepared for tokens and opts.
func borrowParser(tokens []lexer.Token, opts []Option) *Parser {
	var p *Parser
	if o, err := globalParserPool.opool.BorrowObject(globalParserPool.ctx); err == nil {
		p = o.(*Parser)
	} else {
		T().Errorf("cannot borrow parser from pool: %v", err)
		p = &Parser{}
	}
	p.reset(tokens, opts)
	return p
}

// releaseIntoPool clears the parser and puts it back into the pool.
// Diagnostics handed out earlier stay valid, as the slice is dropped, not reused.
func (p *Parser) releaseIntoPool() {
	p.tokens = nil
	p.diags = nil
	p.sink = nil
	p.current = 0
	p.depth = 0
	if err := globalParserPool.opool.ReturnObject(globalParserPool.ctx, p); err != nil {
		T().Errorf("cannot return parser into pool: %v", err)
	}
}
