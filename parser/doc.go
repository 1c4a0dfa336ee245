/*
Package parser creates abstract syntax trees from mathematical expressions.

The parser is a hand-written recursive-descent parser. Precedence levels,
from loosest to tightest binding:

   comparison := addsub ( compareOp addsub )?
   addsub     := muldiv ( ('+'|'-') muldiv )*
   muldiv     := exponent ( ('*'|'/') exponent )*
   exponent   := unary ( '^' exponent )?
   unary      := '-' unary | '+' unary | primary
   primary    := atomic ( atomic )*
   atomic     := Number | constant | function '(' args ')' | letter | '(' addsub ')'

Exponentiation is right-associative, everything else left-associative.
A run of adjacent operands denotes implicit multiplication, thus `2x`, `a b`
and `2(x + y)` are products. Unary signs are examined before exponentiation,
so `-2^2` is (-2)^2. At most one comparison is allowed, and only at the
outermost level: parenthesized groups and function arguments re-enter the
grammar at level addsub.

Error Recovery

Parsing never panics on bad input. Problems are recorded as diagnostics,
sent to a sink (the core tracer by default) and returned as an error of type
mathexpr.Diagnostics. A missing closing parenthesis is reported, but parsing
continues as if it were present. Operands which cannot be parsed at all, like
unknown identifiers, are absent. What happens to the enclosing node depends
on the Policy: with Propagate (the default) it is absent, too; with Poison an
Invalid leaf takes the operand's place and a partial tree is returned.

BSD License

Copyright (c) 2021, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package parser

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
