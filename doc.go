/*
Package mathexpr is about parsing textual mathematical expressions.

Description

Package mathexpr and its sub-packages read expressions like

   (log(e) + sin(pi / 2)) max(1, 2 ^ 3) = sqrt(49)

and turn them into an immutable abstract syntax tree. The language covers
arithmetic (+ - * / ^), a single comparison (= == != < <= > >=), the
functions sqrt, log, sin, cos, tan, min and max, the constants pi and e,
and single-letter variables. Juxtaposition denotes multiplication, as in
handwritten math: `2x`, `a b` and `2(x + y)` are all products.

Numeric evaluation is not part of this module. Clients walk the tree
themselves, or hand it to package treeprint for display.

Contents

Base package mathexpr holds the node type Expression together with its kinds,
constructors and category predicates, plus the structured diagnostics the
parser reports. Tokenizing is done in sub-package lexer, parsing in sub-package
parser. Sub-package grammar holds an Earley grammar of the same language,
used to cross-check the hand-written parser. Command mathexpr (in cmd/mathexpr)
makes all of this available on the command line.

Expressions are built bottom-up and never change afterwards:

   sum := mathexpr.New(mathexpr.Add, mathexpr.NewNumber(1), mathexpr.NewVariable("x"))
   fmt.Println(sum)   // Add(1, x)

Building a node whose kind does not match its payload is a programming error
and will panic with a *ConstructionError.

Diagnostics

Parsing bad input is not a programming error. The parser records a Diagnostic
for every problem it encounters and keeps going wherever it sensibly can.
A missing closing parenthesis, for example, is reported but the enclosing
function call is still built. Diagnostics carry a code, a severity, a
human-readable message and the token index where the problem was found.

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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package mathexpr

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
