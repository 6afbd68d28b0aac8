// Package gql is the front end of a GQL toolchain. It turns query source
// text into tokens and an abstract syntax tree, collecting diagnostics along
// the way instead of stopping at the first problem.
//
// Most callers only need Parse:
//
//	res := gql.Parse(src)
//	for _, d := range res.Diagnostics {
//		fmt.Println(d.Code, d.Message)
//	}
//
// The lexer, parser, ast and diag packages expose the individual stages.
package gql

import (
	"go.uber.org/zap"

	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/lexer"
	"github.com/rlch/gql/parser"
	"github.com/rlch/gql/token"
)

// Result is the outcome of one parse.
type Result struct {
	// Program is nil only when there were no tokens at all, which Parse never
	// produces since the lexer always emits EOF.
	Program *ast.Program
	Tokens  []token.Token
	// Diagnostics lists lexer diagnostics first, then parser diagnostics, each
	// group in the order it was found.
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	return diag.HasErrors(r.Diagnostics)
}

// TokenResult is the outcome of tokenizing alone.
type TokenResult struct {
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic
}

type options struct {
	logger *zap.Logger
}

// Option configures Parse and ParseTokens.
type Option func(*options)

// WithLogger routes debug tracing of the parser to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) []parser.Option {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return []parser.Option{parser.WithLogger(o.logger)}
}

// Tokenize runs the lexer over source.
func Tokenize(source string) *TokenResult {
	toks, diags := lexer.Tokenize(source)
	return &TokenResult{Tokens: toks, Diagnostics: diags}
}

// Parse tokenizes and parses source as a program.
func Parse(source string, opts ...Option) *Result {
	toks, lexDiags := lexer.Tokenize(source)
	res := ParseTokens(toks, opts...)
	res.Diagnostics = append(lexDiags, res.Diagnostics...)

	return res
}

// ParseTokens parses an already tokenized program. The result's Program is
// nil only for an empty token slice.
func ParseTokens(tokens []token.Token, opts ...Option) *Result {
	prog, diags := parser.ParseProgram(tokens, buildOptions(opts)...)
	return &Result{Program: prog, Tokens: tokens, Diagnostics: diags}
}
