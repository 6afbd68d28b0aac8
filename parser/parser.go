// Package parser builds an AST from a token slice. Parsing never aborts: each
// entry point returns a best-effort tree together with every diagnostic
// encountered, in source order of discovery.
package parser

import (
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// maxDepth bounds expression and path nesting.
const maxDepth = 256

// Option configures a parse.
type Option func(*Parser)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.log = logger
		}
	}
}

// Parser holds the state of one parse. It is not safe for concurrent use;
// create one per input.
type Parser struct {
	c     *Cursor
	log   *zap.Logger
	upper cases.Caser
	depth int

	// pendingMinus is set when a comparison consumed '<-' as '<' followed by
	// a unary minus; it holds the offset of the '-'.
	pendingMinus int
}

// New returns a parser over tokens.
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		c:            NewCursor(tokens),
		log:          zap.NewNop(),
		upper:        cases.Upper(language.Und),
		pendingMinus: -1,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.c.SetLogger(p.log)

	return p
}

// Cursor exposes the underlying cursor.
func (p *Parser) Cursor() *Cursor { return p.c }

// Diagnostics returns the diagnostics recorded so far.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.c.Diagnostics() }

// ParseProgram parses a sequence of statements. It returns a nil program
// only for an empty token slice.
func ParseProgram(tokens []token.Token, opts ...Option) (*ast.Program, []diag.Diagnostic) {
	if len(tokens) == 0 {
		return nil, nil
	}

	p := New(tokens, opts...)
	prog := p.Program()

	p.log.Debug("parsed program",
		zap.Int("tokens", len(tokens)),
		zap.Int("statements", len(prog.Statements)),
		zap.Int("diagnostics", len(p.Diagnostics())),
	)

	return prog, p.Diagnostics()
}

// ParseExpression parses exactly one expression. Trailing tokens are
// reported with P002.
func ParseExpression(tokens []token.Token, opts ...Option) (ast.Expr, []diag.Diagnostic) {
	p := New(tokens, opts...)
	e := p.expectExpr("expression")
	p.expectEnd()

	return e, p.Diagnostics()
}

// ParseGraphPattern parses exactly one graph pattern.
func ParseGraphPattern(tokens []token.Token, opts ...Option) (*ast.GraphPattern, []diag.Diagnostic) {
	p := New(tokens, opts...)

	gp := p.GraphPattern()
	if gp == nil {
		p.c.Report(diag.Errorf("expected graph pattern, found %s", p.c.Current().Describe()).
			WithPrimary(p.c.Current().Span, "no pattern starts here").
			WithCode(diag.CodePattern))
	}

	p.expectEnd()

	return gp, p.Diagnostics()
}

func (p *Parser) expectEnd() {
	if p.c.At(token.EOF) {
		return
	}

	start := p.c.Current().Span.Start
	end := start

	for !p.c.At(token.EOF) {
		end = p.c.Advance().Span.End
	}

	p.c.Report(diag.Errorf("unexpected trailing input").
		WithPrimary(diag.NewSpan(start, end), "not part of the expression").
		WithCode(diag.CodeTrailingInput))
}

// =============================================================================
// Helpers shared by the sub-parsers
// =============================================================================

func (p *Parser) start() int {
	return p.c.Current().Span.Start
}

func (p *Parser) meta(start int) ast.NodeMeta {
	return ast.NodeMeta{Loc: p.c.SpanFrom(start)}
}

// enter guards recursion depth. When it returns false the caller must give
// up; leave must be called only after a successful enter.
func (p *Parser) enter() bool {
	if p.depth >= maxDepth {
		cur := p.c.Current()
		p.c.Report(diag.Errorf("input nested too deeply").
			WithPrimary(cur.Span, "nesting limit reached here").
			WithCode(diag.CodeInvalidExpression))
		p.c.Advance()

		return false
	}

	p.depth++

	return true
}

func (p *Parser) leave() { p.depth-- }

// report records a structural diagnostic with a primary label.
func (p *Parser) report(code string, span diag.Span, label, format string, args ...any) {
	p.c.Report(diag.Errorf(format, args...).WithPrimary(span, label).WithCode(code))
}

// isName reports whether tok can serve as a regular identifier.
// Non-reserved keywords qualify.
func isName(tok token.Token) bool {
	return tok.Kind == token.IDENT || (tok.Kind.IsKeyword() && !tok.Kind.IsReserved())
}

// isPropertyName reports whether tok can follow '.' or serve as a record key.
func isPropertyName(tok token.Token) bool {
	return tok.Kind == token.IDENT || tok.Kind == token.DELIMITED_IDENT || tok.Kind.IsKeyword()
}

// name returns the identifier a token spells.
func name(tok token.Token) string {
	if tok.Kind == token.DELIMITED_IDENT {
		return tok.Value
	}

	return tok.Text
}

// skipBalanced advances to the first unnested token of one of kinds, or EOF,
// skipping over bracketed groups.
func (p *Parser) skipBalanced(kinds ...token.Kind) {
	depth := 0

	for !p.c.At(token.EOF) {
		cur := p.c.Current()

		if depth == 0 && cur.Is(kinds...) {
			return
		}

		switch cur.Kind {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			if depth == 0 {
				return
			}

			depth--
		}

		p.c.Advance()
	}
}
