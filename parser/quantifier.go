package parser

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

var decimalMaxInt32 = decimal.NewFromInt(math.MaxInt32)

func atQuantifier(c *Cursor) bool {
	return c.At(token.STAR, token.PLUS, token.QUESTION, token.LBRACE)
}

// parseQuantifier parses *, +, ? or a brace quantifier. It returns nil when
// none is present.
func (p *Parser) parseQuantifier() *ast.Quantifier {
	if !atQuantifier(p.c) {
		return nil
	}

	start := p.start()
	q := &ast.Quantifier{}

	switch tok := p.c.Advance(); tok.Kind {
	case token.STAR:
		q.Kind, q.Min, q.Max = ast.QuantStar, 0, ast.Unbounded
	case token.PLUS:
		q.Kind, q.Min, q.Max = ast.QuantPlus, 1, ast.Unbounded
	case token.QUESTION:
		q.Kind, q.Min, q.Max = ast.QuantOptional, 0, 1
	default:
		p.parseBraceQuantifier(q)
	}

	q.NodeMeta = p.meta(start)

	if q.Max != ast.Unbounded && q.Min > q.Max {
		p.c.Report(diag.Errorf("quantifier lower bound %d exceeds upper bound %d", q.Min, q.Max).
			WithPrimary(q.Span(), "invalid bounds").
			WithHelp("write the smaller bound first, as in {m,n} with m <= n").
			WithCode(diag.CodeQuantifier))
	}

	return q
}

// parseBraceQuantifier parses the rest of {m}, {m,}, {,n} or {m,n} after '{'.
func (p *Parser) parseBraceQuantifier(q *ast.Quantifier) {
	lower, hasLower := p.quantifierBound()

	if _, ok := p.c.Eat(token.COMMA); !ok {
		if !hasLower {
			p.report(diag.CodeQuantifier, p.c.Current().Span, "expected a bound",
				"empty quantifier")
		}

		q.Kind, q.Min, q.Max = ast.QuantFixed, lower, lower
		p.c.Expect(token.RBRACE, "'}' closing quantifier")

		return
	}

	upper, hasUpper := p.quantifierBound()
	if !hasUpper {
		upper = ast.Unbounded
	}

	q.Kind, q.Min, q.Max = ast.QuantRange, lower, upper
	p.c.Expect(token.RBRACE, "'}' closing quantifier")
}

// quantifierBound parses one bound through the expression parser and checks
// that it is an unsigned integer literal.
func (p *Parser) quantifierBound() (int, bool) {
	if p.c.At(token.COMMA, token.RBRACE) {
		return 0, false
	}

	e := p.Expr()
	if e == nil {
		p.c.Expected("quantifier bound")
		return 0, false
	}

	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInteger {
		p.report(diag.CodeQuantifier, e.Span(), "not an unsigned integer",
			"quantifier bound must be an unsigned integer literal")

		return 0, true
	}

	if lit.Number.GreaterThan(decimalMaxInt32) {
		p.report(diag.CodeQuantifier, e.Span(), "too large",
			"quantifier bound %s is too large", lit.Value)

		return math.MaxInt32, true
	}

	return int(lit.Number.IntPart()), true
}

// discardChainedQuantifiers reports and consumes quantifiers that follow
// an already quantified factor, as in a{2}{3}.
func (p *Parser) discardChainedQuantifiers(first *ast.Quantifier) {
	guard := p.c.Guard()

	for atQuantifier(p.c) && !guard.Stalled("quantifier") {
		extra := p.parseQuantifier()
		p.c.Report(diag.Errorf("chained quantifiers are not allowed").
			WithPrimary(extra.Span(), "second quantifier").
			WithSecondary(first.Span(), "first quantifier here").
			WithHelp("wrap the quantified part in parentheses to repeat it again").
			WithCode(diag.CodeQuantifier))
	}
}
