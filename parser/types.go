package parser

import (
	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// isTypeName reports whether tok can start a value type.
func isTypeName(tok token.Token) bool {
	switch tok.Kind {
	case token.LIST, token.RECORD, token.PATH, token.NULL:
		return true
	}

	return isName(tok)
}

// expectType parses a value type or reports P_TYPE. It returns nil on
// failure.
func (p *Parser) expectType() *ast.TypeRef {
	if t := p.parseType(); t != nil {
		return t
	}

	cur := p.c.Current()
	p.c.Report(diag.Errorf("expected type, found %s", cur.Describe()).
		WithPrimary(cur.Span, "not a type name").
		WithHelp("types are names such as INT, STRING or LIST<INT>").
		WithCode(diag.CodeType))

	return nil
}

// parseType parses name [<args>] [(params)] [NOT NULL].
func (p *Parser) parseType() *ast.TypeRef {
	if !isTypeName(p.c.Current()) {
		return nil
	}

	if !p.enter() {
		return nil
	}
	defer p.leave()

	start := p.start()
	t := &ast.TypeRef{Name: p.upper.String(p.c.Advance().Text)}

	switch {
	case p.c.At(token.LT):
		p.c.Advance()

		guard := p.c.Guard()
		for !guard.Stalled("type arguments") {
			if arg := p.expectType(); arg != nil {
				t.Args = append(t.Args, arg)
			}

			if _, ok := p.c.Eat(token.COMMA); !ok {
				break
			}
		}

		p.c.Expect(token.GT, "'>' closing type arguments")
	case p.c.At(token.LPAREN):
		p.c.Advance()

		p.commaList(token.RPAREN, "type parameters", func() {
			if tok, ok := p.c.Eat(token.INTEGER); ok {
				t.Params = append(t.Params, tok.Value)
				return
			}

			cur := p.c.Current()
			p.report(diag.CodeType, cur.Span, "expected an integer",
				"type parameter must be an integer, found %s", cur.Describe())
			p.skipBalanced(token.COMMA, token.RPAREN)
		})
	}

	if p.c.AtSeq(token.NOT, token.NULL) {
		p.c.Advance()
		p.c.Advance()

		t.NotNull = true
	}

	t.NodeMeta = p.meta(start)

	return t
}
