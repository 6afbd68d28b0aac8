package parser

import (
	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// isSimplifiedOpening reports whether the cursor is at <-/, ~/, -/ or <~/.
func isSimplifiedOpening(c *Cursor) bool {
	_, ok := openingDirections[c.Current().Kind]
	return ok && c.Peek(1).Kind == token.SLASH
}

// parseSimplifiedPath parses opening/ contents /closing. The pair of
// delimiters gives the direction.
func (p *Parser) parseSimplifiedPath() *ast.SimplifiedPath {
	start := p.start()
	open := p.c.Advance()
	p.c.Advance() // /

	sp := &ast.SimplifiedPath{Contents: p.parseSimplifiedAlternation()}
	if sp.Contents == nil {
		cur := p.c.Current()
		p.c.Report(diag.Errorf("expected simplified path contents, found %s", cur.Describe()).
			WithPrimary(cur.Span, "expected a label").
			WithCode(diag.CodeSimplified))
		p.skipBalanced(token.SLASH)
	}

	p.c.Expect(token.SLASH, "'/' closing simplified path")
	sp.Direction = p.closeDirection(open, diag.CodeSimplified, "simplified path")
	sp.NodeMeta = p.meta(start)

	return sp
}

func atSimplifiedStart(c *Cursor) bool {
	cur := c.Current()
	if isName(cur) {
		return true
	}

	switch cur.Kind {
	case token.DELIMITED_IDENT, token.LPAREN, token.BANG,
		token.LT, token.TILDE, token.LEFT_TILDE, token.MINUS:
		return true
	}

	return false
}

// parseSimplifiedAlternation parses unions separated by |+|.
func (p *Parser) parseSimplifiedAlternation() ast.SimplifiedExpr {
	start := p.start()

	first := p.parseSimplifiedUnion()
	if first == nil || !p.c.At(token.MULTISET_ALT) {
		return first
	}

	alt := &ast.SimplifiedAlternation{Alternatives: []ast.SimplifiedExpr{first}}

	guard := p.c.Guard()
	for p.c.At(token.MULTISET_ALT) && !guard.Stalled("simplified alternation") {
		p.c.Advance()

		next := p.parseSimplifiedUnion()
		if next == nil {
			p.expectedSimplified("'|+|'")
			break
		}

		alt.Alternatives = append(alt.Alternatives, next)
	}

	alt.NodeMeta = p.meta(start)

	return alt
}

func (p *Parser) parseSimplifiedUnion() ast.SimplifiedExpr {
	start := p.start()

	left := p.parseSimplifiedConcat()
	if left == nil {
		return nil
	}

	guard := p.c.Guard()
	for p.c.At(token.PIPE) && !guard.Stalled("simplified union") {
		p.c.Advance()

		right := p.parseSimplifiedConcat()
		if right == nil {
			p.expectedSimplified("'|'")
			break
		}

		left = &ast.SimplifiedUnion{NodeMeta: p.meta(start), Left: left, Right: right}
	}

	return left
}

// parseSimplifiedConcat parses juxtaposed conjunctions. A single part is
// returned unwrapped.
func (p *Parser) parseSimplifiedConcat() ast.SimplifiedExpr {
	start := p.start()

	var parts []ast.SimplifiedExpr

	guard := p.c.Guard()
	for atSimplifiedStart(p.c) && !guard.Stalled("simplified concatenation") {
		part := p.parseSimplifiedConjunction()
		if part == nil {
			break
		}

		parts = append(parts, part)
	}

	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	}

	return &ast.SimplifiedConcat{NodeMeta: p.meta(start), Parts: parts}
}

func (p *Parser) parseSimplifiedConjunction() ast.SimplifiedExpr {
	start := p.start()

	left := p.parseSimplifiedQuantified()
	if left == nil {
		return nil
	}

	guard := p.c.Guard()
	for p.c.At(token.AMP) && !guard.Stalled("simplified conjunction") {
		p.c.Advance()

		right := p.parseSimplifiedQuantified()
		if right == nil {
			p.expectedSimplified("'&'")
			break
		}

		left = &ast.SimplifiedConjunction{NodeMeta: p.meta(start), Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseSimplifiedQuantified() ast.SimplifiedExpr {
	start := p.start()

	inner := p.parseSimplifiedOverride()
	if inner == nil {
		return nil
	}

	q := p.parseQuantifier()
	if q == nil {
		return inner
	}

	p.discardChainedQuantifiers(q)

	return &ast.SimplifiedQuantified{NodeMeta: p.meta(start), Inner: inner, Quantifier: q}
}

// Prefix tokens of a direction override.
var overridePrefixes = map[token.Kind]ast.Direction{
	token.LT:         ast.DirLeft,
	token.TILDE:      ast.DirUndirected,
	token.LEFT_TILDE: ast.DirLeftOrUndirected,
	token.MINUS:      ast.DirAny,
}

// parseSimplifiedOverride parses <x, <x>, ~x, ~x>, <~x, -x and x>.
func (p *Parser) parseSimplifiedOverride() ast.SimplifiedExpr {
	start := p.start()

	dir, prefixed := overridePrefixes[p.c.Current().Kind]
	if prefixed {
		p.c.Advance()
	}

	operand := p.parseSimplifiedNegation()
	if operand == nil {
		if prefixed {
			p.expectedSimplified("direction override")
		}

		return nil
	}

	if _, ok := p.c.Eat(token.GT); ok {
		switch {
		case !prefixed:
			dir, prefixed = ast.DirRight, true
		case dir == ast.DirLeft:
			dir = ast.DirLeftOrRight
		case dir == ast.DirUndirected:
			dir = ast.DirUndirectedOrRight
		default:
			p.report(diag.CodeSimplified, p.c.SpanFrom(start), "invalid override",
				"'>' cannot follow a %s override", dir)
		}
	}

	if !prefixed {
		return operand
	}

	return &ast.SimplifiedOverride{NodeMeta: p.meta(start), Direction: dir, Operand: operand}
}

func (p *Parser) parseSimplifiedNegation() ast.SimplifiedExpr {
	if !p.c.At(token.BANG) {
		return p.parseSimplifiedPrimary()
	}

	if !p.enter() {
		return nil
	}
	defer p.leave()

	start := p.start()
	p.c.Advance()

	operand := p.parseSimplifiedNegation()
	if operand == nil {
		p.expectedSimplified("'!'")
		return nil
	}

	return &ast.SimplifiedNegation{NodeMeta: p.meta(start), Operand: operand}
}

func (p *Parser) parseSimplifiedPrimary() ast.SimplifiedExpr {
	cur := p.c.Current()
	start := cur.Span.Start

	switch {
	case isName(cur) || cur.Kind == token.DELIMITED_IDENT:
		p.c.Advance()
		return &ast.SimplifiedLabel{NodeMeta: p.meta(start), Name: name(cur)}
	case cur.Kind == token.LPAREN:
		if !p.enter() {
			return nil
		}
		defer p.leave()

		p.c.Advance()

		inner := p.parseSimplifiedAlternation()
		if inner == nil {
			p.expectedSimplified("'('")
			p.skipBalanced(token.RPAREN, token.SLASH)
		}

		p.c.Expect(token.RPAREN, "')' closing simplified group")

		if inner == nil {
			return nil
		}

		return &ast.SimplifiedParen{NodeMeta: p.meta(start), Inner: inner}
	}

	return nil
}

// expectedSimplified reports a missing operand after the construct named
// by after.
func (p *Parser) expectedSimplified(after string) {
	cur := p.c.Current()
	p.c.Report(diag.Errorf("expected label after %s, found %s", after, cur.Describe()).
		WithPrimary(cur.Span, "expected a label").
		WithCode(diag.CodeSimplified))
}
