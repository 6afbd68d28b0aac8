package parser

import (
	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// delimiters pairs the token before '[' (or '/') with the token after ']'
// (or '/').
type delimiters struct {
	open, close token.Kind
}

// Full edges and simplified paths share one direction table.
var delimiterDirections = map[delimiters]ast.Direction{
	{token.LEFT_ARROW, token.MINUS}:       ast.DirLeft,
	{token.LEFT_ARROW, token.RIGHT_ARROW}: ast.DirLeftOrRight,
	{token.TILDE, token.TILDE}:            ast.DirUndirected,
	{token.TILDE, token.RIGHT_TILDE}:      ast.DirUndirectedOrRight,
	{token.MINUS, token.RIGHT_ARROW}:      ast.DirRight,
	{token.MINUS, token.MINUS}:            ast.DirAny,
	{token.LEFT_TILDE, token.TILDE}:       ast.DirLeftOrUndirected,
}

// openingDirections is the fallback direction when the closing delimiter
// does not match the opening.
var openingDirections = map[token.Kind]ast.Direction{
	token.LEFT_ARROW: ast.DirLeft,
	token.TILDE:      ast.DirUndirected,
	token.MINUS:      ast.DirAny,
	token.LEFT_TILDE: ast.DirLeftOrUndirected,
}

var abbreviatedDirections = map[token.Kind]ast.Direction{
	token.LEFT_ARROW:  ast.DirLeft,
	token.TILDE:       ast.DirUndirected,
	token.RIGHT_ARROW: ast.DirRight,
	token.LEFT_TILDE:  ast.DirLeftOrUndirected,
	token.RIGHT_TILDE: ast.DirUndirectedOrRight,
	token.BOTH_ARROW:  ast.DirLeftOrRight,
	token.MINUS:       ast.DirAny,
}

func edgeOpening(kind token.Kind) bool {
	_, ok := abbreviatedDirections[kind]
	return ok
}

func closingDelimiter(kind token.Kind) bool {
	switch kind {
	case token.MINUS, token.TILDE, token.RIGHT_ARROW, token.RIGHT_TILDE:
		return true
	}

	return false
}

// closeDirection consumes the closing delimiter and resolves the direction
// against open. Mismatched or missing closers are reported with code and the
// direction falls back to the one the opening implies.
func (p *Parser) closeDirection(open token.Token, code, what string) ast.Direction {
	cur := p.c.Current()

	if dir, ok := delimiterDirections[delimiters{open.Kind, cur.Kind}]; ok {
		p.c.Advance()
		return dir
	}

	fallback := openingDirections[open.Kind]

	if !closingDelimiter(cur.Kind) {
		p.c.Report(diag.Errorf("expected closing delimiter of %s, found %s", what, cur.Describe()).
			WithPrimary(cur.Span, "missing closing delimiter").
			WithSecondary(open.Span, "opened here").
			WithCode(code))

		return fallback
	}

	p.c.Advance()
	p.c.Report(diag.Errorf("mismatched %s delimiters '%s' and '%s'", what, open.Kind, cur.Kind).
		WithPrimary(cur.Span, "does not close '"+open.Kind.String()+"'").
		WithSecondary(open.Span, "opened here").
		WithNote("direction taken from the opening delimiter: "+fallback.String()).
		WithCode(code))

	return fallback
}

// parseEdgePattern parses a full edge such as -[e:KNOWS]-> or an
// abbreviated one such as ->.
func (p *Parser) parseEdgePattern() *ast.EdgePattern {
	start := p.start()
	open := p.c.Advance()

	if !p.c.At(token.LBRACKET) {
		return &ast.EdgePattern{
			NodeMeta:    p.meta(start),
			Direction:   abbreviatedDirections[open.Kind],
			Abbreviated: true,
		}
	}

	if _, ok := openingDirections[open.Kind]; !ok {
		p.report(diag.CodeEdge, open.Span, "cannot open an edge bracket",
			"'%s' cannot precede '[' in an edge pattern", open.Kind)

		open.Kind = token.MINUS
	}

	p.c.Advance() // [

	edge := &ast.EdgePattern{Filler: p.parseElementFiller()}
	p.c.Expect(token.RBRACKET, "']' closing edge pattern")
	edge.Direction = p.closeDirection(open, diag.CodeEdge, "edge pattern")
	edge.NodeMeta = p.meta(start)

	return edge
}

// parseNodePattern parses ( filler ). It reports false when the filler is
// not followed by ')'; the partial node is still returned so the caller can
// weigh it against a parenthesized path.
func (p *Parser) parseNodePattern() (*ast.NodePattern, bool) {
	start := p.start()
	p.c.Advance() // (

	node := &ast.NodePattern{Filler: p.parseElementFiller()}
	_, ok := p.c.Eat(token.RPAREN)
	node.NodeMeta = p.meta(start)

	return node, ok
}

// parseElementFiller parses [var] [IS|: labels] [{props} | WHERE cond].
func (p *Parser) parseElementFiller() *ast.ElementFiller {
	start := p.start()
	f := &ast.ElementFiller{}

	switch cur := p.c.Current(); {
	case isName(cur):
		f.Variable = p.c.Advance().Text
	case cur.Kind == token.DELIMITED_IDENT:
		p.c.Advance()
		p.report(diag.CodeElement, cur.Span, "delimited identifier",
			"element variable must be a regular identifier")

		f.Variable = cur.Value
	}

	if p.c.At(token.IS, token.COLON) {
		p.c.Advance()
		f.Labels = p.expectLabelExpr()
	}

	p.parseElementPredicates(f)
	f.NodeMeta = p.meta(start)

	return f
}

// parseElementPredicates parses the property map or WHERE clause of an
// element. Only one is allowed; any further ones are reported once,
// consumed and discarded.
func (p *Parser) parseElementPredicates(f *ast.ElementFiller) {
	var first token.Token

	kept, reported := false, false

	guard := p.c.Guard()
	for p.c.At(token.LBRACE, token.WHERE) && !guard.Stalled("element predicate") {
		cur := p.c.Current()
		start := cur.Span.Start

		var (
			props *ast.RecordConstructor
			where ast.Expr
		)

		if cur.Kind == token.LBRACE {
			props = p.parseRecord()
		} else {
			p.c.Advance()
			where = p.expectExpr("WHERE condition")
		}

		if !kept {
			kept, first = true, cur
			f.Properties, f.Where = props, where

			continue
		}

		if reported {
			continue
		}

		reported = true

		msg := "element pattern has more than one property map"

		switch {
		case first.Kind != cur.Kind:
			msg = "element pattern has both a property map and a WHERE clause"
		case cur.Kind == token.WHERE:
			msg = "element pattern has more than one WHERE clause"
		}

		p.c.Report(diag.Errorf("%s", msg).
			WithPrimary(p.c.SpanFrom(start), "discarded").
			WithSecondary(first.Span, "kept").
			WithHelp("move property equalities into the WHERE clause").
			WithCode(diag.CodeElement))
	}
}

// expectLabelExpr parses a label expression or reports that one is missing.
func (p *Parser) expectLabelExpr() ast.LabelExpr {
	if l := p.parseLabelExpr(); l != nil {
		return l
	}

	p.c.Expected("label expression")

	return nil
}

// parseLabelExpr parses a | b, the lowest precedence label operator.
func (p *Parser) parseLabelExpr() ast.LabelExpr {
	start := p.start()

	first := p.parseLabelConjunction()
	if first == nil || !p.c.At(token.PIPE) {
		return first
	}

	dis := &ast.LabelDisjunction{Operands: []ast.LabelExpr{first}}

	guard := p.c.Guard()
	for p.c.At(token.PIPE) && !guard.Stalled("label disjunction") {
		p.c.Advance()

		if next := p.parseLabelConjunction(); next != nil {
			dis.Operands = append(dis.Operands, next)
		} else {
			p.c.Expected("label after '|'")
			break
		}
	}

	dis.NodeMeta = p.meta(start)

	return dis
}

func (p *Parser) parseLabelConjunction() ast.LabelExpr {
	start := p.start()

	first := p.parseLabelNegation()
	if first == nil || !p.c.At(token.AMP) {
		return first
	}

	con := &ast.LabelConjunction{Operands: []ast.LabelExpr{first}}

	guard := p.c.Guard()
	for p.c.At(token.AMP) && !guard.Stalled("label conjunction") {
		p.c.Advance()

		if next := p.parseLabelNegation(); next != nil {
			con.Operands = append(con.Operands, next)
		} else {
			p.c.Expected("label after '&'")
			break
		}
	}

	con.NodeMeta = p.meta(start)

	return con
}

func (p *Parser) parseLabelNegation() ast.LabelExpr {
	if !p.c.At(token.BANG) {
		return p.parseLabelPrimary()
	}

	if !p.enter() {
		return nil
	}
	defer p.leave()

	start := p.start()
	p.c.Advance()

	operand := p.parseLabelNegation()
	if operand == nil {
		p.c.Expected("label after '!'")
		return nil
	}

	return &ast.LabelNegation{NodeMeta: p.meta(start), Operand: operand}
}

func (p *Parser) parseLabelPrimary() ast.LabelExpr {
	cur := p.c.Current()
	start := cur.Span.Start

	switch {
	case isName(cur) || cur.Kind == token.DELIMITED_IDENT:
		p.c.Advance()
		return &ast.LabelName{NodeMeta: p.meta(start), Name: name(cur)}
	case cur.Kind == token.PERCENT:
		p.c.Advance()
		return &ast.LabelWildcard{NodeMeta: p.meta(start)}
	case cur.Kind == token.LPAREN:
		if !p.enter() {
			return nil
		}
		defer p.leave()

		p.c.Advance()
		inner := p.expectLabelExpr()
		p.c.Expect(token.RPAREN, "')' closing label expression")

		if inner == nil {
			return nil
		}

		return &ast.LabelParen{NodeMeta: p.meta(start), Inner: inner}
	}

	return nil
}
