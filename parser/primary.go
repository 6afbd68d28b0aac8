package parser

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// Identifiers that introduce a temporal literal when followed by a string.
var temporalKinds = map[string]ast.LiteralKind{
	"DATE":      ast.LitDate,
	"TIME":      ast.LitTime,
	"DATETIME":  ast.LitDatetime,
	"TIMESTAMP": ast.LitTimestamp,
	"DURATION":  ast.LitDuration,
}

// parsePrimary dispatches on the current token. It returns nil without
// consuming anything when no primary starts here.
func (p *Parser) parsePrimary() ast.Expr {
	cur := p.c.Current()
	start := cur.Span.Start

	switch cur.Kind {
	case token.INTEGER, token.FLOAT:
		p.c.Advance()

		kind := ast.LitInteger
		if cur.Kind == token.FLOAT {
			kind = ast.LitFloat
		}

		return &ast.Literal{
			NodeMeta: p.meta(start),
			Kind:     kind,
			Text:     cur.Text,
			Value:    cur.Value,
			Number:   numberValue(cur),
		}
	case token.STRING:
		p.c.Advance()
		return &ast.Literal{NodeMeta: p.meta(start), Kind: ast.LitString, Text: cur.Text, Value: cur.Value}
	case token.TRUE, token.FALSE:
		p.c.Advance()
		return &ast.Literal{NodeMeta: p.meta(start), Kind: ast.LitBool, Text: cur.Text, Bool: cur.Kind == token.TRUE}
	case token.NULL:
		p.c.Advance()
		return &ast.Literal{NodeMeta: p.meta(start), Kind: ast.LitNull, Text: cur.Text}
	case token.UNKNOWN:
		p.c.Advance()
		return &ast.Literal{NodeMeta: p.meta(start), Kind: ast.LitUnknown, Text: cur.Text}
	case token.PARAMETER:
		p.c.Advance()
		return &ast.ParameterRef{NodeMeta: p.meta(start), Name: cur.Value}
	case token.DELIMITED_IDENT:
		p.c.Advance()
		return &ast.VariableRef{NodeMeta: p.meta(start), Name: cur.Value, Delimited: true}
	case token.LPAREN:
		p.c.Advance()
		e := p.expectExpr("expression")
		p.c.Expect(token.RPAREN, "')' closing parenthesized expression")

		return e
	case token.LBRACKET:
		elems := p.parseElements()
		return &ast.ListConstructor{NodeMeta: p.meta(start), Elements: elems}
	case token.LBRACE:
		return p.parseRecord()
	case token.LIST, token.PATH:
		if !p.c.AtSeq(cur.Kind, token.LBRACKET) {
			return p.keywordMisuse(cur, "'[' after "+cur.Kind.String())
		}

		p.c.Advance()
		elems := p.parseElements()

		if cur.Kind == token.PATH {
			return &ast.PathConstructor{NodeMeta: p.meta(start), Elements: elems}
		}

		return &ast.ListConstructor{NodeMeta: p.meta(start), Elements: elems}
	case token.RECORD:
		if !p.c.AtSeq(token.RECORD, token.LBRACE) {
			return p.keywordMisuse(cur, "'{' after RECORD")
		}

		p.c.Advance()
		rec := p.parseRecord()
		rec.NodeMeta = p.meta(start)

		return rec
	case token.CASE:
		return p.parseCase()
	case token.CAST:
		return p.parseCast()
	case token.EXISTS:
		return p.parseExists()
	case token.VALUE:
		p.c.Advance()

		if !p.c.At(token.LBRACE) {
			p.c.Expected("'{' after VALUE")
			return &ast.SubqueryPlaceholder{NodeMeta: p.meta(start), Body: diag.Point(p.start())}
		}

		body := p.balancedBraces()

		return &ast.SubqueryPlaceholder{NodeMeta: p.meta(start), Body: body}
	case token.ALL_DIFFERENT, token.SAME:
		return p.parseElementPredicate()
	case token.PROPERTY_EXISTS:
		return p.parsePropertyExists()
	case token.NULLIF, token.COALESCE:
		if p.c.Peek(1).Kind == token.LPAREN {
			return p.parseCall()
		}

		return p.keywordMisuse(cur, "'(' after "+cur.Kind.String())
	}

	if cur.Kind == token.IDENT {
		upper := p.upper.String(cur.Text)
		if kind, ok := temporalKinds[upper]; ok && p.c.Peek(1).Kind == token.STRING {
			p.c.Advance()
			str := p.c.Advance()

			return &ast.Literal{
				NodeMeta: p.meta(start),
				Kind:     kind,
				Text:     cur.Text + " " + str.Text,
				Value:    str.Value,
			}
		}
	}

	if isName(cur) {
		if p.c.Peek(1).Kind == token.LPAREN {
			return p.parseCall()
		}

		p.c.Advance()

		return &ast.VariableRef{NodeMeta: p.meta(start), Name: cur.Text}
	}

	return nil
}

// keywordMisuse reports a reserved keyword that cannot start an expression
// in its current form and consumes it.
func (p *Parser) keywordMisuse(kw token.Token, what string) ast.Expr {
	p.c.Advance()
	p.c.Expected(what)

	return &ast.BadExpr{NodeMeta: ast.NodeMeta{Loc: kw.Span}}
}

func numberValue(tok token.Token) decimal.Decimal {
	v := tok.Value

	if tok.Kind == token.INTEGER {
		base := 10
		if len(v) > 1 && v[0] == '0' && strings.ContainsRune("xXoObB", rune(v[1])) {
			base = 0
		}

		n, ok := new(big.Int).SetString(v, base)
		if !ok {
			// Malformed numbers were already reported by the lexer.
			return decimal.Zero
		}

		return decimal.NewFromBigInt(n, 0)
	}

	if strings.HasPrefix(v, ".") {
		v = "0" + v
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// commaList parses item repeatedly, separated by commas, until closer. It
// consumes the closer.
func (p *Parser) commaList(closer token.Kind, what string, item func()) {
	guard := p.c.Guard()

	for !p.c.At(closer, token.EOF) && !guard.Stalled(what) {
		item()

		if _, ok := p.c.Eat(token.COMMA); !ok {
			break
		}
	}

	p.c.Expect(closer, "")
}

// parseElements parses [a, b, ...] starting at '['.
func (p *Parser) parseElements() []ast.Expr {
	p.c.Advance() // [

	var elems []ast.Expr

	p.commaList(token.RBRACKET, "list", func() {
		elems = append(elems, p.expectExpr("list element"))
	})

	return elems
}

// parseRecord parses {key: value, ...} starting at '{'.
func (p *Parser) parseRecord() *ast.RecordConstructor {
	start := p.start()
	p.c.Advance() // {

	var fields []*ast.RecordField

	p.commaList(token.RBRACE, "record", func() {
		fstart := p.start()
		key := p.c.Current()

		if !isPropertyName(key) && key.Kind != token.STRING {
			p.c.Expected("field name")
			p.skipBalanced(token.COMMA, token.RBRACE)

			return
		}

		p.c.Advance()
		p.c.Expect(token.COLON, "")

		value := p.expectExpr("field value")
		keyName := name(key)

		if key.Kind == token.STRING {
			keyName = key.Value
		}

		fields = append(fields, &ast.RecordField{NodeMeta: p.meta(fstart), Key: keyName, Value: value})
	})

	return &ast.RecordConstructor{NodeMeta: p.meta(start), Fields: fields}
}

// balancedBraces consumes a brace-balanced group starting at '{' and
// returns the span between the braces.
func (p *Parser) balancedBraces() diag.Span {
	open := p.c.Advance()
	depth := 1

	for !p.c.At(token.EOF) {
		tok := p.c.Advance()

		switch tok.Kind {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--

			if depth == 0 {
				return diag.NewSpan(open.Span.End, tok.Span.Start)
			}
		}
	}

	p.c.Expected("'}' closing subquery")

	return p.c.SpanFrom(open.Span.End)
}

func (p *Parser) parseCase() ast.Expr {
	start := p.start()
	p.c.Advance() // CASE

	c := &ast.Case{}
	if !p.c.At(token.WHEN) {
		c.Operand = p.expectExpr("CASE operand or WHEN")
	}

	guard := p.c.Guard()
	for p.c.At(token.WHEN) && !guard.Stalled("CASE") {
		wstart := p.start()
		p.c.Advance()

		cond := p.expectExpr("WHEN condition")
		p.c.Expect(token.THEN, "")
		result := p.expectExpr("THEN result")

		c.Whens = append(c.Whens, &ast.WhenClause{NodeMeta: p.meta(wstart), Condition: cond, Result: result})
	}

	if len(c.Whens) == 0 {
		p.c.Expected("WHEN")
	}

	if _, ok := p.c.Eat(token.ELSE); ok {
		c.Else = p.expectExpr("ELSE result")
	}

	p.c.Expect(token.END, "END closing CASE")
	c.NodeMeta = p.meta(start)

	return c
}

func (p *Parser) parseCast() ast.Expr {
	start := p.start()
	p.c.Advance() // CAST

	p.c.Expect(token.LPAREN, "")
	value := p.expectExpr("value to cast")
	p.c.Expect(token.AS, "")
	typ := p.expectType()
	p.c.Expect(token.RPAREN, "')' closing CAST")

	return &ast.Cast{NodeMeta: p.meta(start), Value: value, Type: typ}
}

// parseExists handles EXISTS (expr) and EXISTS { ... }. The brace form is
// only balanced; its body is kept as a span.
func (p *Parser) parseExists() ast.Expr {
	start := p.start()
	p.c.Advance() // EXISTS

	switch {
	case p.c.At(token.LBRACE):
		body := p.balancedBraces()
		return &ast.Exists{NodeMeta: p.meta(start), Body: body}
	case p.c.At(token.LPAREN):
		p.c.Advance()
		inner := p.expectExpr("expression")
		p.c.Expect(token.RPAREN, "')' closing EXISTS")

		return &ast.Exists{NodeMeta: p.meta(start), Inner: inner}
	default:
		p.c.Expected("'{' or '(' after EXISTS")
		return &ast.Exists{NodeMeta: p.meta(start), Body: diag.Point(p.start())}
	}
}

// parseElementPredicate handles ALL_DIFFERENT(a, b, ...) and SAME(a, b, ...).
func (p *Parser) parseElementPredicate() ast.Expr {
	start := p.start()
	kw := p.c.Advance()

	pred := &ast.Predicate{Kind: ast.PredAllDifferent}
	if kw.Kind == token.SAME {
		pred.Kind = ast.PredSame
	}

	if _, ok := p.c.Expect(token.LPAREN, ""); ok {
		p.commaList(token.RPAREN, kw.Kind.String(), func() {
			pred.Args = append(pred.Args, p.expectExpr("element reference"))
		})
	}

	pred.NodeMeta = p.meta(start)

	if len(pred.Args) < 2 {
		p.report(diag.CodeInvalidExpression, pred.Span(), "needs two or more arguments",
			"%s takes at least two element references", kw.Kind)
	}

	return pred
}

// parsePropertyExists handles PROPERTY_EXISTS(element, name).
func (p *Parser) parsePropertyExists() ast.Expr {
	start := p.start()
	p.c.Advance() // PROPERTY_EXISTS

	pred := &ast.Predicate{Kind: ast.PredPropertyExists}

	if _, ok := p.c.Expect(token.LPAREN, ""); ok {
		pred.Subject = p.expectExpr("element reference")
		p.c.Expect(token.COMMA, "")

		if isPropertyName(p.c.Current()) {
			pred.Property = name(p.c.Advance())
		} else {
			p.c.Expected("property name")
		}

		p.c.Expect(token.RPAREN, "')' closing PROPERTY_EXISTS")
	}

	pred.NodeMeta = p.meta(start)

	return pred
}
