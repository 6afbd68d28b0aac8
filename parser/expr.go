package parser

import (
	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// Expr parses a value expression. It returns nil without reporting when no
// expression starts at the cursor.
func (p *Parser) Expr() ast.Expr {
	if !p.enter() {
		return &ast.BadExpr{NodeMeta: ast.NodeMeta{Loc: p.c.SpanFrom(p.c.PrevEnd())}}
	}
	defer p.leave()

	return p.parseOr()
}

// expectExpr parses an expression or reports that one was expected and
// returns a zero-width BadExpr at the current token.
func (p *Parser) expectExpr(what string) ast.Expr {
	if e := p.Expr(); e != nil {
		return e
	}

	p.c.Expected(what)

	return &ast.BadExpr{NodeMeta: ast.NodeMeta{Loc: diag.Point(p.start())}}
}

// operand parses the right-hand side of a binary operator.
func (p *Parser) operand(parse func() ast.Expr, op token.Token) ast.Expr {
	if e := parse(); e != nil {
		return e
	}

	p.c.Expected("expression after " + op.Describe())

	return &ast.BadExpr{NodeMeta: ast.NodeMeta{Loc: diag.Point(p.start())}}
}

func (p *Parser) parseLogical(next func() ast.Expr, kind token.Kind, op ast.LogicalOp) ast.Expr {
	start := p.start()

	left := next()
	if left == nil {
		return nil
	}

	guard := p.c.Guard()
	for p.c.At(kind) && !guard.Stalled("logical expression") {
		tok := p.c.Advance()
		right := p.operand(next, tok)
		left = &ast.Logical{NodeMeta: p.meta(start), Op: op, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseOr() ast.Expr {
	return p.parseLogical(p.parseXor, token.OR, ast.OpOr)
}

func (p *Parser) parseXor() ast.Expr {
	return p.parseLogical(p.parseAnd, token.XOR, ast.OpXor)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.parseLogical(p.parseNot, token.AND, ast.OpAnd)
}

func (p *Parser) parseNot() ast.Expr {
	if !p.c.At(token.NOT) {
		return p.parseIs()
	}

	start := p.start()
	tok := p.c.Advance()
	operand := p.operand(p.parseNot, tok)

	return &ast.Unary{NodeMeta: p.meta(start), Op: ast.UnaryNot, Operand: operand}
}

// parseIs handles the IS [NOT] suffix chain and the :: typed shorthand.
func (p *Parser) parseIs() ast.Expr {
	start := p.start()

	left := p.parseComparison()
	if left == nil {
		return nil
	}

	guard := p.c.Guard()
	for p.c.At(token.IS, token.DOUBLE_COLON) && !guard.Stalled("IS predicate") {
		if p.c.At(token.DOUBLE_COLON) {
			p.c.Advance()

			pred := &ast.Predicate{Kind: ast.PredTyped, Subject: left, Type: p.expectType()}
			pred.NodeMeta = p.meta(start)
			left = pred

			continue
		}

		left = p.parseIsSuffix(start, left)
	}

	return left
}

func (p *Parser) parseIsSuffix(start int, subject ast.Expr) ast.Expr {
	p.c.Advance() // IS

	pred := &ast.Predicate{Subject: subject}
	_, pred.Negated = p.c.Eat(token.NOT)

	switch p.c.Current().Kind {
	case token.NULL:
		pred.Kind = ast.PredNull
	case token.TRUE:
		pred.Kind = ast.PredTrue
	case token.FALSE:
		pred.Kind = ast.PredFalse
	case token.UNKNOWN:
		pred.Kind = ast.PredUnknown
	case token.DIRECTED:
		pred.Kind = ast.PredDirected
	case token.NORMALIZED:
		pred.Kind = ast.PredNormalized
	case token.LABELED, token.COLON:
		p.c.Advance()
		pred.Kind = ast.PredLabeled
		pred.Labels = p.expectLabelExpr()
		pred.NodeMeta = p.meta(start)

		return pred
	case token.TYPED:
		p.c.Advance()
		pred.Kind = ast.PredTyped
		pred.Type = p.expectType()
		pred.NodeMeta = p.meta(start)

		return pred
	case token.SOURCE, token.DESTINATION:
		pred.Kind = ast.PredSourceOf
		if p.c.At(token.DESTINATION) {
			pred.Kind = ast.PredDestinationOf
		}

		p.c.Advance()
		p.c.Expect(token.OF, "")
		pred.Args = []ast.Expr{p.operand(p.parseConcat, p.c.Peek(-1))}
		pred.NodeMeta = p.meta(start)

		return pred
	default:
		p.c.Expected("predicate after IS")
		return subject
	}

	p.c.Advance()
	pred.NodeMeta = p.meta(start)

	return pred
}

var comparisonOps = map[token.Kind]ast.CompareOp{
	token.EQ:  ast.OpEq,
	token.NEQ: ast.OpNeq,
	token.LT:  ast.OpLt,
	token.GT:  ast.OpGt,
	token.LTE: ast.OpLte,
	token.GTE: ast.OpGte,
	// a <-1 is a < -1
	token.LEFT_ARROW: ast.OpLt,
}

// comparisonOp consumes a comparison operator. For '<-' it arms a pending
// unary minus for the next operand.
func (p *Parser) comparisonOp() (token.Token, ast.CompareOp, bool) {
	op, ok := comparisonOps[p.c.Current().Kind]
	if !ok {
		return token.Token{}, 0, false
	}

	tok := p.c.Advance()
	if tok.Kind == token.LEFT_ARROW {
		p.pendingMinus = tok.Span.Start + 1
	}

	return tok, op, true
}

// parseComparison allows exactly one comparison operator. Further operators
// are reported as a chained comparison and their operands are discarded.
func (p *Parser) parseComparison() ast.Expr {
	start := p.start()

	left := p.parseConcat()
	if left == nil {
		return nil
	}

	first, op, ok := p.comparisonOp()
	if !ok {
		return left
	}

	right := p.operand(p.parseConcat, first)
	cmp := &ast.Comparison{NodeMeta: p.meta(start), Op: op, Left: left, Right: right}

	guard := p.c.Guard()
	for !guard.Stalled("comparison") {
		extra, _, ok := p.comparisonOp()
		if !ok {
			break
		}

		p.c.Report(diag.Errorf("chained comparison is not allowed").
			WithPrimary(extra.Span, "second comparison operator").
			WithSecondary(first.Span, "first comparison here").
			WithHelp("combine comparisons with AND, e.g. a < b AND b < c").
			WithCode(diag.CodeChainedComparison))
		p.operand(p.parseConcat, extra)
		p.pendingMinus = -1
	}

	return cmp
}

func (p *Parser) parseBinary(next func() ast.Expr, ops map[token.Kind]ast.BinaryOp) ast.Expr {
	start := p.start()

	left := next()
	if left == nil {
		return nil
	}

	guard := p.c.Guard()
	for !guard.Stalled("binary expression") {
		op, ok := ops[p.c.Current().Kind]
		if !ok {
			break
		}

		tok := p.c.Advance()
		right := p.operand(next, tok)
		left = &ast.Binary{NodeMeta: p.meta(start), Op: op, Left: left, Right: right}
	}

	return left
}

var (
	concatOps   = map[token.Kind]ast.BinaryOp{token.CONCAT: ast.OpConcat}
	additiveOps = map[token.Kind]ast.BinaryOp{token.PLUS: ast.OpAdd, token.MINUS: ast.OpSub}
	multOps     = map[token.Kind]ast.BinaryOp{
		token.STAR:    ast.OpMul,
		token.SLASH:   ast.OpDiv,
		token.PERCENT: ast.OpMod,
	}
)

func (p *Parser) parseConcat() ast.Expr {
	return p.parseBinary(p.parseAdditive, concatOps)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinary(p.parseMultiplicative, additiveOps)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinary(p.parseUnary, multOps)
}

func (p *Parser) parseUnary() ast.Expr {
	if p.pendingMinus >= 0 {
		start := p.pendingMinus
		p.pendingMinus = -1

		operand := p.operand(p.parseUnary, token.Token{Kind: token.MINUS, Text: "-"})

		return &ast.Unary{NodeMeta: p.meta(start), Op: ast.UnaryMinus, Operand: operand}
	}

	if !p.c.At(token.PLUS, token.MINUS) {
		return p.parsePostfix()
	}

	start := p.start()
	tok := p.c.Advance()

	op := ast.UnaryPlus
	if tok.Kind == token.MINUS {
		op = ast.UnaryMinus
	}

	operand := p.operand(p.parseUnary, tok)

	return &ast.Unary{NodeMeta: p.meta(start), Op: op, Operand: operand}
}

// parsePostfix handles the left-associated property access chain.
func (p *Parser) parsePostfix() ast.Expr {
	start := p.start()

	e := p.parsePrimary()
	if e == nil {
		return nil
	}

	guard := p.c.Guard()
	for p.c.At(token.DOT) && !guard.Stalled("property access") {
		p.c.Advance()

		if !isPropertyName(p.c.Current()) {
			p.c.Expected("property name after '.'")
			break
		}

		prop := p.c.Advance()
		e = &ast.PropertyRef{NodeMeta: p.meta(start), Target: e, Property: name(prop)}
	}

	return e
}
