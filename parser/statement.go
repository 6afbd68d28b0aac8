package parser

import (
	"go.uber.org/zap"

	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// statementStarts are the keywords that begin a statement and where
// recovery resumes.
var statementStarts = []token.Kind{
	token.MATCH, token.OPTIONAL, token.FILTER, token.LET, token.RETURN,
}

// Program parses statements until EOF, separated by optional semicolons.
func (p *Parser) Program() *ast.Program {
	start := p.start()
	prog := &ast.Program{}

	guard := p.c.Guard()
	for !p.c.At(token.EOF) && !guard.Stalled("program") {
		if _, ok := p.c.Eat(token.SEMICOLON); ok {
			continue
		}

		prog.Statements = append(prog.Statements, p.parseStatement())
	}

	prog.NodeMeta = p.meta(start)

	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.c.Current().Kind {
	case token.MATCH, token.OPTIONAL:
		return p.parseMatch()
	case token.FILTER:
		return p.parseFilter()
	case token.LET:
		return p.parseLet()
	case token.RETURN:
		return p.parseReturn()
	}

	return p.badStatement()
}

func (p *Parser) parseMatch() *ast.MatchStatement {
	start := p.start()
	stmt := &ast.MatchStatement{}

	if _, ok := p.c.Eat(token.OPTIONAL); ok {
		stmt.Optional = true
		p.c.Expect(token.MATCH, "")
	} else {
		p.c.Advance() // MATCH
	}

	stmt.Pattern = p.GraphPattern()
	if stmt.Pattern == nil {
		cur := p.c.Current()
		p.c.Report(diag.Errorf("expected graph pattern after MATCH, found %s", cur.Describe()).
			WithPrimary(cur.Span, "no pattern starts here").
			WithHelp("a pattern starts with a node such as (n) or an edge such as -[e]->").
			WithCode(diag.CodePattern))
	}

	stmt.NodeMeta = p.meta(start)

	return stmt
}

func (p *Parser) parseFilter() *ast.FilterStatement {
	start := p.start()
	p.c.Advance() // FILTER
	p.c.Eat(token.WHERE)

	stmt := &ast.FilterStatement{Condition: p.expectExpr("FILTER condition")}
	stmt.NodeMeta = p.meta(start)

	return stmt
}

func (p *Parser) parseLet() *ast.LetStatement {
	start := p.start()
	p.c.Advance() // LET

	stmt := &ast.LetStatement{}

	guard := p.c.Guard()
	for !guard.Stalled("LET") {
		bstart := p.start()
		cur := p.c.Current()

		if !isName(cur) {
			p.c.Expected("variable name in LET")
			break
		}

		p.c.Advance()
		p.c.Expect(token.EQ, "")

		b := &ast.LetBinding{Name: cur.Text, Value: p.expectExpr("LET value")}
		b.NodeMeta = p.meta(bstart)
		stmt.Bindings = append(stmt.Bindings, b)

		if _, ok := p.c.Eat(token.COMMA); !ok {
			break
		}
	}

	stmt.NodeMeta = p.meta(start)

	return stmt
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	start := p.start()
	p.c.Advance() // RETURN

	stmt := &ast.ReturnStatement{}

	if _, ok := p.c.Eat(token.DISTINCT); ok {
		stmt.Distinct = true
	}

	if _, ok := p.c.Eat(token.STAR); ok {
		stmt.Star = true
		stmt.NodeMeta = p.meta(start)

		return stmt
	}

	guard := p.c.Guard()
	for !guard.Stalled("RETURN") {
		istart := p.start()
		item := &ast.ReturnItem{Value: p.expectExpr("RETURN item")}

		if _, ok := p.c.Eat(token.AS); ok {
			if cur := p.c.Current(); isName(cur) || cur.Kind == token.DELIMITED_IDENT {
				item.Alias = name(p.c.Advance())
			} else {
				p.c.Expected("alias after AS")
			}
		}

		item.NodeMeta = p.meta(istart)
		stmt.Items = append(stmt.Items, item)

		if _, ok := p.c.Eat(token.COMMA); !ok {
			break
		}
	}

	stmt.NodeMeta = p.meta(start)

	return stmt
}

// badStatement reports an unknown statement and skips to the next
// statement keyword, semicolon or EOF. At least one token is consumed.
func (p *Parser) badStatement() *ast.BadStatement {
	start := p.start()
	cur := p.c.Advance()

	for !p.c.At(token.EOF, token.SEMICOLON) && !p.c.At(statementStarts...) {
		p.c.Advance()
	}

	span := p.c.SpanFrom(start)
	p.c.Report(diag.Errorf("expected a statement, found %s", cur.Describe()).
		WithPrimary(span, "skipped").
		WithHelp("statements start with MATCH, OPTIONAL MATCH, FILTER, LET or RETURN").
		WithCode(diag.CodeStatement))

	p.log.Debug("skipped unknown statement",
		zap.Int("start", span.Start),
		zap.Int("end", span.End),
	)

	return &ast.BadStatement{NodeMeta: ast.NodeMeta{Loc: span}}
}
