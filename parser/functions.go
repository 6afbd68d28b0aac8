package parser

import (
	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/token"
)

var aggregates = map[string]ast.AggregateFunc{
	"COUNT":           ast.AggCount,
	"SUM":             ast.AggSum,
	"AVG":             ast.AggAvg,
	"MIN":             ast.AggMin,
	"MAX":             ast.AggMax,
	"COLLECT_LIST":    ast.AggCollectList,
	"STDDEV_SAMP":     ast.AggStddevSamp,
	"STDDEV_POP":      ast.AggStddevPop,
	"PERCENTILE_CONT": ast.AggPercentileCont,
	"PERCENTILE_DISC": ast.AggPercentileDisc,
}

// parseCall parses name(args). The current token is the name and the next
// is '('. Names are matched case-insensitively; unknown names become custom
// calls.
func (p *Parser) parseCall() ast.Expr {
	start := p.start()
	nameTok := p.c.Advance()
	upper := p.upper.String(nameTok.Text)

	if agg, ok := aggregates[upper]; ok {
		return p.parseAggregate(start, agg)
	}

	p.c.Advance() // (

	var args []ast.Expr

	p.commaList(token.RPAREN, "argument list", func() {
		args = append(args, p.expectExpr("argument"))
	})

	fn := ast.FunctionName{Custom: nameTok.Text}
	if b, ok := ast.LookupBuiltin(upper); ok {
		fn = ast.FunctionName{Builtin: b}
	}

	return &ast.FunctionCall{NodeMeta: p.meta(start), Name: fn, Args: args}
}

func (p *Parser) parseAggregate(start int, fn ast.AggregateFunc) ast.Expr {
	p.c.Advance() // (

	agg := &ast.Aggregate{Func: fn}

	switch {
	case fn == ast.AggCount && p.c.At(token.STAR):
		p.c.Advance()
		agg.Star = true
	default:
		if _, ok := p.c.Eat(token.DISTINCT); ok {
			agg.Quantifier = ast.SetDistinct
		} else if _, ok := p.c.Eat(token.ALL); ok {
			agg.Quantifier = ast.SetAll
		}

		agg.Arg = p.expectExpr("aggregate argument")

		if fn.Binary() {
			p.c.Expect(token.COMMA, "',' before percentile")
			agg.Extra = p.expectExpr("percentile")
		}
	}

	p.c.Expect(token.RPAREN, "')' closing "+fn.String())
	agg.NodeMeta = p.meta(start)

	return agg
}
