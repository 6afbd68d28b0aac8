package parser

import (
	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// GraphPattern parses [match mode] path, path ... [KEEP prefix] [WHERE cond]
// [YIELD items]. It returns nil without reporting when no path pattern
// starts at the cursor and nothing was consumed.
func (p *Parser) GraphPattern() *ast.GraphPattern {
	start := p.start()
	gp := &ast.GraphPattern{Mode: p.parseMatchMode()}

	guard := p.c.Guard()
	for !guard.Stalled("graph pattern") {
		path := p.parsePathPattern()
		if path == nil {
			if len(gp.Paths) > 0 || gp.Mode != ast.MatchModeNone {
				p.expectedPattern("path pattern")
			}

			break
		}

		gp.Paths = append(gp.Paths, path)

		if _, ok := p.c.Eat(token.COMMA); !ok {
			break
		}
	}

	if len(gp.Paths) == 0 && p.c.SpanFrom(start).IsEmpty() {
		return nil
	}

	if _, ok := p.c.Eat(token.KEEP); ok {
		gp.Keep = p.parsePathPrefix()
		if gp.Keep == nil {
			p.expectedPattern("path prefix after KEEP")
		}
	}

	if _, ok := p.c.Eat(token.WHERE); ok {
		gp.Where = p.expectExpr("WHERE condition")
	}

	if _, ok := p.c.Eat(token.YIELD); ok {
		gp.Yield = p.parseYield()
	}

	gp.NodeMeta = p.meta(start)

	return gp
}

func (p *Parser) expectedPattern(what string) {
	cur := p.c.Current()
	p.c.Report(diag.Errorf("expected %s, found %s", what, cur.Describe()).
		WithPrimary(cur.Span, "expected "+what).
		WithCode(diag.CodePattern))
}

// parseMatchMode parses REPEATABLE ELEMENT[S] [BINDINGS] and
// DIFFERENT EDGE[S] [BINDINGS].
func (p *Parser) parseMatchMode() ast.MatchMode {
	var mode ast.MatchMode

	switch {
	case p.c.At(token.REPEATABLE):
		p.c.Advance()

		mode = ast.MatchRepeatableElements

		switch {
		case p.c.At(token.ELEMENTS):
			p.c.Advance()
		case p.c.At(token.ELEMENT):
			p.c.Advance()
			p.c.Eat(token.BINDINGS)
		default:
			p.c.Expected("ELEMENTS after REPEATABLE")
		}
	case p.c.At(token.DIFFERENT):
		p.c.Advance()

		mode = ast.MatchDifferentEdges

		switch {
		case p.c.At(token.EDGES):
			p.c.Advance()
		case p.c.At(token.EDGE):
			p.c.Advance()
			p.c.Eat(token.BINDINGS)
		default:
			p.c.Expected("EDGES after DIFFERENT")
		}
	}

	return mode
}

func (p *Parser) parseYield() []*ast.YieldItem {
	var items []*ast.YieldItem

	guard := p.c.Guard()
	for !guard.Stalled("YIELD") {
		start := p.start()
		item := &ast.YieldItem{Value: p.expectExpr("YIELD item")}

		if _, ok := p.c.Eat(token.AS); ok {
			if isName(p.c.Current()) || p.c.At(token.DELIMITED_IDENT) {
				item.Alias = name(p.c.Advance())
			} else {
				p.c.Expected("alias after AS")
			}
		}

		item.NodeMeta = p.meta(start)
		items = append(items, item)

		if _, ok := p.c.Eat(token.COMMA); !ok {
			break
		}
	}

	return items
}

// parsePathPattern parses [var =] [prefix] path-expression.
func (p *Parser) parsePathPattern() *ast.PathPattern {
	start := p.start()
	path := &ast.PathPattern{}

	if p.c.AtSeq(token.IDENT, token.EQ) {
		path.Variable = p.c.Advance().Text
		p.c.Advance()
	}

	path.Prefix = p.parsePathPrefix()

	path.Expr = p.parsePathExpr()
	if path.Expr == nil {
		if path.Variable == "" && path.Prefix == nil {
			return nil
		}

		p.expectedPattern("path pattern expression")
	}

	path.NodeMeta = p.meta(start)

	return path
}

// parsePathPrefix parses a search prefix or, failing that, a bare path mode.
func (p *Parser) parsePathPrefix() *ast.PathPrefix {
	if prefix := p.parseSearchPrefix(); prefix != nil {
		return prefix
	}

	start := p.start()

	mode := p.parsePathMode()
	if mode == ast.PathModeNone {
		return nil
	}

	prefix := &ast.PathPrefix{Mode: mode, Unit: p.parseUnit(false)}
	prefix.NodeMeta = p.meta(start)

	return prefix
}

// parseSearchPrefix parses ALL [SHORTEST], ANY [count] [SHORTEST] and
// SHORTEST [count], each followed by [mode] [unit]. GROUP(S) is accepted only
// after SHORTEST. It returns nil without consuming when none starts here.
func (p *Parser) parseSearchPrefix() *ast.PathPrefix {
	start := p.start()
	prefix := &ast.PathPrefix{}
	groups := false

	switch {
	case p.c.At(token.ALL):
		p.c.Advance()

		prefix.Search = ast.SearchAll
		if _, ok := p.c.Eat(token.SHORTEST); ok {
			prefix.Search = ast.SearchAllShortest
		}
	case p.c.At(token.ANY):
		p.c.Advance()

		prefix.Search = ast.SearchAny
		prefix.Count = p.parsePathCount()

		if _, ok := p.c.Eat(token.SHORTEST); ok {
			prefix.Search = ast.SearchAnyShortest
		}
	case p.c.At(token.SHORTEST):
		p.c.Advance()

		prefix.Search = ast.SearchShortest
		prefix.Count = p.parsePathCount()
		groups = true
	default:
		return nil
	}

	prefix.Mode = p.parsePathMode()
	prefix.Unit = p.parseUnit(groups)
	prefix.NodeMeta = p.meta(start)

	return prefix
}

func (p *Parser) parsePathCount() ast.Expr {
	if !p.c.At(token.INTEGER, token.PARAMETER) {
		return nil
	}

	return p.parsePrimary()
}

var pathModes = map[token.Kind]ast.PathMode{
	token.WALK:    ast.PathWalk,
	token.TRAIL:   ast.PathTrail,
	token.SIMPLE:  ast.PathSimple,
	token.ACYCLIC: ast.PathAcyclic,
}

func (p *Parser) parsePathMode() ast.PathMode {
	mode, ok := pathModes[p.c.Current().Kind]
	if !ok {
		return ast.PathModeNone
	}

	p.c.Advance()

	return mode
}

// parseUnit parses PATH, PATHS and, when groups is set, GROUP or GROUPS.
func (p *Parser) parseUnit(groups bool) ast.PrefixUnit {
	switch {
	case p.c.At(token.PATH, token.PATHS) && p.c.Peek(1).Kind != token.LBRACKET:
		p.c.Advance()
		return ast.UnitPaths
	case groups && p.c.At(token.GROUP, token.GROUPS):
		p.c.Advance()
		return ast.UnitGroups
	}

	return ast.UnitNone
}

// parsePathExpr parses the multiset alternation level: unions separated by
// |+|. It returns nil when no term starts here.
func (p *Parser) parsePathExpr() ast.PathExpr {
	start := p.start()

	first := p.parsePathUnion()
	if first == nil {
		return nil
	}

	if !p.c.At(token.MULTISET_ALT) {
		return first
	}

	alt := &ast.PathAlternation{Alternatives: []ast.PathExpr{first}}

	guard := p.c.Guard()
	for p.c.At(token.MULTISET_ALT) && !guard.Stalled("path alternation") {
		p.c.Advance()

		next := p.parsePathUnion()
		if next == nil {
			p.expectedPattern("path term after '|+|'")
			break
		}

		alt.Alternatives = append(alt.Alternatives, next)
	}

	alt.NodeMeta = p.meta(start)

	return alt
}

// parsePathUnion parses terms separated by |, folded to the left.
func (p *Parser) parsePathUnion() ast.PathExpr {
	start := p.start()

	left := p.parsePathTerm()
	if left == nil {
		return nil
	}

	guard := p.c.Guard()
	for p.c.At(token.PIPE) && !guard.Stalled("path union") {
		p.c.Advance()

		right := p.parsePathTerm()
		if right == nil {
			p.expectedPattern("path term after '|'")
			break
		}

		left = &ast.PathUnion{NodeMeta: p.meta(start), Left: left, Right: right}
	}

	return left
}

// parsePathTerm parses a non-empty sequence of factors.
func (p *Parser) parsePathTerm() ast.PathExpr {
	start := p.start()
	term := &ast.PathTerm{}

	guard := p.c.Guard()
	for !guard.Stalled("path term") {
		f := p.parsePathFactor()
		if f == nil {
			break
		}

		term.Factors = append(term.Factors, f)
	}

	if len(term.Factors) == 0 {
		return nil
	}

	term.NodeMeta = p.meta(start)

	return term
}

// parsePathFactor parses a primary and at most one quantifier. Further
// quantifiers are reported and discarded.
func (p *Parser) parsePathFactor() *ast.PathFactor {
	start := p.start()

	primary := p.parsePathPrimary()
	if primary == nil {
		return nil
	}

	f := &ast.PathFactor{Primary: primary, Quantifier: p.parseQuantifier()}
	if f.Quantifier != nil {
		p.discardChainedQuantifiers(f.Quantifier)
	}

	f.NodeMeta = p.meta(start)

	return f
}

// parsePathPrimary parses a node pattern, edge pattern, parenthesized path
// or simplified path.
func (p *Parser) parsePathPrimary() ast.PathPrimary {
	if !isPathPrimaryStart(p.c) {
		return nil
	}

	if !p.enter() {
		return nil
	}
	defer p.leave()

	if p.c.At(token.LPAREN) {
		return p.parseParenPrimary()
	}

	if isSimplifiedOpening(p.c) {
		return p.parseSimplifiedPath()
	}

	return p.parseEdgePattern()
}

func isPathPrimaryStart(c *Cursor) bool {
	return c.At(token.LPAREN) || edgeOpening(c.Current().Kind)
}

// parseParenPrimary reads '(' as a node pattern first and re-reads the same
// tokens as a parenthesized path when the node is not closed. When neither
// reading holds a path, a node attempt that bound a variable, label or
// predicate wins and its missing ')' is reported where the node stopped.
func (p *Parser) parseParenPrimary() ast.PathPrimary {
	start := p.start()
	cp := p.c.Checkpoint()

	node, ok := p.parseNodePattern()
	if ok {
		return node
	}

	attempt := p.c.Snapshot(cp)
	p.c.Restore(cp)

	pp, ok := p.parseParenPath()
	if ok || !fillerBinds(node.Filler) {
		return pp
	}

	p.c.Reinstate(cp, attempt)
	p.c.Expected("')' closing node pattern")
	p.skipBalanced(token.RPAREN)
	p.c.Eat(token.RPAREN)

	node.NodeMeta = p.meta(start)

	return node
}

func fillerBinds(f *ast.ElementFiller) bool {
	return f.Variable != "" || f.Labels != nil || f.Properties != nil || f.Where != nil
}

// parseParenPath parses ( [var =] [mode] path-expression [WHERE cond] ).
// It reports false when no path expression follows the opening tokens.
func (p *Parser) parseParenPath() (*ast.ParenPath, bool) {
	start := p.start()
	p.c.Advance() // (

	pp := &ast.ParenPath{}

	if p.c.AtSeq(token.IDENT, token.EQ) {
		pp.Variable = p.c.Advance().Text
		p.c.Advance()
	}

	pp.Mode = p.parsePathMode()
	if pp.Mode != ast.PathModeNone {
		p.parseUnit(false)
	}

	pp.Expr = p.parsePathExpr()
	if pp.Expr == nil {
		p.expectedPattern("node pattern or path pattern")
		p.skipBalanced(token.RPAREN)
	}

	if _, ok := p.c.Eat(token.WHERE); ok {
		pp.Where = p.expectExpr("WHERE condition")
	}

	p.c.Expect(token.RPAREN, "')' closing parenthesized path")
	pp.NodeMeta = p.meta(start)

	return pp, pp.Expr != nil
}
