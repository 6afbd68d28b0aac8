package ast

// Visitor has one method per node type. Each returns a break value and
// whether traversal should stop. Embed Base to inherit methods that recurse
// into children and override only the nodes of interest:
//
//	type counter struct {
//		ast.Base[int]
//		n int
//	}
//
//	func (c *counter) VisitVariableRef(*ast.VariableRef) (int, bool) {
//		c.n++
//		return 0, false
//	}
//
//	c := &counter{}
//	c.Self = c
//	ast.Walk[int](c, program)
type Visitor[B any] interface {
	// Statements
	VisitProgram(*Program) (B, bool)
	VisitMatchStatement(*MatchStatement) (B, bool)
	VisitFilterStatement(*FilterStatement) (B, bool)
	VisitLetStatement(*LetStatement) (B, bool)
	VisitLetBinding(*LetBinding) (B, bool)
	VisitReturnStatement(*ReturnStatement) (B, bool)
	VisitReturnItem(*ReturnItem) (B, bool)
	VisitBadStatement(*BadStatement) (B, bool)

	// Expressions
	VisitLiteral(*Literal) (B, bool)
	VisitUnary(*Unary) (B, bool)
	VisitBinary(*Binary) (B, bool)
	VisitLogical(*Logical) (B, bool)
	VisitComparison(*Comparison) (B, bool)
	VisitPropertyRef(*PropertyRef) (B, bool)
	VisitVariableRef(*VariableRef) (B, bool)
	VisitParameterRef(*ParameterRef) (B, bool)
	VisitFunctionCall(*FunctionCall) (B, bool)
	VisitAggregate(*Aggregate) (B, bool)
	VisitCase(*Case) (B, bool)
	VisitWhenClause(*WhenClause) (B, bool)
	VisitCast(*Cast) (B, bool)
	VisitTypeRef(*TypeRef) (B, bool)
	VisitPredicate(*Predicate) (B, bool)
	VisitListConstructor(*ListConstructor) (B, bool)
	VisitRecordConstructor(*RecordConstructor) (B, bool)
	VisitRecordField(*RecordField) (B, bool)
	VisitPathConstructor(*PathConstructor) (B, bool)
	VisitSubqueryPlaceholder(*SubqueryPlaceholder) (B, bool)
	VisitExists(*Exists) (B, bool)
	VisitBadExpr(*BadExpr) (B, bool)

	// Patterns
	VisitGraphPattern(*GraphPattern) (B, bool)
	VisitYieldItem(*YieldItem) (B, bool)
	VisitPathPattern(*PathPattern) (B, bool)
	VisitPathPrefix(*PathPrefix) (B, bool)
	VisitPathAlternation(*PathAlternation) (B, bool)
	VisitPathUnion(*PathUnion) (B, bool)
	VisitPathTerm(*PathTerm) (B, bool)
	VisitPathFactor(*PathFactor) (B, bool)
	VisitQuantifier(*Quantifier) (B, bool)
	VisitNodePattern(*NodePattern) (B, bool)
	VisitEdgePattern(*EdgePattern) (B, bool)
	VisitParenPath(*ParenPath) (B, bool)
	VisitSimplifiedPath(*SimplifiedPath) (B, bool)
	VisitElementFiller(*ElementFiller) (B, bool)

	// Labels
	VisitLabelName(*LabelName) (B, bool)
	VisitLabelWildcard(*LabelWildcard) (B, bool)
	VisitLabelNegation(*LabelNegation) (B, bool)
	VisitLabelConjunction(*LabelConjunction) (B, bool)
	VisitLabelDisjunction(*LabelDisjunction) (B, bool)
	VisitLabelParen(*LabelParen) (B, bool)

	// Simplified notation
	VisitSimplifiedAlternation(*SimplifiedAlternation) (B, bool)
	VisitSimplifiedUnion(*SimplifiedUnion) (B, bool)
	VisitSimplifiedConcat(*SimplifiedConcat) (B, bool)
	VisitSimplifiedConjunction(*SimplifiedConjunction) (B, bool)
	VisitSimplifiedQuantified(*SimplifiedQuantified) (B, bool)
	VisitSimplifiedNegation(*SimplifiedNegation) (B, bool)
	VisitSimplifiedOverride(*SimplifiedOverride) (B, bool)
	VisitSimplifiedLabel(*SimplifiedLabel) (B, bool)
	VisitSimplifiedParen(*SimplifiedParen) (B, bool)
}

// Dispatch calls the Visit method of v matching the dynamic type of n.
func Dispatch[B any](v Visitor[B], n Node) (B, bool) {
	switch n := n.(type) {
	case *Program:
		return v.VisitProgram(n)
	case *MatchStatement:
		return v.VisitMatchStatement(n)
	case *FilterStatement:
		return v.VisitFilterStatement(n)
	case *LetStatement:
		return v.VisitLetStatement(n)
	case *LetBinding:
		return v.VisitLetBinding(n)
	case *ReturnStatement:
		return v.VisitReturnStatement(n)
	case *ReturnItem:
		return v.VisitReturnItem(n)
	case *BadStatement:
		return v.VisitBadStatement(n)
	case *Literal:
		return v.VisitLiteral(n)
	case *Unary:
		return v.VisitUnary(n)
	case *Binary:
		return v.VisitBinary(n)
	case *Logical:
		return v.VisitLogical(n)
	case *Comparison:
		return v.VisitComparison(n)
	case *PropertyRef:
		return v.VisitPropertyRef(n)
	case *VariableRef:
		return v.VisitVariableRef(n)
	case *ParameterRef:
		return v.VisitParameterRef(n)
	case *FunctionCall:
		return v.VisitFunctionCall(n)
	case *Aggregate:
		return v.VisitAggregate(n)
	case *Case:
		return v.VisitCase(n)
	case *WhenClause:
		return v.VisitWhenClause(n)
	case *Cast:
		return v.VisitCast(n)
	case *TypeRef:
		return v.VisitTypeRef(n)
	case *Predicate:
		return v.VisitPredicate(n)
	case *ListConstructor:
		return v.VisitListConstructor(n)
	case *RecordConstructor:
		return v.VisitRecordConstructor(n)
	case *RecordField:
		return v.VisitRecordField(n)
	case *PathConstructor:
		return v.VisitPathConstructor(n)
	case *SubqueryPlaceholder:
		return v.VisitSubqueryPlaceholder(n)
	case *Exists:
		return v.VisitExists(n)
	case *BadExpr:
		return v.VisitBadExpr(n)
	case *GraphPattern:
		return v.VisitGraphPattern(n)
	case *YieldItem:
		return v.VisitYieldItem(n)
	case *PathPattern:
		return v.VisitPathPattern(n)
	case *PathPrefix:
		return v.VisitPathPrefix(n)
	case *PathAlternation:
		return v.VisitPathAlternation(n)
	case *PathUnion:
		return v.VisitPathUnion(n)
	case *PathTerm:
		return v.VisitPathTerm(n)
	case *PathFactor:
		return v.VisitPathFactor(n)
	case *Quantifier:
		return v.VisitQuantifier(n)
	case *NodePattern:
		return v.VisitNodePattern(n)
	case *EdgePattern:
		return v.VisitEdgePattern(n)
	case *ParenPath:
		return v.VisitParenPath(n)
	case *SimplifiedPath:
		return v.VisitSimplifiedPath(n)
	case *ElementFiller:
		return v.VisitElementFiller(n)
	case *LabelName:
		return v.VisitLabelName(n)
	case *LabelWildcard:
		return v.VisitLabelWildcard(n)
	case *LabelNegation:
		return v.VisitLabelNegation(n)
	case *LabelConjunction:
		return v.VisitLabelConjunction(n)
	case *LabelDisjunction:
		return v.VisitLabelDisjunction(n)
	case *LabelParen:
		return v.VisitLabelParen(n)
	case *SimplifiedAlternation:
		return v.VisitSimplifiedAlternation(n)
	case *SimplifiedUnion:
		return v.VisitSimplifiedUnion(n)
	case *SimplifiedConcat:
		return v.VisitSimplifiedConcat(n)
	case *SimplifiedConjunction:
		return v.VisitSimplifiedConjunction(n)
	case *SimplifiedQuantified:
		return v.VisitSimplifiedQuantified(n)
	case *SimplifiedNegation:
		return v.VisitSimplifiedNegation(n)
	case *SimplifiedOverride:
		return v.VisitSimplifiedOverride(n)
	case *SimplifiedLabel:
		return v.VisitSimplifiedLabel(n)
	case *SimplifiedParen:
		return v.VisitSimplifiedParen(n)
	default:
		var zero B
		return zero, false
	}
}

// Walk visits n with v and returns the break value, if any.
func Walk[B any](v Visitor[B], n Node) (B, bool) {
	if n == nil {
		var zero B
		return zero, false
	}

	return Dispatch(v, n)
}

// Base implements every Visit method by visiting the node's children through
// Self, stopping at the first break. Self must be set to the outermost
// visitor so overridden methods are reached during recursion.
type Base[B any] struct {
	Self Visitor[B]
}

// VisitChildren dispatches each child of n to Self in order.
func (b Base[B]) VisitChildren(n Node) (B, bool) {
	for _, child := range Children(n) {
		if r, stop := Dispatch(b.Self, child); stop {
			return r, true
		}
	}

	var zero B

	return zero, false
}

func (b Base[B]) VisitProgram(n *Program) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitMatchStatement(n *MatchStatement) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitFilterStatement(n *FilterStatement) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitLetStatement(n *LetStatement) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitLetBinding(n *LetBinding) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitReturnStatement(n *ReturnStatement) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitReturnItem(n *ReturnItem) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitBadStatement(n *BadStatement) (B, bool) { return b.VisitChildren(n) }

func (b Base[B]) VisitLiteral(n *Literal) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitUnary(n *Unary) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitBinary(n *Binary) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitLogical(n *Logical) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitComparison(n *Comparison) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPropertyRef(n *PropertyRef) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitVariableRef(n *VariableRef) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitParameterRef(n *ParameterRef) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitFunctionCall(n *FunctionCall) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitAggregate(n *Aggregate) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitCase(n *Case) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitWhenClause(n *WhenClause) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitCast(n *Cast) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitTypeRef(n *TypeRef) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPredicate(n *Predicate) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitListConstructor(n *ListConstructor) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitRecordConstructor(n *RecordConstructor) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitRecordField(n *RecordField) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPathConstructor(n *PathConstructor) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSubqueryPlaceholder(n *SubqueryPlaceholder) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitExists(n *Exists) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitBadExpr(n *BadExpr) (B, bool) { return b.VisitChildren(n) }

func (b Base[B]) VisitGraphPattern(n *GraphPattern) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitYieldItem(n *YieldItem) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPathPattern(n *PathPattern) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPathPrefix(n *PathPrefix) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPathAlternation(n *PathAlternation) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPathUnion(n *PathUnion) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPathTerm(n *PathTerm) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitPathFactor(n *PathFactor) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitQuantifier(n *Quantifier) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitNodePattern(n *NodePattern) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitEdgePattern(n *EdgePattern) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitParenPath(n *ParenPath) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedPath(n *SimplifiedPath) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitElementFiller(n *ElementFiller) (B, bool) { return b.VisitChildren(n) }

func (b Base[B]) VisitLabelName(n *LabelName) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitLabelWildcard(n *LabelWildcard) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitLabelNegation(n *LabelNegation) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitLabelConjunction(n *LabelConjunction) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitLabelDisjunction(n *LabelDisjunction) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitLabelParen(n *LabelParen) (B, bool) { return b.VisitChildren(n) }

func (b Base[B]) VisitSimplifiedAlternation(n *SimplifiedAlternation) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedUnion(n *SimplifiedUnion) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedConcat(n *SimplifiedConcat) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedConjunction(n *SimplifiedConjunction) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedQuantified(n *SimplifiedQuantified) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedNegation(n *SimplifiedNegation) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedOverride(n *SimplifiedOverride) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedLabel(n *SimplifiedLabel) (B, bool) { return b.VisitChildren(n) }
func (b Base[B]) VisitSimplifiedParen(n *SimplifiedParen) (B, bool) { return b.VisitChildren(n) }
