package ast

// GraphPattern is the body of a MATCH statement.
type GraphPattern struct {
	NodeMeta
	Mode  MatchMode
	Paths []*PathPattern
	Keep  *PathPrefix
	Where Expr
	Yield []*YieldItem
}

// YieldItem is expr [AS alias] in a YIELD clause.
type YieldItem struct {
	NodeMeta
	Value Expr
	Alias string
}

// PathPattern is [var =] [prefix] path-expression.
type PathPattern struct {
	NodeMeta
	Variable string
	Prefix   *PathPrefix
	Expr     PathExpr
}

// PathPrefix is a path mode, a search prefix, or both.
type PathPrefix struct {
	NodeMeta
	Mode   PathMode
	Search SearchKind
	// Count is the number of paths or groups for ANY k and SHORTEST k.
	Count Expr
	Unit  PrefixUnit
}

// PathAlternation is a |+| b |+| c.
type PathAlternation struct {
	NodeMeta
	Alternatives []PathExpr
}

// PathUnion is left | right; longer unions nest to the left.
type PathUnion struct {
	NodeMeta
	Left, Right PathExpr
}

// PathTerm is a non-empty concatenation of factors.
type PathTerm struct {
	NodeMeta
	Factors []*PathFactor
}

// PathFactor is a primary with an optional quantifier.
type PathFactor struct {
	NodeMeta
	Primary    PathPrimary
	Quantifier *Quantifier
}

// Quantifier bounds repetition. Max is Unbounded for *, + and {m,}.
type Quantifier struct {
	NodeMeta
	Kind     QuantifierKind
	Min, Max int
}

// NodePattern is ( filler ).
type NodePattern struct {
	NodeMeta
	Filler *ElementFiller
}

// EdgePattern is a full edge -[ filler ]-> or an abbreviated arrow.
type EdgePattern struct {
	NodeMeta
	Direction Direction
	// Abbreviated edges have no filler.
	Abbreviated bool
	Filler      *ElementFiller
}

// ParenPath is ( [var =] [mode] path-expression [WHERE condition] ).
type ParenPath struct {
	NodeMeta
	Variable string
	Mode     PathMode
	Expr     PathExpr
	Where    Expr
}

// SimplifiedPath is the slash notation, e.g. -/ :Knows /->.
type SimplifiedPath struct {
	NodeMeta
	Direction Direction
	Contents  SimplifiedExpr
}

// ElementFiller is the shared interior of node and edge patterns. At most one
// of Properties and Where is set.
type ElementFiller struct {
	NodeMeta
	Variable   string
	Labels     LabelExpr
	Properties *RecordConstructor
	Where      Expr
}

func (*PathAlternation) pathExprNode() {}
func (*PathUnion) pathExprNode()       {}
func (*PathTerm) pathExprNode()        {}

func (*NodePattern) pathPrimaryNode()    {}
func (*EdgePattern) pathPrimaryNode()    {}
func (*ParenPath) pathPrimaryNode()      {}
func (*SimplifiedPath) pathPrimaryNode() {}

// =============================================================================
// Label expressions
// =============================================================================

// LabelName is a single label.
type LabelName struct {
	NodeMeta
	Name string
}

// LabelWildcard is %.
type LabelWildcard struct {
	NodeMeta
}

// LabelNegation is !operand.
type LabelNegation struct {
	NodeMeta
	Operand LabelExpr
}

// LabelConjunction is a & b & c.
type LabelConjunction struct {
	NodeMeta
	Operands []LabelExpr
}

// LabelDisjunction is a | b | c.
type LabelDisjunction struct {
	NodeMeta
	Operands []LabelExpr
}

// LabelParen is ( inner ).
type LabelParen struct {
	NodeMeta
	Inner LabelExpr
}

func (*LabelName) labelNode()        {}
func (*LabelWildcard) labelNode()    {}
func (*LabelNegation) labelNode()    {}
func (*LabelConjunction) labelNode() {}
func (*LabelDisjunction) labelNode() {}
func (*LabelParen) labelNode()       {}

// =============================================================================
// Simplified notation contents
// =============================================================================

// SimplifiedAlternation is a |+| b.
type SimplifiedAlternation struct {
	NodeMeta
	Alternatives []SimplifiedExpr
}

// SimplifiedUnion is left | right.
type SimplifiedUnion struct {
	NodeMeta
	Left, Right SimplifiedExpr
}

// SimplifiedConcat is a sequence of edges written side by side.
type SimplifiedConcat struct {
	NodeMeta
	Parts []SimplifiedExpr
}

// SimplifiedConjunction is left & right.
type SimplifiedConjunction struct {
	NodeMeta
	Left, Right SimplifiedExpr
}

// SimplifiedQuantified is inner followed by a quantifier.
type SimplifiedQuantified struct {
	NodeMeta
	Inner      SimplifiedExpr
	Quantifier *Quantifier
}

// SimplifiedNegation is !operand.
type SimplifiedNegation struct {
	NodeMeta
	Operand SimplifiedExpr
}

// SimplifiedOverride forces the direction of one label, e.g. <Knows or Likes>.
type SimplifiedOverride struct {
	NodeMeta
	Direction Direction
	Operand   SimplifiedExpr
}

// SimplifiedLabel is a bare label inside simplified notation.
type SimplifiedLabel struct {
	NodeMeta
	Name string
}

// SimplifiedParen is ( inner ).
type SimplifiedParen struct {
	NodeMeta
	Inner SimplifiedExpr
}

func (*SimplifiedAlternation) simplifiedNode() {}
func (*SimplifiedUnion) simplifiedNode()       {}
func (*SimplifiedConcat) simplifiedNode()      {}
func (*SimplifiedConjunction) simplifiedNode() {}
func (*SimplifiedQuantified) simplifiedNode()  {}
func (*SimplifiedNegation) simplifiedNode()    {}
func (*SimplifiedOverride) simplifiedNode()    {}
func (*SimplifiedLabel) simplifiedNode()       {}
func (*SimplifiedParen) simplifiedNode()       {}
