// Package ast defines the syntax tree produced by the parser. Every node owns
// its children outright and carries the byte span it was parsed from.
package ast

import "github.com/rlch/gql/diag"

// =============================================================================
// Common embedded types and interfaces
// =============================================================================

// NodeMeta holds the source span common to all nodes.
type NodeMeta struct {
	Loc diag.Span
}

// Span returns the source span of this node.
func (m *NodeMeta) Span() diag.Span { return m.Loc }

// Node is implemented by every tree node.
type Node interface {
	Span() diag.Span
}

// Statement is a top-level clause of a Program.
type Statement interface {
	Node
	statementNode()
}

// Expr is a value expression.
type Expr interface {
	Node
	exprNode()
}

// PathExpr is a path pattern expression: an alternation, a union or a term.
type PathExpr interface {
	Node
	pathExprNode()
}

// PathPrimary is the element of a path factor.
type PathPrimary interface {
	Node
	pathPrimaryNode()
}

// LabelExpr is a boolean expression over element labels.
type LabelExpr interface {
	Node
	labelNode()
}

// SimplifiedExpr is the contents of a simplified path.
type SimplifiedExpr interface {
	Node
	simplifiedNode()
}

// =============================================================================
// Program and statements
// =============================================================================

// Program is the root of a parse.
type Program struct {
	NodeMeta
	Statements []Statement
}

// MatchStatement is MATCH or OPTIONAL MATCH followed by a graph pattern.
type MatchStatement struct {
	NodeMeta
	Optional bool
	Pattern  *GraphPattern
}

// FilterStatement is FILTER [WHERE] condition.
type FilterStatement struct {
	NodeMeta
	Condition Expr
}

// LetStatement binds one or more variables.
type LetStatement struct {
	NodeMeta
	Bindings []*LetBinding
}

// LetBinding is name = value inside a LET statement.
type LetBinding struct {
	NodeMeta
	Name  string
	Value Expr
}

// ReturnStatement is RETURN [DISTINCT] followed by * or a list of items.
type ReturnStatement struct {
	NodeMeta
	Distinct bool
	Star     bool
	Items    []*ReturnItem
}

// ReturnItem is expr [AS alias].
type ReturnItem struct {
	NodeMeta
	Value Expr
	Alias string
}

// BadStatement covers tokens skipped while recovering from an unknown
// statement.
type BadStatement struct {
	NodeMeta
}

func (*MatchStatement) statementNode()  {}
func (*FilterStatement) statementNode() {}
func (*LetStatement) statementNode()    {}
func (*ReturnStatement) statementNode() {}
func (*BadStatement) statementNode()    {}
