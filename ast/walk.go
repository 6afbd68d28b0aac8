package ast

// Children returns the direct children of n in source order. Absent optional
// children are omitted.
func Children(n Node) []Node {
	var c children

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Statements {
			c.add(s)
		}
	case *MatchStatement:
		if n.Pattern != nil {
			c.add(n.Pattern)
		}
	case *FilterStatement:
		c.add(n.Condition)
	case *LetStatement:
		for _, b := range n.Bindings {
			c.add(b)
		}
	case *LetBinding:
		c.add(n.Value)
	case *ReturnStatement:
		for _, it := range n.Items {
			c.add(it)
		}
	case *ReturnItem:
		c.add(n.Value)

	case *Unary:
		c.add(n.Operand)
	case *Binary:
		c.add(n.Left)
		c.add(n.Right)
	case *Logical:
		c.add(n.Left)
		c.add(n.Right)
	case *Comparison:
		c.add(n.Left)
		c.add(n.Right)
	case *PropertyRef:
		c.add(n.Target)
	case *FunctionCall:
		c.exprs(n.Args)
	case *Aggregate:
		c.add(n.Arg)
		c.add(n.Extra)
	case *Case:
		c.add(n.Operand)

		for _, w := range n.Whens {
			c.add(w)
		}

		c.add(n.Else)
	case *WhenClause:
		c.add(n.Condition)
		c.add(n.Result)
	case *Cast:
		c.add(n.Value)

		if n.Type != nil {
			c.add(n.Type)
		}
	case *TypeRef:
		for _, a := range n.Args {
			c.add(a)
		}
	case *Predicate:
		c.add(n.Subject)
		c.exprs(n.Args)
		c.add(n.Labels)

		if n.Type != nil {
			c.add(n.Type)
		}
	case *ListConstructor:
		c.exprs(n.Elements)
	case *RecordConstructor:
		for _, f := range n.Fields {
			c.add(f)
		}
	case *RecordField:
		c.add(n.Value)
	case *PathConstructor:
		c.exprs(n.Elements)
	case *Exists:
		c.add(n.Inner)

	case *GraphPattern:
		for _, p := range n.Paths {
			c.add(p)
		}

		if n.Keep != nil {
			c.add(n.Keep)
		}

		c.add(n.Where)

		for _, y := range n.Yield {
			c.add(y)
		}
	case *YieldItem:
		c.add(n.Value)
	case *PathPattern:
		if n.Prefix != nil {
			c.add(n.Prefix)
		}

		c.add(n.Expr)
	case *PathPrefix:
		c.add(n.Count)
	case *PathAlternation:
		for _, a := range n.Alternatives {
			c.add(a)
		}
	case *PathUnion:
		c.add(n.Left)
		c.add(n.Right)
	case *PathTerm:
		for _, f := range n.Factors {
			c.add(f)
		}
	case *PathFactor:
		c.add(n.Primary)

		if n.Quantifier != nil {
			c.add(n.Quantifier)
		}
	case *NodePattern:
		if n.Filler != nil {
			c.add(n.Filler)
		}
	case *EdgePattern:
		if n.Filler != nil {
			c.add(n.Filler)
		}
	case *ParenPath:
		c.add(n.Expr)
		c.add(n.Where)
	case *SimplifiedPath:
		c.add(n.Contents)
	case *ElementFiller:
		c.add(n.Labels)

		if n.Properties != nil {
			c.add(n.Properties)
		}

		c.add(n.Where)

	case *LabelNegation:
		c.add(n.Operand)
	case *LabelConjunction:
		for _, o := range n.Operands {
			c.add(o)
		}
	case *LabelDisjunction:
		for _, o := range n.Operands {
			c.add(o)
		}
	case *LabelParen:
		c.add(n.Inner)

	case *SimplifiedAlternation:
		for _, a := range n.Alternatives {
			c.add(a)
		}
	case *SimplifiedUnion:
		c.add(n.Left)
		c.add(n.Right)
	case *SimplifiedConcat:
		for _, p := range n.Parts {
			c.add(p)
		}
	case *SimplifiedConjunction:
		c.add(n.Left)
		c.add(n.Right)
	case *SimplifiedQuantified:
		c.add(n.Inner)

		if n.Quantifier != nil {
			c.add(n.Quantifier)
		}
	case *SimplifiedNegation:
		c.add(n.Operand)
	case *SimplifiedOverride:
		c.add(n.Operand)
	case *SimplifiedParen:
		c.add(n.Inner)
	}

	return c
}

type children []Node

// add appends n unless it is a nil interface. Nil pointers stored in
// interface fields are never produced by the parser.
func (c *children) add(n Node) {
	if n != nil {
		*c = append(*c, n)
	}
}

func (c *children) exprs(es []Expr) {
	for _, e := range es {
		c.add(e)
	}
}

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. If f returns false, the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	for _, child := range Children(n) {
		Inspect(child, f)
	}
}
