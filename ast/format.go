package ast

import (
	"strconv"
	"strings"
)

// Format renders n as a compact S-expression. The output is stable and is
// meant for tests and the parse command, not for round-tripping.
func Format(n Node) string {
	var p printer
	p.node(n)

	return p.String()
}

type printer struct {
	strings.Builder
}

func (p *printer) open(head string) {
	p.WriteByte('(')
	p.WriteString(head)
}

func (p *printer) close() {
	p.WriteByte(')')
}

func (p *printer) atom(s string) {
	p.WriteByte(' ')
	p.WriteString(s)
}

// child writes a space then n, if n is present.
func (p *printer) child(n Node) {
	if n == nil {
		return
	}

	p.WriteByte(' ')
	p.node(n)
}

func (p *printer) exprs(es []Expr) {
	for _, e := range es {
		p.child(e)
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case nil:
		p.WriteString("nil")

	case *Program:
		p.open("program")

		for _, s := range n.Statements {
			p.child(s)
		}

		p.close()
	case *MatchStatement:
		if n.Optional {
			p.open("optional-match")
		} else {
			p.open("match")
		}

		if n.Pattern != nil {
			p.child(n.Pattern)
		}

		p.close()
	case *FilterStatement:
		p.open("filter")
		p.child(n.Condition)
		p.close()
	case *LetStatement:
		p.open("let")

		for _, b := range n.Bindings {
			p.child(b)
		}

		p.close()
	case *LetBinding:
		p.open("= " + n.Name)
		p.child(n.Value)
		p.close()
	case *ReturnStatement:
		p.open("return")

		if n.Distinct {
			p.atom("DISTINCT")
		}

		if n.Star {
			p.atom("*")
		}

		for _, it := range n.Items {
			p.child(it)
		}

		p.close()
	case *ReturnItem:
		p.aliased(n.Value, n.Alias)
	case *BadStatement:
		p.WriteString("(bad-statement)")

	case *Literal:
		p.literal(n)
	case *Unary:
		p.open(n.Op.String())
		p.child(n.Operand)
		p.close()
	case *Binary:
		p.open(n.Op.String())
		p.child(n.Left)
		p.child(n.Right)
		p.close()
	case *Logical:
		p.open(n.Op.String())
		p.child(n.Left)
		p.child(n.Right)
		p.close()
	case *Comparison:
		p.open(n.Op.String())
		p.child(n.Left)
		p.child(n.Right)
		p.close()
	case *PropertyRef:
		p.open(".")
		p.child(n.Target)
		p.atom(n.Property)
		p.close()
	case *VariableRef:
		p.WriteString(n.Name)
	case *ParameterRef:
		p.WriteString("$" + n.Name)
	case *FunctionCall:
		p.open("call " + n.Name.String())
		p.exprs(n.Args)
		p.close()
	case *Aggregate:
		p.open(n.Func.String())

		if n.Quantifier != SetNone {
			p.atom(n.Quantifier.String())
		}

		if n.Star {
			p.atom("*")
		}

		p.child(n.Arg)
		p.child(n.Extra)
		p.close()
	case *Case:
		p.open("case")
		p.child(n.Operand)

		for _, w := range n.Whens {
			p.child(w)
		}

		if n.Else != nil {
			p.WriteString(" (else")
			p.child(n.Else)
			p.close()
		}

		p.close()
	case *WhenClause:
		p.open("when")
		p.child(n.Condition)
		p.child(n.Result)
		p.close()
	case *Cast:
		p.open("cast")
		p.child(n.Value)

		if n.Type != nil {
			p.child(n.Type)
		}

		p.close()
	case *TypeRef:
		p.typeRef(n)
	case *Predicate:
		p.predicate(n)
	case *ListConstructor:
		p.open("list")
		p.exprs(n.Elements)
		p.close()
	case *RecordConstructor:
		p.open("record")

		for _, f := range n.Fields {
			p.child(f)
		}

		p.close()
	case *RecordField:
		p.open(n.Key)
		p.child(n.Value)
		p.close()
	case *PathConstructor:
		p.open("path")
		p.exprs(n.Elements)
		p.close()
	case *SubqueryPlaceholder:
		p.open("value-subquery")
		p.atom("{" + n.Body.String() + "}")
		p.close()
	case *Exists:
		p.open("exists")

		if n.Inner != nil {
			p.child(n.Inner)
		} else {
			p.atom("{" + n.Body.String() + "}")
		}

		p.close()
	case *BadExpr:
		p.WriteString("(bad)")

	case *GraphPattern:
		p.open("graph")

		if n.Mode != MatchModeNone {
			p.atom(strconv.Quote(n.Mode.String()))
		}

		for _, path := range n.Paths {
			p.child(path)
		}

		if n.Keep != nil {
			p.WriteString(" (keep")
			p.child(n.Keep)
			p.close()
		}

		p.where(n.Where)

		if len(n.Yield) > 0 {
			p.WriteString(" (yield")

			for _, y := range n.Yield {
				p.child(y)
			}

			p.close()
		}

		p.close()
	case *YieldItem:
		p.aliased(n.Value, n.Alias)
	case *PathPattern:
		p.open("pattern")

		if n.Variable != "" {
			p.atom(n.Variable + "=")
		}

		if n.Prefix != nil {
			p.child(n.Prefix)
		}

		p.child(n.Expr)
		p.close()
	case *PathPrefix:
		p.open("prefix")

		if n.Search != SearchNone {
			p.atom(n.Search.String())
		}

		p.child(n.Count)

		if n.Mode != PathModeNone {
			p.atom(n.Mode.String())
		}

		if n.Unit != UnitNone {
			p.atom(n.Unit.String())
		}

		p.close()
	case *PathAlternation:
		p.open("|+|")

		for _, a := range n.Alternatives {
			p.child(a)
		}

		p.close()
	case *PathUnion:
		p.open("|")
		p.child(n.Left)
		p.child(n.Right)
		p.close()
	case *PathTerm:
		if len(n.Factors) == 1 {
			p.node(n.Factors[0])
			return
		}

		p.open("seq")

		for _, f := range n.Factors {
			p.child(f)
		}

		p.close()
	case *PathFactor:
		if n.Quantifier == nil {
			p.node(n.Primary)
			return
		}

		p.open("quant")
		p.child(n.Primary)
		p.child(n.Quantifier)
		p.close()
	case *Quantifier:
		p.WriteString(n.String())
	case *NodePattern:
		p.open("node")
		p.filler(n.Filler)
		p.close()
	case *EdgePattern:
		p.open("edge " + n.Direction.String())
		p.filler(n.Filler)
		p.close()
	case *ParenPath:
		p.open("group")

		if n.Variable != "" {
			p.atom(n.Variable + "=")
		}

		if n.Mode != PathModeNone {
			p.atom(n.Mode.String())
		}

		p.child(n.Expr)
		p.where(n.Where)
		p.close()
	case *SimplifiedPath:
		p.open("simplified " + n.Direction.String())
		p.child(n.Contents)
		p.close()
	case *ElementFiller:
		p.open("filler")
		p.filler(n)
		p.close()

	case *LabelName:
		p.WriteString(n.Name)
	case *LabelWildcard:
		p.WriteString("%")
	case *LabelNegation:
		p.open("!")
		p.child(n.Operand)
		p.close()
	case *LabelConjunction:
		p.open("&")

		for _, o := range n.Operands {
			p.child(o)
		}

		p.close()
	case *LabelDisjunction:
		p.open("|")

		for _, o := range n.Operands {
			p.child(o)
		}

		p.close()
	case *LabelParen:
		p.open("group")
		p.child(n.Inner)
		p.close()

	case *SimplifiedAlternation:
		p.open("|+|")

		for _, a := range n.Alternatives {
			p.child(a)
		}

		p.close()
	case *SimplifiedUnion:
		p.open("|")
		p.child(n.Left)
		p.child(n.Right)
		p.close()
	case *SimplifiedConcat:
		p.open("seq")

		for _, part := range n.Parts {
			p.child(part)
		}

		p.close()
	case *SimplifiedConjunction:
		p.open("&")
		p.child(n.Left)
		p.child(n.Right)
		p.close()
	case *SimplifiedQuantified:
		p.open("quant")
		p.child(n.Inner)

		if n.Quantifier != nil {
			p.child(n.Quantifier)
		}

		p.close()
	case *SimplifiedNegation:
		p.open("!")
		p.child(n.Operand)
		p.close()
	case *SimplifiedOverride:
		p.open("override " + n.Direction.String())
		p.child(n.Operand)
		p.close()
	case *SimplifiedLabel:
		p.WriteString(n.Name)
	case *SimplifiedParen:
		p.open("group")
		p.child(n.Inner)
		p.close()
	}
}

func (p *printer) aliased(value Expr, alias string) {
	if alias == "" {
		p.node(value)
		return
	}

	p.open("as")
	p.child(value)
	p.atom(alias)
	p.close()
}

func (p *printer) where(e Expr) {
	if e == nil {
		return
	}

	p.WriteString(" (where")
	p.child(e)
	p.close()
}

func (p *printer) filler(f *ElementFiller) {
	if f == nil {
		return
	}

	if f.Variable != "" {
		p.atom(f.Variable)
	}

	if f.Labels != nil {
		p.WriteString(" :")
		p.node(f.Labels)
	}

	if f.Properties != nil {
		p.child(f.Properties)
	}

	p.where(f.Where)
}

func (p *printer) literal(n *Literal) {
	switch n.Kind {
	case LitNull:
		p.WriteString("NULL")
	case LitUnknown:
		p.WriteString("UNKNOWN")
	case LitBool:
		if n.Bool {
			p.WriteString("TRUE")
		} else {
			p.WriteString("FALSE")
		}
	case LitInteger, LitFloat:
		p.WriteString(n.Value)
	case LitString:
		p.WriteString(strconv.Quote(n.Value))
	default:
		p.open(n.Kind.String())
		p.atom(strconv.Quote(n.Value))
		p.close()
	}
}

func (p *printer) typeRef(n *TypeRef) {
	p.WriteString(n.Name)

	if len(n.Args) > 0 {
		p.WriteByte('<')

		for i, a := range n.Args {
			if i > 0 {
				p.WriteString(", ")
			}

			p.typeRef(a)
		}

		p.WriteByte('>')
	}

	if len(n.Params) > 0 {
		p.WriteString("(" + strings.Join(n.Params, ", ") + ")")
	}

	if n.NotNull {
		p.WriteString(" NOT NULL")
	}
}

func (p *printer) predicate(n *Predicate) {
	head := n.Kind.String()
	if n.Negated {
		head = strings.Replace(head, "IS ", "IS NOT ", 1)
	}

	p.open(head)
	p.child(n.Subject)
	p.exprs(n.Args)

	if n.Labels != nil {
		p.child(n.Labels)
	}

	if n.Type != nil {
		p.WriteByte(' ')
		p.typeRef(n.Type)
	}

	if n.Property != "" {
		p.atom(n.Property)
	}

	p.close()
}

// String renders the quantifier as written in canonical form.
func (q *Quantifier) String() string {
	switch q.Kind {
	case QuantStar:
		return "*"
	case QuantPlus:
		return "+"
	case QuantOptional:
		return "?"
	case QuantFixed:
		return "{" + strconv.Itoa(q.Min) + "}"
	}

	if q.Max == Unbounded {
		return "{" + strconv.Itoa(q.Min) + ",}"
	}

	return "{" + strconv.Itoa(q.Min) + "," + strconv.Itoa(q.Max) + "}"
}
