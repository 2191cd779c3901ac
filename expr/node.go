// Package expr holds the expression and condition tree of the sql AST, and
// the precedence-climbing parser that builds it from a TokenPager.
package expr

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/araddon/sqlparse/lex"
)

// Binding strength of each operator level, loosest first.
const (
	precOr = iota + 1
	precAnd
	precNot
	precCompare
	precAdditive
	precMultiplicative
	precUnary
	precPrimary
)

type (
	// A Node is an element in the expression tree.  The set of Nodes is
	// closed; every implementation lives in this package.
	Node interface {
		// String is the canonical sql text of the node, parseable back into an
		// equal tree.
		String() string

		// FingerPrint is String with every literal value replaced by r and
		// names lower-cased, so that queries differing only in their values
		// share a fingerprint.
		FingerPrint(r rune) string

		// writeBuf renders into buf; fr is the fingerprint rune, 0 for the
		// canonical text.
		writeBuf(buf *DialectWriter, fr rune)
	}

	// Literal is a constant value node.
	Literal interface {
		Node
		// Value is the decoded go value: int64, float64, string, bool or nil.
		Value() interface{}
	}
)

type (
	// IntegerLiteral is a whole number; 10, -3, 0x1F (decoded as 31).
	IntegerLiteral struct {
		Val int64
	}
	// FloatLiteral is a decimal or exponent number; 1.5, .5, 6.02e23, and any
	// integer too large for int64.
	FloatLiteral struct {
		Val float64
	}
	// BitLiteral is a bit-value; b'0101' or 0b0101.  Val holds the binary
	// digits as written.
	BitLiteral struct {
		Val string
	}
	// StringLiteral holds the decoded content of a quoted string.
	StringLiteral struct {
		Val string
	}
	// BooleanLiteral TRUE or FALSE
	BooleanLiteral struct {
		Val bool
	}
	// NullLiteral NULL
	NullLiteral struct{}

	// PlaceholderLiteral is the ? of a prepared statement.
	PlaceholderLiteral struct{}

	// TimeLiteral is one of the current-time keywords, CURRENT_TIMESTAMP,
	// CURRENT_DATE, CURRENT_TIME, LOCALTIME, LOCALTIMESTAMP, with an optional
	// fractional-seconds precision.  Fsp is -1 when no precision was given.
	TimeLiteral struct {
		Name string
		Fsp  int
	}

	// Column is a reference to a column, optionally qualified by Table.
	//
	// In a select list a Column may also be a computed field: Function is set
	// when the field is a function call, Expr when it is any other expression
	// (literal, arithmetic, comparison).  Name is then the canonical text of
	// that call or expression.  Name is "*" for the star field.
	Column struct {
		Name     string
		Table    string
		Alias    string
		Function *FunctionCall
		Expr     Node
	}

	// FunctionCall is an invocation; name(arg, ...).  Name keeps its written
	// case.  Kind identifies the aggregate built-ins, everything else is
	// FuncGeneric.
	FunctionCall struct {
		Kind      FuncKind
		Name      string
		Distinct  bool
		Args      []Node
		Separator *StringLiteral // GROUP_CONCAT(... SEPARATOR 's')
	}

	// ConditionTree is a logical or comparison operator.  It is strictly
	// binary: unary operators (NOT, IS [NOT] NULL) hold Empty as Right.
	// BETWEEN holds a *Range as Right, IN a *List.
	ConditionTree struct {
		Op    Operator
		Left  Node
		Right Node
	}

	// Arithmetic is + - * / % or, with Empty as Right, unary minus.
	Arithmetic struct {
		Op    Operator
		Left  Node
		Right Node
	}

	// Range is the "low AND high" operand of BETWEEN.
	Range struct {
		Low  Node
		High Node
	}

	// List is the parenthesised item list operand of IN.
	List struct {
		Items []Node
	}

	// Empty is the placeholder child of unary operators.
	Empty struct{}

	// Variable is a user or system variable; @x, @@sql_mode,
	// @@global.max_connections.  Name includes the @ marks.
	Variable struct {
		Name string
	}

	// Case is CASE [operand] WHEN ... THEN ... [ELSE ...] END
	Case struct {
		Operand Node
		Whens   []*When
		Else    Node
	}

	// When is a single WHEN cond THEN result arm of a Case.
	When struct {
		Cond   Node
		Result Node
	}
)

var (
	_ Literal = (*IntegerLiteral)(nil)
	_ Literal = (*FloatLiteral)(nil)
	_ Literal = (*BitLiteral)(nil)
	_ Literal = (*StringLiteral)(nil)
	_ Literal = (*BooleanLiteral)(nil)
	_ Literal = (*NullLiteral)(nil)
	_ Literal = (*PlaceholderLiteral)(nil)
	_ Literal = (*TimeLiteral)(nil)
	_ Node    = (*Column)(nil)
	_ Node    = (*FunctionCall)(nil)
	_ Node    = (*ConditionTree)(nil)
	_ Node    = (*Arithmetic)(nil)
	_ Node    = (*Range)(nil)
	_ Node    = (*List)(nil)
	_ Node    = Empty{}
	_ Node    = (*Variable)(nil)
	_ Node    = (*Case)(nil)
)

func render(n Node, fr rune) string {
	w := NewDefaultWriter()
	n.writeBuf(w, fr)
	return w.String()
}

// precedence is the binding strength of n when it is the operand of another
// operator.
func precedence(n Node) int {
	switch n := n.(type) {
	case *ConditionTree:
		return n.Op.precedence()
	case *Arithmetic:
		return n.Op.precedence()
	case *Column:
		if n.Function == nil && n.Expr != nil {
			return precedence(n.Expr)
		}
	}
	return precPrimary
}

// writeOperand renders child, wrapped in parens when its precedence is below
// min.
func writeOperand(buf *DialectWriter, fr rune, child Node, min int) {
	if precedence(child) < min {
		buf.WriteByte('(')
		child.writeBuf(buf, fr)
		buf.WriteByte(')')
		return
	}
	child.writeBuf(buf, fr)
}

// Literals ---------------------------------------------------------------

// NewNumberLiteral decodes numeric literal text (with an optional leading
// minus) into an IntegerLiteral, or a FloatLiteral for decimal and exponent
// forms and for integers out of int64 range.
func NewNumberLiteral(text string) (Literal, error) {
	neg := strings.HasPrefix(text, "-")
	digits := strings.TrimPrefix(text, "-")
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		uv, err := strconv.ParseUint(digits[2:], 16, 64)
		if err != nil {
			return nil, err
		}
		switch {
		case !neg && uv <= 1<<63-1:
			return &IntegerLiteral{Val: int64(uv)}, nil
		case neg && uv <= 1<<63:
			return &IntegerLiteral{Val: -int64(uv - 1) - 1}, nil
		case neg:
			return &FloatLiteral{Val: -float64(uv)}, nil
		}
		return &FloatLiteral{Val: float64(uv)}, nil
	}
	if !strings.ContainsAny(digits, ".eE") {
		iv, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return &IntegerLiteral{Val: iv}, nil
		}
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return nil, err
		}
	}
	fv, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	return &FloatLiteral{Val: fv}, nil
}

func (n *IntegerLiteral) String() string            { return render(n, 0) }
func (n *IntegerLiteral) FingerPrint(r rune) string { return string(r) }
func (n *IntegerLiteral) Value() interface{}        { return n.Val }
func (n *IntegerLiteral) writeBuf(buf *DialectWriter, fr rune) {
	if fr != 0 {
		buf.WriteRune(fr)
		return
	}
	buf.WriteString(strconv.FormatInt(n.Val, 10))
}

func (n *FloatLiteral) String() string            { return render(n, 0) }
func (n *FloatLiteral) FingerPrint(r rune) string { return string(r) }
func (n *FloatLiteral) Value() interface{}        { return n.Val }
func (n *FloatLiteral) writeBuf(buf *DialectWriter, fr rune) {
	if fr != 0 {
		buf.WriteRune(fr)
		return
	}
	s := strconv.FormatFloat(n.Val, 'g', -1, 64)
	buf.WriteString(s)
	// must lex back as a float, not an integer
	if !strings.ContainsAny(s, ".eEIN") {
		buf.WriteString(".0")
	}
}

func (n *BitLiteral) String() string            { return render(n, 0) }
func (n *BitLiteral) FingerPrint(r rune) string { return string(r) }

// Value is the int64 of the digits, or the digits themselves when they do
// not fit in 63 bits.
func (n *BitLiteral) Value() interface{} {
	if v, err := strconv.ParseInt(n.Val, 2, 64); err == nil {
		return v
	}
	return n.Val
}
func (n *BitLiteral) writeBuf(buf *DialectWriter, fr rune) {
	if fr != 0 {
		buf.WriteRune(fr)
		return
	}
	buf.WriteString("b'")
	buf.WriteString(n.Val)
	buf.WriteByte('\'')
}

func (n *StringLiteral) String() string            { return render(n, 0) }
func (n *StringLiteral) FingerPrint(r rune) string { return string(r) }
func (n *StringLiteral) Value() interface{}        { return n.Val }
func (n *StringLiteral) writeBuf(buf *DialectWriter, fr rune) {
	if fr != 0 {
		buf.WriteRune(fr)
		return
	}
	buf.WriteLiteral(n.Val)
}

// Time decodes the string as a date or time, accepting any layout dateparse
// recognises ('2021-03-04', '2021-03-04 10:11:12', 'Mar 4, 2021', ...).
func (n *StringLiteral) Time() (time.Time, error) {
	return dateparse.ParseAny(n.Val)
}

func (n *BooleanLiteral) String() string            { return render(n, 0) }
func (n *BooleanLiteral) FingerPrint(r rune) string { return string(r) }
func (n *BooleanLiteral) Value() interface{}        { return n.Val }
func (n *BooleanLiteral) writeBuf(buf *DialectWriter, fr rune) {
	switch {
	case fr != 0:
		buf.WriteRune(fr)
	case n.Val:
		buf.WriteString("TRUE")
	default:
		buf.WriteString("FALSE")
	}
}

func (n *NullLiteral) String() string                      { return "NULL" }
func (n *NullLiteral) FingerPrint(r rune) string           { return "NULL" }
func (n *NullLiteral) Value() interface{}                  { return nil }
func (n *NullLiteral) writeBuf(buf *DialectWriter, fr rune) { buf.WriteString("NULL") }

func (n *PlaceholderLiteral) String() string                      { return "?" }
func (n *PlaceholderLiteral) FingerPrint(r rune) string           { return string(r) }
func (n *PlaceholderLiteral) Value() interface{}                  { return nil }
func (n *PlaceholderLiteral) writeBuf(buf *DialectWriter, fr rune) {
	if fr != 0 {
		buf.WriteRune(fr)
		return
	}
	buf.WriteByte('?')
}

func (n *TimeLiteral) String() string            { return render(n, 0) }
func (n *TimeLiteral) FingerPrint(r rune) string { return render(n, r) }
func (n *TimeLiteral) Value() interface{}        { return n.Name }
func (n *TimeLiteral) writeBuf(buf *DialectWriter, fr rune) {
	buf.WriteString(n.Name)
	if n.Fsp >= 0 {
		buf.WriteByte('(')
		buf.WriteString(strconv.Itoa(n.Fsp))
		buf.WriteByte(')')
	}
}

func isNumber(n Node) bool {
	switch n.(type) {
	case *IntegerLiteral, *FloatLiteral:
		return true
	}
	return false
}

// IsLiteral is n a constant value?
func IsLiteral(n Node) bool {
	_, ok := n.(Literal)
	return ok
}

// Columns ----------------------------------------------------------------

// NewColumn is a column reference from its key, name or table.name.
func NewColumn(key string) *Column {
	left, right, _ := LeftRight(key)
	return &Column{Table: left, Name: right}
}

// NewFieldColumn wraps any expression as a select-list field.  Column
// references and function calls are already fields and are returned as is.
func NewFieldColumn(n Node) *Column {
	if col, ok := n.(*Column); ok {
		return col
	}
	return &Column{Name: n.String(), Expr: n}
}

func (m *Column) String() string            { return render(m, 0) }
func (m *Column) FingerPrint(r rune) string { return render(m, r) }

// Key is the qualified name of a plain column reference, table.name.
func (m *Column) Key() string {
	if m.Table != "" {
		return m.Table + "." + m.Name
	}
	return m.Name
}

// IsStar is this the * or table.* field?
func (m *Column) IsStar() bool {
	return m.Name == "*" && m.Function == nil && m.Expr == nil
}

func (m *Column) writeBuf(buf *DialectWriter, fr rune) {
	switch {
	case m.Function != nil:
		m.Function.writeBuf(buf, fr)
	case m.Expr != nil:
		m.Expr.writeBuf(buf, fr)
	default:
		if m.Table != "" {
			if fr != 0 {
				buf.WriteTableIdentity(strings.ToLower(m.Table))
			} else {
				buf.WriteTableIdentity(m.Table)
			}
			buf.WriteByte('.')
		}
		if m.Name == "*" {
			buf.WriteByte('*')
		} else {
			writeName(buf, fr, m.Name)
		}
	}
	if m.Alias != "" {
		buf.WriteString(" AS ")
		writeName(buf, fr, m.Alias)
	}
}

func writeName(buf *DialectWriter, fr rune, name string) {
	if fr != 0 {
		name = strings.ToLower(name)
	}
	buf.WriteIdentity(name)
}

// Functions --------------------------------------------------------------

func (m *FunctionCall) String() string            { return render(m, 0) }
func (m *FunctionCall) FingerPrint(r rune) string { return render(m, r) }

func (m *FunctionCall) writeBuf(buf *DialectWriter, fr rune) {
	name := m.Name
	if fr != 0 {
		name = strings.ToLower(name)
	}
	switch {
	case m.Kind == FuncGeneric && LookupFuncKind(name) != FuncGeneric:
		// a quoted `count` is a user function, not the aggregate
		buf.WriteString("`" + name + "`")
	case lex.IsReserved(name):
		// keyword-named functions, LEFT(), REPLACE(), are written bare
		buf.WriteString(name)
	default:
		buf.WriteString(lex.QuoteIdentifier(name))
	}
	buf.WriteByte('(')
	if m.Kind == FuncCountStar {
		buf.WriteString("*)")
		return
	}
	if m.Distinct {
		buf.WriteString("DISTINCT ")
	}
	for i, arg := range m.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		arg.writeBuf(buf, fr)
	}
	if m.Separator != nil {
		buf.WriteString(" SEPARATOR ")
		m.Separator.writeBuf(buf, fr)
	}
	buf.WriteByte(')')
}

// Conditions and arithmetic ----------------------------------------------

func (m *ConditionTree) String() string            { return render(m, 0) }
func (m *ConditionTree) FingerPrint(r rune) string { return render(m, r) }

func (m *ConditionTree) writeBuf(buf *DialectWriter, fr rune) {
	p := m.Op.precedence()
	switch m.Op {
	case OpNot:
		buf.WriteString("NOT ")
		writeOperand(buf, fr, m.Left, precNot)
	case OpIsNull, OpIsNotNull:
		writeOperand(buf, fr, m.Left, p)
		buf.WriteByte(' ')
		buf.WriteString(m.Op.String())
	default:
		writeOperand(buf, fr, m.Left, p)
		buf.WriteByte(' ')
		buf.WriteString(m.Op.String())
		buf.WriteByte(' ')
		switch m.Right.(type) {
		case *Range, *List:
			m.Right.writeBuf(buf, fr)
		default:
			// left associative, an equal-precedence right operand was
			// grouped explicitly
			writeOperand(buf, fr, m.Right, p+1)
		}
	}
}

func (m *Arithmetic) String() string            { return render(m, 0) }
func (m *Arithmetic) FingerPrint(r rune) string { return render(m, r) }

func (m *Arithmetic) writeBuf(buf *DialectWriter, fr rune) {
	if m.Op == OpNegate {
		buf.WriteByte('-')
		sub := buf.sub()
		m.Left.writeBuf(sub, fr)
		operand := sub.String()
		// parens also keep "- -x" from becoming a -- comment, and -(1) from
		// reading back as the literal -1
		if precedence(m.Left) < precUnary || strings.HasPrefix(operand, "-") || isNumber(m.Left) {
			buf.WriteByte('(')
			buf.WriteString(operand)
			buf.WriteByte(')')
			return
		}
		buf.WriteString(operand)
		return
	}
	p := m.Op.precedence()
	writeOperand(buf, fr, m.Left, p)
	buf.WriteByte(' ')
	buf.WriteString(m.Op.String())
	buf.WriteByte(' ')
	writeOperand(buf, fr, m.Right, p+1)
}

func (m *Range) String() string            { return render(m, 0) }
func (m *Range) FingerPrint(r rune) string { return render(m, r) }
func (m *Range) writeBuf(buf *DialectWriter, fr rune) {
	writeOperand(buf, fr, m.Low, precAdditive)
	buf.WriteString(" AND ")
	writeOperand(buf, fr, m.High, precAdditive)
}

func (m *List) String() string            { return render(m, 0) }
func (m *List) FingerPrint(r rune) string { return render(m, r) }
func (m *List) writeBuf(buf *DialectWriter, fr rune) {
	buf.WriteByte('(')
	for i, item := range m.Items {
		if i > 0 {
			buf.WriteString(", ")
		}
		item.writeBuf(buf, fr)
	}
	buf.WriteByte(')')
}

func (Empty) String() string               { return "" }
func (Empty) FingerPrint(r rune) string    { return "" }
func (Empty) writeBuf(*DialectWriter, rune) {}

func (m *Variable) String() string            { return m.Name }
func (m *Variable) FingerPrint(r rune) string { return strings.ToLower(m.Name) }
func (m *Variable) writeBuf(buf *DialectWriter, fr rune) {
	if fr != 0 {
		buf.WriteString(strings.ToLower(m.Name))
		return
	}
	buf.WriteString(m.Name)
}

func (m *Case) String() string            { return render(m, 0) }
func (m *Case) FingerPrint(r rune) string { return render(m, r) }
func (m *Case) writeBuf(buf *DialectWriter, fr rune) {
	buf.WriteString("CASE")
	if m.Operand != nil {
		buf.WriteByte(' ')
		m.Operand.writeBuf(buf, fr)
	}
	for _, w := range m.Whens {
		buf.WriteString(" WHEN ")
		w.Cond.writeBuf(buf, fr)
		buf.WriteString(" THEN ")
		w.Result.writeBuf(buf, fr)
	}
	if m.Else != nil {
		buf.WriteString(" ELSE ")
		m.Else.writeBuf(buf, fr)
	}
	buf.WriteString(" END")
}

// Walk calls fn for n and then, depth first, for each of its children.
// Returning false from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Column:
		if n.Function != nil {
			Walk(n.Function, fn)
		}
		if n.Expr != nil {
			Walk(n.Expr, fn)
		}
	case *FunctionCall:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	case *ConditionTree:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Arithmetic:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Range:
		Walk(n.Low, fn)
		Walk(n.High, fn)
	case *List:
		for _, item := range n.Items {
			Walk(item, fn)
		}
	case *Case:
		if n.Operand != nil {
			Walk(n.Operand, fn)
		}
		for _, w := range n.Whens {
			Walk(w.Cond, fn)
			Walk(w.Result, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}
	}
}

// FindColumnNames lists the qualified names of all column references in n,
// in the order they appear, including those nested in function arguments.
//
//	FindColumnNames("lower(t.a) = b")   =>  ["t.a", "b"]
func FindColumnNames(n Node) []string {
	var names []string
	Walk(n, func(n Node) bool {
		if col, ok := n.(*Column); ok && col.Function == nil && col.Expr == nil && !col.IsStar() {
			names = append(names, col.Key())
		}
		return true
	})
	return names
}
