package expr

import (
	"strconv"
	"strings"

	u "github.com/araddon/gou"

	"github.com/araddon/sqlparse/config"
	"github.com/araddon/sqlparse/errors"
	"github.com/araddon/sqlparse/lex"
)

// Tree parses one expression off a TokenPager, leaving the pager on the
// first token after it.
type Tree struct {
	TokenPager
}

// NewTree creates an expression parser reading from pager.
func NewTree(pager TokenPager) *Tree {
	return &Tree{TokenPager: pager}
}

// ParseExpression parses text as a single complete expression
//
//	ParseExpression(nil, "a > b AND b < 100")
func ParseExpression(cfg *config.ParseConfig, text string) (Node, error) {
	pager, err := NewLexTokenPager(cfg, text)
	if err != nil {
		return nil, err
	}
	t := NewTree(pager)
	n, err := t.O()
	if err != nil {
		u.Debugf("could not parse expression %q: %v", text, err)
		return nil, err
	}
	if !t.IsEnd() {
		return nil, ExpectEnd(t)
	}
	return n, nil
}

// ExpectEnd is the error for a token left over after a complete expression or
// statement: a stray ) is unbalanced, an unknown operator is reported as such.
func ExpectEnd(p TokenPager) error {
	switch cur := p.Cur(); cur.T {
	case lex.TokenRightParenthesis:
		return ErrorAt(p, errors.ErrUnbalancedParentheses, cur)
	case lex.TokenUnknownOperator:
		return ErrorAt(p, errors.ErrUnknownOperator, cur)
	}
	return Unexpected(p, "EOF")
}

/*

Operator precedence, loosest first.  Each level is a method that parses
its operands with the next tighter level and loops while it sees one of
its own operators, which makes every binary level left associative.

	O -> A {( OR | "||" ) A}
	A -> N {( AND | "&&" ) N}
	N -> NOT N | C
	C -> P {( "=" | "<>" | "<" | "<=" | ">" | ">=" | "<=>" ) P
	        | [NOT] LIKE P | [NOT] IN "(" O {"," O} ")"
	        | [NOT] BETWEEN P AND P | IS [NOT] NULL }
	P -> M {( "+" | "-" ) M}
	M -> U {( "*" | "/" | "%" ) U}
	U -> "-" U | "+" U | "!" U | NOT U | F
	F -> literal | variable | column | func "(" args ")" | "(" O ")" | CASE

http://dev.mysql.com/doc/refman/8.0/en/operator-precedence.html

*/

// O parses a complete expression: OR
func (t *Tree) O() (Node, error) {
	n, err := t.A()
	if err != nil {
		return nil, err
	}
	for {
		switch t.Cur().T {
		case lex.TokenLogicOr, lex.TokenOr:
			t.Next()
			r, err := t.A()
			if err != nil {
				return nil, err
			}
			n = &ConditionTree{Op: OpOr, Left: n, Right: r}
		default:
			return n, nil
		}
	}
}

// A AND
func (t *Tree) A() (Node, error) {
	n, err := t.N()
	if err != nil {
		return nil, err
	}
	for {
		switch t.Cur().T {
		case lex.TokenLogicAnd, lex.TokenAnd:
			t.Next()
			r, err := t.N()
			if err != nil {
				return nil, err
			}
			n = &ConditionTree{Op: OpAnd, Left: n, Right: r}
		default:
			return n, nil
		}
	}
}

// N logical NOT, right associative
func (t *Tree) N() (Node, error) {
	if t.Cur().T != lex.TokenNegate {
		return t.C()
	}
	t.Next()
	n, err := t.N()
	if err != nil {
		return nil, err
	}
	return &ConditionTree{Op: OpNot, Left: n, Right: Empty{}}, nil
}

var compareOps = map[lex.TokenType]Operator{
	lex.TokenEqual:         OpEqual,
	lex.TokenNE:            OpNotEqual,
	lex.TokenNullSafeEqual: OpNullSafeEqual,
	lex.TokenLT:            OpLess,
	lex.TokenLE:            OpLessEqual,
	lex.TokenGT:            OpGreater,
	lex.TokenGE:            OpGreaterEqual,
}

// C comparisons
func (t *Tree) C() (Node, error) {
	n, err := t.P()
	if err != nil {
		return nil, err
	}
	for {
		cur := t.Cur()
		switch cur.T {
		case lex.TokenEqual, lex.TokenNE, lex.TokenNullSafeEqual, lex.TokenLT,
			lex.TokenLE, lex.TokenGT, lex.TokenGE:
			t.Next()
			r, err := t.P()
			if err != nil {
				return nil, err
			}
			n = &ConditionTree{Op: compareOps[cur.T], Left: n, Right: r}
		case lex.TokenLike, lex.TokenIN, lex.TokenBetween:
			if n, err = t.cInner(n, false); err != nil {
				return nil, err
			}
		case lex.TokenNegate:
			switch t.Peek().T {
			case lex.TokenLike, lex.TokenIN, lex.TokenBetween:
				t.Next()
				if n, err = t.cInner(n, true); err != nil {
					return nil, err
				}
			default:
				return n, nil
			}
		case lex.TokenIs:
			t.Next()
			op := OpIsNull
			if t.Cur().T == lex.TokenNegate {
				t.Next()
				op = OpIsNotNull
			}
			if t.Cur().T != lex.TokenNull {
				return nil, Unexpected(t, "NULL")
			}
			t.Next()
			n = &ConditionTree{Op: op, Left: n, Right: Empty{}}
		case lex.TokenUnknownOperator:
			return nil, ErrorAt(t, errors.ErrUnknownOperator, cur)
		default:
			return n, nil
		}
	}
}

// cInner parses the [NOT] LIKE, IN and BETWEEN forms whose right hand side is
// not a plain operand.
func (t *Tree) cInner(left Node, negate bool) (Node, error) {
	switch op := t.Next(); op.T {
	case lex.TokenLike:
		r, err := t.P()
		if err != nil {
			return nil, err
		}
		return &ConditionTree{Op: pick(negate, OpNotLike, OpLike), Left: left, Right: r}, nil
	case lex.TokenIN:
		list, err := t.list()
		if err != nil {
			return nil, err
		}
		return &ConditionTree{Op: pick(negate, OpNotIn, OpIn), Left: left, Right: list}, nil
	default:
		// BETWEEN low AND high, the AND is part of the syntax not a logical op
		low, err := t.P()
		if err != nil {
			return nil, err
		}
		if t.Cur().T != lex.TokenLogicAnd {
			return nil, Unexpected(t, "AND")
		}
		t.Next()
		high, err := t.P()
		if err != nil {
			return nil, err
		}
		return &ConditionTree{
			Op:    pick(negate, OpNotBetween, OpBetween),
			Left:  left,
			Right: &Range{Low: low, High: high},
		}, nil
	}
}

func pick(negate bool, neg, pos Operator) Operator {
	if negate {
		return neg
	}
	return pos
}

// list parses the ( item, item ... ) of IN
func (t *Tree) list() (*List, error) {
	if t.Cur().T != lex.TokenLeftParenthesis {
		return nil, Unexpected(t, "(")
	}
	t.Next()
	l := &List{}
	for {
		n, err := t.O()
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, n)
		if t.Cur().T != lex.TokenComma {
			break
		}
		t.Next()
	}
	if err := t.closeParen(); err != nil {
		return nil, err
	}
	return l, nil
}

// closeParen consumes the ) closing a group
func (t *Tree) closeParen() error {
	if cur := t.Cur(); cur.T != lex.TokenRightParenthesis {
		if cur.T == lex.TokenUnknownOperator {
			return ErrorAt(t, errors.ErrUnknownOperator, cur)
		}
		return ErrorAt(t, errors.ErrUnbalancedParentheses, cur)
	}
	t.Next()
	return nil
}

// P additive
func (t *Tree) P() (Node, error) {
	n, err := t.M()
	if err != nil {
		return nil, err
	}
	for {
		var op Operator
		switch t.Cur().T {
		case lex.TokenPlus:
			op = OpAdd
		case lex.TokenMinus:
			op = OpSubtract
		default:
			return n, nil
		}
		t.Next()
		r, err := t.M()
		if err != nil {
			return nil, err
		}
		n = &Arithmetic{Op: op, Left: n, Right: r}
	}
}

// M multiplicative
func (t *Tree) M() (Node, error) {
	n, err := t.U()
	if err != nil {
		return nil, err
	}
	for {
		var op Operator
		switch t.Cur().T {
		case lex.TokenStar:
			op = OpMultiply
		case lex.TokenDivide:
			op = OpDivide
		case lex.TokenModulus:
			op = OpModulus
		default:
			return n, nil
		}
		t.Next()
		r, err := t.U()
		if err != nil {
			return nil, err
		}
		n = &Arithmetic{Op: op, Left: n, Right: r}
	}
}

// U unary prefix operators.  A minus directly in front of a number is folded
// into a negative literal.
func (t *Tree) U() (Node, error) {
	switch cur := t.Cur(); cur.T {
	case lex.TokenMinus:
		t.Next()
		if num := t.Cur(); num.T == lex.TokenInteger || num.T == lex.TokenFloat {
			return t.number("-")
		}
		n, err := t.U()
		if err != nil {
			return nil, err
		}
		return &Arithmetic{Op: OpNegate, Left: n, Right: Empty{}}, nil
	case lex.TokenPlus:
		t.Next()
		return t.U()
	case lex.TokenBang, lex.TokenNegate:
		t.Next()
		n, err := t.U()
		if err != nil {
			return nil, err
		}
		return &ConditionTree{Op: OpNot, Left: n, Right: Empty{}}, nil
	}
	return t.F()
}

// F primary: literals, names, calls and parenthesised expressions
func (t *Tree) F() (Node, error) {
	switch cur := t.Cur(); cur.T {
	case lex.TokenInteger, lex.TokenFloat:
		return t.number("")
	case lex.TokenString:
		t.Next()
		return &StringLiteral{Val: cur.V}, nil
	case lex.TokenBit:
		t.Next()
		return &BitLiteral{Val: cur.V}, nil
	case lex.TokenTrue, lex.TokenFalse:
		t.Next()
		return &BooleanLiteral{Val: cur.T == lex.TokenTrue}, nil
	case lex.TokenNull:
		t.Next()
		return &NullLiteral{}, nil
	case lex.TokenQuestion:
		t.Next()
		return &PlaceholderLiteral{}, nil
	case lex.TokenVariable:
		t.Next()
		return &Variable{Name: cur.V}, nil
	case lex.TokenCurrentDate, lex.TokenCurrentTime, lex.TokenCurrentTimestamp,
		lex.TokenLocalTime, lex.TokenLocalTimestamp:
		return t.TimeLiteral()
	case lex.TokenLeftParenthesis:
		t.Next()
		n, err := t.O()
		if err != nil {
			return nil, err
		}
		if err := t.closeParen(); err != nil {
			return nil, err
		}
		return n, nil
	case lex.TokenCase:
		return t.caseExpr()
	case lex.TokenIdentity:
		if t.Peek().T == lex.TokenLeftParenthesis {
			return t.Func()
		}
		return t.columnRef()
	case lex.TokenUnknownOperator:
		return nil, ErrorAt(t, errors.ErrUnknownOperator, cur)
	default:
		if cur.T.IsKeyword() && t.Peek().T == lex.TokenLeftParenthesis && isFuncKeyword(cur.T) {
			return t.Func()
		}
		return nil, ErrorAt(t, errors.ErrExpectedExpression, cur)
	}
}

// isFuncKeyword may this reserved word name a function, LEFT(s, 2),
// REPLACE(s, 'a', 'b'), DATABASE()?
func isFuncKeyword(typ lex.TokenType) bool {
	switch typ {
	case lex.TokenNegate, lex.TokenExists, lex.TokenCase, lex.TokenSelect,
		lex.TokenIN, lex.TokenDistinct, lex.TokenAll:
		return false
	}
	return true
}

func (t *Tree) number(sign string) (Node, error) {
	tok := t.Cur()
	lit, err := NewNumberLiteral(sign + tok.V)
	if err != nil {
		return nil, Unexpected(t, "numeric literal")
	}
	t.Next()
	return lit, nil
}

// TimeLiteral parses CURRENT_TIMESTAMP [(fsp)] and friends.  Empty parens
// are the same as none.
func (t *Tree) TimeLiteral() (*TimeLiteral, error) {
	tok := t.Next()
	lit := &TimeLiteral{Name: strings.ToUpper(tok.V), Fsp: -1}
	if t.Cur().T != lex.TokenLeftParenthesis {
		return lit, nil
	}
	t.Next()
	if cur := t.Cur(); cur.T == lex.TokenInteger {
		fsp, err := strconv.Atoi(cur.V)
		if err != nil {
			return nil, Unexpected(t, "fractional seconds precision")
		}
		lit.Fsp = fsp
		t.Next()
	}
	if err := t.closeParen(); err != nil {
		return nil, err
	}
	return lit, nil
}

// columnRef name, table.name or table.*
func (t *Tree) columnRef() (Node, error) {
	if t.Peek().T != lex.TokenPeriod {
		name, err := Ident(t, "column name")
		if err != nil {
			return nil, err
		}
		return &Column{Name: name}, nil
	}
	table, err := TableIdent(t, "table name")
	if err != nil {
		return nil, err
	}
	t.Next() // .
	if t.Cur().T == lex.TokenStar {
		t.Next()
		return &Column{Table: table, Name: "*"}, nil
	}
	name, err := Ident(t, "column name")
	if err != nil {
		return nil, err
	}
	return &Column{Table: table, Name: name}, nil
}

// Func parses a function call, the current token being its name.  The call
// is returned as a Column field whose Name is the canonical call text.
//
//	count(*)
//	count(DISTINCT user_id)
//	group_concat(name SEPARATOR ', ')
//	myfunc(b, 1 + 2)
func (t *Tree) Func() (*Column, error) {
	name := t.Next()
	t.Next() // (
	fn := &FunctionCall{Name: name.V, Kind: LookupFuncKind(name.V)}
	if name.Quote != 0 {
		fn.Kind = FuncGeneric
	}

	switch {
	case fn.Kind == FuncCount && t.Cur().T == lex.TokenStar:
		t.Next()
		fn.Kind = FuncCountStar
	case fn.Kind.IsAggregate() && t.Cur().T == lex.TokenDistinct:
		t.Next()
		fn.Distinct = true
		fallthrough
	case t.Cur().T != lex.TokenRightParenthesis:
		for {
			arg, err := t.O()
			if err != nil {
				return nil, err
			}
			fn.Args = append(fn.Args, arg)
			if t.Cur().T != lex.TokenComma {
				break
			}
			t.Next()
		}
		if fn.Kind == FuncGroupConcat && t.Cur().T == lex.TokenSeparator {
			t.Next()
			sep := t.Cur()
			if sep.T != lex.TokenString {
				return nil, Unexpected(t, "separator string")
			}
			t.Next()
			fn.Separator = &StringLiteral{Val: sep.V}
		}
	}
	if err := t.closeParen(); err != nil {
		return nil, err
	}
	return &Column{Name: fn.String(), Function: fn}, nil
}

// caseExpr CASE [operand] WHEN cond THEN result ... [ELSE result] END
func (t *Tree) caseExpr() (Node, error) {
	t.Next()
	c := &Case{}
	if t.Cur().T != lex.TokenWhen {
		operand, err := t.O()
		if err != nil {
			return nil, err
		}
		c.Operand = operand
	}
	for t.Cur().T == lex.TokenWhen {
		t.Next()
		cond, err := t.O()
		if err != nil {
			return nil, err
		}
		if t.Cur().T != lex.TokenThen {
			return nil, Unexpected(t, "THEN")
		}
		t.Next()
		result, err := t.O()
		if err != nil {
			return nil, err
		}
		c.Whens = append(c.Whens, &When{Cond: cond, Result: result})
	}
	if len(c.Whens) == 0 {
		return nil, Unexpected(t, "WHEN")
	}
	if t.Cur().T == lex.TokenElse {
		t.Next()
		e, err := t.O()
		if err != nil {
			return nil, err
		}
		c.Else = e
	}
	if !t.Cur().IsWord("END") {
		return nil, Unexpected(t, "END")
	}
	t.Next()
	return c, nil
}
