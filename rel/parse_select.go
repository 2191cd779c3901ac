package rel

import (
	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

var setOpKinds = map[lex.TokenType]SetOpKind{
	lex.TokenUnion:     Union,
	lex.TokenIntersect: Intersect,
	lex.TokenExcept:    Except,
}

// parseQuery a select, or selects combined with set operators
//
//	SELECT ... [{UNION | INTERSECT | EXCEPT} [ALL | DISTINCT] SELECT ...] ...
//	(SELECT ... ORDER BY a LIMIT 1) UNION (SELECT ...) ORDER BY b
//
// Operators are kept in written order, left to right.  The ORDER BY and
// LIMIT of an unparenthesised last member belong to the whole union.
func (m *Sqlbridge) parseQuery() (Query, error) {
	first, paren, err := m.parseQueryTerm()
	if err != nil {
		return nil, err
	}
	if _, ok := setOpKinds[m.Cur().T]; !ok {
		return first, nil
	}

	un := &SqlUnion{Selects: []*SqlSelect{first}}
	last, lastParen := first, paren
	for {
		kind, ok := setOpKinds[m.Cur().T]
		if !ok {
			break
		}
		if !lastParen && last.needsParens() {
			// ORDER BY or LIMIT ended the statement, a member needs parens
			return nil, expr.Unexpected(m, "EOF")
		}
		m.Next() // Consume UNION
		op := SetOp{Kind: kind}
		switch m.Cur().T {
		case lex.TokenAll:
			m.Next()
			op.All = true
		case lex.TokenDistinct:
			m.Next()
		}
		sel, p, err := m.parseQueryTerm()
		if err != nil {
			return nil, err
		}
		un.Ops = append(un.Ops, op)
		un.Selects = append(un.Selects, sel)
		last, lastParen = sel, p
	}

	if !lastParen {
		un.OrderBy, last.OrderBy = last.OrderBy, nil
		un.Limit, last.Limit = last.Limit, nil
		return un, nil
	}
	if un.OrderBy, err = m.parseOrderBy(); err != nil {
		return nil, err
	}
	if un.Limit, err = m.parseLimit(true); err != nil {
		return nil, err
	}
	return un, nil
}

// parseQueryTerm SELECT ... or (SELECT ...), reporting which it was.
func (m *Sqlbridge) parseQueryTerm() (*SqlSelect, bool, error) {
	if m.Cur().T == lex.TokenLeftParenthesis {
		m.Next()
		sel, _, err := m.parseQueryTerm()
		if err != nil {
			return nil, false, err
		}
		if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
			return nil, false, err
		}
		return sel, true, nil
	}
	if m.Cur().T != lex.TokenSelect {
		return nil, false, expr.Unexpected(m, "SELECT")
	}
	sel, err := m.parseSqlSelect()
	return sel, false, err
}

// First keyword was SELECT, so use the SELECT parser rule-set
func (m *Sqlbridge) parseSqlSelect() (*SqlSelect, error) {
	req := &SqlSelect{}
	m.Next() // Consume Select

	switch m.Cur().T {
	case lex.TokenDistinct:
		m.Next()
		req.Distinct = true
	case lex.TokenAll:
		m.Next()
	}

	// columns
	cols, err := m.parseColumns()
	if err != nil {
		return nil, err
	}
	req.Columns = cols

	// FROM
	if m.accept(lex.TokenFrom) {
		if err := m.parseSources(req); err != nil {
			return nil, err
		}
	}

	// WHERE
	if m.accept(lex.TokenWhere) {
		if req.Where, err = m.expression(); err != nil {
			return nil, err
		}
	}

	// GROUP BY
	if m.accept(lex.TokenGroup) {
		if err := m.expect(lex.TokenBy, "BY"); err != nil {
			return nil, err
		}
		if req.GroupBy, err = m.parseGroupBy(); err != nil {
			return nil, err
		}
	}

	// HAVING
	if m.accept(lex.TokenHaving) {
		if req.Having, err = m.expression(); err != nil {
			return nil, err
		}
	}

	// ORDER BY
	if req.OrderBy, err = m.parseOrderBy(); err != nil {
		return nil, err
	}

	// LIMIT
	if req.Limit, err = m.parseLimit(true); err != nil {
		return nil, err
	}
	return req, nil
}

// parseColumns the select field list
//
//	*, t.*, a, a AS x, count(*) AS ct, b + 1 'y'
func (m *Sqlbridge) parseColumns() (Columns, error) {
	var cols Columns
	for {
		var col *expr.Column
		if m.Cur().T == lex.TokenStar {
			m.Next()
			col = &expr.Column{Name: "*"}
		} else {
			n, err := m.expression()
			if err != nil {
				return nil, err
			}
			col = expr.NewFieldColumn(n)
			if col.Alias, err = m.parseAlias(); err != nil {
				return nil, err
			}
		}
		cols = append(cols, col)
		if !m.accept(lex.TokenComma) {
			return cols, nil
		}
	}
}

// parseAlias [AS] alias, of a field or a table.  Without AS only an identity
// is an alias.
func (m *Sqlbridge) parseAlias() (string, error) {
	switch cur := m.Cur(); cur.T {
	case lex.TokenAs:
		m.Next()
		if m.Cur().T == lex.TokenString {
			return m.Next().V, nil
		}
		return m.ident("alias")
	case lex.TokenIdentity:
		return m.ident("alias")
	}
	return "", nil
}

// parseSources the FROM clause: a table reference followed by any number of
// joined table references.
func (m *Sqlbridge) parseSources(req *SqlSelect) error {
	from, err := m.parseTableRef()
	if err != nil {
		return err
	}
	req.From = from

	for {
		join := &Join{}
		switch m.Cur().T {
		case lex.TokenComma:
			join.Kind = JoinComma
		case lex.TokenJoin:
			join.Kind = JoinPlain
		case lex.TokenInner:
			join.Kind = JoinInner
		case lex.TokenCross:
			join.Kind = JoinCross
		case lex.TokenLeft:
			join.Kind = JoinLeft
		case lex.TokenRight:
			join.Kind = JoinRight
		case lex.TokenStraightJoin:
			join.Kind = JoinStraight
		case lex.TokenNatural:
			join.Kind = JoinNatural
		default:
			return nil
		}
		m.Next()

		switch join.Kind {
		case JoinInner, JoinCross:
			if err := m.expect(lex.TokenJoin, "JOIN"); err != nil {
				return err
			}
		case JoinLeft, JoinRight:
			m.accept(lex.TokenOuter)
			if err := m.expect(lex.TokenJoin, "JOIN"); err != nil {
				return err
			}
		case JoinNatural:
			switch m.Cur().T {
			case lex.TokenLeft:
				m.Next()
				join.Kind = JoinNaturalLeft
				m.accept(lex.TokenOuter)
			case lex.TokenRight:
				m.Next()
				join.Kind = JoinNaturalRight
				m.accept(lex.TokenOuter)
			case lex.TokenInner:
				m.Next()
			}
			if err := m.expect(lex.TokenJoin, "JOIN"); err != nil {
				return err
			}
		}

		if join.Table, err = m.parseTableRef(); err != nil {
			return err
		}

		switch join.Kind {
		case JoinComma, JoinNatural, JoinNaturalLeft, JoinNaturalRight:
		default:
			switch m.Cur().T {
			case lex.TokenOn:
				m.Next()
				if join.On, err = m.expression(); err != nil {
					return err
				}
			case lex.TokenUsing:
				m.Next()
				if join.Using, err = m.parenIdents("column name"); err != nil {
					return err
				}
			}
		}
		req.Joins = append(req.Joins, join)
	}
}

// parseTableRef [schema.]name [[AS] alias] or (query) [AS] alias
func (m *Sqlbridge) parseTableRef() (*Table, error) {
	var t *Table
	if m.Cur().T == lex.TokenLeftParenthesis {
		m.Next()
		q, err := m.parseQuery()
		if err != nil {
			return nil, err
		}
		if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
			return nil, err
		}
		t = &Table{SubQuery: q}
	} else {
		var err error
		if t, err = m.tableName("table name"); err != nil {
			return nil, err
		}
	}
	alias, err := m.parseAlias()
	if err != nil {
		return nil, err
	}
	t.Alias = alias
	return t, nil
}

// parseGroupBy expr [, expr] ...
func (m *Sqlbridge) parseGroupBy() (Columns, error) {
	var cols Columns
	for {
		n, err := m.expression()
		if err != nil {
			return nil, err
		}
		cols = append(cols, expr.NewFieldColumn(n))
		if !m.accept(lex.TokenComma) {
			return cols, nil
		}
	}
}

// parseOrderBy [ORDER BY expr [ASC | DESC] [, ...]]
func (m *Sqlbridge) parseOrderBy() ([]*OrderBy, error) {
	if !m.accept(lex.TokenOrder) {
		return nil, nil
	}
	if err := m.expect(lex.TokenBy, "BY"); err != nil {
		return nil, err
	}
	var items []*OrderBy
	for {
		n, err := m.expression()
		if err != nil {
			return nil, err
		}
		ob := &OrderBy{Column: expr.NewFieldColumn(n)}
		switch m.Cur().T {
		case lex.TokenAsc:
			m.Next()
		case lex.TokenDesc:
			m.Next()
			ob.Direction = Desc
		}
		items = append(items, ob)
		if !m.accept(lex.TokenComma) {
			return items, nil
		}
	}
}

// parseLimit [LIMIT n], and when offsets are allowed also
// LIMIT n OFFSET m and LIMIT m, n.
func (m *Sqlbridge) parseLimit(offsets bool) (*Limit, error) {
	if !m.accept(lex.TokenLimit) {
		return nil, nil
	}
	count, err := m.integer("row count")
	if err != nil {
		return nil, err
	}
	lim := &Limit{Count: count}
	if !offsets {
		return lim, nil
	}
	switch {
	case m.Cur().T == lex.TokenComma:
		m.Next()
		n, err := m.integer("row count")
		if err != nil {
			return nil, err
		}
		lim.Offset, lim.Count = count, n
	case m.Cur().IsWord("OFFSET"):
		m.Next()
		if lim.Offset, err = m.integer("offset"); err != nil {
			return nil, err
		}
	}
	return lim, nil
}
