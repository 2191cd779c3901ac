package rel

import (
	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

// First keyword was INSERT or REPLACE
//
//	INSERT [IGNORE] [INTO] t [(col, ...)] {VALUES | VALUE} (v, ...), ...
//	INSERT [IGNORE] [INTO] t SET col = v, ...
//	INSERT [IGNORE] [INTO] t [(col, ...)] SELECT ...
//	  [ON DUPLICATE KEY UPDATE col = v, ...]
func (m *Sqlbridge) parseSqlInsert() (*SqlInsert, error) {
	req := &SqlInsert{Replace: m.Cur().T == lex.TokenReplace}
	m.Next() // Consume Insert or Replace

	req.Ignore = m.accept(lex.TokenIgnore)
	m.accept(lex.TokenInto)

	tbl, err := m.tableName("table name")
	if err != nil {
		return nil, err
	}
	req.Table = tbl

	if m.Cur().T == lex.TokenLeftParenthesis && !m.isParenQuery() {
		if req.Columns, err = m.parenIdents("column name"); err != nil {
			return nil, err
		}
	}

	switch cur := m.Cur(); {
	case cur.T == lex.TokenValues, cur.IsWord("VALUE"):
		m.Next()
		if req.Rows, err = m.parseValueRows(); err != nil {
			return nil, err
		}
	case cur.T == lex.TokenSet && len(req.Columns) == 0:
		m.Next()
		if req.Set, err = m.parseAssignments(); err != nil {
			return nil, err
		}
	case cur.T == lex.TokenSelect, cur.T == lex.TokenLeftParenthesis:
		if req.Select, err = m.parseQuery(); err != nil {
			return nil, err
		}
	default:
		return nil, expr.Unexpected(m, "VALUES, SET or SELECT")
	}

	if m.accept(lex.TokenOn) {
		if err := m.expectWord("DUPLICATE"); err != nil {
			return nil, err
		}
		if err := m.expect(lex.TokenKey, "KEY"); err != nil {
			return nil, err
		}
		if err := m.expect(lex.TokenUpdate, "UPDATE"); err != nil {
			return nil, err
		}
		if req.OnDuplicate, err = m.parseAssignments(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// parseValueRows (v, ...) [, (v, ...)] ...
func (m *Sqlbridge) parseValueRows() ([][]expr.Node, error) {
	var rows [][]expr.Node
	for {
		if err := m.expect(lex.TokenLeftParenthesis, "("); err != nil {
			return nil, err
		}
		row := make([]expr.Node, 0)
		for m.Cur().T != lex.TokenRightParenthesis {
			n, err := m.expression()
			if err != nil {
				return nil, err
			}
			row = append(row, n)
			if !m.accept(lex.TokenComma) {
				break
			}
		}
		if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
			return nil, err
		}
		rows = append(rows, row)
		if !m.accept(lex.TokenComma) {
			return rows, nil
		}
	}
}

// parseAssignments col = expr [, col = expr] ...
func (m *Sqlbridge) parseAssignments() ([]*Assignment, error) {
	var list []*Assignment
	for {
		col, err := m.columnName()
		if err != nil {
			return nil, err
		}
		if err := m.expect(lex.TokenEqual, "="); err != nil {
			return nil, err
		}
		val, err := m.expression()
		if err != nil {
			return nil, err
		}
		list = append(list, &Assignment{Column: col, Value: val})
		if !m.accept(lex.TokenComma) {
			return list, nil
		}
	}
}

// columnName [table.]col
func (m *Sqlbridge) columnName() (*expr.Column, error) {
	if m.Peek().T != lex.TokenPeriod {
		name, err := m.ident("column name")
		if err != nil {
			return nil, err
		}
		return &expr.Column{Name: name}, nil
	}
	table, err := expr.TableIdent(m, "table name")
	if err != nil {
		return nil, err
	}
	m.Next() // .
	name, err := m.ident("column name")
	if err != nil {
		return nil, err
	}
	return &expr.Column{Table: table, Name: name}, nil
}

// First keyword was UPDATE
//
//	UPDATE [IGNORE] t [[AS] alias] SET col = v, ... [WHERE] [ORDER BY] [LIMIT n]
func (m *Sqlbridge) parseSqlUpdate() (*SqlUpdate, error) {
	req := &SqlUpdate{}
	m.Next() // Consume Update
	req.Ignore = m.accept(lex.TokenIgnore)

	tbl, err := m.tableName("table name")
	if err != nil {
		return nil, err
	}
	if tbl.Alias, err = m.parseAlias(); err != nil {
		return nil, err
	}
	req.Table = tbl

	if err := m.expect(lex.TokenSet, "SET"); err != nil {
		return nil, err
	}
	if req.Set, err = m.parseAssignments(); err != nil {
		return nil, err
	}
	if m.accept(lex.TokenWhere) {
		if req.Where, err = m.expression(); err != nil {
			return nil, err
		}
	}
	if req.OrderBy, err = m.parseOrderBy(); err != nil {
		return nil, err
	}
	if req.Limit, err = m.parseLimit(false); err != nil {
		return nil, err
	}
	return req, nil
}

// First keyword was DELETE
//
//	DELETE [IGNORE] FROM t [WHERE] [ORDER BY] [LIMIT n]
func (m *Sqlbridge) parseSqlDelete() (*SqlDelete, error) {
	req := &SqlDelete{}
	m.Next() // Consume Delete
	req.Ignore = m.accept(lex.TokenIgnore)

	if err := m.expect(lex.TokenFrom, "FROM"); err != nil {
		return nil, err
	}
	tbl, err := m.tableName("table name")
	if err != nil {
		return nil, err
	}
	req.Table = tbl

	if m.accept(lex.TokenWhere) {
		if req.Where, err = m.expression(); err != nil {
			return nil, err
		}
	}
	if req.OrderBy, err = m.parseOrderBy(); err != nil {
		return nil, err
	}
	if req.Limit, err = m.parseLimit(false); err != nil {
		return nil, err
	}
	return req, nil
}

// First keyword was SET
//
//	SET [GLOBAL | SESSION | ...] name = value [, ...]
//	SET @user_var := expr
//	SET NAMES charset [COLLATE collation]
//	SET {CHARACTER SET | CHARSET} charset
func (m *Sqlbridge) parseSqlSet() (*SqlSet, error) {
	req := &SqlSet{}
	m.Next() // Consume Set
	for {
		a, err := m.parseSetAssignment()
		if err != nil {
			return nil, err
		}
		req.Assignments = append(req.Assignments, a)
		if !m.accept(lex.TokenComma) {
			return req, nil
		}
	}
}

func (m *Sqlbridge) parseSetAssignment() (*SetAssignment, error) {
	a := &SetAssignment{}
	cur := m.Cur()
	var err error

	switch {
	case cur.IsWord("NAMES") && !isAssignOp(m.Peek()):
		m.Next()
		a.Form = SetNames
		if a.Ident, err = m.charsetName("character set name"); err != nil {
			return nil, err
		}
		if m.accept(lex.TokenCollate) {
			if a.Collate, err = m.charsetName("collation name"); err != nil {
				return nil, err
			}
		}
		return a, nil
	case cur.T == lex.TokenCharacter && m.Peek().T == lex.TokenSet,
		cur.IsWord("CHARSET") && !isAssignOp(m.Peek()):
		if cur.T == lex.TokenCharacter {
			m.Next()
		}
		m.Next()
		a.Form = SetCharacterSet
		if a.Ident, err = m.charsetName("character set name"); err != nil {
			return nil, err
		}
		return a, nil
	}

	if scope, ok := LookupScope(cur.V); ok && cur.T == lex.TokenIdentity && cur.Quote == 0 && !isAssignOp(m.Peek()) {
		m.Next()
		a.Scope = scope
	}

	switch cur := m.Cur(); cur.T {
	case lex.TokenVariable:
		m.Next()
		a.Name = cur.V
	case lex.TokenIdentity:
		if a.Name, err = m.ident("variable name"); err != nil {
			return nil, err
		}
	default:
		return nil, expr.Unexpected(m, "variable name")
	}

	if !isAssignOp(m.Cur()) {
		return nil, expr.Unexpected(m, "=")
	}
	m.Next()

	// ON, OFF, DEFAULT, TRADITIONAL: a bare word standing alone is a name,
	// not a column reference
	if v := m.Cur(); v.Quote == 0 && isSetWord(v.T) && isSetEnd(m.Peek()) {
		m.Next()
		a.Ident = v.V
		return a, nil
	}
	if a.Value, err = m.expression(); err != nil {
		return nil, err
	}
	return a, nil
}

func isAssignOp(tok lex.Token) bool {
	return tok.T == lex.TokenEqual || tok.T == lex.TokenAssign
}

// isSetWord may a token of this type be a bare word SET value?
func isSetWord(typ lex.TokenType) bool {
	switch typ {
	case lex.TokenIdentity:
		return true
	case lex.TokenTrue, lex.TokenFalse, lex.TokenNull,
		lex.TokenCurrentDate, lex.TokenCurrentTime, lex.TokenCurrentTimestamp,
		lex.TokenLocalTime, lex.TokenLocalTimestamp:
		return false
	}
	return typ.IsKeyword()
}

func isSetEnd(tok lex.Token) bool {
	switch tok.T {
	case lex.TokenComma, lex.TokenEOS, lex.TokenEOF:
		return true
	}
	return false
}
