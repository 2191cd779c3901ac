package rel

import (
	"strings"

	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

// First keyword was ALTER
func (m *Sqlbridge) parseAlter() (Statement, error) {
	m.Next() // Consume Alter
	switch m.Cur().T {
	case lex.TokenTable:
		return m.parseAlterTable()
	case lex.TokenDatabase, lex.TokenSchema:
		return m.parseAlterDatabase()
	}
	return nil, m.unsupported(m.Cur())
}

// parseAlterTable ALTER TABLE t [action [, action] ...]
func (m *Sqlbridge) parseAlterTable() (*SqlAlterTable, error) {
	m.Next() // Consume Table
	req := &SqlAlterTable{}
	var err error
	if req.Table, err = m.tableName("table name"); err != nil {
		return nil, err
	}
	if m.isStatementEnd() {
		return req, nil
	}
	for {
		action, err := m.parseAlterAction()
		if err != nil {
			return nil, err
		}
		req.Actions = append(req.Actions, action)
		if !m.accept(lex.TokenComma) {
			return req, nil
		}
	}
}

func (m *Sqlbridge) parseAlterAction() (AlterAction, error) {
	cur := m.Cur()
	switch {
	case cur.T == lex.TokenAdd:
		m.Next()
		return m.parseAlterAdd()
	case cur.T == lex.TokenDrop:
		m.Next()
		return m.parseAlterDrop()
	case cur.T == lex.TokenAlter:
		m.Next()
		return m.parseAlterAlter()
	case cur.T == lex.TokenChange:
		m.Next()
		m.accept(lex.TokenColumn)
		old, err := m.ident("column name")
		if err != nil {
			return nil, err
		}
		col, err := m.parseColumnDef()
		if err != nil {
			return nil, err
		}
		pos, err := m.parseColumnPosition()
		if err != nil {
			return nil, err
		}
		return &AlterChangeColumn{Old: old, Column: col, Position: pos}, nil
	case cur.IsWord("MODIFY"):
		m.Next()
		m.accept(lex.TokenColumn)
		col, err := m.parseColumnDef()
		if err != nil {
			return nil, err
		}
		pos, err := m.parseColumnPosition()
		if err != nil {
			return nil, err
		}
		return &AlterModifyColumn{Column: col, Position: pos}, nil
	case cur.T == lex.TokenConvert:
		m.Next()
		return m.parseAlterConvert()
	case cur.T == lex.TokenRename:
		m.Next()
		return m.parseAlterRename()
	case cur.T == lex.TokenOrder:
		m.Next()
		return m.parseAlterOrderBy()
	case cur.IsWord("ALGORITHM"), cur.T == lex.TokenLock:
		m.Next()
		m.accept(lex.TokenEqual)
		val, err := m.word(strings.ToLower(cur.V))
		if err != nil {
			return nil, err
		}
		return &AlterOption{Name: strings.ToUpper(cur.V), Value: val}, nil
	}

	if cur.Quote == 0 {
		first := strings.ToUpper(cur.V)
		if second, ok := alterKeywords[first]; ok && (cur.T == lex.TokenIdentity || cur.T.IsKeyword()) {
			m.Next()
			if second == "" {
				return &AlterKeyword{Text: first}, nil
			}
			if err := m.expectWord(second); err != nil {
				return nil, err
			}
			return &AlterKeyword{Text: first + " " + second}, nil
		}
	}

	opts, err := m.parseTableOptions(false)
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return nil, expr.Unexpected(m, "alter table action")
	}
	return &AlterTableOptions{Options: opts}, nil
}

// parseAlterAdd after ADD: a key or constraint definition, or
// [COLUMN] def [FIRST | AFTER col] or [COLUMN] (def, ...)
func (m *Sqlbridge) parseAlterAdd() (AlterAction, error) {
	switch m.Cur().T {
	case lex.TokenConstraint, lex.TokenPrimary, lex.TokenUnique, lex.TokenIndex, lex.TokenKey,
		lex.TokenFulltext, lex.TokenSpatial, lex.TokenForeign, lex.TokenCheck:
		def, err := m.parseTableElement()
		if err != nil {
			return nil, err
		}
		return &AlterAddDefinition{Definition: def}, nil
	}

	m.accept(lex.TokenColumn)
	if m.accept(lex.TokenLeftParenthesis) {
		add := &AlterAddColumn{Parenthesized: true}
		for {
			col, err := m.parseColumnDef()
			if err != nil {
				return nil, err
			}
			add.Columns = append(add.Columns, col)
			if !m.accept(lex.TokenComma) {
				break
			}
		}
		if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
			return nil, err
		}
		return add, nil
	}

	col, err := m.parseColumnDef()
	if err != nil {
		return nil, err
	}
	pos, err := m.parseColumnPosition()
	if err != nil {
		return nil, err
	}
	return &AlterAddColumn{Columns: []*ColumnDef{col}, Position: pos}, nil
}

// parseColumnPosition [FIRST | AFTER col]
func (m *Sqlbridge) parseColumnPosition() (*ColumnPosition, error) {
	switch {
	case m.acceptWord("FIRST"):
		return &ColumnPosition{First: true}, nil
	case m.acceptWord("AFTER"):
		name, err := m.ident("column name")
		if err != nil {
			return nil, err
		}
		return &ColumnPosition{After: name}, nil
	}
	return nil, nil
}

// parseAlterDrop after DROP
//
//	[COLUMN] c | {INDEX | KEY} i | PRIMARY KEY | FOREIGN KEY fk
//	| CHECK sym | CONSTRAINT sym
func (m *Sqlbridge) parseAlterDrop() (AlterAction, error) {
	drop := &AlterDrop{}
	switch m.Cur().T {
	case lex.TokenPrimary:
		m.Next()
		if err := m.expect(lex.TokenKey, "KEY"); err != nil {
			return nil, err
		}
		drop.Kind = DropPrimaryKey
		return drop, nil
	case lex.TokenForeign:
		m.Next()
		if err := m.expect(lex.TokenKey, "KEY"); err != nil {
			return nil, err
		}
		drop.Kind = DropForeignKey
	case lex.TokenIndex, lex.TokenKey:
		m.Next()
		drop.Kind = DropIndex
	case lex.TokenCheck:
		m.Next()
		drop.Kind = DropCheck
	case lex.TokenConstraint:
		m.Next()
		drop.Kind = DropConstraint
	default:
		m.accept(lex.TokenColumn)
		drop.Kind = DropColumn
	}
	name, err := m.ident(strings.ToLower(drop.Kind.String()) + " name")
	if err != nil {
		return nil, err
	}
	drop.Name = name
	return drop, nil
}

// parseAlterAlter after ALTER
//
//	[COLUMN] c {SET DEFAULT v | DROP DEFAULT | SET {VISIBLE | INVISIBLE}}
//	| INDEX i {VISIBLE | INVISIBLE}
//	| {CHECK | CONSTRAINT} sym [NOT] ENFORCED
func (m *Sqlbridge) parseAlterAlter() (AlterAction, error) {
	switch cur := m.Cur(); cur.T {
	case lex.TokenCheck, lex.TokenConstraint:
		m.Next()
		name, err := m.ident("constraint name")
		if err != nil {
			return nil, err
		}
		enforced := m.parseEnforced()
		if enforced == nil {
			return nil, expr.Unexpected(m, "ENFORCED")
		}
		return &AlterEnforcement{Constraint: cur.T == lex.TokenConstraint, Name: name, Enforced: *enforced}, nil
	case lex.TokenIndex:
		m.Next()
		name, err := m.ident("index name")
		if err != nil {
			return nil, err
		}
		vis, err := m.oneOf("VISIBLE or INVISIBLE", "VISIBLE", "INVISIBLE")
		if err != nil {
			return nil, err
		}
		return &AlterIndexVisibility{Index: name, Visible: vis == "VISIBLE"}, nil
	}

	m.accept(lex.TokenColumn)
	name, err := m.ident("column name")
	if err != nil {
		return nil, err
	}
	ac := &AlterColumn{Column: name}
	switch {
	case m.accept(lex.TokenSet):
		switch {
		case m.accept(lex.TokenDefault):
			ac.Op = SetDefault
			if ac.Value, err = m.defaultValue(); err != nil {
				return nil, err
			}
		case m.acceptWord("VISIBLE"):
			ac.Op = SetVisible
		case m.acceptWord("INVISIBLE"):
			ac.Op = SetInvisible
		default:
			return nil, expr.Unexpected(m, "DEFAULT, VISIBLE or INVISIBLE")
		}
	case m.accept(lex.TokenDrop):
		if err := m.expect(lex.TokenDefault, "DEFAULT"); err != nil {
			return nil, err
		}
		ac.Op = DropDefault
	default:
		return nil, expr.Unexpected(m, "SET or DROP")
	}
	return ac, nil
}

// parseAlterConvert after CONVERT,
// TO {CHARACTER SET | CHARSET} cs [COLLATE c]
func (m *Sqlbridge) parseAlterConvert() (AlterAction, error) {
	if err := m.expect(lex.TokenTo, "TO"); err != nil {
		return nil, err
	}
	if !m.acceptWord("CHARSET") {
		if err := m.expect(lex.TokenCharacter, "CHARACTER SET"); err != nil {
			return nil, err
		}
		if err := m.expect(lex.TokenSet, "SET"); err != nil {
			return nil, err
		}
	}
	conv := &AlterConvert{}
	var err error
	if conv.Charset, err = m.charsetName("character set name"); err != nil {
		return nil, err
	}
	if m.accept(lex.TokenCollate) {
		if conv.Collate, err = m.charsetName("collation name"); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

// parseAlterRename after RENAME,
// COLUMN a TO b | {INDEX | KEY} a TO b | [TO | AS] t
func (m *Sqlbridge) parseAlterRename() (AlterAction, error) {
	switch m.Cur().T {
	case lex.TokenColumn, lex.TokenIndex, lex.TokenKey:
		rn := &AlterRename{Index: m.Next().T != lex.TokenColumn}
		var err error
		if rn.Old, err = m.ident("name"); err != nil {
			return nil, err
		}
		if err := m.expect(lex.TokenTo, "TO"); err != nil {
			return nil, err
		}
		if rn.New, err = m.ident("name"); err != nil {
			return nil, err
		}
		return rn, nil
	case lex.TokenTo, lex.TokenAs:
		m.Next()
	}
	t, err := m.tableName("table name")
	if err != nil {
		return nil, err
	}
	return &AlterRenameTable{To: t}, nil
}

// parseAlterOrderBy after ORDER, BY col [, col] ...  A comma is only part of
// the list when a lone name follows it, otherwise it starts the next action.
func (m *Sqlbridge) parseAlterOrderBy() (AlterAction, error) {
	if err := m.expect(lex.TokenBy, "BY"); err != nil {
		return nil, err
	}
	ob := &AlterOrderBy{}
	for {
		name, err := m.ident("column name")
		if err != nil {
			return nil, err
		}
		ob.Columns = append(ob.Columns, name)
		if m.Cur().T != lex.TokenComma || m.Peek().T != lex.TokenIdentity || !isSetEnd(m.PeekN(2)) {
			return ob, nil
		}
		m.Next()
	}
}

// parseAlterDatabase ALTER {DATABASE | SCHEMA} [name] option ...
func (m *Sqlbridge) parseAlterDatabase() (*SqlAlterDatabase, error) {
	m.Next() // Consume Database
	req := &SqlAlterDatabase{}
	var err error
	if cur := m.Cur(); cur.T == lex.TokenIdentity && !cur.IsWord("CHARSET") && !cur.IsWord("ENCRYPTION") {
		if req.Name, err = expr.TableIdent(m, "database name"); err != nil {
			return nil, err
		}
	}
	if req.Options, err = m.parseDatabaseOptions(); err != nil {
		return nil, err
	}
	return req, nil
}

// parseDatabaseOptions one or more of
//
//	[DEFAULT] {CHARACTER SET | CHARSET} [=] cs
//	[DEFAULT] COLLATE [=] c
//	[DEFAULT] ENCRYPTION [=] {'Y' | 'N'}
//	READ ONLY [=] {DEFAULT | 0 | 1}
func (m *Sqlbridge) parseDatabaseOptions() ([]*TableOption, error) {
	var opts []*TableOption
	for {
		if m.Cur().T == lex.TokenDefault {
			switch next := m.Peek(); {
			case next.T == lex.TokenCharacter, next.T == lex.TokenCollate,
				next.IsWord("CHARSET"), next.IsWord("ENCRYPTION"):
				m.Next()
			}
		}
		opt := &TableOption{}
		switch cur := m.Cur(); {
		case cur.T == lex.TokenCharacter:
			m.Next()
			if err := m.expect(lex.TokenSet, "SET"); err != nil {
				return nil, err
			}
			opt.Name = "CHARACTER SET"
		case cur.IsWord("CHARSET"):
			m.Next()
			opt.Name = "CHARACTER SET"
		case cur.T == lex.TokenCollate:
			m.Next()
			opt.Name = "COLLATE"
		case cur.IsWord("ENCRYPTION"):
			m.Next()
			opt.Name = "ENCRYPTION"
		case cur.T == lex.TokenRead:
			m.Next()
			if err := m.expectWord("ONLY"); err != nil {
				return nil, err
			}
			opt.Name = "READ ONLY"
		default:
			if len(opts) == 0 {
				return nil, expr.Unexpected(m, "database option")
			}
			return opts, nil
		}
		m.accept(lex.TokenEqual)

		val := m.Cur()
		switch opt.Name {
		case "ENCRYPTION":
			if val.T != lex.TokenString || (!strings.EqualFold(val.V, "Y") && !strings.EqualFold(val.V, "N")) {
				return nil, expr.Unexpected(m, "'Y' or 'N'")
			}
		case "READ ONLY":
			if val.T != lex.TokenDefault && (val.T != lex.TokenInteger || (val.V != "0" && val.V != "1")) {
				return nil, expr.Unexpected(m, "DEFAULT, 0 or 1")
			}
		}
		v, err := m.optionValue(singleToken)
		if err != nil {
			return nil, err
		}
		opt.Value = v
		opts = append(opts, opt)
	}
}

// singleToken stops an option value after its first token.
func singleToken() bool { return true }
