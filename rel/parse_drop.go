package rel

import (
	"strconv"

	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

// First keyword was DROP
func (m *Sqlbridge) parseDrop() (Statement, error) {
	m.Next() // Consume Drop

	switch cur := m.Cur(); {
	case cur.T == lex.TokenDatabase, cur.T == lex.TokenSchema:
		return m.parseDropDatabase()
	case cur.IsWord("EVENT"):
		return m.parseDropEvent()
	case cur.T == lex.TokenProcedure:
		return m.parseDropRoutine(RoutineProcedure)
	case cur.IsWord("FUNCTION"):
		return m.parseDropRoutine(RoutineFunction)
	case cur.T == lex.TokenIndex:
		return m.parseDropIndex()
	case cur.IsWord("LOGFILE"):
		return m.parseDropLogfileGroup()
	case cur.IsWord("SERVER"):
		return m.parseDropServer()
	case cur.T == lex.TokenSpatial:
		return m.parseDropSpatialReferenceSystem()
	case cur.T == lex.TokenTable,
		cur.IsWord("TEMPORARY") && m.Peek().T == lex.TokenTable:
		return m.parseDropTable()
	case cur.IsWord("TABLESPACE"),
		cur.T == lex.TokenUndo && m.Peek().IsWord("TABLESPACE"):
		return m.parseDropTablespace()
	case cur.T == lex.TokenTrigger:
		return m.parseDropTrigger()
	case cur.IsWord("VIEW"):
		return m.parseDropView()
	}
	return nil, m.unsupported(m.Cur())
}

// DROP {DATABASE | SCHEMA} [IF EXISTS] db
func (m *Sqlbridge) parseDropDatabase() (*SqlDropDatabase, error) {
	m.Next() // Consume Database
	req := &SqlDropDatabase{}
	var err error
	if req.IfExists, err = m.ifExists(); err != nil {
		return nil, err
	}
	if req.Name, err = expr.TableIdent(m, "database name"); err != nil {
		return nil, err
	}
	return req, nil
}

// DROP EVENT [IF EXISTS] [schema.]event
func (m *Sqlbridge) parseDropEvent() (*SqlDropEvent, error) {
	m.Next() // Consume Event
	req := &SqlDropEvent{}
	var err error
	if req.IfExists, err = m.ifExists(); err != nil {
		return nil, err
	}
	if req.Name, err = m.tableName("event name"); err != nil {
		return nil, err
	}
	return req, nil
}

// DROP {PROCEDURE | FUNCTION} [IF EXISTS] [schema.]name
func (m *Sqlbridge) parseDropRoutine(kind RoutineKind) (*SqlDropRoutine, error) {
	m.Next() // Consume Procedure or Function
	req := &SqlDropRoutine{Kind: kind}
	var err error
	if req.IfExists, err = m.ifExists(); err != nil {
		return nil, err
	}
	if req.Name, err = m.tableName("routine name"); err != nil {
		return nil, err
	}
	return req, nil
}

// DROP INDEX i ON t [ALGORITHM [=] a] [LOCK [=] l]
func (m *Sqlbridge) parseDropIndex() (*SqlDropIndex, error) {
	m.Next() // Consume Index
	req := &SqlDropIndex{}
	var err error
	if req.Name, err = m.ident("index name"); err != nil {
		return nil, err
	}
	if err := m.expect(lex.TokenOn, "ON"); err != nil {
		return nil, err
	}
	if req.Table, err = m.tableName("table name"); err != nil {
		return nil, err
	}
	if req.Algorithm, req.Lock, err = m.parseAlgorithmLock(); err != nil {
		return nil, err
	}
	return req, nil
}

// DROP LOGFILE GROUP g ENGINE [=] e
func (m *Sqlbridge) parseDropLogfileGroup() (*SqlDropLogfileGroup, error) {
	m.Next() // Consume Logfile
	if err := m.expect(lex.TokenGroup, "GROUP"); err != nil {
		return nil, err
	}
	req := &SqlDropLogfileGroup{}
	var err error
	if req.Name, err = m.ident("logfile group name"); err != nil {
		return nil, err
	}
	if err := m.expectWord("ENGINE"); err != nil {
		return nil, err
	}
	m.accept(lex.TokenEqual)
	if req.Engine, err = m.ident("engine name"); err != nil {
		return nil, err
	}
	return req, nil
}

// DROP SERVER [IF EXISTS] s
func (m *Sqlbridge) parseDropServer() (*SqlDropServer, error) {
	m.Next() // Consume Server
	req := &SqlDropServer{}
	var err error
	if req.IfExists, err = m.ifExists(); err != nil {
		return nil, err
	}
	if req.Name, err = m.ident("server name"); err != nil {
		return nil, err
	}
	return req, nil
}

// DROP SPATIAL REFERENCE SYSTEM [IF EXISTS] srid
func (m *Sqlbridge) parseDropSpatialReferenceSystem() (*SqlDropSpatialReferenceSystem, error) {
	m.Next() // Consume Spatial
	if err := m.expectWord("REFERENCE"); err != nil {
		return nil, err
	}
	if err := m.expectWord("SYSTEM"); err != nil {
		return nil, err
	}
	req := &SqlDropSpatialReferenceSystem{}
	var err error
	if req.IfExists, err = m.ifExists(); err != nil {
		return nil, err
	}
	cur := m.Cur()
	if cur.T != lex.TokenInteger {
		return nil, expr.Unexpected(m, "srid")
	}
	srid, err := strconv.ParseUint(cur.V, 10, 32)
	if err != nil {
		return nil, expr.Unexpected(m, "srid")
	}
	m.Next()
	req.Srid = uint32(srid)
	return req, nil
}

// DROP [TEMPORARY] TABLE [IF EXISTS] t [, t] ... [RESTRICT | CASCADE]
func (m *Sqlbridge) parseDropTable() (*SqlDropTable, error) {
	req := &SqlDropTable{}
	req.Temporary = m.acceptWord("TEMPORARY")
	m.Next() // Consume Table
	var err error
	if req.IfExists, err = m.ifExists(); err != nil {
		return nil, err
	}
	if req.Tables, err = m.tableList("table name"); err != nil {
		return nil, err
	}
	req.Option = m.restrictOrCascade()
	return req, nil
}

// DROP [UNDO] TABLESPACE ts [ENGINE [=] e]
func (m *Sqlbridge) parseDropTablespace() (*SqlDropTablespace, error) {
	req := &SqlDropTablespace{}
	req.Undo = m.accept(lex.TokenUndo)
	m.Next() // Consume Tablespace
	var err error
	if req.Name, err = m.ident("tablespace name"); err != nil {
		return nil, err
	}
	if m.acceptWord("ENGINE") {
		m.accept(lex.TokenEqual)
		if req.Engine, err = m.ident("engine name"); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// DROP TRIGGER [IF EXISTS] [schema.]trigger
func (m *Sqlbridge) parseDropTrigger() (*SqlDropTrigger, error) {
	m.Next() // Consume Trigger
	req := &SqlDropTrigger{}
	var err error
	if req.IfExists, err = m.ifExists(); err != nil {
		return nil, err
	}
	if req.Name, err = m.tableName("trigger name"); err != nil {
		return nil, err
	}
	return req, nil
}

// DROP VIEW [IF EXISTS] v [, v] ... [RESTRICT | CASCADE]
func (m *Sqlbridge) parseDropView() (*SqlDropView, error) {
	m.Next() // Consume View
	req := &SqlDropView{}
	var err error
	if req.IfExists, err = m.ifExists(); err != nil {
		return nil, err
	}
	if req.Views, err = m.tableList("view name"); err != nil {
		return nil, err
	}
	req.Option = m.restrictOrCascade()
	return req, nil
}

// First keyword was RENAME, RENAME TABLE a TO b [, c TO d] ...
func (m *Sqlbridge) parseSqlRenameTable() (*SqlRenameTable, error) {
	m.Next() // Consume Rename
	if m.Cur().T != lex.TokenTable {
		return nil, m.unsupported(m.Cur())
	}
	m.Next()
	req := &SqlRenameTable{}
	for {
		from, err := m.tableName("table name")
		if err != nil {
			return nil, err
		}
		if err := m.expect(lex.TokenTo, "TO"); err != nil {
			return nil, err
		}
		to, err := m.tableName("table name")
		if err != nil {
			return nil, err
		}
		req.Pairs = append(req.Pairs, &RenamePair{From: from, To: to})
		if !m.accept(lex.TokenComma) {
			return req, nil
		}
	}
}

// First word was TRUNCATE, TRUNCATE [TABLE] t
func (m *Sqlbridge) parseSqlTruncate() (*SqlTruncate, error) {
	m.Next() // Consume Truncate
	m.accept(lex.TokenTable)
	t, err := m.tableName("table name")
	if err != nil {
		return nil, err
	}
	return &SqlTruncate{Table: t}, nil
}
