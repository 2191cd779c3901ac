package rel

import (
	"strconv"
	"strings"

	"github.com/dchest/siphash"

	"github.com/araddon/sqlparse/config"
	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

var (
	// Ensure SqlSelect and cousins etc are Statements
	_ Statement = (*SqlSelect)(nil)
	_ Statement = (*SqlUnion)(nil)
	_ Statement = (*SqlInsert)(nil)
	_ Statement = (*SqlUpdate)(nil)
	_ Statement = (*SqlDelete)(nil)
	_ Statement = (*SqlSet)(nil)
)

type (
	// Statement is a parsed sql statement; Select, CreateTable, DropTable,
	// Set etc.  The set of statements is closed, every implementation lives
	// in this package.
	Statement interface {
		// String is the canonical sql text, parseable back into an equal tree.
		String() string

		// FingerPrint is String but with literal values replaced by r (? generally)
		// and names lower-cased, so that statements differing only in values
		// can be grouped, cached and prepared together.
		FingerPrint(r rune) string

		// FingerPrintID is a 64 bit digest of FingerPrint('?').
		FingerPrintID() uint64

		// Keyword is the sql keyword the statement starts with (select, drop ...).
		Keyword() lex.TokenType

		writeBuf(buf *expr.DialectWriter, fr rune)
	}

	// Query is a Statement producing rows; a SqlSelect or a SqlUnion.
	Query interface {
		Statement
		isQuery()
	}

	bufWriter interface {
		writeBuf(buf *expr.DialectWriter, fr rune)
	}
)

func render(w bufWriter, fr rune) string {
	buf := expr.NewDefaultWriter()
	w.writeBuf(buf, fr)
	return buf.String()
}

// Format is the canonical text of stmt written for the dialect cfg.  Parsing
// the text with the same cfg yields an equal statement.
func Format(stmt Statement, cfg *config.ParseConfig) string {
	buf := expr.NewDialectWriter(cfg)
	stmt.writeBuf(buf, 0)
	return buf.String()
}

func fingerPrintID(s Statement) uint64 {
	return siphash.Hash(0, 1, []byte(s.FingerPrint('?')))
}

// writeIdent writes a name, backtick-quoted when it would not lex back as
// the same identity.
func writeIdent(buf *expr.DialectWriter, fr rune, name string) {
	if fr != 0 {
		name = strings.ToLower(name)
	}
	buf.WriteIdentity(name)
}

// writeTableIdent writes a schema, table or database name.
func writeTableIdent(buf *expr.DialectWriter, fr rune, name string) {
	if fr != 0 {
		name = strings.ToLower(name)
	}
	buf.WriteTableIdentity(name)
}

func writeIdents(buf *expr.DialectWriter, fr rune, names []string) {
	for i, name := range names {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeIdent(buf, fr, name)
	}
}

func writeNode(buf *expr.DialectWriter, fr rune, n expr.Node) {
	expr.WriteNode(buf, n, fr)
}

// writeString writes a quoted string value; fingerprints replace it by fr.
func writeString(buf *expr.DialectWriter, fr rune, val string) {
	if fr != 0 {
		buf.WriteRune(fr)
		return
	}
	buf.WriteLiteral(val)
}

// Shared clauses ---------------------------------------------------------

type (
	// Table is a table reference; [schema.]name [AS alias].  In a FROM
	// clause it may instead be a derived table, (SELECT ...) AS alias.
	Table struct {
		Schema   string
		Name     string
		Alias    string
		SubQuery Query
	}

	// Columns is an ordered field list.
	Columns []*expr.Column

	// Direction of an ORDER BY item.
	Direction uint8

	// OrderBy is one ORDER BY item.
	OrderBy struct {
		Column    *expr.Column
		Direction Direction
	}

	// Limit is LIMIT Count [OFFSET Offset].  LIMIT m, n is normalised to
	// LIMIT n OFFSET m.
	Limit struct {
		Count  int64
		Offset int64
	}

	// JoinKind is the join operator between two table references.
	JoinKind uint8

	// Join adds Table to the FROM clause with the join Kind and either an
	// On condition or a Using column list (or neither).
	Join struct {
		Kind  JoinKind
		Table *Table
		On    expr.Node
		Using []string
	}

	// Assignment col = value of UPDATE, INSERT ... SET and ON DUPLICATE KEY
	// UPDATE.
	Assignment struct {
		Column *expr.Column
		Value  expr.Node
	}
)

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

const (
	JoinComma JoinKind = iota // FROM a, b
	JoinPlain                 // JOIN
	JoinInner
	JoinCross
	JoinLeft
	JoinRight
	JoinStraight
	JoinNatural
	JoinNaturalLeft
	JoinNaturalRight
)

var joinKindNames = []string{
	JoinComma:        ",",
	JoinPlain:        "JOIN",
	JoinInner:        "INNER JOIN",
	JoinCross:        "CROSS JOIN",
	JoinLeft:         "LEFT JOIN",
	JoinRight:        "RIGHT JOIN",
	JoinStraight:     "STRAIGHT_JOIN",
	JoinNatural:      "NATURAL JOIN",
	JoinNaturalLeft:  "NATURAL LEFT JOIN",
	JoinNaturalRight: "NATURAL RIGHT JOIN",
}

func (k JoinKind) String() string {
	if int(k) < len(joinKindNames) {
		return joinKindNames[k]
	}
	return "JOIN"
}

// NewTable is a table reference from its key, name or schema.name.
func NewTable(key string) *Table {
	left, right, _ := expr.LeftRight(key)
	return &Table{Schema: left, Name: right}
}

func (m *Table) String() string { return render(m, 0) }

// Key is the qualified name, schema.name.
func (m *Table) Key() string {
	if m.Schema != "" {
		return m.Schema + "." + m.Name
	}
	return m.Name
}

func (m *Table) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m.SubQuery != nil {
		buf.WriteByte('(')
		m.SubQuery.writeBuf(buf, fr)
		buf.WriteByte(')')
	} else {
		if m.Schema != "" {
			writeTableIdent(buf, fr, m.Schema)
			buf.WriteByte('.')
		}
		writeTableIdent(buf, fr, m.Name)
	}
	if m.Alias != "" {
		buf.WriteString(" AS ")
		writeIdent(buf, fr, m.Alias)
	}
}

func writeTables(buf *expr.DialectWriter, fr rune, tables []*Table) {
	for i, t := range tables {
		if i > 0 {
			buf.WriteString(", ")
		}
		t.writeBuf(buf, fr)
	}
}

func (m Columns) String() string { return render(m, 0) }
func (m Columns) writeBuf(buf *expr.DialectWriter, fr rune) {
	for i, col := range m {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeNode(buf, fr, col)
	}
}

// Names are the keys of the columns, in order.
func (m Columns) Names() []string {
	names := make([]string, len(m))
	for i, col := range m {
		names[i] = col.Key()
	}
	return names
}

func (m *OrderBy) String() string { return render(m, 0) }
func (m *OrderBy) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeNode(buf, fr, m.Column)
	if m.Direction == Desc {
		buf.WriteString(" DESC")
	}
}

func writeOrderBy(buf *expr.DialectWriter, fr rune, items []*OrderBy) {
	if len(items) == 0 {
		return
	}
	buf.WriteString(" ORDER BY ")
	for i, o := range items {
		if i > 0 {
			buf.WriteString(", ")
		}
		o.writeBuf(buf, fr)
	}
}

func (m *Limit) String() string { return strings.TrimPrefix(render(m, 0), " ") }
func (m *Limit) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString(" LIMIT ")
	buf.WriteString(strconv.FormatInt(m.Count, 10))
	if m.Offset > 0 {
		buf.WriteString(" OFFSET ")
		buf.WriteString(strconv.FormatInt(m.Offset, 10))
	}
}

func (m *Join) String() string { return render(m, 0) }
func (m *Join) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m.Kind == JoinComma {
		buf.WriteString(", ")
	} else {
		buf.WriteByte(' ')
		buf.WriteString(m.Kind.String())
		buf.WriteByte(' ')
	}
	m.Table.writeBuf(buf, fr)
	switch {
	case m.On != nil:
		buf.WriteString(" ON ")
		writeNode(buf, fr, m.On)
	case len(m.Using) > 0:
		buf.WriteString(" USING (")
		writeIdents(buf, fr, m.Using)
		buf.WriteByte(')')
	}
}

func (m *Assignment) String() string { return render(m, 0) }
func (m *Assignment) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeNode(buf, fr, m.Column)
	buf.WriteString(" = ")
	writeNode(buf, fr, m.Value)
}

func writeAssignments(buf *expr.DialectWriter, fr rune, list []*Assignment) {
	for i, a := range list {
		if i > 0 {
			buf.WriteString(", ")
		}
		a.writeBuf(buf, fr)
	}
}

func writeWhere(buf *expr.DialectWriter, fr rune, where expr.Node) {
	if where != nil {
		buf.WriteString(" WHERE ")
		writeNode(buf, fr, where)
	}
}

// Select -----------------------------------------------------------------

type (
	// SqlSelect SELECT [DISTINCT] fields [FROM ...] [WHERE] [GROUP BY]
	// [HAVING] [ORDER BY] [LIMIT]
	SqlSelect struct {
		Distinct bool
		Columns  Columns
		From     *Table
		Joins    []*Join
		Where    expr.Node
		GroupBy  Columns
		Having   expr.Node
		OrderBy  []*OrderBy
		Limit    *Limit
	}

	// SetOpKind UNION, INTERSECT or EXCEPT
	SetOpKind uint8

	// SetOp is the operator joining Selects[i] and Selects[i+1] of a SqlUnion.
	SetOp struct {
		Kind SetOpKind
		All  bool
	}

	// SqlUnion is two or more selects combined with UNION, INTERSECT or
	// EXCEPT.  OrderBy and Limit apply to the combined result; a member
	// select with its own ORDER BY or LIMIT is written in parentheses.
	SqlUnion struct {
		Selects []*SqlSelect
		Ops     []SetOp
		OrderBy []*OrderBy
		Limit   *Limit
	}
)

const (
	Union SetOpKind = iota
	Intersect
	Except
)

func (k SetOpKind) String() string {
	switch k {
	case Intersect:
		return "INTERSECT"
	case Except:
		return "EXCEPT"
	}
	return "UNION"
}

func (m *SqlSelect) isQuery()                  {}
func (m *SqlSelect) Keyword() lex.TokenType    { return lex.TokenSelect }
func (m *SqlSelect) String() string            { return render(m, 0) }
func (m *SqlSelect) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlSelect) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlSelect) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("SELECT ")
	if m.Distinct {
		buf.WriteString("DISTINCT ")
	}
	m.Columns.writeBuf(buf, fr)
	if m.From != nil {
		buf.WriteString(" FROM ")
		m.From.writeBuf(buf, fr)
		for _, j := range m.Joins {
			j.writeBuf(buf, fr)
		}
	}
	writeWhere(buf, fr, m.Where)
	if len(m.GroupBy) > 0 {
		buf.WriteString(" GROUP BY ")
		m.GroupBy.writeBuf(buf, fr)
	}
	if m.Having != nil {
		buf.WriteString(" HAVING ")
		writeNode(buf, fr, m.Having)
	}
	writeOrderBy(buf, fr, m.OrderBy)
	if m.Limit != nil {
		m.Limit.writeBuf(buf, fr)
	}
}

// IsAggQuery does any field, or the HAVING clause, call an aggregate?
func (m *SqlSelect) IsAggQuery() bool {
	if len(m.GroupBy) > 0 {
		return true
	}
	for _, col := range m.Columns {
		if col.Function != nil && col.Function.Kind.IsAggregate() {
			return true
		}
	}
	return false
}

// CountStar is this a SELECT count(*) FROM ... query?
func (m *SqlSelect) CountStar() bool {
	if len(m.Columns) != 1 || m.Columns[0].Function == nil {
		return false
	}
	return m.Columns[0].Function.Kind == expr.FuncCountStar
}

// Tables are all the named tables of the FROM clause, in order.  Derived
// tables are not included.
func (m *SqlSelect) Tables() []*Table {
	var tables []*Table
	if m.From != nil && m.From.SubQuery == nil {
		tables = append(tables, m.From)
	}
	for _, j := range m.Joins {
		if j.Table.SubQuery == nil {
			tables = append(tables, j.Table)
		}
	}
	return tables
}

// needsParens must the select be parenthesised as a union member?
func (m *SqlSelect) needsParens() bool {
	return len(m.OrderBy) > 0 || m.Limit != nil
}

func (m *SqlUnion) isQuery()                  {}
func (m *SqlUnion) Keyword() lex.TokenType    { return lex.TokenUnion }
func (m *SqlUnion) String() string            { return render(m, 0) }
func (m *SqlUnion) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlUnion) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlUnion) writeBuf(buf *expr.DialectWriter, fr rune) {
	for i, sel := range m.Selects {
		if i > 0 {
			op := m.Ops[i-1]
			buf.WriteByte(' ')
			buf.WriteString(op.Kind.String())
			if op.All {
				buf.WriteString(" ALL")
			}
			buf.WriteByte(' ')
		}
		if sel.needsParens() {
			buf.WriteByte('(')
			sel.writeBuf(buf, fr)
			buf.WriteByte(')')
		} else {
			sel.writeBuf(buf, fr)
		}
	}
	writeOrderBy(buf, fr, m.OrderBy)
	if m.Limit != nil {
		m.Limit.writeBuf(buf, fr)
	}
}

// DML --------------------------------------------------------------------

type (
	// SqlInsert INSERT or REPLACE of rows given as VALUES, as a SET list or
	// by a query.
	//
	//	INSERT INTO t (a, b) VALUES (1, 2), (3, 4)
	//	INSERT INTO t SET a = 1, b = 2
	//	REPLACE INTO t (a) SELECT a FROM s
	//	INSERT INTO t (a) VALUES (1) ON DUPLICATE KEY UPDATE a = a + 1
	SqlInsert struct {
		Replace     bool
		Ignore      bool
		Table       *Table
		Columns     []string
		Rows        [][]expr.Node
		Set         []*Assignment
		Select      Query
		OnDuplicate []*Assignment
	}

	// SqlUpdate UPDATE t SET a = v, ... [WHERE] [ORDER BY] [LIMIT n]
	SqlUpdate struct {
		Ignore  bool
		Table   *Table
		Set     []*Assignment
		Where   expr.Node
		OrderBy []*OrderBy
		Limit   *Limit
	}

	// SqlDelete DELETE FROM t [WHERE] [ORDER BY] [LIMIT n]
	SqlDelete struct {
		Ignore  bool
		Table   *Table
		Where   expr.Node
		OrderBy []*OrderBy
		Limit   *Limit
	}
)

func (m *SqlInsert) Keyword() lex.TokenType {
	if m.Replace {
		return lex.TokenReplace
	}
	return lex.TokenInsert
}
func (m *SqlInsert) String() string            { return render(m, 0) }
func (m *SqlInsert) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlInsert) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlInsert) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m.Replace {
		buf.WriteString("REPLACE ")
	} else {
		buf.WriteString("INSERT ")
	}
	if m.Ignore {
		buf.WriteString("IGNORE ")
	}
	buf.WriteString("INTO ")
	m.Table.writeBuf(buf, fr)
	if len(m.Columns) > 0 {
		buf.WriteString(" (")
		writeIdents(buf, fr, m.Columns)
		buf.WriteByte(')')
	}
	switch {
	case m.Select != nil:
		buf.WriteByte(' ')
		m.Select.writeBuf(buf, fr)
	case len(m.Set) > 0:
		buf.WriteString(" SET ")
		writeAssignments(buf, fr, m.Set)
	default:
		buf.WriteString(" VALUES ")
		for i, row := range m.Rows {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteByte('(')
			for j, val := range row {
				if j > 0 {
					buf.WriteString(", ")
				}
				writeNode(buf, fr, val)
			}
			buf.WriteByte(')')
		}
	}
	if len(m.OnDuplicate) > 0 {
		buf.WriteString(" ON DUPLICATE KEY UPDATE ")
		writeAssignments(buf, fr, m.OnDuplicate)
	}
}

func (m *SqlUpdate) Keyword() lex.TokenType    { return lex.TokenUpdate }
func (m *SqlUpdate) String() string            { return render(m, 0) }
func (m *SqlUpdate) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlUpdate) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlUpdate) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("UPDATE ")
	if m.Ignore {
		buf.WriteString("IGNORE ")
	}
	m.Table.writeBuf(buf, fr)
	buf.WriteString(" SET ")
	writeAssignments(buf, fr, m.Set)
	writeWhere(buf, fr, m.Where)
	writeOrderBy(buf, fr, m.OrderBy)
	if m.Limit != nil {
		m.Limit.writeBuf(buf, fr)
	}
}

func (m *SqlDelete) Keyword() lex.TokenType    { return lex.TokenDelete }
func (m *SqlDelete) String() string            { return render(m, 0) }
func (m *SqlDelete) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDelete) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlDelete) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("DELETE ")
	if m.Ignore {
		buf.WriteString("IGNORE ")
	}
	buf.WriteString("FROM ")
	m.Table.writeBuf(buf, fr)
	writeWhere(buf, fr, m.Where)
	writeOrderBy(buf, fr, m.OrderBy)
	if m.Limit != nil {
		m.Limit.writeBuf(buf, fr)
	}
}

// Set --------------------------------------------------------------------

type (
	// Scope is the variable scope keyword of a SET assignment.
	Scope uint8

	// SetForm distinguishes SET NAMES and SET CHARACTER SET from variable
	// assignments.
	SetForm uint8

	// SetAssignment is one assignment of a SET statement.  The value is
	// either an expression (Value) or a bare word such as ON, OFF or
	// DEFAULT (Ident).
	//
	//	SET GLOBAL max_connections = 100
	//	SET @x := 1 + 2
	//	SET sql_mode = TRADITIONAL
	//	SET NAMES utf8mb4 COLLATE utf8mb4_bin
	SetAssignment struct {
		Form    SetForm
		Scope   Scope
		Name    string
		Value   expr.Node
		Ident   string
		Collate string
	}

	// SqlSet SET assignment [, assignment] ...
	SqlSet struct {
		Assignments []*SetAssignment
	}
)

const (
	ScopeNone Scope = iota
	ScopeGlobal
	ScopeSession
	ScopeLocal
	ScopePersist
	ScopePersistOnly
)

var scopeNames = []string{
	ScopeNone:        "",
	ScopeGlobal:      "GLOBAL",
	ScopeSession:     "SESSION",
	ScopeLocal:       "LOCAL",
	ScopePersist:     "PERSIST",
	ScopePersistOnly: "PERSIST_ONLY",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return ""
}

// LookupScope finds the scope named by word, case-insensitive.
func LookupScope(word string) (Scope, bool) {
	for i, name := range scopeNames {
		if name != "" && strings.EqualFold(name, word) {
			return Scope(i), true
		}
	}
	return ScopeNone, false
}

const (
	SetVariable SetForm = iota
	SetNames
	SetCharacterSet
)

func (m *SetAssignment) String() string { return render(m, 0) }
func (m *SetAssignment) writeBuf(buf *expr.DialectWriter, fr rune) {
	switch m.Form {
	case SetNames:
		buf.WriteString("NAMES ")
		m.writeValue(buf, fr)
		if m.Collate != "" {
			buf.WriteString(" COLLATE ")
			writeIdent(buf, fr, m.Collate)
		}
		return
	case SetCharacterSet:
		buf.WriteString("CHARACTER SET ")
		m.writeValue(buf, fr)
		return
	}
	if m.Scope != ScopeNone {
		buf.WriteString(m.Scope.String())
		buf.WriteByte(' ')
	}
	if strings.HasPrefix(m.Name, "@") {
		if fr != 0 {
			buf.WriteString(strings.ToLower(m.Name))
		} else {
			buf.WriteString(m.Name)
		}
	} else {
		writeIdent(buf, fr, m.Name)
	}
	buf.WriteString(" = ")
	m.writeValue(buf, fr)
}

func (m *SetAssignment) writeValue(buf *expr.DialectWriter, fr rune) {
	switch {
	case m.Value != nil:
		writeNode(buf, fr, m.Value)
	case fr != 0:
		buf.WriteRune(fr)
	case lex.IsReserved(m.Ident):
		buf.WriteString(strings.ToUpper(m.Ident))
	default:
		// a bare word value, never forced into quotes
		buf.WriteString(lex.QuoteIdentifier(m.Ident))
	}
}

func (m *SqlSet) Keyword() lex.TokenType    { return lex.TokenSet }
func (m *SqlSet) String() string            { return render(m, 0) }
func (m *SqlSet) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlSet) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlSet) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("SET ")
	for i, a := range m.Assignments {
		if i > 0 {
			buf.WriteString(", ")
		}
		a.writeBuf(buf, fr)
	}
}
