package rel

import (
	"strconv"
	"strings"

	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

var (
	_ Statement = (*SqlCreateTable)(nil)
	_ Statement = (*SqlCreateIndex)(nil)
	_ Statement = (*SqlCreateView)(nil)
	_ Statement = (*SqlAlterTable)(nil)
	_ Statement = (*SqlAlterDatabase)(nil)
	_ Statement = (*SqlRenameTable)(nil)
	_ Statement = (*SqlTruncate)(nil)

	_ TableElement = (*ColumnDef)(nil)
	_ TableElement = (*IndexDef)(nil)
	_ TableElement = (*ForeignKeyDef)(nil)
	_ TableElement = (*CheckDef)(nil)
)

// Column definitions ------------------------------------------------------

type (
	// DataType is a column type.  Name is upper case (INT, VARCHAR, DOUBLE
	// PRECISION ...); Args are the numeric parameters, VARCHAR(255),
	// DECIMAL(10, 2); Values the members of ENUM and SET.
	DataType struct {
		Name     string
		Args     []int
		Values   []string
		Unsigned bool
		Zerofill bool
		Binary   bool
	}

	// ColumnAttrKind identifies a column attribute.
	ColumnAttrKind uint8

	// ColumnAttr is one attribute of a column definition.  Value holds the
	// expression of DEFAULT, ON UPDATE and GENERATED ALWAYS AS; Text the
	// name or string of COMMENT, CHARACTER SET, COLLATE, COLUMN_FORMAT,
	// STORAGE, and VIRTUAL or STORED for generated columns.
	ColumnAttr struct {
		Kind  ColumnAttrKind
		Value expr.Node
		Text  string
	}

	// ColumnDef name type [attribute ...].  Attributes keep their written
	// order.
	ColumnDef struct {
		Name  string
		Type  *DataType
		Attrs []*ColumnAttr
	}

	// ColumnPosition FIRST or AFTER col of ALTER TABLE ADD, CHANGE, MODIFY.
	ColumnPosition struct {
		First bool
		After string
	}
)

const (
	AttrNotNull ColumnAttrKind = iota
	AttrNull
	AttrDefault
	AttrAutoIncrement
	AttrPrimaryKey
	AttrUniqueKey
	AttrComment
	AttrCharacterSet
	AttrCollate
	AttrOnUpdate
	AttrVisible
	AttrInvisible
	AttrGenerated
	AttrColumnFormat
	AttrStorage
)

func (m *DataType) String() string { return render(m, 0) }
func (m *DataType) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString(m.Name)
	switch {
	case len(m.Values) > 0:
		buf.WriteByte('(')
		for i, v := range m.Values {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteLiteral(v)
		}
		buf.WriteByte(')')
	case len(m.Args) > 0:
		buf.WriteByte('(')
		for i, a := range m.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.Itoa(a))
		}
		buf.WriteByte(')')
	}
	if m.Unsigned {
		buf.WriteString(" UNSIGNED")
	}
	if m.Zerofill {
		buf.WriteString(" ZEROFILL")
	}
	if m.Binary {
		buf.WriteString(" BINARY")
	}
}

func (m *ColumnAttr) String() string { return render(m, 0) }
func (m *ColumnAttr) writeBuf(buf *expr.DialectWriter, fr rune) {
	switch m.Kind {
	case AttrNotNull:
		buf.WriteString("NOT NULL")
	case AttrNull:
		buf.WriteString("NULL")
	case AttrDefault:
		buf.WriteString("DEFAULT ")
		writeDefault(buf, fr, m.Value)
	case AttrAutoIncrement:
		buf.WriteString("AUTO_INCREMENT")
	case AttrPrimaryKey:
		buf.WriteString("PRIMARY KEY")
	case AttrUniqueKey:
		buf.WriteString("UNIQUE KEY")
	case AttrComment:
		buf.WriteString("COMMENT ")
		writeString(buf, fr, m.Text)
	case AttrCharacterSet:
		buf.WriteString("CHARACTER SET ")
		writeIdent(buf, fr, m.Text)
	case AttrCollate:
		buf.WriteString("COLLATE ")
		writeIdent(buf, fr, m.Text)
	case AttrOnUpdate:
		buf.WriteString("ON UPDATE ")
		writeDefault(buf, fr, m.Value)
	case AttrVisible:
		buf.WriteString("VISIBLE")
	case AttrInvisible:
		buf.WriteString("INVISIBLE")
	case AttrGenerated:
		buf.WriteString("GENERATED ALWAYS AS (")
		writeNode(buf, fr, m.Value)
		buf.WriteByte(')')
		if m.Text != "" {
			buf.WriteByte(' ')
			buf.WriteString(m.Text)
		}
	case AttrColumnFormat:
		buf.WriteString("COLUMN_FORMAT ")
		buf.WriteString(m.Text)
	case AttrStorage:
		buf.WriteString("STORAGE ")
		buf.WriteString(m.Text)
	}
}

// writeDefault writes a DEFAULT value; anything but a literal is
// parenthesised, DEFAULT (uuid()).
func writeDefault(buf *expr.DialectWriter, fr rune, n expr.Node) {
	if expr.IsLiteral(n) {
		writeNode(buf, fr, n)
		return
	}
	buf.WriteByte('(')
	writeNode(buf, fr, n)
	buf.WriteByte(')')
}

func (m *ColumnDef) String() string  { return render(m, 0) }
func (m *ColumnDef) isTableElement() {}
func (m *ColumnDef) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeIdent(buf, fr, m.Name)
	buf.WriteByte(' ')
	m.Type.writeBuf(buf, fr)
	for _, attr := range m.Attrs {
		buf.WriteByte(' ')
		attr.writeBuf(buf, fr)
	}
}

// Attr is the first attribute of kind, nil if there is none.
func (m *ColumnDef) Attr(kind ColumnAttrKind) *ColumnAttr {
	for _, attr := range m.Attrs {
		if attr.Kind == kind {
			return attr
		}
	}
	return nil
}

// Nullable is NULL allowed; no NOT NULL or PRIMARY KEY attribute.
func (m *ColumnDef) Nullable() bool {
	return m.Attr(AttrNotNull) == nil && m.Attr(AttrPrimaryKey) == nil
}

func (m *ColumnPosition) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m == nil {
		return
	}
	if m.First {
		buf.WriteString(" FIRST")
		return
	}
	buf.WriteString(" AFTER ")
	writeIdent(buf, fr, m.After)
}

// Indexes and constraints --------------------------------------------------

type (
	// TableElement is one entry of the CREATE TABLE definition list; a
	// *ColumnDef, *IndexDef, *ForeignKeyDef or *CheckDef.
	TableElement interface {
		String() string
		isTableElement()
		writeBuf(buf *expr.DialectWriter, fr rune)
	}

	// KeyPart is one column of an index, col[(len)] [DESC], or a functional
	// key part, (expr) [DESC].
	KeyPart struct {
		Column    string
		Length    int
		Expr      expr.Node
		Direction Direction
	}

	// IndexOptionKind identifies an index option.
	IndexOptionKind uint8

	// IndexOption is one trailing index option.  Value is the block size,
	// index type (BTREE, HASH), parser name, comment or engine attribute.
	IndexOption struct {
		Kind  IndexOptionKind
		Value string
	}

	// IndexKind is the kind of key an IndexDef declares.
	IndexKind uint8

	// IndexDef is a key declared in a table definition.
	//
	//	[CONSTRAINT [sym]] PRIMARY KEY [USING type] (key_part, ...) [option ...]
	//	[CONSTRAINT [sym]] UNIQUE [KEY] [name] [USING type] (key_part, ...) ...
	//	{INDEX | KEY} [name] [USING type] (key_part, ...) ...
	//	{FULLTEXT | SPATIAL} [KEY] [name] (key_part, ...) ...
	IndexDef struct {
		Kind       IndexKind
		Constraint string
		Name       string
		Using      string
		Parts      []*KeyPart
		Options    []*IndexOption
	}

	// Reference REFERENCES t (key_part, ...) [MATCH m] [ON DELETE r]
	// [ON UPDATE r].  OnDelete and OnUpdate are RESTRICT, CASCADE, SET NULL,
	// NO ACTION or SET DEFAULT; empty when not given.
	Reference struct {
		Table    *Table
		Parts    []*KeyPart
		Match    string
		OnDelete string
		OnUpdate string
	}

	// ForeignKeyDef [CONSTRAINT [sym]] FOREIGN KEY [name] (col, ...) reference
	ForeignKeyDef struct {
		Constraint string
		Name       string
		Columns    []string
		Reference  *Reference
	}

	// CheckDef [CONSTRAINT [sym]] CHECK (expr) [[NOT] ENFORCED].  Enforced
	// is nil when neither was written.
	CheckDef struct {
		Constraint string
		Expr       expr.Node
		Enforced   *bool
	}
)

const (
	OptKeyBlockSize IndexOptionKind = iota
	OptIndexType
	OptWithParser
	OptComment
	OptVisible
	OptInvisible
	OptEngineAttribute
	OptSecondaryEngineAttribute
)

const (
	IndexPlain IndexKind = iota
	IndexPrimary
	IndexUnique
	IndexFulltext
	IndexSpatial
)

var indexKindNames = []string{
	IndexPlain:    "KEY",
	IndexPrimary:  "PRIMARY KEY",
	IndexUnique:   "UNIQUE KEY",
	IndexFulltext: "FULLTEXT KEY",
	IndexSpatial:  "SPATIAL KEY",
}

func (k IndexKind) String() string {
	if int(k) < len(indexKindNames) {
		return indexKindNames[k]
	}
	return "KEY"
}

func (m *KeyPart) String() string { return render(m, 0) }
func (m *KeyPart) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m.Expr != nil {
		buf.WriteByte('(')
		writeNode(buf, fr, m.Expr)
		buf.WriteByte(')')
	} else {
		writeIdent(buf, fr, m.Column)
		if m.Length > 0 {
			buf.WriteByte('(')
			buf.WriteString(strconv.Itoa(m.Length))
			buf.WriteByte(')')
		}
	}
	if m.Direction == Desc {
		buf.WriteString(" DESC")
	}
}

func writeKeyParts(buf *expr.DialectWriter, fr rune, parts []*KeyPart) {
	buf.WriteByte('(')
	for i, p := range parts {
		if i > 0 {
			buf.WriteString(", ")
		}
		p.writeBuf(buf, fr)
	}
	buf.WriteByte(')')
}

func (m *IndexOption) String() string { return render(m, 0) }
func (m *IndexOption) writeBuf(buf *expr.DialectWriter, fr rune) {
	switch m.Kind {
	case OptKeyBlockSize:
		buf.WriteString("KEY_BLOCK_SIZE=")
		buf.WriteString(m.Value)
	case OptIndexType:
		buf.WriteString("USING ")
		buf.WriteString(m.Value)
	case OptWithParser:
		buf.WriteString("WITH PARSER ")
		writeIdent(buf, fr, m.Value)
	case OptComment:
		buf.WriteString("COMMENT ")
		writeString(buf, fr, m.Value)
	case OptVisible:
		buf.WriteString("VISIBLE")
	case OptInvisible:
		buf.WriteString("INVISIBLE")
	case OptEngineAttribute:
		buf.WriteString("ENGINE_ATTRIBUTE=")
		writeString(buf, fr, m.Value)
	case OptSecondaryEngineAttribute:
		buf.WriteString("SECONDARY_ENGINE_ATTRIBUTE=")
		writeString(buf, fr, m.Value)
	}
}

func writeIndexOptions(buf *expr.DialectWriter, fr rune, opts []*IndexOption) {
	for _, o := range opts {
		buf.WriteByte(' ')
		o.writeBuf(buf, fr)
	}
}

func writeConstraint(buf *expr.DialectWriter, fr rune, sym string) {
	if sym != "" {
		buf.WriteString("CONSTRAINT ")
		writeIdent(buf, fr, sym)
		buf.WriteByte(' ')
	}
}

func (m *IndexDef) String() string  { return render(m, 0) }
func (m *IndexDef) isTableElement() {}
func (m *IndexDef) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeConstraint(buf, fr, m.Constraint)
	buf.WriteString(m.Kind.String())
	if m.Name != "" {
		buf.WriteByte(' ')
		writeIdent(buf, fr, m.Name)
	}
	if m.Using != "" {
		buf.WriteString(" USING ")
		buf.WriteString(m.Using)
	}
	buf.WriteByte(' ')
	writeKeyParts(buf, fr, m.Parts)
	writeIndexOptions(buf, fr, m.Options)
}

func (m *Reference) String() string { return render(m, 0) }
func (m *Reference) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("REFERENCES ")
	m.Table.writeBuf(buf, fr)
	buf.WriteByte(' ')
	writeKeyParts(buf, fr, m.Parts)
	if m.Match != "" {
		buf.WriteString(" MATCH ")
		buf.WriteString(m.Match)
	}
	if m.OnDelete != "" {
		buf.WriteString(" ON DELETE ")
		buf.WriteString(m.OnDelete)
	}
	if m.OnUpdate != "" {
		buf.WriteString(" ON UPDATE ")
		buf.WriteString(m.OnUpdate)
	}
}

func (m *ForeignKeyDef) String() string  { return render(m, 0) }
func (m *ForeignKeyDef) isTableElement() {}
func (m *ForeignKeyDef) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeConstraint(buf, fr, m.Constraint)
	buf.WriteString("FOREIGN KEY ")
	if m.Name != "" {
		writeIdent(buf, fr, m.Name)
		buf.WriteByte(' ')
	}
	buf.WriteByte('(')
	writeIdents(buf, fr, m.Columns)
	buf.WriteString(") ")
	m.Reference.writeBuf(buf, fr)
}

func (m *CheckDef) String() string  { return render(m, 0) }
func (m *CheckDef) isTableElement() {}
func (m *CheckDef) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeConstraint(buf, fr, m.Constraint)
	buf.WriteString("CHECK (")
	writeNode(buf, fr, m.Expr)
	buf.WriteByte(')')
	writeEnforced(buf, m.Enforced)
}

func writeEnforced(buf *expr.DialectWriter, enforced *bool) {
	switch {
	case enforced == nil:
	case *enforced:
		buf.WriteString(" ENFORCED")
	default:
		buf.WriteString(" NOT ENFORCED")
	}
}

// TableOption is one NAME=value option of a table or database.  Name is
// the canonical upper case option name (ENGINE, CHARACTER SET, DATA
// DIRECTORY ...), Value the canonical text of the value: a quoted string,
// a number or a name.  Options the parser has no grammar for are kept the
// same way, so any well formed NAME [=] value option round trips.
type TableOption struct {
	Name  string
	Value string
}

// Value-less options, written as just their name.
var bareTableOptions = map[string]bool{
	"START TRANSACTION": true,
}

func (m *TableOption) String() string { return render(m, 0) }
func (m *TableOption) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString(m.Name)
	if bareTableOptions[m.Name] {
		return
	}
	buf.WriteByte('=')
	buf.WriteString(m.Value)
}

func writeTableOptions(buf *expr.DialectWriter, fr rune, opts []*TableOption) {
	for i, o := range opts {
		if i > 0 {
			buf.WriteByte(' ')
		}
		o.writeBuf(buf, fr)
	}
}

// Create -----------------------------------------------------------------

type (
	// SqlCreateTable CREATE [TEMPORARY] TABLE [IF NOT EXISTS] t followed by
	// either a definition list and options, LIKE other, or a query.
	//
	//	CREATE TABLE t (id INT NOT NULL, PRIMARY KEY (id)) ENGINE=InnoDB
	//	CREATE TABLE t2 LIKE t
	//	CREATE TABLE t3 AS SELECT * FROM t
	SqlCreateTable struct {
		Temporary   bool
		IfNotExists bool
		Table       *Table
		Elements    []TableElement
		Options     []*TableOption
		Like        *Table
		// Partition is the canonical text after PARTITION BY, uninterpreted
		Partition string
		// Duplicates is IGNORE or REPLACE for CREATE ... SELECT
		Duplicates string
		Select     Query
	}

	// SqlCreateIndex CREATE [UNIQUE|FULLTEXT|SPATIAL] INDEX name [USING type]
	// ON t (key_part, ...) [option ...] [ALGORITHM=a] [LOCK=l]
	SqlCreateIndex struct {
		Kind      IndexKind
		Name      string
		Using     string
		Table     *Table
		Parts     []*KeyPart
		Options   []*IndexOption
		Algorithm string
		Lock      string
	}

	// SqlCreateView CREATE [OR REPLACE] VIEW v [(col, ...)] AS query
	SqlCreateView struct {
		OrReplace bool
		View      *Table
		Columns   []string
		Select    Query
	}
)

func (m *SqlCreateTable) Keyword() lex.TokenType    { return lex.TokenCreate }
func (m *SqlCreateTable) String() string            { return render(m, 0) }
func (m *SqlCreateTable) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlCreateTable) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlCreateTable) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("CREATE ")
	if m.Temporary {
		buf.WriteString("TEMPORARY ")
	}
	buf.WriteString("TABLE ")
	if m.IfNotExists {
		buf.WriteString("IF NOT EXISTS ")
	}
	m.Table.writeBuf(buf, fr)
	if m.Like != nil {
		buf.WriteString(" LIKE ")
		m.Like.writeBuf(buf, fr)
		return
	}
	if len(m.Elements) > 0 {
		buf.WriteString(" (")
		for i, el := range m.Elements {
			if i > 0 {
				buf.WriteString(", ")
			}
			el.writeBuf(buf, fr)
		}
		buf.WriteByte(')')
	}
	if len(m.Options) > 0 {
		buf.WriteByte(' ')
		writeTableOptions(buf, fr, m.Options)
	}
	if m.Partition != "" {
		buf.WriteString(" PARTITION BY ")
		buf.WriteString(m.Partition)
	}
	if m.Select != nil {
		if m.Duplicates != "" {
			buf.WriteByte(' ')
			buf.WriteString(m.Duplicates)
		}
		buf.WriteString(" AS ")
		m.Select.writeBuf(buf, fr)
	}
}

// Columns are the column definitions, in order.
func (m *SqlCreateTable) Columns() []*ColumnDef {
	var cols []*ColumnDef
	for _, el := range m.Elements {
		if col, ok := el.(*ColumnDef); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// Option is the value of the named table option, case-insensitive.
func (m *SqlCreateTable) Option(name string) (string, bool) {
	for _, o := range m.Options {
		if strings.EqualFold(o.Name, name) {
			return o.Value, true
		}
	}
	return "", false
}

func (m *SqlCreateIndex) Keyword() lex.TokenType    { return lex.TokenCreate }
func (m *SqlCreateIndex) String() string            { return render(m, 0) }
func (m *SqlCreateIndex) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlCreateIndex) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlCreateIndex) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("CREATE ")
	switch m.Kind {
	case IndexUnique:
		buf.WriteString("UNIQUE ")
	case IndexFulltext:
		buf.WriteString("FULLTEXT ")
	case IndexSpatial:
		buf.WriteString("SPATIAL ")
	}
	buf.WriteString("INDEX ")
	writeIdent(buf, fr, m.Name)
	if m.Using != "" {
		buf.WriteString(" USING ")
		buf.WriteString(m.Using)
	}
	buf.WriteString(" ON ")
	m.Table.writeBuf(buf, fr)
	buf.WriteByte(' ')
	writeKeyParts(buf, fr, m.Parts)
	writeIndexOptions(buf, fr, m.Options)
	writeAlgorithmLock(buf, m.Algorithm, m.Lock)
}

func writeAlgorithmLock(buf *expr.DialectWriter, algorithm, lock string) {
	if algorithm != "" {
		buf.WriteString(" ALGORITHM=")
		buf.WriteString(algorithm)
	}
	if lock != "" {
		buf.WriteString(" LOCK=")
		buf.WriteString(lock)
	}
}

func (m *SqlCreateView) Keyword() lex.TokenType    { return lex.TokenCreate }
func (m *SqlCreateView) String() string            { return render(m, 0) }
func (m *SqlCreateView) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlCreateView) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlCreateView) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("CREATE ")
	if m.OrReplace {
		buf.WriteString("OR REPLACE ")
	}
	buf.WriteString("VIEW ")
	m.View.writeBuf(buf, fr)
	if len(m.Columns) > 0 {
		buf.WriteString(" (")
		writeIdents(buf, fr, m.Columns)
		buf.WriteByte(')')
	}
	buf.WriteString(" AS ")
	m.Select.writeBuf(buf, fr)
}

// Alter ------------------------------------------------------------------

type (
	// SqlAlterTable ALTER TABLE t action [, action] ...
	SqlAlterTable struct {
		Table   *Table
		Actions []AlterAction
	}

	// SqlAlterDatabase ALTER {DATABASE | SCHEMA} [name] option ...  Options
	// are CHARACTER SET, COLLATE, ENCRYPTION and READ ONLY.
	SqlAlterDatabase struct {
		Name    string
		Options []*TableOption
	}
)

func (m *SqlAlterTable) Keyword() lex.TokenType    { return lex.TokenAlter }
func (m *SqlAlterTable) String() string            { return render(m, 0) }
func (m *SqlAlterTable) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlAlterTable) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlAlterTable) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("ALTER TABLE ")
	m.Table.writeBuf(buf, fr)
	for i, a := range m.Actions {
		if i == 0 {
			buf.WriteByte(' ')
		} else {
			buf.WriteString(", ")
		}
		a.writeBuf(buf, fr)
	}
}

func (m *SqlAlterDatabase) Keyword() lex.TokenType    { return lex.TokenAlter }
func (m *SqlAlterDatabase) String() string            { return render(m, 0) }
func (m *SqlAlterDatabase) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlAlterDatabase) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlAlterDatabase) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("ALTER DATABASE ")
	if m.Name != "" {
		writeTableIdent(buf, fr, m.Name)
		buf.WriteByte(' ')
	}
	writeTableOptions(buf, fr, m.Options)
}

// Rename, truncate ---------------------------------------------------------

type (
	// RenamePair is one old TO new of RENAME TABLE.
	RenamePair struct {
		From *Table
		To   *Table
	}

	// SqlRenameTable RENAME TABLE a TO b [, c TO d] ...
	SqlRenameTable struct {
		Pairs []*RenamePair
	}

	// SqlTruncate TRUNCATE [TABLE] t
	SqlTruncate struct {
		Table *Table
	}
)

func (m *SqlRenameTable) Keyword() lex.TokenType    { return lex.TokenRename }
func (m *SqlRenameTable) String() string            { return render(m, 0) }
func (m *SqlRenameTable) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlRenameTable) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlRenameTable) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("RENAME TABLE ")
	for i, p := range m.Pairs {
		if i > 0 {
			buf.WriteString(", ")
		}
		p.From.writeBuf(buf, fr)
		buf.WriteString(" TO ")
		p.To.writeBuf(buf, fr)
	}
}

func (m *SqlTruncate) Keyword() lex.TokenType    { return lex.TokenTruncate }
func (m *SqlTruncate) String() string            { return render(m, 0) }
func (m *SqlTruncate) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlTruncate) FingerPrintID() uint64     { return fingerPrintID(m) }

func (m *SqlTruncate) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("TRUNCATE TABLE ")
	m.Table.writeBuf(buf, fr)
}
