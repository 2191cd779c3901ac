package rel

import (
	"strings"

	"github.com/araddon/sqlparse/expr"
)

var (
	_ AlterAction = (*AlterAddColumn)(nil)
	_ AlterAction = (*AlterAddDefinition)(nil)
	_ AlterAction = (*AlterDrop)(nil)
	_ AlterAction = (*AlterEnforcement)(nil)
	_ AlterAction = (*AlterColumn)(nil)
	_ AlterAction = (*AlterIndexVisibility)(nil)
	_ AlterAction = (*AlterChangeColumn)(nil)
	_ AlterAction = (*AlterModifyColumn)(nil)
	_ AlterAction = (*AlterConvert)(nil)
	_ AlterAction = (*AlterRename)(nil)
	_ AlterAction = (*AlterRenameTable)(nil)
	_ AlterAction = (*AlterOrderBy)(nil)
	_ AlterAction = (*AlterKeyword)(nil)
	_ AlterAction = (*AlterOption)(nil)
	_ AlterAction = (*AlterTableOptions)(nil)
)

// AlterAction is one comma separated action of ALTER TABLE.  The set is
// closed, every implementation lives in this package.
type AlterAction interface {
	String() string
	isAlterAction()
	writeBuf(buf *expr.DialectWriter, fr rune)
}

type (
	// AlterAddColumn ADD [COLUMN] def [FIRST | AFTER col], or
	// ADD [COLUMN] (def, ...) when Parenthesized.
	AlterAddColumn struct {
		Columns       []*ColumnDef
		Parenthesized bool
		Position      *ColumnPosition
	}

	// AlterAddDefinition ADD of an index, key, foreign key or check
	// constraint.
	AlterAddDefinition struct {
		Definition TableElement
	}

	// DropKind is the kind of object an AlterDrop removes.
	DropKind uint8

	// AlterDrop DROP [COLUMN] c, DROP {INDEX|KEY} i, DROP PRIMARY KEY,
	// DROP FOREIGN KEY f, DROP CHECK c, DROP CONSTRAINT c.  Name is empty for
	// the primary key.
	AlterDrop struct {
		Kind DropKind
		Name string
	}

	// AlterEnforcement ALTER {CHECK | CONSTRAINT} sym [NOT] ENFORCED
	AlterEnforcement struct {
		Constraint bool
		Name       string
		Enforced   bool
	}

	// AlterColumnOp is the change made by an AlterColumn action.
	AlterColumnOp uint8

	// AlterColumn ALTER [COLUMN] c {SET DEFAULT v | DROP DEFAULT |
	// SET VISIBLE | SET INVISIBLE}
	AlterColumn struct {
		Column string
		Op     AlterColumnOp
		Value  expr.Node
	}

	// AlterIndexVisibility ALTER INDEX i {VISIBLE | INVISIBLE}
	AlterIndexVisibility struct {
		Index   string
		Visible bool
	}

	// AlterChangeColumn CHANGE [COLUMN] old def [FIRST | AFTER col]
	AlterChangeColumn struct {
		Old      string
		Column   *ColumnDef
		Position *ColumnPosition
	}

	// AlterModifyColumn MODIFY [COLUMN] def [FIRST | AFTER col]
	AlterModifyColumn struct {
		Column   *ColumnDef
		Position *ColumnPosition
	}

	// AlterConvert CONVERT TO CHARACTER SET cs [COLLATE c]
	AlterConvert struct {
		Charset string
		Collate string
	}

	// AlterRename RENAME COLUMN a TO b, or with Index, RENAME {INDEX|KEY} a TO b
	AlterRename struct {
		Index bool
		Old   string
		New   string
	}

	// AlterRenameTable RENAME [TO | AS] t
	AlterRenameTable struct {
		To *Table
	}

	// AlterOrderBy ORDER BY col, ...
	AlterOrderBy struct {
		Columns []string
	}

	// AlterKeyword is an action written as fixed words only; ENABLE KEYS,
	// DISABLE KEYS, DISCARD TABLESPACE, IMPORT TABLESPACE, FORCE,
	// WITH VALIDATION, WITHOUT VALIDATION.  Text is the upper case words.
	AlterKeyword struct {
		Text string
	}

	// AlterOption ALGORITHM [=] a or LOCK [=] l
	AlterOption struct {
		Name  string
		Value string
	}

	// AlterTableOptions is one or more table options as an action.
	AlterTableOptions struct {
		Options []*TableOption
	}
)

const (
	DropColumn DropKind = iota
	DropIndex
	DropPrimaryKey
	DropForeignKey
	DropCheck
	DropConstraint
)

var dropKindNames = []string{
	DropColumn:     "COLUMN",
	DropIndex:      "INDEX",
	DropPrimaryKey: "PRIMARY KEY",
	DropForeignKey: "FOREIGN KEY",
	DropCheck:      "CHECK",
	DropConstraint: "CONSTRAINT",
}

func (k DropKind) String() string {
	if int(k) < len(dropKindNames) {
		return dropKindNames[k]
	}
	return ""
}

const (
	SetDefault AlterColumnOp = iota
	DropDefault
	SetVisible
	SetInvisible
)

// Keyword actions, first word to the word that must follow it.
var alterKeywords = map[string]string{
	"ENABLE":  "KEYS",
	"DISABLE": "KEYS",
	"DISCARD": "TABLESPACE",
	"IMPORT":  "TABLESPACE",
	"FORCE":   "",
	"WITH":    "VALIDATION",
	"WITHOUT": "VALIDATION",
}

func (m *AlterAddColumn) String() string { return render(m, 0) }
func (m *AlterAddColumn) isAlterAction() {}
func (m *AlterAddColumn) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("ADD COLUMN ")
	if m.Parenthesized {
		buf.WriteByte('(')
	}
	for i, col := range m.Columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		col.writeBuf(buf, fr)
	}
	if m.Parenthesized {
		buf.WriteByte(')')
	}
	m.Position.writeBuf(buf, fr)
}

func (m *AlterAddDefinition) String() string { return render(m, 0) }
func (m *AlterAddDefinition) isAlterAction() {}
func (m *AlterAddDefinition) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("ADD ")
	m.Definition.writeBuf(buf, fr)
}

func (m *AlterDrop) String() string { return render(m, 0) }
func (m *AlterDrop) isAlterAction() {}
func (m *AlterDrop) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("DROP ")
	buf.WriteString(m.Kind.String())
	if m.Kind != DropPrimaryKey {
		buf.WriteByte(' ')
		writeIdent(buf, fr, m.Name)
	}
}

func (m *AlterEnforcement) String() string { return render(m, 0) }
func (m *AlterEnforcement) isAlterAction() {}
func (m *AlterEnforcement) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m.Constraint {
		buf.WriteString("ALTER CONSTRAINT ")
	} else {
		buf.WriteString("ALTER CHECK ")
	}
	writeIdent(buf, fr, m.Name)
	writeEnforced(buf, &m.Enforced)
}

func (m *AlterColumn) String() string { return render(m, 0) }
func (m *AlterColumn) isAlterAction() {}
func (m *AlterColumn) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("ALTER COLUMN ")
	writeIdent(buf, fr, m.Column)
	switch m.Op {
	case SetDefault:
		buf.WriteString(" SET DEFAULT ")
		writeDefault(buf, fr, m.Value)
	case DropDefault:
		buf.WriteString(" DROP DEFAULT")
	case SetVisible:
		buf.WriteString(" SET VISIBLE")
	case SetInvisible:
		buf.WriteString(" SET INVISIBLE")
	}
}

func (m *AlterIndexVisibility) String() string { return render(m, 0) }
func (m *AlterIndexVisibility) isAlterAction() {}
func (m *AlterIndexVisibility) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("ALTER INDEX ")
	writeIdent(buf, fr, m.Index)
	if m.Visible {
		buf.WriteString(" VISIBLE")
	} else {
		buf.WriteString(" INVISIBLE")
	}
}

func (m *AlterChangeColumn) String() string { return render(m, 0) }
func (m *AlterChangeColumn) isAlterAction() {}
func (m *AlterChangeColumn) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("CHANGE COLUMN ")
	writeIdent(buf, fr, m.Old)
	buf.WriteByte(' ')
	m.Column.writeBuf(buf, fr)
	m.Position.writeBuf(buf, fr)
}

func (m *AlterModifyColumn) String() string { return render(m, 0) }
func (m *AlterModifyColumn) isAlterAction() {}
func (m *AlterModifyColumn) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("MODIFY COLUMN ")
	m.Column.writeBuf(buf, fr)
	m.Position.writeBuf(buf, fr)
}

func (m *AlterConvert) String() string { return render(m, 0) }
func (m *AlterConvert) isAlterAction() {}
func (m *AlterConvert) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("CONVERT TO CHARACTER SET ")
	writeIdent(buf, fr, m.Charset)
	if m.Collate != "" {
		buf.WriteString(" COLLATE ")
		writeIdent(buf, fr, m.Collate)
	}
}

func (m *AlterRename) String() string { return render(m, 0) }
func (m *AlterRename) isAlterAction() {}
func (m *AlterRename) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m.Index {
		buf.WriteString("RENAME INDEX ")
	} else {
		buf.WriteString("RENAME COLUMN ")
	}
	writeIdent(buf, fr, m.Old)
	buf.WriteString(" TO ")
	writeIdent(buf, fr, m.New)
}

func (m *AlterRenameTable) String() string { return render(m, 0) }
func (m *AlterRenameTable) isAlterAction() {}
func (m *AlterRenameTable) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("RENAME TO ")
	m.To.writeBuf(buf, fr)
}

func (m *AlterOrderBy) String() string { return render(m, 0) }
func (m *AlterOrderBy) isAlterAction() {}
func (m *AlterOrderBy) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString("ORDER BY ")
	writeIdents(buf, fr, m.Columns)
}

func (m *AlterKeyword) String() string                      { return m.Text }
func (m *AlterKeyword) isAlterAction()                      {}
func (m *AlterKeyword) writeBuf(buf *expr.DialectWriter, fr rune) { buf.WriteString(m.Text) }

func (m *AlterOption) String() string { return render(m, 0) }
func (m *AlterOption) isAlterAction() {}
func (m *AlterOption) writeBuf(buf *expr.DialectWriter, fr rune) {
	buf.WriteString(m.Name)
	buf.WriteByte('=')
	buf.WriteString(strings.ToUpper(m.Value))
}

func (m *AlterTableOptions) String() string { return render(m, 0) }
func (m *AlterTableOptions) isAlterAction() {}
func (m *AlterTableOptions) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeTableOptions(buf, fr, m.Options)
}
