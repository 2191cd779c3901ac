package rel

import (
	"strconv"

	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

var (
	_ Statement = (*SqlDropDatabase)(nil)
	_ Statement = (*SqlDropEvent)(nil)
	_ Statement = (*SqlDropRoutine)(nil)
	_ Statement = (*SqlDropIndex)(nil)
	_ Statement = (*SqlDropLogfileGroup)(nil)
	_ Statement = (*SqlDropServer)(nil)
	_ Statement = (*SqlDropSpatialReferenceSystem)(nil)
	_ Statement = (*SqlDropTable)(nil)
	_ Statement = (*SqlDropTablespace)(nil)
	_ Statement = (*SqlDropTrigger)(nil)
	_ Statement = (*SqlDropView)(nil)
)

type (
	// SqlDropDatabase DROP {DATABASE | SCHEMA} [IF EXISTS] db
	SqlDropDatabase struct {
		IfExists bool
		Name     string
	}

	// SqlDropEvent DROP EVENT [IF EXISTS] [schema.]event
	SqlDropEvent struct {
		IfExists bool
		Name     *Table
	}

	// RoutineKind PROCEDURE or FUNCTION
	RoutineKind uint8

	// SqlDropRoutine DROP {PROCEDURE | FUNCTION} [IF EXISTS] [schema.]name
	SqlDropRoutine struct {
		Kind     RoutineKind
		IfExists bool
		Name     *Table
	}

	// SqlDropIndex DROP INDEX i ON t [ALGORITHM [=] a] [LOCK [=] l]
	SqlDropIndex struct {
		Name      string
		Table     *Table
		Algorithm string
		Lock      string
	}

	// SqlDropLogfileGroup DROP LOGFILE GROUP g ENGINE [=] e
	SqlDropLogfileGroup struct {
		Name   string
		Engine string
	}

	// SqlDropServer DROP SERVER [IF EXISTS] s
	SqlDropServer struct {
		IfExists bool
		Name     string
	}

	// SqlDropSpatialReferenceSystem DROP SPATIAL REFERENCE SYSTEM
	// [IF EXISTS] srid
	SqlDropSpatialReferenceSystem struct {
		IfExists bool
		Srid     uint32
	}

	// SqlDropTable DROP [TEMPORARY] TABLE [IF EXISTS] t [, t] ...
	// [RESTRICT | CASCADE]
	SqlDropTable struct {
		Temporary bool
		IfExists  bool
		Tables    []*Table
		// Option is RESTRICT, CASCADE or empty.
		Option string
	}

	// SqlDropTablespace DROP [UNDO] TABLESPACE ts [ENGINE [=] e]
	SqlDropTablespace struct {
		Undo   bool
		Name   string
		Engine string
	}

	// SqlDropTrigger DROP TRIGGER [IF EXISTS] [schema.]trigger
	SqlDropTrigger struct {
		IfExists bool
		Name     *Table
	}

	// SqlDropView DROP VIEW [IF EXISTS] v [, v] ... [RESTRICT | CASCADE]
	SqlDropView struct {
		IfExists bool
		Views    []*Table
		Option   string
	}
)

const (
	RoutineProcedure RoutineKind = iota
	RoutineFunction
)

func (k RoutineKind) String() string {
	if k == RoutineFunction {
		return "FUNCTION"
	}
	return "PROCEDURE"
}

func writeDrop(buf *expr.DialectWriter, what string, ifExists bool) {
	buf.WriteString("DROP ")
	buf.WriteString(what)
	if ifExists {
		buf.WriteString(" IF EXISTS")
	}
	buf.WriteByte(' ')
}

func writeEngine(buf *expr.DialectWriter, fr rune, engine string) {
	if engine != "" {
		buf.WriteString(" ENGINE=")
		writeIdent(buf, fr, engine)
	}
}

func (m *SqlDropDatabase) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropDatabase) String() string            { return render(m, 0) }
func (m *SqlDropDatabase) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropDatabase) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropDatabase) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, "DATABASE", m.IfExists)
	writeTableIdent(buf, fr, m.Name)
}

func (m *SqlDropEvent) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropEvent) String() string            { return render(m, 0) }
func (m *SqlDropEvent) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropEvent) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropEvent) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, "EVENT", m.IfExists)
	m.Name.writeBuf(buf, fr)
}

func (m *SqlDropRoutine) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropRoutine) String() string            { return render(m, 0) }
func (m *SqlDropRoutine) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropRoutine) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropRoutine) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, m.Kind.String(), m.IfExists)
	m.Name.writeBuf(buf, fr)
}

func (m *SqlDropIndex) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropIndex) String() string            { return render(m, 0) }
func (m *SqlDropIndex) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropIndex) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropIndex) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, "INDEX", false)
	writeIdent(buf, fr, m.Name)
	buf.WriteString(" ON ")
	m.Table.writeBuf(buf, fr)
	writeAlgorithmLock(buf, m.Algorithm, m.Lock)
}

func (m *SqlDropLogfileGroup) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropLogfileGroup) String() string            { return render(m, 0) }
func (m *SqlDropLogfileGroup) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropLogfileGroup) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropLogfileGroup) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, "LOGFILE GROUP", false)
	writeIdent(buf, fr, m.Name)
	writeEngine(buf, fr, m.Engine)
}

func (m *SqlDropServer) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropServer) String() string            { return render(m, 0) }
func (m *SqlDropServer) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropServer) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropServer) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, "SERVER", m.IfExists)
	writeIdent(buf, fr, m.Name)
}

func (m *SqlDropSpatialReferenceSystem) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropSpatialReferenceSystem) String() string            { return render(m, 0) }
func (m *SqlDropSpatialReferenceSystem) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropSpatialReferenceSystem) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropSpatialReferenceSystem) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, "SPATIAL REFERENCE SYSTEM", m.IfExists)
	if fr != 0 {
		buf.WriteRune(fr)
		return
	}
	buf.WriteString(strconv.FormatUint(uint64(m.Srid), 10))
}

func (m *SqlDropTable) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropTable) String() string            { return render(m, 0) }
func (m *SqlDropTable) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropTable) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropTable) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m.Temporary {
		writeDrop(buf, "TEMPORARY TABLE", m.IfExists)
	} else {
		writeDrop(buf, "TABLE", m.IfExists)
	}
	writeTables(buf, fr, m.Tables)
	if m.Option != "" {
		buf.WriteByte(' ')
		buf.WriteString(m.Option)
	}
}

func (m *SqlDropTablespace) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropTablespace) String() string            { return render(m, 0) }
func (m *SqlDropTablespace) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropTablespace) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropTablespace) writeBuf(buf *expr.DialectWriter, fr rune) {
	if m.Undo {
		writeDrop(buf, "UNDO TABLESPACE", false)
	} else {
		writeDrop(buf, "TABLESPACE", false)
	}
	writeIdent(buf, fr, m.Name)
	writeEngine(buf, fr, m.Engine)
}

func (m *SqlDropTrigger) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropTrigger) String() string            { return render(m, 0) }
func (m *SqlDropTrigger) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropTrigger) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropTrigger) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, "TRIGGER", m.IfExists)
	m.Name.writeBuf(buf, fr)
}

func (m *SqlDropView) Keyword() lex.TokenType    { return lex.TokenDrop }
func (m *SqlDropView) String() string            { return render(m, 0) }
func (m *SqlDropView) FingerPrint(r rune) string { return render(m, r) }
func (m *SqlDropView) FingerPrintID() uint64     { return fingerPrintID(m) }
func (m *SqlDropView) writeBuf(buf *expr.DialectWriter, fr rune) {
	writeDrop(buf, "VIEW", m.IfExists)
	writeTables(buf, fr, m.Views)
	if m.Option != "" {
		buf.WriteByte(' ')
		buf.WriteString(m.Option)
	}
}
