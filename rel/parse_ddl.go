package rel

import (
	"strconv"
	"strings"

	"github.com/araddon/sqlparse/errors"
	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

// First keyword was CREATE
func (m *Sqlbridge) parseCreate() (Statement, error) {
	m.Next() // Consume Create

	switch cur := m.Cur(); {
	case cur.T == lex.TokenTable,
		cur.IsWord("TEMPORARY") && m.Peek().T == lex.TokenTable:
		return m.parseCreateTable()
	case cur.T == lex.TokenIndex:
		return m.parseCreateIndex()
	case cur.T == lex.TokenUnique, cur.T == lex.TokenFulltext, cur.T == lex.TokenSpatial:
		if m.Peek().T == lex.TokenIndex {
			return m.parseCreateIndex()
		}
	case cur.IsWord("VIEW"),
		cur.T == lex.TokenLogicOr && m.Peek().T == lex.TokenReplace:
		return m.parseCreateView()
	}
	return nil, m.unsupported(m.Cur())
}

// parseCreateTable
//
//	CREATE [TEMPORARY] TABLE [IF NOT EXISTS] t (element, ...) [option ...]
//	  [[IGNORE | REPLACE] [AS] query]
//	CREATE [TEMPORARY] TABLE [IF NOT EXISTS] t [option ...] [IGNORE | REPLACE] [AS] query
//	CREATE [TEMPORARY] TABLE [IF NOT EXISTS] t {LIKE old | (LIKE old)}
func (m *Sqlbridge) parseCreateTable() (*SqlCreateTable, error) {
	req := &SqlCreateTable{}
	req.Temporary = m.acceptWord("TEMPORARY")
	m.Next() // Consume Table

	var err error
	if req.IfNotExists, err = m.ifNotExists(); err != nil {
		return nil, err
	}
	if req.Table, err = m.tableName("table name"); err != nil {
		return nil, err
	}

	switch cur := m.Cur(); {
	case cur.T == lex.TokenLike:
		m.Next()
		if req.Like, err = m.tableName("table name"); err != nil {
			return nil, err
		}
		return req, nil
	case cur.T == lex.TokenLeftParenthesis && m.Peek().T == lex.TokenLike:
		m.Next()
		m.Next()
		if req.Like, err = m.tableName("table name"); err != nil {
			return nil, err
		}
		return req, m.expect(lex.TokenRightParenthesis, ")")
	case cur.T == lex.TokenLeftParenthesis && !m.isParenQuery():
		if req.Elements, err = m.parseTableElements(); err != nil {
			return nil, err
		}
	}

	if req.Options, err = m.parseTableOptions(true); err != nil {
		return nil, err
	}
	if m.isPartitionAt() {
		if req.Partition, err = m.parsePartition(); err != nil {
			return nil, err
		}
	}

	switch m.Cur().T {
	case lex.TokenIgnore, lex.TokenReplace:
		req.Duplicates = strings.ToUpper(m.Next().V)
	}
	asQuery := m.accept(lex.TokenAs)
	switch {
	case m.Cur().T == lex.TokenSelect, m.Cur().T == lex.TokenLeftParenthesis:
		if req.Select, err = m.parseQuery(); err != nil {
			return nil, err
		}
	case asQuery, req.Duplicates != "":
		return nil, expr.Unexpected(m, "SELECT")
	case len(req.Elements) == 0:
		return nil, expr.Unexpected(m, "(")
	}
	return req, nil
}

// parseTableElements ( element [, element] ... )
func (m *Sqlbridge) parseTableElements() ([]TableElement, error) {
	m.Next() // (
	var elements []TableElement
	for {
		el, err := m.parseTableElement()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if !m.accept(lex.TokenComma) {
			break
		}
	}
	if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
		return nil, err
	}
	return elements, nil
}

// parseTableElement a column definition, key, foreign key or check
// constraint.
func (m *Sqlbridge) parseTableElement() (TableElement, error) {
	constraint := ""
	if m.accept(lex.TokenConstraint) {
		if m.Cur().T == lex.TokenIdentity {
			sym, err := m.ident("constraint name")
			if err != nil {
				return nil, err
			}
			constraint = sym
		}
		switch m.Cur().T {
		case lex.TokenPrimary, lex.TokenUnique, lex.TokenForeign, lex.TokenCheck:
		default:
			return nil, expr.Unexpected(m, "PRIMARY, UNIQUE, FOREIGN or CHECK")
		}
	}

	switch m.Cur().T {
	case lex.TokenPrimary:
		m.Next()
		if err := m.expect(lex.TokenKey, "KEY"); err != nil {
			return nil, err
		}
		return m.parseIndexDef(&IndexDef{Kind: IndexPrimary, Constraint: constraint}, false)
	case lex.TokenUnique:
		m.Next()
		if !m.accept(lex.TokenIndex) {
			m.accept(lex.TokenKey)
		}
		return m.parseIndexDef(&IndexDef{Kind: IndexUnique, Constraint: constraint}, true)
	case lex.TokenIndex, lex.TokenKey:
		m.Next()
		return m.parseIndexDef(&IndexDef{Kind: IndexPlain}, true)
	case lex.TokenFulltext, lex.TokenSpatial:
		kind := IndexFulltext
		if m.Next().T == lex.TokenSpatial {
			kind = IndexSpatial
		}
		if !m.accept(lex.TokenIndex) {
			m.accept(lex.TokenKey)
		}
		return m.parseIndexDef(&IndexDef{Kind: kind}, true)
	case lex.TokenForeign:
		return m.parseForeignKey(constraint)
	case lex.TokenCheck:
		return m.parseCheck(constraint)
	}
	return m.parseColumnDef()
}

// parseIndexDef the rest of a key after its kind keywords,
// [name] [USING type] (key_part, ...) [option ...]
func (m *Sqlbridge) parseIndexDef(idx *IndexDef, named bool) (*IndexDef, error) {
	var err error
	if named && m.Cur().T == lex.TokenIdentity {
		if idx.Name, err = m.ident("index name"); err != nil {
			return nil, err
		}
	}
	if m.accept(lex.TokenUsing) {
		if idx.Using, err = m.indexType(); err != nil {
			return nil, err
		}
	}
	if idx.Parts, err = m.parseKeyParts(); err != nil {
		return nil, err
	}
	if idx.Options, err = m.parseIndexOptions(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (m *Sqlbridge) indexType() (string, error) {
	return m.oneOf("BTREE or HASH", "BTREE", "HASH")
}

// parseKeyParts ( col[(len)] [ASC | DESC] | (expr) [ASC | DESC], ... )
func (m *Sqlbridge) parseKeyParts() ([]*KeyPart, error) {
	if err := m.expect(lex.TokenLeftParenthesis, "("); err != nil {
		return nil, err
	}
	var parts []*KeyPart
	for {
		kp := &KeyPart{}
		if m.Cur().T == lex.TokenLeftParenthesis {
			n, err := m.parenExpression()
			if err != nil {
				return nil, err
			}
			kp.Expr = n
		} else {
			name, err := m.ident("column name")
			if err != nil {
				return nil, err
			}
			kp.Column = name
			if m.Cur().T == lex.TokenLeftParenthesis {
				m.Next()
				length, err := m.integer("key part length")
				if err != nil {
					return nil, err
				}
				kp.Length = int(length)
				if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
					return nil, err
				}
			}
		}
		switch m.Cur().T {
		case lex.TokenAsc:
			m.Next()
		case lex.TokenDesc:
			m.Next()
			kp.Direction = Desc
		}
		parts = append(parts, kp)
		if !m.accept(lex.TokenComma) {
			break
		}
	}
	if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
		return nil, err
	}
	return parts, nil
}

// parseIndexOptions any number of trailing index options
//
//	KEY_BLOCK_SIZE [=] n | USING {BTREE | HASH} | WITH PARSER p
//	| COMMENT 'text' | VISIBLE | INVISIBLE
//	| ENGINE_ATTRIBUTE [=] 'text' | SECONDARY_ENGINE_ATTRIBUTE [=] 'text'
func (m *Sqlbridge) parseIndexOptions() ([]*IndexOption, error) {
	var opts []*IndexOption
	for {
		cur := m.Cur()
		opt := &IndexOption{}
		var err error
		switch {
		case cur.IsWord("KEY_BLOCK_SIZE"):
			m.Next()
			m.accept(lex.TokenEqual)
			opt.Kind = OptKeyBlockSize
			var size int64
			if size, err = m.integer("block size"); err == nil {
				opt.Value = strconv.FormatInt(size, 10)
			}
		case cur.T == lex.TokenUsing:
			m.Next()
			opt.Kind = OptIndexType
			opt.Value, err = m.indexType()
		case cur.T == lex.TokenWith && m.Peek().IsWord("PARSER"):
			m.Next()
			m.Next()
			opt.Kind = OptWithParser
			opt.Value, err = m.ident("parser name")
		case cur.IsWord("COMMENT"):
			m.Next()
			opt.Kind = OptComment
			opt.Value, err = m.stringValue("comment string")
		case cur.IsWord("VISIBLE"):
			m.Next()
			opt.Kind = OptVisible
		case cur.IsWord("INVISIBLE"):
			m.Next()
			opt.Kind = OptInvisible
		case cur.IsWord("ENGINE_ATTRIBUTE"):
			m.Next()
			m.accept(lex.TokenEqual)
			opt.Kind = OptEngineAttribute
			opt.Value, err = m.stringValue("attribute string")
		case cur.IsWord("SECONDARY_ENGINE_ATTRIBUTE"):
			m.Next()
			m.accept(lex.TokenEqual)
			opt.Kind = OptSecondaryEngineAttribute
			opt.Value, err = m.stringValue("attribute string")
		default:
			return opts, nil
		}
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
}

// parseForeignKey FOREIGN KEY [name] (col, ...) REFERENCES ...
func (m *Sqlbridge) parseForeignKey(constraint string) (*ForeignKeyDef, error) {
	m.Next() // Consume Foreign
	if err := m.expect(lex.TokenKey, "KEY"); err != nil {
		return nil, err
	}
	fk := &ForeignKeyDef{Constraint: constraint}
	var err error
	if m.Cur().T == lex.TokenIdentity {
		if fk.Name, err = m.ident("index name"); err != nil {
			return nil, err
		}
	}
	if fk.Columns, err = m.parenIdents("column name"); err != nil {
		return nil, err
	}
	if fk.Reference, err = m.parseReference(); err != nil {
		return nil, err
	}
	return fk, nil
}

// parseReference REFERENCES t (key_part, ...) [MATCH FULL | MATCH PARTIAL |
// MATCH SIMPLE] [ON DELETE option] [ON UPDATE option]
func (m *Sqlbridge) parseReference() (*Reference, error) {
	if err := m.expect(lex.TokenReferences, "REFERENCES"); err != nil {
		return nil, err
	}
	ref := &Reference{}
	var err error
	if ref.Table, err = m.tableName("table name"); err != nil {
		return nil, err
	}
	if ref.Parts, err = m.parseKeyParts(); err != nil {
		return nil, err
	}
	if m.accept(lex.TokenMatch) {
		if ref.Match, err = m.oneOf("FULL, PARTIAL or SIMPLE", "FULL", "PARTIAL", "SIMPLE"); err != nil {
			return nil, err
		}
	}
	for m.Cur().T == lex.TokenOn {
		switch m.Peek().T {
		case lex.TokenDelete:
			m.Next()
			m.Next()
			ref.OnDelete, err = m.referenceOption()
		case lex.TokenUpdate:
			m.Next()
			m.Next()
			ref.OnUpdate, err = m.referenceOption()
		default:
			m.Next()
			return nil, expr.Unexpected(m, "DELETE or UPDATE")
		}
		if err != nil {
			return nil, err
		}
	}
	return ref, nil
}

// referenceOption RESTRICT | CASCADE | SET NULL | NO ACTION | SET DEFAULT
func (m *Sqlbridge) referenceOption() (string, error) {
	switch cur := m.Cur(); {
	case cur.T == lex.TokenRestrict, cur.T == lex.TokenCascade:
		m.Next()
		return strings.ToUpper(cur.V), nil
	case cur.T == lex.TokenSet:
		m.Next()
		w, err := m.oneOf("NULL or DEFAULT", "NULL", "DEFAULT")
		if err != nil {
			return "", err
		}
		return "SET " + w, nil
	case cur.IsWord("NO"):
		m.Next()
		if err := m.expectWord("ACTION"); err != nil {
			return "", err
		}
		return "NO ACTION", nil
	}
	return "", expr.Unexpected(m, "RESTRICT, CASCADE, SET NULL, NO ACTION or SET DEFAULT")
}

// parseCheck CHECK (expr) [[NOT] ENFORCED]
func (m *Sqlbridge) parseCheck(constraint string) (*CheckDef, error) {
	m.Next() // Consume Check
	n, err := m.parenExpression()
	if err != nil {
		return nil, err
	}
	return &CheckDef{Constraint: constraint, Expr: n, Enforced: m.parseEnforced()}, nil
}

// parseEnforced optional [NOT] ENFORCED, nil when absent
func (m *Sqlbridge) parseEnforced() *bool {
	enforced := true
	switch {
	case m.Cur().T == lex.TokenNegate && m.Peek().IsWord("ENFORCED"):
		m.Next()
		enforced = false
	case !m.Cur().IsWord("ENFORCED"):
		return nil
	}
	m.Next()
	return &enforced
}

// parseColumnDef name type [attribute ...]
func (m *Sqlbridge) parseColumnDef() (*ColumnDef, error) {
	col := &ColumnDef{}
	var err error
	if col.Name, err = m.ident("column name"); err != nil {
		return nil, err
	}
	if col.Type, err = m.parseDataType(); err != nil {
		return nil, err
	}
	if col.Attrs, err = m.parseColumnAttrs(); err != nil {
		return nil, err
	}
	return col, nil
}

// parseDataType name [(n [, n])] | {ENUM | SET} ('a', ...) followed by
// [UNSIGNED | SIGNED] [ZEROFILL] [BINARY]
func (m *Sqlbridge) parseDataType() (*DataType, error) {
	cur := m.Cur()
	if cur.Quote != 0 || (cur.T != lex.TokenIdentity && cur.T != lex.TokenBinary && cur.T != lex.TokenSet) {
		return nil, expr.Unexpected(m, "data type")
	}
	m.Next()
	dt := &DataType{Name: strings.ToUpper(cur.V)}
	if dt.Name == "DOUBLE" && m.accept(lex.TokenPrecision) {
		dt.Name = "DOUBLE PRECISION"
	}

	if m.accept(lex.TokenLeftParenthesis) {
		for {
			if dt.Name == "ENUM" || dt.Name == "SET" {
				v, err := m.stringValue("string")
				if err != nil {
					return nil, err
				}
				dt.Values = append(dt.Values, v)
			} else {
				n, err := m.integer("integer")
				if err != nil {
					return nil, err
				}
				dt.Args = append(dt.Args, int(n))
			}
			if !m.accept(lex.TokenComma) {
				break
			}
		}
		if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
			return nil, err
		}
	}

	for {
		switch cur := m.Cur(); {
		case cur.T == lex.TokenUnsigned:
			dt.Unsigned = true
		case cur.IsWord("SIGNED"):
		case cur.T == lex.TokenZerofill:
			dt.Zerofill = true
		case cur.T == lex.TokenBinary:
			dt.Binary = true
		default:
			return dt, nil
		}
		m.Next()
	}
}

// parseColumnAttrs the attributes of a column definition, in any order
func (m *Sqlbridge) parseColumnAttrs() ([]*ColumnAttr, error) {
	var attrs []*ColumnAttr
	for {
		cur := m.Cur()
		attr := &ColumnAttr{}
		var err error
		switch {
		case cur.T == lex.TokenNegate && m.Peek().T == lex.TokenNull:
			m.Next()
			m.Next()
			attr.Kind = AttrNotNull
		case cur.T == lex.TokenNull:
			m.Next()
			attr.Kind = AttrNull
		case cur.T == lex.TokenDefault:
			m.Next()
			attr.Kind = AttrDefault
			attr.Value, err = m.defaultValue()
		case cur.IsWord("AUTO_INCREMENT"):
			m.Next()
			attr.Kind = AttrAutoIncrement
		case cur.T == lex.TokenPrimary:
			m.Next()
			attr.Kind = AttrPrimaryKey
			err = m.expect(lex.TokenKey, "KEY")
		case cur.T == lex.TokenKey:
			m.Next()
			attr.Kind = AttrPrimaryKey
		case cur.T == lex.TokenUnique:
			m.Next()
			attr.Kind = AttrUniqueKey
			m.accept(lex.TokenKey)
		case cur.IsWord("COMMENT"):
			m.Next()
			attr.Kind = AttrComment
			attr.Text, err = m.stringValue("comment string")
		case cur.T == lex.TokenCharacter && m.Peek().T == lex.TokenSet,
			cur.IsWord("CHARSET"):
			if m.Next().T == lex.TokenCharacter {
				m.Next()
			}
			attr.Kind = AttrCharacterSet
			attr.Text, err = m.charsetName("character set name")
		case cur.T == lex.TokenCollate:
			m.Next()
			attr.Kind = AttrCollate
			attr.Text, err = m.charsetName("collation name")
		case cur.T == lex.TokenOn && m.Peek().T == lex.TokenUpdate:
			m.Next()
			m.Next()
			attr.Kind = AttrOnUpdate
			attr.Value, err = m.defaultValue()
		case cur.IsWord("VISIBLE"):
			m.Next()
			attr.Kind = AttrVisible
		case cur.IsWord("INVISIBLE"):
			m.Next()
			attr.Kind = AttrInvisible
		case cur.T == lex.TokenGenerated, cur.T == lex.TokenAs:
			attr.Kind = AttrGenerated
			err = m.parseGenerated(attr)
		case cur.IsWord("COLUMN_FORMAT"):
			m.Next()
			attr.Kind = AttrColumnFormat
			attr.Text, err = m.oneOf("FIXED, DYNAMIC or DEFAULT", "FIXED", "DYNAMIC", "DEFAULT")
		case cur.IsWord("STORAGE"):
			m.Next()
			attr.Kind = AttrStorage
			attr.Text, err = m.oneOf("DISK or MEMORY", "DISK", "MEMORY")
		default:
			return attrs, nil
		}
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
}

// parseGenerated [GENERATED ALWAYS] AS (expr) [VIRTUAL | STORED]
func (m *Sqlbridge) parseGenerated(attr *ColumnAttr) error {
	if m.accept(lex.TokenGenerated) {
		if err := m.expectWord("ALWAYS"); err != nil {
			return err
		}
	}
	if err := m.expect(lex.TokenAs, "AS"); err != nil {
		return err
	}
	n, err := m.parenExpression()
	if err != nil {
		return err
	}
	attr.Value = n
	switch m.Cur().T {
	case lex.TokenVirtual, lex.TokenStored:
		attr.Text = strings.ToUpper(m.Next().V)
	}
	return nil
}

// defaultValue of DEFAULT and ON UPDATE; a literal, a signed number, a time
// function, or any expression in parentheses.
func (m *Sqlbridge) defaultValue() (expr.Node, error) {
	if m.Cur().T == lex.TokenLeftParenthesis {
		return m.parenExpression()
	}
	return expr.NewTree(m).U()
}

// parseCreateIndex
//
//	CREATE [UNIQUE | FULLTEXT | SPATIAL] INDEX name [USING type]
//	  ON t (key_part, ...) [option ...] [ALGORITHM [=] a] [LOCK [=] l]
func (m *Sqlbridge) parseCreateIndex() (*SqlCreateIndex, error) {
	req := &SqlCreateIndex{}
	switch m.Cur().T {
	case lex.TokenUnique:
		req.Kind = IndexUnique
		m.Next()
	case lex.TokenFulltext:
		req.Kind = IndexFulltext
		m.Next()
	case lex.TokenSpatial:
		req.Kind = IndexSpatial
		m.Next()
	}
	m.Next() // Consume Index

	var err error
	if req.Name, err = m.ident("index name"); err != nil {
		return nil, err
	}
	if m.accept(lex.TokenUsing) {
		if req.Using, err = m.indexType(); err != nil {
			return nil, err
		}
	}
	if err := m.expect(lex.TokenOn, "ON"); err != nil {
		return nil, err
	}
	if req.Table, err = m.tableName("table name"); err != nil {
		return nil, err
	}
	if req.Parts, err = m.parseKeyParts(); err != nil {
		return nil, err
	}
	if req.Options, err = m.parseIndexOptions(); err != nil {
		return nil, err
	}
	if req.Algorithm, req.Lock, err = m.parseAlgorithmLock(); err != nil {
		return nil, err
	}
	return req, nil
}

// parseAlgorithmLock [ALGORITHM [=] a] [LOCK [=] l] in either order
func (m *Sqlbridge) parseAlgorithmLock() (algorithm, lock string, err error) {
	for {
		switch cur := m.Cur(); {
		case cur.IsWord("ALGORITHM") && algorithm == "":
			m.Next()
			m.accept(lex.TokenEqual)
			if algorithm, err = m.word("algorithm"); err != nil {
				return "", "", err
			}
		case cur.T == lex.TokenLock && lock == "":
			m.Next()
			m.accept(lex.TokenEqual)
			if lock, err = m.word("lock type"); err != nil {
				return "", "", err
			}
		default:
			return algorithm, lock, nil
		}
	}
}

// parseCreateView CREATE [OR REPLACE] VIEW v [(col, ...)] AS query
func (m *Sqlbridge) parseCreateView() (*SqlCreateView, error) {
	req := &SqlCreateView{}
	if m.accept(lex.TokenLogicOr) {
		m.Next() // Consume Replace
		req.OrReplace = true
	}
	if err := m.expectWord("VIEW"); err != nil {
		return nil, err
	}
	var err error
	if req.View, err = m.tableName("view name"); err != nil {
		return nil, err
	}
	if m.Cur().T == lex.TokenLeftParenthesis {
		if req.Columns, err = m.parenIdents("column name"); err != nil {
			return nil, err
		}
	}
	if err := m.expect(lex.TokenAs, "AS"); err != nil {
		return nil, err
	}
	if req.Select, err = m.parseQuery(); err != nil {
		return nil, err
	}
	return req, nil
}

// Table options --------------------------------------------------------------

// parseTableOptions any number of table options, separated by spaces or, in
// CREATE TABLE, commas.
func (m *Sqlbridge) parseTableOptions(commas bool) ([]*TableOption, error) {
	var opts []*TableOption
	for {
		opt, err := m.parseTableOption()
		if err != nil {
			return nil, err
		}
		if opt == nil {
			return opts, nil
		}
		opts = append(opts, opt)
		if commas && m.Cur().T == lex.TokenComma && m.isTableOptionAt(1) {
			m.Next()
		}
	}
}

// isTableOptionAt does a table option start n tokens after the cursor?
func (m *Sqlbridge) isTableOptionAt(n int) bool {
	tok := m.PeekN(n)
	if tok.Quote != 0 {
		return false
	}
	switch tok.T {
	case lex.TokenDefault, lex.TokenCharacter, lex.TokenCollate, lex.TokenUnion:
		return true
	case lex.TokenIndex:
		return m.PeekN(n + 1).IsWord("DIRECTORY")
	case lex.TokenIdentity:
		next := m.PeekN(n + 1)
		return next.T == lex.TokenEqual || isOptionValue(next) || tok.IsWord("START")
	}
	return false
}

func isOptionValue(tok lex.Token) bool {
	switch tok.T {
	case lex.TokenString, lex.TokenInteger, lex.TokenFloat, lex.TokenBit, lex.TokenIdentity,
		lex.TokenDefault, lex.TokenNull, lex.TokenBinary:
		return true
	}
	return false
}

// parseTableOption one NAME [=] value table option, nil when the cursor is
// not on one.
//
//	ENGINE [=] InnoDB
//	[DEFAULT] CHARACTER SET [=] utf8mb4
//	[DEFAULT] COLLATE [=] utf8mb4_bin
//	COMMENT [=] 'text'
//	DATA DIRECTORY [=] '/path'
//	TABLESPACE ts [STORAGE {DISK | MEMORY}]
//	UNION [=] (t1, t2)
//	START TRANSACTION
func (m *Sqlbridge) parseTableOption() (*TableOption, error) {
	if !m.isTableOptionAt(0) {
		return nil, nil
	}
	if m.Cur().T == lex.TokenDefault {
		switch next := m.Peek(); {
		case next.T == lex.TokenCharacter, next.T == lex.TokenCollate, next.IsWord("CHARSET"):
			m.Next()
		default:
			return nil, nil
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
	case cur.IsWord("DATA") || cur.T == lex.TokenIndex:
		m.Next()
		if err := m.expectWord("DIRECTORY"); err != nil {
			return nil, err
		}
		opt.Name = strings.ToUpper(cur.V) + " DIRECTORY"
	case cur.IsWord("START"):
		m.Next()
		if err := m.expectWord("TRANSACTION"); err != nil {
			return nil, err
		}
		opt.Name = "START TRANSACTION"
		return opt, nil
	case cur.IsWord("TABLESPACE"):
		m.Next()
		m.accept(lex.TokenEqual)
		name, err := m.ident("tablespace name")
		if err != nil {
			return nil, err
		}
		w := expr.NewDialectWriter(m.Config())
		w.WriteIdentity(name)
		opt.Name, opt.Value = "TABLESPACE", w.String()
		if m.acceptWord("STORAGE") {
			storage, err := m.oneOf("DISK or MEMORY", "DISK", "MEMORY")
			if err != nil {
				return nil, err
			}
			opt.Value += " STORAGE " + storage
		}
		return opt, nil
	case cur.T == lex.TokenUnion:
		m.Next()
		m.accept(lex.TokenEqual)
		tables, err := m.parenTables()
		if err != nil {
			return nil, err
		}
		opt.Name, opt.Value = "UNION", tables
		return opt, nil
	default:
		m.Next()
		opt.Name = strings.ToUpper(cur.V)
	}

	m.accept(lex.TokenEqual)
	val, err := m.optionValue(m.isOptionValueEnd)
	if err != nil {
		return nil, err
	}
	opt.Value = val
	return opt, nil
}

// optionValue the canonical text of an option value, its tokens up to the
// first one stop reports true for.
//
//	InnoDB
//	'a comment'
//	'part one' 'part two'
func (m *Sqlbridge) optionValue(stop func() bool) (string, error) {
	switch m.Cur().T {
	case lex.TokenEOF, lex.TokenEOS, lex.TokenComma, lex.TokenRightParenthesis:
		return "", expr.Unexpected(m, "option value")
	}
	w := expr.NewDialectWriter(m.Config())
	if err := m.writeTokens(w, stop); err != nil {
		return "", err
	}
	return w.String(), nil
}

// isOptionValueEnd a table option value runs up to the next comma, the
// next option or the end of the options; CREATE TABLE ... SELECT and
// PARTITION BY.
func (m *Sqlbridge) isOptionValueEnd() bool {
	switch m.Cur().T {
	case lex.TokenComma, lex.TokenIgnore, lex.TokenReplace, lex.TokenAs, lex.TokenSelect:
		return true
	case lex.TokenLeftParenthesis:
		return m.isParenQuery()
	}
	return m.isPartitionAt() || m.isTableOptionAt(0)
}

// isPartitionAt is the cursor on PARTITION BY?
func (m *Sqlbridge) isPartitionAt() bool {
	return m.Cur().IsWord("PARTITION") && m.Peek().IsWord("BY")
}

// parsePartition the partition clause of CREATE TABLE as canonical text
// following PARTITION BY.  It is kept but not interpreted.
//
//	PARTITION BY HASH(id) PARTITIONS 4
//	PARTITION BY RANGE (a) (PARTITION p0 VALUES LESS THAN (10), ...)
func (m *Sqlbridge) parsePartition() (string, error) {
	m.Next() // PARTITION
	m.Next() // BY
	switch m.Cur().T {
	case lex.TokenEOF, lex.TokenEOS:
		return "", expr.Unexpected(m, "partition type")
	}
	w := expr.NewDialectWriter(m.Config())
	err := m.writeTokens(w, func() bool {
		switch m.Cur().T {
		case lex.TokenIgnore, lex.TokenReplace, lex.TokenAs, lex.TokenSelect:
			return true
		case lex.TokenLeftParenthesis:
			return m.isParenQuery()
		}
		return false
	})
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

// writeTokens consumes tokens into w until stop reports true at paren depth
// 0, or the statement ends.  The first token is always taken.
func (m *Sqlbridge) writeTokens(w *expr.DialectWriter, stop func() bool) error {
	var prev lex.Token
	depth := 0
	for {
		cur := m.Cur()
		switch {
		case cur.T == lex.TokenEOF, cur.T == lex.TokenEOS:
			if depth > 0 {
				return expr.ErrorAt(m, errors.ErrUnbalancedParentheses, cur)
			}
			return nil
		case depth == 0 && prev.T != lex.TokenNil && stop():
			return nil
		case cur.T == lex.TokenLeftParenthesis:
			depth++
		case cur.T == lex.TokenRightParenthesis:
			if depth == 0 {
				return nil
			}
			depth--
		}
		if prev.T != lex.TokenNil && spaceBetween(prev, cur) {
			w.WriteByte(' ')
		}
		writeToken(w, cur)
		prev = m.Next()
	}
}

// spaceBetween is a space written between prev and next?  None inside
// parens, before a comma, around a period, or between a name and its (.
func spaceBetween(prev, next lex.Token) bool {
	switch prev.T {
	case lex.TokenLeftParenthesis, lex.TokenPeriod:
		return false
	case lex.TokenIdentity:
		if next.T == lex.TokenLeftParenthesis && prev.Quote == 0 {
			return false
		}
	}
	switch next.T {
	case lex.TokenRightParenthesis, lex.TokenComma, lex.TokenPeriod:
		return false
	}
	return true
}

// writeToken writes the canonical text of one token.
func writeToken(w *expr.DialectWriter, tok lex.Token) {
	switch {
	case tok.T == lex.TokenString:
		w.WriteLiteral(tok.V)
	case tok.T == lex.TokenIdentity:
		w.WriteString(lex.QuoteIdentifier(tok.V))
	case tok.T == lex.TokenBit:
		w.WriteString(tok.Text())
	case tok.T.IsKeyword():
		w.WriteString(strings.ToUpper(tok.V))
	default:
		w.WriteString(tok.V)
	}
}

// parenTables (t1, t2, ...) as canonical text
func (m *Sqlbridge) parenTables() (string, error) {
	if err := m.expect(lex.TokenLeftParenthesis, "("); err != nil {
		return "", err
	}
	tables, err := m.tableList("table name")
	if err != nil {
		return "", err
	}
	if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
		return "", err
	}
	w := expr.NewDialectWriter(m.Config())
	w.WriteByte('(')
	writeTables(w, 0, tables)
	w.WriteByte(')')
	return w.String(), nil
}
