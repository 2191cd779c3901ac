package rel

import (
	"strconv"
	"strings"

	u "github.com/araddon/gou"

	"github.com/araddon/sqlparse/config"
	"github.com/araddon/sqlparse/errors"
	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
)

// Parse parses a single sql statement, with an optional trailing ;
//
//	stmt, err := rel.Parse(cfg, "SELECT a FROM t WHERE b > 10")
//
// A nil cfg means the default config.  On failure the error is a
// *errors.ParseError and no statement is returned.
func Parse(cfg *config.ParseConfig, sql string) (Statement, error) {
	pager, err := expr.NewLexTokenPager(cfg, sql)
	if err != nil {
		u.Debugf("could not lex %q: %v", sql, err)
		return nil, err
	}
	m := Sqlbridge{LexTokenPager: pager}
	stmt, err := m.parse()
	if err != nil {
		u.Debugf("could not parse %q: %v", sql, err)
		return nil, err
	}
	return stmt, nil
}

// ParseSql parses a statement with the default config.
func ParseSql(sql string) (Statement, error) {
	return Parse(nil, sql)
}

// ParseSqlSelect parses a statement that must be a SELECT.
func ParseSqlSelect(sql string) (*SqlSelect, error) {
	stmt, err := ParseSql(sql)
	if err != nil {
		return nil, err
	}
	sel, ok := stmt.(*SqlSelect)
	if !ok {
		return nil, errors.Errorf("expected SqlSelect but got %T", stmt)
	}
	return sel, nil
}

// Sqlbridge is the statement parser.  It owns the token cursor of one
// statement and hands it to the expression parser for every embedded
// expression.
type Sqlbridge struct {
	*expr.LexTokenPager
	firstToken lex.Token
}

// parse the request
func (m *Sqlbridge) parse() (Statement, error) {
	m.firstToken = m.Cur()
	stmt, err := m.parseStatement()
	if err != nil {
		return nil, err
	}
	if m.Cur().T == lex.TokenEOS {
		m.Next()
	}
	if !m.IsEnd() {
		return nil, expr.ExpectEnd(m)
	}
	return stmt, nil
}

// parseStatement dispatches on the first keyword.  Statement families
// sharing a first keyword (CREATE, ALTER, DROP) dispatch again on the
// words after it.
func (m *Sqlbridge) parseStatement() (Statement, error) {
	switch m.firstToken.T {
	case lex.TokenSelect:
		return m.parseQuery()
	case lex.TokenLeftParenthesis:
		if m.isParenQuery() {
			return m.parseQuery()
		}
	case lex.TokenInsert, lex.TokenReplace:
		return m.parseSqlInsert()
	case lex.TokenUpdate:
		return m.parseSqlUpdate()
	case lex.TokenDelete:
		return m.parseSqlDelete()
	case lex.TokenSet:
		return m.parseSqlSet()
	case lex.TokenCreate:
		return m.parseCreate()
	case lex.TokenAlter:
		return m.parseAlter()
	case lex.TokenDrop:
		return m.parseDrop()
	case lex.TokenRename:
		return m.parseSqlRenameTable()
	case lex.TokenIdentity:
		if m.firstToken.IsWord("TRUNCATE") {
			return m.parseSqlTruncate()
		}
	}
	return nil, m.unsupported(m.firstToken)
}

// unsupported is the error for a statement whose leading words, up to tok,
// match no statement family.
func (m *Sqlbridge) unsupported(tok lex.Token) error {
	u.Warnf("Could not parse?  %q   at %v", m.Input(), tok)
	return expr.ErrorAt(m, errors.ErrUnsupportedStatement, tok)
}

// isParenQuery is the ( at the cursor the start of a (SELECT ...)?
func (m *Sqlbridge) isParenQuery() bool {
	for i := 0; ; i++ {
		switch m.PeekN(i).T {
		case lex.TokenLeftParenthesis:
		case lex.TokenSelect:
			return true
		default:
			return false
		}
	}
}

// Token helpers ------------------------------------------------------------

// expect consumes a token of type typ, or fails wanting expected.
func (m *Sqlbridge) expect(typ lex.TokenType, expected string) error {
	if m.Cur().T != typ {
		return expr.Unexpected(m, expected)
	}
	m.Next()
	return nil
}

// expectWord consumes the unquoted word w, reserved or not.
func (m *Sqlbridge) expectWord(w string) error {
	if !m.Cur().IsWord(w) {
		return expr.Unexpected(m, w)
	}
	m.Next()
	return nil
}

func (m *Sqlbridge) accept(typ lex.TokenType) bool {
	if m.Cur().T == typ {
		m.Next()
		return true
	}
	return false
}

func (m *Sqlbridge) acceptWord(w string) bool {
	if m.Cur().IsWord(w) {
		m.Next()
		return true
	}
	return false
}

// isStatementEnd is the cursor on ; or the end of input?
func (m *Sqlbridge) isStatementEnd() bool {
	switch m.Cur().T {
	case lex.TokenEOS, lex.TokenEOF:
		return true
	}
	return false
}

func (m *Sqlbridge) ident(expected string) (string, error) {
	return expr.Ident(m, expected)
}

// word consumes any unquoted word, reserved or not, returning it upper
// cased; BTREE, INPLACE, DEFAULT.
func (m *Sqlbridge) word(expected string) (string, error) {
	cur := m.Cur()
	if cur.Quote != 0 || (cur.T != lex.TokenIdentity && !cur.T.IsKeyword()) {
		return "", expr.Unexpected(m, expected)
	}
	m.Next()
	return strings.ToUpper(cur.V), nil
}

// oneOf consumes one of the given words, returning it upper cased.
func (m *Sqlbridge) oneOf(expected string, words ...string) (string, error) {
	for _, w := range words {
		if m.Cur().IsWord(w) {
			m.Next()
			return w, nil
		}
	}
	return "", expr.Unexpected(m, expected)
}

// charsetName a character set or collation name, written as a name or as
// a string; utf8mb4, 'latin1', binary
func (m *Sqlbridge) charsetName(expected string) (string, error) {
	cur := m.Cur()
	switch {
	case cur.T == lex.TokenIdentity, cur.T == lex.TokenString:
		m.Next()
		return cur.V, nil
	case cur.T.IsKeyword() && cur.Quote == 0:
		m.Next()
		return strings.ToLower(cur.V), nil
	}
	return "", expr.Unexpected(m, expected)
}

func (m *Sqlbridge) stringValue(expected string) (string, error) {
	cur := m.Cur()
	if cur.T != lex.TokenString {
		return "", expr.Unexpected(m, expected)
	}
	m.Next()
	return cur.V, nil
}

func (m *Sqlbridge) integer(expected string) (int64, error) {
	cur := m.Cur()
	if cur.T != lex.TokenInteger {
		return 0, expr.Unexpected(m, expected)
	}
	iv, err := strconv.ParseInt(cur.V, 10, 64)
	if err != nil {
		return 0, expr.Unexpected(m, expected)
	}
	m.Next()
	return iv, nil
}

// tableName [schema.]name
func (m *Sqlbridge) tableName(expected string) (*Table, error) {
	name, err := expr.TableIdent(m, expected)
	if err != nil {
		return nil, err
	}
	if m.Cur().T != lex.TokenPeriod {
		return &Table{Name: name}, nil
	}
	m.Next()
	table, err := expr.TableIdent(m, expected)
	if err != nil {
		return nil, err
	}
	return &Table{Schema: name, Name: table}, nil
}

// tableList name [, name] ...
func (m *Sqlbridge) tableList(expected string) ([]*Table, error) {
	var tables []*Table
	for {
		t, err := m.tableName(expected)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
		if !m.accept(lex.TokenComma) {
			return tables, nil
		}
	}
}

// parenIdents ( name [, name] ... )
func (m *Sqlbridge) parenIdents(expected string) ([]string, error) {
	if err := m.expect(lex.TokenLeftParenthesis, "("); err != nil {
		return nil, err
	}
	var names []string
	for {
		name, err := m.ident(expected)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !m.accept(lex.TokenComma) {
			break
		}
	}
	if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
		return nil, err
	}
	return names, nil
}

func (m *Sqlbridge) ifExists() (bool, error) {
	if !m.accept(lex.TokenIf) {
		return false, nil
	}
	return true, m.expect(lex.TokenExists, "EXISTS")
}

func (m *Sqlbridge) ifNotExists() (bool, error) {
	if !m.accept(lex.TokenIf) {
		return false, nil
	}
	if err := m.expect(lex.TokenNegate, "NOT"); err != nil {
		return false, err
	}
	return true, m.expect(lex.TokenExists, "EXISTS")
}

// restrictOrCascade the optional RESTRICT | CASCADE of DROP TABLE and VIEW
func (m *Sqlbridge) restrictOrCascade() string {
	switch m.Cur().T {
	case lex.TokenRestrict, lex.TokenCascade:
		return strings.ToUpper(m.Next().V)
	}
	return ""
}

// expression parses an expression off the shared cursor.
func (m *Sqlbridge) expression() (expr.Node, error) {
	return expr.NewTree(m).O()
}

// parenExpression ( expr )
func (m *Sqlbridge) parenExpression() (expr.Node, error) {
	if err := m.expect(lex.TokenLeftParenthesis, "("); err != nil {
		return nil, err
	}
	n, err := m.expression()
	if err != nil {
		return nil, err
	}
	if err := m.expect(lex.TokenRightParenthesis, ")"); err != nil {
		return nil, err
	}
	return n, nil
}
