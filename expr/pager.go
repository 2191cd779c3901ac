package expr

import (
	"strings"

	"github.com/araddon/sqlparse/config"
	"github.com/araddon/sqlparse/errors"
	"github.com/araddon/sqlparse/lex"
)

// TokenPager is a cursor over the tokens of one statement.  The expression
// parser and the statement parsers share one pager, handing the cursor back
// and forth as they descend into each other's grammar.
type TokenPager interface {
	// Cur is the current, not yet consumed, token.
	Cur() lex.Token
	// Next consumes and returns the current token.
	Next() lex.Token
	// Peek is the token after Cur.
	Peek() lex.Token
	// PeekN is the token n positions after Cur (PeekN(0) == Cur()).
	PeekN(n int) lex.Token
	// Backup un-consumes one token.
	Backup()
	// IsEnd is Cur the end of input?
	IsEnd() bool
	// Input is the raw text the tokens were lexed from.
	Input() string
	// Config is the read-only dialect config of this parse.
	Config() *config.ParseConfig
}

// LexTokenPager pages over the complete token slice of an input.  The slice
// always ends with EOF, so Cur and Peek never run off the end.
type LexTokenPager struct {
	tokens []lex.Token
	cursor int
	input  string
	cfg    *config.ParseConfig
}

var _ TokenPager = (*LexTokenPager)(nil)

// NewLexTokenPager lexes input and returns a pager positioned on the first
// token.  Lexing errors are returned before any parsing happens.
func NewLexTokenPager(cfg *config.ParseConfig, input string) (*LexTokenPager, error) {
	cfg = cfg.OrDefault()
	toks, err := lex.Tokenize(cfg, input)
	if err != nil {
		return nil, err
	}
	return &LexTokenPager{tokens: toks, input: input, cfg: cfg}, nil
}

func (m *LexTokenPager) Cur() lex.Token { return m.tokens[m.cursor] }

func (m *LexTokenPager) Next() lex.Token {
	tok := m.tokens[m.cursor]
	if m.cursor < len(m.tokens)-1 {
		m.cursor++
	}
	return tok
}

func (m *LexTokenPager) Peek() lex.Token { return m.PeekN(1) }

func (m *LexTokenPager) PeekN(n int) lex.Token {
	i := m.cursor + n
	if i >= len(m.tokens) {
		return m.tokens[len(m.tokens)-1]
	}
	return m.tokens[i]
}

func (m *LexTokenPager) Backup() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *LexTokenPager) IsEnd() bool                 { return m.Cur().T == lex.TokenEOF }
func (m *LexTokenPager) Input() string               { return m.input }
func (m *LexTokenPager) Config() *config.ParseConfig { return m.cfg }

// Unexpected is the UnexpectedToken error for the current token of p, which
// the grammar wanted to be expected.
func Unexpected(p TokenPager, expected string) error {
	tok := p.Cur()
	return errors.UnexpectedToken(p.Input(), tok.Pos, expected, tok.Text())
}

// ErrorAt is a ParseError of code located at tok.
func ErrorAt(p TokenPager, code errors.Code, tok lex.Token) error {
	pe := errors.NewParseError(code, p.Input(), tok.Pos)
	pe.Found = tok.Text()
	return pe
}

// Ident consumes a name (column, index, constraint ...) from p.  Reserved
// words are only names when quoted; with RequireQuotedIdentifiers every name
// must be quoted.
func Ident(p TokenPager, expected string) (string, error) {
	tok := p.Cur()
	if tok.T != lex.TokenIdentity {
		return "", Unexpected(p, expected)
	}
	if tok.Quote == 0 && p.Config().RequireQuotedIdentifiers {
		return "", Unexpected(p, "quoted "+expected)
	}
	p.Next()
	return tok.V, nil
}

// TableIdent consumes a schema or table name, folding unquoted names to lower
// case when LowerCaseTableNames is on.
func TableIdent(p TokenPager, expected string) (string, error) {
	quoted := p.Cur().Quote != 0
	name, err := Ident(p, expected)
	if err != nil {
		return "", err
	}
	if !quoted && p.Config().LowerCaseTableNames {
		name = strings.ToLower(name)
	}
	return name, nil
}
