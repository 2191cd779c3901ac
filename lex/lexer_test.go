package lex

import (
	"flag"
	"os"
	"testing"

	u "github.com/araddon/gou"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araddon/sqlparse/config"
	"github.com/araddon/sqlparse/errors"
)

var (
	VerboseTests *bool = flag.Bool("vv", false, "Verbose Logging?")
)

func TestMain(m *testing.M) {
	flag.Parse()
	if *VerboseTests {
		u.SetupLogging("debug")
		u.SetColorOutput()
	}
	// Now run the actual Tests
	os.Exit(m.Run())
}

func tv(t TokenType, v string) Token {
	return Token{T: t, V: v}
}

// verifyTokens lexes sql and compares type and value of every token, ignoring
// positions.
func verifyTokens(t *testing.T, cfg *config.ParseConfig, sql string, expected []Token) {
	t.Helper()
	toks, err := Tokenize(cfg, sql)
	require.NoError(t, err, sql)
	got := make([]Token, 0, len(toks))
	for _, tok := range toks {
		got = append(got, Token{T: tok.T, V: tok.V})
	}
	expected = append(expected, tv(TokenEOF, ""))
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("tokens mismatch for %q (-want +got):\n%s", sql, diff)
	}
}

func verifyLexError(t *testing.T, sql string, code errors.Code, pos int) {
	t.Helper()
	_, err := Tokenize(nil, sql)
	require.Error(t, err, sql)
	pe, ok := err.(*errors.ParseError)
	require.True(t, ok, "expected *ParseError got %T", err)
	assert.Equal(t, code, pe.Code, sql)
	assert.Equal(t, pos, pe.Pos, sql)
}

func TestLexSelect(t *testing.T) {
	t.Parallel()
	verifyTokens(t, nil, "SELECT a, `b c`, count(*) FROM users AS u WHERE id >= 10;",
		[]Token{
			tv(TokenSelect, "SELECT"),
			tv(TokenIdentity, "a"),
			tv(TokenComma, ","),
			tv(TokenIdentity, "b c"),
			tv(TokenComma, ","),
			tv(TokenIdentity, "count"),
			tv(TokenLeftParenthesis, "("),
			tv(TokenStar, "*"),
			tv(TokenRightParenthesis, ")"),
			tv(TokenFrom, "FROM"),
			tv(TokenIdentity, "users"),
			tv(TokenAs, "AS"),
			tv(TokenIdentity, "u"),
			tv(TokenWhere, "WHERE"),
			tv(TokenIdentity, "id"),
			tv(TokenGE, ">="),
			tv(TokenInteger, "10"),
			tv(TokenEOS, ";"),
		})
}

func TestLexKeywordCase(t *testing.T) {
	t.Parallel()
	// keywords are case-insensitive, identities keep their case
	verifyTokens(t, nil, "select UserName from Users",
		[]Token{
			tv(TokenSelect, "select"),
			tv(TokenIdentity, "UserName"),
			tv(TokenFrom, "from"),
			tv(TokenIdentity, "Users"),
		})
	// quoted keywords and keywords after a period are names
	verifyTokens(t, nil, "`select` t.order",
		[]Token{
			tv(TokenIdentity, "select"),
			tv(TokenIdentity, "t"),
			tv(TokenPeriod, "."),
			tv(TokenIdentity, "order"),
		})
}

func TestLexStrings(t *testing.T) {
	t.Parallel()
	verifyTokens(t, nil, `'it''s' "say \"hi\"" 'a\tb\\c' 'x\%'`,
		[]Token{
			tv(TokenString, "it's"),
			tv(TokenString, `say "hi"`),
			tv(TokenString, "a\tb\\c"),
			tv(TokenString, `x\%`),
		})
	verifyTokens(t, &config.ParseConfig{NoBackslashEscapes: true}, `'a\n'`,
		[]Token{tv(TokenString, `a\n`)})
	verifyTokens(t, &config.ParseConfig{AnsiQuotes: true}, `"my col" 'v'`,
		[]Token{tv(TokenIdentity, "my col"), tv(TokenString, "v")})

	toks, err := Tokenize(nil, "`a``b`")
	require.NoError(t, err)
	assert.Equal(t, "a`b", toks[0].V)
	assert.Equal(t, byte('`'), toks[0].Quote)
	assert.Equal(t, CategoryQuotedIdentifier, toks[0].Category())
}

func TestLexNumbers(t *testing.T) {
	t.Parallel()
	verifyTokens(t, nil, "1 1.5 .5 6.02e23 1E-3 0x1F 1st 1e",
		[]Token{
			tv(TokenInteger, "1"),
			tv(TokenFloat, "1.5"),
			tv(TokenFloat, ".5"),
			tv(TokenFloat, "6.02e23"),
			tv(TokenFloat, "1E-3"),
			tv(TokenInteger, "0x1F"),
			tv(TokenIdentity, "1st"),
			tv(TokenIdentity, "1e"),
		})
	verifyTokens(t, nil, "a-1 t.5",
		[]Token{
			tv(TokenIdentity, "a"),
			tv(TokenMinus, "-"),
			tv(TokenInteger, "1"),
			tv(TokenIdentity, "t"),
			tv(TokenPeriod, "."),
			tv(TokenInteger, "5"),
		})
}

func TestLexOperators(t *testing.T) {
	t.Parallel()
	verifyTokens(t, nil, "= <> != < <= > >= <=> && || ! := + - * / % a=!b == ^",
		[]Token{
			tv(TokenEqual, "="),
			tv(TokenNE, "<>"),
			tv(TokenNE, "!="),
			tv(TokenLT, "<"),
			tv(TokenLE, "<="),
			tv(TokenGT, ">"),
			tv(TokenGE, ">="),
			tv(TokenNullSafeEqual, "<=>"),
			tv(TokenAnd, "&&"),
			tv(TokenOr, "||"),
			tv(TokenBang, "!"),
			tv(TokenAssign, ":="),
			tv(TokenPlus, "+"),
			tv(TokenMinus, "-"),
			tv(TokenStar, "*"),
			tv(TokenDivide, "/"),
			tv(TokenModulus, "%"),
			tv(TokenIdentity, "a"),
			tv(TokenEqual, "="),
			tv(TokenBang, "!"),
			tv(TokenIdentity, "b"),
			tv(TokenUnknownOperator, "=="),
			tv(TokenUnknownOperator, "^"),
		})
}

func TestLexVariables(t *testing.T) {
	t.Parallel()
	verifyTokens(t, nil, "SET @x = @@global.sql_mode, ? ",
		[]Token{
			tv(TokenSet, "SET"),
			tv(TokenVariable, "@x"),
			tv(TokenEqual, "="),
			tv(TokenVariable, "@@global.sql_mode"),
			tv(TokenComma, ","),
			tv(TokenQuestion, "?"),
		})
}

func TestLexComments(t *testing.T) {
	t.Parallel()
	verifyTokens(t, nil, `
	-- leading comment
	SELECT /* inline */ a # trailing
	FROM b--c`,
		[]Token{
			tv(TokenSelect, "SELECT"),
			tv(TokenIdentity, "a"),
			tv(TokenFrom, "FROM"),
			tv(TokenIdentity, "b"),
			tv(TokenMinus, "-"),
			tv(TokenMinus, "-"),
			tv(TokenIdentity, "c"),
		})
}

func TestLexBitValues(t *testing.T) {
	t.Parallel()
	verifyTokens(t, nil, "DEFAULT b'0', B'0101', 0b11, b'', 0b2x, 0B1",
		[]Token{
			tv(TokenDefault, "DEFAULT"),
			tv(TokenBit, "0"),
			tv(TokenComma, ","),
			tv(TokenBit, "0101"),
			tv(TokenComma, ","),
			tv(TokenBit, "11"),
			tv(TokenComma, ","),
			tv(TokenBit, ""),
			tv(TokenComma, ","),
			tv(TokenIdentity, "0b2x"),
			tv(TokenComma, ","),
			tv(TokenIdentity, "0B1"),
		})

	toks, err := Tokenize(nil, "b'01' 0b10")
	require.NoError(t, err)
	assert.Equal(t, "b'01'", toks[0].Text())
	assert.Equal(t, "0b10", toks[1].Text())
	assert.Equal(t, CategoryNumericLiteral, toks[0].Category())

	verifyLexError(t, "SELECT b'012'", errors.ErrInvalidCharacter, 11)
	verifyLexError(t, "SELECT b'01", errors.ErrUnterminatedLiteral, 7)
}

func TestLexPositions(t *testing.T) {
	t.Parallel()
	sql := "DROP TABLE  t1"
	toks, err := Tokenize(nil, sql)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, 0, toks[0].Pos)
	assert.Equal(t, 5, toks[1].Pos)
	assert.Equal(t, 12, toks[2].Pos)
	assert.Equal(t, len(sql), toks[3].Pos)
	assert.Equal(t, CategoryKeyword, toks[0].Category())
	assert.Equal(t, CategoryIdentifier, toks[2].Category())
	assert.Equal(t, CategoryEndOfInput, toks[3].Category())
}

func TestLexErrors(t *testing.T) {
	t.Parallel()
	verifyLexError(t, "SELECT 'abc", errors.ErrUnterminatedLiteral, 7)
	verifyLexError(t, "SELECT `abc", errors.ErrUnterminatedLiteral, 7)
	verifyLexError(t, `SELECT "a\`, errors.ErrUnterminatedLiteral, 7)
	verifyLexError(t, "SELECT a /* never closed", errors.ErrUnterminatedLiteral, 9)
	verifyLexError(t, "SELECT {a}", errors.ErrInvalidCharacter, 7)
	verifyLexError(t, "SELECT a\x00", errors.ErrInvalidCharacter, 8)
	verifyLexError(t, "SELECT a FROM [b]", errors.ErrInvalidCharacter, 14)
}

func TestLexerNextToken(t *testing.T) {
	orig := Trace
	Trace = true
	defer func() { Trace = orig }()

	l := NewLexer(nil, "SELECT 1")
	assert.Equal(t, TokenSelect, l.NextToken().T)
	assert.Equal(t, TokenInteger, l.NextToken().T)
	assert.Equal(t, TokenEOF, l.NextToken().T)
	// Keeps returning EOF once done
	assert.Equal(t, TokenEOF, l.NextToken().T)
	assert.Nil(t, l.Err())

	// $ is an identity rune
	l = NewLexer(nil, "SELECT $")
	assert.Equal(t, TokenSelect, l.NextToken().T)
	tok := l.NextToken()
	assert.Equal(t, TokenIdentity, tok.T)
	assert.Equal(t, "$", tok.V)
	assert.Equal(t, 7, tok.Pos)
	assert.Equal(t, TokenEOF, l.NextToken().T)
}
