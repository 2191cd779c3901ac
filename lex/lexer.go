// Package lex is the MySQL dialect lexer.  It turns raw sql text into a
// slice of classified Tokens, discarding whitespace and comments.
package lex

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	u "github.com/araddon/gou"

	"github.com/araddon/sqlparse/config"
	"github.com/araddon/sqlparse/errors"
)

var (
	// Trace is a global var to turn on tracing.  can be turned out with env
	// variable "lextrace=true"
	//
	//     export lextrace=true
	Trace bool
)

func init() {
	if t := os.Getenv("lextrace"); t != "" {
		Trace = true
	}
}

func debugf(f string, args ...interface{}) {
	if Trace {
		u.DoLog(3, u.DEBUG, fmt.Sprintf(f, args...))
	}
}

const (
	eof = -1

	// characters which combine into multi-character operators
	operatorChars = "=<>!&|^~:"
)

// StateFn represents the state of the lexer as a function that returns the
// next state.
type StateFn func(*Lexer) StateFn

// Lexer holds the state of the lexical scanning.
//
// Each state function scans at most one token and returns the next state,
// the approach of the lexer from the "text/template" package.
// See http://www.youtube.com/watch?v=HxaD_trXwRE
type Lexer struct {
	input     string              // the string being scanned
	cfg       *config.ParseConfig // dialect toggles, read only
	state     StateFn             // the next lexing function to enter
	pos       int                 // current position in the input
	start     int                 // start position of this token
	width     int                 // width of last rune read from input
	lastToken Token               // last token we emitted
	tokens    []Token             // scanned tokens not yet handed out
	err       *errors.ParseError  // first lex error, lexing stops there
}

// NewLexer Creates a new lexer for the input string.  A nil cfg uses the
// default dialect.
func NewLexer(cfg *config.ParseConfig, input string) *Lexer {
	return &Lexer{
		input:  input,
		cfg:    cfg.OrDefault(),
		state:  LexToken,
		tokens: make([]Token, 0, 2),
	}
}

// Tokenize lexes all of input.  The returned slice always ends with a
// TokenEOF whose Pos is len(input).
func Tokenize(cfg *config.ParseConfig, input string) ([]Token, error) {
	l := NewLexer(cfg, input)
	toks := make([]Token, 0, len(input)/4+1)
	for {
		tok := l.NextToken()
		switch tok.T {
		case TokenError:
			return nil, l.err
		case TokenEOF:
			return append(toks, tok), nil
		}
		toks = append(toks, tok)
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	for {
		if len(l.tokens) > 0 {
			tok := l.tokens[0]
			l.tokens = l.tokens[1:]
			return tok
		}
		if l.state == nil {
			if l.err != nil {
				return Token{T: TokenError, V: l.err.Error(), Pos: l.err.Pos}
			}
			return Token{T: TokenEOF, Pos: len(l.input)}
		}
		l.state = l.state(l)
	}
}

// Err is the error that stopped lexing, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// RawInput return the orgiginal string we are lexing.
func (l *Lexer) RawInput() string {
	return l.input
}

// Next returns the next rune in the input
func (l *Lexer) Next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

// Peek returns but does not consume the next rune in the input.
func (l *Lexer) Peek() rune {
	r := l.Next()
	l.backup()
	return r
}

// PeekX grab the next x characters without consuming
func (l *Lexer) PeekX(x int) string {
	if l.pos+x > len(l.input) {
		return l.input[l.pos:]
	}
	return l.input[l.pos : l.pos+x]
}

// peekAt the byte at offset from current position, 0 past the end
func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// backup steps back one rune. Can only be called once per call of next.
func (l *Lexer) backup() {
	l.pos -= l.width
}

// IsEnd have we consumed all input?
func (l *Lexer) IsEnd() bool {
	return l.pos >= len(l.input)
}

// Emit passes a token with the raw text since start back to the client.
func (l *Lexer) Emit(t TokenType) {
	l.emitValue(t, l.input[l.start:l.pos], 0)
}

func (l *Lexer) emitValue(t TokenType, v string, quote byte) {
	debugf("emit: %s  '%s'  start=%d pos=%d", t, v, l.start, l.pos)
	l.lastToken = Token{T: t, V: v, Pos: l.start, Quote: quote}
	l.tokens = append(l.tokens, l.lastToken)
	l.start = l.pos
}

// ignore skips over the pending input before this point.
func (l *Lexer) ignore() {
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *Lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.Next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *Lexer) acceptRun(valid string) bool {
	pos := l.pos
	for strings.ContainsRune(valid, l.Next()) {
	}
	l.backup()
	return l.pos > pos
}

// acceptIdentifierRun consumes a run of bare-identity runes.
func (l *Lexer) acceptIdentifierRun() bool {
	pos := l.pos
	for {
		r := l.Next()
		if r == eof || !isIdentifierRune(r) {
			l.backup()
			break
		}
	}
	return l.pos > pos
}

// errorf stops lexing with a ParseError of code at byte offset pos.
func (l *Lexer) errorf(code errors.Code, pos int, expected, found string) StateFn {
	pe := errors.NewParseError(code, l.input, pos)
	pe.Expected = expected
	pe.Found = found
	debugf("lex error: %v", pe)
	l.err = pe
	return nil
}

// skipWhiteSpaceAndComments discards whitespace as well as comments:
//
//	-- comment to end of line (the dashes must be followed by whitespace)
//	#  comment to end of line
//	/* block comment */
func (l *Lexer) skipWhiteSpaceAndComments() bool {
	for {
		r := l.Peek()
		switch {
		case r == eof:
			l.ignore()
			return true
		case isWhiteSpace(r):
			l.Next()
		case r == '#':
			l.skipToEndOfLine()
		case r == '-' && l.peekAt(1) == '-' && (l.peekAt(2) == 0 || isWhiteSpace(rune(l.peekAt(2)))):
			l.skipToEndOfLine()
		case r == '/' && l.peekAt(1) == '*':
			start := l.pos
			end := strings.Index(l.input[l.pos+2:], "*/")
			if end < 0 {
				l.errorf(errors.ErrUnterminatedLiteral, start, "comment", "/*")
				return false
			}
			l.pos += end + 4
		default:
			l.ignore()
			return true
		}
	}
}

func (l *Lexer) skipToEndOfLine() {
	for {
		r := l.Next()
		if r == '\n' || r == eof {
			return
		}
	}
}

// LexToken is the top level state: it skips whitespace and comments and then
// chooses the state for the token at the current position.
func LexToken(l *Lexer) StateFn {
	if !l.skipWhiteSpaceAndComments() {
		return nil
	}
	r := l.Peek()
	switch {
	case r == eof:
		l.Emit(TokenEOF)
		return nil
	case isDigit(r):
		return LexNumber
	case r == '.' && isDigit(rune(l.peekAt(1))) && !l.afterName():
		return LexNumber
	case r == '`':
		return LexQuotedIdentity
	case r == '"' && l.cfg.AnsiQuotes:
		return LexQuotedIdentity
	case r == '\'', r == '"':
		return LexString
	case r == '@':
		return LexVariable
	case (r == 'b' || r == 'B') && l.peekAt(1) == '\'':
		return LexBitString
	case isIdentifierRune(r):
		return LexIdentifierOrKeyword
	case strings.ContainsRune(operatorChars, r):
		return LexOperator
	}

	l.Next()
	switch r {
	case ',':
		l.Emit(TokenComma)
	case ';':
		l.Emit(TokenEOS)
	case '(':
		l.Emit(TokenLeftParenthesis)
	case ')':
		l.Emit(TokenRightParenthesis)
	case '.':
		l.Emit(TokenPeriod)
	case '?':
		l.Emit(TokenQuestion)
	case '*':
		l.Emit(TokenStar)
	case '+':
		l.Emit(TokenPlus)
	case '-':
		l.Emit(TokenMinus)
	case '/':
		l.Emit(TokenDivide)
	case '%':
		l.Emit(TokenModulus)
	default:
		return l.errorf(errors.ErrInvalidCharacter, l.start, "", string(r))
	}
	return LexToken
}

// afterName is the last token something a period would qualify?  Used to
// tell `t.5` (a name part) from `.5` (a number).
func (l *Lexer) afterName() bool {
	switch l.lastToken.T {
	case TokenIdentity, TokenRightParenthesis, TokenVariable:
		return true
	}
	return false
}

// LexIdentifierOrKeyword scans a bare word.  Reserved words become keyword
// tokens except directly after a period, where MySQL reads any word as a
// name part (t.order).
func LexIdentifierOrKeyword(l *Lexer) StateFn {
	l.acceptIdentifierRun()
	word := l.input[l.start:l.pos]
	if l.lastToken.T != TokenPeriod {
		if kw, ok := LookupKeyword(word); ok {
			l.Emit(kw)
			return LexToken
		}
	}
	l.Emit(TokenIdentity)
	return LexToken
}

// LexQuotedIdentity scans a `quoted` identity.  A doubled quote mark inside is
// an escaped quote mark; nothing inside is interpreted as a keyword.
func LexQuotedIdentity(l *Lexer) StateFn {
	quote := l.Next()
	var sb strings.Builder
	for {
		r := l.Next()
		switch r {
		case eof:
			return l.errorf(errors.ErrUnterminatedLiteral, l.start, "quoted identifier", string(quote))
		case quote:
			if l.Peek() == quote {
				l.Next()
				sb.WriteRune(quote)
				continue
			}
			l.emitValue(TokenIdentity, sb.String(), byte(quote))
			return LexToken
		}
		sb.WriteRune(r)
	}
}

// LexString scans a 'quoted' or "quoted" string literal, decoding both the
// doubled-quote escape and (unless NoBackslashEscapes) backslash escapes.
//
//	'it''s'     => it's
//	'a\tb'      => a<tab>b
//	"say \"hi\"" => say "hi"
func LexString(l *Lexer) StateFn {
	quote := l.Next()
	var sb strings.Builder
	for {
		r := l.Next()
		switch {
		case r == eof:
			return l.errorf(errors.ErrUnterminatedLiteral, l.start, "string literal", string(quote))
		case r == '\\' && !l.cfg.NoBackslashEscapes:
			esc := l.Next()
			if esc == eof {
				return l.errorf(errors.ErrUnterminatedLiteral, l.start, "string literal", string(quote))
			}
			switch esc {
			case '0':
				sb.WriteByte(0)
			case 'b':
				sb.WriteByte('\b')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'Z':
				sb.WriteByte(0x1a)
			case '%', '_':
				// kept escaped so LIKE patterns see a literal % or _
				sb.WriteByte('\\')
				sb.WriteRune(esc)
			default:
				sb.WriteRune(esc)
			}
			continue
		case r == quote:
			if l.Peek() == quote {
				l.Next()
				sb.WriteRune(quote)
				continue
			}
			l.emitValue(TokenString, sb.String(), byte(quote))
			return LexToken
		}
		sb.WriteRune(r)
	}
}

// LexBitString scans a b'0101' bit-value literal, the token value being the
// binary digits.
func LexBitString(l *Lexer) StateFn {
	l.Next() // b
	l.Next() // '
	digits := l.pos
	for {
		r := l.Next()
		switch r {
		case '0', '1':
		case '\'':
			l.emitValue(TokenBit, l.input[digits:l.pos-1], '\'')
			return LexToken
		case eof:
			return l.errorf(errors.ErrUnterminatedLiteral, l.start, "bit literal", "b'")
		default:
			return l.errorf(errors.ErrInvalidCharacter, l.pos-l.width, "binary digit", string(r))
		}
	}
}

// LexVariable scans user and system variables
//
//	@my_var
//	@@sql_mode
//	@@global.max_connections
func LexVariable(l *Lexer) StateFn {
	l.Next()
	l.accept("@")
	if !l.acceptIdentifierRun() {
		return l.errorf(errors.ErrInvalidCharacter, l.start, "", "@")
	}
	for l.Peek() == '.' {
		l.Next()
		if !l.acceptIdentifierRun() {
			l.backup()
			break
		}
	}
	l.Emit(TokenVariable)
	return LexToken
}

// LexOperator scans a run of operator characters.  The run must be a single
// known operator, or a known operator followed by a ! (a = !b); anything else
// is emitted as TokenUnknownOperator for the parser to reject.
func LexOperator(l *Lexer) StateFn {
	l.acceptRun(operatorChars)
	run := l.input[l.start:l.pos]
	if typ, ok := operatorToken(run); ok {
		l.Emit(typ)
		return LexToken
	}
	if i := strings.IndexByte(run, '!'); i > 0 {
		if typ, ok := operatorToken(run[:i]); ok {
			l.pos = l.start + i
			l.Emit(typ)
			return LexToken
		}
	}
	l.Emit(TokenUnknownOperator)
	return LexToken
}

func operatorToken(op string) (TokenType, bool) {
	switch op {
	case "=":
		return TokenEqual, true
	case "<>", "!=":
		return TokenNE, true
	case "<":
		return TokenLT, true
	case "<=":
		return TokenLE, true
	case ">":
		return TokenGT, true
	case ">=":
		return TokenGE, true
	case "<=>":
		return TokenNullSafeEqual, true
	case "&&":
		return TokenAnd, true
	case "||":
		return TokenOr, true
	case "!":
		return TokenBang, true
	case ":=":
		return TokenAssign, true
	}
	return TokenNil, false
}

// LexNumber floats, integers, hex, exponential
//
//	1.23
//	.5
//	100
//	6.02e23
//	0x1A2B
//	0b1011
//
// A run of digits directly followed by identity characters is an identity,
// mysql allows names such as 1st_quarter.
func LexNumber(l *Lexer) StateFn {
	if l.PeekX(2) == "0x" || l.PeekX(2) == "0X" {
		l.pos += 2
		if l.acceptRun(hexDigits) && !isIdentifierRune(l.Peek()) {
			l.Emit(TokenInteger)
			return LexToken
		}
		l.acceptIdentifierRun()
		l.Emit(TokenIdentity)
		return LexToken
	}

	if l.PeekX(2) == "0b" {
		l.pos += 2
		if l.acceptRun("01") && !isIdentifierRune(l.Peek()) {
			l.emitValue(TokenBit, l.input[l.start+2:l.pos], 0)
			return LexToken
		}
		l.acceptIdentifierRun()
		l.Emit(TokenIdentity)
		return LexToken
	}

	typ := TokenInteger
	l.acceptRun(decDigits)
	if l.Peek() == '.' {
		l.Next()
		l.acceptRun(decDigits)
		typ = TokenFloat
	}
	if c := l.peekAt(0); c == 'e' || c == 'E' {
		next := l.peekAt(1)
		if isDigit(rune(next)) || ((next == '+' || next == '-') && isDigit(rune(l.peekAt(2)))) {
			l.Next()
			l.accept("+-")
			l.acceptRun(decDigits)
			typ = TokenFloat
		}
	}
	if typ == TokenInteger && isIdentifierRune(l.Peek()) {
		l.acceptIdentifierRun()
		l.Emit(TokenIdentity)
		return LexToken
	}
	l.Emit(typ)
	return LexToken
}

// Helpers --------------------------------------------------------------------

const (
	decDigits = "0123456789"
	hexDigits = "0123456789abcdefABCDEF"
)

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWhiteSpace(r rune) bool {
	switch r {
	case '\r', '\n', '\t', ' ', '\f', '\v':
		return true
	}
	return unicode.IsSpace(r) && r > unicode.MaxASCII
}
