package lex

import (
	"fmt"
	"strings"
	"unicode"
)

// Tokens ---------------------------------------------------------------------

// TokenType identifies the type of lexical tokens.
type TokenType uint16

// TokenInfo describes a TokenType: the keyword text it is lexed from (for
// reserved words) and a human readable description used in error messages.
type TokenInfo struct {
	T           TokenType
	Kw          string
	Reserved    bool
	Description string
}

// Token represents a text string returned from the lexer.
type Token struct {
	T     TokenType // type
	V     string    // value; decoded content for strings and quoted identities
	Pos   int       // byte offset of the start of the token in the input
	Quote byte      // quote mark for strings and identities:  ' " `
}

// convert to human readable string
func (t Token) String() string {
	return fmt.Sprintf(`Token{Type:"%v" Value:"%v"}`, t.T.String(), t.V)
}

// Text is the token as it should be quoted back to a user in an error message.
func (t Token) Text() string {
	switch t.T {
	case TokenEOF:
		return "EOF"
	case TokenString:
		return string(t.Quote) + t.V + string(t.Quote)
	case TokenIdentity:
		if t.Quote != 0 {
			return string(t.Quote) + t.V + string(t.Quote)
		}
	case TokenBit:
		if t.Quote != 0 {
			return "b'" + t.V + "'"
		}
		return "0b" + t.V
	}
	return t.V
}

// IsWord reports whether the token is the bare word w (case-insensitive),
// either as a reserved keyword or as an unquoted identity. Quoted identities
// never match, so `table` is always a name.
func (t Token) IsWord(w string) bool {
	if t.Quote != 0 {
		return false
	}
	if t.T == TokenIdentity || t.T.IsKeyword() {
		return strings.EqualFold(t.V, w)
	}
	return false
}

// Category is the coarse classification of a token.
type Category uint8

const (
	CategoryEndOfInput Category = iota
	CategoryKeyword
	CategoryIdentifier
	CategoryQuotedIdentifier
	CategoryStringLiteral
	CategoryNumericLiteral
	CategoryOperator
	CategoryPunctuation
)

var categoryNames = map[Category]string{
	CategoryEndOfInput:       "EndOfInput",
	CategoryKeyword:          "Keyword",
	CategoryIdentifier:       "Identifier",
	CategoryQuotedIdentifier: "QuotedIdentifier",
	CategoryStringLiteral:    "StringLiteral",
	CategoryNumericLiteral:   "NumericLiteral",
	CategoryOperator:         "Operator",
	CategoryPunctuation:      "Punctuation",
}

func (c Category) String() string { return categoryNames[c] }

// Category classifies the token.
func (t Token) Category() Category {
	switch {
	case t.T == TokenEOF:
		return CategoryEndOfInput
	case t.T == TokenIdentity && t.Quote != 0:
		return CategoryQuotedIdentifier
	case t.T == TokenIdentity, t.T == TokenVariable:
		return CategoryIdentifier
	case t.T == TokenString:
		return CategoryStringLiteral
	case t.T == TokenInteger, t.T == TokenFloat, t.T == TokenBit:
		return CategoryNumericLiteral
	case t.T.IsKeyword():
		return CategoryKeyword
	case t.T >= TokenMinus && t.T <= TokenUnknownOperator:
		return CategoryOperator
	}
	return CategoryPunctuation
}

const (
	// List of all TokenTypes Note we do NOT use IOTA because it is evil
	//  if we change the position (ie, add a token not at end) it will cause any
	//  usage of tokens serialized on disk/database to be invalid

	// Basic grammar items
	TokenNil   TokenType = 0 // not used
	TokenEOF   TokenType = 1 // EOF
	TokenEOS   TokenType = 2 // ;
	TokenError TokenType = 4 // error occurred; value is text of error

	// Punctuation
	TokenComma            TokenType = 20 // ,
	TokenStar             TokenType = 21 // *
	TokenPeriod           TokenType = 22 // .
	TokenLeftParenthesis  TokenType = 23 // (
	TokenRightParenthesis TokenType = 24 // )
	TokenQuestion         TokenType = 25 // ? placeholder

	// Operators
	TokenMinus           TokenType = 60 // -
	TokenPlus            TokenType = 61 // +
	TokenDivide          TokenType = 64 // /
	TokenModulus         TokenType = 66 // %
	TokenEqual           TokenType = 67 // =
	TokenNE              TokenType = 69 // <>  or !=
	TokenGE              TokenType = 70 // >=
	TokenLE              TokenType = 71 // <=
	TokenGT              TokenType = 72 // >
	TokenLT              TokenType = 73 // <
	TokenNullSafeEqual   TokenType = 74 // <=>
	TokenOr              TokenType = 75 // ||
	TokenAnd             TokenType = 76 // &&
	TokenBang            TokenType = 77 // !
	TokenAssign          TokenType = 78 // :=
	TokenUnknownOperator TokenType = 79 // any other run of operator characters

	// Reserved keywords.  These may not be used as names unless quoted.
	TokenAdd              TokenType = 100
	TokenAll              TokenType = 101
	TokenAlter            TokenType = 102
	TokenLogicAnd         TokenType = 103 // AND
	TokenAs               TokenType = 104
	TokenAsc              TokenType = 105
	TokenBetween          TokenType = 106
	TokenBinary           TokenType = 107
	TokenBy               TokenType = 108
	TokenCascade          TokenType = 109
	TokenCase             TokenType = 110
	TokenChange           TokenType = 111
	TokenCharacter        TokenType = 112
	TokenCheck            TokenType = 113
	TokenCollate          TokenType = 114
	TokenColumn           TokenType = 115
	TokenConstraint       TokenType = 116
	TokenConvert          TokenType = 117
	TokenCreate           TokenType = 118
	TokenCross            TokenType = 119
	TokenCurrentDate      TokenType = 120
	TokenCurrentTime      TokenType = 121
	TokenCurrentTimestamp TokenType = 122
	TokenDatabase         TokenType = 123
	TokenDefault          TokenType = 124
	TokenDelete           TokenType = 125
	TokenDesc             TokenType = 126
	TokenDistinct         TokenType = 127
	TokenDrop             TokenType = 128
	TokenElse             TokenType = 129
	TokenExcept           TokenType = 130
	TokenExists           TokenType = 131
	TokenFalse            TokenType = 132
	TokenForce            TokenType = 133
	TokenForeign          TokenType = 134
	TokenFrom             TokenType = 135
	TokenFulltext         TokenType = 136
	TokenGenerated        TokenType = 137
	TokenGroup            TokenType = 138
	TokenHaving           TokenType = 139
	TokenIf               TokenType = 140
	TokenIgnore           TokenType = 141
	TokenIN               TokenType = 142
	TokenIndex            TokenType = 143
	TokenInner            TokenType = 144
	TokenInsert           TokenType = 145
	TokenIntersect        TokenType = 146
	TokenInto             TokenType = 147
	TokenIs               TokenType = 148
	TokenJoin             TokenType = 149
	TokenKey              TokenType = 150
	TokenKeys             TokenType = 151
	TokenLeft             TokenType = 152
	TokenLike             TokenType = 153
	TokenLimit            TokenType = 154
	TokenLocalTime        TokenType = 155
	TokenLocalTimestamp   TokenType = 156
	TokenLock             TokenType = 157
	TokenMatch            TokenType = 158
	TokenNatural          TokenType = 159
	TokenNegate           TokenType = 160 // NOT
	TokenNull             TokenType = 161
	TokenOn               TokenType = 162
	TokenLogicOr          TokenType = 163 // OR
	TokenOrder            TokenType = 164
	TokenOuter            TokenType = 165
	TokenPrecision        TokenType = 166
	TokenPrimary          TokenType = 167
	TokenProcedure        TokenType = 168
	TokenRead             TokenType = 169
	TokenReferences       TokenType = 170
	TokenRename           TokenType = 171
	TokenReplace          TokenType = 172
	TokenRestrict         TokenType = 173
	TokenRight            TokenType = 174
	TokenSchema           TokenType = 175
	TokenSelect           TokenType = 176
	TokenSeparator        TokenType = 177
	TokenSet              TokenType = 178
	TokenSpatial          TokenType = 179
	TokenStored           TokenType = 180
	TokenStraightJoin     TokenType = 181
	TokenTable            TokenType = 182
	TokenThen             TokenType = 183
	TokenTo               TokenType = 184
	TokenTrigger          TokenType = 185
	TokenTrue             TokenType = 186
	TokenUndo             TokenType = 187
	TokenUnion            TokenType = 188
	TokenUnique           TokenType = 189
	TokenUnsigned         TokenType = 190
	TokenUpdate           TokenType = 191
	TokenUsing            TokenType = 192
	TokenValues           TokenType = 193
	TokenVirtual          TokenType = 194
	TokenWhen             TokenType = 195
	TokenWhere            TokenType = 196
	TokenWith             TokenType = 197
	TokenZerofill         TokenType = 198

	// Statement keywords that are not reserved.  The lexer emits them as
	// identities; they name statements, see rel.Statement.Keyword().
	TokenTruncate TokenType = 250

	// Value Types
	TokenIdentity TokenType = 300 // identity, either column, table name etc
	TokenVariable TokenType = 301 // @user_var, @@system_var
	TokenString   TokenType = 302 // 'some string'
	TokenInteger  TokenType = 303
	TokenFloat    TokenType = 304
	TokenBit      TokenType = 305 // b'0101', 0b101
)

var (
	// TokenNameMap is the list of token-name.  Reserved keywords are lexed
	// from their Kw; it is populated once at init and never mutated after.
	TokenNameMap = map[TokenType]*TokenInfo{

		TokenEOF:   {Description: "EOF"},
		TokenEOS:   {Description: ";"},
		TokenError: {Description: "Error"},

		// Punctuation
		TokenComma:            {Description: ","},
		TokenStar:             {Description: "*"},
		TokenPeriod:           {Description: "."},
		TokenLeftParenthesis:  {Description: "("},
		TokenRightParenthesis: {Description: ")"},
		TokenQuestion:         {Description: "?"},

		// Operators
		TokenMinus:           {Description: "-"},
		TokenPlus:            {Description: "+"},
		TokenDivide:          {Description: "/"},
		TokenModulus:         {Description: "%"},
		TokenEqual:           {Description: "="},
		TokenNE:              {Description: "<>"},
		TokenGE:              {Description: ">="},
		TokenLE:              {Description: "<="},
		TokenGT:              {Description: ">"},
		TokenLT:              {Description: "<"},
		TokenNullSafeEqual:   {Description: "<=>"},
		TokenOr:              {Description: "||"},
		TokenAnd:             {Description: "&&"},
		TokenBang:            {Description: "!"},
		TokenAssign:          {Description: ":="},
		TokenUnknownOperator: {Description: "operator"},

		// Reserved keywords
		TokenAdd:              {Kw: "add"},
		TokenAll:              {Kw: "all"},
		TokenAlter:            {Kw: "alter"},
		TokenLogicAnd:         {Kw: "and"},
		TokenAs:               {Kw: "as"},
		TokenAsc:              {Kw: "asc"},
		TokenBetween:          {Kw: "between"},
		TokenBinary:           {Kw: "binary"},
		TokenBy:               {Kw: "by"},
		TokenCascade:          {Kw: "cascade"},
		TokenCase:             {Kw: "case"},
		TokenChange:           {Kw: "change"},
		TokenCharacter:        {Kw: "character"},
		TokenCheck:            {Kw: "check"},
		TokenCollate:          {Kw: "collate"},
		TokenColumn:           {Kw: "column"},
		TokenConstraint:       {Kw: "constraint"},
		TokenConvert:          {Kw: "convert"},
		TokenCreate:           {Kw: "create"},
		TokenCross:            {Kw: "cross"},
		TokenCurrentDate:      {Kw: "current_date"},
		TokenCurrentTime:      {Kw: "current_time"},
		TokenCurrentTimestamp: {Kw: "current_timestamp"},
		TokenDatabase:         {Kw: "database"},
		TokenDefault:          {Kw: "default"},
		TokenDelete:           {Kw: "delete"},
		TokenDesc:             {Kw: "desc"},
		TokenDistinct:         {Kw: "distinct"},
		TokenDrop:             {Kw: "drop"},
		TokenElse:             {Kw: "else"},
		TokenExcept:           {Kw: "except"},
		TokenExists:           {Kw: "exists"},
		TokenFalse:            {Kw: "false"},
		TokenForce:            {Kw: "force"},
		TokenForeign:          {Kw: "foreign"},
		TokenFrom:             {Kw: "from"},
		TokenFulltext:         {Kw: "fulltext"},
		TokenGenerated:        {Kw: "generated"},
		TokenGroup:            {Kw: "group"},
		TokenHaving:           {Kw: "having"},
		TokenIf:               {Kw: "if"},
		TokenIgnore:           {Kw: "ignore"},
		TokenIN:               {Kw: "in"},
		TokenIndex:            {Kw: "index"},
		TokenInner:            {Kw: "inner"},
		TokenInsert:           {Kw: "insert"},
		TokenIntersect:        {Kw: "intersect"},
		TokenInto:             {Kw: "into"},
		TokenIs:               {Kw: "is"},
		TokenJoin:             {Kw: "join"},
		TokenKey:              {Kw: "key"},
		TokenKeys:             {Kw: "keys"},
		TokenLeft:             {Kw: "left"},
		TokenLike:             {Kw: "like"},
		TokenLimit:            {Kw: "limit"},
		TokenLocalTime:        {Kw: "localtime"},
		TokenLocalTimestamp:   {Kw: "localtimestamp"},
		TokenLock:             {Kw: "lock"},
		TokenMatch:            {Kw: "match"},
		TokenNatural:          {Kw: "natural"},
		TokenNegate:           {Kw: "not"},
		TokenNull:             {Kw: "null"},
		TokenOn:               {Kw: "on"},
		TokenLogicOr:          {Kw: "or"},
		TokenOrder:            {Kw: "order"},
		TokenOuter:            {Kw: "outer"},
		TokenPrecision:        {Kw: "precision"},
		TokenPrimary:          {Kw: "primary"},
		TokenProcedure:        {Kw: "procedure"},
		TokenRead:             {Kw: "read"},
		TokenReferences:       {Kw: "references"},
		TokenRename:           {Kw: "rename"},
		TokenReplace:          {Kw: "replace"},
		TokenRestrict:         {Kw: "restrict"},
		TokenRight:            {Kw: "right"},
		TokenSchema:           {Kw: "schema"},
		TokenSelect:           {Kw: "select"},
		TokenSeparator:        {Kw: "separator"},
		TokenSet:              {Kw: "set"},
		TokenSpatial:          {Kw: "spatial"},
		TokenStored:           {Kw: "stored"},
		TokenStraightJoin:     {Kw: "straight_join"},
		TokenTable:            {Kw: "table"},
		TokenThen:             {Kw: "then"},
		TokenTo:               {Kw: "to"},
		TokenTrigger:          {Kw: "trigger"},
		TokenTrue:             {Kw: "true"},
		TokenUndo:             {Kw: "undo"},
		TokenUnion:            {Kw: "union"},
		TokenUnique:           {Kw: "unique"},
		TokenUnsigned:         {Kw: "unsigned"},
		TokenUpdate:           {Kw: "update"},
		TokenUsing:            {Kw: "using"},
		TokenValues:           {Kw: "values"},
		TokenVirtual:          {Kw: "virtual"},
		TokenWhen:             {Kw: "when"},
		TokenWhere:            {Kw: "where"},
		TokenWith:             {Kw: "with"},
		TokenZerofill:         {Kw: "zerofill"},

		TokenTruncate: {Description: "TRUNCATE"},

		// value types
		TokenIdentity: {Description: "identity"},
		TokenVariable: {Description: "variable"},
		TokenString:   {Description: "string"},
		TokenInteger:  {Description: "integer"},
		TokenFloat:    {Description: "float"},
		TokenBit:      {Description: "bit"},
	}

	// keywords is the lower-case keyword to TokenType lookup used by the lexer.
	keywords = make(map[string]TokenType)
)

func init() {
	LoadTokenInfo()
}

// LoadTokenInfo fills in the derived TokenInfo fields and the keyword lookup.
// Called once from init.
func LoadTokenInfo() {
	for tok, ti := range TokenNameMap {
		ti.T = tok
		if ti.Kw != "" {
			ti.Reserved = true
			if ti.Description == "" {
				ti.Description = strings.ToUpper(ti.Kw)
			}
			keywords[ti.Kw] = tok
		}
	}
}

// convert to human readable string
func (typ TokenType) String() string {
	s, ok := TokenNameMap[typ]
	if ok {
		return s.Description
	}
	return "not implemented"
}

// IsKeyword is this a reserved keyword token?
func (typ TokenType) IsKeyword() bool {
	return typ >= TokenAdd && typ < TokenIdentity
}

// LookupKeyword finds the reserved keyword TokenType for word, case-insensitive.
func LookupKeyword(word string) (TokenType, bool) {
	tok, ok := keywords[strings.ToLower(word)]
	return tok, ok
}

// IsReserved is word a reserved keyword, which must be quoted to be a name?
func IsReserved(word string) bool {
	_, ok := LookupKeyword(word)
	return ok
}

// NeedsQuoting reports whether ident can not be written bare and round-trip
// through the lexer as the same identity.
func NeedsQuoting(ident string) bool {
	if ident == "" || IsReserved(ident) {
		return true
	}
	for i, r := range ident {
		if i == 0 && isDigit(r) {
			return true
		}
		if !isIdentifierRune(r) {
			return true
		}
	}
	return false
}

// QuoteIdentifier backtick-quotes ident when NeedsQuoting says so, doubling
// any embedded backticks.
func QuoteIdentifier(ident string) string {
	if !NeedsQuoting(ident) {
		return ident
	}
	return BacktickQuote(ident)
}

// BacktickQuote quotes ident whether or not it needs it.
func BacktickQuote(ident string) string {
	return "`" + strings.Replace(ident, "`", "``", -1) + "`"
}

// isIdentifierRune letters, digits, _ and $ may appear in a bare identity.
func isIdentifierRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
