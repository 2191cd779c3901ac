// Sqlparse is a MySQL dialect SQL parser.  It turns statement text into
// a typed syntax tree and writes trees back out as canonical SQL, or as
// fingerprints with literal values masked for grouping like statements.
//
// The packages are layered:
//
//	lex     tokens, keywords and the lexer
//	expr    expression trees, the token pager and the expression parser
//	rel     statements; select, insert, update, delete, set, create, alter,
//	        drop, rename and truncate
//	errors  coded parse errors carrying position, line and column
//	config  parser options (quoting, case folding) loaded from yaml
//
// Parsing a statement:
//
//	stmt, err := rel.ParseSql("select a,b from T1 where x=1")
//	// stmt.String() == "SELECT a, b FROM T1 WHERE x = 1"
//	// stmt.FingerPrint('?') == "SELECT a, b FROM t1 WHERE x = ?"
package sqlparse
