package rel_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/araddon/sqlparse/lex"
	"github.com/araddon/sqlparse/rel"
)

func TestFingerPrint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		sql string
		fp  string
	}{
		{"SELECT a FROM t WHERE b = 10 AND c = 'x'", "SELECT a FROM t WHERE b = ? AND c = ?"},
		{"select A from T where b=20 and c='y'", "SELECT a FROM t WHERE b = ? AND c = ?"},
		{"INSERT INTO Users (Id, Name) VALUES (1, 'bob'), (2, 'al')", "INSERT INTO users (id, name) VALUES (?, ?), (?, ?)"},
		{"UPDATE t SET a = 'x' WHERE id = 7", "UPDATE t SET a = ? WHERE id = ?"},
		{"SET GLOBAL sql_mode = TRADITIONAL, @X = 5", "SET GLOBAL sql_mode = ?, @x = ?"},
		{"DROP SPATIAL REFERENCE SYSTEM 4120", "DROP SPATIAL REFERENCE SYSTEM ?"},
		{"CREATE TABLE T (A INT COMMENT 'x')", "CREATE TABLE t (a INT COMMENT ?)"},
		{"DROP TABLE DB.T1", "DROP TABLE db.t1"},
	}
	for _, tt := range tests {
		stmt := parseSqlTest(t, tt.sql)
		assert.Equal(t, tt.fp, stmt.FingerPrint('?'), tt.sql)
	}
}

func TestFingerPrintID(t *testing.T) {
	t.Parallel()
	s1 := parseSqlTest(t, "SELECT a FROM t WHERE b = 10 AND c = 'x'")
	s2 := parseSqlTest(t, "select A from T where b=20 and c='y'")
	s3 := parseSqlTest(t, "SELECT a FROM t WHERE b = 10")

	assert.Equal(t, s1.FingerPrintID(), s2.FingerPrintID())
	assert.NotEqual(t, s1.FingerPrintID(), s3.FingerPrintID())
	assert.NotEqual(t, uint64(0), s1.FingerPrintID())

	// the canonical text keeps the values
	assert.NotEqual(t, s1.String(), s2.String())
}

func TestKeyword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		sql string
		kw  lex.TokenType
	}{
		{"SELECT 1", lex.TokenSelect},
		{"SELECT 1 UNION SELECT 2", lex.TokenUnion},
		{"INSERT INTO t VALUES (1)", lex.TokenInsert},
		{"REPLACE INTO t VALUES (1)", lex.TokenReplace},
		{"UPDATE t SET a = 1", lex.TokenUpdate},
		{"DELETE FROM t", lex.TokenDelete},
		{"SET a = 1", lex.TokenSet},
		{"CREATE TABLE t (a INT)", lex.TokenCreate},
		{"CREATE INDEX i ON t (a)", lex.TokenCreate},
		{"CREATE VIEW v AS SELECT 1", lex.TokenCreate},
		{"ALTER TABLE t FORCE", lex.TokenAlter},
		{"ALTER DATABASE d COLLATE utf8mb4_bin", lex.TokenAlter},
		{"DROP VIEW v", lex.TokenDrop},
		{"RENAME TABLE a TO b", lex.TokenRename},
		{"TRUNCATE t", lex.TokenTruncate},
	}
	for _, tt := range tests {
		stmt := parseSqlTest(t, tt.sql)
		assert.Equal(t, tt.kw, stmt.Keyword(), tt.sql)
	}
}

func TestTable(t *testing.T) {
	t.Parallel()
	tbl := rel.NewTable("db.users")
	assert.Equal(t, &rel.Table{Schema: "db", Name: "users"}, tbl)
	assert.Equal(t, "db.users", tbl.Key())

	tbl = rel.NewTable("users")
	assert.Equal(t, "", tbl.Schema)
	assert.Equal(t, "users", tbl.Key())

	tbl.Alias = "u"
	assert.Equal(t, "users AS u", tbl.String())

	tbl = &rel.Table{Name: "select"}
	assert.Equal(t, "`select`", tbl.String())
}

func TestColumnDefHelpers(t *testing.T) {
	t.Parallel()
	stmt := parseSqlTest(t, "CREATE TABLE t (a INT PRIMARY KEY, b INT NULL, c INT NOT NULL DEFAULT 0)")
	cols := stmt.(*rel.SqlCreateTable).Columns()
	require.Len(t, cols, 3)
	assert.False(t, cols[0].Nullable())
	assert.True(t, cols[1].Nullable())
	assert.False(t, cols[2].Nullable())
	assert.Equal(t, "0", cols[2].Attr(rel.AttrDefault).Value.String())
	assert.Equal(t, "c INT NOT NULL DEFAULT 0", cols[2].String())
}

var normalizeSql = []string{
	"select a,b from T1 where x=1",
	"SELECT a FROM t LIMIT 5, 10",
	"select * from t left outer join u on t.a=u.a",
	"SELECT a FROM t1 UNION DISTINCT SELECT a FROM t2",
	"(SELECT a FROM t)",
	"SET @x := 5",
	"set session sql_mode = 'ANSI', names latin1",
	"insert t value (1)",
	"create table t (a int key, b enum('x','y') not null default 'x') engine innodb, auto_increment 10 default charset utf8",
	"CREATE TABLE t (a INT, CONSTRAINT PRIMARY KEY (a))",
	"CREATE INDEX i USING HASH ON t (a(10) ASC)",
	"alter table t drop index i, add index (a), add fulltext (b)",
	"alter table t modify a varchar(20) character set utf8mb4 collate utf8mb4_bin after b",
	"DROP SCHEMA IF EXISTS d",
	"drop undo tablespace ts engine = innodb",
	"rename table a to b;",
	"TRUNCATE t",
}

func TestNormalize(t *testing.T) {
	var buf bytes.Buffer
	for _, sql := range normalizeSql {
		stmt := parseSqlTest(t, sql)
		fmt.Fprintf(&buf, "%s\n    %s\n", sql, stmt.String())
	}
	golden.Assert(t, buf.String(), "normalize.golden")
}
