package rel_test

import (
	"flag"
	"os"
	"testing"

	u "github.com/araddon/gou"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araddon/sqlparse/config"
	"github.com/araddon/sqlparse/errors"
	"github.com/araddon/sqlparse/expr"
	"github.com/araddon/sqlparse/lex"
	"github.com/araddon/sqlparse/rel"
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
	deep.MaxDepth = 40
	// Now run the actual Tests
	os.Exit(m.Run())
}

func parseSqlTest(t *testing.T, sql string) rel.Statement {
	t.Helper()
	u.Debugf("parsing sql: %s", sql)
	stmt, err := rel.ParseSql(sql)
	require.NoError(t, err, sql)
	require.NotNil(t, stmt, sql)
	return stmt
}

func col(name string) *expr.Column { return &expr.Column{Name: name} }

// statements already in canonical form render back unchanged
var canonicalSql = []string{
	"SELECT a FROM table_1",
	"SELECT DISTINCT a, b AS x FROM t WHERE a > 10 AND b LIKE 'x%'",
	"SELECT * FROM db.t AS t1 INNER JOIN t2 ON t1.id = t2.id LEFT JOIN t3 USING (id)",
	"SELECT count(*) AS ct, myfunc(b) FROM t GROUP BY a HAVING count(*) > 1 ORDER BY a DESC, b LIMIT 10 OFFSET 5",
	"SELECT a FROM t1, t2 CROSS JOIN t3 NATURAL JOIN t4 STRAIGHT_JOIN t5",
	"SELECT a FROM (SELECT a FROM t LIMIT 1) AS d",
	"SELECT a FROM t1 UNION ALL SELECT a FROM t2 ORDER BY a LIMIT 3",
	"(SELECT a FROM t1 ORDER BY a LIMIT 1) UNION (SELECT a FROM t2 LIMIT 2) ORDER BY a",
	"SELECT a FROM t1 INTERSECT SELECT a FROM t2 EXCEPT SELECT a FROM t3",
	"SELECT @x, @@global.max_connections",
	"SELECT `select`, `a b` FROM `from`",
	"INSERT INTO t (a, b) VALUES (1, 'x'), (2, NULL)",
	"INSERT IGNORE INTO t SET a = 1, b = b + 1",
	"REPLACE INTO t (a) SELECT a FROM s",
	"INSERT INTO t (a) VALUES (1) ON DUPLICATE KEY UPDATE a = a + 1",
	"UPDATE t SET a = 1 WHERE b = 2 ORDER BY c LIMIT 10",
	"DELETE FROM t WHERE a IS NULL LIMIT 1",
	"SET GLOBAL max_connections = 100, sql_mode = TRADITIONAL",
	"SET @x = 1 + 2",
	"SET autocommit = ON",
	"SET NAMES utf8mb4 COLLATE utf8mb4_bin",
	"CREATE TABLE t (id INT UNSIGNED NOT NULL AUTO_INCREMENT, name VARCHAR(255) DEFAULT 'x' COMMENT 'the name', " +
		"created TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP, PRIMARY KEY (id), " +
		"UNIQUE KEY uk_name (name(10)), KEY idx (created DESC)) ENGINE=InnoDB CHARACTER SET=utf8mb4",
	"CREATE TEMPORARY TABLE IF NOT EXISTS s.t LIKE s.u",
	"CREATE TABLE t2 AS SELECT a FROM t",
	"CREATE TABLE t (a INT) PARTITION BY HASH(a) PARTITIONS 4",
	"CREATE TABLE b (f BIT(8) DEFAULT b'0101') ENGINE=InnoDB",
	"CREATE TABLE c (id INT, CONSTRAINT fk FOREIGN KEY (id) REFERENCES p (id) ON DELETE CASCADE, CHECK (id > 0) NOT ENFORCED)",
	"CREATE TABLE g (a INT, b INT GENERATED ALWAYS AS (a * 2) STORED, c DECIMAL(10, 2) ZEROFILL)",
	"CREATE UNIQUE INDEX idx ON t (a, b DESC) COMMENT 'c' ALGORITHM=INPLACE LOCK=NONE",
	"CREATE OR REPLACE VIEW v (a) AS SELECT a FROM t",
	"ALTER TABLE t ADD COLUMN c INT NOT NULL AFTER b, DROP COLUMN d, MODIFY COLUMN e BIGINT FIRST, " +
		"CHANGE COLUMN f g TEXT, ADD UNIQUE KEY uk (c), DROP PRIMARY KEY, RENAME COLUMN h TO i, ALGORITHM=INPLACE",
	"ALTER TABLE t ENGINE=InnoDB, CONVERT TO CHARACTER SET utf8mb4 COLLATE utf8mb4_bin, ENABLE KEYS, RENAME TO u",
	"ALTER TABLE t ALTER COLUMN a SET DEFAULT 0, ALTER INDEX i INVISIBLE, ALTER CHECK c NOT ENFORCED",
	"ALTER DATABASE d CHARACTER SET=utf8mb4 READ ONLY=1",
	"DROP TABLE IF EXISTS t1, t2 CASCADE",
	"DROP TEMPORARY TABLE t",
	"DROP TABLESPACE ts1",
	"DROP UNDO TABLESPACE ts ENGINE=InnoDB",
	"DROP DATABASE IF EXISTS d",
	"DROP EVENT s.e",
	"DROP PROCEDURE IF EXISTS p",
	"DROP FUNCTION f",
	"DROP INDEX i ON t ALGORITHM=COPY",
	"DROP LOGFILE GROUP g ENGINE=NDB",
	"DROP SERVER IF EXISTS s",
	"DROP SPATIAL REFERENCE SYSTEM IF EXISTS 4120",
	"DROP TRIGGER IF EXISTS s.tr",
	"DROP VIEW v1, v2 RESTRICT",
	"RENAME TABLE a TO b, c TO d",
	"TRUNCATE TABLE t",
}

func TestCanonicalRoundTrip(t *testing.T) {
	t.Parallel()
	for _, sql := range canonicalSql {
		stmt := parseSqlTest(t, sql)
		assert.Equal(t, sql, stmt.String())
	}
}

func TestStructuralIdempotence(t *testing.T) {
	t.Parallel()
	sqls := append([]string{
		"select a,b from T1 where x=1",
		"SELECT a FROM t LIMIT 5, 10",
		"select * from t left outer join u on t.a=u.a",
		"SET @x := 5",
		"insert t value (1)",
		"create table t (a int key, b enum('x','y') not null default 'x') engine innodb, auto_increment 10",
		"alter table t drop index i, add index (a), add fulltext (b)",
		"select a from t where a in (1,2,3) and b between 1 and 10 or not c",
		"select case when a = 1 then 'x' else 'y' end as z from t",
		"create table t (a int default -1, b int default (a + 1))",
		"SELECT a FROM t;",
		"SELECT -(1.5), - (0x10) FROM t WHERE -(1) < a",
		"create table t (f bit(1) default b'0', g int default 0b11)",
		"create table t (a int) comment 'a' 'b' engine innodb partition by key (a) partitions 2",
	}, canonicalSql...)

	for _, sql := range sqls {
		stmt := parseSqlTest(t, sql)
		again, err := rel.ParseSql(stmt.String())
		require.NoError(t, err, stmt.String())
		if diff := deep.Equal(stmt, again); diff != nil {
			t.Errorf("%s\n  rendered %s\n  %v", sql, stmt.String(), diff)
		}
		assert.Equal(t, stmt.String(), again.String())
	}
}

func TestSelectAst(t *testing.T) {
	t.Parallel()

	stmt := parseSqlTest(t, "SELECT a FROM table_1")
	exp := &rel.SqlSelect{
		Columns: rel.Columns{col("a")},
		From:    &rel.Table{Name: "table_1"},
	}
	assert.Nil(t, deep.Equal(exp, stmt))

	sel, err := rel.ParseSqlSelect("SELECT a FROM t WHERE a > b AND b < 100 ORDER BY a DESC, b")
	require.NoError(t, err)
	where := &expr.ConditionTree{
		Op:    expr.OpAnd,
		Left:  &expr.ConditionTree{Op: expr.OpGreater, Left: col("a"), Right: col("b")},
		Right: &expr.ConditionTree{Op: expr.OpLess, Left: col("b"), Right: &expr.IntegerLiteral{Val: 100}},
	}
	assert.Nil(t, deep.Equal(where, sel.Where))
	require.Len(t, sel.OrderBy, 2)
	assert.Equal(t, "a", sel.OrderBy[0].Column.Name)
	assert.Equal(t, rel.Desc, sel.OrderBy[0].Direction)
	assert.Equal(t, "b", sel.OrderBy[1].Column.Name)
	assert.Equal(t, rel.Asc, sel.OrderBy[1].Direction)

	sel, err = rel.ParseSqlSelect("SELECT a FROM t ORDER BY b, a DESC")
	require.NoError(t, err)
	assert.Equal(t, "b", sel.OrderBy[0].Column.Name)
	assert.Equal(t, rel.Asc, sel.OrderBy[0].Direction)
	assert.Equal(t, rel.Desc, sel.OrderBy[1].Direction)

	sel, err = rel.ParseSqlSelect("SELECT myfunc(b) FROM t")
	require.NoError(t, err)
	field := sel.Columns[0]
	assert.Equal(t, "myfunc(b)", field.Name)
	require.NotNil(t, field.Function)
	assert.Equal(t, expr.FuncGeneric, field.Function.Kind)
	assert.Equal(t, "myfunc", field.Function.Name)
	assert.Nil(t, deep.Equal([]expr.Node{col("b")}, field.Function.Args))

	sel, err = rel.ParseSqlSelect("SELECT a AS x, b y, c AS 'z', d FROM t")
	require.NoError(t, err)
	var aliases []string
	for _, col := range sel.Columns {
		aliases = append(aliases, col.Alias)
	}
	assert.Equal(t, []string{"x", "y", "z", ""}, aliases)

	sel, err = rel.ParseSqlSelect("SELECT a FROM t LIMIT 5, 10")
	require.NoError(t, err)
	assert.Equal(t, &rel.Limit{Count: 10, Offset: 5}, sel.Limit)
	assert.Equal(t, "LIMIT 10 OFFSET 5", sel.Limit.String())

	_, err = rel.ParseSqlSelect("DROP TABLE t")
	assert.Error(t, err)
}

func TestSelectSources(t *testing.T) {
	t.Parallel()
	sel, err := rel.ParseSqlSelect(`SELECT u.name, o.total FROM shop.users u
		JOIN orders AS o ON u.id = o.user_id
		RIGHT OUTER JOIN refunds r USING (order_id)
		NATURAL LEFT JOIN notes, (SELECT 1 AS one) AS d`)
	require.NoError(t, err)

	assert.Equal(t, &rel.Table{Schema: "shop", Name: "users", Alias: "u"}, sel.From)
	require.Len(t, sel.Joins, 4)
	kinds := make([]rel.JoinKind, len(sel.Joins))
	for i, j := range sel.Joins {
		kinds[i] = j.Kind
	}
	assert.Equal(t, []rel.JoinKind{rel.JoinPlain, rel.JoinRight, rel.JoinNaturalLeft, rel.JoinComma}, kinds)
	assert.Equal(t, "u.id = o.user_id", sel.Joins[0].On.String())
	assert.Equal(t, []string{"order_id"}, sel.Joins[1].Using)
	assert.NotNil(t, sel.Joins[3].Table.SubQuery)

	var names []string
	for _, tbl := range sel.Tables() {
		names = append(names, tbl.Key())
	}
	assert.Equal(t, []string{"shop.users", "orders", "refunds", "notes"}, names)
}

func TestUnion(t *testing.T) {
	t.Parallel()
	stmt := parseSqlTest(t, "SELECT a FROM t1 UNION ALL SELECT a FROM t2 UNION SELECT a FROM t3 ORDER BY a LIMIT 3")
	un, ok := stmt.(*rel.SqlUnion)
	require.True(t, ok, "%T", stmt)
	assert.Len(t, un.Selects, 3)
	assert.Equal(t, []rel.SetOp{{Kind: rel.Union, All: true}, {Kind: rel.Union}}, un.Ops)
	assert.Len(t, un.OrderBy, 1)
	assert.Equal(t, int64(3), un.Limit.Count)
	assert.Nil(t, un.Selects[2].OrderBy)
	assert.Nil(t, un.Selects[2].Limit)
	assert.Equal(t, lex.TokenUnion, un.Keyword())

	stmt = parseSqlTest(t, "(SELECT a FROM t1 LIMIT 1) UNION (SELECT a FROM t2 LIMIT 2)")
	un = stmt.(*rel.SqlUnion)
	assert.Equal(t, int64(1), un.Selects[0].Limit.Count)
	assert.Equal(t, int64(2), un.Selects[1].Limit.Count)
	assert.Nil(t, un.Limit)

	// a single parenthesised select is just the select
	stmt = parseSqlTest(t, "((SELECT a FROM t))")
	_, ok = stmt.(*rel.SqlSelect)
	assert.True(t, ok, "%T", stmt)
}

func TestAggQuery(t *testing.T) {
	t.Parallel()
	sel, err := rel.ParseSqlSelect("SELECT count(*) FROM t")
	require.NoError(t, err)
	assert.True(t, sel.CountStar())
	assert.True(t, sel.IsAggQuery())

	sel, err = rel.ParseSqlSelect("SELECT a, sum(b) FROM t")
	require.NoError(t, err)
	assert.False(t, sel.CountStar())
	assert.True(t, sel.IsAggQuery())

	sel, err = rel.ParseSqlSelect("SELECT a FROM t GROUP BY a")
	require.NoError(t, err)
	assert.True(t, sel.IsAggQuery())
	assert.Equal(t, []string{"a"}, sel.GroupBy.Names())

	sel, err = rel.ParseSqlSelect("SELECT a, lower(b) FROM t")
	require.NoError(t, err)
	assert.False(t, sel.IsAggQuery())
}

func TestDmlAst(t *testing.T) {
	t.Parallel()

	stmt := parseSqlTest(t, "INSERT INTO db.t (a, b) VALUES (1, 'x'), (2, NULL)")
	ins := stmt.(*rel.SqlInsert)
	assert.Equal(t, &rel.Table{Schema: "db", Name: "t"}, ins.Table)
	assert.Equal(t, []string{"a", "b"}, ins.Columns)
	exp := [][]expr.Node{
		{&expr.IntegerLiteral{Val: 1}, &expr.StringLiteral{Val: "x"}},
		{&expr.IntegerLiteral{Val: 2}, &expr.NullLiteral{}},
	}
	assert.Nil(t, deep.Equal(exp, ins.Rows))
	assert.Equal(t, lex.TokenInsert, ins.Keyword())

	stmt = parseSqlTest(t, "REPLACE t SET a = 1")
	ins = stmt.(*rel.SqlInsert)
	assert.True(t, ins.Replace)
	assert.Equal(t, lex.TokenReplace, ins.Keyword())
	require.Len(t, ins.Set, 1)
	assert.Equal(t, "a", ins.Set[0].Column.Name)

	stmt = parseSqlTest(t, "INSERT INTO t (SELECT a FROM s)")
	ins = stmt.(*rel.SqlInsert)
	assert.Nil(t, ins.Columns)
	assert.NotNil(t, ins.Select)

	stmt = parseSqlTest(t, "UPDATE IGNORE t AS x SET x.a = 2 WHERE b = 1 LIMIT 5")
	up := stmt.(*rel.SqlUpdate)
	assert.True(t, up.Ignore)
	assert.Equal(t, "x", up.Table.Alias)
	assert.Equal(t, &expr.Column{Table: "x", Name: "a"}, up.Set[0].Column)
	assert.Equal(t, int64(5), up.Limit.Count)

	stmt = parseSqlTest(t, "DELETE FROM t WHERE a = 1 ORDER BY b DESC LIMIT 1")
	del := stmt.(*rel.SqlDelete)
	assert.Equal(t, "t", del.Table.Name)
	assert.Equal(t, rel.Desc, del.OrderBy[0].Direction)
	assert.Equal(t, lex.TokenDelete, del.Keyword())
}

func TestSetAst(t *testing.T) {
	t.Parallel()
	stmt := parseSqlTest(t, "SET sql_mode = TRADITIONAL, @x := 'y', SESSION wait_timeout = 10, @@global.foo = 1, NAMES DEFAULT")
	set := stmt.(*rel.SqlSet)
	require.Len(t, set.Assignments, 5)

	a := set.Assignments
	assert.Equal(t, &rel.SetAssignment{Name: "sql_mode", Ident: "TRADITIONAL"}, a[0])
	assert.Equal(t, "@x", a[1].Name)
	assert.Nil(t, deep.Equal(&expr.StringLiteral{Val: "y"}, a[1].Value))
	assert.Equal(t, rel.ScopeSession, a[2].Scope)
	assert.Equal(t, "wait_timeout", a[2].Name)
	assert.Equal(t, "@@global.foo", a[3].Name)
	assert.Equal(t, rel.SetNames, a[4].Form)
	assert.Equal(t, "SET sql_mode = TRADITIONAL, @x = 'y', SESSION wait_timeout = 10, @@global.foo = 1, NAMES DEFAULT", set.String())

	// a scope word followed by = is the variable name
	stmt = parseSqlTest(t, "SET global = 1")
	assert.Equal(t, &rel.SetAssignment{Name: "global", Value: &expr.IntegerLiteral{Val: 1}}, stmt.(*rel.SqlSet).Assignments[0])

	// a word inside an expression stays a column reference
	stmt = parseSqlTest(t, "SET x = y + 1")
	assert.Equal(t, "", stmt.(*rel.SqlSet).Assignments[0].Ident)

	scope, ok := rel.LookupScope("persist_only")
	assert.True(t, ok)
	assert.Equal(t, rel.ScopePersistOnly, scope)
	_, ok = rel.LookupScope("nope")
	assert.False(t, ok)
}

func TestDropDispatch(t *testing.T) {
	t.Parallel()

	stmt := parseSqlTest(t, "DROP TABLE t1, t2")
	dt, ok := stmt.(*rel.SqlDropTable)
	require.True(t, ok, "%T", stmt)
	assert.Equal(t, []*rel.Table{{Name: "t1"}, {Name: "t2"}}, dt.Tables)
	assert.Equal(t, lex.TokenDrop, dt.Keyword())

	stmt = parseSqlTest(t, "DROP TABLESPACE ts1")
	ts, ok := stmt.(*rel.SqlDropTablespace)
	require.True(t, ok, "%T", stmt)
	assert.Equal(t, &rel.SqlDropTablespace{Name: "ts1"}, ts)

	tests := []struct {
		sql string
		exp rel.Statement
	}{
		{"DROP SCHEMA d", &rel.SqlDropDatabase{Name: "d"}},
		{"DROP EVENT IF EXISTS e", &rel.SqlDropEvent{IfExists: true, Name: &rel.Table{Name: "e"}}},
		{"DROP FUNCTION s.f", &rel.SqlDropRoutine{Kind: rel.RoutineFunction, Name: &rel.Table{Schema: "s", Name: "f"}}},
		{"DROP PROCEDURE p", &rel.SqlDropRoutine{Kind: rel.RoutineProcedure, Name: &rel.Table{Name: "p"}}},
		{"DROP INDEX i ON t LOCK = shared", &rel.SqlDropIndex{Name: "i", Table: &rel.Table{Name: "t"}, Lock: "SHARED"}},
		{"DROP LOGFILE GROUP g ENGINE = ndb", &rel.SqlDropLogfileGroup{Name: "g", Engine: "ndb"}},
		{"DROP SERVER s", &rel.SqlDropServer{Name: "s"}},
		{"DROP SPATIAL REFERENCE SYSTEM 4120", &rel.SqlDropSpatialReferenceSystem{Srid: 4120}},
		{"DROP TEMPORARY TABLE IF EXISTS t", &rel.SqlDropTable{Temporary: true, IfExists: true, Tables: []*rel.Table{{Name: "t"}}}},
		{"DROP UNDO TABLESPACE u", &rel.SqlDropTablespace{Undo: true, Name: "u"}},
		{"DROP TRIGGER tr", &rel.SqlDropTrigger{Name: &rel.Table{Name: "tr"}}},
		{"DROP VIEW IF EXISTS v CASCADE", &rel.SqlDropView{IfExists: true, Views: []*rel.Table{{Name: "v"}}, Option: "CASCADE"}},
		{"RENAME TABLE a TO b", &rel.SqlRenameTable{Pairs: []*rel.RenamePair{{From: &rel.Table{Name: "a"}, To: &rel.Table{Name: "b"}}}}},
		{"truncate t", &rel.SqlTruncate{Table: &rel.Table{Name: "t"}}},
	}
	for _, tt := range tests {
		stmt := parseSqlTest(t, tt.sql)
		assert.Nil(t, deep.Equal(tt.exp, stmt), tt.sql)
	}
}

func TestCreateTableAst(t *testing.T) {
	t.Parallel()
	stmt := parseSqlTest(t, `CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email VARCHAR(255) CHARACTER SET utf8mb4 NOT NULL COMMENT 'login',
		kind ENUM('a', 'b') DEFAULT 'a',
		score DOUBLE PRECISION,
		PRIMARY KEY (id),
		CONSTRAINT uq_email UNIQUE INDEX (email),
		FOREIGN KEY fk_kind (kind) REFERENCES kinds (name) ON UPDATE SET NULL ON DELETE NO ACTION
	) ENGINE = InnoDB, ROW_FORMAT=DYNAMIC COMMENT 'people' STATS_PERSISTENT=DEFAULT`)
	ct, ok := stmt.(*rel.SqlCreateTable)
	require.True(t, ok, "%T", stmt)
	assert.True(t, ct.IfNotExists)
	assert.Equal(t, lex.TokenCreate, ct.Keyword())

	cols := ct.Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, "id", cols[0].Name)
	assert.Equal(t, &rel.DataType{Name: "BIGINT", Unsigned: true}, cols[0].Type)
	assert.False(t, cols[0].Nullable())
	assert.NotNil(t, cols[0].Attr(rel.AttrAutoIncrement))
	assert.Equal(t, &rel.DataType{Name: "VARCHAR", Args: []int{255}}, cols[1].Type)
	assert.Equal(t, "utf8mb4", cols[1].Attr(rel.AttrCharacterSet).Text)
	assert.Equal(t, "login", cols[1].Attr(rel.AttrComment).Text)
	assert.Equal(t, []string{"a", "b"}, cols[2].Type.Values)
	assert.True(t, cols[2].Nullable())
	assert.Equal(t, "DOUBLE PRECISION", cols[3].Type.Name)
	assert.Nil(t, cols[3].Attr(rel.AttrDefault))

	require.Len(t, ct.Elements, 7)
	pk := ct.Elements[4].(*rel.IndexDef)
	assert.Equal(t, rel.IndexPrimary, pk.Kind)
	uq := ct.Elements[5].(*rel.IndexDef)
	assert.Equal(t, rel.IndexUnique, uq.Kind)
	assert.Equal(t, "uq_email", uq.Constraint)
	assert.Equal(t, "", uq.Name)
	fk := ct.Elements[6].(*rel.ForeignKeyDef)
	assert.Equal(t, "fk_kind", fk.Name)
	assert.Equal(t, "SET NULL", fk.Reference.OnUpdate)
	assert.Equal(t, "NO ACTION", fk.Reference.OnDelete)

	assert.Equal(t, []*rel.TableOption{
		{Name: "ENGINE", Value: "InnoDB"},
		{Name: "ROW_FORMAT", Value: "DYNAMIC"},
		{Name: "COMMENT", Value: "'people'"},
		{Name: "STATS_PERSISTENT", Value: "DEFAULT"},
	}, ct.Options)
	engine, ok := ct.Option("engine")
	assert.True(t, ok)
	assert.Equal(t, "InnoDB", engine)
	_, ok = ct.Option("tablespace")
	assert.False(t, ok)
}

func TestCreateTableOptions(t *testing.T) {
	t.Parallel()
	stmt := parseSqlTest(t, `CREATE TABLE t (a INT) DEFAULT CHARSET=latin1 COLLATE latin1_bin
		DATA DIRECTORY = '/data' TABLESPACE ts STORAGE DISK UNION = (t1, t2) START TRANSACTION`)
	ct := stmt.(*rel.SqlCreateTable)
	assert.Equal(t, []*rel.TableOption{
		{Name: "CHARACTER SET", Value: "latin1"},
		{Name: "COLLATE", Value: "latin1_bin"},
		{Name: "DATA DIRECTORY", Value: "'/data'"},
		{Name: "TABLESPACE", Value: "ts STORAGE DISK"},
		{Name: "UNION", Value: "(t1, t2)"},
		{Name: "START TRANSACTION"},
	}, ct.Options)
	assert.Equal(t, "CREATE TABLE t (a INT) CHARACTER SET=latin1 COLLATE=latin1_bin DATA DIRECTORY='/data' "+
		"TABLESPACE=ts STORAGE DISK UNION=(t1, t2) START TRANSACTION", ct.String())

	stmt = parseSqlTest(t, "CREATE TABLE t2 (b INT) IGNORE SELECT a FROM t")
	ct = stmt.(*rel.SqlCreateTable)
	assert.Equal(t, "IGNORE", ct.Duplicates)
	assert.Equal(t, "CREATE TABLE t2 (b INT) IGNORE AS SELECT a FROM t", ct.String())

	stmt = parseSqlTest(t, "CREATE TABLE t3 (LIKE t)")
	assert.Equal(t, "CREATE TABLE t3 LIKE t", stmt.String())
}

func TestCreateTableOptionValues(t *testing.T) {
	t.Parallel()
	// a value runs until the next option
	stmt := parseSqlTest(t, "CREATE TABLE t (a INT) COMMENT 'a' 'b' ENGINE = InnoDB, CONNECTION = 'x' 'y'")
	ct := stmt.(*rel.SqlCreateTable)
	assert.Equal(t, []*rel.TableOption{
		{Name: "COMMENT", Value: "'a' 'b'"},
		{Name: "ENGINE", Value: "InnoDB"},
		{Name: "CONNECTION", Value: "'x' 'y'"},
	}, ct.Options)
	assert.Equal(t, "CREATE TABLE t (a INT) COMMENT='a' 'b' ENGINE=InnoDB CONNECTION='x' 'y'", ct.String())
	again := parseSqlTest(t, ct.String())
	if diff := deep.Equal(stmt, again); diff != nil {
		t.Error(diff)
	}

	// database options keep to one token each
	stmt = parseSqlTest(t, "ALTER DATABASE d COLLATE utf8mb4_bin READ ONLY 0")
	ad := stmt.(*rel.SqlAlterDatabase)
	require.Len(t, ad.Options, 2)
	assert.Equal(t, &rel.TableOption{Name: "COLLATE", Value: "utf8mb4_bin"}, ad.Options[0])

	_, err := rel.ParseSql("CREATE TABLE t (a INT) COMMENT =")
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe), "%v", err)
	assert.Equal(t, "option value", pe.Expected)
}

func TestCreateTablePartition(t *testing.T) {
	t.Parallel()
	stmt := parseSqlTest(t, "CREATE TABLE t (a INT) PARTITION BY HASH(a)")
	ct := stmt.(*rel.SqlCreateTable)
	assert.Equal(t, "HASH(a)", ct.Partition)
	assert.Equal(t, "CREATE TABLE t (a INT) PARTITION BY HASH(a)", ct.String())

	stmt = parseSqlTest(t, `CREATE TABLE t (a INT) ENGINE=InnoDB PARTITION BY RANGE (a) (
		PARTITION p0 VALUES LESS THAN (10),
		PARTITION p1 VALUES LESS THAN MAXVALUE)`)
	ct = stmt.(*rel.SqlCreateTable)
	assert.Equal(t, []*rel.TableOption{{Name: "ENGINE", Value: "InnoDB"}}, ct.Options)
	assert.Equal(t, "RANGE(a) (PARTITION p0 VALUES LESS THAN(10), PARTITION p1 VALUES LESS THAN MAXVALUE)", ct.Partition)
	again := parseSqlTest(t, ct.String())
	if diff := deep.Equal(stmt, again); diff != nil {
		t.Error(diff)
	}

	stmt = parseSqlTest(t, "CREATE TABLE t2 (a INT) PARTITION BY HASH(a) PARTITIONS 2 AS SELECT a FROM t")
	ct = stmt.(*rel.SqlCreateTable)
	assert.Equal(t, "HASH(a) PARTITIONS 2", ct.Partition)
	require.NotNil(t, ct.Select)
	assert.Equal(t, "CREATE TABLE t2 (a INT) PARTITION BY HASH(a) PARTITIONS 2 AS SELECT a FROM t", ct.String())

	for _, sql := range []string{
		"CREATE TABLE t (a INT) PARTITION BY",
		"CREATE TABLE t (a INT) PARTITION BY RANGE (a) (PARTITION p0 VALUES LESS THAN (10)",
	} {
		_, err := rel.ParseSql(sql)
		assert.Error(t, err, sql)
	}
}

func TestAlterAst(t *testing.T) {
	t.Parallel()
	stmt := parseSqlTest(t, `ALTER TABLE t ADD (a INT, b INT), ADD CONSTRAINT c CHECK (a > b),
		DROP FOREIGN KEY fk, ALTER a DROP DEFAULT, RENAME KEY k1 TO k2, ORDER BY a, b,
		WITHOUT VALIDATION, FORCE, LOCK = EXCLUSIVE, AUTO_INCREMENT = 5`)
	at := stmt.(*rel.SqlAlterTable)
	assert.Equal(t, lex.TokenAlter, at.Keyword())
	require.Len(t, at.Actions, 10)

	add := at.Actions[0].(*rel.AlterAddColumn)
	assert.True(t, add.Parenthesized)
	assert.Len(t, add.Columns, 2)
	check := at.Actions[1].(*rel.AlterAddDefinition).Definition.(*rel.CheckDef)
	assert.Equal(t, "c", check.Constraint)
	assert.Nil(t, check.Enforced)
	assert.Equal(t, &rel.AlterDrop{Kind: rel.DropForeignKey, Name: "fk"}, at.Actions[2])
	assert.Equal(t, &rel.AlterColumn{Column: "a", Op: rel.DropDefault}, at.Actions[3])
	assert.Equal(t, &rel.AlterRename{Index: true, Old: "k1", New: "k2"}, at.Actions[4])
	assert.Equal(t, &rel.AlterOrderBy{Columns: []string{"a", "b"}}, at.Actions[5])
	assert.Equal(t, &rel.AlterKeyword{Text: "WITHOUT VALIDATION"}, at.Actions[6])
	assert.Equal(t, &rel.AlterKeyword{Text: "FORCE"}, at.Actions[7])
	assert.Equal(t, &rel.AlterOption{Name: "LOCK", Value: "EXCLUSIVE"}, at.Actions[8])
	assert.Equal(t, &rel.AlterTableOptions{Options: []*rel.TableOption{{Name: "AUTO_INCREMENT", Value: "5"}}}, at.Actions[9])

	stmt = parseSqlTest(t, "ALTER TABLE t AUTO_INCREMENT = 5 ENGINE InnoDB")
	opts := stmt.(*rel.SqlAlterTable).Actions[0].(*rel.AlterTableOptions)
	assert.Equal(t, []*rel.TableOption{{Name: "AUTO_INCREMENT", Value: "5"}, {Name: "ENGINE", Value: "InnoDB"}}, opts.Options)

	stmt = parseSqlTest(t, "ALTER SCHEMA DEFAULT CHARACTER SET utf8mb4 ENCRYPTION = 'Y'")
	ad := stmt.(*rel.SqlAlterDatabase)
	assert.Equal(t, "", ad.Name)
	assert.Equal(t, []*rel.TableOption{{Name: "CHARACTER SET", Value: "utf8mb4"}, {Name: "ENCRYPTION", Value: "'Y'"}}, ad.Options)
	assert.Equal(t, "ALTER DATABASE CHARACTER SET=utf8mb4 ENCRYPTION='Y'", ad.String())

	stmt = parseSqlTest(t, "CREATE FULLTEXT INDEX ft ON docs (body) WITH PARSER ngram")
	ci := stmt.(*rel.SqlCreateIndex)
	assert.Equal(t, rel.IndexFulltext, ci.Kind)
	assert.Equal(t, []*rel.IndexOption{{Kind: rel.OptWithParser, Value: "ngram"}}, ci.Options)
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.ParseConfig{LowerCaseTableNames: true}
	stmt, err := rel.Parse(cfg, "SELECT Name FROM DB.Users JOIN `Mixed` ON Users.id = Mixed.id")
	require.NoError(t, err)
	sel := stmt.(*rel.SqlSelect)
	assert.Equal(t, &rel.Table{Schema: "db", Name: "users"}, sel.From)
	assert.Equal(t, "Mixed", sel.Joins[0].Table.Name)
	assert.Equal(t, "Name", sel.Columns[0].Name)

	cfg = &config.ParseConfig{RequireQuotedIdentifiers: true}
	_, err = rel.Parse(cfg, "SELECT `a` FROM `t`")
	assert.NoError(t, err)
	_, err = rel.Parse(cfg, "SELECT `a` FROM t")
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe), "%v", err)
	assert.Equal(t, errors.ErrUnexpectedToken, pe.Code)
	assert.Equal(t, 16, pe.Pos)
	assert.Equal(t, "quoted table name", pe.Expected)

	cfg = &config.ParseConfig{AnsiQuotes: true}
	stmt, err = rel.Parse(cfg, `SELECT "a" FROM "t"`)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t", stmt.String())
}

func TestFormatConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cfg *config.ParseConfig
		sql string
		out string
	}{
		{&config.ParseConfig{RequireQuotedIdentifiers: true}, "SELECT `a` FROM `t`", "SELECT `a` FROM `t`"},
		{&config.ParseConfig{RequireQuotedIdentifiers: true},
			"select `a` as `x` from `s`.`t` where `b` = 'v' order by `a`",
			"SELECT `a` AS `x` FROM `s`.`t` WHERE `b` = 'v' ORDER BY `a`"},
		{&config.ParseConfig{NoBackslashEscapes: true}, `SELECT 'C:\dir' FROM t`, `SELECT 'C:\dir' FROM t`},
		{&config.ParseConfig{NoBackslashEscapes: true},
			`CREATE TABLE t (p VARCHAR(10) DEFAULT 'C:\') COMMENT 'x\y'`,
			`CREATE TABLE t (p VARCHAR(10) DEFAULT 'C:\') COMMENT='x\y'`},
		{&config.ParseConfig{LowerCaseTableNames: true},
			"SELECT Name FROM `Users` AS u WHERE u.id = 1",
			"SELECT Name FROM `Users` AS u WHERE u.id = 1"},
		{&config.ParseConfig{LowerCaseTableNames: true}, "DROP DATABASE `Sales`", "DROP DATABASE `Sales`"},
		{&config.ParseConfig{AnsiQuotes: true},
			`SELECT "my col" FROM t WHERE "my col" = 'x'`,
			"SELECT `my col` FROM t WHERE `my col` = 'x'"},
	}
	for _, tt := range tests {
		stmt, err := rel.Parse(tt.cfg, tt.sql)
		require.NoError(t, err, tt.sql)
		out := rel.Format(stmt, tt.cfg)
		assert.Equal(t, tt.out, out, tt.sql)

		again, err := rel.Parse(tt.cfg, out)
		require.NoError(t, err, out)
		if diff := deep.Equal(stmt, again); diff != nil {
			t.Errorf("%s\n  formatted %s\n  %v", tt.sql, out, diff)
		}
	}

	// String keeps the default dialect
	stmt, err := rel.Parse(&config.ParseConfig{NoBackslashEscapes: true}, `SELECT 'C:\dir'`)
	require.NoError(t, err)
	assert.Equal(t, `SELECT 'C:\\dir'`, stmt.String())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		sql      string
		code     errors.Code
		pos      int
		expected string
	}{
		{"CREATE TABLE", errors.ErrUnexpectedToken, 12, "table name"},
		{"DROP TABLE", errors.ErrUnexpectedToken, 10, "table name"},
		{"", errors.ErrUnsupportedStatement, 0, ""},
		{"SHOW TABLES", errors.ErrUnsupportedStatement, 0, ""},
		{"CREATE FUNCTION f()", errors.ErrUnsupportedStatement, 7, ""},
		{"DROP USER bob", errors.ErrUnsupportedStatement, 5, ""},
		{"ALTER VIEW v AS SELECT 1", errors.ErrUnsupportedStatement, 6, ""},
		{"RENAME USER a TO b", errors.ErrUnsupportedStatement, 7, ""},
		{"(1)", errors.ErrUnsupportedStatement, 0, ""},
		{"SELECT a FROM t WHERE", errors.ErrExpectedExpression, 21, ""},
		{"SELECT (a FROM t", errors.ErrUnbalancedParentheses, 10, ""},
		{"SELECT a FROM t)", errors.ErrUnbalancedParentheses, 15, ""},
		{"SELECT a ^ b", errors.ErrUnknownOperator, 9, ""},
		{"SELECT 'abc", errors.ErrUnterminatedLiteral, 7, ""},
		{"SELECT a FROM t ORDER BY a UNION SELECT b FROM u", errors.ErrUnexpectedToken, 27, "EOF"},
		{"SELECT a FROM t WHERE a = 1 LIMIT x", errors.ErrUnexpectedToken, 34, "row count"},
		{"SELECT 1; SELECT 2", errors.ErrUnexpectedToken, 10, "EOF"},
		{"DROP SPATIAL REFERENCE SYSTEM 99999999999", errors.ErrUnexpectedToken, 30, "srid"},
		{"ALTER DATABASE d", errors.ErrUnexpectedToken, 16, "database option"},
		{"ALTER DATABASE d ENCRYPTION 'X'", errors.ErrUnexpectedToken, 28, "'Y' or 'N'"},
		{"CREATE TABLE t (a INT) AS", errors.ErrUnexpectedToken, 25, "SELECT"},
		{"CREATE TABLE t (a INT,)", errors.ErrUnexpectedToken, 22, "column name"},
		{"INSERT INTO t", errors.ErrUnexpectedToken, 13, "VALUES, SET or SELECT"},
		{"UPDATE t a = 1", errors.ErrUnexpectedToken, 11, "SET"},
		{"SET x", errors.ErrUnexpectedToken, 5, "="},
	}
	for _, tt := range tests {
		stmt, err := rel.ParseSql(tt.sql)
		assert.Nil(t, stmt, tt.sql)
		var pe *errors.ParseError
		if !assert.True(t, errors.As(err, &pe), "%q: %v", tt.sql, err) {
			continue
		}
		assert.Equal(t, tt.code, pe.Code, tt.sql)
		assert.Equal(t, tt.pos, pe.Pos, tt.sql)
		if tt.expected != "" {
			assert.Equal(t, tt.expected, pe.Expected, tt.sql)
		}
	}
}
