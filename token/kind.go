// Package token defines the closed set of lexical token kinds for SQLite
// SQL, the keyword table, and the lexical error taxonomy.
package token

// Kind is a member of the closed token-kind enumeration. Values are grouped
// by category; callers should not depend on numeric ordering across groups.
type Kind int

const (
	ERROR Kind = iota
	EOF

	// Trivia. Never have children in the CST; preserved losslessly.
	WHITESPACE
	S_LINE_COMMENT // "-- ..."
	M_LINE_COMMENT // "/* ... */", unterminated is not an error

	// Identifiers and literals.
	IDEN
	STR_LIT
	REAL_LIT
	INT_LIT
	HEX_LIT
	BLOB_LIT

	// Parameters.
	Q_MARK     // ?
	PARAM_NUM  // ?N
	PARAM_NAME // $name, :name, @name

	// Punctuation.
	DOT
	STAR
	L_PAREN
	R_PAREN
	COMMA
	SEMICOLON
	COLON
	AT_MARK

	// Operators, single character.
	EQ_SQL // =
	PLUS
	MINUS
	F_SLASH
	PERCENT
	L_CHEV // <
	R_CHEV // >
	TILDA
	PIPE
	AMPERSAND

	// Operators, multi-character (matched longest-first, see operatorSpellings
	// and MatchOperator).
	EQ          // ==
	NOT_EQ      // !=
	NOT_EQ_SQL  // <>
	L_CHEV_EQ   // <=
	R_CHEV_EQ   // >=
	DOUBLE_PIPE // ||
	L_CHEV_TWO  // <<
	R_CHEV_TWO  // >>
	EXTRACT_ONE // ->
	EXTRACT_TWO // ->>

	keywordStart
	KW_ABORT
	KW_ACTION
	KW_ADD
	KW_AFTER
	KW_ALL
	KW_ALTER
	KW_ALWAYS
	KW_ANALYZE
	KW_AND
	KW_AS
	KW_ASC
	KW_ATTACH
	KW_AUTOINCREMENT
	KW_BEFORE
	KW_BEGIN
	KW_BETWEEN
	KW_BY
	KW_CASCADE
	KW_CASE
	KW_CAST
	KW_CHECK
	KW_COLLATE
	KW_COLUMN
	KW_COMMIT
	KW_CONFLICT
	KW_CONSTRAINT
	KW_CREATE
	KW_CROSS
	KW_CURRENT
	KW_CURRENT_DATE
	KW_CURRENT_TIME
	KW_CURRENT_TIMESTAMP
	KW_DATABASE
	KW_DEFAULT
	KW_DEFERRABLE
	KW_DEFERRED
	KW_DELETE
	KW_DESC
	KW_DETACH
	KW_DISTINCT
	KW_DO
	KW_DROP
	KW_EACH
	KW_ELSE
	KW_END
	KW_ESCAPE
	KW_EXCEPT
	KW_EXCLUDE
	KW_EXCLUSIVE
	KW_EXISTS
	KW_EXPLAIN
	KW_FAIL
	KW_FILTER
	KW_FIRST
	KW_FOLLOWING
	KW_FOR
	KW_FOREIGN
	KW_FROM
	KW_FULL
	KW_GENERATED
	KW_GLOB
	KW_GROUP
	KW_GROUPS
	KW_HAVING
	KW_IF
	KW_IGNORE
	KW_IMMEDIATE
	KW_IN
	KW_INDEX
	KW_INDEXED
	KW_INITIALLY
	KW_INNER
	KW_INSERT
	KW_INSTEAD
	KW_INTERSECT
	KW_INTO
	KW_IS
	KW_ISNULL
	KW_JOIN
	KW_KEY
	KW_LAST
	KW_LEFT
	KW_LIKE
	KW_LIMIT
	KW_MATCH
	KW_MATERIALIZED
	KW_NATURAL
	KW_NO
	KW_NOT
	KW_NOTHING
	KW_NOTNULL
	KW_NULL
	KW_NULLS
	KW_OF
	KW_OFFSET
	KW_ON
	KW_OR
	KW_ORDER
	KW_OTHERS
	KW_OUTER
	KW_OVER
	KW_PARTITION
	KW_PLAN
	KW_PRAGMA
	KW_PRECEDING
	KW_PRIMARY
	KW_QUERY
	KW_RAISE
	KW_RANGE
	KW_RECURSIVE
	KW_REFERENCES
	KW_REGEXP
	KW_REINDEX
	KW_RELEASE
	KW_RENAME
	KW_REPLACE
	KW_RESTRICT
	KW_RETURNING
	KW_RIGHT
	KW_ROLLBACK
	KW_ROW
	KW_ROWS
	KW_SAVEPOINT
	KW_SELECT
	KW_SET
	KW_TABLE
	KW_TEMP
	KW_TEMPORARY
	KW_THEN
	KW_TIES
	KW_TO
	KW_TRANSACTION
	KW_TRIGGER
	KW_UNBOUNDED
	KW_UNION
	KW_UNIQUE
	KW_UPDATE
	KW_USING
	KW_VACUUM
	KW_VALUES
	KW_VIEW
	KW_VIRTUAL
	KW_WHEN
	KW_WHERE
	KW_WINDOW
	KW_WITH
	KW_WITHOUT
	keywordEnd
)

// MaxKeywordLen is the byte length of the longest keyword,
// "CURRENT_TIMESTAMP" (17 bytes; "AUTOINCREMENT", for comparison, is 13).
// A candidate identifier run longer than this can
// never be a keyword, so the lexer skips the keyword lookup entirely.
const MaxKeywordLen = 17

// IsKeyword reports whether k is a member of the keyword sub-range of Kind.
func IsKeyword(k Kind) bool { return k > keywordStart && k < keywordEnd }

var names = map[Kind]string{
	ERROR: "ERROR", EOF: "EOF",
	WHITESPACE: "WHITESPACE", S_LINE_COMMENT: "S_LINE_COMMENT", M_LINE_COMMENT: "M_LINE_COMMENT",
	IDEN: "IDEN", STR_LIT: "STR_LIT", REAL_LIT: "REAL_LIT", INT_LIT: "INT_LIT", HEX_LIT: "HEX_LIT", BLOB_LIT: "BLOB_LIT",
	Q_MARK: "?", PARAM_NUM: "PARAM_NUM", PARAM_NAME: "PARAM_NAME",
	DOT: ".", STAR: "*", L_PAREN: "(", R_PAREN: ")", COMMA: ",", SEMICOLON: ";", COLON: ":", AT_MARK: "@",
	EQ_SQL: "=", PLUS: "+", MINUS: "-", F_SLASH: "/", PERCENT: "%",
	L_CHEV: "<", R_CHEV: ">", TILDA: "~", PIPE: "|", AMPERSAND: "&",
	EQ: "==", NOT_EQ: "!=", NOT_EQ_SQL: "<>", L_CHEV_EQ: "<=", R_CHEV_EQ: ">=",
	DOUBLE_PIPE: "||", L_CHEV_TWO: "<<", R_CHEV_TWO: ">>", EXTRACT_ONE: "->", EXTRACT_TWO: "->>",
}

// keywordSpelling holds the canonical (upper-case) spelling for every
// keyword Kind, used both to build the case-insensitive lookup table below
// and for diagnostics/String().
var keywordSpelling = map[Kind]string{
	KW_ABORT: "ABORT", KW_ACTION: "ACTION", KW_ADD: "ADD", KW_AFTER: "AFTER", KW_ALL: "ALL",
	KW_ALTER: "ALTER", KW_ALWAYS: "ALWAYS", KW_ANALYZE: "ANALYZE", KW_AND: "AND", KW_AS: "AS",
	KW_ASC: "ASC", KW_ATTACH: "ATTACH", KW_AUTOINCREMENT: "AUTOINCREMENT", KW_BEFORE: "BEFORE",
	KW_BEGIN: "BEGIN", KW_BETWEEN: "BETWEEN", KW_BY: "BY", KW_CASCADE: "CASCADE", KW_CASE: "CASE",
	KW_CAST: "CAST", KW_CHECK: "CHECK", KW_COLLATE: "COLLATE", KW_COLUMN: "COLUMN", KW_COMMIT: "COMMIT",
	KW_CONFLICT: "CONFLICT", KW_CONSTRAINT: "CONSTRAINT", KW_CREATE: "CREATE", KW_CROSS: "CROSS",
	KW_CURRENT: "CURRENT", KW_CURRENT_DATE: "CURRENT_DATE", KW_CURRENT_TIME: "CURRENT_TIME",
	KW_CURRENT_TIMESTAMP: "CURRENT_TIMESTAMP", KW_DATABASE: "DATABASE", KW_DEFAULT: "DEFAULT",
	KW_DEFERRABLE: "DEFERRABLE", KW_DEFERRED: "DEFERRED", KW_DELETE: "DELETE", KW_DESC: "DESC",
	KW_DETACH: "DETACH", KW_DISTINCT: "DISTINCT", KW_DO: "DO", KW_DROP: "DROP", KW_EACH: "EACH",
	KW_ELSE: "ELSE", KW_END: "END", KW_ESCAPE: "ESCAPE", KW_EXCEPT: "EXCEPT", KW_EXCLUDE: "EXCLUDE",
	KW_EXCLUSIVE: "EXCLUSIVE", KW_EXISTS: "EXISTS", KW_EXPLAIN: "EXPLAIN", KW_FAIL: "FAIL",
	KW_FILTER: "FILTER", KW_FIRST: "FIRST", KW_FOLLOWING: "FOLLOWING", KW_FOR: "FOR",
	KW_FOREIGN: "FOREIGN", KW_FROM: "FROM", KW_FULL: "FULL", KW_GENERATED: "GENERATED",
	KW_GLOB: "GLOB", KW_GROUP: "GROUP", KW_GROUPS: "GROUPS", KW_HAVING: "HAVING", KW_IF: "IF",
	KW_IGNORE: "IGNORE", KW_IMMEDIATE: "IMMEDIATE", KW_IN: "IN", KW_INDEX: "INDEX",
	KW_INDEXED: "INDEXED", KW_INITIALLY: "INITIALLY", KW_INNER: "INNER", KW_INSERT: "INSERT",
	KW_INSTEAD: "INSTEAD", KW_INTERSECT: "INTERSECT", KW_INTO: "INTO", KW_IS: "IS",
	KW_ISNULL: "ISNULL", KW_JOIN: "JOIN", KW_KEY: "KEY", KW_LAST: "LAST", KW_LEFT: "LEFT",
	KW_LIKE: "LIKE", KW_LIMIT: "LIMIT", KW_MATCH: "MATCH", KW_MATERIALIZED: "MATERIALIZED",
	KW_NATURAL: "NATURAL", KW_NO: "NO", KW_NOT: "NOT", KW_NOTHING: "NOTHING", KW_NOTNULL: "NOTNULL",
	KW_NULL: "NULL", KW_NULLS: "NULLS", KW_OF: "OF", KW_OFFSET: "OFFSET", KW_ON: "ON", KW_OR: "OR",
	KW_ORDER: "ORDER", KW_OTHERS: "OTHERS", KW_OUTER: "OUTER", KW_OVER: "OVER",
	KW_PARTITION: "PARTITION", KW_PLAN: "PLAN", KW_PRAGMA: "PRAGMA", KW_PRECEDING: "PRECEDING",
	KW_PRIMARY: "PRIMARY", KW_QUERY: "QUERY", KW_RAISE: "RAISE", KW_RANGE: "RANGE",
	KW_RECURSIVE: "RECURSIVE", KW_REFERENCES: "REFERENCES", KW_REGEXP: "REGEXP",
	KW_REINDEX: "REINDEX", KW_RELEASE: "RELEASE", KW_RENAME: "RENAME", KW_REPLACE: "REPLACE",
	KW_RESTRICT: "RESTRICT", KW_RETURNING: "RETURNING", KW_RIGHT: "RIGHT", KW_ROLLBACK: "ROLLBACK",
	KW_ROW: "ROW", KW_ROWS: "ROWS", KW_SAVEPOINT: "SAVEPOINT", KW_SELECT: "SELECT", KW_SET: "SET",
	KW_TABLE: "TABLE", KW_TEMP: "TEMP", KW_TEMPORARY: "TEMPORARY", KW_THEN: "THEN",
	KW_TIES: "TIES", KW_TO: "TO", KW_TRANSACTION: "TRANSACTION", KW_TRIGGER: "TRIGGER",
	KW_UNBOUNDED: "UNBOUNDED", KW_UNION: "UNION", KW_UNIQUE: "UNIQUE", KW_UPDATE: "UPDATE",
	KW_USING: "USING", KW_VACUUM: "VACUUM", KW_VALUES: "VALUES", KW_VIEW: "VIEW",
	KW_VIRTUAL: "VIRTUAL", KW_WHEN: "WHEN", KW_WHERE: "WHERE", KW_WINDOW: "WINDOW",
	KW_WITH: "WITH", KW_WITHOUT: "WITHOUT",
}

// keywords maps the upper-cased spelling to its Kind; built once at package
// init from keywordSpelling so the two tables can never drift apart.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, len(keywordSpelling))
	for k, v := range keywordSpelling {
		m[v] = k
	}
	return m
}()

// LookupKeyword returns the keyword Kind for an already upper-cased
// spelling, or IDEN if upper is not a keyword.
func LookupKeyword(upper string) Kind {
	if len(upper) > MaxKeywordLen {
		return IDEN
	}
	if k, ok := keywords[upper]; ok {
		return k
	}
	return IDEN
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	if name, ok := keywordSpelling[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// operatorSpellings lists multi-character operators in longest-match-first
// order, mirroring the original parser's SqliteTokenKind::size() table: a
// 3-byte operator must be tried before its 2- and 1-byte prefixes.
var operatorSpellings = []struct {
	text string
	kind Kind
}{
	{"->>", EXTRACT_TWO},
	{"->", EXTRACT_ONE},
	{"||", DOUBLE_PIPE},
	{"<<", L_CHEV_TWO},
	{">>", R_CHEV_TWO},
	{"<=", L_CHEV_EQ},
	{">=", R_CHEV_EQ},
	{"<>", NOT_EQ_SQL},
	{"!=", NOT_EQ},
	{"==", EQ},
}

// MatchOperator attempts to match the longest operator spelling at the
// start of s, returning the matched Kind and its byte length, or (ERROR, 0)
// if s does not start with any multi-character operator.
func MatchOperator(s string) (Kind, int) {
	for _, op := range operatorSpellings {
		if len(s) >= len(op.text) && s[:len(op.text)] == op.text {
			return op.kind, len(op.text)
		}
	}
	return ERROR, 0
}

// singleCharKinds maps the single-character punctuation/operator runes not
// covered by MatchOperator.
var singleCharKinds = map[byte]Kind{
	'.': DOT, '*': STAR, '(': L_PAREN, ')': R_PAREN, ',': COMMA, ';': SEMICOLON,
	':': COLON, '@': AT_MARK, '=': EQ_SQL, '+': PLUS, '-': MINUS, '/': F_SLASH,
	'%': PERCENT, '<': L_CHEV, '>': R_CHEV, '~': TILDA, '|': PIPE, '&': AMPERSAND,
	'?': Q_MARK,
}

// MatchSingleChar returns the Kind for a single punctuation/operator byte,
// or (ERROR, false) if b is not one of the recognised single-char tokens.
func MatchSingleChar(b byte) (Kind, bool) {
	k, ok := singleCharKinds[b]
	return k, ok
}
