package parser_test

import (
	"testing"

	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
	"github.com/dhamidi/sqlite-ls/treekind"
)

func parseSrc(t *testing.T, src string) cst.Tree {
	t.Helper()
	p := parser.NewFromSource([]byte(src), lexer.DefaultVersion, 0)
	parser.ParseFile(p)
	return cst.BuildBatch(p)
}

func findFirst(t cst.Tree, n cst.NodeID, k treekind.Kind) cst.NodeID {
	if !t.IsToken(n) && t.Kind(n) == k {
		return n
	}
	for c := t.FirstChild(n); c != cst.NilNode; c = t.NextSibling(c) {
		if found := findFirst(t, c, k); found != cst.NilNode {
			return found
		}
	}
	return cst.NilNode
}

func hasError(t cst.Tree, n cst.NodeID) bool {
	if t.Error(n) != nil {
		return true
	}
	for c := t.FirstChild(n); c != cst.NilNode; c = t.NextSibling(c) {
		if hasError(t, c) {
			return true
		}
	}
	return false
}

func TestParseSimpleSelectIsLossless(t *testing.T) {
	src := "SELECT a, b FROM t WHERE a = 1;"
	tree := parseSrc(t, src)
	if got := cst.TextOf(tree, tree.Root()); got != src {
		t.Fatalf("TextOf = %q, want %q", got, src)
	}
	if hasError(tree, tree.Root()) {
		t.Errorf("unexpected error node in %q", src)
	}

	sel := findFirst(tree, tree.Root(), treekind.SelectStmt)
	if sel == cst.NilNode {
		t.Errorf("expected a SelectStmt node")
	}
}

func TestParsePreservesTrivia(t *testing.T) {
	src := "SELECT   1 -- comment\n;"
	tree := parseSrc(t, src)
	if got := cst.TextOf(tree, tree.Root()); got != src {
		t.Errorf("TextOf = %q, want %q", got, src)
	}
}

func TestParseRecoversFromMissingSemicolon(t *testing.T) {
	src := "SELECT 1 SELECT 2;"
	tree := parseSrc(t, src)
	if got := cst.TextOf(tree, tree.Root()); got != src {
		t.Errorf("TextOf = %q, want %q", got, src)
	}
	if !hasError(tree, tree.Root()) {
		t.Errorf("expected a recovery error for a missing semicolon")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	// 1 + 2 * 3 must bind as 1 + (2 * 3): the add node's Rhs is a multiply.
	tree := parseSrc(t, "SELECT 1 + 2 * 3;")
	add := findFirst(tree, tree.Root(), treekind.OpAdd)
	if add == cst.NilNode {
		t.Fatalf("expected an OpAdd node")
	}

	rhs := cst.NilNode
	for c := tree.FirstChild(add); c != cst.NilNode; c = tree.NextSibling(c) {
		if tree.Tag(c) == treekind.Rhs {
			rhs = c
		}
	}
	if rhs == cst.NilNode {
		t.Fatalf("OpAdd node has no Rhs child")
	}
	if got := tree.Kind(rhs); got != treekind.OpMultiply {
		t.Errorf("Kind(rhs) = %v, want OpMultiply", got)
	}
}

func TestParseJoin(t *testing.T) {
	tree := parseSrc(t, "SELECT * FROM a JOIN b ON a.id = b.id;")
	if hasError(tree, tree.Root()) {
		t.Errorf("unexpected error node")
	}
	from := findFirst(tree, tree.Root(), treekind.FromClause)
	if from == cst.NilNode {
		t.Errorf("expected a FromClause node")
	}
}

func TestParseInsertUpdateDelete(t *testing.T) {
	for _, src := range []string{
		"INSERT INTO t (a, b) VALUES (1, 2);",
		"UPDATE t SET a = 1 WHERE b = 2;",
		"DELETE FROM t WHERE a = 1;",
	} {
		tree := parseSrc(t, src)
		if got := cst.TextOf(tree, tree.Root()); got != src {
			t.Errorf("lossless roundtrip for %q: TextOf = %q", src, got)
		}
		if hasError(tree, tree.Root()) {
			t.Errorf("unexpected error for %q", src)
		}
	}
}

func TestParseCreateTable(t *testing.T) {
	src := "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT NOT NULL);"
	tree := parseSrc(t, src)
	if got := cst.TextOf(tree, tree.Root()); got != src {
		t.Errorf("TextOf = %q, want %q", got, src)
	}
	if hasError(tree, tree.Root()) {
		t.Errorf("unexpected error node")
	}
}

func TestParseLikeEscapeBuildsOneTernaryNode(t *testing.T) {
	src := "SELECT 1 WHERE a LIKE b ESCAPE '\\';"
	tree := parseSrc(t, src)
	if got := cst.TextOf(tree, tree.Root()); got != src {
		t.Fatalf("TextOf = %q, want %q", got, src)
	}
	if hasError(tree, tree.Root()) {
		t.Fatalf("unexpected error node in %q", src)
	}

	like := findFirst(tree, tree.Root(), treekind.OpLike)
	if like == cst.NilNode {
		t.Fatalf("expected an OpLike node")
	}

	escape := cst.NilNode
	children := 0
	for c := tree.FirstChild(like); c != cst.NilNode; c = tree.NextSibling(c) {
		if !tree.IsToken(c) {
			children++
		}
		if tree.Tag(c) == treekind.Escape {
			escape = c
		}
	}
	if children != 3 {
		t.Errorf("OpLike has %d node children, want 3 (lhs, rhs, escape)", children)
	}
	if escape == cst.NilNode {
		t.Fatalf("OpLike has no Escape child")
	}
	if got := tree.Kind(escape); got != treekind.ExprLiteral {
		t.Errorf("Kind(escape) = %v, want ExprLiteral", got)
	}
	// The leading space is trivia and belongs to the escape node.
	if got := cst.TextOf(tree, escape); got != " '\\'" {
		t.Errorf("TextOf(escape) = %q, want %q", got, " '\\'")
	}
}

func TestParseNotLikeEscapeBuildsOneTernaryNode(t *testing.T) {
	tree := parseSrc(t, "SELECT 1 WHERE a NOT LIKE b ESCAPE 'x';")
	if hasError(tree, tree.Root()) {
		t.Fatalf("unexpected error node")
	}

	notLike := findFirst(tree, tree.Root(), treekind.OpNotLike)
	if notLike == cst.NilNode {
		t.Fatalf("expected an OpNotLike node")
	}

	escape := cst.NilNode
	for c := tree.FirstChild(notLike); c != cst.NilNode; c = tree.NextSibling(c) {
		if tree.Tag(c) == treekind.Escape {
			escape = c
		}
	}
	if escape == cst.NilNode {
		t.Fatalf("OpNotLike has no Escape child")
	}
	if got := cst.TextOf(tree, escape); got != " 'x'" {
		t.Errorf("TextOf(escape) = %q, want %q", got, " 'x'")
	}
}

func TestIsMissingSemicolonErrMatchesTheRecoveryNode(t *testing.T) {
	tree := parseSrc(t, "SELECT 1 SELECT 2;")
	var found *treekind.ParseError
	var walk func(n cst.NodeID)
	walk = func(n cst.NodeID) {
		if err := tree.Error(n); err != nil {
			found = err
		}
		for c := tree.FirstChild(n); c != cst.NilNode; c = tree.NextSibling(c) {
			walk(c)
		}
	}
	walk(tree.Root())
	if found == nil {
		t.Fatalf("expected a recovery error in %q", "SELECT 1 SELECT 2;")
	}
	if !parser.IsMissingSemicolonErr(found) {
		t.Errorf("IsMissingSemicolonErr(%v) = false, want true", found)
	}
}

func TestParseEscapeOutsideLikeIsNotAnOperator(t *testing.T) {
	// ESCAPE only exists as a LIKE/NOT LIKE suffix; elsewhere it must not
	// be consumed as a generic infix operator, leaving an error behind.
	tree := parseSrc(t, "SELECT 1 ESCAPE 2;")
	if !hasError(tree, tree.Root()) {
		t.Errorf("ESCAPE outside LIKE/NOT LIKE should not parse cleanly")
	}
}
