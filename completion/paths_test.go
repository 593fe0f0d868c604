package completion

import (
	"reflect"
	"testing"
)

func TestCompleteColumnInsideJoinConstraintResolvesLeftTable(t *testing.T) {
	// The join constraint's right-hand side sits inside FromClause (via
	// JoinClause), so enclosingFromTable can actually resolve a table here,
	// unlike a plain "SELECT a FROM t" result column.
	src := "SELECT 1 FROM t1 JOIN t2 ON t2.id = a;"
	tree := parseTree(t, src)
	pos := len("SELECT 1 FROM t1 JOIN t2 ON t2.id = a")

	e := &Engine{Schema: &fakeSchema{
		columns: map[string][]string{"t1": {"id", "name"}},
	}}
	items := e.Complete(tree, pos)

	want := []string{"id", "name"}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v (enclosing table should resolve to the FROM clause's left table)", got, want)
	}
}

func TestCompleteAtStartOfFromClauseKeywordResolvesToTableNames(t *testing.T) {
	src := "SELECT a FROM t;"
	tree := parseTree(t, src)
	// Position inside the "FROM" keyword token itself: its direct parent is
	// FromClause, not TableOrSubquery, exercising the single-kind special
	// case entry rather than the two-kind one.
	pos := len("SELECT a FR")

	e := &Engine{Schema: &fakeSchema{tables: []string{"only_table"}}}
	items := e.Complete(tree, pos)

	want := []string{"only_table"}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
}
