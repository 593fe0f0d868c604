package completion

import (
	"reflect"
	"testing"

	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/grammar"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
)

type fakeSchema struct {
	tables  []string
	columns map[string][]string
}

func (s *fakeSchema) TableNames() []string { return s.tables }
func (s *fakeSchema) ColumnNames(table string) []string { return s.columns[table] }

func parseTree(t *testing.T, src string) cst.Tree {
	t.Helper()
	p := parser.NewFromSource([]byte(src), lexer.DefaultVersion, 0)
	parser.ParseFile(p)
	return cst.BuildBatch(p)
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestCompleteRightAfterFromSuggestsTables(t *testing.T) {
	src := "SELECT a FROM t;"
	tree := parseTree(t, src)
	// Position right after "FROM" (before the space that precedes "t").
	pos := len("SELECT a FROM")

	e := &Engine{Schema: &fakeSchema{tables: []string{"users", "orders"}}}
	items := e.Complete(tree, pos)

	want := []string{"orders", "users"}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for _, it := range items {
		if it.Kind != KindTableName {
			t.Errorf("item %+v has Kind %v, want KindTableName", it, it.Kind)
		}
	}
}

func TestCompleteInsideTableNameStillSuggestsTables(t *testing.T) {
	src := "SELECT a FROM t;"
	tree := parseTree(t, src)
	pos := len("SELECT a FROM t") // right after "t"

	e := &Engine{Schema: &fakeSchema{tables: []string{"users", "orders"}}}
	items := e.Complete(tree, pos)

	want := []string{"orders", "users"}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
}

func TestCompleteColumnPositionUsesColumnSchema(t *testing.T) {
	src := "SELECT a FROM t;"
	tree := parseTree(t, src)
	pos := len("SELECT a") // right after "a", inside the ExprColumnName

	e := &Engine{Schema: &fakeSchema{
		tables:  []string{"t"},
		columns: map[string][]string{"": {"id", "name"}},
	}}
	items := e.Complete(tree, pos)

	want := []string{"id", "name"}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for _, it := range items {
		if it.Kind != KindColumnName {
			t.Errorf("item %+v has Kind %v, want KindColumnName", it, it.Kind)
		}
	}
}

func TestCompleteSpecialCaseSkipsGrammarWhenSchemaNil(t *testing.T) {
	src := "SELECT a FROM t;"
	tree := parseTree(t, src)
	pos := len("SELECT a FROM")

	e := &Engine{} // no schema configured
	items := e.Complete(tree, pos)
	if len(items) != 0 {
		t.Errorf("Complete() = %v, want no items with a nil schema", items)
	}
}

func TestCompleteFallsBackToGrammarAtStartOfFile(t *testing.T) {
	src := "SELECT a FROM t;"
	tree := parseTree(t, src)

	g, err := grammar.Parse(`Start = 'FOO' | 'BAZ'`)
	if err != nil {
		t.Fatalf("grammar.Parse() error = %v", err)
	}
	e := &Engine{Grammar: g}
	items := e.Complete(tree, 0)

	want := []string{"BAZ", "FOO"}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for _, it := range items {
		if it.Kind != KindKeyword {
			t.Errorf("item %+v has Kind %v, want KindKeyword", it, it.Kind)
		}
	}
}

func TestCompleteFallbackExpandsNodeRefUsingSchema(t *testing.T) {
	src := "SELECT a FROM t;"
	tree := parseTree(t, src)

	g, err := grammar.Parse(`Start = Name`)
	if err != nil {
		t.Fatalf("grammar.Parse() error = %v", err)
	}
	e := &Engine{Grammar: g, Schema: &fakeSchema{tables: []string{"t1", "t2"}}}
	items := e.Complete(tree, 0)

	want := []string{"t1", "t2"}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for _, it := range items {
		if it.Kind != KindTableName {
			t.Errorf("item %+v has Kind %v, want KindTableName", it, it.Kind)
		}
	}
}

func TestDedupeSortRemovesDuplicateLabels(t *testing.T) {
	items := []Item{
		{Label: "b", Kind: KindKeyword},
		{Label: "a", Kind: KindKeyword},
		{Label: "b", Kind: KindColumnName},
	}
	got := dedupeSort(items)
	want := []string{"a", "b"}
	if got := labels(got); !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
}
