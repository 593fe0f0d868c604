package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/grammar"
	"github.com/dhamidi/sqlite-ls/internal/ungram"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
)

func testGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Parse(ungram.Default)
	require.NoError(t, err)
	return g
}

// keywordContinuations runs the grammar traverser over tokens the way
// Engine.Complete does, keeping only keyword/keyword-phrase literals.
func keywordContinuations(t *testing.T, g *grammar.Grammar, tokens []string) []string {
	t.Helper()
	trav := grammar.NewTraverser(g, tokens)
	literals, _ := trav.Continuations()
	var out []string
	for _, lit := range literals {
		if isKeywordPhrase(lit) {
			out = append(out, lit)
		}
	}
	return out
}

func TestCompleteAfterSelectSuggestsDistinctOrAll(t *testing.T) {
	g := testGrammar(t)
	got := keywordContinuations(t, g, []string{"SELECT"})
	assert.ElementsMatch(t, []string{"ALL", "DISTINCT"}, got)
}

func TestCompleteAfterSelectStarSuggestsClauseKeywords(t *testing.T) {
	g := testGrammar(t)
	got := keywordContinuations(t, g, []string{"SELECT", "*"})
	assert.ElementsMatch(t, []string{
		"EXCEPT", "FROM", "GROUP BY", "HAVING", "INTERSECT",
		"LIMIT", "ORDER BY", "UNION", "WHERE", "WINDOW",
	}, got)
}

func TestCompleteInsideTableReferenceSuggestsTableSuffixAndClauses(t *testing.T) {
	g := testGrammar(t)
	got := keywordContinuations(t, g, []string{"SELECT", "*", "FROM", "Name"})
	assert.Subset(t, got, []string{
		"AS", "INDEXED BY", "NOT INDEXED",
		"WHERE", "GROUP BY", "ORDER BY", "LIMIT", "HAVING", "WINDOW",
		"UNION", "EXCEPT", "INTERSECT",
	})
}

func TestCompleteAfterExplainSuggestsStatementKinds(t *testing.T) {
	g := testGrammar(t)
	got := keywordContinuations(t, g, []string{"EXPLAIN"})
	assert.Subset(t, got, []string{
		"ATTACH", "CREATE TABLE", "CREATE INDEX", "QUERY PLAN", "SELECT", "WITH",
	})
}

func TestCompleteAfterAlterTableNameSuggestsOperations(t *testing.T) {
	g := testGrammar(t)
	got := keywordContinuations(t, g, []string{"ALTER", "TABLE", "Name"})
	assert.ElementsMatch(t, []string{"ADD", "DROP", "RENAME", "RENAME TO"}, got)
}

func TestCompleteAfterOnConflictSuggestsDoBranches(t *testing.T) {
	g := testGrammar(t)
	got := keywordContinuations(t, g, []string{
		"INSERT", "OR", "IGNORE", "INTO", "Name",
		"VALUES", "(", "Name", ",", "Name", ")",
		"ON", "CONFLICT",
	})
	assert.ElementsMatch(t, []string{"DO NOTHING", "DO UPDATE SET"}, got)
}

// TestCompleteEndToEndAfterSelectUsesRealCST exercises Engine.Complete through
// a real parsed CST rather than hand-built token spellings, at a cursor
// position that falls through every special case and reaches the grammar
// traverser directly.
func TestCompleteEndToEndAfterSelectUsesRealCST(t *testing.T) {
	src := "SELECT DISTINCT a FROM t;"
	p := parser.NewFromSource([]byte(src), lexer.DefaultVersion, 0)
	parser.ParseFile(p)
	tree := cst.BuildBatch(p)

	e := &Engine{Grammar: testGrammar(t)}
	items := e.Complete(tree, len("SELECT"))

	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Subset(t, labels, []string{"ALL", "DISTINCT"})
}
