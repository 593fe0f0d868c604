package incremental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
)

func newSlotDoc(t *testing.T, src string) *SlotDocument {
	t.Helper()
	p := parser.NewFromSource([]byte(src), lexer.DefaultVersion, 0)
	parser.ParseFile(p)
	return &SlotDocument{Tree: cst.BuildSlot(p), Text: []byte(src)}
}

func TestSlotReparseSingleStatementReplace(t *testing.T) {
	doc := newSlotDoc(t, "SELECT 1; SELECT 2;")
	doc.Reparse(TextPatch{Start: 7, End: 8, NewText: "99"}, lexer.DefaultVersion)

	want := "SELECT 99; SELECT 2;"
	require.Equal(t, want, string(doc.Text))

	fresh := freshParse(t, want)
	assert.True(t, cst.Equal(doc.Tree, doc.Tree.Root(), fresh, fresh.Root()),
		"incrementally re-parsed tree diverges from a from-scratch parse of %q", want)
}

func TestSlotReparseAddingStatementInsertsSibling(t *testing.T) {
	doc := newSlotDoc(t, "SELECT 1;")
	doc.Reparse(TextPatch{Start: 9, End: 9, NewText: " SELECT 2;"}, lexer.DefaultVersion)

	want := "SELECT 1; SELECT 2;"
	require.Equal(t, want, string(doc.Text))

	stmts := topLevelStatements(doc.Tree)
	assert.Len(t, stmts, 2)

	fresh := freshParse(t, want)
	assert.True(t, cst.Equal(doc.Tree, doc.Tree.Root(), fresh, fresh.Root()),
		"incrementally re-parsed tree diverges from a from-scratch parse of %q", want)
}

func TestSlotReparseRemovingSemicolonMergesStatements(t *testing.T) {
	doc := newSlotDoc(t, "SELECT 1; SELECT 2;")
	doc.Reparse(TextPatch{Start: 8, End: 9, NewText: ""}, lexer.DefaultVersion)

	want := "SELECT 1 SELECT 2;"
	require.Equal(t, want, string(doc.Text))

	fresh := freshParse(t, want)
	assert.True(t, cst.Equal(doc.Tree, doc.Tree.Root(), fresh, fresh.Root()),
		"incrementally re-parsed tree diverges from a from-scratch parse of %q", want)
}

func TestSlotReparseGrowingByTwoStatementsInsertsBothAfter(t *testing.T) {
	doc := newSlotDoc(t, "SELECT 1; SELECT 4;")
	doc.Reparse(TextPatch{Start: 9, End: 9, NewText: " SELECT 2; SELECT 3;"}, lexer.DefaultVersion)

	want := "SELECT 1; SELECT 2; SELECT 3; SELECT 4;"
	require.Equal(t, want, string(doc.Text))

	stmts := topLevelStatements(doc.Tree)
	assert.Len(t, stmts, 4)

	fresh := freshParse(t, want)
	assert.True(t, cst.Equal(doc.Tree, doc.Tree.Root(), fresh, fresh.Root()),
		"incrementally re-parsed tree diverges from a from-scratch parse of %q", want)
}
