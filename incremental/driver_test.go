package incremental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
)

func newDoc(t *testing.T, src string) *Document {
	t.Helper()
	p := parser.NewFromSource([]byte(src), lexer.DefaultVersion, 0)
	parser.ParseFile(p)
	return &Document{Tree: cst.BuildBranch(p), Text: []byte(src)}
}

func freshParse(t *testing.T, src string) *cst.Branch {
	t.Helper()
	p := parser.NewFromSource([]byte(src), lexer.DefaultVersion, 0)
	parser.ParseFile(p)
	return cst.BuildBranch(p)
}

func TestReparseSingleStatementReplace(t *testing.T) {
	doc := newDoc(t, "SELECT 1; SELECT 2;")
	doc.Reparse(TextPatch{Start: 7, End: 8, NewText: "99"}, lexer.DefaultVersion)

	want := "SELECT 99; SELECT 2;"
	require.Equal(t, want, string(doc.Text))

	fresh := freshParse(t, want)
	assert.True(t, cst.Equal(doc.Tree, doc.Tree.Root(), fresh, fresh.Root()),
		"incrementally re-parsed tree diverges from a from-scratch parse of %q", want)
}

func TestReparseAddingStatementSplitsBranch(t *testing.T) {
	doc := newDoc(t, "SELECT 1;")
	// Append " SELECT 2;" right after the trailing semicolon, turning one
	// statement into two.
	doc.Reparse(TextPatch{Start: 9, End: 9, NewText: " SELECT 2;"}, lexer.DefaultVersion)

	want := "SELECT 1; SELECT 2;"
	require.Equal(t, want, string(doc.Text))
	assert.Equal(t, 2, doc.Tree.BranchCount())

	fresh := freshParse(t, want)
	assert.True(t, cst.Equal(doc.Tree, doc.Tree.Root(), fresh, fresh.Root()),
		"incrementally re-parsed tree diverges from a from-scratch parse of %q", want)
}

func TestReparseRemovingSemicolonMergesBranches(t *testing.T) {
	doc := newDoc(t, "SELECT 1; SELECT 2;")
	// Delete the first statement's semicolon, merging the two statements into
	// one (a missing-semicolon recovery error) as far as branch count goes.
	doc.Reparse(TextPatch{Start: 8, End: 9, NewText: ""}, lexer.DefaultVersion)

	want := "SELECT 1 SELECT 2;"
	require.Equal(t, want, string(doc.Text))

	fresh := freshParse(t, want)
	assert.True(t, cst.Equal(doc.Tree, doc.Tree.Root(), fresh, fresh.Root()),
		"incrementally re-parsed tree diverges from a from-scratch parse of %q", want)
}

func TestTextPatchApplyAndDelta(t *testing.T) {
	p := TextPatch{Start: 2, End: 5, NewText: "xyz!"}
	got := p.Apply([]byte("ab123cd"))
	assert.Equal(t, "abxyz!cd", string(got))
	assert.Equal(t, 1, p.Delta())
}
