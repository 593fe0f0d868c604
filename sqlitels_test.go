package sqlitels

import (
	"testing"

	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/incremental"
	"github.com/dhamidi/sqlite-ls/lexer"
)

func TestParseBatchReproducesSource(t *testing.T) {
	src := "SELECT a, b FROM t WHERE a = 1;"
	doc := Parse([]byte(src), Batch, lexer.DefaultVersion)
	if got := cst.TextOf(doc.Tree(), doc.Tree().Root()); got != src {
		t.Errorf("TextOf = %q, want %q", got, src)
	}
}

func TestParseEachVariantExposesATree(t *testing.T) {
	src := "SELECT 1;"
	for _, v := range []StorageVariant{Batch, BranchIndexed, SlotLinked} {
		doc := Parse([]byte(src), v, lexer.DefaultVersion)
		if doc.Tree() == nil {
			t.Errorf("variant %d: Tree() = nil", v)
		}
	}
}

func TestParseWithAbsPosOffsetsPositions(t *testing.T) {
	src := "SELECT 1;"
	doc := ParseWithAbsPos([]byte(src), 100, Batch, lexer.DefaultVersion)
	root := doc.Tree().Root()
	if got := doc.Tree().Start(root); got != 100 {
		t.Errorf("Start(root) = %d, want 100", got)
	}
}

func TestApplyPatchPanicsOnBatchDocument(t *testing.T) {
	doc := Parse([]byte("SELECT 1;"), Batch, lexer.DefaultVersion)
	defer func() {
		if recover() == nil {
			t.Errorf("ApplyPatch on a Batch document did not panic")
		}
	}()
	doc.ApplyPatch(incremental.TextPatch{Start: 0, End: 0, NewText: "x"})
}

func TestApplyPatchUpdatesBranchIndexedDocument(t *testing.T) {
	doc := Parse([]byte("SELECT 1;"), BranchIndexed, lexer.DefaultVersion)
	doc.ApplyPatch(incremental.TextPatch{Start: 7, End: 8, NewText: "99"})
	if got := cst.TextOf(doc.Tree(), doc.Tree().Root()); got != "SELECT 99;" {
		t.Errorf("TextOf after ApplyPatch = %q, want %q", got, "SELECT 99;")
	}
}

func TestApplyPatchUpdatesSlotLinkedDocument(t *testing.T) {
	doc := Parse([]byte("SELECT 1;"), SlotLinked, lexer.DefaultVersion)
	doc.ApplyPatch(incremental.TextPatch{Start: 7, End: 8, NewText: "99"})
	if got := cst.TextOf(doc.Tree(), doc.Tree().Root()); got != "SELECT 99;" {
		t.Errorf("TextOf after ApplyPatch = %q, want %q", got, "SELECT 99;")
	}
}

func TestApplyPatchGrowsSlotLinkedDocumentByOneStatement(t *testing.T) {
	doc := Parse([]byte("SELECT 1; SELECT 2;"), SlotLinked, lexer.DefaultVersion)
	doc.ApplyPatch(incremental.TextPatch{Start: 9, End: 9, NewText: " SELECT 3;"})
	want := "SELECT 1; SELECT 3; SELECT 2;"
	if got := cst.TextOf(doc.Tree(), doc.Tree().Root()); got != want {
		t.Errorf("TextOf after ApplyPatch = %q, want %q", got, want)
	}
}

func TestCompleteDelegatesToCompletionEngine(t *testing.T) {
	doc := Parse([]byte("SELECT a FROM t;"), Batch, lexer.DefaultVersion)
	items := doc.Complete(nil, nil, len("SELECT a FROM"))
	if len(items) != 0 {
		t.Errorf("Complete() with nil schema = %v, want none", items)
	}
}
