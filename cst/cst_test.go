package cst

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
)

func parseAll(t *testing.T, src string) *parser.Parser {
	t.Helper()
	p := parser.NewFromSource([]byte(src), lexer.DefaultVersion, 0)
	parser.ParseFile(p)
	return p
}

func TestBuildBatchReproducesSource(t *testing.T) {
	src := "SELECT a, b FROM t WHERE a = 1;"
	tree := BuildBatch(parseAll(t, src))
	if got := TextOf(tree, tree.Root()); got != src {
		t.Errorf("TextOf = %q, want %q", got, src)
	}
}

func TestAllThreeVariantsAgree(t *testing.T) {
	src := "SELECT a FROM t WHERE a = 1 AND b = 2;"

	batch := BuildBatch(parseAll(t, src))
	branch := BuildBranch(parseAll(t, src))
	slot := BuildSlot(parseAll(t, src))

	if !Equal(batch, batch.Root(), branch, branch.Root()) {
		t.Errorf("batch and branch trees disagree for %q", src)
	}
	if !Equal(batch, batch.Root(), slot, slot.Root()) {
		t.Errorf("batch and slot trees disagree for %q", src)
	}

	if diff := cmp.Diff(TextOf(batch, batch.Root()), TextOf(branch, branch.Root())); diff != "" {
		t.Errorf("TextOf mismatch between batch and branch (-batch +branch):\n%s", diff)
	}
}

func TestNodeAtResolvesLeaf(t *testing.T) {
	src := "SELECT 1;"
	tree := BuildBatch(parseAll(t, src))
	n := NodeAt(tree, tree.Root(), 7) // inside "1"
	if !tree.IsToken(n) {
		n = tree.FirstChild(n)
	}
	if tree.Start(n) > 7 || tree.End(n) < 7 {
		t.Errorf("NodeAt(7) = node spanning [%d,%d), want it to contain 7", tree.Start(n), tree.End(n))
	}
}

func TestAncestorsIncludesSelfAndRoot(t *testing.T) {
	src := "SELECT 1;"
	tree := BuildBatch(parseAll(t, src))
	leaf := NodeAt(tree, tree.Root(), 0)
	path := Ancestors(tree, leaf)
	if path[0] != leaf {
		t.Errorf("Ancestors()[0] = %v, want leaf %v", path[0], leaf)
	}
	if path[len(path)-1] != tree.Root() {
		t.Errorf("Ancestors() last = %v, want root %v", path[len(path)-1], tree.Root())
	}
}

func TestBranchCountMatchesStatements(t *testing.T) {
	src := "SELECT 1; SELECT 2; SELECT 3;"
	branch := BuildBranch(parseAll(t, src))
	if n := branch.BranchCount(); n != 3 {
		t.Errorf("BranchCount() = %d, want 3", n)
	}
}

func TestSlotSpliceReusesFreedSlots(t *testing.T) {
	src := "SELECT 1;"
	slot := BuildSlot(parseAll(t, src))
	before := len(slot.slots)

	newParser := parseAll(t, "SELECT 2;")
	flat := fold(newParser.Events(), newParser.Tokens(), newParser.AbsPos())
	slot.Splice(int(slot.Root()), flat)

	if len(slot.slots) > before*2+4 {
		t.Errorf("slot table grew unexpectedly: before=%d after=%d", before, len(slot.slots))
	}
}

func TestErrorsFindsRecoveryNodes(t *testing.T) {
	tree := BuildBatch(parseAll(t, "SELECT 1 SELECT 2;"))
	errs := Errors(tree, tree.Root())
	if len(errs) == 0 {
		t.Fatalf("Errors() = empty, want at least one recovery error")
	}
	for _, n := range errs {
		if tree.Error(n) == nil {
			t.Errorf("Errors() returned node %v with no error payload", n)
		}
	}
}

func TestErrorsEmptyForCleanParse(t *testing.T) {
	tree := BuildBatch(parseAll(t, "SELECT 1;"))
	if errs := Errors(tree, tree.Root()); len(errs) != 0 {
		t.Errorf("Errors() = %v, want none", errs)
	}
}
