package grammar

import (
	"sort"
	"testing"
)

func continuationsOf(t *testing.T, src string, tokens []string) ([]string, []string) {
	t.Helper()
	g, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	trav := NewTraverser(g, tokens)
	lits, refs := trav.Continuations()
	sort.Strings(lits)
	sort.Strings(refs)
	return lits, refs
}

func TestTraverserFirstTokenOfEmptyInput(t *testing.T) {
	lits, _ := continuationsOf(t, `Stmt = 'SELECT' Name`, nil)
	if len(lits) != 1 || lits[0] != "SELECT" {
		t.Errorf("Continuations() literals = %v, want [SELECT]", lits)
	}
}

func TestTraverserAfterKeywordExpectsNodeRef(t *testing.T) {
	_, refs := continuationsOf(t, `Stmt = 'SELECT' Name`, []string{"SELECT"})
	if len(refs) != 1 || refs[0] != "Name" {
		t.Errorf("Continuations() nodeRefs = %v, want [Name]", refs)
	}
}

func TestTraverserAlternation(t *testing.T) {
	lits, _ := continuationsOf(t, `Stmt = 'SELECT' | 'INSERT'`, nil)
	if len(lits) != 2 {
		t.Fatalf("Continuations() literals = %v, want 2 entries", lits)
	}
	if lits[0] != "INSERT" || lits[1] != "SELECT" {
		t.Errorf("Continuations() literals = %v, want [INSERT SELECT]", lits)
	}
}

func TestTraverserOptionalAllowsSkipping(t *testing.T) {
	// After 'A', an optional 'B' means both 'B' and whatever follows it are
	// valid continuations.
	lits, _ := continuationsOf(t, `Stmt = 'A' 'B'? 'C'`, []string{"A"})
	sort.Strings(lits)
	if len(lits) != 2 || lits[0] != "B" || lits[1] != "C" {
		t.Errorf("Continuations() literals = %v, want [B C]", lits)
	}
}

func TestTraverserRepetitionAllowsContinuingOrStopping(t *testing.T) {
	lits, _ := continuationsOf(t, `Stmt = 'A'* 'END'`, []string{"A", "A"})
	sort.Strings(lits)
	if len(lits) != 2 || lits[0] != "A" || lits[1] != "END" {
		t.Errorf("Continuations() literals = %v, want [A END]", lits)
	}
}

func TestTraverserUndefinedRuleIsTerminalPlaceholder(t *testing.T) {
	// Name is referenced but never defined: canBeEmpty/first must not panic
	// walking into a nil rule, and the placeholder must consume exactly the
	// one token fed to it so the traverser can still reach 'END'.
	lits, refs := continuationsOf(t, `Stmt = Name 'END'`, []string{"anything"})
	if len(lits) != 1 || lits[0] != "END" {
		t.Errorf("Continuations() literals = %v, want [END] (Name consumed the one token)", lits)
	}
	_ = refs
}
