package incremental

import (
	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
)

// SlotDocument pairs a Slot CST with the source text it was built from, the
// slot-linked analogue of Document: instead of rebuilding a whole branch
// array, it splices the affected top-level statements back in by node
// identity, leaving every untouched statement's NodeID (and everything
// under it) exactly as it was.
type SlotDocument struct {
	Tree *cst.Slot
	Text []byte
}

// Reparse is Document.Reparse's slot-linked counterpart: same widen-window
// strategy, but the splice step targets NodeIDs via cst.Slot.SpliceFrom/
// InsertAfter/RemoveChild instead of branch indices.
func (d *SlotDocument) Reparse(patch TextPatch, version lexer.Version) {
	ep := enrich(patch)
	newText := patch.Apply(d.Text)

	stmts := topLevelStatements(d.Tree)
	firstStmt, lastStmt := overlappingStatements(d.Tree, stmts, patch.Start, patch.End)
	firstStmt = widenLeft(firstStmt)
	if lastStmt < len(stmts)-1 {
		lastStmt++
	}

	windowStart := d.Tree.Start(stmts[firstStmt])
	windowEnd := d.Tree.End(stmts[lastStmt])
	newWindowEnd := windowEnd
	if windowEnd >= patch.End {
		newWindowEnd += ep.Delta()
	} else {
		newWindowEnd = ep.newEnd
	}
	if newWindowEnd > len(newText) {
		newWindowEnd = len(newText)
	}

	slice := newText[windowStart:newWindowEnd]
	p := parser.NewFromSource(slice, version, windowStart)
	parser.ParseFile(p)

	newCount := countTopLevelBranches(p)
	oldCount := lastStmt - firstStmt + 1
	root := d.Tree.Root()

	prev := cst.NilNode
	if firstStmt > 0 {
		prev = stmts[firstStmt-1]
	}
	// last is the most recently spliced or inserted statement: SpliceFrom
	// frees the old statement's slot, so its old NodeID cannot anchor the
	// inserts or the shift below.
	last := prev

	switch {
	case newCount == oldCount:
		for i := 0; i < newCount; i++ {
			sub := extractNthStatementParser(p, i, version)
			last = d.Tree.SpliceFrom(stmts[firstStmt+i], sub)
		}
	case newCount > oldCount:
		for i := 0; i < oldCount; i++ {
			sub := extractNthStatementParser(p, i, version)
			last = d.Tree.SpliceFrom(stmts[firstStmt+i], sub)
		}
		for i := oldCount; i < newCount; i++ {
			sub := extractNthStatementParser(p, i, version)
			last = d.Tree.InsertAfter(root, last, sub)
		}
	default:
		for i := 0; i < newCount; i++ {
			sub := extractNthStatementParser(p, i, version)
			last = d.Tree.SpliceFrom(stmts[firstStmt+i], sub)
		}
		for i := newCount; i < oldCount; i++ {
			d.Tree.RemoveChild(stmts[firstStmt+i])
		}
	}

	// Only the untouched statements after the re-parsed window move; the
	// re-parsed ones already carry their new absolute positions.
	next := d.Tree.FirstChild(root)
	if last != cst.NilNode {
		next = d.Tree.NextSibling(last)
	}
	for n := next; n != cst.NilNode; n = d.Tree.NextSibling(n) {
		d.Tree.ShiftSubtree(n, ep.Delta())
	}
	d.Text = newText
}

// topLevelStatements returns the document's top-level statement nodes in
// order.
func topLevelStatements(t *cst.Slot) []cst.NodeID {
	var out []cst.NodeID
	for c := t.FirstChild(t.Root()); c != cst.NilNode; c = t.NextSibling(c) {
		out = append(out, c)
	}
	return out
}

// overlappingStatements returns the index range (into stmts) of statements
// whose span intersects [start, end], counting a statement that only touches
// either end.
func overlappingStatements(t *cst.Slot, stmts []cst.NodeID, start, end int) (int, int) {
	first, last := -1, -1
	for i, n := range stmts {
		s, e := t.Start(n), t.End(n)
		if e >= start && s <= end {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		first, last = 0, len(stmts)-1
	}
	return first, last
}
