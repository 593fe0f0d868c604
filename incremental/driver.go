package incremental

import (
	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
	"github.com/dhamidi/sqlite-ls/token"
)

// Document pairs a Branch CST with the source text it was built from, which
// the driver needs to find statement boundaries and to re-lex the affected
// window.
type Document struct {
	Tree *cst.Branch
	Text []byte
}

// Reparse applies patch to d.Text and updates d.Tree in place, re-parsing
// only a window of statements around the edit: the statement branch(es)
// overlapping [patch.Start, patch.End], widened by one branch on either
// side to absorb a missing-semicolon merge or split at the edit boundary.
func (d *Document) Reparse(patch TextPatch, version lexer.Version) {
	ep := enrich(patch)
	newText := patch.Apply(d.Text)

	firstBranch, lastBranch := d.overlappingBranches(patch.Start, patch.End)
	firstBranch = widenLeft(firstBranch)
	lastBranch = widenRight(d.Tree, lastBranch)

	windowStart, _ := d.Tree.BranchSpan(firstBranch)
	_, windowEnd := d.Tree.BranchSpan(lastBranch)
	// The old window's end shifts by the edit's delta once mapped into the
	// new document; everything at or after patch.End moves by Delta().
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

	newBranches := countTopLevelBranches(p)
	oldBranches := lastBranch - firstBranch + 1

	switch {
	case newBranches == oldBranches:
		for i := 0; i < newBranches; i++ {
			sub := extractNthStatementParser(p, i, version)
			d.Tree.ReplaceBranch(firstBranch+i, sub)
		}
	case newBranches > oldBranches:
		for i := 0; i < oldBranches; i++ {
			sub := extractNthStatementParser(p, i, version)
			d.Tree.ReplaceBranch(firstBranch+i, sub)
		}
		for i := oldBranches; i < newBranches; i++ {
			sub := extractNthStatementParser(p, i, version)
			d.Tree.InsertBranch(firstBranch+i, sub)
		}
	default:
		for i := 0; i < newBranches; i++ {
			sub := extractNthStatementParser(p, i, version)
			d.Tree.ReplaceBranch(firstBranch+i, sub)
		}
		for i := newBranches; i < oldBranches; i++ {
			d.Tree.RemoveBranch(firstBranch + newBranches)
		}
	}

	d.Tree.ShiftPositions(firstBranch+newBranches, ep.Delta())
	d.Text = newText
}

// overlappingBranches returns the index range of branches whose span
// intersects [start, end], counting a branch that only touches either end.
func (d *Document) overlappingBranches(start, end int) (int, int) {
	first, last := -1, -1
	for i := 0; i < d.Tree.BranchCount(); i++ {
		s, e := d.Tree.BranchSpan(i)
		if e >= start && s <= end {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		first, last = 0, d.Tree.BranchCount()-1
	}
	return first, last
}

// widenLeft pulls in the previous branch whenever there is one, so that a
// missing-semicolon error node at its end is re-parsed together with
// whatever now follows it.
func widenLeft(i int) int {
	if i > 0 {
		// Conservatively always include one statement of left context; the
		// re-parse is still correct (just occasionally wider than minimal)
		// if the previous statement was actually self-contained.
		return i - 1
	}
	return i
}

func widenRight(t *cst.Branch, i int) int {
	if i < t.BranchCount()-1 {
		return i + 1
	}
	return i
}

func countTopLevelBranches(p *parser.Parser) int {
	depth := 0
	count := 0
	for _, ev := range p.Events() {
		switch ev.Kind {
		case parser.EvOpen, parser.EvError:
			if depth == 1 {
				count++
			}
			depth++
		case parser.EvClose:
			depth--
		}
	}
	return count
}

// extractNthStatementParser re-runs the lexer/parser over just the n-th
// top-level statement's token span from a File-level parse, producing a
// parser whose event stream cst.Branch.ReplaceBranch/InsertBranch can fold
// directly. This avoids exposing the File parser's internal event slicing
// outside the package boundary it was built in.
func extractNthStatementParser(filep *parser.Parser, n int, version lexer.Version) *parser.Parser {
	start, end := nthStatementTokenSpan(filep, n)
	tokens := filep.Tokens()[start:end]
	text := ""
	for _, t := range tokens {
		text += t.Text
	}
	absPos := filep.AbsPos() + tokenRunByteOffset(filep.Tokens(), start)
	sub := parser.NewFromSource([]byte(text), version, absPos)
	parser.ParseFile(sub)
	return sub
}

func tokenRunByteOffset(tokens []token.Token, upto int) int {
	n := 0
	for i := 0; i < upto; i++ {
		n += len(tokens[i].Text)
	}
	return n
}

// nthStatementTokenSpan walks the event stream counting Advance events to
// find the half-open token-index range of the n-th direct child of File.
func nthStatementTokenSpan(p *parser.Parser, n int) (int, int) {
	depth := 0
	childIdx := -1
	tokPos := 0
	start, end := 0, len(p.Tokens())
	for _, ev := range p.Events() {
		switch ev.Kind {
		case parser.EvOpen, parser.EvError:
			if depth == 1 {
				childIdx++
				if childIdx == n {
					start = tokPos
				}
			}
			depth++
		case parser.EvAdvance:
			tokPos++
		case parser.EvClose:
			depth--
			if depth == 1 && childIdx == n {
				end = tokPos
			}
		}
	}
	return start, end
}
