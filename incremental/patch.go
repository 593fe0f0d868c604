// Package incremental re-parses only the part of a document an edit
// actually touched and splices the result back into an existing CST,
// instead of re-lexing and re-parsing the whole document on every
// keystroke.
package incremental

// TextPatch describes one contiguous text replacement, in the same terms
// an LSP didChange notification uses: replace the half-open byte range
// [Start, End) with NewText.
type TextPatch struct {
	Start, End int
	NewText    string
}

// Apply returns src with the patch applied.
func (p TextPatch) Apply(src []byte) []byte {
	out := make([]byte, 0, len(src)-(p.End-p.Start)+len(p.NewText))
	out = append(out, src[:p.Start]...)
	out = append(out, p.NewText...)
	out = append(out, src[p.End:]...)
	return out
}

// Delta is the net change in document length the patch introduces;
// everything at or after End in the old document shifts by this amount in
// the new one.
func (p TextPatch) Delta() int { return len(p.NewText) - (p.End - p.Start) }

// enrichedPatch additionally records the new end offset the edit produces,
// computed once so downstream window-widening math doesn't recompute it.
type enrichedPatch struct {
	TextPatch
	newEnd int
}

func enrich(p TextPatch) enrichedPatch {
	return enrichedPatch{TextPatch: p, newEnd: p.Start + len(p.NewText)}
}
