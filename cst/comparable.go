package cst

// Equal reports whether two trees (possibly different storage variants)
// have the same shape, kinds, tags, and token text — used by tests and by
// the incremental driver's debug-assertion mode to check a
// spliced tree against a from-scratch parse of the same document.
func Equal(a Tree, an NodeID, b Tree, bn NodeID) bool {
	if a.Kind(an) != b.Kind(bn) || a.Tag(an) != b.Tag(bn) || a.IsToken(an) != b.IsToken(bn) {
		return false
	}
	if a.IsToken(an) {
		return a.TokenKind(an) == b.TokenKind(bn) && a.Text(an) == b.Text(bn)
	}
	ac, bc := a.Children(an), b.Children(bn)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(a, ac[i], b, bc[i]) {
			return false
		}
	}
	return true
}
