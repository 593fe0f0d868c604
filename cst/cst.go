// Package cst defines the navigation contract shared by every concrete CST
// storage variant (batch, branch-indexed, slot-linked) and the generic
// builder that folds a parser event stream into any of them.
package cst

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// NodeID opaquely identifies a node within one Tree. Its underlying meaning
// (array index, slot index, ...) is storage-specific; callers must never
// compare NodeIDs from two different Trees.
type NodeID int

// NilNode is the sentinel NodeID -1, returned when a query has no answer
// (e.g. Parent of the root, Next of the last child).
const NilNode NodeID = -1

// Tree is the read navigation contract every storage variant implements.
// Positions are absolute byte offsets into the original source text.
type Tree interface {
	Root() NodeID
	Kind(n NodeID) treekind.Kind
	Tag(n NodeID) treekind.Tag
	IsToken(n NodeID) bool
	TokenKind(n NodeID) token.Kind
	Text(n NodeID) string
	Error(n NodeID) *treekind.ParseError
	Start(n NodeID) int
	End(n NodeID) int
	Parent(n NodeID) NodeID
	FirstChild(n NodeID) NodeID
	LastChild(n NodeID) NodeID
	NextSibling(n NodeID) NodeID
	PrevSibling(n NodeID) NodeID
	Children(n NodeID) []NodeID
}

// NodeAt walks down from n to the deepest node whose span contains pos,
// preferring the child ending exactly at pos over the one starting there
// (so a cursor at a boundary resolves to the token just typed).
func NodeAt(t Tree, n NodeID, pos int) NodeID {
	best := n
	for {
		found := NilNode
		for c := t.FirstChild(best); c != NilNode; c = t.NextSibling(c) {
			if t.End(c) == pos {
				found = c
				break
			}
		}
		if found == NilNode {
			for c := t.FirstChild(best); c != NilNode; c = t.NextSibling(c) {
				if t.Start(c) <= pos && pos <= t.End(c) {
					found = c
				}
			}
		}
		if found == NilNode {
			return best
		}
		best = found
	}
}

// Ancestors returns n and every strict ancestor, innermost first.
func Ancestors(t Tree, n NodeID) []NodeID {
	var out []NodeID
	for cur := n; cur != NilNode; cur = t.Parent(cur) {
		out = append(out, cur)
	}
	return out
}

// Errors walks the subtree rooted at n and returns every error node in
// document order, for a host to turn into diagnostics.
func Errors(t Tree, n NodeID) []NodeID {
	var out []NodeID
	if t.Error(n) != nil {
		out = append(out, n)
	}
	for c := t.FirstChild(n); c != NilNode; c = t.NextSibling(c) {
		out = append(out, Errors(t, c)...)
	}
	return out
}

// TextOf reconstructs the full source text spanned by n by concatenating
// every leaf token in order; trivia-preserving by construction since
// trivia tokens are ordinary leaves in the tree.
func TextOf(t Tree, n NodeID) string {
	if t.IsToken(n) {
		return t.Text(n)
	}
	out := ""
	for c := t.FirstChild(n); c != NilNode; c = t.NextSibling(c) {
		out += TextOf(t, c)
	}
	return out
}
