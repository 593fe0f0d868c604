package cst

import (
	"github.com/dhamidi/sqlite-ls/parser"
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// branchShift packs (branch index, local index) pairs into one NodeID: the
// low branchShift bits hold the local index within a branch's flat array,
// the remaining high bits hold which branch. 1<<20 local slots is far more
// than any single top-level statement ever needs.
const branchShift = 20

func branchNodeID(branch, local int) NodeID { return NodeID((branch+1)<<branchShift | local) }
func splitNodeID(n NodeID) (branch, local int) {
	v := int(n)
	return v>>branchShift - 1, v & (1<<branchShift - 1)
}

// Branch is the branch-indexed storage variant: the document root holds one
// flat rawNode array per top-level statement ("branch"). Replacing a single
// statement during incremental re-parse only rebuilds that branch's array,
// leaving every sibling branch's nodes (and their NodeIDs) untouched.
type Branch struct {
	root     rawNode
	branches [][]rawNode
}

// BuildBranch folds a finished parser run into a Branch tree, splitting the
// root's direct children (each top-level statement) into its own branch.
func BuildBranch(p *parser.Parser) *Branch {
	flat := fold(p.Events(), p.Tokens(), p.AbsPos())
	return fromFlatToBranch(flat)
}

func fromFlatToBranch(flat []rawNode) *Branch {
	root := flat[0]
	b := &Branch{root: rawNode{kind: root.kind, tag: root.tag, start: root.start, end: root.end, parent: -1}}
	for _, childIdx := range root.children {
		branchIdx := len(b.branches)
		arr := extractSubtree(flat, childIdx)
		b.branches = append(b.branches, arr)
		b.root.children = append(b.root.children, branchIdx)
	}
	return b
}

// extractSubtree copies the subtree rooted at flatIdx out of flat into a
// fresh, densely-indexed array (local index 0 is always the branch root),
// remapping every parent/child reference as it goes.
func extractSubtree(flat []rawNode, flatIdx int) []rawNode {
	var out []rawNode
	var visit func(idx, parentLocal int) int
	visit = func(idx, parentLocal int) int {
		local := len(out)
		n := flat[idx]
		n.parent = parentLocal
		n.children = nil
		out = append(out, n)
		for _, c := range flat[idx].children {
			childLocal := visit(c, local)
			out[local].children = append(out[local].children, childLocal)
		}
		return local
	}
	visit(flatIdx, -1)
	return out
}

// ReplaceBranch swaps out branch i's contents wholesale with the result of
// re-parsing just that statement, without touching any other branch's
// NodeIDs: the splice step of the incremental re-parse driver.
func (b *Branch) ReplaceBranch(i int, p *parser.Parser) {
	flat := fold(p.Events(), p.Tokens(), p.AbsPos())
	b.branches[i] = extractSubtree(flat, 0)
}

// BranchCount returns the number of top-level statement branches.
func (b *Branch) BranchCount() int { return len(b.root.children) }

// BranchSpan returns the [start, end) byte range covered by branch i.
func (b *Branch) BranchSpan(i int) (int, int) {
	root := b.branches[i][0]
	return root.start, root.end
}

// InsertBranch inserts a freshly parsed statement as a new branch at index
// i, shifting every later branch one slot to the right. Used when a re-parse
// window discovers the edit actually added a whole new statement.
func (b *Branch) InsertBranch(i int, p *parser.Parser) {
	flat := fold(p.Events(), p.Tokens(), p.AbsPos())
	arr := extractSubtree(flat, 0)
	b.branches = append(b.branches, nil)
	copy(b.branches[i+1:], b.branches[i:])
	b.branches[i] = arr
	b.root.children = append(b.root.children, 0)
	copy(b.root.children[i+1:], b.root.children[i:])
	for j := range b.root.children {
		b.root.children[j] = j
	}
}

// RemoveBranch deletes branch i, shifting later branches left.
func (b *Branch) RemoveBranch(i int) {
	b.branches = append(b.branches[:i], b.branches[i+1:]...)
	b.root.children = b.root.children[:len(b.root.children)-1]
	for j := range b.root.children {
		b.root.children[j] = j
	}
}

// ShiftPositions adds delta to every node's start/end offset in branches at
// index >= from, repairing absolute positions after an edit changed the
// document's length (the position-repair step after a splice).
func (b *Branch) ShiftPositions(from, delta int) {
	for i := from; i < len(b.branches); i++ {
		for j := range b.branches[i] {
			b.branches[i][j].start += delta
			b.branches[i][j].end += delta
		}
	}
}

func (b *Branch) Root() NodeID { return branchNodeID(-1, 0) }

func (b *Branch) nodeAt(n NodeID) *rawNode {
	branch, local := splitNodeID(n)
	if branch < 0 {
		return &b.root
	}
	return &b.branches[branch][local]
}

func (b *Branch) Kind(n NodeID) treekind.Kind          { return b.nodeAt(n).kind }
func (b *Branch) Tag(n NodeID) treekind.Tag             { return b.nodeAt(n).tag }
func (b *Branch) IsToken(n NodeID) bool                 { return b.nodeAt(n).isToken }
func (b *Branch) TokenKind(n NodeID) token.Kind         { return b.nodeAt(n).tokKind }
func (b *Branch) Text(n NodeID) string                  { return b.nodeAt(n).text }
func (b *Branch) Error(n NodeID) *treekind.ParseError   { return b.nodeAt(n).err }
func (b *Branch) Start(n NodeID) int                    { return b.nodeAt(n).start }
func (b *Branch) End(n NodeID) int                      { return b.nodeAt(n).end }

func (b *Branch) Parent(n NodeID) NodeID {
	branch, local := splitNodeID(n)
	if branch < 0 {
		return NilNode
	}
	p := b.branches[branch][local].parent
	if p < 0 {
		return b.Root()
	}
	return branchNodeID(branch, p)
}

func (b *Branch) Children(n NodeID) []NodeID {
	branch, local := splitNodeID(n)
	if branch < 0 {
		out := make([]NodeID, len(b.root.children))
		for i, c := range b.root.children {
			out[i] = branchNodeID(c, 0)
		}
		return out
	}
	raw := b.branches[branch][local].children
	out := make([]NodeID, len(raw))
	for i, c := range raw {
		out[i] = branchNodeID(branch, c)
	}
	return out
}

func (b *Branch) FirstChild(n NodeID) NodeID {
	c := b.Children(n)
	if len(c) == 0 {
		return NilNode
	}
	return c[0]
}

func (b *Branch) LastChild(n NodeID) NodeID {
	c := b.Children(n)
	if len(c) == 0 {
		return NilNode
	}
	return c[len(c)-1]
}

func (b *Branch) NextSibling(n NodeID) NodeID {
	p := b.Parent(n)
	sibs := b.Children(p)
	for i, c := range sibs {
		if c == n {
			if i+1 < len(sibs) {
				return sibs[i+1]
			}
			return NilNode
		}
	}
	return NilNode
}

func (b *Branch) PrevSibling(n NodeID) NodeID {
	p := b.Parent(n)
	sibs := b.Children(p)
	for i, c := range sibs {
		if c == n {
			if i > 0 {
				return sibs[i-1]
			}
			return NilNode
		}
	}
	return NilNode
}
