package cst

import (
	"github.com/dhamidi/sqlite-ls/parser"
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// slot is one entry of the Slot variant's backing store: a rawNode plus the
// doubly linked list pointers that make splicing a replacement subtree in
// or out an O(1) pointer rewrite instead of an array shift.
type slot struct {
	node       rawNode
	prev, next int // sibling links, -1 if none
	firstChild int
	lastChild  int
	freed      bool
}

// Slot is the slot-linked storage variant (the third CST
// representation): a slot map of nodes connected by a doubly linked sibling
// list per parent, so the incremental driver can cut out an old subtree and
// splice in a new one in time proportional to the new subtree's size, not
// the document's.
type Slot struct {
	slots []slot
	free  []int
	root  int
}

// BuildSlot folds a finished parser run into a Slot tree.
func BuildSlot(p *parser.Parser) *Slot {
	flat := fold(p.Events(), p.Tokens(), p.AbsPos())
	s := &Slot{}
	s.root = s.importSubtree(flat, 0, -1)
	return s
}

// importSubtree copies a rawNode subtree into fresh slots, wiring up the
// sibling list for each level as it goes.
func (s *Slot) importSubtree(flat []rawNode, flatIdx, parentSlot int) int {
	id := s.alloc(flat[flatIdx])
	s.slots[id].node.parent = parentSlot
	prev := -1
	for _, c := range flat[flatIdx].children {
		childID := s.importSubtree(flat, c, id)
		if prev == -1 {
			s.slots[id].firstChild = childID
		} else {
			s.slots[prev].next = childID
			s.slots[childID].prev = prev
		}
		prev = childID
	}
	s.slots[id].lastChild = prev
	return id
}

func (s *Slot) alloc(n rawNode) int {
	n.children = nil
	sl := slot{node: n, prev: -1, next: -1, firstChild: -1, lastChild: -1}
	if len(s.free) > 0 {
		id := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.slots[id] = sl
		return id
	}
	s.slots = append(s.slots, sl)
	return len(s.slots) - 1
}

// Splice replaces the subtree rooted at old with a freshly built subtree
// from flat, reusing old's position in its parent's sibling list (or, when
// old is the document root, making the new subtree the root). Every slot under old is freed and made
// available for reuse by a later Splice, keeping steady-state memory flat
// across repeated edits.
func (s *Slot) Splice(old int, flat []rawNode) int {
	parent := s.slots[old].node.parent
	prev, next := s.slots[old].prev, s.slots[old].next

	replacement := s.importSubtree(flat, 0, parent)
	s.slots[replacement].prev = prev
	s.slots[replacement].next = next
	if prev != -1 {
		s.slots[prev].next = replacement
	} else if parent != -1 {
		s.slots[parent].firstChild = replacement
	} else {
		s.root = replacement
	}
	if next != -1 {
		s.slots[next].prev = replacement
	} else if parent != -1 {
		s.slots[parent].lastChild = replacement
	}

	s.freeSubtree(old)
	return replacement
}

// SpliceFrom is Splice's parser-driven convenience, the slot-linked
// analogue of Branch.ReplaceBranch: it folds p's finished event stream and
// splices the result in place of old.
func (s *Slot) SpliceFrom(old NodeID, p *parser.Parser) NodeID {
	flat := fold(p.Events(), p.Tokens(), p.AbsPos())
	return NodeID(s.Splice(int(old), flat))
}

// InsertAfter inserts a freshly parsed subtree as a new child of parent,
// immediately following the sibling `after` (or as parent's first child if
// after is NilNode). Used when an incremental re-parse window discovers a
// whole new top-level statement the branch-indexed variant would handle
// with InsertBranch.
func (s *Slot) InsertAfter(parent, after NodeID, p *parser.Parser) NodeID {
	flat := fold(p.Events(), p.Tokens(), p.AbsPos())
	id := s.importSubtree(flat, 0, int(parent))

	if after == NilNode {
		oldFirst := s.slots[parent].firstChild
		s.slots[id].next = oldFirst
		if oldFirst != -1 {
			s.slots[oldFirst].prev = id
		} else {
			s.slots[parent].lastChild = id
		}
		s.slots[parent].firstChild = id
		return NodeID(id)
	}

	nextID := s.slots[after].next
	s.slots[after].next = id
	s.slots[id].prev = int(after)
	s.slots[id].next = nextID
	if nextID != -1 {
		s.slots[nextID].prev = id
	} else {
		s.slots[parent].lastChild = id
	}
	return NodeID(id)
}

// RemoveChild deletes n from its parent's sibling list and frees its
// subtree's slots for reuse, the slot-linked analogue of
// Branch.RemoveBranch.
func (s *Slot) RemoveChild(n NodeID) {
	id := int(n)
	parent := s.slots[id].node.parent
	prev, next := s.slots[id].prev, s.slots[id].next

	if prev != -1 {
		s.slots[prev].next = next
	} else if parent != -1 {
		s.slots[parent].firstChild = next
	}
	if next != -1 {
		s.slots[next].prev = prev
	} else if parent != -1 {
		s.slots[parent].lastChild = prev
	}

	s.freeSubtree(id)
}

// ShiftSubtree adds delta to the start/end offset of n and every node under
// it, repairing absolute positions in the untouched tail of the document
// after an edit changed its length.
func (s *Slot) ShiftSubtree(n NodeID, delta int) {
	id := int(n)
	s.slots[id].node.start += delta
	s.slots[id].node.end += delta
	for c := s.slots[id].firstChild; c != -1; c = s.slots[c].next {
		s.ShiftSubtree(NodeID(c), delta)
	}
}

func (s *Slot) freeSubtree(id int) {
	for c := s.slots[id].firstChild; c != -1; {
		next := s.slots[c].next
		s.freeSubtree(c)
		c = next
	}
	s.slots[id].freed = true
	s.free = append(s.free, id)
}

func (s *Slot) Root() NodeID { return NodeID(s.root) }

func (s *Slot) Kind(n NodeID) treekind.Kind        { return s.slots[n].node.kind }
func (s *Slot) Tag(n NodeID) treekind.Tag           { return s.slots[n].node.tag }
func (s *Slot) IsToken(n NodeID) bool               { return s.slots[n].node.isToken }
func (s *Slot) TokenKind(n NodeID) token.Kind       { return s.slots[n].node.tokKind }
func (s *Slot) Text(n NodeID) string                { return s.slots[n].node.text }
func (s *Slot) Error(n NodeID) *treekind.ParseError { return s.slots[n].node.err }
func (s *Slot) Start(n NodeID) int                  { return s.slots[n].node.start }
func (s *Slot) End(n NodeID) int                    { return s.slots[n].node.end }

func (s *Slot) Parent(n NodeID) NodeID {
	p := s.slots[n].node.parent
	if p < 0 {
		return NilNode
	}
	return NodeID(p)
}

func (s *Slot) FirstChild(n NodeID) NodeID {
	c := s.slots[n].firstChild
	if c < 0 {
		return NilNode
	}
	return NodeID(c)
}

func (s *Slot) LastChild(n NodeID) NodeID {
	c := s.slots[n].lastChild
	if c < 0 {
		return NilNode
	}
	return NodeID(c)
}

func (s *Slot) NextSibling(n NodeID) NodeID {
	c := s.slots[n].next
	if c < 0 {
		return NilNode
	}
	return NodeID(c)
}

func (s *Slot) PrevSibling(n NodeID) NodeID {
	c := s.slots[n].prev
	if c < 0 {
		return NilNode
	}
	return NodeID(c)
}

func (s *Slot) Children(n NodeID) []NodeID {
	var out []NodeID
	for c := s.FirstChild(n); c != NilNode; c = s.NextSibling(c) {
		out = append(out, c)
	}
	return out
}
