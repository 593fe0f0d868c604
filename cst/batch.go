package cst

import (
	"github.com/dhamidi/sqlite-ls/parser"
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// Batch is the simplest storage variant: one flat array of nodes built
// once from a complete event stream. Cheap to build, O(n) to splice (the
// whole array is rebuilt), which is fine for a first full parse or for
// documents small enough that incremental reuse doesn't pay for itself.
type Batch struct {
	nodes []rawNode
}

// BuildBatch folds a finished parser run into a Batch tree.
func BuildBatch(p *parser.Parser) *Batch {
	return &Batch{nodes: fold(p.Events(), p.Tokens(), p.AbsPos())}
}

func (b *Batch) Root() NodeID                  { return 0 }
func (b *Batch) Kind(n NodeID) treekind.Kind    { return b.nodes[n].kind }
func (b *Batch) Tag(n NodeID) treekind.Tag      { return b.nodes[n].tag }
func (b *Batch) IsToken(n NodeID) bool          { return b.nodes[n].isToken }
func (b *Batch) TokenKind(n NodeID) token.Kind  { return b.nodes[n].tokKind }
func (b *Batch) Text(n NodeID) string           { return b.nodes[n].text }
func (b *Batch) Error(n NodeID) *treekind.ParseError { return b.nodes[n].err }
func (b *Batch) Start(n NodeID) int             { return b.nodes[n].start }
func (b *Batch) End(n NodeID) int               { return b.nodes[n].end }

func (b *Batch) Parent(n NodeID) NodeID {
	if b.nodes[n].parent < 0 {
		return NilNode
	}
	return NodeID(b.nodes[n].parent)
}

func (b *Batch) Children(n NodeID) []NodeID {
	raw := b.nodes[n].children
	out := make([]NodeID, len(raw))
	for i, c := range raw {
		out[i] = NodeID(c)
	}
	return out
}

func (b *Batch) FirstChild(n NodeID) NodeID {
	c := b.nodes[n].children
	if len(c) == 0 {
		return NilNode
	}
	return NodeID(c[0])
}

func (b *Batch) LastChild(n NodeID) NodeID {
	c := b.nodes[n].children
	if len(c) == 0 {
		return NilNode
	}
	return NodeID(c[len(c)-1])
}

func (b *Batch) NextSibling(n NodeID) NodeID {
	p := b.Parent(n)
	if p == NilNode {
		return NilNode
	}
	sibs := b.nodes[p].children
	for i, c := range sibs {
		if NodeID(c) == n {
			if i+1 < len(sibs) {
				return NodeID(sibs[i+1])
			}
			return NilNode
		}
	}
	return NilNode
}

func (b *Batch) PrevSibling(n NodeID) NodeID {
	p := b.Parent(n)
	if p == NilNode {
		return NilNode
	}
	sibs := b.nodes[p].children
	for i, c := range sibs {
		if NodeID(c) == n {
			if i > 0 {
				return NodeID(sibs[i-1])
			}
			return NilNode
		}
	}
	return NilNode
}
