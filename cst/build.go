package cst

import (
	"github.com/dhamidi/sqlite-ls/parser"
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// rawNode is the storage-agnostic shape the event-stream builder produces.
// Every concrete variant (Batch, Branch, Slot) is built by folding a slice
// of rawNodes into its own layout; rawNode itself is never exposed outside
// this package.
type rawNode struct {
	kind     treekind.Kind
	tag      treekind.Tag
	err      *treekind.ParseError
	isToken  bool
	tokKind  token.Kind
	text     string
	start    int
	end      int
	parent   int
	children []int
}

// fold walks a finished parser event stream once, building a tree of
// rawNodes in document order. Node 0 is always the root. absPos is added to
// every position so a tree built from a sub-slice of a document (the
// incremental re-parse window) reports absolute offsets.
func fold(events []parser.Event, tokens []token.Token, absPos int) []rawNode {
	nodes := []rawNode{}
	var stack []int
	tokIdx := 0
	pos := absPos

	pushToken := func() int {
		tk := tokens[tokIdx]
		id := len(nodes)
		nodes = append(nodes, rawNode{
			isToken: true,
			tokKind: tk.Kind,
			text:    tk.Text,
			start:   pos,
			end:     pos + len(tk.Text),
		})
		pos += len(tk.Text)
		tokIdx++
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			nodes[top].children = append(nodes[top].children, id)
			nodes[id].parent = top
		}
		return id
	}

	for _, ev := range events {
		switch ev.Kind {
		case parser.EvOpen, parser.EvError:
			id := len(nodes)
			n := rawNode{kind: ev.Tree, tag: ev.Tag}
			if ev.Kind == parser.EvError {
				n.err = ev.Err
				n.kind = treekind.Error
			}
			n.start = pos
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				nodes[top].children = append(nodes[top].children, id)
				n.parent = top
			} else {
				n.parent = -1
			}
			nodes = append(nodes, n)
			stack = append(stack, id)
		case parser.EvAdvance:
			pushToken()
		case parser.EvClose:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			nodes[top].end = pos
		}
	}
	return nodes
}
