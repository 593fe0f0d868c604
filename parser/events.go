// Package parser implements a hand-written, error-resilient recursive
// descent parser for SQLite SQL. Instead of building CST nodes directly the
// parser emits a flat event stream; any of the three CST
// storage variants can fold the same stream into its own representation.
package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// EventKind is the tag of one entry in the event stream.
type EventKind int

const (
	EvOpen EventKind = iota
	EvAdvance
	EvClose
	EvError
)

// Event is one entry of the parser's output stream. Open and Error events
// carry a tree kind and optional tag; CloseIdx, filled in when the matching
// Close is emitted, is the distance (in events) from this Open/Error to its
// Close, so a consumer walking the stream forward can skip a whole subtree.
type Event struct {
	Kind     EventKind
	Tree     treekind.Kind
	Tag      treekind.Tag
	CloseIdx int
	Err      *treekind.ParseError
}

// Marker identifies the index of an Open or Error event in the stream so it
// can be completed later (Close), or so a later, larger node can be
// retroactively nested around it via OpenBefore (the "open-before
// markers", used for left-associative Pratt parsing).
type Marker int

// Open records a new, not-yet-kinded Open event and returns a marker to it.
// The kind is filled in by Close.
func (p *Parser) Open() Marker {
	m := Marker(len(p.events))
	p.events = append(p.events, Event{Kind: EvOpen})
	return m
}

// Checkpoint records the current stream position without emitting an
// event, for later use with OpenBefore. Unlike Open, nothing has to be
// closed if the checkpoint is never retroactively opened.
func (p *Parser) Checkpoint() Marker { return Marker(len(p.events)) }

// OpenBefore inserts a new Open event at the position m (a Checkpoint or an
// already-closed node's start), making everything parsed since m a child of
// the newly opened node. This is how the Pratt parser re-parents a
// previously parsed left-hand side under a new infix/postfix operator node.
func (p *Parser) OpenBefore(m Marker) Marker {
	newEvent := Event{Kind: EvOpen}
	p.events = append(p.events[:m], append([]Event{newEvent}, p.events[m:]...)...)
	return m
}

// Close closes the node opened at m, tagging it kind/tag and recording the
// distance to the Close event for O(1) subtree skipping.
func (p *Parser) Close(m Marker, kind treekind.Kind, tag treekind.Tag) {
	p.events[m].Tree = kind
	p.events[m].Tag = tag
	closeIdx := len(p.events)
	p.events[m].CloseIdx = closeIdx - int(m)
	p.events = append(p.events, Event{Kind: EvClose})
}

// OpenError records an Error-kind Open (Error(kind) is the same
// shape as Open for the purposes of recovery wrapping).
func (p *Parser) OpenError(err *treekind.ParseError) Marker {
	m := Marker(len(p.events))
	p.events = append(p.events, Event{Kind: EvError, Err: err})
	return m
}

// CloseError closes an error node opened with OpenError.
func (p *Parser) CloseError(m Marker) {
	closeIdx := len(p.events)
	p.events[m].CloseIdx = closeIdx - int(m)
	p.events = append(p.events, Event{Kind: EvClose})
}

// SetTag retroactively assigns tag to the node at marker m. Markers for
// children are frequently only known to be "the Lhs operand" or "the Rhs
// operand" once the parent operator node is constructed around them, which
// happens after the child has already been closed; SetTag lets the parent
// apply that label without re-opening the child.
func (p *Parser) SetTag(m Marker, tag treekind.Tag) {
	p.events[m].Tag = tag
}

func (p *Parser) emitAdvance() {
	p.events = append(p.events, Event{Kind: EvAdvance})
}

// Events returns the finished event stream. Call only after parsing
// completes.
func (p *Parser) Events() []Event { return p.events }

// Tokens returns every token the lexer produced, including trivia, aligned
// one-to-one with the Advance events in Events().
func (p *Parser) Tokens() []token.Token { return p.tokens }
