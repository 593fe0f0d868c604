// Package sqlitels is the public entry point tying the lexer, parser, CST
// storage variants, incremental re-parse driver, and completion engine
// together into the handful of operations a language server or CLI
// actually needs to call.
package sqlitels

import (
	"github.com/dhamidi/sqlite-ls/completion"
	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/grammar"
	"github.com/dhamidi/sqlite-ls/incremental"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
)

// StorageVariant selects which CST representation Parse builds.
type StorageVariant int

const (
	Batch StorageVariant = iota
	BranchIndexed
	SlotLinked
)

// Document is a parsed document ready for incremental updates and
// completion queries.
type Document struct {
	variant StorageVariant
	batch   *cst.Batch
	inc     *incremental.Document     // only set for BranchIndexed
	slotInc *incremental.SlotDocument // only set for SlotLinked
	version lexer.Version
}

// Tree exposes the document's CST through the shared navigation contract,
// regardless of which storage variant backs it.
func (d *Document) Tree() cst.Tree {
	switch d.variant {
	case Batch:
		return d.batch
	case SlotLinked:
		return d.slotInc.Tree
	case BranchIndexed:
		return d.inc.Tree
	}
	return nil
}

// Parse lexes and parses src from scratch using the given storage variant.
func Parse(src []byte, variant StorageVariant, version lexer.Version) *Document {
	p := parser.NewFromSource(src, version, 0)
	parser.ParseFile(p)
	d := &Document{variant: variant, version: version}
	switch variant {
	case Batch:
		d.batch = cst.BuildBatch(p)
	case SlotLinked:
		d.slotInc = &incremental.SlotDocument{Tree: cst.BuildSlot(p), Text: append([]byte(nil), src...)}
	case BranchIndexed:
		d.inc = &incremental.Document{Tree: cst.BuildBranch(p), Text: append([]byte(nil), src...)}
	}
	return d
}

// ParseWithAbsPos is Parse for a document fragment positioned at byte
// offset absPos within some larger owning document; every node's Start/End
// in the resulting tree is reported in that owning document's coordinates.
func ParseWithAbsPos(src []byte, absPos int, variant StorageVariant, version lexer.Version) *Document {
	p := parser.NewFromSource(src, version, absPos)
	parser.ParseFile(p)
	d := &Document{variant: variant, version: version}
	switch variant {
	case Batch:
		d.batch = cst.BuildBatch(p)
	case SlotLinked:
		d.slotInc = &incremental.SlotDocument{Tree: cst.BuildSlot(p), Text: append([]byte(nil), src...)}
	case BranchIndexed:
		d.inc = &incremental.Document{Tree: cst.BuildBranch(p), Text: append([]byte(nil), src...)}
	}
	return d
}

// ApplyPatch incrementally updates a BranchIndexed or SlotLinked document in
// place. It panics if called on a Batch document, since that variant keeps
// no splice-friendly structure and must be re-parsed from scratch instead.
func (d *Document) ApplyPatch(patch incremental.TextPatch) {
	switch d.variant {
	case BranchIndexed:
		d.inc.Reparse(patch, d.version)
	case SlotLinked:
		d.slotInc.Reparse(patch, d.version)
	default:
		panic("sqlitels: ApplyPatch requires a BranchIndexed or SlotLinked document")
	}
}

// Complete computes completions at byte offset pos using g and schema.
func (d *Document) Complete(g *grammar.Grammar, schema completion.Schema, pos int) []completion.Item {
	e := &completion.Engine{Grammar: g, Schema: schema}
	return e.Complete(d.Tree(), pos)
}
