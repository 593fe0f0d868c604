// Package completion computes the set of valid continuations at a cursor
// position inside a document, by locating the token under the cursor,
// consulting a table of special-cased completion contexts (e.g. after FROM,
// suggest table names, not grammar-literal keywords), and otherwise
// synchronising a grammar traverser against the CST's token spellings to
// expand the FIRST/FOLLOW sets of what could legally come next.
package completion

import (
	"sort"

	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/grammar"
	"github.com/dhamidi/sqlite-ls/token"
)

// Item is one completion candidate.
type Item struct {
	Label string
	Kind  ItemKind
}

type ItemKind int

const (
	KindKeyword ItemKind = iota
	KindTableName
	KindColumnName
	KindFunctionName
)

func (k ItemKind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindTableName:
		return "table"
	case KindColumnName:
		return "column"
	case KindFunctionName:
		return "function"
	default:
		return "unknown"
	}
}

// Schema is the minimal symbol catalog the engine needs to resolve
// table/column completions; a real reference host backs this with a SQLite
// connection's sqlite_schema.
type Schema interface {
	TableNames() []string
	ColumnNames(table string) []string
}

// Engine computes completions for one document's CST against a grammar and
// a schema catalog.
type Engine struct {
	Grammar *grammar.Grammar
	Schema  Schema
}

// Complete returns the sorted, de-duplicated completion list at byte offset
// pos in tree.
func (e *Engine) Complete(tree cst.Tree, pos int) []Item {
	target := cst.NodeAt(tree, tree.Root(), pos)
	path := pathToRoot(tree, target)

	if items, ok := e.specialCase(tree, path, pos); ok {
		return dedupeSort(items)
	}

	tokens := significantTokenSpellingsBefore(tree, pos)
	trav := grammar.NewTraverser(e.Grammar, tokens)
	literals, nodeRefs := trav.Continuations()

	var items []Item
	for _, lit := range literals {
		if !isKeywordPhrase(lit) {
			continue
		}
		items = append(items, Item{Label: lit, Kind: KindKeyword})
	}
	for _, ref := range nodeRefs {
		items = append(items, e.expandNodeRef(ref)...)
	}
	return dedupeSort(items)
}

// expandNodeRef turns an unresolved grammar reference (a rule the grammar
// never defines a body for, i.e. a terminal placeholder like Name or
// TypeName) into schema-backed completions when the reference's name gives
// enough of a hint; otherwise it contributes nothing; this is the engine's
// leaf-only resolution policy (names are only ever offered at the leaves of
// a completion path, never as an intermediate rule name shown verbatim).
func (e *Engine) expandNodeRef(ref string) []Item {
	if e.Schema == nil {
		return nil
	}
	switch ref {
	case "Name", "TableOrSubquery":
		var items []Item
		for _, t := range e.Schema.TableNames() {
			items = append(items, Item{Label: t, Kind: KindTableName})
		}
		return items
	}
	return nil
}

func dedupeSort(items []Item) []Item {
	seen := map[string]bool{}
	var out []Item
	for _, it := range items {
		key := it.Label
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// pathToRoot returns n and all its strict ancestors, root last.
func pathToRoot(t cst.Tree, n cst.NodeID) []cst.NodeID {
	return cst.Ancestors(t, n)
}

// significantTokenSpellingsBefore linearises every non-trivia token
// strictly before pos into its canonical spelling, in document order, for
// feeding to the grammar traverser.
func significantTokenSpellingsBefore(t cst.Tree, pos int) []string {
	var out []string
	var walk func(n cst.NodeID)
	walk = func(n cst.NodeID) {
		if t.IsToken(n) {
			if t.End(n) > pos {
				return
			}
			if t.TokenKind(n) == token.WHITESPACE || t.TokenKind(n) == token.S_LINE_COMMENT || t.TokenKind(n) == token.M_LINE_COMMENT {
				return
			}
			out = append(out, canonicalSpelling(t, n))
			return
		}
		for c := t.FirstChild(n); c != cst.NilNode; c = t.NextSibling(c) {
			if t.Start(c) >= pos {
				break
			}
			walk(c)
		}
	}
	walk(t.Root())
	return out
}

// canonicalSpelling maps a token to the spelling the grammar's literal
// atoms use: keywords and punctuation render as their upper-cased text;
// everything else (identifiers, literals) collapses to its rule-name
// placeholder so the grammar doesn't need a separate literal per identifier.
func canonicalSpelling(t cst.Tree, n cst.NodeID) string {
	k := t.TokenKind(n)
	if token.IsKeyword(k) || isPunctuationOrOperator(k) {
		return k.String()
	}
	return "Name"
}

// isKeywordPhrase reports whether a grammar literal is a keyword or
// keyword phrase (e.g. "GROUP BY") rather than punctuation or an operator
// symbol (e.g. "*", "("). The traverser's FIRST sets correctly include both,
// but only keyword phrases are useful as standalone completion suggestions.
func isKeywordPhrase(lit string) bool {
	if lit == "" {
		return false
	}
	for _, r := range lit {
		if r == ' ' {
			continue
		}
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func isPunctuationOrOperator(k token.Kind) bool {
	switch k {
	case token.DOT, token.STAR, token.L_PAREN, token.R_PAREN, token.COMMA, token.SEMICOLON,
		token.EQ_SQL, token.PLUS, token.MINUS, token.L_CHEV, token.R_CHEV:
		return true
	default:
		return false
	}
}
