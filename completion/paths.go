package completion

import (
	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// specialCasePath names one entry of the special-case path table: a
// sequence of ancestor tree kinds (innermost first) that, when they match
// the cursor's actual ancestor chain, bypasses grammar traversal entirely
// in favour of a fixed completion shape. This mirrors the fast paths the
// original completion engine special-cased directly rather than deriving
// from the grammar (e.g. "right after FROM" always means table names, even
// though the grammar would also technically allow a parenthesized
// subquery there).
type specialCasePath struct {
	ancestors []treekind.Kind
	resolve   func(e *Engine, t cst.Tree, path []cst.NodeID, pos int) []Item
}

var specialCasePaths = []specialCasePath{
	{
		ancestors: []treekind.Kind{treekind.FromClause},
		resolve:   tableNameCompletions,
	},
	{
		ancestors: []treekind.Kind{treekind.TableOrSubquery, treekind.FromClause},
		resolve:   tableNameCompletions,
	},
	{
		ancestors: []treekind.Kind{treekind.QualifiedTableName, treekind.TableOrSubquery, treekind.FromClause},
		resolve:   tableNameCompletions,
	},
	{
		ancestors: []treekind.Kind{treekind.ResultColumn, treekind.ResultColumns},
		resolve:   columnOrFunctionCompletions,
	},
	{
		ancestors: []treekind.Kind{treekind.ExprColumnName},
		resolve:   columnOrFunctionCompletions,
	},
}

// specialCase checks path (innermost-first, as produced by pathToRoot)
// against the table and, on a match, returns its fixed completion set. path
// always starts with the target leaf token itself, which carries no
// treekind.Kind of its own, so matching begins at its first ancestor.
func (e *Engine) specialCase(t cst.Tree, path []cst.NodeID, pos int) ([]Item, bool) {
	ancestors := path
	if len(ancestors) > 0 && t.IsToken(ancestors[0]) {
		ancestors = ancestors[1:]
	}
	for _, sc := range specialCasePaths {
		if matchesAncestorPath(t, ancestors, sc.ancestors) {
			return sc.resolve(e, t, path, pos), true
		}
	}
	return nil, false
}

func matchesAncestorPath(t cst.Tree, ancestors []cst.NodeID, want []treekind.Kind) bool {
	if len(ancestors) < len(want) {
		return false
	}
	for i, k := range want {
		if t.Kind(ancestors[i]) != k {
			return false
		}
	}
	return true
}

func tableNameCompletions(e *Engine, t cst.Tree, path []cst.NodeID, pos int) []Item {
	if e.Schema == nil {
		return nil
	}
	var items []Item
	for _, name := range e.Schema.TableNames() {
		items = append(items, Item{Label: name, Kind: KindTableName})
	}
	return items
}

func columnOrFunctionCompletions(e *Engine, t cst.Tree, path []cst.NodeID, pos int) []Item {
	if e.Schema == nil {
		return nil
	}
	table := enclosingFromTable(t, path)
	var items []Item
	for _, name := range e.Schema.ColumnNames(table) {
		items = append(items, Item{Label: name, Kind: KindColumnName})
	}
	return items
}

// enclosingFromTable finds the first (left-most) table name in the nearest
// enclosing FromClause, descending through the Lhs side of JoinClause
// nodes, a crude single-table heuristic: join-aware disambiguation would
// need alias resolution the schema catalog doesn't provide.
func enclosingFromTable(t cst.Tree, path []cst.NodeID) string {
	for _, n := range path {
		if t.Kind(n) != treekind.FromClause {
			continue
		}
		c := t.FirstChild(n)
		for c != cst.NilNode && (t.IsToken(c) || t.Kind(c) == treekind.JoinClause) {
			if t.IsToken(c) {
				c = t.NextSibling(c)
			} else {
				c = t.FirstChild(c)
			}
		}
		if c != cst.NilNode && t.Kind(c) == treekind.TableOrSubquery {
			return firstIdentText(t, c)
		}
	}
	return ""
}

func firstIdentText(t cst.Tree, n cst.NodeID) string {
	if t.IsToken(n) {
		if t.TokenKind(n) != token.IDEN {
			return ""
		}
		return t.Text(n)
	}
	for c := t.FirstChild(n); c != cst.NilNode; c = t.NextSibling(c) {
		if s := firstIdentText(t, c); s != "" {
			return s
		}
	}
	return ""
}
