package completion

// Node is one node of a completion tree: an intermediate node groups items
// under a shared label (the item kind's group, e.g. "keywords" or "tables"),
// while a leaf node carries an actual completion Item. Only leaves are ever
// offered to the editor; intermediate nodes exist purely to let callers
// that want grouped/faceted completion lists (as opposed to this package's
// flat Engine.Complete) render a tree without recomputing grammar
// traversal themselves.
type Node struct {
	Label    string
	Item     *Item // non-nil only on a leaf
	Children []*Node
}

func leaf(item Item) *Node { return &Node{Label: item.Label, Item: &item} }

func group(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// BuildTree groups a flat completion list by kind, producing a two-level
// tree (kind group -> leaf items) for editors that render completions in
// categorized sections.
func BuildTree(items []Item) *Node {
	buckets := map[ItemKind][]Item{}
	order := []ItemKind{KindKeyword, KindTableName, KindColumnName, KindFunctionName}
	for _, it := range items {
		buckets[it.Kind] = append(buckets[it.Kind], it)
	}
	root := &Node{Label: "completions"}
	for _, k := range order {
		bucket := buckets[k]
		if len(bucket) == 0 {
			continue
		}
		var leaves []*Node
		for _, it := range bucket {
			leaves = append(leaves, leaf(it))
		}
		root.Children = append(root.Children, group(kindLabel(k), leaves...))
	}
	return root
}

func kindLabel(k ItemKind) string {
	switch k {
	case KindKeyword:
		return "keywords"
	case KindTableName:
		return "tables"
	case KindColumnName:
		return "columns"
	case KindFunctionName:
		return "functions"
	default:
		return "other"
	}
}

// Leaves flattens a completion tree back into its constituent Items,
// walking only to the leaves (matching the engine's leaf-only resolution
// policy: intermediate group nodes are never themselves offered as
// completions).
func Leaves(n *Node) []Item {
	if n.Item != nil {
		return []Item{*n.Item}
	}
	var out []Item
	for _, c := range n.Children {
		out = append(out, Leaves(c)...)
	}
	return out
}
