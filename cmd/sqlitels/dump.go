package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/sqlite-ls/cst"
)

type dumpNode struct {
	Kind     string     `json:"kind"`
	Tag      string     `json:"tag,omitempty"`
	Token    string     `json:"token,omitempty"`
	Text     string     `json:"text,omitempty"`
	Start    int        `json:"start"`
	End      int        `json:"end"`
	Error    string     `json:"error,omitempty"`
	Children []dumpNode `json:"children,omitempty"`
}

func buildDumpNode(t cst.Tree, n cst.NodeID) dumpNode {
	dn := dumpNode{Start: t.Start(n), End: t.End(n)}
	if t.IsToken(n) {
		dn.Token = t.TokenKind(n).String()
		dn.Text = t.Text(n)
	} else {
		dn.Kind = t.Kind(n).String()
	}
	if tag := t.Tag(n); tag != 0 {
		dn.Tag = tag.String()
	}
	if err := t.Error(n); err != nil {
		dn.Error = err.String()
	}
	for c := t.FirstChild(n); c != cst.NilNode; c = t.NextSibling(c) {
		dn.Children = append(dn.Children, buildDumpNode(t, c))
	}
	return dn
}

func writeJSONTree(w io.Writer, t cst.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildDumpNode(t, t.Root()))
}

func writeLineTree(w io.Writer, t cst.Tree) {
	var walk func(n cst.NodeID, depth int)
	walk = func(n cst.NodeID, depth int) {
		indent := strings.Repeat("  ", depth)
		if t.IsToken(n) {
			fmt.Fprintf(w, "%s%s %q [%d,%d)\n", indent, t.TokenKind(n), t.Text(n), t.Start(n), t.End(n))
			return
		}
		label := t.Kind(n).String()
		if tag := t.Tag(n); tag != 0 {
			label += "@" + tag.String()
		}
		if err := t.Error(n); err != nil {
			label += " ERROR:" + err.String()
		}
		fmt.Fprintf(w, "%s%s [%d,%d)\n", indent, label, t.Start(n), t.End(n))
		for c := t.FirstChild(n); c != cst.NilNode; c = t.NextSibling(c) {
			walk(c, depth+1)
		}
	}
	walk(t.Root(), 0)
}
