package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sqlite-ls/grammar"
)

func newDumpGrammarCmd() *cobra.Command {
	var grammarPath string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "dump-grammar",
		Short: "Print the rules of a grammar (the built-in one by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(grammarPath)
			if err != nil {
				return fmt.Errorf("load grammar: %w", err)
			}

			switch outputFormat {
			case "json":
				return writeJSONGrammar(os.Stdout, g)
			case "line":
				writeLineGrammar(os.Stdout, g)
				return nil
			default:
				return fmt.Errorf("unknown format: %s (expected json or line)", outputFormat)
			}
		},
	}
	cmd.Flags().StringVar(&grammarPath, "grammar", "", "path to an .ungram grammar file (defaults to the built-in grammar)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line)")
	return cmd
}

func sortedRuleNames(g *grammar.Grammar) []string {
	names := make([]string, 0, len(g.Rules))
	for name := range g.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeLineGrammar(w io.Writer, g *grammar.Grammar) {
	fmt.Fprintf(w, "Start = %s\n", g.Start)
	for _, name := range sortedRuleNames(g) {
		fmt.Fprintf(w, "%s =\n", name)
		writeLineRule(w, g.Rule(name), 1)
	}
}

func writeLineRule(w io.Writer, r *grammar.Rule, depth int) {
	indent := strings.Repeat("  ", depth)
	switch r.Kind {
	case grammar.RNode:
		fmt.Fprintf(w, "%s%s\n", indent, r.NodeName)
	case grammar.RToken:
		fmt.Fprintf(w, "%s%q\n", indent, r.TokenText)
	case grammar.RSeq:
		fmt.Fprintf(w, "%sSeq\n", indent)
		for _, item := range r.Items {
			writeLineRule(w, item, depth+1)
		}
	case grammar.RAlt:
		fmt.Fprintf(w, "%sAlt\n", indent)
		for _, item := range r.Items {
			writeLineRule(w, item, depth+1)
		}
	case grammar.ROpt:
		fmt.Fprintf(w, "%sOpt\n", indent)
		writeLineRule(w, r.Inner, depth+1)
	case grammar.RRep:
		fmt.Fprintf(w, "%sRep\n", indent)
		writeLineRule(w, r.Inner, depth+1)
	case grammar.RLabeled:
		fmt.Fprintf(w, "%sLabeled(%s)\n", indent, r.Label)
		writeLineRule(w, r.Inner, depth+1)
	}
}

type dumpRule struct {
	Kind  string      `json:"kind"`
	Node  string      `json:"node,omitempty"`
	Token string      `json:"token,omitempty"`
	Label string      `json:"label,omitempty"`
	Items []*dumpRule `json:"items,omitempty"`
	Inner *dumpRule   `json:"inner,omitempty"`
}

func buildDumpRule(r *grammar.Rule) *dumpRule {
	if r == nil {
		return nil
	}
	dr := &dumpRule{}
	switch r.Kind {
	case grammar.RNode:
		dr.Kind = "node"
		dr.Node = r.NodeName
	case grammar.RToken:
		dr.Kind = "token"
		dr.Token = r.TokenText
	case grammar.RSeq:
		dr.Kind = "seq"
	case grammar.RAlt:
		dr.Kind = "alt"
	case grammar.ROpt:
		dr.Kind = "opt"
		dr.Inner = buildDumpRule(r.Inner)
	case grammar.RRep:
		dr.Kind = "rep"
		dr.Inner = buildDumpRule(r.Inner)
	case grammar.RLabeled:
		dr.Kind = "labeled"
		dr.Label = r.Label
		dr.Inner = buildDumpRule(r.Inner)
	}
	for _, item := range r.Items {
		dr.Items = append(dr.Items, buildDumpRule(item))
	}
	return dr
}

func writeJSONGrammar(w io.Writer, g *grammar.Grammar) error {
	out := struct {
		Start string               `json:"start"`
		Rules map[string]*dumpRule `json:"rules"`
	}{Start: g.Start, Rules: make(map[string]*dumpRule, len(g.Rules))}
	for _, name := range sortedRuleNames(g) {
		out.Rules[name] = buildDumpRule(g.Rule(name))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
