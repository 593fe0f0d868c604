// Package grammar parses a small EBNF-like reference grammar format
// ("ungrammar": one rule per nonterminal, built from token literals,
// nonterminal references, sequencing, alternation, optionality, and
// repetition) and provides a traverser that walks a CST and a grammar rule
// in lockstep, used by the completion engine to compute valid
// continuations at a cursor position.
package grammar

// RuleKind distinguishes the shape of one grammar expression node.
type RuleKind int

const (
	RNode RuleKind = iota // reference to another named rule
	RToken
	RSeq
	RAlt
	ROpt
	RRep
	RLabeled
)

// Rule is one node of a grammar expression tree. Exactly the fields
// matching Kind are meaningful; the rest are zero.
type Rule struct {
	Kind RuleKind

	// RNode
	NodeName string
	// RToken
	TokenText string
	// RSeq, RAlt
	Items []*Rule
	// ROpt, RRep, RLabeled
	Inner *Rule
	// RLabeled
	Label string
}

func Node(name string) *Rule             { return &Rule{Kind: RNode, NodeName: name} }
func Token(text string) *Rule            { return &Rule{Kind: RToken, TokenText: text} }
func Seq(items ...*Rule) *Rule           { return &Rule{Kind: RSeq, Items: items} }
func Alt(items ...*Rule) *Rule           { return &Rule{Kind: RAlt, Items: items} }
func Opt(inner *Rule) *Rule              { return &Rule{Kind: ROpt, Inner: inner} }
func Rep(inner *Rule) *Rule              { return &Rule{Kind: RRep, Inner: inner} }
func Labeled(label string, r *Rule) *Rule { return &Rule{Kind: RLabeled, Label: label, Inner: r} }

// Grammar is a named set of rules, one per nonterminal, plus the name of
// the start rule.
type Grammar struct {
	Rules map[string]*Rule
	Start string
}

func (g *Grammar) Rule(name string) *Rule { return g.Rules[name] }
