package grammar

import (
	"strconv"

	"golang.org/x/exp/maps"
)

// Traverser walks a token spelling sequence against a grammar rule,
// matching literal token text one at a time via backtracking recursive
// descent over the rule tree (RAlt/RRep branch choices are the only
// backtracking points; everything else is determined by the input). It
// does not know about CST shapes directly: callers (the completion engine)
// feed it the linear sequence of significant token spellings leading up to
// the cursor and ask what could legally come next.
type Traverser struct {
	g      *Grammar
	tokens []string
}

func NewTraverser(g *Grammar, tokens []string) *Traverser {
	return &Traverser{g: g, tokens: tokens}
}

// Continuations returns the set of token spellings that could legally
// appear next, given everything consumed so far matches g starting from
// g.Start. Each entry in literals is a distinct terminal spelling; nodeRefs
// holds the names of every rule reference reached while computing that
// FIRST set, including undefined placeholders such as Name that contribute
// no literals of their own (so
// a special-cased completion, e.g. table names after FROM, can recognise
// "we're inside a TableOrSubquery position" even though the grammar itself
// only knows token spellings).
func (t *Traverser) Continuations() (literals []string, nodeRefs []string) {
	litSet := map[string]bool{}
	refSet := map[string]bool{}
	t.collectFollow(t.g.Rule(t.g.Start), 0, map[string]bool{}, litSet, refSet)
	return maps.Keys(litSet), maps.Keys(refSet)
}

// collectFollow returns true if the rule can match starting at tokens[pos]
// and fully consume through the end of t.tokens (i.e. pos reaches
// len(t.tokens) exactly at some point along a successful path), recording
// every FIRST-set literal seen at the position equal to len(t.tokens) along
// the way — those are the valid completions at the cursor. onStack guards
// against left-recursive rules (e.g. Expr = Expr BinOp Expr): re-entering a
// named rule at the same position it's already being explored from can
// never make progress, so it's treated as a dead end rather than recursed
// into forever.
func (t *Traverser) collectFollow(r *Rule, pos int, onStack, lits, refs map[string]bool) bool {
	if r == nil {
		return pos == len(t.tokens)
	}
	if pos == len(t.tokens) {
		t.first(r, lits, refs)
		return true
	}
	switch r.Kind {
	case RToken:
		return t.tokens[pos] == r.TokenText && pos+1 == len(t.tokens)
	case RNode:
		key := r.NodeName + nodeGuardSep + strconv.Itoa(pos)
		if onStack[key] {
			return false
		}
		onStack[key] = true
		defer delete(onStack, key)
		return t.collectFollow(t.g.Rule(r.NodeName), pos, onStack, lits, refs)
	case RLabeled:
		return t.collectFollow(r.Inner, pos, onStack, lits, refs)
	case ROpt:
		ok := t.collectFollow(r.Inner, pos, onStack, lits, refs)
		return ok || pos == len(t.tokens)
	case RRep:
		any := false
		cur := pos
		for cur < len(t.tokens) {
			matched := false
			for next := cur + 1; next <= len(t.tokens); next++ {
				if t.matchesExactly(r.Inner, cur, next, map[string]bool{}) {
					cur = next
					matched = true
					any = true
					break
				}
			}
			if !matched {
				break
			}
		}
		t.collectFollow(r.Inner, cur, onStack, lits, refs)
		return any || cur == len(t.tokens)
	case RAlt:
		ok := false
		for _, item := range r.Items {
			if t.collectFollow(item, pos, onStack, lits, refs) {
				ok = true
			}
		}
		return ok
	case RSeq:
		return t.collectSeq(r.Items, pos, onStack, lits, refs)
	}
	return false
}

func (t *Traverser) collectSeq(items []*Rule, pos int, onStack, lits, refs map[string]bool) bool {
	if len(items) == 0 {
		return pos == len(t.tokens)
	}
	head, rest := items[0], items[1:]
	if pos == len(t.tokens) {
		t.first(&Rule{Kind: RSeq, Items: items}, lits, refs)
		return true
	}
	// The cursor may sit inside head's own derivation before head itself
	// finishes (e.g. a table reference's trailing INDEXED BY/AS clause, or
	// an ON CONFLICT clause's DO branch); collectFollow explores that
	// directly and records whatever FIRST set head exposes at the point the
	// tokens run out, independently of whether head goes on to match
	// exactly and hand off to rest below.
	ok := t.collectFollow(head, pos, onStack, lits, refs)
	// Try every split point where head could plausibly end.
	for end := pos; end <= len(t.tokens); end++ {
		if end > pos && !t.matchesExactly(head, pos, end, map[string]bool{}) {
			continue
		}
		if end == pos && !t.canBeEmpty(head) {
			continue
		}
		if t.collectSeq(rest, end, onStack, lits, refs) {
			ok = true
		}
	}
	return ok
}

// matchesExactly reports whether r consumes exactly tokens[from:to]. onStack
// guards against left-recursive rules: re-deriving the same named rule over
// the identical [from,to) span it's already being matched against can never
// succeed by itself, so it's rejected instead of recursed into forever. A
// narrower span (e.g. the left operand of a binary expression starting at
// the same from but ending earlier) is a different key and still explored.
func (t *Traverser) matchesExactly(r *Rule, from, to int, onStack map[string]bool) bool {
	if r == nil {
		// An undefined rule reference stands for a single name-like terminal
		// token, so it matches a one-token span (never an empty one) whose
		// spelling starts with a letter or '_', never punctuation such as "*".
		if to != from+1 || t.tokens[from] == "" {
			return false
		}
		c := t.tokens[from][0]
		return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
	}
	switch r.Kind {
	case RToken:
		return to == from+1 && t.tokens[from] == r.TokenText
	case RNode:
		key := r.NodeName + nodeGuardSep + strconv.Itoa(from) + nodeGuardSep + strconv.Itoa(to)
		if onStack[key] {
			return false
		}
		onStack[key] = true
		defer delete(onStack, key)
		return t.matchesExactly(t.g.Rule(r.NodeName), from, to, onStack)
	case RLabeled:
		return t.matchesExactly(r.Inner, from, to, onStack)
	case ROpt:
		return from == to || t.matchesExactly(r.Inner, from, to, onStack)
	case RRep:
		if from == to {
			return true
		}
		for mid := from + 1; mid <= to; mid++ {
			if t.matchesExactly(r.Inner, from, mid, onStack) && t.matchesExactly(r, mid, to, onStack) {
				return true
			}
		}
		return false
	case RAlt:
		for _, item := range r.Items {
			if t.matchesExactly(item, from, to, onStack) {
				return true
			}
		}
		return false
	case RSeq:
		return t.matchesSeqExactly(r.Items, from, to, onStack)
	}
	return false
}

func (t *Traverser) matchesSeqExactly(items []*Rule, from, to int, onStack map[string]bool) bool {
	if len(items) == 0 {
		return from == to
	}
	head, rest := items[0], items[1:]
	for mid := from; mid <= to; mid++ {
		if t.matchesExactly(head, from, mid, onStack) && t.matchesSeqExactly(rest, mid, to, onStack) {
			return true
		}
	}
	return false
}

const nodeGuardSep = "\x00"

// canBeEmpty reports whether r can match the empty string. onStack guards
// against left-recursive rules (e.g. Expr = Expr BinOp Expr): revisiting a
// rule still being expanded is treated as non-nullable rather than recursed
// into forever.
func (t *Traverser) canBeEmpty(r *Rule) bool {
	return t.canBeEmptyOnStack(r, map[string]bool{})
}

func (t *Traverser) canBeEmptyOnStack(r *Rule, onStack map[string]bool) bool {
	if r == nil {
		// An undefined rule reference stands for a single terminal token
		// (e.g. Name, TypeName) the lexer produces directly.
		return false
	}
	switch r.Kind {
	case RToken:
		return false
	case RNode:
		if onStack[r.NodeName] {
			return false
		}
		onStack[r.NodeName] = true
		defer delete(onStack, r.NodeName)
		return t.canBeEmptyOnStack(t.g.Rule(r.NodeName), onStack)
	case RLabeled:
		return t.canBeEmptyOnStack(r.Inner, onStack)
	case ROpt, RRep:
		return true
	case RAlt:
		for _, item := range r.Items {
			if t.canBeEmptyOnStack(item, onStack) {
				return true
			}
		}
		return false
	case RSeq:
		for _, item := range r.Items {
			if !t.canBeEmptyOnStack(item, onStack) {
				return false
			}
		}
		return true
	}
	return true
}

// first adds r's FIRST set into lits and records any nonterminal name
// reached while doing so into refs. Consecutive fixed tokens within a
// sequence (and across alternatives that are themselves fixed token runs)
// are joined into a single multi-word label, e.g. 'GROUP' 'BY' yields
// "GROUP BY" rather than just "GROUP", matching how the original engine
// joins adjacent literal path segments before presenting a completion.
func (t *Traverser) first(r *Rule, lits, refs map[string]bool) {
	for _, phrase := range t.firstPhrases(r, map[string]bool{}) {
		lits[phrase] = true
	}
	t.collectRefs(r, refs)
}

// firstPhrases computes r's FIRST set as joined phrases. onStack guards
// against rules that reference themselves without consuming a token first
// (e.g. Expr = Expr BinOp Expr); revisiting a rule already being expanded
// contributes nothing rather than recursing forever.
func (t *Traverser) firstPhrases(r *Rule, onStack map[string]bool) []string {
	if r == nil {
		return nil
	}
	switch r.Kind {
	case RToken:
		return []string{r.TokenText}
	case RNode:
		if onStack[r.NodeName] {
			return nil
		}
		onStack[r.NodeName] = true
		defer delete(onStack, r.NodeName)
		return t.firstPhrases(t.g.Rule(r.NodeName), onStack)
	case RLabeled:
		return t.firstPhrases(r.Inner, onStack)
	case ROpt, RRep:
		return t.firstPhrases(r.Inner, onStack)
	case RAlt:
		var out []string
		for _, item := range r.Items {
			out = append(out, t.firstPhrases(item, onStack)...)
		}
		return out
	case RSeq:
		return t.firstSeqPhrases(r.Items, onStack)
	}
	return nil
}

// firstSeqPhrases joins a sequence's leading fixed tokens into one phrase
// per legal continuation, stopping the join as soon as what follows isn't
// itself a pure literal run (a nonterminal reference, an optional subrule,
// and so on can't be folded into a single label).
func (t *Traverser) firstSeqPhrases(items []*Rule, onStack map[string]bool) []string {
	if len(items) == 0 {
		return nil
	}
	head, rest := items[0], items[1:]
	headPhrases, headIsLiteral := t.headLiteralPhrases(head, onStack)
	if !headIsLiteral {
		out := t.firstPhrases(head, onStack)
		if t.canBeEmpty(head) {
			out = append(out, t.firstSeqPhrases(rest, onStack)...)
		}
		return out
	}
	if len(rest) == 0 {
		return headPhrases
	}
	if _, restIsLiteral := t.headLiteralPhrases(rest[0], onStack); !restIsLiteral {
		return headPhrases
	}
	tailPhrases := t.firstSeqPhrases(rest, onStack)
	var out []string
	for _, h := range headPhrases {
		for _, r := range tailPhrases {
			out = append(out, h+" "+r)
		}
	}
	return out
}

// headLiteralPhrases reports the fixed spellings r can start with and
// whether r's leading atom is itself a fixed token (directly, through a
// label, or through an alternative of fixed-token runs), so a caller can
// safely join it onto a preceding literal to build a multi-word label. It
// deliberately does not recurse into RNode: a nonterminal reference always
// counts as non-literal here, so joining stops at the first placeholder
// like a table or column name instead of trying to fold it into a phrase.
func (t *Traverser) headLiteralPhrases(r *Rule, onStack map[string]bool) ([]string, bool) {
	if r == nil {
		return nil, false
	}
	switch r.Kind {
	case RToken:
		return []string{r.TokenText}, true
	case RLabeled:
		return t.headLiteralPhrases(r.Inner, onStack)
	case RAlt:
		var out []string
		for _, item := range r.Items {
			phrases, ok := t.headLiteralPhrases(item, onStack)
			if !ok {
				return nil, false
			}
			out = append(out, phrases...)
		}
		return out, true
	case RSeq:
		if len(r.Items) == 0 {
			return nil, false
		}
		if _, ok := t.headLiteralPhrases(r.Items[0], onStack); !ok {
			return nil, false
		}
		return t.firstSeqPhrases(r.Items, onStack), true
	}
	return nil, false
}

func (t *Traverser) collectRefs(r *Rule, refs map[string]bool) {
	t.collectRefsOnStack(r, refs, map[string]bool{})
}

func (t *Traverser) collectRefsOnStack(r *Rule, refs, onStack map[string]bool) {
	if r == nil {
		return
	}
	switch r.Kind {
	case RNode:
		refs[r.NodeName] = true
		if onStack[r.NodeName] {
			return
		}
		onStack[r.NodeName] = true
		defer delete(onStack, r.NodeName)
		t.collectRefsOnStack(t.g.Rule(r.NodeName), refs, onStack)
	case RLabeled:
		t.collectRefsOnStack(r.Inner, refs, onStack)
	case ROpt, RRep:
		t.collectRefsOnStack(r.Inner, refs, onStack)
	case RAlt:
		for _, item := range r.Items {
			t.collectRefsOnStack(item, refs, onStack)
		}
	case RSeq:
		for _, item := range r.Items {
			t.collectRefsOnStack(item, refs, onStack)
			if !t.canBeEmpty(item) {
				break
			}
		}
	}
}
