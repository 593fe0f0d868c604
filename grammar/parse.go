package grammar

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads an ungrammar-format source text into a Grammar. The format,
// one rule per line group:
//
//	Name = alt1 | alt2 | ...
//
// where each alternative is a space-separated sequence of atoms:
//
//	'literal text'      a token with this exact spelling
//	OtherRule           a reference to another rule
//	atom?               zero or one
//	atom*               zero or more
//	label:atom          a labeled child (the label is later exposed as a
//	                     treekind.Tag-like hint to the completion engine)
//	( alt1 | alt2 )      a grouped sub-expression
//
// The first rule defined is the grammar's start rule.
func Parse(src string) (*Grammar, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &gparser{toks: toks}
	g := &Grammar{Rules: map[string]*Rule{}}
	first := true
	for !p.atEOF() {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("="); err != nil {
			return nil, err
		}
		rule, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		g.Rules[name] = rule
		if first {
			g.Start = name
			first = false
		}
	}
	return g, nil
}

type gtoken struct {
	text  string
	ident bool
	lit   bool
}

func tokenize(src string) ([]gtoken, error) {
	var toks []gtoken
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '\'':
			j := i + 1
			for j < n && src[j] != '\'' {
				j++
			}
			if j >= n {
				return nil, fmt.Errorf("grammar: unterminated literal starting at %d", i)
			}
			toks = append(toks, gtoken{text: src[i+1 : j], lit: true})
			i = j + 1
		case strings.ContainsRune("=|?*():", rune(c)):
			toks = append(toks, gtoken{text: string(c)})
			i++
		case unicode.IsLetter(rune(c)) || c == '_':
			j := i
			for j < n && (unicode.IsLetter(rune(src[j])) || unicode.IsDigit(rune(src[j])) || src[j] == '_') {
				j++
			}
			toks = append(toks, gtoken{text: src[i:j], ident: true})
			i = j
		default:
			return nil, fmt.Errorf("grammar: unexpected byte %q at %d", c, i)
		}
	}
	return toks, nil
}

type gparser struct {
	toks []gtoken
	pos  int
}

func (p *gparser) atEOF() bool { return p.pos >= len(p.toks) }
func (p *gparser) peek() gtoken {
	if p.atEOF() {
		return gtoken{}
	}
	return p.toks[p.pos]
}

func (p *gparser) expectIdent() (string, error) {
	t := p.peek()
	if !t.ident {
		return "", fmt.Errorf("grammar: expected identifier at token %d, got %q", p.pos, t.text)
	}
	p.pos++
	return t.text, nil
}

func (p *gparser) expectOp(op string) error {
	t := p.peek()
	if t.text != op || t.ident || t.lit {
		return fmt.Errorf("grammar: expected %q at token %d, got %q", op, p.pos, t.text)
	}
	p.pos++
	return nil
}

// parseAlt parses alt := seq ('|' seq)*, stopping at end of input or a
// closing ')'.
func (p *gparser) parseAlt() (*Rule, error) {
	first, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	items := []*Rule{first}
	for !p.atEOF() && p.peek().text == "|" && !p.peek().ident && !p.peek().lit {
		p.pos++
		next, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return Alt(items...), nil
}

// parseSeq parses seq := atom+, stopping at '|', ')', or the next rule's
// leading identifier followed by '=' (handled by the caller via newlines
// being insignificant; we instead stop a top-level seq at EOF/')'/'|' and
// rely on well-formed input placing one rule definition per logical line).
func (p *gparser) parseSeq() (*Rule, error) {
	var items []*Rule
	for {
		if p.atEOF() || (!p.peek().lit && (p.peek().text == "|" || p.peek().text == ")")) {
			break
		}
		if p.peek().ident && p.isRuleHeaderAhead() {
			break
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		items = append(items, atom)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("grammar: empty sequence at token %d", p.pos)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return Seq(items...), nil
}

// isRuleHeaderAhead reports whether the parser is looking at "Ident =",
// which means the current rule's body has implicitly ended and a new rule
// definition begins.
func (p *gparser) isRuleHeaderAhead() bool {
	if p.pos+1 >= len(p.toks) {
		return false
	}
	next := p.toks[p.pos+1]
	return next.text == "=" && !next.ident && !next.lit
}

func (p *gparser) parseAtom() (*Rule, error) {
	t := p.peek()
	var atom *Rule
	switch {
	case t.lit:
		p.pos++
		atom = Token(t.text)
	case t.text == "(":
		p.pos++
		inner, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		atom = inner
	case t.ident:
		p.pos++
		if !p.atEOF() && p.peek().text == ":" {
			p.pos++
			label := t.text
			inner, err := p.parseAtomNoLabel()
			if err != nil {
				return nil, err
			}
			atom = Labeled(label, inner)
		} else {
			atom = Node(t.text)
		}
	default:
		return nil, fmt.Errorf("grammar: unexpected token %q at %d", t.text, p.pos)
	}
	for !p.atEOF() && (p.peek().text == "?" || p.peek().text == "*") {
		if p.peek().text == "?" {
			atom = Opt(atom)
		} else {
			atom = Rep(atom)
		}
		p.pos++
	}
	return atom, nil
}

// parseAtomNoLabel parses a single atom for use as the operand of a label,
// without consuming a trailing quantifier: parseAtom's quantifier loop
// applies it to the whole Labeled node, so label:X* becomes
// Rep(Labeled(X)) and the label binds tighter than the quantifier.
func (p *gparser) parseAtomNoLabel() (*Rule, error) {
	t := p.peek()
	switch {
	case t.lit:
		p.pos++
		return Token(t.text), nil
	case t.text == "(":
		p.pos++
		inner, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case t.ident:
		p.pos++
		return Node(t.text), nil
	default:
		return nil, fmt.Errorf("grammar: unexpected token %q at %d", t.text, p.pos)
	}
}
