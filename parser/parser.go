package parser

import (
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// maxFuel bounds the number of lookahead steps a single parsing routine may
// take without consuming a token. Exhausting it means a grammar rule has a
// bug that would otherwise spin forever; this is a programmer error, not a
// recoverable parse failure.
const maxFuel = 256

// Parser drives recursive-descent parsing of one token stream, emitting an
// Event stream instead of building tree nodes directly.
type Parser struct {
	tokens []token.Token // includes trivia
	pos    int           // index into tokens
	events []Event
	fuel   int

	// absPos is the byte offset of tokens[0] within the owning document;
	// non-zero when parsing a slice positioned inside a larger document
	// (ParseWithAbsPos, and the incremental driver's re-parse window).
	absPos int
}

// New creates a parser over already-lexed tokens (including trivia),
// positioned at document byte offset absPos.
func New(tokens []token.Token, absPos int) *Parser {
	return &Parser{tokens: tokens, fuel: maxFuel, absPos: absPos}
}

// NewFromSource lexes src with the given dialect version and returns a
// parser ready to run.
func NewFromSource(src []byte, version lexer.Version, absPos int) *Parser {
	return New(lexer.TokenizeAll(src, version), absPos)
}

// AbsPos returns the byte offset of this parser's token stream within the
// owning document.
func (p *Parser) AbsPos() int { return p.absPos }

// nthSignificant returns the n-th non-trivia token at or after pos without
// consuming anything (n=0 is "the next significant token").
func (p *Parser) nthSignificant(n int) token.Token {
	count := 0
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].IsTrivia() {
			continue
		}
		if count == n {
			return p.tokens[i]
		}
		count++
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) peek() token.Token { return p.nthSignificant(0) }

func (p *Parser) at(k token.Kind) bool {
	p.useFuel()
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) useFuel() {
	p.fuel--
	if p.fuel <= 0 {
		panic("parser: fuel exhausted, grammar rule failed to make progress")
	}
}

// bumpTrivia attaches any pending whitespace/comment tokens as Advance
// events before the next significant token is consumed: trivia is advanced
// implicitly around any explicit Advance.
func (p *Parser) bumpTrivia() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].IsTrivia() {
		p.emitAdvance()
		p.pos++
	}
}

// advance consumes and emits the next significant token (plus any leading
// trivia). It is a no-op past EOF.
func (p *Parser) advance() token.Token {
	p.bumpTrivia()
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	tok := p.tokens[p.pos]
	p.emitAdvance()
	p.pos++
	p.fuel = maxFuel
	return tok
}

// mustProgress returns a closure to call at the bottom of a parsing loop;
// if no token was consumed since the loop iteration began it force-advances
// one token (or returns false at EOF) so malformed input cannot spin the
// loop forever.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if p.at(token.EOF) {
				return false
			}
			p.errorAdvance(treekind.UnknownTokens, nil)
		}
		saved = p.pos
		return true
	}
}

// mustEat advances up to the next token in follow ∪ {expected}, wrapping any
// skipped tokens in an Error(ExpectedItems([expected])) node. Returns true
// if `expected` itself was consumed.
func (p *Parser) mustEat(expected token.Kind, follow []token.Kind) bool {
	if p.at(expected) {
		p.advance()
		return true
	}
	stopSet := append(append([]token.Kind{}, follow...), expected, token.EOF)
	if p.atAny(follow...) || p.at(token.EOF) {
		p.emitExpectedError([]treekind.ExpectedItem{treekind.ExpectedToken(expected)}, nil)
		return false
	}
	skipped := p.OpenError(&treekind.ParseError{
		Kind:     treekind.ExpectedItems,
		Expected: []treekind.ExpectedItem{treekind.ExpectedToken(expected)},
	})
	for !p.atInSet(stopSet) {
		p.advance()
	}
	p.CloseError(skipped)
	if p.at(expected) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) atInSet(kinds []token.Kind) bool {
	return p.atAny(kinds...)
}

// emitExpectedError emits a zero-width Error(ExpectedItems) node at the
// current position, consuming nothing: used when the expected token is
// itself in the follow set, so skipping forward would eat context the
// caller still needs.
func (p *Parser) emitExpectedError(expected []treekind.ExpectedItem, _ []token.Kind) {
	m := p.OpenError(&treekind.ParseError{Kind: treekind.ExpectedItems, Expected: expected})
	p.CloseError(m)
}

// errorAdvance consumes exactly one token, wrapping it in an Error node.
func (p *Parser) errorAdvance(kind treekind.ErrorPayloadKind, expected []treekind.ExpectedItem) {
	m := p.OpenError(&treekind.ParseError{Kind: kind, Expected: expected})
	p.advance()
	p.CloseError(m)
}

// recoverTo skips tokens (wrapping them as UnknownTokens) until the next
// token in `follow` or EOF.
func (p *Parser) recoverTo(follow []token.Kind) {
	if p.at(token.EOF) || p.atAny(follow...) {
		return
	}
	m := p.OpenError(&treekind.ParseError{Kind: treekind.UnknownTokens})
	for !p.at(token.EOF) && !p.atAny(follow...) {
		p.advance()
	}
	p.CloseError(m)
}

// IsMissingSemicolonErr reports whether err is exactly the recoverable
// missing-semicolon marker this parser emits between two statements that
// run together. A host walking a document's errors to build diagnostics
// uses this to suppress that one recoverable case rather than surfacing it
// as a hard error.
func IsMissingSemicolonErr(err *treekind.ParseError) bool {
	return err.IsMissingSemicolon()
}
