package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// parseTypeName parses a column/cast type name: a run of identifier-like
// words followed by an optional (N) or (N,N) argument list, e.g.
// "VARCHAR(255)" or "DOUBLE PRECISION".
func (p *Parser) parseTypeName(follow []token.Kind) Marker {
	m := p.Open()
	progress := p.mustProgress()
	for p.atAny(token.IDEN) || token.IsKeyword(p.peek().Kind) {
		p.advance()
		if !progress() {
			break
		}
	}
	if p.at(token.L_PAREN) {
		args := p.Open()
		p.advance()
		inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
		p.parseSignedNumber(inner)
		if p.at(token.COMMA) {
			p.advance()
			p.parseSignedNumber(inner)
		}
		p.mustEat(token.R_PAREN, follow)
		p.Close(args, treekind.TypeNameArgs, treekind.NoTag)
	}
	p.Close(m, treekind.TypeName, treekind.NoTag)
	return m
}

func (p *Parser) parseSignedNumber(follow []token.Kind) {
	if p.atAny(token.PLUS, token.MINUS) {
		p.advance()
	}
	p.mustEat(token.INT_LIT, follow)
}
