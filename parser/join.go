package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// parseFromClause parses FROM table-or-subquery (join-operator
// table-or-subquery join-constraint?)*, iteratively re-parenting the
// left-hand side under each join operator via OpenBefore, the same
// technique parseExpr uses for left-associative binary operators.
func (p *Parser) parseFromClause(follow []token.Kind) Marker {
	m := p.Open()
	p.advance() // FROM
	itemFollow := append(append([]token.Kind{}, follow...), joinKeywords()...)
	lhs := p.parseTableOrSubquery(itemFollow)

	progress := p.mustProgress()
	for p.atJoinOperatorStart() {
		joinStart := p.OpenBefore(lhs)
		p.SetTag(lhs+1, treekind.Lhs)

		p.parseJoinOperator(itemFollow)

		rhs := p.parseTableOrSubquery(append(append([]token.Kind{}, itemFollow...), token.KW_ON, token.KW_USING))
		p.SetTag(rhs, treekind.Rhs)

		if p.atAny(token.KW_ON, token.KW_USING) {
			p.parseJoinConstraint(itemFollow)
		}
		p.Close(joinStart, treekind.JoinClause, treekind.NoTag)
		lhs = joinStart
		if !progress() {
			break
		}
	}
	p.Close(m, treekind.FromClause, treekind.NoTag)
	return m
}

func joinKeywords() []token.Kind {
	return []token.Kind{
		token.COMMA, token.KW_JOIN, token.KW_NATURAL, token.KW_LEFT, token.KW_RIGHT,
		token.KW_FULL, token.KW_INNER, token.KW_CROSS,
	}
}

func (p *Parser) atJoinOperatorStart() bool {
	return p.atAny(token.COMMA, token.KW_JOIN, token.KW_NATURAL, token.KW_LEFT,
		token.KW_RIGHT, token.KW_FULL, token.KW_INNER, token.KW_CROSS)
}

// parseJoinOperator parses "," or [NATURAL]? [LEFT|RIGHT|FULL [OUTER]|INNER|CROSS]? JOIN,
// flagging anything else as IllegalJoinOperator.
func (p *Parser) parseJoinOperator(follow []token.Kind) {
	m := p.Open()
	if p.at(token.COMMA) {
		p.advance()
		p.Close(m, treekind.JoinOperator, treekind.NoTag)
		return
	}
	if p.at(token.KW_NATURAL) {
		p.advance()
	}
	switch p.peek().Kind {
	case token.KW_LEFT, token.KW_RIGHT, token.KW_INNER, token.KW_CROSS:
		p.advance()
		if p.at(token.KW_OUTER) {
			p.advance()
		}
	case token.KW_FULL:
		p.advance()
		if p.at(token.KW_OUTER) {
			p.advance()
		}
	}
	if !p.mustEat(token.KW_JOIN, follow) {
		p.events[m].Kind = EvError
		p.events[m].Err = &treekind.ParseError{Kind: treekind.IllegalJoinOperator}
	}
	p.Close(m, treekind.JoinOperator, treekind.NoTag)
}

func (p *Parser) parseJoinConstraint(follow []token.Kind) {
	m := p.Open()
	if p.at(token.KW_ON) {
		p.advance()
		p.parseExpr(0, follow)
	} else if p.at(token.KW_USING) {
		p.advance()
		p.mustEat(token.L_PAREN, follow)
		inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
		p.mustEat(token.IDEN, inner)
		for p.at(token.COMMA) {
			p.advance()
			p.mustEat(token.IDEN, inner)
		}
		p.mustEat(token.R_PAREN, follow)
	}
	p.Close(m, treekind.JoinConstraint, treekind.NoTag)
}

// parseTableOrSubquery parses a table name, a parenthesized subquery, or a
// parenthesized join, each with an optional alias and (for plain table
// names) an optional INDEXED BY / NOT INDEXED clause.
func (p *Parser) parseTableOrSubquery(follow []token.Kind) Marker {
	m := p.Open()
	switch p.peek().Kind {
	case token.L_PAREN:
		p.advance()
		inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
		if p.atAny(token.KW_SELECT, token.KW_WITH) {
			p.parseSelectStmtBody(inner)
		} else {
			p.parseFromClauseJoinOnly(inner)
		}
		p.mustEat(token.R_PAREN, follow)
	default:
		p.parseQualifiedTableName(follow)
	}
	p.parseOptionalTableAlias(follow)
	if p.at(token.KW_INDEXED) {
		ib := p.Open()
		p.advance()
		p.mustEat(token.KW_BY, follow)
		p.mustEat(token.IDEN, follow)
		p.Close(ib, treekind.IndexedBy, treekind.NoTag)
	} else if p.at(token.KW_NOT) && p.nthSignificant(1).Kind == token.KW_INDEXED {
		ni := p.Open()
		p.advance()
		p.advance()
		p.Close(ni, treekind.NotIndexed, treekind.NoTag)
	}
	p.Close(m, treekind.TableOrSubquery, treekind.NoTag)
	return m
}

// parseFromClauseJoinOnly parses the body of a parenthesized join
// subexpression: the same grammar as parseFromClause minus the leading FROM.
func (p *Parser) parseFromClauseJoinOnly(follow []token.Kind) {
	itemFollow := append(append([]token.Kind{}, follow...), joinKeywords()...)
	lhs := p.parseTableOrSubquery(itemFollow)
	progress := p.mustProgress()
	for p.atJoinOperatorStart() {
		joinStart := p.OpenBefore(lhs)
		p.SetTag(lhs+1, treekind.Lhs)
		p.parseJoinOperator(itemFollow)
		rhs := p.parseTableOrSubquery(append(append([]token.Kind{}, itemFollow...), token.KW_ON, token.KW_USING))
		p.SetTag(rhs, treekind.Rhs)
		if p.atAny(token.KW_ON, token.KW_USING) {
			p.parseJoinConstraint(itemFollow)
		}
		p.Close(joinStart, treekind.JoinClause, treekind.NoTag)
		lhs = joinStart
		if !progress() {
			break
		}
	}
}

func (p *Parser) parseQualifiedTableName(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.IDEN, follow)
	if p.at(token.DOT) {
		p.advance()
		p.mustEat(token.IDEN, follow)
	}
	p.Close(m, treekind.QualifiedTableName, treekind.NoTag)
}

func (p *Parser) parseOptionalTableAlias(follow []token.Kind) {
	if p.at(token.KW_AS) {
		a := p.Open()
		p.advance()
		p.mustEat(token.IDEN, follow)
		p.Close(a, treekind.TableAlias, treekind.NoTag)
		return
	}
	if p.at(token.IDEN) && !p.atAny(follow...) {
		a := p.Open()
		p.advance()
		p.Close(a, treekind.TableAlias, treekind.NoTag)
	}
}
