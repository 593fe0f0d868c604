package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

var selectTrailerKeywords = []token.Kind{
	token.KW_UNION, token.KW_INTERSECT, token.KW_EXCEPT,
	token.KW_ORDER, token.KW_LIMIT, token.SEMICOLON,
}

// parseSelectStmtBody parses a full (possibly WITH-prefixed, possibly
// compound) select statement, without consuming a trailing semicolon: used
// both at the statement level and wherever a subquery can appear.
func (p *Parser) parseSelectStmtBody(follow []token.Kind) Marker {
	m := p.Open()
	if p.at(token.KW_WITH) {
		p.parseCteClause(follow)
	}
	core := p.parseSelectCore(append(append([]token.Kind{}, follow...), selectTrailerKeywords...))

	progress := p.mustProgress()
	for p.atAny(token.KW_UNION, token.KW_INTERSECT, token.KW_EXCEPT) {
		c := p.OpenBefore(core)
		p.SetTag(core+1, treekind.Lhs)
		p.advance()
		if p.at(token.KW_ALL) {
			p.advance()
		}
		rhs := p.parseSelectCore(append(append([]token.Kind{}, follow...), selectTrailerKeywords...))
		p.SetTag(rhs, treekind.Rhs)
		p.Close(c, treekind.CompoundSelect, treekind.NoTag)
		core = c
		if !progress() {
			break
		}
	}

	if p.at(token.KW_ORDER) {
		p.parseOrderByClause(append(append([]token.Kind{}, follow...), token.KW_LIMIT))
	}
	if p.at(token.KW_LIMIT) {
		p.parseLimitClause(follow)
	}
	p.Close(m, treekind.SelectStmt, treekind.NoTag)
	return m
}

func (p *Parser) parseCteClause(follow []token.Kind) {
	m := p.Open()
	p.advance() // WITH
	if p.at(token.KW_RECURSIVE) {
		p.advance()
	}
	cteFollow := append(append([]token.Kind{}, follow...), token.KW_SELECT, token.KW_WITH, token.KW_INSERT, token.KW_UPDATE, token.KW_DELETE)
	p.parseCte(cteFollow)
	for p.at(token.COMMA) {
		p.advance()
		p.parseCte(cteFollow)
	}
	p.Close(m, treekind.CteClause, treekind.NoTag)
}

func (p *Parser) parseCte(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.IDEN, follow)
	if p.at(token.L_PAREN) {
		p.parseColumnNameList(follow)
	}
	if p.at(token.KW_AS) {
		p.advance()
	}
	if p.at(token.KW_MATERIALIZED) {
		p.advance()
	} else if p.at(token.KW_NOT) && p.nthSignificant(1).Kind == token.KW_MATERIALIZED {
		p.advance()
		p.advance()
	}
	p.mustEat(token.L_PAREN, follow)
	p.parseSelectStmtBody(append(append([]token.Kind{}, follow...), token.R_PAREN))
	p.mustEat(token.R_PAREN, follow)
	p.Close(m, treekind.Cte, treekind.NoTag)
}

func (p *Parser) parseColumnNameList(follow []token.Kind) {
	m := p.Open()
	p.advance() // (
	inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
	p.mustEat(token.IDEN, inner)
	for p.at(token.COMMA) {
		p.advance()
		p.mustEat(token.IDEN, inner)
	}
	p.mustEat(token.R_PAREN, follow)
	p.Close(m, treekind.ColumnNameList, treekind.NoTag)
}

func (p *Parser) parseSelectCore(follow []token.Kind) Marker {
	m := p.Open()
	if p.at(token.KW_VALUES) {
		p.advance()
		rowFollow := append(append([]token.Kind{}, follow...), token.COMMA)
		p.parseParenExprOrSubquery(rowFollow)
		for p.at(token.COMMA) {
			p.advance()
			p.parseParenExprOrSubquery(rowFollow)
		}
		p.Close(m, treekind.ValuesClause, treekind.NoTag)
		return m
	}

	p.mustEat(token.KW_SELECT, follow)
	if p.atAny(token.KW_DISTINCT, token.KW_ALL) {
		p.advance()
	}
	p.parseResultColumns(append(append([]token.Kind{}, follow...), token.KW_FROM, token.KW_WHERE, token.KW_GROUP, token.KW_HAVING, token.KW_WINDOW))

	if p.at(token.KW_FROM) {
		p.parseFromClause(append(append([]token.Kind{}, follow...), token.KW_WHERE, token.KW_GROUP, token.KW_HAVING, token.KW_WINDOW))
	}
	if p.at(token.KW_WHERE) {
		w := p.Open()
		p.advance()
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_GROUP, token.KW_HAVING, token.KW_WINDOW))
		p.Close(w, treekind.WhereClause, treekind.NoTag)
	}
	if p.at(token.KW_GROUP) {
		g := p.Open()
		p.advance()
		p.mustEat(token.KW_BY, follow)
		exprFollow := append(append([]token.Kind{}, follow...), token.COMMA, token.KW_HAVING, token.KW_WINDOW)
		p.parseExpr(0, exprFollow)
		for p.at(token.COMMA) {
			p.advance()
			p.parseExpr(0, exprFollow)
		}
		p.Close(g, treekind.GroupByClause, treekind.NoTag)
	}
	if p.at(token.KW_HAVING) {
		h := p.Open()
		p.advance()
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_WINDOW))
		p.Close(h, treekind.HavingClause, treekind.NoTag)
	}
	if p.at(token.KW_WINDOW) {
		p.parseWindowClause(follow)
	}
	p.Close(m, treekind.SelectCore, treekind.NoTag)
	return m
}

func (p *Parser) parseResultColumns(follow []token.Kind) {
	m := p.Open()
	p.parseResultColumn(follow)
	for p.at(token.COMMA) {
		p.advance()
		p.parseResultColumn(follow)
	}
	p.Close(m, treekind.ResultColumns, treekind.NoTag)
}

func (p *Parser) parseResultColumn(follow []token.Kind) {
	m := p.Open()
	itemFollow := append(append([]token.Kind{}, follow...), token.COMMA)
	if p.at(token.STAR) {
		p.advance()
	} else if p.at(token.IDEN) && p.nthSignificant(1).Kind == token.DOT && p.nthSignificant(2).Kind == token.STAR {
		p.advance()
		p.advance()
		p.advance()
	} else {
		p.parseExpr(0, itemFollow)
		p.parseOptionalColumnAlias(itemFollow)
	}
	p.Close(m, treekind.ResultColumn, treekind.NoTag)
}

func (p *Parser) parseOptionalColumnAlias(follow []token.Kind) {
	if p.at(token.KW_AS) {
		p.advance()
		p.mustEat(token.IDEN, follow)
		return
	}
	if p.at(token.IDEN) {
		p.advance()
	}
}

func (p *Parser) parseWindowClause(follow []token.Kind) {
	m := p.Open()
	p.advance() // WINDOW
	p.parseNamedWindow(follow)
	for p.at(token.COMMA) {
		p.advance()
		p.parseNamedWindow(follow)
	}
	p.Close(m, treekind.WindowClause, treekind.NoTag)
}

func (p *Parser) parseNamedWindow(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.IDEN, follow)
	p.mustEat(token.KW_AS, follow)
	p.parseWindowDefBody(follow)
	p.Close(m, treekind.NamedWindow, treekind.NoTag)
}

// parseWindowDefBody parses the "(...)" body shared by an OVER clause and a
// named window definition: [base-window] [PARTITION BY ...] [ORDER BY ...] [frame-spec].
func (p *Parser) parseWindowDefBody(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.L_PAREN, follow)
	inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
	if p.at(token.IDEN) {
		p.advance()
	}
	if p.at(token.KW_PARTITION) {
		pb := p.Open()
		p.advance()
		p.mustEat(token.KW_BY, inner)
		exprFollow := append(append([]token.Kind{}, inner...), token.COMMA, token.KW_ORDER)
		p.parseExpr(0, exprFollow)
		for p.at(token.COMMA) {
			p.advance()
			p.parseExpr(0, exprFollow)
		}
		p.Close(pb, treekind.PartitionByClause, treekind.NoTag)
	}
	if p.at(token.KW_ORDER) {
		p.parseOrderByClause(inner)
	}
	if p.atAny(token.KW_RANGE, token.KW_ROWS, token.KW_GROUPS) {
		p.parseFrameSpec(inner)
	}
	p.mustEat(token.R_PAREN, follow)
	p.Close(m, treekind.WindowDef, treekind.NoTag)
}

func (p *Parser) parseOrderByClause(follow []token.Kind) {
	m := p.Open()
	p.advance() // ORDER
	p.mustEat(token.KW_BY, follow)
	itemFollow := append(append([]token.Kind{}, follow...), token.COMMA)
	p.parseOrderingTerm(itemFollow)
	for p.at(token.COMMA) {
		p.advance()
		p.parseOrderingTerm(itemFollow)
	}
	p.Close(m, treekind.OrderByClause, treekind.NoTag)
}

func (p *Parser) parseOrderingTerm(follow []token.Kind) {
	m := p.Open()
	p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_COLLATE, token.KW_ASC, token.KW_DESC, token.KW_NULLS))
	if p.atAny(token.KW_ASC, token.KW_DESC) {
		p.advance()
	}
	if p.at(token.KW_NULLS) {
		p.advance()
		if p.atAny(token.KW_FIRST, token.KW_LAST) {
			p.advance()
		}
	}
	p.Close(m, treekind.OrderingTerm, treekind.NoTag)
}

func (p *Parser) parseLimitClause(follow []token.Kind) {
	m := p.Open()
	p.advance() // LIMIT
	p.parseExpr(0, append(append([]token.Kind{}, follow...), token.COMMA, token.KW_OFFSET))
	if p.at(token.COMMA) {
		p.advance()
		p.parseExpr(0, follow)
	} else if p.at(token.KW_OFFSET) {
		p.advance()
		p.parseExpr(0, follow)
	}
	p.Close(m, treekind.LimitClause, treekind.NoTag)
}

func (p *Parser) parseFrameSpec(follow []token.Kind) {
	m := p.Open()
	p.advance() // RANGE/ROWS/GROUPS
	switch p.peek().Kind {
	case token.KW_BETWEEN:
		p.advance()
		p.parseFrameBound(append(append([]token.Kind{}, follow...), token.KW_AND))
		p.mustEat(token.KW_AND, follow)
		p.parseFrameBound(follow)
	default:
		p.parseFrameBound(follow)
	}
	if p.at(token.KW_EXCLUDE) {
		p.advance()
		switch p.peek().Kind {
		case token.KW_NO:
			p.advance()
			p.mustEat(token.KW_OTHERS, follow)
		case token.KW_CURRENT:
			p.advance()
			p.mustEat(token.KW_ROW, follow)
		case token.KW_GROUP:
			p.advance()
		case token.KW_TIES:
			p.advance()
		}
	}
	p.Close(m, treekind.FrameSpec, treekind.NoTag)
}

func (p *Parser) parseFrameBound(follow []token.Kind) {
	switch p.peek().Kind {
	case token.KW_UNBOUNDED:
		p.advance()
		p.mustEat(token.KW_PRECEDING, follow)
	case token.KW_CURRENT:
		p.advance()
		p.mustEat(token.KW_ROW, follow)
	default:
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_PRECEDING, token.KW_FOLLOWING))
		if p.atAny(token.KW_PRECEDING, token.KW_FOLLOWING) {
			p.advance()
		}
	}
}
