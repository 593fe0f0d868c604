package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// parseInsertStmt parses INSERT/REPLACE INTO table [(cols)] VALUES(...)|SELECT|DEFAULT VALUES
// [upsert-clause] [RETURNING ...].
func (p *Parser) parseInsertStmt(follow []token.Kind) {
	m := p.Open()
	if p.at(token.KW_REPLACE) {
		p.advance()
	} else {
		p.mustEat(token.KW_INSERT, follow)
		if p.at(token.KW_OR) {
			p.advance()
			p.advance() // conflict action keyword
		}
	}
	p.mustEat(token.KW_INTO, follow)
	p.parseQualifiedTableName(follow)
	if p.at(token.KW_AS) {
		p.advance()
		p.mustEat(token.IDEN, follow)
	}
	if p.at(token.L_PAREN) {
		p.parseInsertColumns(follow)
	}
	switch p.peek().Kind {
	case token.KW_DEFAULT:
		p.advance()
		p.mustEat(token.KW_VALUES, follow)
	case token.KW_VALUES:
		p.advance()
		rowFollow := append(append([]token.Kind{}, follow...), token.COMMA, token.KW_ON, token.KW_RETURNING)
		p.parseParenExprOrSubquery(rowFollow)
		for p.at(token.COMMA) {
			p.advance()
			p.parseParenExprOrSubquery(rowFollow)
		}
	default:
		p.parseSelectStmtBody(append(append([]token.Kind{}, follow...), token.KW_ON, token.KW_RETURNING))
	}
	if p.at(token.KW_ON) {
		p.parseUpsertClause(append(append([]token.Kind{}, follow...), token.KW_RETURNING))
	}
	if p.at(token.KW_RETURNING) {
		p.parseReturningClause(follow)
	}
	p.Close(m, treekind.InsertStmt, treekind.NoTag)
}

func (p *Parser) parseInsertColumns(follow []token.Kind) {
	p.parseColumnNameList(follow)
}

func (p *Parser) parseUpsertClause(follow []token.Kind) {
	m := p.Open()
	for p.at(token.KW_ON) {
		clause := p.Open()
		p.advance()
		p.mustEat(token.KW_CONFLICT, follow)
		if p.at(token.L_PAREN) {
			p.advance()
			inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
			p.parseIndexedColumn(inner)
			for p.at(token.COMMA) {
				p.advance()
				p.parseIndexedColumn(inner)
			}
			p.mustEat(token.R_PAREN, follow)
			if p.at(token.KW_WHERE) {
				p.advance()
				p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_DO))
			}
		}
		p.mustEat(token.KW_DO, follow)
		if p.at(token.KW_NOTHING) {
			p.advance()
		} else {
			p.mustEat(token.KW_UPDATE, follow)
			p.mustEat(token.KW_SET, follow)
			u := p.Open()
			p.parseUpdateAssignment(append(append([]token.Kind{}, follow...), token.COMMA, token.KW_WHERE))
			for p.at(token.COMMA) {
				p.advance()
				p.parseUpdateAssignment(append(append([]token.Kind{}, follow...), token.COMMA, token.KW_WHERE))
			}
			p.Close(u, treekind.UpsertDoUpdate, treekind.NoTag)
			if p.at(token.KW_WHERE) {
				p.advance()
				p.parseExpr(0, follow)
			}
		}
		p.Close(clause, treekind.UpsertClause, treekind.NoTag)
		if !p.at(token.KW_ON) {
			break
		}
	}
	p.Close(m, treekind.OnConflictClause, treekind.NoTag)
}

func (p *Parser) parseReturningClause(follow []token.Kind) {
	m := p.Open()
	p.advance() // RETURNING
	p.parseResultColumn(append(append([]token.Kind{}, follow...), token.COMMA))
	for p.at(token.COMMA) {
		p.advance()
		p.parseResultColumn(append(append([]token.Kind{}, follow...), token.COMMA))
	}
	p.Close(m, treekind.ReturningClause, treekind.NoTag)
}

// parseUpdateStmt parses UPDATE [OR conflict] qualified-table SET assignments [FROM ...] [WHERE ...] [RETURNING ...].
func (p *Parser) parseUpdateStmt(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.KW_UPDATE, follow)
	if p.at(token.KW_OR) {
		p.advance()
		p.advance()
	}
	p.parseQualifiedTableName(follow)
	if p.at(token.KW_INDEXED) {
		p.advance()
		p.mustEat(token.KW_BY, follow)
		p.mustEat(token.IDEN, follow)
	} else if p.at(token.KW_NOT) && p.nthSignificant(1).Kind == token.KW_INDEXED {
		p.advance()
		p.advance()
	}
	p.mustEat(token.KW_SET, follow)
	assignFollow := append(append([]token.Kind{}, follow...), token.COMMA, token.KW_FROM, token.KW_WHERE, token.KW_RETURNING)
	p.parseUpdateAssignment(assignFollow)
	for p.at(token.COMMA) {
		p.advance()
		p.parseUpdateAssignment(assignFollow)
	}
	if p.at(token.KW_FROM) {
		p.parseFromClause(append(append([]token.Kind{}, follow...), token.KW_WHERE, token.KW_RETURNING))
	}
	if p.at(token.KW_WHERE) {
		p.advance()
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_RETURNING))
	}
	if p.at(token.KW_RETURNING) {
		p.parseReturningClause(follow)
	}
	p.Close(m, treekind.UpdateStmt, treekind.NoTag)
}

func (p *Parser) parseUpdateAssignment(follow []token.Kind) {
	m := p.Open()
	if p.at(token.L_PAREN) {
		p.parseColumnNameList(follow)
	} else {
		p.mustEat(token.IDEN, follow)
	}
	p.mustEat(token.EQ_SQL, follow)
	rhs := p.parseExpr(0, follow)
	p.SetTag(rhs, treekind.Rhs)
	p.Close(m, treekind.UpdateSetClause, treekind.NoTag)
}

// parseDeleteStmt parses DELETE FROM qualified-table [WHERE ...] [RETURNING ...].
func (p *Parser) parseDeleteStmt(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.KW_DELETE, follow)
	p.mustEat(token.KW_FROM, follow)
	p.parseQualifiedTableName(follow)
	if p.at(token.KW_INDEXED) {
		p.advance()
		p.mustEat(token.KW_BY, follow)
		p.mustEat(token.IDEN, follow)
	} else if p.at(token.KW_NOT) && p.nthSignificant(1).Kind == token.KW_INDEXED {
		p.advance()
		p.advance()
	}
	if p.at(token.KW_WHERE) {
		p.advance()
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_RETURNING))
	}
	if p.at(token.KW_RETURNING) {
		p.parseReturningClause(follow)
	}
	p.Close(m, treekind.DeleteStmt, treekind.NoTag)
}

func (p *Parser) parseIndexedColumn(follow []token.Kind) {
	m := p.Open()
	p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_COLLATE, token.KW_ASC, token.KW_DESC))
	if p.atAny(token.KW_ASC, token.KW_DESC) {
		p.advance()
	}
	p.Close(m, treekind.IndexedColumn, treekind.NoTag)
}
