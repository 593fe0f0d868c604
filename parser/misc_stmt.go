package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

func (p *Parser) parseBeginStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // BEGIN
	if p.atAny(token.KW_DEFERRED, token.KW_IMMEDIATE, token.KW_EXCLUSIVE) {
		p.advance()
	}
	if p.at(token.KW_TRANSACTION) {
		p.advance()
	}
	p.Close(m, treekind.BeginStmt, treekind.NoTag)
}

func (p *Parser) parseCommitStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // COMMIT/END
	if p.at(token.KW_TRANSACTION) {
		p.advance()
	}
	p.Close(m, treekind.CommitStmt, treekind.NoTag)
}

func (p *Parser) parseRollbackStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // ROLLBACK
	if p.at(token.KW_TRANSACTION) {
		p.advance()
	}
	if p.at(token.KW_TO) {
		p.advance()
		if p.at(token.KW_SAVEPOINT) {
			p.advance()
		}
		p.mustEat(token.IDEN, follow)
	}
	p.Close(m, treekind.RollbackStmt, treekind.NoTag)
}

func (p *Parser) parseSavepointStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // SAVEPOINT
	p.mustEat(token.IDEN, follow)
	p.Close(m, treekind.SavepointStmt, treekind.NoTag)
}

func (p *Parser) parseReleaseStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // RELEASE
	if p.at(token.KW_SAVEPOINT) {
		p.advance()
	}
	p.mustEat(token.IDEN, follow)
	p.Close(m, treekind.ReleaseStmt, treekind.NoTag)
}

func (p *Parser) parseAttachStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // ATTACH
	if p.at(token.KW_DATABASE) {
		p.advance()
	}
	p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_AS))
	p.mustEat(token.KW_AS, follow)
	p.mustEat(token.IDEN, follow)
	p.Close(m, treekind.AttachStmt, treekind.NoTag)
}

func (p *Parser) parseDetachStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // DETACH
	if p.at(token.KW_DATABASE) {
		p.advance()
	}
	p.mustEat(token.IDEN, follow)
	p.Close(m, treekind.DetachStmt, treekind.NoTag)
}

// parsePragmaStmt parses PRAGMA [schema.]name [= value | (value)].
func (p *Parser) parsePragmaStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // PRAGMA
	p.parseSchemaQualifiedName(follow)
	if p.at(token.EQ_SQL) {
		p.advance()
		p.parsePragmaValue(follow)
	} else if p.at(token.L_PAREN) {
		p.advance()
		p.parsePragmaValue(append(append([]token.Kind{}, follow...), token.R_PAREN))
		p.mustEat(token.R_PAREN, follow)
	}
	p.Close(m, treekind.PragmaStmt, treekind.NoTag)
}

func (p *Parser) parsePragmaValue(follow []token.Kind) {
	if p.atAny(token.PLUS, token.MINUS) {
		p.advance()
	}
	if !p.at(token.EOF) {
		p.advance()
	}
}

func (p *Parser) parseAnalyzeStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // ANALYZE
	if p.at(token.IDEN) {
		p.parseSchemaQualifiedName(follow)
	}
	p.Close(m, treekind.AnalyzeStmt, treekind.NoTag)
}

func (p *Parser) parseReindexStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // REINDEX
	if p.at(token.IDEN) {
		p.parseSchemaQualifiedName(follow)
	}
	p.Close(m, treekind.ReindexStmt, treekind.NoTag)
}

func (p *Parser) parseVacuumStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // VACUUM
	if p.at(token.IDEN) {
		p.advance()
	}
	if p.at(token.KW_INTO) {
		p.advance()
		p.parseExpr(0, follow)
	}
	p.Close(m, treekind.VacuumStmt, treekind.NoTag)
}
