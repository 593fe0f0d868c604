package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// ParseFile parses a whole document: zero or more semicolon-terminated
// statements until EOF, returning the finished parser so callers can pull
// Events()/Tokens() off it.
func ParseFile(p *Parser) *Parser {
	m := p.Open()
	progress := p.mustProgress()
	for !p.at(token.EOF) {
		if p.at(token.SEMICOLON) {
			p.advance()
			if !progress() {
				break
			}
			continue
		}
		p.parseStatement()
		if !progress() {
			break
		}
	}
	p.Close(m, treekind.File, treekind.NoTag)
	return p
}

var stmtFollow = []token.Kind{token.SEMICOLON}

// parseStatement parses one top-level statement (optionally EXPLAIN- or
// WITH-prefixed) up to, and including, its terminating semicolon. A missing
// semicolon is reported as a single ExpectedItems(';') error node so callers
// can recognise it via (*treekind.ParseError).IsMissingSemicolon.
func (p *Parser) parseStatement() {
	m := p.Open()

	if p.at(token.KW_EXPLAIN) {
		e := p.Open()
		p.advance()
		if p.at(token.KW_QUERY) {
			p.advance()
			p.mustEat(token.KW_PLAN, stmtFollow)
		}
		p.Close(e, treekind.ExplainClause, treekind.NoTag)
	}

	if p.at(token.KW_WITH) {
		p.parseSelectStmtBody(stmtFollow)
		p.mustEat(token.SEMICOLON, nil)
		p.Close(m, treekind.StatementWithCte, treekind.NoTag)
		return
	}

	p.dispatchStatementBody()
	p.mustEat(token.SEMICOLON, nil)
	p.Close(m, treekind.Statement, treekind.NoTag)
}

func (p *Parser) dispatchStatementBody() {
	switch p.peek().Kind {
	case token.KW_SELECT, token.KW_VALUES:
		p.parseSelectStmtBody(stmtFollow)
	case token.KW_INSERT, token.KW_REPLACE:
		p.parseInsertStmt(stmtFollow)
	case token.KW_UPDATE:
		p.parseUpdateStmt(stmtFollow)
	case token.KW_DELETE:
		p.parseDeleteStmt(stmtFollow)
	case token.KW_CREATE:
		p.dispatchCreateStmt()
	case token.KW_ALTER:
		p.parseAlterTableStmt(stmtFollow)
	case token.KW_DROP:
		p.parseDropStmt(stmtFollow)
	case token.KW_BEGIN:
		p.parseBeginStmt(stmtFollow)
	case token.KW_COMMIT, token.KW_END:
		p.parseCommitStmt(stmtFollow)
	case token.KW_ROLLBACK:
		p.parseRollbackStmt(stmtFollow)
	case token.KW_SAVEPOINT:
		p.parseSavepointStmt(stmtFollow)
	case token.KW_RELEASE:
		p.parseReleaseStmt(stmtFollow)
	case token.KW_ATTACH:
		p.parseAttachStmt(stmtFollow)
	case token.KW_DETACH:
		p.parseDetachStmt(stmtFollow)
	case token.KW_PRAGMA:
		p.parsePragmaStmt(stmtFollow)
	case token.KW_ANALYZE:
		p.parseAnalyzeStmt(stmtFollow)
	case token.KW_REINDEX:
		p.parseReindexStmt(stmtFollow)
	case token.KW_VACUUM:
		p.parseVacuumStmt(stmtFollow)
	default:
		p.recoverTo(stmtFollow)
	}
}

func (p *Parser) dispatchCreateStmt() {
	switch p.nthSignificant(1).Kind {
	case token.KW_TEMP, token.KW_TEMPORARY:
		switch p.nthSignificant(2).Kind {
		case token.KW_TABLE:
			p.parseCreateTableStmt(stmtFollow)
		case token.KW_VIEW:
			p.parseCreateViewStmt(stmtFollow)
		case token.KW_TRIGGER:
			p.parseCreateTriggerStmt(stmtFollow)
		default:
			p.recoverTo(stmtFollow)
		}
	case token.KW_TABLE:
		p.parseCreateTableStmt(stmtFollow)
	case token.KW_UNIQUE, token.KW_INDEX:
		p.parseCreateIndexStmt(stmtFollow)
	case token.KW_VIEW:
		p.parseCreateViewStmt(stmtFollow)
	case token.KW_TRIGGER:
		p.parseCreateTriggerStmt(stmtFollow)
	case token.KW_VIRTUAL:
		p.parseCreateVirtualTableStmt(stmtFollow)
	default:
		p.recoverTo(stmtFollow)
	}
}
