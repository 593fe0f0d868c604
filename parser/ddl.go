package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

func (p *Parser) parseSchemaQualifiedName(follow []token.Kind) {
	p.mustEat(token.IDEN, follow)
	if p.at(token.DOT) {
		p.advance()
		p.mustEat(token.IDEN, follow)
	}
}

func (p *Parser) parseIfNotExists() {
	if p.at(token.KW_IF) {
		p.advance()
		p.mustEat(token.KW_NOT, nil)
		p.mustEat(token.KW_EXISTS, nil)
	}
}

func (p *Parser) parseIfExists() {
	if p.at(token.KW_IF) {
		p.advance()
		p.mustEat(token.KW_EXISTS, nil)
	}
}

func (p *Parser) parseTempKeyword() {
	if p.atAny(token.KW_TEMP, token.KW_TEMPORARY) {
		p.advance()
	}
}

// parseCreateTableStmt parses CREATE [TEMP] TABLE [IF NOT EXISTS] name
// (column-defs, table-constraints) [table-options] | AS select.
func (p *Parser) parseCreateTableStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // CREATE
	p.parseTempKeyword()
	p.mustEat(token.KW_TABLE, follow)
	p.parseIfNotExists()
	p.parseSchemaQualifiedName(follow)

	if p.at(token.KW_AS) {
		p.advance()
		p.parseSelectStmtBody(follow)
		p.Close(m, treekind.CreateTableStmt, treekind.NoTag)
		return
	}

	p.mustEat(token.L_PAREN, follow)
	defs := p.Open()
	inner := append(append([]token.Kind{}, follow...), token.R_PAREN, token.COMMA)
	p.parseColumnOrTableConstraint(inner)
	for p.at(token.COMMA) {
		p.advance()
		p.parseColumnOrTableConstraint(inner)
	}
	p.Close(defs, treekind.ColumnDefList, treekind.NoTag)
	p.mustEat(token.R_PAREN, follow)

	if p.at(token.KW_WITHOUT) {
		p.parseTableOptions(follow)
	}
	p.Close(m, treekind.CreateTableStmt, treekind.NoTag)
}

// parseColumnOrTableConstraint dispatches between a leading table-constraint
// keyword (PRIMARY/UNIQUE/CHECK/FOREIGN/CONSTRAINT) and a plain column
// definition.
func (p *Parser) parseColumnOrTableConstraint(follow []token.Kind) {
	if p.atAny(token.KW_CONSTRAINT, token.KW_PRIMARY, token.KW_UNIQUE, token.KW_CHECK, token.KW_FOREIGN) {
		p.parseTableConstraint(follow)
		return
	}
	p.parseColumnDef(follow)
}

func (p *Parser) parseTableConstraint(follow []token.Kind) {
	m := p.Open()
	if p.at(token.KW_CONSTRAINT) {
		p.advance()
		p.mustEat(token.IDEN, follow)
	}
	switch p.peek().Kind {
	case token.KW_PRIMARY:
		p.advance()
		p.mustEat(token.KW_KEY, follow)
		p.parseIndexedColumnList(follow)
		p.parseConflictClauseOpt(follow)
	case token.KW_UNIQUE:
		p.advance()
		p.parseIndexedColumnList(follow)
		p.parseConflictClauseOpt(follow)
	case token.KW_CHECK:
		p.advance()
		p.mustEat(token.L_PAREN, follow)
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.R_PAREN))
		p.mustEat(token.R_PAREN, follow)
	case token.KW_FOREIGN:
		p.advance()
		p.mustEat(token.KW_KEY, follow)
		p.parseColumnNameList(follow)
		p.parseForeignKeyClause(follow)
	}
	p.Close(m, treekind.TableConstraint, treekind.NoTag)
}

func (p *Parser) parseIndexedColumnList(follow []token.Kind) {
	p.mustEat(token.L_PAREN, follow)
	inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
	p.parseIndexedColumn(inner)
	for p.at(token.COMMA) {
		p.advance()
		p.parseIndexedColumn(inner)
	}
	p.mustEat(token.R_PAREN, follow)
}

func (p *Parser) parseConflictClauseOpt(follow []token.Kind) {
	if p.at(token.KW_ON) {
		p.advance()
		p.mustEat(token.KW_CONFLICT, follow)
		p.advance() // conflict action
	}
}

func (p *Parser) parseColumnDef(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.IDEN, follow)
	if p.atAny(token.IDEN) || token.IsKeyword(p.peek().Kind) && !p.atAny(token.KW_CONSTRAINT, token.KW_PRIMARY,
		token.KW_NOT, token.KW_NULL, token.KW_UNIQUE, token.KW_CHECK, token.KW_DEFAULT, token.KW_COLLATE,
		token.KW_REFERENCES, token.KW_GENERATED, token.KW_AS, token.COMMA, token.R_PAREN) {
		p.parseTypeName(follow)
	}
	for p.atColumnConstraintStart() {
		p.parseColumnConstraint(follow)
	}
	p.Close(m, treekind.ColumnDef, treekind.NoTag)
}

func (p *Parser) atColumnConstraintStart() bool {
	return p.atAny(token.KW_CONSTRAINT, token.KW_PRIMARY, token.KW_NOT, token.KW_NULL,
		token.KW_UNIQUE, token.KW_CHECK, token.KW_DEFAULT, token.KW_COLLATE,
		token.KW_REFERENCES, token.KW_GENERATED, token.KW_AS)
}

func (p *Parser) parseColumnConstraint(follow []token.Kind) {
	m := p.Open()
	if p.at(token.KW_CONSTRAINT) {
		p.advance()
		p.mustEat(token.IDEN, follow)
	}
	switch p.peek().Kind {
	case token.KW_PRIMARY:
		p.advance()
		p.mustEat(token.KW_KEY, follow)
		if p.atAny(token.KW_ASC, token.KW_DESC) {
			p.advance()
		}
		p.parseConflictClauseOpt(follow)
		if p.at(token.KW_AUTOINCREMENT) {
			p.advance()
		}
	case token.KW_NOT:
		p.advance()
		p.mustEat(token.KW_NULL, follow)
		p.parseConflictClauseOpt(follow)
	case token.KW_NULL:
		p.advance()
		p.parseConflictClauseOpt(follow)
	case token.KW_UNIQUE:
		p.advance()
		p.parseConflictClauseOpt(follow)
	case token.KW_CHECK:
		p.advance()
		p.mustEat(token.L_PAREN, follow)
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.R_PAREN))
		p.mustEat(token.R_PAREN, follow)
	case token.KW_DEFAULT:
		p.advance()
		if p.at(token.L_PAREN) {
			p.advance()
			p.parseExpr(0, append(append([]token.Kind{}, follow...), token.R_PAREN))
			p.mustEat(token.R_PAREN, follow)
		} else {
			p.parseExprAtomOrPrefix(follow)
		}
	case token.KW_COLLATE:
		p.advance()
		p.mustEat(token.IDEN, follow)
	case token.KW_REFERENCES:
		p.parseForeignKeyClause(follow)
	case token.KW_GENERATED, token.KW_AS:
		if p.at(token.KW_GENERATED) {
			p.advance()
			p.mustEat(token.KW_ALWAYS, follow)
		}
		p.mustEat(token.KW_AS, follow)
		p.mustEat(token.L_PAREN, follow)
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.R_PAREN))
		p.mustEat(token.R_PAREN, follow)
		if p.at(token.IDEN) {
			p.advance() // STORED / VIRTUAL, neither a reserved keyword
		}
	}
	p.Close(m, treekind.ColumnConstraint, treekind.NoTag)
}

func (p *Parser) parseForeignKeyClause(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.KW_REFERENCES, follow)
	p.mustEat(token.IDEN, follow)
	if p.at(token.L_PAREN) {
		p.parseColumnNameList(follow)
	}
	progress := p.mustProgress()
	for p.atAny(token.KW_ON, token.KW_MATCH) {
		if p.at(token.KW_MATCH) {
			p.advance()
			p.mustEat(token.IDEN, follow)
		} else {
			a := p.Open()
			p.advance() // ON
			p.advance() // DELETE/UPDATE
			switch p.peek().Kind {
			case token.KW_SET:
				p.advance()
				p.advance() // NULL/DEFAULT
			case token.KW_CASCADE, token.KW_RESTRICT:
				p.advance()
			case token.KW_NO:
				p.advance()
				p.mustEat(token.KW_ACTION, follow)
			}
			p.Close(a, treekind.ForeignKeyAction, treekind.NoTag)
		}
		if !progress() {
			break
		}
	}
	if p.atAny(token.KW_DEFERRABLE, token.KW_NOT) {
		d := p.Open()
		if p.at(token.KW_NOT) {
			p.advance()
		}
		p.mustEat(token.KW_DEFERRABLE, follow)
		if p.at(token.KW_INITIALLY) {
			p.advance()
			p.advance() // DEFERRED/IMMEDIATE
		}
		p.Close(d, treekind.ForeignKeyDeferrable, treekind.NoTag)
	}
	p.Close(m, treekind.ForeignKeyClause, treekind.NoTag)
}

func (p *Parser) parseTableOptions(follow []token.Kind) {
	m := p.Open()
	p.mustEat(token.KW_WITHOUT, follow)
	p.mustEat(token.IDEN, follow) // ROWID
	if p.at(token.COMMA) {
		p.advance()
		p.advance() // STRICT
	}
	p.Close(m, treekind.TableOptions, treekind.NoTag)
}

// parseCreateIndexStmt parses CREATE [UNIQUE] INDEX [IF NOT EXISTS] name ON table (cols) [WHERE expr].
func (p *Parser) parseCreateIndexStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // CREATE
	if p.at(token.KW_UNIQUE) {
		p.advance()
	}
	p.mustEat(token.KW_INDEX, follow)
	p.parseIfNotExists()
	p.parseSchemaQualifiedName(follow)
	p.mustEat(token.KW_ON, follow)
	p.mustEat(token.IDEN, follow)
	p.parseIndexedColumnList(follow)
	if p.at(token.KW_WHERE) {
		p.advance()
		p.parseExpr(0, follow)
	}
	p.Close(m, treekind.CreateIndexStmt, treekind.NoTag)
}

// parseCreateViewStmt parses CREATE [TEMP] VIEW [IF NOT EXISTS] name [(cols)] AS select.
func (p *Parser) parseCreateViewStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // CREATE
	p.parseTempKeyword()
	p.mustEat(token.KW_VIEW, follow)
	p.parseIfNotExists()
	p.parseSchemaQualifiedName(follow)
	if p.at(token.L_PAREN) {
		p.parseColumnNameList(follow)
	}
	p.mustEat(token.KW_AS, follow)
	p.parseSelectStmtBody(follow)
	p.Close(m, treekind.CreateViewStmt, treekind.NoTag)
}

// parseCreateVirtualTableStmt parses CREATE VIRTUAL TABLE [IF NOT EXISTS] name USING module[(args)].
func (p *Parser) parseCreateVirtualTableStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // CREATE
	p.advance() // VIRTUAL
	p.mustEat(token.KW_TABLE, follow)
	p.parseIfNotExists()
	p.parseSchemaQualifiedName(follow)
	p.mustEat(token.KW_USING, follow)
	p.mustEat(token.IDEN, follow)
	if p.at(token.L_PAREN) {
		args := p.Open()
		p.advance()
		inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
		progress := p.mustProgress()
		for !p.at(token.R_PAREN) && !p.at(token.EOF) {
			p.advance()
			if p.at(token.COMMA) {
				p.advance()
			}
			if !progress() {
				break
			}
		}
		p.mustEat(token.R_PAREN, follow)
		_ = inner
		p.Close(args, treekind.ModuleArgList, treekind.NoTag)
	}
	p.Close(m, treekind.CreateVirtualTableStmt, treekind.NoTag)
}

// parseCreateTriggerStmt parses CREATE [TEMP] TRIGGER [IF NOT EXISTS] name
// [BEFORE|AFTER|INSTEAD OF] (DELETE|INSERT|UPDATE [OF cols]) ON table
// [FOR EACH ROW] [WHEN expr] BEGIN stmts END.
func (p *Parser) parseCreateTriggerStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // CREATE
	p.parseTempKeyword()
	p.mustEat(token.KW_TRIGGER, follow)
	p.parseIfNotExists()
	p.parseSchemaQualifiedName(follow)

	switch p.peek().Kind {
	case token.KW_BEFORE, token.KW_AFTER:
		p.advance()
	case token.KW_INSTEAD:
		p.advance()
		p.mustEat(token.KW_OF, follow)
	}

	act := p.Open()
	switch p.peek().Kind {
	case token.KW_DELETE, token.KW_INSERT:
		p.advance()
	case token.KW_UPDATE:
		p.advance()
		if p.at(token.KW_OF) {
			p.advance()
			p.mustEat(token.IDEN, follow)
			for p.at(token.COMMA) {
				p.advance()
				p.mustEat(token.IDEN, follow)
			}
		}
	}
	p.Close(act, treekind.TriggerAction, treekind.NoTag)

	p.mustEat(token.KW_ON, follow)
	p.mustEat(token.IDEN, follow)
	if p.at(token.KW_FOR) {
		p.advance()
		p.mustEat(token.KW_EACH, follow)
		p.mustEat(token.KW_ROW, follow)
	}
	if p.at(token.KW_WHEN) {
		p.advance()
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_BEGIN))
	}
	p.mustEat(token.KW_BEGIN, follow)
	body := p.Open()
	bodyFollow := append(append([]token.Kind{}, follow...), token.KW_END)
	progress := p.mustProgress()
	for !p.at(token.KW_END) && !p.at(token.EOF) {
		p.parseTriggerBodyStmt(bodyFollow)
		if !progress() {
			break
		}
	}
	p.Close(body, treekind.TriggerBody, treekind.NoTag)
	p.mustEat(token.KW_END, follow)
	p.Close(m, treekind.CreateTriggerStmt, treekind.NoTag)
}

func (p *Parser) parseTriggerBodyStmt(follow []token.Kind) {
	switch p.peek().Kind {
	case token.KW_INSERT, token.KW_REPLACE:
		p.parseInsertStmt(append(append([]token.Kind{}, follow...), token.SEMICOLON))
	case token.KW_UPDATE:
		p.parseUpdateStmt(append(append([]token.Kind{}, follow...), token.SEMICOLON))
	case token.KW_DELETE:
		p.parseDeleteStmt(append(append([]token.Kind{}, follow...), token.SEMICOLON))
	case token.KW_SELECT, token.KW_WITH:
		p.parseSelectStmtBody(append(append([]token.Kind{}, follow...), token.SEMICOLON))
	default:
		p.recoverTo(append(append([]token.Kind{}, follow...), token.SEMICOLON))
	}
	p.mustEat(token.SEMICOLON, follow)
}

// parseAlterTableStmt parses ALTER TABLE name RENAME TO name |
// RENAME [COLUMN] col TO col | ADD [COLUMN] column-def | DROP [COLUMN] col.
func (p *Parser) parseAlterTableStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // ALTER
	p.mustEat(token.KW_TABLE, follow)
	p.parseSchemaQualifiedName(follow)

	switch p.peek().Kind {
	case token.KW_RENAME:
		p.advance()
		if p.at(token.KW_TO) {
			p.advance()
			p.mustEat(token.IDEN, follow)
			p.Close(m, treekind.AlterRenameTable, treekind.NoTag)
			return
		}
		if p.at(token.KW_COLUMN) {
			p.advance()
		}
		p.mustEat(token.IDEN, follow)
		p.mustEat(token.KW_TO, follow)
		p.mustEat(token.IDEN, follow)
		p.Close(m, treekind.AlterRenameColumn, treekind.NoTag)
	case token.KW_ADD:
		p.advance()
		if p.at(token.KW_COLUMN) {
			p.advance()
		}
		p.parseColumnDef(follow)
		p.Close(m, treekind.AlterAddColumn, treekind.NoTag)
	case token.KW_DROP:
		p.advance()
		if p.at(token.KW_COLUMN) {
			p.advance()
		}
		p.mustEat(token.IDEN, follow)
		p.Close(m, treekind.AlterDropColumn, treekind.NoTag)
	default:
		p.recoverTo(follow)
		p.Close(m, treekind.AlterTableStmt, treekind.NoTag)
	}
}

// parseDropStmt parses DROP (TABLE|INDEX|VIEW|TRIGGER) [IF EXISTS] name.
func (p *Parser) parseDropStmt(follow []token.Kind) {
	m := p.Open()
	p.advance() // DROP
	p.advance() // TABLE/INDEX/VIEW/TRIGGER
	p.parseIfExists()
	p.parseSchemaQualifiedName(follow)
	p.Close(m, treekind.DropStmt, treekind.NoTag)
}
