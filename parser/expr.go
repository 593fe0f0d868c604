package parser

import (
	"github.com/dhamidi/sqlite-ls/token"
	"github.com/dhamidi/sqlite-ls/treekind"
)

// bp is a Pratt binding power. 0 means "no binding power on this side"
// (used to mark prefix-only and postfix-only operators).
type bp = uint8

// infixEntry is one row of the precedence table (confirmed
// against the original parser's precedence_table()).
type infixEntry struct {
	left, right bp
	postfix     bool
}

var infixTable = map[treekind.Kind]infixEntry{
	treekind.OpCollate:    {21, 0, true},
	treekind.OpConcat:     {19, 20, false},
	treekind.OpExtractOne: {19, 20, false},
	treekind.OpExtractTwo: {19, 20, false},
	treekind.OpMultiply:   {17, 18, false},
	treekind.OpDivide:     {17, 18, false},
	treekind.OpModulus:    {17, 18, false},
	treekind.OpAdd:        {15, 16, false},
	treekind.OpSubtract:   {15, 16, false},
	// Bitwise shifts/and/or are right-associative in SQLite: right bp < left bp.
	treekind.OpBinAnd:     {13, 12, false},
	treekind.OpBinOr:      {13, 12, false},
	treekind.OpBinLShift:  {13, 12, false},
	treekind.OpBinRShift:  {13, 12, false},
	treekind.OpLT:         {9, 10, false},
	treekind.OpGT:         {9, 10, false},
	treekind.OpLTE:        {9, 10, false},
	treekind.OpGTE:        {9, 10, false},

	treekind.OpEq:                  {7, 8, false},
	treekind.OpNotEq:                {7, 8, false},
	treekind.OpIs:                   {7, 8, false},
	treekind.OpIsNot:                {7, 8, false},
	treekind.OpIsDistinctFrom:       {7, 8, false},
	treekind.OpIsNotDistinctFrom:    {7, 8, false},
	treekind.OpBetweenAnd:           {7, 8, false},
	treekind.OpNotBetweenAnd:        {7, 8, false},
	treekind.OpIn:                   {7, 8, false},
	treekind.OpNotIn:                {7, 8, false},
	treekind.OpMatch:                {7, 8, false},
	treekind.OpNotMatch:             {7, 8, false},
	treekind.OpLike:                 {7, 8, false},
	treekind.OpNotLike:              {7, 8, false},
	treekind.OpRegexp:               {7, 8, false},
	treekind.OpNotRegexp:            {7, 8, false},
	treekind.OpGlob:                 {7, 8, false},
	treekind.OpNotGlob:              {7, 8, false},
	treekind.OpIsNull:               {7, 0, true},
	treekind.OpNotNull:              {7, 0, true},
	treekind.OpNotSpaceNull:         {7, 0, true},

	treekind.OpAnd: {3, 4, false},
	treekind.OpOr:  {1, 2, false},
}

const (
	prefixTildeMinusPlusRightBP bp = 23
	prefixNotRightBP            bp = 5
)

// parseExpr parses one expression, stopping before any infix/postfix
// operator whose left binding power is less than minBP, and before any
// token in follow. Returns the marker of the resulting top-level node.
func (p *Parser) parseExpr(minBP bp, follow []token.Kind) Marker {
	lhs := p.parseExprAtomOrPrefix(follow)

	for {
		op, width, ok := p.peekInfixOperator()
		if !ok {
			break
		}
		entry := infixTable[op]
		if entry.left < minBP {
			break
		}

		m := p.OpenBefore(lhs)
		p.SetTag(lhs+1, treekind.Lhs)
		p.consumeOperatorTokens(width)

		switch op {
		case treekind.OpBetweenAnd, treekind.OpNotBetweenAnd:
			low := p.parseExpr(entry.right, follow)
			p.SetTag(low, treekind.Low)
			p.mustEat(token.KW_AND, follow)
			high := p.parseExpr(entry.right, follow)
			p.SetTag(high, treekind.High)
		case treekind.OpLike, treekind.OpNotLike:
			rhs := p.parseExpr(entry.right, follow)
			p.SetTag(rhs, treekind.Rhs)
			// ESCAPE only ever appears as an optional suffix of LIKE/NOT
			// LIKE; it is not a generic infix operator.
			if p.at(token.KW_ESCAPE) {
				p.advance()
				esc := p.Open()
				p.mustEat(token.STR_LIT, follow)
				p.Close(esc, treekind.ExprLiteral, treekind.Escape)
			}
		default:
			if !entry.postfix {
				rhs := p.parseExpr(entry.right, follow)
				p.SetTag(rhs, treekind.Rhs)
			}
		}
		p.Close(m, op, treekind.NoTag)
		lhs = m
	}
	return lhs
}

// consumeOperatorTokens advances exactly width significant tokens (the
// spelling of a possibly multi-word fused operator like "NOT LIKE" or
// "IS NOT DISTINCT FROM").
func (p *Parser) consumeOperatorTokens(width int) {
	for i := 0; i < width; i++ {
		p.advance()
	}
}

// peekInfixOperator looks at (without consuming) the upcoming significant
// tokens and decides whether they start an infix or postfix operator,
// returning its tree kind and how many tokens its spelling occupies.
func (p *Parser) peekInfixOperator() (treekind.Kind, int, bool) {
	t0 := p.nthSignificant(0)
	switch t0.Kind {
	case token.DOUBLE_PIPE:
		return treekind.OpConcat, 1, true
	case token.EXTRACT_ONE:
		return treekind.OpExtractOne, 1, true
	case token.EXTRACT_TWO:
		return treekind.OpExtractTwo, 1, true
	case token.STAR:
		return treekind.OpMultiply, 1, true
	case token.F_SLASH:
		return treekind.OpDivide, 1, true
	case token.PERCENT:
		return treekind.OpModulus, 1, true
	case token.PLUS:
		return treekind.OpAdd, 1, true
	case token.MINUS:
		return treekind.OpSubtract, 1, true
	case token.AMPERSAND:
		return treekind.OpBinAnd, 1, true
	case token.PIPE:
		return treekind.OpBinOr, 1, true
	case token.L_CHEV_TWO:
		return treekind.OpBinLShift, 1, true
	case token.R_CHEV_TWO:
		return treekind.OpBinRShift, 1, true
	case token.L_CHEV:
		return treekind.OpLT, 1, true
	case token.R_CHEV:
		return treekind.OpGT, 1, true
	case token.L_CHEV_EQ:
		return treekind.OpLTE, 1, true
	case token.R_CHEV_EQ:
		return treekind.OpGTE, 1, true
	case token.EQ, token.EQ_SQL:
		return treekind.OpEq, 1, true
	case token.NOT_EQ, token.NOT_EQ_SQL:
		return treekind.OpNotEq, 1, true
	case token.KW_COLLATE:
		return treekind.OpCollate, 1, true
	case token.KW_AND:
		return treekind.OpAnd, 1, true
	case token.KW_OR:
		return treekind.OpOr, 1, true
	case token.KW_IN:
		return treekind.OpIn, 1, true
	case token.KW_LIKE:
		return treekind.OpLike, 1, true
	case token.KW_GLOB:
		return treekind.OpGlob, 1, true
	case token.KW_MATCH:
		return treekind.OpMatch, 1, true
	case token.KW_REGEXP:
		return treekind.OpRegexp, 1, true
	case token.KW_BETWEEN:
		return treekind.OpBetweenAnd, 1, true
	case token.KW_ISNULL:
		return treekind.OpIsNull, 1, true
	case token.KW_NOTNULL:
		return treekind.OpNotNull, 1, true
	case token.KW_IS:
		return p.peekIsOperator()
	case token.KW_NOT:
		return p.peekNotFusedOperator()
	}
	return treekind.Error, 0, false
}

// peekIsOperator resolves IS / IS NOT / IS DISTINCT FROM / IS NOT DISTINCT
// FROM by looking ahead up to three extra tokens.
func (p *Parser) peekIsOperator() (treekind.Kind, int, bool) {
	i := 1
	hasNot := p.nthSignificant(i).Kind == token.KW_NOT
	if hasNot {
		i++
	}
	if p.nthSignificant(i).Kind == token.KW_DISTINCT && p.nthSignificant(i+1).Kind == token.KW_FROM {
		if hasNot {
			return treekind.OpIsNotDistinctFrom, i + 2, true
		}
		return treekind.OpIsDistinctFrom, i + 2, true
	}
	if hasNot {
		return treekind.OpIsNot, 2, true
	}
	return treekind.OpIs, 1, true
}

// peekNotFusedOperator resolves the infix-position uses of NOT: "NOT IN",
// "NOT LIKE", "NOT GLOB", "NOT MATCH", "NOT REGEXP", "NOT BETWEEN", and the
// postfix "NOT NULL". A bare NOT in this position (not followed by one of
// these) is not an infix operator at all (prefix NOT only appears in atom
// position; see parseExprAtomOrPrefix), so ok is false.
func (p *Parser) peekNotFusedOperator() (treekind.Kind, int, bool) {
	next := p.nthSignificant(1)
	switch next.Kind {
	case token.KW_IN:
		return treekind.OpNotIn, 2, true
	case token.KW_LIKE:
		return treekind.OpNotLike, 2, true
	case token.KW_GLOB:
		return treekind.OpNotGlob, 2, true
	case token.KW_MATCH:
		return treekind.OpNotMatch, 2, true
	case token.KW_REGEXP:
		return treekind.OpNotRegexp, 2, true
	case token.KW_BETWEEN:
		return treekind.OpNotBetweenAnd, 2, true
	case token.KW_NULL:
		return treekind.OpNotSpaceNull, 2, true
	}
	return treekind.Error, 0, false
}

// parseExprAtomOrPrefix parses one primary expression, including any
// leading prefix operator (~, +, -, NOT).
func (p *Parser) parseExprAtomOrPrefix(follow []token.Kind) Marker {
	switch p.peek().Kind {
	case token.TILDA, token.PLUS, token.MINUS:
		return p.parsePrefixOp(follow)
	case token.KW_NOT:
		return p.parsePrefixNot(follow)
	}
	return p.parseExprAtom(follow)
}

func (p *Parser) parsePrefixOp(follow []token.Kind) Marker {
	m := p.Open()
	var kind treekind.Kind
	switch p.peek().Kind {
	case token.TILDA:
		kind = treekind.OpBinComplement
	case token.PLUS:
		kind = treekind.OpUnaryPlus
	case token.MINUS:
		kind = treekind.OpUnaryMinus
	}
	p.advance()
	rhs := p.parseExpr(prefixTildeMinusPlusRightBP, follow)
	p.SetTag(rhs, treekind.Rhs)
	p.Close(m, kind, treekind.NoTag)
	return m
}

func (p *Parser) parsePrefixNot(follow []token.Kind) Marker {
	m := p.Open()
	p.advance()
	rhs := p.parseExpr(prefixNotRightBP, follow)
	p.SetTag(rhs, treekind.Rhs)
	p.Close(m, treekind.OpNot, treekind.NoTag)
	return m
}

// parseExprAtom parses literals, column references, bind parameters,
// function calls, CASE, CAST, parenthesized expressions/subqueries, EXISTS
// and RAISE.
func (p *Parser) parseExprAtom(follow []token.Kind) Marker {
	tok := p.peek()
	switch tok.Kind {
	case token.STR_LIT, token.REAL_LIT, token.INT_LIT, token.HEX_LIT, token.BLOB_LIT,
		token.KW_NULL, token.KW_CURRENT_TIME, token.KW_CURRENT_DATE, token.KW_CURRENT_TIMESTAMP:
		m := p.Open()
		p.advance()
		p.Close(m, treekind.ExprLiteral, treekind.NoTag)
		return m
	case token.Q_MARK, token.PARAM_NUM, token.PARAM_NAME:
		m := p.Open()
		p.advance()
		p.Close(m, treekind.ExprBindParam, treekind.NoTag)
		return m
	case token.L_PAREN:
		return p.parseParenExprOrSubquery(follow)
	case token.KW_CASE:
		return p.parseCaseExpr(follow)
	case token.KW_CAST:
		return p.parseCastExpr(follow)
	case token.KW_EXISTS:
		return p.parseExistsExpr(follow)
	case token.KW_RAISE:
		return p.parseRaiseExpr(follow)
	case token.KW_SELECT, token.KW_WITH:
		m := p.Open()
		p.parseSelectStmtBody(follow)
		p.Close(m, treekind.ExprSelect, treekind.NoTag)
		return m
	case token.IDEN:
		return p.parseNameOrCallExpr(follow)
	default:
		m := p.OpenError(&treekind.ParseError{
			Kind: treekind.ExpectedItems,
			Expected: []treekind.ExpectedItem{
				treekind.ExpectedTree(treekind.Expr),
			},
		})
		if !p.at(token.EOF) {
			p.advance()
		}
		p.CloseError(m)
		return m
	}
}

// parseNameOrCallExpr parses a possibly-qualified column name
// (schema.table.column) or a function call name(...).
func (p *Parser) parseNameOrCallExpr(follow []token.Kind) Marker {
	m := p.Open()
	p.advance() // first IDEN
	for p.at(token.DOT) {
		p.advance()
		if p.atAny(token.IDEN, token.STAR) {
			p.advance()
		}
	}
	if p.at(token.L_PAREN) {
		p.parseFunctionCallTail(follow)
		p.Close(m, treekind.ExprFunction, treekind.NoTag)
		return m
	}
	p.Close(m, treekind.ExprColumnName, treekind.NoTag)
	return m
}

func (p *Parser) parseFunctionCallTail(follow []token.Kind) {
	argsFollow := append(append([]token.Kind{}, follow...), token.R_PAREN)
	args := p.Open()
	p.advance() // (
	if p.at(token.STAR) {
		p.advance()
	} else if !p.at(token.R_PAREN) {
		if p.at(token.KW_DISTINCT) {
			p.advance()
		}
		p.parseExpr(0, argsFollow)
		for p.at(token.COMMA) {
			p.advance()
			p.parseExpr(0, argsFollow)
		}
		if p.at(token.KW_ORDER) {
			p.parseOrderByClause(argsFollow)
		}
	}
	p.mustEat(token.R_PAREN, follow)
	p.Close(args, treekind.FunctionArgs, treekind.NoTag)

	if p.at(token.KW_FILTER) {
		f := p.Open()
		p.advance()
		p.mustEat(token.L_PAREN, follow)
		p.mustEat(token.KW_WHERE, follow)
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.R_PAREN))
		p.mustEat(token.R_PAREN, follow)
		p.Close(f, treekind.FunctionFilterClause, treekind.NoTag)
	}
	if p.at(token.KW_OVER) {
		o := p.Open()
		p.advance()
		if p.at(token.IDEN) {
			p.advance()
		} else {
			p.parseWindowDefBody(follow)
		}
		p.Close(o, treekind.FunctionOverClause, treekind.NoTag)
	}
}

func (p *Parser) parseParenExprOrSubquery(follow []token.Kind) Marker {
	m := p.Open()
	p.advance() // (
	inner := append(append([]token.Kind{}, follow...), token.R_PAREN)
	if p.atAny(token.KW_SELECT, token.KW_WITH) {
		p.parseSelectStmtBody(inner)
		p.mustEat(token.R_PAREN, follow)
		p.Close(m, treekind.ExprSelect, treekind.NoTag)
		return m
	}
	p.parseExpr(0, inner)
	for p.at(token.COMMA) {
		p.advance()
		p.parseExpr(0, inner)
	}
	p.mustEat(token.R_PAREN, follow)
	p.Close(m, treekind.ExprParen, treekind.NoTag)
	return m
}

func (p *Parser) parseCaseExpr(follow []token.Kind) Marker {
	m := p.Open()
	p.advance() // CASE
	branchFollow := append(append([]token.Kind{}, follow...), token.KW_WHEN, token.KW_ELSE, token.KW_END)
	if !p.at(token.KW_WHEN) {
		base := p.parseExpr(0, branchFollow)
		p.SetTag(base, treekind.NoTag)
	}
	for p.at(token.KW_WHEN) {
		w := p.Open()
		p.advance()
		cond := p.parseExpr(0, append(append([]token.Kind{}, branchFollow...), token.KW_THEN))
		p.SetTag(cond, treekind.When)
		p.mustEat(token.KW_THEN, branchFollow)
		result := p.parseExpr(0, branchFollow)
		p.SetTag(result, treekind.Then)
		p.Close(w, treekind.CaseWhenClause, treekind.NoTag)
	}
	if p.at(token.KW_ELSE) {
		e := p.Open()
		p.advance()
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.KW_END))
		p.Close(e, treekind.CaseElseClause, treekind.NoTag)
	}
	p.mustEat(token.KW_END, follow)
	p.Close(m, treekind.ExprCase, treekind.NoTag)
	return m
}

func (p *Parser) parseCastExpr(follow []token.Kind) Marker {
	m := p.Open()
	p.advance() // CAST
	p.mustEat(token.L_PAREN, follow)
	inner := append(append([]token.Kind{}, follow...), token.R_PAREN, token.KW_AS)
	p.parseExpr(0, inner)
	p.mustEat(token.KW_AS, inner)
	p.parseTypeName(append(append([]token.Kind{}, follow...), token.R_PAREN))
	p.mustEat(token.R_PAREN, follow)
	p.Close(m, treekind.ExprCast, treekind.NoTag)
	return m
}

func (p *Parser) parseExistsExpr(follow []token.Kind) Marker {
	m := p.Open()
	p.advance() // EXISTS
	p.mustEat(token.L_PAREN, follow)
	p.parseSelectStmtBody(append(append([]token.Kind{}, follow...), token.R_PAREN))
	p.mustEat(token.R_PAREN, follow)
	p.Close(m, treekind.ExprExists, treekind.NoTag)
	return m
}

func (p *Parser) parseRaiseExpr(follow []token.Kind) Marker {
	m := p.Open()
	p.advance() // RAISE
	p.mustEat(token.L_PAREN, follow)
	switch p.peek().Kind {
	case token.KW_IGNORE:
		p.advance()
	case token.KW_ROLLBACK, token.KW_ABORT, token.KW_FAIL:
		p.advance()
		p.mustEat(token.COMMA, follow)
		p.parseExpr(0, append(append([]token.Kind{}, follow...), token.R_PAREN))
	default:
		p.recoverTo([]token.Kind{token.R_PAREN})
	}
	p.mustEat(token.R_PAREN, follow)
	p.Close(m, treekind.ExprRaise, treekind.NoTag)
	return m
}
