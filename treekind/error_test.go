package treekind

import (
	"testing"

	"github.com/dhamidi/sqlite-ls/token"
)

func TestIsMissingSemicolon(t *testing.T) {
	missingSemi := &ParseError{Kind: ExpectedItems, Expected: []ExpectedItem{ExpectedToken(token.SEMICOLON)}}
	if !missingSemi.IsMissingSemicolon() {
		t.Errorf("IsMissingSemicolon() = false, want true")
	}

	other := &ParseError{Kind: ExpectedItems, Expected: []ExpectedItem{ExpectedToken(token.KW_FROM)}}
	if other.IsMissingSemicolon() {
		t.Errorf("IsMissingSemicolon() = true, want false")
	}

	multi := &ParseError{Kind: ExpectedItems, Expected: []ExpectedItem{
		ExpectedToken(token.SEMICOLON), ExpectedToken(token.KW_FROM),
	}}
	if multi.IsMissingSemicolon() {
		t.Errorf("IsMissingSemicolon() with multiple expected = true, want false")
	}

	var nilErr *ParseError
	if nilErr.IsMissingSemicolon() {
		t.Errorf("nil.IsMissingSemicolon() = true, want false")
	}
}

func TestParseErrorString(t *testing.T) {
	e := &ParseError{Kind: ExpectedItems, Expected: []ExpectedItem{
		ExpectedToken(token.KW_SELECT), ExpectedTree(SelectStmt),
	}}
	s := e.String()
	if s == "" {
		t.Errorf("String() is empty")
	}

	var nilErr *ParseError
	if nilErr.String() != "" {
		t.Errorf("nil.String() = %q, want empty", nilErr.String())
	}
}

func TestIsInfixOp(t *testing.T) {
	if !IsInfixOp(OpAdd) {
		t.Errorf("IsInfixOp(OpAdd) = false, want true")
	}
	if IsInfixOp(SelectStmt) {
		t.Errorf("IsInfixOp(SelectStmt) = true, want false")
	}
}
