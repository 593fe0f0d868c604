package treekind

import (
	"strings"

	"github.com/dhamidi/sqlite-ls/token"
)

// ErrorPayloadKind distinguishes the shape of a parse-error node's payload.
type ErrorPayloadKind int

const (
	UnknownTokens ErrorPayloadKind = iota
	ExpectedItems
	IllegalJoinOperator
)

// ExpectedItem is either a token kind or a tree kind candidate, as
// ExpectedItems payloads can name either.
type ExpectedItem struct {
	Token  token.Kind
	Tree   Kind
	IsTree bool
}

func ExpectedToken(k token.Kind) ExpectedItem { return ExpectedItem{Token: k} }
func ExpectedTree(k Kind) ExpectedItem        { return ExpectedItem{Tree: k, IsTree: true} }

// ParseError is the payload carried by an Error-kind CST node.
type ParseError struct {
	Kind     ErrorPayloadKind
	Expected []ExpectedItem
}

// IsMissingSemicolon reports whether e is exactly a missing-semicolon error: an
// error node whose only expected item is ';' is a missing-semicolon marker.
// The reference host uses it (via parser.IsMissingSemicolonErr) to leave
// every such error out of its diagnostics. The incremental driver does not
// consult it: its re-parse window always widens by one statement on each
// side, with no further extension over missing-semicolon errors.
func (e *ParseError) IsMissingSemicolon() bool {
	if e == nil || e.Kind != ExpectedItems || len(e.Expected) != 1 {
		return false
	}
	item := e.Expected[0]
	return !item.IsTree && item.Token == token.SEMICOLON
}

func (e *ParseError) String() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case UnknownTokens:
		return "UnknownTokens"
	case IllegalJoinOperator:
		return "IllegalJoinOperator"
	case ExpectedItems:
		names := make([]string, len(e.Expected))
		for i, item := range e.Expected {
			if item.IsTree {
				names[i] = item.Tree.String()
			} else {
				names[i] = item.Token.String()
			}
		}
		return "ExpectedItems(" + strings.Join(names, ", ") + ")"
	default:
		return "UnknownError"
	}
}
