package token

// LexError tags a lexically malformed ERROR-kind token. The zero value,
// NoLexError, means "not an error token".
type LexError int

const (
	NoLexError LexError = iota
	UnknownToken
	UnterminatedBlobLiteral
	MalformedBlobLiteral
	TrailingJunkAfterNumericLiteral
	UnterminatedQuotedIdentifier
	UnterminatedStringLiteral
	MalformedParam
)

func (e LexError) String() string {
	switch e {
	case NoLexError:
		return "NoLexError"
	case UnknownToken:
		return "UnknownToken"
	case UnterminatedBlobLiteral:
		return "UnterminatedBlobLiteral"
	case MalformedBlobLiteral:
		return "MalformedBlobLiteral"
	case TrailingJunkAfterNumericLiteral:
		return "TrailingJunkAfterNumericLiteral"
	case UnterminatedQuotedIdentifier:
		return "UnterminatedQuotedIdentifier"
	case UnterminatedStringLiteral:
		return "UnterminatedStringLiteral"
	case MalformedParam:
		return "MalformedParam"
	default:
		return "UnknownLexError"
	}
}

// Token is an immutable lexical unit. Text is an owned slice of the source;
// concatenating every token's Text in lexing order reproduces the source
// exactly (losslessness).
type Token struct {
	Kind     Kind
	Text     string
	LexError LexError
}

// Len returns the token's contribution to the document, in bytes.
func (t Token) Len() int { return len(t.Text) }

// IsTrivia reports whether t is whitespace or comment trivia: such tokens
// are leaves in the CST and are never tagged.
func (t Token) IsTrivia() bool {
	return t.Kind == WHITESPACE || t.Kind == S_LINE_COMMENT || t.Kind == M_LINE_COMMENT
}

// IsError reports whether t was produced as a lexical error.
func (t Token) IsError() bool { return t.Kind == ERROR }
