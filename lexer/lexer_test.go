package lexer

import (
	"testing"

	"github.com/dhamidi/sqlite-ls/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeAllReproducesSource(t *testing.T) {
	src := "SELECT a, b FROM t WHERE a = 1; -- trailing comment\n"
	toks := TokenizeAll([]byte(src), DefaultVersion)

	var rebuilt string
	for _, tok := range toks {
		rebuilt += tok.Text
	}
	if rebuilt != src {
		t.Errorf("rebuilt text = %q, want %q", rebuilt, src)
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Errorf("last token kind = %v, want EOF", toks[len(toks)-1].Kind)
	}
}

func TestKeywordCaseInsensitive(t *testing.T) {
	for _, src := range []string{"select", "SELECT", "Select"} {
		toks := TokenizeAll([]byte(src), DefaultVersion)
		if toks[0].Kind != token.KW_SELECT {
			t.Errorf("TokenizeAll(%q)[0].Kind = %v, want KW_SELECT", src, toks[0].Kind)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"123", token.INT_LIT},
		{"123.45", token.REAL_LIT},
		{"1e10", token.REAL_LIT},
		{"0x1F", token.HEX_LIT},
		{"1_000_000", token.INT_LIT},
	}
	for _, tt := range tests {
		toks := TokenizeAll([]byte(tt.src), DefaultVersion)
		if toks[0].Kind != tt.kind {
			t.Errorf("TokenizeAll(%q)[0].Kind = %v, want %v", tt.src, toks[0].Kind, tt.kind)
		}
		if toks[0].Text != tt.src {
			t.Errorf("TokenizeAll(%q)[0].Text = %q, want %q", tt.src, toks[0].Text, tt.src)
		}
	}
}

func TestTrailingJunkAfterNumericLiteral(t *testing.T) {
	toks := TokenizeAll([]byte("123abc"), DefaultVersion)
	if toks[0].Kind != token.ERROR {
		t.Fatalf("Kind = %v, want ERROR", toks[0].Kind)
	}
	if toks[0].LexError != token.TrailingJunkAfterNumericLiteral {
		t.Errorf("LexError = %v, want TrailingJunkAfterNumericLiteral", toks[0].LexError)
	}
}

func TestWindowIsContextualKeyword(t *testing.T) {
	// WINDOW is only a keyword when followed by a name and AS.
	toks := kinds(TokenizeAll([]byte("window AS x"), DefaultVersion))
	if toks[0] != token.IDEN {
		t.Errorf("bare `window` Kind = %v, want IDEN", toks[0])
	}

	toks = kinds(TokenizeAll([]byte("window w as (order by x)"), DefaultVersion))
	if toks[0] != token.KW_WINDOW {
		t.Errorf("`window w as (...)` Kind = %v, want KW_WINDOW", toks[0])
	}
}

func TestStringLiteralWithEscapedQuote(t *testing.T) {
	toks := TokenizeAll([]byte(`'it''s'`), DefaultVersion)
	if toks[0].Kind != token.STR_LIT {
		t.Fatalf("Kind = %v, want STR_LIT", toks[0].Kind)
	}
	if toks[0].Text != `'it''s'` {
		t.Errorf("Text = %q, want %q", toks[0].Text, `'it''s'`)
	}
}

func TestUnterminatedStringLiteral(t *testing.T) {
	toks := TokenizeAll([]byte(`'abc`), DefaultVersion)
	if toks[0].Kind != token.ERROR || toks[0].LexError != token.UnterminatedStringLiteral {
		t.Errorf("Kind/LexError = %v/%v, want ERROR/UnterminatedStringLiteral", toks[0].Kind, toks[0].LexError)
	}
}

func TestBlockCommentPreserved(t *testing.T) {
	src := "/* multi\nline */"
	toks := TokenizeAll([]byte(src), DefaultVersion)
	if toks[0].Kind != token.M_LINE_COMMENT {
		t.Fatalf("Kind = %v, want M_LINE_COMMENT", toks[0].Kind)
	}
	if toks[0].Text != src {
		t.Errorf("Text = %q, want %q", toks[0].Text, src)
	}
}

func TestOperatorsLongestMatchFirst(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"<=", token.L_CHEV_EQ},
		{"<", token.L_CHEV},
		{"->>", token.EXTRACT_TWO},
		{"->", token.EXTRACT_ONE},
		{"||", token.DOUBLE_PIPE},
	}
	for _, tt := range tests {
		toks := TokenizeAll([]byte(tt.src), DefaultVersion)
		if toks[0].Kind != tt.kind {
			t.Errorf("TokenizeAll(%q)[0].Kind = %v, want %v", tt.src, toks[0].Kind, tt.kind)
		}
	}
}

func TestClonePreservesIndependentPosition(t *testing.T) {
	l := New([]byte("a b c"), DefaultVersion)
	l.Next()
	clone := l.Clone()
	clone.Next()
	clone.Next()
	if l.Pos() == clone.Pos() {
		t.Errorf("clone shares position with original after advancing clone")
	}
}
