package token

import "testing"

func TestLookupKeywordUpperSpelling(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"SELECT", KW_SELECT},
		{"FROM", KW_FROM},
		{"WHERE", KW_WHERE},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LookupKeyword(tt.input); got != tt.kind {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.input, got, tt.kind)
			}
		})
	}
}

func TestLookupKeywordRejectsNonKeywords(t *testing.T) {
	for _, s := range []string{"SELECTX", "FOO", "", "SELEC"} {
		if got := LookupKeyword(s); got != IDEN {
			t.Errorf("LookupKeyword(%q) = %v, want IDEN", s, got)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	if !IsKeyword(KW_SELECT) {
		t.Errorf("IsKeyword(KW_SELECT) = false, want true")
	}
	if IsKeyword(IDEN) {
		t.Errorf("IsKeyword(IDEN) = true, want false")
	}
	if IsKeyword(EOF) {
		t.Errorf("IsKeyword(EOF) = true, want false")
	}
}

func TestMatchOperatorLongestFirst(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		width int
	}{
		{"<=x", L_CHEV_EQ, 2},
		{"<<x", L_CHEV_TWO, 2},
		{"<>x", NOT_EQ_SQL, 2},
		{"<x", 0, 0},
		{"->>x", EXTRACT_TWO, 3},
		{"->x", EXTRACT_ONE, 2},
		{"==x", EQ, 2},
		{"!=x", NOT_EQ, 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, width := MatchOperator(tt.input)
			if tt.width == 0 {
				if width != 0 {
					t.Errorf("MatchOperator(%q) matched unexpectedly: %v width %d", tt.input, kind, width)
				}
				return
			}
			if kind != tt.kind || width != tt.width {
				t.Errorf("MatchOperator(%q) = (%v, %d), want (%v, %d)", tt.input, kind, width, tt.kind, tt.width)
			}
		})
	}
}

func TestMatchSingleChar(t *testing.T) {
	tests := map[byte]Kind{
		'.': DOT,
		'*': STAR,
		'(': L_PAREN,
		')': R_PAREN,
		',': COMMA,
		';': SEMICOLON,
	}
	for b, want := range tests {
		got, ok := MatchSingleChar(b)
		if !ok || got != want {
			t.Errorf("MatchSingleChar(%q) = (%v, %v), want (%v, true)", b, got, ok, want)
		}
	}
	if _, ok := MatchSingleChar('z'); ok {
		t.Errorf("MatchSingleChar('z') matched unexpectedly")
	}
}

func TestKindStringRoundtrip(t *testing.T) {
	for _, k := range []Kind{EOF, IDEN, STR_LIT, KW_SELECT, DOT, EQ} {
		if s := k.String(); s == "" {
			t.Errorf("Kind(%d).String() is empty", k)
		}
	}
}
