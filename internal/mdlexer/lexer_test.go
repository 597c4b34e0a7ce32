package mdlexer

import "testing"

func tokens(t *testing.T, source string) []Token {
	t.Helper()
	l := New(source)
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, tok)
		if tok.Tag == TokenStop {
			return out
		}
	}
}

func TestLexerBasicOperators(t *testing.T) {
	toks := tokens(t, "+ - * / -> == != >= <= && ||")
	want := []TokenTag{
		TokenPlus, TokenMinus, TokenAsterisk, TokenSlash, TokenMinusGreater,
		TokenDoubleEquals, TokenExclamationEquals, TokenGreaterEquals, TokenLessEquals,
		TokenDoubleAmpersand, TokenDoubleVertical, TokenStop,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Tag != w {
			t.Errorf("token %d = %v, want %v", i, toks[i].Tag, w)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		source string
		tag    TokenTag
	}{
		{"42", TokenInt},
		{"3.14", TokenFloat},
		{"1e10", TokenFloat},
		{"1.5e-3", TokenFloat},
	}
	for _, tt := range tests {
		l := New(tt.source)
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next(%q): %v", tt.source, err)
		}
		if tok.Tag != tt.tag {
			t.Errorf("Next(%q).Tag = %v, want %v", tt.source, tok.Tag, tt.tag)
		}
	}
}

func TestLexerInvalidNumber(t *testing.T) {
	l := New("1.")
	if _, err := l.Next(); err == nil {
		t.Errorf("expected error for trailing dot")
	}
}

func TestLexerKeywords(t *testing.T) {
	toks := tokens(t, "fn let type if then else vector")
	want := []TokenTag{
		TokenKeywordFn, TokenKeywordLet, TokenKeywordType, TokenKeywordIf,
		TokenKeywordThen, TokenKeywordElse, TokenKeywordVector, TokenStop,
	}
	for i, w := range want {
		if toks[i].Tag != w {
			t.Errorf("token %d = %v, want %v", i, toks[i].Tag, w)
		}
	}
}

func TestLexerKeywordPrefixIsName(t *testing.T) {
	// "lets" should not scan as keyword_let followed by "s".
	toks := tokens(t, "lets")
	if len(toks) != 2 || toks[0].Tag != TokenName || toks[0].Name != "lets" {
		t.Errorf("expected single name token 'lets', got %+v", toks)
	}
}

func TestLexerComment(t *testing.T) {
	toks := tokens(t, "1 -- this is a comment\n2")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[0].Tag != TokenInt || toks[0].Int != 1 {
		t.Errorf("first token wrong: %+v", toks[0])
	}
	if toks[1].Tag != TokenInt || toks[1].Int != 2 {
		t.Errorf("second token wrong: %+v", toks[1])
	}
}

func TestLexerBackPushesOneToken(t *testing.T) {
	l := New("1 2")
	first, _ := l.Next()
	l.Back()
	replay, err := l.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if replay != first {
		t.Errorf("Back+Next should replay the same token")
	}
	second, _ := l.Next()
	if second.Int != 2 {
		t.Errorf("expected second token to be 2, got %+v", second)
	}
}

func TestLexerLineTracking(t *testing.T) {
	toks := tokens(t, "1\n2\n3")
	if toks[0].Line != 1 || toks[1].Line != 2 || toks[2].Line != 3 {
		t.Errorf("unexpected line numbers: %+v", toks)
	}
}

func TestLexerInvalidCharacter(t *testing.T) {
	l := New("@")
	if _, err := l.Next(); err == nil {
		t.Errorf("expected error for '@'")
	}
}

func TestLexerAmpersandRequiresDouble(t *testing.T) {
	l := New("&x")
	if _, err := l.Next(); err == nil {
		t.Errorf("expected error for single '&'")
	}
}
