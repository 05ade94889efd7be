package token

import "testing"

func TestLookupIdentRecognizesAllSixteenKeywords(t *testing.T) {
	keywords := map[string]Type{
		"and": AND, "class": CLASS, "else": ELSE, "false": FALSE,
		"fun": FUN, "for": FOR, "if": IF, "nil": NIL,
		"or": OR, "print": PRINT, "return": RETURN, "super": SUPER,
		"this": THIS, "true": TRUE, "var": VAR, "while": WHILE,
	}
	if len(keywords) != 16 {
		t.Fatalf("test table itself must list all 16 keywords, has %d", len(keywords))
	}
	for lexeme, want := range keywords {
		if got := LookupIdent(lexeme); got != want {
			t.Errorf("LookupIdent(%q) = %s, want %s", lexeme, got, want)
		}
	}
}

func TestLookupIdentIsCaseSensitive(t *testing.T) {
	if LookupIdent("Var") != IDENTIFIER {
		t.Fatalf("expected 'Var' to be an identifier, not a keyword (Lox is case-sensitive)")
	}
	if LookupIdent("AND") != IDENTIFIER {
		t.Fatalf("expected 'AND' to be an identifier, not a keyword")
	}
}

func TestLookupIdentDefaultsToIdentifier(t *testing.T) {
	if LookupIdent("counter") != IDENTIFIER {
		t.Fatalf("expected non-keyword lexeme to be IDENTIFIER")
	}
}

func TestTokenStringIncludesLiteral(t *testing.T) {
	tok := Token{Type: NUMBER, Lexeme: "42", Literal: float64(42), Line: 3}
	got := tok.String()
	if want := `NUMBER "42" 42`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPositionFromToken(t *testing.T) {
	tok := Token{Type: IDENTIFIER, Lexeme: "x", Line: 7}
	if pos := tok.Pos(); pos.Line != 7 {
		t.Fatalf("expected line 7, got %d", pos.Line)
	}
}
