package lexer

import (
	"testing"

	"github.com/insertnamehere77/loxo/pkg/token"
)

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	input := `(){},.-+;*/ ! != = == > >= < <=`

	tests := []struct {
		expectedType   token.Type
		expectedLexeme string
	}{
		{token.LEFT_PAREN, "("},
		{token.RIGHT_PAREN, ")"},
		{token.LEFT_BRACE, "{"},
		{token.RIGHT_BRACE, "}"},
		{token.COMMA, ","},
		{token.DOT, "."},
		{token.MINUS, "-"},
		{token.PLUS, "+"},
		{token.SEMICOLON, ";"},
		{token.STAR, "*"},
		{token.SLASH, "/"},
		{token.BANG, "!"},
		{token.BANG_EQUAL, "!="},
		{token.EQUAL, "="},
		{token.EQUAL_EQUAL, "=="},
		{token.GREATER, ">"},
		{token.GREATER_EQUAL, ">="},
		{token.LESS, "<"},
		{token.LESS_EQUAL, "<="},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Scan()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s (lexeme=%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "and class else false fun for if nil or print return super this true var while"
	expected := []token.Type{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FUN, token.FOR,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.Scan()
		if tok.Type != want {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestIdentifierVsKeyword(t *testing.T) {
	l := New("forest formula fun")
	tok := l.Scan()
	if tok.Type != token.IDENTIFIER || tok.Lexeme != "forest" {
		t.Fatalf("expected identifier 'forest', got %s %q", tok.Type, tok.Lexeme)
	}
	tok = l.Scan()
	if tok.Type != token.IDENTIFIER || tok.Lexeme != "formula" {
		t.Fatalf("expected identifier 'formula', got %s %q", tok.Type, tok.Lexeme)
	}
	tok = l.Scan()
	if tok.Type != token.FUN {
		t.Fatalf("expected keyword 'fun', got %s", tok.Type)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		literal float64
		lexeme  string
	}{
		{"123", 123, "123"},
		{"123.456", 123.456, "123.456"},
		{"0.5", 0.5, "0.5"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Scan()
		if tok.Type != token.NUMBER {
			t.Fatalf("input %q: expected NUMBER, got %s", tt.input, tok.Type)
		}
		if tok.Lexeme != tt.lexeme {
			t.Fatalf("input %q: expected lexeme %q, got %q", tt.input, tt.lexeme, tok.Lexeme)
		}
		if tok.Literal.(float64) != tt.literal {
			t.Fatalf("input %q: expected literal %v, got %v", tt.input, tt.literal, tok.Literal)
		}
	}
}

func TestTrailingDotNotConsumed(t *testing.T) {
	// "1." has no fractional digits, so the dot is left for the next token.
	l := New("1.")
	tok := l.Scan()
	if tok.Type != token.NUMBER || tok.Lexeme != "1" {
		t.Fatalf("expected NUMBER '1', got %s %q", tok.Type, tok.Lexeme)
	}
	tok = l.Scan()
	if tok.Type != token.DOT {
		t.Fatalf("expected DOT, got %s", tok.Type)
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello, world"`)
	tok := l.Scan()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if tok.Literal.(string) != "hello, world" {
		t.Fatalf("expected literal %q, got %q", "hello, world", tok.Literal)
	}
}

func TestMultilineString(t *testing.T) {
	l := New("\"line one\nline two\"")
	tok := l.Scan()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if tok.Literal.(string) != "line one\nline two" {
		t.Fatalf("unexpected literal %q", tok.Literal)
	}
}

func TestUnterminatedStringProducesDiagnostic(t *testing.T) {
	l := New(`"abc`)
	toks, errs := l.ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(errs))
	}
	if errs[0].Pos.Line != 1 {
		t.Fatalf("expected line 1, got %d", errs[0].Pos.Line)
	}
	if len(toks) != 1 || toks[0].Type != token.EOF {
		t.Fatalf("expected the unterminated string to produce no token, only a trailing EOF, got %v", toks)
	}
}

func TestUnexpectedCharacterContinuesScanning(t *testing.T) {
	l := New("1 @ 2")
	tokens, errs := l.ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(errs))
	}
	// The scanner recovers and keeps producing tokens around the bad character.
	var sawBothNumbers int
	for _, tk := range tokens {
		if tk.Type == token.NUMBER {
			sawBothNumbers++
		}
	}
	if sawBothNumbers != 2 {
		t.Fatalf("expected 2 number tokens around the bad char, got %d", sawBothNumbers)
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	l := New("1 // this is a comment\n2")
	tokens, errs := l.ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if len(tokens) != 3 { // NUMBER, NUMBER, EOF
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[1].Line != 2 {
		t.Fatalf("expected second number on line 2, got line %d", tokens[1].Line)
	}
}

func TestEveryTokenHasNonEmptyLexemeExceptEOF(t *testing.T) {
	source := `var x = "hi"; fun f(a, b) { return a + b; } class C { m() {} }`
	l := New(source)
	tokens, errs := l.ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	for i, tk := range tokens {
		if tk.Line < 1 {
			t.Fatalf("token %d has line < 1: %+v", i, tk)
		}
		if tk.Type != token.EOF && tk.Lexeme == "" {
			t.Fatalf("token %d has empty lexeme: %+v", i, tk)
		}
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		t.Fatalf("expected final token to be EOF")
	}
}
