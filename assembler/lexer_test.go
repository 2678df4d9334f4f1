package assembler_test

import (
	"errors"
	"testing"

	"github.com/adierking/unplug/assembler"
	"github.com/adierking/unplug/script"
)

func lexAll(t *testing.T, src string) []assembler.Token {
	t.Helper()
	lex := assembler.NewLexer(src)
	var toks []assembler.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("lex %q: %v", src, err)
		}
		toks = append(toks, tok)
		if tok.Kind == assembler.TokenEOF {
			return toks
		}
	}
}

func TestLexCommandLine(t *testing.T) {
	toks := lexAll(t, "\tif eq(var(0), 1000.d), else *done\n")
	want := []assembler.TokenKind{
		assembler.TokenIdent, assembler.TokenIdent, assembler.TokenLParen,
		assembler.TokenIdent, assembler.TokenLParen, assembler.TokenInt,
		assembler.TokenRParen, assembler.TokenComma, assembler.TokenInt,
		assembler.TokenRParen, assembler.TokenComma, assembler.TokenIdent,
		assembler.TokenLabelRef, assembler.TokenNewline, assembler.TokenEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[8].Value != 1000 || toks[8].Width != script.Width32 {
		t.Errorf("suffixed literal = %d width %v", toks[8].Value, toks[8].Width)
	}
}

func TestLexIntegers(t *testing.T) {
	tests := []struct {
		src   string
		value int64
		width script.Width
	}{
		{"0", 0, script.WidthAuto},
		{"-1", -1, script.WidthAuto},
		{"1000", 1000, script.WidthAuto},
		{"1000.d", 1000, script.Width32},
		{"5.b", 5, script.Width8},
		{"5.w", 5, script.Width16},
		{"0x7fffffff", 0x7fffffff, script.WidthAuto},
		{"0xFF", 255, script.WidthAuto},
		{"-0x10", -16, script.WidthAuto},
	}
	for _, tc := range tests {
		toks := lexAll(t, tc.src)
		if toks[0].Kind != assembler.TokenInt {
			t.Errorf("%q lexed as %s", tc.src, toks[0].Kind)
			continue
		}
		if toks[0].Value != tc.value || toks[0].Width != tc.width {
			t.Errorf("%q = %d width %v, want %d width %v",
				tc.src, toks[0].Value, toks[0].Width, tc.value, tc.width)
		}
	}
}

func TestLexReferences(t *testing.T) {
	toks := lexAll(t, "*main *loop.w *0x20 *16.d")
	if toks[0].Kind != assembler.TokenLabelRef || toks[0].Text != "main" {
		t.Errorf("token 0 = %v", toks[0])
	}
	if toks[1].Kind != assembler.TokenLabelRef || toks[1].Text != "loop" ||
		toks[1].Width != script.Width16 {
		t.Errorf("token 1 = %v", toks[1])
	}
	if toks[2].Kind != assembler.TokenOffsetRef || toks[2].Value != 0x20 {
		t.Errorf("token 2 = %v", toks[2])
	}
	if toks[3].Kind != assembler.TokenOffsetRef || toks[3].Value != 16 ||
		toks[3].Width != script.Width32 {
		t.Errorf("token 3 = %v", toks[3])
	}
}

func TestLexTypesAndDirectives(t *testing.T) {
	toks := lexAll(t, ".db @pos main:")
	if toks[0].Kind != assembler.TokenDirective || toks[0].Text != "db" {
		t.Errorf("token 0 = %v", toks[0])
	}
	if toks[1].Kind != assembler.TokenType || toks[1].Text != "pos" {
		t.Errorf("token 1 = %v", toks[1])
	}
	if toks[2].Kind != assembler.TokenIdent || toks[3].Kind != assembler.TokenColon {
		t.Errorf("label tokens = %v %v", toks[2], toks[3])
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\nb\\c\"d\te\vf"`)
	if toks[0].Kind != assembler.TokenString {
		t.Fatalf("token = %v", toks[0])
	}
	if toks[0].Text != "a\nb\\c\"d\te\vf" {
		t.Errorf("string = %q", toks[0].Text)
	}
}

func TestLexComments(t *testing.T) {
	toks := lexAll(t, "abort ; trailing\n/* block\ncomment */return\n")
	var kinds []assembler.TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	want := []assembler.TokenKind{
		assembler.TokenIdent, assembler.TokenNewline,
		assembler.TokenIdent, assembler.TokenNewline, assembler.TokenEOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind assembler.LexErrorKind
	}{
		{`"no end`, assembler.UnterminatedString},
		{"\"line\nbreak\"", assembler.UnterminatedString},
		{"/* forever", assembler.UnterminatedBlockComment},
		{"`", assembler.InvalidCharacter},
		{"0x", assembler.InvalidCharacter},
	}
	for _, tc := range tests {
		lex := assembler.NewLexer(tc.src)
		var err error
		for {
			var tok assembler.Token
			tok, err = lex.Next()
			if err != nil || tok.Kind == assembler.TokenEOF {
				break
			}
		}
		var lerr *assembler.LexError
		if !errors.As(err, &lerr) || lerr.Kind != tc.kind {
			t.Errorf("%q: want kind %v, got %v", tc.src, tc.kind, err)
		}
	}
}
