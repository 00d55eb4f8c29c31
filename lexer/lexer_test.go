package lexer

import (
	"testing"

	"mavn/token"
)

func kinds(toks []*token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []token.Kind, want []token.Kind) {
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v; want %v", got, want)
		}
	}
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	lx := NewLexer("t.mavn", "_func add addition r1 m2")
	toks, err := lx.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), []token.Kind{
		token.FUNC, token.ADD, token.IDENT, token.REGID, token.MEMID, token.EOF,
	})
}

func TestLexMaximalMunchDoesNotStopAtKeywordPrefix(t *testing.T) {
	lx := NewLexer("t.mavn", "addition")
	tok, err := lx.scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != token.IDENT {
		t.Fatalf("got %v; want IDENT", tok.Kind)
	}
	if tok.Text != "addition" {
		t.Fatalf("got %q; want %q", tok.Text, "addition")
	}
}

func TestLexNegativeNumber(t *testing.T) {
	lx := NewLexer("t.mavn", "li r1, -1;")
	toks, err := lx.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), []token.Kind{
		token.LI, token.REGID, token.COMMA, token.NUM, token.SEMI, token.EOF,
	})
	num := toks[3]
	if num.Text != "-1" {
		t.Fatalf("got text %q; want %q", num.Text, "-1")
	}
	if num.Value == nil || num.Value.Int64() != -1 {
		t.Fatalf("got value %v; want -1", num.Value)
	}
}

func TestLexPunctuationAndComment(t *testing.T) {
	lx := NewLexer("t.mavn", "lw r1, 0(r2); # a comment\n")
	toks, err := lx.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, kinds(toks), []token.Kind{
		token.LW, token.REGID, token.COMMA, token.NUM, token.LPAREN, token.REGID,
		token.RPAREN, token.SEMI, token.COMMENT, token.EOF,
	})
}

func TestLexInvalidSymbol(t *testing.T) {
	lx := NewLexer("t.mavn", "@")
	_, err := lx.scan()
	if err == nil {
		t.Fatalf("expected an error for an invalid symbol")
	}
}

func TestLexMaximalMunchCoversEntireInput(t *testing.T) {
	src := "_func main; _reg r1; li r1, -2; nop;"
	lx := NewLexer("t.mavn", src)
	toks, err := lx.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// whitespace tokens are consumed (not returned) by ReadAll via Next,
	// so the returned tokens, read in order with only whitespace skipped
	// between them, must spell out src with no overlap and no gap.
	cursor := 0
	for _, tok := range toks {
		for cursor < len(src) && (src[cursor] == ' ' || src[cursor] == '\t' || src[cursor] == '\n') {
			cursor++
		}
		end := cursor + len(tok.Text)
		if end > len(src) || src[cursor:end] != tok.Text {
			t.Fatalf("token %q does not continue the input at byte %d", tok.Text, cursor)
		}
		cursor = end
	}
	if cursor != len(src) {
		t.Fatalf("covered %d bytes of a %d-byte input", cursor, len(src))
	}
}
