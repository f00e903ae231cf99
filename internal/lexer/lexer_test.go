package lexer_test

import (
	"testing"

	"cascade/internal/diag"
	"cascade/internal/lexer"
	"cascade/internal/source"
	"cascade/internal/token"
)

func lexAll(t *testing.T, src string, bag *diag.Bag) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.casc", []byte(src))
	opts := lexer.Options{}
	if bag != nil {
		opts.Reporter = &diag.BagReporter{Bag: bag}
	}
	lx := lexer.New(fs.Get(fileID), opts)

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexKeywordsAndIdents(t *testing.T) {
	tokens := lexAll(t, "struct optional mandatory let new if else while fn return print true false null name Null", nil)
	want := []token.Kind{
		token.KwStruct, token.KwOptional, token.KwMandatory, token.KwLet, token.KwNew,
		token.KwIf, token.KwElse, token.KwWhile, token.KwFn, token.KwReturn, token.KwPrint,
		token.KwTrue, token.KwFalse, token.NullLit, token.Ident, token.Ident, token.EOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexOperators(t *testing.T) {
	tokens := lexAll(t, "+ - * / = == ! != < <= > >= && || : ; , . ( ) { } [ ]", nil)
	want := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Assign, token.EqEq,
		token.Bang, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.AndAnd, token.OrOr, token.Colon, token.Semicolon, token.Comma, token.Dot,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.EOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"0", "0"},
		{"123", "123"},
		{"1.5", "1.5"},
		{".5", ".5"},
		{"1e3", "1e3"},
		{"1.5e-3", "1.5e-3"},
		{"2E+10", "2E+10"},
	}
	for _, tt := range tests {
		tokens := lexAll(t, tt.src, nil)
		if tokens[0].Kind != token.NumberLit || tokens[0].Text != tt.text {
			t.Errorf("lex %q = (%v, %q), want (NumberLit, %q)", tt.src, tokens[0].Kind, tokens[0].Text, tt.text)
		}
	}
}

func TestLexMemberAccessAfterIdentTarget(t *testing.T) {
	// "arr.length": точка после идентификатора — Dot, не часть числа
	tokens := lexAll(t, "arr.length", nil)
	want := []token.Kind{token.Ident, token.Dot, token.Ident, token.EOF}
	got := kinds(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLexStrings(t *testing.T) {
	tokens := lexAll(t, `"hello" "a\"b" "tab\there"`, nil)
	if tokens[0].Kind != token.StringLit || tokens[0].Text != `"hello"` {
		t.Errorf("token 0 = (%v, %q)", tokens[0].Kind, tokens[0].Text)
	}
	if tokens[1].Kind != token.StringLit || tokens[1].Text != `"a\"b"` {
		t.Errorf("token 1 = (%v, %q)", tokens[1].Kind, tokens[1].Text)
	}
	if tokens[2].Kind != token.StringLit {
		t.Errorf("token 2 = %v", tokens[2].Kind)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	bag := diag.NewBag(10)
	tokens := lexAll(t, `"oops`, bag)
	if tokens[0].Kind != token.Invalid {
		t.Errorf("token = %v, want Invalid", tokens[0].Kind)
	}
	if !bag.HasErrors() {
		t.Fatal("expected a lex error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("code = %v, want LexUnterminatedString", bag.Items()[0].Code)
	}
}

func TestLexNewlineInString(t *testing.T) {
	bag := diag.NewBag(10)
	lexAll(t, "\"a\nb\"", bag)
	if !bag.HasErrors() {
		t.Fatal("expected a lex error for newline in string")
	}
}

func TestLexUnknownChar(t *testing.T) {
	bag := diag.NewBag(10)
	tokens := lexAll(t, "let x = @", bag)
	if !bag.HasErrors() {
		t.Fatal("expected a lex error")
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("code = %v, want LexUnknownChar", bag.Items()[0].Code)
	}
	last := tokens[len(tokens)-2]
	if last.Kind != token.Invalid {
		t.Errorf("unknown char token = %v, want Invalid", last.Kind)
	}
}

func TestLexBadNumber(t *testing.T) {
	bag := diag.NewBag(10)
	lexAll(t, "1e+", bag)
	if !bag.HasErrors() {
		t.Fatal("expected a lex error")
	}
	if bag.Items()[0].Code != diag.LexBadNumber {
		t.Errorf("code = %v, want LexBadNumber", bag.Items()[0].Code)
	}
}

func TestLexTrivia(t *testing.T) {
	tokens := lexAll(t, "// comment\n/* block\ncomment */ let", nil)
	letTok := tokens[0]
	if letTok.Kind != token.KwLet {
		t.Fatalf("first significant token = %v, want let", letTok.Kind)
	}
	var sawLine, sawBlock bool
	for _, trivia := range letTok.Leading {
		switch trivia.Kind {
		case token.TriviaLineComment:
			sawLine = true
		case token.TriviaBlockComment:
			sawBlock = true
		}
	}
	if !sawLine || !sawBlock {
		t.Errorf("leading trivia missing comments: %+v", letTok.Leading)
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	bag := diag.NewBag(10)
	lexAll(t, "/* never closed", bag)
	if !bag.HasErrors() {
		t.Fatal("expected a lex error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Errorf("code = %v, want LexUnterminatedBlockComment", bag.Items()[0].Code)
	}
}

func TestLexUnicodeIdentifier(t *testing.T) {
	tokens := lexAll(t, "let имя = 1", nil)
	want := []token.Kind{token.KwLet, token.Ident, token.Assign, token.NumberLit, token.EOF}
	got := kinds(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if tokens[1].Text != "имя" {
		t.Errorf("ident text = %q", tokens[1].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.casc", []byte("let x"))
	lx := lexer.New(fs.Get(fileID), lexer.Options{})

	if lx.Peek().Kind != token.KwLet {
		t.Fatal("peek should see let")
	}
	if lx.Next().Kind != token.KwLet {
		t.Fatal("next after peek should still return let")
	}
	if lx.Next().Kind != token.Ident {
		t.Fatal("second token should be ident")
	}
}
