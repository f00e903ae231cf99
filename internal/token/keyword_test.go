package token_test

import (
	"testing"

	"cascade/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  token.Kind
		ok    bool
	}{
		{"struct", token.KwStruct, true},
		{"optional", token.KwOptional, true},
		{"mandatory", token.KwMandatory, true},
		{"null", token.NullLit, true},
		{"true", token.KwTrue, true},
		{"Struct", 0, false}, // регистрозависимо
		{"assert", 0, false}, // builtin, не keyword
		{"push", 0, false},
		{"name", 0, false},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.ident)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = (%v, %v), want (%v, %v)", tt.ident, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTokenClassifiers(t *testing.T) {
	lit := token.Token{Kind: token.NumberLit}
	if !lit.IsLiteral() || lit.IsKeyword() || lit.IsPunctOrOp() {
		t.Error("NumberLit must classify as literal only")
	}
	kw := token.Token{Kind: token.KwWhile}
	if !kw.IsKeyword() || kw.IsLiteral() {
		t.Error("while must classify as keyword")
	}
	op := token.Token{Kind: token.EqEq}
	if !op.IsPunctOrOp() {
		t.Error("== must classify as punct/op")
	}
	id := token.Token{Kind: token.Ident}
	if !id.IsIdent() {
		t.Error("ident must classify as ident")
	}
}
