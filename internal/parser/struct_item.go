package parser

import (
	"cascade/internal/ast"
	"cascade/internal/diag"
	"cascade/internal/source"
	"cascade/internal/token"
)

// parseStructItem — struct Name { [optional|mandatory] field, ... }
// Поля без префикса — mandatory. Завершающая запятая допустима.
func (p *Parser) parseStructItem() (ast.ItemID, bool) {
	structTok := p.advance() // 'struct'

	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	if _, okBrace := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name"); !okBrace {
		return ast.NoItemID, false
	}

	var fields []ast.StructField
	seen := make(map[source.StringID]struct{})
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldStart := p.lx.Peek().Span

		optional := false
		switch p.lx.Peek().Kind {
		case token.KwOptional:
			p.advance()
			optional = true
		case token.KwMandatory:
			p.advance()
		}

		fieldTok, okField := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name in struct declaration")
		if !okField {
			return ast.NoItemID, false
		}
		fieldName := p.arenas.StringsInterner.Intern(fieldTok.Text)

		if _, dup := seen[fieldName]; dup {
			p.report(diag.SynDuplicateField, diag.SevError, fieldTok.Span,
				"duplicate field \""+fieldTok.Text+"\" in struct declaration")
		} else {
			seen[fieldName] = struct{}{}
			fields = append(fields, ast.StructField{
				Name:     fieldName,
				Optional: optional,
				Span:     fieldStart.Cover(fieldTok.Span),
			})
		}

		if !p.eat(token.Comma) {
			break
		}
	}

	rb, okClose := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct declaration")
	if !okClose {
		return ast.NoItemID, false
	}

	return p.arenas.Items.NewStruct(structTok.Span.Cover(rb.Span), name, fields), true
}
