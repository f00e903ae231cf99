package parser

import (
	"cascade/internal/ast"
	"cascade/internal/diag"
	"cascade/internal/token"
)

// parseFnItem — fn name(params) { body }
func (p *Parser) parseFnItem() (ast.ItemID, bool) {
	fnTok := p.advance() // 'fn'

	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	if _, okParen := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !okParen {
		return ast.NoItemID, false
	}

	var params []ast.FnParam
	if !p.at(token.RParen) {
		for {
			paramTok, okParam := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
			if !okParam {
				return ast.NoItemID, false
			}
			params = append(params, ast.FnParam{
				Name: p.arenas.StringsInterner.Intern(paramTok.Text),
				Span: paramTok.Span,
			})
			if !p.eat(token.Comma) {
				break
			}
			if p.at(token.RParen) {
				break // trailing comma
			}
		}
	}

	if _, okClose := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !okClose {
		return ast.NoItemID, false
	}

	body, okBody := p.parseBlock()
	if !okBody {
		return ast.NoItemID, false
	}

	bodySpan := p.arenas.Stmts.Get(body).Span
	return p.arenas.Items.NewFn(fnTok.Span.Cover(bodySpan), name, params, body), true
}
