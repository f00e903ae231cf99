package parser

import (
	"cascade/internal/ast"
	"cascade/internal/diag"
	"cascade/internal/token"
)

// parseStmt разбирает один statement. ';' — опциональный терминатор.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	var stmt ast.StmtID
	var ok bool

	switch p.lx.Peek().Kind {
	case token.KwLet:
		stmt, ok = p.parseLetStmt()
	case token.KwIf:
		stmt, ok = p.parseIfStmt()
	case token.KwWhile:
		stmt, ok = p.parseWhileStmt()
	case token.KwReturn:
		stmt, ok = p.parseReturnStmt()
	case token.KwPrint:
		stmt, ok = p.parsePrintStmt()
	case token.LBrace:
		stmt, ok = p.parseBlock()
	default:
		stmt, ok = p.parseAssignOrExprStmt()
	}

	if !ok {
		return ast.NoStmtID, false
	}
	p.eat(token.Semicolon)
	return stmt, true
}

// parseBlock — { stmt* }
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	lb, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.opts.Enough() {
			break
		}
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		stmt, okStmt := p.parseStmt()
		if !okStmt {
			p.resyncUntil(token.Semicolon, token.RBrace)
			p.eat(token.Semicolon)
			continue
		}
		stmts = append(stmts, stmt)
	}

	rb, okClose := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	if !okClose {
		return ast.NoStmtID, false
	}

	return p.arenas.Stmts.NewBlock(lb.Span.Cover(rb.Span), stmts), true
}

// parseLetStmt — let name = expr
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	letTok := p.advance() // 'let'

	name, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}

	if _, okEq := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let binding"); !okEq {
		return ast.NoStmtID, false
	}

	value, okVal := p.parseExpr()
	if !okVal {
		return ast.NoStmtID, false
	}

	valueSpan := p.arenas.Exprs.Get(value).Span
	return p.arenas.Stmts.NewLet(letTok.Span.Cover(valueSpan), name, value), true
}

// parseIfStmt — if cond block (else (block | ifStmt))?
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance() // 'if'

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	then, okThen := p.parseBlock()
	if !okThen {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	endSpan := p.arenas.Stmts.Get(then).Span
	if p.at(token.KwElse) {
		p.advance() // 'else'
		var okElse bool
		if p.at(token.KwIf) {
			els, okElse = p.parseIfStmt()
		} else {
			els, okElse = p.parseBlock()
		}
		if !okElse {
			return ast.NoStmtID, false
		}
		endSpan = p.arenas.Stmts.Get(els).Span
	}

	return p.arenas.Stmts.NewIf(ifTok.Span.Cover(endSpan), cond, then, els), true
}

// parseWhileStmt — while cond block
func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance() // 'while'

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	body, okBody := p.parseBlock()
	if !okBody {
		return ast.NoStmtID, false
	}

	bodySpan := p.arenas.Stmts.Get(body).Span
	return p.arenas.Stmts.NewWhile(whileTok.Span.Cover(bodySpan), cond, body), true
}

// parseReturnStmt — return (expr)?
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance() // 'return'

	// пустой return: перед ';', '}' или EOF
	if p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		return p.arenas.Stmts.NewReturn(retTok.Span, ast.NoExprID), true
	}

	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	valueSpan := p.arenas.Exprs.Get(value).Span
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(valueSpan), value), true
}

// parsePrintStmt — print expr
func (p *Parser) parsePrintStmt() (ast.StmtID, bool) {
	printTok := p.advance() // 'print'

	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	valueSpan := p.arenas.Exprs.Get(value).Span
	return p.arenas.Stmts.NewPrint(printTok.Span.Cover(valueSpan), value), true
}

// parseAssignOrExprStmt — expr ('=' expr)?
// Валидные цели присваивания: Ident, member access, index.
func (p *Parser) parseAssignOrExprStmt() (ast.StmtID, bool) {
	target, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	targetSpan := p.arenas.Exprs.Get(target).Span

	if !p.at(token.Assign) {
		return p.arenas.Stmts.NewExprStmt(targetSpan, target), true
	}
	p.advance() // '='

	switch p.arenas.Exprs.Get(target).Kind {
	case ast.ExprIdent, ast.ExprMember, ast.ExprIndex:
	default:
		p.report(diag.SynBadAssignTarget, diag.SevError, targetSpan, "invalid assignment target")
		return ast.NoStmtID, false
	}

	value, okVal := p.parseExpr()
	if !okVal {
		return ast.NoStmtID, false
	}
	valueSpan := p.arenas.Exprs.Get(value).Span
	return p.arenas.Stmts.NewAssign(targetSpan.Cover(valueSpan), target, value), true
}
