package parser

import (
	"cascade/internal/ast"
	"cascade/internal/diag"
	"cascade/internal/source"
	"cascade/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0) // минимальный приоритет = 0
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	// Парсим левую часть (унарные операторы + primary)
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Обрабатываем бинарные операторы в цикле
	for {
		tok := p.lx.Peek()

		prec := p.getBinaryOperatorPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break
		}

		// Съедаем оператор
		opTok := p.advance()

		// Все бинарные операторы левоассоциативны
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after binary operator")
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		leftSpan := p.arenas.Exprs.Get(left).Span
		rightSpan := p.arenas.Exprs.Get(right).Span
		finalSpan := leftSpan.Cover(rightSpan)

		left = p.arenas.Exprs.NewBinary(finalSpan, op, left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp

	// Собираем все префиксы
	for {
		op, ok := p.getUnaryOperator(p.lx.Peek().Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	// Парсим базовое выражение
	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		exprSpan := p.arenas.Exprs.Get(expr).Span
		finalSpan := prefixes[i].span.Cover(exprSpan)
		expr = p.arenas.Exprs.NewUnary(finalSpan, prefixes[i].op, expr)
	}

	return expr, true
}

// parsePostfixExpr обрабатывает постфиксы: вызов, member access, индексацию
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			expr, ok = p.parseCallSuffix(expr)
			if !ok {
				return ast.NoExprID, false
			}

		case token.Dot:
			p.advance() // '.'
			fieldTok, okField := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name after '.'")
			if !okField {
				return ast.NoExprID, false
			}
			field := p.arenas.StringsInterner.Intern(fieldTok.Text)
			targetSpan := p.arenas.Exprs.Get(expr).Span
			expr = p.arenas.Exprs.NewMember(targetSpan.Cover(fieldTok.Span), expr, field)

		case token.LBracket:
			p.advance() // '['
			index, okIndex := p.parseExpr()
			if !okIndex {
				return ast.NoExprID, false
			}
			rbr, okBr := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index expression")
			if !okBr {
				return ast.NoExprID, false
			}
			targetSpan := p.arenas.Exprs.Get(expr).Span
			expr = p.arenas.Exprs.NewIndex(targetSpan.Cover(rbr.Span), expr, index)

		default:
			return expr, true
		}
	}
}

// parseCallSuffix парсит аргументы вызова после уже разобранного target.
func (p *Parser) parseCallSuffix(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '('

	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.eat(token.Comma) {
				break
			}
			if p.at(token.RParen) {
				break // trailing comma
			}
		}
	}

	rp, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments")
	if !ok {
		return ast.NoExprID, false
	}
	targetSpan := p.arenas.Exprs.Get(target).Span
	return p.arenas.Exprs.NewCall(targetSpan.Cover(rp.Span), target, args), true
}

// parsePrimaryExpr — литералы, идентификаторы, new, литералы объектов/массивов, группировка
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.NumberLit:
		p.advance()
		value := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitNumber, value), true

	case token.StringLit:
		p.advance()
		value := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, value), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		value := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitBool, value), true

	case token.NullLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitNull, source.NoStringID), true

	case token.Ident:
		p.advance()
		name := p.arenas.StringsInterner.Intern(tok.Text)
		return p.arenas.Exprs.NewIdent(tok.Span, name), true

	case token.KwNew:
		return p.parseNewExpr()

	case token.LBrace:
		return p.parseObjectLit()

	case token.LBracket:
		return p.parseArrayLit()

	case token.LParen:
		p.advance() // '('
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		rp, okP := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		if !okP {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(tok.Span.Cover(rp.Span), inner), true

	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
}

// parseNewExpr — new TypeName { field: expr, ... }
func (p *Parser) parseNewExpr() (ast.ExprID, bool) {
	newTok := p.advance() // 'new'

	typeName, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}

	if _, okBrace := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after type name in new expression"); !okBrace {
		return ast.NoExprID, false
	}

	fields, ok := p.parseFieldInits()
	if !ok {
		return ast.NoExprID, false
	}

	rb, okClose := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close new expression")
	if !okClose {
		return ast.NoExprID, false
	}

	return p.arenas.Exprs.NewNew(newTok.Span.Cover(rb.Span), typeName, fields), true
}

// parseObjectLit — { field: expr, ... } без имени типа
func (p *Parser) parseObjectLit() (ast.ExprID, bool) {
	lb := p.advance() // '{'

	fields, ok := p.parseFieldInits()
	if !ok {
		return ast.NoExprID, false
	}

	rb, okClose := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal")
	if !okClose {
		return ast.NoExprID, false
	}

	return p.arenas.Exprs.NewObjectLit(lb.Span.Cover(rb.Span), fields), true
}

// parseFieldInits — общая часть new-выражения и объектного литерала.
// Останавливается перед '}', сам его не съедает.
func (p *Parser) parseFieldInits() ([]ast.FieldInit, bool) {
	var fields []ast.FieldInit
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name")
		if !ok {
			return nil, false
		}
		if _, okColon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !okColon {
			return nil, false
		}
		value, okVal := p.parseExpr()
		if !okVal {
			return nil, false
		}
		valueSpan := p.arenas.Exprs.Get(value).Span
		fields = append(fields, ast.FieldInit{
			Name:  p.arenas.StringsInterner.Intern(nameTok.Text),
			Value: value,
			Span:  nameTok.Span.Cover(valueSpan),
		})
		if !p.eat(token.Comma) {
			break
		}
	}
	return fields, true
}

// parseArrayLit — [ expr, ... ]
func (p *Parser) parseArrayLit() (ast.ExprID, bool) {
	lb := p.advance() // '['

	var elements []ast.ExprID
	if !p.at(token.RBracket) {
		for {
			elem, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			elements = append(elements, elem)
			if !p.eat(token.Comma) {
				break
			}
			if p.at(token.RBracket) {
				break // trailing comma
			}
		}
	}

	rb, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal")
	if !ok {
		return ast.NoExprID, false
	}

	return p.arenas.Exprs.NewArrayLit(lb.Span.Cover(rb.Span), elements), true
}
