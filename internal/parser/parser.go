package parser

import (
	"slices"

	"cascade/internal/ast"
	"cascade/internal/diag"
	"cascade/internal/lexer"
	"cascade/internal/source"
	"cascade/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer    // поток токенов (Peek/Next)
	arenas   *ast.Builder    // построитель аренных узлов
	file     ast.FileID      // текущий FileID (в AST)
	fs       *source.FileSet // нужен только для спанов/путей при надобности
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if p.opts.Enough() {
			break
		}
		// лишние ';' между item'ами пропускаем молча
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
		} else {
			p.arenas.PushItem(p.file, itemID)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
// Декларации (struct, fn) — item'ы; всё остальное — обычный statement.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwStruct:
		return p.parseStructItem()
	case token.KwFn:
		return p.parseFnItem()
	default:
		stmtID, ok := p.parseStmt()
		if !ok {
			return ast.NoItemID, false
		}
		span := p.arenas.Stmts.Get(stmtID).Span
		return p.arenas.Items.NewStmtItem(span, stmtID), true
	}
}

// resyncTop — восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
func (p *Parser) resyncTop() {
	stopTokens := []token.Kind{
		token.Semicolon, token.KwStruct, token.KwFn, token.KwLet,
		token.KwIf, token.KwWhile, token.KwReturn, token.KwPrint,
	}

	p.resyncUntil(stopTokens...)

	// Если нашли semicolon, съедаем его
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// resyncUntil прокручивает поток до одного из указанных токенов или EOF.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	guard := p.lx.Peek()
	for !p.at(token.EOF) && !p.atOr(kinds...) {
		p.advance()
	}
	// гарантированный прогресс, если мы стоим на том же «стоповом» токене, с которого начали
	if tok := p.lx.Peek(); tok.Kind != token.EOF && tok.Span == guard.Span && tok.Kind == guard.Kind {
		p.advance()
	}
}

// parseIdent — утилита: ожидает Ident и интернирует его, возвращает source.StringID.
// На ошибке — репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (source.StringID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		id := p.arenas.StringsInterner.Intern(tok.Text)
		return id, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return source.NoStringID, false
}
