package lexer

import (
	"golang.org/x/text/unicode/norm"

	"cascade/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase). Token.Text — ровно исходный срез,
// кроме не-NFC Unicode идентификаторов, которые нормализуются перед сравнением.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	// Первый символ: ASCII fast-path или Unicode
	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	ascii := true
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			// fallback на оператор
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for {
			b := lx.cursor.Peek()
			if isIdentContinueByte(b) {
				lx.cursor.Bump()
				continue
			}
			if b >= utf8RuneSelf {
				ascii = false
				r2, sz2 := lx.peekRune()
				if sz2 > 0 && isIdentContinueRune(r2) {
					lx.bumpRune()
					continue
				}
			}
			break
		}
	} else {
		ascii = false
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 > 0 && r2 < utf8RuneSelf && isIdentContinueByte(byte(r2)) {
				lx.cursor.Bump()
				continue
			}
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	// Unicode идентификаторы приводим к NFC, чтобы одинаково выглядящие
	// имена интернировались в один StringID.
	if !ascii && !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}

	// Проверка на ключевое слово (регистрозависимо)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
